package models

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestCredentialSetAndVerify(t *testing.T) {
	for _, password := range []string{"secret", "p@ss w0rd", "ユニコード"} {
		var c Credential
		if err := c.SetWithCost(password, bcrypt.MinCost); err != nil {
			t.Fatalf("SetWithCost(%q) returned error: %v", password, err)
		}
		if !c.IsSet() {
			t.Fatalf("expected hash to be set for %q", password)
		}
		if c.hash.String == password {
			t.Fatalf("hash must not equal plaintext")
		}
		if !c.Verify(password) {
			t.Fatalf("Verify(%q) = false, want true", password)
		}
		for _, other := range []string{"", password + "x", strings.ToUpper(password), "secret2"} {
			if other == password {
				continue
			}
			if c.Verify(other) {
				t.Fatalf("Verify(%q) = true for password %q", other, password)
			}
		}
	}
}

func TestCredentialEmptyClearsHash(t *testing.T) {
	var c Credential
	if err := c.SetWithCost("secret", bcrypt.MinCost); err != nil {
		t.Fatalf("SetWithCost returned error: %v", err)
	}
	if err := c.SetWithCost("", bcrypt.MinCost); err != nil {
		t.Fatalf("SetWithCost(\"\") returned error: %v", err)
	}
	if c.IsSet() {
		t.Fatal("expected hash to be cleared")
	}
	v, err := c.Value()
	if err != nil || v != nil {
		t.Fatalf("Value() = %v, %v; want nil, nil", v, err)
	}
	if c.Verify("") || c.Verify("secret") {
		t.Fatal("Verify must fail without a stored hash")
	}
}

func TestCredentialRehashesOnEverySet(t *testing.T) {
	var c Credential
	if err := c.SetWithCost("first", bcrypt.MinCost); err != nil {
		t.Fatalf("SetWithCost returned error: %v", err)
	}
	if err := c.SetWithCost("second", bcrypt.MinCost); err != nil {
		t.Fatalf("SetWithCost returned error: %v", err)
	}
	if c.Verify("first") || !c.Verify("second") {
		t.Fatal("credential should only match the latest password")
	}
}

func TestCredentialTooLong(t *testing.T) {
	var c Credential
	err := c.SetWithCost(strings.Repeat("a", 73), bcrypt.MinCost)

	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if len(verrs["password"]) != 1 {
		t.Fatalf("unexpected errors: %#v", verrs)
	}
	if c.IsSet() {
		t.Fatal("hash must stay unset on failure")
	}
}

func TestCredentialScanRoundTrip(t *testing.T) {
	var src Credential
	if err := src.SetWithCost("secret", bcrypt.MinCost); err != nil {
		t.Fatalf("SetWithCost returned error: %v", err)
	}
	v, err := src.Value()
	if err != nil {
		t.Fatalf("Value returned error: %v", err)
	}

	var dst Credential
	if err := dst.Scan([]byte(v.(string))); err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if !dst.Verify("secret") {
		t.Fatal("scanned credential should verify")
	}

	var null Credential
	if err := null.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) returned error: %v", err)
	}
	if null.IsSet() {
		t.Fatal("Scan(nil) should leave credential unset")
	}
}

func TestCredentialNeverPrintsHash(t *testing.T) {
	u := User{Username: "alice"}
	if err := u.Password.SetWithCost("secret", bcrypt.MinCost); err != nil {
		t.Fatalf("SetWithCost returned error: %v", err)
	}
	for _, format := range []string{"%v", "%+v", "%#v", "%s"} {
		out := fmt.Sprintf(format, u)
		if strings.Contains(out, "$2a$") {
			t.Fatalf("%s leaked hash: %s", format, out)
		}
	}
}

func TestNewUser(t *testing.T) {
	u, err := NewUser("alice", "http://img", "hello")
	if err != nil {
		t.Fatalf("NewUser returned error: %v", err)
	}
	if got := u.Public(); got.Username != "alice" || got.ImageURL != "http://img" || got.Bio != "hello" {
		t.Fatalf("unexpected projection: %+v", got)
	}

	u, err = NewUser("", "", "")
	if u != nil {
		t.Fatal("expected nil user on validation failure")
	}
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if got := verrs["username"]; len(got) != 1 || got[0] != "Username is required." {
		t.Fatalf("unexpected username errors: %#v", got)
	}
}

func TestNewRecipeInstructionsBoundary(t *testing.T) {
	minutes := int64(30)
	tests := []struct {
		name         string
		instructions string
		wantErr      bool
	}{
		{name: "empty", instructions: "", wantErr: true},
		{name: "49 chars", instructions: strings.Repeat("a", 49), wantErr: true},
		{name: "exactly 50", instructions: strings.Repeat("a", 50)},
		{name: "51 chars", instructions: strings.Repeat("a", 51)},
		{name: "50 multibyte runes", instructions: strings.Repeat("あ", 50)},
		{name: "49 multibyte runes", instructions: strings.Repeat("あ", 49), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRecipe("Soup", tt.instructions, &minutes, 7)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("NewRecipe returned error: %v", err)
				}
				if r.UserID == nil || *r.UserID != 7 {
					t.Fatalf("unexpected owner: %v", r.UserID)
				}
				return
			}
			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %v", err)
			}
			if got := verrs["instructions"]; len(got) != 1 || got[0] != msgInstructionsLength {
				t.Fatalf("unexpected instructions errors: %#v", got)
			}
			if r != nil {
				t.Fatal("expected nil recipe on validation failure")
			}
		})
	}
}

func TestNewRecipeCollectsAllErrors(t *testing.T) {
	_, err := NewRecipe("", "short", nil, 1)

	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if len(verrs) != 2 {
		t.Fatalf("expected title and instructions errors, got %#v", verrs)
	}
	if verrs["title"][0] != "Title is required." {
		t.Fatalf("unexpected title error: %#v", verrs["title"])
	}
	if !strings.Contains(err.Error(), "instructions:") || !strings.Contains(err.Error(), "title:") {
		t.Fatalf("unexpected error string: %s", err.Error())
	}
}

func TestRecipePublic(t *testing.T) {
	r := &Recipe{Title: "Soup", Instructions: "x"}
	if r.Public().User != nil {
		t.Fatal("expected nil user when owner not loaded")
	}
	r.User = &User{ID: 3, Username: "bob"}
	if got := r.Public().User; got == nil || got.ID != 3 || got.Username != "bob" {
		t.Fatalf("unexpected nested user: %+v", got)
	}
}
