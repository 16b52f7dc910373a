package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/recipe-box/internal/models"
)

func respond(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	router := gin.New()
	router.GET("/", func(c *gin.Context) {
		Respond(c, nil, err)
	})
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	return rec
}

func TestRespondValidationErrors(t *testing.T) {
	verrs := models.ValidationErrors{}
	verrs.Add("title", "Title is required.")
	verrs.Add("instructions", "too short")

	rec := respond(t, fmt.Errorf("wrapped: %w", verrs))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	var body map[string][]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(body) != 2 || body["title"][0] != "Title is required." {
		t.Fatalf("unexpected body: %#v", body)
	}
}

func TestRespondFieldConflict(t *testing.T) {
	rec := respond(t, Conflict("username", "Username already exists.", errors.New("unique")))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	var body map[string][]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if got := body["username"]; len(got) != 1 || got[0] != "Username already exists." {
		t.Fatalf("unexpected body: %#v", body)
	}
}

func TestRespondHidesCause(t *testing.T) {
	cause := errors.New("pq: secret internals")
	for _, err := range []error{Internal(cause), Unprocessable("There was an issue with the data provided.", cause), cause} {
		rec := respond(t, err)
		if strings.Contains(rec.Body.String(), "secret internals") {
			t.Fatalf("cause leaked into body: %s", rec.Body.String())
		}
		var body map[string]string
		if jsonErr := json.Unmarshal(rec.Body.Bytes(), &body); jsonErr != nil {
			t.Fatalf("failed to parse response: %v", jsonErr)
		}
		if body["error"] == "" {
			t.Fatalf("expected error message, got %s", rec.Body.String())
		}
	}
}

func TestRespondStatuses(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{Unauthorized("Not logged in."), http.StatusUnauthorized},
		{Unprocessable("bad", nil), http.StatusUnprocessableEntity},
		{Internal(nil), http.StatusInternalServerError},
		{errors.New("unknown"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if rec := respond(t, tt.err); rec.Code != tt.want {
			t.Fatalf("%v: status = %d, want %d", tt.err, rec.Code, tt.want)
		}
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("cause")
	err := Internal(cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected Internal error to wrap cause")
	}
	if !strings.Contains(err.Error(), "cause") {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}
