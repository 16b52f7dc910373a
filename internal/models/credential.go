package models

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const msgPasswordTooLong = "Password must be at most 72 bytes long."

// Credential はユーザーのパスワードハッシュを保持する不透明な型です。
// 平文からの設定と照合のみを公開し、ハッシュ値を読み出す手段は持ちません。
// 永続化は sql.Scanner / driver.Valuer 経由でのみ行います。
type Credential struct {
	hash sql.NullString
}

// Set は既定のコストで平文パスワードからハッシュを設定します。
func (c *Credential) Set(plain string) error {
	return c.SetWithCost(plain, bcrypt.DefaultCost)
}

// SetWithCost は指定したコストで bcrypt ハッシュを計算して保持します。
// 空文字列の場合はハッシュを NULL に戻します。
func (c *Credential) SetWithCost(plain string, cost int) error {
	if plain == "" {
		c.hash = sql.NullString{}
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return ValidationErrors{"password": {msgPasswordTooLong}}
		}
		return fmt.Errorf("hash password: %w", err)
	}
	c.hash = sql.NullString{String: string(hashed), Valid: true}
	return nil
}

// IsSet はハッシュが保存されているかを返します。
func (c *Credential) IsSet() bool {
	return c.hash.Valid
}

// Verify は平文パスワードが保存済みハッシュと一致するかを返します。
// ハッシュが未設定の場合は常に false です。
func (c *Credential) Verify(plain string) bool {
	if !c.hash.Valid {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(c.hash.String), []byte(plain)) == nil
}

// Scan は sql.Scanner を実装します。
func (c *Credential) Scan(src any) error {
	return c.hash.Scan(src)
}

// Value は driver.Valuer を実装します。
func (c Credential) Value() (driver.Value, error) {
	return c.hash.Value()
}

// String はログやデバッグ出力にハッシュが漏れないよう固定値を返します。
func (c Credential) String() string {
	if !c.hash.Valid {
		return "<unset>"
	}
	return "<redacted>"
}

// GoString は %#v 出力用です。
func (c Credential) GoString() string {
	return "models.Credential{" + c.String() + "}"
}
