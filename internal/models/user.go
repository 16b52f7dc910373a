package models

// User は users テーブルの1行を表します。
type User struct {
	ID       int64      `json:"id"`
	Username string     `json:"username" validate:"required"`
	Password Credential `json:"-" validate:"-"`
	ImageURL string     `json:"image_url"`
	Bio      string     `json:"bio"`
}

// PublicUser はレスポンスに含めるユーザーの公開項目です。
type PublicUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	ImageURL string `json:"image_url"`
	Bio      string `json:"bio"`
}

// NewUser はバリデーション済みの User を生成します。
// 違反がある場合は ValidationErrors を返し、User は返しません。
func NewUser(username, imageURL, bio string) (*User, error) {
	u := &User{
		Username: username,
		ImageURL: imageURL,
		Bio:      bio,
	}
	if err := validateStruct(u); err != nil {
		return nil, err
	}
	return u, nil
}

// Public は公開用の射影を返します。
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		ImageURL: u.ImageURL,
		Bio:      u.Bio,
	}
}
