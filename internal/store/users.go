package store

import (
	"context"
	"database/sql"

	"github.com/yourusername/recipe-box/internal/models"
)

// UserRepository は users テーブルへのアクセスを提供します。
type UserRepository struct {
	db DBTX
}

// NewUserRepository は db（*sql.DB または *sql.Tx）に紐づくリポジトリを返します。
func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Create はユーザーを挿入し、採番された ID を u.ID に設定します。
// username が重複している場合は ErrConflict を返します。
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	query :=
		`INSERT INTO users (username, password_hash, image_url, bio)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		u.Username, u.Password, u.ImageURL, u.Bio).Scan(&u.ID)
	return translateError(err)
}

// GetByID は ID でユーザーを取得します。
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query :=
		`SELECT id, username, password_hash, image_url, bio FROM users
		 WHERE id = $1`

	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

// GetByUsername はユーザー名でユーザーを取得します。
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query :=
		`SELECT id, username, password_hash, image_url, bio FROM users
		 WHERE username = $1`

	return scanUser(r.db.QueryRowContext(ctx, query, username))
}

// Delete はユーザーを削除します。所有するレシピも外部キーの CASCADE で削除されます。
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return translateError(err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var (
		u        models.User
		imageURL sql.NullString
		bio      sql.NullString
	)
	if err := row.Scan(&u.ID, &u.Username, &u.Password, &imageURL, &bio); err != nil {
		return nil, translateError(err)
	}
	u.ImageURL = imageURL.String
	u.Bio = bio.String
	return &u, nil
}
