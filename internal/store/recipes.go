package store

import (
	"context"
	"database/sql"

	"github.com/yourusername/recipe-box/internal/models"
)

// RecipeRepository は recipes テーブルへのアクセスを提供します。
type RecipeRepository struct {
	db DBTX
}

// NewRecipeRepository は db（*sql.DB または *sql.Tx）に紐づくリポジトリを返します。
func NewRecipeRepository(db DBTX) *RecipeRepository {
	return &RecipeRepository{db: db}
}

const recipeColumns = `r.id, r.title, r.instructions, r.minutes_to_complete, r.user_id,
		u.id, u.username, u.image_url, u.bio`

// Create はレシピを挿入し、採番された ID を rec.ID に設定します。
// 存在しない user_id を指定した場合は ErrConstraint を返します。
func (r *RecipeRepository) Create(ctx context.Context, rec *models.Recipe) error {
	query :=
		`INSERT INTO recipes (title, instructions, minutes_to_complete, user_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		rec.Title, rec.Instructions, rec.MinutesToComplete, rec.UserID).Scan(&rec.ID)
	return translateError(err)
}

// GetByID は所有者を結合してレシピを取得します。
func (r *RecipeRepository) GetByID(ctx context.Context, id int64) (*models.Recipe, error) {
	query := `SELECT ` + recipeColumns + `
		 FROM recipes r
		 LEFT JOIN users u ON u.id = r.user_id
		 WHERE r.id = $1`

	rec, err := scanRecipe(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateError(err)
	}
	return rec, nil
}

// ListByUser は userID が所有するレシピを ID 順に返します。
func (r *RecipeRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Recipe, error) {
	query := `SELECT ` + recipeColumns + `
		 FROM recipes r
		 JOIN users u ON u.id = r.user_id
		 WHERE r.user_id = $1
		 ORDER BY r.id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	recipes := make([]*models.Recipe, 0)
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, translateError(err)
		}
		recipes = append(recipes, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err)
	}
	return recipes, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row rowScanner) (*models.Recipe, error) {
	var (
		rec      models.Recipe
		minutes  sql.NullInt64
		userID   sql.NullInt64
		ownerID  sql.NullInt64
		username sql.NullString
		imageURL sql.NullString
		bio      sql.NullString
	)
	if err := row.Scan(
		&rec.ID, &rec.Title, &rec.Instructions, &minutes, &userID,
		&ownerID, &username, &imageURL, &bio,
	); err != nil {
		return nil, err
	}
	if minutes.Valid {
		rec.MinutesToComplete = &minutes.Int64
	}
	if userID.Valid {
		rec.UserID = &userID.Int64
	}
	if ownerID.Valid {
		rec.User = &models.User{
			ID:       ownerID.Int64,
			Username: username.String,
			ImageURL: imageURL.String,
			Bio:      bio.String,
		}
	}
	return &rec, nil
}
