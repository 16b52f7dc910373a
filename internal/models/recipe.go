package models

// Recipe は recipes テーブルの1行を表します。
type Recipe struct {
	ID                int64  `json:"id"`
	Title             string `json:"title" validate:"required"`
	Instructions      string `json:"instructions" validate:"required,min=50"`
	MinutesToComplete *int64 `json:"minutes_to_complete"`
	UserID            *int64 `json:"user_id"`

	// User は所有者です。一覧・取得時に結合して読み込まれます。
	User *User `json:"-" validate:"-"`
}

// PublicRecipe はレスポンスに含めるレシピの公開項目です。
type PublicRecipe struct {
	Title             string      `json:"title"`
	Instructions      string      `json:"instructions"`
	MinutesToComplete *int64      `json:"minutes_to_complete"`
	User              *PublicUser `json:"user"`
}

// NewRecipe は userID が所有するバリデーション済みの Recipe を生成します。
func NewRecipe(title, instructions string, minutesToComplete *int64, userID int64) (*Recipe, error) {
	r := &Recipe{
		Title:             title,
		Instructions:      instructions,
		MinutesToComplete: minutesToComplete,
		UserID:            &userID,
	}
	if err := validateStruct(r); err != nil {
		return nil, err
	}
	return r, nil
}

// Public は公開用の射影を返します。所有者が未読み込みなら user は null です。
func (r *Recipe) Public() PublicRecipe {
	out := PublicRecipe{
		Title:             r.Title,
		Instructions:      r.Instructions,
		MinutesToComplete: r.MinutesToComplete,
	}
	if r.User != nil {
		u := r.User.Public()
		out.User = &u
	}
	return out
}
