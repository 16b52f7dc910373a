// Package recipes はログインユーザーのレシピ一覧・作成 API を提供します。
package recipes

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/recipe-box/internal/apierr"
	"github.com/yourusername/recipe-box/internal/auth"
	"github.com/yourusername/recipe-box/internal/models"
	"github.com/yourusername/recipe-box/internal/store"
)

const (
	msgNotLoggedIn    = "Not logged in."
	msgMissingFields  = "Missing required fields: title, instructions, and minutes_to_complete."
	msgInvalidPayload = "Request body must be a JSON object with title, instructions, and minutes_to_complete."
	msgBadData        = "There was an issue with the data provided."
)

// Handler は /recipes のハンドラーです。auth.Manager.RequireLogin の後段で使います。
type Handler struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewHandler は Handler を作成します。
func NewHandler(db *sql.DB, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{db: db, logger: logger}
}

type createRequest struct {
	Title             *string `json:"title"`
	Instructions      *string `json:"instructions"`
	MinutesToComplete *int64  `json:"minutes_to_complete"`
}

// List は GET /recipes のハンドラーです。
func (h *Handler) List(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		apierr.Respond(c, h.logger, apierr.Unauthorized(msgNotLoggedIn))
		return
	}

	list, err := store.NewRecipeRepository(h.db).ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		apierr.Respond(c, h.logger, apierr.Internal(err))
		return
	}

	out := make([]models.PublicRecipe, 0, len(list))
	for _, rec := range list {
		out = append(out, rec.Public())
	}
	c.JSON(http.StatusOK, out)
}

// Create は POST /recipes のハンドラーです。
func (h *Handler) Create(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		apierr.Respond(c, h.logger, apierr.Unauthorized(msgNotLoggedIn))
		return
	}

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.Respond(c, h.logger, apierr.Unprocessable(msgInvalidPayload, nil))
		return
	}
	if req.Title == nil || req.Instructions == nil || req.MinutesToComplete == nil {
		apierr.Respond(c, h.logger, apierr.Unprocessable(msgMissingFields, nil))
		return
	}

	recipe, err := models.NewRecipe(*req.Title, *req.Instructions, req.MinutesToComplete, user.ID)
	if err != nil {
		apierr.Respond(c, h.logger, err)
		return
	}

	var created *models.Recipe
	err = store.WithTx(c.Request.Context(), h.db, func(ctx context.Context, tx store.DBTX) error {
		repo := store.NewRecipeRepository(tx)
		if err := repo.Create(ctx, recipe); err != nil {
			return err
		}
		var err error
		created, err = repo.GetByID(ctx, recipe.ID)
		return err
	})
	switch {
	case errors.Is(err, store.ErrConflict), errors.Is(err, store.ErrConstraint):
		apierr.Respond(c, h.logger, apierr.Unprocessable(msgBadData, err))
		return
	case err != nil:
		apierr.Respond(c, h.logger, apierr.Internal(err))
		return
	}

	c.JSON(http.StatusCreated, created.Public())
}
