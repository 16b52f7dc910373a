package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/recipe-box/internal/apierr"
	"github.com/yourusername/recipe-box/internal/models"
	"github.com/yourusername/recipe-box/internal/store"
)

const (
	msgCredentialsRequired = "Username and password are required."
	msgUsernameTaken       = "Username already exists."
	msgSignupFailed        = "Unable to create account."
	msgInvalidCredentials  = "Invalid username or password."
	msgNotLoggedIn         = "Not logged in."
)

// signupRequest の username / password はキーの有無を区別するためポインタで受けます。
type signupRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	ImageURL string  `json:"image_url"`
	Bio      string  `json:"bio"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password"`
}

// Signup は POST /signup のハンドラーです。
func (m *Manager) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == nil || req.Password == nil {
		apierr.Respond(c, m.logger, apierr.Unprocessable(msgCredentialsRequired, nil))
		return
	}

	user, err := models.NewUser(*req.Username, req.ImageURL, req.Bio)
	if err != nil {
		apierr.Respond(c, m.logger, err)
		return
	}
	if err := user.Password.SetWithCost(*req.Password, m.cfg.BcryptCost); err != nil {
		var verrs models.ValidationErrors
		if errors.As(err, &verrs) {
			apierr.Respond(c, m.logger, verrs)
			return
		}
		apierr.Respond(c, m.logger, signupFailed(err))
		return
	}

	err = store.WithTx(c.Request.Context(), m.db, func(ctx context.Context, tx store.DBTX) error {
		return store.NewUserRepository(tx).Create(ctx, user)
	})
	switch {
	case errors.Is(err, store.ErrConflict):
		apierr.Respond(c, m.logger, apierr.Conflict("username", msgUsernameTaken, err))
		return
	case err != nil:
		apierr.Respond(c, m.logger, signupFailed(err))
		return
	}

	session := SessionFrom(c)
	if err := session.Establish(user.ID); err != nil {
		apierr.Respond(c, m.logger, apierr.Internal(err))
		return
	}
	m.exposeCSRF(c, session)
	c.JSON(http.StatusCreated, user.Public())
}

// Login は POST /login のハンドラーです。
// ユーザー名とパスワードのどちらが誤っているかは区別せずに返します。
func (m *Manager) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.Respond(c, m.logger, apierr.Unauthorized(msgInvalidCredentials))
		return
	}

	user, err := store.NewUserRepository(m.db).GetByUsername(c.Request.Context(), req.Username)
	switch {
	case errors.Is(err, store.ErrNotFound):
		apierr.Respond(c, m.logger, apierr.Unauthorized(msgInvalidCredentials))
		return
	case err != nil:
		apierr.Respond(c, m.logger, apierr.Internal(err))
		return
	}
	if !user.Password.Verify(req.Password) {
		apierr.Respond(c, m.logger, apierr.Unauthorized(msgInvalidCredentials))
		return
	}

	session := SessionFrom(c)
	if err := session.Establish(user.ID); err != nil {
		apierr.Respond(c, m.logger, apierr.Internal(err))
		return
	}
	m.exposeCSRF(c, session)
	c.JSON(http.StatusCreated, user.Public())
}

// Logout は DELETE /logout のハンドラーです。
func (m *Manager) Logout(c *gin.Context) {
	session := SessionFrom(c)
	if _, ok := session.CurrentUserID(); !ok {
		apierr.Respond(c, m.logger, apierr.Unauthorized(msgNotLoggedIn))
		return
	}
	if err := session.Terminate(); err != nil {
		apierr.Respond(c, m.logger, apierr.Internal(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// CheckSession は GET /check_session のハンドラーです。
// 未ログインおよび削除済みユーザーのセッションには空オブジェクトと 401 を返します。
func (m *Manager) CheckSession(c *gin.Context) {
	session := SessionFrom(c)
	user, err := RequireAuthenticated(c.Request.Context(), session, store.NewUserRepository(m.db))
	switch {
	case errors.Is(err, ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{})
		return
	case err != nil:
		apierr.Respond(c, m.logger, apierr.Internal(err))
		return
	}
	m.exposeCSRF(c, session)
	c.JSON(http.StatusOK, user.Public())
}

// signupFailed は重複以外の保存失敗を {"error": [...]} 形式の 422 にします。
func signupFailed(cause error) *apierr.Error {
	return &apierr.Error{
		Status:  http.StatusUnprocessableEntity,
		Field:   "error",
		Message: msgSignupFailed,
		Err:     cause,
	}
}

var _ UserFinder = (*store.UserRepository)(nil)
