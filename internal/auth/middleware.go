package auth

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/recipe-box/internal/apierr"
	"github.com/yourusername/recipe-box/internal/models"
	"github.com/yourusername/recipe-box/internal/store"
)

// ContextUserKey は、ハンドラー間でログイン済みユーザーを共有するためのキーです。
const ContextUserKey = "auth.user"

// RequireLogin はセッションを検証し、解決したユーザーをコンテキストに設定するミドルウェアを返します。
func (m *Manager) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := RequireAuthenticated(c.Request.Context(), SessionFrom(c), store.NewUserRepository(m.db))
		switch {
		case errors.Is(err, ErrUnauthenticated):
			apierr.Respond(c, m.logger, apierr.Unauthorized(msgNotLoggedIn))
			return
		case err != nil:
			apierr.Respond(c, m.logger, apierr.Internal(err))
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// VerifyCSRF は X-CSRF-Token ヘッダーを検証するミドルウェアです。
// CSRF 保護が無効な設定では何もしません。
func (m *Manager) VerifyCSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.cfg.CSRFProtection || isSafeMethod(c.Request.Method) {
			c.Next()
			return
		}

		session := SessionFrom(c)
		// 未ログインなら守る状態が無いので、後続ハンドラーの 401 に任せる
		if _, ok := session.CurrentUserID(); !ok {
			c.Next()
			return
		}

		expected := session.CSRFToken()
		if expected == "" {
			apierr.Respond(c, m.logger, &apierr.Error{Status: http.StatusForbidden, Message: "CSRF token is not set."})
			return
		}

		received := c.GetHeader(csrfHeader)
		if subtle.ConstantTimeCompare([]byte(expected), []byte(received)) != 1 {
			apierr.Respond(c, m.logger, &apierr.Error{Status: http.StatusForbidden, Message: "CSRF token mismatch."})
			return
		}

		c.Next()
	}
}

// CurrentUser は RequireLogin が設定したユーザーを返します。
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}
