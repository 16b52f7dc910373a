package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/recipe-box/internal/models"
	"github.com/yourusername/recipe-box/internal/store"
)

// ErrUnauthenticated はセッションに有効なユーザーが紐づいていないことを表します。
var ErrUnauthenticated = errors.New("unauthenticated")

// Session はクライアント単位のセッション状態です。
// 保持する認証情報はユーザーIDひとつだけで、保存先はクッキーストアです。
type Session struct {
	inner sessions.Session
}

// SessionFrom はリクエストのセッションを返します。
// ルーターに sessions.Sessions ミドルウェアが設定されている必要があります。
func SessionFrom(c *gin.Context) *Session {
	return &Session{inner: sessions.Default(c)}
}

// Establish はセッションにユーザーIDを設定し、CSRF トークンを発行して保存します。
func (s *Session) Establish(userID int64) error {
	token, err := generateToken()
	if err != nil {
		return fmt.Errorf("generate csrf token: %w", err)
	}
	s.inner.Clear()
	s.inner.Set(sessionKeyUserID, userID)
	s.inner.Set(sessionKeyCSRF, token)
	return s.inner.Save()
}

// CurrentUserID はセッションのユーザーIDを返します。未ログインなら false です。
func (s *Session) CurrentUserID() (int64, bool) {
	switch v := s.inner.Get(sessionKeyUserID).(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

// CSRFToken は発行済みの CSRF トークンを返します。
func (s *Session) CSRFToken() string {
	token, _ := s.inner.Get(sessionKeyCSRF).(string)
	return token
}

// Terminate はユーザーIDと CSRF トークンを削除して保存します。
func (s *Session) Terminate() error {
	s.inner.Delete(sessionKeyUserID)
	s.inner.Delete(sessionKeyCSRF)
	return s.inner.Save()
}

// UserFinder は ID からユーザーを引くための最小インターフェースです。
type UserFinder interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// RequireAuthenticated はセッションのユーザーIDを実在するユーザーへ解決します。
// IDが無い場合は ErrUnauthenticated を返します。
// IDはあるがユーザーが存在しない場合は、古いIDを削除したうえで ErrUnauthenticated を返します。
func RequireAuthenticated(ctx context.Context, session *Session, users UserFinder) (*models.User, error) {
	userID, ok := session.CurrentUserID()
	if !ok {
		return nil, ErrUnauthenticated
	}

	user, err := users.GetByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		if err := session.Terminate(); err != nil {
			return nil, fmt.Errorf("purge stale session: %w", err)
		}
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
