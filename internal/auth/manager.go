// Package auth は認証・認可機能を提供します。
// サインアップ／ログイン／ログアウト／セッション確認のハンドラーと、
// 署名付きクッキーセッションによるログイン必須ミドルウェアを含みます。
package auth

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/recipe-box/internal/config"
)

const (
	SessionCookieName = "rb_session"
	sessionKeyUserID  = "user_id"
	sessionKeyCSRF    = "csrf_token"

	csrfHeader = "X-CSRF-Token"
)

var maxSessionLifetime = 12 * time.Hour

// SessionMaxAgeSeconds はクッキーの MaxAge に利用する秒数を返します。
func SessionMaxAgeSeconds() int {
	return int(maxSessionLifetime.Seconds())
}

// CSRFHeader は CSRF トークンを受け渡すヘッダー名です。CORS の公開ヘッダー設定に使います。
func CSRFHeader() string {
	return csrfHeader
}

// Manager は認証処理に必要な依存関係をまとめた構造体です。
type Manager struct {
	db     *sql.DB
	cfg    *config.Config
	logger *slog.Logger
}

// NewManager は認証マネージャーを作成します。
func NewManager(db *sql.DB, cfg *config.Config, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		db:     db,
		cfg:    cfg,
		logger: logger,
	}
}

// exposeCSRF は CSRF 保護が有効な場合にトークンをレスポンスヘッダーへ載せます。
func (m *Manager) exposeCSRF(c *gin.Context, session *Session) {
	if !m.cfg.CSRFProtection {
		return
	}
	if token := session.CSRFToken(); token != "" {
		c.Header(csrfHeader, token)
	}
}

func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}
