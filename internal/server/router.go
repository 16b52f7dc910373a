// Package server は HTTP ルーターの組み立てを担当します。
package server

import (
	"crypto/rand"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/recipe-box/internal/auth"
	"github.com/yourusername/recipe-box/internal/config"
	"github.com/yourusername/recipe-box/internal/middleware"
	"github.com/yourusername/recipe-box/internal/recipes"
)

const (
	serviceName    = "recipe-box-api"
	serviceVersion = "0.1.0"
)

// NewRouter はミドルウェアとルーティングを設定した gin.Engine を返します。
func NewRouter(cfg *config.Config, db *sql.DB, logger *slog.Logger) (*gin.Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	// セッションストアの設定
	secret := []byte(cfg.SessionSecret)
	if len(secret) == 0 {
		// 開発用。再起動するとセッションは無効になる
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
		logger.Warn("SESSION_SECRET is empty; using a random per-process secret")
	}
	store := cookie.NewStore(secret)
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   auth.SessionMaxAgeSeconds(),
		HttpOnly: true,
		Secure:   cfg.GinMode == gin.ReleaseMode,
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions(auth.SessionCookieName, store))

	// CORSミドルウェアの設定（許可オリジンが無ければ同一オリジンのみ）
	if origins := cfg.AllowedOrigins(); len(origins) > 0 {
		router.Use(cors.New(corsConfig(origins)))
	}

	setupRoutes(router, cfg, db, logger)
	return router, nil
}

func corsConfig(origins []string) cors.Config {
	conf := cors.DefaultConfig()
	conf.AllowOrigins = origins
	conf.AllowCredentials = true
	conf.AllowHeaders = []string{
		"Origin",
		"Content-Type",
		"Accept",
		middleware.RequestIDHeader,
		auth.CSRFHeader(),
	}
	conf.ExposeHeaders = []string{auth.CSRFHeader(), middleware.RequestIDHeader}
	return conf
}

// handleHealth はヘルスチェックエンドポイントのハンドラーです。
func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": serviceName,
		"version": serviceVersion,
	})
}

func setupRoutes(router *gin.Engine, cfg *config.Config, db *sql.DB, logger *slog.Logger) {
	router.GET("/health", handleHealth)

	authManager := auth.NewManager(db, cfg, logger)
	recipeHandler := recipes.NewHandler(db, logger)

	// サインアップ・ログイン時はセッション未生成なので CSRF 検証は不要
	router.POST("/signup", authManager.Signup)
	router.POST("/login", authManager.Login)
	router.GET("/check_session", authManager.CheckSession)
	router.DELETE("/logout", authManager.VerifyCSRF(), authManager.Logout)

	recipeRoutes := router.Group("/recipes")
	recipeRoutes.Use(authManager.RequireLogin(), authManager.VerifyCSRF())
	{
		recipeRoutes.GET("", recipeHandler.List)
		recipeRoutes.POST("", recipeHandler.Create)
	}
}
