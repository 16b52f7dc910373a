// Package middleware はリクエストID付与とアクセスログの Gin ミドルウェアを提供します。
package middleware

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader はリクエストIDを受け渡すヘッダー名です。
const RequestIDHeader = "X-Request-ID"

const (
	requestIDContextKey = "request_id"
	loggerContextKey    = "logger"
	maxRequestIDLength  = 128
)

// RequestIDFromContext はリクエストIDを返します。未設定なら空文字列です。
func RequestIDFromContext(c *gin.Context) string {
	return c.GetString(requestIDContextKey)
}

// LoggerFrom はリクエストIDを付与したロガーを返します。
// RequestLogger を通っていないリクエストでは fallback（nil なら slog.Default）を返します。
func LoggerFrom(c *gin.Context, fallback *slog.Logger) *slog.Logger {
	if v, ok := c.Get(loggerContextKey); ok {
		if logger, ok := v.(*slog.Logger); ok {
			return logger
		}
	}
	if fallback != nil {
		return fallback
	}
	return slog.Default()
}

// RequestLogger はリクエストIDをコンテキストとレスポンスヘッダーに設定し、
// 完了したリクエストを構造化ログに出力します。
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *gin.Context) {
		startedAt := time.Now()
		requestID := normalizeRequestID(c.GetHeader(RequestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}

		reqLogger := logger.With(slog.String("request_id", requestID))
		c.Set(requestIDContextKey, requestID)
		c.Set(loggerContextKey, reqLogger)
		c.Writer.Header().Set(RequestIDHeader, requestID)

		c.Next()

		reqLogger.InfoContext(c.Request.Context(), "request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", c.Writer.Status()),
			slog.Float64("latency_ms", float64(time.Since(startedAt).Microseconds())/1000.0),
			slog.String("client_ip", c.ClientIP()),
		)
	}
}

func normalizeRequestID(raw string) string {
	candidate := strings.TrimSpace(raw)
	if len(candidate) > maxRequestIDLength {
		candidate = candidate[:maxRequestIDLength]
	}
	return candidate
}
