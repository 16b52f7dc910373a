// Package apierr は API のエラー分類と JSON レスポンスへの変換を提供します。
package apierr

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/recipe-box/internal/middleware"
	"github.com/yourusername/recipe-box/internal/models"
)

// Error はクライアントへ返すエラーです。
// Field が空でなければ {Field: [Message]} 形式、空なら {"error": Message} 形式で返します。
// Err は原因としてログにのみ出力され、レスポンスには含めません。
type Error struct {
	Status  int
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Unauthorized は認証エラー（401）を返します。
func Unauthorized(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message}
}

// Unprocessable は入力や整合性のエラー（422）を返します。
func Unprocessable(message string, cause error) *Error {
	return &Error{Status: http.StatusUnprocessableEntity, Message: message, Err: cause}
}

// Conflict は一意制約違反を field に紐づけた 422 エラーを返します。
func Conflict(field, message string, cause error) *Error {
	return &Error{Status: http.StatusUnprocessableEntity, Field: field, Message: message, Err: cause}
}

// Internal は想定外のエラー（500）を返します。
func Internal(cause error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: "Unexpected server error.", Err: cause}
}

// Respond は err を分類してレスポンスを書き込み、処理を中断します。
// logger はリクエスト単位のロガーが無い場合にのみ使われます。
func Respond(c *gin.Context, logger *slog.Logger, err error) {
	logger = middleware.LoggerFrom(c, logger)
	var (
		verrs  models.ValidationErrors
		apiErr *Error
	)
	switch {
	case errors.As(err, &verrs):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, verrs)
	case errors.As(err, &apiErr):
		if apiErr.Err != nil {
			logger.WarnContext(c.Request.Context(), "request failed",
				slog.Int("status", apiErr.Status),
				slog.String("path", c.FullPath()),
				slog.Any("error", apiErr.Err),
			)
		}
		if apiErr.Field != "" {
			c.AbortWithStatusJSON(apiErr.Status, gin.H{apiErr.Field: []string{apiErr.Message}})
			return
		}
		c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr.Message})
	default:
		logger.ErrorContext(c.Request.Context(), "unhandled error",
			slog.String("path", c.FullPath()),
			slog.Any("error", err),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unexpected server error."})
	}
}
