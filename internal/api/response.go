package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"resumeforge/internal/apperr"
)

func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

func AbortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}

func Unauthorized(c *gin.Context)           { Error(c, http.StatusUnauthorized, "unauthorized") }
func BadRequest(c *gin.Context, msg string) { Error(c, http.StatusBadRequest, msg) }
func Forbidden(c *gin.Context, msg string)  { Error(c, http.StatusForbidden, msg) }
func NotFound(c *gin.Context, msg string)   { Error(c, http.StatusNotFound, msg) }
func Conflict(c *gin.Context, msg string)   { Error(c, http.StatusConflict, msg) }
func Internal(c *gin.Context, msg string)   { Error(c, http.StatusInternalServerError, msg) }

// fieldError 输出带冲突字段的错误响应，便于前端定位表单项。
func fieldError(c *gin.Context, status int, msg, field string) {
	body := gin.H{"error": msg}
	if field != "" {
		body["field"] = field
	}
	c.JSON(status, body)
}

// StoreError 把存储层的错误分类映射到 HTTP 状态码。
// 未识别的错误记录日志后按 500 返回，不向客户端泄露内部细节。
func StoreError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		NotFound(c, "not found")
	case errors.Is(err, apperr.ErrOwnershipViolation):
		Forbidden(c, "access denied")
	case errors.Is(err, apperr.ErrUniquenessViolation):
		fieldError(c, http.StatusConflict, "already exists", apperr.FieldOf(err))
	case errors.Is(err, apperr.ErrDateRangeInvalid):
		fieldError(c, http.StatusUnprocessableEntity, "end date precedes start date", apperr.FieldOf(err))
	case errors.Is(err, apperr.ErrValidationFailed):
		fieldError(c, http.StatusUnprocessableEntity, "invalid value", apperr.FieldOf(err))
	default:
		logger.Error("store operation failed", slog.Any("error", err))
		Internal(c, "internal error")
	}
}
