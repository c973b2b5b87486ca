package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"resumeforge/internal/api/middleware"
	"resumeforge/internal/database"
	"resumeforge/internal/store"
)

const shareTokenKeyPrefix = "share:token:"

// shareTokenClient 是分享令牌存取所需的最小 Redis 能力。
type shareTokenClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// ShareHandler 负责分享链接的签发与解析。
// 令牌只存在于 Redis，TTL 到期自动失效；简历改回私有后令牌即失效。
type ShareHandler struct {
	store    *store.Store
	redis    shareTokenClient
	logger   *slog.Logger
	tokenTTL time.Duration
}

// NewShareHandler 构造 ShareHandler。
func NewShareHandler(st *store.Store, redisClient shareTokenClient, logger *slog.Logger, tokenTTL time.Duration) *ShareHandler {
	return &ShareHandler{
		store:    st,
		redis:    redisClient,
		logger:   logger,
		tokenTTL: tokenTTL,
	}
}

func (h *ShareHandler) loggerFrom(c *gin.Context) *slog.Logger {
	if logger := middleware.LoggerFromContext(c); logger != nil {
		return logger
	}
	return h.logger
}

// CreateShareLink 为简历签发分享令牌。
// 仅属主/管理员可签发，且简历须处于 shared 或 public 可见性。
func (h *ShareHandler) CreateShareLink(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	resumeID, ok := uintParam(c, "id")
	if !ok {
		BadRequest(c, "invalid resume id")
		return
	}

	ctx := c.Request.Context()
	resume, err := h.store.OwnedResume(ctx, actor, resumeID)
	if err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}
	if resume.Visibility == database.VisibilityPrivate {
		BadRequest(c, "resume is private, set visibility to shared first")
		return
	}

	token := uuid.NewString()
	key := shareTokenKeyPrefix + token
	if err := h.redis.Set(ctx, key, resume.Slug, h.tokenTTL).Err(); err != nil {
		h.loggerFrom(c).Error("store share token failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":      token,
		"expires_in": int(h.tokenTTL.Seconds()),
	})
}

// ResolveShareLink 匿名访问分享令牌对应的简历。
func (h *ShareHandler) ResolveShareLink(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		BadRequest(c, "missing token")
		return
	}

	ctx := c.Request.Context()
	slug, err := h.redis.Get(ctx, shareTokenKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			NotFound(c, "share link expired or unknown")
			return
		}
		h.loggerFrom(c).Error("share token lookup failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	resume, err := h.store.GetSharedResume(ctx, slug)
	if err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}

	c.JSON(http.StatusOK, newResumeView(resume))
}

// RevokeShareLink 删除分享令牌。
// 令牌必须指向本简历，否则按不存在处理，防止借自己的简历撤销他人的令牌。
func (h *ShareHandler) RevokeShareLink(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	resumeID, ok := uintParam(c, "id")
	if !ok {
		BadRequest(c, "invalid resume id")
		return
	}

	ctx := c.Request.Context()
	resume, err := h.store.OwnedResume(ctx, actor, resumeID)
	if err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}

	token := c.Param("token")
	if token == "" {
		BadRequest(c, "missing token")
		return
	}

	key := shareTokenKeyPrefix + token
	slug, err := h.redis.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			NotFound(c, "share link expired or unknown")
			return
		}
		h.loggerFrom(c).Error("share token lookup failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}
	if slug != resume.Slug {
		NotFound(c, "share link expired or unknown")
		return
	}

	if err := h.redis.Del(ctx, key).Err(); err != nil {
		h.loggerFrom(c).Error("revoke share token failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}
	c.Status(http.StatusNoContent)
}
