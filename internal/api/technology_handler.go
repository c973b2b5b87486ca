package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"resumeforge/internal/api/middleware"
	"resumeforge/internal/database"
	"resumeforge/internal/store"
)

// CatalogHandler 负责技术目录与模板库的 API 请求。
// 写操作仅对管理员开放，由路由层的 RequireAdmin 保证。
type CatalogHandler struct {
	store  *store.Store
	logger *slog.Logger
}

// NewCatalogHandler 构造 CatalogHandler。
func NewCatalogHandler(st *store.Store, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{store: st, logger: logger}
}

func (h *CatalogHandler) loggerFrom(c *gin.Context) *slog.Logger {
	if logger := middleware.LoggerFromContext(c); logger != nil {
		return logger
	}
	return h.logger
}

type technologyRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Category string `json:"category" binding:"required"`
	Icon     string `json:"icon" binding:"max=512"`
}

func (r technologyRequest) toInput() store.TechnologyInput {
	return store.TechnologyInput{
		Name:     r.Name,
		Category: database.TechnologyCategory(r.Category),
		Icon:     r.Icon,
	}
}

// CreateTechnology 新增技术目录条目。
func (h *CatalogHandler) CreateTechnology(c *gin.Context) {
	var req technologyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	tech, err := h.store.CreateTechnology(c.Request.Context(), req.toInput())
	if err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}
	c.JSON(http.StatusCreated, newTechnologyView(*tech))
}

// ListTechnologies 返回技术目录，支持 ?category= 过滤。
func (h *CatalogHandler) ListTechnologies(c *gin.Context) {
	category := database.TechnologyCategory(c.Query("category"))

	techs, err := h.store.ListTechnologies(c.Request.Context(), category)
	if err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}

	c.JSON(http.StatusOK, newTechnologyViews(techs))
}

// GetTechnology 返回单个技术条目。
func (h *CatalogHandler) GetTechnology(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		BadRequest(c, "invalid technology id")
		return
	}

	tech, err := h.store.GetTechnology(c.Request.Context(), id)
	if err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}
	c.JSON(http.StatusOK, newTechnologyView(*tech))
}

// UpdateTechnology 覆盖技术条目。
func (h *CatalogHandler) UpdateTechnology(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		BadRequest(c, "invalid technology id")
		return
	}

	var req technologyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	tech, err := h.store.UpdateTechnology(c.Request.Context(), id, req.toInput())
	if err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}
	c.JSON(http.StatusOK, newTechnologyView(*tech))
}

// DeleteTechnology 删除技术条目并解除全部简历引用。
func (h *CatalogHandler) DeleteTechnology(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		BadRequest(c, "invalid technology id")
		return
	}

	if err := h.store.DeleteTechnology(c.Request.Context(), id); err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}
	c.Status(http.StatusNoContent)
}
