package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resumeforge/internal/database"
	"resumeforge/internal/store"
)

type templateRequest struct {
	Name        string         `json:"name" binding:"required,max=100"`
	Description string         `json:"description"`
	FormatType  string         `json:"format_type" binding:"required"`
	Config      map[string]any `json:"config"`
	Version     int            `json:"version"`
	IsActive    *bool          `json:"is_active"`
}

func (r templateRequest) toInput() store.TemplateInput {
	return store.TemplateInput{
		Name:        r.Name,
		Description: r.Description,
		FormatType:  database.TemplateFormat(r.FormatType),
		Config:      r.Config,
		Version:     r.Version,
		IsActive:    r.IsActive,
	}
}

// CreateTemplate 新增模板。
func (h *CatalogHandler) CreateTemplate(c *gin.Context) {
	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	tpl, err := h.store.CreateTemplate(c.Request.Context(), req.toInput())
	if err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}
	c.JSON(http.StatusCreated, newTemplateView(*tpl))
}

// ListTemplates 返回模板列表；普通用户只能看到启用中的模板。
func (h *CatalogHandler) ListTemplates(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	tpls, err := h.store.ListTemplates(c.Request.Context(), actor)
	if err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}

	items := make([]templateView, 0, len(tpls))
	for _, t := range tpls {
		items = append(items, newTemplateView(t))
	}
	c.JSON(http.StatusOK, items)
}

// GetTemplate 返回单个模板。
func (h *CatalogHandler) GetTemplate(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		BadRequest(c, "invalid template id")
		return
	}

	tpl, err := h.store.GetTemplate(c.Request.Context(), id)
	if err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}
	c.JSON(http.StatusOK, newTemplateView(*tpl))
}

// UpdateTemplate 覆盖模板内容与版本号。
func (h *CatalogHandler) UpdateTemplate(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		BadRequest(c, "invalid template id")
		return
	}

	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	tpl, err := h.store.UpdateTemplate(c.Request.Context(), id, req.toInput())
	if err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}
	c.JSON(http.StatusOK, newTemplateView(*tpl))
}

// DeactivateTemplate 停用模板，不影响既有引用。
func (h *CatalogHandler) DeactivateTemplate(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		BadRequest(c, "invalid template id")
		return
	}

	if err := h.store.DeactivateTemplate(c.Request.Context(), id); err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteTemplate 删除模板；引用它的简历退回无模板状态。
func (h *CatalogHandler) DeleteTemplate(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		BadRequest(c, "invalid template id")
		return
	}

	if err := h.store.DeleteTemplate(c.Request.Context(), id); err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}
	c.Status(http.StatusNoContent)
}
