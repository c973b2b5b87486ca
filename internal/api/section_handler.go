package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resumeforge/internal/database"
	"resumeforge/internal/store"
)

type sectionRequest struct {
	SectionType string         `json:"section_type" binding:"required"`
	Title       string         `json:"title" binding:"required,max=100"`
	Content     map[string]any `json:"content"`
	SortOrder   int            `json:"sort_order"`
	IsVisible   *bool          `json:"is_visible"`
}

func (r sectionRequest) toInput() store.SectionInput {
	return store.SectionInput{
		SectionType: database.SectionType(r.SectionType),
		Title:       r.Title,
		Content:     r.Content,
		SortOrder:   r.SortOrder,
		IsVisible:   r.IsVisible,
	}
}

// CreateSection 为简历新增章节。
func (h *ResumeHandler) CreateSection(c *gin.Context) {
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

	var req sectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	section, err := h.store.CreateSection(c.Request.Context(), actor, resumeID, req.toInput())
	if err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}
	c.JSON(http.StatusCreated, newSectionView(*section))
}

// ListSections 按手工排序返回章节。
func (h *ResumeHandler) ListSections(c *gin.Context) {
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

	sections, err := h.store.ListSections(c.Request.Context(), actor, resumeID)
	if err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}

	items := make([]sectionView, 0, len(sections))
	for _, s := range sections {
		items = append(items, newSectionView(s))
	}
	c.JSON(http.StatusOK, items)
}

// UpdateSection 覆盖章节。
func (h *ResumeHandler) UpdateSection(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		BadRequest(c, "invalid section id")
		return
	}

	var req sectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	section, err := h.store.UpdateSection(c.Request.Context(), actor, id, req.toInput())
	if err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}
	c.JSON(http.StatusOK, newSectionView(*section))
}

// DeleteSection 删除章节。
func (h *ResumeHandler) DeleteSection(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		BadRequest(c, "invalid section id")
		return
	}

	if err := h.store.DeleteSection(c.Request.Context(), actor, id); err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}
	c.Status(http.StatusNoContent)
}
