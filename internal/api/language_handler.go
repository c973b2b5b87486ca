package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resumeforge/internal/database"
	"resumeforge/internal/store"
)

type languageRequest struct {
	Name          string `json:"name" binding:"required,max=50"`
	Proficiency   string `json:"proficiency" binding:"required"`
	Certification string `json:"certification" binding:"max=100"`
	IsVisible     *bool  `json:"is_visible"`
}

func (r languageRequest) toInput() store.SpokenLanguageInput {
	return store.SpokenLanguageInput{
		Name:          r.Name,
		Proficiency:   database.LanguageProficiency(r.Proficiency),
		Certification: r.Certification,
		IsVisible:     r.IsVisible,
	}
}

// CreateSpokenLanguage 为简历新增语言能力。
func (h *ResumeHandler) CreateSpokenLanguage(c *gin.Context) {
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

	var req languageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	lang, err := h.store.CreateSpokenLanguage(c.Request.Context(), actor, resumeID, req.toInput())
	if err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}
	c.JSON(http.StatusCreated, newLanguageView(*lang))
}

// ListSpokenLanguages 返回语言能力列表。
func (h *ResumeHandler) ListSpokenLanguages(c *gin.Context) {
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

	rows, err := h.store.ListSpokenLanguages(c.Request.Context(), actor, resumeID)
	if err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}

	items := make([]languageView, 0, len(rows))
	for _, l := range rows {
		items = append(items, newLanguageView(l))
	}
	c.JSON(http.StatusOK, items)
}

// UpdateSpokenLanguage 覆盖语言能力条目。
func (h *ResumeHandler) UpdateSpokenLanguage(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		BadRequest(c, "invalid language id")
		return
	}

	var req languageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	lang, err := h.store.UpdateSpokenLanguage(c.Request.Context(), actor, id, req.toInput())
	if err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}
	c.JSON(http.StatusOK, newLanguageView(*lang))
}

// DeleteSpokenLanguage 删除语言能力条目。
func (h *ResumeHandler) DeleteSpokenLanguage(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		BadRequest(c, "invalid language id")
		return
	}

	if err := h.store.DeleteSpokenLanguage(c.Request.Context(), actor, id); err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}
	c.Status(http.StatusNoContent)
}
