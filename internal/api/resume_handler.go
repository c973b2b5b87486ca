package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resumeforge/internal/api/middleware"
	"resumeforge/internal/database"
	"resumeforge/internal/store"
)

// ResumeHandler 负责简历聚合及其子集合的 API 请求。
// 归属与可见性判断全部下沉到存储层，这里只做绑定与翻译。
type ResumeHandler struct {
	store  *store.Store
	logger *slog.Logger
}

// NewResumeHandler 构造 ResumeHandler。
func NewResumeHandler(st *store.Store, logger *slog.Logger) *ResumeHandler {
	return &ResumeHandler{store: st, logger: logger}
}

func (h *ResumeHandler) loggerFrom(c *gin.Context) *slog.Logger {
	if logger := middleware.LoggerFromContext(c); logger != nil {
		return logger
	}
	return h.logger
}

type resumeRequest struct {
	Title        string   `json:"title" binding:"required,max=255"`
	Slug         string   `json:"slug" binding:"required,max=300"`
	Summary      string   `json:"summary"`
	Tags         []string `json:"tags"`
	TemplateID   *uint    `json:"template_id"`
	LanguageCode string   `json:"language_code"`
	Visibility   string   `json:"visibility" binding:"omitempty,oneof=private public shared"`
}

func (r resumeRequest) toInput() store.ResumeInput {
	return store.ResumeInput{
		Title:        r.Title,
		Slug:         r.Slug,
		Summary:      r.Summary,
		Tags:         r.Tags,
		TemplateID:   r.TemplateID,
		LanguageCode: r.LanguageCode,
		Visibility:   database.Visibility(r.Visibility),
	}
}

// CreateResume 创建一份简历。
func (h *ResumeHandler) CreateResume(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var req resumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	resume, err := h.store.CreateResume(c.Request.Context(), actor, req.toInput())
	if err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}

	c.JSON(http.StatusCreated, newResumeListItem(*resume))
}

// ListResumes 列出操作者的简历（管理员可见全部）。
func (h *ResumeHandler) ListResumes(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	// user_id 过滤仅对管理员生效。
	var ownerID uint
	if raw := c.Query("user_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			BadRequest(c, "invalid user_id")
			return
		}
		ownerID = uint(parsed)
	}

	resumes, err := h.store.ListResumes(c.Request.Context(), actor, ownerID)
	if err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}

	items := make([]resumeListItem, 0, len(resumes))
	for _, r := range resumes {
		items = append(items, newResumeListItem(r))
	}
	c.JSON(http.StatusOK, items)
}

// GetResume 返回简历详情，含按序排列的全部子集合。
func (h *ResumeHandler) GetResume(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		BadRequest(c, "invalid resume id")
		return
	}

	resume, err := h.store.GetResume(c.Request.Context(), actor, id)
	if err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}

	c.JSON(http.StatusOK, newResumeView(resume))
}

// UpdateResume 覆盖简历的可变字段。
func (h *ResumeHandler) UpdateResume(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		BadRequest(c, "invalid resume id")
		return
	}

	var req resumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	resume, err := h.store.UpdateResume(c.Request.Context(), actor, id, req.toInput())
	if err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}

	c.JSON(http.StatusOK, newResumeListItem(*resume))
}

// DeleteResume 级联删除简历及其全部子集合。
func (h *ResumeHandler) DeleteResume(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		BadRequest(c, "invalid resume id")
		return
	}

	if err := h.store.DeleteResume(c.Request.Context(), actor, id); err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetPublicResume 匿名访问公开简历。
func (h *ResumeHandler) GetPublicResume(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		BadRequest(c, "missing slug")
		return
	}

	resume, err := h.store.GetPublicResume(c.Request.Context(), slug)
	if err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}

	c.JSON(http.StatusOK, newResumeView(resume))
}
