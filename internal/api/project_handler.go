package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resumeforge/internal/store"
)

type projectRequest struct {
	Title         string         `json:"title" binding:"required,max=255"`
	Role          string         `json:"role" binding:"required,max=255"`
	StartDate     string         `json:"start_date" binding:"required"`
	EndDate       string         `json:"end_date"`
	Description   string         `json:"description" binding:"required"`
	Outcomes      map[string]any `json:"outcomes"`
	URL           string         `json:"url" binding:"max=512"`
	IsActive      *bool          `json:"is_active"`
	TechnologyIDs []uint         `json:"technology_ids"`
}

func (r projectRequest) toInput() (store.ProjectInput, error) {
	start, err := parseDate(r.StartDate)
	if err != nil {
		return store.ProjectInput{}, err
	}
	end, err := parseDatePtr(r.EndDate)
	if err != nil {
		return store.ProjectInput{}, err
	}
	return store.ProjectInput{
		Title:         r.Title,
		Role:          r.Role,
		StartDate:     start,
		EndDate:       end,
		Description:   r.Description,
		Outcomes:      r.Outcomes,
		URL:           r.URL,
		IsActive:      r.IsActive,
		TechnologyIDs: r.TechnologyIDs,
	}, nil
}

// CreateProject 为简历新增项目经历。
func (h *ResumeHandler) CreateProject(c *gin.Context) {
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

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	input, err := req.toInput()
	if err != nil {
		BadRequest(c, "invalid date format, expected YYYY-MM-DD")
		return
	}

	project, err := h.store.CreateProject(c.Request.Context(), actor, resumeID, input)
	if err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}
	c.JSON(http.StatusCreated, newProjectView(*project))
}

// ListProjects 按开始日期倒序返回项目经历。
func (h *ResumeHandler) ListProjects(c *gin.Context) {
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

	rows, err := h.store.ListProjects(c.Request.Context(), actor, resumeID)
	if err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}

	items := make([]projectView, 0, len(rows))
	for _, p := range rows {
		items = append(items, newProjectView(p))
	}
	c.JSON(http.StatusOK, items)
}

// UpdateProject 覆盖项目经历并重绑技术引用。
func (h *ResumeHandler) UpdateProject(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		BadRequest(c, "invalid project id")
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	input, err := req.toInput()
	if err != nil {
		BadRequest(c, "invalid date format, expected YYYY-MM-DD")
		return
	}

	project, err := h.store.UpdateProject(c.Request.Context(), actor, id, input)
	if err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}
	c.JSON(http.StatusOK, newProjectView(*project))
}

// DeleteProject 删除项目经历及其技术关联行。
func (h *ResumeHandler) DeleteProject(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		BadRequest(c, "invalid project id")
		return
	}

	if err := h.store.DeleteProject(c.Request.Context(), actor, id); err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}
	c.Status(http.StatusNoContent)
}
