package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resumeforge/internal/store"
)

type educationRequest struct {
	Degree      string   `json:"degree" binding:"required,max=255"`
	Institution string   `json:"institution" binding:"required,max=255"`
	Location    string   `json:"location" binding:"max=255"`
	StartDate   string   `json:"start_date" binding:"required"`
	EndDate     string   `json:"end_date" binding:"required"`
	GPA         *float64 `json:"gpa"`
	Description string   `json:"description"`
	IsVisible   *bool    `json:"is_visible"`
}

func (r educationRequest) toInput() (store.EducationInput, error) {
	start, err := parseDate(r.StartDate)
	if err != nil {
		return store.EducationInput{}, err
	}
	end, err := parseDate(r.EndDate)
	if err != nil {
		return store.EducationInput{}, err
	}
	return store.EducationInput{
		Degree:      r.Degree,
		Institution: r.Institution,
		Location:    r.Location,
		StartDate:   start,
		EndDate:     end,
		GPA:         r.GPA,
		Description: r.Description,
		IsVisible:   r.IsVisible,
	}, nil
}

// CreateEducation 为简历新增教育经历。
func (h *ResumeHandler) CreateEducation(c *gin.Context) {
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

	var req educationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	input, err := req.toInput()
	if err != nil {
		BadRequest(c, "invalid date format, expected YYYY-MM-DD")
		return
	}

	edu, err := h.store.CreateEducation(c.Request.Context(), actor, resumeID, input)
	if err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}
	c.JSON(http.StatusCreated, newEducationView(*edu))
}

// ListEducations 按结束日期倒序返回教育经历。
func (h *ResumeHandler) ListEducations(c *gin.Context) {
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

	rows, err := h.store.ListEducations(c.Request.Context(), actor, resumeID)
	if err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}

	items := make([]educationView, 0, len(rows))
	for _, e := range rows {
		items = append(items, newEducationView(e))
	}
	c.JSON(http.StatusOK, items)
}

// UpdateEducation 覆盖教育经历。
func (h *ResumeHandler) UpdateEducation(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		BadRequest(c, "invalid education id")
		return
	}

	var req educationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	input, err := req.toInput()
	if err != nil {
		BadRequest(c, "invalid date format, expected YYYY-MM-DD")
		return
	}

	edu, err := h.store.UpdateEducation(c.Request.Context(), actor, id, input)
	if err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}
	c.JSON(http.StatusOK, newEducationView(*edu))
}

// DeleteEducation 删除教育经历。
func (h *ResumeHandler) DeleteEducation(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		BadRequest(c, "invalid education id")
		return
	}

	if err := h.store.DeleteEducation(c.Request.Context(), actor, id); err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}
	c.Status(http.StatusNoContent)
}
