package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resumeforge/internal/store"
)

type experienceRequest struct {
	JobTitle      string   `json:"job_title" binding:"required,max=255"`
	Company       string   `json:"company" binding:"required,max=255"`
	Location      string   `json:"location" binding:"max=255"`
	StartDate     string   `json:"start_date" binding:"required"`
	EndDate       string   `json:"end_date"`
	IsCurrent     bool     `json:"is_current"`
	Description   string   `json:"description"`
	Achievements  []string `json:"achievements"`
	TechnologyIDs []uint   `json:"technology_ids"`
}

func (r experienceRequest) toInput() (store.WorkExperienceInput, error) {
	start, err := parseDate(r.StartDate)
	if err != nil {
		return store.WorkExperienceInput{}, err
	}
	end, err := parseDatePtr(r.EndDate)
	if err != nil {
		return store.WorkExperienceInput{}, err
	}
	return store.WorkExperienceInput{
		JobTitle:      r.JobTitle,
		Company:       r.Company,
		Location:      r.Location,
		StartDate:     start,
		EndDate:       end,
		IsCurrent:     r.IsCurrent,
		Description:   r.Description,
		Achievements:  r.Achievements,
		TechnologyIDs: r.TechnologyIDs,
	}, nil
}

// CreateWorkExperience 为简历新增工作经历。
func (h *ResumeHandler) CreateWorkExperience(c *gin.Context) {
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

	var req experienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	input, err := req.toInput()
	if err != nil {
		BadRequest(c, "invalid date format, expected YYYY-MM-DD")
		return
	}

	exp, err := h.store.CreateWorkExperience(c.Request.Context(), actor, resumeID, input)
	if err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}
	c.JSON(http.StatusCreated, newExperienceView(*exp))
}

// ListWorkExperiences 按开始日期倒序返回工作经历。
func (h *ResumeHandler) ListWorkExperiences(c *gin.Context) {
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

	rows, err := h.store.ListWorkExperiences(c.Request.Context(), actor, resumeID)
	if err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}

	items := make([]experienceView, 0, len(rows))
	for _, e := range rows {
		items = append(items, newExperienceView(e))
	}
	c.JSON(http.StatusOK, items)
}

// UpdateWorkExperience 覆盖工作经历并重绑技术引用。
func (h *ResumeHandler) UpdateWorkExperience(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		BadRequest(c, "invalid experience id")
		return
	}

	var req experienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	input, err := req.toInput()
	if err != nil {
		BadRequest(c, "invalid date format, expected YYYY-MM-DD")
		return
	}

	exp, err := h.store.UpdateWorkExperience(c.Request.Context(), actor, id, input)
	if err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}
	c.JSON(http.StatusOK, newExperienceView(*exp))
}

// DeleteWorkExperience 删除工作经历及其技术关联行。
func (h *ResumeHandler) DeleteWorkExperience(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		BadRequest(c, "invalid experience id")
		return
	}

	if err := h.store.DeleteWorkExperience(c.Request.Context(), actor, id); err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}
	c.Status(http.StatusNoContent)
}
