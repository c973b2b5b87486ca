package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resumeforge/internal/store"
)

type skillRequest struct {
	TechnologyID    uint   `json:"technology_id" binding:"required"`
	Proficiency     int    `json:"proficiency" binding:"required"`
	YearsExperience int    `json:"years_experience"`
	LastUsed        string `json:"last_used"`
	ProjectCount    int    `json:"project_count"`
	IsVisible       *bool  `json:"is_visible"`
}

func (r skillRequest) toInput() (store.TechnicalSkillInput, error) {
	lastUsed, err := parseDatePtr(r.LastUsed)
	if err != nil {
		return store.TechnicalSkillInput{}, err
	}
	return store.TechnicalSkillInput{
		TechnologyID:    r.TechnologyID,
		Proficiency:     r.Proficiency,
		YearsExperience: r.YearsExperience,
		LastUsed:        lastUsed,
		ProjectCount:    r.ProjectCount,
		IsVisible:       r.IsVisible,
	}, nil
}

// CreateTechnicalSkill 为简历关联一项技术并记录熟练度。
func (h *ResumeHandler) CreateTechnicalSkill(c *gin.Context) {
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

	var req skillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	input, err := req.toInput()
	if err != nil {
		BadRequest(c, "invalid date format, expected YYYY-MM-DD")
		return
	}

	skill, err := h.store.CreateTechnicalSkill(c.Request.Context(), actor, resumeID, input)
	if err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}
	c.JSON(http.StatusCreated, newSkillView(*skill))
}

// ListTechnicalSkills 按熟练度倒序、技术名正序返回技能。
func (h *ResumeHandler) ListTechnicalSkills(c *gin.Context) {
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

	rows, err := h.store.ListTechnicalSkills(c.Request.Context(), actor, resumeID)
	if err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}

	items := make([]skillView, 0, len(rows))
	for _, s := range rows {
		items = append(items, newSkillView(s))
	}
	c.JSON(http.StatusOK, items)
}

// UpdateTechnicalSkill 覆盖技能条目；技术引用不可变。
func (h *ResumeHandler) UpdateTechnicalSkill(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		BadRequest(c, "invalid skill id")
		return
	}

	var req skillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	input, err := req.toInput()
	if err != nil {
		BadRequest(c, "invalid date format, expected YYYY-MM-DD")
		return
	}

	skill, err := h.store.UpdateTechnicalSkill(c.Request.Context(), actor, id, input)
	if err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}
	c.JSON(http.StatusOK, newSkillView(*skill))
}

// DeleteTechnicalSkill 删除技能条目。
func (h *ResumeHandler) DeleteTechnicalSkill(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		BadRequest(c, "invalid skill id")
		return
	}

	if err := h.store.DeleteTechnicalSkill(c.Request.Context(), actor, id); err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}
	c.Status(http.StatusNoContent)
}
