package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resumeforge/internal/database"
	"resumeforge/internal/store"
)

type awardRequest struct {
	Title         string         `json:"title" binding:"required,max=255"`
	Issuer        string         `json:"issuer" binding:"required,max=255"`
	IssueDate     string         `json:"issue_date" binding:"required"`
	Category      string         `json:"category" binding:"required"`
	Description   string         `json:"description"`
	ImpactMetrics map[string]any `json:"impact_metrics"`
	IsVisible     *bool          `json:"is_visible"`
}

func (r awardRequest) toInput() (store.AwardInput, error) {
	issue, err := parseDate(r.IssueDate)
	if err != nil {
		return store.AwardInput{}, err
	}
	return store.AwardInput{
		Title:         r.Title,
		Issuer:        r.Issuer,
		IssueDate:     issue,
		Category:      database.AwardCategory(r.Category),
		Description:   r.Description,
		ImpactMetrics: r.ImpactMetrics,
		IsVisible:     r.IsVisible,
	}, nil
}

// CreateAward 为简历新增奖项。
func (h *ResumeHandler) CreateAward(c *gin.Context) {
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

	var req awardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	input, err := req.toInput()
	if err != nil {
		BadRequest(c, "invalid date format, expected YYYY-MM-DD")
		return
	}

	award, err := h.store.CreateAward(c.Request.Context(), actor, resumeID, input)
	if err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}
	c.JSON(http.StatusCreated, newAwardView(*award))
}

// ListAwards 按颁发日期倒序返回奖项。
func (h *ResumeHandler) ListAwards(c *gin.Context) {
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

	rows, err := h.store.ListAwards(c.Request.Context(), actor, resumeID)
	if err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}

	items := make([]awardView, 0, len(rows))
	for _, a := range rows {
		items = append(items, newAwardView(a))
	}
	c.JSON(http.StatusOK, items)
}

// UpdateAward 覆盖奖项。
func (h *ResumeHandler) UpdateAward(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		BadRequest(c, "invalid award id")
		return
	}

	var req awardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	input, err := req.toInput()
	if err != nil {
		BadRequest(c, "invalid date format, expected YYYY-MM-DD")
		return
	}

	award, err := h.store.UpdateAward(c.Request.Context(), actor, id, input)
	if err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}
	c.JSON(http.StatusOK, newAwardView(*award))
}

// DeleteAward 删除奖项。
func (h *ResumeHandler) DeleteAward(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		BadRequest(c, "invalid award id")
		return
	}

	if err := h.store.DeleteAward(c.Request.Context(), actor, id); err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}
	c.Status(http.StatusNoContent)
}
