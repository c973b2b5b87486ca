package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resumeforge/internal/store"
)

type certificationRequest struct {
	Name            string `json:"name" binding:"required,max=255"`
	Issuer          string `json:"issuer" binding:"required,max=255"`
	IssueDate       string `json:"issue_date" binding:"required"`
	ExpirationDate  string `json:"expiration_date"`
	CredentialID    string `json:"credential_id" binding:"max=100"`
	VerificationURL string `json:"verification_url" binding:"max=512"`
	SkillIDs        []uint `json:"skill_ids"`
}

func (r certificationRequest) toInput() (store.CertificationInput, error) {
	issue, err := parseDate(r.IssueDate)
	if err != nil {
		return store.CertificationInput{}, err
	}
	expiration, err := parseDatePtr(r.ExpirationDate)
	if err != nil {
		return store.CertificationInput{}, err
	}
	return store.CertificationInput{
		Name:            r.Name,
		Issuer:          r.Issuer,
		IssueDate:       issue,
		ExpirationDate:  expiration,
		CredentialID:    r.CredentialID,
		VerificationURL: r.VerificationURL,
		SkillIDs:        r.SkillIDs,
	}, nil
}

// CreateCertification 为简历新增认证。
func (h *ResumeHandler) CreateCertification(c *gin.Context) {
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

	var req certificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	input, err := req.toInput()
	if err != nil {
		BadRequest(c, "invalid date format, expected YYYY-MM-DD")
		return
	}

	cert, err := h.store.CreateCertification(c.Request.Context(), actor, resumeID, input)
	if err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}
	c.JSON(http.StatusCreated, newCertificationView(*cert))
}

// ListCertifications 按颁发日期倒序返回认证。
func (h *ResumeHandler) ListCertifications(c *gin.Context) {
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

	rows, err := h.store.ListCertifications(c.Request.Context(), actor, resumeID)
	if err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}

	items := make([]certificationView, 0, len(rows))
	for _, cert := range rows {
		items = append(items, newCertificationView(cert))
	}
	c.JSON(http.StatusOK, items)
}

// UpdateCertification 覆盖认证并重绑技术引用。
func (h *ResumeHandler) UpdateCertification(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		BadRequest(c, "invalid certification id")
		return
	}

	var req certificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	input, err := req.toInput()
	if err != nil {
		BadRequest(c, "invalid date format, expected YYYY-MM-DD")
		return
	}

	cert, err := h.store.UpdateCertification(c.Request.Context(), actor, id, input)
	if err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}
	c.JSON(http.StatusOK, newCertificationView(*cert))
}

// DeleteCertification 删除认证及其技术关联行。
func (h *ResumeHandler) DeleteCertification(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		BadRequest(c, "invalid certification id")
		return
	}

	if err := h.store.DeleteCertification(c.Request.Context(), actor, id); err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}
	c.Status(http.StatusNoContent)
}
