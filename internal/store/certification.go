package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"resumeforge/internal/apperr"
	"resumeforge/internal/database"
)

// CertificationInput 是创建/更新认证条目的字段集合。
type CertificationInput struct {
	Name            string
	Issuer          string
	IssueDate       time.Time
	ExpirationDate  *time.Time
	CredentialID    string
	VerificationURL string
	SkillIDs        []uint
}

func (in *CertificationInput) validate() error {
	if in.Name == "" {
		return apperr.Invalid("name")
	}
	if in.Issuer == "" {
		return apperr.Invalid("issuer")
	}
	if in.IssueDate.IsZero() {
		return apperr.Invalid("issue_date")
	}
	if err := validateDateRange(in.IssueDate, in.ExpirationDate); err != nil {
		return err
	}
	return validateURL("verification_url", in.VerificationURL)
}

// CreateCertification 为简历创建认证条目并绑定技术引用。
func (s *Store) CreateCertification(ctx context.Context, actor Actor, resumeID uint, in CertificationInput) (*database.Certification, error) {
	resume, err := s.resumeFor(ctx, actor, resumeID)
	if err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	cert := database.Certification{
		ResumeID:        resume.ID,
		Name:            in.Name,
		Issuer:          in.Issuer,
		IssueDate:       in.IssueDate,
		ExpirationDate:  in.ExpirationDate,
		CredentialID:    in.CredentialID,
		VerificationURL: in.VerificationURL,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		techs, err := s.technologiesByIDs(tx, in.SkillIDs)
		if err != nil {
			return err
		}
		if err := tx.Create(&cert).Error; err != nil {
			return err
		}
		if len(techs) > 0 {
			if err := tx.Model(&cert).Association("Skills").Replace(techs); err != nil {
				return fmt.Errorf("bind skills: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, writeError("create certification", err)
	}
	return &cert, nil
}

// ListCertifications 按颁发日期倒序返回认证条目。
func (s *Store) ListCertifications(ctx context.Context, actor Actor, resumeID uint) ([]database.Certification, error) {
	resume, err := s.resumeFor(ctx, actor, resumeID)
	if err != nil {
		return nil, err
	}
	var rows []database.Certification
	if err := s.db.WithContext(ctx).
		Preload("Skills").
		Where("resume_id = ?", resume.ID).
		Order("issue_date DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list certifications: %w", err)
	}
	return rows, nil
}

// UpdateCertification 覆盖认证条目并重绑技术引用。
func (s *Store) UpdateCertification(ctx context.Context, actor Actor, id uint, in CertificationInput) (*database.Certification, error) {
	var cert database.Certification
	if err := s.db.WithContext(ctx).First(&cert, id).Error; err != nil {
		return nil, notFoundOr("load certification", err)
	}
	if _, err := s.resumeFor(ctx, actor, cert.ResumeID); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		techs, err := s.technologiesByIDs(tx, in.SkillIDs)
		if err != nil {
			return err
		}
		updates := map[string]any{
			"name":             in.Name,
			"issuer":           in.Issuer,
			"issue_date":       in.IssueDate,
			"expiration_date":  in.ExpirationDate,
			"credential_id":    in.CredentialID,
			"verification_url": in.VerificationURL,
		}
		if err := tx.Model(&cert).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Model(&cert).Association("Skills").Replace(techs); err != nil {
			return fmt.Errorf("rebind skills: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, writeError("update certification", err)
	}
	return &cert, nil
}

// DeleteCertification 删除认证条目及其技术关联行。
func (s *Store) DeleteCertification(ctx context.Context, actor Actor, id uint) error {
	var cert database.Certification
	if err := s.db.WithContext(ctx).First(&cert, id).Error; err != nil {
		return notFoundOr("load certification", err)
	}
	if _, err := s.resumeFor(ctx, actor, cert.ResumeID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&cert).Association("Skills").Clear(); err != nil {
			return fmt.Errorf("clear skills: %w", err)
		}
		if err := tx.Delete(&cert).Error; err != nil {
			return fmt.Errorf("delete certification: %w", err)
		}
		return nil
	})
}
