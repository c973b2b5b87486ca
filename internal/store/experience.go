package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"resumeforge/internal/apperr"
	"resumeforge/internal/database"
)

// WorkExperienceInput 是创建/更新工作经历的字段集合。
type WorkExperienceInput struct {
	JobTitle      string
	Company       string
	Location      string
	StartDate     time.Time
	EndDate       *time.Time
	IsCurrent     bool
	Description   string
	Achievements  []string
	TechnologyIDs []uint
}

func (in *WorkExperienceInput) validate() error {
	if in.JobTitle == "" {
		return apperr.Invalid("job_title")
	}
	if in.Company == "" {
		return apperr.Invalid("company")
	}
	if in.StartDate.IsZero() {
		return apperr.Invalid("start_date")
	}
	// 与教育/项目保持同一日期规则；在职条目不填结束日期即可。
	return validateDateRange(in.StartDate, in.EndDate)
}

// CreateWorkExperience 为简历创建工作经历并绑定技术引用。
func (s *Store) CreateWorkExperience(ctx context.Context, actor Actor, resumeID uint, in WorkExperienceInput) (*database.WorkExperience, error) {
	resume, err := s.resumeFor(ctx, actor, resumeID)
	if err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	achievements, err := jsonOrEmpty(in.Achievements, "[]")
	if err != nil {
		return nil, err
	}

	exp := database.WorkExperience{
		ResumeID:     resume.ID,
		JobTitle:     in.JobTitle,
		Company:      in.Company,
		Location:     in.Location,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		IsCurrent:    in.IsCurrent,
		Description:  in.Description,
		Achievements: achievements,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		techs, err := s.technologiesByIDs(tx, in.TechnologyIDs)
		if err != nil {
			return err
		}
		if err := tx.Create(&exp).Error; err != nil {
			return err
		}
		if len(techs) > 0 {
			if err := tx.Model(&exp).Association("Technologies").Replace(techs); err != nil {
				return fmt.Errorf("bind technologies: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, writeError("create work experience", err)
	}
	return &exp, nil
}

// ListWorkExperiences 按开始日期倒序返回工作经历。
func (s *Store) ListWorkExperiences(ctx context.Context, actor Actor, resumeID uint) ([]database.WorkExperience, error) {
	resume, err := s.resumeFor(ctx, actor, resumeID)
	if err != nil {
		return nil, err
	}
	var exps []database.WorkExperience
	if err := s.db.WithContext(ctx).
		Preload("Technologies").
		Where("resume_id = ?", resume.ID).
		Order("start_date DESC").
		Find(&exps).Error; err != nil {
		return nil, fmt.Errorf("list work experiences: %w", err)
	}
	return exps, nil
}

// UpdateWorkExperience 覆盖工作经历并重绑技术引用。
func (s *Store) UpdateWorkExperience(ctx context.Context, actor Actor, id uint, in WorkExperienceInput) (*database.WorkExperience, error) {
	var exp database.WorkExperience
	if err := s.db.WithContext(ctx).First(&exp, id).Error; err != nil {
		return nil, notFoundOr("load work experience", err)
	}
	if _, err := s.resumeFor(ctx, actor, exp.ResumeID); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	achievements, err := jsonOrEmpty(in.Achievements, "[]")
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		techs, err := s.technologiesByIDs(tx, in.TechnologyIDs)
		if err != nil {
			return err
		}
		updates := map[string]any{
			"job_title":    in.JobTitle,
			"company":      in.Company,
			"location":     in.Location,
			"start_date":   in.StartDate,
			"end_date":     in.EndDate,
			"is_current":   in.IsCurrent,
			"description":  in.Description,
			"achievements": achievements,
		}
		if err := tx.Model(&exp).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Model(&exp).Association("Technologies").Replace(techs); err != nil {
			return fmt.Errorf("rebind technologies: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, writeError("update work experience", err)
	}
	return &exp, nil
}

// DeleteWorkExperience 删除工作经历及其技术关联行。
func (s *Store) DeleteWorkExperience(ctx context.Context, actor Actor, id uint) error {
	var exp database.WorkExperience
	if err := s.db.WithContext(ctx).First(&exp, id).Error; err != nil {
		return notFoundOr("load work experience", err)
	}
	if _, err := s.resumeFor(ctx, actor, exp.ResumeID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&exp).Association("Technologies").Clear(); err != nil {
			return fmt.Errorf("clear technologies: %w", err)
		}
		if err := tx.Delete(&exp).Error; err != nil {
			return fmt.Errorf("delete work experience: %w", err)
		}
		return nil
	})
}
