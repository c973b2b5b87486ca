package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"resumeforge/internal/apperr"
	"resumeforge/internal/database"
)

// ProjectInput 是创建/更新项目经历的字段集合。
type ProjectInput struct {
	Title         string
	Role          string
	StartDate     time.Time
	EndDate       *time.Time
	Description   string
	Outcomes      map[string]any
	URL           string
	IsActive      *bool
	TechnologyIDs []uint
}

func (in *ProjectInput) validate() error {
	if in.Title == "" {
		return apperr.Invalid("title")
	}
	if in.Role == "" {
		return apperr.Invalid("role")
	}
	if in.Description == "" {
		return apperr.Invalid("description")
	}
	if in.StartDate.IsZero() {
		return apperr.Invalid("start_date")
	}
	if err := validateDateRange(in.StartDate, in.EndDate); err != nil {
		return err
	}
	return validateURL("url", in.URL)
}

// CreateProject 为简历创建项目经历并绑定技术引用。
func (s *Store) CreateProject(ctx context.Context, actor Actor, resumeID uint, in ProjectInput) (*database.Project, error) {
	resume, err := s.resumeFor(ctx, actor, resumeID)
	if err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	outcomes, err := jsonOrEmpty(in.Outcomes, "{}")
	if err != nil {
		return nil, err
	}

	project := database.Project{
		ResumeID:    resume.ID,
		Title:       in.Title,
		Role:        in.Role,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Description: in.Description,
		Outcomes:    outcomes,
		URL:         in.URL,
		IsActive:    in.IsActive == nil || *in.IsActive,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		techs, err := s.technologiesByIDs(tx, in.TechnologyIDs)
		if err != nil {
			return err
		}
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		if len(techs) > 0 {
			if err := tx.Model(&project).Association("Technologies").Replace(techs); err != nil {
				return fmt.Errorf("bind technologies: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, writeError("create project", err)
	}
	return &project, nil
}

// ListProjects 按开始日期倒序返回项目经历。
func (s *Store) ListProjects(ctx context.Context, actor Actor, resumeID uint) ([]database.Project, error) {
	resume, err := s.resumeFor(ctx, actor, resumeID)
	if err != nil {
		return nil, err
	}
	var rows []database.Project
	if err := s.db.WithContext(ctx).
		Preload("Technologies").
		Where("resume_id = ?", resume.ID).
		Order("start_date DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return rows, nil
}

// UpdateProject 覆盖项目经历并重绑技术引用。
func (s *Store) UpdateProject(ctx context.Context, actor Actor, id uint, in ProjectInput) (*database.Project, error) {
	var project database.Project
	if err := s.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, notFoundOr("load project", err)
	}
	if _, err := s.resumeFor(ctx, actor, project.ResumeID); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	outcomes, err := jsonOrEmpty(in.Outcomes, "{}")
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		techs, err := s.technologiesByIDs(tx, in.TechnologyIDs)
		if err != nil {
			return err
		}
		updates := map[string]any{
			"title":       in.Title,
			"role":        in.Role,
			"start_date":  in.StartDate,
			"end_date":    in.EndDate,
			"description": in.Description,
			"outcomes":    outcomes,
			"url":         in.URL,
		}
		if in.IsActive != nil {
			updates["is_active"] = *in.IsActive
		}
		if err := tx.Model(&project).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Model(&project).Association("Technologies").Replace(techs); err != nil {
			return fmt.Errorf("rebind technologies: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, writeError("update project", err)
	}
	return &project, nil
}

// DeleteProject 删除项目经历及其技术关联行。
func (s *Store) DeleteProject(ctx context.Context, actor Actor, id uint) error {
	var project database.Project
	if err := s.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return notFoundOr("load project", err)
	}
	if _, err := s.resumeFor(ctx, actor, project.ResumeID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&project).Association("Technologies").Clear(); err != nil {
			return fmt.Errorf("clear technologies: %w", err)
		}
		if err := tx.Delete(&project).Error; err != nil {
			return fmt.Errorf("delete project: %w", err)
		}
		return nil
	})
}
