package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"resumeforge/internal/apperr"
	"resumeforge/internal/database"
)

// TechnologyInput 是创建/更新技术目录条目的字段集合。
type TechnologyInput struct {
	Name     string
	Category database.TechnologyCategory
	Icon     string
}

func (in *TechnologyInput) validate() error {
	if in.Name == "" {
		return apperr.Invalid("name")
	}
	if !in.Category.Valid() {
		return apperr.Invalid("category")
	}
	return nil
}

// CreateTechnology 创建全局技术条目，名称冲突返回 UniquenessViolation。
func (s *Store) CreateTechnology(ctx context.Context, in TechnologyInput) (*database.Technology, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	tech := database.Technology{
		Name:     in.Name,
		Category: in.Category,
		Icon:     in.Icon,
	}
	if err := s.db.WithContext(ctx).Create(&tech).Error; err != nil {
		return nil, writeError("create technology", err)
	}
	return &tech, nil
}

// GetTechnology 按 ID 返回技术条目。
func (s *Store) GetTechnology(ctx context.Context, id uint) (*database.Technology, error) {
	var tech database.Technology
	if err := s.db.WithContext(ctx).First(&tech, id).Error; err != nil {
		return nil, notFoundOr("load technology", err)
	}
	return &tech, nil
}

// ListTechnologies 按名称正序返回技术目录，可按分类过滤。
func (s *Store) ListTechnologies(ctx context.Context, category database.TechnologyCategory) ([]database.Technology, error) {
	tx := s.db.WithContext(ctx).Order("name")
	if category != "" {
		if !category.Valid() {
			return nil, apperr.Invalid("category")
		}
		tx = tx.Where("category = ?", category)
	}
	var techs []database.Technology
	if err := tx.Find(&techs).Error; err != nil {
		return nil, fmt.Errorf("list technologies: %w", err)
	}
	return techs, nil
}

// UpdateTechnology 覆盖技术条目；改名仍受唯一约束保护。
func (s *Store) UpdateTechnology(ctx context.Context, id uint, in TechnologyInput) (*database.Technology, error) {
	var tech database.Technology
	if err := s.db.WithContext(ctx).First(&tech, id).Error; err != nil {
		return nil, notFoundOr("load technology", err)
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	updates := map[string]any{
		"name":     in.Name,
		"category": in.Category,
		"icon":     in.Icon,
	}
	if err := s.db.WithContext(ctx).Model(&tech).Updates(updates).Error; err != nil {
		return nil, writeError("update technology", err)
	}
	return &tech, nil
}

// DeleteTechnology 删除技术条目。
// 经历/项目/认证中的集合引用仅解除关联；TechnicalSkill 作为连接实体
// 没有独立意义，随技术一并删除。
func (s *Store) DeleteTechnology(ctx context.Context, id uint) error {
	var tech database.Technology
	if err := s.db.WithContext(ctx).First(&tech, id).Error; err != nil {
		return notFoundOr("load technology", err)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		joins := []string{
			"DELETE FROM work_experience_technologies WHERE technology_id = ?",
			"DELETE FROM project_technologies WHERE technology_id = ?",
			"DELETE FROM certification_skills WHERE technology_id = ?",
		}
		for _, stmt := range joins {
			if err := tx.Exec(stmt, tech.ID).Error; err != nil {
				return fmt.Errorf("detach technology: %w", err)
			}
		}
		if err := tx.Where("technology_id = ?", tech.ID).Delete(&database.TechnicalSkill{}).Error; err != nil {
			return fmt.Errorf("delete skill entries: %w", err)
		}
		if err := tx.Delete(&tech).Error; err != nil {
			return fmt.Errorf("delete technology: %w", err)
		}
		return nil
	})
}
