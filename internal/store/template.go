package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"resumeforge/internal/apperr"
	"resumeforge/internal/database"
)

// TemplateInput 是创建/更新模板的字段集合。
// version 由调用方提供，存储层仅要求为正数，不强制单调递增。
type TemplateInput struct {
	Name        string
	Description string
	FormatType  database.TemplateFormat
	Config      map[string]any
	Version     int
	IsActive    *bool
}

func (in *TemplateInput) normalize() {
	if in.Version == 0 {
		in.Version = 1
	}
}

func (in *TemplateInput) validate() error {
	if in.Name == "" {
		return apperr.Invalid("name")
	}
	if !in.FormatType.Valid() {
		return apperr.Invalid("format_type")
	}
	if in.Version < 1 {
		return apperr.Invalid("version")
	}
	return nil
}

// CreateTemplate 创建模板，名称冲突返回 UniquenessViolation。
func (s *Store) CreateTemplate(ctx context.Context, in TemplateInput) (*database.ResumeTemplate, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	config, err := jsonOrEmpty(in.Config, "{}")
	if err != nil {
		return nil, err
	}

	tpl := database.ResumeTemplate{
		Name:        in.Name,
		Description: in.Description,
		FormatType:  in.FormatType,
		Config:      config,
		Version:     in.Version,
		IsActive:    in.IsActive == nil || *in.IsActive,
	}
	if err := s.db.WithContext(ctx).Create(&tpl).Error; err != nil {
		return nil, writeError("create template", err)
	}
	return &tpl, nil
}

// GetTemplate 按 ID 返回模板。
func (s *Store) GetTemplate(ctx context.Context, id uint) (*database.ResumeTemplate, error) {
	var tpl database.ResumeTemplate
	if err := s.db.WithContext(ctx).First(&tpl, id).Error; err != nil {
		return nil, notFoundOr("load template", err)
	}
	return &tpl, nil
}

// ListTemplates 按 (version DESC, name) 返回模板。
// 普通用户只能看到启用中的模板；管理员可见全部。
func (s *Store) ListTemplates(ctx context.Context, actor Actor) ([]database.ResumeTemplate, error) {
	tx := s.db.WithContext(ctx).Order("version DESC, name")
	if !actor.IsAdmin() {
		tx = tx.Where("is_active = ?", true)
	}
	var tpls []database.ResumeTemplate
	if err := tx.Find(&tpls).Error; err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return tpls, nil
}

// UpdateTemplate 覆盖模板内容与版本号；名称不可变（模板以名称为身份）。
func (s *Store) UpdateTemplate(ctx context.Context, id uint, in TemplateInput) (*database.ResumeTemplate, error) {
	var tpl database.ResumeTemplate
	if err := s.db.WithContext(ctx).First(&tpl, id).Error; err != nil {
		return nil, notFoundOr("load template", err)
	}
	if in.Name == "" {
		in.Name = tpl.Name
	}
	if in.Name != tpl.Name {
		return nil, apperr.Invalid("name")
	}
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	config, err := jsonOrEmpty(in.Config, "{}")
	if err != nil {
		return nil, err
	}

	updates := map[string]any{
		"description": in.Description,
		"format_type": in.FormatType,
		"config":      config,
		"version":     in.Version,
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	if err := s.db.WithContext(ctx).Model(&tpl).Updates(updates).Error; err != nil {
		return nil, writeError("update template", err)
	}
	return &tpl, nil
}

// DeactivateTemplate 停用模板：从普通用户的可选列表中隐藏，
// 不影响已引用它的简历。
func (s *Store) DeactivateTemplate(ctx context.Context, id uint) error {
	var tpl database.ResumeTemplate
	if err := s.db.WithContext(ctx).First(&tpl, id).Error; err != nil {
		return notFoundOr("load template", err)
	}
	if err := s.db.WithContext(ctx).Model(&tpl).Update("is_active", false).Error; err != nil {
		return fmt.Errorf("deactivate template: %w", err)
	}
	return nil
}

// DeleteTemplate 删除模板；引用它的简历置空引用而非级联。
func (s *Store) DeleteTemplate(ctx context.Context, id uint) error {
	var tpl database.ResumeTemplate
	if err := s.db.WithContext(ctx).First(&tpl, id).Error; err != nil {
		return notFoundOr("load template", err)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&database.Resume{}).
			Where("template_id = ?", tpl.ID).
			Update("template_id", nil).Error; err != nil {
			return fmt.Errorf("detach template: %w", err)
		}
		if err := tx.Delete(&tpl).Error; err != nil {
			return fmt.Errorf("delete template: %w", err)
		}
		return nil
	})
}

// SetTemplateThumbnail 更新模板缩略图对象键。
func (s *Store) SetTemplateThumbnail(ctx context.Context, id uint, objectKey string) error {
	var tpl database.ResumeTemplate
	if err := s.db.WithContext(ctx).First(&tpl, id).Error; err != nil {
		return notFoundOr("load template", err)
	}
	if err := s.db.WithContext(ctx).Model(&tpl).Update("thumbnail", objectKey).Error; err != nil {
		return fmt.Errorf("set template thumbnail: %w", err)
	}
	return nil
}

// SetTechnologyIcon 更新技术条目的图标对象键。
func (s *Store) SetTechnologyIcon(ctx context.Context, id uint, objectKey string) error {
	var tech database.Technology
	if err := s.db.WithContext(ctx).First(&tech, id).Error; err != nil {
		return notFoundOr("load technology", err)
	}
	if err := s.db.WithContext(ctx).Model(&tech).Update("icon", objectKey).Error; err != nil {
		return fmt.Errorf("set technology icon: %w", err)
	}
	return nil
}
