package store

import (
	"context"
	"fmt"

	"resumeforge/internal/apperr"
	"resumeforge/internal/database"
)

// SectionInput 是创建/更新章节的字段集合。
type SectionInput struct {
	SectionType database.SectionType
	Title       string
	Content     map[string]any
	SortOrder   int
	IsVisible   *bool
}

func (in *SectionInput) validate() error {
	if !in.SectionType.Valid() {
		return apperr.Invalid("section_type")
	}
	if in.Title == "" {
		return apperr.Invalid("title")
	}
	return nil
}

// CreateSection 为简历创建章节。同一简历内每种 section_type 至多一个，
// 冲突由复合唯一索引兜底。
func (s *Store) CreateSection(ctx context.Context, actor Actor, resumeID uint, in SectionInput) (*database.ResumeSection, error) {
	resume, err := s.resumeFor(ctx, actor, resumeID)
	if err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	content, err := jsonOrEmpty(in.Content, "{}")
	if err != nil {
		return nil, err
	}

	section := database.ResumeSection{
		ResumeID:    resume.ID,
		SectionType: in.SectionType,
		Title:       in.Title,
		Content:     content,
		SortOrder:   in.SortOrder,
		IsVisible:   in.IsVisible == nil || *in.IsVisible,
	}
	if err := s.db.WithContext(ctx).Create(&section).Error; err != nil {
		return nil, writeError("create section", err)
	}
	return &section, nil
}

// ListSections 按手工排序返回简历的全部章节。
func (s *Store) ListSections(ctx context.Context, actor Actor, resumeID uint) ([]database.ResumeSection, error) {
	resume, err := s.resumeFor(ctx, actor, resumeID)
	if err != nil {
		return nil, err
	}
	var sections []database.ResumeSection
	if err := s.db.WithContext(ctx).
		Where("resume_id = ?", resume.ID).
		Order("sort_order").
		Find(&sections).Error; err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	return sections, nil
}

// UpdateSection 覆盖章节内容；改动 section_type 时同样受唯一约束保护。
func (s *Store) UpdateSection(ctx context.Context, actor Actor, id uint, in SectionInput) (*database.ResumeSection, error) {
	var section database.ResumeSection
	if err := s.db.WithContext(ctx).First(&section, id).Error; err != nil {
		return nil, notFoundOr("load section", err)
	}
	if _, err := s.resumeFor(ctx, actor, section.ResumeID); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	content, err := jsonOrEmpty(in.Content, "{}")
	if err != nil {
		return nil, err
	}

	updates := map[string]any{
		"section_type": in.SectionType,
		"title":        in.Title,
		"content":      content,
		"sort_order":   in.SortOrder,
	}
	if in.IsVisible != nil {
		updates["is_visible"] = *in.IsVisible
	}
	if err := s.db.WithContext(ctx).Model(&section).Updates(updates).Error; err != nil {
		return nil, writeError("update section", err)
	}
	return &section, nil
}

// DeleteSection 删除章节。
func (s *Store) DeleteSection(ctx context.Context, actor Actor, id uint) error {
	var section database.ResumeSection
	if err := s.db.WithContext(ctx).First(&section, id).Error; err != nil {
		return notFoundOr("load section", err)
	}
	if _, err := s.resumeFor(ctx, actor, section.ResumeID); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&section).Error; err != nil {
		return fmt.Errorf("delete section: %w", err)
	}
	return nil
}
