package store

import (
	"context"
	"fmt"

	"resumeforge/internal/apperr"
	"resumeforge/internal/database"
)

// SpokenLanguageInput 是创建/更新语言能力的字段集合。
type SpokenLanguageInput struct {
	Name          string
	Proficiency   database.LanguageProficiency
	Certification string
	IsVisible     *bool
}

func (in *SpokenLanguageInput) validate() error {
	if in.Name == "" {
		return apperr.Invalid("name")
	}
	if !in.Proficiency.Valid() {
		return apperr.Invalid("proficiency")
	}
	return nil
}

// CreateSpokenLanguage 为简历创建语言能力条目。
func (s *Store) CreateSpokenLanguage(ctx context.Context, actor Actor, resumeID uint, in SpokenLanguageInput) (*database.SpokenLanguage, error) {
	resume, err := s.resumeFor(ctx, actor, resumeID)
	if err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	lang := database.SpokenLanguage{
		ResumeID:      resume.ID,
		Name:          in.Name,
		Proficiency:   in.Proficiency,
		Certification: in.Certification,
		IsVisible:     in.IsVisible == nil || *in.IsVisible,
	}
	if err := s.db.WithContext(ctx).Create(&lang).Error; err != nil {
		return nil, writeError("create spoken language", err)
	}
	return &lang, nil
}

// ListSpokenLanguages 按熟练度倒序、名称正序返回语言条目。
func (s *Store) ListSpokenLanguages(ctx context.Context, actor Actor, resumeID uint) ([]database.SpokenLanguage, error) {
	resume, err := s.resumeFor(ctx, actor, resumeID)
	if err != nil {
		return nil, err
	}
	var rows []database.SpokenLanguage
	if err := s.db.WithContext(ctx).
		Where("resume_id = ?", resume.ID).
		Order("proficiency DESC, name").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list spoken languages: %w", err)
	}
	return rows, nil
}

// UpdateSpokenLanguage 覆盖语言能力条目。
func (s *Store) UpdateSpokenLanguage(ctx context.Context, actor Actor, id uint, in SpokenLanguageInput) (*database.SpokenLanguage, error) {
	var lang database.SpokenLanguage
	if err := s.db.WithContext(ctx).First(&lang, id).Error; err != nil {
		return nil, notFoundOr("load spoken language", err)
	}
	if _, err := s.resumeFor(ctx, actor, lang.ResumeID); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	updates := map[string]any{
		"name":          in.Name,
		"proficiency":   in.Proficiency,
		"certification": in.Certification,
	}
	if in.IsVisible != nil {
		updates["is_visible"] = *in.IsVisible
	}
	if err := s.db.WithContext(ctx).Model(&lang).Updates(updates).Error; err != nil {
		return nil, writeError("update spoken language", err)
	}
	return &lang, nil
}

// DeleteSpokenLanguage 删除语言能力条目。
func (s *Store) DeleteSpokenLanguage(ctx context.Context, actor Actor, id uint) error {
	var lang database.SpokenLanguage
	if err := s.db.WithContext(ctx).First(&lang, id).Error; err != nil {
		return notFoundOr("load spoken language", err)
	}
	if _, err := s.resumeFor(ctx, actor, lang.ResumeID); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&lang).Error; err != nil {
		return fmt.Errorf("delete spoken language: %w", err)
	}
	return nil
}
