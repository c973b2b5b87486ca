package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"resumeforge/internal/apperr"
	"resumeforge/internal/database"
)

// TechnicalSkillInput 是创建/更新技能条目的字段集合。
type TechnicalSkillInput struct {
	TechnologyID    uint
	Proficiency     int
	YearsExperience int
	LastUsed        *time.Time
	ProjectCount    int
	IsVisible       *bool
}

func (in *TechnicalSkillInput) validate() error {
	if in.TechnologyID == 0 {
		return apperr.Invalid("technology_id")
	}
	if !database.ValidSkillProficiency(in.Proficiency) {
		return apperr.Invalid("proficiency")
	}
	if in.YearsExperience < 0 {
		return apperr.Invalid("years_experience")
	}
	if in.ProjectCount < 0 {
		return apperr.Invalid("project_count")
	}
	return nil
}

// CreateTechnicalSkill 为简历关联一项技术。
// 同一技术在一份简历内至多出现一次，由复合唯一索引兜底。
func (s *Store) CreateTechnicalSkill(ctx context.Context, actor Actor, resumeID uint, in TechnicalSkillInput) (*database.TechnicalSkill, error) {
	resume, err := s.resumeFor(ctx, actor, resumeID)
	if err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	var tech database.Technology
	if err := s.db.WithContext(ctx).First(&tech, in.TechnologyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("technology %d: %w", in.TechnologyID, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("load technology: %w", err)
	}

	skill := database.TechnicalSkill{
		ResumeID:        resume.ID,
		TechnologyID:    tech.ID,
		Proficiency:     in.Proficiency,
		YearsExperience: in.YearsExperience,
		LastUsed:        in.LastUsed,
		ProjectCount:    in.ProjectCount,
		IsVisible:       in.IsVisible == nil || *in.IsVisible,
	}
	if err := s.db.WithContext(ctx).Create(&skill).Error; err != nil {
		return nil, writeError("create technical skill", err)
	}
	skill.Technology = tech
	return &skill, nil
}

// ListTechnicalSkills 按熟练度倒序、技术名正序返回技能条目。
func (s *Store) ListTechnicalSkills(ctx context.Context, actor Actor, resumeID uint) ([]database.TechnicalSkill, error) {
	resume, err := s.resumeFor(ctx, actor, resumeID)
	if err != nil {
		return nil, err
	}
	var skills []database.TechnicalSkill
	if err := s.db.WithContext(ctx).
		Joins("Technology").
		Where("technical_skills.resume_id = ?", resume.ID).
		Order("technical_skills.proficiency DESC").
		Order("\"Technology\".name").
		Find(&skills).Error; err != nil {
		return nil, fmt.Errorf("list technical skills: %w", err)
	}
	return skills, nil
}

// UpdateTechnicalSkill 覆盖技能条目；技术引用不可变，避免绕过唯一约束。
func (s *Store) UpdateTechnicalSkill(ctx context.Context, actor Actor, id uint, in TechnicalSkillInput) (*database.TechnicalSkill, error) {
	var skill database.TechnicalSkill
	if err := s.db.WithContext(ctx).First(&skill, id).Error; err != nil {
		return nil, notFoundOr("load technical skill", err)
	}
	if _, err := s.resumeFor(ctx, actor, skill.ResumeID); err != nil {
		return nil, err
	}
	if in.TechnologyID == 0 {
		in.TechnologyID = skill.TechnologyID
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	if in.TechnologyID != skill.TechnologyID {
		return nil, apperr.Invalid("technology_id")
	}

	updates := map[string]any{
		"proficiency":      in.Proficiency,
		"years_experience": in.YearsExperience,
		"last_used":        in.LastUsed,
		"project_count":    in.ProjectCount,
	}
	if in.IsVisible != nil {
		updates["is_visible"] = *in.IsVisible
	}
	if err := s.db.WithContext(ctx).Model(&skill).Updates(updates).Error; err != nil {
		return nil, writeError("update technical skill", err)
	}
	return &skill, nil
}

// DeleteTechnicalSkill 删除技能条目。
func (s *Store) DeleteTechnicalSkill(ctx context.Context, actor Actor, id uint) error {
	var skill database.TechnicalSkill
	if err := s.db.WithContext(ctx).First(&skill, id).Error; err != nil {
		return notFoundOr("load technical skill", err)
	}
	if _, err := s.resumeFor(ctx, actor, skill.ResumeID); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&skill).Error; err != nil {
		return fmt.Errorf("delete technical skill: %w", err)
	}
	return nil
}
