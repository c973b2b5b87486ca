package store

import (
	"context"
	"fmt"
	"time"

	"resumeforge/internal/apperr"
	"resumeforge/internal/database"
)

// AwardInput 是创建/更新奖项的字段集合。
type AwardInput struct {
	Title         string
	Issuer        string
	IssueDate     time.Time
	Category      database.AwardCategory
	Description   string
	ImpactMetrics map[string]any
	IsVisible     *bool
}

func (in *AwardInput) validate() error {
	if in.Title == "" {
		return apperr.Invalid("title")
	}
	if in.Issuer == "" {
		return apperr.Invalid("issuer")
	}
	if in.IssueDate.IsZero() {
		return apperr.Invalid("issue_date")
	}
	if !in.Category.Valid() {
		return apperr.Invalid("category")
	}
	return nil
}

// CreateAward 为简历创建奖项。
func (s *Store) CreateAward(ctx context.Context, actor Actor, resumeID uint, in AwardInput) (*database.Award, error) {
	resume, err := s.resumeFor(ctx, actor, resumeID)
	if err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	metrics, err := jsonOrEmpty(in.ImpactMetrics, "{}")
	if err != nil {
		return nil, err
	}

	award := database.Award{
		ResumeID:      resume.ID,
		Title:         in.Title,
		Issuer:        in.Issuer,
		IssueDate:     in.IssueDate,
		Category:      in.Category,
		Description:   in.Description,
		ImpactMetrics: metrics,
		IsVisible:     in.IsVisible == nil || *in.IsVisible,
	}
	if err := s.db.WithContext(ctx).Create(&award).Error; err != nil {
		return nil, writeError("create award", err)
	}
	return &award, nil
}

// ListAwards 按颁发日期倒序返回奖项。
func (s *Store) ListAwards(ctx context.Context, actor Actor, resumeID uint) ([]database.Award, error) {
	resume, err := s.resumeFor(ctx, actor, resumeID)
	if err != nil {
		return nil, err
	}
	var rows []database.Award
	if err := s.db.WithContext(ctx).
		Where("resume_id = ?", resume.ID).
		Order("issue_date DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list awards: %w", err)
	}
	return rows, nil
}

// UpdateAward 覆盖奖项。
func (s *Store) UpdateAward(ctx context.Context, actor Actor, id uint, in AwardInput) (*database.Award, error) {
	var award database.Award
	if err := s.db.WithContext(ctx).First(&award, id).Error; err != nil {
		return nil, notFoundOr("load award", err)
	}
	if _, err := s.resumeFor(ctx, actor, award.ResumeID); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	metrics, err := jsonOrEmpty(in.ImpactMetrics, "{}")
	if err != nil {
		return nil, err
	}

	updates := map[string]any{
		"title":          in.Title,
		"issuer":         in.Issuer,
		"issue_date":     in.IssueDate,
		"category":       in.Category,
		"description":    in.Description,
		"impact_metrics": metrics,
	}
	if in.IsVisible != nil {
		updates["is_visible"] = *in.IsVisible
	}
	if err := s.db.WithContext(ctx).Model(&award).Updates(updates).Error; err != nil {
		return nil, writeError("update award", err)
	}
	return &award, nil
}

// DeleteAward 删除奖项。
func (s *Store) DeleteAward(ctx context.Context, actor Actor, id uint) error {
	var award database.Award
	if err := s.db.WithContext(ctx).First(&award, id).Error; err != nil {
		return notFoundOr("load award", err)
	}
	if _, err := s.resumeFor(ctx, actor, award.ResumeID); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&award).Error; err != nil {
		return fmt.Errorf("delete award: %w", err)
	}
	return nil
}
