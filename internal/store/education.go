package store

import (
	"context"
	"fmt"
	"time"

	"resumeforge/internal/apperr"
	"resumeforge/internal/database"
)

// EducationInput 是创建/更新教育经历的字段集合。
type EducationInput struct {
	Degree      string
	Institution string
	Location    string
	StartDate   time.Time
	EndDate     time.Time
	GPA         *float64
	Description string
	IsVisible   *bool
}

func (in *EducationInput) validate() error {
	if in.Degree == "" {
		return apperr.Invalid("degree")
	}
	if in.Institution == "" {
		return apperr.Invalid("institution")
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return apperr.Invalid("start_date")
	}
	if in.EndDate.Before(in.StartDate) {
		return apperr.DateRange("end_date")
	}
	return validateGPA(in.GPA)
}

// CreateEducation 为简历创建教育经历。日期区间与 gpa 在写入前校验，
// 校验失败不产生任何行。
func (s *Store) CreateEducation(ctx context.Context, actor Actor, resumeID uint, in EducationInput) (*database.Education, error) {
	resume, err := s.resumeFor(ctx, actor, resumeID)
	if err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	edu := database.Education{
		ResumeID:    resume.ID,
		Degree:      in.Degree,
		Institution: in.Institution,
		Location:    in.Location,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		GPA:         in.GPA,
		Description: in.Description,
		IsVisible:   in.IsVisible == nil || *in.IsVisible,
	}
	if err := s.db.WithContext(ctx).Create(&edu).Error; err != nil {
		return nil, writeError("create education", err)
	}
	return &edu, nil
}

// ListEducations 按结束日期倒序返回教育经历。
func (s *Store) ListEducations(ctx context.Context, actor Actor, resumeID uint) ([]database.Education, error) {
	resume, err := s.resumeFor(ctx, actor, resumeID)
	if err != nil {
		return nil, err
	}
	var rows []database.Education
	if err := s.db.WithContext(ctx).
		Where("resume_id = ?", resume.ID).
		Order("end_date DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list educations: %w", err)
	}
	return rows, nil
}

// UpdateEducation 覆盖教育经历。
func (s *Store) UpdateEducation(ctx context.Context, actor Actor, id uint, in EducationInput) (*database.Education, error) {
	var edu database.Education
	if err := s.db.WithContext(ctx).First(&edu, id).Error; err != nil {
		return nil, notFoundOr("load education", err)
	}
	if _, err := s.resumeFor(ctx, actor, edu.ResumeID); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	updates := map[string]any{
		"degree":      in.Degree,
		"institution": in.Institution,
		"location":    in.Location,
		"start_date":  in.StartDate,
		"end_date":    in.EndDate,
		"gpa":         in.GPA,
		"description": in.Description,
	}
	if in.IsVisible != nil {
		updates["is_visible"] = *in.IsVisible
	}
	if err := s.db.WithContext(ctx).Model(&edu).Updates(updates).Error; err != nil {
		return nil, writeError("update education", err)
	}
	return &edu, nil
}

// DeleteEducation 删除教育经历。
func (s *Store) DeleteEducation(ctx context.Context, actor Actor, id uint) error {
	var edu database.Education
	if err := s.db.WithContext(ctx).First(&edu, id).Error; err != nil {
		return notFoundOr("load education", err)
	}
	if _, err := s.resumeFor(ctx, actor, edu.ResumeID); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&edu).Error; err != nil {
		return fmt.Errorf("delete education: %w", err)
	}
	return nil
}
