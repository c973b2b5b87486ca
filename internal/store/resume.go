package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"resumeforge/internal/apperr"
	"resumeforge/internal/database"
)

// ResumeInput 是创建/更新简历的字段集合。
type ResumeInput struct {
	Title        string
	Slug         string
	Summary      string
	Tags         []string
	TemplateID   *uint
	LanguageCode string
	Visibility   database.Visibility
}

func (in *ResumeInput) normalize() {
	if in.LanguageCode == "" {
		in.LanguageCode = "en"
	}
	if in.Visibility == "" {
		in.Visibility = database.VisibilityPrivate
	}
}

func (in *ResumeInput) validate() error {
	if in.Title == "" {
		return apperr.Invalid("title")
	}
	if err := validateSlug(in.Slug); err != nil {
		return err
	}
	if err := validateLanguageCode(in.LanguageCode); err != nil {
		return err
	}
	if !in.Visibility.Valid() {
		return apperr.Invalid("visibility")
	}
	return nil
}

// resolveTemplate 校验被引用的模板存在且处于启用状态。
func (s *Store) resolveTemplate(ctx context.Context, templateID *uint) error {
	if templateID == nil {
		return nil
	}
	var tpl database.ResumeTemplate
	if err := s.db.WithContext(ctx).First(&tpl, *templateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("template %d: %w", *templateID, apperr.ErrNotFound)
		}
		return fmt.Errorf("load template: %w", err)
	}
	if !tpl.IsActive {
		return apperr.Invalid("template_id")
	}
	return nil
}

// CreateResume 为属主创建简历。slug 全局唯一，(owner, title) 唯一，
// 冲突由数据库约束兜底并翻译为 UniquenessViolation。
func (s *Store) CreateResume(ctx context.Context, actor Actor, in ResumeInput) (*database.Resume, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := s.resolveTemplate(ctx, in.TemplateID); err != nil {
		return nil, err
	}

	tags, err := jsonOrEmpty(in.Tags, "[]")
	if err != nil {
		return nil, err
	}

	resume := database.Resume{
		UserID:       actor.ID,
		Title:        in.Title,
		Slug:         in.Slug,
		Summary:      in.Summary,
		Tags:         tags,
		TemplateID:   in.TemplateID,
		LanguageCode: in.LanguageCode,
		Visibility:   in.Visibility,
	}
	if err := s.db.WithContext(ctx).Create(&resume).Error; err != nil {
		return nil, writeError("create resume", err)
	}
	return &resume, nil
}

// GetResume 返回简历详情（含按规约排序的全部子集合）。
// 私有简历仅属主/管理员可读。
func (s *Store) GetResume(ctx context.Context, actor Actor, id uint) (*database.Resume, error) {
	resume, err := s.loadAggregate(ctx, "id = ?", id)
	if err != nil {
		return nil, err
	}
	if !readableBy(actor, resume) {
		return nil, apperr.ErrOwnershipViolation
	}
	return resume, nil
}

// GetPublicResume 按 slug 返回公开简历；非公开一律按不存在处理，
// 避免探测他人 slug。
func (s *Store) GetPublicResume(ctx context.Context, slug string) (*database.Resume, error) {
	resume, err := s.loadAggregate(ctx, "slug = ?", slug)
	if err != nil {
		return nil, err
	}
	if resume.Visibility != database.VisibilityPublic {
		return nil, fmt.Errorf("resume %q: %w", slug, apperr.ErrNotFound)
	}
	return resume, nil
}

// GetSharedResume 按 slug 返回经分享链接访问的简历。
// 属主改回私有后链接即失效。
func (s *Store) GetSharedResume(ctx context.Context, slug string) (*database.Resume, error) {
	resume, err := s.loadAggregate(ctx, "slug = ?", slug)
	if err != nil {
		return nil, err
	}
	switch resume.Visibility {
	case database.VisibilityShared, database.VisibilityPublic:
		return resume, nil
	default:
		return nil, fmt.Errorf("resume %q: %w", slug, apperr.ErrNotFound)
	}
}

func (s *Store) loadAggregate(ctx context.Context, query string, arg any) (*database.Resume, error) {
	var resume database.Resume
	err := s.db.WithContext(ctx).
		Preload("Template").
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order")
		}).
		Preload("WorkExperiences", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_date DESC")
		}).
		Preload("WorkExperiences.Technologies").
		Preload("TechnicalSkills", func(db *gorm.DB) *gorm.DB {
			return db.Order("proficiency DESC")
		}).
		Preload("TechnicalSkills.Technology").
		Preload("Educations", func(db *gorm.DB) *gorm.DB {
			return db.Order("end_date DESC")
		}).
		Preload("Projects", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_date DESC")
		}).
		Preload("Projects.Technologies").
		Preload("Certifications", func(db *gorm.DB) *gorm.DB {
			return db.Order("issue_date DESC")
		}).
		Preload("Certifications.Skills").
		Preload("Awards", func(db *gorm.DB) *gorm.DB {
			return db.Order("issue_date DESC")
		}).
		Preload("Languages", func(db *gorm.DB) *gorm.DB {
			return db.Order("proficiency DESC, name")
		}).
		Where(query, arg).
		First(&resume).Error
	if err != nil {
		return nil, notFoundOr("load resume", err)
	}

	// 技能的次级排序键（技术名）在关联行上，Preload 无法连表排序，读出后补排。
	sort.SliceStable(resume.TechnicalSkills, func(i, j int) bool {
		a, b := resume.TechnicalSkills[i], resume.TechnicalSkills[j]
		if a.Proficiency != b.Proficiency {
			return a.Proficiency > b.Proficiency
		}
		return a.Technology.Name < b.Technology.Name
	})
	return &resume, nil
}

// ListResumes 列出操作者自己的简历，按最后修改时间倒序。
// 管理员可列出全部，ownerID 非零时按属主过滤；普通用户忽略 ownerID。
func (s *Store) ListResumes(ctx context.Context, actor Actor, ownerID uint) ([]database.Resume, error) {
	tx := s.db.WithContext(ctx).Order("updated_at DESC")
	if !actor.IsAdmin() {
		tx = tx.Where("user_id = ?", actor.ID)
	} else if ownerID != 0 {
		tx = tx.Where("user_id = ?", ownerID)
	}
	var resumes []database.Resume
	if err := tx.Find(&resumes).Error; err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	return resumes, nil
}

// UpdateResume 覆盖简历的可变字段，约束与创建时相同。
func (s *Store) UpdateResume(ctx context.Context, actor Actor, id uint, in ResumeInput) (*database.Resume, error) {
	resume, err := s.resumeFor(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := s.resolveTemplate(ctx, in.TemplateID); err != nil {
		return nil, err
	}

	tags, err := jsonOrEmpty(in.Tags, "[]")
	if err != nil {
		return nil, err
	}

	updates := map[string]any{
		"title":         in.Title,
		"slug":          in.Slug,
		"summary":       in.Summary,
		"tags":          tags,
		"template_id":   in.TemplateID,
		"language_code": in.LanguageCode,
		"visibility":    in.Visibility,
	}
	if err := s.db.WithContext(ctx).Model(resume).Updates(updates).Error; err != nil {
		return nil, writeError("update resume", err)
	}
	if err := s.db.WithContext(ctx).First(resume, resume.ID).Error; err != nil {
		return nil, fmt.Errorf("reload resume: %w", err)
	}
	return resume, nil
}

// DeleteResume 在单个事务内级联删除简历及其全部子集合。
// 任一步失败则整体回滚，保持删除前状态。
func (s *Store) DeleteResume(ctx context.Context, actor Actor, id uint) error {
	resume, err := s.resumeFor(ctx, actor, id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 先清理多对多关联行，再删子实体，最后删聚合根。
		joins := []string{
			"DELETE FROM work_experience_technologies WHERE work_experience_id IN (SELECT id FROM work_experiences WHERE resume_id = ?)",
			"DELETE FROM project_technologies WHERE project_id IN (SELECT id FROM projects WHERE resume_id = ?)",
			"DELETE FROM certification_skills WHERE certification_id IN (SELECT id FROM certifications WHERE resume_id = ?)",
		}
		for _, stmt := range joins {
			if err := tx.Exec(stmt, resume.ID).Error; err != nil {
				return fmt.Errorf("delete association rows: %w", err)
			}
		}

		children := []any{
			&database.ResumeSection{},
			&database.WorkExperience{},
			&database.TechnicalSkill{},
			&database.Education{},
			&database.Project{},
			&database.Certification{},
			&database.Award{},
			&database.SpokenLanguage{},
		}
		for _, model := range children {
			if err := tx.Where("resume_id = ?", resume.ID).Delete(model).Error; err != nil {
				return fmt.Errorf("delete child rows: %w", err)
			}
		}

		if err := tx.Delete(&database.Resume{}, resume.ID).Error; err != nil {
			return fmt.Errorf("delete resume: %w", err)
		}
		return nil
	})
}
