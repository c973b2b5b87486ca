package store

import (
	"context"
	"errors"
	"testing"

	"resumeforge/internal/apperr"
	"resumeforge/internal/database"
)

func TestCreateTechnology_DuplicateName(t *testing.T) {
	s := newTestStore(t)
	seedTechnology(t, s, "Go", database.CategoryLanguage)

	_, err := s.CreateTechnology(context.Background(), TechnologyInput{
		Name:     "Go",
		Category: database.CategoryTool,
	})
	if !errors.Is(err, apperr.ErrUniquenessViolation) {
		t.Fatalf("expected uniqueness violation, got %v", err)
	}
	if field := apperr.FieldOf(err); field != "name" {
		t.Fatalf("expected conflict field name, got %q", field)
	}
}

func TestListTechnologies_CategoryFilter(t *testing.T) {
	s := newTestStore(t)
	seedTechnology(t, s, "Go", database.CategoryLanguage)
	seedTechnology(t, s, "Rust", database.CategoryLanguage)
	seedTechnology(t, s, "PostgreSQL", database.CategoryDatabase)
	ctx := context.Background()

	langs, err := s.ListTechnologies(ctx, database.CategoryLanguage)
	if err != nil {
		t.Fatalf("list by category: %v", err)
	}
	if len(langs) != 2 {
		t.Fatalf("expected 2 languages, got %d", len(langs))
	}
	if langs[0].Name != "Go" || langs[1].Name != "Rust" {
		t.Fatalf("not ordered by name: %s, %s", langs[0].Name, langs[1].Name)
	}

	all, err := s.ListTechnologies(ctx, "")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 technologies, got %d", len(all))
	}

	if _, err := s.ListTechnologies(ctx, "bogus"); !errors.Is(err, apperr.ErrValidationFailed) {
		t.Fatalf("expected validation failure for unknown category, got %v", err)
	}
}

func TestDeleteTechnology_DetachesReferences(t *testing.T) {
	s := newTestStore(t)
	alice := seedUser(t, s, "alice", database.RoleCandidate)
	resume := seedResume(t, s, alice, "R", "alice-r")
	goTech := seedTechnology(t, s, "Go", database.CategoryLanguage)
	ctx := context.Background()

	exp, err := s.CreateWorkExperience(ctx, alice, resume.ID, WorkExperienceInput{
		JobTitle:      "Engineer",
		Company:       "Acme",
		StartDate:     date(2020, 1, 1),
		TechnologyIDs: []uint{goTech.ID},
	})
	if err != nil {
		t.Fatalf("seed experience: %v", err)
	}
	if _, err := s.CreateTechnicalSkill(ctx, alice, resume.ID, TechnicalSkillInput{
		TechnologyID: goTech.ID,
		Proficiency:  80,
	}); err != nil {
		t.Fatalf("seed skill: %v", err)
	}

	if err := s.DeleteTechnology(ctx, goTech.ID); err != nil {
		t.Fatalf("delete technology: %v", err)
	}

	// 经历本身保留，技术集合引用被解除；技能连接行随技术一并删除。
	rows, err := s.ListWorkExperiences(ctx, alice, resume.ID)
	if err != nil {
		t.Fatalf("list experiences: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != exp.ID {
		t.Fatalf("experience lost: %+v", rows)
	}
	if len(rows[0].Technologies) != 0 {
		t.Fatalf("technology reference not detached: %+v", rows[0].Technologies)
	}
	if n := countRows(t, s, &database.TechnicalSkill{}, "technology_id = ?", goTech.ID); n != 0 {
		t.Fatalf("skill rows remain: %d", n)
	}
}

func TestCreateTemplate_DuplicateNameAndVersion(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateTemplate(ctx, TemplateInput{
		Name:       "Minimal",
		FormatType: database.FormatModern,
	}); err != nil {
		t.Fatalf("create template: %v", err)
	}

	_, err := s.CreateTemplate(ctx, TemplateInput{
		Name:       "Minimal",
		FormatType: database.FormatClassic,
	})
	if !errors.Is(err, apperr.ErrUniquenessViolation) {
		t.Fatalf("expected uniqueness violation, got %v", err)
	}

	_, err = s.CreateTemplate(ctx, TemplateInput{
		Name:       "Broken",
		FormatType: database.FormatModern,
		Version:    -1,
	})
	if !errors.Is(err, apperr.ErrValidationFailed) {
		t.Fatalf("expected validation failure for negative version, got %v", err)
	}
}

func TestListTemplates_ActiveOnlyForNonAdmin(t *testing.T) {
	s := newTestStore(t)
	alice := seedUser(t, s, "alice", database.RoleCandidate)
	admin := seedUser(t, s, "root", database.RoleAdmin)
	ctx := context.Background()

	active, err := s.CreateTemplate(ctx, TemplateInput{Name: "Active", FormatType: database.FormatModern})
	if err != nil {
		t.Fatalf("create template: %v", err)
	}
	retired, err := s.CreateTemplate(ctx, TemplateInput{Name: "Retired", FormatType: database.FormatClassic})
	if err != nil {
		t.Fatalf("create template: %v", err)
	}
	if err := s.DeactivateTemplate(ctx, retired.ID); err != nil {
		t.Fatalf("deactivate template: %v", err)
	}

	visible, err := s.ListTemplates(ctx, alice)
	if err != nil {
		t.Fatalf("list templates: %v", err)
	}
	if len(visible) != 1 || visible[0].ID != active.ID {
		t.Fatalf("non-admin should only see active templates: %+v", visible)
	}

	all, err := s.ListTemplates(ctx, admin)
	if err != nil {
		t.Fatalf("admin list templates: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("admin should see all templates, got %d", len(all))
	}
}

func TestDeleteTemplate_ResumesRevertToNoTemplate(t *testing.T) {
	s := newTestStore(t)
	alice := seedUser(t, s, "alice", database.RoleCandidate)
	ctx := context.Background()

	tpl, err := s.CreateTemplate(ctx, TemplateInput{Name: "Minimal", FormatType: database.FormatModern})
	if err != nil {
		t.Fatalf("create template: %v", err)
	}
	resume, err := s.CreateResume(ctx, alice, ResumeInput{
		Title:      "R",
		Slug:       "alice-r",
		TemplateID: &tpl.ID,
	})
	if err != nil {
		t.Fatalf("create resume: %v", err)
	}

	if err := s.DeleteTemplate(ctx, tpl.ID); err != nil {
		t.Fatalf("delete template: %v", err)
	}

	reloaded, err := s.GetResume(ctx, alice, resume.ID)
	if err != nil {
		t.Fatalf("reload resume: %v", err)
	}
	if reloaded.TemplateID != nil {
		t.Fatalf("resume still references deleted template: %v", *reloaded.TemplateID)
	}
}

func TestUpdateTemplate_NameImmutable(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tpl, err := s.CreateTemplate(ctx, TemplateInput{Name: "Minimal", FormatType: database.FormatModern})
	if err != nil {
		t.Fatalf("create template: %v", err)
	}

	_, err = s.UpdateTemplate(ctx, tpl.ID, TemplateInput{
		Name:       "Renamed",
		FormatType: database.FormatModern,
	})
	if !errors.Is(err, apperr.ErrValidationFailed) {
		t.Fatalf("expected validation failure on rename, got %v", err)
	}

	updated, err := s.UpdateTemplate(ctx, tpl.ID, TemplateInput{
		Name:       "Minimal",
		FormatType: database.FormatTechnical,
		Version:    2,
	})
	if err != nil {
		t.Fatalf("update template: %v", err)
	}
	if updated.Version != 2 || updated.FormatType != database.FormatTechnical {
		t.Fatalf("update not applied: %+v", updated)
	}
}
