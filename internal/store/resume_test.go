package store

import (
	"context"
	"errors"
	"testing"

	"resumeforge/internal/apperr"
	"resumeforge/internal/database"
)

func TestCreateResume_DuplicateTitleSameOwner(t *testing.T) {
	s := newTestStore(t)
	owner := seedUser(t, s, "alice", database.RoleCandidate)
	seedResume(t, s, owner, "Backend Engineer", "alice-backend")

	_, err := s.CreateResume(context.Background(), owner, ResumeInput{
		Title: "Backend Engineer",
		Slug:  "alice-backend-2",
	})
	if !errors.Is(err, apperr.ErrUniquenessViolation) {
		t.Fatalf("expected uniqueness violation, got %v", err)
	}
	if field := apperr.FieldOf(err); field != "title" {
		t.Fatalf("expected conflict field title, got %q", field)
	}
}

func TestCreateResume_SameTitleDifferentOwners(t *testing.T) {
	s := newTestStore(t)
	alice := seedUser(t, s, "alice", database.RoleCandidate)
	bob := seedUser(t, s, "bob", database.RoleCandidate)
	seedResume(t, s, alice, "Backend Engineer", "alice-backend")

	if _, err := s.CreateResume(context.Background(), bob, ResumeInput{
		Title: "Backend Engineer",
		Slug:  "bob-backend",
	}); err != nil {
		t.Fatalf("different owners may share a title: %v", err)
	}
}

func TestCreateResume_DuplicateSlug(t *testing.T) {
	s := newTestStore(t)
	alice := seedUser(t, s, "alice", database.RoleCandidate)
	bob := seedUser(t, s, "bob", database.RoleCandidate)
	seedResume(t, s, alice, "Backend Engineer", "shared-slug")

	_, err := s.CreateResume(context.Background(), bob, ResumeInput{
		Title: "Other Title",
		Slug:  "shared-slug",
	})
	if !errors.Is(err, apperr.ErrUniquenessViolation) {
		t.Fatalf("expected uniqueness violation, got %v", err)
	}
	if field := apperr.FieldOf(err); field != "slug" {
		t.Fatalf("expected conflict field slug, got %q", field)
	}
}

func TestCreateResume_InvalidSlug(t *testing.T) {
	s := newTestStore(t)
	owner := seedUser(t, s, "alice", database.RoleCandidate)

	for _, slug := range []string{"", "Has-Upper", "ends-", "-starts", "double--dash", "space slug"} {
		_, err := s.CreateResume(context.Background(), owner, ResumeInput{
			Title: "T " + slug,
			Slug:  slug,
		})
		if !errors.Is(err, apperr.ErrValidationFailed) {
			t.Fatalf("slug %q: expected validation failure, got %v", slug, err)
		}
	}
}

func TestGetResume_PrivateHiddenFromOthers(t *testing.T) {
	s := newTestStore(t)
	alice := seedUser(t, s, "alice", database.RoleCandidate)
	bob := seedUser(t, s, "bob", database.RoleCandidate)
	admin := seedUser(t, s, "root", database.RoleAdmin)
	resume := seedResume(t, s, alice, "Backend Engineer", "alice-backend")

	ctx := context.Background()
	if _, err := s.GetResume(ctx, bob, resume.ID); !errors.Is(err, apperr.ErrOwnershipViolation) {
		t.Fatalf("expected ownership violation for stranger, got %v", err)
	}
	if _, err := s.GetResume(ctx, alice, resume.ID); err != nil {
		t.Fatalf("owner read failed: %v", err)
	}
	if _, err := s.GetResume(ctx, admin, resume.ID); err != nil {
		t.Fatalf("admin read failed: %v", err)
	}
}

func TestGetPublicResume_OnlyPublicVisible(t *testing.T) {
	s := newTestStore(t)
	alice := seedUser(t, s, "alice", database.RoleCandidate)
	resume := seedResume(t, s, alice, "Backend Engineer", "alice-backend")

	ctx := context.Background()

	// 私有简历按不存在处理，避免 slug 探测。
	if _, err := s.GetPublicResume(ctx, "alice-backend"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found for private slug, got %v", err)
	}

	input := ResumeInput{Title: "Backend Engineer", Slug: "alice-backend", Visibility: database.VisibilityPublic}
	if _, err := s.UpdateResume(ctx, alice, resume.ID, input); err != nil {
		t.Fatalf("publish resume: %v", err)
	}
	got, err := s.GetPublicResume(ctx, "alice-backend")
	if err != nil {
		t.Fatalf("public read failed: %v", err)
	}
	if got.ID != resume.ID {
		t.Fatalf("wrong resume returned: %d", got.ID)
	}
}

func TestGetSharedResume_RevertedToPrivate(t *testing.T) {
	s := newTestStore(t)
	alice := seedUser(t, s, "alice", database.RoleCandidate)
	resume := seedResume(t, s, alice, "Backend Engineer", "alice-backend")
	ctx := context.Background()

	shared := ResumeInput{Title: "Backend Engineer", Slug: "alice-backend", Visibility: database.VisibilityShared}
	if _, err := s.UpdateResume(ctx, alice, resume.ID, shared); err != nil {
		t.Fatalf("share resume: %v", err)
	}
	if _, err := s.GetSharedResume(ctx, "alice-backend"); err != nil {
		t.Fatalf("shared read failed: %v", err)
	}

	private := ResumeInput{Title: "Backend Engineer", Slug: "alice-backend", Visibility: database.VisibilityPrivate}
	if _, err := s.UpdateResume(ctx, alice, resume.ID, private); err != nil {
		t.Fatalf("unshare resume: %v", err)
	}
	if _, err := s.GetSharedResume(ctx, "alice-backend"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found after revert, got %v", err)
	}
}

func TestDeleteResume_CascadeIsolated(t *testing.T) {
	s := newTestStore(t)
	alice := seedUser(t, s, "alice", database.RoleCandidate)
	ctx := context.Background()

	goTech := seedTechnology(t, s, "Go", database.CategoryLanguage)

	doomed := seedResume(t, s, alice, "Doomed", "alice-doomed")
	kept := seedResume(t, s, alice, "Kept", "alice-kept")

	for _, r := range []*database.Resume{doomed, kept} {
		if _, err := s.CreateWorkExperience(ctx, alice, r.ID, WorkExperienceInput{
			JobTitle:      "Engineer",
			Company:       "Acme",
			StartDate:     date(2020, 1, 1),
			TechnologyIDs: []uint{goTech.ID},
		}); err != nil {
			t.Fatalf("seed experience: %v", err)
		}
		if _, err := s.CreateTechnicalSkill(ctx, alice, r.ID, TechnicalSkillInput{
			TechnologyID: goTech.ID,
			Proficiency:  80,
		}); err != nil {
			t.Fatalf("seed skill: %v", err)
		}
		if _, err := s.CreateSpokenLanguage(ctx, alice, r.ID, SpokenLanguageInput{
			Name:        "English",
			Proficiency: database.ProficiencyFluent,
		}); err != nil {
			t.Fatalf("seed language: %v", err)
		}
	}

	if err := s.DeleteResume(ctx, alice, doomed.ID); err != nil {
		t.Fatalf("delete resume: %v", err)
	}

	if n := countRows(t, s, &database.WorkExperience{}, "resume_id = ?", doomed.ID); n != 0 {
		t.Fatalf("doomed experiences remain: %d", n)
	}
	if n := countRows(t, s, &database.TechnicalSkill{}, "resume_id = ?", doomed.ID); n != 0 {
		t.Fatalf("doomed skills remain: %d", n)
	}
	if n := countRows(t, s, &database.SpokenLanguage{}, "resume_id = ?", doomed.ID); n != 0 {
		t.Fatalf("doomed languages remain: %d", n)
	}

	// 兄弟简历不受波及，技术目录本身保留。
	if n := countRows(t, s, &database.WorkExperience{}, "resume_id = ?", kept.ID); n != 1 {
		t.Fatalf("kept experiences damaged: %d", n)
	}
	if n := countRows(t, s, &database.TechnicalSkill{}, "resume_id = ?", kept.ID); n != 1 {
		t.Fatalf("kept skills damaged: %d", n)
	}
	if n := countRows(t, s, &database.Technology{}, "id = ?", goTech.ID); n != 1 {
		t.Fatalf("technology catalog damaged: %d", n)
	}

	// slug 在硬删除后立即可复用。
	if _, err := s.CreateResume(ctx, alice, ResumeInput{Title: "Doomed Again", Slug: "alice-doomed"}); err != nil {
		t.Fatalf("slug not reusable after delete: %v", err)
	}
}

func TestListResumes_ScopedToOwner(t *testing.T) {
	s := newTestStore(t)
	alice := seedUser(t, s, "alice", database.RoleCandidate)
	bob := seedUser(t, s, "bob", database.RoleCandidate)
	admin := seedUser(t, s, "root", database.RoleAdmin)
	seedResume(t, s, alice, "A", "alice-a")
	seedResume(t, s, bob, "B", "bob-b")

	ctx := context.Background()
	mine, err := s.ListResumes(ctx, alice, 0)
	if err != nil {
		t.Fatalf("list resumes: %v", err)
	}
	if len(mine) != 1 || mine[0].Slug != "alice-a" {
		t.Fatalf("owner list wrong: %+v", mine)
	}

	// 普通用户的属主过滤被忽略，看到的永远是自己的。
	filtered, err := s.ListResumes(ctx, alice, bob.ID)
	if err != nil {
		t.Fatalf("filtered list: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Slug != "alice-a" {
		t.Fatalf("non-admin filter should be ignored: %+v", filtered)
	}

	all, err := s.ListResumes(ctx, admin, 0)
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("admin should see all resumes, got %d", len(all))
	}

	bobOnly, err := s.ListResumes(ctx, admin, bob.ID)
	if err != nil {
		t.Fatalf("admin filtered list: %v", err)
	}
	if len(bobOnly) != 1 || bobOnly[0].Slug != "bob-b" {
		t.Fatalf("admin owner filter wrong: %+v", bobOnly)
	}
}

func TestCreateResume_InactiveTemplateRejected(t *testing.T) {
	s := newTestStore(t)
	alice := seedUser(t, s, "alice", database.RoleCandidate)
	ctx := context.Background()

	tpl, err := s.CreateTemplate(ctx, TemplateInput{
		Name:       "Minimal",
		FormatType: database.FormatModern,
	})
	if err != nil {
		t.Fatalf("create template: %v", err)
	}
	if err := s.DeactivateTemplate(ctx, tpl.ID); err != nil {
		t.Fatalf("deactivate template: %v", err)
	}

	_, err = s.CreateResume(ctx, alice, ResumeInput{
		Title:      "T",
		Slug:       "alice-t",
		TemplateID: &tpl.ID,
	})
	if !errors.Is(err, apperr.ErrValidationFailed) {
		t.Fatalf("expected validation failure for inactive template, got %v", err)
	}
}
