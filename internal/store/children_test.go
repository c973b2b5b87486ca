package store

import (
	"context"
	"errors"
	"testing"

	"resumeforge/internal/apperr"
	"resumeforge/internal/database"
)

func TestCreateSection_DuplicateTypeConflicts(t *testing.T) {
	s := newTestStore(t)
	alice := seedUser(t, s, "alice", database.RoleCandidate)
	resume := seedResume(t, s, alice, "R", "alice-r")
	ctx := context.Background()

	if _, err := s.CreateSection(ctx, alice, resume.ID, SectionInput{
		SectionType: database.SectionSummary,
		Title:       "About me",
	}); err != nil {
		t.Fatalf("first section: %v", err)
	}

	_, err := s.CreateSection(ctx, alice, resume.ID, SectionInput{
		SectionType: database.SectionSummary,
		Title:       "About me again",
	})
	if !errors.Is(err, apperr.ErrUniquenessViolation) {
		t.Fatalf("expected uniqueness violation, got %v", err)
	}
	if field := apperr.FieldOf(err); field != "section_type" {
		t.Fatalf("expected conflict field section_type, got %q", field)
	}
}

func TestCreateTechnicalSkill_DuplicateTechnologyConflicts(t *testing.T) {
	s := newTestStore(t)
	alice := seedUser(t, s, "alice", database.RoleCandidate)
	resume := seedResume(t, s, alice, "R", "alice-r")
	goTech := seedTechnology(t, s, "Go", database.CategoryLanguage)
	ctx := context.Background()

	if _, err := s.CreateTechnicalSkill(ctx, alice, resume.ID, TechnicalSkillInput{
		TechnologyID: goTech.ID,
		Proficiency:  80,
	}); err != nil {
		t.Fatalf("first skill: %v", err)
	}

	_, err := s.CreateTechnicalSkill(ctx, alice, resume.ID, TechnicalSkillInput{
		TechnologyID: goTech.ID,
		Proficiency:  60,
	})
	if !errors.Is(err, apperr.ErrUniquenessViolation) {
		t.Fatalf("expected uniqueness violation, got %v", err)
	}
}

func TestCreateTechnicalSkill_ProficiencyOutsideSet(t *testing.T) {
	s := newTestStore(t)
	alice := seedUser(t, s, "alice", database.RoleCandidate)
	resume := seedResume(t, s, alice, "R", "alice-r")
	goTech := seedTechnology(t, s, "Go", database.CategoryLanguage)
	ctx := context.Background()

	for _, p := range []int{0, 50, 99, 101, -20} {
		_, err := s.CreateTechnicalSkill(ctx, alice, resume.ID, TechnicalSkillInput{
			TechnologyID: goTech.ID,
			Proficiency:  p,
		})
		if !errors.Is(err, apperr.ErrValidationFailed) {
			t.Fatalf("proficiency %d: expected validation failure, got %v", p, err)
		}
	}
}

func TestUpdateTechnicalSkill_TechnologyImmutable(t *testing.T) {
	s := newTestStore(t)
	alice := seedUser(t, s, "alice", database.RoleCandidate)
	resume := seedResume(t, s, alice, "R", "alice-r")
	goTech := seedTechnology(t, s, "Go", database.CategoryLanguage)
	rustTech := seedTechnology(t, s, "Rust", database.CategoryLanguage)
	ctx := context.Background()

	skill, err := s.CreateTechnicalSkill(ctx, alice, resume.ID, TechnicalSkillInput{
		TechnologyID: goTech.ID,
		Proficiency:  80,
	})
	if err != nil {
		t.Fatalf("create skill: %v", err)
	}

	_, err = s.UpdateTechnicalSkill(ctx, alice, skill.ID, TechnicalSkillInput{
		TechnologyID: rustTech.ID,
		Proficiency:  60,
	})
	if !errors.Is(err, apperr.ErrValidationFailed) {
		t.Fatalf("expected validation failure on technology change, got %v", err)
	}
}

func TestCreateEducation_DateRangeRejectedWithoutRow(t *testing.T) {
	s := newTestStore(t)
	alice := seedUser(t, s, "alice", database.RoleCandidate)
	resume := seedResume(t, s, alice, "R", "alice-r")
	ctx := context.Background()

	_, err := s.CreateEducation(ctx, alice, resume.ID, EducationInput{
		Degree:      "BSc",
		Institution: "MIT",
		StartDate:   date(2020, 9, 1),
		EndDate:     date(2019, 6, 1),
	})
	if !errors.Is(err, apperr.ErrDateRangeInvalid) {
		t.Fatalf("expected date range error, got %v", err)
	}
	if n := countRows(t, s, &database.Education{}, "resume_id = ?", resume.ID); n != 0 {
		t.Fatalf("rejected education left %d rows", n)
	}
}

func TestCreateEducation_GPABounds(t *testing.T) {
	s := newTestStore(t)
	alice := seedUser(t, s, "alice", database.RoleCandidate)
	resume := seedResume(t, s, alice, "R", "alice-r")
	ctx := context.Background()

	base := EducationInput{
		Degree:      "BSc",
		Institution: "MIT",
		StartDate:   date(2016, 9, 1),
		EndDate:     date(2020, 6, 1),
	}

	for _, bad := range []float64{-0.1, 4.1, 3.85} {
		in := base
		gpa := bad
		in.GPA = &gpa
		if _, err := s.CreateEducation(ctx, alice, resume.ID, in); !errors.Is(err, apperr.ErrValidationFailed) {
			t.Fatalf("gpa %v: expected validation failure, got %v", bad, err)
		}
	}

	in := base
	gpa := 3.8
	in.GPA = &gpa
	if _, err := s.CreateEducation(ctx, alice, resume.ID, in); err != nil {
		t.Fatalf("valid gpa rejected: %v", err)
	}
}

func TestCreateProject_EndBeforeStartRejected(t *testing.T) {
	s := newTestStore(t)
	alice := seedUser(t, s, "alice", database.RoleCandidate)
	resume := seedResume(t, s, alice, "R", "alice-r")
	ctx := context.Background()

	_, err := s.CreateProject(ctx, alice, resume.ID, ProjectInput{
		Title:       "P",
		Role:        "Lead",
		Description: "desc",
		StartDate:   date(2022, 5, 1),
		EndDate:     datePtr(2022, 4, 1),
	})
	if !errors.Is(err, apperr.ErrDateRangeInvalid) {
		t.Fatalf("expected date range error, got %v", err)
	}
	if n := countRows(t, s, &database.Project{}, "resume_id = ?", resume.ID); n != 0 {
		t.Fatalf("rejected project left %d rows", n)
	}
}

func TestCreateWorkExperience_MissingTechnologyNoRow(t *testing.T) {
	s := newTestStore(t)
	alice := seedUser(t, s, "alice", database.RoleCandidate)
	resume := seedResume(t, s, alice, "R", "alice-r")
	ctx := context.Background()

	_, err := s.CreateWorkExperience(ctx, alice, resume.ID, WorkExperienceInput{
		JobTitle:      "Engineer",
		Company:       "Acme",
		StartDate:     date(2020, 1, 1),
		TechnologyIDs: []uint{9999},
	})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found for dangling technology, got %v", err)
	}
	if n := countRows(t, s, &database.WorkExperience{}, "resume_id = ?", resume.ID); n != 0 {
		t.Fatalf("failed create left %d rows", n)
	}
}

func TestChildWrite_OwnershipEnforced(t *testing.T) {
	s := newTestStore(t)
	alice := seedUser(t, s, "alice", database.RoleCandidate)
	bob := seedUser(t, s, "bob", database.RoleCandidate)
	resume := seedResume(t, s, alice, "R", "alice-r")
	ctx := context.Background()

	award, err := s.CreateAward(ctx, alice, resume.ID, AwardInput{
		Title:     "Best Engineer",
		Issuer:    "Acme",
		IssueDate: date(2023, 3, 1),
		Category:  database.AwardProfessional,
	})
	if err != nil {
		t.Fatalf("create award: %v", err)
	}

	// 陌生人不能写：创建、更新、删除全部拒绝且不改动任何行。
	if _, err := s.CreateAward(ctx, bob, resume.ID, AwardInput{
		Title:     "Fake",
		Issuer:    "Evil",
		IssueDate: date(2023, 3, 1),
		Category:  database.AwardProfessional,
	}); !errors.Is(err, apperr.ErrOwnershipViolation) {
		t.Fatalf("expected ownership violation on create, got %v", err)
	}

	if _, err := s.UpdateAward(ctx, bob, award.ID, AwardInput{
		Title:     "Hijacked",
		Issuer:    "Evil",
		IssueDate: date(2023, 3, 1),
		Category:  database.AwardProfessional,
	}); !errors.Is(err, apperr.ErrOwnershipViolation) {
		t.Fatalf("expected ownership violation on update, got %v", err)
	}

	if err := s.DeleteAward(ctx, bob, award.ID); !errors.Is(err, apperr.ErrOwnershipViolation) {
		t.Fatalf("expected ownership violation on delete, got %v", err)
	}

	var current database.Award
	if err := s.db.First(&current, award.ID).Error; err != nil {
		t.Fatalf("reload award: %v", err)
	}
	if current.Title != "Best Engineer" {
		t.Fatalf("award mutated by stranger: %q", current.Title)
	}
}

func TestGetResume_SkillOrderingInAggregate(t *testing.T) {
	s := newTestStore(t)
	alice := seedUser(t, s, "alice", database.RoleCandidate)
	resume := seedResume(t, s, alice, "R", "alice-r")
	ctx := context.Background()

	// 插入顺序与期望顺序相反：同熟练度按技术名正序排列。
	for _, seed := range []struct {
		name        string
		proficiency int
	}{
		{"Rust", 80},
		{"Go", 80},
		{"Python", 100},
	} {
		tech := seedTechnology(t, s, seed.name, database.CategoryLanguage)
		if _, err := s.CreateTechnicalSkill(ctx, alice, resume.ID, TechnicalSkillInput{
			TechnologyID: tech.ID,
			Proficiency:  seed.proficiency,
		}); err != nil {
			t.Fatalf("seed skill %s: %v", seed.name, err)
		}
	}

	got, err := s.GetResume(ctx, alice, resume.ID)
	if err != nil {
		t.Fatalf("get resume: %v", err)
	}
	want := []string{"Python", "Go", "Rust"}
	if len(got.TechnicalSkills) != len(want) {
		t.Fatalf("expected %d skills, got %d", len(want), len(got.TechnicalSkills))
	}
	for i, name := range want {
		if got.TechnicalSkills[i].Technology.Name != name {
			t.Fatalf("position %d: expected %s, got %s", i, name, got.TechnicalSkills[i].Technology.Name)
		}
	}
}

func TestListSpokenLanguages_Ordering(t *testing.T) {
	s := newTestStore(t)
	alice := seedUser(t, s, "alice", database.RoleCandidate)
	resume := seedResume(t, s, alice, "R", "alice-r")
	ctx := context.Background()

	for _, l := range []SpokenLanguageInput{
		{Name: "Spanish", Proficiency: database.ProficiencyLimited},
		{Name: "English", Proficiency: database.ProficiencyNative},
		{Name: "German", Proficiency: database.ProficiencyNative},
	} {
		if _, err := s.CreateSpokenLanguage(ctx, alice, resume.ID, l); err != nil {
			t.Fatalf("seed language %s: %v", l.Name, err)
		}
	}

	rows, err := s.ListSpokenLanguages(ctx, alice, resume.ID)
	if err != nil {
		t.Fatalf("list languages: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 languages, got %d", len(rows))
	}
	// 同熟练度之间按名称正序。
	if rows[0].Proficiency != rows[1].Proficiency {
		return
	}
	if rows[0].Name > rows[1].Name {
		t.Fatalf("names not sorted within proficiency: %s before %s", rows[0].Name, rows[1].Name)
	}
}
