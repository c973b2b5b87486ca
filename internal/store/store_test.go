package store

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"resumeforge/internal/database"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(database.AllModels()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return New(db)
}

func seedUser(t *testing.T, s *Store, username string, role database.Role) Actor {
	t.Helper()
	user := database.User{
		Email:    username + "@example.com",
		Username: username,
		Role:     role,
		IsActive: true,
	}
	if role == database.RoleAdmin {
		user.IsStaff = true
		user.IsSuperuser = true
	}
	if err := s.db.Create(&user).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return Actor{ID: user.ID, Role: role}
}

func seedResume(t *testing.T, s *Store, actor Actor, title, slug string) *database.Resume {
	t.Helper()
	resume, err := s.CreateResume(context.Background(), actor, ResumeInput{
		Title: title,
		Slug:  slug,
	})
	if err != nil {
		t.Fatalf("seed resume %s: %v", slug, err)
	}
	return resume
}

func seedTechnology(t *testing.T, s *Store, name string, category database.TechnologyCategory) *database.Technology {
	t.Helper()
	tech, err := s.CreateTechnology(context.Background(), TechnologyInput{
		Name:     name,
		Category: category,
	})
	if err != nil {
		t.Fatalf("seed technology %s: %v", name, err)
	}
	return tech
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := date(year, month, day)
	return &d
}

func countRows(t *testing.T, s *Store, model any, query string, args ...any) int64 {
	t.Helper()
	var count int64
	if err := s.db.Model(model).Where(query, args...).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return count
}
