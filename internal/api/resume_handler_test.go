package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"resumeforge/internal/database"
	"resumeforge/internal/store"
)

func newTestHandler(t *testing.T) (*ResumeHandler, *store.Store) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(database.AllModels()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	st := store.New(db)
	return NewResumeHandler(st, slog.Default()), st
}

func newJSONContext(t *testing.T, method, path string, payload any, userID uint, role database.Role) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	body := &bytes.Buffer{}
	if payload != nil {
		if err := json.NewEncoder(body).Encode(payload); err != nil {
			t.Fatalf("encode payload: %v", err)
		}
	}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, body)
	c.Request.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		c.Set("userID", userID)
		c.Set("userRole", string(role))
	}
	return c, w
}

func TestCreateResume_Conflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, st := newTestHandler(t)

	actor := store.Actor{ID: 1, Role: database.RoleCandidate}
	if _, err := st.CreateResume(context.Background(), actor, store.ResumeInput{
		Title: "Backend Engineer",
		Slug:  "backend",
	}); err != nil {
		t.Fatalf("seed resume: %v", err)
	}

	payload := gin.H{"title": "Backend Engineer", "slug": "backend-two"}
	c, w := newJSONContext(t, http.MethodPost, "/v1/resumes", payload, 1, database.RoleCandidate)
	h.CreateResume(c)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d body=%s", w.Code, w.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp["field"] != "title" {
		t.Fatalf("expected conflict field title, got %v", resp["field"])
	}
}

func TestGetResume_ForbiddenForStranger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, st := newTestHandler(t)

	owner := store.Actor{ID: 1, Role: database.RoleCandidate}
	resume, err := st.CreateResume(context.Background(), owner, store.ResumeInput{
		Title: "Backend Engineer",
		Slug:  "backend",
	})
	if err != nil {
		t.Fatalf("seed resume: %v", err)
	}

	c, w := newJSONContext(t, http.MethodGet, "/v1/resumes/1", nil, 2, database.RoleCandidate)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(uint64(resume.ID), 10)}}
	h.GetResume(c)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestCreateEducation_UnprocessableDates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, st := newTestHandler(t)

	owner := store.Actor{ID: 1, Role: database.RoleCandidate}
	resume, err := st.CreateResume(context.Background(), owner, store.ResumeInput{
		Title: "Backend Engineer",
		Slug:  "backend",
	})
	if err != nil {
		t.Fatalf("seed resume: %v", err)
	}

	payload := gin.H{
		"degree":      "BSc",
		"institution": "MIT",
		"start_date":  "2020-09-01",
		"end_date":    "2019-06-01",
	}
	c, w := newJSONContext(t, http.MethodPost, "/v1/resumes/1/educations", payload, 1, database.RoleCandidate)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(uint64(resume.ID), 10)}}
	h.CreateEducation(c)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d body=%s", w.Code, w.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp["field"] != "end_date" {
		t.Fatalf("expected field end_date, got %v", resp["field"])
	}
}

func TestGetPublicResume_NotFoundForPrivate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, st := newTestHandler(t)

	owner := store.Actor{ID: 1, Role: database.RoleCandidate}
	if _, err := st.CreateResume(context.Background(), owner, store.ResumeInput{
		Title: "Backend Engineer",
		Slug:  "backend",
	}); err != nil {
		t.Fatalf("seed resume: %v", err)
	}

	c, w := newJSONContext(t, http.MethodGet, "/v1/public/resumes/backend", nil, 0, "")
	c.Params = gin.Params{{Key: "slug", Value: "backend"}}
	h.GetPublicResume(c)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d body=%s", w.Code, w.Body.String())
	}
}
