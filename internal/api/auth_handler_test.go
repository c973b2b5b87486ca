package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"resumeforge/internal/database"
)

func newTestAuthHandler(t *testing.T) *AuthHandler {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&database.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewAuthHandler(db, nil, nil, slog.Default(), 10, 5, 0)
}

func TestRegister_DuplicateTranslatedToConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestAuthHandler(t)

	payload := gin.H{
		"email":    "alice@example.com",
		"username": "alice",
		"password": "correct-horse-battery",
	}
	c, w := newJSONContext(t, http.MethodPost, "/v1/auth/register", payload, 0, "")
	h.Register(c)
	if w.Code != http.StatusCreated {
		t.Fatalf("first register: expected 201 got %d body=%s", w.Code, w.Body.String())
	}

	// 重复用户名直接撞唯一索引，必须翻译成 409 而不是 500。
	payload["email"] = "alice2@example.com"
	c, w = newJSONContext(t, http.MethodPost, "/v1/auth/register", payload, 0, "")
	h.Register(c)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate username: expected 409 got %d body=%s", w.Code, w.Body.String())
	}

	payload["email"] = "alice@example.com"
	payload["username"] = "alice-two"
	c, w = newJSONContext(t, http.MethodPost, "/v1/auth/register", payload, 0, "")
	h.Register(c)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate email: expected 409 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestRegister_AdminRoleRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestAuthHandler(t)

	payload := gin.H{
		"email":    "root@example.com",
		"username": "root",
		"password": "correct-horse-battery",
		"role":     "admin",
	}
	c, w := newJSONContext(t, http.MethodPost, "/v1/auth/register", payload, 0, "")
	h.Register(c)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("admin role: expected 400 got %d body=%s", w.Code, w.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp["error"] == "" {
		t.Fatalf("expected error message in body")
	}
}
