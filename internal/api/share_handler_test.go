package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"resumeforge/internal/database"
	"resumeforge/internal/store"
)

type fakeShareTokens struct {
	values map[string]string
}

func newFakeShareTokens() *fakeShareTokens {
	return &fakeShareTokens{values: make(map[string]string)}
}

func (f *fakeShareTokens) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	f.values[key] = fmt.Sprint(value)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeShareTokens) Get(_ context.Context, key string) *redis.StringCmd {
	value, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(value, nil)
}

func (f *fakeShareTokens) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var removed int64
	for _, key := range keys {
		if _, ok := f.values[key]; ok {
			delete(f.values, key)
			removed++
		}
	}
	return redis.NewIntResult(removed, nil)
}

func seedSharedResume(t *testing.T, st *store.Store, actor store.Actor, title, slug string) *database.Resume {
	t.Helper()
	resume, err := st.CreateResume(context.Background(), actor, store.ResumeInput{
		Title:      title,
		Slug:       slug,
		Visibility: database.VisibilityShared,
	})
	if err != nil {
		t.Fatalf("seed shared resume: %v", err)
	}
	return resume
}

func TestRevokeShareLink_TokenMustBelongToResume(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, st := newTestHandler(t)
	tokens := newFakeShareTokens()
	h := NewShareHandler(st, tokens, slog.Default(), time.Hour)

	victim := store.Actor{ID: 1, Role: database.RoleCandidate}
	attacker := store.Actor{ID: 2, Role: database.RoleCandidate}
	seedSharedResume(t, st, victim, "Victim", "victim-resume")
	attackerResume := seedSharedResume(t, st, attacker, "Attacker", "attacker-resume")

	tokens.values[shareTokenKeyPrefix+"victim-token"] = "victim-resume"

	// 攻击者拿着别人的令牌，挂在自己的简历 ID 上撤销。
	c, w := newJSONContext(t, http.MethodDelete, "/v1/resumes/2/share/victim-token", nil, 2, database.RoleCandidate)
	c.Params = gin.Params{
		{Key: "id", Value: fmt.Sprint(attackerResume.ID)},
		{Key: "token", Value: "victim-token"},
	}
	h.RevokeShareLink(c)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d body=%s", w.Code, w.Body.String())
	}
	if _, ok := tokens.values[shareTokenKeyPrefix+"victim-token"]; !ok {
		t.Fatalf("foreign token was deleted")
	}
}

func TestRevokeShareLink_OwnerRevokesOwnToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, st := newTestHandler(t)
	tokens := newFakeShareTokens()
	h := NewShareHandler(st, tokens, slog.Default(), time.Hour)

	owner := store.Actor{ID: 1, Role: database.RoleCandidate}
	resume := seedSharedResume(t, st, owner, "Mine", "my-resume")
	tokens.values[shareTokenKeyPrefix+"my-token"] = "my-resume"

	c, w := newJSONContext(t, http.MethodDelete, "/v1/resumes/1/share/my-token", nil, 1, database.RoleCandidate)
	c.Params = gin.Params{
		{Key: "id", Value: fmt.Sprint(resume.ID)},
		{Key: "token", Value: "my-token"},
	}
	h.RevokeShareLink(c)
	c.Writer.WriteHeaderNow()

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d body=%s", w.Code, w.Body.String())
	}
	if _, ok := tokens.values[shareTokenKeyPrefix+"my-token"]; ok {
		t.Fatalf("own token not deleted")
	}
}

func TestRevokeShareLink_UnknownToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, st := newTestHandler(t)
	tokens := newFakeShareTokens()
	h := NewShareHandler(st, tokens, slog.Default(), time.Hour)

	owner := store.Actor{ID: 1, Role: database.RoleCandidate}
	resume := seedSharedResume(t, st, owner, "Mine", "my-resume")

	c, w := newJSONContext(t, http.MethodDelete, "/v1/resumes/1/share/gone", nil, 1, database.RoleCandidate)
	c.Params = gin.Params{
		{Key: "id", Value: fmt.Sprint(resume.ID)},
		{Key: "token", Value: "gone"},
	}
	h.RevokeShareLink(c)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d body=%s", w.Code, w.Body.String())
	}
}
