package api

import (
	"log/slog"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestIsValidAssetObjectKey(t *testing.T) {
	valid := []string{
		"template-thumbnails/0d4e6f0a-8f2a-4c7e-9b1d-5c3a2e1f0b9d.png",
		"technology-icons/0d4e6f0a-8f2a-4c7e-9b1d-5c3a2e1f0b9d.PNG",
	}
	for _, key := range valid {
		if !isValidAssetObjectKey(key) {
			t.Fatalf("valid key rejected: %q", key)
		}
	}

	invalid := []string{
		"",
		"etc/passwd.png",
		"template-thumbnails/../secrets.png",
		"template-thumbnails//double.png",
		"template-thumbnails\\windows.png",
		"template-thumbnails/evil.exe",
		"user-assets/1/photo.png",
	}
	for _, key := range invalid {
		if isValidAssetObjectKey(key) {
			t.Fatalf("invalid key accepted: %q", key)
		}
	}
}

func TestGetAssetURL_RejectsForeignKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewAssetHandler(nil, nil, slog.Default(), "", 0)

	// 非法键在触达对象存储之前就被拒绝。
	c, w := newJSONContext(t, http.MethodGet, "/v1/assets/view", nil, 1, "candidate")
	c.Request.URL.RawQuery = "key=secret-bucket/dump.png"
	h.GetAssetURL(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", w.Code, w.Body.String())
	}
}
