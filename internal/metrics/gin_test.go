package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestGinMiddleware_UnmatchedPathCollapsed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(GinMiddleware())
	router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	before := testutil.ToFloat64(requestTotal.WithLabelValues(http.MethodGet, "unmatched", "404"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/no/such/route/abc123", nil))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/another/random/url", nil))

	after := testutil.ToFloat64(requestTotal.WithLabelValues(http.MethodGet, "unmatched", "404"))
	if after-before != 2 {
		t.Fatalf("unmatched routes should share one label, got delta %v", after-before)
	}
}

func TestGinMiddleware_MatchedPathLabeled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(GinMiddleware())
	router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	before := testutil.ToFloat64(requestTotal.WithLabelValues(http.MethodGet, "/health", "200"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	after := testutil.ToFloat64(requestTotal.WithLabelValues(http.MethodGet, "/health", "200"))
	if after-before != 1 {
		t.Fatalf("matched route not counted, got delta %v", after-before)
	}
}
