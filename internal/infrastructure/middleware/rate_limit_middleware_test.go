package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rillid/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRateLimitedRouter(cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(NewHTTPRateLimitMiddleware(cfg))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func doGet(router http.Handler, header map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	router.ServeHTTP(w, req)
	return w
}

// Test that when rate limiting is disabled, middleware lets all requests through.
func TestHTTPRateLimitMiddleware_Disabled_AllowsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := config.DefaultConfig()
	cfg.RateLimiting.Enabled = false
	router := newRateLimitedRouter(cfg)

	for i := 0; i < 5; i++ {
		if w := doGet(router, nil); w.Code != http.StatusOK {
			t.Fatalf("expected status 200 on request %d, got %d", i, w.Code)
		}
	}
}

// Test basic per-IP rate limiting behaviour.
func TestHTTPRateLimitMiddleware_Enabled_RateLimited(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := config.DefaultConfig()
	cfg.RateLimiting.Enabled = true
	cfg.RateLimiting.HTTP.RequestsPerSecond = 1
	cfg.RateLimiting.HTTP.Burst = 1
	cfg.RateLimiting.HTTP.MaxConcurrent = 0
	router := newRateLimitedRouter(cfg)

	assert.Equal(t, http.StatusOK, doGet(router, nil).Code)

	w := doGet(router, nil)
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", body["error"])
	assert.EqualValues(t, 1, body["retry_after"])
}

func TestHTTPRateLimitMiddleware_SeparateClients(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := config.DefaultConfig()
	cfg.RateLimiting.Enabled = true
	cfg.RateLimiting.HTTP.RequestsPerSecond = 1
	cfg.RateLimiting.HTTP.Burst = 1
	router := newRateLimitedRouter(cfg)

	assert.Equal(t, http.StatusOK, doGet(router, map[string]string{"X-Forwarded-For": "10.0.0.1"}).Code)
	assert.Equal(t, http.StatusOK, doGet(router, map[string]string{"X-Forwarded-For": "10.0.0.2, 172.16.0.1"}).Code)
	assert.Equal(t, http.StatusTooManyRequests, doGet(router, map[string]string{"X-Forwarded-For": "10.0.0.1"}).Code)
}

func TestClientLimiters_SweepsIdleClients(t *testing.T) {
	now := time.Unix(0, 0)
	s := newClientLimiters(1, 1)
	s.sweepThreshold = 2
	s.now = func() time.Time { return now }

	first := s.get("10.0.0.1")
	s.get("10.0.0.2")
	assert.Len(t, s.clients, 2)

	now = now.Add(10 * time.Minute)
	s.get("10.0.0.3")
	assert.Len(t, s.clients, 1)
	assert.NotSame(t, first, s.get("10.0.0.1"))
}
