package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func TestRateLimitMiddleware(t *testing.T) {
	r := newEngine(RateLimitMiddleware(NewRateLimiterWith(rate.Limit(0.001), 2)))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, "other IPs have their own bucket")
}

func TestRateLimiterEvictsIdleIPs(t *testing.T) {
	clk := clock.NewMock()
	rl := NewRateLimiterWith(rate.Limit(1), 1)
	rl.clock = clk
	rl.lastSweep = clk.Now()

	first := rl.GetLimiter("10.0.0.1")
	rl.GetLimiter("10.0.0.2")
	assert.Equal(t, 2, rl.Len())

	clk.Add(idleLimiterTTL / 2)
	assert.Same(t, first, rl.GetLimiter("10.0.0.1"), "active IP keeps its bucket")

	clk.Add(idleLimiterTTL / 2)
	rl.GetLimiter("10.0.0.1")
	assert.Equal(t, 1, rl.Len(), "idle IP is swept")

	clk.Add(time.Minute)
	assert.Same(t, first, rl.GetLimiter("10.0.0.1"))
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	r := newEngine(SecurityHeadersMiddleware())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "default-src 'self'")
}
