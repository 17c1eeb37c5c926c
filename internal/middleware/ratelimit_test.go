// AngelaMos | 2026
// ratelimit_test.go

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redis_rate "github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baytalsudani/console/internal/auth"
	"github.com/baytalsudani/console/internal/config"
	"github.com/baytalsudani/console/internal/core"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimiterBlocksAfterBurst(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	rl := NewRateLimiter(rdb, RateLimitConfig{
		Name:     "login",
		Limit:    PerMinute(2, 2),
		KeyFunc:  KeyByIPAndEndpoint,
		Messages: core.NewMessages("en"),
	})
	h := rl.Handler(okHandler())

	var last *httptest.ResponseRecorder
	var codes []int
	for range 3 {
		req := httptest.NewRequest(http.MethodPost, "/admin/login", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		last = httptest.NewRecorder()
		h.ServeHTTP(last, req)
		codes = append(codes, last.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Contains(t, last.Body.String(), "RATE_LIMITED")
	assert.Contains(t, last.Body.String(), "Too many attempts")
	assert.True(t, mr.Exists("rate:console:ratelimit:login:ip:10.0.0.1:/admin/login"))
}

func TestRateLimiterRedirectsBrowsers(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	h := NewRateLimiter(rdb, RateLimitConfig{
		Name:     "login",
		Limit:    PerMinute(1, 1),
		KeyFunc:  KeyByIPAndEndpoint,
		Redirect: func(r *http.Request) string { return r.URL.Path },
		Messages: core.NewMessages("en"),
	}).Handler(okHandler())

	for range 2 {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/merchant/login", nil))
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/merchant/login", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/merchant/login", rec.Header().Get("Location"))
	assert.Equal(t, "Too many attempts, please try again shortly", flashFrom(t, rec).Message)

	api := httptest.NewRequest(http.MethodPost, "/merchant/login", nil)
	api.Header.Set("Accept", "application/json")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, api)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRateLimiterSeparatesPortals(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	h := NewRateLimiter(rdb, RateLimitConfig{
		Limit:   PerMinute(1, 1),
		KeyFunc: KeyByIPAndEndpoint,
	}).Handler(okHandler())

	for _, path := range []string{"/admin/login", "/merchant/login"} {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Limit"))
	}
}

func TestRateLimiterFallsBackWhenRedisIsDown(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{
		Addr:        mr.Addr(),
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	})
	t.Cleanup(func() { _ = rdb.Close() })
	mr.Close()

	h := NewRateLimiter(rdb, RateLimitConfig{Limit: PerMinute(1, 1)}).Handler(okHandler())

	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	second := httptest.NewRecorder()
	h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))
}

func TestKeys(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/merchant/products/42/edit", nil)
	req.RemoteAddr = "192.0.2.7:4000"
	assert.Equal(t, "ip:192.0.2.7", KeyByIP(req))
	assert.Equal(t, "ip:192.0.2.7", KeyByUser(req))
	assert.Equal(t, "ip:192.0.2.7:/merchant/products/{id}/edit", KeyByIPAndEndpoint(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.1, 198.51.100.2")
	assert.Equal(t, "ip:198.51.100.2", KeyByIP(req))

	ctx := auth.WithIdentity(req.Context(), &auth.Identity{SubjectID: 4, Role: auth.RoleMerchant})
	assert.Equal(t, "merchant:4", KeyByUser(req.WithContext(ctx)))
}

func TestLimitsFromConfig(t *testing.T) {
	general, login := Limits(config.RateLimitConfig{
		Requests:      100,
		Burst:         20,
		Window:        time.Minute,
		LoginRequests: 5,
		LoginBurst:    5,
	})

	require.Equal(t, redis_rate.Limit{Rate: 100, Burst: 20, Period: time.Minute}, general)
	assert.Equal(t, redis_rate.Limit{Rate: 5, Burst: 5, Period: time.Minute}, login)
}
