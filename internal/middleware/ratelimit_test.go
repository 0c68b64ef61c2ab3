// AngelaMos | 2026
// ratelimit_test.go

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/aurafinsurance/insurance-backend/internal/core"
)

// unreachableRedis forces every limiter onto its local buckets.
func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func noContent(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func TestIntakeLimiterFallsBackToLocalBuckets(t *testing.T) {
	h := IntakeLimiter(unreachableRedis(t), 60, 2)(http.HandlerFunc(noContent))

	send := func(path, ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.RemoteAddr = ip + ":5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusNoContent, send("/v1/quotes", "10.0.0.1").Code)
	assert.Equal(t, http.StatusNoContent, send("/v1/quotes", "10.0.0.1").Code)

	limited := send("/v1/quotes", "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "RATE_LIMITED", errorCode(t, limited))
	assert.NotEmpty(t, limited.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusNoContent, send("/v1/contact", "10.0.0.1").Code, "separate endpoint bucket")
	assert.Equal(t, http.StatusNoContent, send("/v1/quotes", "10.0.0.2").Code, "separate client bucket")
}

func TestRoleRateLimiterSizesByRole(t *testing.T) {
	limits := map[string]RoleLimit{
		core.RoleClient: {RequestsPerMinute: 60, BurstSize: 1},
		core.RoleAdmin:  {RequestsPerMinute: 600, BurstSize: 3},
	}
	h := RoleRateLimiter(unreachableRedis(t), limits)(http.HandlerFunc(noContent))

	send := func(userID, role string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
		req = req.WithContext(withClaims(req.Context(), &AccessTokenClaims{UserID: userID, Role: role}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	first := send("agent-1", core.RoleAgent)
	assert.Equal(t, http.StatusNoContent, first.Code)
	assert.Equal(t, core.RoleClient, first.Header().Get("X-RateLimit-Role"), "unlisted role gets client allowance")
	assert.Equal(t, http.StatusTooManyRequests, send("agent-1", core.RoleAgent).Code)

	for range 3 {
		assert.Equal(t, http.StatusNoContent, send("admin-1", core.RoleAdmin).Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, send("admin-1", core.RoleAdmin).Code)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.10:443"
	assert.Equal(t, "192.0.2.10", ClientIP(req))

	req.Header.Set("X-Real-IP", "198.51.100.7")
	assert.Equal(t, "198.51.100.7", ClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.1, 203.0.113.9")
	assert.Equal(t, "203.0.113.9", ClientIP(req))
}
