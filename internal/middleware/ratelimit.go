// AngelaMos | 2026
// ratelimit.go

package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	redis_rate "github.com/go-redis/redis_rate/v10"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/aurafinsurance/insurance-backend/internal/core"
)

const (
	localBucketCapacity = 10_000
	localBucketTTL      = 10 * time.Minute
)

// Limiter is a token bucket kept in Redis. While Redis is unreachable
// the same limit is enforced per process instead.
type Limiter struct {
	redis    *redis_rate.Limiter
	local    *localLimiter
	keyFor   func(*http.Request) string
	limitFor func(*http.Request) (redis_rate.Limit, string)
}

// GlobalLimiter applies one allowance per client IP to every request.
func GlobalLimiter(rdb *redis.Client, requests, burst int, window time.Duration) *Limiter {
	limit := redis_rate.Limit{Rate: requests, Burst: burst, Period: window}
	return newLimiter(rdb, KeyByIP, func(*http.Request) (redis_rate.Limit, string) {
		return limit, ""
	})
}

// IntakeLimiter guards anonymous submission endpoints per IP and endpoint.
func IntakeLimiter(rdb *redis.Client, requests, burst int) func(http.Handler) http.Handler {
	limit := PerMinute(requests, burst)
	return newLimiter(rdb, KeyByIPAndEndpoint, func(*http.Request) (redis_rate.Limit, string) {
		return limit, ""
	}).Handler
}

type RoleLimit struct {
	RequestsPerMinute int
	BurstSize         int
}

var DefaultRoleLimits = map[string]RoleLimit{
	core.RoleClient: {RequestsPerMinute: 60, BurstSize: 10},
	core.RoleAgent:  {RequestsPerMinute: 120, BurstSize: 20},
	core.RoleAdmin:  {RequestsPerMinute: 600, BurstSize: 100},
}

// RoleRateLimiter limits authenticated callers per user, sized by role.
// It must run after Authenticator. Unknown roles get the client allowance.
func RoleRateLimiter(
	rdb *redis.Client,
	limits map[string]RoleLimit,
) func(http.Handler) http.Handler {
	return newLimiter(rdb, KeyByUser, func(r *http.Request) (redis_rate.Limit, string) {
		role := GetUserRole(r.Context())
		cfg, ok := limits[role]
		if !ok {
			role = core.RoleClient
			cfg = limits[core.RoleClient]
		}
		return PerMinute(cfg.RequestsPerMinute, cfg.BurstSize), role
	}).Handler
}

func newLimiter(
	rdb *redis.Client,
	keyFor func(*http.Request) string,
	limitFor func(*http.Request) (redis_rate.Limit, string),
) *Limiter {
	return &Limiter{
		redis:    redis_rate.NewLimiter(rdb),
		local:    newLocalLimiter(),
		keyFor:   keyFor,
		limitFor: limitFor,
	}
}

func (l *Limiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit, role := l.limitFor(r)
		key := l.keyFor(r)

		res, err := l.redis.Allow(r.Context(), key, limit)
		if err != nil {
			slog.Debug("rate limiter using local buckets", "error", err)
			res = l.local.allow(key, limit)
		}

		if role != "" {
			w.Header().Set("X-RateLimit-Role", role)
		}
		setRateLimitHeaders(w, res, limit)

		if res.Allowed == 0 {
			writeRateLimitExceeded(w, res)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ClientIP returns the caller address. The last X-Forwarded-For hop is
// used because it is the one appended by our own proxy.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		return strings.TrimSpace(hops[len(hops)-1])
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func KeyByIP(r *http.Request) string {
	return "ratelimit:ip:" + ClientIP(r)
}

func KeyByUser(r *http.Request) string {
	if userID := GetUserID(r.Context()); userID != "" {
		return "ratelimit:user:" + userID
	}
	return KeyByIP(r)
}

func KeyByIPAndEndpoint(r *http.Request) string {
	return KeyByIP(r) + ":endpoint:" + normalizeEndpoint(r.URL.Path)
}

// normalizeEndpoint folds ids out of the path so one bucket covers
// every resource behind the same route.
func normalizeEndpoint(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i, part := range parts {
		if isUUID(part) || isNumeric(part) {
			parts[i] = "{id}"
		}
	}
	return "/" + strings.Join(parts, "/")
}

func isUUID(s string) bool {
	return len(s) == 36 && s[8] == '-' && s[13] == '-' && s[18] == '-' && s[23] == '-'
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func PerMinute(requests, burst int) redis_rate.Limit {
	return redis_rate.Limit{Rate: requests, Burst: burst, Period: time.Minute}
}

func setRateLimitHeaders(w http.ResponseWriter, res *redis_rate.Result, limit redis_rate.Limit) {
	h := w.Header()
	h.Set("X-RateLimit-Limit", strconv.Itoa(limit.Rate))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
	h.Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(res.ResetAfter).Unix(), 10))
	h.Set("RateLimit-Policy", fmt.Sprintf("%d;w=%d", limit.Rate, int(limit.Period.Seconds())))
	h.Set("RateLimit", fmt.Sprintf("%d;t=%d", res.Remaining, int(res.ResetAfter.Seconds())))
}

func writeRateLimitExceeded(w http.ResponseWriter, res *redis_rate.Result) {
	retryAfter := max(int(res.RetryAfter.Seconds()), 1)

	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	core.JSON(w, http.StatusTooManyRequests, core.Response{
		Success: false,
		Error: &core.ErrorBody{
			Code:    "RATE_LIMITED",
			Message: fmt.Sprintf("rate limit exceeded, retry after %d seconds", retryAfter),
		},
	})
}

// localLimiter keeps in-process buckets. Idle buckets expire from the
// LRU, which only resets them to a full allowance.
type localLimiter struct {
	mu      sync.Mutex
	buckets *expirable.LRU[string, *rate.Limiter]
}

func newLocalLimiter() *localLimiter {
	return &localLimiter{
		buckets: expirable.NewLRU[string, *rate.Limiter](localBucketCapacity, nil, localBucketTTL),
	}
}

func (l *localLimiter) allow(key string, limit redis_rate.Limit) *redis_rate.Result {
	interval := limit.Period / time.Duration(max(limit.Rate, 1))

	l.mu.Lock()
	bucket, ok := l.buckets.Get(key)
	if !ok {
		bucket = rate.NewLimiter(rate.Every(interval), limit.Burst)
	}
	l.buckets.Add(key, bucket)
	l.mu.Unlock()

	res := &redis_rate.Result{
		Limit:      limit,
		Remaining:  max(int(bucket.Tokens())-1, 0),
		RetryAfter: -1,
		ResetAfter: interval,
	}

	if bucket.Allow() {
		res.Allowed = 1
		return res
	}

	res.Remaining = 0
	res.RetryAfter = interval
	return res
}
