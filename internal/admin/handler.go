// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"database/sql"
	"net/http"
	"runtime"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/aurafinsurance/insurance-backend/internal/audit"
	"github.com/aurafinsurance/insurance-backend/internal/core"
)

// Backend is a backing store shown on the stats page.
type Backend struct {
	Name string
	Ping func(ctx context.Context) error
	Pool func() any
}

// PostgresBackend reports the database/sql pool of db.
func PostgresBackend(ping func(context.Context) error, stats func() sql.DBStats) Backend {
	return Backend{
		Name: "postgres",
		Ping: ping,
		Pool: func() any {
			s := stats()
			return DBPoolStats{
				MaxOpen:      s.MaxOpenConnections,
				Open:         s.OpenConnections,
				InUse:        s.InUse,
				Idle:         s.Idle,
				WaitCount:    s.WaitCount,
				WaitDuration: s.WaitDuration.String(),
			}
		},
	}
}

func RedisBackend(ping func(context.Context) error, stats func() *redis.PoolStats) Backend {
	return Backend{
		Name: "redis",
		Ping: ping,
		Pool: func() any {
			s := stats()
			return RedisPoolStats{
				Hits:       s.Hits,
				Misses:     s.Misses,
				Timeouts:   s.Timeouts,
				TotalConns: s.TotalConns,
				IdleConns:  s.IdleConns,
			}
		},
	}
}

type HandlerConfig struct {
	Analytics AnalyticsRepository
	AuditLog  audit.Repository
	Backends  []Backend
}

type Handler struct {
	analytics AnalyticsRepository
	auditLog  audit.Repository
	backends  []Backend
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		analytics: cfg.Analytics,
		auditLog:  cfg.AuditLog,
		backends:  cfg.Backends,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(authenticator, adminOnly)

		r.Get("/analytics", h.GetAnalytics)
		r.Get("/audit", h.ListAudit)
		r.Get("/stats", h.GetSystemStats)
	})
}

func (h *Handler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx, span := core.StartSpan(r.Context(), "admin.analytics")
	defer span.End()

	counts, err := h.analytics.Counts(ctx)
	if err != nil {
		core.SetSpanError(ctx, err)
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, counts)
}

// ListAudit returns the latest entries, or the full history of one
// target when target_type and target_id are both given.
func (h *Handler) ListAudit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	targetType, targetID := q.Get("target_type"), q.Get("target_id")

	if (targetType == "") != (targetID == "") {
		core.BadRequest(w, "target_type and target_id must be given together")
		return
	}

	var (
		entries []audit.Entry
		err     error
	)
	if targetType != "" {
		entries, err = h.auditLog.ListForTarget(r.Context(), targetType, targetID)
	} else {
		limit, _ := strconv.Atoi(q.Get("limit"))
		entries, err = h.auditLog.List(r.Context(), limit)
	}
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	if entries == nil {
		entries = []audit.Entry{}
	}
	core.OK(w, AuditLogResponse{Entries: entries, Count: len(entries)})
}

func (h *Handler) GetSystemStats(w http.ResponseWriter, r *http.Request) {
	resp := SystemStatsResponse{
		Backends: make([]BackendStatus, 0, len(h.backends)),
		Runtime:  readRuntimeStats(),
	}

	for _, b := range h.backends {
		status := BackendStatus{Name: b.Name, Healthy: b.Ping == nil || b.Ping(r.Context()) == nil}
		if b.Pool != nil {
			status.Pool = b.Pool()
		}
		resp.Backends = append(resp.Backends, status)
	}

	core.OK(w, resp)
}

func readRuntimeStats() RuntimeStats {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return RuntimeStats{
		GoVersion:  runtime.Version(),
		Goroutines: runtime.NumGoroutine(),
		HeapBytes:  mem.HeapAlloc,
		GCCycles:   mem.NumGC,
	}
}
