// AngelaMos | 2026
// service.go

package policy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/aurafinsurance/insurance-backend/internal/config"
	"github.com/aurafinsurance/insurance-backend/internal/core"
)

const activeKey = "active"

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auraf_catalog_cache_hits_total",
		Help: "Active catalog reads served from memory",
	})
	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auraf_catalog_cache_misses_total",
		Help: "Active catalog reads that went to the database",
	})
)

type Service struct {
	repo  Repository
	cache *expirable.LRU[string, []Policy]
}

func NewService(repo Repository, cfg config.CatalogConfig) *Service {
	size := cfg.CacheSize
	if size <= 0 {
		size = 1
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = time.Minute
	}

	return &Service{
		repo:  repo,
		cache: expirable.NewLRU[string, []Policy](size, nil, ttl),
	}
}

// ListActive returns the public catalog. Results are cached until the
// TTL passes or an admin changes the catalog.
func (s *Service) ListActive(ctx context.Context) ([]Policy, error) {
	if cached, ok := s.cache.Get(activeKey); ok {
		cacheHits.Inc()
		return cached, nil
	}
	cacheMisses.Inc()

	policies, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Add(activeKey, policies)
	return policies, nil
}

func (s *Service) ListAll(ctx context.Context, actor core.Actor) ([]Policy, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("list policies: %w", core.ErrForbidden)
	}
	return s.repo.ListAll(ctx)
}

func (s *Service) Create(
	ctx context.Context,
	actor core.Actor,
	req CreatePolicyRequest,
) (*Policy, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("create policy: %w", core.ErrForbidden)
	}

	name := strings.TrimSpace(req.Name)
	policyType := strings.TrimSpace(req.PolicyType)
	if name == "" || policyType == "" {
		return nil, core.ValidationError("name and policy_type are required")
	}

	createdBy := actor.UserID
	p := &Policy{
		ID:              uuid.New().String(),
		Name:            name,
		PolicyType:      policyType,
		Provider:        trimmed(req.Provider),
		PremiumRange:    trimmed(req.PremiumRange),
		Description:     trimmed(req.Description),
		CoverageDetails: trimmed(req.CoverageDetails),
		FileURL:         trimmed(req.FileURL),
		IsActive:        true,
		CreatedBy:       &createdBy,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.cache.Purge()
	return p, nil
}

// SetActive toggles catalog visibility. Policies are never deleted so
// quotes and commissions keep their reference.
func (s *Service) SetActive(
	ctx context.Context,
	actor core.Actor,
	id string,
	active bool,
) (*Policy, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("set policy active: %w", core.ErrForbidden)
	}

	p, err := s.repo.SetActive(ctx, id, active, actor.UserID)
	if err != nil {
		return nil, err
	}

	s.cache.Purge()
	return p, nil
}

func (s *Service) Providers(ctx context.Context) ([]string, error) {
	policies, err := s.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return Providers(policies), nil
}

func (s *Service) Types(ctx context.Context, provider string) ([]string, error) {
	policies, err := s.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return TypeOptions(policies, provider), nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
