// AngelaMos | 2026
// service.go

package quote

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/aurafinsurance/insurance-backend/internal/core"
	"github.com/aurafinsurance/insurance-backend/internal/policy"
)

// Catalog supplies the active policies a quote may reference.
type Catalog interface {
	ListActive(ctx context.Context) ([]policy.Policy, error)
}

type Service struct {
	repo      Repository
	catalog   Catalog
	validator *validator.Validate
}

func NewService(repo Repository, catalog Catalog) *Service {
	return &Service{
		repo:      repo,
		catalog:   catalog,
		validator: core.NewValidator(),
	}
}

// Submit validates and stores a quote request. A referenced policy must
// be active and belong to the chosen provider and type. Its name is
// folded into the stored message.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*Quote, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, core.ValidationError(core.FormatValidationError(err))
	}

	var policyName string
	var policyID *string
	if req.PolicyID != nil && *req.PolicyID != "" {
		p, err := s.resolvePolicy(ctx, req)
		if err != nil {
			return nil, err
		}
		policyName = p.Name
		policyID = &p.ID
	}

	var message string
	if req.Message != nil {
		message = *req.Message
	}

	q := &Quote{
		ID:              uuid.New().String(),
		ServiceProvider: strings.TrimSpace(req.ServiceProvider),
		InsuranceType:   strings.TrimSpace(req.InsuranceType),
		PolicyID:        policyID,
		FullName:        strings.TrimSpace(req.FullName),
		Email:           core.NormalizeEmail(req.Email),
		Phone:           strings.TrimSpace(req.Phone),
		Age:             req.Age,
		CoverageAmount:  nonEmpty(req.CoverageAmount),
		Message:         ComposeMessage(policyName, message),
	}

	if err := s.repo.Create(ctx, q); err != nil {
		return nil, err
	}

	return q, nil
}

func (s *Service) resolvePolicy(ctx context.Context, req SubmitRequest) (policy.Policy, error) {
	active, err := s.catalog.ListActive(ctx)
	if err != nil {
		return policy.Policy{}, fmt.Errorf("load catalog: %w", err)
	}

	options := policy.PoliciesFor(active, req.ServiceProvider, req.InsuranceType)
	p, ok := policy.Find(options, *req.PolicyID)
	if !ok {
		return policy.Policy{}, core.ValidationError("selected policy is not available")
	}

	return p, nil
}

func (s *Service) List(ctx context.Context) ([]Quote, error) {
	return s.repo.List(ctx)
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
