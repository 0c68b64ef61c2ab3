// AngelaMos | 2026
// service.go

package commission

import (
	"context"
	"fmt"

	"github.com/aurafinsurance/insurance-backend/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListAll(ctx context.Context, actor core.Actor) ([]Commission, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("list commissions: %w", core.ErrForbidden)
	}
	return s.repo.ListAll(ctx)
}

// ListMine returns the acting agent's commissions and their totals.
func (s *Service) ListMine(ctx context.Context, actor core.Actor) ([]Commission, Summary, error) {
	if actor.Role != core.RoleAgent || actor.UserID == "" {
		return nil, Summary{}, fmt.Errorf("list own commissions: %w", core.ErrForbidden)
	}

	cs, err := s.repo.ListForAgent(ctx, actor.UserID)
	if err != nil {
		return nil, Summary{}, err
	}

	return cs, Summarize(cs), nil
}
