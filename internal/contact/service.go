// AngelaMos | 2026
// service.go

package contact

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/aurafinsurance/insurance-backend/internal/core"
)

type Service struct {
	repo      Repository
	validator *validator.Validate
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:      repo,
		validator: core.NewValidator(),
	}
}

func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*Message, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, core.ValidationError(core.FormatValidationError(err))
	}

	text := strings.TrimSpace(req.Message)
	if text == "" {
		return nil, core.ValidationError("message is required")
	}

	m := &Message{
		ID:      uuid.New().String(),
		Name:    strings.TrimSpace(req.Name),
		Email:   core.NormalizeEmail(req.Email),
		Phone:   optional(req.Phone),
		Subject: optional(req.Subject),
		Message: text,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
