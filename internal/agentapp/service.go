// AngelaMos | 2026
// service.go

package agentapp

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/aurafinsurance/insurance-backend/internal/core"
)

// DocumentChecker reports whether an uploaded ID document exists.
type DocumentChecker interface {
	Exists(ref string) bool
}

type Service struct {
	repo      Repository
	documents DocumentChecker
	validator *validator.Validate
}

func NewService(repo Repository, documents DocumentChecker) *Service {
	return &Service{
		repo:      repo,
		documents: documents,
		validator: core.NewValidator(),
	}
}

func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*Application, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, core.ValidationError(core.FormatValidationError(err))
	}

	docRef := optional(req.IDDocumentRef)
	if docRef != nil && s.documents != nil && !s.documents.Exists(*docRef) {
		return nil, core.ValidationError("id_document_ref does not match an uploaded document")
	}

	a := &Application{
		ID:              uuid.New().String(),
		FullName:        strings.TrimSpace(req.FullName),
		Email:           core.NormalizeEmail(req.Email),
		Phone:           strings.TrimSpace(req.Phone),
		DateOfBirth:     optional(req.DateOfBirth),
		Address:         optional(req.Address),
		City:            optional(req.City),
		State:           optional(req.State),
		Pincode:         optional(req.Pincode),
		ExperienceYears: req.ExperienceYears,
		PreviousCompany: optional(req.PreviousCompany),
		LicenseNumber:   optional(req.LicenseNumber),
		PANNumber:       optional(req.PANNumber),
		BankName:        optional(req.BankName),
		AccountNumber:   optional(req.AccountNumber),
		IFSCCode:        optional(req.IFSCCode),
		IDDocumentRef:   docRef,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

// ReferencedDocuments returns the set of document refs attached to any
// application.
func (s *Service) ReferencedDocuments(ctx context.Context) (map[string]struct{}, error) {
	refs, err := s.repo.DocumentRefs(ctx)
	if err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		set[ref] = struct{}{}
	}
	return set, nil
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
