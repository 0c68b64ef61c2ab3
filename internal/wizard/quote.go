// AngelaMos | 2026
// quote.go

package wizard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aurafinsurance/insurance-backend/internal/core"
	"github.com/aurafinsurance/insurance-backend/internal/policy"
	"github.com/aurafinsurance/insurance-backend/internal/quote"
)

const (
	QuoteWizard = "quote"

	FieldServiceProvider    = "service_provider"
	FieldInsuranceType      = "insurance_type"
	FieldSelectedPolicyID   = "selected_policy_id"
	FieldSelectedPolicyName = "selected_policy_name"
	FieldFullName           = "full_name"
	FieldEmail              = "email"
	FieldPhone              = "phone"
	FieldAge                = "age"
	FieldCoverageAmount     = "coverage_amount"
	FieldMessage            = "message"
)

// QuoteDefinition builds the quote wizard over the active catalog.
func QuoteDefinition(active []policy.Policy) *Definition {
	return &Definition{
		Name: QuoteWizard,
		Steps: []Step{
			{Kind: KindProvider, Title: "Service Provider", Required: []string{FieldServiceProvider}},
			{Kind: KindType, Title: "Insurance Type", Required: []string{FieldInsuranceType}},
			{Kind: KindPolicy, Title: "Choose Policy", Optional: []string{FieldSelectedPolicyID}},
			{
				Kind:     KindDetails,
				Title:    "Personal Details",
				Required: []string{FieldFullName, FieldEmail, FieldPhone},
				Optional: []string{FieldAge, FieldCoverageAmount, FieldMessage},
			},
			{Kind: KindReview, Title: "Review"},
		},
		Dependents: map[string][]string{
			FieldServiceProvider:  {FieldInsuranceType},
			FieldInsuranceType:    {FieldSelectedPolicyID},
			FieldSelectedPolicyID: {FieldSelectedPolicyName},
		},
		Validate: func(field, value string, current Fields) (map[string]string, error) {
			return validateQuoteField(active, field, value, current)
		},
	}
}

func validateQuoteField(
	active []policy.Policy,
	field, value string,
	current Fields,
) (map[string]string, error) {
	switch field {
	case FieldServiceProvider:
		providers := policy.Providers(active)
		if len(providers) > 0 && !contains(providers, value) {
			return nil, fmt.Errorf("%w: unknown provider %q", ErrInvalidValue, value)
		}

	case FieldInsuranceType:
		if !current.Has(FieldServiceProvider) {
			return nil, fmt.Errorf("%w: choose a provider first", ErrInvalidValue)
		}
		types := policy.TypeOptions(active, current.Get(FieldServiceProvider))
		if !containsFold(types, value) {
			return nil, fmt.Errorf("%w: unknown insurance type %q", ErrInvalidValue, value)
		}

	case FieldSelectedPolicyID:
		options := policy.PoliciesFor(
			active,
			current.Get(FieldServiceProvider),
			current.Get(FieldInsuranceType),
		)
		p, ok := policy.Find(options, value)
		if !ok {
			return nil, fmt.Errorf("%w: policy is not available for this selection", ErrInvalidValue)
		}
		return map[string]string{FieldSelectedPolicyName: p.Name}, nil

	case FieldEmail:
		if !core.IsValidEmail(value) {
			return nil, fmt.Errorf("%w: email must be a valid email address", ErrInvalidValue)
		}

	case FieldAge:
		age, err := strconv.Atoi(value)
		if err != nil || age < 0 {
			return nil, fmt.Errorf("%w: age must be a whole number", ErrInvalidValue)
		}
	}

	return nil, nil
}

// QuoteOptions are the choices offered for the current selection.
type QuoteOptions struct {
	Providers []string       `json:"providers"`
	Types     []string       `json:"types"`
	Policies  []PolicyOption `json:"policies"`
}

type PolicyOption struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	PremiumRange *string `json:"premium_range"`
	Description  *string `json:"description"`
}

func QuoteOptionsFor(active []policy.Policy, f Fields) *QuoteOptions {
	opts := &QuoteOptions{
		Providers: policy.Providers(active),
		Types:     []string{},
		Policies:  []PolicyOption{},
	}

	provider := f.Get(FieldServiceProvider)
	if provider == "" {
		return opts
	}
	opts.Types = policy.TypeOptions(active, provider)

	insuranceType := f.Get(FieldInsuranceType)
	if insuranceType == "" {
		return opts
	}
	for _, p := range policy.PoliciesFor(active, provider, insuranceType) {
		opts.Policies = append(opts.Policies, PolicyOption{
			ID:           p.ID,
			Name:         p.Name,
			PremiumRange: p.PremiumRange,
			Description:  p.Description,
		})
	}

	return opts
}

// BuildQuote maps wizard fields onto a quote submission.
func BuildQuote(f Fields) quote.SubmitRequest {
	req := quote.SubmitRequest{
		ServiceProvider: f.Get(FieldServiceProvider),
		InsuranceType:   f.Get(FieldInsuranceType),
		FullName:        f.Get(FieldFullName),
		Email:           f.Get(FieldEmail),
		Phone:           f.Get(FieldPhone),
		PolicyID:        optionalField(f, FieldSelectedPolicyID),
		CoverageAmount:  optionalField(f, FieldCoverageAmount),
		Message:         optionalField(f, FieldMessage),
	}

	if age, err := strconv.Atoi(f.Get(FieldAge)); err == nil {
		req.Age = &age
	}

	return req
}

func optionalField(f Fields, name string) *string {
	if !f.Has(name) {
		return nil
	}
	v := f.Get(name)
	return &v
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

func containsFold(list []string, value string) bool {
	for _, v := range list {
		if strings.EqualFold(v, value) {
			return true
		}
	}
	return false
}
