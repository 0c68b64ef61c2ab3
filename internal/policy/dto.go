// AngelaMos | 2026
// dto.go

package policy

import (
	"time"
)

type CreatePolicyRequest struct {
	Name            string  `json:"name"             validate:"required,max=200"`
	PolicyType      string  `json:"policy_type"      validate:"required,max=100"`
	Provider        *string `json:"provider"         validate:"omitempty,max=200"`
	PremiumRange    *string `json:"premium_range"    validate:"omitempty,max=100"`
	Description     *string `json:"description"      validate:"omitempty,max=5000"`
	CoverageDetails *string `json:"coverage_details" validate:"omitempty,max=5000"`
	FileURL         *string `json:"file_url"         validate:"omitempty,url"`
}

type SetActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type PolicyResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	PolicyType      string    `json:"policy_type"`
	Provider        *string   `json:"provider"`
	PremiumRange    *string   `json:"premium_range"`
	Description     *string   `json:"description"`
	CoverageDetails *string   `json:"coverage_details"`
	FileURL         *string   `json:"file_url"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

type PolicyListResponse struct {
	Policies []PolicyResponse `json:"policies"`
}

type OptionsResponse struct {
	Options []string `json:"options"`
}

func ToPolicyResponse(p Policy) PolicyResponse {
	return PolicyResponse{
		ID:              p.ID,
		Name:            p.Name,
		PolicyType:      p.PolicyType,
		Provider:        p.Provider,
		PremiumRange:    p.PremiumRange,
		Description:     p.Description,
		CoverageDetails: p.CoverageDetails,
		FileURL:         p.FileURL,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
	}
}

func ToPolicyListResponse(ps []Policy) PolicyListResponse {
	out := make([]PolicyResponse, len(ps))
	for i, p := range ps {
		out[i] = ToPolicyResponse(p)
	}
	return PolicyListResponse{Policies: out}
}
