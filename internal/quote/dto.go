// AngelaMos | 2026
// dto.go

package quote

import (
	"time"
)

type SubmitRequest struct {
	ServiceProvider string  `json:"service_provider" validate:"required,max=200"`
	InsuranceType   string  `json:"insurance_type"   validate:"required,max=100"`
	PolicyID        *string `json:"policy_id"        validate:"omitempty,uuid"`
	FullName        string  `json:"full_name"        validate:"required,max=200"`
	Email           string  `json:"email"            validate:"required,contact_email,max=255"`
	Phone           string  `json:"phone"            validate:"required,max=30"`
	Age             *int    `json:"age"              validate:"omitempty,gte=0,max=150"`
	CoverageAmount  *string `json:"coverage_amount"  validate:"omitempty,max=100"`
	Message         *string `json:"message"          validate:"omitempty,max=5000"`
}

type SubmitResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type QuoteResponse struct {
	ID              string     `json:"id"`
	ServiceProvider string     `json:"service_provider"`
	InsuranceType   string     `json:"insurance_type"`
	PolicyID        *string    `json:"policy_id"`
	FullName        string     `json:"full_name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	Age             *int       `json:"age"`
	CoverageAmount  *string    `json:"coverage_amount"`
	Message         *string    `json:"message"`
	Status          string     `json:"status"`
	RespondedAt     *time.Time `json:"responded_at"`
	CreatedAt       time.Time  `json:"created_at"`
}

type QuoteListResponse struct {
	Quotes []QuoteResponse `json:"quotes"`
}

func ToQuoteResponse(q Quote) QuoteResponse {
	return QuoteResponse{
		ID:              q.ID,
		ServiceProvider: q.ServiceProvider,
		InsuranceType:   q.InsuranceType,
		PolicyID:        q.PolicyID,
		FullName:        q.FullName,
		Email:           q.Email,
		Phone:           q.Phone,
		Age:             q.Age,
		CoverageAmount:  q.CoverageAmount,
		Message:         q.Message,
		Status:          q.Status,
		RespondedAt:     q.RespondedAt,
		CreatedAt:       q.CreatedAt,
	}
}

func ToQuoteListResponse(qs []Quote) QuoteListResponse {
	out := make([]QuoteResponse, len(qs))
	for i, q := range qs {
		out[i] = ToQuoteResponse(q)
	}
	return QuoteListResponse{Quotes: out}
}
