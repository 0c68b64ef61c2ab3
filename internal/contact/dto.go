// AngelaMos | 2026
// dto.go

package contact

import (
	"time"
)

type SubmitRequest struct {
	Name    string  `json:"name"    validate:"required,max=200"`
	Email   string  `json:"email"   validate:"required,contact_email,max=255"`
	Phone   *string `json:"phone"   validate:"omitempty,max=30"`
	Subject *string `json:"subject" validate:"omitempty,max=300"`
	Message string  `json:"message" validate:"required,max=5000"`
}

type SubmitResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type MessageResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       *string    `json:"phone"`
	Subject     *string    `json:"subject"`
	Message     string     `json:"message"`
	Status      string     `json:"status"`
	ReadAt      *time.Time `json:"read_at"`
	RespondedAt *time.Time `json:"responded_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

type MessageListResponse struct {
	Messages []MessageResponse `json:"messages"`
}

func ToMessageResponse(m Message) MessageResponse {
	return MessageResponse{
		ID:          m.ID,
		Name:        m.Name,
		Email:       m.Email,
		Phone:       m.Phone,
		Subject:     m.Subject,
		Message:     m.Message,
		Status:      m.Status,
		ReadAt:      m.ReadAt,
		RespondedAt: m.RespondedAt,
		CreatedAt:   m.CreatedAt,
	}
}

func ToMessageListResponse(ms []Message) MessageListResponse {
	out := make([]MessageResponse, len(ms))
	for i, m := range ms {
		out[i] = ToMessageResponse(m)
	}
	return MessageListResponse{Messages: out}
}
