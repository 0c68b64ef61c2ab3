// AngelaMos | 2026
// dto.go

package notify

type SendEmailRequest struct {
	To      string `json:"to"      validate:"required,contact_email"`
	Subject string `json:"subject" validate:"required,max=500"`
	HTML    string `json:"html"    validate:"required"`
}

type SendEmailResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Message   string `json:"message,omitempty"`
}
