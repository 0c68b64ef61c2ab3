// AngelaMos | 2026
// service.go

package notify

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aurafinsurance/insurance-backend/internal/core"
)

const (
	messageSent          = "Email sent"
	messageNotConfigured = "Email function configured but provider missing. Using fallback."
	messageFailed        = "Email queued (may have failed silently)"
)

type Service struct {
	mailer Mailer
	logger *slog.Logger
}

func NewService(mailer Mailer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{mailer: mailer, logger: logger}
}

// Send delivers msg and reports provider failures to the caller.
func (s *Service) Send(ctx context.Context, msg Message) (string, error) {
	ctx, span := core.StartSpan(ctx, "notify.send")
	defer span.End()

	id, err := s.mailer.Send(ctx, msg)
	if err != nil {
		core.SetSpanError(ctx, err)
		s.logger.ErrorContext(ctx, "email delivery failed",
			"to", msg.To,
			"subject", msg.Subject,
			"error", err,
		)
		return "", err
	}

	return id, nil
}

// Deliver is the send-email function: it never fails once the request
// is valid. Provider errors and missing configuration are only logged.
func (s *Service) Deliver(ctx context.Context, req SendEmailRequest) SendEmailResponse {
	id, err := s.Send(ctx, Message{
		To:      req.To,
		Subject: req.Subject,
		HTML:    req.HTML,
	})

	switch {
	case err == nil:
		return SendEmailResponse{Success: true, MessageID: id, Message: messageSent}
	case errors.Is(err, ErrNotConfigured):
		return SendEmailResponse{Success: true, Message: messageNotConfigured}
	default:
		return SendEmailResponse{Success: true, Message: messageFailed}
	}
}
