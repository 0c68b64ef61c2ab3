// AngelaMos | 2026
// mailer.go

package notify

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aurafinsurance/insurance-backend/internal/config"
)

var ErrNotConfigured = errors.New("email provider not configured")

type Message struct {
	To      string
	ToName  string
	Subject string
	HTML    string
	Text    string
}

// Mailer delivers a single message and returns the provider's message id
// when one is reported.
type Mailer interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// NewMailer selects the provider named in cfg. With no provider the
// returned mailer logs every message and reports ErrNotConfigured.
func NewMailer(cfg config.EmailConfig, logger *slog.Logger) Mailer {
	var m Mailer

	switch cfg.Provider {
	case config.EmailProviderSendGrid:
		m = NewSendGridMailer(cfg)
	case config.EmailProviderSMTP:
		m = NewSMTPMailer(cfg)
	default:
		return NewLogMailer(logger)
	}

	return Instrument(m, cfg.Provider)
}

type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(ctx context.Context, msg Message) (string, error) {
	if m.logger != nil {
		m.logger.WarnContext(ctx, "email provider not configured, message dropped",
			"to", msg.To,
			"subject", msg.Subject,
		)
	}
	return "", ErrNotConfigured
}
