// AngelaMos | 2026
// sendgrid.go

package notify

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/aurafinsurance/insurance-backend/internal/config"
)

type SendGridMailer struct {
	client  *sendgrid.Client
	from    *mail.Email
	sandbox bool
}

func NewSendGridMailer(cfg config.EmailConfig) *SendGridMailer {
	return &SendGridMailer{
		client:  sendgrid.NewSendClient(cfg.SendGridAPIKey),
		from:    mail.NewEmail(cfg.FromName, cfg.FromAddress),
		sandbox: cfg.Sandbox,
	}
}

func (m *SendGridMailer) Send(ctx context.Context, msg Message) (string, error) {
	to := mail.NewEmail(msg.ToName, msg.To)
	email := mail.NewSingleEmail(m.from, msg.Subject, to, msg.Text, msg.HTML)

	if m.sandbox {
		settings := mail.NewMailSettings()
		settings.SetSandboxMode(mail.NewSetting(true))
		email.MailSettings = settings
	}

	resp, err := m.client.SendWithContext(ctx, email)
	if err != nil {
		return "", fmt.Errorf("sendgrid send: %w", err)
	}

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf(
			"sendgrid send: status %d: %s",
			resp.StatusCode,
			resp.Body,
		)
	}

	if ids := resp.Headers["X-Message-Id"]; len(ids) > 0 {
		return ids[0], nil
	}

	return "", nil
}
