// AngelaMos | 2026
// service.go

package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/aurafinsurance/insurance-backend/internal/agentapp"
	"github.com/aurafinsurance/insurance-backend/internal/contact"
	"github.com/aurafinsurance/insurance-backend/internal/core"
	"github.com/aurafinsurance/insurance-backend/internal/notify"
	"github.com/aurafinsurance/insurance-backend/internal/provisioning"
	"github.com/aurafinsurance/insurance-backend/internal/quote"
)

const (
	DecisionApproved = agentapp.StatusApproved
	DecisionRejected = agentapp.StatusRejected

	WarnDecisionEmail = "Decision recorded but email failed. You may need to contact them manually."
	WarnReplyEmail    = "Reply recorded but email failed. You may need to contact them manually."
	WarnAgentAccount  = "Application approved but the agent account could not be created."
	WarnExistingAgent = "Application approved but an account with this email already exists."
)

type Mailer interface {
	Send(ctx context.Context, msg notify.Message) (string, error)
}

type AgentProvisioner interface {
	CreateAgent(
		ctx context.Context,
		actor core.Actor,
		req provisioning.CreateAgentRequest,
	) (*provisioning.Result, error)
}

type URLSigner interface {
	SignURL(ref string) (string, time.Time)
}

// Outcome reports a recorded write. Warning is set when a side effect
// after the write did not complete.
type Outcome struct {
	Status      string `json:"status"`
	Notified    bool   `json:"notified"`
	Warning     string `json:"warning,omitempty"`
	AgentUserID string `json:"agent_user_id,omitempty"`
}

// Service is the admin review boundary. Every method checks the actor
// before touching any record.
type Service struct {
	applications agentapp.Repository
	contacts     contact.Repository
	quotes       quote.Repository
	mailer       Mailer
	provisioner  AgentProvisioner
	signer       URLSigner
	logger       *slog.Logger
}

func NewService(
	applications agentapp.Repository,
	contacts contact.Repository,
	quotes quote.Repository,
	mailer Mailer,
	provisioner AgentProvisioner,
	signer URLSigner,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		applications: applications,
		contacts:     contacts,
		quotes:       quotes,
		mailer:       mailer,
		provisioner:  provisioner,
		signer:       signer,
		logger:       logger,
	}
}

func requireAdmin(actor core.Actor, op string) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("%s: %w", op, core.ErrForbidden)
	}
	return nil
}

func (s *Service) ListApplications(ctx context.Context, actor core.Actor) ([]agentapp.Application, error) {
	if err := requireAdmin(actor, "list applications"); err != nil {
		return nil, err
	}
	return s.applications.List(ctx)
}

func (s *Service) ListContacts(ctx context.Context, actor core.Actor) ([]contact.Message, error) {
	if err := requireAdmin(actor, "list contact messages"); err != nil {
		return nil, err
	}
	return s.contacts.List(ctx)
}

func (s *Service) ListQuotes(ctx context.Context, actor core.Actor) ([]quote.Quote, error) {
	if err := requireAdmin(actor, "list quotes"); err != nil {
		return nil, err
	}
	return s.quotes.List(ctx)
}

func (s *Service) OpenApplication(ctx context.Context, actor core.Actor, id string) (*agentapp.Application, error) {
	if err := requireAdmin(actor, "open application"); err != nil {
		return nil, err
	}
	return s.applications.GetByID(ctx, id)
}

func (s *Service) OpenQuote(ctx context.Context, actor core.Actor, id string) (*quote.Quote, error) {
	if err := requireAdmin(actor, "open quote"); err != nil {
		return nil, err
	}
	return s.quotes.GetByID(ctx, id)
}

// OpenContact returns the message and marks it read if it was pending.
func (s *Service) OpenContact(ctx context.Context, actor core.Actor, id string) (*contact.Message, error) {
	if err := requireAdmin(actor, "open contact message"); err != nil {
		return nil, err
	}
	return s.contacts.MarkRead(ctx, id, actor.UserID)
}

// Decide records an approval or rejection, provisions the agent account
// on approval and sends one decision email. Failures after the write
// are reported as warnings.
func (s *Service) Decide(
	ctx context.Context,
	actor core.Actor,
	applicationID, decision, note string,
) (*Outcome, error) {
	if err := requireAdmin(actor, "decide application"); err != nil {
		return nil, err
	}

	ctx, span := core.StartSpan(ctx, "review.decide")
	defer span.End()

	if decision != DecisionApproved && decision != DecisionRejected {
		return nil, core.ValidationError("decision must be approved or rejected")
	}

	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	if err := CanTransition(KindApplication, app.Status, decision); err != nil {
		return nil, err
	}

	var notePtr *string
	if trimmed := strings.TrimSpace(note); trimmed != "" {
		notePtr = &trimmed
	}

	app, err = s.applications.Decide(ctx, applicationID, decision, notePtr, actor.UserID)
	if err != nil {
		if errors.Is(err, core.ErrConflict) {
			return nil, &TransitionError{
				Code:    "ALREADY_DECIDED",
				Message: "application has already been decided",
			}
		}
		core.SetSpanError(ctx, err)
		return nil, err
	}

	s.logger.InfoContext(ctx, "application decided",
		"application_id", applicationID,
		"decision", decision,
		"actor_id", actor.UserID,
	)
	core.AddSpanEvent(ctx, "application.decided",
		attribute.String("application_id", applicationID),
		attribute.String("decision", decision),
	)

	out := &Outcome{Status: app.Status}
	var warnings []string
	credentialsSent := false

	if decision == DecisionApproved {
		result, warning := s.provisionAgent(ctx, actor, app)
		if result != nil {
			out.AgentUserID = result.UserID
			credentialsSent = result.CredentialsSent
		}
		if warning != "" {
			warnings = append(warnings, warning)
		}
	}

	msg, err := notify.DecisionEmail(notify.Decision{
		Approved:        decision == DecisionApproved,
		To:              app.Email,
		Name:            app.FullName,
		Note:            note,
		CredentialsSent: credentialsSent,
	})
	if err == nil {
		_, err = s.mailer.Send(ctx, msg)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "decision email not delivered",
			"application_id", applicationID,
			"error", err,
		)
		warnings = append(warnings, WarnDecisionEmail)
	} else {
		out.Notified = true
	}

	out.Warning = strings.Join(warnings, " ")
	return out, nil
}

func (s *Service) provisionAgent(
	ctx context.Context,
	actor core.Actor,
	app *agentapp.Application,
) (*provisioning.Result, string) {
	result, err := s.provisioner.CreateAgent(ctx, actor, provisioning.CreateAgentRequest{
		Email:              app.Email,
		FullName:           app.FullName,
		AgentApplicationID: app.ID,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "agent account not created",
			"application_id", app.ID,
			"error", err,
		)
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, WarnExistingAgent
		}
		return nil, WarnAgentAccount
	}

	return result, result.Warning
}

// Reply answers a contact message or quote request and emails the
// answer to the submitter.
func (s *Service) Reply(
	ctx context.Context,
	actor core.Actor,
	kind Kind,
	id, message string,
) (*Outcome, error) {
	if err := requireAdmin(actor, "reply"); err != nil {
		return nil, err
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, core.ValidationError("message is required")
	}

	ctx, span := core.StartSpan(ctx, "review.reply")
	defer span.End()

	var (
		to, name, status string
		replyKind        notify.ReplyKind
	)

	switch kind {
	case KindContact:
		current, err := s.contacts.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := CanTransition(kind, current.Status, contact.StatusResponded); err != nil {
			return nil, err
		}
		updated, err := s.contacts.Respond(ctx, id, actor.UserID)
		if err != nil {
			return nil, err
		}
		to, name, status, replyKind = updated.Email, updated.Name, updated.Status, notify.ReplyContact

	case KindQuote:
		current, err := s.quotes.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := CanTransition(kind, current.Status, quote.StatusResponded); err != nil {
			return nil, err
		}
		updated, err := s.quotes.Respond(ctx, id, actor.UserID)
		if err != nil {
			return nil, err
		}
		to, name, status, replyKind = updated.Email, updated.FullName, updated.Status, notify.ReplyQuote

	default:
		return nil, core.ValidationError("reply kind must be contact or quote")
	}

	out := &Outcome{Status: status}

	msg, err := notify.ReplyEmail(replyKind, to, name, message)
	if err == nil {
		_, err = s.mailer.Send(ctx, msg)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "reply email not delivered",
			"kind", kind,
			"id", id,
			"error", err,
		)
		out.Warning = WarnReplyEmail
		return out, nil
	}

	out.Notified = true
	return out, nil
}

type DocumentLink struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// DocumentURL issues a short-lived link to an application's ID document.
func (s *Service) DocumentURL(ctx context.Context, actor core.Actor, applicationID string) (*DocumentLink, error) {
	if err := requireAdmin(actor, "document url"); err != nil {
		return nil, err
	}

	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.IDDocumentRef == nil {
		return nil, fmt.Errorf("document url: no document on file: %w", core.ErrNotFound)
	}

	url, expiresAt := s.signer.SignURL(*app.IDDocumentRef)
	return &DocumentLink{URL: url, ExpiresAt: expiresAt}, nil
}
