// AngelaMos | 2026
// service.go

package wizard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aurafinsurance/insurance-backend/internal/agentapp"
	"github.com/aurafinsurance/insurance-backend/internal/policy"
	"github.com/aurafinsurance/insurance-backend/internal/quote"
)

type Catalog interface {
	ListActive(ctx context.Context) ([]policy.Policy, error)
}

type QuoteSubmitter interface {
	Submit(ctx context.Context, req quote.SubmitRequest) (*quote.Quote, error)
}

type ApplicationSubmitter interface {
	Submit(ctx context.Context, req agentapp.SubmitRequest) (*agentapp.Application, error)
}

type Service struct {
	drafts  DraftStore
	catalog Catalog
	quotes  QuoteSubmitter
	agents  ApplicationSubmitter
	now     func() time.Time
}

func NewService(
	drafts DraftStore,
	catalog Catalog,
	quotes QuoteSubmitter,
	agents ApplicationSubmitter,
) *Service {
	return &Service{
		drafts:  drafts,
		catalog: catalog,
		quotes:  quotes,
		agents:  agents,
		now:     time.Now,
	}
}

// session bundles a loaded draft with the definition that governs it.
// For the quote wizard, active holds the catalog the definition was
// built from.
type session struct {
	ctrl   *Controller
	active []policy.Policy
}

func (s *Service) definition(ctx context.Context, wizard string) (*Definition, []policy.Policy, error) {
	switch wizard {
	case QuoteWizard:
		active, err := s.catalog.ListActive(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("load catalog: %w", err)
		}
		return QuoteDefinition(active), active, nil
	case AgentWizard:
		return AgentDefinition(), nil, nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownWizard, wizard)
	}
}

func (s *Service) open(ctx context.Context, wizard, id string) (*session, error) {
	def, active, err := s.definition(ctx, wizard)
	if err != nil {
		return nil, err
	}

	state, err := s.drafts.Load(ctx, wizard, id)
	if err != nil {
		return nil, err
	}

	return &session{ctrl: NewController(def, state), active: active}, nil
}

func (s *Service) view(sess *session) *View {
	var opts *QuoteOptions
	if sess.ctrl.def.Name == QuoteWizard {
		opts = QuoteOptionsFor(sess.active, sess.ctrl.State().Fields)
	}
	return newView(sess.ctrl, opts)
}

func (s *Service) save(ctx context.Context, sess *session) (*View, error) {
	sess.ctrl.State().UpdatedAt = s.now()
	if err := s.drafts.Save(ctx, sess.ctrl.State()); err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

func (s *Service) Start(ctx context.Context, wizard string) (*View, error) {
	def, active, err := s.definition(ctx, wizard)
	if err != nil {
		return nil, err
	}

	state := &State{
		ID:     uuid.New().String(),
		Wizard: wizard,
		Fields: Fields{},
	}

	return s.save(ctx, &session{ctrl: NewController(def, state), active: active})
}

func (s *Service) Get(ctx context.Context, wizard, id string) (*View, error) {
	sess, err := s.open(ctx, wizard, id)
	if err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

// Update applies a patch atomically: on any invalid field nothing is
// saved.
func (s *Service) Update(ctx context.Context, wizard, id string, patch Patch) (*View, error) {
	sess, err := s.open(ctx, wizard, id)
	if err != nil {
		return nil, err
	}

	if err := sess.ctrl.Apply(patch); err != nil {
		return nil, err
	}

	return s.save(ctx, sess)
}

func (s *Service) Advance(ctx context.Context, wizard, id string) (*View, error) {
	sess, err := s.open(ctx, wizard, id)
	if err != nil {
		return nil, err
	}
	if sess.ctrl.State().Submitted {
		return nil, ErrSubmitted
	}

	if !sess.ctrl.Advance() {
		return s.view(sess), nil
	}

	return s.save(ctx, sess)
}

func (s *Service) Retreat(ctx context.Context, wizard, id string) (*View, error) {
	sess, err := s.open(ctx, wizard, id)
	if err != nil {
		return nil, err
	}
	if sess.ctrl.State().Submitted {
		return nil, ErrSubmitted
	}

	sess.ctrl.Retreat()
	return s.save(ctx, sess)
}

func (s *Service) Submit(ctx context.Context, wizard, id string) (*View, error) {
	sess, err := s.open(ctx, wizard, id)
	if err != nil {
		return nil, err
	}

	if err := sess.ctrl.Submit(ctx, s.submitter(wizard)); err != nil {
		return nil, err
	}

	return s.save(ctx, sess)
}

func (s *Service) submitter(wizard string) Submitter {
	if wizard == AgentWizard {
		return func(ctx context.Context, f Fields) (string, error) {
			app, err := s.agents.Submit(ctx, BuildApplication(f))
			if err != nil {
				return "", err
			}
			return app.ID, nil
		}
	}

	return func(ctx context.Context, f Fields) (string, error) {
		q, err := s.quotes.Submit(ctx, BuildQuote(f))
		if err != nil {
			return "", err
		}
		return q.ID, nil
	}
}
