// AngelaMos | 2026
// scheduler.go

package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/aurafinsurance/insurance-backend/internal/config"
)

const jobTimeout = 5 * time.Minute

type TokenPurger interface {
	PurgeExpiredTokens(ctx context.Context) (int64, error)
}

type DocumentReferences interface {
	ReferencedDocuments(ctx context.Context) (map[string]struct{}, error)
}

type DocumentSweeper interface {
	Sweep(ctx context.Context, olderThan time.Duration, keep map[string]struct{}) (int, error)
}

type Scheduler struct {
	cron      *cron.Cron
	tokens    TokenPurger
	refs      DocumentReferences
	documents DocumentSweeper
	orphanAge time.Duration
	logger    *slog.Logger
}

type Deps struct {
	Tokens     TokenPurger
	References DocumentReferences
	Documents  DocumentSweeper
	OrphanAge  time.Duration
}

func NewScheduler(cfg config.JobsConfig, deps Deps, logger *slog.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Scheduler{
		cron:      cron.New(cron.WithLocation(time.UTC)),
		tokens:    deps.Tokens,
		refs:      deps.References,
		documents: deps.Documents,
		orphanAge: deps.OrphanAge,
		logger:    logger,
	}

	if s.tokens != nil && cfg.TokenCleanupSchedule != "" {
		if err := s.schedule(cfg.TokenCleanupSchedule, "token_cleanup", s.PurgeTokens); err != nil {
			return nil, err
		}
	}

	if s.documents != nil && s.refs != nil && cfg.DocumentSweepSchedule != "" {
		if err := s.schedule(cfg.DocumentSweepSchedule, "document_sweep", s.SweepDocuments); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *Scheduler) schedule(
	spec, name string,
	job func(ctx context.Context) error,
) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		start := time.Now()
		if err := job(ctx); err != nil {
			s.logger.Error("scheduled job failed",
				"job", name,
				"error", err,
			)
			return
		}

		s.logger.Debug("scheduled job finished",
			"job", name,
			"duration", time.Since(start),
		)
	})
	if err != nil {
		return fmt.Errorf("schedule %s: %w", name, err)
	}

	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("job scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop waits for running jobs or until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()

	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("job scheduler stop timed out")
	}
}

func (s *Scheduler) PurgeTokens(ctx context.Context) error {
	count, err := s.tokens.PurgeExpiredTokens(ctx)
	if err != nil {
		return fmt.Errorf("purge expired tokens: %w", err)
	}

	if count > 0 {
		s.logger.Info("purged expired refresh tokens", "count", count)
	}

	return nil
}

// SweepDocuments removes uploads older than the orphan age that no
// application references.
func (s *Scheduler) SweepDocuments(ctx context.Context) error {
	keep, err := s.refs.ReferencedDocuments(ctx)
	if err != nil {
		return fmt.Errorf("load document references: %w", err)
	}

	removed, err := s.documents.Sweep(ctx, s.orphanAge, keep)
	if err != nil {
		return fmt.Errorf("sweep documents: %w", err)
	}

	if removed > 0 {
		s.logger.Info("removed orphaned documents", "count", removed)
	}

	return nil
}
