package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const refreshTimeout = 30 * time.Second

// CIKRefresher reloads the SEC ticker to CIK table.
type CIKRefresher interface {
	RefreshCIKMap(ctx context.Context) error
}

// Scheduler runs the background maintenance jobs.
type Scheduler struct {
	Cron    *cron.Cron
	Filings CIKRefresher
	Ctx     context.Context
	logger  zerolog.Logger
}

func NewScheduler(ctx context.Context, filings CIKRefresher) *Scheduler {
	return &Scheduler{
		Cron:    cron.New(),
		Filings: filings,
		Ctx:     ctx,
		logger:  log.With().Str("component", "scheduler").Logger(),
	}
}

// RegisterAll registers the jobs. cikRefreshSpec is a five field cron expression or a
// descriptor such as "@daily".
func (s *Scheduler) RegisterAll(cikRefreshSpec string) error {
	if _, err := s.Cron.AddFunc(cikRefreshSpec, s.refreshCIKMap); err != nil {
		return fmt.Errorf("register CIK refresh: %w", err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.Cron.Start()
	s.logger.Info().Int("jobs", len(s.Cron.Entries())).Msg("Scheduler started")
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.logger.Info().Msg("Scheduler stopped")
}

func (s *Scheduler) refreshCIKMap() {
	ctx, cancel := context.WithTimeout(s.Ctx, refreshTimeout)
	defer cancel()

	if err := s.Filings.RefreshCIKMap(ctx); err != nil {
		s.logger.Error().Err(err).Msg("CIK map refresh failed")
	}
}
