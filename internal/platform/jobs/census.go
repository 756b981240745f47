package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/domain/admin"
)

// CensusSource produces the daily census snapshot.
type CensusSource interface {
	Census(ctx context.Context) (*admin.Census, error)
}

// censusTimeout bounds a single census run.
const censusTimeout = 30 * time.Second

// Scheduler runs the clinic's periodic jobs.
type Scheduler struct {
	cron   *cron.Cron
	source CensusSource
	logger zerolog.Logger
}

// NewScheduler registers the census job under spec. An empty spec yields a
// scheduler with no jobs.
func NewScheduler(spec string, source CensusSource, logger zerolog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(),
		source: source,
		logger: logger.With().Str("component", "jobs").Logger(),
	}
	if spec == "" {
		s.logger.Info().Msg("census job disabled")
		return s, nil
	}
	if _, err := s.cron.AddFunc(spec, func() { s.RunCensus(context.Background()) }); err != nil {
		return nil, fmt.Errorf("schedule census %q: %w", spec, err)
	}
	return s, nil
}

// Jobs returns the number of registered jobs.
func (s *Scheduler) Jobs() int { return len(s.cron.Entries()) }

func (s *Scheduler) Start() { s.cron.Start() }

// Stop halts scheduling and waits for a running job to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// RunCensus logs one census snapshot. Failures are logged, never returned.
func (s *Scheduler) RunCensus(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, censusTimeout)
	defer cancel()

	c, err := s.source.Census(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("census failed")
		return
	}
	s.logger.Info().
		Str("day", c.Day).
		Int64("patients", c.Patients).
		Int64("doctors", c.Doctors).
		Int64("appointments", c.Appointments).
		Int64("treatments", c.Treatments).
		Int64("billing", c.Billing).
		Int64("appointments_today", c.AppointmentsToday).
		Msg("daily census")
}
