package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/checkbus/fleet-backend/internal/config"
	alertsvc "github.com/checkbus/fleet-backend/internal/service/alert"
)

// sweeper is the part of the alert service the scheduler drives.
type sweeper interface {
	Sweep(ctx context.Context, windowDays int) (alertsvc.SweepReport, error)
}

// Scheduler runs the alert sweep on the configured cron expression in the
// configured timezone. A failing run is logged; the schedule keeps going.
type Scheduler struct {
	cron   *cron.Cron
	cfg    config.AlertsConfig
	alerts sweeper
	log    *slog.Logger
}

// NewScheduler builds a Scheduler. The cron expression and timezone were
// already syntax-checked by config validation; errors here mean the two
// checks drifted apart.
func NewScheduler(log *slog.Logger, cfg config.AlertsConfig, alerts sweeper) (*Scheduler, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	s := &Scheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		cfg:    cfg,
		alerts: alerts,
		log:    log.With("component", "scheduler"),
	}
	if _, err := s.cron.AddFunc(cfg.Cron, s.tick); err != nil {
		return nil, fmt.Errorf("schedule %q: %w", cfg.Cron, err)
	}
	return s, nil
}

// Run starts the cron loop and blocks until ctx is cancelled, then waits for
// an in-flight sweep to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	s.log.Info("scheduler started",
		slog.String("cron", s.cfg.Cron),
		slog.String("timezone", s.cfg.Timezone),
		slog.Int("window_days", s.cfg.WindowDays),
	)
	s.cron.Start()

	<-ctx.Done()

	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.log.Info("scheduler stopped")
	return nil
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	started := time.Now()
	report, err := s.alerts.Sweep(ctx, s.cfg.WindowDays)
	if err != nil {
		s.log.Error("sweep failed",
			slog.String("error", err.Error()),
			slog.Duration("elapsed", time.Since(started)),
		)
		return
	}

	s.log.Info("sweep completed",
		slog.Int("alerts", report.Total()),
		slog.Int("documents_expiring", report.DocumentsExpiring),
		slog.Int("documents_expired", report.DocumentsExpired),
		slog.Int("extinguishers", report.Extinguishers),
		slog.Int("inspections", report.Inspections),
		slog.Int("stale_incidents", report.StaleIncidents),
		slog.Duration("elapsed", time.Since(started)),
	)
}
