package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/checkbus/fleet-backend/internal/adapter/postgres"
	alertrepo "github.com/checkbus/fleet-backend/internal/adapter/postgres/alert"
	busrepo "github.com/checkbus/fleet-backend/internal/adapter/postgres/bus"
	catalogrepo "github.com/checkbus/fleet-backend/internal/adapter/postgres/catalog"
	documentrepo "github.com/checkbus/fleet-backend/internal/adapter/postgres/document"
	incidentrepo "github.com/checkbus/fleet-backend/internal/adapter/postgres/incident"
	maintenancerepo "github.com/checkbus/fleet-backend/internal/adapter/postgres/maintenance"
	shiftrepo "github.com/checkbus/fleet-backend/internal/adapter/postgres/shift"
	userrepo "github.com/checkbus/fleet-backend/internal/adapter/postgres/user"
	"github.com/checkbus/fleet-backend/internal/adapter/resend"
	"github.com/checkbus/fleet-backend/internal/config"
	alertsvc "github.com/checkbus/fleet-backend/internal/service/alert"
	documentsvc "github.com/checkbus/fleet-backend/internal/service/document"
	fleetsvc "github.com/checkbus/fleet-backend/internal/service/fleet"
	incidentsvc "github.com/checkbus/fleet-backend/internal/service/incident"
	maintenancesvc "github.com/checkbus/fleet-backend/internal/service/maintenance"
	shiftsvc "github.com/checkbus/fleet-backend/internal/service/shift"
)

// App holds the wired services and the resources they share. Commands build
// one App and pick the services they need.
type App struct {
	Pool *pgxpool.Pool
	Log  *slog.Logger

	Alerts       *alertsvc.Service
	Fleet        *fleetsvc.Service
	Incidents    *incidentsvc.Service
	Maintenances *maintenancesvc.Service
	Shifts       *shiftsvc.Service
	Documents    *documentsvc.Service
}

// Build connects to the database and wires every repository and service.
// It validates the configured alert roles against the roles table, so a
// deployment with a typo in a role name fails here instead of silently
// dropping recipients later.
func Build(ctx context.Context, logger *slog.Logger, cfg *config.Config) (*App, error) {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	alerts := alertrepo.New(pool)
	buses := busrepo.New(pool)
	catalogs := catalogrepo.New(pool)
	documents := documentrepo.New(pool)
	incidents := incidentrepo.New(pool)
	maintenances := maintenancerepo.New(pool)
	shifts := shiftrepo.New(pool)
	users := userrepo.New(pool)

	mailer := resend.NewMailer(logger, cfg.Mail)

	alertService := alertsvc.NewService(logger, cfg.Alerts,
		alerts, catalogs, documents, buses, incidents, maintenances, shifts, users, mailer)
	fleetService := fleetsvc.NewService(logger, buses, incidents, maintenances, catalogs)

	if err := alertService.ValidateConfiguredRoles(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("validate alert configuration: %w", err)
	}

	return &App{
		Pool:         pool,
		Log:          logger,
		Alerts:       alertService,
		Fleet:        fleetService,
		Incidents:    incidentsvc.NewService(logger, incidents, catalogs, alertService, fleetService),
		Maintenances: maintenancesvc.NewService(logger, maintenances, catalogs, alertService, fleetService),
		Shifts:       shiftsvc.NewService(logger, shifts, catalogs, alertService),
		Documents:    documentsvc.NewService(logger, documents, catalogs),
	}, nil
}

// Close releases the shared resources.
func (a *App) Close() {
	a.Pool.Close()
}

// Run loads configuration, wires the application, and blocks running the
// alert scheduler until the context is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	application, err := Build(ctx, logger, cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	sched, err := NewScheduler(logger, cfg.Alerts, application.Alerts)
	if err != nil {
		return err
	}
	return sched.Run(ctx)
}
