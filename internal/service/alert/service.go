// Package alert implements the alert engine: the daily sweep over documents,
// buses and incidents, the immediate triggers fired by entity mutations, and
// the recipient resolution that turns configured role names into emails.
//
// Every alert follows the same dedup pattern: build a deterministic dedup
// key, insert, and treat a key collision as a silent success. Email is sent
// only after a successful insert; a mailer failure is logged and swallowed,
// the alert row is the durable truth.
package alert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/checkbus/fleet-backend/internal/config"
	"github.com/checkbus/fleet-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type alertRepo interface {
	Create(ctx context.Context, a domain.Alert) (domain.Alert, error)
	UpdateStatus(ctx context.Context, id, statusID uuid.UUID) error
	List(ctx context.Context, filter domain.AlertFilter) ([]domain.Alert, error)
}

type catalogRepo interface {
	ResolveOrCreate(ctx context.Context, catalog domain.Catalog, name string) (uuid.UUID, error)
	ResolveOrCreateAlertType(ctx context.Context, name, category string) (uuid.UUID, error)
}

type documentRepo interface {
	ListExpiringBetween(ctx context.Context, from, to time.Time) ([]domain.Document, error)
	ListExpiredBefore(ctx context.Context, day time.Time, notStatusID uuid.UUID) ([]domain.Document, error)
	UpdateStatus(ctx context.Context, id, statusID uuid.UUID) error
}

type busRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Bus, error)
	ListExtinguisherExpiring(ctx context.Context, from, to time.Time) ([]domain.Bus, error)
	ListInspectionExpiring(ctx context.Context, from, to time.Time) ([]domain.Bus, error)
}

type incidentRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Incident, error)
	ListOpenOlderThan(ctx context.Context, cutoff time.Time, names []string) ([]domain.Incident, error)
}

type maintenanceRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Maintenance, error)
}

type shiftRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Shift, error)
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	EmailsByRoleNames(ctx context.Context, names []string) ([]string, error)
	RolesByNames(ctx context.Context, names []string) ([]domain.Role, error)
}

type mailer interface {
	SendAlertEmail(ctx context.Context, to []string, subject, title, body string) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements alert generation and management.
type Service struct {
	alerts       alertRepo
	catalogs     catalogRepo
	documents    documentRepo
	buses        busRepo
	incidents    incidentRepo
	maintenances maintenanceRepo
	shifts       shiftRepo
	users        userRepo
	mail         mailer
	cfg          config.AlertsConfig
	log          *slog.Logger

	// now is replaceable in tests.
	now func() time.Time
}

// NewService creates a new alert service.
func NewService(
	log *slog.Logger,
	cfg config.AlertsConfig,
	alerts alertRepo,
	catalogs catalogRepo,
	documents documentRepo,
	buses busRepo,
	incidents incidentRepo,
	maintenances maintenanceRepo,
	shifts shiftRepo,
	users userRepo,
	mail mailer,
) *Service {
	return &Service{
		alerts:       alerts,
		catalogs:     catalogs,
		documents:    documents,
		buses:        buses,
		incidents:    incidents,
		maintenances: maintenances,
		shifts:       shifts,
		users:        users,
		mail:         mail,
		cfg:          cfg,
		log:          log.With("service", "alert"),
		now:          time.Now,
	}
}

// Attend marks an alert as attended.
func (s *Service) Attend(ctx context.Context, id uuid.UUID) error {
	return s.moveTo(ctx, id, domain.AlertStatusAttended)
}

// Close marks an alert as closed.
func (s *Service) Close(ctx context.Context, id uuid.UUID) error {
	return s.moveTo(ctx, id, domain.AlertStatusClosed)
}

func (s *Service) moveTo(ctx context.Context, id uuid.UUID, status string) error {
	statusID, err := s.catalogs.ResolveOrCreate(ctx, domain.CatalogAlertStatus, status)
	if err != nil {
		return fmt.Errorf("resolve alert status %s: %w", status, err)
	}
	return s.alerts.UpdateStatus(ctx, id, statusID)
}

// List returns alerts for the back office.
func (s *Service) List(ctx context.Context, filter domain.AlertFilter) ([]domain.Alert, error) {
	return s.alerts.List(ctx, filter)
}

// ValidateConfiguredRoles checks every role name referenced by the alert
// configuration against the roles table. Unknown names are a deployment
// mistake that would silently drop recipients, so startup fails fast.
func (s *Service) ValidateConfiguredRoles(ctx context.Context) error {
	seen := map[string]bool{}
	var names []string
	add := func(list []string) {
		for _, n := range list {
			key := normalizeRole(n)
			if !seen[key] {
				seen[key] = true
				names = append(names, n)
			}
		}
	}
	add(config.SplitRoles(s.cfg.DefaultRoles))
	for _, cat := range config.AllAlertCategories {
		add(s.cfg.RolesFor(cat))
	}
	if len(names) == 0 {
		return nil
	}

	roles, err := s.users.RolesByNames(ctx, names)
	if err != nil {
		return fmt.Errorf("look up configured roles: %w", err)
	}

	found := map[string]bool{}
	for _, r := range roles {
		found[normalizeRole(r.Name)] = true
	}
	var missing []string
	for _, n := range names {
		if !found[normalizeRole(n)] {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("configured alert roles not present in roles table: %v", missing)
	}
	return nil
}

// today returns the current date at midnight in the configured timezone,
// normalized to UTC for date arithmetic.
func (s *Service) today() time.Time {
	now := s.now()
	if loc, err := time.LoadLocation(s.cfg.Timezone); err == nil {
		now = now.In(loc)
	}
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// raise runs the dedup pattern for a single alert: resolve the ACTIVE status
// and the alert type, insert, and notify on a fresh insert only. A dedup
// collision returns (false, nil). Mailer failures are logged and swallowed.
func (s *Service) raise(ctx context.Context, kind string, category config.AlertCategory, a domain.Alert, recipients []string) (bool, error) {
	statusID, err := s.catalogs.ResolveOrCreate(ctx, domain.CatalogAlertStatus, domain.AlertStatusActive)
	if err != nil {
		return false, fmt.Errorf("resolve alert status: %w", err)
	}
	typeID, err := s.catalogs.ResolveOrCreateAlertType(ctx, kind, string(category))
	if err != nil {
		return false, fmt.Errorf("resolve alert type %s: %w", kind, err)
	}
	a.StatusID = statusID
	a.TypeID = typeID

	created, err := s.alerts.Create(ctx, a)
	if errors.Is(err, domain.ErrAlreadyExists) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("create alert %s: %w", a.DedupKey, err)
	}

	s.log.InfoContext(ctx, "alert created",
		"kind", kind,
		"dedup_key", created.DedupKey,
		"priority", created.Priority,
		"recipients", len(recipients),
	)

	if len(recipients) == 0 {
		s.log.WarnContext(ctx, "alert has no recipients, skipping email", "dedup_key", created.DedupKey)
		return true, nil
	}
	if err := s.mail.SendAlertEmail(ctx, recipients, created.Title, created.Title, created.Description); err != nil {
		s.log.ErrorContext(ctx, "alert email failed",
			"dedup_key", created.DedupKey,
			"error", err,
		)
	}
	return true, nil
}
