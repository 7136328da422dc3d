// Package maintenance implements maintenance scheduling and updates. The
// cost invariant lives here: total_cost is always labor_cost + parts_cost,
// recomputed on every mutation of either component.
package maintenance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/checkbus/fleet-backend/internal/domain"
)

type maintenanceRepo interface {
	Create(ctx context.Context, m domain.Maintenance) (domain.Maintenance, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Maintenance, error)
	Update(ctx context.Context, m domain.Maintenance) (domain.Maintenance, error)
}

type catalogRepo interface {
	ResolveOrCreate(ctx context.Context, catalog domain.Catalog, name string) (uuid.UUID, error)
}

type alertTrigger interface {
	OnMaintenanceCreated(ctx context.Context, maintenanceID uuid.UUID) error
	OnMaintenanceCompleted(ctx context.Context, maintenanceID uuid.UUID) error
}

type reconciler interface {
	Reconcile(ctx context.Context, busID uuid.UUID) error
}

// Service implements the maintenance business logic.
type Service struct {
	maintenances maintenanceRepo
	catalogs     catalogRepo
	alerts       alertTrigger
	fleet        reconciler
	log          *slog.Logger
}

// NewService creates a new maintenance service.
func NewService(
	log *slog.Logger,
	maintenances maintenanceRepo,
	catalogs catalogRepo,
	alerts alertTrigger,
	fleet reconciler,
) *Service {
	return &Service{
		maintenances: maintenances,
		catalogs:     catalogs,
		alerts:       alerts,
		fleet:        fleet,
		log:          log.With("service", "maintenance"),
	}
}

// ScheduleInput carries the fields for a newly scheduled maintenance.
type ScheduleInput struct {
	BusID        uuid.UUID
	Workshop     string
	ScheduledOn  time.Time
	LaborCost    float64
	Observations *string
}

// Schedule creates a maintenance in PENDING. Parts cost starts at zero, so
// the total equals the labor cost. Fires the creation alert and reconciles
// the bus afterwards; both are log-and-continue.
func (s *Service) Schedule(ctx context.Context, in ScheduleInput) (domain.Maintenance, error) {
	if in.BusID == uuid.Nil {
		return domain.Maintenance{}, domain.NewValidationError("bus_id", "is required")
	}
	if in.ScheduledOn.IsZero() {
		return domain.Maintenance{}, domain.NewValidationError("scheduled_on", "is required")
	}
	if in.LaborCost < 0 {
		return domain.Maintenance{}, domain.NewValidationError("labor_cost", "must not be negative")
	}

	statusID, err := s.catalogs.ResolveOrCreate(ctx, domain.CatalogMaintenanceStatus, domain.MaintenanceStatusPending)
	if err != nil {
		return domain.Maintenance{}, fmt.Errorf("resolve maintenance status: %w", err)
	}

	m, err := s.maintenances.Create(ctx, domain.Maintenance{
		BusID:        in.BusID,
		Workshop:     in.Workshop,
		StatusID:     statusID,
		LaborCost:    in.LaborCost,
		PartsCost:    0,
		TotalCost:    in.LaborCost,
		ScheduledOn:  in.ScheduledOn,
		Observations: in.Observations,
	})
	if err != nil {
		return domain.Maintenance{}, err
	}

	if err := s.alerts.OnMaintenanceCreated(ctx, m.ID); err != nil {
		s.log.ErrorContext(ctx, "maintenance alert failed", "maintenance_id", m.ID, "error", err)
	}
	if err := s.fleet.Reconcile(ctx, m.BusID); err != nil {
		s.log.ErrorContext(ctx, "bus reconcile failed", "bus_id", m.BusID, "error", err)
	}
	return m, nil
}

// UpdateInput carries the optional changes to a maintenance. Nil fields are
// left untouched.
type UpdateInput struct {
	Workshop     *string
	Status       *string
	LaborCost    *float64
	PartsCost    *float64
	ScheduledOn  *time.Time
	Observations *string
}

// Update applies the changes, recomputing the total whenever a cost
// component moves. The transition into COMPLETED fires the completion alert
// exactly once; every update ends with a bus reconciliation.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (domain.Maintenance, error) {
	m, err := s.maintenances.GetByID(ctx, id)
	if err != nil {
		return domain.Maintenance{}, err
	}

	if in.Workshop != nil {
		m.Workshop = *in.Workshop
	}
	if in.LaborCost != nil {
		if *in.LaborCost < 0 {
			return domain.Maintenance{}, domain.NewValidationError("labor_cost", "must not be negative")
		}
		m.LaborCost = *in.LaborCost
	}
	if in.PartsCost != nil {
		if *in.PartsCost < 0 {
			return domain.Maintenance{}, domain.NewValidationError("parts_cost", "must not be negative")
		}
		m.PartsCost = *in.PartsCost
	}
	m.TotalCost = m.LaborCost + m.PartsCost
	if in.ScheduledOn != nil {
		m.ScheduledOn = *in.ScheduledOn
	}
	if in.Observations != nil {
		m.Observations = in.Observations
	}

	completed := false
	if in.Status != nil {
		if !validStatus(*in.Status) {
			return domain.Maintenance{}, domain.NewValidationError("status", "unknown maintenance status "+*in.Status)
		}
		statusID, err := s.catalogs.ResolveOrCreate(ctx, domain.CatalogMaintenanceStatus, *in.Status)
		if err != nil {
			return domain.Maintenance{}, fmt.Errorf("resolve maintenance status: %w", err)
		}
		completed = *in.Status == domain.MaintenanceStatusCompleted && statusID != m.StatusID
		m.StatusID = statusID
	}

	m, err = s.maintenances.Update(ctx, m)
	if err != nil {
		return domain.Maintenance{}, err
	}

	if completed {
		if err := s.alerts.OnMaintenanceCompleted(ctx, m.ID); err != nil {
			s.log.ErrorContext(ctx, "maintenance completion alert failed", "maintenance_id", m.ID, "error", err)
		}
	}
	if err := s.fleet.Reconcile(ctx, m.BusID); err != nil {
		s.log.ErrorContext(ctx, "bus reconcile failed", "bus_id", m.BusID, "error", err)
	}
	return m, nil
}

// Get returns a maintenance by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Maintenance, error) {
	return s.maintenances.GetByID(ctx, id)
}

func validStatus(status string) bool {
	switch status {
	case domain.MaintenanceStatusPending, domain.MaintenanceStatusInProcess,
		domain.MaintenanceStatusCompleted, domain.MaintenanceStatusCancelled:
		return true
	}
	return false
}
