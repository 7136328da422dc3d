// Package fleet derives the operational status of buses from their open
// incidents and active maintenances. Reconcile is the only writer of bus
// status after creation; every mutation path that can change the inputs
// funnels through it.
package fleet

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/checkbus/fleet-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type busRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Bus, error)
	UpdateStatus(ctx context.Context, id, statusID uuid.UUID) error
}

type incidentRepo interface {
	CountForBusByStatusNames(ctx context.Context, busID uuid.UUID, names []string) (int, error)
}

type maintenanceRepo interface {
	CountForBusByStatusNames(ctx context.Context, busID uuid.UUID, names []string) (int, error)
}

type catalogResolver interface {
	ResolveOrCreate(ctx context.Context, catalog domain.Catalog, name string) (uuid.UUID, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Status names that keep a bus off the road.
var (
	openIncidentStatuses    = []string{domain.IncidentStatusReported, domain.IncidentStatusInReview}
	activeMaintenanceStates = []string{domain.MaintenanceStatusPending, domain.MaintenanceStatusInProcess}
)

// Service implements the bus state reconciler.
type Service struct {
	buses        busRepo
	incidents    incidentRepo
	maintenances maintenanceRepo
	catalogs     catalogResolver
	log          *slog.Logger
}

// NewService creates a new fleet service.
func NewService(
	log *slog.Logger,
	buses busRepo,
	incidents incidentRepo,
	maintenances maintenanceRepo,
	catalogs catalogResolver,
) *Service {
	return &Service{
		buses:        buses,
		incidents:    incidents,
		maintenances: maintenances,
		catalogs:     catalogs,
		log:          log.With("service", "fleet"),
	}
}

// Reconcile recomputes the status of a bus. Open incidents take precedence
// over active maintenances; with neither present the bus is operational.
// The stored status is only written when it actually changes. A missing bus
// is not an error: the caller may race a deletion.
func (s *Service) Reconcile(ctx context.Context, busID uuid.UUID) error {
	bus, err := s.buses.GetByID(ctx, busID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.DebugContext(ctx, "reconcile skipped, bus gone", "bus_id", busID)
			return nil
		}
		return err
	}

	openIncidents, err := s.incidents.CountForBusByStatusNames(ctx, busID, openIncidentStatuses)
	if err != nil {
		return err
	}

	activeMaintenances, err := s.maintenances.CountForBusByStatusNames(ctx, busID, activeMaintenanceStates)
	if err != nil {
		return err
	}

	target := domain.BusStatusOperational
	switch {
	case openIncidents > 0:
		target = domain.BusStatusOutOfService
	case activeMaintenances > 0:
		target = domain.BusStatusMaintenance
	}

	targetID, err := s.catalogs.ResolveOrCreate(ctx, domain.CatalogBusStatus, target)
	if err != nil {
		return err
	}

	if targetID == bus.StatusID {
		return nil
	}

	if err := s.buses.UpdateStatus(ctx, busID, targetID); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "bus status reconciled",
		"bus_id", busID,
		"plate", bus.Plate,
		"status", target,
		"open_incidents", openIncidents,
		"active_maintenances", activeMaintenances,
	)
	return nil
}
