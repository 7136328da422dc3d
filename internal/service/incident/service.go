// Package incident implements incident reporting and status management.
// Mutations commit first; the alert trigger and the bus reconciliation run
// afterwards and never roll the mutation back.
package incident

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/checkbus/fleet-backend/internal/domain"
)

type incidentRepo interface {
	Create(ctx context.Context, inc domain.Incident) (domain.Incident, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Incident, error)
	UpdateStatus(ctx context.Context, id, statusID uuid.UUID) error
}

type catalogRepo interface {
	ResolveOrCreate(ctx context.Context, catalog domain.Catalog, name string) (uuid.UUID, error)
}

type alertTrigger interface {
	OnIncidentCreated(ctx context.Context, incidentID uuid.UUID) error
}

type reconciler interface {
	Reconcile(ctx context.Context, busID uuid.UUID) error
}

// Service implements the incident business logic.
type Service struct {
	incidents incidentRepo
	catalogs  catalogRepo
	alerts    alertTrigger
	fleet     reconciler
	log       *slog.Logger
}

// NewService creates a new incident service.
func NewService(
	log *slog.Logger,
	incidents incidentRepo,
	catalogs catalogRepo,
	alerts alertTrigger,
	fleet reconciler,
) *Service {
	return &Service{
		incidents: incidents,
		catalogs:  catalogs,
		alerts:    alerts,
		fleet:     fleet,
		log:       log.With("service", "incident"),
	}
}

// ReportInput carries the fields for a new incident report.
type ReportInput struct {
	BusID       uuid.UUID
	UserID      uuid.UUID
	OccurredOn  time.Time
	Urgency     *string
	Location    *string
	Description *string
}

// Report creates an incident in REPORTED, then fires the immediate alert and
// reconciles the bus. Trigger and reconciliation failures are logged, not
// returned: the incident is already persisted.
func (s *Service) Report(ctx context.Context, in ReportInput) (domain.Incident, error) {
	if in.BusID == uuid.Nil {
		return domain.Incident{}, domain.NewValidationError("bus_id", "is required")
	}
	if in.UserID == uuid.Nil {
		return domain.Incident{}, domain.NewValidationError("user_id", "is required")
	}
	if in.OccurredOn.IsZero() {
		return domain.Incident{}, domain.NewValidationError("occurred_on", "is required")
	}

	statusID, err := s.catalogs.ResolveOrCreate(ctx, domain.CatalogIncidentStatus, domain.IncidentStatusReported)
	if err != nil {
		return domain.Incident{}, fmt.Errorf("resolve incident status: %w", err)
	}

	inc, err := s.incidents.Create(ctx, domain.Incident{
		BusID:       in.BusID,
		UserID:      in.UserID,
		OccurredOn:  in.OccurredOn,
		StatusID:    statusID,
		Urgency:     in.Urgency,
		Location:    in.Location,
		Description: in.Description,
	})
	if err != nil {
		return domain.Incident{}, err
	}

	if err := s.alerts.OnIncidentCreated(ctx, inc.ID); err != nil {
		s.log.ErrorContext(ctx, "incident alert failed", "incident_id", inc.ID, "error", err)
	}
	if err := s.fleet.Reconcile(ctx, inc.BusID); err != nil {
		s.log.ErrorContext(ctx, "bus reconcile failed", "bus_id", inc.BusID, "error", err)
	}
	return inc, nil
}

// UpdateStatus moves an incident to the named status and reconciles the bus,
// since leaving REPORTED/IN REVIEW can put it back on the road.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (domain.Incident, error) {
	if !validStatus(status) {
		return domain.Incident{}, domain.NewValidationError("status", "unknown incident status "+status)
	}

	statusID, err := s.catalogs.ResolveOrCreate(ctx, domain.CatalogIncidentStatus, status)
	if err != nil {
		return domain.Incident{}, fmt.Errorf("resolve incident status: %w", err)
	}

	if err := s.incidents.UpdateStatus(ctx, id, statusID); err != nil {
		return domain.Incident{}, err
	}

	inc, err := s.incidents.GetByID(ctx, id)
	if err != nil {
		return domain.Incident{}, err
	}

	if err := s.fleet.Reconcile(ctx, inc.BusID); err != nil {
		s.log.ErrorContext(ctx, "bus reconcile failed", "bus_id", inc.BusID, "error", err)
	}
	return inc, nil
}

// Get returns an incident by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Incident, error) {
	return s.incidents.GetByID(ctx, id)
}

func validStatus(status string) bool {
	switch status {
	case domain.IncidentStatusReported, domain.IncidentStatusInReview,
		domain.IncidentStatusResolved, domain.IncidentStatusDiscarded:
		return true
	}
	return false
}
