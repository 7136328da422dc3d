// Package shift implements driver shift assignment. The driver is notified
// on assignment and on cancellation; notifications never block the mutation.
package shift

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/checkbus/fleet-backend/internal/domain"
)

type shiftRepo interface {
	Create(ctx context.Context, sh domain.Shift) (domain.Shift, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Shift, error)
	UpdateStatus(ctx context.Context, id, statusID uuid.UUID) error
}

type catalogRepo interface {
	ResolveOrCreate(ctx context.Context, catalog domain.Catalog, name string) (uuid.UUID, error)
}

type alertTrigger interface {
	OnShiftAssigned(ctx context.Context, shiftID uuid.UUID) error
	OnShiftCancelled(ctx context.Context, shiftID uuid.UUID) error
}

// Service implements the shift business logic.
type Service struct {
	shifts   shiftRepo
	catalogs catalogRepo
	alerts   alertTrigger
	log      *slog.Logger
}

// NewService creates a new shift service.
func NewService(log *slog.Logger, shifts shiftRepo, catalogs catalogRepo, alerts alertTrigger) *Service {
	return &Service{
		shifts:   shifts,
		catalogs: catalogs,
		alerts:   alerts,
		log:      log.With("service", "shift"),
	}
}

// AssignInput carries the fields for a new shift assignment.
type AssignInput struct {
	UserID           uuid.UUID
	BusID            uuid.UUID
	StartsAt         time.Time
	EndsAt           time.Time
	RouteOrigin      *string
	RouteDestination *string
}

// Assign creates a shift in SCHEDULED and notifies the driver.
func (s *Service) Assign(ctx context.Context, in AssignInput) (domain.Shift, error) {
	if in.UserID == uuid.Nil {
		return domain.Shift{}, domain.NewValidationError("user_id", "is required")
	}
	if in.BusID == uuid.Nil {
		return domain.Shift{}, domain.NewValidationError("bus_id", "is required")
	}
	if in.StartsAt.IsZero() || in.EndsAt.IsZero() {
		return domain.Shift{}, domain.NewValidationError("starts_at", "start and end are required")
	}
	if !in.EndsAt.After(in.StartsAt) {
		return domain.Shift{}, domain.NewValidationError("ends_at", "must be after starts_at")
	}

	statusID, err := s.catalogs.ResolveOrCreate(ctx, domain.CatalogShiftStatus, domain.ShiftStatusScheduled)
	if err != nil {
		return domain.Shift{}, fmt.Errorf("resolve shift status: %w", err)
	}

	sh, err := s.shifts.Create(ctx, domain.Shift{
		UserID:           in.UserID,
		BusID:            in.BusID,
		StartsAt:         in.StartsAt,
		EndsAt:           in.EndsAt,
		StatusID:         statusID,
		RouteOrigin:      in.RouteOrigin,
		RouteDestination: in.RouteDestination,
	})
	if err != nil {
		return domain.Shift{}, err
	}

	if err := s.alerts.OnShiftAssigned(ctx, sh.ID); err != nil {
		s.log.ErrorContext(ctx, "shift assignment alert failed", "shift_id", sh.ID, "error", err)
	}
	return sh, nil
}

// UpdateStatus moves a shift to the named status. Only the transition into
// CANCELLED notifies the driver; cancelling an already cancelled shift is a
// no-op notification-wise.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (domain.Shift, error) {
	if !validStatus(status) {
		return domain.Shift{}, domain.NewValidationError("status", "unknown shift status "+status)
	}

	sh, err := s.shifts.GetByID(ctx, id)
	if err != nil {
		return domain.Shift{}, err
	}

	statusID, err := s.catalogs.ResolveOrCreate(ctx, domain.CatalogShiftStatus, status)
	if err != nil {
		return domain.Shift{}, fmt.Errorf("resolve shift status: %w", err)
	}

	cancelled := status == domain.ShiftStatusCancelled && statusID != sh.StatusID

	if err := s.shifts.UpdateStatus(ctx, id, statusID); err != nil {
		return domain.Shift{}, err
	}
	sh.StatusID = statusID

	if cancelled {
		if err := s.alerts.OnShiftCancelled(ctx, sh.ID); err != nil {
			s.log.ErrorContext(ctx, "shift cancellation alert failed", "shift_id", sh.ID, "error", err)
		}
	}
	return sh, nil
}

// Get returns a shift by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Shift, error) {
	return s.shifts.GetByID(ctx, id)
}

func validStatus(status string) bool {
	switch status {
	case domain.ShiftStatusScheduled, domain.ShiftStatusInProgress,
		domain.ShiftStatusCompleted, domain.ShiftStatusCancelled:
		return true
	}
	return false
}
