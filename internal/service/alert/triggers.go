package alert

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/checkbus/fleet-backend/internal/config"
	"github.com/checkbus/fleet-backend/internal/domain"
)

// Immediate triggers, fired by the entity services right after a mutation
// commits. Each is a one-shot: the dedup key is permanent, so re-invoking a
// trigger for the same entity is harmless. A missing entity is a silent
// no-op; the caller may race a deletion.

// OnIncidentCreated alerts the incident roles and the reporter about a fresh
// incident.
func (s *Service) OnIncidentCreated(ctx context.Context, incidentID uuid.UUID) error {
	inc, err := s.incidents.GetByID(ctx, incidentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}

	title := fmt.Sprintf("New incident reported for bus %s", s.busLabel(ctx, inc.BusID))

	var extra []string
	if reporter, err := s.users.GetByID(ctx, inc.UserID); err == nil {
		extra = append(extra, reporter.Email)
	}

	_, err = s.raise(ctx, domain.AlertKindIncidentNew, config.CategoryIncidents, domain.Alert{
		DedupKey:    domain.PermanentDedupKey(domain.AlertKindIncidentNew, "incident", inc.ID),
		Title:       title,
		Description: title,
		Priority:    domain.PriorityHigh,
		BusID:       &inc.BusID,
		UserID:      &inc.UserID,
		IncidentID:  &inc.ID,
	}, s.recipientsFor(ctx, config.CategoryIncidents, extra...))
	return err
}

// OnMaintenanceCreated alerts the maintenance roles about a newly scheduled
// maintenance.
func (s *Service) OnMaintenanceCreated(ctx context.Context, maintenanceID uuid.UUID) error {
	m, err := s.maintenances.GetByID(ctx, maintenanceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}

	title := fmt.Sprintf("Maintenance scheduled for bus %s at %s on %s",
		s.busLabel(ctx, m.BusID), m.Workshop, m.ScheduledOn.Format("2006-01-02"))

	_, err = s.raise(ctx, domain.AlertKindMaintNew, config.CategoryMaintenance, domain.Alert{
		DedupKey:      domain.PermanentDedupKey(domain.AlertKindMaintNew, "maintenance", m.ID),
		Title:         title,
		Description:   title,
		Priority:      domain.PriorityMedium,
		BusID:         &m.BusID,
		MaintenanceID: &m.ID,
	}, s.recipientsFor(ctx, config.CategoryMaintenance))
	return err
}

// OnMaintenanceCompleted alerts the maintenance roles when a maintenance
// transitions into COMPLETED. The maintenance service invokes it only on
// that transition.
func (s *Service) OnMaintenanceCompleted(ctx context.Context, maintenanceID uuid.UUID) error {
	m, err := s.maintenances.GetByID(ctx, maintenanceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}

	title := fmt.Sprintf("Maintenance of bus %s completed", s.busLabel(ctx, m.BusID))

	_, err = s.raise(ctx, domain.AlertKindMaintDone, config.CategoryMaintenance, domain.Alert{
		DedupKey:      domain.PermanentDedupKey(domain.AlertKindMaintDone, "maintenance", m.ID),
		Title:         title,
		Description:   title,
		Priority:      domain.PriorityMedium,
		BusID:         &m.BusID,
		MaintenanceID: &m.ID,
	}, s.recipientsFor(ctx, config.CategoryMaintenance))
	return err
}

// OnShiftAssigned notifies the driver about a new shift assignment.
func (s *Service) OnShiftAssigned(ctx context.Context, shiftID uuid.UUID) error {
	return s.shiftAlert(ctx, shiftID, domain.AlertKindShiftAssigned,
		"New shift assigned on bus %s starting %s")
}

// OnShiftCancelled notifies the driver that a shift was cancelled. The shift
// service invokes it only on the transition into CANCELLED.
func (s *Service) OnShiftCancelled(ctx context.Context, shiftID uuid.UUID) error {
	return s.shiftAlert(ctx, shiftID, domain.AlertKindShiftCancelled,
		"Shift cancelled on bus %s, was starting %s")
}

func (s *Service) shiftAlert(ctx context.Context, shiftID uuid.UUID, kind, format string) error {
	sh, err := s.shifts.GetByID(ctx, shiftID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}

	title := fmt.Sprintf(format, s.busLabel(ctx, sh.BusID), sh.StartsAt.Format("2006-01-02 15:04"))

	// shift alerts go to the driver, not a role set
	var recipients []string
	if driver, err := s.users.GetByID(ctx, sh.UserID); err == nil {
		recipients = []string{driver.Email}
	}
	recipients = s.combine(recipients, nil)

	_, err = s.raise(ctx, kind, "shifts", domain.Alert{
		DedupKey:    domain.PermanentDedupKey(kind, "shift", sh.ID),
		Title:       title,
		Description: title,
		Priority:    domain.PriorityMedium,
		BusID:       &sh.BusID,
		UserID:      &sh.UserID,
	}, recipients)
	return err
}

// busLabel is a best-effort lookup for alert texts; an unresolvable bus
// falls back to its short id.
func (s *Service) busLabel(ctx context.Context, busID uuid.UUID) string {
	b, err := s.buses.GetByID(ctx, busID)
	if err != nil {
		return "#" + busID.String()[:8]
	}
	return b.Label()
}
