package domain

import (
	"time"

	"github.com/google/uuid"
)

// Bus is a fleet vehicle. StatusID is derived by the fleet reconciler from
// the bus's open incidents and active maintenances; nothing else writes it
// after creation.
type Bus struct {
	ID                 uuid.UUID
	Plate              string
	StatusID           uuid.UUID
	RegistrationExpiry *time.Time
	ExtinguisherExpiry *time.Time
	InspectionExpiry   *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Label returns a human-readable identifier for emails and alert titles:
// the plate when present, otherwise the short id.
func (b *Bus) Label() string {
	if b.Plate != "" {
		return b.Plate
	}
	return "#" + b.ID.String()[:8]
}
