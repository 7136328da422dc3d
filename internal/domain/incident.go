package domain

import (
	"time"

	"github.com/google/uuid"
)

// Incident is a problem reported against a bus by a user.
type Incident struct {
	ID          uuid.UUID
	BusID       uuid.UUID
	UserID      uuid.UUID
	OccurredOn  time.Time
	StatusID    uuid.UUID
	Urgency     *string
	Location    *string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Maintenance is a workshop intervention on a bus.
// TotalCost is always LaborCost + PartsCost; the maintenance service
// recomputes it whenever either component changes.
type Maintenance struct {
	ID           uuid.UUID
	BusID        uuid.UUID
	Workshop     string
	StatusID     uuid.UUID
	LaborCost    float64
	PartsCost    float64
	TotalCost    float64
	ScheduledOn  time.Time
	Observations *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Shift is a driving assignment of a user to a bus.
type Shift struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	BusID            uuid.UUID
	StartsAt         time.Time
	EndsAt           time.Time
	StatusID         uuid.UUID
	RouteOrigin      *string
	RouteDestination *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
