package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Alert is a persisted notification about a fleet condition. Exactly one
// alert exists per condition instance; the dedup key carries that identity
// and is unique in storage. An insert that collides on the key is treated
// as a harmless no-op by every producer.
type Alert struct {
	ID          uuid.UUID
	DedupKey    string
	Title       string
	Description string
	Priority    Priority
	StatusID    uuid.UUID
	TypeID      uuid.UUID

	// Causing entities; all optional, an alert may combine a bus and a
	// user (e.g. a driver's document) but never two of the same kind.
	BusID         *uuid.UUID
	UserID        *uuid.UUID
	DocumentID    *uuid.UUID
	IncidentID    *uuid.UUID
	MaintenanceID *uuid.UUID

	CreatedAt time.Time
}

// AlertFilter narrows alert listings. Nil fields are not filtered on.
type AlertFilter struct {
	StatusID *uuid.UUID
	TypeID   *uuid.UUID
	BusID    *uuid.UUID
	Limit    int
}

// Alert kinds, used as the first segment of dedup keys and as alert type
// catalog names.
const (
	AlertKindDocExpiring    = "doc_expiring"
	AlertKindDocExpired     = "doc_expired"
	AlertKindExtinguisher   = "extinguisher"
	AlertKindInspection     = "inspection"
	AlertKindIncidentStale  = "incident_stale"
	AlertKindIncidentNew    = "incident_new"
	AlertKindMaintNew       = "maint_new"
	AlertKindMaintDone      = "maint_done"
	AlertKindShiftAssigned  = "shift_assigned"
	AlertKindShiftCancelled = "shift_cancelled"
)

// DailyDedupKey builds a dedup key for a recurring condition: the same
// condition re-fires at most once per distinct discriminator date (the
// expiry date for window scans, today for stale-incident scans).
func DailyDedupKey(kind, entity string, id uuid.UUID, day time.Time) string {
	return fmt.Sprintf("%s|%s:%s|%s", kind, entity, id, day.Format("2006-01-02"))
}

// PermanentDedupKey builds a dedup key for a one-shot event tied to a single
// entity; the condition can only become true once, so no date is needed.
func PermanentDedupKey(kind, entity string, id uuid.UUID) string {
	return fmt.Sprintf("%s|%s:%s", kind, entity, id)
}
