package domain

// Priority represents the urgency of an alert.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) String() string { return string(p) }

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Catalog identifies one of the name-resolvable status/type tables.
// Catalog rows are matched case-insensitively by name and created on demand;
// they grow monotonically and are never pruned here.
type Catalog string

const (
	CatalogAlertStatus       Catalog = "alert_statuses"
	CatalogAlertType         Catalog = "alert_types"
	CatalogBusStatus         Catalog = "bus_statuses"
	CatalogDocumentStatus    Catalog = "document_statuses"
	CatalogIncidentStatus    Catalog = "incident_statuses"
	CatalogMaintenanceStatus Catalog = "maintenance_statuses"
	CatalogShiftStatus       Catalog = "shift_statuses"
)

func (c Catalog) String() string { return string(c) }

// Alert status lifecycle: ACTIVE -> ATTENDED / CLOSED.
const (
	AlertStatusActive   = "ACTIVE"
	AlertStatusAttended = "ATTENDED"
	AlertStatusClosed   = "CLOSED"
)

// Bus operational statuses, derived by the fleet reconciler.
const (
	BusStatusOperational  = "OPERATIONAL"
	BusStatusMaintenance  = "MAINTENANCE"
	BusStatusOutOfService = "OUT OF SERVICE"
)

// Incident lifecycle: REPORTED -> IN REVIEW -> RESOLVED / DISCARDED.
const (
	IncidentStatusReported  = "REPORTED"
	IncidentStatusInReview  = "IN REVIEW"
	IncidentStatusResolved  = "RESOLVED"
	IncidentStatusDiscarded = "DISCARDED"
)

// Maintenance lifecycle: PENDING -> IN PROCESS -> COMPLETED / CANCELLED.
const (
	MaintenanceStatusPending   = "PENDING"
	MaintenanceStatusInProcess = "IN PROCESS"
	MaintenanceStatusCompleted = "COMPLETED"
	MaintenanceStatusCancelled = "CANCELLED"
)

// Shift lifecycle: SCHEDULED -> IN PROGRESS -> COMPLETED / CANCELLED.
const (
	ShiftStatusScheduled  = "SCHEDULED"
	ShiftStatusInProgress = "IN PROGRESS"
	ShiftStatusCompleted  = "COMPLETED"
	ShiftStatusCancelled  = "CANCELLED"
)

// DocumentStatus is the policy-derived validity of a document.
// It is computed from the expiry date (ClassifyDocumentStatus), never
// trusted from storage when displaying.
type DocumentStatus string

const (
	DocumentStatusVigent       DocumentStatus = "VIGENT"
	DocumentStatusExpiringSoon DocumentStatus = "EXPIRING SOON"
	DocumentStatusExpired      DocumentStatus = "EXPIRED"
)

func (s DocumentStatus) String() string { return string(s) }
