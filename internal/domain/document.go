package domain

import (
	"time"

	"github.com/google/uuid"
)

// Document is a fleet or driver document (circulation permit, inspection
// certificate, driver license, ...). It belongs to a bus or to a user; in
// practice exactly one of the two is set, but that is not enforced at the
// type level. StatusID mirrors the policy-derived status; displays always
// recompute via ClassifyDocumentStatus instead of trusting it.
type Document struct {
	ID        uuid.UUID
	BusID     *uuid.UUID
	UserID    *uuid.UUID
	FileName  string
	Type      string
	ExpiresOn *time.Time
	StatusID  uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// expiringSoonWindowDays is the document policy window: a document whose
// expiry falls within this many days of today counts as EXPIRING SOON.
const expiringSoonWindowDays = 30

// ClassifyDocumentStatus derives a document's effective status from its
// expiry date. The comparison is date-only; time of day is stripped from
// both sides. A document with no expiry date is always VIGENT.
//
// This is the single implementation consulted both when displaying a
// document and when the sweep decides whether the stored status needs
// correcting. Keep it that way: a second copy that drifts is a bug.
func ClassifyDocumentStatus(expiresOn *time.Time, today time.Time) DocumentStatus {
	if expiresOn == nil {
		return DocumentStatusVigent
	}

	days := daysBetween(truncateToDay(today), truncateToDay(*expiresOn))
	switch {
	case days < 0:
		return DocumentStatusExpired
	case days <= expiringSoonWindowDays:
		return DocumentStatusExpiringSoon
	default:
		return DocumentStatusVigent
	}
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
