package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a back-office user or driver.
type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Role is a named permission group (ADMINISTRATOR, OWNER, DRIVER,
// SUPERVISOR). Alert recipients are resolved through role membership.
type Role struct {
	ID          uuid.UUID
	Name        string
	Description *string
}

// CatalogEntry is a row of one of the status/type catalogs.
type CatalogEntry struct {
	ID          uuid.UUID
	Name        string
	Description *string
}
