package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/checkbus/fleet-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedCatalogEntry inserts a row into the given catalog table and returns its id.
func SeedCatalogEntry(t *testing.T, pool *pgxpool.Pool, catalog domain.Catalog, name string) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	id := uuid.New()
	_, err := pool.Exec(ctx,
		`INSERT INTO `+catalog.String()+` (id, name) VALUES ($1, $2)`,
		id, name,
	)
	if err != nil {
		t.Fatalf("SeedCatalogEntry(%s, %s): %v", catalog, name, err)
	}
	return id
}

// SeedUser creates a user with a unique email and returns the filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:        uuid.New(),
		Name:      "Test User " + suffix,
		Email:     "testuser-" + suffix + "@example.com",
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, name, email, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Name, user.Email, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("SeedUser: %v", err)
	}
	return user
}

// SeedRole creates a role and returns its id.
func SeedRole(t *testing.T, pool *pgxpool.Pool, name string) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	id := uuid.New()
	_, err := pool.Exec(ctx,
		`INSERT INTO roles (id, name) VALUES ($1, $2)`,
		id, name,
	)
	if err != nil {
		t.Fatalf("SeedRole(%s): %v", name, err)
	}
	return id
}

// AssignRole links a user to a role.
func AssignRole(t *testing.T, pool *pgxpool.Pool, userID, roleID uuid.UUID) {
	t.Helper()
	ctx := context.Background()

	_, err := pool.Exec(ctx,
		`INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)`,
		userID, roleID,
	)
	if err != nil {
		t.Fatalf("AssignRole: %v", err)
	}
}

// SeedBus creates a bus with the given status and returns the filled domain.Bus.
func SeedBus(t *testing.T, pool *pgxpool.Pool, statusID uuid.UUID) domain.Bus {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	bus := domain.Bus{
		ID:        uuid.New(),
		Plate:     "TEST-" + uniqueSuffix(),
		StatusID:  statusID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO buses (id, plate, status_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		bus.ID, bus.Plate, bus.StatusID, bus.CreatedAt, bus.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("SeedBus: %v", err)
	}
	return bus
}

// SeedIncident creates an incident occurred daysAgo days in the past.
func SeedIncident(t *testing.T, pool *pgxpool.Pool, busID, userID, statusID uuid.UUID, daysAgo int) domain.Incident {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	inc := domain.Incident{
		ID:         uuid.New(),
		BusID:      busID,
		UserID:     userID,
		OccurredOn: now.AddDate(0, 0, -daysAgo),
		StatusID:   statusID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO incidents (id, bus_id, user_id, occurred_on, status_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		inc.ID, inc.BusID, inc.UserID, inc.OccurredOn, inc.StatusID, inc.CreatedAt, inc.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("SeedIncident: %v", err)
	}
	return inc
}

// SeedDocument creates a document owned by a user with the given expiry.
func SeedDocument(t *testing.T, pool *pgxpool.Pool, userID, statusID uuid.UUID, expiresOn *time.Time) domain.Document {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	doc := domain.Document{
		ID:        uuid.New(),
		UserID:    &userID,
		FileName:  "doc-" + uniqueSuffix() + ".pdf",
		ExpiresOn: expiresOn,
		StatusID:  statusID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO documents (id, user_id, file_name, expires_on, status_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		doc.ID, doc.UserID, doc.FileName, doc.ExpiresOn, doc.StatusID, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("SeedDocument: %v", err)
	}
	return doc
}
