// Package alert implements the alert repository. The dedup_key unique
// constraint is the storage-level half of the dedup pattern: Create surfaces
// a collision as domain.ErrAlreadyExists and producers treat that as a no-op.
package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/checkbus/fleet-backend/internal/adapter/postgres"
	"github.com/checkbus/fleet-backend/internal/domain"
)

const columns = `id, dedup_key, title, description, priority, status_id, type_id,
	bus_id, user_id, document_id, incident_id, maintenance_id, created_at`

// Repo provides alert persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new alert repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts an alert. A dedup_key collision returns
// domain.ErrAlreadyExists; callers decide whether that is an error.
func (r *Repo) Create(ctx context.Context, a domain.Alert) (domain.Alert, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	insert := postgres.Builder().
		Insert("alerts").
		Columns("id", "dedup_key", "title", "description", "priority",
			"status_id", "type_id", "bus_id", "user_id", "document_id",
			"incident_id", "maintenance_id", "created_at").
		Values(a.ID, a.DedupKey, a.Title, a.Description, a.Priority.String(),
			a.StatusID, a.TypeID, a.BusID, a.UserID, a.DocumentID,
			a.IncidentID, a.MaintenanceID, a.CreatedAt)

	sql, args, err := insert.ToSql()
	if err != nil {
		return domain.Alert{}, fmt.Errorf("build query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return domain.Alert{}, postgres.MapError(err, "alert", a.DedupKey)
	}
	return a, nil
}

// GetByID returns an alert by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Alert, error) {
	query := postgres.Builder().
		Select(columns).
		From("alerts").
		Where(squirrel.Eq{"id": id})

	sql, args, err := query.ToSql()
	if err != nil {
		return domain.Alert{}, fmt.Errorf("build query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	a, err := scanAlert(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return domain.Alert{}, postgres.MapError(err, "alert", id)
	}
	return a, nil
}

// UpdateStatus moves an alert to a new status (ATTENDED, CLOSED).
func (r *Repo) UpdateStatus(ctx context.Context, id, statusID uuid.UUID) error {
	update := postgres.Builder().
		Update("alerts").
		Set("status_id", statusID).
		Where(squirrel.Eq{"id": id})

	sql, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "alert", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("alert %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// List returns alerts matching the filter, newest first.
func (r *Repo) List(ctx context.Context, filter domain.AlertFilter) ([]domain.Alert, error) {
	query := postgres.Builder().
		Select(columns).
		From("alerts").
		OrderBy("created_at DESC")

	if filter.StatusID != nil {
		query = query.Where(squirrel.Eq{"status_id": *filter.StatusID})
	}
	if filter.TypeID != nil {
		query = query.Where(squirrel.Eq{"type_id": *filter.TypeID})
	}
	if filter.BusID != nil {
		query = query.Where(squirrel.Eq{"bus_id": *filter.BusID})
	}
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "alert", "list")
	}
	defer rows.Close()

	var alerts []domain.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, postgres.MapError(err, "alert", "list")
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "alert", "list")
	}
	return alerts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAlert(row rowScanner) (domain.Alert, error) {
	var (
		a        domain.Alert
		priority string
	)
	err := row.Scan(&a.ID, &a.DedupKey, &a.Title, &a.Description, &priority,
		&a.StatusID, &a.TypeID, &a.BusID, &a.UserID, &a.DocumentID,
		&a.IncidentID, &a.MaintenanceID, &a.CreatedAt)
	if err != nil {
		return domain.Alert{}, err
	}
	a.Priority = domain.Priority(priority)
	return a, nil
}
