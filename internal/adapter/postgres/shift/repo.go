// Package shift implements the shift repository.
package shift

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

const columns = `id, user_id, bus_id, starts_at, ends_at, status_id,
	route_origin, route_destination, created_at, updated_at`

// Repo provides shift persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new shift repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a shift.
func (r *Repo) Create(ctx context.Context, s domain.Shift) (domain.Shift, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now

	insert := postgres.Builder().
		Insert("shifts").
		Columns("id", "user_id", "bus_id", "starts_at", "ends_at", "status_id",
			"route_origin", "route_destination", "created_at", "updated_at").
		Values(s.ID, s.UserID, s.BusID, s.StartsAt, s.EndsAt, s.StatusID,
			s.RouteOrigin, s.RouteDestination, s.CreatedAt, s.UpdatedAt)

	sql, args, err := insert.ToSql()
	if err != nil {
		return domain.Shift{}, fmt.Errorf("build query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return domain.Shift{}, postgres.MapError(err, "shift", s.ID)
	}
	return s, nil
}

// GetByID returns a shift by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Shift, error) {
	query := postgres.Builder().
		Select(columns).
		From("shifts").
		Where(squirrel.Eq{"id": id})

	sql, args, err := query.ToSql()
	if err != nil {
		return domain.Shift{}, fmt.Errorf("build query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var s domain.Shift
	err = querier.QueryRow(ctx, sql, args...).Scan(&s.ID, &s.UserID, &s.BusID,
		&s.StartsAt, &s.EndsAt, &s.StatusID, &s.RouteOrigin,
		&s.RouteDestination, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return domain.Shift{}, postgres.MapError(err, "shift", id)
	}
	return s, nil
}

// UpdateStatus sets the shift status.
func (r *Repo) UpdateStatus(ctx context.Context, id, statusID uuid.UUID) error {
	update := postgres.Builder().
		Update("shifts").
		Set("status_id", statusID).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id})

	sql, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "shift", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("shift %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
