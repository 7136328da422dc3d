// Package bus implements the bus repository.
package bus

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

const columns = `id, plate, status_id, registration_expiry, extinguisher_expiry,
	inspection_expiry, created_at, updated_at`

// Repo provides bus persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new bus repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a bus.
func (r *Repo) Create(ctx context.Context, b domain.Bus) (domain.Bus, error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	insert := postgres.Builder().
		Insert("buses").
		Columns("id", "plate", "status_id", "registration_expiry",
			"extinguisher_expiry", "inspection_expiry", "created_at", "updated_at").
		Values(b.ID, b.Plate, b.StatusID, b.RegistrationExpiry,
			b.ExtinguisherExpiry, b.InspectionExpiry, b.CreatedAt, b.UpdatedAt)

	sql, args, err := insert.ToSql()
	if err != nil {
		return domain.Bus{}, fmt.Errorf("build query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return domain.Bus{}, postgres.MapError(err, "bus", b.Plate)
	}
	return b, nil
}

// GetByID returns a bus by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Bus, error) {
	query := postgres.Builder().
		Select(columns).
		From("buses").
		Where(squirrel.Eq{"id": id})

	sql, args, err := query.ToSql()
	if err != nil {
		return domain.Bus{}, fmt.Errorf("build query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	b, err := scanBus(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return domain.Bus{}, postgres.MapError(err, "bus", id)
	}
	return b, nil
}

// UpdateStatus sets the bus status. The fleet reconciler is the only caller
// after creation.
func (r *Repo) UpdateStatus(ctx context.Context, id, statusID uuid.UUID) error {
	update := postgres.Builder().
		Update("buses").
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
		return postgres.MapError(err, "bus", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("bus %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ListExtinguisherExpiring returns buses whose extinguisher expiry falls in
// [from, to], both inclusive.
func (r *Repo) ListExtinguisherExpiring(ctx context.Context, from, to time.Time) ([]domain.Bus, error) {
	return r.listExpiring(ctx, "extinguisher_expiry", from, to)
}

// ListInspectionExpiring returns buses whose technical inspection expiry
// falls in [from, to], both inclusive.
func (r *Repo) ListInspectionExpiring(ctx context.Context, from, to time.Time) ([]domain.Bus, error) {
	return r.listExpiring(ctx, "inspection_expiry", from, to)
}

func (r *Repo) listExpiring(ctx context.Context, column string, from, to time.Time) ([]domain.Bus, error) {
	query := postgres.Builder().
		Select(columns).
		From("buses").
		Where(squirrel.GtOrEq{column: from}).
		Where(squirrel.LtOrEq{column: to}).
		OrderBy(column + " ASC")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "bus", column)
	}
	defer rows.Close()

	var buses []domain.Bus
	for rows.Next() {
		b, err := scanBus(rows)
		if err != nil {
			return nil, postgres.MapError(err, "bus", column)
		}
		buses = append(buses, b)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "bus", column)
	}
	return buses, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBus(row rowScanner) (domain.Bus, error) {
	var b domain.Bus
	err := row.Scan(&b.ID, &b.Plate, &b.StatusID, &b.RegistrationExpiry,
		&b.ExtinguisherExpiry, &b.InspectionExpiry, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return domain.Bus{}, err
	}
	return b, nil
}
