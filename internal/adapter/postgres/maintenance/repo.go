// Package maintenance implements the maintenance repository.
package maintenance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/checkbus/fleet-backend/internal/adapter/postgres"
	"github.com/checkbus/fleet-backend/internal/domain"
)

const columns = `m.id, m.bus_id, m.workshop, m.status_id, m.labor_cost,
	m.parts_cost, m.total_cost, m.scheduled_on, m.observations,
	m.created_at, m.updated_at`

// Repo provides maintenance persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new maintenance repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a maintenance.
func (r *Repo) Create(ctx context.Context, m domain.Maintenance) (domain.Maintenance, error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now

	insert := postgres.Builder().
		Insert("maintenances").
		Columns("id", "bus_id", "workshop", "status_id", "labor_cost",
			"parts_cost", "total_cost", "scheduled_on", "observations",
			"created_at", "updated_at").
		Values(m.ID, m.BusID, m.Workshop, m.StatusID, m.LaborCost,
			m.PartsCost, m.TotalCost, m.ScheduledOn, m.Observations,
			m.CreatedAt, m.UpdatedAt)

	sql, args, err := insert.ToSql()
	if err != nil {
		return domain.Maintenance{}, fmt.Errorf("build query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return domain.Maintenance{}, postgres.MapError(err, "maintenance", m.ID)
	}
	return m, nil
}

// GetByID returns a maintenance by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Maintenance, error) {
	query := postgres.Builder().
		Select(columns).
		From("maintenances m").
		Where(squirrel.Eq{"m.id": id})

	sql, args, err := query.ToSql()
	if err != nil {
		return domain.Maintenance{}, fmt.Errorf("build query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	m, err := scanMaintenance(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return domain.Maintenance{}, postgres.MapError(err, "maintenance", id)
	}
	return m, nil
}

// Update rewrites the mutable fields of a maintenance. The caller is
// responsible for keeping total_cost consistent with its components.
func (r *Repo) Update(ctx context.Context, m domain.Maintenance) (domain.Maintenance, error) {
	m.UpdatedAt = time.Now().UTC()

	update := postgres.Builder().
		Update("maintenances").
		Set("workshop", m.Workshop).
		Set("status_id", m.StatusID).
		Set("labor_cost", m.LaborCost).
		Set("parts_cost", m.PartsCost).
		Set("total_cost", m.TotalCost).
		Set("scheduled_on", m.ScheduledOn).
		Set("observations", m.Observations).
		Set("updated_at", m.UpdatedAt).
		Where(squirrel.Eq{"id": m.ID})

	sql, args, err := update.ToSql()
	if err != nil {
		return domain.Maintenance{}, fmt.Errorf("build query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return domain.Maintenance{}, postgres.MapError(err, "maintenance", m.ID)
	}
	if tag.RowsAffected() == 0 {
		return domain.Maintenance{}, fmt.Errorf("maintenance %s: %w", m.ID, domain.ErrNotFound)
	}
	return m, nil
}

// CountForBusByStatusNames counts maintenances of a bus whose status name is
// in names (case-insensitive). Used by the fleet reconciler.
func (r *Repo) CountForBusByStatusNames(ctx context.Context, busID uuid.UUID, names []string) (int, error) {
	lowered := make([]string, len(names))
	for i, n := range names {
		lowered[i] = strings.ToLower(n)
	}

	query := postgres.Builder().
		Select("count(*)").
		From("maintenances m").
		Join("maintenance_statuses s ON s.id = m.status_id").
		Where(squirrel.Eq{"m.bus_id": busID}).
		Where(squirrel.Expr("lower(s.name) = ANY(?)", lowered))

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, postgres.MapError(err, "maintenance", busID)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMaintenance(row rowScanner) (domain.Maintenance, error) {
	var m domain.Maintenance
	err := row.Scan(&m.ID, &m.BusID, &m.Workshop, &m.StatusID, &m.LaborCost,
		&m.PartsCost, &m.TotalCost, &m.ScheduledOn, &m.Observations,
		&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return domain.Maintenance{}, err
	}
	return m, nil
}
