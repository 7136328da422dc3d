// Package incident implements the incident repository.
package incident

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

const columns = `i.id, i.bus_id, i.user_id, i.occurred_on, i.status_id,
	i.urgency, i.location, i.description, i.created_at, i.updated_at`

// Repo provides incident persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new incident repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts an incident.
func (r *Repo) Create(ctx context.Context, inc domain.Incident) (domain.Incident, error) {
	if inc.ID == uuid.Nil {
		inc.ID = uuid.New()
	}
	now := time.Now().UTC()
	inc.CreatedAt = now
	inc.UpdatedAt = now

	insert := postgres.Builder().
		Insert("incidents").
		Columns("id", "bus_id", "user_id", "occurred_on", "status_id",
			"urgency", "location", "description", "created_at", "updated_at").
		Values(inc.ID, inc.BusID, inc.UserID, inc.OccurredOn, inc.StatusID,
			inc.Urgency, inc.Location, inc.Description, inc.CreatedAt, inc.UpdatedAt)

	sql, args, err := insert.ToSql()
	if err != nil {
		return domain.Incident{}, fmt.Errorf("build query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return domain.Incident{}, postgres.MapError(err, "incident", inc.ID)
	}
	return inc, nil
}

// GetByID returns an incident by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Incident, error) {
	query := postgres.Builder().
		Select(columns).
		From("incidents i").
		Where(squirrel.Eq{"i.id": id})

	sql, args, err := query.ToSql()
	if err != nil {
		return domain.Incident{}, fmt.Errorf("build query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	inc, err := scanIncident(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return domain.Incident{}, postgres.MapError(err, "incident", id)
	}
	return inc, nil
}

// UpdateStatus sets the incident status.
func (r *Repo) UpdateStatus(ctx context.Context, id, statusID uuid.UUID) error {
	update := postgres.Builder().
		Update("incidents").
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
		return postgres.MapError(err, "incident", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("incident %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// CountForBusByStatusNames counts incidents of a bus whose status name is in
// names (case-insensitive). Used by the fleet reconciler.
func (r *Repo) CountForBusByStatusNames(ctx context.Context, busID uuid.UUID, names []string) (int, error) {
	query := postgres.Builder().
		Select("count(*)").
		From("incidents i").
		Join("incident_statuses s ON s.id = i.status_id").
		Where(squirrel.Eq{"i.bus_id": busID}).
		Where(squirrel.Expr("lower(s.name) = ANY(?)", lowered(names)))

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, postgres.MapError(err, "incident", busID)
	}
	return count, nil
}

// ListOpenOlderThan returns incidents that occurred on or before cutoff and
// whose status name is still in names (case-insensitive). Used by the sweep's
// stale-incident scan.
func (r *Repo) ListOpenOlderThan(ctx context.Context, cutoff time.Time, names []string) ([]domain.Incident, error) {
	query := postgres.Builder().
		Select(columns).
		From("incidents i").
		Join("incident_statuses s ON s.id = i.status_id").
		Where(squirrel.LtOrEq{"i.occurred_on": cutoff}).
		Where(squirrel.Expr("lower(s.name) = ANY(?)", lowered(names))).
		OrderBy("i.occurred_on ASC")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "incident", "stale")
	}
	defer rows.Close()

	var incidents []domain.Incident
	for rows.Next() {
		inc, err := scanIncident(rows)
		if err != nil {
			return nil, postgres.MapError(err, "incident", "stale")
		}
		incidents = append(incidents, inc)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "incident", "stale")
	}
	return incidents, nil
}

func lowered(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = strings.ToLower(n)
	}
	return out
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIncident(row rowScanner) (domain.Incident, error) {
	var inc domain.Incident
	err := row.Scan(&inc.ID, &inc.BusID, &inc.UserID, &inc.OccurredOn,
		&inc.StatusID, &inc.Urgency, &inc.Location, &inc.Description,
		&inc.CreatedAt, &inc.UpdatedAt)
	if err != nil {
		return domain.Incident{}, err
	}
	return inc, nil
}
