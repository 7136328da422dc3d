// Package document implements the document repository.
package document

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

const columns = `id, bus_id, user_id, file_name, doc_type, expires_on,
	status_id, created_at, updated_at`

// Repo provides document persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new document repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a document.
func (r *Repo) Create(ctx context.Context, d domain.Document) (domain.Document, error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now

	insert := postgres.Builder().
		Insert("documents").
		Columns("id", "bus_id", "user_id", "file_name", "doc_type",
			"expires_on", "status_id", "created_at", "updated_at").
		Values(d.ID, d.BusID, d.UserID, d.FileName, d.Type,
			d.ExpiresOn, d.StatusID, d.CreatedAt, d.UpdatedAt)

	sql, args, err := insert.ToSql()
	if err != nil {
		return domain.Document{}, fmt.Errorf("build query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return domain.Document{}, postgres.MapError(err, "document", d.ID)
	}
	return d, nil
}

// GetByID returns a document by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Document, error) {
	query := postgres.Builder().
		Select(columns).
		From("documents").
		Where(squirrel.Eq{"id": id})

	sql, args, err := query.ToSql()
	if err != nil {
		return domain.Document{}, fmt.Errorf("build query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	d, err := scanDocument(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return domain.Document{}, postgres.MapError(err, "document", id)
	}
	return d, nil
}

// Update rewrites the mutable fields of a document.
func (r *Repo) Update(ctx context.Context, d domain.Document) (domain.Document, error) {
	d.UpdatedAt = time.Now().UTC()

	update := postgres.Builder().
		Update("documents").
		Set("bus_id", d.BusID).
		Set("user_id", d.UserID).
		Set("file_name", d.FileName).
		Set("doc_type", d.Type).
		Set("expires_on", d.ExpiresOn).
		Set("status_id", d.StatusID).
		Set("updated_at", d.UpdatedAt).
		Where(squirrel.Eq{"id": d.ID})

	sql, args, err := update.ToSql()
	if err != nil {
		return domain.Document{}, fmt.Errorf("build query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return domain.Document{}, postgres.MapError(err, "document", d.ID)
	}
	if tag.RowsAffected() == 0 {
		return domain.Document{}, fmt.Errorf("document %s: %w", d.ID, domain.ErrNotFound)
	}
	return d, nil
}

// UpdateStatus sets the stored status of a document. The sweep uses it to
// keep the persisted status in line with the expiry policy.
func (r *Repo) UpdateStatus(ctx context.Context, id, statusID uuid.UUID) error {
	update := postgres.Builder().
		Update("documents").
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
		return postgres.MapError(err, "document", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ListExpiringBetween returns documents whose expiry falls in [from, to],
// both inclusive, ordered by expiry.
func (r *Repo) ListExpiringBetween(ctx context.Context, from, to time.Time) ([]domain.Document, error) {
	query := postgres.Builder().
		Select(columns).
		From("documents").
		Where(squirrel.GtOrEq{"expires_on": from}).
		Where(squirrel.LtOrEq{"expires_on": to}).
		OrderBy("expires_on ASC")

	return r.list(ctx, query)
}

// ListExpiredBefore returns documents whose expiry is strictly before day and
// whose stored status differs from notStatusID. The sweep uses it to find
// expired documents still carrying a stale status.
func (r *Repo) ListExpiredBefore(ctx context.Context, day time.Time, notStatusID uuid.UUID) ([]domain.Document, error) {
	query := postgres.Builder().
		Select(columns).
		From("documents").
		Where(squirrel.Lt{"expires_on": day}).
		Where(squirrel.NotEq{"status_id": notStatusID}).
		OrderBy("expires_on ASC")

	return r.list(ctx, query)
}

func (r *Repo) list(ctx context.Context, query squirrel.SelectBuilder) ([]domain.Document, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "document", "list")
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, postgres.MapError(err, "document", "list")
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "document", "list")
	}
	return docs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (domain.Document, error) {
	var d domain.Document
	err := row.Scan(&d.ID, &d.BusID, &d.UserID, &d.FileName, &d.Type,
		&d.ExpiresOn, &d.StatusID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return domain.Document{}, err
	}
	return d, nil
}
