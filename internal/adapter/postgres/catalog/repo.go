// Package catalog implements the name resolver for the status and type
// catalogs. Lookups are case-insensitive; a missing row is created on the
// fly, so the catalogs grow monotonically and never need seeding.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/checkbus/fleet-backend/internal/adapter/postgres"
	"github.com/checkbus/fleet-backend/internal/domain"
)

// Repo resolves catalog names to ids.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ResolveOrCreate returns the id of the catalog row with the given name,
// inserting it first if absent. Resolution is case-insensitive on name.
// Losing the insert race to a concurrent caller is handled by re-reading,
// so two callers resolving the same name always get the same id.
func (r *Repo) ResolveOrCreate(ctx context.Context, catalog domain.Catalog, name string) (uuid.UUID, error) {
	id, err := r.lookup(ctx, catalog, name)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return uuid.Nil, err
	}

	id, err = r.insert(ctx, catalog, name, nil)
	if err == nil {
		return id, nil
	}
	if errors.Is(err, domain.ErrAlreadyExists) {
		// a concurrent caller created it between our lookup and insert
		return r.lookup(ctx, catalog, name)
	}
	return uuid.Nil, err
}

// ResolveOrCreateAlertType is ResolveOrCreate for the alert_types catalog,
// which additionally carries a category used to pick notification roles.
// The category is only written on creation; an existing row keeps its own.
func (r *Repo) ResolveOrCreateAlertType(ctx context.Context, name, category string) (uuid.UUID, error) {
	id, err := r.lookup(ctx, domain.CatalogAlertType, name)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return uuid.Nil, err
	}

	id, err = r.insert(ctx, domain.CatalogAlertType, name, &category)
	if err == nil {
		return id, nil
	}
	if errors.Is(err, domain.ErrAlreadyExists) {
		return r.lookup(ctx, domain.CatalogAlertType, name)
	}
	return uuid.Nil, err
}

// GetName returns the name of a catalog row by id.
func (r *Repo) GetName(ctx context.Context, catalog domain.Catalog, id uuid.UUID) (string, error) {
	query := postgres.Builder().
		Select("name").
		From(catalog.String()).
		Where(squirrel.Eq{"id": id})

	sql, args, err := query.ToSql()
	if err != nil {
		return "", fmt.Errorf("build query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var name string
	if err := querier.QueryRow(ctx, sql, args...).Scan(&name); err != nil {
		return "", postgres.MapError(err, catalog.String(), id)
	}
	return name, nil
}

func (r *Repo) lookup(ctx context.Context, catalog domain.Catalog, name string) (uuid.UUID, error) {
	query := postgres.Builder().
		Select("id").
		From(catalog.String()).
		Where(squirrel.Expr("lower(name) = lower(?)", name))

	sql, args, err := query.ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("build query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var id uuid.UUID
	if err := querier.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return uuid.Nil, postgres.MapError(err, catalog.String(), name)
	}
	return id, nil
}

func (r *Repo) insert(ctx context.Context, catalog domain.Catalog, name string, category *string) (uuid.UUID, error) {
	id := uuid.New()

	insert := postgres.Builder().
		Insert(catalog.String()).
		Columns("id", "name").
		Values(id, name)
	if category != nil {
		insert = postgres.Builder().
			Insert(catalog.String()).
			Columns("id", "name", "category").
			Values(id, name, *category)
	}

	sql, args, err := insert.ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("build query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return uuid.Nil, postgres.MapError(err, catalog.String(), name)
	}
	return id, nil
}
