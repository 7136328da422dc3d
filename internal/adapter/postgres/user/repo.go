// Package user implements the user and role repository. Its main consumer is
// alert recipient resolution, which turns configured role names into email
// addresses.
package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/checkbus/fleet-backend/internal/adapter/postgres"
	"github.com/checkbus/fleet-backend/internal/domain"
)

// Repo provides user and role persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	query := postgres.Builder().
		Select("id", "name", "email", "created_at", "updated_at").
		From("users").
		Where(squirrel.Eq{"id": id})

	sql, args, err := query.ToSql()
	if err != nil {
		return domain.User{}, fmt.Errorf("build query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var u domain.User
	err = querier.QueryRow(ctx, sql, args...).
		Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, postgres.MapError(err, "user", id)
	}
	return u, nil
}

// EmailsByRoleNames returns the distinct emails of all users holding any of
// the given roles. Role names are matched case-insensitively. An empty or
// unknown role set yields an empty slice, not an error.
func (r *Repo) EmailsByRoleNames(ctx context.Context, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}

	query := postgres.Builder().
		Select("DISTINCT u.email").
		From("users u").
		Join("user_roles ur ON ur.user_id = u.id").
		Join("roles r ON r.id = ur.role_id").
		Where(squirrel.Expr("lower(r.name) = ANY(?)", lowered(names))).
		OrderBy("u.email ASC")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "user", "emails-by-roles")
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, postgres.MapError(err, "user", "emails-by-roles")
		}
		emails = append(emails, email)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "user", "emails-by-roles")
	}
	return emails, nil
}

// RolesByNames returns the roles matching the given names, case-insensitively.
// Names with no matching role are simply absent from the result; the caller
// compares counts when it needs to know.
func (r *Repo) RolesByNames(ctx context.Context, names []string) ([]domain.Role, error) {
	if len(names) == 0 {
		return nil, nil
	}

	query := postgres.Builder().
		Select("id", "name", "description").
		From("roles").
		Where(squirrel.Expr("lower(name) = ANY(?)", lowered(names)))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "role", "by-names")
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description); err != nil {
			return nil, postgres.MapError(err, "role", "by-names")
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "role", "by-names")
	}
	return roles, nil
}

func lowered(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = strings.ToLower(strings.TrimSpace(n))
	}
	return out
}
