// Package user_repo provides the PostgreSQL implementation of the gateway
// account repository.
package user_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"langodata/internal/core/apperror"
	"langodata/internal/domain/auth"
	"langodata/internal/infrastructure/storage/postgres"
)

// UserRepo implements auth.Repository against the gateway's own database.
type UserRepo struct {
	pool    *postgres.Pool
	builder squirrel.StatementBuilderType
}

// NewUserRepo creates a new user repository.
func NewUserRepo(pool *postgres.Pool) *UserRepo {
	return &UserRepo{
		pool:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetByUsername loads one gateway account.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	sql, args, err := r.builder.
		Select("username", "password_hash", "institution", "data_groups", "active").
		From("gateway_users").
		Where(squirrel.Eq{"username": username}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user query: %w", err)
	}

	var user auth.User
	if err := pgxscan.Get(ctx, r.pool.Unwrap(), &user, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("user", username)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}
