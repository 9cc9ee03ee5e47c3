package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/fstr/pereval/internal/app/models"
	"github.com/fstr/pereval/internal/db"
	"github.com/fstr/pereval/internal/pkg/apperrors"
)

// ErrUserNotFound is returned when a submitter is not found.
var ErrUserNotFound = apperrors.ErrUserNotFound

// UserRepository handles submitter database operations
type UserRepository struct {
	db db.DB
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(database db.DB) *UserRepository {
	return &UserRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetOrCreate resolves a submitter by email, inserting a new row when none
// exists. Runs on q so it can share the caller's transaction. A reused email
// with different phone or name data keeps the stored row untouched.
func (r *UserRepository) GetOrCreate(ctx context.Context, q db.Querier, user *models.User) (int64, error) {
	id, err := r.getIDByEmail(ctx, q, user.Email)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return 0, err
	}

	sql, args, err := r.sb.Insert("users").
		Columns("email", "phone", "fam", "name", "otc").
		Values(user.Email, user.Phone, user.Fam, user.Name, user.Otc).
		Suffix("ON CONFLICT (email) DO NOTHING RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create user query: %w", err)
	}

	err = q.QueryRow(ctx, sql, args...).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		// Lost the insert race; the row exists now.
		return r.getIDByEmail(ctx, q, user.Email)
	}
	if err != nil {
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	return id, nil
}

// GetByEmail retrieves a submitter by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	sql, args, err := r.sb.Select("id", "email", "phone", "fam", "name", "otc").
		From("users").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user := &models.User{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&user.ID, &user.Email, &user.Phone, &user.Fam, &user.Name, &user.Otc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepository) getIDByEmail(ctx context.Context, q db.Querier, email string) (int64, error) {
	sql, args, err := r.sb.Select("id").
		From("users").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build get user id query: %w", err)
	}

	var id int64
	err = q.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("error getting user id by email: %w", err)
	}

	return id, nil
}
