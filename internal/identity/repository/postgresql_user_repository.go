// Package repository provides data persistence implementations for identity entities.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/viralspark/gateway/internal/database"
	apperrors "github.com/viralspark/gateway/internal/errors"
	identityDomain "github.com/viralspark/gateway/internal/identity/domain"
)

// PostgreSQLUserRepository handles user persistence for PostgreSQL.
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// NewPostgreSQLUserRepository creates a new PostgreSQLUserRepository.
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{
		db: db,
	}
}

// Create inserts a new user.
func (r *PostgreSQLUserRepository) Create(ctx context.Context, user *identityDomain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (id, email, password_hash, role, active, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, NOW(), NOW())`

	_, err := querier.ExecContext(
		ctx, query, user.ID, user.Email, user.PasswordHash, user.Role, user.Active,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return identityDomain.ErrUserExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *PostgreSQLUserRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*identityDomain.User, error) {
	var user identityDomain.User
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, email, password_hash, role, active, created_at, updated_at
			  FROM users WHERE id = $1`

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Role, &user.Active,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, identityDomain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by id")
	}

	return &user, nil
}

// GetByEmail retrieves a user by email.
func (r *PostgreSQLUserRepository) GetByEmail(
	ctx context.Context,
	email string,
) (*identityDomain.User, error) {
	var user identityDomain.User
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, email, password_hash, role, active, created_at, updated_at
			  FROM users WHERE email = $1`

	err := querier.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Role, &user.Active,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, identityDomain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by email")
	}

	return &user, nil
}

// SetActive flips a user's active flag.
func (r *PostgreSQLUserRepository) SetActive(
	ctx context.Context,
	id uuid.UUID,
	active bool,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET active = $1, updated_at = NOW() WHERE id = $2`

	result, err := querier.ExecContext(ctx, query, active, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user active flag")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return identityDomain.ErrUserNotFound
	}

	return nil
}

// CountUsers returns the total and active user counts.
func (r *PostgreSQLUserRepository) CountUsers(
	ctx context.Context,
) (total int64, active int64, err error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT COUNT(*), COUNT(*) FILTER (WHERE active) FROM users`

	if err := querier.QueryRowContext(ctx, query).Scan(&total, &active); err != nil {
		return 0, 0, apperrors.Wrap(err, "failed to count users")
	}

	return total, active, nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isPostgreSQLUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate key value")
}
