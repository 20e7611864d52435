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

// MySQLUserRepository handles user persistence for MySQL.
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQLUserRepository.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{
		db: db,
	}
}

// Create inserts a new user.
func (r *MySQLUserRepository) Create(ctx context.Context, user *identityDomain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (id, email, password_hash, role, active, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, UTC_TIMESTAMP(), UTC_TIMESTAMP())`

	_, err := querier.ExecContext(
		ctx, query, user.ID, user.Email, user.PasswordHash, user.Role, user.Active,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return identityDomain.ErrUserExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *MySQLUserRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*identityDomain.User, error) {
	var user identityDomain.User
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, email, password_hash, role, active, created_at, updated_at
			  FROM users WHERE id = ?`

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
func (r *MySQLUserRepository) GetByEmail(
	ctx context.Context,
	email string,
) (*identityDomain.User, error) {
	var user identityDomain.User
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, email, password_hash, role, active, created_at, updated_at
			  FROM users WHERE email = ?`

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
func (r *MySQLUserRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET active = ?, updated_at = UTC_TIMESTAMP() WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, active, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user active flag")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		// MySQL reports zero affected rows for unchanged values, so confirm
		// the user really is missing before reporting not found.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}

	return nil
}

// CountUsers returns the total and active user counts.
func (r *MySQLUserRepository) CountUsers(
	ctx context.Context,
) (total int64, active int64, err error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT COUNT(*), COALESCE(SUM(active), 0) FROM users`

	if err := querier.QueryRowContext(ctx, query).Scan(&total, &active); err != nil {
		return 0, 0, apperrors.Wrap(err, "failed to count users")
	}

	return total, active, nil
}

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation.
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	// MySQL: "Error 1062: Duplicate entry"
	return strings.Contains(err.Error(), "Duplicate entry") ||
		strings.Contains(err.Error(), "Error 1062")
}
