package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/viralspark/gateway/internal/database"
	apperrors "github.com/viralspark/gateway/internal/errors"
	registryDomain "github.com/viralspark/gateway/internal/registry/domain"
)

// MySQLCapabilityRepository implements Capability persistence for MySQL.
// Uses ? placeholders and UTC_TIMESTAMP(); otherwise mirrors the PostgreSQL implementation.
type MySQLCapabilityRepository struct {
	db *sql.DB
}

// Create inserts a new Capability into the MySQL database.
func (m *MySQLCapabilityRepository) Create(
	ctx context.Context,
	capability *registryDomain.Capability,
) error {
	querier := database.GetTx(ctx, m.db)

	rolesJSON, err := json.Marshal(capability.AllowedRoles)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal allowed roles")
	}

	endpointsJSON, err := json.Marshal(capability.Endpoints)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal endpoints")
	}

	query := `INSERT INTO capabilities
			  (name, enabled, allowed_roles, rate_limit_count, rate_limit_window_seconds,
			   endpoints, position, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		capability.Name,
		capability.Enabled,
		rolesJSON,
		capability.RateLimit.Count,
		capability.RateLimit.WindowSeconds,
		endpointsJSON,
		capability.Position,
		capability.CreatedAt,
		capability.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create capability")
	}

	return nil
}

// Get retrieves a Capability by name from the MySQL database.
func (m *MySQLCapabilityRepository) Get(
	ctx context.Context,
	name string,
) (*registryDomain.Capability, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT name, enabled, allowed_roles, rate_limit_count, rate_limit_window_seconds,
			         endpoints, position, created_at, updated_at
			  FROM capabilities WHERE name = ?`

	capability, err := scanCapability(querier.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, registryDomain.ErrCapabilityNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get capability")
	}

	return capability, nil
}

// List retrieves all capabilities ordered by position ascending (insertion order).
func (m *MySQLCapabilityRepository) List(
	ctx context.Context,
) ([]*registryDomain.Capability, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT name, enabled, allowed_roles, rate_limit_count, rate_limit_window_seconds,
			         endpoints, position, created_at, updated_at
			  FROM capabilities
			  ORDER BY position ASC`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list capabilities")
	}
	defer func() {
		_ = rows.Close()
	}()

	capabilities := make([]*registryDomain.Capability, 0)
	for rows.Next() {
		capability, err := scanCapability(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan capability")
		}
		capabilities = append(capabilities, capability)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate capabilities")
	}

	return capabilities, nil
}

// UpdateEnabled sets the enabled flag for a capability.
// Returns ErrCapabilityNotFound if no capability with the given name exists.
func (m *MySQLCapabilityRepository) UpdateEnabled(
	ctx context.Context,
	name string,
	enabled bool,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE capabilities SET enabled = ?, updated_at = UTC_TIMESTAMP() WHERE name = ?`

	result, err := querier.ExecContext(ctx, query, enabled, name)
	if err != nil {
		return apperrors.Wrap(err, "failed to update capability enabled flag")
	}

	// MySQL reports zero affected rows for no-op updates, so a disabled
	// capability disabled again must not look like a missing one.
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		if _, err := m.Get(ctx, name); err != nil {
			return err
		}
	}

	return nil
}

// UpdatePolicy replaces the rate limit policy for a capability.
// Returns ErrCapabilityNotFound if no capability with the given name exists.
func (m *MySQLCapabilityRepository) UpdatePolicy(
	ctx context.Context,
	name string,
	policy registryDomain.RateLimitPolicy,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE capabilities
			  SET rate_limit_count = ?, rate_limit_window_seconds = ?, updated_at = UTC_TIMESTAMP()
			  WHERE name = ?`

	result, err := querier.ExecContext(ctx, query, policy.Count, policy.WindowSeconds, name)
	if err != nil {
		return apperrors.Wrap(err, "failed to update capability policy")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		if _, err := m.Get(ctx, name); err != nil {
			return err
		}
	}

	return nil
}

// Count returns the number of capabilities in the registry.
func (m *MySQLCapabilityRepository) Count(ctx context.Context) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	var count int64
	err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM capabilities`).Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count capabilities")
	}

	return count, nil
}

// NewMySQLCapabilityRepository creates a new MySQL Capability repository.
func NewMySQLCapabilityRepository(db *sql.DB) *MySQLCapabilityRepository {
	return &MySQLCapabilityRepository{db: db}
}
