// Package repository implements data persistence for the capability registry.
//
// Provides PostgreSQL and MySQL implementations with transaction support via
// database.GetTx(). Role and endpoint lists are stored as JSON columns.
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

// PostgreSQLCapabilityRepository implements Capability persistence for PostgreSQL.
type PostgreSQLCapabilityRepository struct {
	db *sql.DB
}

// Create inserts a new Capability into the PostgreSQL database.
func (p *PostgreSQLCapabilityRepository) Create(
	ctx context.Context,
	capability *registryDomain.Capability,
) error {
	querier := database.GetTx(ctx, p.db)

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
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

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

// Get retrieves a Capability by name from the PostgreSQL database.
func (p *PostgreSQLCapabilityRepository) Get(
	ctx context.Context,
	name string,
) (*registryDomain.Capability, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT name, enabled, allowed_roles, rate_limit_count, rate_limit_window_seconds,
			         endpoints, position, created_at, updated_at
			  FROM capabilities WHERE name = $1`

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
// Returns an empty slice if no capabilities exist.
func (p *PostgreSQLCapabilityRepository) List(
	ctx context.Context,
) ([]*registryDomain.Capability, error) {
	querier := database.GetTx(ctx, p.db)

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

	// Initialize empty slice to avoid returning nil for empty results
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
func (p *PostgreSQLCapabilityRepository) UpdateEnabled(
	ctx context.Context,
	name string,
	enabled bool,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE capabilities SET enabled = $1, updated_at = NOW() WHERE name = $2`

	result, err := querier.ExecContext(ctx, query, enabled, name)
	if err != nil {
		return apperrors.Wrap(err, "failed to update capability enabled flag")
	}

	return checkAffected(result)
}

// UpdatePolicy replaces the rate limit policy for a capability.
// Returns ErrCapabilityNotFound if no capability with the given name exists.
func (p *PostgreSQLCapabilityRepository) UpdatePolicy(
	ctx context.Context,
	name string,
	policy registryDomain.RateLimitPolicy,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE capabilities
			  SET rate_limit_count = $1, rate_limit_window_seconds = $2, updated_at = NOW()
			  WHERE name = $3`

	result, err := querier.ExecContext(ctx, query, policy.Count, policy.WindowSeconds, name)
	if err != nil {
		return apperrors.Wrap(err, "failed to update capability policy")
	}

	return checkAffected(result)
}

// Count returns the number of capabilities in the registry.
// Used at bootstrap to decide whether the configured defaults must be seeded.
func (p *PostgreSQLCapabilityRepository) Count(ctx context.Context) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	var count int64
	err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM capabilities`).Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count capabilities")
	}

	return count, nil
}

// NewPostgreSQLCapabilityRepository creates a new PostgreSQL Capability repository.
func NewPostgreSQLCapabilityRepository(db *sql.DB) *PostgreSQLCapabilityRepository {
	return &PostgreSQLCapabilityRepository{db: db}
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanCapability scans one capability row, unmarshaling the JSON list columns.
func scanCapability(row rowScanner) (*registryDomain.Capability, error) {
	var capability registryDomain.Capability
	var rolesJSON, endpointsJSON []byte

	err := row.Scan(
		&capability.Name,
		&capability.Enabled,
		&rolesJSON,
		&capability.RateLimit.Count,
		&capability.RateLimit.WindowSeconds,
		&endpointsJSON,
		&capability.Position,
		&capability.CreatedAt,
		&capability.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(rolesJSON, &capability.AllowedRoles); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal allowed roles")
	}
	if err := json.Unmarshal(endpointsJSON, &capability.Endpoints); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal endpoints")
	}

	return &capability, nil
}

// checkAffected maps a zero-row update to ErrCapabilityNotFound.
func checkAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return registryDomain.ErrCapabilityNotFound
	}
	return nil
}
