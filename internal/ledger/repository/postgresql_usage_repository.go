// Package repository implements data persistence for the usage ledger.
//
// Provides PostgreSQL and MySQL implementations with transaction support via
// database.GetTx(). The admitted-call queries back the rate limiter's sliding
// window, so their predicates must stay on the (subject_id, capability,
// outcome, created_at) index.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/viralspark/gateway/internal/database"
	apperrors "github.com/viralspark/gateway/internal/errors"
	ledgerDomain "github.com/viralspark/gateway/internal/ledger/domain"
)

// PostgreSQLUsageRepository implements UsageRecord persistence for PostgreSQL.
type PostgreSQLUsageRepository struct {
	db *sql.DB
}

// Create inserts a new UsageRecord into the PostgreSQL database.
func (p *PostgreSQLUsageRepository) Create(
	ctx context.Context,
	record *ledgerDomain.UsageRecord,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO usage_records
			  (id, subject_id, capability, endpoint, outcome, elapsed_ms, error_message, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := querier.ExecContext(
		ctx,
		query,
		record.ID,
		record.SubjectID,
		record.Capability,
		record.Endpoint,
		record.Outcome,
		record.ElapsedMS,
		record.ErrorMessage,
		record.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create usage record")
	}

	return nil
}

// SetElapsed stamps the handler latency, in milliseconds, onto an existing
// record.
func (p *PostgreSQLUsageRepository) SetElapsed(
	ctx context.Context,
	id uuid.UUID,
	elapsedMS int64,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE usage_records SET elapsed_ms = $1 WHERE id = $2`

	if _, err := querier.ExecContext(ctx, query, elapsedMS, id); err != nil {
		return apperrors.Wrap(err, "failed to set usage record latency")
	}

	return nil
}

// CountAdmittedSince returns the number of admitted records for a subject and
// capability at or after the given instant.
func (p *PostgreSQLUsageRepository) CountAdmittedSince(
	ctx context.Context,
	subjectID string,
	capability string,
	since time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT COUNT(*) FROM usage_records
			  WHERE subject_id = $1 AND capability = $2 AND outcome = $3 AND created_at >= $4`

	var count int64
	err := querier.QueryRowContext(
		ctx, query, subjectID, capability, ledgerDomain.OutcomeAdmitted, since,
	).Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count admitted usage records")
	}

	return count, nil
}

// OldestAdmittedSince returns the creation time of the oldest admitted record
// for a subject and capability at or after the given instant, or nil when none
// exists.
func (p *PostgreSQLUsageRepository) OldestAdmittedSince(
	ctx context.Context,
	subjectID string,
	capability string,
	since time.Time,
) (*time.Time, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT created_at FROM usage_records
			  WHERE subject_id = $1 AND capability = $2 AND outcome = $3 AND created_at >= $4
			  ORDER BY created_at ASC
			  LIMIT 1`

	var createdAt time.Time
	err := querier.QueryRowContext(
		ctx, query, subjectID, capability, ledgerDomain.OutcomeAdmitted, since,
	).Scan(&createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "failed to find oldest admitted usage record")
	}

	return &createdAt, nil
}

// Aggregate returns the admitted-call count and last event time for a
// capability at or after the given instant.
func (p *PostgreSQLUsageRepository) Aggregate(
	ctx context.Context,
	capability string,
	since time.Time,
) (*ledgerDomain.Aggregate, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT COUNT(*), MAX(created_at) FROM usage_records
			  WHERE capability = $1 AND outcome = $2 AND created_at >= $3`

	var count int64
	var lastEventAt sql.NullTime
	err := querier.QueryRowContext(
		ctx, query, capability, ledgerDomain.OutcomeAdmitted, since,
	).Scan(&count, &lastEventAt)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to aggregate usage records")
	}

	aggregate := &ledgerDomain.Aggregate{Count: count}
	if lastEventAt.Valid {
		aggregate.LastEventAt = &lastEventAt.Time
	}

	return aggregate, nil
}

// CountSince returns the number of usage records across all capabilities and
// outcomes at or after the given instant.
func (p *PostgreSQLUsageRepository) CountSince(
	ctx context.Context,
	since time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT COUNT(*) FROM usage_records WHERE created_at >= $1`

	var count int64
	if err := querier.QueryRowContext(ctx, query, since).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count usage records")
	}

	return count, nil
}

// List retrieves usage records matching the filter, newest first.
func (p *PostgreSQLUsageRepository) List(
	ctx context.Context,
	filter ledgerDomain.ListFilter,
) ([]*ledgerDomain.UsageRecord, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, subject_id, capability, endpoint, outcome, elapsed_ms,
			         error_message, created_at
			  FROM usage_records
			  WHERE ($1 = '' OR subject_id = $1)
			    AND ($2 = '' OR capability = $2)
			    AND created_at >= $3
			  ORDER BY created_at DESC
			  OFFSET $4 LIMIT $5`

	rows, err := querier.QueryContext(
		ctx, query, filter.SubjectID, filter.Capability, filter.Since, filter.Offset, filter.Limit,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list usage records")
	}
	defer func() {
		_ = rows.Close()
	}()

	// Initialize empty slice to avoid returning nil for empty results
	records := make([]*ledgerDomain.UsageRecord, 0)
	for rows.Next() {
		record := &ledgerDomain.UsageRecord{}
		err := rows.Scan(
			&record.ID,
			&record.SubjectID,
			&record.Capability,
			&record.Endpoint,
			&record.Outcome,
			&record.ElapsedMS,
			&record.ErrorMessage,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan usage record")
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate usage records")
	}

	return records, nil
}

// DeleteOlderThan removes usage records created before the cutoff and returns
// the number deleted. In dry-run mode it only counts the records the cutoff
// would remove.
func (p *PostgreSQLUsageRepository) DeleteOlderThan(
	ctx context.Context,
	cutoff time.Time,
	dryRun bool,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	if dryRun {
		query := `SELECT COUNT(*) FROM usage_records WHERE created_at < $1`
		var count int64
		if err := querier.QueryRowContext(ctx, query, cutoff).Scan(&count); err != nil {
			return 0, apperrors.Wrap(err, "failed to count usage records")
		}
		return count, nil
	}

	query := `DELETE FROM usage_records WHERE created_at < $1`

	result, err := querier.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete usage records")
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to read deleted row count")
	}

	return deleted, nil
}

// NewPostgreSQLUsageRepository creates a new PostgreSQL usage repository.
func NewPostgreSQLUsageRepository(db *sql.DB) *PostgreSQLUsageRepository {
	return &PostgreSQLUsageRepository{db: db}
}
