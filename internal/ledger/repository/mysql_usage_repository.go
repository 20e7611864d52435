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

// MySQLUsageRepository implements UsageRecord persistence for MySQL.
type MySQLUsageRepository struct {
	db *sql.DB
}

// Create inserts a new UsageRecord into the MySQL database.
func (m *MySQLUsageRepository) Create(
	ctx context.Context,
	record *ledgerDomain.UsageRecord,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO usage_records
			  (id, subject_id, capability, endpoint, outcome, elapsed_ms, error_message, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

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
func (m *MySQLUsageRepository) SetElapsed(
	ctx context.Context,
	id uuid.UUID,
	elapsedMS int64,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE usage_records SET elapsed_ms = ? WHERE id = ?`

	if _, err := querier.ExecContext(ctx, query, elapsedMS, id); err != nil {
		return apperrors.Wrap(err, "failed to set usage record latency")
	}

	return nil
}

// CountAdmittedSince returns the number of admitted records for a subject and
// capability at or after the given instant.
func (m *MySQLUsageRepository) CountAdmittedSince(
	ctx context.Context,
	subjectID string,
	capability string,
	since time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT COUNT(*) FROM usage_records
			  WHERE subject_id = ? AND capability = ? AND outcome = ? AND created_at >= ?`

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
func (m *MySQLUsageRepository) OldestAdmittedSince(
	ctx context.Context,
	subjectID string,
	capability string,
	since time.Time,
) (*time.Time, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT created_at FROM usage_records
			  WHERE subject_id = ? AND capability = ? AND outcome = ? AND created_at >= ?
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
func (m *MySQLUsageRepository) Aggregate(
	ctx context.Context,
	capability string,
	since time.Time,
) (*ledgerDomain.Aggregate, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT COUNT(*), MAX(created_at) FROM usage_records
			  WHERE capability = ? AND outcome = ? AND created_at >= ?`

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
func (m *MySQLUsageRepository) CountSince(
	ctx context.Context,
	since time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT COUNT(*) FROM usage_records WHERE created_at >= ?`

	var count int64
	if err := querier.QueryRowContext(ctx, query, since).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count usage records")
	}

	return count, nil
}

// List retrieves usage records matching the filter, newest first.
func (m *MySQLUsageRepository) List(
	ctx context.Context,
	filter ledgerDomain.ListFilter,
) ([]*ledgerDomain.UsageRecord, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, subject_id, capability, endpoint, outcome, elapsed_ms,
			         error_message, created_at
			  FROM usage_records
			  WHERE (? = '' OR subject_id = ?)
			    AND (? = '' OR capability = ?)
			    AND created_at >= ?
			  ORDER BY created_at DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(
		ctx,
		query,
		filter.SubjectID,
		filter.SubjectID,
		filter.Capability,
		filter.Capability,
		filter.Since,
		filter.Limit,
		filter.Offset,
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
func (m *MySQLUsageRepository) DeleteOlderThan(
	ctx context.Context,
	cutoff time.Time,
	dryRun bool,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	if dryRun {
		query := `SELECT COUNT(*) FROM usage_records WHERE created_at < ?`
		var count int64
		if err := querier.QueryRowContext(ctx, query, cutoff).Scan(&count); err != nil {
			return 0, apperrors.Wrap(err, "failed to count usage records")
		}
		return count, nil
	}

	query := `DELETE FROM usage_records WHERE created_at < ?`

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

// NewMySQLUsageRepository creates a new MySQL usage repository.
func NewMySQLUsageRepository(db *sql.DB) *MySQLUsageRepository {
	return &MySQLUsageRepository{db: db}
}
