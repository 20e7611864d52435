package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ledgerDomain "github.com/viralspark/gateway/internal/ledger/domain"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db, mock
}

func testRecord() *ledgerDomain.UsageRecord {
	return &ledgerDomain.UsageRecord{
		ID:         uuid.Must(uuid.NewV7()),
		SubjectID:  "subject-1",
		Capability: "web_scraping",
		Endpoint:   "/api/scrape",
		Outcome:    ledgerDomain.OutcomeAdmitted,
		ElapsedMS:  42,
		CreatedAt:  time.Now().UTC(),
	}
}

func TestPostgreSQLUsageRepository_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLUsageRepository(db)
		record := testRecord()

		mock.ExpectExec("INSERT INTO usage_records").
			WithArgs(
				record.ID, record.SubjectID, record.Capability, record.Endpoint,
				record.Outcome, record.ElapsedMS, record.ErrorMessage, record.CreatedAt,
			).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.Create(context.Background(), record)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLUsageRepository(db)

		mock.ExpectExec("INSERT INTO usage_records").
			WillReturnError(errors.New("connection refused"))

		err := repo.Create(context.Background(), testRecord())
		assert.Error(t, err)
	})
}

func TestPostgreSQLUsageRepository_CountAdmittedSince(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgreSQLUsageRepository(db)
	since := time.Now().UTC().Add(-time.Hour)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM usage_records").
		WithArgs("subject-1", "web_scraping", ledgerDomain.OutcomeAdmitted, since).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(7)))

	count, err := repo.CountAdmittedSince(
		context.Background(), "subject-1", "web_scraping", since,
	)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLUsageRepository_OldestAdmittedSince(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLUsageRepository(db)
		since := time.Now().UTC().Add(-time.Hour)
		oldest := since.Add(5 * time.Minute)

		mock.ExpectQuery("SELECT created_at FROM usage_records").
			WithArgs("subject-1", "web_scraping", ledgerDomain.OutcomeAdmitted, since).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(oldest))

		got, err := repo.OldestAdmittedSince(
			context.Background(), "subject-1", "web_scraping", since,
		)
		assert.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, got.Equal(oldest))
	})

	t.Run("NoneInWindow", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLUsageRepository(db)
		since := time.Now().UTC().Add(-time.Hour)

		mock.ExpectQuery("SELECT created_at FROM usage_records").
			WillReturnError(sql.ErrNoRows)

		got, err := repo.OldestAdmittedSince(
			context.Background(), "subject-1", "web_scraping", since,
		)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestPostgreSQLUsageRepository_Aggregate(t *testing.T) {
	t.Run("WithEvents", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLUsageRepository(db)
		since := time.Now().UTC().Add(-time.Hour)
		last := since.Add(30 * time.Minute)

		mock.ExpectQuery("SELECT COUNT\\(\\*\\), MAX\\(created_at\\) FROM usage_records").
			WithArgs("web_scraping", ledgerDomain.OutcomeAdmitted, since).
			WillReturnRows(sqlmock.NewRows([]string{"count", "max"}).AddRow(int64(12), last))

		aggregate, err := repo.Aggregate(context.Background(), "web_scraping", since)
		assert.NoError(t, err)
		assert.Equal(t, int64(12), aggregate.Count)
		require.NotNil(t, aggregate.LastEventAt)
		assert.True(t, aggregate.LastEventAt.Equal(last))
	})

	t.Run("Empty", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLUsageRepository(db)
		since := time.Now().UTC().Add(-time.Hour)

		mock.ExpectQuery("SELECT COUNT\\(\\*\\), MAX\\(created_at\\) FROM usage_records").
			WillReturnRows(sqlmock.NewRows([]string{"count", "max"}).AddRow(int64(0), nil))

		aggregate, err := repo.Aggregate(context.Background(), "web_scraping", since)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), aggregate.Count)
		assert.Nil(t, aggregate.LastEventAt)
	})
}

func TestPostgreSQLUsageRepository_CountSince(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgreSQLUsageRepository(db)
	since := time.Now().UTC().Truncate(24 * time.Hour)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM usage_records WHERE created_at").
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(123)))

	count, err := repo.CountSince(context.Background(), since)
	assert.NoError(t, err)
	assert.Equal(t, int64(123), count)
}

func TestPostgreSQLUsageRepository_List(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgreSQLUsageRepository(db)
	record := testRecord()
	filter := ledgerDomain.ListFilter{
		SubjectID:  "subject-1",
		Capability: "",
		Since:      time.Now().UTC().Add(-time.Hour),
		Offset:     0,
		Limit:      50,
	}

	columns := []string{
		"id", "subject_id", "capability", "endpoint", "outcome",
		"elapsed_ms", "error_message", "created_at",
	}
	mock.ExpectQuery("SELECT id, subject_id, capability, endpoint, outcome").
		WithArgs(filter.SubjectID, filter.Capability, filter.Since, filter.Offset, filter.Limit).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			record.ID, record.SubjectID, record.Capability, record.Endpoint,
			record.Outcome, record.ElapsedMS, record.ErrorMessage, record.CreatedAt,
		))

	records, err := repo.List(context.Background(), filter)
	assert.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, record.SubjectID, records[0].SubjectID)
	assert.Equal(t, ledgerDomain.OutcomeAdmitted, records[0].Outcome)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLUsageRepository_DeleteOlderThan(t *testing.T) {
	t.Run("Delete", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLUsageRepository(db)
		cutoff := time.Now().UTC().AddDate(0, 0, -90)

		mock.ExpectExec("DELETE FROM usage_records WHERE created_at").
			WithArgs(cutoff).
			WillReturnResult(sqlmock.NewResult(0, 250))

		deleted, err := repo.DeleteOlderThan(context.Background(), cutoff, false)
		assert.NoError(t, err)
		assert.Equal(t, int64(250), deleted)
	})

	t.Run("DryRunOnlyCounts", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLUsageRepository(db)
		cutoff := time.Now().UTC().AddDate(0, 0, -90)

		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM usage_records WHERE created_at").
			WithArgs(cutoff).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(250))

		count, err := repo.DeleteOlderThan(context.Background(), cutoff, true)
		assert.NoError(t, err)
		assert.Equal(t, int64(250), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgreSQLUsageRepository_SetElapsed(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgreSQLUsageRepository(db)
	recordID := uuid.New()

	mock.ExpectExec("UPDATE usage_records SET elapsed_ms").
		WithArgs(int64(120), recordID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetElapsed(context.Background(), recordID, 120)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
