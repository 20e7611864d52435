package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	registryDomain "github.com/viralspark/gateway/internal/registry/domain"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db, mock
}

func testCapability() *registryDomain.Capability {
	now := time.Now().UTC()
	return &registryDomain.Capability{
		Name:         "web_scraping",
		Enabled:      true,
		AllowedRoles: []string{"user", "admin"},
		RateLimit:    registryDomain.RateLimitPolicy{Count: 100, WindowSeconds: 3600},
		Endpoints:    []string{"/api/scrape", "/api/browse"},
		Position:     0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func capabilityColumns() []string {
	return []string{
		"name", "enabled", "allowed_roles", "rate_limit_count",
		"rate_limit_window_seconds", "endpoints", "position", "created_at", "updated_at",
	}
}

func capabilityRow(c *registryDomain.Capability) []driverValue {
	return []driverValue{
		c.Name, c.Enabled, []byte(`["user","admin"]`), c.RateLimit.Count,
		c.RateLimit.WindowSeconds, []byte(`["/api/scrape","/api/browse"]`),
		c.Position, c.CreatedAt, c.UpdatedAt,
	}
}

type driverValue = driver.Value

func TestPostgreSQLCapabilityRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgreSQLCapabilityRepository(db)

	capability := testCapability()

	mock.ExpectExec(`INSERT INTO capabilities`).
		WithArgs(
			capability.Name,
			capability.Enabled,
			sqlmock.AnyArg(),
			capability.RateLimit.Count,
			capability.RateLimit.WindowSeconds,
			sqlmock.AnyArg(),
			capability.Position,
			capability.CreatedAt,
			capability.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), capability)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLCapabilityRepository_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLCapabilityRepository(db)

		capability := testCapability()
		rows := sqlmock.NewRows(capabilityColumns()).AddRow(capabilityRow(capability)...)

		mock.ExpectQuery(`SELECT .* FROM capabilities WHERE name`).
			WithArgs(capability.Name).
			WillReturnRows(rows)

		got, err := repo.Get(context.Background(), capability.Name)
		require.NoError(t, err)
		assert.Equal(t, capability.Name, got.Name)
		assert.Equal(t, []string{"user", "admin"}, got.AllowedRoles)
		assert.Equal(t, []string{"/api/scrape", "/api/browse"}, got.Endpoints)
		assert.Equal(t, 100, got.RateLimit.Count)
		assert.Equal(t, 3600, got.RateLimit.WindowSeconds)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLCapabilityRepository(db)

		mock.ExpectQuery(`SELECT .* FROM capabilities WHERE name`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		got, err := repo.Get(context.Background(), "missing")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, registryDomain.ErrCapabilityNotFound)
	})
}

func TestPostgreSQLCapabilityRepository_List(t *testing.T) {
	t.Run("ordered by position", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLCapabilityRepository(db)

		first := testCapability()
		second := testCapability()
		second.Name = "social_media"
		second.Position = 1

		rows := sqlmock.NewRows(capabilityColumns()).
			AddRow(capabilityRow(first)...).
			AddRow(capabilityRow(second)...)

		mock.ExpectQuery(`SELECT .* FROM capabilities\s+ORDER BY position ASC`).
			WillReturnRows(rows)

		got, err := repo.List(context.Background())
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "web_scraping", got[0].Name)
		assert.Equal(t, "social_media", got[1].Name)
	})

	t.Run("empty registry returns empty slice", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLCapabilityRepository(db)

		mock.ExpectQuery(`SELECT .* FROM capabilities\s+ORDER BY position ASC`).
			WillReturnRows(sqlmock.NewRows(capabilityColumns()))

		got, err := repo.List(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestPostgreSQLCapabilityRepository_UpdateEnabled(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLCapabilityRepository(db)

		mock.ExpectExec(`UPDATE capabilities SET enabled`).
			WithArgs(false, "web_scraping").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateEnabled(context.Background(), "web_scraping", false)
		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLCapabilityRepository(db)

		mock.ExpectExec(`UPDATE capabilities SET enabled`).
			WithArgs(true, "missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateEnabled(context.Background(), "missing", true)
		assert.ErrorIs(t, err, registryDomain.ErrCapabilityNotFound)
	})
}

func TestPostgreSQLCapabilityRepository_UpdatePolicy(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLCapabilityRepository(db)

		policy := registryDomain.RateLimitPolicy{Count: 50, WindowSeconds: 600}

		mock.ExpectExec(`UPDATE capabilities\s+SET rate_limit_count`).
			WithArgs(policy.Count, policy.WindowSeconds, "web_scraping").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdatePolicy(context.Background(), "web_scraping", policy)
		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLCapabilityRepository(db)

		policy := registryDomain.RateLimitPolicy{Count: 50, WindowSeconds: 600}

		mock.ExpectExec(`UPDATE capabilities\s+SET rate_limit_count`).
			WithArgs(policy.Count, policy.WindowSeconds, "missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdatePolicy(context.Background(), "missing", policy)
		assert.ErrorIs(t, err, registryDomain.ErrCapabilityNotFound)
	})
}

func TestPostgreSQLCapabilityRepository_Count(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgreSQLCapabilityRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM capabilities`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
