//go:build integration

package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/saturnino-fabrica-de-software/presente/internal/domain"
)

func setupIntegrationTest(t *testing.T) (*pgxpool.Pool, func()) {
	t.Helper()

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "pgvector/pgvector:pg16",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "presente_test",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("postgres://test:test@%s:%s/presente_test?sslmode=disable", host, port.Port())

	db, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	_, err = db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			department TEXT NOT NULL DEFAULT '',
			registered_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS attendance (
			id BIGSERIAL PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			department TEXT NOT NULL DEFAULT '',
			date TEXT NOT NULL,
			time TEXT NOT NULL,
			confidence DOUBLE PRECISION NOT NULL DEFAULT 0,
			source TEXT NOT NULL DEFAULT '',
			UNIQUE (user_id, date)
		);

		CREATE INDEX IF NOT EXISTS idx_attendance_date ON attendance(date);
		CREATE INDEX IF NOT EXISTS idx_attendance_user_id ON attendance(user_id);
	`)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}

	return db, cleanup
}

func TestTryRecord_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupIntegrationTest(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewAttendanceRepository(db)
	identity := domain.Identity{ID: "A001", Name: "Alice", Department: "Engineering"}
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	recorded, err := repo.TryRecord(ctx, identity, 92.5, "camera", now)
	require.NoError(t, err)
	assert.True(t, recorded)

	// Same identity, same day, later time: the constraint answers.
	recorded, err = repo.TryRecord(ctx, identity, 95.0, "camera", now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.False(t, recorded)

	// A new day records again.
	recorded, err = repo.TryRecord(ctx, identity, 90.0, "camera", now.Add(24*time.Hour))
	require.NoError(t, err)
	assert.True(t, recorded)

	events, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "2024-01-02", events[0].Date)
	assert.Equal(t, "2024-01-01", events[1].Date)
}

func TestTryRecord_Integration_Race(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupIntegrationTest(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewAttendanceRepository(db)
	identity := domain.Identity{ID: "A002", Name: "Bob", Department: "Sales"}
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	const attempts = 16
	var wg sync.WaitGroup
	results := make([]bool, attempts)
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = repo.TryRecord(ctx, identity, 90.0, "camera", now)
		}(i)
	}
	wg.Wait()

	wins := 0
	for i := 0; i < attempts; i++ {
		require.NoError(t, errs[i])
		if results[i] {
			wins++
		}
	}
	assert.Equal(t, 1, wins, "exactly one concurrent attempt must record")

	events, err := repo.ListToday(ctx, now)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestUserAttendanceCascade_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupIntegrationTest(t)
	defer cleanup()

	ctx := context.Background()
	users := NewUserRepository(db)
	attendance := NewAttendanceRepository(db)
	identity := domain.Identity{ID: "A003", Name: "Carol", Department: "Engineering"}

	require.NoError(t, users.Create(ctx, &domain.User{Identity: identity}))

	err := users.Create(ctx, &domain.User{Identity: identity})
	assert.ErrorIs(t, err, domain.ErrDuplicateIdentity)

	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	for day := 0; day < 3; day++ {
		recorded, err := attendance.TryRecord(ctx, identity, 90.0, "camera", now.AddDate(0, 0, day))
		require.NoError(t, err)
		require.True(t, recorded)
	}

	trend, err := attendance.Trend(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, trend, 3)

	require.NoError(t, attendance.DeleteForUser(ctx, identity.ID))

	removed, err := users.Delete(ctx, identity.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	events, err := attendance.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)

	_, err = users.GetByID(ctx, identity.ID)
	assert.ErrorIs(t, err, domain.ErrIdentityNotFound)
}
