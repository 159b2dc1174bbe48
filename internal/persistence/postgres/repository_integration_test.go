//go:build integration

package postgres

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"

	"example.com/activitytracker/internal/domain"
)

func TestRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()

	pool := startDatabase(t, ctx)
	repo := NewRepository(pool)

	duration := 45
	location := "riverside park"
	aggregate := domain.ActivityAggregate{
		ID:           uuid.NewString(),
		PhoneNumber:  "+15551230001",
		ActivityType: "exercise",
		Description:  "Morning run",
		DurationMin:  &duration,
		Location:     &location,
		RawMessageID: uuid.NewString(),
		SourceText:   "EXERCISE morning run for 45 minutes at riverside park",
		Confidence:   0.85,
		State:        domain.ActivityStatePending,
		RecordedAt:   time.Now().UTC().Truncate(time.Microsecond),
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
		UpdatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}

	require.NoError(t, repo.Create(ctx, aggregate))

	stored, err := repo.Get(ctx, aggregate.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Equal(t, aggregate.ID, stored.ID)
	require.Equal(t, aggregate.Description, stored.Description)
	require.Equal(t, &duration, stored.DurationMin)

	byMessage, err := repo.FindByMessageID(ctx, aggregate.RawMessageID)
	require.NoError(t, err)
	require.NotNil(t, byMessage)
	require.Equal(t, aggregate.ID, byMessage.ID)

	var outboxCount int
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM outbox WHERE aggregate_id=$1`, aggregate.ID).Scan(&outboxCount))
	require.Equal(t, 2, outboxCount)
}

func TestRepositoryListByPhonePaginates(t *testing.T) {
	ctx := context.Background()

	pool := startDatabase(t, ctx)
	repo := NewRepository(pool)

	phone := "+15551230002"
	base := time.Now().UTC().Truncate(time.Microsecond)
	for i := 0; i < 5; i++ {
		agg := domain.ActivityAggregate{
			ID:           uuid.NewString(),
			PhoneNumber:  phone,
			ActivityType: "work",
			Description:  "Standup",
			RawMessageID: uuid.NewString(),
			SourceText:   "WORK standup",
			State:        domain.ActivityStatePending,
			RecordedAt:   base.Add(time.Duration(i) * time.Minute),
			CreatedAt:    base,
			UpdatedAt:    base,
		}
		require.NoError(t, repo.Create(ctx, agg))
	}

	first, cursor, err := repo.ListByPhone(ctx, phone, nil, 3)
	require.NoError(t, err)
	require.Len(t, first, 3)
	require.NotNil(t, cursor)
	require.True(t, first[0].RecordedAt.After(first[2].RecordedAt))

	second, next, err := repo.ListByPhone(ctx, phone, cursor, 3)
	require.NoError(t, err)
	require.Len(t, second, 2)
	require.Nil(t, next)
	require.True(t, first[2].RecordedAt.After(second[0].RecordedAt))
}

func TestRepositoryMarkSynced(t *testing.T) {
	ctx := context.Background()

	pool := startDatabase(t, ctx)
	repo := NewRepository(pool)

	agg := domain.ActivityAggregate{
		ID:           uuid.NewString(),
		PhoneNumber:  "+15551230003",
		ActivityType: "meal",
		Description:  "Lunch",
		RawMessageID: uuid.NewString(),
		SourceText:   "MEAL lunch",
		State:        domain.ActivityStatePending,
		RecordedAt:   time.Now().UTC(),
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	require.NoError(t, repo.Create(ctx, agg))

	require.NoError(t, repo.MarkSynced(ctx, []string{agg.ID}))

	stored, err := repo.Get(ctx, agg.ID)
	require.NoError(t, err)
	require.Equal(t, domain.ActivityStateSynced, stored.State)
}

func startDatabase(t *testing.T, ctx context.Context) *pgxpool.Pool {
	t.Helper()

	pg, err := postgrescontainer.RunContainer(ctx,
		postgrescontainer.WithDatabase("activities"),
		postgrescontainer.WithUsername("tracker"),
		postgrescontainer.WithPassword("tracker"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, waitForDatabase(ctx, connStr))
	runMigrations(t, ctx, connStr)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })
	return pool
}

func runMigrations(t *testing.T, ctx context.Context, connStr string) {
	files := []string{
		"../../../db/postgres/migrations/0001_init.up.sql",
	}

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	defer pool.Close()

	for _, rel := range files {
		path := resolvePath(t, rel)
		contents, readErr := os.ReadFile(path)
		require.NoError(t, readErr)

		_, execErr := pool.Exec(ctx, string(contents))
		require.NoError(t, execErr)
	}
}

func resolvePath(t *testing.T, rel string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(file), rel)
}

func waitForDatabase(ctx context.Context, connStr string) error {
	deadline := time.Now().Add(30 * time.Second)
	for {
		pool, err := pgxpool.New(ctx, connStr)
		if err == nil {
			err = pool.Ping(ctx)
			pool.Close()
			if err == nil {
				return nil
			}
		}
		if time.Now().After(deadline) {
			return err
		}
		time.Sleep(time.Second)
	}
}
