package gormrepo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"warped/internal/app/ports"
)

func openSQLiteForTest(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, ApplyMigrations(context.Background(), db))
	return db
}

func TestSnapshotRepo_SQLiteRoundTrip(t *testing.T) {
	exerciseSnapshotRepo(t, openSQLiteForTest(t))
}

func TestSnapshotRepo_PostgresRoundTrip(t *testing.T) {
	dsn := os.Getenv("WARPED_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("WARPED_TEST_PG_DSN is required for postgres integration test")
	}
	db, err := OpenPostgres(dsn)
	require.NoError(t, err)
	require.NoError(t, ApplyMigrations(context.Background(), db))
	exerciseSnapshotRepo(t, db)
}

func TestApplyMigrations_IsIdempotent(t *testing.T) {
	db := openSQLiteForTest(t)
	require.NoError(t, ApplyMigrations(context.Background(), db))

	var count int64
	require.NoError(t, db.Table("schema_migrations").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func exerciseSnapshotRepo(t *testing.T, db *gorm.DB) {
	t.Helper()
	ctx := context.Background()
	repo := NewSnapshotRepo(db)
	slot := "it-snapshot-" + t.Name()
	_ = repo.Delete(ctx, slot)

	_, err := repo.Get(ctx, slot)
	require.ErrorIs(t, err, ports.ErrNotFound)

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Put(ctx, ports.SnapshotRecord{Slot: slot, Data: []byte(`{"phase":0}`), UpdatedAt: at}))
	require.NoError(t, repo.Put(ctx, ports.SnapshotRecord{Slot: slot, Data: []byte(`{"phase":1}`), UpdatedAt: at.Add(time.Minute)}))

	got, err := repo.Get(ctx, slot)
	require.NoError(t, err)
	assert.JSONEq(t, `{"phase":1}`, string(got.Data))
	assert.True(t, got.UpdatedAt.Equal(at.Add(time.Minute)), "updated_at = %s", got.UpdatedAt)

	require.NoError(t, repo.Delete(ctx, slot))
	_, err = repo.Get(ctx, slot)
	require.ErrorIs(t, err, ports.ErrNotFound)
}
