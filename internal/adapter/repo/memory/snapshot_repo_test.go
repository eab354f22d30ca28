package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warped/internal/app/ports"
)

func TestSnapshotRepo_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewSnapshotRepo(NewStore())

	_, err := repo.Get(ctx, "slot")
	require.ErrorIs(t, err, ports.ErrNotFound)

	data := []byte(`{"phase":2}`)
	require.NoError(t, repo.Put(ctx, ports.SnapshotRecord{Slot: "slot", Data: data, UpdatedAt: time.Unix(10, 0)}))
	data[0] = 'x'

	got, err := repo.Get(ctx, "slot")
	require.NoError(t, err)
	assert.Equal(t, `{"phase":2}`, string(got.Data), "store must copy data on put")

	got.Data[0] = 'y'
	again, _ := repo.Get(ctx, "slot")
	assert.Equal(t, `{"phase":2}`, string(again.Data), "store must copy data on get")

	require.NoError(t, repo.Delete(ctx, "slot"))
	_, err = repo.Get(ctx, "slot")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestStore_Seed(t *testing.T) {
	store := NewStore()
	store.Seed(ports.SnapshotRecord{Slot: "warped_save", Data: []byte("{}")})
	got, err := NewSnapshotRepo(store).Get(context.Background(), "warped_save")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(got.Data))
}
