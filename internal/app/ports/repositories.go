package ports

import (
	"context"
	"time"
)

type SnapshotRecord struct {
	Slot      string
	Data      []byte
	UpdatedAt time.Time
}

// SnapshotStore is a key-value store for serialized game snapshots. Get
// returns ErrNotFound for an empty slot.
type SnapshotStore interface {
	Get(ctx context.Context, slot string) (SnapshotRecord, error)
	Put(ctx context.Context, rec SnapshotRecord) error
	Delete(ctx context.Context, slot string) error
}
