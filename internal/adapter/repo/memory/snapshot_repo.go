package memory

import (
	"context"

	"warped/internal/app/ports"
)

type SnapshotRepo struct {
	store *Store
}

func NewSnapshotRepo(store *Store) SnapshotRepo {
	return SnapshotRepo{store: store}
}

func (r SnapshotRepo) Get(_ context.Context, slot string) (ports.SnapshotRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	rec, ok := r.store.slots[slot]
	if !ok {
		return ports.SnapshotRecord{}, ports.ErrNotFound
	}
	return cloneRecord(rec), nil
}

func (r SnapshotRepo) Put(_ context.Context, rec ports.SnapshotRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.slots[rec.Slot] = cloneRecord(rec)
	return nil
}

func (r SnapshotRepo) Delete(_ context.Context, slot string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.slots, slot)
	return nil
}
