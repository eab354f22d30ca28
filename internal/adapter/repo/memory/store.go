package memory

import (
	"sync"

	"warped/internal/app/ports"
)

type Store struct {
	mu    sync.RWMutex
	slots map[string]ports.SnapshotRecord
}

func NewStore() *Store {
	return &Store{
		slots: make(map[string]ports.SnapshotRecord),
	}
}

func (s *Store) Seed(rec ports.SnapshotRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[rec.Slot] = cloneRecord(rec)
}

func cloneRecord(rec ports.SnapshotRecord) ports.SnapshotRecord {
	rec.Data = append([]byte(nil), rec.Data...)
	return rec
}
