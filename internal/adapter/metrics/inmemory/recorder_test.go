package inmemory

import (
	"errors"
	"testing"

	"warped/internal/domain/sim"
)

func TestRecorderSnapshot(t *testing.T) {
	r := NewRecorder()
	r.RecordCommand("infect_pod", sim.OutcomeApplied)
	r.RecordCommand("infect_pod", sim.OutcomeRejected)
	r.RecordCommand("purchase_bay", sim.OutcomeRejected)
	r.RecordCommand("assign", sim.OutcomeInvalid)
	r.RecordAutosave(nil)
	r.RecordAutosave(errors.New("disk full"))
	r.RecordLoad(true)

	s := r.Snapshot()
	if s.CommandTotal != 4 {
		t.Fatalf("expected total 4, got %d", s.CommandTotal)
	}
	if s.CommandApplied != 1 || s.CommandRejected != 2 || s.CommandInvalid != 1 {
		t.Fatalf("unexpected outcome split: %+v", s)
	}
	if s.ByCommand["infect_pod"] != 2 {
		t.Fatalf("expected infect_pod count 2, got %d", s.ByCommand["infect_pod"])
	}
	if s.AutosaveOK != 1 || s.AutosaveFailed != 1 {
		t.Fatalf("unexpected autosave counts: %+v", s)
	}
	if s.LoadsRestored != 1 || s.LoadsFresh != 0 {
		t.Fatalf("unexpected load counts: %+v", s)
	}
}

func TestRecorderSnapshotIsACopy(t *testing.T) {
	r := NewRecorder()
	r.RecordCommand("awaken", sim.OutcomeApplied)
	s := r.Snapshot()
	s.ByCommand["awaken"] = 99
	if r.Snapshot().ByCommand["awaken"] != 1 {
		t.Fatalf("snapshot must not alias recorder state")
	}
}
