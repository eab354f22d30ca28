package inmemory

import (
	"sync"

	"warped/internal/domain/sim"
)

type Snapshot struct {
	CommandTotal    uint64            `json:"command_total"`
	CommandApplied  uint64            `json:"command_applied"`
	CommandRejected uint64            `json:"command_rejected"`
	CommandInvalid  uint64            `json:"command_invalid"`
	ByCommand       map[string]uint64 `json:"by_command"`
	AutosaveOK      uint64            `json:"autosave_ok"`
	AutosaveFailed  uint64            `json:"autosave_failed"`
	LoadsRestored   uint64            `json:"loads_restored"`
	LoadsFresh      uint64            `json:"loads_fresh"`
}

type Recorder struct {
	mu             sync.Mutex
	applied        uint64
	rejected       uint64
	invalid        uint64
	byCommand      map[string]uint64
	autosaveOK     uint64
	autosaveFailed uint64
	restored       uint64
	fresh          uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byCommand: map[string]uint64{},
	}
}

func (r *Recorder) RecordCommand(name string, outcome sim.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch outcome {
	case sim.OutcomeApplied:
		r.applied++
	case sim.OutcomeRejected:
		r.rejected++
	default:
		r.invalid++
	}
	r.byCommand[name]++
}

func (r *Recorder) RecordAutosave(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.autosaveFailed++
		return
	}
	r.autosaveOK++
}

func (r *Recorder) RecordLoad(restored bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if restored {
		r.restored++
		return
	}
	r.fresh++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		CommandApplied:  r.applied,
		CommandRejected: r.rejected,
		CommandInvalid:  r.invalid,
		CommandTotal:    r.applied + r.rejected + r.invalid,
		ByCommand:       make(map[string]uint64, len(r.byCommand)),
		AutosaveOK:      r.autosaveOK,
		AutosaveFailed:  r.autosaveFailed,
		LoadsRestored:   r.restored,
		LoadsFresh:      r.fresh,
	}
	for k, v := range r.byCommand {
		out.ByCommand[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
