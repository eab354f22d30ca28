package sim

import (
	"math/rand/v2"
	"testing"
	"time"

	"warped/internal/domain/content"
)

type defect struct {
	op, detail string
}

type recordingDiagnostics struct {
	defects []defect
}

func (d *recordingDiagnostics) Defect(op, detail string) {
	d.defects = append(d.defects, defect{op: op, detail: detail})
}

func newTestGame(t *testing.T, opts ...Option) (*Game, *recordingDiagnostics) {
	t.Helper()
	diag := &recordingDiagnostics{}
	base := []Option{
		WithClock(NewFakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))),
		WithRand(rand.New(rand.NewPCG(7, 11))),
		WithDiagnostics(diag),
	}
	return NewGame(content.Default(), append(base, opts...)...), diag
}

func countNotifications(g *Game) *int {
	n := 0
	g.Subscribe(func(*State) { n++ })
	return &n
}

func lastLog(s *State) LogEntry {
	return s.Log[len(s.Log)-1]
}

func tickSeconds(g *Game, seconds int) {
	for i := 0; i < seconds; i++ {
		g.Tick(time.Second)
	}
}

// enterAwakening moves a fresh game into phase 1 with no passive sources.
func enterAwakening(t *testing.T, g *Game) {
	t.Helper()
	g.state.Systems[SysPodControl].Hacked = true
	g.state.Systems[SysPodControl].HackingProgress = g.state.Systems[SysPodControl].HackingCost
	if got := g.CompletePhase0(); got != OutcomeApplied {
		t.Fatalf("complete phase 0: %s", got)
	}
}
