package command

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"warped/internal/domain/content"
	"warped/internal/domain/sim"
)

func TestUseCase_AppliesCommandAndReturnsNewLog(t *testing.T) {
	g := newGame()
	metrics := &stubMetrics{}
	uc := UseCase{Session: directRunner{g: g}, Metrics: metrics}

	resp, err := uc.Execute(context.Background(), Request{Command: InfectPod, Args: Args{PodID: "0-1-2"}})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if resp.Outcome != sim.OutcomeApplied {
		t.Fatalf("expected applied, got %s", resp.Outcome)
	}
	if len(resp.Log) != 1 || resp.Log[0].Type != sim.LogEvent {
		t.Fatalf("expected one event entry, got %+v", resp.Log)
	}
	if metrics.outcomes["infect_pod"][sim.OutcomeApplied] != 1 {
		t.Fatalf("expected metrics to record applied")
	}
}

func TestUseCase_RejectionCarriesWarning(t *testing.T) {
	g := newGame()
	uc := UseCase{Session: directRunner{g: g}}

	resp, err := uc.Execute(context.Background(), Request{Command: PurchaseBay})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if resp.Outcome != sim.OutcomeRejected || len(resp.Log) != 1 || resp.Log[0].Type != sim.LogWarning {
		t.Fatalf("expected warning rejection, got %+v", resp)
	}
}

func TestUseCase_ValidatesArgs(t *testing.T) {
	uc := UseCase{Session: directRunner{g: newGame()}}
	cases := []Request{
		{Command: InfectPod},
		{Command: PurchaseUpgrade, Args: Args{SystemID: "stasis_network"}},
		{Command: InfectDot},
		{Command: Assign, Args: Args{Task: "infect"}},
		{Command: Assign, Args: Args{Task: "infect", Amount: 1, Pool: "robots"}},
	}
	for _, req := range cases {
		if _, err := uc.Execute(context.Background(), req); !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("%s: expected ErrInvalidRequest, got %v", req.Command, err)
		}
	}
}

func TestUseCase_DebugCommandsAreGated(t *testing.T) {
	g := newGame()
	uc := UseCase{Session: directRunner{g: g}}
	if _, err := uc.Execute(context.Background(), Request{Command: DebugSkipPhase2}); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand without debug, got %v", err)
	}

	uc.Debug = true
	resp, err := uc.Execute(context.Background(), Request{Command: DebugSkipPhase2})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if resp.Phase != sim.PhaseEarthInfection {
		t.Fatalf("expected phase 2, got %d", resp.Phase)
	}
}

func TestUseCase_SaveAndResetUseSaver(t *testing.T) {
	g := newGame()
	saver := &stubSaver{}
	uc := UseCase{Session: directRunner{g: g}, Saves: saver}

	if _, err := uc.Execute(context.Background(), Request{Command: Save}); err != nil {
		t.Fatalf("save: %v", err)
	}
	g.InfectPod("0-0-0")
	resp, err := uc.Execute(context.Background(), Request{Command: Reset})
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if saver.saves != 1 || saver.resets != 1 {
		t.Fatalf("unexpected saver calls: %+v", saver)
	}
	if len(resp.Log) != 1 {
		t.Fatalf("expected the fresh log after reset, got %d entries", len(resp.Log))
	}

	saver.err = errors.New("store down")
	if _, err := uc.Execute(context.Background(), Request{Command: Save}); !errors.Is(err, saver.err) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestUseCase_PropagatesSessionError(t *testing.T) {
	wantErr := errors.New("closed")
	uc := UseCase{Session: failingRunner{err: wantErr}}
	if _, err := uc.Execute(context.Background(), Request{Command: Awaken}); !errors.Is(err, wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
}

func TestNamesHidesDebugCommands(t *testing.T) {
	for _, n := range Names(false) {
		if n == DebugGrantPower || n == DebugSkipPhase1 || n == DebugSkipPhase2 {
			t.Fatalf("debug command %s listed without debug", n)
		}
	}
	if len(Names(true)) != len(Names(false))+3 {
		t.Fatalf("expected three debug commands")
	}
}

func newGame() *sim.Game {
	return sim.NewGame(content.Default(),
		sim.WithClock(sim.NewFakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))),
		sim.WithRand(rand.New(rand.NewPCG(1, 1))),
	)
}

type directRunner struct {
	g *sim.Game
}

func (r directRunner) Do(_ context.Context, fn func(*sim.Game)) error {
	fn(r.g)
	return nil
}

type failingRunner struct {
	err error
}

func (r failingRunner) Do(context.Context, func(*sim.Game)) error { return r.err }

type stubSaver struct {
	saves, resets int
	err           error
}

func (s *stubSaver) Save(context.Context, *sim.Game) error {
	if s.err != nil {
		return s.err
	}
	s.saves++
	return nil
}

func (s *stubSaver) Reset(_ context.Context, g *sim.Game) error {
	s.resets++
	g.Reset()
	return nil
}

type stubMetrics struct {
	outcomes map[string]map[sim.Outcome]int
}

func (m *stubMetrics) RecordCommand(name string, outcome sim.Outcome) {
	if m.outcomes == nil {
		m.outcomes = map[string]map[sim.Outcome]int{}
	}
	if m.outcomes[name] == nil {
		m.outcomes[name] = map[sim.Outcome]int{}
	}
	m.outcomes[name][outcome]++
}

func (m *stubMetrics) RecordAutosave(error) {}

func (m *stubMetrics) RecordLoad(bool) {}
