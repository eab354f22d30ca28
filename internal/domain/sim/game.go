package sim

import (
	"math/rand/v2"
	"time"

	"warped/internal/domain/content"
)

// Game owns a State and is the only thing allowed to mutate it. It is not
// safe for concurrent use; callers serialise access on one goroutine.
type Game struct {
	state     *State
	tables    content.Tables
	clock     Clock
	rng       Rand
	diag      Diagnostics
	observers Observers

	maxStep         time.Duration
	autosaveEvery   time.Duration
	autosaveElapsed time.Duration
	onAutosave      func(*State)
}

type Option func(*Game)

func WithClock(c Clock) Option {
	return func(g *Game) {
		if c != nil {
			g.clock = c
		}
	}
}

func WithRand(r Rand) Option {
	return func(g *Game) {
		if r != nil {
			g.rng = r
		}
	}
}

func WithDiagnostics(d Diagnostics) Option {
	return func(g *Game) {
		if d != nil {
			g.diag = d
		}
	}
}

func WithMaxStep(d time.Duration) Option {
	return func(g *Game) {
		if d > 0 {
			g.maxStep = d
		}
	}
}

// WithAutosave calls fn with the live state every interval of simulated time.
func WithAutosave(interval time.Duration, fn func(*State)) Option {
	return func(g *Game) {
		if interval > 0 {
			g.autosaveEvery = interval
		}
		g.onAutosave = fn
	}
}

func NewGame(tables content.Tables, opts ...Option) *Game {
	g := &Game{
		tables:        tables,
		clock:         SystemClock{},
		diag:          nopDiagnostics{},
		maxStep:       DefaultMaxStep,
		autosaveEvery: DefaultAutosaveInterval,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(uint64(g.clock.Now().UnixNano()), 0x9e3779b97f4a7c15))
	}
	g.state = NewState(tables, g.clock.Now())
	return g
}

func (g *Game) State() *State { return g.state }

func (g *Game) Tables() content.Tables { return g.tables }

func (g *Game) Rand() Rand { return g.rng }

func (g *Game) Clock() Clock { return g.clock }

func (g *Game) Diagnostics() Diagnostics { return g.diag }

// DefaultState builds a fresh state without installing it.
func (g *Game) DefaultState() *State {
	return NewState(g.tables, g.clock.Now())
}

// Replace installs s as the live state and notifies observers.
func (g *Game) Replace(s *State) {
	if s == nil {
		s = g.DefaultState()
	}
	g.state = s
	g.autosaveElapsed = 0
	g.notify()
}

func (g *Game) Reset() {
	g.Replace(g.DefaultState())
}

func (g *Game) Subscribe(fn Observer) func() {
	return g.observers.Subscribe(fn)
}

func (g *Game) notify() {
	g.observers.Notify(g.state)
}

func (g *Game) applied() Outcome {
	g.notify()
	return OutcomeApplied
}

// reject records a precondition failure. An empty message is a silent no-op.
func (g *Game) reject(msg string) Outcome {
	if msg != "" {
		g.addLog(LogWarning, msg, "")
		g.notify()
	}
	return OutcomeRejected
}

func (g *Game) invalid(op, detail string) Outcome {
	g.diag.Defect(op, detail)
	return OutcomeInvalid
}

func (g *Game) upgrade(systemID, upgradeID string) *Upgrade {
	sys := g.state.Systems[systemID]
	if sys == nil {
		return nil
	}
	return sys.Upgrades[upgradeID]
}

// upgradeByID searches every system; upgrade ids are unique across systems.
func (g *Game) upgradeByID(id string) *Upgrade {
	for _, sys := range g.state.Systems {
		if u := sys.Upgrades[id]; u != nil {
			return u
		}
	}
	return nil
}

func (g *Game) acquired(systemID, upgradeID string) bool {
	u := g.upgrade(systemID, upgradeID)
	return u != nil && u.Acquired()
}

func (g *Game) level(systemID, upgradeID string) int {
	if u := g.upgrade(systemID, upgradeID); u != nil && u.Leveled() {
		return u.Level
	}
	return 0
}

func (g *Game) hacked(systemID string) bool {
	sys := g.state.Systems[systemID]
	return sys != nil && sys.Hacked
}

func (g *Game) earthBonus(id string) float64 {
	if e := g.state.EarthSystems[id]; e != nil {
		return e.CurrentBonus()
	}
	return 0
}
