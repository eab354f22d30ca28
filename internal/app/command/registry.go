package command

import (
	"context"
	"strings"

	"warped/internal/domain/sim"
)

type Spec struct {
	Name     Name
	Debug    bool
	Validate func(Args) bool
	Run      func(ctx context.Context, uc UseCase, g *sim.Game, a Args) (sim.Outcome, error)
}

func pure(fn func(g *sim.Game, a Args) sim.Outcome) func(context.Context, UseCase, *sim.Game, Args) (sim.Outcome, error) {
	return func(_ context.Context, _ UseCase, g *sim.Game, a Args) (sim.Outcome, error) {
		return fn(g, a), nil
	}
}

func always(Args) bool { return true }

func has(s string) bool { return strings.TrimSpace(s) != "" }

func assignment(a Args) bool {
	if _, ok := sim.ParseWorkerPool(a.Pool); !ok {
		return false
	}
	_, ok := sim.ParseTask(a.Task)
	return ok && a.Amount > 0
}

func workerArgs(a Args) (sim.WorkerPool, sim.Task, int) {
	pool, _ := sim.ParseWorkerPool(a.Pool)
	task, _ := sim.ParseTask(a.Task)
	return pool, task, a.Amount
}

var registry = map[Name]Spec{
	InfectPod: {
		Validate: func(a Args) bool { return has(a.PodID) },
		Run:      pure(func(g *sim.Game, a Args) sim.Outcome { return g.InfectPod(a.PodID) }),
	},
	PurchaseBay: {
		Validate: always,
		Run:      pure(func(g *sim.Game, _ Args) sim.Outcome { return g.PurchaseBay() }),
	},
	SetHackingTarget: {
		Validate: func(a Args) bool { return has(a.SystemID) },
		Run:      pure(func(g *sim.Game, a Args) sim.Outcome { return g.SetHackingTarget(a.SystemID) }),
	},
	ClearHackingTarget: {
		Validate: always,
		Run:      pure(func(g *sim.Game, _ Args) sim.Outcome { return g.ClearHackingTarget() }),
	},
	PurchaseUpgrade: {
		Validate: func(a Args) bool { return has(a.SystemID) && has(a.UpgradeID) },
		Run: pure(func(g *sim.Game, a Args) sim.Outcome {
			return g.PurchaseUpgrade(a.SystemID, a.UpgradeID)
		}),
	},
	PurchaseEarthUpgrade: {
		Validate: func(a Args) bool { return has(a.SystemID) },
		Run:      pure(func(g *sim.Game, a Args) sim.Outcome { return g.PurchaseEarthUpgrade(a.SystemID) }),
	},
	CompletePhase0: {
		Validate: always,
		Run:      pure(func(g *sim.Game, _ Args) sim.Outcome { return g.CompletePhase0() }),
	},
	CompletePhase1: {
		Validate: always,
		Run:      pure(func(g *sim.Game, _ Args) sim.Outcome { return g.CompletePhase1() }),
	},
	SelectCity: {
		Validate: func(a Args) bool { return has(a.CityID) },
		Run:      pure(func(g *sim.Game, a Args) sim.Outcome { return g.SelectCity(a.CityID) }),
	},
	InfectDot: {
		Validate: func(a Args) bool { return a.DotIndex != nil },
		Run:      pure(func(g *sim.Game, a Args) sim.Outcome { return g.InfectDot(*a.DotIndex) }),
	},
	Awaken: {
		Validate: always,
		Run:      pure(func(g *sim.Game, _ Args) sim.Outcome { return g.Awaken() }),
	},
	Assign: {
		Validate: assignment,
		Run: pure(func(g *sim.Game, a Args) sim.Outcome {
			return g.Assign(workerArgs(a))
		}),
	},
	Unassign: {
		Validate: assignment,
		Run: pure(func(g *sim.Game, a Args) sim.Outcome {
			return g.Unassign(workerArgs(a))
		}),
	},
	Save: {
		Validate: always,
		Run: func(ctx context.Context, uc UseCase, g *sim.Game, _ Args) (sim.Outcome, error) {
			if err := uc.Saves.Save(ctx, g); err != nil {
				return sim.OutcomeRejected, err
			}
			return sim.OutcomeApplied, nil
		},
	},
	Reset: {
		Validate: always,
		Run: func(ctx context.Context, uc UseCase, g *sim.Game, _ Args) (sim.Outcome, error) {
			if err := uc.Saves.Reset(ctx, g); err != nil {
				return sim.OutcomeApplied, err
			}
			return sim.OutcomeApplied, nil
		},
	},
	DebugSkipPhase1: {
		Debug:    true,
		Validate: always,
		Run:      pure(func(g *sim.Game, _ Args) sim.Outcome { return g.SkipToPhase1() }),
	},
	DebugSkipPhase2: {
		Debug:    true,
		Validate: always,
		Run:      pure(func(g *sim.Game, _ Args) sim.Outcome { return g.SkipToPhase2() }),
	},
	DebugGrantPower: {
		Debug:    true,
		Validate: func(a Args) bool { return a.Power > 0 },
		Run:      pure(func(g *sim.Game, a Args) sim.Outcome { return g.GrantPower(a.Power) }),
	},
}

func lookup(name Name, debug bool) (Spec, bool) {
	spec, ok := registry[name]
	if !ok || (spec.Debug && !debug) {
		return Spec{}, false
	}
	spec.Name = name
	return spec, true
}

// Names lists the commands available with the given debug setting.
func Names(debug bool) []Name {
	out := make([]Name, 0, len(registry))
	for name, spec := range registry {
		if spec.Debug && !debug {
			continue
		}
		out = append(out, name)
	}
	return out
}
