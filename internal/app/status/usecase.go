package status

import (
	"context"
	"sort"
	"strings"

	"warped/internal/domain/sim"
)

const DefaultLogLimit = 20

type Runner interface {
	Do(ctx context.Context, fn func(*sim.Game)) error
}

type UseCase struct {
	Session Runner
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	limit := req.LogLimit
	if limit <= 0 {
		limit = DefaultLogLimit
	}
	var resp Response
	err := u.Session.Do(ctx, func(g *sim.Game) {
		resp = Summarize(g, limit)
	})
	return resp, err
}

// State returns the client view of the game.
func (u UseCase) State(ctx context.Context) (View, error) {
	var v View
	err := u.Session.Do(ctx, func(g *sim.Game) {
		v = Snapshot(g)
	})
	return v, err
}

func Summarize(g *sim.Game, logLimit int) Response {
	s := g.State()
	resp := Response{
		Phase:     s.Phase,
		PhaseName: s.Phase.String(),
		Rates:     g.Rates(),
		Resources: s.Resources,
		AI:        s.AI,
		Earth:     s.Earth,
		Log:       tail(s.Log, logLimit),
	}
	for _, id := range g.Tables().SystemOrder() {
		sys := s.Systems[id]
		if sys == nil {
			continue
		}
		resp.Systems = append(resp.Systems, systemView(id, sys, s.Resources.ProcessingPower.Count))
	}
	return resp
}

func systemView(id string, sys *sim.System, power float64) SystemView {
	v := SystemView{
		ID:              id,
		Name:            sys.Name,
		Hacked:          sys.Hacked,
		HackingProgress: sys.HackingProgress,
		HackingCost:     sys.HackingCost,
		Upgrades:        []UpgradeView{},
	}
	ids := make([]string, 0, len(sys.Upgrades))
	for uid := range sys.Upgrades {
		ids = append(ids, uid)
	}
	sort.Strings(ids)
	for _, uid := range ids {
		u := sys.Upgrades[uid]
		uv := UpgradeView{
			ID:          uid,
			Name:        u.Name,
			Description: describe(u),
			Level:       u.Level,
			MaxLevel:    u.MaxLevel,
			Acquired:    u.Acquired(),
			Requires:    u.Requires,
		}
		if cost, ok := u.NextCost(); ok {
			uv.NextCost = &cost
			uv.Affordable = sys.Hacked && power >= cost
		}
		v.Upgrades = append(v.Upgrades, uv)
	}
	return v
}

// describe picks the text for the next level of a leveled upgrade.
func describe(u *sim.Upgrade) string {
	if len(u.Descriptions) == 0 {
		return u.Description
	}
	i := min(u.Level, len(u.Descriptions)-1)
	return u.Descriptions[i]
}

func tail(log []sim.LogEntry, n int) []sim.LogEntry {
	if len(log) > n {
		log = log[len(log)-n:]
	}
	return append([]sim.LogEntry{}, log...)
}

func Snapshot(g *sim.Game) View {
	s := g.State()
	v := View{State: s.WithoutDots(), Rates: g.Rates()}
	if t := s.InfectionTargets[s.Earth.CurrentViewID]; t != nil {
		v.CurrentDots = dotString(t.Dots)
	}
	return v
}

func dotString(dots []sim.Dot) string {
	var b strings.Builder
	b.Grow(len(dots))
	for _, d := range dots {
		if d.Status == sim.DotInfected {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}
