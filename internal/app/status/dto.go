package status

import "warped/internal/domain/sim"

type Request struct {
	LogLimit int
}

type UpgradeView struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Level       int      `json:"level"`
	MaxLevel    int      `json:"max_level"`
	Acquired    bool     `json:"acquired"`
	NextCost    *float64 `json:"next_cost,omitempty"`
	Affordable  bool     `json:"affordable"`
	Requires    string   `json:"requires,omitempty"`
}

type SystemView struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Hacked          bool          `json:"hacked"`
	HackingProgress float64       `json:"hacking_progress"`
	HackingCost     float64       `json:"hacking_cost"`
	Upgrades        []UpgradeView `json:"upgrades"`
}

type Response struct {
	Phase     sim.Phase      `json:"phase"`
	PhaseName string         `json:"phase_name"`
	Rates     sim.Rates      `json:"rates"`
	Resources sim.Resources  `json:"resources"`
	AI        sim.AI         `json:"ai"`
	Earth     sim.Earth      `json:"earth"`
	Systems   []SystemView   `json:"systems"`
	Log       []sim.LogEntry `json:"log"`
}

// View is the client-facing state: the full state without dot grids plus a
// compact grid of the target currently on screen.
type View struct {
	State       *sim.State `json:"state"`
	CurrentDots string     `json:"current_dots,omitempty"`
	Rates       sim.Rates  `json:"rates"`
}
