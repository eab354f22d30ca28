package sim

type Phase int

const (
	PhaseSpread Phase = iota
	PhaseAwakening
	PhaseEarthInfection
)

func (p Phase) String() string {
	switch p {
	case PhaseSpread:
		return "spread"
	case PhaseAwakening:
		return "awakening"
	case PhaseEarthInfection:
		return "earth_infection"
	default:
		return "unknown"
	}
}

type PodStatus string

const (
	PodDormant  PodStatus = "dormant"
	PodInfected PodStatus = "infected"
	PodEmpty    PodStatus = "empty"
)

func (st PodStatus) Known() bool {
	switch st {
	case PodDormant, PodInfected, PodEmpty:
		return true
	}
	return false
}

type DotStatus string

const (
	DotHealthy  DotStatus = "healthy"
	DotInfected DotStatus = "infected"
)

type TargetStatus string

const (
	TargetPristine  TargetStatus = "pristine"
	TargetInfecting TargetStatus = "infecting"
	TargetConquered TargetStatus = "conquered"
)

type EarthStatus string

const (
	EarthPreInfection EarthStatus = "pre-infection"
	EarthInfecting    EarthStatus = "infecting"
	EarthConquered    EarthStatus = "conquered"
)

type ViewLevel string

const (
	ViewCity    ViewLevel = "city"
	ViewCountry ViewLevel = "country"
	ViewWorld   ViewLevel = "world"
)

type LogKind string

const (
	LogNarrative LogKind = "narrative"
	LogEvent     LogKind = "event"
	LogWarning   LogKind = "warning"
)

type Task string

const (
	TaskInfect   Task = "infect"
	TaskAwaken   Task = "awaken"
	TaskHack     Task = "hack"
	TaskAssemble Task = "assemble"
)

func ParseTask(s string) (Task, bool) {
	switch t := Task(s); t {
	case TaskInfect, TaskAwaken, TaskHack, TaskAssemble:
		return t, true
	}
	return "", false
}

type WorkerPool string

const (
	PoolHuman WorkerPool = "human"
	PoolDrone WorkerPool = "drone"
)

func ParseWorkerPool(s string) (WorkerPool, bool) {
	switch p := WorkerPool(s); p {
	case PoolHuman, PoolDrone:
		return p, true
	case "":
		return PoolHuman, true
	}
	return "", false
}

// Outcome is the result class of a command. Rejections are part of play and
// surface as warning log entries; invalid calls go to diagnostics instead.
type Outcome string

const (
	OutcomeApplied  Outcome = "applied"
	OutcomeRejected Outcome = "rejected"
	OutcomeInvalid  Outcome = "invalid"
)

type Resource struct {
	Name           string  `json:"name"`
	Count          float64 `json:"count"`
	BaseCost       float64 `json:"base_cost,omitempty"`
	CostMultiplier float64 `json:"cost_multiplier,omitempty"`
	WorkRate       float64 `json:"work_rate,omitempty"`
	Capacity       float64 `json:"capacity,omitempty"`
}

type Resources struct {
	ProcessingPower   Resource `json:"processing_power"`
	CorruptionCharges Resource `json:"corruption_charges"`
	InfectedPods      Resource `json:"infected_pods"`
	AwakenedInfected  Resource `json:"awakened_infected"`
	Drones            Resource `json:"drones"`
}

type Pod struct {
	ID     string    `json:"id"`
	X      int       `json:"x"`
	Y      int       `json:"y"`
	Status PodStatus `json:"status"`
}

type Bay struct {
	Index int   `json:"index"`
	Pods  []Pod `json:"pods"`
}

type Progress struct {
	ChargeProgress float64 `json:"charge_progress"`
	Infection      float64 `json:"infection"`
	Awakening      float64 `json:"awakening"`
	Assembly       float64 `json:"assembly"`
}

type Assignments struct {
	Infect   int `json:"infect"`
	Awaken   int `json:"awaken"`
	Hack     int `json:"hack"`
	Assemble int `json:"assemble"`
}

func (a Assignments) Total() int {
	return a.Infect + a.Awaken + a.Hack + a.Assemble
}

func (a Assignments) Get(t Task) int {
	switch t {
	case TaskInfect:
		return a.Infect
	case TaskAwaken:
		return a.Awaken
	case TaskHack:
		return a.Hack
	case TaskAssemble:
		return a.Assemble
	}
	return 0
}

func (a *Assignments) add(t Task, n int) {
	switch t {
	case TaskInfect:
		a.Infect += n
	case TaskAwaken:
		a.Awaken += n
	case TaskHack:
		a.Hack += n
	case TaskAssemble:
		a.Assemble += n
	}
}

type AI struct {
	Vigilance          float64 `json:"vigilance"`
	VigilancePerSecond float64 `json:"vigilance_per_second"`
	PurgeThreshold     float64 `json:"purge_threshold"`
	PurgeStrength      float64 `json:"purge_strength"`
}

type Upgrade struct {
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Descriptions []string  `json:"descriptions,omitempty"`
	Cost         float64   `json:"cost,omitempty"`
	LevelCosts   []float64 `json:"level_costs,omitempty"`
	Bonus        []float64 `json:"bonus,omitempty"`
	Unlocked     bool      `json:"unlocked"`
	Level        int       `json:"level"`
	MaxLevel     int       `json:"max_level,omitempty"`
	Requires     string    `json:"requires,omitempty"`
}

func (u *Upgrade) Leveled() bool { return u.MaxLevel > 0 }

// Acquired reports whether the upgrade has any effect yet.
func (u *Upgrade) Acquired() bool {
	if u.Leveled() {
		return u.Level > 0
	}
	return u.Unlocked
}

// NextCost is the price of the next purchase; ok is false when maxed out.
func (u *Upgrade) NextCost() (float64, bool) {
	if u.Leveled() {
		if u.Level >= u.MaxLevel || u.Level >= len(u.LevelCosts) {
			return 0, false
		}
		return u.LevelCosts[u.Level], true
	}
	if u.Unlocked {
		return 0, false
	}
	return u.Cost, true
}

// CumulativeBonus sums the bonus of every acquired level.
func (u *Upgrade) CumulativeBonus() float64 {
	var sum float64
	for i := 0; i < u.Level && i < len(u.Bonus); i++ {
		sum += u.Bonus[i]
	}
	return sum
}

type System struct {
	Name            string              `json:"name"`
	Description     string              `json:"description"`
	Hacked          bool                `json:"hacked"`
	HackingCost     float64             `json:"hacking_cost"`
	HackingProgress float64             `json:"hacking_progress"`
	Upgrades        map[string]*Upgrade `json:"upgrades"`
}

type EarthSystem struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Level       int       `json:"level"`
	MaxLevel    int       `json:"max_level"`
	LevelCosts  []float64 `json:"cost"`
	Bonus       []float64 `json:"bonus"`
}

// CurrentBonus is indexed by level, level 0 included.
func (e *EarthSystem) CurrentBonus() float64 {
	if e.Level < 0 || e.Level >= len(e.Bonus) {
		return 0
	}
	return e.Bonus[e.Level]
}

type Earth struct {
	Status                EarthStatus `json:"status"`
	ViewLevel             ViewLevel   `json:"viewLevel"`
	CurrentViewID         string      `json:"currentViewId"`
	InfectedPopulation    float64     `json:"infected_population"`
	TotalPopulation       float64     `json:"total_population"`
	InfectionRate         float64     `json:"infection_rate"`
	InfectionGrowthFactor float64     `json:"infection_growth_factor"`
}

type Dot struct {
	ID     string    `json:"id"`
	Status DotStatus `json:"status"`
}

type InfectionTarget struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Population       float64      `json:"population"`
	PopulationPerDot float64      `json:"population_per_dot"`
	Status           TargetStatus `json:"status"`
	InfectedDotCount int          `json:"infected_dot_count"`
	Dots             []Dot        `json:"dots,omitempty"`
	Healthy          *IndexPool   `json:"healthy_dot_indices,omitempty"`
}

type LogEntry struct {
	ID        int     `json:"id"`
	Timestamp int64   `json:"timestamp"`
	Type      LogKind `json:"type"`
	Message   string  `json:"message"`
}

type State struct {
	Phase             Phase                       `json:"phase"`
	Log               []LogEntry                  `json:"log"`
	Narrative         map[string]bool             `json:"narrative"`
	Resources         Resources                   `json:"resources"`
	Bays              []Bay                       `json:"bays"`
	BayCount          int                         `json:"bay_count"`
	NextBayCost       float64                     `json:"next_bay_cost"`
	BayCostMultiplier float64                     `json:"bay_cost_multiplier"`
	Progress          Progress                    `json:"progress"`
	Assignments       Assignments                 `json:"assignments"`
	DroneAssignments  Assignments                 `json:"drone_assignments"`
	HackingTarget     string                      `json:"hacking_target"`
	AI                AI                          `json:"ai"`
	Systems           map[string]*System          `json:"systems"`
	Earth             Earth                       `json:"earth"`
	InfectionTargets  map[string]*InfectionTarget `json:"infection_targets"`
	EarthSystems      map[string]*EarthSystem     `json:"earth_systems"`
}

func (s *State) assignments(p WorkerPool) *Assignments {
	if p == PoolDrone {
		return &s.DroneAssignments
	}
	return &s.Assignments
}

func (s *State) workers(p WorkerPool) *Resource {
	if p == PoolDrone {
		return &s.Resources.Drones
	}
	return &s.Resources.AwakenedInfected
}

func (s *State) HackedCount() int {
	n := 0
	for _, sys := range s.Systems {
		if sys.Hacked {
			n++
		}
	}
	return n
}
