package sim

import (
	"math"

	"warped/internal/domain/content"
)

// Rates is a per-second breakdown of what the next tick will produce.
type Rates struct {
	Phase            Phase   `json:"phase"`
	WorkRate         float64 `json:"work_rate"`
	ChargePerSecond  float64 `json:"charge_per_second,omitempty"`
	PowerPerSecond   float64 `json:"power_per_second"`
	InfectionPerSec  float64 `json:"infection_per_second,omitempty"`
	AwakeningPerSec  float64 `json:"awakening_per_second,omitempty"`
	AssemblyPerSec   float64 `json:"assembly_per_second,omitempty"`
	HackPerSecond    float64 `json:"hack_per_second"`
	VigilancePerSec  float64 `json:"vigilance_per_second"`
	AwakeningCost    float64 `json:"awakening_cost"`
	DroneCost        float64 `json:"drone_cost"`
	IdleWorkers      int     `json:"idle_workers"`
	IdleDrones       int     `json:"idle_drones"`
	HackingTarget    string  `json:"hacking_target,omitempty"`
	PopulationGrowth float64 `json:"population_growth,omitempty"`
}

func (g *Game) Rates() Rates {
	s := g.state
	r := Rates{
		Phase:           s.Phase,
		WorkRate:        g.workRate(),
		AwakeningCost:   g.awakeningCost(),
		DroneCost:       g.droneCost(),
		IdleWorkers:     g.idle(PoolHuman),
		IdleDrones:      g.idle(PoolDrone),
		HackingTarget:   g.hackingTarget(),
		VigilancePerSec: g.vigilanceRate(),
	}
	switch s.Phase {
	case PhaseSpread:
		r.ChargePerSecond = s.Resources.InfectedPods.Count * ChargePerPodPerSecond
		if sys := s.Systems[SysPodControl]; sys != nil && !sys.Hacked {
			r.HackPerSecond = s.Resources.InfectedPods.Count * PodControlHackPerPod
		}
		r.VigilancePerSec = 0
	case PhaseAwakening:
		r.PowerPerSecond = g.awakeningPower()
		r.InfectionPerSec = g.infectionRate()
		if s.Resources.InfectedPods.Count > 0 {
			r.AwakeningPerSec = g.taskRate(TaskAwaken, r.WorkRate)
		}
		if g.hacked(SysDroneControl) {
			r.AssemblyPerSec = g.taskRate(TaskAssemble, g.assemblyWorkRate())
		}
		if r.HackingTarget != "" {
			r.HackPerSecond = g.hackRate()
		}
	case PhaseEarthInfection:
		r.VigilancePerSec = 0
		if s.Earth.Status == EarthInfecting && s.Earth.InfectedPopulation > 0 {
			r.PowerPerSecond = s.Earth.InfectedPopulation * PowerPerInfectedHuman
			r.PopulationGrowth = g.populationGrowth()
		}
	}
	return r
}

func droneBonus(drones int) float64 {
	if drones <= 0 {
		return 1
	}
	return math.Pow(DroneBonusBase, float64(drones))
}

func (g *Game) workRate() float64 {
	rate := g.state.Resources.AwakenedInfected.WorkRate
	if u := g.upgrade(SysStasisNetwork, UpNeuralAmplifiers); u != nil {
		rate += u.CumulativeBonus()
	}
	return rate
}

func (g *Game) assemblyWorkRate() float64 {
	rate := g.workRate()
	if g.acquired(SysDroneControl, UpManufacturing) {
		rate += ManufacturingSpeedBonus
	}
	return rate
}

// taskRate is assigned human work on a task, amplified by drones on it.
func (g *Game) taskRate(t Task, workRate float64) float64 {
	s := g.state
	return float64(s.Assignments.Get(t)) * workRate * droneBonus(s.DroneAssignments.Get(t))
}

func (g *Game) idle(p WorkerPool) int {
	n := int(g.state.workers(p).Count) - g.state.assignments(p).Total()
	if n < 0 {
		return 0
	}
	return n
}

func (g *Game) awakeningPower() float64 {
	s := g.state
	var power float64
	if idle := g.idle(PoolHuman); idle > 0 {
		p := float64(idle) * IdlePowerPerWorker
		if g.acquired(SysInternalComms, UpAmbientProcessing) {
			p *= AmbientProcessingFactor
		}
		power += p
	}
	if g.acquired(SysDroneControl, UpCognitiveSurplus) {
		power += float64(s.Assignments.Total()) * IdlePowerPerWorker * CognitiveSurplusShare
	}
	switch {
	case g.acquired(SysInternalComms, UpDataSiphoning):
		power += DataSiphoningPower
	case g.acquired(SysInternalComms, UpDataSkimming):
		power += DataSkimmingPower
	}
	return power
}

// passiveInfectionRate applies the highest unlocked propagation tier.
func (g *Game) passiveInfectionRate() float64 {
	if !g.acquired(SysStasisNetwork, UpViralPropagation) {
		return 0
	}
	switch {
	case g.acquired(SysNavigation, UpHyperspeed):
		return HyperspeedRate
	case g.acquired(SysStasisNetwork, UpViralSynergy):
		return ViralSynergyRate
	default:
		return ViralPropagationRate
	}
}

func (g *Game) infectionRate() float64 {
	s := g.state
	active := float64(s.Assignments.Infect) * g.workRate()
	return (g.passiveInfectionRate() + active) * droneBonus(s.DroneAssignments.Infect)
}

func (g *Game) hackRate() float64 {
	s := g.state
	passive := s.Resources.InfectedPods.Count * PassiveHackPerPod
	active := float64(s.Assignments.Hack) * g.workRate()
	return (passive + active) * droneBonus(s.DroneAssignments.Hack)
}

func (g *Game) vigilanceRate() float64 {
	rate := g.state.AI.VigilancePerSecond * (1 + VigilancePerHackedSystem*float64(g.state.HackedCount()))
	if g.acquired(SysInternalComms, UpGhostSignal) {
		rate *= GhostSignalFactor
	}
	return rate
}

func (g *Game) awakeningCost() float64 {
	r := g.state.Resources.AwakenedInfected
	cost := r.BaseCost * math.Pow(r.CostMultiplier, r.Count)
	return cost * math.Pow(ReanimationDiscount, float64(g.level(SysNavigation, UpReanimation)))
}

func (g *Game) droneCost() float64 {
	r := g.state.Resources.Drones
	return r.BaseCost * math.Pow(r.CostMultiplier, r.Count)
}

func (g *Game) populationGrowth() float64 {
	e := g.state.Earth
	base := e.InfectionRate * (1 + g.earthBonus(EarthPowerPlants))
	growth := e.InfectedPopulation * e.InfectionGrowthFactor * (1 + g.earthBonus(EarthResearchLabs))
	return base + growth
}

// hackingTarget resolves the explicit target or the first unhacked system in
// content order.
func (g *Game) hackingTarget() string {
	s := g.state
	if s.HackingTarget != "" {
		if sys := s.Systems[s.HackingTarget]; sys != nil && !sys.Hacked {
			return s.HackingTarget
		}
		return ""
	}
	for _, id := range g.tables.SystemOrder() {
		if sys := s.Systems[id]; sys != nil && !sys.Hacked {
			return id
		}
	}
	return ""
}

func (g *Game) targetParent(id string) (string, bool) {
	if id == content.WorldID {
		return "", false
	}
	return g.tables.Parent(id)
}
