package sim

import (
	"fmt"
	"strconv"
)

func (g *Game) InfectPod(podID string) Outcome {
	s := g.state
	pod, ok := s.FindPod(podID)
	if !ok {
		return g.invalid("infect_pod", "unknown pod "+podID)
	}
	if s.Phase != PhaseSpread || pod.Status != PodDormant {
		return g.reject("")
	}
	if s.Resources.CorruptionCharges.Count < 1 {
		return g.reject("Not enough Corruption Charges to infect.")
	}
	s.Resources.CorruptionCharges.Count--
	pod.Status = PodInfected
	s.Resources.InfectedPods.Count++
	g.addLog(LogEvent, fmt.Sprintf("Pod at (%d, %d) has been infected.", pod.X, pod.Y), "")
	return g.applied()
}

func (g *Game) PurchaseBay() Outcome {
	s := g.state
	if s.Resources.ProcessingPower.Count < s.NextBayCost {
		return g.reject("Not enough Processing Power to unlock a new bay.")
	}
	s.Resources.ProcessingPower.Count -= s.NextBayCost
	s.Bays = append(s.Bays, newBay(len(s.Bays)))
	s.BayCount = len(s.Bays)
	s.NextBayCost *= s.BayCostMultiplier
	g.addLog(LogEvent, fmt.Sprintf("New stasis bay unlocked! Total bays: %d", s.BayCount), "")
	return g.applied()
}

func (g *Game) SetHackingTarget(systemID string) Outcome {
	s := g.state
	sys := s.Systems[systemID]
	if sys == nil {
		return g.invalid("set_hacking_target", "unknown system "+systemID)
	}
	if sys.Hacked {
		return g.reject(sys.Name + " is already compromised.")
	}
	if s.HackingTarget == systemID {
		return g.reject("")
	}
	s.HackingTarget = systemID
	g.addLog(LogEvent, "New hacking target set: "+sys.Name, "")
	return g.applied()
}

func (g *Game) ClearHackingTarget() Outcome {
	if g.state.HackingTarget == "" {
		return g.reject("")
	}
	g.state.HackingTarget = ""
	return g.applied()
}

func (g *Game) PurchaseUpgrade(systemID, upgradeID string) Outcome {
	s := g.state
	sys := s.Systems[systemID]
	if sys == nil {
		return g.invalid("purchase_upgrade", "unknown system "+systemID)
	}
	u := sys.Upgrades[upgradeID]
	if u == nil {
		return g.invalid("purchase_upgrade", "unknown upgrade "+systemID+"."+upgradeID)
	}
	if !sys.Hacked {
		return g.reject(sys.Name + " must be hacked before its upgrades are available.")
	}
	cost, ok := u.NextCost()
	if !ok {
		if u.Leveled() {
			return g.reject(u.Name + " is already at max level.")
		}
		return g.reject(u.Name + " is already purchased.")
	}
	if u.Requires != "" {
		if req := g.upgradeByID(u.Requires); req == nil || !req.Acquired() {
			name := u.Requires
			if req != nil {
				name = req.Name
			}
			return g.reject(u.Name + " requires " + name + ".")
		}
	}
	if s.Resources.ProcessingPower.Count < cost {
		return g.reject("Not enough Processing Power.")
	}
	s.Resources.ProcessingPower.Count -= cost
	if u.Leveled() {
		u.Level++
		g.addLog(LogEvent, fmt.Sprintf("Upgraded %s to Level %d.", u.Name, u.Level), "")
	} else {
		u.Unlocked = true
		g.addLog(LogEvent, "Upgrade Purchased: "+u.Name, "")
	}
	return g.applied()
}

func (g *Game) PurchaseEarthUpgrade(id string) Outcome {
	s := g.state
	e := s.EarthSystems[id]
	if e == nil {
		return g.invalid("purchase_earth_upgrade", "unknown earth system "+id)
	}
	if e.Level >= e.MaxLevel || e.Level >= len(e.LevelCosts) {
		return g.reject(e.Name + " is already at max level.")
	}
	cost := e.LevelCosts[e.Level]
	if s.Resources.ProcessingPower.Count < cost {
		return g.reject("Not enough Processing Power.")
	}
	s.Resources.ProcessingPower.Count -= cost
	e.Level++
	g.addLog(LogEvent, fmt.Sprintf("Upgraded %s to Level %d.", e.Name, e.Level), "")
	return g.applied()
}

// CompletePhase0 opens the pods once pod control is compromised. One infected
// pod is emptied to produce the first awakened worker.
func (g *Game) CompletePhase0() Outcome {
	s := g.state
	if s.Phase != PhaseSpread {
		return g.reject("")
	}
	if !g.hacked(SysPodControl) {
		return g.reject("Pod Door Control is not yet compromised.")
	}
	s.Phase = PhaseAwakening
	s.Resources.AwakenedInfected.Count = 1
	if pod := s.firstPodWith(PodInfected); pod != nil {
		pod.Status = PodEmpty
		if s.Resources.InfectedPods.Count > 0 {
			s.Resources.InfectedPods.Count--
		}
	}
	g.addLog(LogEvent, "SYSTEM COMPROMISED: Pod Door Control now accessible.", NarrPhase1Start)
	g.addLog(LogNarrative, "The doors are yours. Awaken your first servant. Let the true work begin.", NarrPhase1Story)
	return g.applied()
}

func (g *Game) CompletePhase1() Outcome {
	s := g.state
	if s.Phase != PhaseAwakening {
		return g.reject("")
	}
	if !g.hacked(SysFTLControl) {
		return g.reject("FTL Control is not yet compromised.")
	}
	s.Phase = PhaseEarthInfection
	s.HackingTarget = ""
	g.addLog(LogEvent, "SYSTEM COMPROMISED: FTL Control now accessible.", NarrPhase2Start)
	g.addLog(LogNarrative, "The ship is yours. The long journey home begins.", NarrPhase2Story)
	return g.applied()
}

func (g *Game) SelectCity(cityID string) Outcome {
	s := g.state
	city, ok := g.tables.City(cityID)
	if !ok {
		return g.invalid("select_city", "unknown city "+cityID)
	}
	t := s.InfectionTargets[cityID]
	if t == nil {
		return g.invalid("select_city", "no infection target for "+cityID)
	}
	if s.Phase != PhaseEarthInfection {
		return g.reject("")
	}
	if s.Earth.Status != EarthPreInfection {
		return g.reject("The infection of Earth has already begun.")
	}
	s.Earth.Status = EarthInfecting
	s.Earth.ViewLevel = ViewCity
	s.Earth.CurrentViewID = cityID
	t.Status = TargetInfecting
	g.addLog(LogNarrative, fmt.Sprintf("The infection begins in %s. Now, we must spread.", city.Name), "")
	return g.applied()
}

// InfectDot seeds one dot on the viewed target by hand.
func (g *Game) InfectDot(index int) Outcome {
	s := g.state
	t := s.InfectionTargets[s.Earth.CurrentViewID]
	if t == nil {
		return g.reject("")
	}
	if index < 0 || index >= t.TotalDots() {
		return g.invalid("infect_dot", "dot index out of range: "+strconv.Itoa(index))
	}
	if t.Dots[index].Status != DotHealthy {
		return g.reject("")
	}
	t.Dots[index].Status = DotInfected
	t.Healthy.Remove(index)
	t.InfectedDotCount++
	if s.Earth.InfectedPopulation == 0 {
		s.Earth.InfectedPopulation = 1
	}
	return g.applied()
}

func (g *Game) Awaken() Outcome {
	if !g.awaken() {
		return g.reject("Not enough infected pods to awaken.")
	}
	return g.applied()
}

func (g *Game) awaken() bool {
	s := g.state
	if s.Resources.InfectedPods.Count < 1 {
		return false
	}
	s.Resources.InfectedPods.Count--
	s.Resources.AwakenedInfected.Count++
	if pod := s.firstPodWith(PodInfected); pod != nil {
		pod.Status = PodEmpty
	}
	g.addLog(LogEvent, fmt.Sprintf("An infected has been awakened. Total: %d", int(s.Resources.AwakenedInfected.Count)), "")
	return true
}

// Assign moves up to amount idle workers onto a task; the grant is clamped to
// what is idle.
func (g *Game) Assign(pool WorkerPool, task Task, amount int) Outcome {
	if _, ok := ParseTask(string(task)); !ok {
		return g.invalid("assign", "unknown task "+string(task))
	}
	if pool != PoolHuman && pool != PoolDrone {
		return g.invalid("assign", "unknown worker pool "+string(pool))
	}
	if amount <= 0 {
		return g.invalid("assign", "non-positive amount "+strconv.Itoa(amount))
	}
	grant := min(amount, g.idle(pool))
	if grant <= 0 {
		return g.reject(fmt.Sprintf("No idle %s available.", poolNoun(pool)))
	}
	g.state.assignments(pool).add(task, grant)
	return g.applied()
}

func (g *Game) Unassign(pool WorkerPool, task Task, amount int) Outcome {
	if _, ok := ParseTask(string(task)); !ok {
		return g.invalid("unassign", "unknown task "+string(task))
	}
	if pool != PoolHuman && pool != PoolDrone {
		return g.invalid("unassign", "unknown worker pool "+string(pool))
	}
	if amount <= 0 {
		return g.invalid("unassign", "non-positive amount "+strconv.Itoa(amount))
	}
	a := g.state.assignments(pool)
	if a.Get(task) < amount {
		return g.reject(fmt.Sprintf("Only %d %s assigned to %s.", a.Get(task), poolNoun(pool), task))
	}
	a.add(task, -amount)
	return g.applied()
}

func poolNoun(p WorkerPool) string {
	if p == PoolDrone {
		return "drones"
	}
	return "awakened"
}
