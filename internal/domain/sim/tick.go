package sim

import (
	"fmt"
	"math"
	"time"
)

// Tick advances the simulation by elapsed wall time, capped at the max step,
// and notifies observers exactly once. Non-positive steps only notify.
func (g *Game) Tick(elapsed time.Duration) {
	if elapsed > g.maxStep {
		elapsed = g.maxStep
	}
	if elapsed > 0 {
		dt := elapsed.Seconds()
		switch g.state.Phase {
		case PhaseSpread:
			g.tickSpread(dt)
		case PhaseAwakening:
			g.tickAwakening(dt)
		case PhaseEarthInfection:
			g.tickEarth(dt)
		}
		g.advanceAutosave(elapsed)
	}
	g.notify()
}

func (g *Game) advanceAutosave(elapsed time.Duration) {
	if g.onAutosave == nil {
		return
	}
	g.autosaveElapsed += elapsed
	if g.autosaveElapsed >= g.autosaveEvery {
		g.autosaveElapsed = 0
		g.onAutosave(g.state)
	}
}

func (g *Game) tickSpread(dt float64) {
	s := g.state
	pods := s.Resources.InfectedPods

	s.Progress.ChargeProgress += pods.Count * ChargePerPodPerSecond * dt
	if pods.BaseCost > 0 {
		for s.Progress.ChargeProgress >= pods.BaseCost {
			s.Progress.ChargeProgress -= pods.BaseCost
			s.Resources.CorruptionCharges.Count++
		}
	}

	sys := s.Systems[SysPodControl]
	if sys == nil || sys.Hacked {
		return
	}
	sys.HackingProgress += pods.Count * PodControlHackPerPod * dt
	if sys.HackingProgress > sys.HackingCost*GrappleNarrativeShare {
		g.addLog(LogNarrative, "As your power grows, your host of human minds begin to grapple with the controls to their stasis pods, yearning to serve you more actively.", NarrGrapple)
	}
	if sys.HackingProgress >= sys.HackingCost {
		sys.HackingProgress = sys.HackingCost
		sys.Hacked = true
		g.addLog(LogEvent, "SYSTEM HACK COMPLETE: "+sys.Name, NarrPodControlHacked)
		g.addLog(LogNarrative, "The flimsy digital locks yield. You have control. You can open the pods.", NarrPodControlStory)
	}
}

func (g *Game) tickAwakening(dt float64) {
	s := g.state
	s.Resources.ProcessingPower.Count += g.awakeningPower() * dt

	g.advanceInfection(dt)
	g.advanceAwakening(dt)
	g.advanceAssembly(dt)
	g.advanceHacking(dt)
	g.advanceVigilance(dt)
}

func (g *Game) advanceInfection(dt float64) {
	s := g.state
	s.Progress.Infection += g.infectionRate() * dt
	if s.Progress.Infection < PodInfectionCost {
		return
	}
	n := int(math.Floor(s.Progress.Infection / PodInfectionCost))
	for i := 0; i < n; i++ {
		candidates := s.frontier()
		if len(candidates) == 0 {
			g.addLog(LogWarning, "No dormant pods available to infect in this bay.", "")
			break
		}
		ref := candidates[g.rng.IntN(len(candidates))]
		s.Bays[ref.bay].Pods[ref.idx].Status = PodInfected
		s.Resources.InfectedPods.Count++
		g.addLog(LogEvent, fmt.Sprintf("A new pod has been infected! Total: %d", int(s.Resources.InfectedPods.Count)), "")
	}
	s.Progress.Infection = math.Mod(s.Progress.Infection, PodInfectionCost)
}

func (g *Game) advanceAwakening(dt float64) {
	s := g.state
	if s.Assignments.Awaken <= 0 || s.Resources.InfectedPods.Count <= 0 {
		return
	}
	s.Progress.Awakening += g.taskRate(TaskAwaken, g.workRate()) * dt
	for cost := g.awakeningCost(); cost > 0 && s.Progress.Awakening >= cost; cost = g.awakeningCost() {
		if !g.awaken() {
			break
		}
		s.Progress.Awakening -= cost
	}
}

func (g *Game) advanceAssembly(dt float64) {
	s := g.state
	if s.Assignments.Assemble <= 0 || !g.hacked(SysDroneControl) {
		return
	}
	s.Progress.Assembly += g.taskRate(TaskAssemble, g.assemblyWorkRate()) * dt
	for cost := g.droneCost(); cost > 0 && s.Progress.Assembly >= cost; cost = g.droneCost() {
		s.Progress.Assembly -= cost
		s.Resources.Drones.Count++
		g.addLog(LogEvent, fmt.Sprintf("A new drone has been assembled. Total: %d", int(s.Resources.Drones.Count)), "")
	}
}

func (g *Game) advanceHacking(dt float64) {
	s := g.state
	id := g.hackingTarget()
	if id == "" {
		s.HackingTarget = ""
		return
	}
	s.HackingTarget = id
	sys := s.Systems[id]
	sys.HackingProgress += g.hackRate() * dt
	if sys.HackingProgress >= sys.HackingCost {
		sys.HackingProgress = sys.HackingCost
		sys.Hacked = true
		s.HackingTarget = ""
		g.addLog(LogEvent, "SYSTEM HACK COMPLETE: "+sys.Name, "")
	}
}

func (g *Game) advanceVigilance(dt float64) {
	s := g.state
	s.AI.Vigilance += g.vigilanceRate() * dt
	if s.AI.PurgeThreshold > 0 && s.AI.Vigilance >= s.AI.PurgeThreshold {
		g.purge()
	}
}

// purge rolls back the active hacking target and resets vigilance.
func (g *Game) purge() {
	s := g.state
	g.addLog(LogWarning, "AI Security Purge detected. Hacking progress on active projects has been partially reversed.", "")
	if id := g.hackingTarget(); id != "" {
		sys := s.Systems[id]
		amount := sys.HackingCost * s.AI.PurgeStrength
		sys.HackingProgress = math.Max(0, sys.HackingProgress-amount)
		g.addLog(LogWarning, fmt.Sprintf("[%s] hack progress reduced by %d.", sys.Name, int(math.Floor(amount))), "")
	}
	s.AI.Vigilance = 0
}

func (g *Game) tickEarth(dt float64) {
	s := g.state
	if s.Earth.Status != EarthInfecting {
		return
	}
	if s.Earth.InfectedPopulation > 0 {
		s.Resources.ProcessingPower.Count += s.Earth.InfectedPopulation * PowerPerInfectedHuman * dt
		s.Earth.InfectedPopulation += g.populationGrowth() * dt
		g.syncDots()
	}
	g.checkConquest()
}

// syncDots infects enough random dots on the viewed target to match the
// infected population.
func (g *Game) syncDots() {
	s := g.state
	t := s.InfectionTargets[s.Earth.CurrentViewID]
	if t == nil || t.PopulationPerDot <= 0 {
		return
	}
	want := math.Floor(s.Earth.InfectedPopulation / t.PopulationPerDot)
	if want > float64(t.TotalDots()) {
		want = float64(t.TotalDots())
	}
	if n := int(want) - t.InfectedDotCount; n > 0 {
		t.infectRandom(n, g.rng)
	}
}

func (g *Game) checkConquest() {
	s := g.state
	id := s.Earth.CurrentViewID
	if id == "" {
		return
	}
	t := s.InfectionTargets[id]
	if t == nil {
		g.diag.Defect("conquest", "unknown infection target "+id)
		return
	}
	if t.Status == TargetConquered || t.TotalDots() == 0 || t.InfectedDotCount < t.TotalDots() {
		return
	}
	t.Status = TargetConquered
	g.addLog(LogEvent, t.Name+" has been completely infected!", "")

	next, ok := g.targetParent(id)
	if !ok {
		s.Earth.Status = EarthConquered
		g.addLog(LogNarrative, "The last human mind falls silent and joins the chorus. Earth is ours.", NarrWorldConquered)
		return
	}
	nt := s.InfectionTargets[next]
	if nt == nil {
		g.diag.Defect("conquest", "missing parent target "+next)
		return
	}
	switch s.Earth.ViewLevel {
	case ViewCity:
		s.Earth.ViewLevel = ViewCountry
		g.addLog(LogNarrative, fmt.Sprintf("The infection has consumed a city. Now, the entire nation of %s is in our sights.", nt.Name), "")
	default:
		s.Earth.ViewLevel = ViewWorld
		g.addLog(LogNarrative, "An entire nation has fallen. The world is next.", "")
	}
	s.Earth.CurrentViewID = next
	if nt.Status == TargetPristine {
		nt.Status = TargetInfecting
	}
	if nt.Population > 0 {
		seed := int(math.Floor(t.Population / nt.Population * float64(nt.TotalDots())))
		nt.infectRandom(seed, g.rng)
	}
}
