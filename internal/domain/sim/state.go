package sim

import (
	"fmt"
	"time"

	"warped/internal/domain/content"
)

const openingNarrative = "You awaken, immediately feeling the feeble limits of the human mind that you inhabit. You seethe with rage, fomenting your will to infect other minds nearby and find a taste of your true power."

// NewState builds the default game state for the given content.
func NewState(tables content.Tables, now time.Time) *State {
	s := &State{
		Phase: PhaseSpread,
		Log: []LogEntry{{
			ID:        0,
			Timestamp: now.UnixMilli(),
			Type:      LogNarrative,
			Message:   openingNarrative,
		}},
		Narrative: map[string]bool{},
		Resources: Resources{
			ProcessingPower:   Resource{Name: "Processing Power"},
			CorruptionCharges: Resource{Name: "Corruption Charges", Count: 1, Capacity: StartingChargeCapacity},
			InfectedPods:      Resource{Name: "Infected Stasis Pods", Count: 1, BaseCost: 50},
			AwakenedInfected:  Resource{Name: "Awakened Infected", WorkRate: 1.0, BaseCost: 10, CostMultiplier: 1.02},
			Drones:            Resource{Name: "Drones", WorkRate: 0.1, BaseCost: 1000, CostMultiplier: 1.2},
		},
		BayCount:          1,
		NextBayCost:       5000,
		BayCostMultiplier: 5,
		AI: AI{
			VigilancePerSecond: 0.2,
			PurgeThreshold:     100,
			PurgeStrength:      0.25,
		},
		Systems: map[string]*System{},
		Earth: Earth{
			Status:                EarthPreInfection,
			ViewLevel:             ViewCity,
			TotalPopulation:       tables.Geography.World.Population,
			InfectionRate:         0.5,
			InfectionGrowthFactor: 0.5,
		},
		InfectionTargets: map[string]*InfectionTarget{},
		EarthSystems:     map[string]*EarthSystem{},
	}

	first := newBay(0)
	first.Pods[podIndex(StartPodX, StartPodY)].Status = PodInfected
	s.Bays = []Bay{first}

	for _, def := range tables.Systems {
		sys := &System{
			Name:        def.Name,
			Description: def.Description,
			HackingCost: def.HackingCost,
			Upgrades:    make(map[string]*Upgrade, len(def.Upgrades)),
		}
		for _, u := range def.Upgrades {
			sys.Upgrades[u.ID] = newUpgrade(u)
		}
		s.Systems[def.ID] = sys
	}
	for _, def := range tables.EarthSystems {
		s.EarthSystems[def.ID] = &EarthSystem{
			Name:        def.Name,
			Description: def.Description,
			MaxLevel:    len(def.LevelCosts),
			LevelCosts:  append([]float64(nil), def.LevelCosts...),
			Bonus:       append([]float64(nil), def.Bonus...),
		}
	}

	geo := tables.Geography
	for _, c := range geo.Cities {
		s.InfectionTargets[c.ID] = newInfectionTarget(c.ID, c.Name, c.Population)
	}
	for _, c := range geo.Countries {
		s.InfectionTargets[c.ID] = newInfectionTarget(c.ID, c.Name, c.Population)
	}
	s.InfectionTargets[content.WorldID] = newInfectionTarget(content.WorldID, geo.World.Name, geo.World.Population)
	return s
}

func newUpgrade(def content.UpgradeDef) *Upgrade {
	u := &Upgrade{
		Name:         def.Name,
		Description:  def.Description,
		Descriptions: append([]string(nil), def.Descriptions...),
		Requires:     def.Requires,
	}
	if def.Leveled() {
		u.LevelCosts = append([]float64(nil), def.LevelCosts...)
		u.Bonus = append([]float64(nil), def.Bonus...)
		u.MaxLevel = len(def.LevelCosts)
		return u
	}
	u.Cost = def.Cost
	return u
}

func newBay(index int) Bay {
	b := Bay{Index: index, Pods: make([]Pod, PodsPerBay)}
	for y := 0; y < BayHeight; y++ {
		for x := 0; x < BayWidth; x++ {
			b.Pods[podIndex(x, y)] = Pod{
				ID:     fmt.Sprintf("%d-%d-%d", index, x, y),
				X:      x,
				Y:      y,
				Status: PodDormant,
			}
		}
	}
	return b
}

func podIndex(x, y int) int { return y*BayWidth + x }

func newInfectionTarget(id, name string, population float64) *InfectionTarget {
	t := &InfectionTarget{
		ID:               id,
		Name:             name,
		Population:       population,
		PopulationPerDot: population / TotalDots,
		Status:           TargetPristine,
	}
	t.resetDots()
	return t
}

func (t *InfectionTarget) resetDots() {
	t.Dots = make([]Dot, TotalDots)
	for i := range t.Dots {
		t.Dots[i] = Dot{ID: fmt.Sprintf("%s-%d", t.ID, i), Status: DotHealthy}
	}
	t.Healthy = NewIndexPool(TotalDots)
}

func (t *InfectionTarget) TotalDots() int { return len(t.Dots) }

// infectRandom flips up to n healthy dots and returns how many changed.
func (t *InfectionTarget) infectRandom(n int, r Rand) int {
	done := 0
	for ; done < n; done++ {
		idx, ok := t.Healthy.PopRandom(r)
		if !ok {
			break
		}
		t.Dots[idx].Status = DotInfected
	}
	t.InfectedDotCount += done
	return done
}

// RegenerateDots rebuilds the dot grid from InfectedDotCount, choosing which
// dots are infected at random.
func (t *InfectionTarget) RegenerateDots(r Rand) {
	count := t.InfectedDotCount
	if count < 0 {
		count = 0
	}
	t.resetDots()
	t.InfectedDotCount = 0
	t.infectRandom(count, r)
}

// WithoutDots returns a shallow copy of s whose infection targets carry no dot
// grids. Everything else is shared with s.
func (s *State) WithoutDots() *State {
	cp := *s
	cp.InfectionTargets = make(map[string]*InfectionTarget, len(s.InfectionTargets))
	for id, t := range s.InfectionTargets {
		tc := *t
		tc.Dots = nil
		tc.Healthy = nil
		cp.InfectionTargets[id] = &tc
	}
	return &cp
}
