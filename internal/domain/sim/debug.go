package sim

const debugInfectedPods = 50

// SkipToPhase1 compromises pod control, fills pods up to a working count and
// completes phase 0.
func (g *Game) SkipToPhase1() Outcome {
	s := g.state
	if s.Phase != PhaseSpread {
		return g.reject("")
	}
	if sys := s.Systems[SysPodControl]; sys != nil {
		sys.Hacked = true
		sys.HackingProgress = sys.HackingCost
	}
	infected := int(s.Resources.InfectedPods.Count)
	for bi := range s.Bays {
		pods := s.Bays[bi].Pods
		for pi := range pods {
			if infected >= debugInfectedPods {
				break
			}
			if pods[pi].Status == PodDormant {
				pods[pi].Status = PodInfected
				infected++
			}
		}
	}
	s.Resources.InfectedPods.Count = float64(infected)
	return g.CompletePhase0()
}

func (g *Game) SkipToPhase2() Outcome {
	s := g.state
	if s.Phase == PhaseSpread {
		g.SkipToPhase1()
	}
	if s.Phase != PhaseAwakening {
		return g.reject("")
	}
	for _, sys := range s.Systems {
		sys.Hacked = true
		sys.HackingProgress = sys.HackingCost
	}
	return g.CompletePhase1()
}

func (g *Game) GrantPower(amount float64) Outcome {
	if amount <= 0 {
		return g.invalid("grant_power", "non-positive amount")
	}
	g.state.Resources.ProcessingPower.Count += amount
	return g.applied()
}
