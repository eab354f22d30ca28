package sim

import (
	"math"
	"testing"
	"time"
)

func enterEarth(t *testing.T, g *Game) {
	t.Helper()
	if got := g.SkipToPhase2(); got != OutcomeApplied {
		t.Fatalf("skip to phase 2: %s", got)
	}
}

func TestSelectCityStartsInfection(t *testing.T) {
	g, _ := newTestGame(t)
	if got := g.SelectCity("tokyo"); got != OutcomeRejected {
		t.Fatalf("select city needs phase 2, got %s", got)
	}
	enterEarth(t, g)
	if got := g.SelectCity("tokyo"); got != OutcomeApplied {
		t.Fatalf("expected applied, got %s", got)
	}
	s := g.State()
	if s.Earth.Status != EarthInfecting || s.Earth.CurrentViewID != "tokyo" || s.Earth.ViewLevel != ViewCity {
		t.Fatalf("unexpected earth state: %+v", s.Earth)
	}
	if s.InfectionTargets["tokyo"].Status != TargetInfecting {
		t.Fatalf("expected tokyo infecting")
	}
	if got := g.SelectCity("osaka"); got != OutcomeRejected {
		t.Fatalf("second selection must be rejected, got %s", got)
	}
}

func TestInfectDotSeedsPopulation(t *testing.T) {
	g, _ := newTestGame(t)
	enterEarth(t, g)
	g.SelectCity("cairo")
	s := g.State()
	target := s.InfectionTargets["cairo"]

	if got := g.InfectDot(42); got != OutcomeApplied {
		t.Fatalf("expected applied, got %s", got)
	}
	if target.InfectedDotCount != 1 || target.Dots[42].Status != DotInfected || target.Healthy.Contains(42) {
		t.Fatalf("dot 42 not infected consistently")
	}
	if s.Earth.InfectedPopulation != 1 {
		t.Fatalf("expected infected population 1, got %v", s.Earth.InfectedPopulation)
	}
	if got := g.InfectDot(42); got != OutcomeRejected {
		t.Fatalf("re-infecting a dot is a no-op, got %s", got)
	}
	if got := g.InfectDot(TotalDots); got != OutcomeInvalid {
		t.Fatalf("out of range dot is invalid, got %s", got)
	}
}

func TestEarthGrowthAddsPowerAndDots(t *testing.T) {
	g, _ := newTestGame(t)
	enterEarth(t, g)
	g.SelectCity("tokyo")
	s := g.State()
	target := s.InfectionTargets["tokyo"]
	s.Earth.InfectedPopulation = target.PopulationPerDot * 10
	power := s.Resources.ProcessingPower.Count

	g.Tick(time.Second)

	if s.Resources.ProcessingPower.Count <= power {
		t.Fatalf("expected power from infected population")
	}
	want := int(math.Floor(s.Earth.InfectedPopulation / target.PopulationPerDot))
	if target.InfectedDotCount != want {
		t.Fatalf("expected %d infected dots, got %d", want, target.InfectedDotCount)
	}
	if target.InfectedDotCount+target.Healthy.Len() != TotalDots {
		t.Fatalf("healthy pool out of sync with infected count")
	}
}

func TestEarthGrowthStallsWithoutInfected(t *testing.T) {
	g, _ := newTestGame(t)
	enterEarth(t, g)
	g.SelectCity("tokyo")
	s := g.State()
	g.Tick(time.Second)
	if s.Earth.InfectedPopulation != 0 {
		t.Fatalf("growth requires a seed infection, got %v", s.Earth.InfectedPopulation)
	}
}

func TestCityConquestSeedsCountry(t *testing.T) {
	g, _ := newTestGame(t)
	enterEarth(t, g)
	g.SelectCity("tokyo")
	s := g.State()
	city := s.InfectionTargets["tokyo"]
	country := s.InfectionTargets["japan"]
	city.infectRandom(TotalDots, g.rng)

	g.Tick(time.Millisecond)

	if city.Status != TargetConquered {
		t.Fatalf("expected tokyo conquered, got %s", city.Status)
	}
	if s.Earth.ViewLevel != ViewCountry || s.Earth.CurrentViewID != "japan" {
		t.Fatalf("expected zoom to japan, got %s %s", s.Earth.ViewLevel, s.Earth.CurrentViewID)
	}
	want := int(math.Floor(city.Population / country.Population * TotalDots))
	if country.InfectedDotCount != want {
		t.Fatalf("expected %d seeded dots, got %d", want, country.InfectedDotCount)
	}
	if country.Status != TargetInfecting {
		t.Fatalf("expected japan infecting, got %s", country.Status)
	}
}

func TestConquestZoomsToWorldAndFinishes(t *testing.T) {
	g, _ := newTestGame(t)
	enterEarth(t, g)
	g.SelectCity("sao_paulo")
	s := g.State()
	s.InfectionTargets["sao_paulo"].infectRandom(TotalDots, g.rng)

	g.Tick(time.Millisecond)
	if s.Earth.CurrentViewID != "brazil" {
		t.Fatalf("expected brazil, got %s", s.Earth.CurrentViewID)
	}
	// brazil has one city, so the carry-over fills it completely
	g.Tick(time.Millisecond)
	if s.Earth.ViewLevel != ViewWorld || s.Earth.CurrentViewID != "world" {
		t.Fatalf("expected zoom to world, got %s %s", s.Earth.ViewLevel, s.Earth.CurrentViewID)
	}

	s.InfectionTargets["world"].infectRandom(TotalDots, g.rng)
	g.Tick(time.Millisecond)
	if s.Earth.Status != EarthConquered || !s.Narrative[NarrWorldConquered] {
		t.Fatalf("expected earth conquered, got %s", s.Earth.Status)
	}
	n := len(s.Log)
	g.Tick(time.Second)
	if len(s.Log) != n {
		t.Fatalf("conquered earth must be quiet")
	}
}
