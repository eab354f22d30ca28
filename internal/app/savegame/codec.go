package savegame

import (
	"encoding/json"
	"fmt"

	"warped/internal/app/ports"
	"warped/internal/domain/sim"
)

// Encode serializes s without per-target dot grids.
func Encode(s *sim.State) ([]byte, error) {
	return json.Marshal(s.WithoutDots())
}

// Decode merges a saved snapshot onto defaults and regenerates dot grids from
// the saved infected counts. Saved leaves win; keys only present in defaults
// are kept so newer content survives old saves.
func Decode(data []byte, defaults *sim.State, r sim.Rand) (*sim.State, error) {
	var saved map[string]any
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrCorruptSnapshot, err)
	}
	if saved == nil {
		return nil, fmt.Errorf("%w: empty document", ports.ErrCorruptSnapshot)
	}
	base, err := toMap(defaults.WithoutDots())
	if err != nil {
		return nil, err
	}
	merged, err := json.Marshal(merge(base, saved))
	if err != nil {
		return nil, err
	}
	var out sim.State
	if err := json.Unmarshal(merged, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrCorruptSnapshot, err)
	}
	if err := normalize(&out, r); err != nil {
		return nil, err
	}
	return &out, nil
}

func toMap(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func merge(dst, src map[string]any) map[string]any {
	for k, sv := range src {
		if dm, ok := dst[k].(map[string]any); ok {
			if sm, ok := sv.(map[string]any); ok {
				dst[k] = merge(dm, sm)
				continue
			}
		}
		dst[k] = sv
	}
	return dst
}

func normalize(s *sim.State, r sim.Rand) error {
	if len(s.Systems) == 0 || len(s.InfectionTargets) == 0 || len(s.Bays) == 0 {
		return fmt.Errorf("%w: missing required sections", ports.ErrCorruptSnapshot)
	}
	if s.Phase < sim.PhaseSpread || s.Phase > sim.PhaseEarthInfection {
		return fmt.Errorf("%w: unknown phase %d", ports.ErrCorruptSnapshot, s.Phase)
	}
	if s.Narrative == nil {
		s.Narrative = map[string]bool{}
	}
	if s.EarthSystems == nil {
		s.EarthSystems = map[string]*sim.EarthSystem{}
	}
	for id, sys := range s.Systems {
		if sys == nil {
			return fmt.Errorf("%w: null system %s", ports.ErrCorruptSnapshot, id)
		}
		if sys.Upgrades == nil {
			sys.Upgrades = map[string]*sim.Upgrade{}
		}
		sys.HackingProgress = min(max(sys.HackingProgress, 0), sys.HackingCost)
	}
	for id, t := range s.InfectionTargets {
		if t == nil {
			return fmt.Errorf("%w: null infection target %s", ports.ErrCorruptSnapshot, id)
		}
		t.InfectedDotCount = min(max(t.InfectedDotCount, 0), sim.TotalDots)
		t.RegenerateDots(r)
	}
	for bi := range s.Bays {
		if err := normalizeBay(&s.Bays[bi], bi); err != nil {
			return err
		}
	}
	s.BayCount = len(s.Bays)
	return nil
}

// normalizeBay requires the row-major pod layout of a fresh bay.
func normalizeBay(b *sim.Bay, index int) error {
	if len(b.Pods) != sim.PodsPerBay {
		return fmt.Errorf("%w: bay %d holds %d pods", ports.ErrCorruptSnapshot, index, len(b.Pods))
	}
	b.Index = index
	for i := range b.Pods {
		p := &b.Pods[i]
		if p.X != i%sim.BayWidth || p.Y != i/sim.BayWidth {
			return fmt.Errorf("%w: bay %d pod %d at (%d,%d)", ports.ErrCorruptSnapshot, index, i, p.X, p.Y)
		}
		if !p.Status.Known() {
			return fmt.Errorf("%w: bay %d pod %d status %q", ports.ErrCorruptSnapshot, index, i, p.Status)
		}
		p.ID = fmt.Sprintf("%d-%d-%d", index, p.X, p.Y)
	}
	return nil
}
