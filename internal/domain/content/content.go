package content

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

const WorldID = "world"

var (
	ErrEmptyTables      = errors.New("content tables are empty")
	ErrDuplicateID      = errors.New("duplicate content id")
	ErrUnknownCountry   = errors.New("city references unknown country")
	ErrInvalidPopulace  = errors.New("population must be positive")
	ErrInvalidLevelCost = errors.New("leveled upgrade has mismatched cost and bonus tables")
	ErrUnknownRequires  = errors.New("upgrade requires unknown upgrade")
)

//go:embed default.yaml
var defaultYAML []byte

type City struct {
	ID         string  `yaml:"id" json:"id"`
	Name       string  `yaml:"name" json:"name"`
	Population float64 `yaml:"population" json:"population"`
	Country    string  `yaml:"country" json:"country"`
}

type Country struct {
	ID         string   `yaml:"id" json:"id"`
	Name       string   `yaml:"name" json:"name"`
	Cities     []string `yaml:"-" json:"cities"`
	Population float64  `yaml:"-" json:"population"`
}

type World struct {
	Name       string  `yaml:"name" json:"name"`
	Population float64 `yaml:"-" json:"population"`
}

type Geography struct {
	World     World     `yaml:"world"`
	Countries []Country `yaml:"countries"`
	Cities    []City    `yaml:"cities"`
}

type UpgradeDef struct {
	ID           string    `yaml:"id"`
	Name         string    `yaml:"name"`
	Description  string    `yaml:"description"`
	Descriptions []string  `yaml:"descriptions"`
	Cost         float64   `yaml:"cost"`
	LevelCosts   []float64 `yaml:"level_costs"`
	Bonus        []float64 `yaml:"bonus"`
	Requires     string    `yaml:"requires"`
}

func (u UpgradeDef) Leveled() bool { return len(u.LevelCosts) > 0 }

type SystemDef struct {
	ID          string       `yaml:"id"`
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	HackingCost float64      `yaml:"hacking_cost"`
	Upgrades    []UpgradeDef `yaml:"upgrades"`
}

type EarthSystemDef struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	LevelCosts  []float64 `yaml:"level_costs"`
	Bonus       []float64 `yaml:"bonus"`
}

// Tables is the read-only content consumed by the simulation. Slices keep
// declaration order; systems are hacked in that order when no target is set.
type Tables struct {
	Geography    Geography        `yaml:"geography"`
	Systems      []SystemDef      `yaml:"systems"`
	EarthSystems []EarthSystemDef `yaml:"earth_systems"`

	cities    map[string]int
	countries map[string]int
}

func Parse(data []byte) (Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tables{}, fmt.Errorf("decode content: %w", err)
	}
	if err := t.index(); err != nil {
		return Tables{}, err
	}
	return t, nil
}

func Default() Tables {
	t, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded content: %v", err))
	}
	return t
}

func (t *Tables) index() error {
	if len(t.Geography.Cities) == 0 || len(t.Systems) == 0 {
		return ErrEmptyTables
	}
	t.countries = make(map[string]int, len(t.Geography.Countries))
	for i, c := range t.Geography.Countries {
		if _, dup := t.countries[c.ID]; dup || c.ID == WorldID {
			return fmt.Errorf("%w: %s", ErrDuplicateID, c.ID)
		}
		t.countries[c.ID] = i
		t.Geography.Countries[i].Cities = nil
		t.Geography.Countries[i].Population = 0
	}
	t.cities = make(map[string]int, len(t.Geography.Cities))
	for i, c := range t.Geography.Cities {
		if _, dup := t.cities[c.ID]; dup || c.ID == WorldID {
			return fmt.Errorf("%w: %s", ErrDuplicateID, c.ID)
		}
		if _, clash := t.countries[c.ID]; clash {
			return fmt.Errorf("%w: %s", ErrDuplicateID, c.ID)
		}
		if c.Population <= 0 {
			return fmt.Errorf("%w: %s", ErrInvalidPopulace, c.ID)
		}
		ci, ok := t.countries[c.Country]
		if !ok {
			return fmt.Errorf("%w: %s -> %s", ErrUnknownCountry, c.ID, c.Country)
		}
		t.cities[c.ID] = i
		country := &t.Geography.Countries[ci]
		country.Cities = append(country.Cities, c.ID)
		country.Population += c.Population
	}
	t.Geography.World.Population = 0
	for _, c := range t.Geography.Countries {
		t.Geography.World.Population += c.Population
	}
	if t.Geography.World.Name == "" {
		t.Geography.World.Name = "World"
	}

	seen := map[string]bool{}
	// requires may name an upgrade of any system, so ids are unique across systems
	ups := map[string]bool{}
	for _, s := range t.Systems {
		if seen[s.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, s.ID)
		}
		seen[s.ID] = true
		for _, u := range s.Upgrades {
			if ups[u.ID] {
				return fmt.Errorf("%w: %s.%s", ErrDuplicateID, s.ID, u.ID)
			}
			ups[u.ID] = true
			if len(u.Bonus) > 0 && len(u.Bonus) != len(u.LevelCosts) {
				return fmt.Errorf("%w: %s.%s", ErrInvalidLevelCost, s.ID, u.ID)
			}
		}
	}
	for _, s := range t.Systems {
		for _, u := range s.Upgrades {
			if u.Requires != "" && !ups[u.Requires] {
				return fmt.Errorf("%w: %s.%s requires %s", ErrUnknownRequires, s.ID, u.ID, u.Requires)
			}
		}
	}
	for _, e := range t.EarthSystems {
		if seen[e.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, e.ID)
		}
		seen[e.ID] = true
		// bonus is indexed by level, so it carries one more entry than the cost table
		if len(e.Bonus) != len(e.LevelCosts)+1 {
			return fmt.Errorf("%w: %s", ErrInvalidLevelCost, e.ID)
		}
	}
	return nil
}

func (t Tables) City(id string) (City, bool) {
	i, ok := t.cities[id]
	if !ok {
		return City{}, false
	}
	return t.Geography.Cities[i], true
}

func (t Tables) Country(id string) (Country, bool) {
	i, ok := t.countries[id]
	if !ok {
		return Country{}, false
	}
	return t.Geography.Countries[i], true
}

// Parent returns the owning region of a city or country. The world has none.
func (t Tables) Parent(id string) (string, bool) {
	if c, ok := t.City(id); ok {
		return c.Country, true
	}
	if _, ok := t.Country(id); ok {
		return WorldID, true
	}
	return "", false
}

func (t Tables) System(id string) (SystemDef, bool) {
	for _, s := range t.Systems {
		if s.ID == id {
			return s, true
		}
	}
	return SystemDef{}, false
}

func (t Tables) SystemOrder() []string {
	out := make([]string, 0, len(t.Systems))
	for _, s := range t.Systems {
		out = append(out, s.ID)
	}
	return out
}
