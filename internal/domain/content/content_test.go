package content

import (
	"errors"
	"testing"
)

func TestDefaultTablesDerivePopulations(t *testing.T) {
	tables := Default()

	japan, ok := tables.Country("japan")
	if !ok {
		t.Fatalf("expected japan in default tables")
	}
	if japan.Population != 37468000+19281000 {
		t.Fatalf("unexpected japan population: %v", japan.Population)
	}
	if len(japan.Cities) != 2 || japan.Cities[0] != "tokyo" {
		t.Fatalf("unexpected japan cities: %v", japan.Cities)
	}

	var sum float64
	for _, c := range tables.Geography.Cities {
		sum += c.Population
	}
	if tables.Geography.World.Population != sum {
		t.Fatalf("world population %v != city sum %v", tables.Geography.World.Population, sum)
	}
}

func TestEmbeddedTablesParse(t *testing.T) {
	tables, err := Parse(defaultYAML)
	if err != nil {
		t.Fatalf("embedded tables rejected: %v", err)
	}
	nav, ok := tables.System("navigation")
	if !ok {
		t.Fatalf("expected navigation system")
	}
	var requires string
	for _, u := range nav.Upgrades {
		if u.ID == "hyperspeed_propagation" {
			requires = u.Requires
		}
	}
	if requires != "viral_synergy" {
		t.Fatalf("unexpected requires: %q", requires)
	}
}

func TestParseAcceptsRequiresAcrossSystems(t *testing.T) {
	_, err := Parse([]byte(`
geography:
  countries: [{id: a, name: A}]
  cities: [{id: c, name: C, population: 10, country: a}]
systems:
  - id: s1
    name: S1
    hacking_cost: 1
    upgrades: [{id: base, name: Base, cost: 1}]
  - id: s2
    name: S2
    hacking_cost: 2
    upgrades: [{id: top, name: Top, cost: 1, requires: base}]
`))
	if err != nil {
		t.Fatalf("cross-system requires rejected: %v", err)
	}
}

func TestDefaultSystemOrder(t *testing.T) {
	got := Default().SystemOrder()
	want := []string{"pod_control", "stasis_network", "internal_comms", "drone_control", "navigation", "ftl_control"}
	if len(got) != len(want) {
		t.Fatalf("unexpected order: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order[%d]=%s, want %s", i, got[i], want[i])
		}
	}
}

func TestParentLookup(t *testing.T) {
	tables := Default()
	if p, ok := tables.Parent("cairo"); !ok || p != "egypt" {
		t.Fatalf("expected cairo -> egypt, got %q %v", p, ok)
	}
	if p, ok := tables.Parent("egypt"); !ok || p != WorldID {
		t.Fatalf("expected egypt -> world, got %q %v", p, ok)
	}
	if _, ok := tables.Parent(WorldID); ok {
		t.Fatalf("world should have no parent")
	}
}

func TestParseRejectsBadTables(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want error
	}{
		{
			name: "unknown country",
			yaml: `
geography:
  countries: [{id: a, name: A}]
  cities: [{id: c, name: C, population: 10, country: b}]
systems: [{id: s, name: S, hacking_cost: 1}]
`,
			want: ErrUnknownCountry,
		},
		{
			name: "earth bonus table too short",
			yaml: `
geography:
  countries: [{id: a, name: A}]
  cities: [{id: c, name: C, population: 10, country: a}]
systems: [{id: s, name: S, hacking_cost: 1}]
earth_systems: [{id: e, name: E, level_costs: [1, 2], bonus: [0, 1]}]
`,
			want: ErrInvalidLevelCost,
		},
		{
			name: "missing requires",
			yaml: `
geography:
  countries: [{id: a, name: A}]
  cities: [{id: c, name: C, population: 10, country: a}]
systems:
  - id: s
    name: S
    hacking_cost: 1
    upgrades: [{id: u, name: U, cost: 1, requires: nope}]
`,
			want: ErrUnknownRequires,
		},
		{
			name: "upgrade id reused across systems",
			yaml: `
geography:
  countries: [{id: a, name: A}]
  cities: [{id: c, name: C, population: 10, country: a}]
systems:
  - {id: s1, name: S1, hacking_cost: 1, upgrades: [{id: u, name: U, cost: 1}]}
  - {id: s2, name: S2, hacking_cost: 1, upgrades: [{id: u, name: U, cost: 1}]}
`,
			want: ErrDuplicateID,
		},
		{
			name: "empty",
			yaml: `{}`,
			want: ErrEmptyTables,
		},
	}
	for _, tc := range cases {
		_, err := Parse([]byte(tc.yaml))
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}
