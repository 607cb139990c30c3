// Package persistence implements the JSON save format from spec.md §6.
// The dense world fields are never serialized — they're regenerated from
// seed and the fixed WorldGen algorithm on load.
package persistence

import (
	"encoding/json"

	"planetsim/internal/entities"
	"planetsim/internal/simerr"
	"planetsim/internal/simulation"
	"planetsim/internal/validation"
)

// PointJSON is a serialized tile coordinate.
type PointJSON struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// TraitsJSON is a serialized Leader.Traits.
type TraitsJSON struct {
	Aggression  float64 `json:"aggression"`
	Caution     float64 `json:"caution"`
	Diplomacy   float64 `json:"diplomacy"`
	Ambition    float64 `json:"ambition"`
	Freedom     float64 `json:"freedom"`
	Rationality float64 `json:"rationality"`
}

// LeaderJSON is a serialized Leader.
type LeaderJSON struct {
	ID           entities.ID `json:"id"`
	Name         string      `json:"name"`
	Age          int         `json:"age"`
	YearsInPower int         `json:"yearsInPower"`
	Traits       TraitsJSON  `json:"traits"`
}

// TribeJSON is spec.md §6's TribeSerialized.
type TribeJSON struct {
	ID          entities.ID `json:"id"`
	Name        string      `json:"name"`
	Color       string      `json:"color"`
	Population  int         `json:"population"`
	Age         int         `json:"age"`
	Territories []PointJSON `json:"territories"`
	X           int         `json:"x"`
	Y           int         `json:"y"`
}

// CityJSON is a serialized City.
type CityJSON struct {
	ID         entities.ID `json:"id"`
	Name       string      `json:"name"`
	X          int         `json:"x"`
	Y          int         `json:"y"`
	Population int         `json:"population"`
	IsCapital  bool        `json:"isCapital"`
}

// CountryJSON is spec.md §6's CountrySerialized: tribe fields plus the
// country-specific ones.
type CountryJSON struct {
	ID          entities.ID   `json:"id"`
	Name        string        `json:"name"`
	Color       string        `json:"color"`
	Population  int           `json:"population"`
	Age         int           `json:"age"`
	Territories []PointJSON   `json:"territories"`
	CapitalX    int           `json:"capitalX"`
	CapitalY    int           `json:"capitalY"`
	Cities      []CityJSON    `json:"cities"`
	Leader      LeaderJSON    `json:"leader"`
	Government  string        `json:"government"`
	TechLevel   int           `json:"techLevel"`
	Unrest      float64       `json:"unrest"`
	AtWar       bool          `json:"atWar"`
	Allies      []entities.ID `json:"allies"`
	Enemies     []entities.ID `json:"enemies"`
}

// StatsJSON mirrors simulation.Stats.
type StatsJSON struct {
	TotalDeaths        int `json:"totalDeaths"`
	TotalWars          int `json:"totalWars"`
	TotalCivilizations int `json:"totalCivilizations"`
}

// Snapshot is the top-level persisted object from spec.md §6.
type Snapshot struct {
	Version   int           `json:"version"`
	Seed      uint32        `json:"seed"`
	Year      int           `json:"year"`
	TechLevel int           `json:"techLevel"`
	Tribes    []TribeJSON   `json:"tribes"`
	Countries []CountryJSON `json:"countries"`
	Stats     StatsJSON     `json:"stats"`
	Timestamp int64         `json:"timestamp"`
}

const currentVersion = 1

func pointsToJSON(ps []entities.Point) []PointJSON {
	out := make([]PointJSON, len(ps))
	for i, p := range ps {
		out[i] = PointJSON{X: p.X, Y: p.Y}
	}
	return out
}

func pointsFromJSON(ps []PointJSON) []entities.Point {
	out := make([]entities.Point, len(ps))
	for i, p := range ps {
		out[i] = entities.Point{X: p.X, Y: p.Y}
	}
	return out
}

func leaderToJSON(l entities.Leader) LeaderJSON {
	return LeaderJSON{
		ID: l.ID, Name: l.Name, Age: l.Age, YearsInPower: l.YearsInPower,
		Traits: TraitsJSON{
			Aggression: l.Traits.Aggression, Caution: l.Traits.Caution,
			Diplomacy: l.Traits.Diplomacy, Ambition: l.Traits.Ambition,
			Freedom: l.Traits.Freedom, Rationality: l.Traits.Rationality,
		},
	}
}

func leaderFromJSON(j LeaderJSON) entities.Leader {
	return entities.Leader{
		ID: j.ID, Name: j.Name, Age: j.Age, YearsInPower: j.YearsInPower,
		Traits: entities.Traits{
			Aggression: j.Traits.Aggression, Caution: j.Traits.Caution,
			Diplomacy: j.Traits.Diplomacy, Ambition: j.Traits.Ambition,
			Freedom: j.Traits.Freedom, Rationality: j.Traits.Rationality,
		},
	}
}

func cityToJSON(c entities.City) CityJSON {
	return CityJSON{ID: c.ID, Name: c.Name, X: c.X, Y: c.Y, Population: c.Population, IsCapital: c.IsCapital}
}

func cityFromJSON(j CityJSON) entities.City {
	return entities.City{ID: j.ID, Name: j.Name, X: j.X, Y: j.Y, Population: j.Population, IsCapital: j.IsCapital}
}

// Build captures sim's current state as a Snapshot. timestampMs is passed
// in by the caller (stamped once, outside this package) since this
// package must stay free of wall-clock reads to keep round-trips
// reproducible in tests.
func Build(sim *simulation.Simulation, timestampMs int64) Snapshot {
	snap := Snapshot{
		Version:   currentVersion,
		Seed:      sim.Seed,
		Year:      sim.Year,
		TechLevel: sim.TechLevel,
		Stats: StatsJSON{
			TotalDeaths:        sim.Stats.TotalDeaths,
			TotalWars:          sim.Stats.TotalWars,
			TotalCivilizations: sim.Stats.TotalCivilizations,
		},
		Timestamp: timestampMs,
	}

	for _, t := range sim.Tribes {
		snap.Tribes = append(snap.Tribes, TribeJSON{
			ID: t.ID, Name: t.Culture, Color: t.Color,
			Population: t.Population, Age: t.Age,
			Territories: pointsToJSON(t.Territories),
			X:           t.X, Y: t.Y,
		})
	}

	for _, c := range sim.Countries {
		cities := make([]CityJSON, len(c.Cities))
		for i, city := range c.Cities {
			cities[i] = cityToJSON(city)
		}
		snap.Countries = append(snap.Countries, CountryJSON{
			ID: c.ID, Name: c.Name, Color: c.Color,
			Population: c.Population, Age: c.Age,
			Territories: pointsToJSON(c.Territories),
			CapitalX:    c.CapitalX, CapitalY: c.CapitalY,
			Cities:     cities,
			Leader:     leaderToJSON(c.Leader),
			Government: c.Government,
			TechLevel:  c.TechLevel,
			Unrest:     c.Unrest,
			AtWar:      c.AtWar,
			Allies:     c.Allies,
			Enemies:    c.Enemies,
		})
	}

	return snap
}

// Marshal serializes snap as indented JSON.
func Marshal(snap Snapshot) ([]byte, error) {
	return json.MarshalIndent(snap, "", "  ")
}

// Unmarshal parses raw into a Snapshot, returning simerr.SaveCorrupt on
// malformed JSON (spec.md §7).
func Unmarshal(raw []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return Snapshot{}, simerr.SaveCorrupt("malformed JSON: " + err.Error())
	}
	if snap.Version != currentVersion {
		return Snapshot{}, simerr.SaveCorrupt("unsupported snapshot version")
	}
	return snap, nil
}

// Load regenerates WorldGen from snap.Seed and restores a full Simulation
// from snap, after running every invariant check spec.md §7 requires. On
// failure the returned error satisfies errors.Is(err, simerr.ErrSaveCorrupt)
// and no Simulation is returned — spec.md §7's "reject the load, leave
// simulation untouched" policy.
func Load(snap Snapshot) (*simulation.Simulation, error) {
	tribes, countries, err := Restore(snap)
	if err != nil {
		return nil, err
	}

	sim := simulation.NewForRestore(snap.Seed)
	sim.ReplaceEntities(tribes, countries, snap.Year, snap.TechLevel, simulation.Stats{
		TotalDeaths:        snap.Stats.TotalDeaths,
		TotalWars:          snap.Stats.TotalWars,
		TotalCivilizations: snap.Stats.TotalCivilizations,
	})
	return sim, nil
}

// Restore rebuilds tribes and countries from snap, after running every
// invariant check spec.md §7 requires for SaveCorrupt. It does not touch
// WorldGen or the PRNG stream — callers regenerate those from
// snap.Seed and splice in the restored entity lists and year/tech level.
func Restore(snap Snapshot) ([]*entities.Tribe, []*entities.Country, error) {
	// TribeJSON (spec.md §6) carries no settled/techLevel/leader/cooldown
	// fields, so a restored tribe's behavioral state restarts at zero —
	// this is the serialized format's documented shape, not a bug.
	tribes := make([]*entities.Tribe, len(snap.Tribes))
	for i, t := range snap.Tribes {
		tribes[i] = &entities.Tribe{
			ID: t.ID, Culture: t.Name, Color: t.Color,
			Population: t.Population, Age: t.Age,
			Territories: pointsFromJSON(t.Territories),
			X:           t.X, Y: t.Y,
		}
	}

	countries := make([]*entities.Country, len(snap.Countries))
	for i, c := range snap.Countries {
		cities := make([]entities.City, len(c.Cities))
		for j, city := range c.Cities {
			cities[j] = cityFromJSON(city)
		}
		countries[i] = &entities.Country{
			ID: c.ID, Name: c.Name, Color: c.Color,
			Population: c.Population, Age: c.Age,
			Territories: pointsFromJSON(c.Territories),
			CapitalX:    c.CapitalX, CapitalY: c.CapitalY,
			Cities:     cities,
			Leader:     leaderFromJSON(c.Leader),
			Government: c.Government,
			TechLevel:  c.TechLevel,
			Unrest:     c.Unrest,
			AtWar:      c.AtWar,
			Allies:     c.Allies,
			Enemies:    c.Enemies,
		}
	}

	v := validation.New()
	if err := v.ValidateSnapshot(tribes, countries); err != nil {
		return nil, nil, err
	}

	return tribes, countries, nil
}
