// Package civilization implements the per-tick behavior of tribes and
// countries (spec.md §4.4, §4.4.1, §4.5): the entities package holds pure
// data, this package holds the rules that mutate it.
package civilization

import (
	"math"

	"planetsim/internal/entities"
	"planetsim/internal/eventlog"
	"planetsim/internal/prng"
	"planetsim/internal/worldgen/tileindex"
)

// TribeResult reports the outcome of one tribe's tick, for Simulation to
// apply: dead tribes are removed, converted tribes become countries, a
// split spawns a sibling tribe.
type TribeResult struct {
	Dead             bool
	ConvertToCountry bool
	Split            *entities.Tribe
}

const maxTribes = 600

// TickTribe advances t by one year in place and reports what Simulation
// must do afterward. others is every other live tribe, used by the
// conflict/absorption check; tribeCount is the caller's current number of
// tribes, and a split only happens while it is below maxTribes.
func TickTribe(t *entities.Tribe, others []*entities.Tribe, tribeCount int, tiles []tileindex.Tile, territories *entities.TerritoryIndex, ids *entities.IDAllocator, log *eventlog.Log, year int, s *prng.Stream) TribeResult {
	t.Age++

	tile := tileindex.At(tiles, t.X, t.Y)
	t.Population += int(float64(t.Population) * 0.02 * tile.FoodPotential)

	if s.Bool(0.01) {
		t.Population -= int(float64(t.Population) * 0.1)
		log.Emit(eventlog.Event{
			Year: year, Message: "disease strikes " + entities.TribeName(t.ID),
			Location: &eventlog.Location{X: t.X, Y: t.Y}, Type: eventlog.Disaster,
		})
	}

	if t.Population < 10 {
		return TribeResult{Dead: true}
	}

	result := TribeResult{}

	if !t.Settled {
		if t.MigrationCooldown > 0 {
			t.MigrationCooldown--
			t.SettlementYears++

			threshold := 20 + 20*t.Leader.Traits.Caution
			if float64(t.SettlementYears) > threshold && tile.Habitability > 0.4 && t.Population > 100 {
				t.Settled = true
				t.TechLevel = max(t.TechLevel, 1)
				log.Emit(eventlog.Event{
					Year: year, Message: entities.TribeName(t.ID) + " settles down",
					Location: &eventlog.Location{X: t.X, Y: t.Y}, Type: eventlog.Settlement,
				})
				if t.Leader.Traits.Ambition > 0.7 && s.Bool(0.4) {
					result.ConvertToCountry = true
				}
			}
		} else {
			migrate(t, tiles, territories, s)
		}
	} else {
		if t.Age%5 == 0 && t.Population > 150 {
			attemptExpansion(t, tile, tiles, territories, s)
		}
		if len(t.Territories) > 5 && t.Population > 400 && t.Age > 50 {
			if s.Bool(0.03 * t.Leader.Traits.Ambition) {
				result.ConvertToCountry = true
			}
		}
	}

	if !result.ConvertToCountry && !result.Dead && t.Population > 500 && s.Bool(0.05) && tribeCount < maxTribes {
		half := t.Population / 2
		t.Population -= half
		split := &entities.Tribe{
			ID:                ids.Next(),
			Culture:           t.Culture,
			Color:             t.Color,
			X:                 t.X,
			Y:                 t.Y,
			Population:        half,
			TechLevel:         t.TechLevel,
			MigrationCooldown: 0,
			Territories:       []entities.Point{{X: t.X, Y: t.Y}},
			Leader:            entities.NewLeader(ids.Next(), entities.TribeName(t.ID)+"-heir", s),
		}
		result.Split = split
		log.Emit(eventlog.Event{Year: year, Message: entities.TribeName(t.ID) + " splits", Type: eventlog.TribeSplit})
	}

	if t.Settled && !result.Dead && s.Bool(0.02) {
		for _, other := range others {
			if other == t || !other.Settled {
				continue
			}
			if tileindex.ManhattanTorus(t.X, t.Y, other.X, other.Y) <= 2 && float64(t.Population) > 1.3*float64(other.Population) {
				t.Population += other.Population / 2
				for _, p := range other.Territories {
					territories.TransferOne(p, entities.OwnerTribe, t.ID)
				}
				t.Territories = append(t.Territories, other.Territories...)
				other.Territories = nil
				other.Population = 0 // marks other dead; Simulation sweeps population<10 tribes
				break
			}
		}
	}

	return result
}

func attemptExpansion(t *entities.Tribe, tile *tileindex.Tile, tiles []tileindex.Tile, territories *entities.TerritoryIndex, s *prng.Stream) {
	resourceScore := (tile.FoodPotential + tile.Wood + tile.Fertility) / 3
	popScore := math.Min(1, float64(t.Population)/500)
	prob := 0.5*resourceScore + 0.3*popScore + 0.2*t.Leader.Traits.Ambition
	if !s.Bool(prob) {
		return
	}

	candidates := tileindex.Neighbors8(t.X, t.Y)
	prng.Shuffle(s, candidates)
	for _, n := range candidates {
		p := entities.Point{X: n.X, Y: n.Y}
		cand := tileindex.At(tiles, p.X, p.Y)
		if !cand.IsLand || cand.Biome == tileindex.BiomeIce || cand.Biome == tileindex.BiomeAlpine {
			continue
		}
		if !territories.IsFree(p) {
			continue
		}
		t.AddTerritory(p)
		territories.Claim(p, entities.OwnerTribe, t.ID)
		return
	}
}
