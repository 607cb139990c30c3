// Package ai implements CountryAI (spec.md §4.7): a weighted-action
// decision policy evaluated for each country every 5 years.
package ai

import (
	"math"
	"sort"

	"planetsim/internal/entities"
	"planetsim/internal/eventlog"
	"planetsim/internal/prng"
	"planetsim/internal/warfare"
	"planetsim/internal/worldgen/tileindex"
)

type action int

const (
	actionExpand action = iota
	actionBuildCity
	actionSeekAlliance
	actionDeclareWar
	actionImproveStability
)

// Manager holds the single globalTension value shared by every country's
// war-weight calculation (spec.md §4.7).
type Manager struct {
	GlobalTension float64
}

// NewManager builds an AI manager with globalTension at zero.
func NewManager() *Manager {
	return &Manager{}
}

// DecayTension applies the 0.01-per-tick decay from spec.md §4.7.
func (m *Manager) DecayTension() {
	m.GlobalTension = math.Max(0, m.GlobalTension-0.01)
}

func borderingCountries(c *entities.Country, territories *entities.TerritoryIndex) map[entities.ID]bool {
	out := make(map[entities.ID]bool)
	for _, p := range c.Territories {
		for _, n := range tileindex.Neighbors8(p.X, p.Y) {
			kind, id := territories.OwnerOf(entities.Point{X: n.X, Y: n.Y})
			if kind == entities.OwnerCountry && id != c.ID {
				out[id] = true
			}
		}
	}
	return out
}

func unclaimedHabitableNeighbor(c *entities.Country, territories *entities.TerritoryIndex, tiles []tileindex.Tile, s *prng.Stream) (entities.Point, bool) {
	var candidates []entities.Point
	for _, p := range c.Territories {
		for _, n := range tileindex.Neighbors8(p.X, p.Y) {
			cand := entities.Point{X: n.X, Y: n.Y}
			tile := tileindex.At(tiles, cand.X, cand.Y)
			if !tile.IsLand || tile.Biome == tileindex.BiomeIce || tile.Biome == tileindex.BiomeAlpine {
				continue
			}
			if !territories.IsFree(cand) {
				continue
			}
			candidates = append(candidates, cand)
		}
	}
	if len(candidates) == 0 {
		return entities.Point{}, false
	}
	return prng.Choice(s, candidates), true
}

// RunCountry evaluates the weighted-action policy once for c and applies
// the chosen action's effect.
func RunCountry(m *Manager, c *entities.Country, countries map[entities.ID]*entities.Country, territories *entities.TerritoryIndex, tiles []tileindex.Tile, wars *warfare.Manager, log *eventlog.Log, year int, s *prng.Stream) {
	neighbors := borderingCountries(c, territories)

	_, hasExpansionTarget := unclaimedHabitableNeighbor(c, territories, tiles, s)
	wExpand := 0.1
	if len(c.Territories) > 50 {
		wExpand = 0
	} else if hasExpansionTarget {
		wExpand = 0.5
	}
	wExpand *= 1 + c.Leader.Traits.Ambition

	wCity := 0.0
	if len(c.Cities) < len(c.Territories)/10 {
		wCity = 0.2
	}

	wAlliance := 0.0
	if len(c.Allies) <= 3 {
		wAlliance = 0.05
		for id := range neighbors {
			if !c.IsAllyOf(id) && !countries[id].AtWar {
				wAlliance = 0.15
				break
			}
		}
	}
	wAlliance *= 1 + c.Leader.Traits.Diplomacy

	wWar := 0.0
	if !c.AtWar && c.Population >= 500 && len(neighbors) > 0 {
		weakerNeighbors := 0
		for id := range neighbors {
			if countries[id].Population < c.Population {
				weakerNeighbors++
			}
		}
		wWar = 0.1 + 0.3*m.GlobalTension + 0.2*float64(weakerNeighbors)
		wWar *= (1 + c.Leader.Traits.Aggression) * (1 - c.Leader.Traits.Caution)
	}

	wStability := 0.05
	if c.Unrest > 50 {
		wStability = 0.4
	}

	weights := []float64{wExpand, wCity, wAlliance, wWar, wStability}
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return
	}

	r := s.Range(0, total)
	cum := 0.0
	chosen := actionImproveStability
	for i, w := range weights {
		cum += w
		if r < cum {
			chosen = action(i)
			break
		}
	}

	switch chosen {
	case actionExpand:
		applyExpand(c, territories, tiles, s)
	case actionBuildCity:
		applyBuildCity(c, tiles, log, year, s)
	case actionSeekAlliance:
		applySeekAlliance(c, countries, neighbors, log, year)
	case actionDeclareWar:
		applyDeclareWar(m, c, countries, neighbors, wars, log, year, s)
	case actionImproveStability:
		c.Unrest = math.Max(0, c.Unrest-10)
	}
}

func applyExpand(c *entities.Country, territories *entities.TerritoryIndex, tiles []tileindex.Tile, s *prng.Stream) {
	p, ok := unclaimedHabitableNeighbor(c, territories, tiles, s)
	if !ok {
		return
	}
	c.AddTerritory(p)
	territories.Claim(p, entities.OwnerCountry, c.ID)
}

func applyBuildCity(c *entities.Country, tiles []tileindex.Tile, log *eventlog.Log, year int, s *prng.Stream) {
	if len(c.Territories) == 0 {
		return
	}
	var preferred []entities.Point
	for _, p := range c.Territories {
		tile := tileindex.At(tiles, p.X, p.Y)
		if tile.RiverPresence != tileindex.RiverNone || tile.Fertility > 0.5 {
			preferred = append(preferred, p)
		}
	}
	pool := preferred
	if len(pool) == 0 {
		pool = c.Territories
	}
	site := prng.Choice(s, pool)

	c.Cities = append(c.Cities, entities.City{
		Name: c.Culture + " Settlement",
		X:    site.X,
		Y:    site.Y,
	})
	log.Emit(eventlog.Event{
		Year:     year,
		Message:  c.Name + " founds a new city",
		Location: &eventlog.Location{X: site.X, Y: site.Y},
		Type:     eventlog.CityFounded,
	})
}

func applySeekAlliance(c *entities.Country, countries map[entities.ID]*entities.Country, neighbors map[entities.ID]bool, log *eventlog.Log, year int) {
	ids := make([]entities.ID, 0, len(neighbors))
	for id := range neighbors {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		other := countries[id]
		if other == nil || other.AtWar || c.IsAllyOf(id) {
			continue
		}
		c.Allies = append(c.Allies, id)
		other.Allies = append(other.Allies, c.ID)
		log.Emit(eventlog.Event{Year: year, Message: c.Name + " and " + other.Name + " form an alliance", Type: eventlog.AllianceFormed})
		return
	}
}

func applyDeclareWar(m *Manager, c *entities.Country, countries map[entities.ID]*entities.Country, neighbors map[entities.ID]bool, wars *warfare.Manager, log *eventlog.Log, year int, s *prng.Stream) {
	candidates := make([]entities.ID, 0, len(neighbors))
	for id := range neighbors {
		candidates = append(candidates, id)
	}
	if len(candidates) == 0 {
		return
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })
	targetID := prng.Choice(s, candidates)
	target := countries[targetID]
	if target == nil || target.AtWar {
		return
	}

	wars.DeclareWar(c, target)
	m.GlobalTension = math.Min(1, m.GlobalTension+0.1)

	log.Emit(eventlog.Event{Year: year, Message: c.Name + " declares war on " + target.Name, Type: eventlog.WarDeclared})
}
