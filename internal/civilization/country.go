package civilization

import (
	"math"

	"planetsim/internal/entities"
	"planetsim/internal/eventlog"
	"planetsim/internal/prng"
	"planetsim/internal/warfare"
	"planetsim/internal/worldgen/tileindex"
)

// CountryResult reports the outcome of one country's tick.
type CountryResult struct {
	Dead bool
}

// TickCountry advances c by one year in place, per spec.md §4.5.
func TickCountry(c *entities.Country, countries map[entities.ID]*entities.Country, tiles []tileindex.Tile, territories *entities.TerritoryIndex, wars *warfare.Manager, ids *entities.IDAllocator, log *eventlog.Log, year int, s *prng.Stream) CountryResult {
	c.Age++
	c.Leader.Age++
	c.Leader.YearsInPower++

	recomputePopulation(c, tiles)

	if c.Age%50 == 0 && s.Bool(0.4) {
		c.TechLevel++
		log.Emit(eventlog.Event{Year: year, Message: c.Name + " advances its technology", Type: eventlog.TechAdvancement})
	}

	if c.Leader.Age > 65 && s.Bool(0.05) {
		revolutionary := c.Unrest > 70
		heir := c.Leader.Succeed(ids.Next(), c.Name+" successor", revolutionary, s)
		log.Emit(eventlog.Event{Year: year, Message: c.Name + "'s leader dies", Type: eventlog.LeaderDied})
		c.Leader = heir
	}

	if c.Age%15 == 0 {
		expandCountry(c, tiles, territories, s)
	}

	if c.Age > 30 && !c.AtWar && s.Bool(0.03) {
		if target := pickWarTarget(c, countries, territories); target != nil {
			if c.Leader.Traits.Aggression > 0.6 || float64(len(c.Territories)) < 0.5*float64(len(target.Territories)) {
				wars.DeclareWar(c, target)
				log.Emit(eventlog.Event{Year: year, Message: c.Name + " declares war on " + target.Name, Type: eventlog.WarDeclared})
			}
		}
	}

	if c.Collapsed() {
		return CountryResult{Dead: true}
	}
	return CountryResult{}
}

func recomputePopulation(c *entities.Country, tiles []tileindex.Tile) {
	total := 0
	for _, p := range c.Territories {
		tile := tileindex.At(tiles, p.X, p.Y)
		total += int(math.Floor(tile.PopulationCapacity * 1000 * 0.03 * tile.FoodPotential * (1 + 0.1*float64(c.TechLevel))))
	}
	c.Population = total
}

func expandCountry(c *entities.Country, tiles []tileindex.Tile, territories *entities.TerritoryIndex, s *prng.Stream) {
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
	for _, cand := range candidates {
		if !territories.IsFree(cand) {
			continue // claimed earlier this loop by another occurrence of the same tile
		}
		if s.Bool(0.3) {
			c.AddTerritory(cand)
			territories.Claim(cand, entities.OwnerCountry, c.ID)
		}
	}
}

func pickWarTarget(c *entities.Country, countries map[entities.ID]*entities.Country, territories *entities.TerritoryIndex) *entities.Country {
	var candidates []*entities.Country
	seen := map[entities.ID]bool{}
	for _, p := range c.Territories {
		for _, n := range tileindex.Neighbors8(p.X, p.Y) {
			kind, id := territories.OwnerOf(entities.Point{X: n.X, Y: n.Y})
			if kind != entities.OwnerCountry || id == c.ID || seen[id] {
				continue
			}
			seen[id] = true
			if other := countries[id]; other != nil && !other.AtWar {
				candidates = append(candidates, other)
			}
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	return candidates[0]
}

// EnsureCapitalCity makes sure a just-formed country keeps its capital as
// Cities[0], matching spec.md §3's "first is capital" invariant.
func EnsureCapitalCity(c *entities.Country) {
	if len(c.Cities) == 0 {
		c.Cities = append(c.Cities, entities.City{X: c.CapitalX, Y: c.CapitalY, IsCapital: true})
		return
	}
	if !c.Cities[0].IsCapital {
		for i, city := range c.Cities {
			if city.IsCapital {
				c.Cities[0], c.Cities[i] = c.Cities[i], c.Cities[0]
				return
			}
		}
	}
}
