package civilization

import (
	"math"
	"sort"

	"planetsim/internal/entities"
	"planetsim/internal/prng"
	"planetsim/internal/worldgen/tileindex"
)

type migrationCandidate struct {
	point entities.Point
	score float64
}

// migrate implements spec.md §4.4.1: scan a radius-2 neighborhood, score
// each viable candidate, then pick one either from the worst three (rare,
// only for low-rationality leaders) or uniformly from a rationality-sized
// top slice.
func migrate(t *entities.Tribe, tiles []tileindex.Tile, territories *entities.TerritoryIndex, s *prng.Stream) {
	var candidates []migrationCandidate
	for _, n := range tileindex.NeighborsInRadius(t.X, t.Y, 2) {
		p := entities.Point{X: n.X, Y: n.Y}
		tile := tileindex.At(tiles, p.X, p.Y)
		if !tile.IsLand || tile.Biome == tileindex.BiomeIce || tile.Biome == tileindex.BiomeAlpine {
			continue
		}
		if !territories.IsFree(p) {
			continue
		}

		score := 100 * tile.Habitability
		switch tile.RiverPresence {
		case tileindex.RiverMajor:
			score += 50
		case tileindex.RiverMinor:
			score += 25
		}
		if tile.DistanceToCoast < 2 {
			score += 30
		}
		if tile.Biome == tileindex.BiomeDesert {
			score -= 40
		}
		if tile.Biome == tileindex.BiomeTundra {
			score -= 60
		}
		if tile.Roughness > 0.5 {
			score -= 30
		}

		candidates = append(candidates, migrationCandidate{point: p, score: score})
	}
	if len(candidates) == 0 {
		return
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	var chosen entities.Point
	worstCount := 3
	if worstCount > len(candidates) {
		worstCount = len(candidates)
	}

	lowRationalityStep := 0.0
	if t.Leader.Traits.Rationality < 0.3 {
		lowRationalityStep = 1.0
	}

	if s.Bool(0.02 * lowRationalityStep) {
		worst := candidates[len(candidates)-worstCount:]
		chosen = prng.Choice(s, pointsOf(worst))
	} else {
		topN := int(math.Floor((1-t.Leader.Traits.Rationality)*5)) + 1
		if topN < 1 {
			topN = 1
		}
		if topN > len(candidates) {
			topN = len(candidates)
		}
		chosen = prng.Choice(s, pointsOf(candidates[:topN]))
	}

	t.SetSoleTerritory(chosen)
	t.MigrationCooldown = s.Int(15, 35)
	t.SettlementYears = 0
}

func pointsOf(cs []migrationCandidate) []entities.Point {
	out := make([]entities.Point, len(cs))
	for i, c := range cs {
		out[i] = c.point
	}
	return out
}
