package tileindex

import (
	"planetsim/internal/worldgen/geography"
)

const (
	pixelsPerTileX = geography.MapW / TileW // 8
	pixelsPerTileY = geography.MapH / TileH // 8
	sampleStride   = 2
)

// Build implements spec.md §4.3 steps 7-8: aggregate the dense pixel fields
// into the coarse tile grid, classify biome, and compute distance-to-coast.
// Traversal is row-major (tile y outer, tile x inner) to keep the result
// reproducible.
func Build(w *geography.World) []Tile {
	tiles := make([]Tile, TileW*TileH)

	for ty := 0; ty < TileH; ty++ {
		for tx := 0; tx < TileW; tx++ {
			tiles[ty*TileW+tx] = aggregateTile(w, tx, ty)
		}
	}

	computeDistanceToCoast(tiles)

	for i := range tiles {
		deriveResources(&tiles[i])
	}

	return tiles
}

func aggregateTile(w *geography.World, tx, ty int) Tile {
	baseX := tx * pixelsPerTileX
	baseY := ty * pixelsPerTileY

	var sumElev, sumTemp, sumMoist float64
	var minElev, maxElev float64
	var maxRiverStrength float64
	n := 0

	for dy := 0; dy < pixelsPerTileY; dy += sampleStride {
		for dx := 0; dx < pixelsPerTileX; dx += sampleStride {
			x, y := baseX+dx, baseY+dy
			elev := float64(w.Elevation.At(x, y))
			temp := float64(w.Temperature.At(x, y))
			moist := float64(w.Moisture.At(x, y))

			sumElev += elev
			sumTemp += temp
			sumMoist += moist

			if n == 0 || elev < minElev {
				minElev = elev
			}
			if n == 0 || elev > maxElev {
				maxElev = elev
			}

			idx := y*geography.MapW + wrapX(x)
			if rs := float64(w.RiverStrength[idx]); rs > maxRiverStrength {
				maxRiverStrength = rs
			}
			n++
		}
	}

	avgElev := sumElev / float64(n)
	avgTemp := sumTemp / float64(n)
	avgMoist := sumMoist / float64(n)

	t := Tile{
		X:           tx,
		Y:           ty,
		Elevation:   avgElev,
		Temperature: avgTemp,
		Rainfall:    avgMoist,
		Roughness:   maxElev - minElev,
		IsLand:      avgElev > 0,
	}

	t.ClimateZone = climateZoneFor(avgTemp)
	t.RiverPresence = riverPresenceFor(maxRiverStrength)
	t.Biome = classifyBiome(t)

	return t
}

func wrapX(x int) int {
	x %= geography.MapW
	if x < 0 {
		x += geography.MapW
	}
	return x
}

func climateZoneFor(temp float64) ClimateZone {
	switch {
	case temp < -0.3:
		return ClimatePolar
	case temp > 0.4:
		return ClimateTropical
	default:
		return ClimateTemperate
	}
}

func riverPresenceFor(maxStrength float64) RiverPresence {
	switch {
	case maxStrength >= 0.5:
		return RiverMajor
	case maxStrength >= 0.2:
		return RiverMinor
	default:
		return RiverNone
	}
}

// classifyBiome walks spec.md §4.3 step 7's ordered decision ladder.
func classifyBiome(t Tile) Biome {
	switch {
	case t.Elevation <= 0:
		return BiomeOcean
	case t.Temperature < -0.5:
		return BiomeIce
	case t.Temperature < -0.2:
		return BiomeTundra
	case t.Elevation > 0.7:
		return BiomeAlpine
	case t.Rainfall < 0.2:
		return BiomeDesert
	case t.Rainfall < 0.4:
		if t.Temperature > 0.3 {
			return BiomeSavanna
		}
		return BiomeGrassland
	case t.Rainfall < 0.7:
		if t.Temperature > 0.4 {
			return BiomeJungle
		}
		return BiomeForest
	default:
		if t.Temperature > 0.5 {
			return BiomeJungle
		}
		return BiomeForest
	}
}
