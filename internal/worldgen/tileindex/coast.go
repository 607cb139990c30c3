package tileindex

import "math"

// computeDistanceToCoast implements spec.md §4.3 step 8: for every land
// tile, find the smallest Chebyshev radius r in [1, 20] whose ring (the
// tiles with max(|dx|,|dy|) == r) contains at least one non-land tile, then
// store the Euclidean distance to the nearest such tile within that ring.
// Ocean tiles get distance 0.
func computeDistanceToCoast(tiles []Tile) {
	for i := range tiles {
		t := &tiles[i]
		if !t.IsLand {
			t.DistanceToCoast = 0
			continue
		}
		t.DistanceToCoast = distanceToCoastFor(tiles, t.X, t.Y)
	}
}

func distanceToCoastFor(tiles []Tile, x, y int) float64 {
	const maxRadius = 20

	for r := 1; r <= maxRadius; r++ {
		best := math.MaxFloat64
		found := false

		for dy := -r; dy <= r; dy++ {
			ny := y + dy
			if ny < 0 || ny >= TileH {
				continue
			}
			for dx := -r; dx <= r; dx++ {
				if absInt(dx) != r && absInt(dy) != r {
					continue // interior of the box, not the ring itself
				}
				nx := wrapTileX(x + dx)
				other := tiles[ny*TileW+nx]
				if other.IsLand {
					continue
				}
				d := math.Hypot(float64(dx), float64(dy))
				if d < best {
					best = d
					found = true
				}
			}
		}

		if found {
			return best
		}
	}

	return float64(maxRadius)
}

func wrapTileX(x int) int {
	x %= TileW
	if x < 0 {
		x += TileW
	}
	return x
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
