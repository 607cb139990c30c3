package tileindex

// At returns the tile at tile coordinates (x, y), wrapping x (torus) and
// clamping y, per spec.md §3's "Torus X, clamp Y" invariant.
func At(tiles []Tile, x, y int) *Tile {
	x = wrapTileX(x)
	if y < 0 {
		y = 0
	}
	if y >= TileH {
		y = TileH - 1
	}
	return &tiles[y*TileW+x]
}

// Neighbors8 returns the 8-adjacent tile coordinates around (x, y), each
// already wrapped/clamped, used by territorial expansion and war
// annexation adjacency checks.
func Neighbors8(x, y int) []struct{ X, Y int } {
	out := make([]struct{ X, Y int }, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			ny := y + dy
			if ny < 0 || ny >= TileH {
				continue
			}
			out = append(out, struct{ X, Y int }{wrapTileX(x + dx), ny})
		}
	}
	return out
}

// NeighborsInRadius returns every distinct tile coordinate within Chebyshev
// radius r of (x, y), excluding (x, y) itself. Used by migration scanning
// (spec.md §4.4.1, radius 2).
func NeighborsInRadius(x, y, r int) []struct{ X, Y int } {
	seen := make(map[[2]int]bool)
	out := make([]struct{ X, Y int }, 0, (2*r+1)*(2*r+1))
	for dy := -r; dy <= r; dy++ {
		ny := y + dy
		if ny < 0 || ny >= TileH {
			continue
		}
		for dx := -r; dx <= r; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx := wrapTileX(x + dx)
			key := [2]int{nx, ny}
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, struct{ X, Y int }{nx, ny})
		}
	}
	return out
}

// ManhattanTorus returns the Manhattan distance between two tile
// coordinates, accounting for horizontal wraparound.
func ManhattanTorus(ax, ay, bx, by int) int {
	dx := absInt(ax - bx)
	if TileW-dx < dx {
		dx = TileW - dx
	}
	dy := absInt(ay - by)
	return dx + dy
}
