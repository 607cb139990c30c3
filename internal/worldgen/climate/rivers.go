package climate

import (
	"planetsim/internal/prng"
	"planetsim/internal/worldgen/geography"
)

// direction is a 4-neighbor step, tried in the fixed N, S, E, W order
// spec.md §4.3 step 6 requires for tie-breaking.
type direction struct{ dx, dy int }

var stepOrder = [4]direction{
	{0, -1}, // North
	{0, 1},  // South
	{1, 0},  // East
	{-1, 0}, // West
}

const (
	maxRiverSteps    = 200
	minRiverLength   = 10
	sourceAttemptCap = 2000
)

// GenerateRivers implements spec.md §4.3 step 6: trace N candidate rivers
// from random high-moisture highland sources downhill to the ocean, a local
// minimum, another river, or a 200-step cap. Only paths longer than 10
// points are kept.
func GenerateRivers(w *geography.World, s *prng.Stream) {
	rng := s.Fork("rivers")
	owner := make([]int, len(w.Elevation))

	n := rng.Int(80, 150)
	nextID := 1

	for i := 0; i < n; i++ {
		src, ok := pickSource(w, rng)
		if !ok {
			continue
		}

		path := tracePath(w, owner, src)
		if len(path) <= minRiverLength {
			continue
		}

		strength := float64(len(path)) / 100
		if strength > 1 {
			strength = 1
		}

		for _, p := range path {
			owner[idxOf(p)] = nextID
			w.RiverMark[idxOf(p)] = 1
			w.RiverStrength[idxOf(p)] = float32(strength)
		}
		w.Rivers = append(w.Rivers, geography.River{Path: path, Strength: strength})
		nextID++
	}
}

func idxOf(p geography.Point) int {
	y := p.Y
	if y < 0 {
		y = 0
	}
	if y >= geography.MapH {
		y = geography.MapH - 1
	}
	x := p.X % geography.MapW
	if x < 0 {
		x += geography.MapW
	}
	return y*geography.MapW + x
}

func pickSource(w *geography.World, rng *prng.Stream) (geography.Point, bool) {
	for attempt := 0; attempt < sourceAttemptCap; attempt++ {
		x := rng.Int(0, geography.MapW-1)
		y := rng.Int(0, geography.MapH-1)
		elev := float64(w.Elevation.At(x, y))
		moist := float64(w.Moisture.At(x, y))
		if elev > 0.3 && elev < 0.9 && moist > 0.4 {
			return geography.Point{X: x, Y: y}, true
		}
	}
	return geography.Point{}, false
}

func tracePath(w *geography.World, owner []int, src geography.Point) []geography.Point {
	path := []geography.Point{src}
	cur := src

	for step := 0; step < maxRiverSteps; step++ {
		if float64(w.Elevation.At(cur.X, cur.Y)) <= 0 {
			break // reached ocean; final point already appended
		}

		next, found := lowestNeighbor(w, cur)
		if !found {
			break // local minimum
		}

		if owner[idxOf(next)] != 0 {
			break // meeting a different river: stop, don't overwrite it
		}

		cur = next
		path = append(path, cur)
	}

	return path
}

// lowestNeighbor returns the steepest-descent 4-neighbor: the one with the
// lowest elevation among those strictly lower than cur. Ties (equal
// elevation) resolve to whichever was checked first in the fixed N,S,E,W
// order.
func lowestNeighbor(w *geography.World, cur geography.Point) (geography.Point, bool) {
	curElev := w.Elevation.At(cur.X, cur.Y)

	found := false
	var best geography.Point
	var bestElev float32

	for _, d := range stepOrder {
		nx, ny := cur.X+d.dx, cur.Y+d.dy
		if ny < 0 || ny >= geography.MapH {
			continue // clamp Y: no wrap, just no neighbor across the pole edge
		}
		nElev := w.Elevation.At(nx, ny)
		if nElev >= curElev {
			continue
		}
		if !found || nElev < bestElev {
			found = true
			bestElev = nElev
			best = geography.Point{X: wrapX(nx), Y: ny}
		}
	}
	return best, found
}

func wrapX(x int) int {
	x %= geography.MapW
	if x < 0 {
		x += geography.MapW
	}
	return x
}
