package geography

import (
	"math"
	"sort"

	"planetsim/internal/noise"
	"planetsim/internal/prng"
)

// scaleCoord converts a pixel coordinate and a "N-scale" count (the number
// of noise wave cycles spanning the map) into the (x, y) arguments FBM
// expects. Both axes divide by MapW (not MapH) so a cycle count produces
// round, undistorted features regardless of the map's 2:1 aspect ratio.
func scaleCoord(x, y int, scale float64) (float64, float64) {
	return float64(x) / MapW * scale, float64(y) / MapW * scale
}

// GenerateElevation runs spec.md §4.3 steps 1-3: base elevation from three
// fbm octave bands shaped by latitude, sea-level normalization by
// percentile, and ridged mountain ranges layered on top of whatever ended
// up above sea level. Traversal is row-major (y outer, x inner) everywhere
// so results are reproducible given the seed.
func GenerateElevation(w *World, s *prng.Stream) {
	n := noise.New(s.Fork("elevation"))

	for y := 0; y < MapH; y++ {
		lat := Latitude(y)
		latWeight := 1 - math.Pow(math.Abs(lat), 1.5)*0.3
		var polarBoost float64
		if math.Abs(lat) < 0.35 {
			polarBoost = 0.08 * (1 - math.Abs(lat)/0.35)
		}

		for x := 0; x < MapW; x++ {
			cx, cy := scaleCoord(x, y, 2.2)
			continental := n.FBM(cx, cy, 5, 0.55, 2.1, 0.5)

			tx, ty := scaleCoord(x, y, 7)
			terrain := n.FBM(tx, ty, 5, 0.6, 2.0, 0)

			dx, dy := scaleCoord(x, y, 20)
			detail := n.FBM(dx, dy, 4, 0.5, 2.0, 0)

			elev := 0.60*continental + 0.28*terrain + 0.12*detail
			elev = elev*latWeight + polarBoost

			w.Elevation.Set(x, y, float32(elev))
		}
	}

	normalizeSeaLevel(w)
	applyMountains(w, s)
}

// normalizeSeaLevel implements spec.md §4.3 step 2: sort all elevations,
// take the 60th-percentile value as sea level, subtract it, and scale by
// 2.8 so the sign of elevation alone distinguishes land from ocean.
func normalizeSeaLevel(w *World) {
	sorted := make([]float32, len(w.Elevation))
	copy(sorted, w.Elevation)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	idx := int(float64(len(sorted)) * 0.60)
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	seaLevel := sorted[idx]

	for i := range w.Elevation {
		w.Elevation[i] = (w.Elevation[i] - seaLevel) * 2.8
	}
}

// applyMountains implements spec.md §4.3 step 3: a ridged noise field adds
// sharp ranges to land that already cleared a low elevation threshold,
// weighted down near ocean by a broad continental mask so ridges cluster
// inland rather than scattering across every coastline.
func applyMountains(w *World, s *prng.Stream) {
	ridgeNoise := noise.New(s.Fork("mountains-ridge"))
	maskNoise := noise.New(s.Fork("mountains-mask"))

	for y := 0; y < MapH; y++ {
		for x := 0; x < MapW; x++ {
			elev := w.Elevation.At(x, y)
			if elev <= 0.08 {
				continue
			}

			rx, ry := scaleCoord(x, y, 5)
			mountain := 1 - math.Abs(ridgeNoise.FBM(rx, ry, 4, 0.5, 2.2, 0))
			if mountain <= 0.35 {
				continue
			}

			mx, my := scaleCoord(x, y, 0.6)
			continentalMask := (maskNoise.FBM(mx, my, 2, 0.6, 2.0, 0) + 1) * 0.5
			continentalMask = clamp01(continentalMask)

			boost := math.Pow((mountain-0.35)/0.65, 1.6) * 0.18 * continentalMask
			w.Elevation.Set(x, y, elev+float32(boost))
		}
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
