// Package climate layers temperature, moisture, and rivers onto a
// geography.World whose elevation field has already been generated
// (spec.md §4.3 steps 4-6).
package climate

import (
	"math"

	"planetsim/internal/noise"
	"planetsim/internal/prng"
	"planetsim/internal/worldgen/geography"
)

// ApplyTemperature implements spec.md §4.3 step 4.
func ApplyTemperature(w *geography.World, s *prng.Stream) {
	jitter := noise.New(s.Fork("temperature-jitter"))

	for y := 0; y < geography.MapH; y++ {
		lat := geography.Latitude(y)
		base := 1 - 1.3*math.Abs(lat)

		for x := 0; x < geography.MapW; x++ {
			elev := float64(w.Elevation.At(x, y))
			temp := base
			if elev > 0 {
				temp -= 0.45 * elev
			} else {
				temp += 0.12
			}

			jx, jy := float64(x)/geography.MapW*8, float64(y)/geography.MapW*8
			temp += 0.08 * jitter.Noise2D(jx, jy)

			w.Temperature.Set(x, y, float32(clamp(temp, -1, 1)))
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
