package climate

import (
	"math"

	"planetsim/internal/noise"
	"planetsim/internal/prng"
	"planetsim/internal/worldgen/geography"
)

// ApplyMoisture implements spec.md §4.3 step 5.
func ApplyMoisture(w *geography.World, s *prng.Stream) {
	precipNoise := noise.New(s.Fork("moisture-precip"))

	for y := 0; y < geography.MapH; y++ {
		lat := geography.Latitude(y)

		for x := 0; x < geography.MapW; x++ {
			elev := float64(w.Elevation.At(x, y))

			px, py := float64(x)/geography.MapW*5, float64(y)/geography.MapW*5
			precip := (precipNoise.FBM(px, py, 4, 0.5, 2.0, 0) + 1) / 2 * (1.2 - 0.6*math.Abs(lat))

			if elev > 0 && elev < 0.15 {
				precip += 0.25
			}
			if elev > 0.5 {
				precip *= 0.5
			}
			if elev <= 0 {
				precip = 0.6
			}

			w.Moisture.Set(x, y, float32(clamp(precip, 0, 1.2)))
		}
	}
}
