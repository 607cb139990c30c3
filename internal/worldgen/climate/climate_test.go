package climate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planetsim/internal/prng"
	"planetsim/internal/worldgen/geography"
)

func buildWorld(seed uint32) *geography.World {
	w := geography.NewWorld(seed)
	s := prng.New(seed)
	geography.GenerateElevation(w, s)
	ApplyTemperature(w, s)
	ApplyMoisture(w, s)
	GenerateRivers(w, s)
	return w
}

func TestTemperatureInRange(t *testing.T) {
	w := buildWorld(1)
	for _, v := range w.Temperature {
		assert.GreaterOrEqual(t, v, float32(-1))
		assert.LessOrEqual(t, v, float32(1))
	}
}

func TestMoistureInRange(t *testing.T) {
	w := buildWorld(2)
	for _, v := range w.Moisture {
		assert.GreaterOrEqual(t, v, float32(0))
		assert.LessOrEqual(t, v, float32(1.2))
	}
}

func TestOceanMoistureForced(t *testing.T) {
	w := buildWorld(3)
	for i, e := range w.Elevation {
		if e <= 0 {
			assert.InDelta(t, 0.6, float64(w.Moisture[i]), 1e-6)
		}
	}
}

func TestDeterministicFullPipeline(t *testing.T) {
	w1 := buildWorld(42)
	w2 := buildWorld(42)

	require.Equal(t, w1.Elevation, w2.Elevation)
	require.Equal(t, w1.Temperature, w2.Temperature)
	require.Equal(t, w1.Moisture, w2.Moisture)
	require.Equal(t, len(w1.Rivers), len(w2.Rivers))
	for i := range w1.Rivers {
		assert.Equal(t, w1.Rivers[i].Path, w2.Rivers[i].Path)
		assert.InDelta(t, w1.Rivers[i].Strength, w2.Rivers[i].Strength, 1e-9)
	}
}

func TestRiversKeptOnlyAboveMinLength(t *testing.T) {
	w := buildWorld(7)
	for _, r := range w.Rivers {
		assert.Greater(t, len(r.Path), minRiverLength)
		assert.GreaterOrEqual(t, r.Strength, 0.0)
		assert.LessOrEqual(t, r.Strength, 1.0)
	}
}

func TestRiverMarkMatchesRiverPaths(t *testing.T) {
	w := buildWorld(13)
	marked := 0
	for _, m := range w.RiverMark {
		if m != 0 {
			marked++
		}
	}

	total := 0
	for _, r := range w.Rivers {
		total += len(r.Path)
	}
	assert.Equal(t, total, marked)
}
