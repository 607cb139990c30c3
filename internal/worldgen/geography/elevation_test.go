package geography

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planetsim/internal/prng"
)

func TestGenerateElevationDeterministic(t *testing.T) {
	w1 := NewWorld(1)
	GenerateElevation(w1, prng.New(1))

	w2 := NewWorld(1)
	GenerateElevation(w2, prng.New(1))

	require.Equal(t, w1.Elevation, w2.Elevation)
}

func TestGenerateElevationDiffersAcrossSeeds(t *testing.T) {
	w1 := NewWorld(1)
	GenerateElevation(w1, prng.New(1))

	w2 := NewWorld(2)
	GenerateElevation(w2, prng.New(2))

	assert.NotEqual(t, w1.Elevation, w2.Elevation)
}

func TestSeaLevelNormalizationProducesBothSigns(t *testing.T) {
	w := NewWorld(5)
	GenerateElevation(w, prng.New(5))

	var hasLand, hasOcean bool
	for _, e := range w.Elevation {
		if e > 0 {
			hasLand = true
		} else {
			hasOcean = true
		}
	}
	assert.True(t, hasLand, "expected at least some land after sea-level normalization")
	assert.True(t, hasOcean, "expected at least some ocean after sea-level normalization")
}

func TestSeaLevelIsApproximately60thPercentile(t *testing.T) {
	w := NewWorld(11)
	GenerateElevation(w, prng.New(11))

	below := 0
	for _, e := range w.Elevation {
		if e <= 0 {
			below++
		}
	}
	ratio := float64(below) / float64(len(w.Elevation))
	assert.InDelta(t, 0.60, ratio, 0.03)
}

func TestLatitudeBounds(t *testing.T) {
	assert.InDelta(t, 1.0, Latitude(0), 1e-9)
	assert.InDelta(t, -1.0, Latitude(MapH-1), 1e-9)
}

func TestFieldWrapsXAndClampsY(t *testing.T) {
	f := NewField()
	f.Set(0, 0, 42)
	assert.Equal(t, float32(42), f.At(MapW, 0))
	assert.Equal(t, float32(42), f.At(-MapW, 0))

	f.Set(3, MapH-1, 7)
	assert.Equal(t, float32(7), f.At(3, MapH+500))
	assert.Equal(t, float32(0), f.At(3, -500))
}
