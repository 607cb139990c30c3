// Package noise implements the 2D gradient noise and fractal-Brownian-motion
// accumulation used by internal/worldgen/geography. The permutation table is
// built once from an internal/prng.Stream, so the same seed always produces
// the same lattice.
package noise

import (
	"math"

	"github.com/aquilax/go-perlin"

	"planetsim/internal/prng"
)

// Generator is a classic Perlin-style gradient noise field over a 256-entry
// permutation table, duplicated to 512 entries to avoid the modulo
// wraparound at the lattice edges. The domain-warp offset field (see FBM)
// is instead drawn from aquilax/go-perlin: warp only ever needs a cheap,
// low-frequency second opinion to perturb coordinates, and standing up a
// second hand-rolled permutation table purely for that would duplicate the
// lattice logic above for no benefit.
type Generator struct {
	perm    [512]int
	warpGen *perlin.Perlin
}

var gradients = [8][2]float64{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{0.7071, 0.7071}, {-0.7071, 0.7071}, {0.7071, -0.7071}, {-0.7071, -0.7071},
}

// New builds the permutation table by Fisher-Yates shuffling [0,255] with s.
func New(s *prng.Stream) *Generator {
	table := make([]int, 256)
	for i := range table {
		table[i] = i
	}
	prng.Shuffle(s, table)

	g := &Generator{
		warpGen: perlin.NewPerlin(2, 2, 3, int64(s.Uint32())),
	}
	for i := 0; i < 512; i++ {
		g.perm[i] = table[i%256]
	}
	return g
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

func (g *Generator) gradAt(hash int, x, y float64) float64 {
	grad := gradients[hash&7]
	return grad[0]*x + grad[1]*y
}

// Noise2D returns gradient noise in approximately [-1, 1] at (x, y).
func (g *Generator) Noise2D(x, y float64) float64 {
	xi := int(math.Floor(x)) & 255
	yi := int(math.Floor(y)) & 255
	xf := x - math.Floor(x)
	yf := y - math.Floor(y)

	u := fade(xf)
	v := fade(yf)

	aa := g.perm[g.perm[xi]+yi]
	ab := g.perm[g.perm[xi]+yi+1]
	ba := g.perm[g.perm[xi+1]+yi]
	bb := g.perm[g.perm[xi+1]+yi+1]

	x1 := lerp(u, g.gradAt(aa, xf, yf), g.gradAt(ba, xf-1, yf))
	x2 := lerp(u, g.gradAt(ab, xf, yf-1), g.gradAt(bb, xf-1, yf-1))

	return lerp(v, x1, x2)
}

// FBM sums octaves of Noise2D with decreasing amplitude (persistence) and
// increasing frequency (lacunarity), normalized by the sum of amplitudes so
// the output stays in roughly the same range regardless of octave count.
// When warp > 0, (x, y) is first offset by a low-frequency noise field
// scaled by warp before the octave sum runs (domain warping), matching
// spec.md's "warp" parameter.
func (g *Generator) FBM(x, y float64, octaves int, persistence, lacunarity, warp float64) float64 {
	if warp > 0 {
		wx := g.warpGen.Noise2D(x*0.05, y*0.05) * warp
		wy := g.warpGen.Noise2D(x*0.05+57.0, y*0.05+91.0) * warp
		x += wx
		y += wy
	}

	sum := 0.0
	amplitudeSum := 0.0
	amplitude := 1.0
	frequency := 1.0

	for i := 0; i < octaves; i++ {
		sum += g.Noise2D(x*frequency, y*frequency) * amplitude
		amplitudeSum += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}

	if amplitudeSum == 0 {
		return 0
	}
	return sum / amplitudeSum
}
