// Package geography builds the dense per-pixel elevation field: base
// elevation, sea-level normalization, and mountain ridges (spec.md §4.3
// steps 1-3). Temperature, moisture, and rivers are layered on top by
// internal/worldgen/climate; coarse tile aggregation is
// internal/worldgen/tileindex.
package geography

const (
	// MapW and MapH are the fixed pixel-field dimensions. The grid wraps
	// horizontally (torus) and clamps vertically.
	MapW = 2048
	MapH = 1024
)

// Field is a dense MapW*MapH grid of float32 samples indexed by y*MapW+x.
type Field []float32

// NewField allocates a zeroed dense field.
func NewField() Field {
	return make(Field, MapW*MapH)
}

// At returns the value at (x, y), wrapping x and clamping y.
func (f Field) At(x, y int) float32 {
	return f[idx(x, y)]
}

// Set writes the value at (x, y), wrapping x and clamping y.
func (f Field) Set(x, y int, v float32) {
	f[idx(x, y)] = v
}

func wrapX(x int) int {
	x %= MapW
	if x < 0 {
		x += MapW
	}
	return x
}

func clampY(y int) int {
	if y < 0 {
		return 0
	}
	if y >= MapH {
		return MapH - 1
	}
	return y
}

func idx(x, y int) int {
	return clampY(y)*MapW + wrapX(x)
}

// Latitude maps a pixel row to [-1, 1], where -1 is the southern edge, 1 is
// the northern edge, and 0 is the equator (the middle row).
func Latitude(y int) float64 {
	return 1 - 2*float64(y)/float64(MapH-1)
}

// World holds the immutable dense fields produced by elevation generation.
// Temperature and moisture start zeroed; internal/worldgen/climate fills
// them in and appends rivers.
type World struct {
	Seed        uint32
	Elevation   Field
	Temperature Field
	Moisture    Field
	RiverMark   []uint8
	// RiverStrength mirrors RiverMark with the owning river's Strength at
	// each marked pixel (0 elsewhere). Kept dense rather than looked up
	// through Rivers so tileindex's per-tile max-strength aggregation
	// (spec.md §4.3 step 7) doesn't need a pixel-to-river reverse index.
	RiverStrength []float32
	Rivers        []River
}

// River is an ordered path of pixel coordinates plus a normalized strength.
type River struct {
	Path     []Point
	Strength float64
}

// Point is a pixel coordinate.
type Point struct {
	X, Y int
}

// NewWorld allocates a World with zeroed fields, ready for GenerateElevation.
func NewWorld(seed uint32) *World {
	return &World{
		Seed:        seed,
		Elevation:   NewField(),
		Temperature: NewField(),
		Moisture:      NewField(),
		RiverMark:     make([]uint8, MapW*MapH),
		RiverStrength: make([]float32, MapW*MapH),
	}
}
