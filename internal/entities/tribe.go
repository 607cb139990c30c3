package entities

// Tribe is a pre-civilization population unit (spec.md §3).
type Tribe struct {
	ID   ID
	Culture string
	Color   string
	X, Y    int

	Population int
	Age        int
	TechLevel  int

	Settled           bool
	SettlementYears   int
	MigrationCooldown int

	// Territories is an ordered set; while unsettled it is capped at 8
	// entries (spec.md §3). Settled tribes may accumulate more through
	// expansion before converting to a Country.
	Territories []Point

	Leader Leader
}

// HasTerritory reports whether p is already claimed by this tribe.
func (t *Tribe) HasTerritory(p Point) bool {
	for _, q := range t.Territories {
		if q == p {
			return true
		}
	}
	return false
}

// AddTerritory appends p to the tribe's territory list.
func (t *Tribe) AddTerritory(p Point) {
	t.Territories = append(t.Territories, p)
}

// SetSoleTerritory replaces the tribe's territories with a single tile, used
// by migration (spec.md §4.4.1: "territories become the single chosen
// tile").
func (t *Tribe) SetSoleTerritory(p Point) {
	t.X, t.Y = p.X, p.Y
	t.Territories = []Point{p}
}

// Alive reports whether the tribe still meets the population floor
// (spec.md §3: destroyed when population < 10).
func (t *Tribe) Alive() bool {
	return t.Population >= 10
}
