package entities

// Point is a tile coordinate (spec.md §3's (x,y) tile coords).
type Point struct {
	X, Y int
}

// OwnerKind distinguishes the two territory-owning record types without
// reaching for interface-based polymorphism (spec.md §9: "tagged variant
// in ownership checks; no deep inheritance").
type OwnerKind int

const (
	OwnerNone OwnerKind = iota
	OwnerTribe
	OwnerCountry
)

// TerritoryIndex is the single authority over tile ownership. Simulation
// owns the one instance; tribes and countries never decide ownership
// themselves, they only propose tiles through Claim/Release. This is the
// "central index owned by Simulation" from spec.md §9.
type TerritoryIndex struct {
	owner map[Point]ownerRef
}

type ownerRef struct {
	kind OwnerKind
	id   ID
}

// NewTerritoryIndex builds an empty index.
func NewTerritoryIndex() *TerritoryIndex {
	return &TerritoryIndex{owner: make(map[Point]ownerRef)}
}

// OwnerOf reports who (if anyone) owns p.
func (t *TerritoryIndex) OwnerOf(p Point) (OwnerKind, ID) {
	ref, ok := t.owner[p]
	if !ok {
		return OwnerNone, 0
	}
	return ref.kind, ref.id
}

// IsFree reports whether no tribe or country owns p.
func (t *TerritoryIndex) IsFree(p Point) bool {
	_, ok := t.owner[p]
	return !ok
}

// Claim records p as owned by (kind, id). Callers must check IsFree
// immediately beforehand; within a single-threaded tick (spec.md §5) that
// check-then-set is atomic by construction.
func (t *TerritoryIndex) Claim(p Point, kind OwnerKind, id ID) {
	t.owner[p] = ownerRef{kind: kind, id: id}
}

// Release removes any ownership record for p.
func (t *TerritoryIndex) Release(p Point) {
	delete(t.owner, p)
}

// ReleaseAll releases every point in ps, used when an entity is removed.
func (t *TerritoryIndex) ReleaseAll(ps []Point) {
	for _, p := range ps {
		t.Release(p)
	}
}

// TransferOne moves ownership of p from one owner to another without an
// intermediate free state, used by war annexation (spec.md §4.6) where the
// point must never appear briefly unowned to another observer within the
// same tick.
func (t *TerritoryIndex) TransferOne(p Point, kind OwnerKind, id ID) {
	t.owner[p] = ownerRef{kind: kind, id: id}
}

// Count returns the number of tiles currently owned by anyone; used by
// tests asserting conservation across conquest (spec.md §8).
func (t *TerritoryIndex) Count() int {
	return len(t.owner)
}
