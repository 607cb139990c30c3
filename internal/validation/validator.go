// Package validation backs the SaveCorrupt and LogicAssertion policies
// from spec.md §7: invariant checks on loaded state (ValidateSnapshot, used
// by internal/persistence), and ValidatePopulations, which reports
// LogicAssertion. internal/simulation does not call this package.
package validation

import (
	"fmt"

	"planetsim/internal/entities"
	"planetsim/internal/simerr"
)

// Validator checks the invariants spec.md §3 and §7 require.
type Validator struct{}

// New creates a new validator instance.
func New() *Validator {
	return &Validator{}
}

// ValidateOwnershipDisjoint checks that no tile is claimed by more than one
// tribe or country (spec.md §3: ownership disjointness; §8: testable
// property of the same name).
func (v *Validator) ValidateOwnershipDisjoint(tribes []*entities.Tribe, countries []*entities.Country) error {
	seen := make(map[entities.Point]bool)
	for _, t := range tribes {
		for _, p := range t.Territories {
			if seen[p] {
				return simerr.SaveCorrupt(fmt.Sprintf("tile (%d,%d) owned by more than one entity", p.X, p.Y))
			}
			seen[p] = true
		}
	}
	for _, c := range countries {
		for _, p := range c.Territories {
			if seen[p] {
				return simerr.SaveCorrupt(fmt.Sprintf("tile (%d,%d) owned by more than one entity", p.X, p.Y))
			}
			seen[p] = true
		}
	}
	return nil
}

// ValidatePopulations checks that no tribe or country carries a negative
// population (spec.md §7: LogicAssertion covers exactly this class of
// bug).
func (v *Validator) ValidatePopulations(tribes []*entities.Tribe, countries []*entities.Country) error {
	for _, t := range tribes {
		if t.Population < 0 {
			return simerr.LogicAssertion(fmt.Sprintf("%s has negative population %d", entities.TribeName(t.ID), t.Population))
		}
	}
	for _, c := range countries {
		if c.Population < 0 {
			return simerr.LogicAssertion(fmt.Sprintf("country %q has negative population %d", c.Name, c.Population))
		}
	}
	return nil
}

// ValidateKnownAllyEnemyIDs checks that every id listed in a country's
// allies/enemies refers to a country actually present, catching
// references to unknown ids on load (spec.md §7's SaveCorrupt policy).
func (v *Validator) ValidateKnownAllyEnemyIDs(countries []*entities.Country) error {
	known := make(map[entities.ID]bool, len(countries))
	for _, c := range countries {
		known[c.ID] = true
	}
	for _, c := range countries {
		for _, id := range c.Allies {
			if !known[id] {
				return simerr.SaveCorrupt(fmt.Sprintf("country %q references unknown ally id %d", c.Name, id))
			}
		}
		for _, id := range c.Enemies {
			if !known[id] {
				return simerr.SaveCorrupt(fmt.Sprintf("country %q references unknown enemy id %d", c.Name, id))
			}
		}
	}
	return nil
}

// ValidateSnapshot runs every load-time check spec.md §7 requires before a
// save file is accepted.
func (v *Validator) ValidateSnapshot(tribes []*entities.Tribe, countries []*entities.Country) error {
	if err := v.ValidateOwnershipDisjoint(tribes, countries); err != nil {
		return err
	}
	if err := v.ValidatePopulations(tribes, countries); err != nil {
		return simerr.SaveCorrupt(err.Error())
	}
	return v.ValidateKnownAllyEnemyIDs(countries)
}
