package entities

import "planetsim/internal/prng"

// Traits are the six axes spec.md §3 assigns every Leader, each in [0,1].
type Traits struct {
	Aggression  float64
	Caution     float64
	Diplomacy   float64
	Ambition    float64
	Freedom     float64
	Rationality float64
}

// Leader governs a Tribe or Country.
type Leader struct {
	ID           ID
	Name         string
	Age          int
	YearsInPower int
	Traits       Traits
}

// NewLeader produces a leader with fully random traits, used at tribe
// creation and whenever a revolutionary takes power.
func NewLeader(id ID, name string, s *prng.Stream) Leader {
	return Leader{
		ID:   id,
		Name: name,
		Traits: Traits{
			Aggression:  s.Next(),
			Caution:     s.Next(),
			Diplomacy:   s.Next(),
			Ambition:    s.Next(),
			Freedom:     s.Next(),
			Rationality: s.Next(),
		},
	}
}

// Succeed produces an heir: each trait axis moves by up to ±0.15 from the
// predecessor's value, clamped to [0,1] (spec.md §3). If revolutionary is
// true (unrest exceeded 70 at the moment of death) the heir's traits are
// fully resampled instead, per the same section.
func (l Leader) Succeed(id ID, name string, revolutionary bool, s *prng.Stream) Leader {
	if revolutionary {
		return NewLeader(id, name, s)
	}
	return Leader{
		ID:   id,
		Name: name,
		Traits: Traits{
			Aggression:  driftTrait(l.Traits.Aggression, s),
			Caution:     driftTrait(l.Traits.Caution, s),
			Diplomacy:   driftTrait(l.Traits.Diplomacy, s),
			Ambition:    driftTrait(l.Traits.Ambition, s),
			Freedom:     driftTrait(l.Traits.Freedom, s),
			Rationality: driftTrait(l.Traits.Rationality, s),
		},
	}
}

func driftTrait(v float64, s *prng.Stream) float64 {
	delta := s.Range(-0.15, 0.15)
	return clamp01(v + delta)
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
