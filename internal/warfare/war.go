// Package warfare implements WarManager and War from spec.md §4.6: the
// combat-resolution formulas and the exhaustion-based termination that
// replaces the source's wall-clock war timer (spec.md §9 Open Questions).
package warfare

import (
	"fmt"

	"planetsim/internal/entities"
	"planetsim/internal/eventlog"
	"planetsim/internal/prng"
	"planetsim/internal/worldgen/tileindex"
)

// War owns references (by id, never by pointer — spec.md §9) to its two
// sides plus the exhaustion/casualty accumulators that drive termination.
type War struct {
	AttackerID entities.ID
	DefenderID entities.ID

	AttackerExhaustion float64
	DefenderExhaustion float64

	AttackerCasualties int
	DefenderCasualties int
}

// Manager advances every active war once per tick.
type Manager struct {
	wars    []*War
	started int
}

// NewManager builds an empty war manager.
func NewManager() *Manager {
	return &Manager{}
}

// Active returns the currently active wars.
func (m *Manager) Active() []*War {
	return m.wars
}

// Started returns the total number of wars ever declared, a monotone
// counter backing the totalWars stat (spec.md §4.8).
func (m *Manager) Started() int {
	return m.started
}

// DeclareWar starts a new War between attacker and defender, marking both
// countries as at war.
func (m *Manager) DeclareWar(attacker, defender *entities.Country) *War {
	attacker.AtWar = true
	defender.AtWar = true
	w := &War{AttackerID: attacker.ID, DefenderID: defender.ID}
	m.wars = append(m.wars, w)
	m.started++
	return w
}

func strength(c *entities.Country, isDefender bool) float64 {
	s := float64(c.Population) * (1 + 0.1*float64(c.TechLevel)) * (1 - c.Unrest/100)
	if isDefender {
		s *= 1.2 * (1 + 0.2*c.Leader.Traits.Caution)
	} else {
		s *= 1 + 0.2*c.Leader.Traits.Aggression
	}
	if s < 1 {
		s = 1
	}
	return s
}

// Tick advances every active war by one year, per the formulas in
// spec.md §4.6. countries is keyed by id; a war with a side missing from it
// (that country collapsed this tick) ends at once, with the remaining side
// named winner. It returns the wars that concluded this tick, already
// removed from Active().
func (m *Manager) Tick(countries map[entities.ID]*entities.Country, territories *entities.TerritoryIndex, tiles []tileindex.Tile, log *eventlog.Log, year int, s *prng.Stream) []*War {
	var ended []*War
	var remaining []*War

	for _, w := range m.wars {
		attacker := countries[w.AttackerID]
		defender := countries[w.DefenderID]
		if attacker == nil || defender == nil {
			// One side collapsed this tick (tickCountries runs before
			// tickWars). The war has no opponent left to resolve against;
			// clear AtWar on whichever side survives so it isn't stuck
			// permanently unable to declare or accept a new war.
			winnerID := w.DefenderID
			if attacker != nil {
				attacker.AtWar = false
				winnerID = attacker.ID
			}
			if defender != nil {
				defender.AtWar = false
			}
			log.Emit(eventlog.Event{
				Year:    year,
				Message: fmt.Sprintf("war ended: winner %d", winnerID),
				Type:    eventlog.WarEnded,
			})
			ended = append(ended, w)
			continue
		}

		sa := strength(attacker, false)
		sd := strength(defender, true)
		adv := sa / (sa + sd)

		r := s.Next()
		switch {
		case r < 0.6*adv:
			resolveAnnexation(attacker, defender, territories, tiles, log, year, s)
		case r > 0.7:
			// defender battle win: no territorial effect this tick.
		default:
			// stalemate.
		}

		lossA := int(float64(attacker.Population) * s.Range(0.001, 0.005))
		lossD := int(float64(defender.Population) * s.Range(0.001, 0.005))
		attacker.Population -= lossA
		defender.Population -= lossD
		w.AttackerCasualties += lossA
		w.DefenderCasualties += lossD

		w.AttackerExhaustion += 0.05
		w.DefenderExhaustion += 0.03

		if resolved, winner := terminationCheck(attacker, defender, w); resolved {
			finish(w, attacker, defender, winner, territories, log, year, s)
			ended = append(ended, w)
			continue
		}

		remaining = append(remaining, w)
	}

	m.wars = remaining
	return ended
}

// resolveAnnexation implements the single-tile annexation attempt on an
// attacker battle win (spec.md §4.6).
func resolveAnnexation(attacker, defender *entities.Country, territories *entities.TerritoryIndex, tiles []tileindex.Tile, log *eventlog.Log, year int, s *prng.Stream) {
	var candidates []entities.Point
	for _, at := range attacker.Territories {
		for _, n := range tileindex.Neighbors8(at.X, at.Y) {
			p := entities.Point{X: n.X, Y: n.Y}
			if defender.HasTerritory(p) {
				candidates = append(candidates, p)
			}
		}
	}
	if len(candidates) == 0 || !s.Bool(0.3) {
		return
	}

	target := prng.Choice(s, candidates)
	defender.RemoveTerritory(target)
	attacker.AddTerritory(target)
	territories.TransferOne(target, entities.OwnerCountry, attacker.ID)

	log.Emit(eventlog.Event{
		Year:     year,
		Message:  "territory conquered",
		Location: &eventlog.Location{X: target.X, Y: target.Y},
		Type:     eventlog.TerritoryConquered,
	})
}

type winner int

const (
	winnerNone winner = iota
	winnerAttacker
	winnerDefender
)

// terminationCheck evaluates the ordered conditions from spec.md §4.6.
func terminationCheck(attacker, defender *entities.Country, w *War) (bool, winner) {
	if defender.Population < 100 || len(defender.Territories) < 2 {
		return true, winnerAttacker
	}
	if attacker.Population < 200 {
		return true, winnerDefender
	}
	if w.AttackerExhaustion > 1.0 || w.DefenderExhaustion > 1.0 {
		if w.AttackerExhaustion <= w.DefenderExhaustion {
			return true, winnerAttacker
		}
		return true, winnerDefender
	}
	return false, winnerNone
}

func finish(w *War, attacker, defender *entities.Country, win winner, territories *entities.TerritoryIndex, log *eventlog.Log, year int, s *prng.Stream) {
	attacker.AtWar = false
	defender.AtWar = false

	winnerID := defender.ID
	if win == winnerAttacker {
		winnerID = attacker.ID

		n := int(0.3 * float64(len(defender.Territories)))
		if n > 3 {
			n = 3
		}
		for i := 0; i < n && len(defender.Territories) > 0; i++ {
			idx := s.Int(0, len(defender.Territories)-1)
			target := defender.Territories[idx]
			defender.RemoveTerritory(target)
			attacker.AddTerritory(target)
			territories.TransferOne(target, entities.OwnerCountry, attacker.ID)
		}
	}

	log.Emit(eventlog.Event{
		Year:    year,
		Message: fmt.Sprintf("war ended: winner %d", winnerID),
		Type:    eventlog.WarEnded,
	})
}
