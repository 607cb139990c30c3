package warfare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planetsim/internal/entities"
	"planetsim/internal/eventlog"
	"planetsim/internal/prng"
	"planetsim/internal/worldgen/tileindex"
)

func newAdjacentPair() (*entities.Country, *entities.Country, *entities.TerritoryIndex) {
	attacker := &entities.Country{
		ID:          1,
		Population:  10000,
		Territories: []entities.Point{{10, 10}},
		Leader:      entities.Leader{Traits: entities.Traits{Aggression: 1.0}},
	}
	defender := &entities.Country{
		ID:          2,
		Population:  100,
		Territories: []entities.Point{{11, 10}, {12, 10}, {13, 10}},
		Leader:      entities.Leader{Traits: entities.Traits{Caution: 0}},
	}
	idx := entities.NewTerritoryIndex()
	for _, p := range attacker.Territories {
		idx.Claim(p, entities.OwnerCountry, attacker.ID)
	}
	for _, p := range defender.Territories {
		idx.Claim(p, entities.OwnerCountry, defender.ID)
	}
	return attacker, defender, idx
}

func TestOverwhelmingAttackerEventuallyWinsWar(t *testing.T) {
	attacker, defender, idx := newAdjacentPair()
	tiles := make([]tileindex.Tile, tileindex.TileW*tileindex.TileH)
	log := eventlog.New()
	s := prng.New(1)

	m := NewManager()
	m.DeclareWar(attacker, defender)
	assert.True(t, attacker.AtWar)
	assert.True(t, defender.AtWar)

	countries := map[entities.ID]*entities.Country{1: attacker, 2: defender}

	var everEnded bool
	for year := 0; year < 100; year++ {
		if len(m.Active()) == 0 {
			break
		}
		ended := m.Tick(countries, idx, tiles, log, year, s)
		if len(ended) > 0 {
			everEnded = true
			break
		}
	}

	require.True(t, everEnded)
	assert.False(t, attacker.AtWar)
	assert.False(t, defender.AtWar)

	surface := log.Surface()
	var sawWarEnded bool
	for _, e := range surface {
		if e.Type == eventlog.WarEnded {
			sawWarEnded = true
			assert.Equal(t, "war ended: winner 1", e.Message)
		}
	}
	assert.True(t, sawWarEnded)
}

func TestTickEndsWarWhenOneSideIsAlreadyGone(t *testing.T) {
	attacker, defender, idx := newAdjacentPair()
	tiles := make([]tileindex.Tile, tileindex.TileW*tileindex.TileH)
	log := eventlog.New()
	s := prng.New(1)

	m := NewManager()
	m.DeclareWar(attacker, defender)
	require.Len(t, m.Active(), 1)

	// defender collapsed this tick, as tickCountries would remove it before
	// tickWars runs; it's simply absent from the countries map Tick sees.
	countries := map[entities.ID]*entities.Country{1: attacker}

	ended := m.Tick(countries, idx, tiles, log, 0, s)

	require.Len(t, ended, 1)
	assert.Empty(t, m.Active())
	assert.False(t, attacker.AtWar)

	var sawWarEnded bool
	for _, e := range log.Surface() {
		if e.Type == eventlog.WarEnded {
			sawWarEnded = true
		}
	}
	assert.True(t, sawWarEnded)
}

func TestStrengthClampsToAtLeastOne(t *testing.T) {
	c := &entities.Country{Population: 0, Unrest: 100}
	assert.Equal(t, 1.0, strength(c, false))
}
