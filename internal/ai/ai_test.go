package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"planetsim/internal/entities"
	"planetsim/internal/eventlog"
	"planetsim/internal/prng"
	"planetsim/internal/warfare"
	"planetsim/internal/worldgen/tileindex"
)

func habitableTiles() []tileindex.Tile {
	tiles := make([]tileindex.Tile, tileindex.TileW*tileindex.TileH)
	for i := range tiles {
		tiles[i].IsLand = true
		tiles[i].Biome = tileindex.BiomeGrassland
		tiles[i].Fertility = 0.6
	}
	return tiles
}

func TestGlobalTensionDecaysButNotBelowZero(t *testing.T) {
	m := NewManager()
	m.GlobalTension = 0.005
	m.DecayTension()
	assert.Equal(t, 0.0, m.GlobalTension)
}

func TestRunCountryExpandsIntoFreeAdjacentLand(t *testing.T) {
	tiles := habitableTiles()
	territories := entities.NewTerritoryIndex()
	c := &entities.Country{
		ID:          1,
		Name:        "Test",
		Territories: []entities.Point{{10, 10}},
		Leader:      entities.Leader{Traits: entities.Traits{Ambition: 1.0}},
	}
	territories.Claim(entities.Point{10, 10}, entities.OwnerCountry, c.ID)
	countries := map[entities.ID]*entities.Country{1: c}
	log := eventlog.New()
	wars := warfare.NewManager()
	m := NewManager()

	s := prng.New(1)
	for i := 0; i < 50 && len(c.Territories) < 2; i++ {
		RunCountry(m, c, countries, territories, tiles, wars, log, i, s)
	}

	assert.GreaterOrEqual(t, len(c.Territories), 2)
}

func TestBorderingCountriesFindsNeighborAcrossSharedEdge(t *testing.T) {
	territories := entities.NewTerritoryIndex()
	a := &entities.Country{ID: 1, Territories: []entities.Point{{5, 5}}}
	b := &entities.Country{ID: 2, Territories: []entities.Point{{6, 5}}}
	territories.Claim(entities.Point{5, 5}, entities.OwnerCountry, a.ID)
	territories.Claim(entities.Point{6, 5}, entities.OwnerCountry, b.ID)

	neighbors := borderingCountries(a, territories)
	assert.True(t, neighbors[b.ID])
}
