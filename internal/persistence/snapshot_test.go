package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planetsim/internal/simulation"
)

func TestBuildMarshalUnmarshalRoundTrip(t *testing.T) {
	sim, err := simulation.New(1)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		sim.Tick()
	}

	snap := Build(sim, 1_700_000_000_000)
	raw, err := Marshal(snap)
	require.NoError(t, err)

	parsed, err := Unmarshal(raw)
	require.NoError(t, err)

	assert.Equal(t, snap.Seed, parsed.Seed)
	assert.Equal(t, snap.Year, parsed.Year)
	assert.Equal(t, len(snap.Tribes)+len(snap.Countries), len(parsed.Tribes)+len(parsed.Countries))
}

func TestLoadRejectsDoubleOwnedTile(t *testing.T) {
	snap := Snapshot{
		Version: 1,
		Tribes: []TribeJSON{
			{ID: 1, Territories: []PointJSON{{X: 1, Y: 1}}},
			{ID: 2, Territories: []PointJSON{{X: 1, Y: 1}}},
		},
	}
	_, err := Load(snap)
	assert.Error(t, err)
}

func TestLoadRebuildsPlayableSimulation(t *testing.T) {
	sim, err := simulation.New(1)
	require.NoError(t, err)
	for i := 0; i < 1234; i++ {
		sim.Tick()
	}

	snap := Build(sim, 1_700_000_000_000)
	loaded, err := Load(snap)
	require.NoError(t, err)

	assert.Equal(t, sim.Year, loaded.Year)
	assert.Equal(t, len(sim.Tribes), len(loaded.Tribes))
	assert.Equal(t, len(sim.Countries), len(loaded.Countries))

	loaded.Tick()
	assert.Equal(t, sim.Year+1, loaded.Year)
}

func TestUnmarshalRejectsGarbage(t *testing.T) {
	_, err := Unmarshal([]byte("not json"))
	assert.Error(t, err)
}
