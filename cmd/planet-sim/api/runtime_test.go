package api

import (
	"testing"

	"github.com/stretchr/testify/require"

	"planetsim/internal/simulation"
)

func newTestSimulation(t *testing.T) *simulation.Simulation {
	t.Helper()
	sim, err := simulation.New(1)
	require.NoError(t, err)
	return sim
}

func TestRuntimeGetReturnsCurrentSimulation(t *testing.T) {
	sim := newTestSimulation(t)
	rt := NewRuntime(sim)
	require.Same(t, sim, rt.Get())
}

func TestRuntimeReplaceSwapsSimulation(t *testing.T) {
	rt := NewRuntime(newTestSimulation(t))
	next := newTestSimulation(t)

	rt.Replace(next)
	require.Same(t, next, rt.Get())
}

func TestRuntimeSetSpeedAppliesUnderLock(t *testing.T) {
	rt := NewRuntime(newTestSimulation(t))

	rt.SetSpeed(0)
	require.False(t, rt.Get().ShouldTick(10_000))

	rt.SetSpeed(1)
	require.True(t, rt.Get().ShouldTick(10_000))
}

func TestRuntimeWithReadSeesCurrentSimulation(t *testing.T) {
	sim := newTestSimulation(t)
	rt := NewRuntime(sim)

	var seen *simulation.Simulation
	rt.WithRead(func(s *simulation.Simulation) { seen = s })

	require.Same(t, sim, seen)
}
