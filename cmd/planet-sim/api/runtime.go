package api

import (
	"sync"

	"planetsim/internal/simulation"
)

// Runtime holds the single actively-ticking simulation for this server
// process behind a RWMutex, so the background tick goroutine and HTTP
// handlers never race and a Load can swap the whole simulation in place.
type Runtime struct {
	mu  sync.RWMutex
	sim *simulation.Simulation
}

// NewRuntime wraps an initial simulation.
func NewRuntime(sim *simulation.Simulation) *Runtime {
	return &Runtime{sim: sim}
}

// Get returns the current simulation pointer. It only guards the pointer
// read itself: Replace can still swap it out, and WithWrite can still
// mutate the Simulation it points to, the instant this call returns. Use it
// only where the returned pointer's identity is all that matters (tests);
// any read of the Simulation's fields must go
// through WithRead instead.
func (rt *Runtime) Get() *simulation.Simulation {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return rt.sim
}

// WithRead runs fn with shared access to the simulation, held for fn's
// entire duration so it can safely read tribes/countries/events without
// racing a concurrent WithWrite (the tick loop's Tick/SetSpeed).
func (rt *Runtime) WithRead(fn func(sim *simulation.Simulation)) {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	fn(rt.sim)
}

// WithWrite runs fn with exclusive access to the simulation, for in-place
// mutation (Tick, SetSpeed).
func (rt *Runtime) WithWrite(fn func(sim *simulation.Simulation)) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	fn(rt.sim)
}

// Replace swaps in a newly restored simulation.
func (rt *Runtime) Replace(sim *simulation.Simulation) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.sim = sim
}

// SetSpeed satisfies broadcast.SpeedSetter, letting a NATS speed command
// reach the runtime the same way an HTTP POST to /api/speed does.
func (rt *Runtime) SetSpeed(level int) {
	rt.WithWrite(func(sim *simulation.Simulation) {
		sim.SetSpeed(level)
	})
}
