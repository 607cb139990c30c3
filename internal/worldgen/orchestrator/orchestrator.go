// Package orchestrator sequences the world-generation pipeline
// (internal/worldgen/geography → internal/worldgen/climate →
// internal/worldgen/tileindex) and exposes it as a pull-based lazy sequence
// of (fraction, label) progress pairs, per spec.md §9's replacement for the
// source's coroutine-style progress callbacks. The generated World and
// Tile grid are only reachable once every phase has been pulled through —
// no observer can see a half-built field.
package orchestrator

import (
	"fmt"

	"planetsim/internal/prng"
	"planetsim/internal/worldgen/climate"
	"planetsim/internal/worldgen/geography"
	"planetsim/internal/worldgen/tileindex"
)

// Progress is one step of the pull-based generation sequence.
type Progress struct {
	Fraction float64 // cumulative, in [0, 1]
	Label    string
}

type phaseFunc func(w *geography.World, s *prng.Stream)

// Generator drives WorldGen one phase at a time. Call Next repeatedly until
// it returns done=true, then read World, Tiles and Stream.
type Generator struct {
	seed     uint32
	stream   *prng.Stream
	world    *geography.World
	phases   []namedPhase
	cursor   int
	finished bool
	tiles    []tileindex.Tile
}

type namedPhase struct {
	label string
	run   phaseFunc
}

// New builds a Generator for the given seed. Nothing runs until Next is
// called.
func New(seed uint32) *Generator {
	return &Generator{
		seed:   seed,
		stream: prng.New(seed),
		world:  geography.NewWorld(seed),
		phases: []namedPhase{
			{"elevation", geography.GenerateElevation},
			{"temperature", climate.ApplyTemperature},
			{"moisture", climate.ApplyMoisture},
			{"rivers", climate.GenerateRivers},
		},
	}
}

// Next runs the next phase and reports progress. Returns done=true once
// every phase (including the final tile-aggregation step) has run; after
// that, World and Tiles are safe to call.
func (g *Generator) Next() (Progress, bool) {
	if g.finished {
		return Progress{Fraction: 1, Label: "done"}, true
	}

	total := len(g.phases) + 1 // +1 for tile aggregation

	if g.cursor < len(g.phases) {
		p := g.phases[g.cursor]
		p.run(g.world, g.stream)
		g.cursor++
		return Progress{
			Fraction: float64(g.cursor) / float64(total),
			Label:    p.label,
		}, false
	}

	// Final step: aggregate the coarse tile grid.
	g.tiles = tileindex.Build(g.world)
	g.finished = true
	return Progress{Fraction: 1, Label: "tiles"}, true
}

// Run drains the generator synchronously, ignoring progress. Convenience
// for callers (tests, the CLI driver on a small seed) that don't need
// incremental progress reporting.
func (g *Generator) Run() {
	for {
		if _, done := g.Next(); done {
			return
		}
	}
}

// World returns the generated World. Panics if generation is not finished,
// since a half-built World must never be observed (spec.md §5).
func (g *Generator) World() *geography.World {
	g.mustBeFinished()
	return g.world
}

// Tiles returns the generated coarse tile grid. Panics if generation is not
// finished.
func (g *Generator) Tiles() []tileindex.Tile {
	g.mustBeFinished()
	return g.tiles
}

// Stream returns the PRNG stream WorldGen drew from. Once generation is
// finished, Simulation continues pulling from this same stream for the
// tick loop, per spec.md §5: "The PRNG is a single logical stream used by
// WorldGen and by the tick."
func (g *Generator) Stream() *prng.Stream {
	g.mustBeFinished()
	return g.stream
}

func (g *Generator) mustBeFinished() {
	if !g.finished {
		panic(fmt.Sprintf("orchestrator: World/Tiles accessed before generation finished (seed %d)", g.seed))
	}
}
