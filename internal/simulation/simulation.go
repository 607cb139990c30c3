// Package simulation assembles the components built across the rest of
// this module — PRNG, WorldGen, entities, civilization behavior, warfare,
// AI, and the event log — into the single tick loop spec.md §4.8
// describes, with the phase ordering and reverse-index visitation §5
// requires.
package simulation

import (
	"planetsim/internal/ai"
	"planetsim/internal/civilization"
	"planetsim/internal/entities"
	"planetsim/internal/eventlog"
	"planetsim/internal/prng"
	"planetsim/internal/simerr"
	"planetsim/internal/warfare"
	"planetsim/internal/worldgen/geography"
	"planetsim/internal/worldgen/orchestrator"
	"planetsim/internal/worldgen/tileindex"
)

// tickIntervalsMs are the five discrete speeds from spec.md §4.8: paused,
// then four increasingly fast tick rates.
var tickIntervalsMs = [5]int64{0, 2000, 600, 200, 50} // index 0 means "never ticks"

const minInitialTribes = 10
const maxInitialTribes = 16
const placementAttemptsPerTribe = 100

// Stats are the monotone counters spec.md §4.8 requires on Simulation.
type Stats struct {
	TotalDeaths        int
	TotalWars          int
	TotalCivilizations int
}

// State is the read view returned by GetState (spec.md §6).
type State struct {
	Year            int
	Tribes          []*entities.Tribe
	Countries       []*entities.Country
	TechLevel       int
	Wars            []*warfare.War
	TotalPopulation int
}

// Simulation owns every piece of mutable state: year, tribes, countries,
// the PRNG, WorldGen outputs, WarManager, AI, and the EventLog (spec.md
// §4.8, §9 "consolidate into Simulation-owned fields; no process-wide
// singletons").
type Simulation struct {
	Seed      uint32
	Year      int
	TechLevel int

	stream *prng.Stream

	World *geography.World
	Tiles []tileindex.Tile

	Territories *entities.TerritoryIndex
	ids         *entities.IDAllocator

	Tribes    []*entities.Tribe
	Countries []*entities.Country

	Wars *warfare.Manager
	AI   *ai.Manager
	Log  *eventlog.Log

	Stats Stats

	speed          int
	lastTickAtMs   int64
	cultureCounter int
}

// New runs WorldGen for seed and initializes a Simulation on top of it
// (spec.md §4.8: "Initialization: spawn int(10..16) tribes at habitable
// tiles"). Returns simerr.InvalidSeed if the seed can't place the minimum
// of 10 tribes within budget; per spec.md §7 this implementation raises
// to the caller rather than re-seeding transparently.
func New(seed uint32) (*Simulation, error) {
	gen := orchestrator.New(seed)
	gen.Run()

	s := &Simulation{
		Seed:        seed,
		stream:      gen.Stream(),
		World:       gen.World(),
		Tiles:       gen.Tiles(),
		Territories: entities.NewTerritoryIndex(),
		ids:         entities.NewIDAllocator(),
		Wars:        warfare.NewManager(),
		AI:          ai.NewManager(),
		Log:         eventlog.New(),
	}

	if err := s.initialize(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewForRestore runs WorldGen for seed but skips spawning the initial
// tribes, for callers (internal/persistence) that are about to replace
// Tribes/Countries/Territories wholesale from a loaded snapshot.
func NewForRestore(seed uint32) *Simulation {
	gen := orchestrator.New(seed)
	gen.Run()

	return &Simulation{
		Seed:        seed,
		stream:      gen.Stream(),
		World:       gen.World(),
		Tiles:       gen.Tiles(),
		Territories: entities.NewTerritoryIndex(),
		ids:         entities.NewIDAllocator(),
		Wars:        warfare.NewManager(),
		AI:          ai.NewManager(),
		Log:         eventlog.New(),
	}
}

// ReplaceEntities installs a restored tribe/country list and reclaims the
// id allocator and territory index around them, used by
// internal/persistence after it has validated a loaded Snapshot.
func (s *Simulation) ReplaceEntities(tribes []*entities.Tribe, countries []*entities.Country, year, techLevel int, stats Stats) {
	s.Tribes = tribes
	s.Countries = countries
	s.Year = year
	s.TechLevel = techLevel
	s.Stats = stats

	s.Territories = entities.NewTerritoryIndex()
	var maxID entities.ID
	for _, t := range tribes {
		for _, p := range t.Territories {
			s.Territories.Claim(p, entities.OwnerTribe, t.ID)
		}
		if t.ID > maxID {
			maxID = t.ID
		}
		if t.Leader.ID > maxID {
			maxID = t.Leader.ID
		}
	}
	for _, c := range countries {
		for _, p := range c.Territories {
			s.Territories.Claim(p, entities.OwnerCountry, c.ID)
		}
		if c.ID > maxID {
			maxID = c.ID
		}
		if c.Leader.ID > maxID {
			maxID = c.Leader.ID
		}
	}
	s.ids = entities.NewIDAllocator()
	for i := entities.ID(0); i < maxID; i++ {
		s.ids.Next()
	}
}

func (s *Simulation) initialize() error {
	target := s.stream.Int(minInitialTribes, maxInitialTribes)

	for len(s.Tribes) < target {
		placed := false
		for attempt := 0; attempt < placementAttemptsPerTribe; attempt++ {
			x := s.stream.Int(0, tileindex.TileW-1)
			y := s.stream.Int(0, tileindex.TileH-1)
			tile := tileindex.At(s.Tiles, x, y)
			p := entities.Point{X: x, Y: y}

			if !tile.IsLand || tile.Biome == tileindex.BiomeIce || tile.Biome == tileindex.BiomeAlpine {
				continue
			}
			if !s.Territories.IsFree(p) {
				continue
			}

			// The tribe claims the next id before its leader does, so the
			// first N ids allocated by a fresh Simulation are exactly the
			// N initial tribes' ids, in order (spec.md §8 scenario 1:
			// "ids are tribe_1..tribe_16").
			id := s.ids.Next()
			culture := s.nextCultureName()
			tribe := &entities.Tribe{
				ID:          id,
				Culture:     culture,
				Color:       randomColor(s.stream),
				X:           x,
				Y:           y,
				Population:  s.stream.Int(20, 60),
				Territories: []entities.Point{p},
			}
			s.Territories.Claim(p, entities.OwnerTribe, id)
			s.Tribes = append(s.Tribes, tribe)
			s.Log.Emit(eventlog.Event{
				Year: 0, Message: entities.TribeName(id) + " emerges",
				Location: &eventlog.Location{X: x, Y: y}, Type: eventlog.TribeFormed,
			})
			placed = true
			break
		}
		if !placed {
			break
		}
	}

	if len(s.Tribes) < minInitialTribes {
		return simerr.InvalidSeed("placed only a handful of tribes within the rejection-sampling budget")
	}

	for _, tribe := range s.Tribes {
		tribe.Leader = entities.NewLeader(s.ids.Next(), tribe.Culture+" Elder", s.stream)
	}
	return nil
}

var cultureNames = []string{
	"Azuri", "Kael", "Vesh", "Orrin", "Tamu", "Lysk", "Drova", "Minet",
	"Korrin", "Shael", "Brannu", "Ithra", "Wovek", "Quillon", "Serath", "Morai",
}

func (s *Simulation) nextCultureName() string {
	name := cultureNames[s.cultureCounter%len(cultureNames)]
	s.cultureCounter++
	return name
}

func randomColor(s *prng.Stream) string {
	const hex = "0123456789abcdef"
	b := make([]byte, 6)
	for i := range b {
		b[i] = hex[s.Int(0, 15)]
	}
	return "#" + string(b)
}

// SetSpeed sets the discrete tick speed (spec.md §4.8: {0,1,2,3,4}).
func (s *Simulation) SetSpeed(speed int) {
	if speed < 0 {
		speed = 0
	}
	if speed > 4 {
		speed = 4
	}
	s.speed = speed
}

// ShouldTick reports whether the driver should call Tick, given the
// current wall-clock time in milliseconds (spec.md §6). Speed 0 never
// ticks.
func (s *Simulation) ShouldTick(nowMs int64) bool {
	if s.speed == 0 {
		return false
	}
	return nowMs-s.lastTickAtMs >= tickIntervalsMs[s.speed]
}

// NoteTick records that a tick just ran at nowMs, for the next ShouldTick
// call.
func (s *Simulation) NoteTick(nowMs int64) {
	s.lastTickAtMs = nowMs
}

// Tick advances the simulation by one year, in the mandatory order from
// spec.md §4.8/§5: tribes, then countries, then wars, then AI, then the
// every-100-years tech check. The tick is atomic: it runs to completion
// before returning.
func (s *Simulation) Tick() {
	s.Year++
	s.tickTribes()
	s.tickCountries()
	s.tickWars()
	s.tickAI()
	if s.Year%100 == 0 {
		s.tickTechCheck()
	}
}

func (s *Simulation) tickTribes() {
	n := len(s.Tribes)
	for i := n - 1; i >= 0; i-- {
		t := s.Tribes[i]
		result := civilization.TickTribe(t, s.Tribes, len(s.Tribes), s.Tiles, s.Territories, s.ids, s.Log, s.Year, s.stream)

		switch {
		case result.Dead:
			s.Territories.ReleaseAll(t.Territories)
			s.Tribes = append(s.Tribes[:i], s.Tribes[i+1:]...)
			s.Stats.TotalDeaths++
		case result.ConvertToCountry:
			country := entities.FromTribe(s.ids.Next(), t)
			civilization.EnsureCapitalCity(country)
			for _, p := range country.Territories {
				s.Territories.TransferOne(p, entities.OwnerCountry, country.ID)
			}
			s.Countries = append(s.Countries, country)
			s.Tribes = append(s.Tribes[:i], s.Tribes[i+1:]...)
			s.Stats.TotalCivilizations++
			s.Log.Emit(eventlog.Event{
				Year: s.Year, Message: country.Name + " is founded",
				Location: &eventlog.Location{X: country.CapitalX, Y: country.CapitalY},
				Type:     eventlog.CivilizationFormed,
			})
		default:
			if result.Split != nil {
				s.Tribes = append(s.Tribes, result.Split)
			}
		}
	}
}

func (s *Simulation) tickCountries() {
	byID := s.countriesByID()
	n := len(s.Countries)
	for i := n - 1; i >= 0; i-- {
		c := s.Countries[i]
		result := civilization.TickCountry(c, byID, s.Tiles, s.Territories, s.Wars, s.ids, s.Log, s.Year, s.stream)
		if result.Dead {
			s.Territories.ReleaseAll(c.Territories)
			s.Countries = append(s.Countries[:i], s.Countries[i+1:]...)
			delete(byID, c.ID)
			// Drop the collapsed country from every surviving ally list, so
			// saved state never names an unknown ally.
			for _, other := range s.Countries {
				for j, id := range other.Allies {
					if id == c.ID {
						other.Allies = append(other.Allies[:j:j], other.Allies[j+1:]...)
						break
					}
				}
			}
			s.Log.Emit(eventlog.Event{Year: s.Year, Message: c.Name + " collapses", Type: eventlog.Collapse})
		}
	}
}

func (s *Simulation) tickWars() {
	byID := s.countriesByID()
	s.Wars.Tick(byID, s.Territories, s.Tiles, s.Log, s.Year, s.stream)
	s.Stats.TotalWars = s.Wars.Started()
}

func (s *Simulation) tickAI() {
	byID := s.countriesByID()
	for _, c := range s.Countries {
		if c.Age%5 == 0 {
			ai.RunCountry(s.AI, c, byID, s.Territories, s.Tiles, s.Wars, s.Log, s.Year, s.stream)
		}
	}
	s.AI.DecayTension()
}

func (s *Simulation) tickTechCheck() {
	totalPop := 0
	for _, t := range s.Tribes {
		totalPop += t.Population
	}
	for _, c := range s.Countries {
		totalPop += c.Population
	}

	score := float64(totalPop)/10000 + 10*float64(len(s.Countries)) + 5*float64(s.Stats.TotalWars)
	if score > float64(s.TechLevel)*1000 && s.TechLevel < 10 && s.stream.Bool(0.1) {
		s.TechLevel++
		for _, c := range s.Countries {
			c.TechLevel = s.TechLevel
		}
		s.Log.Emit(eventlog.Event{Year: s.Year, Message: "global technology advances", Type: eventlog.TechAdvancement})
	}
}

func (s *Simulation) countriesByID() map[entities.ID]*entities.Country {
	out := make(map[entities.ID]*entities.Country, len(s.Countries))
	for _, c := range s.Countries {
		out[c.ID] = c
	}
	return out
}

// GetState returns the external read view from spec.md §6.
func (s *Simulation) GetState() State {
	totalPop := 0
	for _, t := range s.Tribes {
		totalPop += t.Population
	}
	for _, c := range s.Countries {
		totalPop += c.Population
	}
	return State{
		Year:            s.Year,
		Tribes:          s.Tribes,
		Countries:       s.Countries,
		TechLevel:       s.TechLevel,
		Wars:            s.Wars.Active(),
		TotalPopulation: totalPop,
	}
}
