package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all the prometheus collectors exposed by a simulation run.
type Metrics struct {
	TickDuration      *prometheus.HistogramVec
	TickErrors        *prometheus.CounterVec
	SnapshotCacheHits *prometheus.GaugeVec
	SimulationFPS     *prometheus.GaugeVec
	EventAppendRate   prometheus.Counter
	ActiveConnections *prometheus.GaugeVec
	Population        *prometheus.GaugeVec
	WarsStarted       prometheus.Counter
	TechLevel         *prometheus.GaugeVec
}

// NewMetrics initializes and returns a new Metrics struct.
func NewMetrics() *Metrics {
	return &Metrics{
		TickDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "planetsim_tick_duration_seconds",
			Help:    "Wall-clock time to process one simulation tick",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}, []string{"run_id"}),
		TickErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "planetsim_tick_errors_total",
			Help: "Total number of errors raised while ticking a run",
		}, []string{"run_id", "error_type"}),
		SnapshotCacheHits: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "planetsim_snapshot_cache_hit_rate",
			Help: "Snapshot cache hit rate (0.0-1.0)",
		}, []string{"run_id"}),
		SimulationFPS: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "planetsim_ticks_per_second",
			Help: "Simulation ticks processed per second",
		}, []string{"run_id"}),
		EventAppendRate: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "planetsim_event_log_append_total",
			Help: "Total number of events appended to the event log",
		}),
		ActiveConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "planetsim_active_connections",
			Help: "Number of active connections observing a run",
		}, []string{"type"}), // websocket, sse
		Population: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "planetsim_population_total",
			Help: "Total population across tribes and countries",
		}, []string{"run_id"}),
		WarsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "planetsim_wars_started_total",
			Help: "Total number of wars declared",
		}),
		TechLevel: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "planetsim_tech_level",
			Help: "Current global tech level",
		}, []string{"run_id"}),
	}
}

// Register registers all metrics with the provided registry.
func (m *Metrics) Register(reg prometheus.Registerer) {
	reg.MustRegister(
		m.TickDuration,
		m.TickErrors,
		m.SnapshotCacheHits,
		m.SimulationFPS,
		m.EventAppendRate,
		m.ActiveConnections,
		m.Population,
		m.WarsStarted,
		m.TechLevel,
	)
}
