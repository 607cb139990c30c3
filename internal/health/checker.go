package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/nats-io/nats.go"
)

// Pinger is satisfied by anything whose reachability can be probed with a
// context-bound round trip — a redis client, a postgres pool, a run registry.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NATSConn narrows *nats.Conn to the one method the checker needs.
type NATSConn interface {
	Status() nats.Status
}

// HealthChecker reports whether a planet-sim server and its dependencies
// (the snapshot store, the snapshot cache, the event broadcast bus) are
// reachable. Each collaborator is optional; a nil one is skipped.
type HealthChecker struct {
	store Pinger
	cache Pinger
	nats  NATSConn
}

// NewHealthChecker creates a new HealthChecker.
func NewHealthChecker(store, cache Pinger, nc NATSConn) *HealthChecker {
	return &HealthChecker{
		store: store,
		cache: cache,
		nats:  nc,
	}
}

// Check performs the health checks.
func (hc *HealthChecker) Check(ctx context.Context) map[string]string {
	status := make(map[string]string)
	status["status"] = "ok"

	if hc.store != nil {
		hc.pingInto(ctx, hc.store, status, "snapshot_store")
	}
	if hc.cache != nil {
		hc.pingInto(ctx, hc.cache, status, "snapshot_cache")
	}

	if hc.nats != nil {
		if hc.nats.Status() != nats.CONNECTED {
			status["broadcast"] = "unhealthy"
			status["status"] = "degraded"
		} else {
			status["broadcast"] = "healthy"
		}
	}

	return status
}

func (hc *HealthChecker) pingInto(ctx context.Context, p Pinger, status map[string]string, key string) {
	ctx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	if err := p.Ping(ctx); err != nil {
		status[key] = "unhealthy"
		status["status"] = "degraded"
	} else {
		status[key] = "healthy"
	}
}

// Handler returns an HTTP handler for the health check endpoint.
func (hc *HealthChecker) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := hc.Check(r.Context())

		w.Header().Set("Content-Type", "application/json")

		statusCode := http.StatusOK
		if status["status"] != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		w.WriteHeader(statusCode)
		json.NewEncoder(w).Encode(status)
	}
}
