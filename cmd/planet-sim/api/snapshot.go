package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"planetsim/internal/persistence"
	"planetsim/internal/simulation"
)

// SnapshotWriter is satisfied by cache.SnapshotCache; narrowed to the one
// method this handler needs so tests can substitute a recording fake.
type SnapshotWriter interface {
	Set(ctx context.Context, runID string, value interface{}) error
}

// SnapshotStore is satisfied by persistence.PostgresStore; narrowed to the
// one method this handler needs so tests can substitute a recording fake.
type SnapshotStore interface {
	Save(ctx context.Context, runID uuid.UUID, snap persistence.Snapshot) error
}

const currentRunCacheKey = "current"

// SnapshotHandler serializes and restores a running simulation's state.
type SnapshotHandler struct {
	rt    *Runtime
	cache SnapshotWriter
	store SnapshotStore
	runID uuid.UUID
}

// NewSnapshotHandler builds a SnapshotHandler. cache and store may each be
// nil when that collaborator isn't configured.
func NewSnapshotHandler(rt *Runtime, cache SnapshotWriter, store SnapshotStore, runID uuid.UUID) *SnapshotHandler {
	return &SnapshotHandler{rt: rt, cache: cache, store: store, runID: runID}
}

// Save returns a JSON snapshot of the simulation's current state, and
// best-effort populates the snapshot cache and durable store for other readers.
func (h *SnapshotHandler) Save(w http.ResponseWriter, r *http.Request) {
	var snap persistence.Snapshot
	now := time.Now().UnixMilli()
	h.rt.WithRead(func(sim *simulation.Simulation) { snap = persistence.Build(sim, now) })

	raw, err := persistence.Marshal(snap)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.cache != nil {
		go func() { _ = h.cache.Set(context.Background(), currentRunCacheKey, snap) }()
	}
	if h.store != nil {
		go func() { _ = h.store.Save(context.Background(), h.runID, snap) }()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

// Load replaces the running simulation with one restored from a posted snapshot.
func (h *SnapshotHandler) Load(w http.ResponseWriter, r *http.Request) {
	var snap persistence.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid snapshot body"})
		return
	}

	restored, err := persistence.Load(snap)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}

	h.rt.Replace(restored)
	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded"})
}
