package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"planetsim/internal/eventlog"
	"planetsim/internal/simulation"
)

// StateHandler exposes a running simulation's current state and event log
// over HTTP.
type StateHandler struct {
	rt *Runtime
}

// NewStateHandler builds a StateHandler over the server's Runtime.
func NewStateHandler(rt *Runtime) *StateHandler {
	return &StateHandler{rt: rt}
}

// GetState returns the simulation's current tribes, countries, and stats.
func (h *StateHandler) GetState(w http.ResponseWriter, r *http.Request) {
	var state simulation.State
	h.rt.WithRead(func(sim *simulation.Simulation) { state = sim.GetState() })
	writeJSON(w, http.StatusOK, state)
}

// eventsResponse wraps a page of the event log along with the cursor a
// client should pass back on its next poll.
type eventsResponse struct {
	Events []eventlog.Event `json:"events"`
	Cursor int              `json:"cursor"`
}

// GetEvents returns events appended since the "since" query cursor.
func (h *StateHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	since := 0
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid since cursor"})
			return
		}
		since = parsed
	}

	var events []eventlog.Event
	var cursor int
	h.rt.WithRead(func(sim *simulation.Simulation) { events, cursor = sim.Log.Since(since) })
	writeJSON(w, http.StatusOK, eventsResponse{Events: events, Cursor: cursor})
}

// speedRequest sets the tick speed: 0=paused .. 4=fastest.
type speedRequest struct {
	Speed int `json:"speed"`
}

// SetSpeed changes the simulation's tick speed.
func (h *StateHandler) SetSpeed(w http.ResponseWriter, r *http.Request) {
	var req speedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	h.rt.WithWrite(func(sim *simulation.Simulation) {
		sim.SetSpeed(req.Speed)
	})

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
