package broadcast

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"planetsim/internal/eventlog"
)

// surfaceSubject is the NATS subject surface events are published under.
// Subscribers (dashboards, the web client) get a best-effort live feed;
// the event log itself remains the durable record.
const surfaceSubject = "planetsim.events.surface"

// wireEvent is the JSON shape published to subscribers.
type wireEvent struct {
	RunID   string            `json:"runId"`
	Year    int               `json:"year"`
	Type    eventlog.Category `json:"type"`
	Message string            `json:"message"`
	X       *int              `json:"x,omitempty"`
	Y       *int              `json:"y,omitempty"`
}

// natsConn is satisfied by *nats.Conn; narrowed to the one method used so
// tests can substitute a recording fake instead of a live NATS server.
type natsConn interface {
	Publish(subject string, data []byte) error
}

// Publisher fans simulation events out over NATS. Publishing is best-effort:
// a down or slow NATS connection must never block or fail a tick.
type Publisher struct {
	nc    natsConn
	runID string
}

// NewPublisher returns a Publisher bound to one simulation run.
func NewPublisher(nc natsConn, runID string) *Publisher {
	return &Publisher{nc: nc, runID: runID}
}

// Publish emits one event to the surface subject. Errors are logged, never
// returned — a broadcast failure is not a simulation failure.
func (p *Publisher) Publish(e eventlog.Event) {
	if p == nil || p.nc == nil {
		return
	}

	w := wireEvent{
		RunID:   p.runID,
		Year:    e.Year,
		Type:    e.Type,
		Message: e.Message,
	}
	if e.Location != nil {
		w.X = &e.Location.X
		w.Y = &e.Location.Y
	}

	data, err := json.Marshal(w)
	if err != nil {
		log.Error().Err(err).Msg("broadcast: failed to marshal event")
		return
	}

	if err := p.nc.Publish(subjectForRun(p.runID), data); err != nil {
		log.Error().Err(err).Str("run_id", p.runID).Msg("broadcast: publish failed")
	}
}

// PublishAll publishes each of events in order, e.g. the batch a caller read
// from the run's event log since its last cursor.
func (p *Publisher) PublishAll(events []eventlog.Event) {
	for _, e := range events {
		p.Publish(e)
	}
}

// subjectForRun scopes the surface subject per run, so a client subscribing
// to one run's events doesn't see every run sharing the same NATS server.
func subjectForRun(runID string) string {
	return fmt.Sprintf("%s.%s", surfaceSubject, runID)
}
