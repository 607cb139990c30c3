package broadcast

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// SpeedCommand requests a change to a run's tick speed (0=paused..4=fastest,
// matching simulation.Simulation.SetSpeed's range).
type SpeedCommand struct {
	RunID string `json:"runId"`
	Speed int    `json:"speed"`
}

// SpeedSetter is satisfied by simulation.Simulation (or a wrapper that
// guards it with a lock, such as a server's request runtime).
type SpeedSetter interface {
	SetSpeed(level int)
}

// SpeedSubscriber listens for out-of-band speed-change commands so a remote
// control surface (a dashboard button, a CLI) can drive playback without a
// direct connection to the run's HTTP API.
type SpeedSubscriber struct {
	nc  *nats.Conn
	run map[string]SpeedSetter
}

// NewSpeedSubscriber builds a subscriber dispatching into the given runs by id.
func NewSpeedSubscriber(nc *nats.Conn, runs map[string]SpeedSetter) *SpeedSubscriber {
	return &SpeedSubscriber{nc: nc, run: runs}
}

// ListenForSpeedChange subscribes to speed-command messages for every known run.
func (s *SpeedSubscriber) ListenForSpeedChange() error {
	_, err := s.nc.Subscribe("planetsim.commands.speed", func(msg *nats.Msg) {
		var cmd SpeedCommand
		if err := json.Unmarshal(msg.Data, &cmd); err != nil {
			log.Error().Err(err).Msg("broadcast: failed to unmarshal speed command")
			return
		}

		sim, ok := s.run[cmd.RunID]
		if !ok {
			log.Warn().Str("run_id", cmd.RunID).Msg("broadcast: speed command for unknown run")
			return
		}

		sim.SetSpeed(cmd.Speed)
		log.Info().Str("run_id", cmd.RunID).Int("speed", cmd.Speed).Msg("run speed changed")
	})
	if err != nil {
		return fmt.Errorf("broadcast.ListenForSpeedChange: subscribe failed: %w", err)
	}
	return nil
}
