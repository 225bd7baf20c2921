// Package recorder mediates access to the exclusive audio worker. Every
// operation is funneled through one synchronous round trip: send a
// command, block for its single response, map it to a typed result or a
// typed *Error. The Manager's lock is held for the whole round trip, so
// commands from any number of concurrent callers reach the worker fully
// serialized, in lock-acquisition order, with never more than one
// outstanding.
package recorder

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/petems/micrec/internal/worker"
)

// SpawnFunc creates a worker and returns its channel endpoints. It is
// called lazily, at most once per live worker, under the Manager's lock.
type SpawnFunc func() (chan<- worker.Command, <-chan worker.Response, error)

// Manager holds the one live worker's channel pair and the mirrored
// recording flag. The zero value is not usable; construct with New.
type Manager struct {
	spawn SpawnFunc
	log   zerolog.Logger

	mu        sync.Mutex
	cmds      chan<- worker.Command
	resps     <-chan worker.Response
	recording bool
}

// New creates a Manager. The worker is not spawned until the first
// operation needs it.
func New(spawn SpawnFunc, log zerolog.Logger) *Manager {
	return &Manager{
		spawn: spawn,
		log:   log.With().Str("component", "recorder").Logger(),
	}
}

// ensureLocked spawns the worker if none is live. Callers must hold
// m.mu. A failed spawn leaves the registry empty so a later call can
// retry.
func (m *Manager) ensureLocked() error {
	if m.cmds != nil {
		m.log.Debug().Msg("Worker already initialized")
		return nil
	}

	m.log.Debug().Msg("Worker not initialized, spawning")
	cmds, resps, err := m.spawn()
	if err != nil {
		m.log.Error().Err(err).Msg("Failed to spawn worker")
		return newError(KindSend, err.Error())
	}

	m.cmds = cmds
	m.resps = resps
	m.log.Info().Msg("Audio worker created")
	return nil
}

// roundTrip executes one command against the worker: ensure it is live,
// send, block for the single response, and hand the response to
// interpret. Worker Error responses are mapped before interpret runs.
// interpret executes under m.mu, so it may mutate the recording flag.
func (m *Manager) roundTrip(cmd worker.Command, interpret func(worker.Response) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureLocked(); err != nil {
		return err
	}
	if m.cmds == nil {
		// Defensive; ensureLocked either stores a pair or errors.
		return newError(KindThreadNotInitialized, "")
	}

	if err := send(m.cmds, cmd); err != nil {
		m.log.Error().Err(err).Msg("Failed to send command")
		return newError(KindSend, err.Error())
	}

	resp, ok := <-m.resps
	if !ok {
		m.log.Error().Msg("Worker terminated without responding")
		return newError(KindReceive, "response channel closed")
	}

	if e, isErr := resp.(worker.Error); isErr {
		return newError(KindAudio, e.Message)
	}
	return interpret(resp)
}

// send reports a closed command channel as an error instead of a panic.
func send(ch chan<- worker.Command, cmd worker.Command) (err error) {
	defer func() {
		if recover() != nil {
			err = errors.New("command channel closed")
		}
	}()
	ch <- cmd
	return nil
}

// Teardown shuts the worker down. The channel pair is removed before
// CloseThread is sent, so a concurrent caller sees "no worker" rather
// than a half-closed one. With no worker live it succeeds immediately.
func (m *Manager) Teardown() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cmds == nil {
		m.log.Debug().Msg("No worker to close")
		return nil
	}

	cmds, resps := m.cmds, m.resps
	m.cmds, m.resps = nil, nil
	m.recording = false

	if err := send(cmds, worker.CloseThread{}); err != nil {
		m.log.Error().Err(err).Msg("Failed to send close command")
		return newError(KindSend, err.Error())
	}

	resp, ok := <-resps
	if !ok {
		return newError(KindReceive, "response channel closed")
	}
	switch r := resp.(type) {
	case worker.Success:
		m.log.Info().Msg("Audio worker closed")
		return nil
	case worker.Error:
		m.log.Error().Str("error", r.Message).Msg("Error closing worker")
		return newError(KindAudio, r.Message)
	default:
		return errUnexpected()
	}
}

// IsRecording reports the last known recording status. It is true only
// between a successful StartRecording and a successful StopRecording,
// CancelRecording, or CloseSession.
func (m *Manager) IsRecording() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recording
}
