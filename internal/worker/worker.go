package worker

import (
	"github.com/rs/zerolog"

	"github.com/petems/micrec/internal/audio"
)

// Spawn starts the worker goroutine over the given capture backend and
// returns its channel endpoints. Both channels are unbuffered: a send
// hands the command directly to the worker, and the caller is expected
// to read exactly one response before sending again.
//
// The worker closes the response channel when it exits, whether through
// CloseThread or because the command channel was closed.
func Spawn(capture audio.Capture, log zerolog.Logger) (chan<- Command, <-chan Response) {
	cmds := make(chan Command)
	resps := make(chan Response)

	w := &worker{
		capture: capture,
		log:     log.With().Str("component", "worker").Logger(),
	}
	go w.run(cmds, resps)

	return cmds, resps
}

// worker tracks the session state machine:
// no session -> InitRecordingSession -> open -> StartRecording ->
// recording -> StopRecording -> open -> CloseRecordingSession -> no session.
// Invalid transitions are rejected with an Error response.
type worker struct {
	capture   audio.Capture
	log       zerolog.Logger
	open      bool
	recording bool
}

func (w *worker) run(cmds <-chan Command, resps chan<- Response) {
	defer close(resps)

	for cmd := range cmds {
		switch c := cmd.(type) {
		case EnumerateRecordingDevices:
			resps <- w.enumerate()
		case InitRecordingSession:
			resps <- w.initSession(c.DeviceName)
		case CloseRecordingSession:
			resps <- w.closeSession()
		case StartRecording:
			resps <- w.startRecording()
		case StopRecording:
			resps <- w.stopRecording()
		case CloseThread:
			w.cleanup()
			w.log.Info().Msg("Worker shutting down")
			resps <- Success{}
			return
		default:
			resps <- Error{Message: "unknown command"}
		}
	}

	// Command channel closed without CloseThread. Release the device
	// anyway so a future worker can claim it.
	w.log.Warn().Msg("Command channel closed, cleaning up")
	w.cleanup()
}

func (w *worker) enumerate() Response {
	devices, err := w.capture.ListDevices()
	if err != nil {
		w.log.Error().Err(err).Msg("Device enumeration failed")
		return Error{Message: err.Error()}
	}
	w.log.Debug().Int("count", len(devices)).Msg("Enumerated recording devices")
	return RecordingDeviceList{Devices: devices}
}

func (w *worker) initSession(deviceName string) Response {
	if w.open {
		return Error{Message: "recording session already initialized"}
	}
	if err := w.capture.Open(deviceName); err != nil {
		w.log.Error().Err(err).Str("device", deviceName).Msg("Failed to open device")
		return Error{Message: err.Error()}
	}
	w.open = true
	w.log.Info().Str("device", deviceName).Msg("Recording session initialized")
	return Success{}
}

func (w *worker) closeSession() Response {
	if !w.open {
		// Closing nothing is fine; callers tear down on every exit path.
		return Success{}
	}
	if w.recording {
		if _, err := w.capture.Stop(); err != nil {
			w.log.Error().Err(err).Msg("Failed to stop recording during close")
		}
		w.recording = false
	}
	if err := w.capture.Close(); err != nil {
		w.log.Error().Err(err).Msg("Failed to close session")
		return Error{Message: err.Error()}
	}
	w.open = false
	w.log.Info().Msg("Recording session closed")
	return Success{}
}

func (w *worker) startRecording() Response {
	if !w.open {
		return Error{Message: "no recording session"}
	}
	if w.recording {
		return Error{Message: "already recording"}
	}
	if err := w.capture.Start(); err != nil {
		w.log.Error().Err(err).Msg("Failed to start recording")
		return Error{Message: err.Error()}
	}
	w.recording = true
	w.log.Info().Msg("Recording started")
	return Success{}
}

func (w *worker) stopRecording() Response {
	if !w.recording {
		return Error{Message: "not recording"}
	}
	samples, err := w.capture.Stop()
	w.recording = false
	if err != nil {
		w.log.Error().Err(err).Msg("Failed to stop recording")
		return Error{Message: err.Error()}
	}
	w.log.Info().Int("samples", len(samples)).Msg("Recording stopped")
	return AudioData{Samples: samples}
}

// cleanup releases everything the worker holds, in reverse claim order.
func (w *worker) cleanup() {
	if w.recording {
		if _, err := w.capture.Stop(); err != nil {
			w.log.Error().Err(err).Msg("Failed to stop recording during shutdown")
		}
		w.recording = false
	}
	if w.open {
		if err := w.capture.Close(); err != nil {
			w.log.Error().Err(err).Msg("Failed to close session during shutdown")
		}
		w.open = false
	}
	if err := w.capture.Terminate(); err != nil {
		w.log.Error().Err(err).Msg("Failed to terminate audio host")
	}
}
