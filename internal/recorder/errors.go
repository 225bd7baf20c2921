package recorder

import "fmt"

// Kind classifies a recorder failure. The set is stable and serialized
// as-is across the caller boundary.
type Kind string

const (
	// KindThreadNotInitialized means the worker registry was still empty
	// immediately after initialization. Defensive; should not occur.
	KindThreadNotInitialized Kind = "thread_not_initialized"

	// KindSend means the worker could not be spawned or its command
	// channel was closed.
	KindSend Kind = "send_error"

	// KindReceive means the response channel closed without a message,
	// i.e. the worker died mid-request.
	KindReceive Kind = "receive_error"

	// KindAudio carries a worker-reported failure or a protocol
	// mismatch (a well-formed but unexpected response variant).
	KindAudio Kind = "audio_error"

	// KindNoActiveRecording is reserved for operations that require an
	// active session. No operation currently produces it.
	KindNoActiveRecording Kind = "no_active_recording"

	// KindLock is reserved for lock acquisition failures. A sync.Mutex
	// cannot fail to lock, so nothing produces it; the kind is kept so
	// the serialized taxonomy stays stable across boundaries.
	KindLock Kind = "lock_error"
)

// Error is the typed, serializable error every operation returns on
// failure. Callers decide retry policy; the recorder never retries.
type Error struct {
	Kind   Kind   `json:"kind"`
	Detail string `json:"detail,omitempty"`
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindThreadNotInitialized:
		return "audio worker not initialized"
	case KindSend:
		return fmt.Sprintf("failed to send command: %s", e.Detail)
	case KindReceive:
		return fmt.Sprintf("failed to receive response: %s", e.Detail)
	case KindAudio:
		return fmt.Sprintf("audio error: %s", e.Detail)
	case KindNoActiveRecording:
		return "no active recording"
	case KindLock:
		return fmt.Sprintf("failed to acquire lock: %s", e.Detail)
	default:
		return fmt.Sprintf("recorder error: %s", e.Detail)
	}
}

func newError(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

func errUnexpected() *Error {
	return newError(KindAudio, "unexpected response")
}
