package audio

// Capture defines the interface for an exclusive audio input backend.
// It is driven by a single goroutine; implementations do not need to be
// safe for concurrent use beyond their own internal read loop.
type Capture interface {
	// ListDevices returns the labels of all input-capable devices.
	ListDevices() ([]string, error)

	// Open claims the named device and prepares a capture stream.
	// An empty name selects the default input device.
	Open(deviceName string) error

	// Start begins accumulating samples on the open stream.
	Start() error

	// Stop ends accumulation and returns the captured mono samples.
	Stop() ([]float32, error)

	// Close releases the open stream and device.
	Close() error

	// Terminate releases the audio host API itself.
	Terminate() error
}
