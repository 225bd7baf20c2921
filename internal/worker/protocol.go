// Package worker implements the audio worker goroutine and the
// command/response protocol it speaks. The worker owns the exclusive
// capture device; it consumes Commands strictly in the order they arrive
// and emits exactly one Response per Command on its response channel.
package worker

// Command is a request for one action of the worker. Commands are
// immutable once sent.
type Command interface {
	isCommand()
}

// EnumerateRecordingDevices asks for the labels of all input devices.
type EnumerateRecordingDevices struct{}

// InitRecordingSession claims the named input device. An empty name
// selects the system default input device.
type InitRecordingSession struct {
	DeviceName string
}

// CloseRecordingSession releases the claimed device, discarding any
// recording still in progress.
type CloseRecordingSession struct{}

// StartRecording begins capturing samples on the open session.
type StartRecording struct{}

// StopRecording stops capturing and returns the accumulated samples.
type StopRecording struct{}

// CloseThread shuts the worker down. It is the last command the worker
// will ever process; the response channel is closed after the reply.
type CloseThread struct{}

func (EnumerateRecordingDevices) isCommand() {}
func (InitRecordingSession) isCommand()      {}
func (CloseRecordingSession) isCommand()     {}
func (StartRecording) isCommand()            {}
func (StopRecording) isCommand()             {}
func (CloseThread) isCommand()               {}

// Response is the single message the worker returns for a Command.
type Response interface {
	isResponse()
}

// Success acknowledges a command with no payload.
type Success struct{}

// Error reports a domain failure (device busy, invalid session state).
type Error struct {
	Message string
}

// RecordingDeviceList carries device labels, in enumeration order.
type RecordingDeviceList struct {
	Devices []string
}

// AudioData carries the samples captured between start and stop.
type AudioData struct {
	Samples []float32
}

func (Success) isResponse()             {}
func (Error) isResponse()               {}
func (RecordingDeviceList) isResponse() {}
func (AudioData) isResponse()           {}
