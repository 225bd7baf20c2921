package recorder

import "github.com/petems/micrec/internal/worker"

// Device describes one input device. Device identity is the label
// itself: two devices reporting the same label are indistinguishable
// here, which mirrors how the capture backend addresses them.
type Device struct {
	DeviceID string `json:"deviceId"`
	Label    string `json:"label"`
}

// EnumerateDevices lists the input devices known to the worker, in
// enumeration order.
func (m *Manager) EnumerateDevices() ([]Device, error) {
	m.log.Debug().Msg("Enumerating recording devices")

	var devices []Device
	err := m.roundTrip(worker.EnumerateRecordingDevices{}, func(resp worker.Response) error {
		list, ok := resp.(worker.RecordingDeviceList)
		if !ok {
			return errUnexpected()
		}
		devices = make([]Device, 0, len(list.Devices))
		for _, label := range list.Devices {
			devices = append(devices, Device{DeviceID: label, Label: label})
		}
		m.log.Info().Int("count", len(devices)).Msg("Found recording devices")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return devices, nil
}

// InitSession claims the named device for recording. An empty name
// selects the default input device.
func (m *Manager) InitSession(deviceName string) error {
	m.log.Info().Str("device", deviceName).Msg("Initializing recording session")

	return m.roundTrip(worker.InitRecordingSession{DeviceName: deviceName}, func(resp worker.Response) error {
		if _, ok := resp.(worker.Success); !ok {
			return errUnexpected()
		}
		m.log.Info().Msg("Recording session initialized")
		return nil
	})
}

// CloseSession releases the claimed device and clears the recording
// flag.
func (m *Manager) CloseSession() error {
	return m.roundTrip(worker.CloseRecordingSession{}, func(resp worker.Response) error {
		if _, ok := resp.(worker.Success); !ok {
			return errUnexpected()
		}
		m.recording = false
		return nil
	})
}

// StartRecording begins capturing on the open session.
func (m *Manager) StartRecording() error {
	return m.roundTrip(worker.StartRecording{}, func(resp worker.Response) error {
		if _, ok := resp.(worker.Success); !ok {
			return errUnexpected()
		}
		m.recording = true
		return nil
	})
}

// StopRecording ends the capture and returns the recorded samples.
func (m *Manager) StopRecording() ([]float32, error) {
	m.log.Debug().Msg("Stopping recording")

	var samples []float32
	err := m.roundTrip(worker.StopRecording{}, func(resp worker.Response) error {
		data, ok := resp.(worker.AudioData)
		if !ok {
			return errUnexpected()
		}
		m.recording = false
		samples = data.Samples
		m.log.Info().Int("samples", len(samples)).Msg("Recording stopped")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return samples, nil
}

// CancelRecording ends the capture and discards the samples. The worker
// has no preemption signal; this issues the same stop command as
// StopRecording and drops the payload on the caller side.
func (m *Manager) CancelRecording() error {
	m.log.Debug().Msg("Canceling recording")

	return m.roundTrip(worker.StopRecording{}, func(resp worker.Response) error {
		if _, ok := resp.(worker.AudioData); !ok {
			return errUnexpected()
		}
		m.recording = false
		m.log.Info().Msg("Recording canceled")
		return nil
	})
}
