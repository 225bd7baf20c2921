package audio

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
)

const framesPerBuffer = 512

type portAudioCapture struct {
	sampleRate int

	device *portaudio.DeviceInfo
	stream *portaudio.Stream

	channels int
	buffer   []float32

	mu      sync.Mutex
	samples []float32

	stop chan struct{}
	done chan struct{}
}

// New creates a PortAudio-backed capture at the given sample rate.
func New(sampleRate int) (Capture, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize PortAudio: %w", err)
	}
	return &portAudioCapture{sampleRate: sampleRate}, nil
}

func (p *portAudioCapture) ListDevices() ([]string, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}

	labels := make([]string, 0, len(devices))
	for _, d := range devices {
		if d.MaxInputChannels > 0 {
			labels = append(labels, d.Name)
		}
	}
	return labels, nil
}

func (p *portAudioCapture) Open(deviceName string) error {
	if p.stream != nil {
		return fmt.Errorf("device already open: %s", p.device.Name)
	}

	var device *portaudio.DeviceInfo
	if deviceName == "" {
		var err error
		device, err = portaudio.DefaultInputDevice()
		if err != nil {
			return fmt.Errorf("failed to get default input device: %w", err)
		}
	} else {
		devices, err := portaudio.Devices()
		if err != nil {
			return fmt.Errorf("failed to enumerate devices: %w", err)
		}
		for _, d := range devices {
			if d.Name == deviceName && d.MaxInputChannels > 0 {
				device = d
				break
			}
		}
	}

	if device == nil {
		return fmt.Errorf("device not found: %s", deviceName)
	}

	// Capture at most two channels; anything wider gets downmixed the
	// same way on Stop.
	channels := device.MaxInputChannels
	if channels > 2 {
		channels = 2
	}

	buffer := make([]float32, framesPerBuffer*channels)
	stream, err := portaudio.OpenStream(portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   device,
			Channels: channels,
			Latency:  device.DefaultLowInputLatency,
		},
		SampleRate:      float64(p.sampleRate),
		FramesPerBuffer: framesPerBuffer,
	}, buffer)
	if err != nil {
		return fmt.Errorf("failed to open audio stream: %w", err)
	}

	p.device = device
	p.stream = stream
	p.channels = channels
	p.buffer = buffer
	return nil
}

func (p *portAudioCapture) Start() error {
	if p.stream == nil {
		return fmt.Errorf("no open device")
	}

	p.mu.Lock()
	p.samples = nil
	p.mu.Unlock()

	if err := p.stream.Start(); err != nil {
		return fmt.Errorf("failed to start audio stream: %w", err)
	}

	p.stop = make(chan struct{})
	p.done = make(chan struct{})

	go func() {
		defer close(p.done)
		for {
			select {
			case <-p.stop:
				return
			default:
				if err := p.stream.Read(); err != nil {
					return
				}
				mono := downmixInterleaved(p.buffer, p.channels, framesPerBuffer)
				p.mu.Lock()
				p.samples = append(p.samples, mono...)
				p.mu.Unlock()
			}
		}
	}()

	return nil
}

func (p *portAudioCapture) Stop() ([]float32, error) {
	if p.stream == nil || p.stop == nil {
		return nil, fmt.Errorf("not recording")
	}

	close(p.stop)
	<-p.done
	p.stop = nil
	p.done = nil

	if err := p.stream.Stop(); err != nil {
		return nil, fmt.Errorf("failed to stop audio stream: %w", err)
	}

	p.mu.Lock()
	samples := p.samples
	p.samples = nil
	p.mu.Unlock()
	return samples, nil
}

func (p *portAudioCapture) Close() error {
	if p.stream == nil {
		return nil
	}
	if p.stop != nil {
		close(p.stop)
		<-p.done
		p.stop = nil
		p.done = nil
		p.stream.Stop()
	}
	err := p.stream.Close()
	p.stream = nil
	p.device = nil
	p.buffer = nil
	if err != nil {
		return fmt.Errorf("failed to close audio stream: %w", err)
	}
	return nil
}

func (p *portAudioCapture) Terminate() error {
	if p.stream != nil {
		p.Close()
	}
	if err := portaudio.Terminate(); err != nil {
		return fmt.Errorf("failed to terminate PortAudio: %w", err)
	}
	return nil
}

// downmixInterleaved averages interleaved frames down to mono. The mono
// case still copies, so callers can hand the result across goroutines.
func downmixInterleaved(in []float32, channels, frames int) []float32 {
	out := make([]float32, frames)
	if channels <= 1 {
		copy(out, in[:frames])
		return out
	}
	for i := 0; i < frames; i++ {
		var sum float32
		for c := 0; c < channels; c++ {
			sum += in[i*channels+c]
		}
		out[i] = sum / float32(channels)
	}
	return out
}
