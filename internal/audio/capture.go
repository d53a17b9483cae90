// ============================================================================
// lectern - Lecture Capture & Translation Utility
// ============================================================================
//
// Package:     audio
// Description: Microphone capture using PortAudio
// Author:      Ethan Koester-Schmidt
// Created:     2026-08-12
// License:     MIT
// ============================================================================

package audio

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gordonklaus/portaudio"
)

const (
	// DefaultSampleRate is the capture sample rate in Hz.
	DefaultSampleRate = 44100

	// DefaultChunkDuration is the amount of audio delivered per chunk.
	DefaultChunkDuration = 2 * time.Second

	// DefaultFramesPerBuffer is the PortAudio read size. Small enough that
	// the capture loop observes cancellation well under 100ms.
	DefaultFramesPerBuffer = 1024

	// DefaultChannels is mono audio.
	DefaultChannels = 1
)

// Chunk is a fixed-duration slice of captured audio handed from capture to
// processing as one unit. Samples are mono float32 in [-1, 1].
type Chunk struct {
	ID         string
	Samples    []float32
	SampleRate int
	Captured   time.Time
}

// Duration returns the chunk length in real time.
func (c Chunk) Duration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(c.Samples)) / float64(c.SampleRate) * float64(time.Second))
}

// CaptureConfig holds configuration for microphone capture.
type CaptureConfig struct {
	SampleRate    int
	ChunkDuration time.Duration
	BufferSize    int
	DeviceName    string // input device name (empty or "default" = system default)
}

// DefaultCaptureConfig returns the default capture configuration.
func DefaultCaptureConfig() CaptureConfig {
	return CaptureConfig{
		SampleRate:    DefaultSampleRate,
		ChunkDuration: DefaultChunkDuration,
		BufferSize:    DefaultFramesPerBuffer,
	}
}

// ChunkSamples returns the exact number of frames per chunk.
func (c CaptureConfig) ChunkSamples() int {
	return int(float64(c.SampleRate) * c.ChunkDuration.Seconds())
}

// Capture reads mono audio from an input device and delivers fixed-duration
// chunks to a sink. It owns the device for the lifetime of Run.
type Capture struct {
	cfg    CaptureConfig
	logger *slog.Logger
}

// NewCapture creates a new capture instance and initializes PortAudio.
// Call Close to release the PortAudio runtime.
func NewCapture(cfg CaptureConfig, logger *slog.Logger) (*Capture, error) {
	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", cfg.SampleRate)
	}
	if cfg.ChunkDuration <= 0 {
		return nil, fmt.Errorf("invalid chunk duration %v", cfg.ChunkDuration)
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultFramesPerBuffer
	}
	if logger == nil {
		logger = slog.Default()
	}

	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize PortAudio: %w", err)
	}

	return &Capture{cfg: cfg, logger: logger}, nil
}

// Run opens the input stream and delivers chunks to sink until ctx is
// cancelled. Each chunk holds exactly ChunkSamples() frames; a trailing
// partial chunk at shutdown is discarded. Read faults are logged and the
// stream is kept open.
func (c *Capture) Run(ctx context.Context, sink func(Chunk)) error {
	buffer := make([]float32, c.cfg.BufferSize)

	stream, err := c.openStream(buffer)
	if err != nil {
		return fmt.Errorf("failed to open audio stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("failed to start audio stream: %w", err)
	}
	defer stream.Stop()

	chunkSamples := c.cfg.ChunkSamples()
	pending := make([]float32, 0, chunkSamples)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		// One buffer is ~23ms at 44.1kHz/1024 frames, so cancellation is
		// observed well inside the 100ms bound.
		if err := stream.Read(); err != nil {
			c.logger.Warn("audio read fault", "error", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(10 * time.Millisecond):
			}
			continue
		}

		pending = append(pending, buffer...)

		for len(pending) >= chunkSamples {
			samples := make([]float32, chunkSamples)
			copy(samples, pending[:chunkSamples])
			pending = pending[chunkSamples:]

			sink(Chunk{
				ID:         uuid.NewString(),
				Samples:    samples,
				SampleRate: c.cfg.SampleRate,
				Captured:   time.Now(),
			})
		}
	}
}

// openStream opens the configured input device, falling back to the system
// default when the named device is not found.
func (c *Capture) openStream(buffer []float32) (*portaudio.Stream, error) {
	if c.cfg.DeviceName != "" && c.cfg.DeviceName != "default" {
		device, err := findInputDevice(c.cfg.DeviceName)
		if err == nil {
			params := portaudio.StreamParameters{
				Input: portaudio.StreamDeviceParameters{
					Device:   device,
					Channels: DefaultChannels,
					Latency:  device.DefaultLowInputLatency,
				},
				SampleRate:      float64(c.cfg.SampleRate),
				FramesPerBuffer: c.cfg.BufferSize,
			}
			return portaudio.OpenStream(params, buffer)
		}
		c.logger.Warn("input device not found, using default", "device", c.cfg.DeviceName)
	}

	return portaudio.OpenDefaultStream(
		DefaultChannels, // input channels
		0,               // output channels
		float64(c.cfg.SampleRate),
		c.cfg.BufferSize,
		buffer,
	)
}

// Close releases the PortAudio runtime.
func (c *Capture) Close() error {
	if err := portaudio.Terminate(); err != nil {
		return fmt.Errorf("failed to terminate PortAudio: %w", err)
	}
	return nil
}

// findInputDevice finds a PortAudio input device by name.
func findInputDevice(name string) (*portaudio.DeviceInfo, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, err
	}
	for _, dev := range devices {
		if dev.Name == name && dev.MaxInputChannels > 0 {
			return dev, nil
		}
	}
	return nil, fmt.Errorf("device not found: %s", name)
}

// DeviceInfo holds information about an audio input device.
type DeviceInfo struct {
	Name              string
	MaxInputChannels  int
	DefaultSampleRate float64
	IsDefault         bool
}

// ListInputDevices returns the available input devices.
func ListInputDevices() ([]DeviceInfo, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize PortAudio: %w", err)
	}
	defer portaudio.Terminate()

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("failed to get devices: %w", err)
	}

	defaultInput, _ := portaudio.DefaultInputDevice()
	var defaultName string
	if defaultInput != nil {
		defaultName = defaultInput.Name
	}

	var inputs []DeviceInfo
	for _, dev := range devices {
		if dev.MaxInputChannels > 0 {
			inputs = append(inputs, DeviceInfo{
				Name:              dev.Name,
				MaxInputChannels:  dev.MaxInputChannels,
				DefaultSampleRate: dev.DefaultSampleRate,
				IsDefault:         dev.Name == defaultName,
			})
		}
	}
	return inputs, nil
}
