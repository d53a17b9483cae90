// ============================================================================
// lectern - Lecture Capture & Translation Utility
// ============================================================================
//
// Package:     tts
// Description: Text-to-speech interface
// Author:      Ethan Koester-Schmidt
// Created:     2026-08-15
// License:     MIT
// ============================================================================

package tts

import (
	"context"
)

// Synthesizer is the interface for text-to-speech engines
type Synthesizer interface {
	// Synthesize converts text to raw PCM 16-bit signed audio
	Synthesize(ctx context.Context, text string) ([]byte, error)

	// SynthesizeToFile converts text to audio and saves to a file
	SynthesizeToFile(ctx context.Context, text, path string) error

	// SampleRate returns the output sample rate
	SampleRate() int

	// Close releases resources
	Close() error
}

// Config holds TTS configuration
type Config struct {
	// BinaryPath is the path to the piper binary
	BinaryPath string

	// ModelPath is the path to the voice model (.onnx)
	ModelPath string

	// SampleRate overrides the rate read from the voice config.
	// Zero means use the voice config value.
	SampleRate int
}

// DefaultConfig returns default TTS configuration
func DefaultConfig() Config {
	return Config{
		BinaryPath: "piper",
	}
}
