// ============================================================================
// lectern - Lecture Capture & Translation Utility
// ============================================================================
//
// Package:     vad
// Description: Voice activity detection for chunk pre-filtering
// Author:      Ethan Koester-Schmidt
// Created:     2026-08-15
// License:     MIT
// ============================================================================

package vad

import (
	"github.com/ekoester/lectern/internal/audio"
)

// Detector is the interface for voice activity detection
type Detector interface {
	// Process processes audio samples at the detector's sample rate and
	// returns whether speech is detected
	Process(samples []float32) (bool, error)

	// ProcessInt16 processes 16-bit integer samples
	ProcessInt16(samples []int16) (bool, error)

	// SampleRate returns the sample rate the detector expects
	SampleRate() int

	// Close releases resources
	Close() error
}

// Config holds VAD configuration
type Config struct {
	// Enabled turns chunk pre-filtering on. Off by default: the
	// transcriber already maps silence to an empty result, so the
	// filter only saves engine invocations.
	Enabled bool

	// SampleRate is the detection sample rate (8000, 16000, 32000, 48000)
	SampleRate int

	// Mode is the aggressiveness (0-3, higher filters more)
	Mode int
}

// DefaultConfig returns default VAD configuration
func DefaultConfig() Config {
	return Config{
		Enabled:    false,
		SampleRate: 16000,
		Mode:       2,
	}
}

// ChunkFilter decides whether a captured chunk contains speech. Chunks
// arrive at the capture rate and are resampled to the detector rate
// before detection.
type ChunkFilter struct {
	detector Detector
}

// NewChunkFilter wraps a detector for chunk-level filtering
func NewChunkFilter(d Detector) *ChunkFilter {
	return &ChunkFilter{detector: d}
}

// HasSpeech reports whether the chunk contains speech. Detection errors
// count as speech so a broken detector never swallows audio.
func (f *ChunkFilter) HasSpeech(chunk audio.Chunk) bool {
	samples := chunk.Samples
	if chunk.SampleRate != f.detector.SampleRate() {
		samples = audio.Resample(samples, chunk.SampleRate, f.detector.SampleRate())
	}

	speech, err := f.detector.Process(samples)
	if err != nil {
		return true
	}
	return speech
}

// Close releases the underlying detector
func (f *ChunkFilter) Close() error {
	return f.detector.Close()
}
