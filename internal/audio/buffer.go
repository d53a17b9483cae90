// ============================================================================
// lectern - Lecture Capture & Translation Utility
// ============================================================================
//
// Package:     audio
// Description: Growing sample buffer for full-session recording
// Author:      Ethan Koester-Schmidt
// Created:     2026-08-12
// License:     MIT
// ============================================================================

package audio

import (
	"sync"
	"time"
)

// SessionBuffer collects the samples of an entire recording session.
type SessionBuffer struct {
	mu      sync.RWMutex
	samples []float32
}

// NewSessionBuffer creates a buffer pre-sized for about a minute of audio.
func NewSessionBuffer() *SessionBuffer {
	return &SessionBuffer{
		samples: make([]float32, 0, DefaultSampleRate*60),
	}
}

// Append adds samples to the buffer.
func (b *SessionBuffer) Append(samples []float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.samples = append(b.samples, samples...)
}

// Samples returns a copy of the collected samples.
func (b *SessionBuffer) Samples() []float32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]float32, len(b.samples))
	copy(out, b.samples)
	return out
}

// Len returns the number of collected samples.
func (b *SessionBuffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.samples)
}

// Duration returns the buffered audio length at the given sample rate.
func (b *SessionBuffer) Duration(sampleRate int) time.Duration {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if sampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(b.samples)) / float64(sampleRate) * float64(time.Second))
}

// TrimTo discards the newest samples beyond max, keeping the start of the
// recording intact.
func (b *SessionBuffer) TrimTo(max int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if max >= 0 && len(b.samples) > max {
		b.samples = b.samples[:max]
	}
}

// Clear empties the buffer.
func (b *SessionBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.samples = b.samples[:0]
}
