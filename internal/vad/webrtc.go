// ============================================================================
// lectern - Lecture Capture & Translation Utility
// ============================================================================
//
// Package:     vad
// Description: WebRTC VAD implementation
// Author:      Ethan Koester-Schmidt
// Created:     2026-08-15
// License:     MIT
// ============================================================================

package vad

import (
	"fmt"

	webrtcvad "github.com/maxhawkins/go-webrtcvad"
)

// WebRTCVAD implements voice activity detection using WebRTC's VAD
type WebRTCVAD struct {
	vad        *webrtcvad.VAD
	sampleRate int
	mode       int
}

// NewWebRTCVAD creates a new WebRTC VAD instance
func NewWebRTCVAD(cfg Config) (*WebRTCVAD, error) {
	vad, err := webrtcvad.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create WebRTC VAD: %w", err)
	}

	mode := cfg.Mode
	if mode < 0 {
		mode = 0
	}
	if mode > 3 {
		mode = 3
	}
	if err := vad.SetMode(mode); err != nil {
		return nil, fmt.Errorf("failed to set VAD mode: %w", err)
	}

	switch cfg.SampleRate {
	case 8000, 16000, 32000, 48000:
	default:
		return nil, fmt.Errorf("invalid VAD sample rate %d, must be 8000, 16000, 32000 or 48000", cfg.SampleRate)
	}

	return &WebRTCVAD{
		vad:        vad,
		sampleRate: cfg.SampleRate,
		mode:       mode,
	}, nil
}

// Process processes float32 audio samples and returns whether speech is detected
func (w *WebRTCVAD) Process(samples []float32) (bool, error) {
	int16Samples := make([]int16, len(samples))
	for i, s := range samples {
		if s > 1.0 {
			s = 1.0
		}
		if s < -1.0 {
			s = -1.0
		}
		int16Samples[i] = int16(s * 32767)
	}
	return w.ProcessInt16(int16Samples)
}

// ProcessInt16 processes 16-bit integer samples. The detector works on
// 10ms frames; any active frame marks the whole input as speech.
func (w *WebRTCVAD) ProcessInt16(samples []int16) (bool, error) {
	frameSize := w.sampleRate / 100

	if len(samples) < frameSize {
		padded := make([]int16, frameSize)
		copy(padded, samples)
		samples = padded
	}

	for i := 0; i+frameSize <= len(samples); i += frameSize {
		frameBytes := int16ToBytes(samples[i : i+frameSize])

		active, err := w.vad.Process(w.sampleRate, frameBytes)
		if err != nil {
			return false, fmt.Errorf("VAD processing failed: %w", err)
		}
		if active {
			return true, nil
		}
	}
	return false, nil
}

// int16ToBytes converts int16 samples to little-endian bytes
func int16ToBytes(samples []int16) []byte {
	bytes := make([]byte, len(samples)*2)
	for i, s := range samples {
		bytes[i*2] = byte(s)
		bytes[i*2+1] = byte(s >> 8)
	}
	return bytes
}

// SampleRate returns the detection sample rate
func (w *WebRTCVAD) SampleRate() int {
	return w.sampleRate
}

// Mode returns the current aggressiveness mode
func (w *WebRTCVAD) Mode() int {
	return w.mode
}

// Close releases resources
func (w *WebRTCVAD) Close() error {
	return nil
}
