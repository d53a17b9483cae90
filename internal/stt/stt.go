// ============================================================================
// lectern - Lecture Capture & Translation Utility
// ============================================================================
//
// Package:     stt
// Description: Speech-to-text interface
// Author:      Ethan Koester-Schmidt
// Created:     2026-08-13
// License:     MIT
// ============================================================================

package stt

import (
	"context"
	"strings"

	"github.com/ekoester/lectern/internal/audio"
)

// BlankAudioToken is the sentinel whisper.cpp emits when it detects no
// speech. It is treated identically to an empty transcription.
const BlankAudioToken = "[BLANK_AUDIO]"

// TargetSampleRate is the sample rate the recognition engine expects.
const TargetSampleRate = 16000

// Transcriber is the interface for speech-to-text engines.
type Transcriber interface {
	// TranscribeChunk converts one captured audio chunk to text. The chunk
	// is resampled to the engine's rate internally. An empty Result.Text
	// means silence or no recognizable speech.
	TranscribeChunk(ctx context.Context, chunk audio.Chunk) (Result, error)

	// TranscribeFile transcribes a mono PCM16 WAV file.
	TranscribeFile(ctx context.Context, path string) (Result, error)

	// Close releases resources.
	Close() error
}

// Result holds a transcription result.
type Result struct {
	// Text is the recognized text; empty when nothing was recognized.
	Text string

	// Language is the language the engine was asked to recognize.
	Language string
}

// Empty reports whether the result carries no usable text.
func (r Result) Empty() bool {
	return strings.TrimSpace(r.Text) == ""
}

// Config holds STT configuration.
type Config struct {
	// BinaryPath is the whisper-cli binary (empty = search known locations).
	BinaryPath string

	// ModelPath is the path to the ggml model file.
	ModelPath string

	// Language is the recognition language code (e.g. "en", "auto").
	Language string

	// Threads is the subprocess thread count.
	Threads int

	// TimeoutSeconds bounds a single transcription call.
	TimeoutSeconds int
}

// DefaultConfig returns default STT configuration.
func DefaultConfig() Config {
	return Config{
		Language:       "en",
		Threads:        4,
		TimeoutSeconds: 10,
	}
}

// normalizeTranscript trims engine output and maps the blank-audio sentinel
// to an empty string.
func normalizeTranscript(text string) string {
	text = strings.TrimSpace(text)
	if strings.Contains(text, BlankAudioToken) {
		return ""
	}
	return text
}
