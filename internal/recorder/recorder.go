// ============================================================================
// lectern - Lecture Capture & Translation Utility
// ============================================================================
//
// Package:     recorder
// Description: Full-lecture recording, transcription and summarization
// Author:      Ethan Koester-Schmidt
// Created:     2026-08-17
// License:     MIT
// ============================================================================

package recorder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ekoester/lectern/internal/audio"
	"github.com/ekoester/lectern/internal/store"
	"github.com/ekoester/lectern/internal/stt"
	"github.com/ekoester/lectern/internal/textfmt"
)

// DefaultMaxDuration caps a recording session. Anything longer than a
// double lecture slot is almost certainly a forgotten recorder.
const DefaultMaxDuration = 90 * time.Minute

// saveSampleRate is the rate of saved lecture audio. Transcription wants
// 16 kHz input anyway, and full lectures at the capture rate are large.
const saveSampleRate = 16000

// Source produces audio chunks until its context is cancelled
type Source interface {
	Run(ctx context.Context, sink func(audio.Chunk)) error
	Close() error
}

// Summarizer condenses a transcript into a summary
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (string, error)
}

// Config holds recorder configuration
type Config struct {
	OutputDir   string
	MaxDuration time.Duration

	// KeepAudio retains the WAV file after summarization
	KeepAudio bool

	// KeepTranscript retains the intermediate transcript file
	KeepTranscript bool
}

// DefaultConfig returns default recorder configuration
func DefaultConfig() Config {
	return Config{
		OutputDir:   ".",
		MaxDuration: DefaultMaxDuration,
		KeepAudio:   false,
	}
}

// Result describes a finished recording session
type Result struct {
	AudioPath   string
	SummaryPath string
	Transcript  string
	Summary     string
	Duration    time.Duration
}

// Recorder captures a full lecture into memory, then transcribes and
// summarizes it in one pass after the recording stops.
type Recorder struct {
	cfg         Config
	source      Source
	transcriber stt.Transcriber
	summarizer  Summarizer
	sessions    store.SessionStore
	logger      *slog.Logger

	buffer     *audio.SessionBuffer
	sampleRate int

	mu        sync.Mutex
	cancel    context.CancelFunc
	done      chan struct{}
	recording bool
	startedAt time.Time
}

// New creates a recorder. The session store may be nil.
func New(cfg Config, source Source, transcriber stt.Transcriber, summarizer Summarizer,
	sessions store.SessionStore, logger *slog.Logger) *Recorder {
	if cfg.MaxDuration <= 0 {
		cfg.MaxDuration = DefaultMaxDuration
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		cfg:         cfg,
		source:      source,
		transcriber: transcriber,
		summarizer:  summarizer,
		sessions:    sessions,
		logger:      logger,
		buffer:      audio.NewSessionBuffer(),
		sampleRate:  audio.DefaultSampleRate,
	}
}

// MaxDuration returns the configured recording length cap
func (r *Recorder) MaxDuration() time.Duration {
	return r.cfg.MaxDuration
}

// IsRecording reports whether a capture is in progress
func (r *Recorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// Elapsed returns the current recording length
func (r *Recorder) Elapsed() time.Duration {
	r.mu.Lock()
	sampleRate := r.sampleRate
	r.mu.Unlock()
	return r.buffer.Duration(sampleRate)
}

// Start begins capturing. Starting while recording is a no-op.
func (r *Recorder) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recording {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})
	r.recording = true
	r.startedAt = time.Now()
	r.buffer.Clear()

	maxSamples := int(r.cfg.MaxDuration.Seconds()) * r.sampleRate

	go func() {
		defer close(r.done)
		err := r.source.Run(ctx, func(chunk audio.Chunk) {
			r.mu.Lock()
			r.sampleRate = chunk.SampleRate
			r.mu.Unlock()
			r.buffer.Append(chunk.Samples)

			// Hard cap: stop rather than grow without bound.
			if r.buffer.Len() >= maxSamples {
				r.logger.Warn("maximum recording length reached, stopping",
					"max", r.cfg.MaxDuration)
				cancel()
			}
		})
		if err != nil && ctx.Err() == nil {
			r.logger.Error("capture failed", "error", err)
		}
	}()

	r.logger.Info("recording started", "max_duration", r.cfg.MaxDuration)
}

// Stop ends the capture and waits for the capture goroutine to exit.
// Stopping an idle recorder is a no-op.
func (r *Recorder) Stop() {
	r.mu.Lock()
	if !r.recording {
		r.mu.Unlock()
		return
	}
	r.recording = false
	cancel := r.cancel
	done := r.done
	r.mu.Unlock()

	cancel()
	<-done

	r.logger.Info("recording stopped",
		"duration", r.buffer.Duration(r.sampleRate).Round(time.Second))
}

// Finalize saves the recording, transcribes it, and writes the summary
// next to the audio file. Intermediate artifacts are deleted unless
// configured otherwise; cleanup failures are logged, never fatal.
func (r *Recorder) Finalize(ctx context.Context) (*Result, error) {
	if r.IsRecording() {
		r.Stop()
	}

	samples := r.buffer.Samples()
	if len(samples) == 0 {
		return nil, fmt.Errorf("nothing recorded")
	}

	if err := os.MkdirAll(r.cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &Result{Duration: r.buffer.Duration(r.sampleRate)}

	sess := &store.Session{
		Kind:      store.KindRecord,
		StartedAt: r.startedAt,
	}
	if r.sessions != nil {
		if err := r.sessions.CreateSession(ctx, sess); err != nil {
			r.logger.Warn("failed to record session", "error", err)
		}
	}

	// Save audio at the transcription rate.
	base := "lecture_" + r.startedAt.Format("2006-01-02_150405")
	audioPath := filepath.Join(r.cfg.OutputDir, base+".wav")
	saved := audio.Quantize(audio.Resample(samples, r.sampleRate, saveSampleRate))
	if err := audio.WriteWAVFile(audioPath, saved, saveSampleRate); err != nil {
		return nil, fmt.Errorf("failed to save recording: %w", err)
	}
	result.AudioPath = audioPath
	r.logger.Info("recording saved", "path", audioPath, "duration", result.Duration.Round(time.Second))

	// Transcribe the whole file in one pass.
	transcription, err := r.transcriber.TranscribeFile(ctx, audioPath)
	if err != nil {
		return result, fmt.Errorf("transcription failed: %w", err)
	}
	if transcription.Empty() {
		return result, fmt.Errorf("transcription is empty, nothing to summarize")
	}
	result.Transcript = transcription.Text

	transcriptPath := derivedPath(audioPath, "_transcript.txt")
	wrapped := textfmt.Wrap(transcription.Text, textfmt.DefaultWidth)
	if err := os.WriteFile(transcriptPath, []byte(wrapped+"\n"), 0o644); err != nil {
		return result, fmt.Errorf("failed to write transcript: %w", err)
	}

	// Summarize and save.
	summary, err := r.summarizer.Summarize(ctx, transcription.Text)
	if err != nil {
		return result, fmt.Errorf("summarization failed: %w", err)
	}
	result.Summary = summary

	summaryPath := derivedPath(audioPath, "_summary.txt")
	wrappedSummary := textfmt.Wrap(summary, textfmt.DefaultWidth)
	if err := os.WriteFile(summaryPath, []byte(wrappedSummary+"\n"), 0o644); err != nil {
		return result, fmt.Errorf("failed to write summary: %w", err)
	}
	result.SummaryPath = summaryPath
	r.logger.Info("summary saved", "path", summaryPath)

	r.cleanup(transcriptPath, audioPath, result)

	if r.sessions != nil {
		sess.Chunks = 1
		sess.Transcribed = 1
		sess.AudioPath = result.AudioPath
		sess.SummaryPath = summaryPath
		if err := r.sessions.FinishSession(ctx, sess); err != nil {
			r.logger.Warn("failed to finish session", "error", err)
		}
	}

	return result, nil
}

// cleanup removes intermediate artifacts per configuration
func (r *Recorder) cleanup(transcriptPath, audioPath string, result *Result) {
	if !r.cfg.KeepTranscript {
		if err := os.Remove(transcriptPath); err != nil {
			r.logger.Warn("failed to remove transcript", "path", transcriptPath, "error", err)
		}
	}
	if !r.cfg.KeepAudio {
		if err := os.Remove(audioPath); err != nil {
			r.logger.Warn("failed to remove recording", "path", audioPath, "error", err)
		} else {
			result.AudioPath = ""
		}
	}
}

// derivedPath swaps the extension of path for the given suffix
func derivedPath(path, suffix string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + suffix
}
