// ============================================================================
// lectern - Lecture Capture & Translation Utility
// ============================================================================
//
// Package:     pipeline
// Description: Capture, transcription and translation pipeline
// Author:      Ethan Koester-Schmidt
// Created:     2026-08-16
// License:     MIT
// ============================================================================

package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ekoester/lectern/internal/audio"
	"github.com/ekoester/lectern/internal/stt"
)

// Source produces audio chunks until its context is cancelled
type Source interface {
	Run(ctx context.Context, sink func(audio.Chunk)) error
	Close() error
}

// Translator turns transcribed text into the target language
type Translator interface {
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
}

// Speaker voices translated text. Speak blocks until playback finishes
// so consecutive translations never overlap.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// ChunkFilter decides whether a chunk is worth transcribing
type ChunkFilter interface {
	HasSpeech(chunk audio.Chunk) bool
}

// Transcript is an intermediate transcription result
type Transcript struct {
	ChunkID string
	Text    string
	At      time.Time
}

// Translation is a finished translation result
type Translation struct {
	ChunkID  string
	Source   string
	Text     string
	Language string
	At       time.Time
}

// Events holds the pipeline's outbound callbacks. All callbacks are
// invoked from the processing goroutine; nil callbacks are skipped.
type Events struct {
	OnTranscript  func(Transcript)
	OnTranslation func(Translation)
	OnError       func(error)
}

// Config holds pipeline configuration
type Config struct {
	TargetLanguage string

	// DequeueTimeout bounds each queue poll so the worker notices
	// cancellation between chunks.
	DequeueTimeout time.Duration

	// SpeakEnabled voices translations when a Speaker is attached
	SpeakEnabled bool
}

// DefaultConfig returns default pipeline configuration
func DefaultConfig() Config {
	return Config{
		TargetLanguage: "German",
		DequeueTimeout: 500 * time.Millisecond,
	}
}

// Stats holds pipeline counters
type Stats struct {
	Captured    uint64
	Dropped     uint64
	Skipped     uint64
	Transcribed uint64
	Translated  uint64
	Spoken      uint64
}

// Pipeline wires capture, queueing, transcription, translation and
// optional speech output together.
type Pipeline struct {
	cfg         Config
	source      Source
	queue       *audio.ChunkQueue
	transcriber stt.Transcriber
	translator  Translator
	speaker     Speaker
	filter      ChunkFilter
	events      Events
	sm          *StateMachine
	logger      *slog.Logger

	captured    atomic.Uint64
	skipped     atomic.Uint64
	transcribed atomic.Uint64
	translated  atomic.Uint64
	spoken      atomic.Uint64

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a pipeline. Speaker and filter may be nil.
func New(cfg Config, source Source, queue *audio.ChunkQueue, transcriber stt.Transcriber,
	translator Translator, speaker Speaker, filter ChunkFilter, events Events, logger *slog.Logger) *Pipeline {
	if cfg.DequeueTimeout <= 0 {
		cfg.DequeueTimeout = 500 * time.Millisecond
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		cfg:         cfg,
		source:      source,
		queue:       queue,
		transcriber: transcriber,
		translator:  translator,
		speaker:     speaker,
		filter:      filter,
		events:      events,
		sm:          NewStateMachine(),
		logger:      logger,
	}
}

// State returns the pipeline state machine
func (p *Pipeline) State() *StateMachine {
	return p.sm
}

// Stats returns a snapshot of the pipeline counters
func (p *Pipeline) Stats() Stats {
	return Stats{
		Captured:    p.captured.Load(),
		Dropped:     p.queue.Dropped(),
		Skipped:     p.skipped.Load(),
		Transcribed: p.transcribed.Load(),
		Translated:  p.translated.Load(),
		Spoken:      p.spoken.Load(),
	}
}

// Start launches the capture and processing workers. Starting a running
// pipeline is a no-op.
func (p *Pipeline) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sm.Current() == StateRunning {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.sm.Transition(StateRunning)

	p.wg.Add(2)
	go p.captureLoop(ctx)
	go p.processLoop(ctx)

	p.logger.Info("pipeline started",
		"target_language", p.cfg.TargetLanguage,
		"speak", p.cfg.SpeakEnabled)
}

// Stop cancels the workers and waits for both to exit. Stopping an idle
// pipeline is a no-op.
func (p *Pipeline) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sm.Current() != StateRunning {
		return
	}
	p.sm.Transition(StateStopping)
	p.cancel()
	p.wg.Wait()
	p.sm.Transition(StateIdle)

	stats := p.Stats()
	p.logger.Info("pipeline stopped",
		"captured", stats.Captured,
		"transcribed", stats.Transcribed,
		"translated", stats.Translated,
		"dropped", stats.Dropped)
}

// captureLoop feeds chunks from the source into the queue
func (p *Pipeline) captureLoop(ctx context.Context) {
	defer p.wg.Done()

	err := p.source.Run(ctx, func(chunk audio.Chunk) {
		p.captured.Add(1)
		// Enqueue takes ctx so a producer blocked on a full queue is
		// released when Stop cancels the pipeline.
		p.queue.Enqueue(ctx, chunk)
	})
	if err != nil && ctx.Err() == nil {
		p.logger.Error("capture failed", "error", err)
		p.emitError(err)
	}
}

// processLoop drains the queue chunk by chunk
func (p *Pipeline) processLoop(ctx context.Context) {
	defer p.wg.Done()

	for {
		chunk, ok := p.queue.Dequeue(p.cfg.DequeueTimeout)
		if !ok {
			if ctx.Err() != nil {
				return
			}
			continue
		}
		p.processChunk(ctx, chunk)

		if ctx.Err() != nil {
			return
		}
	}
}

// processChunk runs one chunk through transcription, translation and
// optional speech. Per-chunk failures are logged and skipped; the loop
// must survive transient backend errors.
func (p *Pipeline) processChunk(ctx context.Context, chunk audio.Chunk) {
	if p.filter != nil && !p.filter.HasSpeech(chunk) {
		p.skipped.Add(1)
		return
	}

	result, err := p.transcriber.TranscribeChunk(ctx, chunk)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Warn("transcription failed", "chunk", chunk.ID, "error", err)
			p.emitError(err)
		}
		return
	}
	if result.Empty() {
		return
	}
	p.transcribed.Add(1)

	if p.events.OnTranscript != nil {
		p.events.OnTranscript(Transcript{
			ChunkID: chunk.ID,
			Text:    result.Text,
			At:      time.Now(),
		})
	}

	translated, err := p.translator.Translate(ctx, result.Text, p.cfg.TargetLanguage)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Warn("translation failed", "chunk", chunk.ID, "error", err)
			p.emitError(err)
		}
		return
	}
	if translated == "" {
		return
	}
	p.translated.Add(1)

	if p.events.OnTranslation != nil {
		p.events.OnTranslation(Translation{
			ChunkID:  chunk.ID,
			Source:   result.Text,
			Text:     translated,
			Language: p.cfg.TargetLanguage,
			At:       time.Now(),
		})
	}

	if p.cfg.SpeakEnabled && p.speaker != nil {
		if err := p.speaker.Speak(ctx, translated); err != nil {
			if ctx.Err() == nil {
				p.logger.Warn("speech output failed", "chunk", chunk.ID, "error", err)
			}
			return
		}
		p.spoken.Add(1)
	}
}

func (p *Pipeline) emitError(err error) {
	if p.events.OnError != nil {
		p.events.OnError(err)
	}
}
