// ============================================================================
// lectern - Lecture Capture & Translation Utility
// ============================================================================
//
// Package:     recorder
// Description: Tests for lecture recording and summarization
// Author:      Ethan Koester-Schmidt
// Created:     2026-08-17
// License:     MIT
// ============================================================================

package recorder

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ekoester/lectern/internal/audio"
	"github.com/ekoester/lectern/internal/stt"
)

// tickingSource emits a chunk every few milliseconds until cancelled.
type tickingSource struct {
	chunkSamples int
	interval     time.Duration
}

func (s *tickingSource) Run(ctx context.Context, sink func(audio.Chunk)) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			sink(audio.Chunk{
				ID:         "t",
				Samples:    make([]float32, s.chunkSamples),
				SampleRate: audio.DefaultSampleRate,
				Captured:   time.Now(),
			})
		}
	}
}

func (s *tickingSource) Close() error { return nil }

type fakeFileTranscriber struct {
	text    string
	err     error
	gotPath string
}

func (t *fakeFileTranscriber) TranscribeChunk(ctx context.Context, chunk audio.Chunk) (stt.Result, error) {
	return stt.Result{}, errors.New("not implemented")
}

func (t *fakeFileTranscriber) TranscribeFile(ctx context.Context, path string) (stt.Result, error) {
	t.gotPath = path
	return stt.Result{Text: t.text}, t.err
}

func (t *fakeFileTranscriber) Close() error { return nil }

type fakeSummarizer struct {
	summary string
	err     error
	gotText string
}

func (s *fakeSummarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	s.gotText = transcript
	return s.summary, s.err
}

func record(t *testing.T, r *Recorder, d time.Duration) {
	t.Helper()
	r.Start(context.Background())
	time.Sleep(d)
	r.Stop()
}

func TestRecordAndSummarize(t *testing.T) {
	dir := t.TempDir()
	source := &tickingSource{chunkSamples: 4410, interval: 5 * time.Millisecond}
	transcriber := &fakeFileTranscriber{text: "today we cover hydrology"}
	summarizer := &fakeSummarizer{summary: "Lecture on hydrology."}

	cfg := DefaultConfig()
	cfg.OutputDir = dir
	r := New(cfg, source, transcriber, summarizer, nil, nil)

	record(t, r, 100*time.Millisecond)

	result, err := r.Finalize(context.Background())
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if result.Summary != "Lecture on hydrology." {
		t.Errorf("Summary = %q, want summarizer output", result.Summary)
	}
	if summarizer.gotText != "today we cover hydrology" {
		t.Errorf("summarizer received %q, want transcript", summarizer.gotText)
	}
	if !strings.HasSuffix(result.SummaryPath, "_summary.txt") {
		t.Errorf("SummaryPath = %q, want _summary.txt suffix", result.SummaryPath)
	}
	if _, err := os.Stat(result.SummaryPath); err != nil {
		t.Errorf("summary file missing: %v", err)
	}

	// Intermediate artifacts are gone by default.
	transcriptPath := strings.TrimSuffix(transcriber.gotPath, ".wav") + "_transcript.txt"
	if _, err := os.Stat(transcriptPath); !os.IsNotExist(err) {
		t.Errorf("transcript file %q still exists", transcriptPath)
	}
	if _, err := os.Stat(transcriber.gotPath); !os.IsNotExist(err) {
		t.Errorf("audio file %q still exists", transcriber.gotPath)
	}
	if result.AudioPath != "" {
		t.Errorf("AudioPath = %q, want empty after cleanup", result.AudioPath)
	}
}

func TestRecordKeepAudio(t *testing.T) {
	dir := t.TempDir()
	source := &tickingSource{chunkSamples: 4410, interval: 5 * time.Millisecond}
	transcriber := &fakeFileTranscriber{text: "content"}
	summarizer := &fakeSummarizer{summary: "summary"}

	cfg := DefaultConfig()
	cfg.OutputDir = dir
	cfg.KeepAudio = true
	r := New(cfg, source, transcriber, summarizer, nil, nil)

	record(t, r, 50*time.Millisecond)
	result, err := r.Finalize(context.Background())
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if result.AudioPath == "" {
		t.Fatal("AudioPath is empty with KeepAudio")
	}
	if _, err := os.Stat(result.AudioPath); err != nil {
		t.Errorf("audio file missing: %v", err)
	}

	// Saved file is 16 kHz mono PCM16.
	data, err := os.ReadFile(result.AudioPath)
	if err != nil {
		t.Fatal(err)
	}
	rate, _, err := audio.ParseWAV(data)
	if err != nil {
		t.Fatalf("ParseWAV() error = %v", err)
	}
	if rate != 16000 {
		t.Errorf("saved sample rate = %d, want 16000", rate)
	}
}

func TestFinalizeNothingRecorded(t *testing.T) {
	r := New(DefaultConfig(), &tickingSource{chunkSamples: 10, interval: time.Hour},
		&fakeFileTranscriber{}, &fakeSummarizer{}, nil, nil)
	if _, err := r.Finalize(context.Background()); err == nil {
		t.Error("Finalize() error = nil, want error for empty buffer")
	}
}

func TestFinalizeTranscriptionFailure(t *testing.T) {
	dir := t.TempDir()
	source := &tickingSource{chunkSamples: 4410, interval: 5 * time.Millisecond}
	transcriber := &fakeFileTranscriber{err: errors.New("engine missing")}

	cfg := DefaultConfig()
	cfg.OutputDir = dir
	r := New(cfg, source, transcriber, &fakeSummarizer{}, nil, nil)

	record(t, r, 50*time.Millisecond)
	result, err := r.Finalize(context.Background())
	if err == nil {
		t.Fatal("Finalize() error = nil, want transcription failure")
	}
	// The recording itself survives a failed transcription.
	if result == nil || result.AudioPath == "" {
		t.Fatal("audio path missing after failed transcription")
	}
	if _, statErr := os.Stat(result.AudioPath); statErr != nil {
		t.Errorf("audio file missing: %v", statErr)
	}
}

func TestMaxDurationCapStopsCapture(t *testing.T) {
	dir := t.TempDir()
	source := &tickingSource{chunkSamples: 44100, interval: time.Millisecond}

	cfg := DefaultConfig()
	cfg.OutputDir = dir
	cfg.MaxDuration = 3 * time.Second // 3 seconds of audio arrives in a few ms
	r := New(cfg, source, &fakeFileTranscriber{text: "x"}, &fakeSummarizer{summary: "y"}, nil, nil)

	r.Start(context.Background())

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if r.Elapsed() >= 3*time.Second {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(50 * time.Millisecond)

	before := r.buffer.Len()
	time.Sleep(50 * time.Millisecond)
	if after := r.buffer.Len(); after != before {
		t.Errorf("buffer grew from %d to %d after cap", before, after)
	}
	r.Stop()
}

func TestStartWhileRecordingIsNoop(t *testing.T) {
	source := &tickingSource{chunkSamples: 441, interval: 5 * time.Millisecond}
	r := New(DefaultConfig(), source, &fakeFileTranscriber{}, &fakeSummarizer{}, nil, nil)

	r.Start(context.Background())
	r.Start(context.Background())
	if !r.IsRecording() {
		t.Error("IsRecording() = false after Start")
	}
	r.Stop()
	if r.IsRecording() {
		t.Error("IsRecording() = true after Stop")
	}
}

func TestDerivedPath(t *testing.T) {
	got := derivedPath(filepath.Join("out", "lecture_2026-08-17_101500.wav"), "_summary.txt")
	want := filepath.Join("out", "lecture_2026-08-17_101500_summary.txt")
	if got != want {
		t.Errorf("derivedPath() = %q, want %q", got, want)
	}
}
