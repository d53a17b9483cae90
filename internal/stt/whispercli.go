// ============================================================================
// lectern - Lecture Capture & Translation Utility
// ============================================================================
//
// Package:     stt
// Description: whisper.cpp CLI transcription backend
// Author:      Ethan Koester-Schmidt
// Created:     2026-08-13
// License:     MIT
// ============================================================================

package stt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/ekoester/lectern/internal/audio"
)

// WhisperCLI transcribes audio by shelling out to the whisper.cpp CLI.
type WhisperCLI struct {
	binaryPath string
	modelPath  string
	language   string
	threads    int
	timeout    time.Duration
	tempDir    string
	logger     *slog.Logger
}

// NewWhisperCLI creates a whisper.cpp CLI transcriber. Binary and model are
// validated up front; a missing one is a fatal setup error.
func NewWhisperCLI(cfg Config, logger *slog.Logger) (*WhisperCLI, error) {
	binaryPath := cfg.BinaryPath
	if binaryPath == "" {
		binaryPath = findWhisperBinary()
	}
	if binaryPath == "" {
		return nil, fmt.Errorf("whisper binary not found")
	}
	if _, err := os.Stat(binaryPath); err != nil {
		return nil, fmt.Errorf("whisper binary not found: %s", binaryPath)
	}

	if cfg.ModelPath == "" {
		return nil, fmt.Errorf("model path is required")
	}
	if _, err := os.Stat(cfg.ModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", cfg.ModelPath)
	}

	tempDir, err := os.MkdirTemp("", "lectern-stt-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	threads := cfg.Threads
	if threads <= 0 {
		threads = 4
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &WhisperCLI{
		binaryPath: binaryPath,
		modelPath:  cfg.ModelPath,
		language:   cfg.Language,
		threads:    threads,
		timeout:    timeout,
		tempDir:    tempDir,
		logger:     logger,
	}, nil
}

// findWhisperBinary searches PATH and common install locations.
func findWhisperBinary() string {
	if path, err := exec.LookPath("whisper-cli"); err == nil {
		return path
	}
	if path, err := exec.LookPath("whisper"); err == nil {
		return path
	}

	locations := []string{
		"/opt/homebrew/bin/whisper-cli",
		"/usr/local/bin/whisper-cli",
		"/usr/local/bin/whisper",
		"/usr/bin/whisper-cli",
	}
	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}
	return ""
}

// TranscribeChunk resamples the chunk to the engine rate, quantizes it to
// PCM16, writes a transient WAV and runs the engine on it. The transient
// file is removed on every exit path, including timeout.
func (w *WhisperCLI) TranscribeChunk(ctx context.Context, chunk audio.Chunk) (Result, error) {
	resampled := audio.Resample(chunk.Samples, chunk.SampleRate, TargetSampleRate)
	pcm := audio.Quantize(resampled)

	wavPath := filepath.Join(w.tempDir, fmt.Sprintf("chunk_%s.wav", chunkName(chunk)))
	if err := audio.WriteWAVFile(wavPath, pcm, TargetSampleRate); err != nil {
		return Result{}, fmt.Errorf("failed to write chunk WAV: %w", err)
	}
	defer func() {
		if err := os.Remove(wavPath); err != nil && !os.IsNotExist(err) {
			w.logger.Warn("failed to delete chunk WAV", "path", wavPath, "error", err)
		}
	}()

	// The per-chunk deadline applies here only. Whole-file transcription
	// of a full lecture takes minutes and runs on the caller's context.
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	return w.TranscribeFile(ctx, wavPath)
}

// TranscribeFile runs the engine on a WAV file. Cancellation and deadline
// come from the caller's context.
func (w *WhisperCLI) TranscribeFile(ctx context.Context, path string) (Result, error) {
	args := []string{
		"-f", path,
		"-m", w.modelPath,
		"-l", w.language,
		"-t", strconv.Itoa(w.threads),
		"-nt", // no timestamps
	}

	cmd := exec.CommandContext(ctx, w.binaryPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Without a wait delay, Run blocks past the kill until every inherited
	// copy of the stdout pipe closes, which a descendant of the engine can
	// hold open indefinitely.
	cmd.WaitDelay = time.Second

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Result{}, fmt.Errorf("transcription timed out: %w", ctx.Err())
		}
		return Result{}, fmt.Errorf("whisper failed: %w, stderr: %s", err, stderr.String())
	}

	return Result{
		Text:     normalizeTranscript(stdout.String()),
		Language: w.language,
	}, nil
}

// Close removes the transient working directory.
func (w *WhisperCLI) Close() error {
	if w.tempDir != "" {
		if err := os.RemoveAll(w.tempDir); err != nil {
			return fmt.Errorf("failed to remove temp directory: %w", err)
		}
	}
	return nil
}

// chunkName returns a stable file name fragment for a chunk.
func chunkName(chunk audio.Chunk) string {
	if chunk.ID != "" {
		return chunk.ID
	}
	return uuid.NewString()
}
