// ============================================================================
// lectern - Lecture Capture & Translation Utility
// ============================================================================
//
// Package:     stt
// Description: HTTP transcription backend (go-whisper / LocalAI compatible)
// Author:      Ethan Koester-Schmidt
// Created:     2026-08-13
// License:     MIT
// ============================================================================

package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/ekoester/lectern/internal/audio"
)

// WhisperHTTP transcribes audio through a whisper HTTP server exposing the
// /v1/audio/transcriptions endpoint.
type WhisperHTTP struct {
	baseURL  string
	language string
	timeout  time.Duration
	client   *http.Client
}

// NewWhisperHTTP creates an HTTP transcription backend.
func NewWhisperHTTP(baseURL string, cfg Config) *WhisperHTTP {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WhisperHTTP{
		baseURL:  baseURL,
		language: cfg.Language,
		timeout:  timeout,
		client:   &http.Client{},
	}
}

// TranscribeChunk resamples and quantizes the chunk, then posts it as an
// in-memory WAV. The per-chunk deadline applies here; whole-file posts run
// on the caller's context.
func (w *WhisperHTTP) TranscribeChunk(ctx context.Context, chunk audio.Chunk) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	resampled := audio.Resample(chunk.Samples, chunk.SampleRate, TargetSampleRate)
	pcm := audio.Quantize(resampled)

	data, err := audio.EncodeWAV(pcm, TargetSampleRate)
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode WAV: %w", err)
	}
	return w.post(ctx, data)
}

// TranscribeFile posts a WAV file to the server.
func (w *WhisperHTTP) TranscribeFile(ctx context.Context, path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read file: %w", err)
	}
	return w.post(ctx, data)
}

func (w *WhisperHTTP) post(ctx context.Context, wav []byte) (Result, error) {
	url := fmt.Sprintf("%s/v1/audio/transcriptions", w.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(wav))
	if err != nil {
		return Result{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "audio/wav")

	q := req.URL.Query()
	q.Add("language", w.language)
	req.URL.RawQuery = q.Encode()

	resp, err := w.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return Result{}, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	var response struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return Result{}, fmt.Errorf("failed to decode response: %w", err)
	}

	return Result{
		Text:     normalizeTranscript(response.Text),
		Language: w.language,
	}, nil
}

// Close releases resources.
func (w *WhisperHTTP) Close() error {
	return nil
}
