// ============================================================================
// lectern - Lecture Capture & Translation Utility
// ============================================================================
//
// Package:     cmd
// Description: Shared component construction from configuration
// Author:      Ethan Koester-Schmidt
// Created:     2026-08-18
// License:     MIT
// ============================================================================

package cmd

import (
	"fmt"
	"log/slog"

	"github.com/ekoester/lectern/internal/audio"
	"github.com/ekoester/lectern/internal/config"
	"github.com/ekoester/lectern/internal/llm"
	"github.com/ekoester/lectern/internal/store"
	"github.com/ekoester/lectern/internal/stt"
	"github.com/ekoester/lectern/internal/vad"
)

// newCapture builds the microphone source
func newCapture(cfg config.Config, logger *slog.Logger) (*audio.Capture, error) {
	captureCfg := audio.CaptureConfig{
		SampleRate:    cfg.Audio.SampleRate,
		ChunkDuration: cfg.GetChunkDuration(),
		DeviceName:    cfg.Audio.InputDevice,
	}
	capture, err := audio.NewCapture(captureCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio input: %w", err)
	}
	return capture, nil
}

// newQueue builds the chunk queue per the configured policy
func newQueue(cfg config.Config) (*audio.ChunkQueue, error) {
	policy, err := audio.ParseQueuePolicy(cfg.Pipeline.QueuePolicy)
	if err != nil {
		return nil, err
	}
	return audio.NewChunkQueue(policy, cfg.Pipeline.QueueCapacity)
}

// newTranscriber builds the configured transcription backend
func newTranscriber(cfg config.Config, logger *slog.Logger) (stt.Transcriber, error) {
	sttCfg := stt.Config{
		BinaryPath:     cfg.STT.BinaryPath,
		ModelPath:      cfg.STT.ModelPath,
		Language:       cfg.STT.Language,
		Threads:        cfg.STT.Threads,
		TimeoutSeconds: cfg.STT.TimeoutSeconds,
	}

	switch cfg.STT.Backend {
	case "http":
		return stt.NewWhisperHTTP(cfg.STT.BaseURL, sttCfg), nil
	default:
		return stt.NewWhisperCLI(sttCfg, logger)
	}
}

// newLLMClient builds the generation client
func newLLMClient(cfg config.Config) (*llm.Client, error) {
	llmCfg := llm.Config{
		BaseURL:                 cfg.LLM.BaseURL,
		Model:                   cfg.LLM.Model,
		TranslateTimeoutSeconds: cfg.LLM.TranslateTimeoutSeconds,
		SummarizeTimeoutSeconds: cfg.LLM.SummarizeTimeoutSeconds,
	}
	if cfg.LLM.PromptsPath != "" {
		prompts, err := llm.LoadPrompts(cfg.LLM.PromptsPath)
		if err != nil {
			return nil, err
		}
		llmCfg.Prompts = prompts
	}
	return llm.NewClient(llmCfg), nil
}

// newChunkFilter builds the optional VAD pre-filter, nil when disabled
func newChunkFilter(cfg config.Config) (*vad.ChunkFilter, error) {
	if !cfg.VAD.Enabled {
		return nil, nil
	}
	vadCfg := vad.DefaultConfig()
	vadCfg.Mode = cfg.VAD.Mode
	detector, err := vad.NewWebRTCVAD(vadCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create VAD: %w", err)
	}
	return vad.NewChunkFilter(detector), nil
}

// newSessionStore builds the session history store, nil when disabled
func newSessionStore(cfg config.Config, logger *slog.Logger) store.SessionStore {
	if !cfg.Store.Enabled {
		return nil
	}
	s, err := store.NewSQLiteSessionStore(store.Config{Path: cfg.Store.Path})
	if err != nil {
		logger.Warn("session store unavailable", "error", err)
		return nil
	}
	return s
}
