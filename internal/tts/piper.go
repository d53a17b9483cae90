// ============================================================================
// lectern - Lecture Capture & Translation Utility
// ============================================================================
//
// Package:     tts
// Description: Piper TTS implementation
// Author:      Ethan Koester-Schmidt
// Created:     2026-08-15
// License:     MIT
// ============================================================================

package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// defaultSampleRate is the Piper default when the voice config does not
// declare one.
const defaultSampleRate = 22050

// PiperTTS implements text-to-speech using Piper
type PiperTTS struct {
	binaryPath string
	modelPath  string
	configPath string
	sampleRate int
	espeakData string
}

// NewPiperTTS creates a new Piper TTS synthesizer. The voice config file
// next to the model is read once here so the output sample rate is known
// before any synthesis runs.
func NewPiperTTS(cfg Config) (*PiperTTS, error) {
	// Verify binary exists
	if cfg.BinaryPath == "" {
		return nil, fmt.Errorf("piper binary path is required")
	}
	binaryPath := cfg.BinaryPath
	if !strings.ContainsRune(binaryPath, os.PathSeparator) {
		resolved, err := exec.LookPath(binaryPath)
		if err != nil {
			return nil, fmt.Errorf("piper binary not found: %s", binaryPath)
		}
		binaryPath = resolved
	} else if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("piper binary not found: %s", binaryPath)
	}

	// Verify model exists
	if cfg.ModelPath == "" {
		return nil, fmt.Errorf("voice model path is required")
	}
	if _, err := os.Stat(cfg.ModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("voice model not found: %s", cfg.ModelPath)
	}

	// Config file sits next to the model
	configPath := cfg.ModelPath + ".json"
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("voice config not found: %s", configPath)
	}

	sampleRate := cfg.SampleRate
	if sampleRate <= 0 {
		rate, err := readVoiceSampleRate(configPath)
		if err != nil {
			return nil, err
		}
		sampleRate = rate
	}

	// Find espeak-ng-data directory (relative to binary)
	espeakData := filepath.Join(filepath.Dir(binaryPath), "espeak-ng-data")
	if _, err := os.Stat(espeakData); os.IsNotExist(err) {
		espeakData = "" // Will use default
	}

	return &PiperTTS{
		binaryPath: binaryPath,
		modelPath:  cfg.ModelPath,
		configPath: configPath,
		sampleRate: sampleRate,
		espeakData: espeakData,
	}, nil
}

// readVoiceSampleRate extracts audio.sample_rate from a voice config file.
func readVoiceSampleRate(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read voice config: %w", err)
	}

	var cfg struct {
		Audio struct {
			SampleRate int `json:"sample_rate"`
		} `json:"audio"`
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return 0, fmt.Errorf("failed to parse voice config: %w", err)
	}
	if cfg.Audio.SampleRate <= 0 {
		return defaultSampleRate, nil
	}
	return cfg.Audio.SampleRate, nil
}

// Synthesize converts text to audio (raw PCM 16-bit signed)
func (p *PiperTTS) Synthesize(ctx context.Context, text string) ([]byte, error) {
	args := []string{
		"--model", p.modelPath,
		"--config", p.configPath,
		"--output_raw",
	}
	if p.espeakData != "" {
		args = append(args, "--espeak_data", p.espeakData)
	}

	cmd := exec.CommandContext(ctx, p.binaryPath, args...)
	cmd.Stdin = strings.NewReader(text)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Dir = filepath.Dir(p.binaryPath)
	// Bounds Run after a cancellation kill even when a descendant of the
	// engine keeps the output pipes open.
	cmd.WaitDelay = time.Second

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("piper failed: %w, stderr: %s", err, stderr.String())
	}

	return stdout.Bytes(), nil
}

// SynthesizeToFile converts text to audio and saves to a WAV file
func (p *PiperTTS) SynthesizeToFile(ctx context.Context, text, path string) error {
	args := []string{
		"--model", p.modelPath,
		"--config", p.configPath,
		"--output_file", path,
	}
	if p.espeakData != "" {
		args = append(args, "--espeak_data", p.espeakData)
	}

	cmd := exec.CommandContext(ctx, p.binaryPath, args...)
	cmd.Stdin = strings.NewReader(text)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	cmd.Dir = filepath.Dir(p.binaryPath)
	cmd.WaitDelay = time.Second

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("piper failed: %w, stderr: %s", err, stderr.String())
	}
	return nil
}

// SampleRate returns the output sample rate
func (p *PiperTTS) SampleRate() int {
	return p.sampleRate
}

// Close releases resources
func (p *PiperTTS) Close() error {
	return nil
}

// VoiceInfo holds information about an installed voice
type VoiceInfo struct {
	Name       string
	ModelPath  string
	SampleRate int
}

// ListVoices scans a directory for voice models
func ListVoices(voicesDir string) ([]VoiceInfo, error) {
	entries, err := os.ReadDir(voicesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read voices directory: %w", err)
	}

	var voices []VoiceInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".onnx") {
			continue
		}
		modelPath := filepath.Join(voicesDir, entry.Name())
		info := VoiceInfo{
			Name:      strings.TrimSuffix(entry.Name(), ".onnx"),
			ModelPath: modelPath,
		}
		if rate, err := readVoiceSampleRate(modelPath + ".json"); err == nil {
			info.SampleRate = rate
		}
		voices = append(voices, info)
	}
	return voices, nil
}
