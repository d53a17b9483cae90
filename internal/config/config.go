// ============================================================================
// lectern - Lecture Capture & Translation Utility
// ============================================================================
//
// Package:     config
// Description: Application configuration loading and saving
// Author:      Ethan Koester-Schmidt
// Created:     2026-08-16
// License:     MIT
// ============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/ekoester/lectern/internal/audio"
)

// Config is the root configuration structure from config.toml
type Config struct {
	General  GeneralConfig  `toml:"general"`
	Audio    AudioConfig    `toml:"audio"`
	Pipeline PipelineConfig `toml:"pipeline"`
	STT      STTConfig      `toml:"stt"`
	LLM      LLMConfig      `toml:"llm"`
	TTS      TTSConfig      `toml:"tts"`
	VAD      VADConfig      `toml:"vad"`
	Store    StoreConfig    `toml:"store"`
}

// GeneralConfig holds top-level settings
type GeneralConfig struct {
	TargetLanguage string `toml:"target_language"`
	OutputDir      string `toml:"output_dir"`
	LogLevel       string `toml:"log_level"`
}

// AudioConfig holds capture settings
type AudioConfig struct {
	SampleRate    int    `toml:"sample_rate"`
	ChunkDuration string `toml:"chunk_duration"`
	InputDevice   string `toml:"input_device"`
}

// PipelineConfig holds queue and flow settings
type PipelineConfig struct {
	QueuePolicy    string `toml:"queue_policy"`
	QueueCapacity  int    `toml:"queue_capacity"`
	SpeakEnabled   bool   `toml:"speak_enabled"`
	DequeueTimeout string `toml:"dequeue_timeout"`
}

// STTConfig holds transcription settings
type STTConfig struct {
	Backend        string `toml:"backend"` // cli, http
	BinaryPath     string `toml:"binary_path"`
	ModelPath      string `toml:"model_path"`
	BaseURL        string `toml:"base_url"`
	Language       string `toml:"language"`
	Threads        int    `toml:"threads"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// LLMConfig holds translation and summarization settings
type LLMConfig struct {
	BaseURL                 string `toml:"base_url"`
	Model                   string `toml:"model"`
	TranslateTimeoutSeconds int    `toml:"translate_timeout_seconds"`
	SummarizeTimeoutSeconds int    `toml:"summarize_timeout_seconds"`
	PromptsPath             string `toml:"prompts_path"`
}

// TTSConfig holds speech synthesis settings
type TTSConfig struct {
	Enabled    bool   `toml:"enabled"`
	BinaryPath string `toml:"binary_path"`
	ModelPath  string `toml:"model_path"`
}

// VADConfig holds voice activity detection settings
type VADConfig struct {
	Enabled bool `toml:"enabled"`
	Mode    int  `toml:"mode"`
}

// StoreConfig holds session history settings
type StoreConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Default returns the built-in configuration
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		General: GeneralConfig{
			TargetLanguage: "German",
			OutputDir:      filepath.Join(home, "Lectures"),
			LogLevel:       "info",
		},
		Audio: AudioConfig{
			SampleRate:    audio.DefaultSampleRate,
			ChunkDuration: "2s",
		},
		Pipeline: PipelineConfig{
			QueuePolicy:    "unbounded",
			QueueCapacity:  64,
			SpeakEnabled:   false,
			DequeueTimeout: "500ms",
		},
		STT: STTConfig{
			Backend:        "cli",
			Language:       "en",
			Threads:        4,
			TimeoutSeconds: 10,
		},
		LLM: LLMConfig{
			BaseURL:                 "http://localhost:11434",
			Model:                   "gemma3:4b",
			TranslateTimeoutSeconds: 10,
			SummarizeTimeoutSeconds: 120,
		},
		TTS: TTSConfig{
			Enabled:    false,
			BinaryPath: "piper",
		},
		VAD: VADConfig{
			Enabled: false,
			Mode:    2,
		},
		Store: StoreConfig{
			Enabled: true,
			Path:    filepath.Join(home, ".local", "share", "lectern", "sessions.db"),
		},
	}
}

// DefaultPath returns the default config file location
func DefaultPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "lectern", "config.toml")
	}
	return "config.toml"
}

// Load reads a config file, layering it over the defaults. A missing
// file is not an error; the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the configuration to a file
func (c Config) Save(path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks configuration consistency
func (c Config) Validate() error {
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio sample_rate must be positive, got %d", c.Audio.SampleRate)
	}
	if c.GetChunkDuration() <= 0 {
		return fmt.Errorf("audio chunk_duration must be positive")
	}
	if _, err := audio.ParseQueuePolicy(c.Pipeline.QueuePolicy); err != nil {
		return fmt.Errorf("invalid pipeline queue_policy: %w", err)
	}
	switch c.STT.Backend {
	case "cli", "http":
	default:
		return fmt.Errorf("invalid stt backend %q, must be cli or http", c.STT.Backend)
	}
	return nil
}

// GetChunkDuration returns the chunk duration, defaulting to 2s
func (c Config) GetChunkDuration() time.Duration {
	d, err := time.ParseDuration(c.Audio.ChunkDuration)
	if err != nil {
		return audio.DefaultChunkDuration
	}
	return d
}

// GetDequeueTimeout returns the queue poll timeout, defaulting to 500ms
func (c Config) GetDequeueTimeout() time.Duration {
	d, err := time.ParseDuration(c.Pipeline.DequeueTimeout)
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}
