// ============================================================================
// lectern - Lecture Capture & Translation Utility
// ============================================================================
//
// Package:     cmd
// Description: Root CLI command
// Author:      Ethan Koester-Schmidt
// Created:     2026-08-18
// License:     MIT
// ============================================================================

package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ekoester/lectern/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "lectern",
	Short: "lectern - live lecture translation and recording",
	Long: `lectern captures lecture audio from the microphone and turns it into
text you can actually use:

  translate  - live transcription and translation while the lecture runs
  record     - record a full lecture, then transcribe and summarize it

Everything runs locally: whisper for speech recognition, Ollama for
translation and summaries, and optionally Piper for speech output.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/lectern/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads the configuration honoring the --config flag
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// setupLogger builds the application logger. TUI commands log to a file
// so log lines never tear the rendered screen.
func setupLogger(cfg config.Config, toFile bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose || cfg.General.LogLevel == "debug" {
		level = slog.LevelDebug
	} else if cfg.General.LogLevel == "warn" {
		level = slog.LevelWarn
	}

	out := os.Stderr
	if toFile {
		if f, err := os.OpenFile("lectern.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			out = f
		}
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
}
