// ============================================================================
// lectern - Lecture Capture & Translation Utility
// ============================================================================
//
// Package:     cmd
// Description: Full-lecture recording command
// Author:      Ethan Koester-Schmidt
// Created:     2026-08-18
// License:     MIT
// ============================================================================

package cmd

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ekoester/lectern/internal/recorder"
	"github.com/ekoester/lectern/internal/tui"
)

var (
	recOutputDir  string
	recMaxMinutes int
	recKeepAudio  bool
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a lecture and summarize it afterwards",
	Long: `Records the whole lecture into memory, then transcribes it and writes
a summary next to the recording.

Recording stops on keypress or automatically after the maximum length.
The intermediate transcript is removed once the summary is written; the
WAV file too, unless --keep-audio is set.

Examples:
  lectern record                       # record into the configured output dir
  lectern record -o ~/Lectures/cs101   # choose the output directory
  lectern record --keep-audio          # keep the WAV alongside the summary
  lectern record --max-minutes 45      # shorter auto-stop for a seminar slot`,
	RunE: runRecord,
}

func init() {
	rootCmd.AddCommand(recordCmd)

	recordCmd.Flags().StringVarP(&recOutputDir, "output-dir", "o", "",
		"directory for recordings and summaries (default from config)")
	recordCmd.Flags().IntVar(&recMaxMinutes, "max-minutes", 0,
		"maximum recording length in minutes (default 90)")
	recordCmd.Flags().BoolVar(&recKeepAudio, "keep-audio", false,
		"keep the WAV file after summarization")
}

func runRecord(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := setupLogger(cfg, true)

	capture, err := newCapture(cfg, logger)
	if err != nil {
		return err
	}
	defer capture.Close()

	transcriber, err := newTranscriber(cfg, logger)
	if err != nil {
		return err
	}
	defer transcriber.Close()

	client, err := newLLMClient(cfg)
	if err != nil {
		return err
	}

	sessions := newSessionStore(cfg, logger)
	if sessions != nil {
		defer sessions.Close()
	}

	recCfg := recorder.DefaultConfig()
	recCfg.OutputDir = cfg.General.OutputDir
	if recOutputDir != "" {
		recCfg.OutputDir = recOutputDir
	}
	if recMaxMinutes > 0 {
		recCfg.MaxDuration = time.Duration(recMaxMinutes) * time.Minute
	}
	recCfg.KeepAudio = recKeepAudio

	rec := recorder.New(recCfg, capture, transcriber, client, sessions, logger)

	fmt.Println("Press SPACE to start recording.")
	_, err = tea.NewProgram(tui.NewRecordModel(rec)).Run()
	return err
}
