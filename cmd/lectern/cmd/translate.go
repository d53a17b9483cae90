// ============================================================================
// lectern - Lecture Capture & Translation Utility
// ============================================================================
//
// Package:     cmd
// Description: Live translation command
// Author:      Ethan Koester-Schmidt
// Created:     2026-08-18
// License:     MIT
// ============================================================================

package cmd

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ekoester/lectern/internal/pipeline"
	"github.com/ekoester/lectern/internal/store"
	"github.com/ekoester/lectern/internal/tts"
	"github.com/ekoester/lectern/internal/tui"
)

var (
	trLanguage string
	trModel    string
	trSpeak    bool
	trPolicy   string
)

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Translate a lecture live",
	Long: `Captures microphone audio continuously, transcribes it with whisper
and translates each utterance with a local Ollama model. The translation
appears on screen a few seconds behind the speaker.

With --speak the translation is also read aloud via Piper. Playback is
synchronous, so the transcription queue absorbs whatever arrives while
a sentence is being spoken.

Examples:
  lectern translate                       # translate to the configured language
  lectern translate -l French             # override the target language
  lectern translate --speak               # voice the translations
  lectern translate --queue-policy drop_oldest`,
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVarP(&trLanguage, "language", "l", "",
		"target language (default from config)")
	translateCmd.Flags().StringVarP(&trModel, "model", "m", "",
		"Ollama model for translation (default from config)")
	translateCmd.Flags().BoolVar(&trSpeak, "speak", false,
		"read translations aloud via Piper")
	translateCmd.Flags().StringVar(&trPolicy, "queue-policy", "",
		"queue policy when transcription falls behind (unbounded, block, drop_oldest)")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if trLanguage != "" {
		cfg.General.TargetLanguage = trLanguage
	}
	if trModel != "" {
		cfg.LLM.Model = trModel
	}
	if trSpeak {
		cfg.TTS.Enabled = true
	}
	if trPolicy != "" {
		cfg.Pipeline.QueuePolicy = trPolicy
	}

	logger := setupLogger(cfg, true)

	capture, err := newCapture(cfg, logger)
	if err != nil {
		return err
	}
	defer capture.Close()

	queue, err := newQueue(cfg)
	if err != nil {
		return err
	}

	transcriber, err := newTranscriber(cfg, logger)
	if err != nil {
		return err
	}
	defer transcriber.Close()

	client, err := newLLMClient(cfg)
	if err != nil {
		return err
	}

	healthCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := client.HealthCheck(healthCtx); err != nil {
		cancel()
		return fmt.Errorf("Ollama is not reachable at %s - is it running?", cfg.LLM.BaseURL)
	}
	cancel()

	var speaker pipeline.Speaker
	if cfg.TTS.Enabled {
		synth, err := tts.NewPiperTTS(tts.Config{
			BinaryPath: cfg.TTS.BinaryPath,
			ModelPath:  cfg.TTS.ModelPath,
		})
		if err != nil {
			return fmt.Errorf("speech output unavailable: %w", err)
		}
		sp := pipeline.NewSynthSpeaker(synth)
		defer sp.Close()
		speaker = sp
	}

	filter, err := newChunkFilter(cfg)
	if err != nil {
		return err
	}
	var chunkFilter pipeline.ChunkFilter
	if filter != nil {
		defer filter.Close()
		chunkFilter = filter
	}

	sessions := newSessionStore(cfg, logger)
	if sessions != nil {
		defer sessions.Close()
	}

	pipeCfg := pipeline.Config{
		TargetLanguage: cfg.General.TargetLanguage,
		DequeueTimeout: cfg.GetDequeueTimeout(),
		SpeakEnabled:   cfg.TTS.Enabled,
	}

	model, callbacks := tui.NewTranslateModel(pipeCfg.TargetLanguage)
	pipe := pipeline.New(pipeCfg, capture, queue, transcriber, client, speaker, chunkFilter, callbacks, logger)
	model.Attach(pipe)

	sess := &store.Session{
		Kind:     store.KindTranslate,
		Model:    cfg.LLM.Model,
		Language: cfg.General.TargetLanguage,
	}
	if sessions != nil {
		if err := sessions.CreateSession(context.Background(), sess); err != nil {
			logger.Warn("failed to record session", "error", err)
		}
	}

	pipe.Start(context.Background())
	_, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()
	pipe.Stop()

	if sessions != nil {
		stats := pipe.Stats()
		sess.Chunks = int(stats.Captured)
		sess.Transcribed = int(stats.Transcribed)
		sess.Translated = int(stats.Translated)
		if err := sessions.FinishSession(context.Background(), sess); err != nil {
			logger.Warn("failed to finish session", "error", err)
		}
	}

	return runErr
}
