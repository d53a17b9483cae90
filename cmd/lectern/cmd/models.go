// ============================================================================
// lectern - Lecture Capture & Translation Utility
// ============================================================================
//
// Package:     cmd
// Description: Model and voice inventory
// Author:      Ethan Koester-Schmidt
// Created:     2026-08-18
// License:     MIT
// ============================================================================

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ekoester/lectern/internal/tts"
)

var modelsVoicesDir string

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List available models",
	Long: `Shows the Ollama models available for translation and summarization,
and optionally the installed Piper voices.

Examples:
  lectern models
  lectern models --voices-dir ~/piper/voices`,
	RunE: runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)

	modelsCmd.Flags().StringVar(&modelsVoicesDir, "voices-dir", "",
		"also list Piper voices from this directory")
}

func runModels(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := newLLMClient(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	models, err := client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models (is Ollama running at %s?): %w", cfg.LLM.BaseURL, err)
	}

	fmt.Println("Ollama models:")
	if len(models) == 0 {
		fmt.Println("  (none - pull one with: ollama pull gemma3:4b)")
	}
	for _, m := range models {
		marker := "  "
		if m == cfg.LLM.Model {
			marker = "* "
		}
		fmt.Printf("%s%s\n", marker, m)
	}

	if modelsVoicesDir != "" {
		voices, err := tts.ListVoices(modelsVoicesDir)
		if err != nil {
			return fmt.Errorf("failed to list voices: %w", err)
		}
		fmt.Println("\nPiper voices:")
		for _, v := range voices {
			fmt.Printf("  %s (%d Hz)\n", v.Name, v.SampleRate)
		}
	}
	return nil
}
