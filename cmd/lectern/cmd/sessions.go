// ============================================================================
// lectern - Lecture Capture & Translation Utility
// ============================================================================
//
// Package:     cmd
// Description: Session history listing
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

	"github.com/ekoester/lectern/internal/store"
)

var sessionsLimit int

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Show past translation and recording sessions",
	RunE:  runSessions,
}

func init() {
	rootCmd.AddCommand(sessionsCmd)

	sessionsCmd.Flags().IntVarP(&sessionsLimit, "limit", "n", 20, "number of sessions to show")
}

func runSessions(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.Store.Enabled {
		return fmt.Errorf("session history is disabled in the config")
	}

	s, err := store.NewSQLiteSessionStore(store.Config{Path: cfg.Store.Path})
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	defer s.Close()

	sessions, err := s.ListSessions(context.Background(), sessionsLimit)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		return nil
	}

	for _, sess := range sessions {
		duration := "running"
		if !sess.EndedAt.IsZero() {
			duration = sess.Duration().Round(time.Second).String()
		}
		fmt.Printf("%s  %-9s  %-10s  %s\n",
			sess.StartedAt.Format("2006-01-02 15:04"), sess.Kind, duration, sess.Model)
		switch sess.Kind {
		case store.KindTranslate:
			fmt.Printf("    %d chunks, %d transcribed, %d translated to %s\n",
				sess.Chunks, sess.Transcribed, sess.Translated, sess.Language)
		case store.KindRecord:
			if sess.SummaryPath != "" {
				fmt.Printf("    summary: %s\n", sess.SummaryPath)
			}
		}
	}
	return nil
}
