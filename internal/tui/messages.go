// ============================================================================
// lectern - Lecture Capture & Translation Utility
// ============================================================================
//
// Package:     tui
// Description: Bubbletea messages shared by the lectern views
// Author:      Ethan Koester-Schmidt
// Created:     2026-08-18
// License:     MIT
// ============================================================================

package tui

import (
	"time"

	"github.com/ekoester/lectern/internal/pipeline"
	"github.com/ekoester/lectern/internal/recorder"
)

// tickMsg drives the elapsed-time display
type tickMsg time.Time

// transcriptMsg carries an intermediate transcription
type transcriptMsg pipeline.Transcript

// translationMsg carries a finished translation
type translationMsg pipeline.Translation

// pipelineErrMsg carries a non-fatal pipeline error
type pipelineErrMsg struct {
	err error
}

// finalizeDoneMsg carries the outcome of recorder finalization
type finalizeDoneMsg struct {
	result *recorder.Result
	err    error
}
