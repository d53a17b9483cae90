// ============================================================================
// lectern - Lecture Capture & Translation Utility
// ============================================================================
//
// Package:     tui
// Description: Lecture recording view
// Author:      Ethan Koester-Schmidt
// Created:     2026-08-18
// License:     MIT
// ============================================================================

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ekoester/lectern/internal/recorder"
)

// recordPhase tracks where the recording session is
type recordPhase int

const (
	phaseIdle recordPhase = iota
	phaseRecording
	phaseFinalizing
	phaseDone
	phaseFailed
)

// RecordModel is the Bubbletea model for the lecture recording view
type RecordModel struct {
	width int

	spinner spinner.Model
	rec     *recorder.Recorder

	phase  recordPhase
	result *recorder.Result
	err    error
}

// NewRecordModel creates the recording view
func NewRecordModel(rec *recorder.Recorder) *RecordModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	return &RecordModel{
		spinner: sp,
		rec:     rec,
	}
}

// Init initializes the model
func (m *RecordModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tick())
}

// finalize transcribes and summarizes the recording off the UI loop
func (m *RecordModel) finalize() tea.Cmd {
	return func() tea.Msg {
		result, err := m.rec.Finalize(context.Background())
		return finalizeDoneMsg{result: result, err: err}
	}
}

// Update handles messages
func (m *RecordModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case spinner.TickMsg:
		if m.phase == phaseRecording || m.phase == phaseFinalizing {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tickMsg:
		// Auto-stop on the length cap surfaces here as a phase change.
		if m.phase == phaseRecording && !m.rec.IsRecording() {
			m.phase = phaseFinalizing
			cmds = append(cmds, m.finalize())
		}
		cmds = append(cmds, tick())

	case finalizeDoneMsg:
		m.result = msg.result
		m.err = msg.err
		if msg.err != nil {
			m.phase = phaseFailed
		} else {
			m.phase = phaseDone
		}
	}

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input
func (m *RecordModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.rec.Stop()
		return m, tea.Quit

	case "q":
		switch m.phase {
		case phaseRecording:
			m.phase = phaseFinalizing
			m.rec.Stop()
			return m, m.finalize()
		case phaseFinalizing:
			return m, nil // wait for the summary
		default:
			return m, tea.Quit
		}

	case " ":
		switch m.phase {
		case phaseIdle:
			m.phase = phaseRecording
			m.rec.Start(context.Background())
		case phaseRecording:
			m.phase = phaseFinalizing
			m.rec.Stop()
			return m, m.finalize()
		}
		return m, nil
	}
	return m, nil
}

// View renders the UI
func (m *RecordModel) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("lectern"))
	b.WriteString("  ")
	b.WriteString(HelpDescStyle.Render("lecture recorder"))
	b.WriteString("\n\n")

	switch m.phase {
	case phaseIdle:
		b.WriteString(StatusIdleStyle.Render("Ready. Press SPACE to start recording."))

	case phaseRecording:
		elapsed := m.rec.Elapsed().Round(time.Second)
		b.WriteString(StatusRecordingStyle.Render("● REC "))
		b.WriteString(m.spinner.View())
		b.WriteString(fmt.Sprintf("  %s / %s", elapsed, m.rec.MaxDuration()))

	case phaseFinalizing:
		b.WriteString(m.spinner.View())
		b.WriteString(" Transcribing and summarizing... this can take a few minutes.")

	case phaseDone:
		b.WriteString(StatusDoneStyle.Render("✓ Done"))
		b.WriteString("\n\n")
		if m.result != nil {
			b.WriteString(fmt.Sprintf("Recorded %s of audio.\n", m.result.Duration.Round(time.Second)))
			if m.result.SummaryPath != "" {
				b.WriteString("Summary: " + m.result.SummaryPath + "\n")
			}
			if m.result.AudioPath != "" {
				b.WriteString("Audio:   " + m.result.AudioPath + "\n")
			}
		}

	case phaseFailed:
		b.WriteString(ErrorStyle.Render("✗ " + m.err.Error()))
		if m.result != nil && m.result.AudioPath != "" {
			b.WriteString("\n\nThe recording was kept at " + m.result.AudioPath + "\n")
		}
	}

	b.WriteString("\n\n")
	b.WriteString(strings.Join([]string{
		RenderKeyHint("space", "start/stop"),
		RenderKeyHint("q", "quit"),
	}, "  "))
	b.WriteString("\n")
	return b.String()
}
