// ============================================================================
// lectern - Lecture Capture & Translation Utility
// ============================================================================
//
// Package:     tui
// Description: Live translation view
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
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ekoester/lectern/internal/pipeline"
)

// maxVisibleTranslations bounds the scrollback kept in memory
const maxVisibleTranslations = 500

// TranslateModel is the Bubbletea model for the live translation view
type TranslateModel struct {
	width  int
	height int
	ready  bool

	viewport viewport.Model
	spinner  spinner.Model

	pipe           *pipeline.Pipeline
	events         chan tea.Msg
	targetLanguage string

	translations []pipeline.Translation
	pending      string
	lastErr      error
	startedAt    time.Time
	quitting     bool
}

// NewTranslateModel creates the live translation view along with the
// pipeline callbacks that feed it. The pipeline is built afterwards with
// those callbacks and attached via Attach before the program runs.
func NewTranslateModel(targetLanguage string) (*TranslateModel, pipeline.Events) {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	events := make(chan tea.Msg, 64)
	m := &TranslateModel{
		spinner:        sp,
		events:         events,
		targetLanguage: targetLanguage,
	}

	callbacks := pipeline.Events{
		OnTranscript: func(t pipeline.Transcript) {
			select {
			case events <- transcriptMsg(t):
			default:
			}
		},
		OnTranslation: func(t pipeline.Translation) {
			select {
			case events <- translationMsg(t):
			default:
			}
		},
		OnError: func(err error) {
			select {
			case events <- pipelineErrMsg{err: err}:
			default:
			}
		},
	}
	return m, callbacks
}

// Attach wires the pipeline into the view. Must be called before Run.
func (m *TranslateModel) Attach(pipe *pipeline.Pipeline) {
	m.pipe = pipe
}

// waitForEvent returns a command that delivers the next pipeline event
func (m *TranslateModel) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init initializes the model
func (m *TranslateModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.waitForEvent(),
		tick(),
		tea.EnterAltScreen,
	)
}

// Update handles messages
func (m *TranslateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 3
		footerHeight := 3
		viewportHeight := msg.Height - headerHeight - footerHeight
		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
		m.updateViewportContent()

	case spinner.TickMsg:
		if m.running() {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tickMsg:
		cmds = append(cmds, tick())

	case transcriptMsg:
		m.pending = msg.Text
		cmds = append(cmds, m.waitForEvent())

	case translationMsg:
		m.pending = ""
		m.lastErr = nil
		m.translations = append(m.translations, pipeline.Translation(msg))
		if len(m.translations) > maxVisibleTranslations {
			m.translations = m.translations[len(m.translations)-maxVisibleTranslations:]
		}
		m.updateViewportContent()
		m.viewport.GotoBottom()
		cmds = append(cmds, m.waitForEvent())

	case pipelineErrMsg:
		m.lastErr = msg.err
		cmds = append(cmds, m.waitForEvent())
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input
func (m *TranslateModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		m.pipe.Stop()
		return m, tea.Quit

	case " ":
		if m.running() {
			m.pipe.Stop()
		} else {
			m.pipe.Start(context.Background())
		}
		return m, nil

	case "up":
		m.viewport.LineUp(1)
		return m, nil
	case "down":
		m.viewport.LineDown(1)
		return m, nil
	case "pgup":
		m.viewport.ViewUp()
		return m, nil
	case "pgdown":
		m.viewport.ViewDown()
		return m, nil
	}
	return m, nil
}

func (m *TranslateModel) running() bool {
	return m.pipe.State().Current() == pipeline.StateRunning
}

// View renders the UI
func (m *TranslateModel) View() string {
	if m.quitting {
		stats := m.pipe.Stats()
		return fmt.Sprintf("Session finished: %d chunks captured, %d transcribed, %d translated.\n",
			stats.Captured, stats.Transcribed, stats.Translated)
	}
	if !m.ready {
		return "Starting..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(PanelStyle.Width(m.width - 2).Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderHeader renders the title and capture status
func (m *TranslateModel) renderHeader() string {
	title := TitleStyle.Render("lectern")
	subtitle := HelpDescStyle.Render("live translation to " + m.targetLanguage)

	state := m.pipe.State().Current()
	var status string
	switch state {
	case pipeline.StateRunning:
		status = StatusRecordingStyle.Render(state.Icon() + " " + state.String() + " " + m.spinner.View())
	default:
		status = StatusIdleStyle.Render(state.Icon() + " " + state.String())
	}

	return lipgloss.JoinHorizontal(lipgloss.Center,
		title, "  ", subtitle, "  ", status)
}

// renderFooter renders the status line and key hints
func (m *TranslateModel) renderFooter() string {
	var status string
	if m.lastErr != nil {
		status = ErrorStyle.Render("error: " + m.lastErr.Error())
	} else if m.pending != "" {
		status = SourceTextStyle.Render("… " + m.pending)
	} else {
		stats := m.pipe.Stats()
		status = HelpDescStyle.Render(fmt.Sprintf("captured %d  translated %d  dropped %d",
			stats.Captured, stats.Translated, stats.Dropped))
	}

	help := strings.Join([]string{
		RenderKeyHint("space", "pause/resume"),
		RenderKeyHint("↑/↓", "scroll"),
		RenderKeyHint("q", "quit"),
	}, "  ")

	return status + "\n" + help
}

// updateViewportContent rebuilds the scrollback
func (m *TranslateModel) updateViewportContent() {
	var content strings.Builder
	for _, t := range m.translations {
		content.WriteString(TimestampStyle.Render(t.At.Format("15:04:05")))
		content.WriteString(" ")
		content.WriteString(SourceTextStyle.Render(t.Source))
		content.WriteString("\n         ")
		content.WriteString(TranslationStyle.Render(t.Text))
		content.WriteString("\n")
	}
	m.viewport.SetContent(content.String())
}
