package controller

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	m "streamlens.dev/pkg/streamlens/internal/model"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	headerHeight  = 3
	footerHeight  = 2
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
	pointStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))

	kindStyles = map[m.Kind]lipgloss.Style{
		m.KindSubscribe:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		m.KindNext:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		m.KindError:       lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		m.KindCompleted:   lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		m.KindUnsubscribe: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
)

// TUI implements UI using Bubble Tea for live and replayed event streams.
// Static listings are printed like SimpleUI.
type TUI struct {
	*SimpleUI

	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{SimpleUI: NewSimpleUI(cmd)}
}

// Start launches the interactive program for collect and view modes.
func (t *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := newStartConfig(options)
	if cfg.mode == ModeList {
		return nil
	}

	program := tea.NewProgram(
		newEventModel(cfg.mode),
		tea.WithOutput(t.cmd.OutOrStdout()),
		tea.WithInput(t.cmd.InOrStdin()),
		tea.WithAltScreen(),
	)
	done := make(chan struct{})

	t.mu.Lock()
	t.program = program
	t.done = done
	t.mu.Unlock()

	go func() {
		defer close(done)

		if _, err := program.Run(); err != nil {
			slog.Error("tui stopped", "error", err)
		}

		if cfg.quit != nil {
			cfg.quit()
		}
	}()

	return nil
}

func (t *TUI) send(msg tea.Msg) bool {
	t.mu.Lock()
	program := t.program
	t.mu.Unlock()

	if program == nil {
		return false
	}

	program.Send(msg)

	return true
}

// Close tells the program no more records will arrive.
func (t *TUI) Close(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	t.send(finishedMsg{})
}

// Wait blocks until the user leaves the program or ctx is done.
func (t *TUI) Wait(ctx context.Context) {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()

	if done == nil {
		return
	}

	select {
	case <-done:
	case <-ctx.Done():
	}
}

// DisplayCollectorInfo shows the collector address in the header.
func (t *TUI) DisplayCollectorInfo(ctx context.Context, info CollectorInfo) {
	if ctx.Err() != nil {
		return
	}

	status := fmt.Sprintf("listening on %s (%s), %d probe(s)", info.Addr, info.Codec, info.Probes)
	if !t.send(statusMsg(status)) {
		t.SimpleUI.DisplayCollectorInfo(ctx, info)
	}
}

// DisplayRecord appends a record to the event view.
func (t *TUI) DisplayRecord(ctx context.Context, record m.Record) {
	if ctx.Err() != nil {
		return
	}

	if !t.send(recordMsg(record)) {
		t.SimpleUI.DisplayRecord(ctx, record)
	}
}

// DisplaySummary shows per-probe counts below the event view.
func (t *TUI) DisplaySummary(ctx context.Context, summary Summary) {
	if ctx.Err() != nil {
		return
	}

	if !t.send(summaryMsg(renderSummaryTable(summary))) {
		t.SimpleUI.DisplaySummary(ctx, summary)
	}
}

type (
	recordMsg   m.Record
	statusMsg   string
	summaryMsg  string
	finishedMsg struct{}
)

// eventModel is the Bubble Tea model for the event stream.
type eventModel struct {
	mode     StartMode
	viewport viewport.Model
	lines    []string
	status   string
	summary  string
	finished bool
	follow   bool
	quitting bool
}

func newEventModel(mode StartMode) eventModel {
	return eventModel{
		mode:     mode,
		viewport: viewport.New(defaultWidth, defaultHeight-headerHeight-footerHeight),
		status:   "waiting for events",
		follow:   true,
	}
}

func (em eventModel) Init() tea.Cmd {
	return nil
}

func (em eventModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		em.viewport.Width = msg.Width
		em.viewport.Height = max(msg.Height-headerHeight-footerHeight-em.summaryHeight(), 1)

		return em, nil

	case recordMsg:
		em.lines = append(em.lines, renderRecordLine(m.Record(msg)))
		em.viewport.SetContent(strings.Join(em.lines, "\n"))

		if em.follow {
			em.viewport.GotoBottom()
		}

		return em, nil

	case statusMsg:
		em.status = string(msg)
		return em, nil

	case summaryMsg:
		em.summary = string(msg)
		return em, nil

	case finishedMsg:
		em.finished = true
		if em.mode == ModeCollect {
			return em, tea.Quit
		}

		return em, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			em.quitting = true
			return em, tea.Quit
		}
	}

	var cmd tea.Cmd

	em.viewport, cmd = em.viewport.Update(msg)
	em.follow = em.viewport.AtBottom()

	return em, cmd
}

func (em eventModel) summaryHeight() int {
	if em.summary == "" {
		return 0
	}

	return strings.Count(em.summary, "\n") + 1
}

func (em eventModel) View() string {
	if em.quitting {
		return ""
	}

	var b strings.Builder

	title := "streamlens - live events"
	if em.mode == ModeView {
		title = "streamlens - session replay"
	}

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf("%s | %d event(s)", em.status, len(em.lines))))
	b.WriteString("\n\n")
	b.WriteString(em.viewport.View())
	b.WriteString("\n")

	if em.summary != "" {
		b.WriteString(em.summary)
	}

	help := "↑/↓ scroll • q quit"
	if em.finished {
		help = "end of session • " + help
	}

	b.WriteString(helpStyle.Render(help))
	b.WriteString("\n")

	return b.String()
}

func renderRecordLine(record m.Record) string {
	style, ok := kindStyles[record.Kind]
	if !ok {
		style = lipgloss.NewStyle()
	}

	line := fmt.Sprintf("%s  %s  %s",
		record.Received.Format(timeLayout),
		style.Render(fmt.Sprintf("%-11s", record.Kind)),
		pointStyle.Render(record.Point.String()),
	)

	if record.Payload != "" {
		line += "  " + record.Payload
	}

	return line
}
