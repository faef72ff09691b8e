// Package controller provides output adapters for displaying probes and
// collected telemetry.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "streamlens.dev/pkg/streamlens/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeList StartMode = iota
	ModeCollect
	ModeView
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
	quit func()
}

// WithListMode sets the UI to static listing mode.
func WithListMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeList
	}
}

// WithCollectMode sets the UI to live collection mode. quit is called when
// the user asks to stop collecting.
func WithCollectMode(quit func()) StartOption {
	return func(c *StartConfig) {
		c.mode = ModeCollect
		c.quit = quit
	}
}

// WithViewMode sets the UI to session replay mode.
func WithViewMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeView
	}
}

func newStartConfig(options []StartOption) StartConfig {
	cfg := StartConfig{mode: ModeList}
	for _, option := range options {
		option(&cfg)
	}

	return cfg
}

// CollectorInfo describes a running collector.
type CollectorInfo struct {
	Addr    string
	Codec   string
	Probes  int
	Session string
}

// Summary counts the records of a session per probe point and kind.
type Summary struct {
	Records int
	Counts  map[m.Location]map[m.Kind]int
}

// Add counts record.
func (s *Summary) Add(record m.Record) {
	if s.Counts == nil {
		s.Counts = make(map[m.Location]map[m.Kind]int)
	}

	perKind := s.Counts[record.Point]
	if perKind == nil {
		perKind = make(map[m.Kind]int)
		s.Counts[record.Point] = perKind
	}

	perKind[record.Kind]++
	s.Records++
}

// UI defines the interface for displaying streamlens output.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish (user closes it)
	DisplayCandidates(ctx context.Context, candidates []m.Candidate)
	DisplayProbes(ctx context.Context, points []m.Location)
	DisplayRegistered(ctx context.Context, point m.Location, added bool)
	DisplayCollectorInfo(ctx context.Context, info CollectorInfo)
	DisplayRecord(ctx context.Context, record m.Record)
	DisplaySummary(ctx context.Context, summary Summary)
}

// NewUI returns a TUI when output is a terminal and a SimpleUI otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in int
}
