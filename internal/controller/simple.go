package controller

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "streamlens.dev/pkg/streamlens/internal/model"
)

const timeLayout = "15:04:05.000"

// SimpleUI implements UI using cobra Command's output.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
	// SimpleUI doesn't block - it just prints and continues
}

// DisplayCandidates prints a table of instrumentable calls.
func (s *SimpleUI) DisplayCandidates(ctx context.Context, candidates []m.Candidate) {
	if ctx.Err() != nil {
		return
	}

	s.printf("\n%s", renderCandidatesTable(candidates))
}

// DisplayProbes prints a table of registered probe points.
func (s *SimpleUI) DisplayProbes(ctx context.Context, points []m.Location) {
	if ctx.Err() != nil {
		return
	}

	s.printf("\n%s", renderProbesTable(points))
}

// DisplayRegistered confirms a registration.
func (s *SimpleUI) DisplayRegistered(ctx context.Context, point m.Location, added bool) {
	if ctx.Err() != nil {
		return
	}

	if added {
		s.printf("Registered probe %s\n", point)
		return
	}

	s.printf("Probe %s is already registered\n", point)
}

// DisplayCollectorInfo prints where the collector listens.
func (s *SimpleUI) DisplayCollectorInfo(ctx context.Context, info CollectorInfo) {
	if ctx.Err() != nil {
		return
	}

	s.printf("Collecting on %s (%s) for %d probe(s)\n", info.Addr, info.Codec, info.Probes)

	if info.Session != "" {
		s.printf("Session log: %s\n", info.Session)
	}
}

// DisplayRecord prints one admitted event.
func (s *SimpleUI) DisplayRecord(ctx context.Context, record m.Record) {
	if ctx.Err() != nil {
		return
	}

	s.printf("%s\n", formatRecord(record))
}

// DisplaySummary prints per-probe event counts.
func (s *SimpleUI) DisplaySummary(ctx context.Context, summary Summary) {
	if ctx.Err() != nil {
		return
	}

	s.printf("\n%s", renderSummaryTable(summary))
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func formatRecord(record m.Record) string {
	line := fmt.Sprintf("%s  %-11s  %s", record.Received.Format(timeLayout), record.Kind, record.Point)
	if record.Payload != "" {
		line += "  " + record.Payload
	}

	return line
}

func newTable(buf *bytes.Buffer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(buf)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	return table
}

func renderCandidatesTable(candidates []m.Candidate) string {
	var buf bytes.Buffer

	table := newTable(&buf, []string{"Operator", "Location"})
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, candidate := range candidates {
		table.Append([]string{candidate.Name, candidate.Location.String()})
	}

	table.SetFooter([]string{"Total", fmt.Sprintf("%d", len(candidates))})
	table.Render()

	return buf.String()
}

func renderProbesTable(points []m.Location) string {
	var buf bytes.Buffer

	table := newTable(&buf, []string{"#", "File", "Line", "Column"})
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
	})

	for i, point := range points {
		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			point.File,
			fmt.Sprintf("%d", point.Line),
			fmt.Sprintf("%d", point.Column),
		})
	}

	table.Render()

	return buf.String()
}

func renderSummaryTable(summary Summary) string {
	var buf bytes.Buffer

	header := []string{"Probe"}
	for _, kind := range m.Kinds {
		header = append(header, string(kind))
	}

	table := newTable(&buf, header)

	points := make([]m.Location, 0, len(summary.Counts))
	for point := range summary.Counts {
		points = append(points, point)
	}

	slices.SortFunc(points, func(a, b m.Location) int {
		return strings.Compare(a.String(), b.String())
	})

	for _, point := range points {
		row := []string{point.String()}
		for _, kind := range m.Kinds {
			row = append(row, fmt.Sprintf("%d", summary.Counts[point][kind]))
		}

		table.Append(row)
	}

	footer := make([]string, len(header))
	footer[0] = fmt.Sprintf("Total %d", summary.Records)
	table.SetFooter(footer)
	table.Render()

	return buf.String()
}
