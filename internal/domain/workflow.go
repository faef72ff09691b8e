package domain

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"streamlens.dev/pkg/streamlens/internal/adapter"
	"streamlens.dev/pkg/streamlens/internal/controller"
	m "streamlens.dev/pkg/streamlens/internal/model"
	"streamlens.dev/pkg/streamlens/internal/position"
)

// ErrNoCandidate is returned when no instrumentable operator sits at the
// requested position.
var ErrNoCandidate = errors.New("no instrumentable operator at position")

// ErrUnreportableColumn is returned when registering a point at static
// column 0. Its runtime column would be negative, so no runtime event can
// ever match it.
var ErrUnreportableColumn = errors.New("column 0 has no runtime encoding")

// LocateArgs contains the arguments for resolving an operator at a position.
type LocateArgs struct {
	File   m.Path
	Line   int // zero-based
	Column int // zero-based
}

// RegisterArgs contains the arguments for registering a probe point.
type RegisterArgs struct {
	Probes m.Path
	File   m.Path
	Line   int
	Column int
	// Exact registers the position as given instead of resolving the
	// operator under it first.
	Exact bool
}

// ListArgs contains the arguments for listing probes or candidates.
type ListArgs struct {
	Probes     m.Path
	Paths      []m.Path
	Candidates bool
	Threads    uint
}

// Workflow defines the streamlens command workflows.
type Workflow interface {
	Locate(ctx context.Context, args LocateArgs) error
	Register(ctx context.Context, args RegisterArgs) error
	List(ctx context.Context, args ListArgs) error
	Collect(ctx context.Context, args CollectArgs) error
	View(ctx context.Context, args ViewArgs) error
	Demo(ctx context.Context, args DemoArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.SyntaxAdapter
	adapter.ProbeStore
	adapter.SessionStore
	controller.UI

	locator Locator
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	syntaxAdapter adapter.SyntaxAdapter,
	probeStore adapter.ProbeStore,
	sessionStore adapter.SessionStore,
	ui controller.UI,
	locator Locator,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		SyntaxAdapter:   syntaxAdapter,
		ProbeStore:      probeStore,
		SessionStore:    sessionStore,
		UI:              ui,
		locator:         locator,
	}
}

// Locate resolves the operator at a file position and displays it.
func (w *workflow) Locate(ctx context.Context, args LocateArgs) error {
	candidate, err := w.candidateAt(ctx, args.File, args.Line, args.Column)
	if err != nil {
		return err
	}

	if err := w.Start(ctx, controller.WithListMode()); err != nil {
		slog.Error("Failed to start UI", "error", err)
		return err
	}

	w.DisplayCandidates(ctx, []m.Candidate{candidate})
	w.Close(ctx)

	return nil
}

// Register adds a probe point to the probe store. Unless args.Exact is set,
// the point is the start of the operator found at the given position.
func (w *workflow) Register(ctx context.Context, args RegisterArgs) error {
	var point m.Location

	if args.Exact {
		abs, err := w.AbsPath(args.File)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", args.File, err)
		}

		point = m.Location{File: string(abs), Line: args.Line, Column: args.Column}
	} else {
		candidate, err := w.candidateAt(ctx, args.File, args.Line, args.Column)
		if err != nil {
			return err
		}

		point = candidate.Location
	}

	if !point.Valid() {
		return fmt.Errorf("invalid probe point %s", point)
	}

	added, err := RegisterPoint(ctx, w.ProbeStore, args.Probes, point)
	if err != nil {
		return err
	}

	if err := w.Start(ctx, controller.WithListMode()); err != nil {
		slog.Error("Failed to start UI", "error", err)
		return err
	}

	w.DisplayRegistered(ctx, point, added)
	w.Close(ctx)

	return nil
}

// RegisterPoint loads the probe points at path, registers point and saves
// the result under the probe store lock, so concurrent registrations from
// the editor and the CLI are all kept. It reports false when point was
// already registered.
func RegisterPoint(ctx context.Context, store adapter.ProbeStore, path m.Path, point m.Location) (bool, error) {
	if !point.Valid() {
		return false, fmt.Errorf("invalid probe point %s", point)
	}

	if point.Column < m.RuntimeColumnSkew {
		return false, fmt.Errorf("probe point %s: %w", point, ErrUnreportableColumn)
	}

	unlock, err := adapter.LockProbes(ctx, path)
	if err != nil {
		return false, err
	}
	defer unlock()

	points, err := store.LoadProbes(path)
	if err != nil {
		return false, fmt.Errorf("load probes: %w", err)
	}

	registry := NewRegistry(points...)
	if !registry.Register(point) {
		return false, nil
	}

	if err := store.SaveProbes(path, registry.Points()); err != nil {
		return false, fmt.Errorf("save probes: %w", err)
	}

	slog.Info("registered probe", "point", point.String(), "probes", registry.Len())

	return true, nil
}

// List displays the registered probe points, or every instrumentable call
// under args.Paths when args.Candidates is set.
func (w *workflow) List(ctx context.Context, args ListArgs) error {
	if err := w.Start(ctx, controller.WithListMode()); err != nil {
		slog.Error("Failed to start UI", "error", err)
		return err
	}
	defer w.Close(ctx)

	if !args.Candidates {
		points, err := w.LoadProbes(args.Probes)
		if err != nil {
			return fmt.Errorf("load probes: %w", err)
		}

		w.DisplayProbes(ctx, points)

		return nil
	}

	candidates, err := w.scanCandidates(ctx, args.Paths, args.Threads)
	if err != nil {
		return err
	}

	w.DisplayCandidates(ctx, candidates)

	return nil
}

func (w *workflow) scanCandidates(ctx context.Context, paths []m.Path, threads uint) ([]m.Candidate, error) {
	files, err := w.SourceFiles(paths)
	if err != nil {
		return nil, fmt.Errorf("get sources: %w", err)
	}

	var (
		candidates []m.Candidate
		mu         sync.Mutex
	)

	group, groupCtx := errgroup.WithContext(ctx)
	if threads > 0 {
		group.SetLimit(int(threads))
	}

	for _, file := range files {
		group.Go(func() error {
			found, err := w.fileCandidates(groupCtx, file)
			if err != nil {
				if groupCtx.Err() != nil {
					return groupCtx.Err()
				}

				slog.Warn("Skipping unparsable source", "file", file, "error", err)

				return nil
			}

			mu.Lock()
			candidates = append(candidates, found...)
			mu.Unlock()

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	slices.SortFunc(candidates, func(a, b m.Candidate) int {
		return cmp.Or(
			cmp.Compare(a.Location.File, b.Location.File),
			cmp.Compare(a.Start, b.Start),
		)
	})

	return candidates, nil
}

func (w *workflow) fileCandidates(ctx context.Context, file m.Path) ([]m.Candidate, error) {
	abs, src, err := w.readSource(file)
	if err != nil {
		return nil, err
	}

	root, err := w.Parse(ctx, string(abs), src)
	if err != nil {
		return nil, err
	}

	return w.locator.Candidates(string(abs), string(src), root), nil
}

// candidateAt resolves the operator at a zero-based line/column in file.
func (w *workflow) candidateAt(ctx context.Context, file m.Path, line, column int) (m.Candidate, error) {
	abs, src, err := w.readSource(file)
	if err != nil {
		return m.Candidate{}, err
	}

	text := string(src)

	offset, err := position.PositionToOffset(text, line, column)
	if err != nil {
		return m.Candidate{}, fmt.Errorf("position %s:%d:%d: %w", file, line, column, err)
	}

	root, err := w.Parse(ctx, string(abs), src)
	if err != nil {
		return m.Candidate{}, err
	}

	candidate, ok := w.locator.Locate(string(abs), text, root, offset)
	if !ok {
		return m.Candidate{}, fmt.Errorf("%s:%d:%d: %w", file, line, column, ErrNoCandidate)
	}

	return candidate, nil
}

func (w *workflow) readSource(file m.Path) (m.Path, []byte, error) {
	abs, err := w.AbsPath(file)
	if err != nil {
		return "", nil, fmt.Errorf("resolve %s: %w", file, err)
	}

	src, err := w.ReadFile(abs)
	if err != nil {
		return "", nil, fmt.Errorf("read %s: %w", file, err)
	}

	return abs, src, nil
}
