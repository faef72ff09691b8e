package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"golang.org/x/sync/errgroup"

	"streamlens.dev/pkg/streamlens/internal/controller"
	m "streamlens.dev/pkg/streamlens/internal/model"
	"streamlens.dev/pkg/streamlens/internal/telemetry"
	"streamlens.dev/pkg/streamlens/pkg"
)

// collectBuffer bounds the events decoded but not yet correlated.
const collectBuffer = 256

// ErrNoSessions is returned by View when the events directory holds no
// session logs.
var ErrNoSessions = errors.New("no recorded sessions")

// CollectArgs contains the arguments for collecting telemetry.
type CollectArgs struct {
	Probes   m.Path
	Addr     string
	Codec    telemetry.Codec
	Prefixes []string
	// Events is the directory for the session log. Empty disables recording.
	Events m.Path
	// Listener, when set, is used instead of listening on Addr.
	Listener net.Listener
}

// ViewArgs contains the arguments for replaying a session log.
type ViewArgs struct {
	Events m.Path
	// Session selects a log file. The latest session in Events is used when empty.
	Session m.Path
}

// Collect serves the telemetry collector until ctx is done or the user quits.
// Decoded events go through the correlator; admitted events are displayed
// and appended to the session log. Points registered while collecting are
// admitted as soon as the probe store changes.
func (w *workflow) Collect(ctx context.Context, args CollectArgs) error {
	if args.Codec == nil {
		args.Codec = telemetry.JSONCodec{}
	}

	points, err := w.LoadProbes(args.Probes)
	if err != nil {
		return fmt.Errorf("load probes: %w", err)
	}

	if len(points) == 0 {
		slog.Warn("No probes registered, every event will be discarded", "probes", args.Probes)
	}

	registry := NewRegistry(points...)
	correlator := NewCorrelator(registry, StripBundlerPrefix(args.Prefixes...))

	var session pkg.FileSpill[m.Record]

	if args.Events != "" {
		session, err = w.NewSession(args.Events)
		if err != nil {
			return fmt.Errorf("create session: %w", err)
		}

		defer func() {
			if closeErr := session.Close(); closeErr != nil {
				slog.Error("Failed to close session", "path", session.Path(), "error", closeErr)
			}
		}()
	}

	listener := args.Listener
	if listener == nil {
		listener, err = net.Listen("tcp", args.Addr)
		if err != nil {
			return fmt.Errorf("listen %s: %w", args.Addr, err)
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := w.Start(ctx, controller.WithCollectMode(cancel)); err != nil {
		slog.Error("Failed to start UI", "error", err)
		_ = listener.Close()

		return err
	}

	info := controller.CollectorInfo{
		Addr:   listener.Addr().String(),
		Codec:  args.Codec.Name(),
		Probes: len(points),
	}
	if session != nil {
		info.Session = session.Path()
	}

	w.DisplayCollectorInfo(ctx, info)

	events := make(chan m.Event, collectBuffer)
	collector := telemetry.NewCollector(args.Codec, func(ctx context.Context, event m.Event) {
		select {
		case events <- event:
		case <-ctx.Done():
		}
	})

	var summary controller.Summary

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return collector.Serve(groupCtx, listener)
	})

	group.Go(func() error {
		if err := WatchProbes(groupCtx, w.ProbeStore, args.Probes, registry); err != nil {
			slog.Warn("Registrations made during the session will be ignored", "probes", args.Probes, "error", err)
		}

		return nil
	})

	group.Go(func() error {
		for admitted := range correlator.Filter(groupCtx, events) {
			record := m.NewRecord(time.Now(), admitted.Event, admitted.Point)
			summary.Add(record)
			w.DisplayRecord(groupCtx, record)

			if session == nil {
				continue
			}

			if err := session.Append(record); err != nil {
				return fmt.Errorf("append record: %w", err)
			}
		}

		return nil
	})

	err = group.Wait()

	slog.Info("collector stopped",
		"received", collector.Received(),
		"malformed", collector.Malformed(),
		"admitted", summary.Records,
	)

	done := context.WithoutCancel(ctx)
	w.DisplaySummary(done, summary)
	w.Close(done)
	w.Wait(done)

	return err
}

// View replays a recorded session log.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	path := args.Session
	if path == "" {
		sessions, err := w.Sessions(args.Events)
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}

		if len(sessions) == 0 {
			return fmt.Errorf("%s: %w", args.Events, ErrNoSessions)
		}

		path = sessions[len(sessions)-1]
	}

	session, err := w.OpenSession(path)
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}

	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			slog.Error("Failed to close session", "path", path, "error", closeErr)
		}
	}()

	if err := w.Start(ctx, controller.WithViewMode()); err != nil {
		slog.Error("Failed to start UI", "error", err)
		return err
	}

	var summary controller.Summary

	err = session.Range(func(_ uint64, record m.Record) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		summary.Add(record)
		w.DisplayRecord(ctx, record)

		return nil
	})
	if err != nil {
		w.Close(ctx)
		return fmt.Errorf("replay %s: %w", path, err)
	}

	w.DisplaySummary(ctx, summary)
	w.Close(ctx)
	w.Wait(ctx)

	return nil
}
