package domain

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"streamlens.dev/pkg/streamlens/internal/controller"
	m "streamlens.dev/pkg/streamlens/internal/model"
	"streamlens.dev/pkg/streamlens/internal/probe"
	"streamlens.dev/pkg/streamlens/internal/telemetry"
	"streamlens.dev/pkg/streamlens/pkg/stream"
)

// Demo pipeline defaults.
const (
	DefaultDemoPeriod       = 500 * time.Millisecond
	DefaultDemoCount        = 4
	DefaultDemoFlushTimeout = 5 * time.Second

	drainPoll = 10 * time.Millisecond
)

// demoFile is the path the demo pipeline reports for its probes.
const demoFile = "streamlens/demo/pipeline.go"

// demoSource is the pipeline Demo runs. Its probes are placed by locating
// the operators in this text, the same way an editor registration would.
const demoSource = `package demo

import (
	"time"

	"streamlens.dev/pkg/streamlens/pkg/stream"
)

func double(i int) int { return i * 2 }

func pipeline(period time.Duration, count int) stream.Source[int] {
	ticks := stream.Interval(period)
	return stream.Pipe[int](ticks, stream.Take[int](count), stream.Map[int, int](double))
}
`

// DemoArgs contains the arguments for running the demo pipeline.
type DemoArgs struct {
	URL               string
	Codec             telemetry.Codec
	Period            time.Duration
	Count             int
	WriteTimeout      time.Duration
	ReconnectInterval time.Duration
	FlushTimeout      time.Duration
	// Register stores the demo probe points in Probes before running.
	Register bool
	Probes   m.Path
}

// Demo runs interval -> take(count) -> map(double) with a probe on each
// operator and ships the telemetry to args.URL. Events are also shown
// locally as they are sent.
func (w *workflow) Demo(ctx context.Context, args DemoArgs) error {
	args = demoDefaults(args)

	points, err := w.demoPoints(ctx)
	if err != nil {
		return err
	}

	if args.Register {
		for _, point := range []m.Location{points["Take"], points["Map"]} {
			if _, err := RegisterPoint(ctx, w.ProbeStore, args.Probes, point); err != nil {
				return err
			}
		}
	}

	transport := telemetry.NewTransport(
		telemetry.NewWebSocketDialer(args.URL, args.Codec),
		telemetry.WithCodec(args.Codec),
		telemetry.WithWriteTimeout(args.WriteTimeout),
		telemetry.WithReconnectInterval(args.ReconnectInterval),
	)

	pipeline, err := demoPipeline(transport.Send, points, args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := w.Start(ctx, controller.WithCollectMode(cancel)); err != nil {
		slog.Error("Failed to start UI", "error", err)
		return err
	}

	w.DisplayCollectorInfo(ctx, controller.CollectorInfo{
		Addr:   args.URL,
		Codec:  args.Codec.Name(),
		Probes: len(points),
	})

	events, stopObserving := transport.Observe(collectBuffer)
	runCtx, stopTransport := context.WithCancel(ctx)

	var summary controller.Summary

	group, groupCtx := errgroup.WithContext(runCtx)

	group.Go(func() error {
		return transport.Run(groupCtx)
	})

	group.Go(func() error {
		for event := range events {
			record := m.NewRecord(time.Now(), event, event.Source().Static())
			summary.Add(record)
			w.DisplayRecord(ctx, record)
		}

		return nil
	})

	group.Go(func() error {
		defer stopTransport()
		defer stopObserving()

		err := runPipeline(groupCtx, pipeline)
		waitDrained(groupCtx, transport, args.FlushTimeout)

		return err
	})

	err = group.Wait()

	if pending := transport.Pending(); pending > 0 {
		slog.Warn("demo finished with undelivered events", "pending", pending, "url", args.URL)
	}

	done := context.WithoutCancel(ctx)
	w.DisplaySummary(done, summary)
	w.Close(done)
	w.Wait(done)

	return err
}

func demoDefaults(args DemoArgs) DemoArgs {
	if args.Codec == nil {
		args.Codec = telemetry.JSONCodec{}
	}

	if args.Period <= 0 {
		args.Period = DefaultDemoPeriod
	}

	if args.Count <= 0 {
		args.Count = DefaultDemoCount
	}

	if args.WriteTimeout <= 0 {
		args.WriteTimeout = telemetry.DefaultWriteTimeout
	}

	if args.ReconnectInterval <= 0 {
		args.ReconnectInterval = telemetry.DefaultReconnectInterval
	}

	if args.FlushTimeout <= 0 {
		args.FlushTimeout = DefaultDemoFlushTimeout
	}

	return args
}

// demoPoints locates the Take and Map operators of demoSource.
func (w *workflow) demoPoints(ctx context.Context) (map[string]m.Location, error) {
	root, err := w.Parse(ctx, demoFile, []byte(demoSource))
	if err != nil {
		return nil, fmt.Errorf("parse demo pipeline: %w", err)
	}

	points := make(map[string]m.Location)
	for _, candidate := range w.locator.Candidates(demoFile, demoSource, root) {
		points[candidate.Name] = candidate.Location
	}

	for _, name := range []string{"Take", "Map"} {
		if _, ok := points[name]; !ok {
			return nil, fmt.Errorf("demo operator %s is not an allowed operator", name)
		}
	}

	return points, nil
}

func demoPipeline(sink probe.Sink, points map[string]m.Location, args DemoArgs) (stream.Source[int], error) {
	take := probe.New(points["Take"].Runtime(), sink)
	double := probe.New(points["Map"].Runtime(), sink)

	taken, err := probe.Lift[int, int](take, stream.Interval(args.Period), stream.Take[int](args.Count))
	if err != nil {
		return nil, err
	}

	return probe.Lift[int, int](double, taken, stream.Map[int, int](func(i int) int { return i * 2 }))
}

// runPipeline subscribes to source and blocks until every teardown of the
// subscription has run or ctx is done.
func runPipeline(ctx context.Context, source stream.Source[int]) error {
	var pipelineErr error

	subscriber := stream.NewSubscriber[int](stream.ObserverFuncs[int]{
		OnError: func(err error) { pipelineErr = err },
	})
	source.Subscribe(subscriber)

	finished := make(chan struct{})
	subscriber.Add(func() { close(finished) })

	select {
	case <-finished:
	case <-ctx.Done():
		subscriber.Unsubscribe()
		<-finished
	}

	if pipelineErr != nil {
		return fmt.Errorf("demo pipeline: %w", pipelineErr)
	}

	return nil
}

// waitDrained waits until every queued event is delivered, the timeout
// elapses or ctx is done.
func waitDrained(ctx context.Context, transport *telemetry.Transport, timeout time.Duration) {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	ticker := time.NewTicker(drainPoll)
	defer ticker.Stop()

	for transport.Pending() > 0 {
		select {
		case <-ctx.Done():
			return
		case <-deadline.C:
			return
		case <-ticker.C:
		}
	}
}
