// Package probe instruments stream operators with lifecycle telemetry.
package probe

import (
	"fmt"
	"log/slog"
	"sync"

	m "streamlens.dev/pkg/streamlens/internal/model"
	"streamlens.dev/pkg/streamlens/pkg/stream"
)

// Sink receives lifecycle events. It must not block.
type Sink func(event m.Event)

// CompositionError reports that a probe could not attach to a stream.
type CompositionError struct {
	Location m.Location
	Reason   string
}

func (e *CompositionError) Error() string {
	return fmt.Sprintf("probe %s: unable to lift stream: %s", e.Location, e.Reason)
}

// Option configures a Probe.
type Option func(*Probe)

// WithSerializer replaces Serialize for Next and Error payloads.
func WithSerializer(serialize func(value any) string) Option {
	return func(p *Probe) {
		p.serialize = serialize
	}
}

// Probe emits events for one operator instance at a fixed location.
type Probe struct {
	location  m.Location
	sink      Sink
	serialize func(value any) string
}

// New creates a Probe reporting at location. A nil sink discards events.
func New(location m.Location, sink Sink, opts ...Option) *Probe {
	p := &Probe{
		location:  location,
		sink:      sink,
		serialize: Serialize,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Location returns the location every event carries.
func (p *Probe) Location() m.Location {
	return p.location
}

// Lift applies op to source and attaches the probe to the result.
func Lift[T, R any](p *Probe, source stream.Source[T], op stream.Operator[T, R]) (stream.Source[R], error) {
	if source == nil {
		return nil, &CompositionError{Location: p.location, Reason: "source is nil"}
	}

	if op == nil {
		return nil, &CompositionError{Location: p.location, Reason: "operator is nil"}
	}

	result := op(source)

	liftable, ok := result.(stream.Liftable[R])
	if !ok || liftable == nil {
		return nil, &CompositionError{Location: p.location, Reason: fmt.Sprintf("%T is not liftable", result)}
	}

	return liftable.Lift(func(upstream stream.Source[R], downstream *stream.Subscriber[R]) {
		attach(p, upstream, downstream)
	}), nil
}

// Operator wraps op for use in a pipeline. It panics with a
// *CompositionError when the probe cannot attach.
func Operator[T, R any](p *Probe, op stream.Operator[T, R]) stream.Operator[T, R] {
	return func(source stream.Source[T]) stream.Source[R] {
		lifted, err := Lift(p, source, op)
		if err != nil {
			panic(err)
		}

		return lifted
	}
}

// attach subscribes inner to upstream on behalf of downstream. Events of
// one subscription are emitted under its own lock, and none follow
// Unsubscribe even when the producer runs on another goroutine.
func attach[R any](p *Probe, upstream stream.Source[R], downstream *stream.Subscriber[R]) {
	var (
		inner *stream.Subscriber[R]
		mu    sync.Mutex
		done  bool
	)

	// report emits event unless the subscription is already torn down.
	report := func(event m.Event) bool {
		mu.Lock()
		defer mu.Unlock()

		if done {
			return false
		}

		p.emit(event)

		return true
	}

	teardown := func() {
		mu.Lock()
		if done {
			mu.Unlock()
			return
		}

		done = true
		p.emit(m.Unsubscribe{At: p.location})
		mu.Unlock()

		inner.Unsubscribe()
	}

	inner = stream.NewSubscriber[R](stream.ObserverFuncs[R]{
		OnNext: func(value R) {
			if report(m.Next{At: p.location, Value: p.safeSerialize(value)}) {
				downstream.Next(value)
			}
		},
		OnError: func(err error) {
			if report(m.Error{At: p.location, Message: p.safeSerialize(err)}) {
				downstream.Error(err)
			}
		},
		OnComplete: func() {
			if report(m.Completed{At: p.location}) {
				downstream.Complete()
			}
		},
	})

	p.emit(m.Subscribe{At: p.location})
	downstream.Add(teardown)
	upstream.Subscribe(inner)
}

// safeSerialize runs the configured serializer. A panicking serializer
// yields SerializationSentinel.
func (p *Probe) safeSerialize(value any) (text string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("serializer panicked", "location", p.location.String(), "type", typeName(value), "panic", r)
			text = SerializationSentinel
		}
	}()

	return p.serialize(value)
}

func typeName(value any) string {
	return fmt.Sprintf("%T", value)
}

func (p *Probe) emit(event m.Event) {
	if p.sink == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("probe sink panicked", "location", p.location.String(), "kind", event.Kind(), "panic", r)
		}
	}()

	p.sink(event)
}
