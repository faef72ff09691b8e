// Package telemetry carries lifecycle events from an instrumented process
// to a collector.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	m "streamlens.dev/pkg/streamlens/internal/model"
)

// ErrConnectionLost is returned by a drain pass that stopped because the
// connection failed.
var ErrConnectionLost = errors.New("telemetry connection lost")

// Defaults for NewTransport.
const (
	DefaultWriteTimeout      = 5 * time.Second
	DefaultReconnectInterval = time.Second
	drainTimeout             = 5 * time.Second
)

// Conn is one live outbound connection.
type Conn interface {
	// Write sends one message. It must give up when ctx is done.
	Write(ctx context.Context, message []byte) error
	// Done is closed when the peer goes away.
	Done() <-chan struct{}
	Close() error
}

// Dialer opens outbound connections.
type Dialer interface {
	Dial(ctx context.Context) (Conn, error)
}

// Option configures a Transport.
type Option func(*Transport)

// WithCodec sets the message codec. The default is JSONCodec.
func WithCodec(codec Codec) Option {
	return func(t *Transport) {
		t.codec = codec
	}
}

// WithWriteTimeout bounds each message write.
func WithWriteTimeout(timeout time.Duration) Option {
	return func(t *Transport) {
		if timeout > 0 {
			t.writeTimeout = timeout
		}
	}
}

// WithReconnectInterval sets the minimum spacing between dial attempts.
// Zero or less disables pacing.
func WithReconnectInterval(interval time.Duration) Option {
	return func(t *Transport) {
		if interval <= 0 {
			t.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}

		t.limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
}

// Transport buffers events and forwards them over a single connection.
//
// Send never blocks and never fails. Run owns the connection: it dials,
// drains the queue in FIFO order and redials after a loss. An event is
// removed from the queue only after it has been written, so delivery is
// at least once and order survives reconnects.
type Transport struct {
	queue        *Queue
	dialer       Dialer
	codec        Codec
	writeTimeout time.Duration
	limiter      *rate.Limiter

	mu        sync.Mutex
	observers map[uint64]chan m.Event
	nextID    uint64

	delivered atomic.Uint64
	dropped   atomic.Uint64
	connected atomic.Bool
	running   atomic.Bool
}

// NewTransport creates a Transport that connects through dialer.
func NewTransport(dialer Dialer, opts ...Option) *Transport {
	t := &Transport{
		queue:        NewQueue(),
		dialer:       dialer,
		codec:        JSONCodec{},
		writeTimeout: DefaultWriteTimeout,
		limiter:      rate.NewLimiter(rate.Every(DefaultReconnectInterval), 1),
		observers:    make(map[uint64]chan m.Event),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Send enqueues event for delivery and hands it to local observers.
// Its signature matches probe.Sink.
func (t *Transport) Send(event m.Event) {
	if event == nil {
		return
	}

	t.queue.Push(event)
	t.fanOut(event)
}

// Observe registers a local observer with the given buffer size. When the
// buffer is full, events are dropped for that observer only. The returned
// function unregisters the observer and closes the channel.
func (t *Transport) Observe(buffer int) (<-chan m.Event, func()) {
	ch := make(chan m.Event, max(buffer, 0))

	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.observers[id] = ch
	t.mu.Unlock()

	var once sync.Once

	return ch, func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()

			delete(t.observers, id)
			close(ch)
		})
	}
}

func (t *Transport) fanOut(event m.Event) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, ch := range t.observers {
		select {
		case ch <- event:
		default:
			t.dropped.Add(1)
		}
	}
}

// Pending returns the number of events waiting for delivery.
func (t *Transport) Pending() int { return t.queue.Len() }

// Delivered returns the number of events written to a connection.
func (t *Transport) Delivered() uint64 { return t.delivered.Load() }

// Dropped returns the number of events local observers missed.
func (t *Transport) Dropped() uint64 { return t.dropped.Load() }

// Connected reports whether a connection is live.
func (t *Transport) Connected() bool { return t.connected.Load() }

// Run connects and drains until ctx is done. It never holds more than one
// connection. When ctx is cancelled while connected, it makes one final
// bounded drain pass before returning.
func (t *Transport) Run(ctx context.Context) error {
	if !t.running.CompareAndSwap(false, true) {
		return errors.New("telemetry transport is already running")
	}
	defer t.running.Store(false)

	for {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil
		}

		conn, err := t.dialer.Dial(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			slog.Debug("telemetry dial failed", "error", err, "pending", t.queue.Len())

			continue
		}

		slog.Info("telemetry connected", "codec", t.codec.Name(), "pending", t.queue.Len())
		t.connected.Store(true)

		err = t.drain(ctx, conn)
		if ctx.Err() != nil {
			t.flush(conn)
		}

		t.connected.Store(false)

		if closeErr := conn.Close(); closeErr != nil {
			slog.Debug("telemetry close failed", "error", closeErr)
		}

		if ctx.Err() != nil {
			return nil
		}

		slog.Warn("telemetry connection lost, will redial", "error", err, "pending", t.queue.Len())
	}
}

// drain writes queued events until the connection fails or ctx is done.
func (t *Transport) drain(ctx context.Context, conn Conn) error {
	for {
		if err := t.writeQueued(ctx, conn); err != nil {
			return err
		}

		select {
		case <-t.queue.Notify():
		case <-conn.Done():
			return ErrConnectionLost
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// flush makes one best-effort pass after shutdown.
func (t *Transport) flush(conn Conn) {
	flushCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	if err := t.writeQueued(flushCtx, conn); err != nil {
		slog.Warn("telemetry flush failed, abandoning remaining", "error", err, "remaining", t.queue.Len())
	}
}

func (t *Transport) writeQueued(ctx context.Context, conn Conn) error {
	for {
		event, ok := t.queue.Peek()
		if !ok {
			return nil
		}

		data, err := t.codec.Encode(event)
		if err != nil {
			slog.Error("telemetry encode failed, skipping event", "kind", event.Kind(), "error", err)
			t.queue.Pop()

			continue
		}

		writeCtx, cancel := context.WithTimeout(ctx, t.writeTimeout)
		err = conn.Write(writeCtx, data)

		cancel()

		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			return fmt.Errorf("%w: %w", ErrConnectionLost, err)
		}

		t.queue.Pop()
		t.delivered.Add(1)
	}
}
