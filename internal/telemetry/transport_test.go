package telemetry_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	m "streamlens.dev/pkg/streamlens/internal/model"
	"streamlens.dev/pkg/streamlens/internal/telemetry"
	"streamlens.dev/pkg/streamlens/internal/telemetry/mocks"
)

var at = m.Location{File: "/proj/pipeline.go", Line: 7, Column: 3}

type written struct {
	mu     sync.Mutex
	events []m.Event
}

func (w *written) record(t *testing.T, data []byte) {
	event, err := telemetry.JSONCodec{}.Decode(data)
	if !assert.NoError(t, err) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.events = append(w.events, event)
}

func (w *written) all() []m.Event {
	w.mu.Lock()
	defer w.mu.Unlock()

	return append([]m.Event(nil), w.events...)
}

func sequence(n int) []m.Event {
	events := []m.Event{m.Subscribe{At: at}}
	for i := range n {
		events = append(events, m.Next{At: at, Value: string(rune('a' + i))})
	}

	return append(events, m.Completed{At: at}, m.Unsubscribe{At: at})
}

func openConn(t *testing.T, out *written, fail func(call int) error) *mocks.MockConn {
	conn := mocks.NewMockConn(t)
	calls := 0

	conn.On("Write", mock.Anything, mock.Anything).Return(func(_ context.Context, data []byte) error {
		calls++
		if fail != nil {
			if err := fail(calls); err != nil {
				return err
			}
		}

		out.record(t, data)

		return nil
	})
	conn.On("Done").Return((<-chan struct{})(make(chan struct{}))).Maybe()
	conn.On("Close").Return(nil)

	return conn
}

func runTransport(t *testing.T, transport *telemetry.Transport) (context.CancelFunc, <-chan error) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- transport.Run(ctx) }()

	return cancel, done
}

func stop(t *testing.T, cancel context.CancelFunc, done <-chan error) {
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("transport did not stop")
	}
}

func TestTransport_DeliversBufferedEventsInOrder(t *testing.T) {
	out := &written{}
	conn := openConn(t, out, nil)
	dialer := mocks.NewMockDialer(t)
	dialer.On("Dial", mock.Anything).Return(conn, nil).Once()

	transport := telemetry.NewTransport(dialer, telemetry.WithReconnectInterval(0))

	events := sequence(5)
	for _, event := range events {
		transport.Send(event)
	}

	assert.Equal(t, len(events), transport.Pending())
	assert.False(t, transport.Connected())

	cancel, done := runTransport(t, transport)

	require.Eventually(t, func() bool {
		return transport.Delivered() == uint64(len(events))
	}, 2*time.Second, 5*time.Millisecond)

	assert.True(t, transport.Connected())

	late := m.Next{At: at, Value: "late"}
	transport.Send(late)

	require.Eventually(t, func() bool {
		return transport.Pending() == 0 && transport.Delivered() == uint64(len(events)+1)
	}, 2*time.Second, 5*time.Millisecond)

	stop(t, cancel, done)

	assert.Equal(t, append(events, late), out.all())
	assert.False(t, transport.Connected())
}

func TestTransport_RedialsAndKeepsOrder(t *testing.T) {
	out := &written{}
	first := openConn(t, out, func(call int) error {
		if call == 3 {
			return errors.New("broken pipe")
		}

		return nil
	})
	second := openConn(t, out, nil)

	dialer := mocks.NewMockDialer(t)
	dialer.On("Dial", mock.Anything).Return(nil, errors.New("connection refused")).Once()
	dialer.On("Dial", mock.Anything).Return(first, nil).Once()
	dialer.On("Dial", mock.Anything).Return(second, nil).Once()

	transport := telemetry.NewTransport(dialer, telemetry.WithReconnectInterval(0))

	events := sequence(4)
	for _, event := range events {
		transport.Send(event)
	}

	cancel, done := runTransport(t, transport)

	require.Eventually(t, func() bool {
		return transport.Pending() == 0
	}, 2*time.Second, 5*time.Millisecond)

	stop(t, cancel, done)

	assert.Equal(t, events, out.all())
	assert.Equal(t, uint64(len(events)), transport.Delivered())
}

func TestTransport_PeerDisconnectTriggersRedial(t *testing.T) {
	out := &written{}
	gone := make(chan struct{})

	first := mocks.NewMockConn(t)
	first.On("Write", mock.Anything, mock.Anything).Return(func(_ context.Context, data []byte) error {
		out.record(t, data)
		return nil
	})
	first.On("Done").Return((<-chan struct{})(gone))
	first.On("Close").Return(nil)

	second := openConn(t, out, nil)

	dialer := mocks.NewMockDialer(t)
	dialer.On("Dial", mock.Anything).Return(first, nil).Once()
	dialer.On("Dial", mock.Anything).Return(second, nil).Once()

	transport := telemetry.NewTransport(dialer, telemetry.WithReconnectInterval(0))
	transport.Send(m.Subscribe{At: at})

	cancel, done := runTransport(t, transport)

	require.Eventually(t, func() bool { return transport.Delivered() == 1 }, 2*time.Second, 5*time.Millisecond)
	close(gone)

	transport.Send(m.Unsubscribe{At: at})
	require.Eventually(t, func() bool { return transport.Delivered() == 2 }, 2*time.Second, 5*time.Millisecond)

	stop(t, cancel, done)

	assert.Equal(t, []m.Event{m.Subscribe{At: at}, m.Unsubscribe{At: at}}, out.all())
}

func TestTransport_SendNeverBlocksWithoutConnection(t *testing.T) {
	transport := telemetry.NewTransport(mocks.NewMockDialer(t))

	for i := range 10_000 {
		transport.Send(m.Next{At: at, Value: string(rune('a' + i%26))})
	}

	assert.Equal(t, 10_000, transport.Pending())
	assert.Zero(t, transport.Delivered())
}

func TestTransport_RunTwice(t *testing.T) {
	var dialed atomic.Bool

	dialer := mocks.NewMockDialer(t)
	dialer.On("Dial", mock.Anything).
		Run(func(mock.Arguments) { dialed.Store(true) }).
		Return(nil, errors.New("refused")).
		Maybe()

	transport := telemetry.NewTransport(dialer, telemetry.WithReconnectInterval(10*time.Millisecond))
	cancel, done := runTransport(t, transport)

	require.Eventually(t, func() bool { return dialed.Load() }, time.Second, time.Millisecond)
	require.Error(t, transport.Run(context.Background()))

	stop(t, cancel, done)
}

func TestTransport_Observe(t *testing.T) {
	transport := telemetry.NewTransport(mocks.NewMockDialer(t))

	fast, cancelFast := transport.Observe(10)
	slow, cancelSlow := transport.Observe(1)

	events := sequence(2)
	for _, event := range events {
		transport.Send(event)
	}

	cancelFast()
	cancelFast()

	var got []m.Event
	for event := range fast {
		got = append(got, event)
	}

	assert.Equal(t, events, got)

	first := <-slow
	assert.Equal(t, events[0], first)
	assert.Equal(t, uint64(len(events)-1), transport.Dropped())

	cancelSlow()

	_, open := <-slow
	assert.False(t, open)

	transport.Send(m.Subscribe{At: at})
	assert.Equal(t, len(events)+1, transport.Pending(), "observers never affect the remote queue")
}
