package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	m "streamlens.dev/pkg/streamlens/internal/model"
)

// DefaultAddr is the collector's default listen address.
const DefaultAddr = "localhost:9230"

// Handler receives every decoded event.
type Handler func(ctx context.Context, event m.Event)

// Collector is the receiving end of a Transport. It accepts WebSocket
// connections and decodes one event per message.
type Collector struct {
	codec    Codec
	handler  Handler
	upgrader websocket.Upgrader

	received  atomic.Uint64
	malformed atomic.Uint64
}

// NewCollector creates a Collector decoding with codec.
func NewCollector(codec Codec, handler Handler) *Collector {
	if codec == nil {
		codec = JSONCodec{}
	}

	return &Collector{
		codec:   codec,
		handler: handler,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Received returns the number of events handed to the handler.
func (c *Collector) Received() uint64 { return c.received.Load() }

// Malformed returns the number of discarded messages.
func (c *Collector) Malformed() uint64 { return c.malformed.Load() }

// ServeHTTP upgrades the request and reads events until the peer leaves.
func (c *Collector) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("collector upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	defer func() {
		if err := ws.Close(); err != nil {
			slog.Debug("collector close failed", "error", err)
		}
	}()

	stop := context.AfterFunc(r.Context(), func() { _ = ws.Close() })
	defer stop()

	slog.Info("producer connected", "remote", r.RemoteAddr)

	if err := c.read(r.Context(), ws); err != nil {
		slog.Info("producer disconnected", "remote", r.RemoteAddr, "error", err)
	}
}

func (c *Collector) read(ctx context.Context, ws *websocket.Conn) error {
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}

			return err
		}

		event, err := c.codec.Decode(data)
		if err != nil {
			c.malformed.Add(1)
			slog.Warn("discarding malformed message", "codec", c.codec.Name(), "size", len(data), "error", err)

			continue
		}

		c.received.Add(1)

		if c.handler != nil {
			c.handler(ctx, event)
		}
	}
}

// ListenAndServe serves on addr until ctx is done.
func (c *Collector) ListenAndServe(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	return c.Serve(ctx, listener)
}

// Serve serves on listener until ctx is done.
func (c *Collector) Serve(ctx context.Context, listener net.Listener) error {
	server := &http.Server{
		Handler:           c,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)

	go func() {
		errCh <- server.Serve(listener)
	}()

	slog.Info("collector listening", "addr", listener.Addr().String(), "codec", c.codec.Name())

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
