package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// DefaultURL is where the collector listens unless configured otherwise.
const DefaultURL = "ws://localhost:9230"

// WebSocketDialer dials the collector over WebSocket.
type WebSocketDialer struct {
	URL string
	// Binary selects binary frames instead of text frames.
	Binary bool
	Dialer *websocket.Dialer
}

// NewWebSocketDialer creates a dialer for url. Frames are binary when the
// codec is.
func NewWebSocketDialer(url string, codec Codec) *WebSocketDialer {
	return &WebSocketDialer{
		URL:    url,
		Binary: codec != nil && codec.Binary(),
		Dialer: websocket.DefaultDialer,
	}
}

// Dial implements Dialer.
func (d *WebSocketDialer) Dial(ctx context.Context) (Conn, error) {
	dialer := d.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}

	ws, resp, err := dialer.DialContext(ctx, d.URL, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", d.URL, err)
	}

	messageType := websocket.TextMessage
	if d.Binary {
		messageType = websocket.BinaryMessage
	}

	conn := &wsConn{
		ws:          ws,
		messageType: messageType,
		done:        make(chan struct{}),
	}

	go conn.watch()

	return conn, nil
}

// wsConn adapts a gorilla connection to Conn. Only the transport writes;
// watch is the only reader.
type wsConn struct {
	ws          *websocket.Conn
	messageType int
	done        chan struct{}
	once        sync.Once
}

func (c *wsConn) Write(ctx context.Context, message []byte) error {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Time{}
	}

	if err := c.ws.SetWriteDeadline(deadline); err != nil {
		return err
	}

	return c.ws.WriteMessage(c.messageType, message)
}

func (c *wsConn) Done() <-chan struct{} {
	return c.done
}

func (c *wsConn) Close() error {
	c.markDone()

	_ = c.ws.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)

	return c.ws.Close()
}

// watch reads until the peer disconnects. The collector never sends data
// messages, but reading is what processes close and ping frames.
func (c *wsConn) watch() {
	defer c.markDone()

	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			slog.Debug("telemetry connection closed by peer", "error", err)
			return
		}
	}
}

func (c *wsConn) markDone() {
	c.once.Do(func() { close(c.done) })
}
