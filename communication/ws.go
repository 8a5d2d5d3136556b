package communication

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	IdlePingInterval = 30 * time.Second
	closeGracePeriod = time.Second
)

// Conn carries Messages as JSON text frames. Writes are serialised; reads
// must come from a single goroutine.
type Conn struct {
	conn      *websocket.Conn
	mu        sync.Mutex
	lastWrite time.Time
}

func NewConn(conn *websocket.Conn) *Conn {
	return &Conn{conn: conn, lastWrite: time.Now()}
}

func (c *Conn) Send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("failed to send %s: %w", msg.Type, err)
	}
	c.lastWrite = time.Now()
	return nil
}

func (c *Conn) Receive() (Message, error) {
	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			return Message{}, err
		}
		if msg.Type != Ping {
			return msg, nil
		}
	}
}

// KeepAlive sends a ping whenever nothing was written for interval, until ctx
// ends or a write fails.
func (c *Conn) KeepAlive(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			c.mu.Lock()
			idle := time.Since(c.lastWrite) >= interval
			c.mu.Unlock()
			if !idle {
				continue
			}
			if err := c.Send(Message{Type: Ping}); err != nil {
				return err
			}
		}
	}
}

// Close says goodbye with a normal closure frame and drops the connection.
func (c *Conn) Close() error {
	c.mu.Lock()
	deadline := time.Now().Add(closeGracePeriod)
	err := c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	c.mu.Unlock()
	if err != nil && !errors.Is(err, websocket.ErrCloseSent) {
		c.conn.Close()
		return err
	}
	return c.conn.Close()
}

// IsNormalClose reports whether err is the peer hanging up cleanly.
func IsNormalClose(err error) bool {
	return websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway)
}
