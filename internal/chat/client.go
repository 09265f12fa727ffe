package chat

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Client is one websocket connection registered with the hub. pseudo is
// the identity bound at upgrade time from the session cookie; empty for
// anonymous connections, which may listen but not send.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	pseudo string

	// The hub closes send when it drops the client, but the read
	// goroutine may still be queueing events for it. The mutex and flag
	// keep those two from racing on a closed channel.
	mu     sync.Mutex
	closed bool
}

func newClient(hub *Hub, conn *websocket.Conn, pseudo string) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, 64),
		pseudo: pseudo,
	}
}

// sendEvent marshals v and queues it for this connection only. A client
// whose buffer is full just misses the event rather than blocking the
// caller, and a client the hub already dropped swallows it silently.
func (c *Client) sendEvent(v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		zap.L().Error("Failed to marshal websocket event", zap.Error(err))
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	select {
	case c.send <- payload:
	default:
	}
}

// closeSend shuts the send channel exactly once. Only the hub calls
// this; writers go through sendEvent which checks the flag first.
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// readPump consumes inbound frames until the transport closes and hands
// each one to the gateway. Runs on the connection's handler goroutine.
func (c *Client) readPump(handle func(*Client, []byte)) {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zap.L().Debug("Websocket closed unexpectedly", zap.Error(err))
			}
			return
		}

		handle(c, raw)
	}
}

// writePump flushes the send channel to the transport and keeps the
// connection alive with pings. Runs in its own goroutine.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
