package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Client wraps one dashboard connection with a bounded send queue.
type Client struct {
	id     string
	conn   *websocket.Conn
	sendCh chan BatchEvent

	closeOnce sync.Once
	done      chan struct{}

	writeTimeout time.Duration
}

// NewClient wraps an upgraded connection.
func NewClient(id string, conn *websocket.Conn, queueSize int, writeTimeout time.Duration) *Client {
	if queueSize <= 0 {
		queueSize = 8
	}
	if writeTimeout <= 0 {
		writeTimeout = 10 * time.Second
	}
	return &Client{
		id:           id,
		conn:         conn,
		sendCh:       make(chan BatchEvent, queueSize),
		done:         make(chan struct{}),
		writeTimeout: writeTimeout,
	}
}

// ID returns the client identifier.
func (c *Client) ID() string {
	return c.id
}

// Send queues an event; false means the queue is full or the client is
// gone.
func (c *Client) Send(event BatchEvent) bool {
	select {
	case <-c.done:
		return false
	case c.sendCh <- event:
		return true
	default:
		return false
	}
}

// Ping writes a control ping.
func (c *Client) Ping() error {
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(c.writeTimeout))
}

// Close terminates the connection.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

// WritePump drains the send queue onto the wire. Runs until the client
// closes or a write fails; onExit fires exactly once on the way out.
func (c *Client) WritePump(onExit func(id string)) {
	defer func() {
		c.Close()
		onExit(c.id)
	}()

	for {
		select {
		case <-c.done:
			return
		case event := <-c.sendCh:
			c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}
		}
	}
}

// ReadPump discards inbound frames so control messages are processed;
// returns when the peer disconnects.
func (c *Client) ReadPump() {
	defer c.Close()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
