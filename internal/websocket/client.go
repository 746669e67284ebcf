package websocket

import (
	"time"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// Viewers are read-only; anything larger than a control frame is a misuse.
	maxInboundSize = 128
	sendBuffer     = 256
)

// Client is one websocket subscriber of a single list view.
type Client struct {
	Hub    *Hub
	Conn   *websocket.Conn
	ViewId string
	// Send carries whole patch batches, one frame each.
	Send chan []byte
	// keepAlive extends the view's idle deadline on every ping.
	keepAlive func()
}

func newClient(hub *Hub, conn *websocket.Conn, viewId string, keepAlive func()) *Client {
	return &Client{Hub: hub, Conn: conn, ViewId: viewId, Send: make(chan []byte, sendBuffer), keepAlive: keepAlive}
}

func (c *Client) ping() error {
	if c.keepAlive != nil {
		c.keepAlive()
	}
	return c.write(websocket.PingMessage, nil)
}

func (c *Client) touch() error {
	return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
}

// readPump discards inbound frames and returns once the peer is gone.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		_ = c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxInboundSize)
	_ = c.touch()
	c.Conn.SetPongHandler(func(string) error { return c.touch() })

	for {
		_, _, err := c.Conn.ReadMessage()
		if err == nil {
			continue
		}
		if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
			c.Hub.logger.Warn("Client", "Unexpected close", map[string]interface{}{"view_id": c.ViewId, "error": err.Error()})
		}
		return
	}
}

func (c *Client) write(messageType int, data []byte) error {
	_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.Conn.WriteMessage(messageType, data)
}

// writePump forwards batches from the hub and keeps the connection alive.
// A closed Send channel means the view went away.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case batch, ok := <-c.Send:
			if !ok {
				_ = c.write(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "view closed"))
				return
			}
			if err := c.write(websocket.TextMessage, batch); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.ping(); err != nil {
				return
			}
		}
	}
}
