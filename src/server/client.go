package server

import (
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------
// Connection Timing
// -----------------------------------------------------------------------------

const (
	writeTimeout    = 2 * time.Second
	idleTimeout     = 60 * time.Second
	keepAlivePeriod = (idleTimeout * 9) / 10
	maxCommandSize  = 4096
)

// -----------------------------------------------------------------------------
// Client
// -----------------------------------------------------------------------------

// Client is one dashboard WebSocket connection. The hub owns send and is the
// only goroutine that closes it.
type Client struct {
	id        string
	remote    string
	connected time.Time
	delivered atomic.Int64

	hub  *DashboardServer
	conn *websocket.Conn
	send chan interface{}
}

// -----------------------------------------------------------------------------

func newClient(hub *DashboardServer, conn *websocket.Conn, id string) *Client {
	return &Client{
		id:        id,
		remote:    conn.RemoteAddr().String(),
		connected: time.Now(),
		hub:       hub,
		conn:      conn,
		send:      make(chan interface{}, 64),
	}
}

// -----------------------------------------------------------------------------
// listen reads subscribe commands until the peer goes away or stays silent
// past idleTimeout. Pongs extend the deadline.
// -----------------------------------------------------------------------------

func (c *Client) listen() {
	defer c.leave()

	c.conn.SetReadLimit(maxCommandSize)
	c.extendDeadline()
	c.conn.SetPongHandler(func(string) error {
		c.extendDeadline()
		return nil
	})

	for {
		kind, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.hub.Logger.Warning("Client %s read failed: %v", c.id, err)
			}
			return
		}
		if kind != websocket.TextMessage {
			c.hub.Logger.Debug("Client %s sent a non-text frame, ignored", c.id)
			continue
		}
		c.hub.HandleClientMessage(c, payload)
	}
}

// -----------------------------------------------------------------------------
// deliver writes queued snapshots as JSON and keeps the connection alive with
// pings. A closed send channel means the hub dropped this client.
// -----------------------------------------------------------------------------

func (c *Client) deliver() {
	keepAlive := time.NewTicker(keepAlivePeriod)
	defer func() {
		keepAlive.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, open := <-c.send:
			if !open {
				c.goodbye()
				return
			}
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteJSON(payload); err != nil {
				c.hub.Logger.Warning("Client %s write failed: %v", c.id, err)
				return
			}
			c.delivered.Add(1)

		case <-keepAlive.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				return
			}
		}
	}
}

// -----------------------------------------------------------------------------

func (c *Client) extendDeadline() {
	c.conn.SetReadDeadline(time.Now().Add(idleTimeout))
}

// -----------------------------------------------------------------------------

// goodbye sends a close frame; GoingAway when the server is stopping.
func (c *Client) goodbye() {
	code, reason := websocket.CloseNormalClosure, ""
	select {
	case <-c.hub.done:
		code, reason = websocket.CloseGoingAway, "server shutting down"
	default:
	}
	c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), time.Now().Add(writeTimeout))
}

// -----------------------------------------------------------------------------

func (c *Client) leave() {
	select {
	case c.hub.unregister <- c:
	case <-c.hub.done:
	}
	c.conn.Close()
	c.hub.Logger.Debug("Client %s (%s) left after %s, %d messages delivered",
		c.id, c.remote, time.Since(c.connected).Round(time.Second), c.delivered.Load())
}
