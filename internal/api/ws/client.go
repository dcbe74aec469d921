package ws

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"tabletop-arena/internal/auth"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8 << 10
	sendBuffer     = 64
)

// Client is one websocket connection. id is the opaque connection reference
// rooms use; identity is fixed at the handshake.
type Client struct {
	id       string
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	identity auth.Identity
}

// readPump decodes frames and posts them to the hub until the socket fails.
func (c *Client) readPump() {
	defer func() {
		c.hub.Post(func() { c.hub.unregister(c) })
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("conn", c.id).Msg("read failed")
			}
			return
		}
		ev, err := c.hub.decoder.decode(data)
		if err != nil {
			c.hub.Post(func() { c.hub.rooms.Reject(c.id, err) })
			continue
		}
		c.hub.Post(func() { c.hub.dispatch(c, ev) })
	}
}

// writePump drains the send queue and keeps the connection alive with pings.
// It owns every write to the socket.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
