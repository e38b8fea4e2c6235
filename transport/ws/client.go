package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	readLimit  = 1 << 12
)

type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	topic     string
	closeOnce sync.Once
}

func NewClient(hub *Hub, conn *websocket.Conn, buffer int) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, buffer),
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.send)

		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}

// WritePump forwards queued messages to the socket and keeps the connection alive with pings.
func (c *Client) WritePump() {
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}

			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))

			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Warn().Err(err).Msg("ws write error")

				return
			}
		case <-ping.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				log.Warn().Err(err).Msg("ws ping error")

				return
			}
		}
	}
}

// ReadPump discards client frames; the feed is server to client only. It detaches the client on exit.
func (c *Client) ReadPump() {
	defer c.hub.Detach(c)

	c.conn.SetReadLimit(readLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn().Err(err).Msg("ws read error")
			}

			return
		}
	}
}
