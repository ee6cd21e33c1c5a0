package realtime

import (
	"encoding/json"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// channelConn adds the read side used by the serve loop.
type channelConn interface {
	wsConn
	ReadMessage() (int, []byte, error)
}

// Upgrade gates the websocket route: non-upgrade requests get 426.
func Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handler returns the websocket handler for the realtime channel.
func (r *Router) Handler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		r.serve(conn)
	})
}

// serve runs one channel: connected (anonymous) until add-user, identified
// while registered, closed on read error or disconnect.
func (r *Router) serve(conn channelConn) {
	var client *Client
	defer func() {
		if client != nil {
			r.drop(client)
		} else {
			_ = conn.Close()
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			r.log.Warn().Err(err).Msg("malformed channel frame")
			continue
		}
		client = r.dispatch(client, conn, env)
	}
}
