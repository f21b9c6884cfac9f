package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/skyjo/engine"
	"github.com/minaorangina/skyjo/protocol"
	"github.com/sirupsen/logrus"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// wsConn relays one browser tab to a game engine.
// Every change to the game is pushed to it; errors go only to the sender.
type wsConn struct {
	conn    *websocket.Conn
	ge      *engine.GameEngine
	updates <-chan protocol.OutboundMessage
	stop    func()
	replies chan protocol.OutboundMessage
	log     logrus.FieldLogger
}

// HandleWS upgrades the request and streams the game named by ?game_id=
func (s *GameServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	vals, ok := r.URL.Query()["game_id"]
	if !ok || len(vals) != 1 || vals[0] == "" {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("missing game ID"))
		return
	}
	gameID := vals[0]

	ge, err := s.findGame(r.Context(), gameID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	rawConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied
		s.log.WithError(err).Warn("could not upgrade to websocket")
		return
	}

	updates, stop := ge.Subscribe()
	c := &wsConn{
		conn:    rawConn,
		ge:      ge,
		updates: updates,
		stop:    stop,
		replies: make(chan protocol.OutboundMessage, 4),
		log:     s.log.WithField("game_id", gameID),
	}
	c.replies <- ge.StateMessage()

	go c.writePump()
	go c.readPump()
}

func (c *wsConn) readPump() {
	defer func() {
		c.stop()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.WithError(err).Warn("websocket closed")
			}
			return
		}

		var msg protocol.InboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.reply(protocol.OutboundMessage{Command: protocol.Error, GameID: c.ge.ID(), Error: "invalid message: " + err.Error()})
			continue
		}

		if err := c.ge.Handle(context.Background(), msg); err != nil {
			c.reply(c.ge.ErrorMessage(err))
		}
	}
}

func (c *wsConn) reply(msg protocol.OutboundMessage) {
	select {
	case c.replies <- msg:
	default:
		c.log.Warn("dropping reply to a slow websocket")
	}
}

func (c *wsConn) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.updates:
			if !ok {
				// The engine closed the channel.
				c.conn.SetWriteDeadline(time.Now().Add(writeWait))
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.write(msg); err != nil {
				return
			}

		case msg := <-c.replies:
			if err := c.write(msg); err != nil {
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

func (c *wsConn) write(msg protocol.OutboundMessage) error {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(msg)
}
