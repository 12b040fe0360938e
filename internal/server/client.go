package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"hexhaven/internal/protocol"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 2048
	sendBuffer     = 256
)

var errNoType = errors.New("message has no type")

// ClientType distinguishes the shared table screen from player phones.
type ClientType int

const (
	ClientTV ClientType = iota
	ClientPlayer
)

// ParseClientType maps the ws "type" query value; anything but "tv" is a phone.
func ParseClientType(s string) ClientType {
	if s == "tv" {
		return ClientTV
	}
	return ClientPlayer
}

func (t ClientType) String() string {
	if t == ClientTV {
		return "tv"
	}
	return "player"
}

// Client is one websocket connection in a room. PlayerID is empty for the
// table screen and is set by a join message for phones.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	log      *slog.Logger
	PlayerID string
	Type     ClientType
}

func NewClient(hub *Hub, conn *websocket.Conn, playerID string, clientType ClientType) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBuffer),
		log: hub.log.With(
			"client", clientType.String(),
			"remote", conn.RemoteAddr().String(),
		),
		PlayerID: playerID,
		Type:     clientType,
	}
}

// attach hands c to the room. It reports false once the room is closed.
func (c *Client) attach() bool {
	select {
	case c.hub.register <- c:
		return true
	case <-c.hub.quit:
		return false
	}
}

// ReadPump forwards envelopes to the room until the socket or the room
// closes.
func (c *Client) ReadPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.quit:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warn("ws read", "err", err)
			}
			return
		}
		env, err := decodeEnvelope(message)
		if err != nil {
			c.SendEnvelope(errorEnvelope(err.Error()))
			continue
		}
		select {
		case c.hub.incoming <- IncomingMessage{Client: c, Envelope: env}:
		case <-c.hub.quit:
			return
		}
	}
}

func decodeEnvelope(message []byte) (protocol.Envelope, error) {
	var env protocol.Envelope
	if err := json.Unmarshal(message, &env); err != nil {
		return env, errors.New("malformed message")
	}
	if env.Type == "" {
		return env, errNoType
	}
	return env, nil
}

// WritePump drains the send channel to the socket and keeps it alive with
// pings. A closed room sends a going-away close frame.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.log.Debug("ws write", "err", err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.hub.quit:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "room closed"))
			return
		}
	}
}

// SendEnvelope queues env for this client, dropping it if the buffer is full.
func (c *Client) SendEnvelope(env protocol.Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		c.log.Error("marshal", "type", env.Type, "err", err)
		return
	}
	select {
	case c.send <- data:
	default:
		c.log.Warn("send buffer full, dropping message", "player", c.PlayerID, "type", env.Type)
	}
}

func errorEnvelope(message string) protocol.Envelope {
	return protocol.MustEnvelope(protocol.MsgError, protocol.ErrorMsg{Message: message})
}

// IncomingMessage pairs a message with its source client.
type IncomingMessage struct {
	Client   *Client
	Envelope protocol.Envelope
}
