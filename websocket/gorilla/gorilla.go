package gorilla

import (
	"context"
	"net/http"
	"time"

	"github.com/go-gotop/normfeed/websocket"
	gwebsocket "github.com/gorilla/websocket"
)

const defaultReadLimit = 655350

var _ websocket.Conn = (*Conn)(nil)

func NewConn(config *websocket.Config) *Conn {
	if config == nil {
		config = &websocket.Config{}
	}
	return &Conn{config: config}
}

// Conn is the gorilla-backed websocket.Conn.
type Conn struct {
	config *websocket.Config
	conn   *gwebsocket.Conn
}

func (g *Conn) DialContext(ctx context.Context, endpoint string, requestHeader http.Header) error {
	dialer := gwebsocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}
	if g.config.HandshakeTimeout > 0 {
		dialer.HandshakeTimeout = g.config.HandshakeTimeout
	}
	conn, _, err := dialer.DialContext(ctx, endpoint, requestHeader)
	if err != nil {
		return err
	}
	limit := int64(defaultReadLimit)
	if g.config.ReadLimit > 0 {
		limit = g.config.ReadLimit
	}
	conn.SetReadLimit(limit)
	if g.config.PingHandler != nil {
		conn.SetPingHandler(g.config.PingHandler)
	}
	if g.config.PongHandler != nil {
		conn.SetPongHandler(g.config.PongHandler)
	}
	g.conn = conn
	return nil
}

func (g *Conn) ReadMessage() (int, []byte, error) {
	return g.conn.ReadMessage()
}

func (g *Conn) WriteMessage(messageType int, data []byte) error {
	return g.conn.WriteMessage(messageType, data)
}

func (g *Conn) SetPingHandler(h func(appData string) error) {
	g.conn.SetPingHandler(h)
}

func (g *Conn) SetPongHandler(h func(appData string) error) {
	g.conn.SetPongHandler(h)
}

func (g *Conn) Close() error {
	return g.conn.Close()
}
