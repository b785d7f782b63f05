package websocket

import (
	"context"
	"net/http"
	"time"
)

//go:generate mockgen -destination=mock/conn.go -package=mock_websocket . Conn

// Conn is the minimal surface of an outbound websocket connection. It
// exists so sessions can be exercised against fakes.
type Conn interface {
	DialContext(ctx context.Context, endpoint string, requestHeader http.Header) error
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	SetPingHandler(h func(appData string) error)
	SetPongHandler(h func(appData string) error)
	Close() error
}

// Config carries per-connection options.
type Config struct {
	// HandshakeTimeout bounds Dial + upgrade. Zero means the dialer default.
	HandshakeTimeout time.Duration

	// ReadLimit is the maximum inbound frame size in bytes.
	ReadLimit int64

	PingHandler func(appData string) error
	PongHandler func(appData string) error
}
