package feed

import (
	"time"

	"github.com/go-gotop/normfeed/limiter"
	"github.com/go-gotop/normfeed/websocket"
	"github.com/go-kratos/kratos/v2/log"
)

type options struct {
	logger            *log.Helper
	limiter           limiter.Limiter
	handshakeTimeout  time.Duration
	readLimit         int64
	maxDecodeFailures int
	newConn           func(*websocket.Config) websocket.Conn
}

type Option func(*options)

// WithLogger replaces the default kratos logger.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = log.NewHelper(logger)
	}
}

// WithConnLimiter gates new session connections.
func WithConnLimiter(l limiter.Limiter) Option {
	return func(o *options) {
		o.limiter = l
	}
}

// WithHandshakeTimeout bounds connection establishment and the websocket
// upgrade. Expiry surfaces as a ConnectError.
func WithHandshakeTimeout(d time.Duration) Option {
	return func(o *options) {
		o.handshakeTimeout = d
	}
}

// WithReadLimit caps the inbound frame size in bytes.
func WithReadLimit(n int64) Option {
	return func(o *options) {
		o.readLimit = n
	}
}

// WithMaxDecodeFailures makes n consecutive undecodable frames fatal.
// Zero keeps the default: bad frames are surfaced as items and the
// session keeps reading.
func WithMaxDecodeFailures(n int) Option {
	return func(o *options) {
		o.maxDecodeFailures = n
	}
}

// WithConnFactory replaces the transport constructor, used to exercise
// sessions against fake connections.
func WithConnFactory(f func(*websocket.Config) websocket.Conn) Option {
	return func(o *options) {
		o.newConn = f
	}
}
