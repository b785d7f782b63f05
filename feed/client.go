package feed

import (
	"context"
	"sync"
	"time"

	"github.com/go-gotop/normfeed/websocket"
	"github.com/go-gotop/normfeed/websocket/gorilla"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// Client is the entry point for replaying and streaming normalized market
// data from the normalization server. Each call opens one connection that
// multiplexes all requested sub-feeds; the returned Stream owns it.
type Client struct {
	baseURL string
	opts    *options

	mux      sync.Mutex
	sessions map[string]*Stream
}

// New creates a Client for the server at baseURL, e.g. "ws://localhost:8001".
func New(baseURL string, opts ...Option) *Client {
	o := &options{
		logger:           log.NewHelper(log.DefaultLogger),
		handshakeTimeout: 10 * time.Second,
		newConn: func(cfg *websocket.Config) websocket.Conn {
			return gorilla.NewConn(cfg)
		},
	}
	for _, opt := range opts {
		opt(o)
	}
	return &Client{
		baseURL:  baseURL,
		opts:     o,
		sessions: make(map[string]*Stream),
	}
}

// ReplayNormalized replays the requested historical sub-feeds over one
// multiplexed connection. Validation and connection failures are returned
// before any element is produced; the first element is only read from the
// transport once the caller starts consuming the stream.
func (c *Client) ReplayNormalized(ctx context.Context, requests []ReplayOptions) (*Stream, error) {
	if len(requests) == 0 {
		return nil, ErrEmptyOptions
	}
	for i := range requests {
		if err := requests[i].validate(); err != nil {
			return nil, err
		}
	}
	endpoint, err := buildReplayURL(c.baseURL, requests)
	if err != nil {
		return nil, err
	}
	return c.open(ctx, endpoint, newReplayRouteTable(requests))
}

// StreamNormalized streams the requested live sub-feeds over one
// multiplexed connection.
func (c *Client) StreamNormalized(ctx context.Context, requests []StreamOptions) (*Stream, error) {
	if len(requests) == 0 {
		return nil, ErrEmptyOptions
	}
	for i := range requests {
		if err := requests[i].validate(); err != nil {
			return nil, err
		}
	}
	endpoint, err := buildStreamURL(c.baseURL, requests)
	if err != nil {
		return nil, err
	}
	return c.open(ctx, endpoint, newStreamRouteTable(requests))
}

func (c *Client) open(ctx context.Context, endpoint string, routes *routeTable) (*Stream, error) {
	if c.opts.limiter != nil && !c.opts.limiter.WsAllow() {
		return nil, ErrConnLimitExceed
	}

	conn := c.opts.newConn(&websocket.Config{
		HandshakeTimeout: c.opts.handshakeTimeout,
		ReadLimit:        c.opts.readLimit,
	})

	s := newStream(uuid.New().String(), endpoint, conn, routes, c.opts.logger, c.opts.maxDecodeFailures, c.remove)
	s.setState(StateConnecting)

	if err := conn.DialContext(ctx, endpoint, nil); err != nil {
		s.setState(StateErrored)
		return nil, &ConnectError{Endpoint: endpoint, Err: err}
	}

	// Replay and live subscriptions are fully encoded in the URL, so the
	// handshake is accepted the moment the upgrade succeeds.
	s.setState(StateHandshaking)
	s.setState(StateStreaming)

	c.mux.Lock()
	c.sessions[s.id] = s
	c.mux.Unlock()

	c.opts.logger.Debugf("session %s: streaming from %s", s.id, endpoint)

	go s.run()
	if done := ctx.Done(); done != nil {
		go func() {
			select {
			case <-done:
				s.Close()
			case <-s.done:
			}
		}()
	}
	return s, nil
}

func (c *Client) remove(id string) {
	c.mux.Lock()
	delete(c.sessions, id)
	c.mux.Unlock()
}

// Sessions lists the IDs of the sessions that are still open.
func (c *Client) Sessions() []string {
	c.mux.Lock()
	defer c.mux.Unlock()
	ids := make([]string, 0, len(c.sessions))
	for id := range c.sessions {
		ids = append(ids, id)
	}
	return ids
}

// Shutdown releases every open session.
func (c *Client) Shutdown() {
	c.mux.Lock()
	open := make([]*Stream, 0, len(c.sessions))
	for _, s := range c.sessions {
		open = append(open, s)
	}
	c.mux.Unlock()
	for _, s := range open {
		s.Close()
	}
}
