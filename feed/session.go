package feed

import (
	"io"
	"sync"
	"sync/atomic"

	"github.com/go-gotop/normfeed/exchange"
	"github.com/go-gotop/normfeed/websocket"
	"github.com/go-kratos/kratos/v2/log"
	gwebsocket "github.com/gorilla/websocket"
)

// SessionState is the lifecycle state of one stream session.
type SessionState int32

const (
	StateConnecting SessionState = iota
	StateHandshaking
	StateStreaming
	StateDraining
	StateClosed
	StateErrored
)

func (s SessionState) String() string {
	switch s {
	case StateConnecting:
		return "CONNECTING"
	case StateHandshaking:
		return "HANDSHAKING"
	case StateStreaming:
		return "STREAMING"
	case StateDraining:
		return "DRAINING"
	case StateClosed:
		return "CLOSED"
	case StateErrored:
		return "ERRORED"
	default:
		return "UNKNOWN"
	}
}

type item struct {
	msg   exchange.NormalizedMessage
	err   error
	fatal bool
}

// Stream is the single-consumer sequence of normalized messages produced
// by one session. One goroutine owns the connection and the read loop;
// items cross an unbuffered channel, so the session only makes progress
// while the caller keeps calling Recv. Not safe for concurrent consumers.
type Stream struct {
	id       string
	endpoint string
	logger   *log.Helper
	conn     websocket.Conn
	routes   *routeTable

	maxDecodeFailures int

	items chan item
	done  chan struct{}

	closeOnce sync.Once
	state     int32
	frames    uint64
	onClose   func(id string)
}

func newStream(id, endpoint string, conn websocket.Conn, routes *routeTable, logger *log.Helper, maxDecodeFailures int, onClose func(string)) *Stream {
	return &Stream{
		id:                id,
		endpoint:          endpoint,
		logger:            logger,
		conn:              conn,
		routes:            routes,
		maxDecodeFailures: maxDecodeFailures,
		items:             make(chan item),
		done:              make(chan struct{}),
		onClose:           onClose,
	}
}

// ID is the session's unique identifier.
func (s *Stream) ID() string {
	return s.id
}

// State reports the current lifecycle state.
func (s *Stream) State() SessionState {
	return SessionState(atomic.LoadInt32(&s.state))
}

// Frames is the monotonic count of transport frames processed so far.
func (s *Stream) Frames() uint64 {
	return atomic.LoadUint64(&s.frames)
}

// Recv blocks until the next element is available. It returns either a
// decoded message or an error item. Per-frame errors (*MalformedFrameError,
// *DecodeError) do not terminate the stream; a fatal error is returned
// exactly once and every call after the stream has ended returns io.EOF.
func (s *Stream) Recv() (exchange.NormalizedMessage, error) {
	it, ok := <-s.items
	if !ok {
		return nil, io.EOF
	}
	return it.msg, it.err
}

// Close releases the underlying connection immediately. It is the
// abandonment path for callers that stop consuming mid-stream, and it is
// idempotent.
func (s *Stream) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		err = s.conn.Close()
		if s.State() != StateErrored {
			s.setState(StateClosed)
		}
		if s.onClose != nil {
			s.onClose(s.id)
		}
	})
	return err
}

func (s *Stream) setState(state SessionState) {
	atomic.StoreInt32(&s.state, int32(state))
}

// run is the single task owning the connection. It exits on caller close,
// transport failure, or once every sub-feed has signaled disconnect.
func (s *Stream) run() {
	defer close(s.items)
	defer s.Close()

	decodeFailures := 0

	for {
		_, frame, err := s.conn.ReadMessage()
		if err != nil {
			select {
			case <-s.done:
				// Caller abandoned the stream; the read error is the
				// consequence of our own teardown.
				return
			default:
			}
			if gwebsocket.IsCloseError(err, gwebsocket.CloseNormalClosure, gwebsocket.CloseGoingAway) {
				s.logger.Debugf("session %s: connection closed normally", s.id)
				s.setState(StateClosed)
				return
			}
			if ce, ok := err.(*gwebsocket.CloseError); ok {
				s.logger.Errorf("session %s: connection closed abnormally: %s", s.id, ce.Text)
				s.setState(StateErrored)
				s.emit(item{err: &ProtocolError{Reason: ce.Text, Err: ce}, fatal: true})
				return
			}
			s.setState(StateErrored)
			s.emit(item{err: &TransportError{Err: err}, fatal: true})
			return
		}

		atomic.AddUint64(&s.frames, 1)

		msg, derr := decodeMessage(frame)
		if derr != nil {
			decodeFailures++
			if s.maxDecodeFailures > 0 && decodeFailures >= s.maxDecodeFailures {
				s.setState(StateErrored)
				s.emit(item{err: &ProtocolError{Reason: "decode failure tolerance exceeded", Err: derr}, fatal: true})
				return
			}
			if !s.emit(item{err: derr}) {
				return
			}
			continue
		}
		decodeFailures = 0

		if d, ok := msg.(*exchange.Disconnect); ok {
			if s.routes.MarkDisconnected(d.Exchange) {
				// Every requested sub-feed has signaled end-of-data:
				// flush the marker itself, then end the sequence.
				s.setState(StateDraining)
				s.emit(item{msg: msg})
				s.setState(StateClosed)
				return
			}
			if !s.emit(item{msg: msg}) {
				return
			}
			continue
		}

		if _, ok := s.routes.Request(msg); !ok {
			s.logger.Debugf("session %s: unroutable %s message for %s", s.id, msg.Type(), msg.Route().Exchange)
		}

		if !s.emit(item{msg: msg}) {
			return
		}
	}
}

// emit hands one item to the consumer. It reports false when the caller
// has abandoned the stream.
func (s *Stream) emit(it item) bool {
	select {
	case s.items <- it:
		return true
	case <-s.done:
		return false
	}
}
