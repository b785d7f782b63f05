package feed

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest 请求参数非法; raised before any network I/O.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrEmptyOptions at least one request descriptor is required.
	ErrEmptyOptions = errors.New("options cannot be empty")
	// ErrConnLimitExceed websocket request too frequent, please try again later.
	ErrConnLimitExceed = errors.New("websocket request too frequent, please try again later")
)

// ConnectError wraps a failure to establish or upgrade the connection,
// including handshake timeouts. It is returned before any data is produced.
type ConnectError struct {
	Endpoint string
	Err      error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("connect %s: %v", e.Endpoint, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// ProtocolError means the server rejected the subscription or produced a
// fundamentally incompatible stream. Fatal.
type ProtocolError struct {
	Reason string
	Err    error
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("protocol error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("protocol error: %s", e.Reason)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// MalformedFrameError marks a single inbound frame that could not be
// parsed as structured data. Non-fatal: the session keeps reading.
type MalformedFrameError struct {
	Frame []byte
	Err   error
}

func (e *MalformedFrameError) Error() string {
	return fmt.Sprintf("malformed frame: %v", e.Err)
}

func (e *MalformedFrameError) Unwrap() error { return e.Err }

// DecodeError marks a structurally valid frame whose recognized type is
// missing required fields or carries invalid values. Non-fatal.
type DecodeError struct {
	MessageType string
	Frame       []byte
	Err         error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %q frame: %v", e.MessageType, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// TransportError is a mid-stream read failure. Fatal: it is surfaced once
// and the sequence ends.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsFatal reports whether err terminates the stream. Malformed frames and
// per-frame decode failures are recoverable; everything else is not.
func IsFatal(err error) bool {
	var mf *MalformedFrameError
	var de *DecodeError
	return !errors.As(err, &mf) && !errors.As(err, &de)
}
