package broker

import (
	"context"

	"github.com/go-gotop/normfeed/exchange"
)

// Headers carries message metadata for downstream consumers.
type Headers map[string]string

// Publisher forwards normalized messages to a downstream system. It is an
// optional adapter behind the stream, not a store.
type Publisher interface {
	Publish(ctx context.Context, msg exchange.NormalizedMessage) error
	Close() error
}
