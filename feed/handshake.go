package feed

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-gotop/normfeed/exchange"
	jsoniter "github.com/json-iterator/go"
)

// Redefining the standard package
var Json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	replayPath = "/ws-replay-normalized"
	streamPath = "/ws-stream-normalized"

	exchangeKey    = "exchange"
	fromKey        = "from"
	toKey          = "to"
	symbolsKey     = "symbols"
	dataTypesKey   = "data_types"
	disconnectsKey = "withDisconnectMessages"
	optionsKey     = "options"
)

// buildReplayURL encodes the requested sub-feeds into the single handshake
// URL the server expects. One request is encoded as flat query parameters;
// several are multiplexed through the options parameter as a JSON array.
func buildReplayURL(base string, opts []ReplayOptions) (string, error) {
	if len(opts) == 1 {
		o := opts[0]
		q := url.Values{}
		q.Set(exchangeKey, o.Exchange.String())
		q.Set(fromKey, o.From.String())
		q.Set(toKey, o.To.String())
		if len(o.Symbols) > 0 {
			q.Set(symbolsKey, strings.Join(o.Symbols, ","))
		}
		q.Set(dataTypesKey, strings.Join(o.DataTypes, ","))
		if o.WithDisconnectMessages {
			q.Set(disconnectsKey, "true")
		}
		return strings.TrimRight(base, "/") + replayPath + "?" + q.Encode(), nil
	}

	b, err := Json.Marshal(opts)
	if err != nil {
		return "", err
	}
	q := url.Values{}
	q.Set(optionsKey, string(b))
	return strings.TrimRight(base, "/") + replayPath + "?" + q.Encode(), nil
}

func buildStreamURL(base string, opts []StreamOptions) (string, error) {
	if len(opts) == 1 {
		o := opts[0]
		q := url.Values{}
		q.Set(exchangeKey, o.Exchange.String())
		if len(o.Symbols) > 0 {
			q.Set(symbolsKey, strings.Join(o.Symbols, ","))
		}
		q.Set(dataTypesKey, strings.Join(o.DataTypes, ","))
		if o.WithDisconnectMessages {
			q.Set(disconnectsKey, "true")
		}
		return strings.TrimRight(base, "/") + streamPath + "?" + q.Encode(), nil
	}

	b, err := Json.Marshal(opts)
	if err != nil {
		return "", err
	}
	q := url.Values{}
	q.Set(optionsKey, string(b))
	return strings.TrimRight(base, "/") + streamPath + "?" + q.Encode(), nil
}

// ParseReplayURL decodes a replay handshake URL back into its request
// descriptors. Both the flat and the multiplexed options form are accepted.
func ParseReplayURL(raw string) ([]ReplayOptions, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	q := u.Query()

	if s := q.Get(optionsKey); s != "" {
		var opts []ReplayOptions
		if err := Json.Unmarshal([]byte(s), &opts); err != nil {
			return nil, err
		}
		return opts, nil
	}

	ex, err := exchange.ParseExchange(q.Get(exchangeKey))
	if err != nil {
		return nil, err
	}
	from, err := ParseDate(q.Get(fromKey))
	if err != nil {
		return nil, fmt.Errorf("parse from: %w", err)
	}
	to, err := ParseDate(q.Get(toKey))
	if err != nil {
		return nil, fmt.Errorf("parse to: %w", err)
	}
	o := ReplayOptions{
		Exchange:               ex,
		From:                   from,
		To:                     to,
		DataTypes:              splitCSV(q.Get(dataTypesKey)),
		WithDisconnectMessages: q.Get(disconnectsKey) == "true",
	}
	if s := q.Get(symbolsKey); s != "" {
		o.Symbols = splitCSV(s)
	}
	return []ReplayOptions{o}, nil
}

// ParseStreamURL decodes a live handshake URL back into its request
// descriptors.
func ParseStreamURL(raw string) ([]StreamOptions, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	q := u.Query()

	if s := q.Get(optionsKey); s != "" {
		var opts []StreamOptions
		if err := Json.Unmarshal([]byte(s), &opts); err != nil {
			return nil, err
		}
		return opts, nil
	}

	ex, err := exchange.ParseExchange(q.Get(exchangeKey))
	if err != nil {
		return nil, err
	}
	o := StreamOptions{
		Exchange:               ex,
		DataTypes:              splitCSV(q.Get(dataTypesKey)),
		WithDisconnectMessages: q.Get(disconnectsKey) == "true",
	}
	if s := q.Get(symbolsKey); s != "" {
		o.Symbols = splitCSV(s)
	}
	return []StreamOptions{o}, nil
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// routeTable re-associates inbound messages with the request descriptor
// that asked for them, keyed by (exchange, data type prefix). It also
// tracks which exchanges still owe a disconnect marker.
type routeTable struct {
	feeds map[exchange.RouteKey]int
	// pending exchanges that have not signaled disconnect yet
	pending map[exchange.Exchange]struct{}
	// awaitDisconnects is set only when every request opted into
	// disconnect markers; otherwise the bookkeeping cannot be complete
	// and the session streams until the transport closes.
	awaitDisconnects bool
}

func newReplayRouteTable(opts []ReplayOptions) *routeTable {
	t := &routeTable{
		feeds:            make(map[exchange.RouteKey]int),
		pending:          make(map[exchange.Exchange]struct{}),
		awaitDisconnects: true,
	}
	for i, o := range opts {
		for _, dt := range o.DataTypes {
			t.feeds[exchange.RouteKey{Exchange: o.Exchange, DataType: exchange.DataTypePrefix(dt)}] = i
		}
		t.pending[o.Exchange] = struct{}{}
		if !o.WithDisconnectMessages {
			t.awaitDisconnects = false
		}
	}
	return t
}

// newStreamRouteTable never awaits disconnects: a live feed's disconnect
// marker is informational, the server keeps the sub-feed alive.
func newStreamRouteTable(opts []StreamOptions) *routeTable {
	t := &routeTable{
		feeds:   make(map[exchange.RouteKey]int),
		pending: make(map[exchange.Exchange]struct{}),
	}
	for i, o := range opts {
		for _, dt := range o.DataTypes {
			t.feeds[exchange.RouteKey{Exchange: o.Exchange, DataType: exchange.DataTypePrefix(dt)}] = i
		}
		t.pending[o.Exchange] = struct{}{}
	}
	return t
}

// Request returns the index of the descriptor that requested msg, or false
// when no sub-feed matches its route.
func (t *routeTable) Request(msg exchange.NormalizedMessage) (int, bool) {
	i, ok := t.feeds[msg.Route()]
	return i, ok
}

// MarkDisconnected records an in-band disconnect for one exchange and
// reports whether every requested sub-feed has now signaled end-of-data.
func (t *routeTable) MarkDisconnected(e exchange.Exchange) bool {
	delete(t.pending, e)
	return t.awaitDisconnects && len(t.pending) == 0
}
