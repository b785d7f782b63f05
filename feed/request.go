package feed

import (
	"fmt"
	"time"

	"github.com/go-gotop/normfeed/exchange"
)

const dateLayout = "2006-01-02"

// Date is a civil date (no time-of-day, no zone). Replay ranges are
// expressed in dates, matching the server's from/to parameters.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("date must be a %q string", dateLayout)
	}
	t, err := time.Parse(dateLayout, s[1:len(s)-1])
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ReplayOptions describes one logical replay sub-feed. It is consumed once
// to build the handshake and not mutated afterward.
type ReplayOptions struct {
	Exchange exchange.Exchange `json:"exchange"`
	// Symbols limits the feed to the given instruments. Empty means all.
	Symbols []string `json:"symbols,omitempty"`
	From    Date     `json:"from"`
	To      Date     `json:"to"`
	// DataTypes is the ordered set of requested data types,
	// e.g. "trade", "book_change", "trade_bar_60m".
	DataTypes []string `json:"dataTypes"`
	// WithDisconnectMessages asks the server to emit in-band disconnect
	// markers for this sub-feed.
	WithDisconnectMessages bool `json:"withDisconnectMessages,omitempty"`
}

func (o *ReplayOptions) validate() error {
	if !o.Exchange.Valid() {
		return fmt.Errorf("%w: %q: %v", ErrInvalidRequest, o.Exchange, exchange.ErrUnknownExchange)
	}
	if len(o.DataTypes) == 0 {
		return fmt.Errorf("%w: data types cannot be empty", ErrInvalidRequest)
	}
	if o.From.After(o.To.Time) {
		return fmt.Errorf("%w: from %s is after to %s", ErrInvalidRequest, o.From, o.To)
	}
	return nil
}

// StreamOptions describes one logical live sub-feed. Live streams have
// implicit "now" semantics, so there is no date range.
type StreamOptions struct {
	Exchange exchange.Exchange `json:"exchange"`
	// Symbols limits the feed to the given instruments. Empty means all.
	Symbols   []string `json:"symbols,omitempty"`
	DataTypes []string `json:"dataTypes"`
	// WithDisconnectMessages asks the server to emit in-band disconnect
	// markers when its upstream venue connection drops.
	WithDisconnectMessages bool `json:"withDisconnectMessages,omitempty"`
}

func (o *StreamOptions) validate() error {
	if !o.Exchange.Valid() {
		return fmt.Errorf("%w: %q: %v", ErrInvalidRequest, o.Exchange, exchange.ErrUnknownExchange)
	}
	if len(o.DataTypes) == 0 {
		return fmt.Errorf("%w: data types cannot be empty", ErrInvalidRequest)
	}
	return nil
}
