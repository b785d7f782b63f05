package exchange

import (
	"time"

	"github.com/shopspring/decimal"
)

// MessageType is the wire discriminator of a normalized message.
type MessageType string

const (
	MessageTypeTrade            MessageType = "trade"
	MessageTypeBookChange       MessageType = "book_change"
	MessageTypeDerivativeTicker MessageType = "derivative_ticker"
	MessageTypeBookSnapshot     MessageType = "book_snapshot"
	MessageTypeTradeBar         MessageType = "trade_bar"
	MessageTypeDisconnect       MessageType = "disconnect"
)

// RouteKey re-associates an inbound message with the sub-feed that
// requested it: one (exchange, data type prefix) pair per sub-feed.
type RouteKey struct {
	Exchange Exchange
	DataType string
}

// NormalizedMessage is the closed set of events the server can produce.
// Unknown discriminators decode into Unrecognized instead of failing.
type NormalizedMessage interface {
	Type() MessageType
	Route() RouteKey
	normalized()
}

var (
	_ NormalizedMessage = (*Trade)(nil)
	_ NormalizedMessage = (*BookChange)(nil)
	_ NormalizedMessage = (*DerivativeTicker)(nil)
	_ NormalizedMessage = (*BookSnapshot)(nil)
	_ NormalizedMessage = (*TradeBar)(nil)
	_ NormalizedMessage = (*Disconnect)(nil)
	_ NormalizedMessage = (*Unrecognized)(nil)
)

// BookLevel is a single price level of an order book.
type BookLevel struct {
	Price  decimal.Decimal `json:"price"`
	Amount decimal.Decimal `json:"amount"`
}

// Trade is an individual trade.
type Trade struct {
	// Symbol 交易对, as provided by the venue
	Symbol   string   `json:"symbol"`
	Exchange Exchange `json:"exchange"`
	// ID trade id if provided by the venue
	ID     string          `json:"id,omitempty"`
	Price  decimal.Decimal `json:"price"`
	Amount decimal.Decimal `json:"amount"`
	Side   TradeSide       `json:"side"`
	// Timestamp 交易所时间 (UTC)
	Timestamp time.Time `json:"timestamp"`
	// LocalTimestamp 本地接收时间 (UTC)
	LocalTimestamp time.Time `json:"localTimestamp"`
}

func (m *Trade) Type() MessageType { return MessageTypeTrade }
func (m *Trade) Route() RouteKey   { return RouteKey{m.Exchange, string(MessageTypeTrade)} }
func (m *Trade) normalized()       {}

// BookChange is the initial L2 snapshot (IsSnapshot=true) plus incremental
// updates. Amount is the absolute amount at the level, not a delta; zero
// means the level is gone.
type BookChange struct {
	Symbol         string      `json:"symbol"`
	Exchange       Exchange    `json:"exchange"`
	IsSnapshot     bool        `json:"isSnapshot"`
	Bids           []BookLevel `json:"bids"`
	Asks           []BookLevel `json:"asks"`
	Timestamp      time.Time   `json:"timestamp"`
	LocalTimestamp time.Time   `json:"localTimestamp"`
}

func (m *BookChange) Type() MessageType { return MessageTypeBookChange }
func (m *BookChange) Route() RouteKey   { return RouteKey{m.Exchange, string(MessageTypeBookChange)} }
func (m *BookChange) normalized()       {}

// DerivativeTicker is derivative instrument info sourced from the venue's
// ticker and instrument channels. Pointer fields are absent when the venue
// does not provide them.
type DerivativeTicker struct {
	Symbol         string           `json:"symbol"`
	Exchange       Exchange         `json:"exchange"`
	LastPrice      *decimal.Decimal `json:"lastPrice,omitempty"`
	OpenInterest   *decimal.Decimal `json:"openInterest,omitempty"`
	FundingRate    *decimal.Decimal `json:"fundingRate,omitempty"`
	IndexPrice     *decimal.Decimal `json:"indexPrice,omitempty"`
	MarkPrice      *decimal.Decimal `json:"markPrice,omitempty"`
	Timestamp      time.Time        `json:"timestamp"`
	LocalTimestamp time.Time        `json:"localTimestamp"`
}

func (m *DerivativeTicker) Type() MessageType { return MessageTypeDerivativeTicker }
func (m *DerivativeTicker) Route() RouteKey {
	return RouteKey{m.Exchange, string(MessageTypeDerivativeTicker)}
}
func (m *DerivativeTicker) normalized() {}

// BookSnapshot is a top-of-book snapshot for the requested depth and
// interval, recomputed from L2 data.
type BookSnapshot struct {
	Symbol   string   `json:"symbol"`
	Exchange Exchange `json:"exchange"`
	// Name has the format book_snapshot_{depth}_{interval}{unit}
	Name           string      `json:"name"`
	Depth          uint64      `json:"depth"`
	Interval       uint64      `json:"interval"`
	Bids           []BookLevel `json:"bids"`
	Asks           []BookLevel `json:"asks"`
	Timestamp      time.Time   `json:"timestamp"`
	LocalTimestamp time.Time   `json:"localTimestamp"`
}

func (m *BookSnapshot) Type() MessageType { return MessageTypeBookSnapshot }
func (m *BookSnapshot) Route() RouteKey   { return RouteKey{m.Exchange, DataTypePrefix(m.Name)} }
func (m *BookSnapshot) normalized()       {}

// TradeBar is trade data aggregated into OHLC bars. Bars are computed from
// tick-by-tick trades; an interval with no trades produces no bar.
type TradeBar struct {
	Symbol   string   `json:"symbol"`
	Exchange Exchange `json:"exchange"`
	// Name has the format trade_bar_{interval}
	Name           string          `json:"name"`
	Interval       uint64          `json:"interval"`
	Open           decimal.Decimal `json:"open"`
	High           decimal.Decimal `json:"high"`
	Low            decimal.Decimal `json:"low"`
	Close          decimal.Decimal `json:"close"`
	Volume         decimal.Decimal `json:"volume"`
	BuyVolume      decimal.Decimal `json:"buyVolume"`
	SellVolume     decimal.Decimal `json:"sellVolume"`
	Trades         uint64          `json:"trades"`
	VWAP           decimal.Decimal `json:"vwap"`
	OpenTimestamp  time.Time       `json:"openTimestamp"`
	CloseTimestamp time.Time       `json:"closeTimestamp"`
	Timestamp      time.Time       `json:"timestamp"`
	LocalTimestamp time.Time       `json:"localTimestamp"`
}

func (m *TradeBar) Type() MessageType { return MessageTypeTradeBar }
func (m *TradeBar) Route() RouteKey   { return RouteKey{m.Exchange, DataTypePrefix(m.Name)} }
func (m *TradeBar) normalized()       {}

// Disconnect marks end-of-data for one exchange's sub-feeds within a
// multiplexed session. It is an in-band marker, not a transport close.
type Disconnect struct {
	Exchange       Exchange  `json:"exchange"`
	Symbol         string    `json:"symbol,omitempty"`
	Timestamp      time.Time `json:"timestamp,omitempty"`
	LocalTimestamp time.Time `json:"localTimestamp"`
}

func (m *Disconnect) Type() MessageType { return MessageTypeDisconnect }
func (m *Disconnect) Route() RouteKey   { return RouteKey{m.Exchange, string(MessageTypeDisconnect)} }
func (m *Disconnect) normalized()       {}

// Unrecognized carries a structurally valid message whose discriminator
// this client does not know. The raw payload is preserved so callers can
// handle new server-side data types without a client upgrade.
type Unrecognized struct {
	TypeName       string
	Exchange       Exchange
	Symbol         string
	Timestamp      time.Time
	LocalTimestamp time.Time
	Raw            []byte
}

func (m *Unrecognized) Type() MessageType { return MessageType(m.TypeName) }
func (m *Unrecognized) Route() RouteKey {
	return RouteKey{m.Exchange, DataTypePrefix(m.TypeName)}
}
func (m *Unrecognized) normalized() {}
