package exchange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExchange(t *testing.T) {
	e, err := ParseExchange("binance-futures")
	require.NoError(t, err)
	assert.Equal(t, BinanceFutures, e)

	// identifiers are normalized before lookup
	e, err = ParseExchange("  BYBIT ")
	require.NoError(t, err)
	assert.Equal(t, Bybit, e)

	_, err = ParseExchange("nasdaq")
	assert.ErrorIs(t, err, ErrUnknownExchange)

	_, err = ParseExchange("")
	assert.ErrorIs(t, err, ErrUnknownExchange)
}

func TestExchangeValid(t *testing.T) {
	assert.True(t, Deribit.Valid())
	assert.True(t, CryptoComDerivatives.Valid())
	assert.False(t, Exchange("Bybit").Valid())
	assert.False(t, Exchange("").Valid())
}

func TestDataTypePrefix(t *testing.T) {
	tt := map[string]string{
		"trade":                "trade",
		"book_change":          "book_change",
		"derivative_ticker":    "derivative_ticker",
		"trade_bar_60m":        "trade_bar",
		"trade_bar_10000ms":    "trade_bar",
		"book_snapshot_2_50ms": "book_snapshot",
		"quote_bar_1h":         "quote_bar",
		"disconnect":           "disconnect",
	}
	for in, want := range tt {
		assert.Equal(t, want, DataTypePrefix(in), in)
	}
}

func TestMessageRoutes(t *testing.T) {
	trade := &Trade{Exchange: Bybit, Symbol: "BTCUSDT"}
	assert.Equal(t, MessageTypeTrade, trade.Type())
	assert.Equal(t, RouteKey{Exchange: Bybit, DataType: "trade"}, trade.Route())

	// parameterized feeds route on the data type prefix
	bar := &TradeBar{Exchange: Binance, Name: "trade_bar_60000ms"}
	assert.Equal(t, RouteKey{Exchange: Binance, DataType: "trade_bar"}, bar.Route())

	snap := &BookSnapshot{Exchange: Bitmex, Name: "book_snapshot_10_100ms"}
	assert.Equal(t, RouteKey{Exchange: Bitmex, DataType: "book_snapshot"}, snap.Route())

	d := &Disconnect{Exchange: Deribit}
	assert.Equal(t, MessageTypeDisconnect, d.Type())
}
