package feed

import (
	"testing"
	"time"

	"github.com/go-gotop/normfeed/exchange"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTrade(t *testing.T) {
	frame := []byte(`{"type":"trade","symbol":"BTCUSDT","exchange":"bybit","id":"68c12852","price":50000.5,"amount":0.01,"side":"buy","timestamp":"2022-10-01T00:00:00.000Z","localTimestamp":"2022-10-01T00:00:00.050Z"}`)

	msg, err := decodeMessage(frame)
	require.NoError(t, err)

	trade, ok := msg.(*exchange.Trade)
	require.True(t, ok)
	assert.Equal(t, exchange.Bybit, trade.Exchange)
	assert.Equal(t, "BTCUSDT", trade.Symbol)
	assert.Equal(t, "68c12852", trade.ID)
	assert.True(t, trade.Price.Equal(decimal.RequireFromString("50000.5")))
	assert.True(t, trade.Amount.Equal(decimal.RequireFromString("0.01")))
	assert.Equal(t, exchange.TradeSideBuy, trade.Side)
	assert.True(t, trade.Timestamp.Equal(time.Date(2022, 10, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, trade.LocalTimestamp.Equal(time.Date(2022, 10, 1, 0, 0, 0, 50e6, time.UTC)))
	assert.Equal(t, exchange.RouteKey{Exchange: exchange.Bybit, DataType: "trade"}, trade.Route())
}

func TestDecodeTradeWholeSecondTimestamp(t *testing.T) {
	frame := []byte(`{"type":"trade","symbol":"BTCUSDT","exchange":"bybit","price":100,"amount":1,"side":"sell","timestamp":"2022-10-01T00:00:07Z","localTimestamp":"2022-10-01T00:00:07Z"}`)

	msg, err := decodeMessage(frame)
	require.NoError(t, err)

	trade := msg.(*exchange.Trade)
	assert.True(t, trade.Timestamp.Equal(time.Date(2022, 10, 1, 0, 0, 7, 0, time.UTC)))
}

func TestDecodeBookChange(t *testing.T) {
	frame := []byte(`{"type":"book_change","symbol":"XBTUSD","exchange":"bitmex","isSnapshot":true,"bids":[{"price":20000,"amount":10},{"price":19999.5,"amount":0}],"asks":[{"price":20000.5,"amount":3}],"timestamp":"2022-10-01T00:00:01.000Z","localTimestamp":"2022-10-01T00:00:01.001Z"}`)

	msg, err := decodeMessage(frame)
	require.NoError(t, err)

	bc, ok := msg.(*exchange.BookChange)
	require.True(t, ok)
	assert.Equal(t, exchange.Bitmex, bc.Exchange)
	assert.True(t, bc.IsSnapshot)
	require.Len(t, bc.Bids, 2)
	require.Len(t, bc.Asks, 1)
	assert.True(t, bc.Bids[1].Amount.IsZero())
	assert.Equal(t, exchange.RouteKey{Exchange: exchange.Bitmex, DataType: "book_change"}, bc.Route())
}

func TestDecodeTradeBar(t *testing.T) {
	frame := []byte(`{"type":"trade_bar","symbol":"BTCUSDT","exchange":"binance","name":"trade_bar_60000ms","interval":60000,"open":100,"high":110,"low":95,"close":105,"volume":12.5,"buyVolume":7.5,"sellVolume":5,"trades":42,"vwap":102.2,"openTimestamp":"2022-10-01T00:00:00.000Z","closeTimestamp":"2022-10-01T00:00:59.000Z","timestamp":"2022-10-01T00:01:00.000Z","localTimestamp":"2022-10-01T00:01:00.010Z"}`)

	msg, err := decodeMessage(frame)
	require.NoError(t, err)

	bar, ok := msg.(*exchange.TradeBar)
	require.True(t, ok)
	assert.Equal(t, uint64(42), bar.Trades)
	assert.True(t, bar.VWAP.Equal(decimal.RequireFromString("102.2")))
	// route key uses the data type prefix, not the parameterized name
	assert.Equal(t, exchange.RouteKey{Exchange: exchange.Binance, DataType: "trade_bar"}, bar.Route())
}

func TestDecodeDisconnect(t *testing.T) {
	frame := []byte(`{"type":"disconnect","exchange":"deribit","localTimestamp":"2022-10-01T12:00:00.000Z"}`)

	msg, err := decodeMessage(frame)
	require.NoError(t, err)

	d, ok := msg.(*exchange.Disconnect)
	require.True(t, ok)
	assert.Equal(t, exchange.Deribit, d.Exchange)
	assert.Empty(t, d.Symbol)
}

func TestDecodeUnknownTypeIsNotAnError(t *testing.T) {
	frame := []byte(`{"type":"liquidation","symbol":"BTCUSDT","exchange":"bybit","price":50000,"timestamp":"2022-10-01T00:00:00.000Z","localTimestamp":"2022-10-01T00:00:00.050Z"}`)

	msg, err := decodeMessage(frame)
	require.NoError(t, err)

	u, ok := msg.(*exchange.Unrecognized)
	require.True(t, ok)
	assert.Equal(t, "liquidation", u.TypeName)
	assert.Equal(t, exchange.Bybit, u.Exchange)
	assert.Equal(t, "BTCUSDT", u.Symbol)
	assert.Equal(t, frame, u.Raw)
	assert.True(t, u.Timestamp.Equal(time.Date(2022, 10, 1, 0, 0, 0, 0, time.UTC)))
}

func TestDecodeMalformedFrame(t *testing.T) {
	_, err := decodeMessage([]byte(`{"type":"trade",`))
	require.Error(t, err)

	var mf *MalformedFrameError
	assert.ErrorAs(t, err, &mf)
	assert.False(t, IsFatal(err))
}

func TestDecodeMissingDiscriminator(t *testing.T) {
	_, err := decodeMessage([]byte(`{"symbol":"BTCUSDT"}`))
	require.Error(t, err)

	var de *DecodeError
	assert.ErrorAs(t, err, &de)
	assert.False(t, IsFatal(err))
}

func TestDecodeKnownTypeWithBadEnvelope(t *testing.T) {
	tt := []struct {
		name  string
		frame string
	}{
		{
			name:  "unknown exchange",
			frame: `{"type":"trade","symbol":"BTCUSDT","exchange":"nasdaq","price":1,"amount":1,"side":"buy","timestamp":"2022-10-01T00:00:00Z","localTimestamp":"2022-10-01T00:00:00Z"}`,
		},
		{
			name:  "missing symbol",
			frame: `{"type":"trade","exchange":"bybit","price":1,"amount":1,"side":"buy","timestamp":"2022-10-01T00:00:00Z","localTimestamp":"2022-10-01T00:00:00Z"}`,
		},
		{
			name:  "missing local timestamp",
			frame: `{"type":"trade","symbol":"BTCUSDT","exchange":"bybit","price":1,"amount":1,"side":"buy","timestamp":"2022-10-01T00:00:00Z"}`,
		},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeMessage([]byte(tc.frame))
			var de *DecodeError
			assert.ErrorAs(t, err, &de)
		})
	}
}
