package bytime

import (
	"testing"
	"time"

	"github.com/go-gotop/normfeed/exchange"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trade(sec int, price, amount string, side exchange.TradeSide) *exchange.Trade {
	return &exchange.Trade{
		Exchange:  exchange.Bybit,
		Symbol:    "BTCUSDT",
		Price:     decimal.RequireFromString(price),
		Amount:    decimal.RequireFromString(amount),
		Side:      side,
		Timestamp: time.Date(2022, 10, 1, 0, 0, sec, 0, time.UTC),
	}
}

func TestSampleCompletesBucketOnBoundary(t *testing.T) {
	s := NewByTime(time.Minute)

	assert.Nil(t, s.Sample(trade(1, "100", "1", exchange.TradeSideBuy)))
	assert.Nil(t, s.Sample(trade(10, "110", "2", exchange.TradeSideSell)))
	assert.Nil(t, s.Sample(trade(30, "95", "1", exchange.TradeSideBuy)))
	assert.Nil(t, s.Sample(trade(59, "105", "1", exchange.TradeSideSell)))

	// first trade of the next window flushes the previous bucket
	agg := s.Sample(trade(61, "106", "1", exchange.TradeSideBuy))
	require.NotNil(t, agg)

	assert.Equal(t, exchange.Bybit, agg.Exchange)
	assert.Equal(t, "BTCUSDT", agg.Symbol)
	assert.True(t, agg.Bucket.Equal(time.Date(2022, 10, 1, 0, 0, 0, 0, time.UTC)))

	assert.True(t, agg.OpenPrice.Price.Equal(decimal.RequireFromString("100")))
	assert.True(t, agg.ClosePrice.Price.Equal(decimal.RequireFromString("105")))
	assert.True(t, agg.HighestPrice.Price.Equal(decimal.RequireFromString("110")))
	assert.True(t, agg.LowestPrice.Price.Equal(decimal.RequireFromString("95")))

	assert.Equal(t, uint64(2), agg.BuyCount)
	assert.Equal(t, uint64(2), agg.SellCount)
	assert.True(t, agg.TotalBuyAmount.Equal(decimal.RequireFromString("2")))
	assert.True(t, agg.TotalSellAmount.Equal(decimal.RequireFromString("3")))
	assert.True(t, agg.Volume().Equal(decimal.RequireFromString("5")))

	// (100*1 + 95*1 + 110*2 + 105*1) / 5
	assert.True(t, agg.VWAP().Equal(decimal.RequireFromString("104")))
}

func TestSampleTracksPriceDirection(t *testing.T) {
	s := NewByTime(time.Minute)
	s.Sample(trade(1, "95", "1", exchange.TradeSideSell))
	s.Sample(trade(20, "110", "1", exchange.TradeSideBuy))
	agg := s.Sample(trade(61, "100", "1", exchange.TradeSideBuy))
	require.NotNil(t, agg)

	head, tail := agg.PriceRange()
	assert.True(t, head.Price.Equal(decimal.RequireFromString("95")))
	assert.True(t, tail.Price.Equal(decimal.RequireFromString("110")))
	assert.True(t, agg.IsUp())
}

func TestSampleNewBucketSeedsFromFlushingTrade(t *testing.T) {
	s := NewByTime(time.Minute)
	s.Sample(trade(1, "100", "1", exchange.TradeSideBuy))

	flush := trade(61, "200", "2", exchange.TradeSideSell)
	require.NotNil(t, s.Sample(flush))

	// the trade that crossed the boundary opens the next bucket
	agg := s.Sample(trade(121, "300", "1", exchange.TradeSideBuy))
	require.NotNil(t, agg)
	assert.True(t, agg.Bucket.Equal(time.Date(2022, 10, 1, 0, 1, 0, 0, time.UTC)))
	assert.True(t, agg.OpenPrice.Price.Equal(decimal.RequireFromString("200")))
	assert.Equal(t, uint64(1), agg.SellCount)
	assert.Equal(t, uint64(0), agg.BuyCount)
}
