package bytime

import (
	"time"

	"github.com/go-gotop/normfeed/exchange"
	"github.com/go-gotop/normfeed/sampler"
)

// NewByTime buckets trades into fixed windows of the given length, based
// on the exchange timestamp of each trade.
func NewByTime(window time.Duration) sampler.Sampler {
	return &byTime{window: window}
}

type byTime struct {
	window time.Duration
	agg    *sampler.AggregatedTrade
}

func (b *byTime) Sample(t *exchange.Trade) (agg *sampler.AggregatedTrade) {
	if b.agg == nil {
		b.agg = toAgg(t, b.window)
		return nil
	}
	if !t.Timestamp.Before(b.agg.Bucket.Add(b.window)) {
		agg = b.agg
		b.agg = toAgg(t, b.window)
		return agg
	}
	b.aggregate(t)
	return nil
}

func toPrice(t *exchange.Trade) sampler.PricePoint {
	return sampler.PricePoint{
		Timestamp: t.Timestamp,
		Price:     t.Price,
	}
}

func toAgg(t *exchange.Trade, window time.Duration) *sampler.AggregatedTrade {
	agg := &sampler.AggregatedTrade{
		Exchange: t.Exchange,
		Symbol:   t.Symbol,
		// align the bucket start to the window
		Bucket:       t.Timestamp.Truncate(window),
		OpenPrice:    toPrice(t),
		ClosePrice:   toPrice(t),
		HighestPrice: toPrice(t),
		LowestPrice:  toPrice(t),
	}
	if t.Side == exchange.TradeSideBuy {
		agg.TotalBuyQuote = t.Price.Mul(t.Amount)
		agg.TotalBuyAmount = t.Amount
		agg.BuyCount = 1
	} else {
		agg.TotalSellQuote = t.Price.Mul(t.Amount)
		agg.TotalSellAmount = t.Amount
		agg.SellCount = 1
	}
	return agg
}

func (b *byTime) aggregate(t *exchange.Trade) {
	b.agg.ClosePrice = toPrice(t)
	if t.Side == exchange.TradeSideBuy {
		b.agg.BuyCount++
		b.agg.TotalBuyQuote = b.agg.TotalBuyQuote.Add(t.Price.Mul(t.Amount))
		b.agg.TotalBuyAmount = b.agg.TotalBuyAmount.Add(t.Amount)
	} else {
		b.agg.SellCount++
		b.agg.TotalSellQuote = b.agg.TotalSellQuote.Add(t.Price.Mul(t.Amount))
		b.agg.TotalSellAmount = b.agg.TotalSellAmount.Add(t.Amount)
	}
	if t.Price.GreaterThan(b.agg.HighestPrice.Price) {
		b.agg.HighestPrice = toPrice(t)
	}
	if t.Price.LessThan(b.agg.LowestPrice.Price) {
		b.agg.LowestPrice = toPrice(t)
	}
}
