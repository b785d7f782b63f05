package sampler

import (
	"time"

	"github.com/go-gotop/normfeed/exchange"
	"github.com/shopspring/decimal"
)

type PricePoint struct {
	Timestamp time.Time
	Price     decimal.Decimal
}

// AggregatedTrade is one bucket of trades aggregated client-side from
// normalized trade messages.
type AggregatedTrade struct {
	Exchange exchange.Exchange
	Symbol   string
	// Bucket is the start of the aggregation window.
	Bucket          time.Time
	BuyCount        uint64
	SellCount       uint64
	OpenPrice       PricePoint
	ClosePrice      PricePoint
	HighestPrice    PricePoint
	LowestPrice     PricePoint
	TotalBuyAmount  decimal.Decimal
	TotalSellAmount decimal.Decimal
	TotalBuyQuote   decimal.Decimal
	TotalSellQuote  decimal.Decimal
}

// Volume is the total traded amount in the bucket.
func (a *AggregatedTrade) Volume() decimal.Decimal {
	return a.TotalBuyAmount.Add(a.TotalSellAmount)
}

// VWAP is the volume weighted average price of the bucket. Zero when the
// bucket holds no volume.
func (a *AggregatedTrade) VWAP() decimal.Decimal {
	vol := a.Volume()
	if vol.IsZero() {
		return decimal.Zero
	}
	return a.TotalBuyQuote.Add(a.TotalSellQuote).Div(vol)
}

// PriceRange returns the prices at the highest and lowest points in the
// order they occurred.
func (a *AggregatedTrade) PriceRange() (head PricePoint, tail PricePoint) {
	head = a.HighestPrice
	tail = a.LowestPrice
	if a.HighestPrice.Timestamp.After(a.LowestPrice.Timestamp) {
		head = a.LowestPrice
		tail = a.HighestPrice
	}
	return
}

func (a *AggregatedTrade) IsUp() bool {
	head, tail := a.PriceRange()
	return tail.Price.GreaterThan(head.Price)
}

// Sampler is the interface that wraps the basic Sample method.
type Sampler interface {
	// Sample feeds one trade in and returns the previous bucket once the
	// trade crosses a bucket boundary, nil otherwise.
	Sample(t *exchange.Trade) *AggregatedTrade
}
