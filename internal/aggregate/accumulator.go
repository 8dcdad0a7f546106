package aggregate

import (
	"math"
	"sort"

	"swapCandles/internal/model"
)

// Accumulator holds the trades of one bucket until it is reduced to a candle.
type Accumulator struct {
	BucketStart int64
	trades      []model.Trade
}

func NewAccumulator(bucketStart int64) *Accumulator {
	return &Accumulator{BucketStart: bucketStart}
}

func (a *Accumulator) AddTrade(trade model.Trade) {
	a.trades = append(a.trades, trade)
}

// Len returns the number of trades in the bucket.
func (a *Accumulator) Len() int {
	return len(a.trades)
}

// Candle reduces the bucket. Trades are ordered by timestamp, then block number, then log index,
// so open and close do not depend on arrival order.
func (a *Accumulator) Candle() (model.Candle, bool) {
	if len(a.trades) == 0 {
		return model.Candle{}, false
	}

	ordered := make([]model.Trade, len(a.trades))
	copy(ordered, a.trades)
	sort.SliceStable(ordered, func(i, j int) bool {
		return tradeLess(ordered[i], ordered[j])
	})

	candle := model.Candle{
		TimestampMs: a.BucketStart,
		Open:        ordered[0].Price,
		Close:       ordered[len(ordered)-1].Price,
		High:        math.Inf(-1),
		Low:         math.Inf(1),
	}
	for _, trade := range ordered {
		candle.High = math.Max(candle.High, trade.Price)
		candle.Low = math.Min(candle.Low, trade.Price)
		candle.Volume += trade.Volume
	}
	return candle, true
}

func tradeLess(a, b model.Trade) bool {
	if a.TimestampMs != b.TimestampMs {
		return a.TimestampMs < b.TimestampMs
	}
	if a.BlockNumber != b.BlockNumber {
		return a.BlockNumber < b.BlockNumber
	}
	return a.LogIndex < b.LogIndex
}
