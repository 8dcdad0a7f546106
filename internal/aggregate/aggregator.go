package aggregate

import (
	"fmt"
	"sort"

	"swapCandles/internal/model"
)

// Builder folds trades into epoch-aligned buckets. It is not safe for concurrent use.
type Builder struct {
	timeframeMs  int64
	accumulators map[int64]*Accumulator
	trades       int
}

func NewBuilder(timeframeMs int64) (*Builder, error) {
	if timeframeMs <= 0 {
		return nil, fmt.Errorf("timeframe must be positive, got %dms", timeframeMs)
	}
	return &Builder{
		timeframeMs:  timeframeMs,
		accumulators: make(map[int64]*Accumulator),
	}, nil
}

// Add places trade into its bucket.
func (b *Builder) Add(trade model.Trade) {
	start := BucketStart(trade.TimestampMs, b.timeframeMs)
	acc := b.accumulators[start]
	if acc == nil {
		acc = NewAccumulator(start)
		b.accumulators[start] = acc
	}
	acc.AddTrade(trade)
	b.trades++
}

// Buckets returns the number of distinct non-empty buckets seen so far.
func (b *Builder) Buckets() int {
	return len(b.accumulators)
}

// Trades returns the number of trades added.
func (b *Builder) Trades() int {
	return b.trades
}

// Candles returns one candle per non-empty bucket, ascending by bucket start.
// Empty buckets are not filled in.
func (b *Builder) Candles() []model.Candle {
	starts := make([]int64, 0, len(b.accumulators))
	for start := range b.accumulators {
		starts = append(starts, start)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i] < starts[j] })

	candles := make([]model.Candle, 0, len(starts))
	for _, start := range starts {
		if candle, ok := b.accumulators[start].Candle(); ok {
			candles = append(candles, candle)
		}
	}
	return candles
}

// Aggregate is the one-shot form of Builder.
func Aggregate(trades []model.Trade, timeframeMs int64) ([]model.Candle, error) {
	builder, err := NewBuilder(timeframeMs)
	if err != nil {
		return nil, err
	}
	for _, trade := range trades {
		builder.Add(trade)
	}
	return builder.Candles(), nil
}

// BucketStart floors ts to a multiple of timeframeMs, rounding toward negative infinity.
func BucketStart(ts, timeframeMs int64) int64 {
	start := (ts / timeframeMs) * timeframeMs
	if ts < 0 && start != ts {
		start -= timeframeMs
	}
	return start
}
