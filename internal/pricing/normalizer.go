// Package pricing converts raw swap deltas into a price and a size figure.
//
// Volume is max(|amt0|, |amt1|) in token units. It is a proxy for trade size, not a USD value:
// no price oracle is consulted on this path.
package pricing

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"

	"swapCandles/internal/model"
)

// Epsilon is the float64 machine epsilon, 2^-52.
var Epsilon = math.Nextafter(1, 2) - 1

// ScaleAmount returns raw / 10^decimals as a float64.
func ScaleAmount(raw *big.Int, decimals uint8) float64 {
	if raw == nil {
		return 0
	}
	return decimal.NewFromBigInt(raw, -int32(decimals)).InexactFloat64()
}

// PriceVolume derives price and volume from decimal-normalized amounts.
// It reports false when either magnitude is at or below Epsilon, or the result is not finite.
func PriceVolume(amt0, amt1 float64, inverted bool) (float64, float64, bool) {
	abs0, abs1 := math.Abs(amt0), math.Abs(amt1)
	if !isFinite(abs0) || !isFinite(abs1) {
		return 0, 0, false
	}
	if abs0 <= Epsilon || abs1 <= Epsilon {
		return 0, 0, false
	}

	price := abs1 / abs0
	if inverted {
		price = abs0 / abs1
	}
	volume := math.Max(abs0, abs1)
	if !isFinite(price) || price <= 0 || !isFinite(volume) {
		return 0, 0, false
	}
	return price, volume, true
}

// Normalize turns a decoded swap into a trade. Swaps that cannot be priced are dropped (false).
func Normalize(swap model.Swap, tokens model.PoolTokens, inverted bool) (model.Trade, bool) {
	amt0 := ScaleAmount(swap.Amount0, tokens.Token0.Decimals)
	amt1 := ScaleAmount(swap.Amount1, tokens.Token1.Decimals)

	price, volume, ok := PriceVolume(amt0, amt1, inverted)
	if !ok {
		return model.Trade{}, false
	}
	return model.Trade{
		TimestampMs: swap.TimestampMs,
		BlockNumber: swap.BlockNumber,
		LogIndex:    swap.LogIndex,
		Price:       price,
		Volume:      volume,
	}, true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
