package candles

import (
	"context"

	"swapCandles/internal/model"
)

// Instrument names a market the way callers outside this package spell it.
// Pair is `chain_pool[_inverted]` (or the longer form with a leading base token).
type Instrument struct {
	Pair       string
	Timeframe  model.Timeframe
	MinCandles int
}

// Provider is implemented by every candle source.
type Provider interface {
	Candles(ctx context.Context, instrument Instrument) ([]model.Candle, error)
}

var _ Provider = (*Service)(nil)

// Candles parses the instrument and delegates to GetCandles.
func (s *Service) Candles(ctx context.Context, instrument Instrument) ([]model.Candle, error) {
	ref, err := model.ParsePoolRef(instrument.Pair)
	if err != nil {
		return nil, err
	}
	return s.GetCandles(ctx, ref, instrument.Timeframe, instrument.MinCandles)
}
