package candles

import (
	"github.com/ethereum/go-ethereum/core/types"

	"swapCandles/internal/aggregate"
	"swapCandles/internal/dex"
	"swapCandles/internal/model"
	"swapCandles/internal/pricing"
)

// candleSink decodes, prices and buckets each scanned log as it arrives.
type candleSink struct {
	decoder  dex.SwapDecoder
	tokens   model.PoolTokens
	inverted bool
	builder  *aggregate.Builder

	logs      int
	undecoded int
	unpriced  int
}

func newCandleSink(decoder dex.SwapDecoder, tokens model.PoolTokens, inverted bool, builder *aggregate.Builder) *candleSink {
	return &candleSink{
		decoder:  decoder,
		tokens:   tokens,
		inverted: inverted,
		builder:  builder,
	}
}

func (s *candleSink) HandleLog(log types.Log, blockTime uint64) {
	s.logs++

	swap, ok := s.decoder.Decode(log, blockTime)
	if !ok {
		s.undecoded++
		return
	}
	trade, ok := pricing.Normalize(swap, s.tokens, s.inverted)
	if !ok {
		s.unpriced++
		return
	}
	s.builder.Add(trade)
}

func (s *candleSink) Buckets() int {
	return s.builder.Buckets()
}
