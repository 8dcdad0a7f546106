package storage

import "swapCandles/internal/model"

// Storage defines a sink for finished candles of one pair.
type Storage interface {
	PutCandles(pair string, timeframe model.Timeframe, candles []model.Candle) error
}

// CandleRecord is one output line.
type CandleRecord struct {
	Pair      string          `json:"pair"`
	Timeframe model.Timeframe `json:"timeframe"`
	model.Candle
}
