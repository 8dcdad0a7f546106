package model

// Candle is the OHLCV record of one epoch-aligned bucket. TimestampMs is the bucket start.
type Candle struct {
	TimestampMs int64   `json:"timestamp"`
	Open        float64 `json:"open"`
	High        float64 `json:"high"`
	Low         float64 `json:"low"`
	Close       float64 `json:"close"`
	Volume      float64 `json:"volume"`
}
