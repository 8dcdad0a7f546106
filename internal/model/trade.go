package model

// Trade is a normalized swap: a positive price plus a token-amount volume proxy.
// Volume is not USD-denominated; no price oracle is consulted.
type Trade struct {
	TimestampMs int64   `json:"timestamp_ms"`
	BlockNumber uint64  `json:"block_number"`
	LogIndex    uint    `json:"log_index"`
	Price       float64 `json:"price"`
	Volume      float64 `json:"volume"`
}
