package model

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Swap is one decoded swap log reduced to signed net token deltas.
// Positive amounts left the pool, negative amounts entered it.
type Swap struct {
	BlockNumber uint64      `json:"block_number"`
	TxHash      common.Hash `json:"tx_hash"`
	LogIndex    uint        `json:"log_index"`
	TimestampMs int64       `json:"timestamp_ms"`
	Amount0     *big.Int    `json:"amount0"`
	Amount1     *big.Int    `json:"amount1"`
}
