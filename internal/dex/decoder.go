package dex

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"swapCandles/internal/model"
)

// Flavor selects the swap event layout emitted by the pool.
type Flavor string

const (
	// FlavorV2 pools emit four unsigned in/out amounts.
	FlavorV2 Flavor = "v2"
	// FlavorV3 pools emit two signed net amounts.
	FlavorV3 Flavor = "v3"
)

// minSwapDataLen is the smallest payload either flavor can carry.
const minSwapDataLen = 4 * wordSize

// SwapDecoder turns one raw log into signed token deltas.
// Decode reports false for logs it cannot read; those are skipped, never fatal.
type SwapDecoder interface {
	Topic0() common.Hash
	Decode(log types.Log, blockTime uint64) (model.Swap, bool)
}

// ParseFlavor accepts "v2" or "v3"; an empty string means v2.
func ParseFlavor(input string) (Flavor, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", string(FlavorV2):
		return FlavorV2, nil
	case string(FlavorV3):
		return FlavorV3, nil
	default:
		return "", fmt.Errorf("unsupported swap flavor: %s", input)
	}
}

// NewSwapDecoder builds the decoder for flavor.
func NewSwapDecoder(flavor Flavor) (SwapDecoder, error) {
	switch flavor {
	case FlavorV2, "":
		return NewV2SwapDecoder(), nil
	case FlavorV3:
		return NewV3SwapDecoder()
	default:
		return nil, fmt.Errorf("unsupported swap flavor: %s", flavor)
	}
}

func hasSwapShape(log types.Log, topic0 common.Hash) bool {
	if len(log.Topics) == 0 || len(log.Data) < minSwapDataLen {
		return false
	}
	return log.Topics[0] == topic0
}

func swapFromLog(log types.Log, blockTime uint64) model.Swap {
	return model.Swap{
		BlockNumber: log.BlockNumber,
		TxHash:      log.TxHash,
		LogIndex:    log.Index,
		TimestampMs: int64(blockTime) * 1000,
	}
}
