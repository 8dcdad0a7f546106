package dex

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"swapCandles/internal/model"
)

// V3SwapDecoder reads the signed amount0/amount1 of a concentrated-liquidity Swap event.
// The event reports deltas from the pool's side, so they are negated to match the
// out-minus-in convention of model.Swap.
type V3SwapDecoder struct {
	event abi.Event
}

func NewV3SwapDecoder() (*V3SwapDecoder, error) {
	poolABI, err := V3PoolABI()
	if err != nil {
		return nil, fmt.Errorf("parse v3 pool abi: %w", err)
	}
	event, ok := poolABI.Events["Swap"]
	if !ok {
		return nil, fmt.Errorf("v3 pool abi has no Swap event")
	}
	return &V3SwapDecoder{event: event}, nil
}

func (d *V3SwapDecoder) Topic0() common.Hash {
	return d.event.ID
}

func (d *V3SwapDecoder) Decode(log types.Log, blockTime uint64) (model.Swap, bool) {
	if !hasSwapShape(log, d.event.ID) {
		return model.Swap{}, false
	}
	values, err := d.event.Inputs.NonIndexed().Unpack(log.Data)
	if err != nil || len(values) != 5 {
		return model.Swap{}, false
	}
	amount0, ok0 := values[0].(*big.Int)
	amount1, ok1 := values[1].(*big.Int)
	if !ok0 || !ok1 {
		return model.Swap{}, false
	}

	swap := swapFromLog(log, blockTime)
	swap.Amount0 = new(big.Int).Neg(amount0)
	swap.Amount1 = new(big.Int).Neg(amount1)
	return swap, true
}
