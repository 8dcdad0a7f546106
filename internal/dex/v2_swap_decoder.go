package dex

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"

	"swapCandles/internal/model"
)

// SwapAmounts is the raw V2 swap payload: four big-endian uint256 words.
type SwapAmounts struct {
	Amount0In  uint256.Int
	Amount1In  uint256.Int
	Amount0Out uint256.Int
	Amount1Out uint256.Int
}

// DecodeSwapAmounts reads the four leading words of data. It reports false when data is short.
func DecodeSwapAmounts(data []byte) (SwapAmounts, bool) {
	if len(data) < minSwapDataLen {
		return SwapAmounts{}, false
	}
	var amounts SwapAmounts
	amounts.Amount0In.SetBytes32(wordAt(data, 0))
	amounts.Amount1In.SetBytes32(wordAt(data, 1))
	amounts.Amount0Out.SetBytes32(wordAt(data, 2))
	amounts.Amount1Out.SetBytes32(wordAt(data, 3))
	return amounts, true
}

// Deltas returns out-minus-in for each token as signed integers.
func (a SwapAmounts) Deltas() (*big.Int, *big.Int) {
	return netDelta(&a.Amount0In, &a.Amount0Out), netDelta(&a.Amount1In, &a.Amount1Out)
}

// netDelta computes out - in. A magnitude that does not fit int256 clamps to zero.
func netDelta(in, out *uint256.Int) *big.Int {
	var diff uint256.Int
	negative := in.Gt(out)
	if negative {
		diff.Sub(in, out)
	} else {
		diff.Sub(out, in)
	}
	if diff.BitLen() == 256 {
		return new(big.Int)
	}
	delta := diff.ToBig()
	if negative {
		delta.Neg(delta)
	}
	return delta
}

// V2SwapDecoder reads Swap(address,uint256,uint256,uint256,uint256,address) without an ABI.
type V2SwapDecoder struct{}

func NewV2SwapDecoder() *V2SwapDecoder {
	return &V2SwapDecoder{}
}

func (d *V2SwapDecoder) Topic0() common.Hash {
	return V2SwapTopic
}

func (d *V2SwapDecoder) Decode(log types.Log, blockTime uint64) (model.Swap, bool) {
	if !hasSwapShape(log, V2SwapTopic) {
		return model.Swap{}, false
	}
	amounts, ok := DecodeSwapAmounts(log.Data)
	if !ok {
		return model.Swap{}, false
	}

	swap := swapFromLog(log, blockTime)
	swap.Amount0, swap.Amount1 = amounts.Deltas()
	return swap, true
}
