package dex

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	token0Signature   = "token0()"
	token1Signature   = "token1()"
	decimalsSignature = "decimals()"

	V2SwapSignature = "Swap(address,uint256,uint256,uint256,uint256,address)"
	V3SwapSignature = "Swap(address,address,int256,int256,uint160,uint128,int24)"
)

var (
	token0Selector   = selector(token0Signature)
	token1Selector   = selector(token1Signature)
	decimalsSelector = selector(decimalsSignature)

	V2SwapTopic = crypto.Keccak256Hash([]byte(V2SwapSignature))
	V3SwapTopic = crypto.Keccak256Hash([]byte(V3SwapSignature))
)

func selector(signature string) []byte {
	return crypto.Keccak256([]byte(signature))[:4]
}

// wordSize is the width of one ABI-encoded static value.
const wordSize = 32

func wordAt(data []byte, index int) []byte {
	return data[index*wordSize : (index+1)*wordSize]
}

func addressFromWord(word []byte) common.Address {
	return common.BytesToAddress(word[12:wordSize])
}
