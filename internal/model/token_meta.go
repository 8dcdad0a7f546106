package model

import "github.com/ethereum/go-ethereum/common"

// TokenMeta captures the ERC20 fields needed to scale raw amounts.
type TokenMeta struct {
	Address  common.Address `json:"address"`
	Decimals uint8          `json:"decimals"`
}

// PoolTokens holds both sides of a pool, in the pool's own token0/token1 order.
type PoolTokens struct {
	Token0 TokenMeta `json:"token0"`
	Token1 TokenMeta `json:"token1"`
}
