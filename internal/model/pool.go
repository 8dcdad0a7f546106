package model

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

const invertedSuffix = "inverted"

// PoolRef identifies one AMM pool and the quote convention requested for it.
type PoolRef struct {
	Chain    Chain
	Pool     common.Address
	Base     *common.Address
	Inverted bool
}

// ParsePoolRef parses `chain_pool[_inverted]` or `token_chain_pool[_inverted]`.
func ParsePoolRef(pair string) (PoolRef, error) {
	parts := strings.Split(strings.TrimSpace(pair), "_")
	if len(parts) < 2 {
		return PoolRef{}, fmt.Errorf("%w: expected 'chain_poolAddress' or 'chain_poolAddress_inverted', got %q", ErrInvalidAddress, pair)
	}

	var ref PoolRef
	rest := parts
	if len(parts) >= 3 && common.IsHexAddress(parts[0]) {
		base := common.HexToAddress(parts[0])
		ref.Base = &base
		rest = parts[1:]
	}

	chain, err := ParseChain(rest[0])
	if err != nil {
		return PoolRef{}, err
	}
	ref.Chain = chain

	pool, err := ParseAddress(rest[1])
	if err != nil {
		return PoolRef{}, err
	}
	ref.Pool = pool

	for _, flag := range rest[2:] {
		if strings.EqualFold(flag, invertedSuffix) {
			ref.Inverted = true
		}
	}
	return ref, nil
}

// ParseAddress converts a hex string into common.Address.
func ParseAddress(input string) (common.Address, error) {
	input = strings.TrimSpace(input)
	if !common.IsHexAddress(input) {
		return common.Address{}, fmt.Errorf("%w: %s", ErrInvalidAddress, input)
	}
	return common.HexToAddress(input), nil
}

func (p PoolRef) String() string {
	s := p.Chain.String() + "_" + strings.ToLower(p.Pool.Hex())
	if p.Inverted {
		s += "_" + invertedSuffix
	}
	return s
}
