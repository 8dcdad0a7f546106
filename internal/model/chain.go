package model

import (
	"fmt"
	"sort"
	"strings"
)

// Chain identifies an EVM network that hosts AMM pools.
type Chain string

const (
	ChainEthereum Chain = "ethereum"
	ChainBase     Chain = "base"
	ChainBNB      Chain = "bnb"
	ChainPolygon  Chain = "polygon"
	ChainArbitrum Chain = "arbitrum"
)

var chainAliases = map[string]Chain{
	"ethereum": ChainEthereum,
	"eth":      ChainEthereum,
	"mainnet":  ChainEthereum,
	"base":     ChainBase,
	"bnb":      ChainBNB,
	"bsc":      ChainBNB,
	"binance":  ChainBNB,
	"polygon":  ChainPolygon,
	"matic":    ChainPolygon,
	"arbitrum": ChainArbitrum,
	"arb":      ChainArbitrum,
}

// ParseChain resolves a chain tag or one of its aliases, case-insensitively.
func ParseChain(tag string) (Chain, error) {
	chain, ok := chainAliases[strings.ToLower(strings.TrimSpace(tag))]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedChain, tag)
	}
	return chain, nil
}

// Aliases returns every accepted spelling for the chain, canonical tag first.
func (c Chain) Aliases() []string {
	out := []string{string(c)}
	for alias, chain := range chainAliases {
		if chain == c && alias != string(c) {
			out = append(out, alias)
		}
	}
	sort.Strings(out[1:])
	return out
}

func (c Chain) String() string {
	return string(c)
}
