package chain

import (
	"fmt"
	"sort"

	"swapCandles/internal/model"
)

var defaultRPCURLs = map[model.Chain]string{
	model.ChainEthereum: "https://eth.llamarpc.com",
	model.ChainBase:     "https://base.llamarpc.com",
	model.ChainBNB:      "https://binance.llamarpc.com",
	model.ChainPolygon:  "https://polygon.llamarpc.com",
	model.ChainArbitrum: "https://arbitrum.llamarpc.com",
}

var chainIDs = map[model.Chain]uint64{
	model.ChainEthereum: 1,
	model.ChainBase:     8453,
	model.ChainBNB:      56,
	model.ChainPolygon:  137,
	model.ChainArbitrum: 42161,
}

// ExpectedChainID returns the EIP-155 id an endpoint for chain should report.
func ExpectedChainID(chain model.Chain) (uint64, bool) {
	id, ok := chainIDs[chain]
	return id, ok
}

// Registry maps chains to RPC endpoints. Per-chain overrides replace the built-in defaults.
type Registry struct {
	overrides map[model.Chain]string
}

func NewRegistry(overrides map[model.Chain]string) *Registry {
	cleaned := make(map[model.Chain]string, len(overrides))
	for chain, url := range overrides {
		if url != "" {
			cleaned[chain] = url
		}
	}
	return &Registry{overrides: cleaned}
}

// Resolve returns the endpoint for chain. A non-empty override wins over everything else.
func (r *Registry) Resolve(chain model.Chain, override string) (string, error) {
	def, ok := defaultRPCURLs[chain]
	if !ok {
		return "", fmt.Errorf("%w: %s", model.ErrUnsupportedChain, chain)
	}
	if override != "" {
		return override, nil
	}
	if r != nil {
		if url, ok := r.overrides[chain]; ok {
			return url, nil
		}
	}
	return def, nil
}

// Chains lists the supported chains in a stable order.
func Chains() []model.Chain {
	out := make([]model.Chain, 0, len(defaultRPCURLs))
	for chain := range defaultRPCURLs {
		out = append(out, chain)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
