package dex

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"swapCandles/internal/model"
)

// Caller performs read-only contract calls.
type Caller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// Reader resolves pool and token metadata through raw selector calls.
type Reader struct {
	chain  Caller
	logger *zap.Logger
}

func NewReader(chain Caller, logger *zap.Logger) *Reader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reader{chain: chain, logger: logger}
}

// ResolvePool loads both token addresses, then both decimal counts.
// Each pair of calls is issued concurrently.
func (r *Reader) ResolvePool(ctx context.Context, pool common.Address) (model.PoolTokens, error) {
	token0, token1, err := r.ResolvePoolTokens(ctx, pool)
	if err != nil {
		return model.PoolTokens{}, err
	}

	var decimals0, decimals1 uint8
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		decimals0, err = r.ResolveDecimals(gctx, token0)
		return err
	})
	g.Go(func() error {
		var err error
		decimals1, err = r.ResolveDecimals(gctx, token1)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.PoolTokens{}, err
	}

	tokens := model.PoolTokens{
		Token0: model.TokenMeta{Address: token0, Decimals: decimals0},
		Token1: model.TokenMeta{Address: token1, Decimals: decimals1},
	}
	r.logger.Debug("pool tokens resolved",
		zap.String("pool", pool.Hex()),
		zap.String("token0", token0.Hex()),
		zap.Uint8("decimals0", decimals0),
		zap.String("token1", token1.Hex()),
		zap.Uint8("decimals1", decimals1),
	)
	return tokens, nil
}

// ResolvePoolTokens calls token0() and token1() on the pool.
func (r *Reader) ResolvePoolTokens(ctx context.Context, pool common.Address) (common.Address, common.Address, error) {
	var token0, token1 common.Address
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		resp, err := r.call(gctx, pool, token0Signature, token0Selector)
		if err != nil {
			return err
		}
		token0 = addressFromWord(resp[:wordSize])
		return nil
	})
	g.Go(func() error {
		resp, err := r.call(gctx, pool, token1Signature, token1Selector)
		if err != nil {
			return err
		}
		token1 = addressFromWord(resp[:wordSize])
		return nil
	})
	if err := g.Wait(); err != nil {
		return common.Address{}, common.Address{}, err
	}
	return token0, token1, nil
}

// ResolveDecimals calls decimals() on an ERC20 token. The uint8 sits in the last byte of the word.
func (r *Reader) ResolveDecimals(ctx context.Context, token common.Address) (uint8, error) {
	resp, err := r.call(ctx, token, decimalsSignature, decimalsSelector)
	if err != nil {
		return 0, err
	}
	return resp[wordSize-1], nil
}

func (r *Reader) call(ctx context.Context, to common.Address, signature string, sel []byte) ([]byte, error) {
	data := make([]byte, len(sel))
	copy(data, sel)

	resp, err := r.chain.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return nil, &model.RPCError{Op: fmt.Sprintf("call %s on %s", signature, to.Hex()), Err: err}
	}
	if len(resp) < wordSize {
		return nil, fmt.Errorf("%w: %s on %s returned %d bytes", model.ErrInvalidBlockchainData, signature, to.Hex(), len(resp))
	}
	return resp, nil
}
