// Package candles composes the chain registry, contract reader, log scanner and aggregator
// into a single pull-style candle fetch.
package candles

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"go.uber.org/zap"

	"swapCandles/internal/aggregate"
	"swapCandles/internal/chain"
	"swapCandles/internal/dex"
	"swapCandles/internal/indexer"
	"swapCandles/internal/model"
)

// Backend is one open RPC connection.
type Backend interface {
	indexer.LogSource
	dex.Caller
	ChainID(ctx context.Context) (*big.Int, error)
	Close()
}

// Dialer opens a Backend for an RPC URL.
type Dialer func(ctx context.Context, rpcURL string) (Backend, error)

// DialRPC is the Dialer backed by go-ethereum.
func DialRPC(ctx context.Context, rpcURL string) (Backend, error) {
	client, err := chain.Dial(ctx, rpcURL)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Options configures a Service. A non-empty RPCURL is used for every chain.
type Options struct {
	Registry *chain.Registry
	Dial     Dialer
	Scan     indexer.ScanConfig
	Flavor   dex.Flavor
	RPCURL   string
	Logger   *zap.Logger
}

// Service fetches candles for one pool per call. Nothing is cached between calls.
type Service struct {
	registry *chain.Registry
	dial     Dialer
	scan     indexer.ScanConfig
	decoder  dex.SwapDecoder
	rpcURL   string
	logger   *zap.Logger
}

func NewService(opts Options) (*Service, error) {
	decoder, err := dex.NewSwapDecoder(opts.Flavor)
	if err != nil {
		return nil, err
	}
	if opts.Registry == nil {
		opts.Registry = chain.NewRegistry(nil)
	}
	if opts.Dial == nil {
		opts.Dial = DialRPC
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Service{
		registry: opts.Registry,
		dial:     opts.Dial,
		scan:     opts.Scan.WithDefaults(),
		decoder:  decoder,
		rpcURL:   opts.RPCURL,
		logger:   opts.Logger,
	}, nil
}

// GetCandles scans recent swaps of ref's pool and returns candles ascending by bucket start.
// minCandles <= 0 uses the configured minimum.
func (s *Service) GetCandles(ctx context.Context, ref model.PoolRef, timeframe model.Timeframe, minCandles int) ([]model.Candle, error) {
	tfMillis := timeframe.Millis()
	if tfMillis <= 0 {
		return nil, fmt.Errorf("%w: %q", model.ErrUnsupportedTimeframe, timeframe)
	}

	rpcURL, err := s.registry.Resolve(ref.Chain, s.rpcURL)
	if err != nil {
		return nil, err
	}

	scanCfg := s.scan
	if minCandles > 0 {
		scanCfg.MinCandles = minCandles
	}

	logger := s.logger.With(
		zap.String("chain", ref.Chain.String()),
		zap.String("pool", strings.ToLower(ref.Pool.Hex())),
		zap.String("timeframe", timeframe.String()),
	)

	backend, err := s.dial(ctx, rpcURL)
	if err != nil {
		return nil, &model.RPCError{Op: "dial " + rpcURL, Err: err}
	}
	defer backend.Close()

	s.checkChainID(ctx, backend, ref.Chain, logger)

	tokens, err := dex.NewReader(backend, logger).ResolvePool(ctx, ref.Pool)
	if err != nil {
		return nil, fmt.Errorf("resolve pool tokens: %w", err)
	}

	builder, err := aggregate.NewBuilder(tfMillis)
	if err != nil {
		return nil, err
	}
	sink := newCandleSink(s.decoder, tokens, ref.Inverted, builder)

	logger.Info("fetch candles", zap.Int("min_candles", scanCfg.MinCandles), zap.Uint64("max_blocks", scanCfg.MaxBlocks))

	result, err := indexer.NewScanner(scanCfg, backend, logger).Scan(ctx, ref.Pool, s.decoder.Topic0(), sink)
	if err != nil {
		return nil, err
	}

	candles := builder.Candles()
	logger.Info("fetch complete",
		zap.Uint64("from", result.FromBlock),
		zap.Uint64("to", result.ToBlock),
		zap.Int("batches", result.Batches),
		zap.Int("logs", sink.logs),
		zap.Int("undecoded", sink.undecoded),
		zap.Int("unpriced", sink.unpriced),
		zap.Int("removed", result.Removed),
		zap.Int("duplicates", result.Duplicates),
		zap.Int("candles", len(candles)),
		zap.Bool("early_exit", result.EarlyExit),
	)

	if sink.logs == 0 {
		return nil, &model.InsufficientDataError{
			Chain:   ref.Chain,
			Pool:    ref.Pool.Hex(),
			Want:    scanCfg.MinCandles,
			NoSwaps: true,
		}
	}
	if len(candles) < scanCfg.MinCandles {
		return nil, &model.InsufficientDataError{
			Chain: ref.Chain,
			Pool:  ref.Pool.Hex(),
			Got:   len(candles),
			Want:  scanCfg.MinCandles,
		}
	}
	return candles, nil
}

// checkChainID warns when the endpoint serves a different chain than the one requested.
func (s *Service) checkChainID(ctx context.Context, backend Backend, c model.Chain, logger *zap.Logger) {
	want, ok := chain.ExpectedChainID(c)
	if !ok {
		return
	}
	got, err := backend.ChainID(ctx)
	if err != nil {
		logger.Warn("chain id lookup failed", zap.Error(err))
		return
	}
	if !got.IsUint64() || got.Uint64() != want {
		logger.Warn("rpc endpoint chain id mismatch", zap.Uint64("expected", want), zap.String("actual", got.String()))
	}
}
