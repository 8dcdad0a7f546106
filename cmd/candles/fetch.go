package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"swapCandles/internal/candles"
	"swapCandles/internal/chain"
	"swapCandles/internal/config"
	"swapCandles/internal/dex"
	"swapCandles/internal/model"
	"swapCandles/internal/storage"
)

func runFetch(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if len(cfg.Pairs) == 0 {
		return fmt.Errorf("at least one pair is required")
	}

	timeframe, err := model.ParseTimeframe(cfg.Timeframe)
	if err != nil {
		return err
	}

	flavor, err := dex.ParseFlavor(cfg.Flavor)
	if err != nil {
		return err
	}

	refs := make([]model.PoolRef, 0, len(cfg.Pairs))
	for _, pair := range cfg.Pairs {
		ref, err := model.ParsePoolRef(pair)
		if err != nil {
			return err
		}
		refs = append(refs, ref)
	}

	service, err := candles.NewService(candles.Options{
		Registry: chain.NewRegistry(cfg.ChainRPCURLs),
		Scan:     cfg.Scan(),
		Flavor:   flavor,
		RPCURL:   cfg.RPCURL,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := storage.NewJsonlStorage(cfg.Out)

	logger.Info("candles fetch start",
		zap.Int("pairs", len(refs)),
		zap.String("timeframe", timeframe.String()),
		zap.String("flavor", string(flavor)),
		zap.Int("min_candles", cfg.MinCandles),
		zap.Uint64("batch_size", cfg.BatchSize),
		zap.Duration("rpc_delay", cfg.RPCDelay),
		zap.Uint64("max_blocks", cfg.MaxBlocks),
		zap.String("out", cfg.Out),
	)

	for _, ref := range refs {
		result, err := service.GetCandles(ctx, ref, timeframe, cfg.MinCandles)
		if err != nil {
			return fmt.Errorf("%s: %w", ref, err)
		}
		if err := out.PutCandles(ref.String(), timeframe, result); err != nil {
			return fmt.Errorf("write candles: %w", err)
		}
	}

	return nil
}
