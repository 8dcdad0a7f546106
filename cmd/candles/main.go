package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "candles",
		Short:        "OHLCV candles from on-chain AMM swaps",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch candles for one or more pools",
		RunE:  runFetch,
	}

	fetchCmd.Flags().StringSlice("pair", nil, "pool pairs, chain_poolAddress[_inverted] (comma-separated)")
	fetchCmd.Flags().String("timeframe", "15m", "candle resolution (3m, 5m, 15m, 30m, 1h, 4h, 1d, 1w, 1M)")
	fetchCmd.Flags().Int("min-candles", 250, "minimum number of candles required")
	fetchCmd.Flags().Uint64("batch-size", 1000, "blocks per eth_getLogs request")
	fetchCmd.Flags().Duration("rpc-delay", 50*time.Millisecond, "pause between log batches")
	fetchCmd.Flags().Uint64("max-blocks", 200_000, "how many recent blocks to scan at most")
	fetchCmd.Flags().String("rpc", "", "RPC URL used for every chain")
	fetchCmd.Flags().String("flavor", "v2", "swap event layout (v2, v3)")
	fetchCmd.Flags().String("out", "-", "output JSONL path, - for stdout")
	fetchCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(fetchCmd)

	chainsCmd := &cobra.Command{
		Use:   "chains",
		Short: "List supported chains and their RPC endpoints",
		RunE:  runChains,
	}

	root.AddCommand(chainsCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
