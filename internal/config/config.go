package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"swapCandles/internal/chain"
	"swapCandles/internal/indexer"
	"swapCandles/internal/model"
)

// EnvPrefix is prepended to every environment variable, e.g. CANDLES_BATCH_SIZE.
const EnvPrefix = "CANDLES"

// Config holds configuration values loaded from flags, env, .env, or config file.
type Config struct {
	Pairs        []string
	Timeframe    string
	RPCURL       string
	ChainRPCURLs map[model.Chain]string
	BatchSize    uint64
	RPCDelay     time.Duration
	MinCandles   int
	MaxBlocks    uint64
	Flavor       string
	Out          string
	LogLevel     string
}

// ChainRPCKey is the config key holding the endpoint override for c.
func ChainRPCKey(c model.Chain) string {
	return string(c) + "-rpc-url"
}

// Load merges config file, environment variables, and flags into Config.
// A .env file in the working directory is loaded first when present; it never overrides
// variables already set in the process environment.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("timeframe", string(model.M15))
	v.SetDefault("batch-size", indexer.DefaultBatchSize)
	v.SetDefault("rpc-delay", indexer.DefaultDelay)
	v.SetDefault("min-candles", indexer.DefaultMinCandles)
	v.SetDefault("max-blocks", indexer.DefaultMaxBlocks)
	v.SetDefault("flavor", "v2")
	v.SetDefault("out", "-")
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	overrides := make(map[model.Chain]string)
	for _, c := range chain.Chains() {
		if url := strings.TrimSpace(v.GetString(ChainRPCKey(c))); url != "" {
			overrides[c] = url
		}
	}

	cfg := Config{
		Pairs:        getStringSlice(v, "pair"),
		Timeframe:    v.GetString("timeframe"),
		RPCURL:       strings.TrimSpace(v.GetString("rpc")),
		ChainRPCURLs: overrides,
		BatchSize:    v.GetUint64("batch-size"),
		RPCDelay:     v.GetDuration("rpc-delay"),
		MinCandles:   v.GetInt("min-candles"),
		MaxBlocks:    v.GetUint64("max-blocks"),
		Flavor:       v.GetString("flavor"),
		Out:          v.GetString("out"),
		LogLevel:     v.GetString("log-level"),
	}

	if cfg.MaxBlocks > indexer.BlockScanCeiling {
		return Config{}, fmt.Errorf("max-blocks %d exceeds the scan ceiling of %d", cfg.MaxBlocks, indexer.BlockScanCeiling)
	}

	return cfg, nil
}

// Scan returns the scanner settings carried by cfg.
func (c Config) Scan() indexer.ScanConfig {
	return indexer.ScanConfig{
		BatchSize:  c.BatchSize,
		Delay:      c.RPCDelay,
		MinCandles: c.MinCandles,
		MaxBlocks:  c.MaxBlocks,
	}
}

func getStringSlice(v *viper.Viper, key string) []string {
	if !v.IsSet(key) {
		return nil
	}

	val := v.Get(key)
	switch typed := val.(type) {
	case []string:
		return cleanStrings(typed)
	case string:
		return splitAndClean(typed)
	case []interface{}:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			items = append(items, fmt.Sprintf("%v", item))
		}
		return cleanStrings(items)
	default:
		return nil
	}
}

func splitAndClean(input string) []string {
	if input == "" {
		return nil
	}
	return cleanStrings(strings.Split(input, ","))
}

func cleanStrings(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
