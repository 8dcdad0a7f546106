package indexer

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"swapCandles/internal/model"
)

// BlockScanCeiling caps how far back a single scan may reach, whatever MaxBlocks says.
const BlockScanCeiling uint64 = 2_000_000

const (
	DefaultBatchSize  uint64 = 1000
	DefaultDelay             = 50 * time.Millisecond
	DefaultMinCandles        = 250
	DefaultMaxBlocks  uint64 = 200_000
)

// LogSource is the slice of the RPC client the scanner reads from.
type LogSource interface {
	LatestBlockNumber(ctx context.Context) (uint64, error)
	FilterLogs(ctx context.Context, fromBlock, toBlock uint64, address common.Address, topic0 common.Hash) ([]types.Log, error)
	BlockTimestamp(ctx context.Context, number uint64) (uint64, error)
}

// LogSink consumes scanned logs and reports how many distinct candle buckets it holds.
type LogSink interface {
	HandleLog(log types.Log, blockTime uint64)
	Buckets() int
}

// ScanConfig holds the batching knobs of one scan.
type ScanConfig struct {
	BatchSize  uint64
	Delay      time.Duration
	MinCandles int
	MaxBlocks  uint64
}

// WithDefaults fills zero fields with the package defaults. A zero Delay stays zero and disables pacing.
func (c ScanConfig) WithDefaults() ScanConfig {
	if c.BatchSize == 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.Delay < 0 {
		c.Delay = 0
	}
	if c.MinCandles <= 0 {
		c.MinCandles = DefaultMinCandles
	}
	if c.MaxBlocks == 0 {
		c.MaxBlocks = DefaultMaxBlocks
	}
	return c
}

// ScanResult summarizes a finished scan.
type ScanResult struct {
	FromBlock   uint64
	ToBlock     uint64
	LatestBlock uint64
	Batches     int
	Logs        int
	Removed     int
	Duplicates  int
	EarlyExit   bool
}

// Scanner reads logs over a bounded window of recent blocks, oldest batch first.
type Scanner struct {
	cfg    ScanConfig
	source LogSource
	logger *zap.Logger
}

// NewScanner builds a Scanner. Zero config fields take the package defaults.
func NewScanner(cfg ScanConfig, source LogSource, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{
		cfg:    cfg.WithDefaults(),
		source: source,
		logger: logger,
	}
}

// Config returns the effective configuration.
func (s *Scanner) Config() ScanConfig {
	return s.cfg
}

// StartBlock returns the first block of a scan ending at latest.
func StartBlock(latest, maxBlocks uint64) uint64 {
	span := maxBlocks
	if span > BlockScanCeiling {
		span = BlockScanCeiling
	}
	if span >= latest {
		return 0
	}
	return latest - span
}

// Scan reads logs of address with topic0 from the recent block window. Batches run strictly in order.
// The first failed batch aborts the scan; nothing is retried.
func (s *Scanner) Scan(ctx context.Context, address common.Address, topic0 common.Hash, sink LogSink) (ScanResult, error) {
	if s.source == nil {
		return ScanResult{}, fmt.Errorf("log source is nil")
	}
	if sink == nil {
		return ScanResult{}, fmt.Errorf("log sink is nil")
	}

	latest, err := s.source.LatestBlockNumber(ctx)
	if err != nil {
		return ScanResult{}, &model.RPCError{Op: "eth_blockNumber", Err: err}
	}

	result := ScanResult{
		FromBlock:   StartBlock(latest, s.cfg.MaxBlocks),
		LatestBlock: latest,
	}

	ranges, err := SplitRange(result.FromBlock, latest, s.cfg.BatchSize)
	if err != nil {
		return ScanResult{}, err
	}

	seen := make(map[string]struct{})
	for i, blockRange := range ranges {
		if i > 0 {
			if err := pause(ctx, s.cfg.Delay); err != nil {
				return ScanResult{}, err
			}
		}

		s.logger.Debug("fetch logs", zap.Uint64("from", blockRange.From), zap.Uint64("to", blockRange.To))

		logs, err := s.source.FilterLogs(ctx, blockRange.From, blockRange.To, address, topic0)
		if err != nil {
			s.logger.Warn("filter logs failed", zap.Error(err), zap.Uint64("from", blockRange.From), zap.Uint64("to", blockRange.To))
			return ScanResult{}, &model.RPCError{Op: "eth_getLogs", From: blockRange.From, To: blockRange.To, HasRange: true, Err: err}
		}

		for _, log := range logs {
			if log.Removed {
				result.Removed++
				continue
			}
			id := logID(log)
			if _, ok := seen[id]; ok {
				result.Duplicates++
				continue
			}
			seen[id] = struct{}{}

			ts, err := s.source.BlockTimestamp(ctx, log.BlockNumber)
			if err != nil {
				return ScanResult{}, &model.RPCError{Op: fmt.Sprintf("block timestamp %d", log.BlockNumber), Err: err}
			}
			sink.HandleLog(log, ts)
			result.Logs++
		}

		result.Batches++
		result.ToBlock = blockRange.To

		buckets := sink.Buckets()
		s.logger.Debug("batch complete",
			zap.Int("logs", len(logs)),
			zap.Int("buckets", buckets),
			zap.Uint64("from", blockRange.From),
			zap.Uint64("to", blockRange.To),
		)

		if buckets >= s.cfg.MinCandles && blockRange.To < latest {
			result.EarlyExit = true
			break
		}
	}

	return result, nil
}

func logID(log types.Log) string {
	return fmt.Sprintf("%d:%s:%d", log.BlockNumber, log.TxHash.Hex(), log.Index)
}
