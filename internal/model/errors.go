package model

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAddress             = errors.New("invalid address")
	ErrRPC                        = errors.New("rpc error")
	ErrInvalidBlockchainData      = errors.New("invalid blockchain data")
	ErrInsufficientBlockchainData = errors.New("insufficient blockchain data")
	ErrUnsupportedChain           = errors.New("unsupported chain")
	ErrUnsupportedTimeframe       = errors.New("unsupported timeframe")
)

// RPCError wraps a transport failure on a contract call or a log query.
type RPCError struct {
	Op       string
	From     uint64
	To       uint64
	HasRange bool
	Err      error
}

func (e *RPCError) Error() string {
	if e.HasRange {
		return fmt.Sprintf("rpc: %s for blocks %d-%d: %v", e.Op, e.From, e.To, e.Err)
	}
	return fmt.Sprintf("rpc: %s: %v", e.Op, e.Err)
}

func (e *RPCError) Unwrap() error {
	return e.Err
}

func (e *RPCError) Is(target error) bool {
	return target == ErrRPC
}

// InsufficientDataError reports a completed scan that produced fewer candles than required.
// NoSwaps marks the case where the pool emitted no swap logs at all in the scanned range.
type InsufficientDataError struct {
	Chain   Chain
	Pool    string
	Got     int
	Want    int
	NoSwaps bool
}

func (e *InsufficientDataError) Error() string {
	if e.NoSwaps {
		return fmt.Sprintf("no swaps found for pool %s on chain %s (got %d candles, need %d); make sure this is a pool address, not a router",
			e.Pool, e.Chain, e.Got, e.Want)
	}
	return fmt.Sprintf("only found %d candles for pool %s on chain %s, minimum required is %d", e.Got, e.Pool, e.Chain, e.Want)
}

func (e *InsufficientDataError) Is(target error) bool {
	if target == ErrInsufficientBlockchainData {
		return true
	}
	return e.NoSwaps && target == ErrInvalidBlockchainData
}
