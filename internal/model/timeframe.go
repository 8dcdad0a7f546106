package model

import (
	"fmt"
	"strings"
	"time"
)

// Timeframe is a candle resolution from the fixed set the providers agree on.
type Timeframe string

const (
	M3  Timeframe = "3m"
	M5  Timeframe = "5m"
	M15 Timeframe = "15m"
	M30 Timeframe = "30m"
	H1  Timeframe = "1h"
	H4  Timeframe = "4h"
	D1  Timeframe = "1d"
	W1  Timeframe = "1w"
	MN1 Timeframe = "1M"
)

var timeframeDurations = map[Timeframe]time.Duration{
	M3:  3 * time.Minute,
	M5:  5 * time.Minute,
	M15: 15 * time.Minute,
	M30: 30 * time.Minute,
	H1:  time.Hour,
	H4:  4 * time.Hour,
	D1:  24 * time.Hour,
	W1:  7 * 24 * time.Hour,
	// A month bucket is a flat 30 days.
	MN1: 30 * 24 * time.Hour,
}

var timeframeAliases = map[string]Timeframe{
	"m3":  M3,
	"m5":  M5,
	"m15": M15,
	"m30": M30,
	"h1":  H1,
	"h4":  H4,
	"d1":  D1,
	"w1":  W1,
	"mn1": MN1,
}

// ParseTimeframe accepts both `15m` and `m15` spellings. `1M` (month) is case-sensitive
// so it cannot be confused with `1m`, which is not a supported resolution.
func ParseTimeframe(input string) (Timeframe, error) {
	input = strings.TrimSpace(input)
	if _, ok := timeframeDurations[Timeframe(input)]; ok {
		return Timeframe(input), nil
	}
	if tf, ok := timeframeAliases[strings.ToLower(input)]; ok {
		return tf, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedTimeframe, input)
}

// Duration returns the bucket width, or zero for an unknown timeframe.
func (t Timeframe) Duration() time.Duration {
	return timeframeDurations[t]
}

// Millis returns the bucket width in milliseconds.
func (t Timeframe) Millis() int64 {
	return t.Duration().Milliseconds()
}

func (t Timeframe) String() string {
	return string(t)
}
