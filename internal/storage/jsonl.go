package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"swapCandles/internal/model"
)

// StdoutPath selects standard output instead of a file.
const StdoutPath = "-"

// JsonlStorage writes candle records as JSON lines, appending to a file or to a writer.
type JsonlStorage struct {
	path string
	out  io.Writer
	mu   sync.Mutex
}

// NewJsonlStorage writes to path, or to stdout when path is "-" or empty.
func NewJsonlStorage(path string) *JsonlStorage {
	if path == "" || path == StdoutPath {
		return &JsonlStorage{out: os.Stdout}
	}
	return &JsonlStorage{path: path}
}

// NewJsonlWriter writes to w.
func NewJsonlWriter(w io.Writer) *JsonlStorage {
	return &JsonlStorage{out: w}
}

// PutCandles appends one line per candle, in the order given.
func (s *JsonlStorage) PutCandles(pair string, timeframe model.Timeframe, candles []model.Candle) error {
	if len(candles) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.out != nil {
		return writeCandles(s.out, pair, timeframe, candles)
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer file.Close()

	return writeCandles(file, pair, timeframe, candles)
}

func writeCandles(w io.Writer, pair string, timeframe model.Timeframe, candles []model.Candle) error {
	writer := bufio.NewWriter(w)
	for _, candle := range candles {
		line, err := json.Marshal(CandleRecord{Pair: pair, Timeframe: timeframe, Candle: candle})
		if err != nil {
			return fmt.Errorf("marshal candle: %w", err)
		}
		if _, err := writer.Write(line); err != nil {
			return fmt.Errorf("write candle: %w", err)
		}
		if err := writer.WriteByte('\n'); err != nil {
			return fmt.Errorf("write newline: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}
