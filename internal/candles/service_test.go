package candles

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swapCandles/internal/dex"
	"swapCandles/internal/indexer"
	"swapCandles/internal/model"
)

var (
	testPool   = common.HexToAddress("0xB4e16d0168e52d35CaCD2c6185b44281Ec28C9Dc")
	testToken0 = common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")
	testToken1 = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
)

type fakeBackend struct {
	chainID  uint64
	latest   uint64
	logs     map[uint64][]types.Log
	contract map[string][]byte
	closed   bool
}

func newFakeBackend() *fakeBackend {
	b := &fakeBackend{
		chainID:  1,
		latest:   100,
		logs:     make(map[uint64][]types.Log),
		contract: make(map[string][]byte),
	}
	b.contract[contractKey(testPool, "token0()")] = common.LeftPadBytes(testToken0.Bytes(), 32)
	b.contract[contractKey(testPool, "token1()")] = common.LeftPadBytes(testToken1.Bytes(), 32)
	b.contract[contractKey(testToken0, "decimals()")] = common.LeftPadBytes([]byte{18}, 32)
	b.contract[contractKey(testToken1, "decimals()")] = common.LeftPadBytes([]byte{6}, 32)
	return b
}

func contractKey(to common.Address, signature string) string {
	return to.Hex() + ":" + common.Bytes2Hex(crypto.Keccak256([]byte(signature))[:4])
}

func (b *fakeBackend) LatestBlockNumber(context.Context) (uint64, error) {
	return b.latest, nil
}

func (b *fakeBackend) FilterLogs(_ context.Context, from, to uint64, address common.Address, topic0 common.Hash) ([]types.Log, error) {
	var out []types.Log
	for block := from; block <= to; block++ {
		for _, log := range b.logs[block] {
			if log.Address == address && len(log.Topics) > 0 && log.Topics[0] == topic0 {
				out = append(out, log)
			}
		}
	}
	return out, nil
}

func (b *fakeBackend) BlockTimestamp(_ context.Context, number uint64) (uint64, error) {
	return number * 60, nil
}

func (b *fakeBackend) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	return b.contract[msg.To.Hex()+":"+common.Bytes2Hex(msg.Data)], nil
}

func (b *fakeBackend) ChainID(context.Context) (*big.Int, error) {
	return new(big.Int).SetUint64(b.chainID), nil
}

func (b *fakeBackend) Close() {
	b.closed = true
}

func (b *fakeBackend) addSwap(block uint64, index uint, amount0In, amount1Out *big.Int) {
	data := make([]byte, 0, 128)
	for _, word := range []*big.Int{amount0In, big.NewInt(0), big.NewInt(0), amount1Out} {
		data = append(data, common.LeftPadBytes(word.Bytes(), 32)...)
	}
	b.addLog(block, index, data)
}

func (b *fakeBackend) addLog(block uint64, index uint, data []byte) {
	b.logs[block] = append(b.logs[block], types.Log{
		Address:     testPool,
		Topics:      []common.Hash{dex.V2SwapTopic},
		Data:        data,
		BlockNumber: block,
		TxHash:      common.BigToHash(new(big.Int).SetUint64(block)),
		Index:       index,
	})
}

func ether(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1_000_000_000_000_000_000))
}

func usdc(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1_000_000))
}

func newTestService(t *testing.T, backend *fakeBackend, opts Options) (*Service, *[]string) {
	t.Helper()
	var dialed []string
	opts.Dial = func(_ context.Context, rpcURL string) (Backend, error) {
		dialed = append(dialed, rpcURL)
		return backend, nil
	}
	if opts.Scan == (indexer.ScanConfig{}) {
		opts.Scan = indexer.ScanConfig{BatchSize: 50, MaxBlocks: 100}
	}
	svc, err := NewService(opts)
	require.NoError(t, err)
	return svc, &dialed
}

func TestGetCandles(t *testing.T) {
	backend := newFakeBackend()
	backend.addSwap(10, 0, ether(1), usdc(2000))
	backend.addLog(10, 1, make([]byte, 127))
	backend.addSwap(20, 0, ether(2), usdc(4200))
	backend.addSwap(30, 0, ether(1), usdc(1900))

	svc, dialed := newTestService(t, backend, Options{})
	ref := model.PoolRef{Chain: model.ChainEthereum, Pool: testPool}

	candles, err := svc.GetCandles(context.Background(), ref, model.M3, 3)
	require.NoError(t, err)
	require.Len(t, candles, 3)

	assert.Equal(t, model.Candle{TimestampMs: 540_000, Open: 2000, High: 2000, Low: 2000, Close: 2000, Volume: 2000}, candles[0])
	assert.Equal(t, int64(1_080_000), candles[1].TimestampMs)
	assert.InDelta(t, 2100, candles[1].Close, 1e-9)
	assert.Equal(t, int64(1_800_000), candles[2].TimestampMs)

	assert.Equal(t, []string{"https://eth.llamarpc.com"}, *dialed)
	assert.True(t, backend.closed)
}

func TestGetCandlesInverted(t *testing.T) {
	backend := newFakeBackend()
	backend.addSwap(10, 0, ether(1), usdc(2000))

	svc, _ := newTestService(t, backend, Options{})
	ref := model.PoolRef{Chain: model.ChainEthereum, Pool: testPool, Inverted: true}

	candles, err := svc.GetCandles(context.Background(), ref, model.H1, 1)
	require.NoError(t, err)
	require.Len(t, candles, 1)
	assert.InDelta(t, 0.0005, candles[0].Close, 1e-15)
	assert.InDelta(t, 2000, candles[0].Volume, 1e-9)
}

func TestGetCandlesNoSwaps(t *testing.T) {
	svc, _ := newTestService(t, newFakeBackend(), Options{})
	ref := model.PoolRef{Chain: model.ChainEthereum, Pool: testPool}

	_, err := svc.GetCandles(context.Background(), ref, model.M15, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInsufficientBlockchainData)
	assert.ErrorIs(t, err, model.ErrInvalidBlockchainData)

	var insufficient *model.InsufficientDataError
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, insufficient.NoSwaps)
	assert.Equal(t, 0, insufficient.Got)
}

func TestGetCandlesBelowMinimum(t *testing.T) {
	backend := newFakeBackend()
	backend.addSwap(10, 0, ether(1), usdc(2000))
	backend.addSwap(20, 0, ether(1), usdc(2000))

	svc, _ := newTestService(t, backend, Options{})
	ref := model.PoolRef{Chain: model.ChainEthereum, Pool: testPool}

	_, err := svc.GetCandles(context.Background(), ref, model.M3, 10)
	require.ErrorIs(t, err, model.ErrInsufficientBlockchainData)
	assert.False(t, errors.Is(err, model.ErrInvalidBlockchainData))

	var insufficient *model.InsufficientDataError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 2, insufficient.Got)
	assert.Equal(t, 10, insufficient.Want)
}

func TestGetCandlesRPCOverride(t *testing.T) {
	backend := newFakeBackend()
	backend.addSwap(10, 0, ether(1), usdc(2000))

	svc, dialed := newTestService(t, backend, Options{RPCURL: "http://localhost:8545"})
	ref := model.PoolRef{Chain: model.ChainEthereum, Pool: testPool}

	_, err := svc.GetCandles(context.Background(), ref, model.M5, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"http://localhost:8545"}, *dialed)
}

func TestGetCandlesDialFailure(t *testing.T) {
	svc, err := NewService(Options{
		Dial: func(context.Context, string) (Backend, error) {
			return nil, errors.New("connection refused")
		},
	})
	require.NoError(t, err)

	_, err = svc.GetCandles(context.Background(), model.PoolRef{Chain: model.ChainBase, Pool: testPool}, model.M5, 1)
	assert.ErrorIs(t, err, model.ErrRPC)
}

func TestGetCandlesUnsupportedTimeframe(t *testing.T) {
	svc, dialed := newTestService(t, newFakeBackend(), Options{})

	_, err := svc.GetCandles(context.Background(), model.PoolRef{Chain: model.ChainEthereum, Pool: testPool}, model.Timeframe("2m"), 1)
	assert.ErrorIs(t, err, model.ErrUnsupportedTimeframe)
	assert.Empty(t, *dialed)
}

func TestProviderCandles(t *testing.T) {
	backend := newFakeBackend()
	backend.addSwap(10, 0, ether(1), usdc(2000))

	svc, _ := newTestService(t, backend, Options{})
	var provider Provider = svc

	candles, err := provider.Candles(context.Background(), Instrument{
		Pair:       "eth_" + testPool.Hex() + "_inverted",
		Timeframe:  model.D1,
		MinCandles: 1,
	})
	require.NoError(t, err)
	require.Len(t, candles, 1)
	assert.InDelta(t, 0.0005, candles[0].Open, 1e-15)

	_, err = provider.Candles(context.Background(), Instrument{Pair: "solana_" + testPool.Hex(), Timeframe: model.D1})
	assert.ErrorIs(t, err, model.ErrUnsupportedChain)
}

func TestNewServiceRejectsUnknownFlavor(t *testing.T) {
	_, err := NewService(Options{Flavor: dex.Flavor("v4")})
	assert.Error(t, err)
}
