package dex

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"

	"swapCandles/internal/model"
)

type fakeCaller struct {
	mu        sync.Mutex
	responses map[string][]byte
	errs      map[string]error
	calls     int
}

func newFakeCaller() *fakeCaller {
	return &fakeCaller{responses: make(map[string][]byte), errs: make(map[string]error)}
}

func callKey(to common.Address, sel []byte) string {
	return to.Hex() + ":" + hexutil.Encode(sel)
}

func (f *fakeCaller) set(to common.Address, sel []byte, resp []byte) {
	f.responses[callKey(to, sel)] = resp
}

func (f *fakeCaller) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	key := callKey(*msg.To, msg.Data)
	if err, ok := f.errs[key]; ok {
		return nil, err
	}
	return f.responses[key], nil
}

func addressWord(addr common.Address) []byte {
	return common.LeftPadBytes(addr.Bytes(), 32)
}

func uint8Word(v uint8) []byte {
	return common.LeftPadBytes([]byte{v}, 32)
}

var (
	testPool   = common.HexToAddress("0x4e68Ccd3E89f51C3074ca5072bbAC773960dFa36")
	testToken0 = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	testToken1 = common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")
)

func TestReaderResolvePool(t *testing.T) {
	caller := newFakeCaller()
	caller.set(testPool, token0Selector, addressWord(testToken0))
	caller.set(testPool, token1Selector, addressWord(testToken1))
	caller.set(testToken0, decimalsSelector, uint8Word(6))
	caller.set(testToken1, decimalsSelector, uint8Word(18))

	tokens, err := NewReader(caller, zap.NewNop()).ResolvePool(context.Background(), testPool)
	if err != nil {
		t.Fatalf("resolve pool: %v", err)
	}
	want := model.PoolTokens{
		Token0: model.TokenMeta{Address: testToken0, Decimals: 6},
		Token1: model.TokenMeta{Address: testToken1, Decimals: 18},
	}
	if tokens != want {
		t.Fatalf("tokens mismatch: %+v != %+v", tokens, want)
	}
	if caller.calls != 4 {
		t.Fatalf("expected 4 calls, got %d", caller.calls)
	}
}

func TestReaderShortResponse(t *testing.T) {
	caller := newFakeCaller()
	caller.set(testPool, token0Selector, addressWord(testToken0))
	caller.set(testPool, token1Selector, addressWord(testToken1)[:31])

	_, _, err := NewReader(caller, nil).ResolvePoolTokens(context.Background(), testPool)
	if !errors.Is(err, model.ErrInvalidBlockchainData) {
		t.Fatalf("expected invalid blockchain data, got %v", err)
	}

	caller.set(testToken0, decimalsSelector, []byte{6})
	if _, err := NewReader(caller, nil).ResolveDecimals(context.Background(), testToken0); !errors.Is(err, model.ErrInvalidBlockchainData) {
		t.Fatalf("expected invalid blockchain data, got %v", err)
	}
}

func TestReaderTransportError(t *testing.T) {
	caller := newFakeCaller()
	caller.set(testPool, token0Selector, addressWord(testToken0))
	caller.set(testPool, token1Selector, addressWord(testToken1))
	caller.set(testToken0, decimalsSelector, uint8Word(6))
	caller.errs[callKey(testToken1, decimalsSelector)] = errors.New("execution reverted")

	_, err := NewReader(caller, nil).ResolvePool(context.Background(), testPool)
	if !errors.Is(err, model.ErrRPC) {
		t.Fatalf("expected rpc error, got %v", err)
	}
	var rpcErr *model.RPCError
	if !errors.As(err, &rpcErr) || rpcErr.HasRange {
		t.Fatalf("expected call-scoped rpc error, got %#v", err)
	}
}
