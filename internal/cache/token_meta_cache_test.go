package cache

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/fachebot/moonit-sdk/internal/utils/evm"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCaller struct {
	calls int
	fail  bool
}

func (c *countingCaller) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	c.calls++
	if c.fail {
		return nil, errors.New("node unavailable")
	}

	method, err := evm.ERC20ABI.MethodById(msg.Data[:4])
	if err != nil {
		return nil, err
	}
	switch method.Name {
	case "name":
		return method.Outputs.Pack("Moon Cat")
	case "symbol":
		return method.Outputs.Pack("MCAT")
	case "decimals":
		return method.Outputs.Pack(uint8(18))
	}
	return nil, errors.New("unexpected method")
}

func TestTokenMetaCache(t *testing.T) {
	caller := &countingCaller{}
	c := NewTokenMetaCache(caller)
	token := common.HexToAddress("0x00000000000000000000000000000000000000aa")

	meta, err := c.GetTokenMeta(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, TokenMeta{Name: "Moon Cat", Symbol: "MCAT", Decimals: 18}, meta)
	assert.Equal(t, 3, caller.calls)

	meta, err = c.GetTokenMeta(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "MCAT", meta.Symbol)
	assert.Equal(t, 3, caller.calls)
}

func TestTokenMetaCacheDoesNotStoreFailures(t *testing.T) {
	caller := &countingCaller{fail: true}
	c := NewTokenMetaCache(caller)
	token := common.HexToAddress("0x00000000000000000000000000000000000000aa")

	_, err := c.GetTokenMeta(context.Background(), token)
	require.Error(t, err)

	caller.fail = false
	meta, err := c.GetTokenMeta(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, uint8(18), meta.Decimals)
}
