package evm

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type erc20Caller struct {
	fail bool
}

func (c erc20Caller) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	if c.fail {
		return nil, errors.New("node unavailable")
	}

	method, err := ERC20ABI.MethodById(msg.Data[:4])
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
	case "balanceOf":
		return method.Outputs.Pack(big.NewInt(123456))
	}
	return nil, errors.New("unexpected method")
}

func TestParseUnits(t *testing.T) {
	tests := []struct {
		name     string
		value    *big.Int
		decimals uint8
		want     string
	}{
		{name: "one ether", value: big.NewInt(1_000_000_000_000_000_000), decimals: 18, want: "1"},
		{name: "fractional", value: big.NewInt(1_500_000), decimals: 6, want: "1.5"},
		{name: "zero decimals", value: big.NewInt(42), decimals: 0, want: "42"},
		{name: "nil", value: nil, decimals: 18, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseUnits(tt.value, tt.decimals).String())
		})
	}
}

func TestFormatUnits(t *testing.T) {
	assert.Equal(t, "1500000", FormatUnits(decimal.RequireFromString("1.5"), 6).String())
	assert.Equal(t, "1", FormatUnits(decimal.RequireFromString("1.9"), 0).String())
	assert.Equal(t, "1000000000000000000", FormatETH(decimal.NewFromInt(1)).String())
}

func TestGetAddress(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	addr, err := GetAddress(key)
	require.NoError(t, err)
	assert.Equal(t, crypto.PubkeyToAddress(key.PublicKey), addr)
}

func TestGetTokenMeta(t *testing.T) {
	meta, err := GetTokenMeta(context.Background(), erc20Caller{}, common.HexToAddress("0x01"))
	require.NoError(t, err)
	assert.Equal(t, "Moon Cat", meta.Name)
	assert.Equal(t, "MCAT", meta.Symbol)
	assert.Equal(t, uint8(18), meta.Decimals)

	_, err = GetTokenMeta(context.Background(), erc20Caller{fail: true}, common.HexToAddress("0x01"))
	assert.ErrorContains(t, err, "node unavailable")
}

func TestGetTokenBalance(t *testing.T) {
	balance, err := GetTokenBalance(context.Background(), erc20Caller{}, common.HexToAddress("0x01"), common.HexToAddress("0x02"))
	require.NoError(t, err)
	assert.Equal(t, int64(123456), balance.Int64())
}
