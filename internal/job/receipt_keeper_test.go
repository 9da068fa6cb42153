package job

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pendingReader struct {
	ethereum.TransactionReader
	misses  int
	calls   int
	receipt *types.Receipt
}

func (r *pendingReader) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	r.calls++
	if r.calls <= r.misses {
		if r.calls == 1 {
			return nil, errors.New("connection reset")
		}
		return nil, ethereum.NotFound
	}
	return r.receipt, nil
}

func TestReceiptKeeperWait(t *testing.T) {
	reader := &pendingReader{
		misses:  2,
		receipt: &types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(42)},
	}
	keeper := NewReceiptKeeper(reader, time.Millisecond)

	receipt, err := keeper.Wait(context.Background(), common.HexToHash("0x01"))
	require.NoError(t, err)
	assert.Same(t, reader.receipt, receipt)
	assert.Equal(t, 3, reader.calls)
}

func TestReceiptKeeperWaitCancelled(t *testing.T) {
	reader := &pendingReader{misses: 1 << 30}
	keeper := NewReceiptKeeper(reader, time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := keeper.Wait(ctx, common.HexToHash("0x01"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
