package job

import (
	"context"
	"errors"
	"time"

	"github.com/fachebot/moonit-sdk/internal/logger"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ReceiptKeeper polls the chain until a sent transaction is mined.
type ReceiptKeeper struct {
	client   ethereum.TransactionReader
	interval time.Duration
}

func NewReceiptKeeper(client ethereum.TransactionReader, interval time.Duration) *ReceiptKeeper {
	if interval <= 0 {
		interval = time.Second
	}
	return &ReceiptKeeper{client: client, interval: interval}
}

// Wait returns the receipt once available. It gives up when ctx is done.
func (keeper *ReceiptKeeper) Wait(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			receipt, err := keeper.client.TransactionReceipt(ctx, hash)
			if err == nil {
				logger.Debugf("[ReceiptKeeper] 交易已上链, hash: %s, status: %d, block: %s", hash.Hex(), receipt.Status, receipt.BlockNumber)
				return receipt, nil
			}
			if !errors.Is(err, ethereum.NotFound) {
				logger.Warnf("[ReceiptKeeper] 查询交易收据失败, hash: %s, %v", hash.Hex(), err)
			}
			timer.Reset(keeper.interval)
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
