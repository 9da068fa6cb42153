package moonit

import (
	"context"
	"math/big"

	"github.com/fachebot/moonit-sdk/internal/logger"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Trades are forwarded to the factory as-is. Slippage protection is the
// contract's job, driven by the caller's bound (amountOutMin, max*, *Min).

// BuyExactIn spends collateralAmount and reverts unless at least amountOutMin tokens come back.
func (m *Moonit) BuyExactIn(ctx context.Context, tokenAddress common.Address, collateralAmount, amountOutMin *big.Int) (*types.Transaction, error) {
	opts, err := m.wallet.TransactOpts(ctx)
	if err != nil {
		return nil, err
	}
	opts.Value = collateralAmount

	tx, err := m.factory.BuyExactIn(opts, tokenAddress, amountOutMin)
	if err != nil {
		return nil, err
	}

	logger.Debugf("[Moonit] 发送买入交易 buyExactIn, token: %s, collateral: %s, amountOutMin: %s, hash: %s", tokenAddress.Hex(), collateralAmount, amountOutMin, tx.Hash().Hex())
	return tx, nil
}

// BuyExactOut buys tokenAmount tokens, sending maxCollateralAmount as the spend cap.
func (m *Moonit) BuyExactOut(ctx context.Context, tokenAddress common.Address, tokenAmount, maxCollateralAmount *big.Int) (*types.Transaction, error) {
	opts, err := m.wallet.TransactOpts(ctx)
	if err != nil {
		return nil, err
	}
	opts.Value = maxCollateralAmount

	tx, err := m.factory.BuyExactOut(opts, tokenAddress, tokenAmount, maxCollateralAmount)
	if err != nil {
		return nil, err
	}

	logger.Debugf("[Moonit] 发送买入交易 buyExactOut, token: %s, amount: %s, maxCollateral: %s, hash: %s", tokenAddress.Hex(), tokenAmount, maxCollateralAmount, tx.Hash().Hex())
	return tx, nil
}

func (m *Moonit) SellExactIn(ctx context.Context, tokenAddress common.Address, tokenAmount, amountCollateralMin *big.Int) (*types.Transaction, error) {
	opts, err := m.wallet.TransactOpts(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := m.factory.SellExactIn(opts, tokenAddress, tokenAmount, amountCollateralMin)
	if err != nil {
		return nil, err
	}

	logger.Debugf("[Moonit] 发送卖出交易 sellExactIn, token: %s, amount: %s, collateralMin: %s, hash: %s", tokenAddress.Hex(), tokenAmount, amountCollateralMin, tx.Hash().Hex())
	return tx, nil
}

func (m *Moonit) SellExactOut(ctx context.Context, tokenAddress common.Address, collateralAmount, maxTokenAmount *big.Int) (*types.Transaction, error) {
	opts, err := m.wallet.TransactOpts(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := m.factory.SellExactOut(opts, tokenAddress, collateralAmount, maxTokenAmount)
	if err != nil {
		return nil, err
	}

	logger.Debugf("[Moonit] 发送卖出交易 sellExactOut, token: %s, collateral: %s, maxAmount: %s, hash: %s", tokenAddress.Hex(), collateralAmount, maxTokenAmount, tx.Hash().Hex())
	return tx, nil
}
