package swap

import (
	"context"
	"math/big"

	moonit "github.com/fachebot/moonit-sdk"
	"github.com/fachebot/moonit-sdk/internal/logger"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"
)

// Trader is the subset of *moonit.Moonit a SwapService drives.
type Trader interface {
	GetAmountOutAndFee(ctx context.Context, tokenAddress common.Address, amountIn *big.Int, fixedSide moonit.FixedSide) (*moonit.AmountAndFee, error)
	GetAmountInAndFee(ctx context.Context, tokenAddress common.Address, amountOut *big.Int, fixedSide moonit.FixedSide) (*moonit.AmountAndFee, error)
	BuyExactIn(ctx context.Context, tokenAddress common.Address, collateralAmount, amountOutMin *big.Int) (*types.Transaction, error)
	BuyExactOut(ctx context.Context, tokenAddress common.Address, tokenAmount, maxCollateralAmount *big.Int) (*types.Transaction, error)
	SellExactIn(ctx context.Context, tokenAddress common.Address, tokenAmount, amountCollateralMin *big.Int) (*types.Transaction, error)
	SellExactOut(ctx context.Context, tokenAddress common.Address, collateralAmount, maxTokenAmount *big.Int) (*types.Transaction, error)
}

// Result is a sent trade together with the quote its bound was derived from.
type Result struct {
	Tx    *types.Transaction
	Quote *moonit.AmountAndFee
	Bound *big.Int
}

// Exact-in trades quote with GetAmountOutAndFee, where FixedSideIn is a buy.
// Exact-out trades quote with GetAmountInAndFee, where FixedSideOut is a buy.

// SwapService quotes a trade, widens the quote by the slippage tolerance and
// sends it with that bound.
type SwapService struct {
	trader      Trader
	slippageBps int
}

func NewSwapService(trader Trader, slippageBps int) *SwapService {
	return &SwapService{trader: trader, slippageBps: slippageBps}
}

func (s *SwapService) SlippageBps() int {
	return s.slippageBps
}

// BuyExactIn spends collateralAmount for at least the quoted tokens minus slippage.
func (s *SwapService) BuyExactIn(ctx context.Context, token common.Address, collateralAmount *big.Int) (*Result, error) {
	quote, err := s.trader.GetAmountOutAndFee(ctx, token, collateralAmount, moonit.FixedSideIn)
	if err != nil {
		return nil, err
	}

	amountOutMin := MinAmount(quote.Amount, s.slippageBps)
	tx, err := s.trader.BuyExactIn(ctx, token, collateralAmount, amountOutMin)
	if err != nil {
		logger.Errorf("[SwapService] 买入失败, token: %s, collateral: %s, amountOutMin: %s, %v", token.Hex(), collateralAmount, amountOutMin, err)
		return nil, err
	}
	return &Result{Tx: tx, Quote: quote, Bound: amountOutMin}, nil
}

// BuyExactOut buys tokenAmount tokens paying at most the quoted collateral plus slippage.
func (s *SwapService) BuyExactOut(ctx context.Context, token common.Address, tokenAmount *big.Int) (*Result, error) {
	quote, err := s.trader.GetAmountInAndFee(ctx, token, tokenAmount, moonit.FixedSideOut)
	if err != nil {
		return nil, err
	}

	maxCollateral := MaxAmount(quote.Amount, s.slippageBps)
	tx, err := s.trader.BuyExactOut(ctx, token, tokenAmount, maxCollateral)
	if err != nil {
		logger.Errorf("[SwapService] 买入失败, token: %s, amount: %s, maxCollateral: %s, %v", token.Hex(), tokenAmount, maxCollateral, err)
		return nil, err
	}
	return &Result{Tx: tx, Quote: quote, Bound: maxCollateral}, nil
}

// SellExactIn sells tokenAmount tokens for at least the quoted collateral minus slippage.
func (s *SwapService) SellExactIn(ctx context.Context, token common.Address, tokenAmount *big.Int) (*Result, error) {
	quote, err := s.trader.GetAmountOutAndFee(ctx, token, tokenAmount, moonit.FixedSideOut)
	if err != nil {
		return nil, err
	}

	collateralMin := MinAmount(quote.Amount, s.slippageBps)
	tx, err := s.trader.SellExactIn(ctx, token, tokenAmount, collateralMin)
	if err != nil {
		logger.Errorf("[SwapService] 卖出失败, token: %s, amount: %s, collateralMin: %s, %v", token.Hex(), tokenAmount, collateralMin, err)
		return nil, err
	}
	return &Result{Tx: tx, Quote: quote, Bound: collateralMin}, nil
}

// SellExactOut receives collateralAmount selling at most the quoted tokens plus slippage.
func (s *SwapService) SellExactOut(ctx context.Context, token common.Address, collateralAmount *big.Int) (*Result, error) {
	quote, err := s.trader.GetAmountInAndFee(ctx, token, collateralAmount, moonit.FixedSideIn)
	if err != nil {
		return nil, err
	}

	maxToken := MaxAmount(quote.Amount, s.slippageBps)
	tx, err := s.trader.SellExactOut(ctx, token, collateralAmount, maxToken)
	if err != nil {
		logger.Errorf("[SwapService] 卖出失败, token: %s, collateral: %s, maxAmount: %s, %v", token.Hex(), collateralAmount, maxToken, err)
		return nil, err
	}
	return &Result{Tx: tx, Quote: quote, Bound: maxToken}, nil
}

// MinAmount rounds amount*(1-bps/10000) down.
func MinAmount(amount *big.Int, slippageBps int) *big.Int {
	factor := decimal.NewFromInt(int64(10000 - slippageBps)).Div(decimal.NewFromInt(10000))
	return decimal.NewFromBigInt(amount, 0).Mul(factor).Floor().BigInt()
}

// MaxAmount rounds amount*(1+bps/10000) up.
func MaxAmount(amount *big.Int, slippageBps int) *big.Int {
	factor := decimal.NewFromInt(int64(10000 + slippageBps)).Div(decimal.NewFromInt(10000))
	return decimal.NewFromBigInt(amount, 0).Mul(factor).Ceil().BigInt()
}
