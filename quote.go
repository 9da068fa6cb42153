package moonit

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// FixedSide says which side of a trade the caller fixes.
type FixedSide int

const (
	FixedSideIn FixedSide = iota
	FixedSideOut
)

func (s FixedSide) String() string {
	if s == FixedSideOut {
		return "OUT"
	}
	return "IN"
}

// AmountAndFee is a quote in atomic units, exactly as the token contract returned it.
type AmountAndFee struct {
	Amount *big.Int
	Fee    *big.Int
}

// GetAmountOutAndFee quotes the output of spending amountIn. Reserves are read
// from the chain on every call.
func (m *Moonit) GetAmountOutAndFee(ctx context.Context, tokenAddress common.Address, amountIn *big.Int, fixedSide FixedSide) (*AmountAndFee, error) {
	token := m.newToken(tokenAddress)
	opts := &bind.CallOpts{Context: ctx}

	paymentTokenIsIn := fixedSide == FixedSideIn
	reserveIn, reserveOut, err := readReserves(opts, token, paymentTokenIsIn)
	if err != nil {
		return nil, err
	}

	amountOut, fee, err := token.GetAmountOutAndFee(opts, amountIn, reserveIn, reserveOut, paymentTokenIsIn)
	if err != nil {
		return nil, err
	}

	return &AmountAndFee{Amount: amountOut, Fee: fee}, nil
}

// GetAmountInAndFee quotes the input needed to receive amountOut. Reserves are
// read from the chain on every call.
func (m *Moonit) GetAmountInAndFee(ctx context.Context, tokenAddress common.Address, amountOut *big.Int, fixedSide FixedSide) (*AmountAndFee, error) {
	token := m.newToken(tokenAddress)
	opts := &bind.CallOpts{Context: ctx}

	paymentTokenIsOut := fixedSide == FixedSideOut
	reserveIn, reserveOut, err := readReserves(opts, token, paymentTokenIsOut)
	if err != nil {
		return nil, err
	}

	amountIn, fee, err := token.GetAmountInAndFee(opts, amountOut, reserveIn, reserveOut, paymentTokenIsOut)
	if err != nil {
		return nil, err
	}

	return &AmountAndFee{Amount: amountIn, Fee: fee}, nil
}

// readReserves returns (collateral, token) when the collateral side is the
// input, and (token, collateral) otherwise.
func readReserves(opts *bind.CallOpts, token tokenContract, collateralIsIn bool) (reserveIn, reserveOut *big.Int, err error) {
	if collateralIsIn {
		if reserveIn, err = token.VirtualCollateralReserves(opts); err != nil {
			return nil, nil, err
		}
		if reserveOut, err = token.VirtualTokenReserves(opts); err != nil {
			return nil, nil, err
		}
		return reserveIn, reserveOut, nil
	}

	if reserveIn, err = token.VirtualTokenReserves(opts); err != nil {
		return nil, nil, err
	}
	if reserveOut, err = token.VirtualCollateralReserves(opts); err != nil {
		return nil, nil, err
	}
	return reserveIn, reserveOut, nil
}

// GetCurvePosition returns the token balance still held by the curve, i.e.
// the token contract's balance of itself.
func (m *Moonit) GetCurvePosition(ctx context.Context, tokenAddress common.Address) (*big.Int, error) {
	return m.newToken(tokenAddress).BalanceOf(&bind.CallOpts{Context: ctx}, tokenAddress)
}

func (m *Moonit) BalanceOf(ctx context.Context, tokenAddress, account common.Address) (*big.Int, error) {
	return m.newToken(tokenAddress).BalanceOf(&bind.CallOpts{Context: ctx}, account)
}
