package moonit

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

type CurveType string

const CurveTypeConstantProductV1 CurveType = "CONSTANT_PRODUCT_V1"

type TokenOptions struct {
	Address common.Address
	Moonit  *Moonit

	// Deprecated: use Moonit.
	Moonshot *Moonit

	CurveType CurveType
}

// Token binds a client to one launched token.
type Token struct {
	address   common.Address
	client    *Moonit
	curveType CurveType
}

func NewToken(opts TokenOptions) (*Token, error) {
	client := opts.Moonit
	if client == nil {
		client = opts.Moonshot
	}
	if client == nil {
		return nil, errors.New("moonit client is required")
	}

	curveType := opts.CurveType
	if curveType == "" {
		curveType = CurveTypeConstantProductV1
	}

	return &Token{
		address:   opts.Address,
		client:    client,
		curveType: curveType,
	}, nil
}

func (t *Token) Address() common.Address {
	return t.address
}

func (t *Token) CurveType() CurveType {
	return t.curveType
}

func (t *Token) GetCurvePosition(ctx context.Context) (*big.Int, error) {
	return t.client.GetCurvePosition(ctx, t.address)
}

func (t *Token) GetAmountOutAndFee(ctx context.Context, amountIn *big.Int, fixedSide FixedSide) (*AmountAndFee, error) {
	return t.client.GetAmountOutAndFee(ctx, t.address, amountIn, fixedSide)
}

func (t *Token) GetAmountInAndFee(ctx context.Context, amountOut *big.Int, fixedSide FixedSide) (*AmountAndFee, error) {
	return t.client.GetAmountInAndFee(ctx, t.address, amountOut, fixedSide)
}

func (t *Token) BalanceOf(ctx context.Context, account common.Address) (*big.Int, error) {
	return t.client.BalanceOf(ctx, t.address, account)
}
