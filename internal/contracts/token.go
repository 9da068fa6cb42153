package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// Token is a read-only binding to a launched token. Pricing lives on the
// token contract; reserves change with every trade.
type Token struct {
	address  common.Address
	contract *bind.BoundContract
}

func NewToken(address common.Address, backend bind.ContractBackend) *Token {
	return &Token{
		address:  address,
		contract: bind.NewBoundContract(address, tokenABI, backend, backend, backend),
	}
}

func (t *Token) Address() common.Address {
	return t.address
}

func (t *Token) VirtualCollateralReserves(opts *bind.CallOpts) (*big.Int, error) {
	return t.callUint256(opts, "virtualCollateralReserves")
}

func (t *Token) VirtualTokenReserves(opts *bind.CallOpts) (*big.Int, error) {
	return t.callUint256(opts, "virtualTokenReserves")
}

func (t *Token) BalanceOf(opts *bind.CallOpts, account common.Address) (*big.Int, error) {
	return t.callUint256(opts, "balanceOf", account)
}

func (t *Token) GetAmountOutAndFee(opts *bind.CallOpts, amountIn, reserveIn, reserveOut *big.Int, paymentTokenIsIn bool) (*big.Int, *big.Int, error) {
	return t.callAmountAndFee(opts, "getAmountOutAndFee", amountIn, reserveIn, reserveOut, paymentTokenIsIn)
}

func (t *Token) GetAmountInAndFee(opts *bind.CallOpts, amountOut, reserveIn, reserveOut *big.Int, paymentTokenIsOut bool) (*big.Int, *big.Int, error) {
	return t.callAmountAndFee(opts, "getAmountInAndFee", amountOut, reserveIn, reserveOut, paymentTokenIsOut)
}

func (t *Token) callUint256(opts *bind.CallOpts, method string, params ...interface{}) (*big.Int, error) {
	var out []interface{}
	err := t.contract.Call(opts, &out, method, params...)
	if err != nil {
		return nil, err
	}

	value := *abi.ConvertType(out[0], new(*big.Int)).(**big.Int)
	return value, nil
}

func (t *Token) callAmountAndFee(opts *bind.CallOpts, method string, params ...interface{}) (*big.Int, *big.Int, error) {
	var out []interface{}
	err := t.contract.Call(opts, &out, method, params...)
	if err != nil {
		return nil, nil, err
	}

	amount := *abi.ConvertType(out[0], new(*big.Int)).(**big.Int)
	fee := *abi.ConvertType(out[1], new(*big.Int)).(**big.Int)
	return amount, fee, nil
}
