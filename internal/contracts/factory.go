package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Factory is a binding to the launchpad factory, the entry point for trades.
type Factory struct {
	address  common.Address
	contract *bind.BoundContract
}

func NewFactory(address common.Address, backend bind.ContractBackend) *Factory {
	return &Factory{
		address:  address,
		contract: bind.NewBoundContract(address, factoryABI, backend, backend, backend),
	}
}

func (f *Factory) Address() common.Address {
	return f.address
}

func (f *Factory) BuyExactIn(opts *bind.TransactOpts, token common.Address, amountOutMin *big.Int) (*types.Transaction, error) {
	return f.contract.Transact(opts, "buyExactIn", token, amountOutMin)
}

func (f *Factory) BuyExactOut(opts *bind.TransactOpts, token common.Address, tokenAmount, maxCollateralAmount *big.Int) (*types.Transaction, error) {
	return f.contract.Transact(opts, "buyExactOut", token, tokenAmount, maxCollateralAmount)
}

func (f *Factory) SellExactIn(opts *bind.TransactOpts, token common.Address, tokenAmount, amountCollateralMin *big.Int) (*types.Transaction, error) {
	return f.contract.Transact(opts, "sellExactIn", token, tokenAmount, amountCollateralMin)
}

func (f *Factory) SellExactOut(opts *bind.TransactOpts, token common.Address, collateralAmount, maxTokenAmount *big.Int) (*types.Transaction, error) {
	return f.contract.Transact(opts, "sellExactOut", token, collateralAmount, maxTokenAmount)
}
