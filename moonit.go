// Package moonit is a client for the Moonit bonding-curve token launchpad on
// EVM chains. Quotes and trades go straight to the on-chain factory and token
// contracts; mints are prepared and relayed by the launchpad REST backend.
package moonit

import (
	"errors"
	"math/big"
	"net/http"

	"github.com/fachebot/moonit-sdk/internal/contracts"
	"github.com/fachebot/moonit-sdk/internal/launchpad"
	"github.com/fachebot/moonit-sdk/network"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Variant selects the backend deployment and whether SDK migration DEX names
// are translated to backend names.
type Variant struct {
	Name            string
	APIHost         string
	MapMigrationDex bool
}

var (
	VariantMoonit = Variant{Name: "moonit", APIHost: "moonit.com", MapMigrationDex: true}

	// VariantMoonshot is the pre-rename backend. Migration DEX values are sent as-is.
	VariantMoonshot = Variant{Name: "moonshot", APIHost: "mintlp.io", MapMigrationDex: false}
)

type Options struct {
	Signer  *Wallet
	Env     network.Environment
	Network network.Network

	// Optional overrides.
	FactoryAddress common.Address
	APIBaseURL     string
	HTTPClient     *http.Client
}

type tokenContract interface {
	VirtualCollateralReserves(opts *bind.CallOpts) (*big.Int, error)
	VirtualTokenReserves(opts *bind.CallOpts) (*big.Int, error)
	GetAmountOutAndFee(opts *bind.CallOpts, amountIn, reserveIn, reserveOut *big.Int, paymentTokenIsIn bool) (*big.Int, *big.Int, error)
	GetAmountInAndFee(opts *bind.CallOpts, amountOut, reserveIn, reserveOut *big.Int, paymentTokenIsOut bool) (*big.Int, *big.Int, error)
	BalanceOf(opts *bind.CallOpts, account common.Address) (*big.Int, error)
}

type factoryContract interface {
	BuyExactIn(opts *bind.TransactOpts, token common.Address, amountOutMin *big.Int) (*types.Transaction, error)
	BuyExactOut(opts *bind.TransactOpts, token common.Address, tokenAmount, maxCollateralAmount *big.Int) (*types.Transaction, error)
	SellExactIn(opts *bind.TransactOpts, token common.Address, tokenAmount, amountCollateralMin *big.Int) (*types.Transaction, error)
	SellExactOut(opts *bind.TransactOpts, token common.Address, collateralAmount, maxTokenAmount *big.Int) (*types.Transaction, error)
}

// Moonit is the launchpad client. It is immutable after construction and
// safe for concurrent use to the extent its transports are.
type Moonit struct {
	wallet         *Wallet
	env            network.Environment
	network        network.Network
	variant        Variant
	factoryAddress common.Address
	factory        factoryContract
	newToken       func(address common.Address) tokenContract
	api            *launchpad.Client
}

// Deprecated: Moonshot is the pre-rename name of Moonit.
type Moonshot = Moonit

// New builds a client for the Moonit backend.
func New(opts Options) (*Moonit, error) {
	return newClient(opts, VariantMoonit)
}

// Deprecated: NewMoonshot builds a client for the legacy Moonshot backend. Use New.
func NewMoonshot(opts Options) (*Moonit, error) {
	return newClient(opts, VariantMoonshot)
}

func newClient(opts Options, variant Variant) (*Moonit, error) {
	if opts.Signer == nil {
		return nil, errors.New("signer is required")
	}

	factoryAddress, err := network.FactoryAddress(opts.Env, opts.Network)
	if err != nil {
		return nil, err
	}
	if opts.FactoryAddress != (common.Address{}) {
		factoryAddress = opts.FactoryAddress
	}

	baseURL := opts.APIBaseURL
	if baseURL == "" {
		baseURL = launchpad.BasePath(opts.Env, variant.APIHost)
	}

	backend := opts.Signer.Backend()
	return &Moonit{
		wallet:         opts.Signer,
		env:            opts.Env,
		network:        opts.Network,
		variant:        variant,
		factoryAddress: factoryAddress,
		factory:        contracts.NewFactory(factoryAddress, backend),
		newToken: func(address common.Address) tokenContract {
			return contracts.NewToken(address, backend)
		},
		api: launchpad.NewClient(baseURL, opts.Network, opts.HTTPClient),
	}, nil
}

func (m *Moonit) Wallet() *Wallet {
	return m.wallet
}

func (m *Moonit) FactoryAddress() common.Address {
	return m.factoryAddress
}

func (m *Moonit) Network() network.Network {
	return m.network
}

func (m *Moonit) Environment() network.Environment {
	return m.env
}

func (m *Moonit) Variant() Variant {
	return m.variant
}
