package moonit

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/fachebot/moonit-sdk/network"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTokenAddress = common.HexToAddress("0x00000000000000000000000000000000000000aa")

type pricingCall struct {
	method     string
	amount     *big.Int
	reserveIn  *big.Int
	reserveOut *big.Int
	flag       bool
}

// stubToken returns distinguishable reserves and records every read.
type stubToken struct {
	collateralReserves *big.Int
	tokenReserves      *big.Int
	balance            *big.Int
	amount             *big.Int
	fee                *big.Int
	err                error

	reads    []string
	pricing  []pricingCall
	balances []common.Address
}

func newStubToken(collateral, token int64) *stubToken {
	return &stubToken{
		collateralReserves: big.NewInt(collateral),
		tokenReserves:      big.NewInt(token),
		balance:            big.NewInt(0),
		amount:             big.NewInt(3141),
		fee:                big.NewInt(59),
	}
}

func (s *stubToken) VirtualCollateralReserves(opts *bind.CallOpts) (*big.Int, error) {
	s.reads = append(s.reads, "collateral")
	if s.err != nil {
		return nil, s.err
	}
	return s.collateralReserves, nil
}

func (s *stubToken) VirtualTokenReserves(opts *bind.CallOpts) (*big.Int, error) {
	s.reads = append(s.reads, "token")
	if s.err != nil {
		return nil, s.err
	}
	return s.tokenReserves, nil
}

func (s *stubToken) GetAmountOutAndFee(opts *bind.CallOpts, amountIn, reserveIn, reserveOut *big.Int, paymentTokenIsIn bool) (*big.Int, *big.Int, error) {
	s.pricing = append(s.pricing, pricingCall{"getAmountOutAndFee", amountIn, reserveIn, reserveOut, paymentTokenIsIn})
	return s.amount, s.fee, nil
}

func (s *stubToken) GetAmountInAndFee(opts *bind.CallOpts, amountOut, reserveIn, reserveOut *big.Int, paymentTokenIsOut bool) (*big.Int, *big.Int, error) {
	s.pricing = append(s.pricing, pricingCall{"getAmountInAndFee", amountOut, reserveIn, reserveOut, paymentTokenIsOut})
	return s.amount, s.fee, nil
}

func (s *stubToken) BalanceOf(opts *bind.CallOpts, account common.Address) (*big.Int, error) {
	s.balances = append(s.balances, account)
	return s.balance, nil
}

type factoryCall struct {
	method string
	value  *big.Int
	token  common.Address
	args   []*big.Int
}

type stubFactory struct {
	calls []factoryCall
	tx    *types.Transaction
	err   error
}

func (s *stubFactory) record(method string, opts *bind.TransactOpts, token common.Address, args ...*big.Int) (*types.Transaction, error) {
	s.calls = append(s.calls, factoryCall{method: method, value: opts.Value, token: token, args: args})
	if s.err != nil {
		return nil, s.err
	}
	return s.tx, nil
}

func (s *stubFactory) BuyExactIn(opts *bind.TransactOpts, token common.Address, amountOutMin *big.Int) (*types.Transaction, error) {
	return s.record("buyExactIn", opts, token, amountOutMin)
}

func (s *stubFactory) BuyExactOut(opts *bind.TransactOpts, token common.Address, tokenAmount, maxCollateralAmount *big.Int) (*types.Transaction, error) {
	return s.record("buyExactOut", opts, token, tokenAmount, maxCollateralAmount)
}

func (s *stubFactory) SellExactIn(opts *bind.TransactOpts, token common.Address, tokenAmount, amountCollateralMin *big.Int) (*types.Transaction, error) {
	return s.record("sellExactIn", opts, token, tokenAmount, amountCollateralMin)
}

func (s *stubFactory) SellExactOut(opts *bind.TransactOpts, token common.Address, collateralAmount, maxTokenAmount *big.Int) (*types.Transaction, error) {
	return s.record("sellExactOut", opts, token, collateralAmount, maxTokenAmount)
}

func newTestWallet(t *testing.T) *Wallet {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	wallet, err := NewWalletWithChainId(nil, key, big.NewInt(network.AbstractTestnetChainId))
	require.NoError(t, err)
	return wallet
}

func newTestClient(t *testing.T, token *stubToken, factory *stubFactory) *Moonit {
	t.Helper()
	client, err := New(Options{
		Signer:  newTestWallet(t),
		Env:     network.Devnet,
		Network: network.Abstract,
	})
	require.NoError(t, err)

	client.newToken = func(address common.Address) tokenContract {
		assert.Equal(t, testTokenAddress, address)
		return token
	}
	if factory != nil {
		client.factory = factory
	}
	return client
}

func TestNewResolvesFactoryAddress(t *testing.T) {
	wallet := newTestWallet(t)

	client, err := New(Options{Signer: wallet, Env: network.Mainnet})
	require.NoError(t, err)
	assert.Equal(t, network.AbstractMainnetFactory, client.FactoryAddress())
	assert.Equal(t, network.Abstract, client.Network())
	assert.Equal(t, network.Mainnet, client.Environment())
	assert.Equal(t, VariantMoonit, client.Variant())
	assert.Same(t, wallet, client.Wallet())

	client, err = New(Options{Signer: wallet, Env: network.Devnet, Network: network.Abstract})
	require.NoError(t, err)
	assert.Equal(t, network.AbstractTestnetFactory, client.FactoryAddress())

	override := common.HexToAddress("0x00000000000000000000000000000000000000f0")
	client, err = New(Options{Signer: wallet, Env: network.Devnet, FactoryAddress: override})
	require.NoError(t, err)
	assert.Equal(t, override, client.FactoryAddress())
}

func TestNewRejectsUnsupportedNetwork(t *testing.T) {
	for _, n := range []network.Network{network.Base, network.Bera} {
		_, err := New(Options{Signer: newTestWallet(t), Env: network.Mainnet, Network: n})
		assert.ErrorIs(t, err, network.ErrUnsupportedNetwork)

		_, err = NewMoonshot(Options{Signer: newTestWallet(t), Env: network.Devnet, Network: n})
		assert.ErrorIs(t, err, network.ErrUnsupportedNetwork)
	}
}

func TestNewRequiresSigner(t *testing.T) {
	_, err := New(Options{Env: network.Devnet})
	assert.Error(t, err)
}

func TestNewMoonshotUsesLegacyBackend(t *testing.T) {
	client, err := NewMoonshot(Options{Signer: newTestWallet(t), Env: network.Mainnet})
	require.NoError(t, err)
	assert.Equal(t, VariantMoonshot, client.Variant())
	assert.Equal(t, "https://api.mintlp.io/v1", client.api.BaseURL())

	client, err = New(Options{Signer: newTestWallet(t), Env: network.Devnet})
	require.NoError(t, err)
	assert.Equal(t, "https://api.dev.moonit.com/v1", client.api.BaseURL())
}

func TestGetAmountOutAndFeeFixedIn(t *testing.T) {
	token := newStubToken(500, 2000)
	client := newTestClient(t, token, nil)

	quote, err := client.GetAmountOutAndFee(context.Background(), testTokenAddress, big.NewInt(1000), FixedSideIn)
	require.NoError(t, err)

	require.Len(t, token.pricing, 1)
	call := token.pricing[0]
	assert.Equal(t, "getAmountOutAndFee", call.method)
	assert.Equal(t, int64(1000), call.amount.Int64())
	assert.Equal(t, int64(500), call.reserveIn.Int64())
	assert.Equal(t, int64(2000), call.reserveOut.Int64())
	assert.True(t, call.flag)

	assert.Same(t, token.amount, quote.Amount)
	assert.Same(t, token.fee, quote.Fee)
}

func TestGetAmountOutAndFeeFixedOut(t *testing.T) {
	token := newStubToken(500, 2000)
	client := newTestClient(t, token, nil)

	_, err := client.GetAmountOutAndFee(context.Background(), testTokenAddress, big.NewInt(1000), FixedSideOut)
	require.NoError(t, err)

	call := token.pricing[0]
	assert.Equal(t, int64(2000), call.reserveIn.Int64())
	assert.Equal(t, int64(500), call.reserveOut.Int64())
	assert.False(t, call.flag)
}

func TestQuoteDirectionsAreMirrored(t *testing.T) {
	for _, side := range []FixedSide{FixedSideIn, FixedSideOut} {
		t.Run(side.String(), func(t *testing.T) {
			token := newStubToken(7, 11)
			client := newTestClient(t, token, nil)

			_, err := client.GetAmountOutAndFee(context.Background(), testTokenAddress, big.NewInt(1), side)
			require.NoError(t, err)
			_, err = client.GetAmountInAndFee(context.Background(), testTokenAddress, big.NewInt(1), side)
			require.NoError(t, err)

			require.Len(t, token.pricing, 2)
			out, in := token.pricing[0], token.pricing[1]
			assert.Equal(t, "getAmountInAndFee", in.method)
			assert.Equal(t, out.reserveIn, in.reserveOut)
			assert.Equal(t, out.reserveOut, in.reserveIn)
			assert.NotEqual(t, out.flag, in.flag)
		})
	}
}

func TestGetAmountInAndFeeFixedOut(t *testing.T) {
	token := newStubToken(500, 2000)
	client := newTestClient(t, token, nil)

	quote, err := client.GetAmountInAndFee(context.Background(), testTokenAddress, big.NewInt(250), FixedSideOut)
	require.NoError(t, err)

	call := token.pricing[0]
	assert.Equal(t, int64(250), call.amount.Int64())
	assert.Equal(t, int64(500), call.reserveIn.Int64())
	assert.Equal(t, int64(2000), call.reserveOut.Int64())
	assert.True(t, call.flag)
	assert.Equal(t, int64(3141), quote.Amount.Int64())
	assert.Equal(t, int64(59), quote.Fee.Int64())
}

func TestQuoteRereadsReservesEveryCall(t *testing.T) {
	token := newStubToken(500, 2000)
	client := newTestClient(t, token, nil)

	_, err := client.GetAmountOutAndFee(context.Background(), testTokenAddress, big.NewInt(1000), FixedSideIn)
	require.NoError(t, err)

	token.collateralReserves = big.NewInt(600)
	token.tokenReserves = big.NewInt(1800)

	_, err = client.GetAmountOutAndFee(context.Background(), testTokenAddress, big.NewInt(1000), FixedSideIn)
	require.NoError(t, err)

	assert.Equal(t, []string{"collateral", "token", "collateral", "token"}, token.reads)
	assert.Equal(t, int64(600), token.pricing[1].reserveIn.Int64())
	assert.Equal(t, int64(1800), token.pricing[1].reserveOut.Int64())
}

func TestQuotePropagatesRPCError(t *testing.T) {
	rpcErr := errors.New("execution reverted")
	token := newStubToken(500, 2000)
	token.err = rpcErr
	client := newTestClient(t, token, nil)

	_, err := client.GetAmountOutAndFee(context.Background(), testTokenAddress, big.NewInt(1000), FixedSideIn)
	assert.Same(t, rpcErr, err)

	_, err = client.GetAmountInAndFee(context.Background(), testTokenAddress, big.NewInt(1000), FixedSideIn)
	assert.Same(t, rpcErr, err)
	assert.Empty(t, token.pricing)
}

func TestCurvePositionAndBalance(t *testing.T) {
	token := newStubToken(1, 1)
	token.balance = big.NewInt(800_000)
	client := newTestClient(t, token, nil)

	position, err := client.GetCurvePosition(context.Background(), testTokenAddress)
	require.NoError(t, err)
	assert.Equal(t, int64(800_000), position.Int64())

	holder := common.HexToAddress("0x00000000000000000000000000000000000000bb")
	_, err = client.BalanceOf(context.Background(), testTokenAddress, holder)
	require.NoError(t, err)

	assert.Equal(t, []common.Address{testTokenAddress, holder}, token.balances)
}

func TestTradesForwardToFactory(t *testing.T) {
	tx := types.NewTx(&types.LegacyTx{Nonce: 1})
	factory := &stubFactory{tx: tx}
	client := newTestClient(t, newStubToken(1, 1), factory)
	ctx := context.Background()

	got, err := client.BuyExactIn(ctx, testTokenAddress, big.NewInt(100), big.NewInt(90))
	require.NoError(t, err)
	assert.Same(t, tx, got)

	_, err = client.BuyExactOut(ctx, testTokenAddress, big.NewInt(50), big.NewInt(120))
	require.NoError(t, err)

	_, err = client.SellExactIn(ctx, testTokenAddress, big.NewInt(50), big.NewInt(10))
	require.NoError(t, err)

	_, err = client.SellExactOut(ctx, testTokenAddress, big.NewInt(10), big.NewInt(60))
	require.NoError(t, err)

	require.Len(t, factory.calls, 4)

	assert.Equal(t, "buyExactIn", factory.calls[0].method)
	assert.Equal(t, int64(100), factory.calls[0].value.Int64())
	assert.Equal(t, []*big.Int{big.NewInt(90)}, factory.calls[0].args)

	assert.Equal(t, "buyExactOut", factory.calls[1].method)
	assert.Equal(t, int64(120), factory.calls[1].value.Int64())
	assert.Equal(t, []*big.Int{big.NewInt(50), big.NewInt(120)}, factory.calls[1].args)

	assert.Equal(t, "sellExactIn", factory.calls[2].method)
	assert.Nil(t, factory.calls[2].value)
	assert.Equal(t, []*big.Int{big.NewInt(50), big.NewInt(10)}, factory.calls[2].args)

	assert.Equal(t, "sellExactOut", factory.calls[3].method)
	assert.Nil(t, factory.calls[3].value)
	assert.Equal(t, []*big.Int{big.NewInt(10), big.NewInt(60)}, factory.calls[3].args)

	for _, call := range factory.calls {
		assert.Equal(t, testTokenAddress, call.token)
	}
}

func TestTradePropagatesError(t *testing.T) {
	factoryErr := errors.New("insufficient funds for gas * price + value")
	client := newTestClient(t, newStubToken(1, 1), &stubFactory{err: factoryErr})

	_, err := client.SellExactIn(context.Background(), testTokenAddress, big.NewInt(1), big.NewInt(1))
	assert.Same(t, factoryErr, err)
}

func TestToken(t *testing.T) {
	stub := newStubToken(500, 2000)
	client := newTestClient(t, stub, nil)

	_, err := NewToken(TokenOptions{Address: testTokenAddress})
	assert.Error(t, err)

	token, err := NewToken(TokenOptions{Address: testTokenAddress, Moonshot: client})
	require.NoError(t, err)
	assert.Equal(t, CurveTypeConstantProductV1, token.CurveType())
	assert.Equal(t, testTokenAddress, token.Address())

	quote, err := token.GetAmountOutAndFee(context.Background(), big.NewInt(1000), FixedSideIn)
	require.NoError(t, err)
	assert.Equal(t, int64(3141), quote.Amount.Int64())

	_, err = token.GetAmountInAndFee(context.Background(), big.NewInt(10), FixedSideIn)
	require.NoError(t, err)

	_, err = token.GetCurvePosition(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []common.Address{testTokenAddress}, stub.balances)
}
