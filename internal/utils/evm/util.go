package evm

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shopspring/decimal"
)

func ParseETH(value *big.Int) decimal.Decimal {
	return ParseUnits(value, 18)
}

func ParseUnits(value *big.Int, decimals uint8) decimal.Decimal {
	if value == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(value, -int32(decimals))
}

func FormatETH(amount decimal.Decimal) *big.Int {
	return FormatUnits(amount, 18)
}

// FormatUnits converts a human amount to atomic units, truncating extra precision.
func FormatUnits(amount decimal.Decimal, decimals uint8) *big.Int {
	return amount.Shift(int32(decimals)).Truncate(0).BigInt()
}

func GetAddress(prv *ecdsa.PrivateKey) (common.Address, error) {
	publicKey := prv.Public()
	publicKeyECDSA, ok := publicKey.(*ecdsa.PublicKey)
	if !ok {
		return common.Address{}, errors.New("cannot assert type: publicKey is not of type *ecdsa.PublicKey")
	}

	address := crypto.PubkeyToAddress(*publicKeyECDSA)
	return address, nil
}

func GetBalance(ctx context.Context, client ethereum.ChainStateReader, ownerAddress common.Address) (*big.Int, error) {
	return client.BalanceAt(ctx, ownerAddress, nil)
}

func GetTokenMeta(ctx context.Context, client ethereum.ContractCaller, tokenAddress common.Address) (*Metadata, error) {
	var name string
	if err := callERC20(ctx, client, tokenAddress, &name, "name"); err != nil {
		return nil, err
	}

	var symbol string
	if err := callERC20(ctx, client, tokenAddress, &symbol, "symbol"); err != nil {
		return nil, err
	}

	var decimals uint8
	if err := callERC20(ctx, client, tokenAddress, &decimals, "decimals"); err != nil {
		return nil, err
	}

	return &Metadata{
		Name:     name,
		Symbol:   symbol,
		Decimals: decimals,
	}, nil
}

func GetTokenBalance(ctx context.Context, client ethereum.ContractCaller, tokenAddress, ownerAddress common.Address) (*big.Int, error) {
	var balance *big.Int
	if err := callERC20(ctx, client, tokenAddress, &balance, "balanceOf", ownerAddress); err != nil {
		return nil, err
	}
	return balance, nil
}

func callERC20(ctx context.Context, client ethereum.ContractCaller, tokenAddress common.Address, out interface{}, method string, args ...interface{}) error {
	data, err := ERC20ABI.Pack(method, args...)
	if err != nil {
		return fmt.Errorf("failed to pack %s call: %w", method, err)
	}

	result, err := client.CallContract(ctx, ethereum.CallMsg{
		To:   &tokenAddress,
		Data: data,
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", method, err)
	}

	if err = ERC20ABI.UnpackIntoInterface(out, method, result); err != nil {
		return fmt.Errorf("failed to unpack %s: %w", method, err)
	}
	return nil
}
