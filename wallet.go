package moonit

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/fachebot/moonit-sdk/internal/utils/evm"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// Backend is the RPC connection a Wallet signs for. *ethclient.Client satisfies it.
type Backend interface {
	bind.ContractBackend
	ChainID(ctx context.Context) (*big.Int, error)
}

// Wallet is a private key bound to an RPC backend and chain. The key never
// leaves the process; it is only used to sign transactions locally.
type Wallet struct {
	key     *ecdsa.PrivateKey
	address common.Address
	chainId *big.Int
	backend bind.ContractBackend
}

// NewWallet parses a hex private key and asks the backend for its chain id.
func NewWallet(ctx context.Context, backend Backend, privateKeyHex string) (*Wallet, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(privateKeyHex), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	chainId, err := backend.ChainID(ctx)
	if err != nil {
		return nil, err
	}

	return NewWalletWithChainId(backend, key, chainId)
}

func NewWalletWithChainId(backend bind.ContractBackend, key *ecdsa.PrivateKey, chainId *big.Int) (*Wallet, error) {
	if key == nil {
		return nil, errors.New("private key is required")
	}
	if chainId == nil {
		return nil, errors.New("chain id is required")
	}

	address, err := evm.GetAddress(key)
	if err != nil {
		return nil, err
	}

	return &Wallet{
		key:     key,
		address: address,
		chainId: new(big.Int).Set(chainId),
		backend: backend,
	}, nil
}

func (w *Wallet) Address() common.Address {
	return w.address
}

func (w *Wallet) ChainId() *big.Int {
	return new(big.Int).Set(w.chainId)
}

func (w *Wallet) Backend() bind.ContractBackend {
	return w.backend
}

// TransactOpts returns fresh signing options; nonce and gas are left to the backend.
func (w *Wallet) TransactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(w.key, w.chainId)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx
	return opts, nil
}

// SignTransaction signs a hex-encoded unsigned transaction (as returned by
// PrepareMintTx) and returns the hex-encoded signed transaction.
func (w *Wallet) SignTransaction(unsignedTx string) (string, error) {
	data, err := hexutil.Decode(unsignedTx)
	if err != nil {
		return "", fmt.Errorf("invalid transaction encoding: %w", err)
	}

	var tx types.Transaction
	if err = tx.UnmarshalBinary(data); err != nil {
		return "", fmt.Errorf("invalid transaction: %w", err)
	}

	// An unsigned legacy transaction carries no chain id; it is signed with EIP-155 for the wallet's chain.
	if tx.Type() != types.LegacyTxType || tx.Protected() {
		if chainId := tx.ChainId(); chainId.Sign() != 0 && chainId.Cmp(w.chainId) != 0 {
			return "", fmt.Errorf("transaction chain id %s does not match wallet chain id %s", chainId, w.chainId)
		}
	}

	signedTx, err := types.SignTx(&tx, types.LatestSignerForChainID(w.chainId), w.key)
	if err != nil {
		return "", err
	}

	raw, err := signedTx.MarshalBinary()
	if err != nil {
		return "", err
	}
	return hexutil.Encode(raw), nil
}
