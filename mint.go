package moonit

import (
	"context"

	"github.com/fachebot/moonit-sdk/internal/launchpad"
	"github.com/fachebot/moonit-sdk/network"

	"github.com/samber/lo"
)

// SDKMigrationDex names the DEX a token migrates to once its curve completes.
type SDKMigrationDex string

const (
	MigrationDexAbstractSwap SDKMigrationDex = "ABSTRACTSWAP"
	MigrationDexUniswap      SDKMigrationDex = "UNISWAP"
)

type (
	MigrationDex          = launchpad.MigrationDex
	MintTxPrepareResponse = launchpad.MintTxPrepareResponse
	TxStatus              = launchpad.TxStatus
	APIError              = launchpad.ErrorResponse
)

const (
	TxStatusSuccess = launchpad.TxStatusSuccess
	TxStatusPending = launchpad.TxStatusPending
	TxStatusFailed  = launchpad.TxStatusFailed
)

type PrepareMintTxOptions struct {
	// Creator wallet address; the same wallet must sign the prepared transaction.
	Creator string

	// Name and Symbol are immutable once minted, at most 32 characters each.
	Name   string
	Symbol string

	MigrationDex SDKMigrationDex

	// Icon is base64 encoded, at most 2MB.
	Icon        string
	Description string

	// TokenAmount is the initial buy in atomic units, at most 80% of the supply.
	TokenAmount string

	// Banner is base64 encoded, at most 5MB.
	Banner string

	Website  string
	X        string
	Telegram string
	Discord  string
}

type SubmitMintTxOptions struct {
	// Token is the validity token returned by PrepareMintTx.
	Token string

	// SignedTransaction is the prepared transaction signed by the creator wallet.
	SignedTransaction string
}

type SubmitMintTxResponse struct {
	TxSignature string
	Status      TxStatus
}

// PrepareMintTx registers the token with the backend and returns its unsigned
// mint transaction. The caller signs it and passes it to SubmitMintTx together
// with the returned token.
func (m *Moonit) PrepareMintTx(ctx context.Context, options PrepareMintTxOptions) (*MintTxPrepareResponse, error) {
	migrationDex := launchpad.MigrationDex(options.MigrationDex)
	if m.variant.MapMigrationDex {
		var err error
		migrationDex, err = MapMigrationDex(m.network, options.MigrationDex)
		if err != nil {
			return nil, err
		}
	}

	return m.api.PrepareMint(ctx, launchpad.PrepareMintRequest{
		CreateMintRequest: launchpad.CreateMintRequest{
			Name:         options.Name,
			Symbol:       options.Symbol,
			MigrationDex: migrationDex,
			Icon:         options.Icon,
			Description:  options.Description,
			Banner:       options.Banner,
			Links:        mintLinks(options),
		},
		Amount:    options.TokenAmount,
		CreatorPK: options.Creator,
	})
}

func (m *Moonit) SubmitMintTx(ctx context.Context, options SubmitMintTxOptions) (*SubmitMintTxResponse, error) {
	res, err := m.api.SubmitMint(ctx, launchpad.MintTxSubmitRequest{
		Token:             options.Token,
		SignedTransaction: options.SignedTransaction,
	})
	if err != nil {
		return nil, err
	}

	return &SubmitMintTxResponse{
		TxSignature: res.TransactionSignature,
		Status:      res.Status,
	}, nil
}

// MapMigrationDex translates an SDK migration DEX to the backend's enum.
// Only Abstract has a mapping.
func MapMigrationDex(n network.Network, dex SDKMigrationDex) (MigrationDex, error) {
	switch n {
	case network.Abstract:
		if dex == MigrationDexAbstractSwap {
			return launchpad.MigrationDexUniswap, nil
		}
		return launchpad.MigrationDexAerodrome, nil
	default:
		return "", &network.UnsupportedNetworkError{Network: n}
	}
}

func mintLinks(options PrepareMintTxOptions) []launchpad.Link {
	links := []launchpad.Link{
		{Url: options.Website, Label: "website"},
		{Url: options.X, Label: "x"},
		{Url: options.Telegram, Label: "telegram"},
		{Url: options.Discord, Label: "discord"},
	}
	return lo.Filter(links, func(item launchpad.Link, _ int) bool {
		return item.Url != ""
	})
}
