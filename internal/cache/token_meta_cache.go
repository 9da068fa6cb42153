package cache

import (
	"context"
	"time"

	"github.com/fachebot/moonit-sdk/internal/utils/evm"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/patrickmn/go-cache"
)

type TokenMeta struct {
	Name     string
	Symbol   string
	Decimals uint8
}

// TokenMetaCache remembers ERC20 name, symbol and decimals, which never change
// after deployment. Curve reserves and balances are deliberately not cached.
type TokenMetaCache struct {
	client       ethereum.ContractCaller
	tokenMetaMap *cache.Cache
}

func NewTokenMetaCache(client ethereum.ContractCaller) *TokenMetaCache {
	return &TokenMetaCache{
		client:       client,
		tokenMetaMap: cache.New(cache.NoExpiration, 10*time.Minute),
	}
}

func (c *TokenMetaCache) GetTokenMeta(ctx context.Context, tokenAddress common.Address) (TokenMeta, error) {
	key := tokenAddress.Hex()
	if val, ok := c.tokenMetaMap.Get(key); ok {
		return val.(TokenMeta), nil
	}

	tokenmeta, err := evm.GetTokenMeta(ctx, c.client, tokenAddress)
	if err != nil {
		return TokenMeta{}, err
	}

	ret := TokenMeta{
		Name:     tokenmeta.Name,
		Symbol:   tokenmeta.Symbol,
		Decimals: tokenmeta.Decimals,
	}
	c.tokenMetaMap.Set(key, ret, cache.DefaultExpiration)

	return ret, nil
}
