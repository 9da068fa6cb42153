package network

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
)

var (
	AbstractMainnetFactory = common.HexToAddress("0x0D6848e39114abE69054407452b8aaB82f8a44BA")
	AbstractTestnetFactory = common.HexToAddress("0x8A0B5D4a1A8A4E1B8B6d2aF1eD1f0C8C1e3B4a57")
)

const (
	AbstractMainnetChainId int64 = 2741
	AbstractTestnetChainId int64 = 11124
)

// FactoryAddress returns the deployed factory contract for (env, network).
func FactoryAddress(env Environment, n Network) (common.Address, error) {
	switch n {
	case Abstract:
		return lo.Ternary(env == Mainnet, AbstractMainnetFactory, AbstractTestnetFactory), nil
	default:
		return common.Address{}, unsupported(n)
	}
}

func ChainId(env Environment, n Network) (int64, error) {
	switch n {
	case Abstract:
		return lo.Ternary(env == Mainnet, AbstractMainnetChainId, AbstractTestnetChainId), nil
	default:
		return 0, unsupported(n)
	}
}
