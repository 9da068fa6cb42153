package contracts

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Only the entry points the SDK calls.

const FactoryABI = `[
	{
		"name": "buyExactIn",
		"type": "function",
		"stateMutability": "payable",
		"inputs": [
			{"name": "token",        "type": "address"},
			{"name": "amountOutMin", "type": "uint256"}
		],
		"outputs": []
	},
	{
		"name": "buyExactOut",
		"type": "function",
		"stateMutability": "payable",
		"inputs": [
			{"name": "token",               "type": "address"},
			{"name": "tokenAmount",         "type": "uint256"},
			{"name": "maxCollateralAmount", "type": "uint256"}
		],
		"outputs": []
	},
	{
		"name": "sellExactIn",
		"type": "function",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "token",               "type": "address"},
			{"name": "tokenAmount",         "type": "uint256"},
			{"name": "amountCollateralMin", "type": "uint256"}
		],
		"outputs": []
	},
	{
		"name": "sellExactOut",
		"type": "function",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "token",            "type": "address"},
			{"name": "collateralAmount", "type": "uint256"},
			{"name": "maxTokenAmount",   "type": "uint256"}
		],
		"outputs": []
	}
]`

const TokenABI = `[
	{
		"name": "virtualCollateralReserves",
		"type": "function",
		"stateMutability": "view",
		"inputs": [],
		"outputs": [{"name": "", "type": "uint256"}]
	},
	{
		"name": "virtualTokenReserves",
		"type": "function",
		"stateMutability": "view",
		"inputs": [],
		"outputs": [{"name": "", "type": "uint256"}]
	},
	{
		"name": "getAmountOutAndFee",
		"type": "function",
		"stateMutability": "view",
		"inputs": [
			{"name": "amountIn",         "type": "uint256"},
			{"name": "reserveIn",        "type": "uint256"},
			{"name": "reserveOut",       "type": "uint256"},
			{"name": "paymentTokenIsIn", "type": "bool"}
		],
		"outputs": [
			{"name": "amountOut", "type": "uint256"},
			{"name": "fee",       "type": "uint256"}
		]
	},
	{
		"name": "getAmountInAndFee",
		"type": "function",
		"stateMutability": "view",
		"inputs": [
			{"name": "amountOut",         "type": "uint256"},
			{"name": "reserveIn",         "type": "uint256"},
			{"name": "reserveOut",        "type": "uint256"},
			{"name": "paymentTokenIsOut", "type": "bool"}
		],
		"outputs": [
			{"name": "amountIn", "type": "uint256"},
			{"name": "fee",      "type": "uint256"}
		]
	},
	{
		"name": "balanceOf",
		"type": "function",
		"stateMutability": "view",
		"inputs": [{"name": "account", "type": "address"}],
		"outputs": [{"name": "", "type": "uint256"}]
	}
]`

var (
	factoryABI = mustParseABI(FactoryABI)
	tokenABI   = mustParseABI(TokenABI)
)

func mustParseABI(definition string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(definition))
	if err != nil {
		panic(err)
	}
	return parsed
}
