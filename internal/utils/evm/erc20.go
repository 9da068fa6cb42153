package evm

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

type Metadata struct {
	Name     string
	Symbol   string
	Decimals uint8
}

const erc20ABI = `[
	{"name": "name",      "type": "function", "stateMutability": "view", "inputs": [], "outputs": [{"name": "", "type": "string"}]},
	{"name": "symbol",    "type": "function", "stateMutability": "view", "inputs": [], "outputs": [{"name": "", "type": "string"}]},
	{"name": "decimals",  "type": "function", "stateMutability": "view", "inputs": [], "outputs": [{"name": "", "type": "uint8"}]},
	{"name": "balanceOf", "type": "function", "stateMutability": "view", "inputs": [{"name": "owner", "type": "address"}], "outputs": [{"name": "", "type": "uint256"}]}
]`

var ERC20ABI abi.ABI

func init() {
	parsed, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		panic(err)
	}
	ERC20ABI = parsed
}
