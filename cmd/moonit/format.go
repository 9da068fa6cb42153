package main

import (
	"fmt"
	"math/big"
	"strings"

	moonit "github.com/fachebot/moonit-sdk"
	"github.com/fachebot/moonit-sdk/internal/utils/evm"

	"github.com/dustin/go-humanize"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

const collateralSymbol = "ETH"

func formatAmount(value *big.Int, decimals uint8) string {
	amount := evm.ParseUnits(value, decimals)
	return humanize.FormatFloat("#,###.########", amount.InexactFloat64())
}

// parseAmount turns a human amount like "0.5" into atomic units.
func parseAmount(s string, decimals uint8) (*big.Int, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("无效的数量 %q: %w", s, err)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("数量必须大于0: %s", s)
	}
	return evm.FormatUnits(amount, decimals), nil
}

func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("无效的地址: %s", s)
	}
	return common.HexToAddress(s), nil
}

func parseFixedSide(s string) (moonit.FixedSide, error) {
	switch strings.ToLower(s) {
	case "in":
		return moonit.FixedSideIn, nil
	case "out":
		return moonit.FixedSideOut, nil
	}
	return 0, fmt.Errorf("side 取值范围: in/out, got %q", s)
}
