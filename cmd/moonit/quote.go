package main

import (
	"fmt"

	moonit "github.com/fachebot/moonit-sdk"
	"github.com/fachebot/moonit-sdk/internal/cache"

	"github.com/spf13/cobra"
)

// With side "in" the given amount is collateral in both directions: "quote out"
// prices a buy, "quote in" prices a sell. Side "out" flips both.
func quoteUnits(exactIn bool, side moonit.FixedSide, meta cache.TokenMeta) (amountDecimals uint8, amountSymbol string, resultDecimals uint8, resultSymbol string) {
	if side == moonit.FixedSideIn {
		return 18, collateralSymbol, meta.Decimals, meta.Symbol
	}
	return meta.Decimals, meta.Symbol, 18, collateralSymbol
}

func (a *app) quoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "quote a trade against live curve reserves",
	}
	cmd.AddCommand(a.quoteDirectionCmd("out", true, "amount received for an exact input",
		"in: spend collateral, buying tokens; out: spend tokens, selling for collateral"))
	cmd.AddCommand(a.quoteDirectionCmd("in", false, "amount required for an exact output",
		"in: receive collateral, selling tokens; out: receive tokens, buying with collateral"))
	return cmd
}

func (a *app) quoteDirectionCmd(use string, exactIn bool, short, sideUsage string) *cobra.Command {
	var sideFlag string
	cmd := &cobra.Command{
		Use:   use + " <token> <amount>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			token, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			side, err := parseFixedSide(sideFlag)
			if err != nil {
				return err
			}

			svcCtx, err := a.serviceContext(ctx)
			if err != nil {
				return err
			}
			meta, err := svcCtx.TokenMetaCache.GetTokenMeta(ctx, token)
			if err != nil {
				return fmt.Errorf("查询代币元数据失败: %w", err)
			}

			amountDecimals, amountSymbol, resultDecimals, resultSymbol := quoteUnits(exactIn, side, meta)
			amount, err := parseAmount(args[1], amountDecimals)
			if err != nil {
				return err
			}

			quote := svcCtx.Moonit.GetAmountOutAndFee
			if !exactIn {
				quote = svcCtx.Moonit.GetAmountInAndFee
			}
			res, err := quote(ctx, token, amount, side)
			if err != nil {
				return err
			}

			fmt.Printf("amount: %s %s\n", formatAmount(amount, amountDecimals), amountSymbol)
			fmt.Printf("quote: %s %s\n", formatAmount(res.Amount, resultDecimals), resultSymbol)
			fmt.Printf("fee: %s %s\n", formatAmount(res.Fee, 18), collateralSymbol)
			return nil
		},
	}
	cmd.Flags().StringVar(&sideFlag, "side", "in", sideUsage)
	return cmd
}
