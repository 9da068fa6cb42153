package main

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/fachebot/moonit-sdk/internal/config"
	"github.com/fachebot/moonit-sdk/internal/job"
	"github.com/fachebot/moonit-sdk/internal/svc"
	"github.com/fachebot/moonit-sdk/internal/swap"
	"github.com/fachebot/moonit-sdk/network"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/spf13/cobra"
)

type tradeFunc func(s *swap.SwapService, ctx context.Context, token common.Address, amount *big.Int) (*swap.Result, error)

type tradeCommand struct {
	use         string
	short       string
	amountIsETH bool
	boundIsETH  bool
	boundLabel  string
	trade       tradeFunc
}

func (a *app) buyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buy",
		Short: "buy tokens from the curve",
	}
	cmd.AddCommand(a.tradeCmd(tradeCommand{
		use:         "exact-in <token> <collateral>",
		short:       "spend an exact collateral amount",
		amountIsETH: true,
		boundLabel:  "min tokens out",
		trade:       (*swap.SwapService).BuyExactIn,
	}))
	cmd.AddCommand(a.tradeCmd(tradeCommand{
		use:        "exact-out <token> <amount>",
		short:      "receive an exact token amount",
		boundIsETH: true,
		boundLabel: "max collateral in",
		trade:      (*swap.SwapService).BuyExactOut,
	}))
	return cmd
}

func (a *app) sellCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sell",
		Short: "sell tokens back to the curve",
	}
	cmd.AddCommand(a.tradeCmd(tradeCommand{
		use:        "exact-in <token> <amount>",
		short:      "sell an exact token amount",
		boundIsETH: true,
		boundLabel: "min collateral out",
		trade:      (*swap.SwapService).SellExactIn,
	}))
	cmd.AddCommand(a.tradeCmd(tradeCommand{
		use:         "exact-out <token> <collateral>",
		short:       "receive an exact collateral amount",
		amountIsETH: true,
		boundLabel:  "max tokens in",
		trade:       (*swap.SwapService).SellExactOut,
	}))
	return cmd
}

func (a *app) tradeCmd(tc tradeCommand) *cobra.Command {
	var (
		slippageBps int
		wait        bool
		timeout     time.Duration
	)

	cmd := &cobra.Command{
		Use:   tc.use,
		Short: tc.short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			token, err := parseAddress(args[0])
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

			decimalsOf := func(isETH bool) (uint8, string) {
				if isETH {
					return 18, collateralSymbol
				}
				return meta.Decimals, meta.Symbol
			}
			amountDecimals, amountSymbol := decimalsOf(tc.amountIsETH)
			boundDecimals, boundSymbol := decimalsOf(tc.boundIsETH)

			amount, err := parseAmount(args[1], amountDecimals)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("slippage-bps") {
				slippageBps = *svcCtx.Config.Chain.SlippageBps
			}
			service := swap.NewSwapService(svcCtx.Moonit, slippageBps)

			res, err := tc.trade(service, ctx, token, amount)
			if err != nil {
				return err
			}

			c := svcCtx.Config.Chain
			fmt.Printf("amount: %s %s\n", formatAmount(amount, amountDecimals), amountSymbol)
			fmt.Printf("%s: %s %s (slippage %d bps)\n", tc.boundLabel, formatAmount(res.Bound, boundDecimals), boundSymbol, slippageBps)
			fmt.Printf("hash: %s\n", res.Tx.Hash().Hex())
			if link := network.TxLink(c.Env, c.Net, res.Tx.Hash().Hex()); link != "" {
				fmt.Println(link)
			}

			if !wait {
				return nil
			}
			return waitReceipt(ctx, svcCtx, res.Tx.Hash(), timeout)
		},
	}
	cmd.Flags().IntVar(&slippageBps, "slippage-bps", config.DefaultSlippageBps, "slippage tolerance in basis points (default from config)")
	cmd.Flags().BoolVar(&wait, "wait", false, "wait until the transaction is mined")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "how long --wait waits")
	return cmd
}

func waitReceipt(ctx context.Context, svcCtx *svc.ServiceContext, hash common.Hash, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	receipt, err := job.NewReceiptKeeper(svcCtx.EthClient, time.Second).Wait(ctx, hash)
	if err != nil {
		return fmt.Errorf("等待交易上链失败: %w", err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("交易执行失败, hash: %s, block: %s", hash.Hex(), receipt.BlockNumber)
	}

	fmt.Printf("confirmed in block %s, gas used %d\n", receipt.BlockNumber, receipt.GasUsed)
	return nil
}
