package main

import (
	"fmt"

	"github.com/fachebot/moonit-sdk/internal/utils/evm"
	"github.com/fachebot/moonit-sdk/network"

	"github.com/spf13/cobra"
)

func (a *app) addressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "address",
		Short: "show the wallet address and its collateral balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svcCtx, err := a.serviceContext(ctx)
			if err != nil {
				return err
			}

			wallet := svcCtx.Wallet
			balance, err := evm.GetBalance(ctx, svcCtx.EthClient, wallet.Address())
			if err != nil {
				return fmt.Errorf("查询余额失败: %w", err)
			}

			c := svcCtx.Config.Chain
			fmt.Printf("address: %s\n", wallet.Address().Hex())
			fmt.Printf("chain: %s (%s, id %s)\n", c.Net, c.Env, wallet.ChainId())
			fmt.Printf("balance: %s %s\n", formatAmount(balance, 18), collateralSymbol)
			if link := network.AccountLink(c.Env, c.Net, wallet.Address().Hex()); link != "" {
				fmt.Println(link)
			}
			return nil
		},
	}
}

func (a *app) positionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "position <token>",
		Short: "show tokens left on the curve and the wallet's holding",
		Args:  cobra.ExactArgs(1),
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

			curve, err := svcCtx.Moonit.GetCurvePosition(ctx, token)
			if err != nil {
				return err
			}
			holding, err := svcCtx.Moonit.BalanceOf(ctx, token, svcCtx.Wallet.Address())
			if err != nil {
				return err
			}

			c := svcCtx.Config.Chain
			fmt.Printf("token: %s (%s)\n", meta.Name, meta.Symbol)
			fmt.Printf("curve position: %s %s\n", formatAmount(curve, meta.Decimals), meta.Symbol)
			fmt.Printf("wallet balance: %s %s\n", formatAmount(holding, meta.Decimals), meta.Symbol)
			if link := network.TokenLink(c.Env, c.Net, token.Hex()); link != "" {
				fmt.Println(link)
			}
			return nil
		},
	}
}
