package main

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"

	moonit "github.com/fachebot/moonit-sdk"
	"github.com/fachebot/moonit-sdk/internal/logger"
	"github.com/fachebot/moonit-sdk/internal/model"
	"github.com/fachebot/moonit-sdk/network"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func (a *app) mintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mint",
		Short: "launch a new token: prepare, sign, submit",
	}
	cmd.AddCommand(a.mintPrepareCmd())
	cmd.AddCommand(a.mintSignCmd())
	cmd.AddCommand(a.mintSubmitCmd())
	cmd.AddCommand(a.mintListCmd())
	return cmd
}

// readImage returns the file as a base64 data URL.
func readImage(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("data:%s;base64,%s", http.DetectContentType(data), base64.StdEncoding.EncodeToString(data)), nil
}

func (a *app) mintPrepareCmd() *cobra.Command {
	var (
		options    moonit.PrepareMintTxOptions
		dex        string
		iconFile   string
		bannerFile string
		amount     string
	)

	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "register token metadata and fetch the unsigned mint transaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svcCtx, err := a.serviceContext(ctx)
			if err != nil {
				return err
			}

			options.MigrationDex = moonit.SDKMigrationDex(dex)
			if options.Icon, err = readImage(iconFile); err != nil {
				return fmt.Errorf("读取图标失败: %w", err)
			}
			if options.Banner, err = readImage(bannerFile); err != nil {
				return fmt.Errorf("读取横幅失败: %w", err)
			}
			if amount != "" {
				// Curve tokens use 18 decimals.
				tokenAmount, err := parseAmount(amount, 18)
				if err != nil {
					return err
				}
				options.TokenAmount = tokenAmount.String()
			}
			options.Creator = svcCtx.Wallet.Address().Hex()

			prepared, err := svcCtx.Moonit.PrepareMintTx(ctx, options)
			if err != nil {
				return err
			}

			record, err := svcCtx.MintModel.Save(ctx, model.Mint{
				Network:    svcCtx.Moonit.Network().String(),
				PairId:     prepared.PairId,
				Name:       options.Name,
				Symbol:     options.Symbol,
				Creator:    options.Creator,
				Token:      prepared.Token,
				UnsignedTx: prepared.Transaction,
			})
			if err != nil {
				return fmt.Errorf("保存铸造记录失败: %w", err)
			}

			logger.Infof("[Mint] 铸造交易已准备, id: %s, pairId: %s, symbol: %s", record.Id, record.PairId, record.Symbol)
			fmt.Printf("id: %s\n", record.Id)
			fmt.Printf("pair: %s\n", record.PairId)
			fmt.Println("next: moonit mint sign " + record.Id)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&options.Name, "name", "", "token name, at most 32 characters")
	flags.StringVar(&options.Symbol, "symbol", "", "token symbol, at most 32 characters")
	flags.StringVar(&options.Description, "description", "", "token description")
	flags.StringVar(&dex, "dex", string(moonit.MigrationDexUniswap), "migration dex: UNISWAP or ABSTRACTSWAP")
	flags.StringVar(&iconFile, "icon", "", "icon image file, at most 2MB")
	flags.StringVar(&bannerFile, "banner", "", "banner image file, at most 5MB")
	flags.StringVar(&amount, "amount", "", "initial buy in tokens, at most 80% of the supply")
	flags.StringVar(&options.Website, "website", "", "website link")
	flags.StringVar(&options.X, "x", "", "X link")
	flags.StringVar(&options.Telegram, "telegram", "", "telegram link")
	flags.StringVar(&options.Discord, "discord", "", "discord link")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("symbol")
	_ = cmd.MarkFlagRequired("icon")
	return cmd
}

func (a *app) mintSignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sign <id>",
		Short: "sign a prepared mint transaction with the configured wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svcCtx, err := a.serviceContext(ctx)
			if err != nil {
				return err
			}

			record, err := svcCtx.MintModel.FindOne(ctx, args[0])
			if err != nil {
				return err
			}
			if record.Status != model.MintStatusPrepared && record.Status != model.MintStatusSigned {
				return fmt.Errorf("铸造记录已提交, status: %s", record.Status)
			}
			if record.Creator != svcCtx.Wallet.Address().Hex() {
				return fmt.Errorf("当前钱包 %s 不是创建者 %s", svcCtx.Wallet.Address().Hex(), record.Creator)
			}

			signed, err := svcCtx.Wallet.SignTransaction(record.UnsignedTx)
			if err != nil {
				return fmt.Errorf("签名铸造交易失败: %w", err)
			}
			if err = svcCtx.MintModel.UpdateSigned(ctx, record.Id, signed); err != nil {
				return err
			}

			fmt.Printf("signed: %s\n", record.Id)
			fmt.Println("next: moonit mint submit " + record.Id)
			return nil
		},
	}
}

func (a *app) mintSubmitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submit <id>",
		Short: "submit a signed mint transaction to the launchpad",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svcCtx, err := a.serviceContext(ctx)
			if err != nil {
				return err
			}

			record, err := svcCtx.MintModel.FindOne(ctx, args[0])
			if err != nil {
				return err
			}
			if record.SignedTx == "" {
				return errors.New("铸造交易尚未签名, 请先执行 mint sign")
			}

			res, err := svcCtx.Moonit.SubmitMintTx(ctx, moonit.SubmitMintTxOptions{
				Token:             record.Token,
				SignedTransaction: record.SignedTx,
			})
			if err != nil {
				return err
			}

			if err = svcCtx.MintModel.UpdateSubmitted(ctx, record.Id, res.TxSignature, model.MintStatus(res.Status)); err != nil {
				logger.Errorf("[Mint] 更新铸造记录失败, id: %s, txSignature: %s, %v", record.Id, res.TxSignature, err)
			}

			c := svcCtx.Config.Chain
			fmt.Printf("status: %s\n", res.Status)
			fmt.Printf("tx: %s\n", res.TxSignature)
			if link := network.TxLink(c.Env, c.Net, res.TxSignature); link != "" {
				fmt.Println(link)
			}
			return nil
		},
	}
}

func (a *app) mintListCmd() *cobra.Command {
	var offset, limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded mints, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svcCtx, err := a.serviceContext(ctx)
			if err != nil {
				return err
			}

			list, err := svcCtx.MintModel.FindAll(ctx, offset, limit)
			if err != nil {
				return err
			}

			lines := lo.Map(list, func(item *model.Mint, _ int) string {
				return fmt.Sprintf("%s  %-8s %-10s %-9s %s", item.Id, item.Network, item.Symbol, item.Status, humanize.Time(item.CreateTime))
			})
			for _, line := range lines {
				fmt.Println(line)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&offset, "offset", 0, "records to skip")
	cmd.Flags().IntVar(&limit, "limit", 20, "records to show")
	return cmd
}
