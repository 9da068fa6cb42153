package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fachebot/moonit-sdk/internal/config"
	"github.com/fachebot/moonit-sdk/internal/logger"
	"github.com/fachebot/moonit-sdk/internal/svc"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const privateKeyEnv = "MOONIT_PRIVATE_KEY"

var version = "dev"

type app struct {
	configFile string
	svcCtx     *svc.ServiceContext
}

func main() {
	a := &app{}

	root := &cobra.Command{
		Use:           "moonit",
		Short:         "quote, trade and launch tokens on the Moonit bonding-curve launchpad",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&a.configFile, "file", "f", "etc/config.yaml", "the config file")

	root.AddCommand(a.addressCmd())
	root.AddCommand(a.quoteCmd())
	root.AddCommand(a.buyCmd())
	root.AddCommand(a.sellCmd())
	root.AddCommand(a.positionCmd())
	root.AddCommand(a.mintCmd())

	err := root.Execute()
	if a.svcCtx != nil {
		a.svcCtx.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// serviceContext loads the config and connects on first use.
func (a *app) serviceContext(ctx context.Context) (*svc.ServiceContext, error) {
	if a.svcCtx != nil {
		return a.svcCtx, nil
	}

	// 读取配置文件
	c, err := config.LoadFromFile(a.configFile)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}
	if err = logger.Setup(c.Log); err != nil {
		return nil, fmt.Errorf("初始化日志失败: %w", err)
	}

	// 创建数据目录
	if err = os.MkdirAll(filepath.Dir(c.Journal.Path), 0755); err != nil {
		return nil, fmt.Errorf("创建数据目录失败: %w", err)
	}

	// 创建以太坊客户端
	rpcClient, err := rpc.DialContext(ctx, c.Chain.RpcUrl)
	if err != nil {
		return nil, fmt.Errorf("创建RPC客户端失败, rpcUrl: %s: %w", c.Chain.RpcUrl, err)
	}
	ethClient := ethclient.NewClient(rpcClient)

	privateKey, err := resolvePrivateKey(c)
	if err != nil {
		ethClient.Close()
		return nil, err
	}

	svcCtx, err := svc.NewServiceContext(ctx, c, ethClient, privateKey)
	if err != nil {
		ethClient.Close()
		return nil, err
	}

	a.svcCtx = svcCtx
	return svcCtx, nil
}

// resolvePrivateKey prefers the environment, then the config file, then an
// interactive prompt.
func resolvePrivateKey(c *config.Config) (string, error) {
	if key := strings.TrimSpace(os.Getenv(privateKeyEnv)); key != "" {
		return key, nil
	}
	if c.Wallet.PrivateKey != "" {
		return c.Wallet.PrivateKey, nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("未配置私钥, 请设置环境变量 %s", privateKeyEnv)
	}

	fmt.Fprint(os.Stderr, "private key: ")
	key, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	if len(key) == 0 {
		return "", errors.New("私钥不能为空")
	}
	return string(key), nil
}
