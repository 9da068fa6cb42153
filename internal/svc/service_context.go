package svc

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	moonit "github.com/fachebot/moonit-sdk"
	"github.com/fachebot/moonit-sdk/internal/cache"
	"github.com/fachebot/moonit-sdk/internal/config"
	"github.com/fachebot/moonit-sdk/internal/logger"
	"github.com/fachebot/moonit-sdk/internal/model"

	"github.com/ethereum/go-ethereum/ethclient"
	"golang.org/x/net/proxy"
)

type ServiceContext struct {
	Config         *config.Config
	DbClient       *sql.DB
	EthClient      *ethclient.Client
	TransportProxy *http.Transport
	Wallet         *moonit.Wallet
	Moonit         *moonit.Moonit
	TokenMetaCache *cache.TokenMetaCache
	MintModel      *model.MintModel
}

func NewServiceContext(ctx context.Context, c *config.Config, ethClient *ethclient.Client, privateKey string) (*ServiceContext, error) {
	// 创建钱包
	wallet, err := moonit.NewWallet(ctx, ethClient, privateKey)
	if err != nil {
		return nil, fmt.Errorf("创建钱包失败: %w", err)
	}

	// 创建SOCKS5代理
	transportProxy, err := NewTransportProxy(c.Sock5Proxy)
	if err != nil {
		return nil, fmt.Errorf("创建SOCKS5代理失败: %w", err)
	}

	httpClient := new(http.Client)
	if transportProxy != nil {
		httpClient.Transport = transportProxy
	}

	// 创建Moonit客户端
	options := moonit.Options{
		Signer:         wallet,
		Env:            c.Chain.Env,
		Network:        c.Chain.Net,
		FactoryAddress: c.Chain.Addr,
		APIBaseURL:     c.Api.BaseURL,
		HTTPClient:     httpClient,
	}
	newClient := moonit.New
	if c.Api.Variant == moonit.VariantMoonshot.Name {
		newClient = moonit.NewMoonshot
	}
	client, err := newClient(options)
	if err != nil {
		return nil, fmt.Errorf("创建Moonit客户端失败: %w", err)
	}

	// 打开数据库
	db, err := model.Open(ctx, c.Journal.Path)
	if err != nil {
		return nil, fmt.Errorf("打开数据库失败: %w", err)
	}

	logger.Debugf("[ServiceContext] 初始化完成, wallet: %s, network: %s, env: %s, factory: %s",
		wallet.Address().Hex(), c.Chain.Net, c.Chain.Env, client.FactoryAddress().Hex())

	return &ServiceContext{
		Config:         c,
		DbClient:       db,
		EthClient:      ethClient,
		TransportProxy: transportProxy,
		Wallet:         wallet,
		Moonit:         client,
		TokenMetaCache: cache.NewTokenMetaCache(ethClient),
		MintModel:      model.NewMintModel(db),
	}, nil
}

// NewTransportProxy returns nil when the proxy is disabled.
func NewTransportProxy(c config.Sock5Proxy) (*http.Transport, error) {
	if !c.Enable {
		return nil, nil
	}

	socks5Proxy := fmt.Sprintf("%s:%d", c.Host, c.Port)
	dialer, err := proxy.SOCKS5("tcp", socks5Proxy, nil, proxy.Direct)
	if err != nil {
		return nil, err
	}

	contextDialer, ok := dialer.(proxy.ContextDialer)
	if !ok {
		return &http.Transport{Dial: dialer.Dial}, nil
	}
	return &http.Transport{DialContext: contextDialer.DialContext}, nil
}

func (svcCtx *ServiceContext) Close() {
	if err := svcCtx.DbClient.Close(); err != nil {
		logger.Errorf("[ServiceContext] 关闭数据库失败, %v", err)
	}
	svcCtx.EthClient.Close()
}
