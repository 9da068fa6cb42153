package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/fachebot/moonit-sdk/internal/logger"
	"github.com/fachebot/moonit-sdk/network"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type Chain struct {
	RpcUrl         string `yaml:"RpcUrl"`
	Environment    string `yaml:"Environment"`
	Network        string `yaml:"Network"`
	FactoryAddress string `yaml:"FactoryAddress"`
	SlippageBps    *int   `yaml:"SlippageBps"`

	Env  network.Environment `yaml:"-"`
	Net  network.Network     `yaml:"-"`
	Addr common.Address      `yaml:"-"`
}

type Wallet struct {
	PrivateKey string `yaml:"PrivateKey"`
}

type Api struct {
	BaseURL string `yaml:"BaseURL"`
	Variant string `yaml:"Variant"`
}

type Sock5Proxy struct {
	Host   string `yaml:"Host"`
	Port   int32  `yaml:"Port"`
	Enable bool   `yaml:"Enable"`
}

type Journal struct {
	Path string `yaml:"Path"`
}

type Config struct {
	Chain      Chain         `yaml:"Chain"`
	Wallet     Wallet        `yaml:"Wallet"`
	Api        Api           `yaml:"Api"`
	Sock5Proxy Sock5Proxy    `yaml:"Sock5Proxy"`
	Log        logger.Config `yaml:"Log"`
	Journal    Journal       `yaml:"Journal"`
}

const DefaultSlippageBps = 100

// Slippage returns SlippageBps as a fraction, e.g. 100 bps is 0.01.
func (c *Chain) Slippage() decimal.Decimal {
	bps := lo.FromPtrOr(c.SlippageBps, DefaultSlippageBps)
	return decimal.NewFromInt(int64(bps)).Div(decimal.NewFromInt(10000))
}

func (c *Config) Validate() error {
	if c.Chain.RpcUrl == "" {
		return errors.New("Chain.RpcUrl 不能为空")
	}

	c.Chain.Env = network.ParseEnvironment(c.Chain.Environment)

	n, err := network.ParseNetwork(c.Chain.Network)
	if err != nil {
		return fmt.Errorf("Chain.Network 配置错误: %w", err)
	}
	c.Chain.Net = n

	if c.Chain.FactoryAddress != "" {
		if !common.IsHexAddress(c.Chain.FactoryAddress) {
			return fmt.Errorf("Chain.FactoryAddress 不是有效地址: %s", c.Chain.FactoryAddress)
		}
		c.Chain.Addr = common.HexToAddress(c.Chain.FactoryAddress)
	}

	// 未配置时使用默认值, 显式配置0表示不容忍滑点
	if c.Chain.SlippageBps == nil {
		c.Chain.SlippageBps = lo.ToPtr(DefaultSlippageBps)
	}
	if *c.Chain.SlippageBps < 0 || *c.Chain.SlippageBps >= 10000 {
		return errors.New("Chain.SlippageBps 配置范围: 0-9999")
	}

	switch c.Api.Variant {
	case "":
		c.Api.Variant = "moonit"
	case "moonit", "moonshot":
	default:
		return errors.New("Api.Variant 配置枚举值范围: moonit/moonshot")
	}

	if c.Sock5Proxy.Enable && (c.Sock5Proxy.Host == "" || c.Sock5Proxy.Port <= 0) {
		return errors.New("Sock5Proxy 已启用但 Host/Port 未配置")
	}

	if c.Journal.Path == "" {
		c.Journal.Path = "data/journal.db"
	}

	return nil
}

func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var c Config
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		return nil, err
	}

	if err = c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}
