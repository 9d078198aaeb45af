package driver

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/stellar/cexdemo/api"
	"github.com/stellar/cexdemo/model"
	"github.com/stellar/cexdemo/support/toml"
	"github.com/stellar/cexdemo/support/utils"
)

// environment variables that take precedence over the API keys in the config file
const (
	EnvAPIKey    = "CEXDEMO_API_KEY"
	EnvAPISecret = "CEXDEMO_API_SECRET"
)

// DefaultSteps is the step list used when the config does not name any
var DefaultSteps = []string{StepTicker, StepOrders, StepWithdraw}

// volumePrecisionConfig is the precision amounts from the config file are read with
const volumePrecisionConfig int8 = 8

// DemoConfig represents the configuration params for the demo
type DemoConfig struct {
	Exchange            string                   `valid:"-" toml:"EXCHANGE"`
	ExchangeAPIKeys     toml.ExchangeAPIKeysToml `valid:"-" toml:"EXCHANGE_API_KEYS"`
	BaseAsset           string                   `valid:"-" toml:"BASE_ASSET"`
	QuoteAsset          string                   `valid:"-" toml:"QUOTE_ASSET"`
	BalanceAssets       []string                 `valid:"-" toml:"BALANCE_ASSETS"`
	BuyAmount           float64                  `valid:"-" toml:"BUY_AMOUNT"`
	PayAmount           float64                  `valid:"-" toml:"PAY_AMOUNT"`
	WithdrawAsset       string                   `valid:"-" toml:"WITHDRAW_ASSET"`
	WithdrawAmount      float64                  `valid:"-" toml:"WITHDRAW_AMOUNT"`
	WithdrawDestination string                   `valid:"-" toml:"WITHDRAW_DESTINATION"`
	WithdrawAddresses   map[string]string        `valid:"-" toml:"WITHDRAW_ADDRESSES"`
	Steps               []string                 `valid:"-" toml:"STEPS"`
	SimMode             bool                     `valid:"-" toml:"SIM_MODE"`
	MinBaseVolume       *float64                 `valid:"-" toml:"MIN_BASE_VOLUME"`
	VolumePrecision     *int8                    `valid:"-" toml:"VOLUME_PRECISION"`
	PricePrecision      *int8                    `valid:"-" toml:"PRICE_PRECISION"`

	// initialized in Init
	pair           *model.TradingPair
	balanceAssets  []model.Asset
	buyAmount      *model.Number
	payAmount      *model.Number
	withdrawAsset  model.Asset
	withdrawAmount *model.Number
}

// String impl.
func (c DemoConfig) String() string {
	return utils.StructString(c, 0, map[string]func(interface{}) interface{}{
		"EXCHANGE_API_KEYS": utils.HideKeys,
	})
}

// Init initializes this config, validating the fields needed by the configured steps
func (c *DemoConfig) Init() error {
	if c.Exchange == "" {
		return fmt.Errorf("EXCHANGE needs to be specified")
	}

	if len(c.Steps) == 0 {
		c.Steps = append([]string{}, DefaultSteps...)
	}
	for i, s := range c.Steps {
		c.Steps[i] = strings.ToLower(strings.TrimSpace(s))
	}
	if e := ValidateSteps(c.Steps); e != nil {
		return e
	}
	steps := utils.StringSet(c.Steps)

	base, e := model.AssetFromString(c.BaseAsset)
	if e != nil {
		return errors.Wrap(e, "invalid BASE_ASSET")
	}
	quote, e := model.AssetFromString(c.QuoteAsset)
	if e != nil {
		return errors.Wrap(e, "invalid QUOTE_ASSET")
	}
	if base == quote {
		return fmt.Errorf("BASE_ASSET and QUOTE_ASSET cannot be the same: %s", base)
	}
	c.pair = model.MakeTradingPair(base, quote)

	balanceAssets := c.BalanceAssets
	if len(balanceAssets) == 0 {
		balanceAssets = []string{string(base), string(quote)}
	}
	c.balanceAssets = []model.Asset{}
	for _, s := range balanceAssets {
		a, e := model.AssetFromString(s)
		if e != nil {
			return errors.Wrap(e, "invalid entry in BALANCE_ASSETS")
		}
		c.balanceAssets = append(c.balanceAssets, a)
	}

	if steps[StepBuy] {
		if c.BuyAmount <= 0 {
			return fmt.Errorf("BUY_AMOUNT needs to be positive for the '%s' step, was %f", StepBuy, c.BuyAmount)
		}
	}
	c.buyAmount = model.NumberFromFloat(c.BuyAmount, volumePrecisionConfig)

	if steps[StepBuyQuote] {
		if c.PayAmount <= 0 {
			return fmt.Errorf("PAY_AMOUNT needs to be positive for the '%s' step, was %f", StepBuyQuote, c.PayAmount)
		}
	}
	c.payAmount = model.NumberFromFloat(c.PayAmount, volumePrecisionConfig)

	if steps[StepWithdraw] {
		a, e := model.AssetFromString(c.WithdrawAsset)
		if e != nil {
			return errors.Wrap(e, "invalid WITHDRAW_ASSET")
		}
		if c.WithdrawAmount <= 0 {
			return fmt.Errorf("WITHDRAW_AMOUNT needs to be positive for the '%s' step, was %f", StepWithdraw, c.WithdrawAmount)
		}
		if strings.TrimSpace(c.WithdrawDestination) == "" {
			return fmt.Errorf("WITHDRAW_DESTINATION needs to be specified for the '%s' step", StepWithdraw)
		}
		c.withdrawAsset = a
	}
	c.withdrawAmount = model.NumberFromFloat(c.WithdrawAmount, volumePrecisionConfig)

	return nil
}

// ApplyEnv replaces the API keys with the ones from the environment when both variables are set
func (c *DemoConfig) ApplyEnv() bool {
	key, secret := os.Getenv(EnvAPIKey), os.Getenv(EnvAPISecret)
	if key == "" || secret == "" {
		return false
	}
	c.ExchangeAPIKeys = toml.ExchangeAPIKeysToml{{Key: key, Secret: secret}}
	return true
}

// APIKeys converts the configured keys for the exchange factory
func (c *DemoConfig) APIKeys() []api.ExchangeAPIKey {
	return c.ExchangeAPIKeys.ToExchangeAPIKeys()
}

// ClearSecrets drops the API keys from the config once the exchange client holds them
func (c *DemoConfig) ClearSecrets() {
	c.ExchangeAPIKeys.Wipe()
	c.ExchangeAPIKeys = nil
}

// OrderConstraintsOverride builds the override for the configured pair, nil when nothing is overriden
func (c *DemoConfig) OrderConstraintsOverride() *model.OrderConstraintsOverride {
	if c.MinBaseVolume == nil && c.VolumePrecision == nil && c.PricePrecision == nil {
		return nil
	}

	override := &model.OrderConstraintsOverride{
		PricePrecision:  c.PricePrecision,
		VolumePrecision: c.VolumePrecision,
	}
	if c.MinBaseVolume != nil {
		override.MinBaseVolume = model.NumberFromFloat(*c.MinBaseVolume, volumePrecisionConfig)
	}
	return override
}

// TradingPair returns the config's trading pair
func (c *DemoConfig) TradingPair() *model.TradingPair {
	return c.pair
}

// Assets returns the assets to print balances for, in the requested order
func (c *DemoConfig) Assets() []model.Asset {
	return c.balanceAssets
}
