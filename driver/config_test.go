package driver

import (
	"os"
	"testing"

	"github.com/openlyinc/pointy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellar/cexdemo/model"
	"github.com/stellar/cexdemo/support/toml"
)

func TestDemoConfigInit(t *testing.T) {
	testCases := []struct {
		name    string
		modify  func(c *DemoConfig)
		wantErr string
	}{
		{name: "valid", modify: func(c *DemoConfig) {}},
		{name: "missing exchange", modify: func(c *DemoConfig) { c.Exchange = "" }, wantErr: "EXCHANGE"},
		{name: "unknown step", modify: func(c *DemoConfig) { c.Steps = []string{"deposit"} }, wantErr: "unknown step 'deposit'"},
		{name: "same assets", modify: func(c *DemoConfig) { c.QuoteAsset = "XRP" }, wantErr: "cannot be the same"},
		{name: "unknown base", modify: func(c *DemoConfig) { c.BaseAsset = "DOGE" }, wantErr: "invalid BASE_ASSET"},
		{name: "bad balance asset", modify: func(c *DemoConfig) { c.BalanceAssets = []string{"XRP", ""} }, wantErr: "BALANCE_ASSETS"},
		{name: "buy without amount", modify: func(c *DemoConfig) { c.Steps = []string{"buy"}; c.BuyAmount = 0 }, wantErr: "BUY_AMOUNT"},
		{name: "buyquote without amount", modify: func(c *DemoConfig) { c.Steps = []string{"buyquote"}; c.PayAmount = -1 }, wantErr: "PAY_AMOUNT"},
		{name: "withdraw without destination", modify: func(c *DemoConfig) { c.WithdrawDestination = " " }, wantErr: "WITHDRAW_DESTINATION"},
		{name: "withdraw without amount", modify: func(c *DemoConfig) { c.WithdrawAmount = 0 }, wantErr: "WITHDRAW_AMOUNT"},
		{name: "withdraw amount not needed", modify: func(c *DemoConfig) { c.Steps = []string{"ticker"}; c.WithdrawAmount = 0 }},
	}

	for _, kase := range testCases {
		t.Run(kase.name, func(t *testing.T) {
			c := &DemoConfig{
				Exchange:            "kraken",
				BaseAsset:           "XRP",
				QuoteAsset:          "EUR",
				WithdrawAsset:       "XRP",
				WithdrawAmount:      50,
				WithdrawDestination: "Binance",
			}
			kase.modify(c)

			e := c.Init()
			if kase.wantErr != "" {
				if assert.Error(t, e) {
					assert.Contains(t, e.Error(), kase.wantErr)
				}
				return
			}
			assert.NoError(t, e)
		})
	}
}

func TestDemoConfigDefaults(t *testing.T) {
	c := &DemoConfig{
		Exchange:            "kraken",
		BaseAsset:           "xrp",
		QuoteAsset:          "eur",
		WithdrawAsset:       "xrp",
		WithdrawAmount:      50,
		WithdrawDestination: "Binance",
		Steps:               []string{" Ticker", "ORDERS", "withdraw"},
	}
	require.NoError(t, c.Init())

	assert.Equal(t, DefaultSteps, c.Steps)
	assert.Equal(t, model.TradingPair{Base: model.XRP, Quote: model.EUR}, *c.TradingPair())
	assert.Equal(t, []model.Asset{model.XRP, model.EUR}, c.Assets())
	assert.Equal(t, "50.00000000", c.withdrawAmount.AsString())
	assert.Equal(t, model.XRP, c.withdrawAsset)

	empty := &DemoConfig{Exchange: "kraken", BaseAsset: "xrp", QuoteAsset: "eur", WithdrawAsset: "xrp", WithdrawAmount: 1, WithdrawDestination: "Binance"}
	require.NoError(t, empty.Init())
	assert.Equal(t, DefaultSteps, empty.Steps)
}

func TestDemoConfigSecrets(t *testing.T) {
	c := DemoConfig{
		Exchange: "kraken",
		ExchangeAPIKeys: toml.ExchangeAPIKeysToml{
			{Key: "public1", Secret: "private1"},
			{Key: "public2", Secret: "private2"},
		},
	}

	s := c.String()
	assert.Contains(t, s, "EXCHANGE: kraken")
	assert.Contains(t, s, "EXCHANGE_API_KEYS: [2 hidden]")
	assert.NotContains(t, s, "private1")
	assert.NotContains(t, s, "public2")

	apiKeys := c.APIKeys()
	require.Len(t, apiKeys, 2)
	assert.Equal(t, "private2", apiKeys[1].Secret)

	original := c.ExchangeAPIKeys
	c.ClearSecrets()
	assert.Empty(t, c.ExchangeAPIKeys)
	assert.Empty(t, c.APIKeys())
	assert.Equal(t, toml.ExchangeAPIKeyToml{}, original[0])
}

func TestDemoConfigApplyEnv(t *testing.T) {
	defer os.Unsetenv(EnvAPIKey)
	defer os.Unsetenv(EnvAPISecret)

	c := DemoConfig{ExchangeAPIKeys: toml.ExchangeAPIKeysToml{{Key: "file", Secret: "file"}}}

	os.Setenv(EnvAPIKey, "envKey")
	os.Unsetenv(EnvAPISecret)
	assert.False(t, c.ApplyEnv())
	assert.Equal(t, "file", c.ExchangeAPIKeys[0].Key)

	os.Setenv(EnvAPISecret, "envSecret")
	assert.True(t, c.ApplyEnv())
	assert.Equal(t, toml.ExchangeAPIKeysToml{{Key: "envKey", Secret: "envSecret"}}, c.ExchangeAPIKeys)
}

func TestDemoConfigOrderConstraintsOverride(t *testing.T) {
	c := DemoConfig{}
	assert.Nil(t, c.OrderConstraintsOverride())

	c.MinBaseVolume = pointy.Float64(20)
	c.VolumePrecision = pointy.Int8(4)
	override := c.OrderConstraintsOverride()
	require.NotNil(t, override)
	assert.Nil(t, override.PricePrecision)
	assert.Equal(t, int8(4), *override.VolumePrecision)
	assert.Equal(t, "20.00000000", override.MinBaseVolume.AsString())
}
