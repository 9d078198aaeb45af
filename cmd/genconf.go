package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stellar/cexdemo/driver"
	"github.com/stellar/cexdemo/model"
	"github.com/stellar/cexdemo/plugins"
	"github.com/stellar/cexdemo/support/logger"
	"github.com/stellar/cexdemo/support/toml"
)

const sampleWithdrawDestination = "Binance"

var genconfCmd = &cobra.Command{
	Use:     "genconf",
	Short:   "Writes a sample demo config file for an exchange",
	Example: "  cexdemo genconf --exchange kraken --out ./demo.cfg",
}

func init() {
	exchange := genconfCmd.Flags().StringP("exchange", "e", "kraken", "exchange to write the sample config for")
	outPath := genconfCmd.Flags().StringP("out", "o", "", "(required) file path to write the config to")
	requiredFlag(genconfCmd, "out")

	genconfCmd.Run = func(ccmd *cobra.Command, args []string) {
		l := logger.MakeEntryLogger(os.Stderr)
		cfg, e := sampleConfig(*exchange)
		if e != nil {
			logger.Fatal(l, e)
		}

		e = toml.WriteFile(*outPath, cfg)
		if e != nil {
			logger.Fatal(l, e)
		}
		l.Infof("wrote sample config for exchange '%s' to %s, set %s and %s before running it\n", *exchange, *outPath, driver.EnvAPIKey, driver.EnvAPISecret)
	}
}

// sampleConfig is the config of the default demo: ticker, open orders and a withdrawal of 50 XRP
func sampleConfig(exchange string) (*driver.DemoConfig, error) {
	container, ok := plugins.Exchanges()[exchange]
	if !ok {
		return nil, fmt.Errorf("unknown exchange '%s', run the exchanges command to list the available ones", exchange)
	}

	cfg := &driver.DemoConfig{
		Exchange:            exchange,
		BaseAsset:           string(model.XRP),
		QuoteAsset:          string(model.EUR),
		BalanceAssets:       []string{string(model.XRP), string(model.EUR)},
		BuyAmount:           250,
		PayAmount:           50,
		WithdrawAsset:       string(model.XRP),
		WithdrawAmount:      50,
		WithdrawDestination: sampleWithdrawDestination,
		Steps:               append([]string{}, driver.DefaultSteps...),
		SimMode:             true,
	}
	if !container.WithdrawByLabel {
		cfg.WithdrawAddresses = map[string]string{
			sampleWithdrawDestination: "<deposit address registered for the label>",
		}
	}
	return cfg, nil
}
