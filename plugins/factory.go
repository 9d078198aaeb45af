package plugins

import (
	"fmt"
	"sort"

	"github.com/stellar/cexdemo/api"
	"github.com/stellar/cexdemo/model"
	"github.com/stellar/cexdemo/support/logger"
)

// ExchangeOptions is a data container that has everything needed to make an exchange besides the API keys
type ExchangeOptions struct {
	SimMode bool
	// WithdrawAddresses maps a destination label to an address, for exchanges that do not keep an address book
	WithdrawAddresses map[string]string
	// OrderConstraintsOverrides partially override the built-in precision and minimums per pair
	OrderConstraintsOverrides map[model.TradingPair]*model.OrderConstraintsOverride
	Logger                    logger.Logger
}

// exchangeFactoryData is a data container that has all the information needed to make an exchange
type exchangeFactoryData struct {
	apiKeys []api.ExchangeAPIKey
	ExchangeOptions
}

// overridableExchange is implemented by integrations that accept order constraint overrides
type overridableExchange interface {
	api.Exchange
	OverrideOrderConstraints(pair *model.TradingPair, override *model.OrderConstraintsOverride)
}

// ExchangeContainer contains the exchange factory method along with some metadata
type ExchangeContainer struct {
	SortOrder       uint8
	Description     string
	WithdrawByLabel bool // true when the exchange resolves destination labels itself
	makeFn          func(exchangeFactoryData exchangeFactoryData) (overridableExchange, error)
}

// exchanges is a map of all the exchange integrations available
var exchanges = map[string]ExchangeContainer{
	"kraken": {
		SortOrder:       0,
		Description:     "Kraken is a popular centralized cryptocurrency exchange (https://www.kraken.com/)",
		WithdrawByLabel: true,
		makeFn: func(exchangeFactoryData exchangeFactoryData) (overridableExchange, error) {
			return makeKrakenExchange(exchangeFactoryData.apiKeys, exchangeFactoryData.SimMode, exchangeFactoryData.Logger)
		},
	},
	"binance": {
		SortOrder:       1,
		Description:     "Binance is a popular centralized cryptocurrency exchange (https://www.binance.com/)",
		WithdrawByLabel: false,
		makeFn: func(exchangeFactoryData exchangeFactoryData) (overridableExchange, error) {
			return makeBinanceExchange(exchangeFactoryData.apiKeys, exchangeFactoryData.WithdrawAddresses, exchangeFactoryData.SimMode, exchangeFactoryData.Logger)
		},
	},
}

// MakeExchange is a factory method to make an exchange based on a given type
func MakeExchange(exchangeType string, apiKeys []api.ExchangeAPIKey, options ExchangeOptions) (api.Exchange, error) {
	exchange, ok := exchanges[exchangeType]
	if !ok {
		return nil, fmt.Errorf("invalid exchange type: %s", exchangeType)
	}

	if len(apiKeys) == 0 {
		return nil, fmt.Errorf("cannot make exchange, apiKeys missing")
	}
	if options.Logger == nil {
		return nil, fmt.Errorf("cannot make exchange, logger missing")
	}

	x, e := exchange.makeFn(exchangeFactoryData{
		apiKeys:         apiKeys,
		ExchangeOptions: options,
	})
	if e != nil {
		return nil, fmt.Errorf("error when making the '%s' exchange: %s", exchangeType, e)
	}

	for pair, override := range options.OrderConstraintsOverrides {
		p := pair
		x.OverrideOrderConstraints(&p, override)
	}
	return x, nil
}

// Exchanges returns the list of exchanges
func Exchanges() map[string]ExchangeContainer {
	return exchanges
}

// ExchangeNames returns the names of the exchanges in their sort order
func ExchangeNames() []string {
	names := []string{}
	for name := range exchanges {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return exchanges[names[i]].SortOrder < exchanges[names[j]].SortOrder
	})
	return names
}
