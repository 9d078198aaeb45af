package model

import (
	"errors"
	"fmt"
	"strings"
)

// Asset is typed and enlists the assets (currencies) understood by the demo
type Asset string

// this is the list of assets understood by the demo.
// This string can be converted by the specific exchange adapter as is needed by the exchange's API
const (
	XRP  Asset = "XRP"
	EUR  Asset = "EUR"
	USD  Asset = "USD"
	BTC  Asset = "BTC"
	ETH  Asset = "ETH"
	XLM  Asset = "XLM"
	LTC  Asset = "LTC"
	USDT Asset = "USDT"
)

// AssetFromString makes an Asset from a user-supplied symbol, e.g. "xrp" becomes XRP
func AssetFromString(s string) (Asset, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(s))
	if trimmed == "" {
		return "", errors.New("asset symbol cannot be empty")
	}
	return Display.FromString(trimmed)
}

// AssetConverterInterface is the interface which allows the creation of asset converters with logic instead of static bindings
type AssetConverterInterface interface {
	ToString(Asset) (string, error)
	FromString(string) (Asset, error)
}

// AssetConverter converts to and from the asset type, it is specific to an exchange
type AssetConverter struct {
	asset2String map[Asset]string
	string2Asset map[string]Asset
}

var _ AssetConverterInterface = AssetConverter{}

// makeAssetConverter is a factory method for AssetConverter
func makeAssetConverter(asset2String map[Asset]string) *AssetConverter {
	string2Asset := map[string]Asset{}
	for a, s := range asset2String {
		string2Asset[s] = a
	}

	return &AssetConverter{
		asset2String: asset2String,
		string2Asset: string2Asset,
	}
}

// ToString converts an asset to a string
func (c AssetConverter) ToString(a Asset) (string, error) {
	s, ok := c.asset2String[a]
	if !ok {
		return "", errors.New("could not recognize Asset: " + string(a))
	}
	return s, nil
}

// FromString converts from a string to an asset
func (c AssetConverter) FromString(s string) (Asset, error) {
	a, ok := c.string2Asset[s]
	if !ok {
		return "", errors.New("asset converter could not recognize string: " + s)
	}
	return a, nil
}

// String is the stringer function
func (c AssetConverter) String() string {
	return fmt.Sprintf("AssetConverter[%d assets]", len(c.asset2String))
}

// Display is a basic converter for display purposes
var Display = makeAssetConverter(map[Asset]string{
	XRP:  string(XRP),
	EUR:  string(EUR),
	USD:  string(USD),
	BTC:  string(BTC),
	ETH:  string(ETH),
	XLM:  string(XLM),
	LTC:  string(LTC),
	USDT: string(USDT),
})

// KrakenAssetConverter is the asset converter for the Kraken exchange
var KrakenAssetConverter = makeAssetConverter(map[Asset]string{
	XRP:  "XXRP",
	EUR:  "ZEUR",
	USD:  "ZUSD",
	BTC:  "XXBT",
	ETH:  "XETH",
	XLM:  "XXLM",
	LTC:  "XLTC",
	USDT: "USDT",
})

// KrakenAssetConverterOpenOrders is the asset converter for the Kraken exchange's GetOpenOrders API
var KrakenAssetConverterOpenOrders = makeAssetConverter(map[Asset]string{
	XRP:  "XRP",
	EUR:  "EUR",
	USD:  "USD",
	BTC:  "XBT",
	ETH:  "ETH",
	XLM:  "XLM",
	LTC:  "LTC",
	USDT: "USDT",
})

// BinanceAssetConverter is the asset converter for the Binance exchange
var BinanceAssetConverter = makeAssetConverter(map[Asset]string{
	XRP:  "XRP",
	EUR:  "EUR",
	USD:  "USD",
	BTC:  "BTC",
	ETH:  "ETH",
	XLM:  "XLM",
	LTC:  "LTC",
	USDT: "USDT",
})
