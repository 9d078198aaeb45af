package model

import (
	"fmt"
)

// TradingPair lists an ordered pair that is understood by the demo and our exchange API.
// XRP/EUR = 0.60; XRP is base, EUR is Quote. An amount of 1 XRP costs 0.60 EUR in this example
type TradingPair struct {
	// Base represents the asset that has a unit of 1 (implicit)
	Base Asset
	// Quote (or Counter) represents the asset that has its unit specified relative to the base asset
	Quote Asset
}

// MakeTradingPair is a factory method
func MakeTradingPair(base Asset, quote Asset) *TradingPair {
	return &TradingPair{
		Base:  base,
		Quote: quote,
	}
}

// String is the stringer function
func (p TradingPair) String() string {
	s, e := p.ToString(Display, "/")
	if e != nil {
		return fmt.Sprintf("<error, TradingPair: %s>", e)
	}
	return s
}

// ToString converts the trading pair to a string using the passed in assetConverterInterface
func (p TradingPair) ToString(c AssetConverterInterface, delim string) (string, error) {
	a, e := c.ToString(p.Base)
	if e != nil {
		return "", e
	}

	b, e := c.ToString(p.Quote)
	if e != nil {
		return "", e
	}

	return a + delim + b, nil
}

// TradingPairFromString2 makes a TradingPair out of an undelimited string such as "XRPEUR" or "XXRPZEUR".
// Each split point is tried against every converter since symbol lengths differ between assets.
func TradingPairFromString2(converters []AssetConverterInterface, p string) (*TradingPair, error) {
	for i := 1; i < len(p); i++ {
		base, ok := fromAnyConverter(converters, p[:i])
		if !ok {
			continue
		}
		quote, ok := fromAnyConverter(converters, p[i:])
		if !ok {
			continue
		}
		return &TradingPair{Base: base, Quote: quote}, nil
	}
	return nil, fmt.Errorf("trading pair could not be converted using any of the converters in the list of %d converters: %s", len(converters), p)
}

func fromAnyConverter(converters []AssetConverterInterface, s string) (Asset, bool) {
	for _, c := range converters {
		a, e := c.FromString(s)
		if e == nil {
			return a, true
		}
	}
	return "", false
}

// TradingPairs2Strings converts the trading pairs to an array of strings
func TradingPairs2Strings(c AssetConverterInterface, delim string, pairs []TradingPair) (map[TradingPair]string, error) {
	m := map[TradingPair]string{}
	for _, p := range pairs {
		pairString, e := p.ToString(c, delim)
		if e != nil {
			return nil, e
		}
		m[p] = pairString
	}
	return m, nil
}
