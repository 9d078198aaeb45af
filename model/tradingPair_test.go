package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssetFromString(t *testing.T) {
	testCases := []struct {
		s       string
		want    Asset
		wantErr bool
	}{
		{s: "xrp", want: XRP},
		{s: " EUR ", want: EUR},
		{s: "UsDt", want: USDT},
		{s: "", wantErr: true},
		{s: "doge", wantErr: true},
	}

	for _, kase := range testCases {
		t.Run(kase.s, func(t *testing.T) {
			a, e := AssetFromString(kase.s)
			if kase.wantErr {
				assert.Error(t, e)
				return
			}
			if !assert.NoError(t, e) {
				return
			}
			assert.Equal(t, kase.want, a)
		})
	}
}

func TestTradingPairToString(t *testing.T) {
	pair := MakeTradingPair(XRP, EUR)

	assert.Equal(t, "XRP/EUR", pair.String())

	s, e := pair.ToString(KrakenAssetConverter, "")
	if assert.NoError(t, e) {
		assert.Equal(t, "XXRPZEUR", s)
	}

	s, e = pair.ToString(BinanceAssetConverter, "")
	if assert.NoError(t, e) {
		assert.Equal(t, "XRPEUR", s)
	}

	_, e = MakeTradingPair(Asset("DOGE"), EUR).ToString(KrakenAssetConverter, "")
	assert.Error(t, e)
}

func TestTradingPairFromString2(t *testing.T) {
	testCases := []struct {
		s          string
		converters []AssetConverterInterface
		want       TradingPair
		wantErr    bool
	}{
		{
			s:          "XRPEUR",
			converters: []AssetConverterInterface{KrakenAssetConverterOpenOrders},
			want:       TradingPair{Base: XRP, Quote: EUR},
		}, {
			s:          "XXRPZEUR",
			converters: []AssetConverterInterface{KrakenAssetConverter},
			want:       TradingPair{Base: XRP, Quote: EUR},
		}, {
			s:          "XBTUSDT",
			converters: []AssetConverterInterface{KrakenAssetConverterOpenOrders, Display},
			want:       TradingPair{Base: BTC, Quote: USDT},
		}, {
			s:          "USDTEUR",
			converters: []AssetConverterInterface{Display},
			want:       TradingPair{Base: USDT, Quote: EUR},
		}, {
			s:          "DOGEEUR",
			converters: []AssetConverterInterface{Display},
			wantErr:    true,
		},
	}

	for _, kase := range testCases {
		t.Run(kase.s, func(t *testing.T) {
			p, e := TradingPairFromString2(kase.converters, kase.s)
			if kase.wantErr {
				assert.Error(t, e)
				return
			}
			if !assert.NoError(t, e) {
				return
			}
			assert.Equal(t, kase.want, *p)
		})
	}
}

func TestOrderActionAndType(t *testing.T) {
	a, e := OrderActionFromString("Sell")
	if assert.NoError(t, e) {
		assert.True(t, a.IsSell())
		assert.False(t, a.IsBuy())
	}
	_, e = OrderActionFromString("hold")
	assert.Error(t, e)

	o, e := OrderTypeFromString("market")
	if assert.NoError(t, e) {
		assert.True(t, o.IsMarket())
	}
	_, e = OrderTypeFromString("stop-loss")
	assert.Error(t, e)
}

func TestOrderString(t *testing.T) {
	o := MakeMarketOrder(MakeTradingPair(XRP, EUR), OrderActionBuy, NumberFromFloat(250, 8))
	assert.Equal(t, "Order[pair=XRP/EUR, action=buy, type=market, price=<nil>, vol=250.00000000, ts=<nil>]", o.String())
}
