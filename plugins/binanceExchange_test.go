package plugins

import (
	"bytes"
	"errors"
	"testing"

	"github.com/adshao/go-binance/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellar/cexdemo/api"
	"github.com/stellar/cexdemo/model"
	"github.com/stellar/cexdemo/support/logger"
)

type binanceOrderCall struct {
	symbol   string
	side     binance.SideType
	quantity string
	test     bool
}

type binanceWithdrawCall struct {
	coin    string
	address string
	amount  string
	name    string
}

type fakeBinanceAPI struct {
	tickers       map[string]*binance.BookTicker
	acct          *binance.Account
	orders        []*binance.Order
	err           error
	orderCalls    []binanceOrderCall
	withdrawCalls []binanceWithdrawCall
}

func (f *fakeBinanceAPI) bookTicker(symbol string) (*binance.BookTicker, error) {
	if f.err != nil {
		return nil, f.err
	}
	t, ok := f.tickers[symbol]
	if !ok {
		return nil, errors.New("<APIError> code=-1121, msg=Invalid symbol.")
	}
	return t, nil
}

func (f *fakeBinanceAPI) account() (*binance.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.acct, nil
}

func (f *fakeBinanceAPI) createMarketOrder(symbol string, side binance.SideType, quantity string, test bool) (*binance.CreateOrderResponse, error) {
	f.orderCalls = append(f.orderCalls, binanceOrderCall{symbol: symbol, side: side, quantity: quantity, test: test})
	if f.err != nil {
		return nil, f.err
	}
	return &binance.CreateOrderResponse{Symbol: symbol, OrderID: 28}, nil
}

func (f *fakeBinanceAPI) openOrders() ([]*binance.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.orders, nil
}

func (f *fakeBinanceAPI) withdraw(coin string, address string, amount string, name string) (string, error) {
	f.withdrawCalls = append(f.withdrawCalls, binanceWithdrawCall{coin: coin, address: address, amount: amount, name: name})
	if f.err != nil {
		return "", f.err
	}
	return "7213fea8e94b4a5593d507237e5a555b", nil
}

func makeTestBinance(fake *fakeBinanceAPI, isSimulated bool) *binanceExchange {
	return makeBinanceExchangeWithAPI(fake, map[string]string{"Kraken": "rLHzPsX6oXkzU2qL12kHCH8G8cnZv1rBJh"}, isSimulated, logger.MakeEntryLogger(&bytes.Buffer{}))
}

func TestBinanceGetTickerPrice(t *testing.T) {
	fake := &fakeBinanceAPI{tickers: map[string]*binance.BookTicker{
		"XRPEUR": {Symbol: "XRPEUR", BidPrice: "0.59900000", AskPrice: "0.60000000"},
	}}
	b := makeTestBinance(fake, false)

	m, e := b.GetTickerPrice([]model.TradingPair{xrpEUR})
	require.NoError(t, e)
	assert.Equal(t, "0.60000", m[xrpEUR].AskPrice.AsString())
	assert.Equal(t, "0.59900", m[xrpEUR].BidPrice.AsString())
	assert.Nil(t, m[xrpEUR].LastPrice)
	assert.Equal(t, "Ticker[ask=0.60000, bid=0.59900]", m[xrpEUR].String())

	_, e = b.GetTickerPrice([]model.TradingPair{{Base: model.LTC, Quote: model.EUR}})
	assert.Error(t, e)
}

func TestBinanceGetAccountBalances(t *testing.T) {
	fake := &fakeBinanceAPI{acct: &binance.Account{Balances: []binance.Balance{
		{Asset: "XRP", Free: "120.50000000", Locked: "0.00000000"},
		{Asset: "BTC", Free: "0.00100000", Locked: "0.00000000"},
	}}}
	b := makeTestBinance(fake, false)

	m, e := b.GetAccountBalances([]model.Asset{model.XRP, model.EUR})
	require.NoError(t, e)
	require.Len(t, m, 2)
	xrp := m[model.XRP]
	eur := m[model.EUR]
	assert.Equal(t, 120.5, xrp.AsFloat())
	assert.Equal(t, 0.0, eur.AsFloat())
}

func TestBinanceAddOrder(t *testing.T) {
	testCases := []struct {
		name        string
		isSimulated bool
		action      model.OrderAction
		wantID      string
		wantSide    binance.SideType
	}{
		{name: "buy", action: model.OrderActionBuy, wantID: "28", wantSide: binance.SideTypeBuy},
		{name: "sell", action: model.OrderActionSell, wantID: "28", wantSide: binance.SideTypeSell},
		{name: "simulated", isSimulated: true, action: model.OrderActionBuy, wantID: "simulated", wantSide: binance.SideTypeBuy},
	}

	for _, kase := range testCases {
		t.Run(kase.name, func(t *testing.T) {
			fake := &fakeBinanceAPI{}
			b := makeTestBinance(fake, kase.isSimulated)

			txID, e := b.AddOrder(model.MakeMarketOrder(&xrpEUR, kase.action, model.NumberFromFloat(83.3, 1)))
			require.NoError(t, e)
			assert.Equal(t, kase.wantID, txID.String())
			require.Len(t, fake.orderCalls, 1)
			assert.Equal(t, binanceOrderCall{symbol: "XRPEUR", side: kase.wantSide, quantity: "83.3", test: kase.isSimulated}, fake.orderCalls[0])
		})
	}
}

func TestBinanceAddOrderLimitNotSupported(t *testing.T) {
	fake := &fakeBinanceAPI{}
	b := makeTestBinance(fake, false)

	order := model.MakeMarketOrder(&xrpEUR, model.OrderActionBuy, model.NumberFromFloat(10, 1))
	order.OrderType = model.OrderTypeLimit
	_, e := b.AddOrder(order)
	if assert.Error(t, e) {
		assert.Contains(t, e.Error(), api.ErrNotSupported.Error())
	}
	assert.Empty(t, fake.orderCalls)
}

func TestBinanceGetOpenOrders(t *testing.T) {
	fake := &fakeBinanceAPI{orders: []*binance.Order{
		{
			Symbol:           "XRPEUR",
			OrderID:          42,
			Price:            "0.70000000",
			OrigQuantity:     "100.00000000",
			ExecutedQuantity: "10.00000000",
			Type:             binance.OrderTypeLimit,
			Side:             binance.SideTypeSell,
			Time:             1616666666500,
		},
		{
			Symbol:           "BTCUSDT",
			OrderID:          17,
			Price:            "30000.00000000",
			OrigQuantity:     "0.00100000",
			ExecutedQuantity: "0.00000000",
			Type:             binance.OrderTypeLimit,
			Side:             binance.SideTypeBuy,
			Time:             1616666000000,
		},
	}}
	b := makeTestBinance(fake, false)

	orders, e := b.GetOpenOrders()
	require.NoError(t, e)
	require.Len(t, orders, 2)

	assert.Equal(t, "17", orders[0].ID)
	assert.Equal(t, model.TradingPair{Base: model.BTC, Quote: model.USDT}, *orders[0].Pair)

	o := orders[1]
	assert.Equal(t, "42", o.ID)
	assert.True(t, o.OrderAction.IsSell())
	assert.Equal(t, "0.70000", o.Price.AsString())
	assert.Equal(t, "100.0", o.Volume.AsString())
	assert.Equal(t, "10.0", o.VolumeExecuted.AsString())
	assert.Equal(t, int64(1616666666500), o.Timestamp.AsInt64())
}

func TestBinanceWithdrawFunds(t *testing.T) {
	fake := &fakeBinanceAPI{}
	b := makeTestBinance(fake, false)

	result, e := b.WithdrawFunds(model.XRP, model.NumberFromFloat(50, 8), "Kraken")
	require.NoError(t, e)
	assert.Equal(t, "7213fea8e94b4a5593d507237e5a555b", result.WithdrawalID)
	assert.Equal(t, []binanceWithdrawCall{{
		coin:    "XRP",
		address: "rLHzPsX6oXkzU2qL12kHCH8G8cnZv1rBJh",
		amount:  "50.00000000",
		name:    "Kraken",
	}}, fake.withdrawCalls)

	_, e = b.WithdrawFunds(model.XRP, model.NumberFromFloat(50, 8), "Bitstamp")
	assert.Error(t, e)
	assert.Len(t, fake.withdrawCalls, 1)
}

func TestBinanceWithdrawFundsSimulated(t *testing.T) {
	fake := &fakeBinanceAPI{}
	b := makeTestBinance(fake, true)

	result, e := b.WithdrawFunds(model.XRP, model.NumberFromFloat(50, 8), "Kraken")
	require.NoError(t, e)
	assert.Equal(t, "simulated", result.WithdrawalID)
	assert.Empty(t, fake.withdrawCalls)

	info, e := b.GetWithdrawInfo(model.XRP, model.NumberFromFloat(50, 8), "Kraken")
	require.NoError(t, e)
	assert.Equal(t, "50.00000000", info.AmountToReceive.AsString())
}

func TestBinanceErrorsSurfaceVerbatim(t *testing.T) {
	fake := &fakeBinanceAPI{err: errors.New("<APIError> code=-2010, msg=Account has insufficient balance for requested action.")}
	b := makeTestBinance(fake, false)

	_, e := b.GetOpenOrders()
	if assert.Error(t, e) {
		assert.Equal(t, "<APIError> code=-2010, msg=Account has insufficient balance for requested action.", e.Error())
	}
}
