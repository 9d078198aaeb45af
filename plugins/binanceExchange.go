package plugins

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/adshao/go-binance/v2"
	"github.com/pkg/errors"

	"github.com/stellar/cexdemo/api"
	"github.com/stellar/cexdemo/model"
	"github.com/stellar/cexdemo/support/logger"
)

// ensure that binanceExchange conforms to the Exchange interface
var _ api.Exchange = &binanceExchange{}

// binanceAPI is the part of the binance REST client used here
type binanceAPI interface {
	bookTicker(symbol string) (*binance.BookTicker, error)
	account() (*binance.Account, error)
	createMarketOrder(symbol string, side binance.SideType, quantity string, test bool) (*binance.CreateOrderResponse, error)
	openOrders() ([]*binance.Order, error)
	withdraw(coin string, address string, amount string, name string) (string, error)
}

// binanceClient adapts *binance.Client to binanceAPI
type binanceClient struct {
	client *binance.Client
}

func (c *binanceClient) bookTicker(symbol string) (*binance.BookTicker, error) {
	tickers, e := c.client.NewListBookTickersService().Symbol(symbol).Do(context.Background())
	if e != nil {
		return nil, e
	}
	for _, t := range tickers {
		if t.Symbol == symbol {
			return t, nil
		}
	}
	return nil, fmt.Errorf("symbol %s missing from book ticker response", symbol)
}

func (c *binanceClient) account() (*binance.Account, error) {
	return c.client.NewGetAccountService().Do(context.Background())
}

func (c *binanceClient) createMarketOrder(symbol string, side binance.SideType, quantity string, test bool) (*binance.CreateOrderResponse, error) {
	s := c.client.NewCreateOrderService().
		Symbol(symbol).
		Side(side).
		Type(binance.OrderTypeMarket).
		Quantity(quantity)
	if test {
		// binance validates the order on the test endpoint without sending it to the matching engine
		e := s.Test(context.Background())
		if e != nil {
			return nil, e
		}
		return &binance.CreateOrderResponse{Symbol: symbol}, nil
	}
	return s.Do(context.Background())
}

func (c *binanceClient) openOrders() ([]*binance.Order, error) {
	return c.client.NewListOpenOrdersService().Do(context.Background())
}

func (c *binanceClient) withdraw(coin string, address string, amount string, name string) (string, error) {
	resp, e := c.client.NewCreateWithdrawService().
		Coin(coin).
		Address(address).
		Amount(amount).
		Name(name).
		Do(context.Background())
	if e != nil {
		return "", e
	}
	return resp.ID, nil
}

// binanceExchange is the implementation for the Binance Exchange over its REST API
type binanceExchange struct {
	assetConverter     *model.AssetConverter
	api                binanceAPI
	delimiter          string
	ocOverridesHandler *OrderConstraintsOverridesHandler
	withdrawAddresses  map[string]string // destination label -> address
	isSimulated        bool
	l                  logger.Logger
}

// makeBinanceExchange is a factory method to make the binance exchange, binance takes a single API key
func makeBinanceExchange(apiKeys []api.ExchangeAPIKey, withdrawAddresses map[string]string, isSimulated bool, l logger.Logger) (*binanceExchange, error) {
	if len(apiKeys) != 1 {
		return nil, fmt.Errorf("binance needs exactly 1 apiKey, got %d", len(apiKeys))
	}

	client := binance.NewClient(apiKeys[0].Key, apiKeys[0].Secret)
	return makeBinanceExchangeWithAPI(&binanceClient{client: client}, withdrawAddresses, isSimulated, l), nil
}

func makeBinanceExchangeWithAPI(client binanceAPI, withdrawAddresses map[string]string, isSimulated bool, l logger.Logger) *binanceExchange {
	if withdrawAddresses == nil {
		withdrawAddresses = map[string]string{}
	}
	return &binanceExchange{
		assetConverter:     model.BinanceAssetConverter,
		api:                client,
		delimiter:          "",
		ocOverridesHandler: MakeEmptyOrderConstraintsOverridesHandler(),
		withdrawAddresses:  withdrawAddresses,
		isSimulated:        isSimulated,
		l:                  l.WithField("exchange", "binance"),
	}
}

// GetTickerPrice impl.
func (b *binanceExchange) GetTickerPrice(pairs []model.TradingPair) (map[model.TradingPair]api.Ticker, error) {
	pairsMap, e := model.TradingPairs2Strings(b.assetConverter, b.delimiter, pairs)
	if e != nil {
		return nil, e
	}

	priceResult := map[model.TradingPair]api.Ticker{}
	for _, p := range pairs {
		t, e := b.api.bookTicker(pairsMap[p])
		if e != nil {
			return nil, e
		}

		precision := b.pricePrecision(&p)
		ask, e := model.NumberFromString(t.AskPrice, precision)
		if e != nil {
			return nil, errors.Wrapf(e, "unable to parse ask price for %s", p)
		}
		bid, e := model.NumberFromString(t.BidPrice, precision)
		if e != nil {
			return nil, errors.Wrapf(e, "unable to parse bid price for %s", p)
		}
		priceResult[p] = api.Ticker{
			AskPrice: ask,
			BidPrice: bid,
		}
	}
	return priceResult, nil
}

// GetAccountBalances impl.
func (b *binanceExchange) GetAccountBalances(assetList []model.Asset) (map[model.Asset]model.Number, error) {
	account, e := b.api.account()
	if e != nil {
		return nil, e
	}

	free := map[string]string{}
	for _, bal := range account.Balances {
		free[bal.Asset] = bal.Free
	}

	m := map[model.Asset]model.Number{}
	for _, asset := range assetList {
		symbol, e := b.assetConverter.ToString(asset)
		if e != nil {
			return nil, e
		}

		s, ok := free[symbol]
		if !ok {
			m[asset] = *model.NumberFromFloat(0, precisionBalances)
			continue
		}
		bal, e := model.NumberFromString(s, precisionBalances)
		if e != nil {
			return nil, errors.Wrapf(e, "unable to parse balance for %s", asset)
		}
		m[asset] = *bal
	}
	return m, nil
}

// AddOrder impl, binance only takes market orders here
func (b *binanceExchange) AddOrder(order *model.Order) (*model.TransactionID, error) {
	if !order.OrderType.IsMarket() {
		return nil, errors.Wrapf(api.ErrNotSupported, "binance order type %s", order.OrderType)
	}
	if order.Volume == nil || !order.Volume.IsPositive() {
		return nil, fmt.Errorf("binance order volume must be positive, got %s", order.Volume)
	}

	symbol, e := order.Pair.ToString(b.assetConverter, b.delimiter)
	if e != nil {
		return nil, e
	}

	side := binance.SideTypeBuy
	if order.OrderAction.IsSell() {
		side = binance.SideTypeSell
	}

	b.l.Infof("binance is submitting order: symbol=%s, side=%s, volume=%s, simulated=%v", symbol, side, order.Volume.AsString(), b.isSimulated)
	resp, e := b.api.createMarketOrder(symbol, side, order.Volume.AsString(), b.isSimulated)
	if e != nil {
		return nil, e
	}

	if b.isSimulated {
		return model.MakeTransactionID("simulated"), nil
	}
	return model.MakeTransactionID(strconv.FormatInt(resp.OrderID, 10)), nil
}

// GetOpenOrders impl.
func (b *binanceExchange) GetOpenOrders() ([]model.OpenOrder, error) {
	resp, e := b.api.openOrders()
	if e != nil {
		return nil, e
	}

	converters := []model.AssetConverterInterface{b.assetConverter}
	orders := []model.OpenOrder{}
	for _, o := range resp {
		pair, e := model.TradingPairFromString2(converters, o.Symbol)
		if e != nil {
			return nil, errors.Wrapf(e, "error parsing symbol of open order %d", o.OrderID)
		}

		action, e := model.OrderActionFromString(string(o.Side))
		if e != nil {
			return nil, e
		}

		orderType := model.OrderTypeLimit
		var price *model.Number
		if o.Type == binance.OrderTypeMarket {
			orderType = model.OrderTypeMarket
		} else {
			price, e = model.NumberFromString(o.Price, b.pricePrecision(pair))
			if e != nil {
				return nil, e
			}
		}

		volumePrecision := b.volumePrecision(pair)
		volume, e := model.NumberFromString(o.OrigQuantity, volumePrecision)
		if e != nil {
			return nil, e
		}
		executed, e := model.NumberFromString(o.ExecutedQuantity, volumePrecision)
		if e != nil {
			return nil, e
		}

		orders = append(orders, model.OpenOrder{
			Order: model.Order{
				Pair:        pair,
				OrderAction: action,
				OrderType:   orderType,
				Price:       price,
				Volume:      volume,
				Timestamp:   model.MakeTimestamp(o.Time),
			},
			ID:             strconv.FormatInt(o.OrderID, 10),
			StartTime:      model.MakeTimestamp(o.Time),
			VolumeExecuted: executed,
		})
	}

	sort.Sort(model.OpenOrdersByID(orders))
	return orders, nil
}

// GetWithdrawInfo impl, binance has no fee estimate endpoint so only the destination is resolved
func (b *binanceExchange) GetWithdrawInfo(asset model.Asset, amountToWithdraw *model.Number, destination string) (*api.WithdrawInfo, error) {
	if _, e := b.resolveDestination(destination); e != nil {
		return nil, e
	}
	return &api.WithdrawInfo{AmountToReceive: amountToWithdraw}, nil
}

// WithdrawFunds impl.
func (b *binanceExchange) WithdrawFunds(asset model.Asset, amountToWithdraw *model.Number, destination string) (*api.WithdrawFunds, error) {
	coin, e := b.assetConverter.ToString(asset)
	if e != nil {
		return nil, e
	}

	address, e := b.resolveDestination(destination)
	if e != nil {
		return nil, e
	}

	if b.isSimulated {
		b.l.Infof("not withdrawing from Binance in simulation mode, coin=%s, amount=%s, destination=%s", coin, amountToWithdraw.AsString(), destination)
		return &api.WithdrawFunds{WithdrawalID: "simulated"}, nil
	}

	id, e := b.api.withdraw(coin, address, amountToWithdraw.AsString(), destination)
	if e != nil {
		return nil, e
	}
	return &api.WithdrawFunds{WithdrawalID: id}, nil
}

func (b *binanceExchange) resolveDestination(destination string) (string, error) {
	address, ok := b.withdrawAddresses[destination]
	if !ok || address == "" {
		return "", fmt.Errorf("withdrawal destination '%s' is not registered in WITHDRAW_ADDRESSES", destination)
	}
	return address, nil
}

// GetAssetConverter impl.
func (b *binanceExchange) GetAssetConverter() model.AssetConverterInterface {
	return b.assetConverter
}

// GetOrderConstraints impl.
func (b *binanceExchange) GetOrderConstraints(pair *model.TradingPair) *model.OrderConstraints {
	return b.ocOverridesHandler.constraintsFor(binancePrecisionMatrix, pair)
}

// OverrideOrderConstraints impl, can partially override values for specific pairs
func (b *binanceExchange) OverrideOrderConstraints(pair *model.TradingPair, override *model.OrderConstraintsOverride) {
	b.ocOverridesHandler.Upsert(pair, override)
}

func (b *binanceExchange) pricePrecision(pair *model.TradingPair) int8 {
	if oc := b.GetOrderConstraints(pair); oc != nil {
		return oc.PricePrecision
	}
	return networkingPrecision
}

func (b *binanceExchange) volumePrecision(pair *model.TradingPair) int8 {
	if oc := b.GetOrderConstraints(pair); oc != nil {
		return oc.VolumePrecision
	}
	return networkingPrecision
}

// binancePrecisionMatrix mirrors the tick size and lot size filters of the spot markets
var binancePrecisionMatrix = map[model.TradingPair]model.OrderConstraints{
	*model.MakeTradingPair(model.XRP, model.EUR):  *model.MakeOrderConstraints(5, 1, 10.0),
	*model.MakeTradingPair(model.XRP, model.USDT): *model.MakeOrderConstraints(4, 1, 10.0),
	*model.MakeTradingPair(model.XRP, model.BTC):  *model.MakeOrderConstraints(8, 0, 10.0),
	*model.MakeTradingPair(model.XLM, model.EUR):  *model.MakeOrderConstraints(5, 1, 20.0),
	*model.MakeTradingPair(model.XLM, model.USDT): *model.MakeOrderConstraints(5, 1, 20.0),
	*model.MakeTradingPair(model.BTC, model.EUR):  *model.MakeOrderConstraints(2, 6, 0.0001),
	*model.MakeTradingPair(model.BTC, model.USDT): *model.MakeOrderConstraints(2, 6, 0.0001),
	*model.MakeTradingPair(model.ETH, model.EUR):  *model.MakeOrderConstraints(2, 5, 0.001),
	*model.MakeTradingPair(model.ETH, model.USDT): *model.MakeOrderConstraints(2, 5, 0.001),
	*model.MakeTradingPair(model.LTC, model.USDT): *model.MakeOrderConstraints(2, 4, 0.01),
}
