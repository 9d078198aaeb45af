package plugins

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	krakenapi "github.com/Beldur/kraken-go-api-client"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"

	"github.com/stellar/cexdemo/api"
	"github.com/stellar/cexdemo/model"
	"github.com/stellar/cexdemo/support/logger"
	"github.com/stellar/cexdemo/support/networking"
)

// ensure that krakenExchange conforms to the Exchange interface
var _ api.Exchange = &krakenExchange{}

const precisionBalances = 10

// krakenAPI is the part of the kraken client used here, Query covers the funding methods that have no typed call
type krakenAPI interface {
	Ticker(pairs ...string) (*krakenapi.TickerResponse, error)
	Balance() (*krakenapi.BalanceResponse, error)
	AddOrder(pair string, direction string, orderType string, volume string, args map[string]string) (*krakenapi.AddOrderResponse, error)
	OpenOrders(args map[string]string) (*krakenapi.OpenOrdersResponse, error)
	Query(method string, data map[string]string) (interface{}, error)
}

// krakenExchange is the implementation for the Kraken Exchange
type krakenExchange struct {
	assetConverter           *model.AssetConverter
	assetConverterOpenOrders *model.AssetConverter // kraken uses different symbols when fetching open orders!
	apis                     []krakenAPI
	apiNextIndex             uint8
	delimiter                string
	ocOverridesHandler       *OrderConstraintsOverridesHandler
	isSimulated              bool // will validate orders and withdrawals without executing them if this is true
	l                        logger.Logger
}

// makeKrakenExchange is a factory method to make the kraken exchange
func makeKrakenExchange(apiKeys []api.ExchangeAPIKey, isSimulated bool, l logger.Logger) (*krakenExchange, error) {
	if len(apiKeys) == 0 || len(apiKeys) > math.MaxUint8 {
		return nil, fmt.Errorf("invalid number of apiKeys: %d", len(apiKeys))
	}

	krakenAPIs := []krakenAPI{}
	for _, apiKey := range apiKeys {
		krakenAPIs = append(krakenAPIs, krakenapi.New(apiKey.Key, apiKey.Secret))
	}
	return makeKrakenExchangeWithAPIs(krakenAPIs, isSimulated, l), nil
}

func makeKrakenExchangeWithAPIs(apis []krakenAPI, isSimulated bool, l logger.Logger) *krakenExchange {
	return &krakenExchange{
		assetConverter:           model.KrakenAssetConverter,
		assetConverterOpenOrders: model.KrakenAssetConverterOpenOrders,
		apis:                     apis,
		apiNextIndex:             0,
		delimiter:                "",
		ocOverridesHandler:       MakeEmptyOrderConstraintsOverridesHandler(),
		isSimulated:              isSimulated,
		l:                        l.WithField("exchange", "kraken"),
	}
}

// nextAPI rotates the API key being used so we can overcome rate limit issues
func (k *krakenExchange) nextAPI() krakenAPI {
	k.l.Infof("returning kraken API key at index %d", k.apiNextIndex)
	api := k.apis[k.apiNextIndex]
	// rotate key for the next call
	k.apiNextIndex = (k.apiNextIndex + 1) % uint8(len(k.apis))
	return api
}

// GetTickerPrice impl.
func (k *krakenExchange) GetTickerPrice(pairs []model.TradingPair) (map[model.TradingPair]api.Ticker, error) {
	pairsMap, e := model.TradingPairs2Strings(k.assetConverter, k.delimiter, pairs)
	if e != nil {
		return nil, e
	}

	resp, e := k.nextAPI().Ticker(values(pairsMap)...)
	if e != nil {
		return nil, e
	}
	if resp == nil {
		return nil, fmt.Errorf("empty response from Ticker")
	}

	priceResult := map[model.TradingPair]api.Ticker{}
	for _, p := range pairs {
		pairTickerInfo, e := lookupPairTickerInfo(resp, pairsMap[p])
		if e != nil {
			return nil, e
		}

		ticker, e := k.parseTicker(&p, pairTickerInfo)
		if e != nil {
			return nil, errors.Wrapf(e, "unable to parse ticker for pair %s", p)
		}
		priceResult[p] = *ticker
	}
	return priceResult, nil
}

// lookupPairTickerInfo reads the field named after the pair, the client decodes one field per pair and has no entry for pairs it does not know
func lookupPairTickerInfo(resp *krakenapi.TickerResponse, pairString string) (krakenapi.PairTickerInfo, error) {
	f := reflect.Indirect(reflect.ValueOf(resp)).FieldByName(pairString)
	if !f.IsValid() {
		return krakenapi.PairTickerInfo{}, fmt.Errorf("pair %s missing from Ticker response", pairString)
	}

	info, ok := f.Interface().(krakenapi.PairTickerInfo)
	if !ok {
		return krakenapi.PairTickerInfo{}, fmt.Errorf("could not read ticker info for pair %s of type %s", pairString, f.Type())
	}
	return info, nil
}

func (k *krakenExchange) parseTicker(pair *model.TradingPair, info krakenapi.PairTickerInfo) (*api.Ticker, error) {
	pricePrecision := k.pricePrecision(pair)

	ask, e := firstPrice(info.Ask, "ask", pricePrecision)
	if e != nil {
		return nil, e
	}
	bid, e := firstPrice(info.Bid, "bid", pricePrecision)
	if e != nil {
		return nil, e
	}
	last, e := firstPrice(info.Close, "last trade", pricePrecision)
	if e != nil {
		return nil, e
	}

	return &api.Ticker{
		AskPrice:  ask,
		BidPrice:  bid,
		LastPrice: last,
	}, nil
}

// firstPrice parses the price out of kraken's [price, volume, ...] arrays
func firstPrice(values []string, name string, precision int8) (*model.Number, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("no %s price in Ticker response", name)
	}

	n, e := model.NumberFromString(values[0], precision)
	if e != nil {
		return nil, errors.Wrapf(e, "unable to parse %s price '%s'", name, values[0])
	}
	return n, nil
}

// values gives you the values of a map in a stable order
func values(m map[model.TradingPair]string) []string {
	values := []string{}
	for _, v := range m {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// GetAccountBalances impl.
func (k *krakenExchange) GetAccountBalances(assetList []model.Asset) (map[model.Asset]model.Number, error) {
	balanceResponse, e := k.nextAPI().Balance()
	if e != nil {
		return nil, e
	}
	if balanceResponse == nil {
		return nil, fmt.Errorf("empty response from Balance")
	}

	m := map[model.Asset]model.Number{}
	for _, asset := range assetList {
		krakenAssetString, e := k.assetConverter.ToString(asset)
		if e != nil {
			// discard partially built map for now
			return nil, e
		}

		// kraken omits assets that were never held, which leaves the field at 0
		bal, e := getFieldValue(balanceResponse, krakenAssetString)
		if e != nil {
			return nil, e
		}
		m[asset] = *model.NumberFromFloat(bal, precisionBalances)
	}
	return m, nil
}

func getFieldValue(object *krakenapi.BalanceResponse, fieldName string) (float64, error) {
	f := reflect.Indirect(reflect.ValueOf(object)).FieldByName(fieldName)
	if !f.IsValid() {
		return 0, fmt.Errorf("the kraken client does not report balances for asset %s", fieldName)
	}

	switch f.Kind() {
	case reflect.Float32, reflect.Float64:
		return f.Float(), nil
	default:
		return 0, fmt.Errorf("could not read balance field %s of type %s", fieldName, f.Type())
	}
}

// AddOrder impl.
func (k *krakenExchange) AddOrder(order *model.Order) (*model.TransactionID, error) {
	pairStr, e := order.Pair.ToString(k.assetConverter, k.delimiter)
	if e != nil {
		return nil, e
	}

	orderConstraints := k.GetOrderConstraints(order.Pair)
	if orderConstraints == nil {
		return nil, fmt.Errorf("krakenExchange could not find orderConstraints for trading pair %s", order.Pair)
	}
	if order.Volume == nil || !order.Volume.IsPositive() {
		return nil, fmt.Errorf("kraken order volume must be positive, got %s", order.Volume)
	}
	if order.Volume.Precision() > orderConstraints.VolumePrecision {
		return nil, fmt.Errorf("kraken volume precision can be a maximum of %d, got %d, value = %.12f", orderConstraints.VolumePrecision, order.Volume.Precision(), order.Volume.AsFloat())
	}

	args := map[string]string{}
	if order.OrderType.IsLimit() {
		if order.Price == nil {
			return nil, fmt.Errorf("kraken limit orders need a price")
		}
		if order.Price.Precision() > orderConstraints.PricePrecision {
			return nil, fmt.Errorf("kraken price precision can be a maximum of %d, got %d, value = %.12f", orderConstraints.PricePrecision, order.Price.Precision(), order.Price.AsFloat())
		}
		args["price"] = order.Price.AsString()
	}
	if k.isSimulated {
		// kraken checks the inputs but does not submit the order
		args["validate"] = "true"
	}

	k.l.Infof("kraken is submitting order: pair=%s, orderAction=%s, orderType=%s, volume=%s, simulated=%v",
		pairStr, order.OrderAction, order.OrderType, order.Volume.AsString(), k.isSimulated)
	resp, e := k.nextAPI().AddOrder(
		pairStr,
		order.OrderAction.String(),
		order.OrderType.String(),
		order.Volume.AsString(),
		args,
	)
	if e != nil {
		return nil, e
	}

	if k.isSimulated {
		return model.MakeTransactionID("simulated"), nil
	}
	if resp == nil {
		return nil, fmt.Errorf("empty response from AddOrder")
	}

	// expected case for production orders
	if len(resp.TransactionIds) == 1 {
		return model.MakeTransactionID(resp.TransactionIds[0]), nil
	}

	if len(resp.TransactionIds) > 1 {
		return nil, fmt.Errorf("there was more than 1 transctionId: %s", resp.TransactionIds)
	}

	return nil, fmt.Errorf("no transactionIds returned from order creation")
}

// GetOpenOrders impl.
func (k *krakenExchange) GetOpenOrders() ([]model.OpenOrder, error) {
	openOrdersResponse, e := k.nextAPI().OpenOrders(map[string]string{})
	if e != nil {
		return nil, e
	}
	if openOrdersResponse == nil {
		return nil, fmt.Errorf("empty response from OpenOrders")
	}

	// kraken uses different symbols when fetching open orders!
	assetConverters := []model.AssetConverterInterface{k.assetConverterOpenOrders, k.assetConverter, model.Display}
	orders := []model.OpenOrder{}
	for ID, o := range openOrdersResponse.Open {
		openOrder, e := k.parseOpenOrder(ID, o, assetConverters)
		if e != nil {
			return nil, errors.Wrapf(e, "error parsing open order %s in krakenExchange#GetOpenOrders", ID)
		}
		orders = append(orders, *openOrder)
	}

	sort.Sort(model.OpenOrdersByID(orders))
	return orders, nil
}

func (k *krakenExchange) parseOpenOrder(ID string, o krakenapi.Order, assetConverters []model.AssetConverterInterface) (*model.OpenOrder, error) {
	pair, e := model.TradingPairFromString2(assetConverters, o.Description.AssetPair)
	if e != nil {
		return nil, e
	}

	action, e := model.OrderActionFromString(o.Description.Type)
	if e != nil {
		return nil, e
	}
	orderType, e := model.OrderTypeFromString(o.Description.OrderType)
	if e != nil {
		return nil, e
	}

	volumePrecision := k.volumePrecision(pair)

	var price *model.Number
	if orderType.IsLimit() {
		price, e = model.NumberFromString(o.Description.PrimaryPrice, k.pricePrecision(pair))
		if e != nil {
			return nil, errors.Wrap(e, "unable to parse price")
		}
	}

	volume, e := model.NumberFromString(o.Volume, volumePrecision)
	if e != nil {
		return nil, errors.Wrap(e, "unable to parse volume")
	}

	return &model.OpenOrder{
		Order: model.Order{
			Pair:        pair,
			OrderAction: action,
			OrderType:   orderType,
			Price:       price,
			Volume:      volume,
			Timestamp:   krakenTime(float64(o.OpenTime)),
		},
		ID:             ID,
		StartTime:      krakenTime(float64(o.StartTime)),
		ExpireTime:     krakenTime(float64(o.ExpireTime)),
		VolumeExecuted: model.NumberFromFloat(float64(o.VolumeExecuted), volumePrecision),
	}, nil
}

// krakenTime converts kraken's fractional unix seconds to a Timestamp, nil when zero
func krakenTime(seconds float64) *model.Timestamp {
	if seconds == 0 {
		return nil
	}
	return model.MakeTimestamp(int64(seconds * 1000))
}

// GetWithdrawInfo impl.
func (k *krakenExchange) GetWithdrawInfo(
	asset model.Asset,
	amountToWithdraw *model.Number,
	destination string,
) (*api.WithdrawInfo, error) {
	krakenAsset, e := k.assetConverter.ToString(asset)
	if e != nil {
		return nil, e
	}

	withdrawKey, e := withdrawKeyFor(destination)
	if e != nil {
		return nil, e
	}
	resp, e := k.nextAPI().Query(
		"WithdrawInfo",
		map[string]string{
			"asset":  krakenAsset,
			"key":    withdrawKey,
			"amount": amountToWithdraw.AsString(),
		},
	)
	if e != nil {
		return nil, e
	}

	return parseWithdrawInfoResponse(resp, amountToWithdraw)
}

// withdrawKeyFor returns the kraken withdrawal key, which is the label the address was registered under on the account
func withdrawKeyFor(destination string) (string, error) {
	key := strings.TrimSpace(destination)
	if key == "" {
		return "", fmt.Errorf("withdrawal destination label cannot be empty")
	}
	return key, nil
}

func parseWithdrawInfoResponse(resp interface{}, amountToWithdraw *model.Number) (*api.WithdrawInfo, error) {
	switch m := resp.(type) {
	case map[string]interface{}:
		info, e := parseWithdrawInfo(m)
		if e != nil {
			return nil, e
		}
		if info.limit != nil && info.limit.AsDecimal().LessThan(amountToWithdraw.AsDecimal()) {
			return nil, api.MakeErrWithdrawAmountAboveLimit(amountToWithdraw, info.limit)
		}
		if info.fee != nil && info.fee.AsDecimal().GreaterThanOrEqual(amountToWithdraw.AsDecimal()) {
			return nil, api.MakeErrWithdrawAmountInvalid(amountToWithdraw, info.fee)
		}

		return &api.WithdrawInfo{
			AmountToReceive: info.amount,
			Fee:             info.fee,
			Limit:           info.limit,
		}, nil
	default:
		return nil, fmt.Errorf("could not parse response type from WithdrawInfo: %s", reflect.TypeOf(m))
	}
}

type withdrawInfo struct {
	limit  *model.Number
	fee    *model.Number
	amount *model.Number
}

func parseWithdrawInfo(m map[string]interface{}) (*withdrawInfo, error) {
	// limit
	limit, e := networking.ParseNumber(m, "limit", "WithdrawInfo")
	if e != nil {
		return nil, e
	}

	// fee
	fee, e := networking.ParseNumber(m, "fee", "WithdrawInfo")
	if e != nil {
		if !strings.HasPrefix(e.Error(), networking.PrefixFieldNotFound) {
			return nil, e
		}
		// fee may be missing in which case it's null
		fee = nil
	}

	// amount
	amount, e := networking.ParseNumber(m, "amount", "WithdrawInfo")
	if e != nil {
		return nil, e
	}

	return &withdrawInfo{
		limit:  limit,
		fee:    fee,
		amount: amount,
	}, nil
}

// WithdrawFunds impl.
func (k *krakenExchange) WithdrawFunds(
	asset model.Asset,
	amountToWithdraw *model.Number,
	destination string,
) (*api.WithdrawFunds, error) {
	if k.isSimulated {
		// kraken has no validate flag for withdrawals so only the limits and fees are checked
		_, e := k.GetWithdrawInfo(asset, amountToWithdraw, destination)
		if e != nil {
			return nil, e
		}
		k.l.Infof("not withdrawing from Kraken in simulation mode, asset=%s, amount=%s, destination=%s", asset, amountToWithdraw.AsString(), destination)
		return &api.WithdrawFunds{WithdrawalID: "simulated"}, nil
	}

	krakenAsset, e := k.assetConverter.ToString(asset)
	if e != nil {
		return nil, e
	}

	withdrawKey, e := withdrawKeyFor(destination)
	if e != nil {
		return nil, e
	}
	resp, e := k.nextAPI().Query(
		"Withdraw",
		map[string]string{
			"asset":  krakenAsset,
			"key":    withdrawKey,
			"amount": amountToWithdraw.AsString(),
		},
	)
	if e != nil {
		return nil, e
	}

	return parseWithdrawResponse(resp)
}

// krakenWithdrawResponse is the result of the Withdraw method
type krakenWithdrawResponse struct {
	RefID string `mapstructure:"refid"`
}

func parseWithdrawResponse(resp interface{}) (*api.WithdrawFunds, error) {
	m, ok := resp.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("could not parse response type from Withdraw: %s", reflect.TypeOf(resp))
	}

	var withdrawResponse krakenWithdrawResponse
	e := mapstructure.Decode(m, &withdrawResponse)
	if e != nil {
		return nil, errors.Wrap(e, "could not decode response from Withdraw")
	}
	if withdrawResponse.RefID == "" {
		return nil, fmt.Errorf("%s: field 'refid' in response of Withdraw", networking.PrefixFieldNotFound)
	}

	return &api.WithdrawFunds{
		WithdrawalID: withdrawResponse.RefID,
	}, nil
}

// GetAssetConverter impl.
func (k *krakenExchange) GetAssetConverter() model.AssetConverterInterface {
	return k.assetConverter
}

// GetOrderConstraints impl, returns nil for pairs that are neither listed nor completely overriden
func (k *krakenExchange) GetOrderConstraints(pair *model.TradingPair) *model.OrderConstraints {
	return k.ocOverridesHandler.constraintsFor(krakenPrecisionMatrix, pair)
}

// OverrideOrderConstraints impl, can partially override values for specific pairs
func (k *krakenExchange) OverrideOrderConstraints(pair *model.TradingPair, override *model.OrderConstraintsOverride) {
	k.ocOverridesHandler.Upsert(pair, override)
}

func (k *krakenExchange) pricePrecision(pair *model.TradingPair) int8 {
	if oc := k.GetOrderConstraints(pair); oc != nil {
		return oc.PricePrecision
	}
	return networkingPrecision
}

func (k *krakenExchange) volumePrecision(pair *model.TradingPair) int8 {
	if oc := k.GetOrderConstraints(pair); oc != nil {
		return oc.VolumePrecision
	}
	return networkingPrecision
}

// networkingPrecision is the precision numbers are parsed with when the pair has no known constraints
const networkingPrecision = 10

// krakenPrecisionMatrix describes the price and volume precision and min base volume for each trading pair
// taken from this URL: https://support.kraken.com/hc/en-us/articles/360001389366-Price-and-volume-decimal-precision
var krakenPrecisionMatrix = map[model.TradingPair]model.OrderConstraints{
	*model.MakeTradingPair(model.XRP, model.EUR): *model.MakeOrderConstraints(5, 8, 30.0),
	*model.MakeTradingPair(model.XRP, model.USD): *model.MakeOrderConstraints(5, 8, 30.0),
	*model.MakeTradingPair(model.XRP, model.BTC): *model.MakeOrderConstraints(8, 8, 30.0),
	*model.MakeTradingPair(model.XLM, model.EUR): *model.MakeOrderConstraints(6, 8, 30.0),
	*model.MakeTradingPair(model.XLM, model.USD): *model.MakeOrderConstraints(6, 8, 30.0),
	*model.MakeTradingPair(model.XLM, model.BTC): *model.MakeOrderConstraints(8, 8, 30.0),
	*model.MakeTradingPair(model.BTC, model.EUR): *model.MakeOrderConstraints(1, 8, 0.002),
	*model.MakeTradingPair(model.BTC, model.USD): *model.MakeOrderConstraints(1, 8, 0.002),
	*model.MakeTradingPair(model.ETH, model.EUR): *model.MakeOrderConstraints(2, 8, 0.02),
	*model.MakeTradingPair(model.ETH, model.USD): *model.MakeOrderConstraints(2, 8, 0.02),
	*model.MakeTradingPair(model.ETH, model.BTC): *model.MakeOrderConstraints(5, 8, 0.02),
	*model.MakeTradingPair(model.LTC, model.EUR): *model.MakeOrderConstraints(2, 8, 0.1),
	*model.MakeTradingPair(model.LTC, model.USD): *model.MakeOrderConstraints(2, 8, 0.1),
}
