package driver

import (
	"fmt"
	"io"
	"strings"

	"github.com/stellar/cexdemo/api"
	"github.com/stellar/cexdemo/model"
	"github.com/stellar/cexdemo/support/logger"
)

// names of the steps the driver knows how to run
const (
	StepTicker   = "ticker"
	StepBalance  = "balance"
	StepBuy      = "buy"
	StepBuyQuote = "buyquote"
	StepOrders   = "orders"
	StepWithdraw = "withdraw"
)

// Driver calls the exchange operations one after the other and reports every outcome on the console.
// A failed operation is reported and the driver moves on to the next one.
type Driver struct {
	exchange            api.Exchange
	pair                *model.TradingPair
	balanceAssets       []model.Asset
	buyAmount           *model.Number
	payAmount           *model.Number
	withdrawAsset       model.Asset
	withdrawAmount      *model.Number
	withdrawDestination string
	out                 io.Writer
	l                   logger.Logger
}

// MakeDriver is the factory method, the config must have been initialized
func MakeDriver(exchange api.Exchange, config *DemoConfig, out io.Writer, l logger.Logger) *Driver {
	return &Driver{
		exchange:            exchange,
		pair:                config.pair,
		balanceAssets:       config.balanceAssets,
		buyAmount:           config.buyAmount,
		payAmount:           config.payAmount,
		withdrawAsset:       config.withdrawAsset,
		withdrawAmount:      config.withdrawAmount,
		withdrawDestination: config.WithdrawDestination,
		out:                 out,
		l:                   l,
	}
}

type stepFn func(d *Driver)

// steps is the table of all the operations, in the order they are listed to the user
var steps = []struct {
	name        string
	description string
	run         stepFn
}{
	{StepTicker, "print the ticker of the trading pair", (*Driver).Ticker},
	{StepBalance, "print the balance of each of the balance assets", (*Driver).Balance},
	{StepBuy, "market buy a fixed amount of the base asset", (*Driver).Buy},
	{StepBuyQuote, "market buy the base asset paying a fixed amount of the quote asset", (*Driver).BuyWithQuote},
	{StepOrders, "list the open orders of the account", (*Driver).ListOpenOrders},
	{StepWithdraw, "withdraw to a registered destination", (*Driver).Withdraw},
}

// StepNames returns the names of all the steps
func StepNames() []string {
	names := []string{}
	for _, s := range steps {
		names = append(names, s.name)
	}
	return names
}

// StepDescription returns the description of the step, empty if the step is unknown
func StepDescription(name string) string {
	if s, ok := lookupStep(name); ok {
		return s
	}
	return ""
}

func lookupStep(name string) (string, bool) {
	for _, s := range steps {
		if s.name == name {
			return s.description, true
		}
	}
	return "", false
}

// ValidateSteps returns an error naming the first step that is not known
func ValidateSteps(names []string) error {
	for _, n := range names {
		if _, ok := lookupStep(n); !ok {
			return fmt.Errorf("unknown step '%s', valid steps are: %s", n, strings.Join(StepNames(), ", "))
		}
	}
	return nil
}

// Run executes the steps strictly in order. Unknown steps are rejected before anything runs, operation failures never stop the run.
func (d *Driver) Run(names []string) error {
	if e := ValidateSteps(names); e != nil {
		return e
	}

	for _, n := range names {
		for _, s := range steps {
			if s.name != n {
				continue
			}
			d.l.WithField("step", n).Info("running step")
			s.run(d)
		}
	}
	return nil
}

func (d *Driver) printf(format string, args ...interface{}) {
	fmt.Fprintf(d.out, format+"\n", args...)
}

func (d *Driver) logFailure(step string, e error) {
	d.l.WithField("step", step).Errorf("operation failed: %s", e)
}

// Ticker prints the ticker of the trading pair
func (d *Driver) Ticker() {
	ticker, e := d.getTicker()
	if e != nil {
		d.logFailure(StepTicker, e)
		d.printf("Error: %s", e)
		return
	}
	d.printf("Ticker: %s", ticker)
}

func (d *Driver) getTicker() (*api.Ticker, error) {
	m, e := d.exchange.GetTickerPrice([]model.TradingPair{*d.pair})
	if e != nil {
		return nil, e
	}

	ticker, ok := m[*d.pair]
	if !ok {
		return nil, fmt.Errorf("ticker for %s missing from response", d.pair)
	}
	return &ticker, nil
}

// Balance prints one line per requested asset, in the order the assets were requested
func (d *Driver) Balance() {
	balances, e := d.exchange.GetAccountBalances(d.balanceAssets)
	if e != nil {
		d.logFailure(StepBalance, e)
		d.printf("Error: %s", e)
		return
	}

	lines := []string{"Balance."}
	for _, a := range d.balanceAssets {
		bal, ok := balances[a]
		if !ok {
			e := fmt.Errorf("balance for %s missing from response", a)
			d.logFailure(StepBalance, e)
			d.printf("Error: %s", e)
			return
		}
		lines = append(lines, fmt.Sprintf("\t%s: %s", a, bal.AsString()))
	}
	d.printf("%s", strings.Join(lines, "\n"))
}

// Buy places a market order for a fixed amount of the base asset, sent at the volume precision of the pair
func (d *Driver) Buy() {
	baseAmount, e := AmountToPrecision(d.buyAmount, d.volumePrecision())
	if e != nil {
		d.logFailure(StepBuy, e)
		d.printf("Order failed: %s", e)
		return
	}
	d.placeMarketBuy(StepBuy, baseAmount)
}

// volumePrecision is the volume precision the exchange accepts for the pair, the config precision when it has no constraints
func (d *Driver) volumePrecision() int8 {
	if oc := d.exchange.GetOrderConstraints(d.pair); oc != nil {
		return oc.VolumePrecision
	}
	return volumePrecisionConfig
}

// AmountToPrecision restates the amount at the given precision, failing when that would change its value
func AmountToPrecision(amount *model.Number, precision int8) (*model.Number, error) {
	if amount == nil || !amount.IsPositive() {
		return nil, fmt.Errorf("amount needs to be positive, was %s", amount)
	}

	converted := model.NumberFromDecimal(amount.AsDecimal(), precision)
	if !converted.AsDecimal().Equal(amount.AsDecimal()) {
		return nil, fmt.Errorf("amount %s has more digits than the volume precision %d allows", amount.AsDecimal().String(), precision)
	}
	return converted, nil
}

// BuyWithQuote buys the base asset paying a fixed amount of the quote asset, using the current ask price to size the order.
// The price can move between the ticker read and the order being filled.
func (d *Driver) BuyWithQuote() {
	ticker, e := d.getTicker()
	if e != nil {
		d.logFailure(StepBuyQuote, e)
		d.printf("Error: %s", e)
		return
	}

	baseAmount, e := QuoteToBase(d.payAmount, ticker.AskPrice, d.volumePrecision())
	if e != nil {
		d.logFailure(StepBuyQuote, e)
		d.printf("Order failed: %s", e)
		return
	}
	d.l.WithField("step", StepBuyQuote).Infof("paying %s %s at ask %s buys %s %s", d.payAmount.AsString(), d.pair.Quote, ticker.AskPrice.AsString(), baseAmount.AsString(), d.pair.Base)

	d.placeMarketBuy(StepBuyQuote, baseAmount)
}

func (d *Driver) placeMarketBuy(step string, baseAmount *model.Number) {
	order := model.MakeMarketOrder(d.pair, model.OrderActionBuy, baseAmount)
	txID, e := d.exchange.AddOrder(order)
	if e != nil {
		d.logFailure(step, e)
		d.printf("Order failed: %s", e)
		return
	}
	d.printf("Order: %s", txID)
}

// QuoteToBase converts an amount of the quote asset to the amount of the base asset it buys at the ask price,
// truncated to the volume precision so the order never costs more than the quote amount at that price
func QuoteToBase(quoteAmount *model.Number, askPrice *model.Number, volumePrecision int8) (*model.Number, error) {
	if quoteAmount == nil || !quoteAmount.IsPositive() {
		return nil, fmt.Errorf("quote amount needs to be positive, was %s", quoteAmount)
	}
	if askPrice == nil || !askPrice.IsPositive() {
		return nil, fmt.Errorf("ask price needs to be positive, was %s", askPrice)
	}

	baseAmount := quoteAmount.DivideToPrecision(*askPrice, volumePrecision)
	if !baseAmount.IsPositive() {
		return nil, fmt.Errorf("quote amount %s is too small to buy anything at ask price %s with volume precision %d", quoteAmount.AsString(), askPrice.AsString(), volumePrecision)
	}
	return baseAmount, nil
}

// ListOpenOrders prints one line per open order, nothing when there are none
func (d *Driver) ListOpenOrders() {
	orders, e := d.exchange.GetOpenOrders()
	if e != nil {
		d.logFailure(StepOrders, e)
		d.printf("ListOpenOrders failed: %s", e)
		return
	}

	d.l.WithField("step", StepOrders).Infof("fetched %d open orders", len(orders))
	for _, o := range orders {
		d.printf("Order: %s", o)
	}
}

// Withdraw withdraws to the destination label registered with the exchange
func (d *Driver) Withdraw() {
	result, e := d.exchange.WithdrawFunds(d.withdrawAsset, d.withdrawAmount, d.withdrawDestination)
	if e != nil {
		d.logFailure(StepWithdraw, e)
		d.printf("WithdrawFunds failed: %s", e)
		return
	}
	d.printf("WithdrawFunds completed. Operation ID: %s", result.WithdrawalID)
}
