package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/stellar/cexdemo/model"
)

// ExchangeAPIKey specifies an API key for an exchange
type ExchangeAPIKey struct {
	Key    string
	Secret string
}

// Account allows you to access key account functions
type Account interface {
	GetAccountBalances(assetList []model.Asset) (map[model.Asset]model.Number, error)
}

// Ticker encapsulates all the data for a given Trading Pair
type Ticker struct {
	AskPrice  *model.Number
	BidPrice  *model.Number
	LastPrice *model.Number
}

// String is the stringer function, prices the exchange did not report are left out
func (t Ticker) String() string {
	fields := []string{}
	for _, f := range []struct {
		name  string
		price *model.Number
	}{
		{"ask", t.AskPrice},
		{"bid", t.BidPrice},
		{"last", t.LastPrice},
	} {
		if f.price != nil {
			fields = append(fields, fmt.Sprintf("%s=%s", f.name, f.price.AsString()))
		}
	}
	return fmt.Sprintf("Ticker[%s]", strings.Join(fields, ", "))
}

// TickerAPI is the interface we use as a generic API for getting ticker data from any crypto exchange
type TickerAPI interface {
	GetTickerPrice(pairs []model.TradingPair) (map[model.TradingPair]Ticker, error)
}

// TradeAPI is the interface we use as a generic API for trading on any crypto exchange
type TradeAPI interface {
	// AddOrder submits the order, market orders are sized in units of the base asset
	AddOrder(order *model.Order) (*model.TransactionID, error)

	// GetOpenOrders lists all open orders for the account, sorted by ID
	GetOpenOrders() ([]model.OpenOrder, error)
}

// WithdrawInfo is the result of a GetWithdrawInfo call
type WithdrawInfo struct {
	AmountToReceive *model.Number // amount that you will receive after any fees is taken (excludes fees charged on the deposit side)
	Fee             *model.Number
	Limit           *model.Number
}

// WithdrawFunds is the result of a WithdrawFunds call
type WithdrawFunds struct {
	WithdrawalID string
}

// WithdrawAPI is defined by anything where you can withdraw funds.
type WithdrawAPI interface {
	/*
		Input:
			asset - asset you want to withdraw
			amountToWithdraw - amount you want deducted from your account
			destination - label of the withdrawal address registered with the exchange, e.g. "Binance"
		Output:
			WithdrawInfo - details on how to perform the withdrawal
			error - ErrWithdrawAmountAboveLimit, ErrWithdrawAmountInvalid, or any other error
	*/
	GetWithdrawInfo(asset model.Asset, amountToWithdraw *model.Number, destination string) (*WithdrawInfo, error)

	/*
		Input:
			asset - asset you want to withdraw
			amountToWithdraw - amount you want deducted from your account (fees will be deducted from here, use GetWithdrawInfo for fee estimate)
			destination - label of the withdrawal address registered with the exchange
		Output:
			WithdrawFunds - result of the withdrawal
			error - any error
	*/
	WithdrawFunds(
		asset model.Asset,
		amountToWithdraw *model.Number,
		destination string,
	) (*WithdrawFunds, error)
}

// ErrNotSupported is returned by integrations that cannot serve a capability
var ErrNotSupported = errors.New("operation not supported by this exchange")

// ErrWithdrawAmountAboveLimit error type
type ErrWithdrawAmountAboveLimit error

// MakeErrWithdrawAmountAboveLimit is a factory method
func MakeErrWithdrawAmountAboveLimit(amount *model.Number, limit *model.Number) ErrWithdrawAmountAboveLimit {
	return fmt.Errorf("withdraw amount (%s) is greater than limit (%s)", amount.AsString(), limit.AsString())
}

// ErrWithdrawAmountInvalid error type
type ErrWithdrawAmountInvalid error

// MakeErrWithdrawAmountInvalid is a factory method
func MakeErrWithdrawAmountInvalid(amountToWithdraw *model.Number, fee *model.Number) ErrWithdrawAmountInvalid {
	return fmt.Errorf("amountToWithdraw is invalid: %s, fee: %s", amountToWithdraw.AsString(), fee.AsString())
}

// Exchange is the interface we use as a generic API for all crypto exchanges
type Exchange interface {
	Account
	TickerAPI
	TradeAPI
	WithdrawAPI

	// GetAssetConverter returns the converter for the exchange's asset symbols
	GetAssetConverter() model.AssetConverterInterface

	// GetOrderConstraints returns the precision and minimums applied to orders on the pair
	GetOrderConstraints(pair *model.TradingPair) *model.OrderConstraints
}
