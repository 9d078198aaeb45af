package model

import (
	"fmt"
	"strings"

	"github.com/stellar/cexdemo/support/utils"
)

// OrderAction is the action of buy / sell
type OrderAction bool

// OrderActionBuy and OrderActionSell are the two actions
const (
	OrderActionBuy  OrderAction = false
	OrderActionSell OrderAction = true
)

// IsBuy returns true for buy actions
func (a OrderAction) IsBuy() bool {
	return a == OrderActionBuy
}

// IsSell returns true for sell actions
func (a OrderAction) IsSell() bool {
	return a == OrderActionSell
}

// String is the stringer function
func (a OrderAction) String() string {
	if a == OrderActionBuy {
		return "buy"
	}
	return "sell"
}

var orderActionMap = map[string]OrderAction{
	"buy":  OrderActionBuy,
	"sell": OrderActionSell,
}

// OrderActionFromString is a convenience to convert from common strings to the corresponding OrderAction
func OrderActionFromString(s string) (OrderAction, error) {
	a, ok := orderActionMap[strings.ToLower(s)]
	if !ok {
		return OrderActionBuy, fmt.Errorf("unrecognized order action '%s'", s)
	}
	return a, nil
}

// OrderType represents a type of an order, example market, limit, etc.
type OrderType int8

// These are the available order types
const (
	OrderTypeMarket OrderType = 0
	OrderTypeLimit  OrderType = 1
)

// IsMarket returns true for market orders
func (o OrderType) IsMarket() bool {
	return o == OrderTypeMarket
}

// IsLimit returns true for limit orders
func (o OrderType) IsLimit() bool {
	return o == OrderTypeLimit
}

// String is the stringer function
func (o OrderType) String() string {
	if o == OrderTypeMarket {
		return "market"
	} else if o == OrderTypeLimit {
		return "limit"
	}
	return "error, unrecognized order type"
}

var orderTypeMap = map[string]OrderType{
	"market": OrderTypeMarket,
	"limit":  OrderTypeLimit,
}

// OrderTypeFromString is a convenience to convert from common strings to the corresponding OrderType
func OrderTypeFromString(s string) (OrderType, error) {
	o, ok := orderTypeMap[strings.ToLower(s)]
	if !ok {
		return -1, fmt.Errorf("unrecognized order type '%s'", s)
	}
	return o, nil
}

// Order represents an order on an exchange. Price is nil for market orders that have not been filled yet.
type Order struct {
	Pair        *TradingPair
	OrderAction OrderAction
	OrderType   OrderType
	Price       *Number
	Volume      *Number
	Timestamp   *Timestamp
}

// MakeMarketOrder is a factory method for a market order sized in units of the base asset
func MakeMarketOrder(pair *TradingPair, action OrderAction, volume *Number) *Order {
	return &Order{
		Pair:        pair,
		OrderAction: action,
		OrderType:   OrderTypeMarket,
		Price:       nil,
		Volume:      volume,
	}
}

// String is the stringer function
func (o Order) String() string {
	return fmt.Sprintf("Order[pair=%s, action=%s, type=%s, price=%s, vol=%s, ts=%s]",
		utils.CheckedString(o.Pair),
		o.OrderAction,
		o.OrderType,
		utils.CheckedString(o.Price),
		utils.CheckedString(o.Volume),
		utils.CheckedString(o.Timestamp),
	)
}

// TransactionID is typed for the concept of a transaction ID of an order
type TransactionID string

// String is the stringer function
func (t *TransactionID) String() string {
	return string(*t)
}

// MakeTransactionID is a factory method for convenience
func MakeTransactionID(s string) *TransactionID {
	t := TransactionID(s)
	return &t
}

// OpenOrder represents an open order for a trading account
type OpenOrder struct {
	Order
	ID             string
	StartTime      *Timestamp
	ExpireTime     *Timestamp
	VolumeExecuted *Number
}

// String is the stringer function
func (o OpenOrder) String() string {
	return fmt.Sprintf("OpenOrder[order=%s, ID=%s, startTime=%s, expireTime=%s, volumeExecuted=%s]",
		o.Order.String(),
		o.ID,
		utils.CheckedString(o.StartTime),
		utils.CheckedString(o.ExpireTime),
		utils.CheckedString(o.VolumeExecuted),
	)
}

// OpenOrdersByID sorts open orders by ID so output is stable across calls
type OpenOrdersByID []OpenOrder

func (o OpenOrdersByID) Len() int           { return len(o) }
func (o OpenOrdersByID) Swap(i, j int)      { o[i], o[j] = o[j], o[i] }
func (o OpenOrdersByID) Less(i, j int) bool { return o[i].ID < o[j].ID }
