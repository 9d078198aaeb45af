package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Number abstraction, a decimal value carried at a fixed number of digits after the decimal point
type Number struct {
	value     decimal.Decimal
	precision int8
}

// AsFloat gives a float64 representation
func (n Number) AsFloat() float64 {
	f, _ := n.value.Float64()
	return f
}

// AsDecimal gives the underlying decimal representation
func (n Number) AsDecimal() decimal.Decimal {
	return n.value
}

// Precision gives the precision of the Number
func (n Number) Precision() int8 {
	return n.precision
}

// AsString gives a string representation
func (n Number) AsString() string {
	return n.value.StringFixed(int32(n.precision))
}

// IsPositive returns true when the number is strictly greater than zero
func (n Number) IsPositive() bool {
	return n.value.Sign() > 0
}

// DivideToPrecision returns a new Number after dividing by the passed in Number by truncating to the passed in precision
func (n Number) DivideToPrecision(n2 Number, precision int8) *Number {
	return makeNumber(n.value.Div(n2.value), precision, RoundTruncate)
}

// String is the Stringer interface impl.
func (n Number) String() string {
	return n.AsString()
}

// NumberFromFloat makes a Number from a float by rounding up
func NumberFromFloat(f float64, precision int8) *Number {
	return makeNumber(decimal.NewFromFloat(f), precision, RoundUp)
}

// NumberFromDecimal makes a Number from a decimal by rounding up
func NumberFromDecimal(d decimal.Decimal, precision int8) *Number {
	return makeNumber(d, precision, RoundUp)
}

// NumberFromString makes a Number from a string, rounding up beyond the specified precision
func NumberFromString(s string, precision int8) (*Number, error) {
	parsed, e := decimal.NewFromString(s)
	if e != nil {
		return nil, e
	}
	return makeNumber(parsed, precision, RoundUp), nil
}

// Rounding is a type that defines various approaching to rounding numbers
type Rounding int

// Rounding types
const (
	RoundUp Rounding = iota
	RoundTruncate
)

func makeNumber(d decimal.Decimal, precision int8, rounding Rounding) *Number {
	var v decimal.Decimal
	switch rounding {
	case RoundUp:
		// half away from zero
		v = d.Round(int32(precision))
	case RoundTruncate:
		v = d.Truncate(int32(precision))
	default:
		panic(fmt.Sprintf("unknown rounding type %v", rounding))
	}
	return &Number{
		value:     v,
		precision: precision,
	}
}
