package capgains

import (
	"github.com/shopspring/decimal"
)

// Money represents an exact monetary value.
//
// The engine never converts currencies, so Money carries no currency code:
// every amount of a run is implicitly in the same one. Rounding and currency
// symbols are a rendering concern.
type Money struct {
	value decimal.Decimal
}

func M[T float64 | int | int64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

// ParseMoney parses an exact decimal amount.
func ParseMoney(s string) (Money, error) {
	v, err := decimal.NewFromString(s)
	return Money{value: v}, err
}

func (m Money) Equal(n Money) bool           { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                 { return m.value.IsZero() }
func (m Money) IsPositive() bool             { return m.value.IsPositive() }
func (m Money) IsNegative() bool             { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool        { return m.value.LessThan(n.value) }
func (m Money) LessThanOrEqual(n Money) bool { return m.value.LessThanOrEqual(n.value) }
func (m Money) GreaterThan(n Money) bool     { return m.value.GreaterThan(n.value) }
func (m Money) Neg() Money                   { return Money{value: m.value.Neg()} }
func (m Money) Abs() Money                   { return Money{value: m.value.Abs()} }
func (m Money) Add(n Money) Money            { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money            { return Money{value: m.value.Sub(n.value)} }
func (m Money) Mul(n Quantity) Money         { return Money{value: m.value.Mul(n.value)} }
func (m Money) Div(n Quantity) Money         { return Money{value: m.value.Div(n.value)} }
func (m Money) Decimal() decimal.Decimal     { return m.value }
func (m Money) String() string               { return m.value.String() }

// Prorate returns m*part/whole. whole must not be zero.
func (m Money) Prorate(part, whole Quantity) Money {
	return m.Mul(part).Div(whole)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return m.value.MarshalJSON()
}

func (m *Money) UnmarshalJSON(decimalBytes []byte) error {
	return m.value.UnmarshalJSON(decimalBytes)
}
