package capgains

import (
	"errors"
	"fmt"

	"github.com/etnz/capgains/date"
)

var (
	// ErrInvalidSplit is returned when a split would produce an empty or a full-size part.
	ErrInvalidSplit = errors.New("invalid split")
	// ErrZeroQuantity is returned when a proportional computation meets a zero quantity.
	ErrZeroQuantity = errors.New("zero quantity")
)

// Transaction is an immutable event acquiring or disposing of a quantity of a security.
type Transaction struct {
	// Index is the priority of the transaction: strictly increasing in chronological order,
	// with same-day opens before closes.
	Index int
	Date  date.Date
	// Symbol of the security.
	Symbol string
	// ShortOption marks premium-received option transactions (sell to open, buy to close).
	ShortOption bool
	// Underlying groups an option with its underlying security. Empty when unknown.
	Underlying string
	Quantity   Quantity
	Price      Money // per unit, already scaled for contract multipliers
	Fee        Money
}

// Shares returns the unsigned quantity of the transaction.
func (t Transaction) Shares() Quantity { return t.Quantity.Abs() }

// Split returns two transactions whose quantities sum to t's.
//
// The first one holds q shares, the second one the remainder; both carry t's sign.
// Fees are prorated on the first part, the second part gets the exact remainder.
func (t Transaction) Split(q Quantity) (Transaction, Transaction, error) {
	shares := t.Shares()
	if shares.IsZero() {
		return t, t, fmt.Errorf("splitting transaction #%d: %w", t.Index, ErrZeroQuantity)
	}
	if !q.IsPositive() || !q.LessThan(shares) {
		return t, t, fmt.Errorf("splitting transaction #%d of %s into %s: %w", t.Index, shares, q, ErrInvalidSplit)
	}

	first, second := t, t
	first.Quantity = q.WithSignOf(t.Quantity)
	first.Fee = t.Fee.Prorate(q, shares)
	second.Quantity = t.Quantity.Sub(first.Quantity)
	second.Fee = t.Fee.Sub(first.Fee)
	return first, second, nil
}

// String returns a short human readable identity of the transaction.
func (t Transaction) String() string {
	return fmt.Sprintf("#%d %s %s %s@%s", t.Index, t.Date, t.Symbol, t.Quantity, t.Price)
}
