package capgains

import (
	"fmt"

	"github.com/etnz/capgains/date"
)

// Lot is an open taxable position created by one opening transaction.
//
// Lots are mutated in place while sales are processed: splitting replaces a lot by
// two children in the open queue, and wash sales add to Adjustment.
type Lot struct {
	Purchase   Transaction
	Adjustment Money // wash-sale cost basis addition
}

// NewLot returns an open lot for a purchase, with no adjustment.
func NewLot(purchase Transaction) *Lot {
	return &Lot{Purchase: purchase}
}

func (l *Lot) Index() int         { return l.Purchase.Index }
func (l *Lot) Symbol() string     { return l.Purchase.Symbol }
func (l *Lot) Underlying() string { return l.Purchase.Underlying }
func (l *Lot) Date() date.Date    { return l.Purchase.Date }

// Quantity returns the unsigned number of shares or contracts held by the lot.
func (l *Lot) Quantity() Quantity { return l.Purchase.Shares() }

// CostBasis returns the adjusted cost of the lot.
//
// A short option is paid for when it is closed, so an open short option has no
// cost basis yet and ok is false.
func (l *Lot) CostBasis() (c Money, ok bool) {
	if l.Purchase.ShortOption {
		return Money{}, false
	}
	return l.Purchase.Price.Mul(l.Quantity()).Add(l.Purchase.Fee).Add(l.Adjustment), true
}

// Split returns two open lots whose quantities sum to l's, the first one holding q.
// The adjustment is prorated the same way as the fee.
func (l *Lot) Split(q Quantity) (*Lot, *Lot, error) {
	first, second, err := l.Purchase.Split(q)
	if err != nil {
		return nil, nil, fmt.Errorf("splitting lot: %w", err)
	}
	adj := l.Adjustment.Prorate(q, l.Quantity())
	return &Lot{Purchase: first, Adjustment: adj},
		&Lot{Purchase: second, Adjustment: l.Adjustment.Sub(adj)},
		nil
}

// Close returns the closed lot resulting from matching l with sale.
// sale must be for the same quantity as l.
func (l *Lot) Close(sale Transaction) *ClosedLot {
	return &ClosedLot{
		Purchase:   l.Purchase,
		Adjustment: l.Adjustment,
		Sale:       sale,
	}
}

func (l *Lot) String() string {
	return fmt.Sprintf("lot %s adj=%s", l.Purchase, l.Adjustment)
}

// ClosedLot is a lot that has been matched with its closing transaction.
// It can no longer be split.
type ClosedLot struct {
	Purchase   Transaction
	Adjustment Money
	Sale       Transaction
	WashSale   Money // disallowed loss, added back to the gain
}

func (c *ClosedLot) Index() int         { return c.Purchase.Index }
func (c *ClosedLot) Symbol() string     { return c.Purchase.Symbol }
func (c *ClosedLot) Underlying() string { return c.Purchase.Underlying }
func (c *ClosedLot) Quantity() Quantity { return c.Purchase.Shares() }

// CostBasis returns the cost of the lot.
//
// For a short option the premium received at open is not a cost, the debit paid
// to close is.
func (c *ClosedLot) CostBasis() Money {
	if c.Purchase.ShortOption {
		return c.Sale.Price.Mul(c.Quantity()).Add(c.Sale.Fee)
	}
	return c.Purchase.Price.Mul(c.Quantity()).Add(c.Purchase.Fee).Add(c.Adjustment)
}

// Proceeds returns what the lot yielded. For a short option, that is the
// premium received at open.
func (c *ClosedLot) Proceeds() Money {
	if c.Purchase.ShortOption {
		return c.Purchase.Price.Mul(c.Quantity()).Sub(c.Purchase.Fee).Add(c.Adjustment)
	}
	return c.Sale.Price.Mul(c.Quantity()).Sub(c.Sale.Fee)
}

// Gain returns proceeds minus cost basis plus the disallowed wash sale loss.
func (c *ClosedLot) Gain() Money {
	return c.Proceeds().Sub(c.CostBasis()).Add(c.WashSale)
}

func (c *ClosedLot) String() string {
	return fmt.Sprintf("closed lot %s -> %s adj=%s wash=%s", c.Purchase, c.Sale, c.Adjustment, c.WashSale)
}
