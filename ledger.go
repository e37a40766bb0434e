package capgains

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/capgains/date"
)

// SharesPerContract is the option contract multiplier applied to option prices.
const SharesPerContract = 100

// OrderType is the brokerage order type of a record.
type OrderType string

const (
	OrderBuy              OrderType = "buy"
	OrderSell             OrderType = "sell"
	OrderBuyOpen          OrderType = "buy open"
	OrderSellToOpen       OrderType = "sell to open"
	OrderSellToClose      OrderType = "sell to close"
	OrderBuyToClose       OrderType = "buy to close"
	OrderOptionExpire     OrderType = "option expire"
	OrderOptionAssignment OrderType = "option assignment"
)

// ParseOrderType parses an order type, ignoring case and surrounding spaces.
func ParseOrderType(s string) (OrderType, error) {
	t := OrderType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Opens() && !t.Closes() {
		return "", fmt.Errorf("unknown order type %q", s)
	}
	return t, nil
}

// Opens reports whether the order opens a lot.
func (t OrderType) Opens() bool {
	switch t {
	case OrderBuy, OrderBuyOpen, OrderSellToOpen:
		return true
	}
	return false
}

// Closes reports whether the order closes lots.
func (t OrderType) Closes() bool {
	switch t {
	case OrderSell, OrderSellToClose, OrderBuyToClose, OrderOptionExpire, OrderOptionAssignment:
		return true
	}
	return false
}

// IsOption reports whether the order is on an option contract.
func (t OrderType) IsOption() bool {
	switch t {
	case OrderBuyOpen, OrderSellToOpen, OrderSellToClose, OrderBuyToClose, OrderOptionExpire, OrderOptionAssignment:
		return true
	}
	return false
}

// IsShortOption reports whether the order opens or closes a written option.
func (t OrderType) IsShortOption() bool {
	return t == OrderSellToOpen || t == OrderBuyToClose
}

// rank sorts opens before closes on the same day.
func (t OrderType) rank() int {
	if t.Opens() {
		return 0
	}
	return 1
}

// Record is one line of a ledger, as read from a brokerage export.
type Record struct {
	Date       date.Date `json:"date"`
	Type       OrderType `json:"type"`
	Symbol     string    `json:"symbol"`
	Underlying string    `json:"underlying,omitempty"`
	Quantity   Quantity  `json:"quantity"`
	Price      Money     `json:"price"` // per unit, contract multiplier applied
	Fee        Money     `json:"fee"`
}

func (r Record) transaction(index int) Transaction {
	return Transaction{
		Index:       index,
		Date:        r.Date,
		Symbol:      r.Symbol,
		ShortOption: r.Type.IsShortOption(),
		Underlying:  r.Underlying,
		Quantity:    r.Quantity,
		Price:       r.Price,
		Fee:         r.Fee,
	}
}

// Ledger is the complete history of records of a portfolio, in priority order.
type Ledger struct {
	records []Record
}

// NewLedger returns a ledger made of records.
func NewLedger(records ...Record) *Ledger {
	l := &Ledger{records: slices.Clone(records)}
	l.stableSort()
	return l
}

// Append adds records to the ledger, keeping it sorted.
func (l *Ledger) Append(records ...Record) {
	l.records = append(l.records, records...)
	l.stableSort()
}

// Records returns a copy of the ledger records, in priority order.
func (l *Ledger) Records() []Record { return slices.Clone(l.records) }

// Len returns the number of records.
func (l *Ledger) Len() int { return len(l.records) }

// stableSort orders records by date, then opens before closes of the same day.
// Records otherwise keep their input order.
func (l *Ledger) stableSort() {
	slices.SortStableFunc(l.records, func(a, b Record) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.Type.rank(), b.Type.rank())
	})
}

// Books splits the ledger into one book per symbol, sorted by symbol.
//
// Records are indexed in priority order. When fiscalYear is not zero, sales of
// other years are left out; purchases are always kept.
func (l *Ledger) Books(fiscalYear int) []*Book {
	index := make(map[string]*Book)
	var books []*Book
	for i, r := range l.records {
		b, ok := index[r.Symbol]
		if !ok {
			b = NewBook(r.Symbol)
			index[r.Symbol] = b
			books = append(books, b)
		}
		tx := r.transaction(i)
		switch {
		case r.Type.Opens():
			b.Buy(tx)
		case fiscalYear == 0 || r.Date.Year() == fiscalYear:
			b.Sell(tx)
		}
	}
	slices.SortFunc(books, func(a, b *Book) int { return strings.Compare(a.Symbol, b.Symbol) })
	return books
}
