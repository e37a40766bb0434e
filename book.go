package capgains

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Book holds one symbol's open lots and pending sales, both ordered by Index.
type Book struct {
	Symbol string
	Open   []*Lot
	Sales  []Transaction
}

// NewBook returns an empty book for a symbol.
func NewBook(symbol string) *Book { return &Book{Symbol: symbol} }

// Buy appends an opening transaction as a new open lot.
func (b *Book) Buy(tx Transaction) { b.Open = append(b.Open, NewLot(tx)) }

// Sell appends a closing transaction to the pending sales.
func (b *Book) Sell(tx Transaction) { b.Sales = append(b.Sales, tx) }

// clone returns a copy of b that shares no lot with it.
func (b *Book) clone() *Book {
	c := &Book{
		Symbol: b.Symbol,
		Open:   make([]*Lot, len(b.Open)),
		Sales:  append([]Transaction(nil), b.Sales...),
	}
	for i, l := range b.Open {
		lot := *l
		c.Open[i] = &lot
	}
	return c
}

// Result is the outcome of matching all the sales of a Book.
type Result struct {
	Symbol      string
	Closed      []*ClosedLot // in closing order
	Open        []*Lot       // residual open position
	Diagnostics []Diagnostic
}

// Process matches every book, one worker per symbol.
//
// Results are returned in the books order. Books are independent: a lot can only
// close, or absorb a wash sale of, its own symbol. The first fatal error aborts
// the run.
func Process(ctx context.Context, books []*Book, opts Options) ([]*Result, error) {
	results := make([]*Result, len(books))

	g, ctx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}
	for i, b := range books {
		i, b := i, b
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := b.Match(opts)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
