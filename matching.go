package capgains

import (
	"fmt"
	"slices"

	"github.com/etnz/capgains/logger"
	"github.com/rs/zerolog"
)

// matcher holds the working queues of a single symbol.
type matcher struct {
	symbol string
	opts   Options
	log    zerolog.Logger

	open   []*Lot
	sales  []Transaction
	closed []*ClosedLot
	diags  []Diagnostic
}

// Match closes the book's lots with its sales, oldest eligible lot first.
//
// The book itself is left untouched, so matching the same book twice yields
// the same result. Sale quantity that cannot be matched is reported as a
// Diagnostic; split or arithmetic invariant violations are returned as errors.
func (b *Book) Match(opts Options) (*Result, error) {
	work := b.clone()
	m := &matcher{
		symbol: b.Symbol,
		opts:   opts,
		log:    logger.L().With().Str("symbol", b.Symbol).Logger(),
		open:   work.Open,
		sales:  work.Sales,
	}

	for len(m.sales) > 0 {
		sale := m.sales[0]
		m.sales = m.sales[1:]
		m.log.Debug().Stringer("sale", sale).Msg("processing sale")

		closing, err := m.closeLots(sale)
		if err != nil {
			return nil, fmt.Errorf("symbol %s: sale %s: %w", b.Symbol, sale, err)
		}

		for _, c := range closing {
			// gains are realized as is, only losses can be wash sales
			if c.Gain().IsNegative() {
				if err := m.adjustWashSale(c); err != nil {
					return nil, fmt.Errorf("symbol %s: lot #%d closed by %s: %w", b.Symbol, c.Index(), c.Sale, err)
				}
			}
			m.closed = append(m.closed, c)
			m.log.Debug().Stringer("lot", c).Stringer("gain", c.Gain()).Msg("closed lot")
		}
	}

	return &Result{
		Symbol:      b.Symbol,
		Closed:      m.closed,
		Open:        m.open,
		Diagnostics: m.diags,
	}, nil
}

// closeLots resolves sale against the open lots that precede it.
func (m *matcher) closeLots(sale Transaction) ([]*ClosedLot, error) {
	var closable []*Lot
	for _, l := range m.open {
		if l.Index() < sale.Index && (sale.Underlying == "" || l.Underlying() == sale.Underlying) {
			closable = append(closable, l)
		}
	}

	var closing []*ClosedLot
	remaining := sale.Shares()
	for !remaining.IsZero() {
		if len(closable) == 0 {
			m.unmatched(sale, remaining)
			return closing, nil
		}
		lot := closable[0]
		closable = closable[1:]

		switch {
		case lot.Quantity().LessThan(remaining):
			// the lot is too small: close it with part of the sale, the rest of the
			// sale is the next one to process.
			piece, rest, err := sale.Split(lot.Quantity())
			if err != nil {
				return nil, err
			}
			m.log.Debug().Stringer("piece", piece).Stringer("rest", rest).Msg("split sale")
			m.sales = slices.Insert(m.sales, 0, rest)
			sale = piece
			remaining = sale.Shares()

		case lot.Quantity().GreaterThan(remaining):
			// not all shares are sold: the rest of the lot stays open in place.
			piece, rest, err := m.split(lot, remaining)
			if err != nil {
				return nil, err
			}
			closable = slices.Insert(closable, 0, rest)
			lot = piece
		}

		if err := m.remove(lot); err != nil {
			return nil, err
		}
		closing = append(closing, lot.Close(sale))
		remaining = remaining.Sub(lot.Quantity())
	}
	return closing, nil
}

// split replaces lot in the open queue by two lots, the first one holding q.
func (m *matcher) split(lot *Lot, q Quantity) (*Lot, *Lot, error) {
	i := slices.Index(m.open, lot)
	if i < 0 {
		return nil, nil, fmt.Errorf("lot #%d is not open", lot.Index())
	}
	piece, rest, err := lot.Split(q)
	if err != nil {
		return nil, nil, err
	}
	m.open = slices.Replace(m.open, i, i+1, piece, rest)
	m.log.Debug().Stringer("piece", piece).Stringer("rest", rest).Msg("split lot")
	return piece, rest, nil
}

// remove takes lot out of the open queue.
func (m *matcher) remove(lot *Lot) error {
	i := slices.Index(m.open, lot)
	if i < 0 {
		return fmt.Errorf("lot #%d is not open", lot.Index())
	}
	m.open = slices.Delete(m.open, i, i+1)
	return nil
}

func (m *matcher) unmatched(sale Transaction, remaining Quantity) {
	d := Diagnostic{
		Kind:     UnmatchedSale,
		Symbol:   m.symbol,
		Sale:     sale,
		Quantity: remaining,
	}
	m.diags = append(m.diags, d)
	m.log.Warn().Stringer("sale", sale).Stringer("quantity", remaining).Msg("no closable lot")
}
