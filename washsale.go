package capgains

import (
	"slices"
)

// replaces reports whether the open lot l is a replacement for the loss realized by c.
//
// A lot absorbs at most one wash sale: lots already carrying an adjustment are
// not eligible.
func (m *matcher) replaces(c *ClosedLot, l *Lot) bool {
	days := l.Date().DaysSince(c.Sale.Date)
	if days < 0 {
		days = -days
	}
	return days <= m.opts.Window &&
		l.Index() != c.Index() &&
		l.Adjustment.IsZero() &&
		m.opts.NameRule.accepts(c.Underlying(), l.Underlying())
}

// adjustWashSale disallows the loss of c in proportion of the replacement shares
// found, and adds the disallowed loss to the replacements' cost basis.
func (m *matcher) adjustWashSale(c *ClosedLot) error {
	loss := c.Gain().Abs()

	var replacements []*Lot
	for _, l := range m.open {
		if m.replaces(c, l) {
			replacements = append(replacements, l)
		}
	}

	if len(replacements) == 0 {
		m.log.Debug().Stringer("loss", loss).Msg("no wash sale")
		return nil
	}
	if !m.opts.WashSales {
		m.diags = append(m.diags, Diagnostic{
			Kind:     SuppressedWashSale,
			Symbol:   m.symbol,
			Sale:     c.Sale,
			Quantity: c.Quantity(),
			Loss:     loss,
		})
		m.log.Debug().Stringer("loss", loss).Msg("wash sale, not adjusting lots")
		return nil
	}

	remainingQuantity, remainingLoss := c.Quantity(), loss
	for !remainingQuantity.IsZero() && len(replacements) > 0 {
		lot := replacements[0]
		replacements = replacements[1:]

		if lot.Quantity().GreaterThan(remainingQuantity) {
			piece, rest, err := m.split(lot, remainingQuantity)
			if err != nil {
				return err
			}
			replacements = slices.Insert(replacements, 0, rest)
			lot = piece
		}

		// the share is computed on what remains, both shrink at each step.
		lot.Adjustment = remainingLoss.Prorate(lot.Quantity(), remainingQuantity)
		remainingQuantity = remainingQuantity.Sub(lot.Quantity())
		remainingLoss = remainingLoss.Sub(lot.Adjustment)
		m.log.Debug().Stringer("lot", lot).Msg("wash sale adjusted lot")
	}

	c.WashSale = loss.Sub(remainingLoss)
	if !remainingQuantity.IsZero() {
		m.log.Debug().Stringer("loss", remainingLoss).Msg("remaining loss is realized")
	}
	return nil
}
