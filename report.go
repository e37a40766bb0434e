package capgains

import (
	"github.com/etnz/capgains/date"
)

// Report is the tabular outcome of a run. Amounts are exact, rounding is left to
// the renderer.
type Report struct {
	ClosedRows   []ClosedRow     `json:"closed"`
	ClosedTotals []ClosedTotal   `json:"closedTotals"`
	OpenRows     []OpenRow       `json:"open"`
	OpenTotals   []OpenTotal     `json:"openTotals"`
	Diagnostics  []DiagnosticRow `json:"diagnostics"`
}

// ClosedRow sums the parts of a lot sold the same day with the same outcome.
type ClosedRow struct {
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name,omitempty"`
	Quantity  Quantity  `json:"quantity"`
	Acquired  date.Date `json:"acquired"`
	Sold      date.Date `json:"sold"`
	Proceeds  Money     `json:"proceeds"`
	CostBasis Money     `json:"costBasis"`
	WashSale  Money     `json:"washSale"`
	Gain      Money     `json:"gain"`
}

// ClosedTotal sums the closed lots of a symbol sold in a year.
type ClosedTotal struct {
	Year      int      `json:"year"`
	Symbol    string   `json:"symbol"`
	Quantity  Quantity `json:"quantity"`
	Proceeds  Money    `json:"proceeds"`
	CostBasis Money    `json:"costBasis"`
	WashSale  Money    `json:"washSale"`
	Gain      Money    `json:"gain"`
}

// OpenRow sums the remaining parts of a lot.
type OpenRow struct {
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name,omitempty"`
	Quantity  Quantity  `json:"quantity"`
	Acquired  date.Date `json:"acquired"`
	CostBasis Money     `json:"costBasis"`
}

// OpenTotal sums the open lots of a symbol. The estimate values the position at
// the price of its last purchase.
type OpenTotal struct {
	Symbol            string   `json:"symbol"`
	Quantity          Quantity `json:"quantity"`
	EstimatedProceeds Money    `json:"estimatedProceeds"`
	CostBasis         Money    `json:"costBasis"`
	EstimatedGain     Money    `json:"estimatedGain"`
}

// DiagnosticRow is a flattened Diagnostic.
type DiagnosticRow struct {
	Kind     string    `json:"kind"`
	Symbol   string    `json:"symbol"`
	Sale     int       `json:"sale"`
	Date     date.Date `json:"date"`
	Quantity Quantity  `json:"quantity"`
	Loss     Money     `json:"loss,omitzero"`
	Message  string    `json:"message"`
}

// NewReport tabulates results, in the results order.
func NewReport(results []*Result) *Report {
	r := &Report{}
	var (
		closed []*ClosedLot
		open   []*Lot
	)
	for _, res := range results {
		closed = append(closed, res.Closed...)
		open = append(open, res.Open...)
		for _, d := range res.Diagnostics {
			r.Diagnostics = append(r.Diagnostics, DiagnosticRow{
				Kind:     d.Kind.String(),
				Symbol:   d.Symbol,
				Sale:     d.Sale.Index,
				Date:     d.Sale.Date,
				Quantity: d.Quantity,
				Loss:     d.Loss,
				Message:  d.String(),
			})
		}
	}

	r.ClosedRows = closedRows(closed)
	r.ClosedTotals = closedTotals(closed)
	r.OpenRows = openRows(open)
	r.OpenTotals = openTotals(open)
	return r
}

// groupBy splits items into runs of consecutive items with the same key.
func groupBy[T any, K comparable](items []T, key func(T) K) [][]T {
	var groups [][]T
	for i, item := range items {
		if i > 0 && key(items[i-1]) == key(item) {
			groups[len(groups)-1] = append(groups[len(groups)-1], item)
			continue
		}
		groups = append(groups, []T{item})
	}
	return groups
}

func closedRows(lots []*ClosedLot) []ClosedRow {
	type key struct {
		index int
		sold  date.Date
		gain  bool
	}
	var rows []ClosedRow
	for _, g := range groupBy(lots, func(c *ClosedLot) key {
		return key{c.Index(), c.Sale.Date, c.Proceeds().GreaterThan(c.CostBasis())}
	}) {
		row := ClosedRow{
			Symbol:   g[0].Symbol(),
			Name:     g[0].Underlying(),
			Acquired: g[0].Purchase.Date,
			Sold:     g[0].Sale.Date,
		}
		for _, c := range g {
			row.Quantity = row.Quantity.Add(c.Quantity())
			row.Proceeds = row.Proceeds.Add(c.Proceeds())
			row.CostBasis = row.CostBasis.Add(c.CostBasis())
			row.WashSale = row.WashSale.Add(c.WashSale)
			row.Gain = row.Gain.Add(c.Gain())
		}
		rows = append(rows, row)
	}
	return rows
}

func closedTotals(lots []*ClosedLot) []ClosedTotal {
	type key struct {
		year   int
		symbol string
	}
	var totals []ClosedTotal
	for _, g := range groupBy(lots, func(c *ClosedLot) key { return key{c.Sale.Date.Year(), c.Symbol()} }) {
		total := ClosedTotal{Year: g[0].Sale.Date.Year(), Symbol: g[0].Symbol()}
		for _, c := range g {
			total.Quantity = total.Quantity.Add(c.Quantity())
			total.Proceeds = total.Proceeds.Add(c.Proceeds())
			total.CostBasis = total.CostBasis.Add(c.CostBasis())
			total.WashSale = total.WashSale.Add(c.WashSale)
			total.Gain = total.Gain.Add(c.Gain())
		}
		totals = append(totals, total)
	}
	return totals
}

func openRows(lots []*Lot) []OpenRow {
	var rows []OpenRow
	for _, g := range groupBy(lots, (*Lot).Index) {
		row := OpenRow{Symbol: g[0].Symbol(), Name: g[0].Underlying(), Acquired: g[0].Date()}
		for _, l := range g {
			row.Quantity = row.Quantity.Add(l.Quantity())
			if cost, ok := l.CostBasis(); ok {
				row.CostBasis = row.CostBasis.Add(cost)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func openTotals(lots []*Lot) []OpenTotal {
	var totals []OpenTotal
	for _, g := range groupBy(lots, (*Lot).Symbol) {
		total := OpenTotal{Symbol: g[0].Symbol()}
		for _, l := range g {
			total.Quantity = total.Quantity.Add(l.Quantity())
			if cost, ok := l.CostBasis(); ok {
				total.CostBasis = total.CostBasis.Add(cost)
			}
		}
		total.EstimatedProceeds = g[len(g)-1].Purchase.Price.Mul(total.Quantity)
		total.EstimatedGain = total.EstimatedProceeds.Sub(total.CostBasis)
		totals = append(totals, total)
	}
	return totals
}
