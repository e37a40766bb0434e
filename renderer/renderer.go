package renderer

import (
	"bytes"

	"github.com/etnz/capgains"
	md "github.com/nao1215/markdown"
)

// Options holds configuration for rendering a report.
type Options struct {
	DecimalPlaces       int    // rounding of amounts
	SharesDecimalPlaces int    // rounding of quantities
	Totals              bool   // render the totals tables
	Currency            string // ISO code used to format amounts, plain numbers when empty or unknown
}

// Markdown renders the report as a markdown document.
//
// Sections without rows are left out. Rounding only happens here, half away
// from zero, so totals are sums of exact values.
func Markdown(r *capgains.Report, opts Options) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	f := newFormatter(opts)

	if len(r.ClosedRows) > 0 {
		doc.H1("Closed lots")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignLeft, md.AlignLeft,
				md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight,
			},
			Header: []string{"symbol", "name", "quantity", "acquired", "sold", "proceeds", "cost basis", "wash sale", "gain"},
			Rows:   [][]string{},
		}
		for _, row := range r.ClosedRows {
			table.Rows = append(table.Rows, []string{
				row.Symbol,
				row.Name,
				f.quantity(row.Quantity),
				row.Acquired.String(),
				row.Sold.String(),
				f.amount(row.Proceeds),
				f.amount(row.CostBasis),
				f.amount(row.WashSale),
				f.amount(row.Gain),
			})
		}
		doc.Table(table)

		if opts.Totals {
			doc.H1("Closed totals")
			table := md.TableSet{
				Alignment: []md.TableAlignment{
					md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight,
					md.AlignRight, md.AlignRight, md.AlignRight,
				},
				Header: []string{"sold", "symbol", "quantity", "proceeds", "cost basis", "wash sale", "gain"},
				Rows:   [][]string{},
			}
			for _, total := range r.ClosedTotals {
				table.Rows = append(table.Rows, []string{
					f.year(total.Year),
					total.Symbol,
					f.quantity(total.Quantity),
					f.amount(total.Proceeds),
					f.amount(total.CostBasis),
					f.amount(total.WashSale),
					f.amount(total.Gain),
				})
			}
			doc.Table(table)
		}
	}

	if len(r.OpenRows) > 0 {
		doc.H1("Open lots")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignLeft, md.AlignRight},
			Header:    []string{"symbol", "name", "quantity", "acquired", "cost basis"},
			Rows:      [][]string{},
		}
		for _, row := range r.OpenRows {
			table.Rows = append(table.Rows, []string{
				row.Symbol,
				row.Name,
				f.quantity(row.Quantity),
				row.Acquired.String(),
				f.amount(row.CostBasis),
			})
		}
		doc.Table(table)

		if opts.Totals {
			doc.H1("Open totals")
			table := md.TableSet{
				Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
				Header:    []string{"symbol", "quantity", "estimated proceeds", "cost basis", "estimated gain"},
				Rows:      [][]string{},
			}
			for _, total := range r.OpenTotals {
				table.Rows = append(table.Rows, []string{
					total.Symbol,
					f.quantity(total.Quantity),
					f.amount(total.EstimatedProceeds),
					f.amount(total.CostBasis),
					f.amount(total.EstimatedGain),
				})
			}
			doc.Table(table)
		}
	}

	if len(r.Diagnostics) > 0 {
		doc.H1("Diagnostics")
		var items []string
		for _, d := range r.Diagnostics {
			items = append(items, d.Message)
		}
		doc.BulletList(items...)
	}

	if len(r.ClosedRows) == 0 && len(r.OpenRows) == 0 && len(r.Diagnostics) == 0 {
		doc.PlainText("No lots.")
	}

	return doc.String()
}
