package cmd

import (
	"context"
	"encoding/json"
	"flag"

	"github.com/etnz/capgains"
	"github.com/etnz/capgains/config"
	"github.com/etnz/capgains/logger"
	"github.com/etnz/capgains/renderer"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
)

// gainsCmd holds the flags for the 'gains' subcommand.
type gainsCmd struct {
	year                int
	decimalPlaces       int
	sharesDecimalPlaces int
	totals              bool
	washSales           bool
	nameRule            string
	window              int
	workers             int
	currency            string
	json                bool
	query               string
	plain               bool
}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "compute capital gains with FIFO lots and wash sales" }
func (*gainsCmd) Usage() string {
	return `capgains gains [-y <year>] [-d <n>] [-s <n>] [-t] [-w=false] [-json | -q <jsonpath>] <file>

  Matches sales against the earliest purchases of the same symbol, adjusts the
  cost basis of replacement lots for wash sales, and reports closed and open lots.

  <file> is a tax center CSV export, or a .jsonl ledger.

`
}

func (c *gainsCmd) SetFlags(f *flag.FlagSet) {
	cfg := config.AppConfig
	f.IntVar(&c.year, "y", 0, "fiscal year to process, sales of other years are ignored (0: all years)")
	f.IntVar(&c.decimalPlaces, "d", cfg.Report.DecimalPlaces, "round amounts to `n` decimal places")
	f.IntVar(&c.sharesDecimalPlaces, "s", cfg.Report.SharesDecimalPlaces, "round shares to `n` decimal places")
	f.BoolVar(&c.totals, "t", false, "output totals")
	f.BoolVar(&c.washSales, "w", cfg.Matching.WashSales, "identify wash sales and adjust cost basis")
	f.StringVar(&c.nameRule, "name-rule", cfg.Matching.NameRule.String(), "underlying name rule for replacement lots (distinct, ignore, same)")
	f.IntVar(&c.window, "window", cfg.Matching.WashSaleWindow, "wash sale window in `days`, either side of a loss sale")
	f.IntVar(&c.workers, "workers", cfg.Matching.Workers, "symbols processed in parallel (0: no limit)")
	f.StringVar(&c.currency, "currency", cfg.Report.Currency, "ISO `code` used to format amounts")
	f.BoolVar(&c.json, "json", false, "output the report as JSON, with exact amounts")
	f.StringVar(&c.query, "q", "", "output the result of a JSONPath `expression` on the JSON report")
	f.BoolVar(&c.plain, "plain", false, "do not style the markdown output")
}

func (c *gainsCmd) predictArgs() complete.Predictor { return ledgerFiles }

func (c *gainsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usageError("gains requires exactly one input file")
	}
	rule, err := capgains.ParseNameRule(c.nameRule)
	if err != nil {
		return usageError("Error parsing -name-rule: %v", err)
	}
	if c.window < 0 || c.workers < 0 || c.decimalPlaces < 0 || c.sharesDecimalPlaces < 0 {
		return usageError("-d, -s, -window and -workers cannot be negative")
	}
	opts := config.MatchingConfig{
		WashSales:      c.washSales,
		WashSaleWindow: c.window,
		NameRule:       rule,
		Workers:        c.workers,
	}.Options()

	path := f.Arg(0)
	ledger, err := capgains.Load(path)
	if err != nil {
		return failure("Error loading transactions: %v", err)
	}
	books := ledger.Books(c.year)
	logger.L().Info().Str("file", path).Int("records", ledger.Len()).Int("symbols", len(books)).Msg("transactions loaded")

	results, err := capgains.Process(ctx, books, opts)
	if err != nil {
		return failure("Error computing gains: %v", err)
	}
	report := capgains.NewReport(results)
	logger.L().Info().
		Int("closed", len(report.ClosedRows)).
		Int("open", len(report.OpenRows)).
		Int("diagnostics", len(report.Diagnostics)).
		Msg("gains computed")

	switch {
	case c.query != "":
		val, err := renderer.Query(report, c.query)
		if err != nil {
			return usageError("Error in -q: %v", err)
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(val); err != nil {
			return failure("Error writing result: %v", err)
		}
	case c.json:
		data, err := renderer.JSON(report)
		if err != nil {
			return failure("Error rendering report: %v", err)
		}
		if _, err := stdout.Write(data); err != nil {
			return failure("Error writing report: %v", err)
		}
	default:
		printMarkdown(renderer.Markdown(report, renderer.Options{
			DecimalPlaces:       c.decimalPlaces,
			SharesDecimalPlaces: c.sharesDecimalPlaces,
			Totals:              c.totals,
			Currency:            c.currency,
		}), c.plain)
	}
	return subcommands.ExitSuccess
}
