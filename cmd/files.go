package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/capgains"
	"github.com/etnz/capgains/logger"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// writeOutput calls write with the file at path, or stdout when path is empty.
func writeOutput(path string, write func(io.Writer) error) error {
	if path == "" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error opening %q for writing: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// convertCmd turns raw broker exports into tax center CSV files.
type convertCmd struct {
	output string
}

func (*convertCmd) Name() string     { return "convert" }
func (*convertCmd) Synopsis() string { return "convert a raw broker export to the tax center CSV format" }
func (*convertCmd) Usage() string {
	return `capgains convert [-o <file>] <raw export>

  Converts a raw transaction export (TransactionDate, TransactionType, Symbol,
  Quantity, Price, Commission, Amount, Description) to the tax center CSV format
  read by 'gains'. Dividends, interests, transfers, adjustments and
  reorganizations are dropped.

`
}

func (c *convertCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "output `file` (default: stdout)")
}

func (c *convertCmd) predictArgs() complete.Predictor { return predict.Files("*.csv") }

func (c *convertCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usageError("convert requires exactly one input file")
	}
	in, err := os.Open(f.Arg(0))
	if err != nil {
		return failure("Error opening raw export: %v", err)
	}
	defer in.Close()

	err = writeOutput(c.output, func(w io.Writer) error { return capgains.Convert(in, w) })
	if err != nil {
		return failure("Error converting %q: %v", f.Arg(0), err)
	}
	logger.L().Info().Str("input", f.Arg(0)).Str("output", c.output).Msg("export converted")
	return subcommands.ExitSuccess
}

// ledgerCmd migrates a CSV export to a JSONL ledger.
type ledgerCmd struct {
	output string
}

func (*ledgerCmd) Name() string     { return "ledger" }
func (*ledgerCmd) Synopsis() string { return "write transactions as a JSONL ledger" }
func (*ledgerCmd) Usage() string {
	return `capgains ledger [-o <file>] <file>

  Reads a tax center CSV export (or a ledger) and writes it as a JSONL ledger,
  one record per line, sorted by date with opens before closes. The ledger can
  then be edited, e.g. to set the "underlying" of option records.

`
}

func (c *ledgerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "output `file` (default: stdout)")
}

func (c *ledgerCmd) predictArgs() complete.Predictor { return ledgerFiles }

func (c *ledgerCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usageError("ledger requires exactly one input file")
	}
	ledger, err := capgains.Load(f.Arg(0))
	if err != nil {
		return failure("Error loading transactions: %v", err)
	}
	err = writeOutput(c.output, func(w io.Writer) error { return capgains.EncodeLedger(w, ledger) })
	if err != nil {
		return failure("Error encoding ledger: %v", err)
	}
	logger.L().Info().Int("records", ledger.Len()).Str("output", c.output).Msg("ledger written")
	return subcommands.ExitSuccess
}
