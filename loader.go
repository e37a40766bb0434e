package capgains

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/capgains/date"
)

// csvDateLayout reads MM/DD/YYYY dates, with or without leading zeros.
const csvDateLayout = "1/2/2006"

// csvColumns is the number of columns of an ETrade tax center export.
const csvColumns = 9

// Load decodes the ledger file at path. ".jsonl" files are JSONL ledgers, any
// other file is read as an ETrade CSV export.
func Load(path string) (*Ledger, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open ledger file %q: %w", path, err)
	}
	defer f.Close()

	var ledger *Ledger
	if strings.EqualFold(filepath.Ext(path), ".jsonl") {
		ledger, err = DecodeLedger(f)
	} else {
		ledger, err = DecodeCSV(f)
	}
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger file %q: %w", path, err)
	}
	return ledger, nil
}

// DecodeCSV reads transactions in the ETrade tax center format:
//
//	Trade Date,Order Type,Security,Cusip,Transaction Description,Quantity,Executed Price,Commission,Net Amount
//
// The header line is skipped. A commission of "N/A" is zero, and option prices
// are multiplied by the contract size. A missing price is the net amount per unit.
func DecodeCSV(r io.Reader) (*Ledger, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = csvColumns
	reader.TrimLeadingSpace = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return NewLedger(), nil
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}

	var records []Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := reader.FieldPos(0)
		rec, err := parseCSVRow(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return NewLedger(records...), nil
}

func parseCSVRow(row []string) (Record, error) {
	var (
		rec Record
		err error
	)
	rec.Date, err = date.ParseLayout(csvDateLayout, strings.TrimSpace(row[0]))
	if err != nil {
		return rec, err
	}
	if rec.Type, err = ParseOrderType(row[1]); err != nil {
		return rec, err
	}
	rec.Symbol = strings.TrimSpace(row[2])
	// row[3] and row[4] are the cusip and the description.

	if rec.Quantity, err = ParseQuantity(strings.TrimSpace(row[5])); err != nil {
		return rec, fmt.Errorf("invalid quantity %q: %w", row[5], err)
	}
	if rec.Quantity.IsZero() {
		return rec, fmt.Errorf("%s %s: %w", rec.Type, rec.Symbol, ErrZeroQuantity)
	}

	price := strings.TrimSpace(row[6])
	if price != "" {
		if rec.Price, err = ParseMoney(price); err != nil {
			return rec, fmt.Errorf("invalid price %q: %w", row[6], err)
		}
	}
	switch {
	case rec.Price.IsZero():
		// some exports leave the price blank. The net amount is a total, so the
		// derived price is already per contract for options.
		net, err := ParseMoney(strings.TrimSpace(row[8]))
		if err != nil {
			return rec, fmt.Errorf("invalid net amount %q: %w", row[8], err)
		}
		rec.Price = net.Abs().Div(rec.Quantity.Abs())
	case rec.Type.IsOption():
		rec.Price = rec.Price.Mul(Q(SharesPerContract))
	}

	switch fee := strings.TrimSpace(row[7]); fee {
	case "", "N/A":
	default:
		if rec.Fee, err = ParseMoney(fee); err != nil {
			return rec, fmt.Errorf("invalid commission %q: %w", row[7], err)
		}
	}

	return rec, nil
}
