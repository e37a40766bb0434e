package capgains

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// DecodeLedger decodes records from a stream of JSONL data, one record per line:
//
//	{"date":"2023-01-03","type":"buy","symbol":"ABC","quantity":100,"price":10,"fee":1}
//
// Empty lines are skipped. The returned ledger is sorted.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	var records []Record
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(strings.TrimSpace(string(lineBytes))) == 0 {
			continue
		}

		var rec Record
		if err := json.Unmarshal(lineBytes, &rec); err != nil {
			return nil, fmt.Errorf("line %d: could not decode record %q: %w", line, string(lineBytes), err)
		}
		typ, err := ParseOrderType(string(rec.Type))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rec.Type = typ
		if rec.Date.IsZero() {
			return nil, fmt.Errorf("line %d: missing date", line)
		}
		if rec.Symbol == "" {
			return nil, fmt.Errorf("line %d: missing symbol", line)
		}
		if rec.Quantity.IsZero() {
			return nil, fmt.Errorf("line %d: %s %s: %w", line, rec.Type, rec.Symbol, ErrZeroQuantity)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return NewLedger(records...), nil
}

// EncodeRecord writes a single record followed by a newline, in JSONL format.
func EncodeRecord(w io.Writer, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

// EncodeLedger persists the ledger records to w in JSONL format, in priority order.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	for _, rec := range ledger.records {
		if err := EncodeRecord(w, rec); err != nil {
			return err
		}
	}
	return nil
}
