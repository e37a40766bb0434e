package capgains

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/etnz/capgains/date"
)

// rawDateLayout reads the MM/DD/YY dates of raw broker exports.
const rawDateLayout = "1/2/06"

// rawOrderTypes maps raw transaction types to tax center order types.
var rawOrderTypes = map[string]OrderType{
	"option expiration": OrderOptionExpire,
	"option assignment": OrderOptionAssignment,
	"sold to close":     OrderSellToClose,
	"sold short":        OrderSellToOpen,
	"bought to open":    OrderBuyOpen,
	"bought to cover":   OrderBuyToClose,
	"bought":            OrderBuy,
	"sold":              OrderSell,
}

// ignoredRawTypes are raw transactions that do not trade securities.
var ignoredRawTypes = []string{"adjustment", "dividend", "interest", "reorganization", "transfer"}

// taxCenterHeader is the header written by Convert and skipped by DecodeCSV.
var taxCenterHeader = []string{"Trade Date", "Order Type", "Security", "Cusip", "Transaction Description", "Quantity", "Executed Price", "Commission", "Net Amount"}

// rawRow is a converted raw row, kept apart to be sorted.
type rawRow struct {
	date   date.Date
	fields []string
}

// Convert reads a raw broker transaction export from r and writes it to w in
// the tax center format read by DecodeCSV.
//
// The raw export has a header naming its columns; the first data row after
// the header is a summary and is skipped. Non trading transactions are dropped.
// Rows are written sorted by date, then by their other fields.
func Convert(r io.Reader, w io.Writer) error {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("reading header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, h := range header {
		columns[strings.TrimSpace(h)] = i
	}
	for _, c := range []string{"TransactionDate", "TransactionType", "Symbol", "Description", "Quantity", "Price", "Commission", "Amount"} {
		if _, ok := columns[c]; !ok {
			return fmt.Errorf("missing column %q", c)
		}
	}
	field := func(row []string, name string) string {
		if i := columns[name]; i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	// the row after the header is skipped.
	if _, err := reader.Read(); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	var rows []rawRow
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		line, _ := reader.FieldPos(0)

		rawType := strings.ToLower(field(row, "TransactionType"))
		if slices.Contains(ignoredRawTypes, rawType) {
			continue
		}
		typ, ok := rawOrderTypes[rawType]
		if !ok {
			return fmt.Errorf("line %d: unknown transaction type %q", line, field(row, "TransactionType"))
		}
		day, err := date.ParseLayout(rawDateLayout, field(row, "TransactionDate"))
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		qty, err := ParseQuantity(field(row, "Quantity"))
		if err != nil {
			return fmt.Errorf("line %d: invalid quantity %q: %w", line, field(row, "Quantity"), err)
		}
		amount, err := ParseMoney(field(row, "Amount"))
		if err != nil {
			return fmt.Errorf("line %d: invalid amount %q: %w", line, field(row, "Amount"), err)
		}

		rows = append(rows, rawRow{
			date: day,
			fields: []string{
				day.Format(date.USFormat),
				string(typ),
				field(row, "Symbol"),
				"",
				field(row, "Description"),
				qty.Abs().String(),
				field(row, "Price"),
				field(row, "Commission"),
				amount.Abs().String(),
			},
		})
	}

	slices.SortStableFunc(rows, func(a, b rawRow) int {
		if c := a.date.Compare(b.date); c != 0 {
			return c
		}
		return slices.Compare(a.fields[1:], b.fields[1:])
	})

	writer := csv.NewWriter(w)
	if err := writer.Write(taxCenterHeader); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write(row.fields); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
