package capgains

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/etnz/capgains/date"
	"github.com/google/go-cmp/cmp"
)

func TestDecodeLedger(t *testing.T) {
	// A multi-line string representing a JSONL stream with an option on ABC.
	jsonlStream := `
{"date":"2023-03-01","type":"sell","symbol":"ABC","quantity":100,"price":8,"fee":0}
{"date":"2023-01-03","type":"Buy","symbol":"ABC","quantity":100,"price":10,"fee":1}
{"date":"2023-03-01","type":"sell to open","symbol":"ABC 230120C50","underlying":"ABC","quantity":2,"price":150,"fee":1.3}
`
	ledger, err := DecodeLedger(strings.NewReader(jsonlStream))
	if err != nil {
		t.Fatalf("DecodeLedger() returned an unexpected error: %v", err)
	}

	want := []Record{
		{Date: day(time.January, 3), Type: OrderBuy, Symbol: "ABC", Quantity: Q(100), Price: M(10), Fee: M(1)},
		{Date: day(time.March, 1), Type: OrderSellToOpen, Symbol: "ABC 230120C50", Underlying: "ABC", Quantity: Q(2), Price: M(150), Fee: M(1.3)},
		{Date: day(time.March, 1), Type: OrderSell, Symbol: "ABC", Quantity: Q(100), Price: M(8)},
	}
	if diff := cmp.Diff(want, ledger.Records(), cmpOptions); diff != "" {
		t.Errorf("DecodeLedger() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeLedger_Errors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{"unknown type", `{"date":"2023-01-03","type":"dividend","symbol":"ABC","quantity":1,"price":1}`, "unknown order type"},
		{"no date", `{"type":"buy","symbol":"ABC","quantity":1,"price":1}`, "missing date"},
		{"no symbol", `{"date":"2023-01-03","type":"buy","quantity":1,"price":1}`, "missing symbol"},
		{"bad json", `{"date":"2023-01-03",`, "could not decode record"},
		{"zero quantity", `{"date":"2023-01-03","type":"buy","symbol":"ABC","quantity":0,"price":1}`, "zero quantity"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeLedger(strings.NewReader("\n" + tc.input + "\n"))
			if err == nil {
				t.Fatalf("DecodeLedger() expected an error")
			}
			if !strings.Contains(err.Error(), "line 2") || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("DecodeLedger() error = %v, want %q on line 2", err, tc.want)
			}
		})
	}
}

func TestDecodeLedger_ZeroQuantity(t *testing.T) {
	_, err := DecodeLedger(strings.NewReader(`{"date":"2023-01-03","type":"buy","symbol":"ABC","quantity":0,"price":1}`))
	if !errors.Is(err, ErrZeroQuantity) {
		t.Errorf("DecodeLedger() error = %v, want %v", err, ErrZeroQuantity)
	}
}

func TestEncodeLedger(t *testing.T) {
	// Records are created in a deliberately unsorted order.
	ledger := NewLedger(
		Record{Date: date.New(2023, time.March, 1), Type: OrderSell, Symbol: "ABC", Quantity: Q(100), Price: M(8)},
		Record{Date: date.New(2023, time.January, 3), Type: OrderBuy, Symbol: "ABC", Quantity: Q(100), Price: M(10), Fee: M(1)},
		Record{Date: date.New(2023, time.March, 1), Type: OrderBuyOpen, Symbol: "ABC 230120C50", Underlying: "ABC", Quantity: Q(1), Price: M(120.5)},
	)

	want := `{"date":"2023-01-03","type":"buy","symbol":"ABC","quantity":100,"price":10,"fee":1}
{"date":"2023-03-01","type":"buy open","symbol":"ABC 230120C50","underlying":"ABC","quantity":1,"price":120.5,"fee":0}
{"date":"2023-03-01","type":"sell","symbol":"ABC","quantity":100,"price":8,"fee":0}
`
	var buffer bytes.Buffer
	if err := EncodeLedger(&buffer, ledger); err != nil {
		t.Fatalf("EncodeLedger() returned an unexpected error: %v", err)
	}
	if got := buffer.String(); got != want {
		t.Errorf("EncodeLedger() produced incorrect output.\nGot:\n%s\nWant:\n%s", got, want)
	}

	// the encoded ledger decodes to the same records.
	decoded, err := DecodeLedger(&buffer)
	if err != nil {
		t.Fatalf("DecodeLedger() returned an unexpected error: %v", err)
	}
	if diff := cmp.Diff(ledger.Records(), decoded.Records(), cmpOptions); diff != "" {
		t.Errorf("DecodeLedger(EncodeLedger()) mismatch (-want +got):\n%s", diff)
	}
}
