package capgains

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

const taxCenterCSV = `Trade Date,Order Type,Security,Cusip,Transaction Description,Quantity,Executed Price,Commission,Net Amount
01/03/2023,Buy,ABC,000000000,ABC INC,100,10.00,1.00,1001.00
03/01/2023,Sell,ABC,000000000,ABC INC,100,,N/A,800.00
3/1/2023,Sell To Open,ABC Jan 20 '23 $50 Call,,CALL ABC,2,1.5,1.30,298.70
`

func TestDecodeCSV(t *testing.T) {
	ledger, err := DecodeCSV(strings.NewReader(taxCenterCSV))
	if err != nil {
		t.Fatalf("DecodeCSV() returned an unexpected error: %v", err)
	}

	// opens are sorted before closes of the same day.
	want := []Record{
		{Date: day(time.January, 3), Type: OrderBuy, Symbol: "ABC", Quantity: Q(100), Price: M(10), Fee: M(1)},
		{Date: day(time.March, 1), Type: OrderSellToOpen, Symbol: "ABC Jan 20 '23 $50 Call", Quantity: Q(2), Price: M(150), Fee: M(1.3)},
		{Date: day(time.March, 1), Type: OrderSell, Symbol: "ABC", Quantity: Q(100), Price: M(8)},
	}
	if diff := cmp.Diff(want, ledger.Records(), cmpOptions); diff != "" {
		t.Errorf("DecodeCSV() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeCSV_PriceFromNet(t *testing.T) {
	input := `header,,,,,,,,
01/03/2023,Buy Open,ABC Call,,CALL,2,0,0.65,-331.30
01/04/2023,Sell To Open,ABC Put,,PUT,1,,0.65,149.35
01/05/2023,Sell,ABC,,ABC INC,-100,,0,800
01/06/2023,Buy,ABC,,ABC INC,100,0,0,-1001
`
	ledger, err := DecodeCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeCSV() returned an unexpected error: %v", err)
	}

	// the net amount is a total: its price is per contract already, and positive.
	testCases := []struct {
		symbol string
		want   Money
	}{
		{"ABC Call", M(165.65)},
		{"ABC Put", M(149.35)},
		{"ABC", M(8)},
	}
	records := ledger.Records()
	for i, tc := range testCases {
		if got := records[i]; got.Symbol != tc.symbol || !got.Price.Equal(tc.want) {
			t.Errorf("Records()[%d] = %s at %v, want %s at %v", i, got.Symbol, got.Price, tc.symbol, tc.want)
		}
	}
	if got := records[3].Price; !got.Equal(M(10.01)) {
		t.Errorf("Records()[3].Price = %v, want 10.01", got)
	}
	// the sign of the quantity is kept.
	if got := records[2].Quantity; !got.Equal(Q(-100)) {
		t.Errorf("Records()[2].Quantity = %v, want -100", got)
	}
}

func TestDecodeCSV_NegativeSellProceeds(t *testing.T) {
	input := `header,,,,,,,,
01/03/2023,Buy,ABC,,ABC INC,100,10,0,1000
03/01/2023,Sell,ABC,,ABC INC,-100,,0,800
`
	ledger, err := DecodeCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeCSV() returned an unexpected error: %v", err)
	}
	r := must(ledger.Books(0)[0].Match(DefaultOptions()))
	if len(r.Closed) != 1 {
		t.Fatalf("Match() closed %d lots, want 1", len(r.Closed))
	}
	if got := r.Closed[0].Proceeds(); !got.Equal(M(800)) {
		t.Errorf("Proceeds() = %v, want 800", got)
	}
	if got := r.Closed[0].Gain(); !got.Equal(M(-200)) {
		t.Errorf("Gain() = %v, want -200", got)
	}
}

func TestDecodeCSV_Errors(t *testing.T) {
	testCases := []struct {
		name string
		row  string
		want string
	}{
		{"unknown type", "01/03/2023,Dividend,ABC,,ABC INC,1,1,0,1", "line 2: unknown order type"},
		{"bad date", "2023-01-03,Buy,ABC,,ABC INC,1,1,0,1", "line 2"},
		{"bad quantity", "01/03/2023,Buy,ABC,,ABC INC,one,1,0,1", "line 2: invalid quantity"},
		{"bad price", "01/03/2023,Buy,ABC,,ABC INC,1,ten,0,1", "line 2: invalid price"},
		{"bad commission", "01/03/2023,Buy,ABC,,ABC INC,1,1,free,1", "line 2: invalid commission"},
		{"missing column", "01/03/2023,Buy,ABC,,ABC INC,1,1,0", "wrong number of fields"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			input := "Trade Date,Order Type,Security,Cusip,Transaction Description,Quantity,Executed Price,Commission,Net Amount\n" + tc.row + "\n"
			_, err := DecodeCSV(strings.NewReader(input))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("DecodeCSV() error = %v, want %q", err, tc.want)
			}
		})
	}
}

func TestDecodeCSV_ZeroQuantity(t *testing.T) {
	input := "header,,,,,,,,\n01/03/2023,Buy,ABC,,ABC INC,0,1,0,0\n"
	if _, err := DecodeCSV(strings.NewReader(input)); !errors.Is(err, ErrZeroQuantity) {
		t.Errorf("DecodeCSV() error = %v, want %v", err, ErrZeroQuantity)
	}
}

func TestDecodeCSV_Empty(t *testing.T) {
	ledger, err := DecodeCSV(strings.NewReader(""))
	if err != nil || ledger.Len() != 0 {
		t.Errorf("DecodeCSV(\"\") = %d records, %v, want an empty ledger", ledger.Len(), err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "orders.csv")
	if err := os.WriteFile(csvPath, []byte(taxCenterCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	jsonlPath := filepath.Join(dir, "ledger.jsonl")
	jsonl := `{"date":"2023-01-03","type":"buy","symbol":"ABC","quantity":100,"price":10,"fee":1}` + "\n"
	if err := os.WriteFile(jsonlPath, []byte(jsonl), 0o644); err != nil {
		t.Fatal(err)
	}

	testCases := []struct {
		path    string
		wantLen int
	}{
		{csvPath, 3},
		{jsonlPath, 1},
	}
	for _, tc := range testCases {
		t.Run(filepath.Base(tc.path), func(t *testing.T) {
			ledger, err := Load(tc.path)
			if err != nil {
				t.Fatalf("Load() returned an unexpected error: %v", err)
			}
			if ledger.Len() != tc.wantLen {
				t.Errorf("Load() = %d records, want %d", ledger.Len(), tc.wantLen)
			}
		})
	}

	if _, err := Load(filepath.Join(dir, "missing.csv")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want %v", err, os.ErrNotExist)
	}
}
