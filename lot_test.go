package capgains

import (
	"errors"
	"testing"
	"time"
)

func TestLot_CostBasis(t *testing.T) {
	lot := NewLot(buy(0, day(time.January, 3), 100, 10, 5))
	lot.Adjustment = M(20)

	got, ok := lot.CostBasis()
	if !ok {
		t.Fatal("CostBasis() of a long lot must be defined")
	}
	if want := M(1025); !got.Equal(want) {
		t.Errorf("CostBasis() = %v, want %v", got, want)
	}

	short := NewLot(Transaction{Index: 1, Symbol: "ABC 230317C50", ShortOption: true, Quantity: Q(1), Price: M(300)})
	if _, ok := short.CostBasis(); ok {
		t.Errorf("CostBasis() of an open short option must be undefined")
	}
}

func TestLot_Split(t *testing.T) {
	lot := NewLot(buy(0, day(time.January, 3), 100, 10, 4))
	lot.Adjustment = M(30)

	first, second, err := lot.Split(Q(40))
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if !first.Quantity().Equal(Q(40)) || !second.Quantity().Equal(Q(60)) {
		t.Errorf("Split() quantities = %v, %v, want 40, 60", first.Quantity(), second.Quantity())
	}
	if !first.Adjustment.Equal(M(12)) || !second.Adjustment.Equal(M(18)) {
		t.Errorf("Split() adjustments = %v, %v, want 12, 18", first.Adjustment, second.Adjustment)
	}
	if !first.Purchase.Fee.Add(second.Purchase.Fee).Equal(M(4)) {
		t.Errorf("Split() fees do not sum to 4")
	}
	c1, _ := first.CostBasis()
	c2, _ := second.CostBasis()
	c, _ := lot.CostBasis()
	if !c1.Add(c2).Equal(c) {
		t.Errorf("split cost basis %v + %v, want %v", c1, c2, c)
	}

	if _, _, err := lot.Split(Q(100)); !errors.Is(err, ErrInvalidSplit) {
		t.Errorf("Split(full) error = %v, want %v", err, ErrInvalidSplit)
	}
}

func TestClosedLot_Derived(t *testing.T) {
	testCases := []struct {
		name                   string
		purchase, sale         Transaction
		adjustment, washSale   Money
		wantCost, wantProceeds Money
		wantGain               Money
	}{
		{
			name:         "long loss",
			purchase:     buy(0, day(time.January, 3), 100, 10, 0),
			sale:         sell(1, day(time.March, 1), 100, 8, 0),
			wantCost:     M(1000),
			wantProceeds: M(800),
			wantGain:     M(-200),
		},
		{
			name:         "long with fees and adjustment",
			purchase:     buy(0, day(time.January, 3), 10, 10, 1),
			sale:         sell(1, day(time.March, 1), 10, 12, 2),
			adjustment:   M(5),
			washSale:     M(3),
			wantCost:     M(106),
			wantProceeds: M(118),
			wantGain:     M(15),
		},
		{
			name:         "short option",
			purchase:     Transaction{Index: 0, Symbol: "ABC", ShortOption: true, Quantity: Q(2), Price: M(300), Fee: M(1.3)},
			sale:         Transaction{Index: 1, Symbol: "ABC", ShortOption: true, Quantity: Q(2), Price: M(100), Fee: M(1.3)},
			adjustment:   M(10),
			wantCost:     M(201.3),
			wantProceeds: M(608.7),
			wantGain:     M(407.4),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			lot := NewLot(tc.purchase)
			lot.Adjustment = tc.adjustment
			c := lot.Close(tc.sale)
			c.WashSale = tc.washSale

			if got := c.CostBasis(); !got.Equal(tc.wantCost) {
				t.Errorf("CostBasis() = %v, want %v", got, tc.wantCost)
			}
			if got := c.Proceeds(); !got.Equal(tc.wantProceeds) {
				t.Errorf("Proceeds() = %v, want %v", got, tc.wantProceeds)
			}
			if got := c.Gain(); !got.Equal(tc.wantGain) {
				t.Errorf("Gain() = %v, want %v", got, tc.wantGain)
			}
			if got, want := c.Gain(), c.Proceeds().Sub(c.CostBasis()).Add(c.WashSale); !got.Equal(want) {
				t.Errorf("Gain() = %v, want proceeds - cost basis + wash sale = %v", got, want)
			}
		})
	}
}
