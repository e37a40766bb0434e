package capgains

import (
	"time"

	"github.com/etnz/capgains/date"
	"github.com/google/go-cmp/cmp"
)

// day returns a date in 2023, the year most tests happen in.
func day(month time.Month, d int) date.Date { return date.New(2023, month, d) }

// buy is a helper for test to create a long opening transaction.
func buy(index int, on date.Date, quantity, price, fee float64) Transaction {
	return Transaction{Index: index, Date: on, Symbol: "ABC", Quantity: Q(quantity), Price: M(price), Fee: M(fee)}
}

// sell is a helper for test to create a closing transaction, quantity is negative.
func sell(index int, on date.Date, quantity, price, fee float64) Transaction {
	return Transaction{Index: index, Date: on, Symbol: "ABC", Quantity: Q(-quantity), Price: M(price), Fee: M(fee)}
}

// cmpOptions compares records by decimal value.
var cmpOptions = cmp.Options{
	cmp.Comparer(func(a, b Money) bool { return a.Equal(b) }),
	cmp.Comparer(func(a, b Quantity) bool { return a.Equal(b) }),
	cmp.Comparer(func(a, b date.Date) bool { return a == b }),
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
