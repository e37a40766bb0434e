package capgains

import "runtime"

// WashSaleWindow is the default number of days around a loss sale during which
// a purchase is a replacement.
const WashSaleWindow = 30

// Options controls the matching of sales.
type Options struct {
	WashSales bool     // adjust replacement lots for wash sales
	Window    int      // wash sale window in days, either side of the sale
	NameRule  NameRule // underlying name rule for replacement lots
	Workers   int      // symbols processed in parallel by Process
}

// DefaultOptions returns the options matching US rules.
func DefaultOptions() Options {
	return Options{
		WashSales: true,
		Window:    WashSaleWindow,
		NameRule:  NameDistinct,
		Workers:   runtime.NumCPU(),
	}
}
