package renderer

import (
	"math"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/etnz/capgains"
	"github.com/shopspring/decimal"
)

// maxMinorUnits is the largest amount, in minor units, go-money can format.
var maxMinorUnits = decimal.NewFromInt(math.MaxInt64)

// formatter turns exact values into rounded strings.
type formatter struct {
	places       int
	sharesPlaces int
	currency     *money.Formatter // nil for plain numbers
}

func newFormatter(opts Options) formatter {
	f := formatter{places: max(opts.DecimalPlaces, 0), sharesPlaces: max(opts.SharesDecimalPlaces, 0)}
	if c := money.GetCurrency(strings.ToUpper(opts.Currency)); opts.Currency != "" && c != nil {
		// the currency's own fraction is replaced by the requested precision.
		f.currency = money.NewFormatter(f.places, c.Decimal, c.Thousand, c.Grapheme, c.Template)
	}
	return f
}

// amount rounds m half away from zero to the requested places. Amounts too large
// for the currency formatter are printed as plain numbers.
func (f formatter) amount(m capgains.Money) string {
	d := m.Decimal().Round(int32(f.places))
	minor := d.Shift(int32(f.places))
	if f.currency == nil || minor.Abs().GreaterThan(maxMinorUnits) {
		return d.StringFixed(int32(f.places))
	}
	return f.currency.Format(minor.IntPart())
}

func (f formatter) quantity(q capgains.Quantity) string {
	return q.Decimal().StringFixed(int32(f.sharesPlaces))
}

func (f formatter) year(y int) string { return strconv.Itoa(y) }
