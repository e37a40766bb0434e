package capgains

import "fmt"

// DiagnosticKind identifies a non fatal condition met while matching sales.
type DiagnosticKind int

const (
	// UnmatchedSale reports sale quantity that no open lot could close. That part
	// of the sale is abandoned.
	UnmatchedSale DiagnosticKind = iota
	// SuppressedWashSale reports a loss that would have been a wash sale if wash
	// sales were enabled.
	SuppressedWashSale
)

func (k DiagnosticKind) String() string {
	switch k {
	case UnmatchedSale:
		return "unmatched sale"
	case SuppressedWashSale:
		return "suppressed wash sale"
	default:
		return "unknown"
	}
}

// Diagnostic is a non fatal event attributable to a sale.
type Diagnostic struct {
	Kind     DiagnosticKind
	Symbol   string
	Sale     Transaction
	Quantity Quantity // unmatched or loss quantity
	Loss     Money    // realized loss, for wash sale diagnostics
}

func (d Diagnostic) String() string {
	switch d.Kind {
	case UnmatchedSale:
		return fmt.Sprintf("%s: no closable lot for %s of sale %s", d.Symbol, d.Quantity, d.Sale)
	case SuppressedWashSale:
		return fmt.Sprintf("%s: loss of %s on %s shares sold by %s would be a wash sale", d.Symbol, d.Loss, d.Quantity, d.Sale)
	default:
		return fmt.Sprintf("%s: %s %s", d.Symbol, d.Kind, d.Sale)
	}
}
