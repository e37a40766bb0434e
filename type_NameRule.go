package capgains

import "fmt"

// NameRule selects how underlying names restrict which open lots may absorb a
// wash sale adjustment.
type NameRule int

const (
	// NameDistinct rejects a replacement lot whose underlying equals the closed lot's
	// underlying, when the closed lot has one. Lots without underlying are never rejected.
	NameDistinct NameRule = iota
	// NameIgnored does not look at underlying names.
	NameIgnored
	// NameSame only accepts replacement lots with the same underlying as the closed lot.
	NameSame
)

func (r NameRule) String() string {
	switch r {
	case NameDistinct:
		return "distinct"
	case NameIgnored:
		return "ignore"
	case NameSame:
		return "same"
	default:
		return "unknown"
	}
}

// ParseNameRule parses a string into a NameRule.
func ParseNameRule(s string) (NameRule, error) {
	switch s {
	case "distinct":
		return NameDistinct, nil
	case "ignore":
		return NameIgnored, nil
	case "same":
		return NameSame, nil
	default:
		return 0, fmt.Errorf("unknown name rule: %q", s)
	}
}

// accepts reports whether a replacement lot with underlying candidate may absorb
// a loss realized on a lot with underlying closed.
func (r NameRule) accepts(closed, candidate string) bool {
	switch r {
	case NameIgnored:
		return true
	case NameSame:
		return candidate == closed
	default:
		return closed == "" || candidate != closed
	}
}
