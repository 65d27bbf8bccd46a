package services

import "fmt"

// Term is a warranty length as chosen on the add/edit form.
type Term struct {
	Months   int
	Lifetime bool
}

func (t Term) String() string {
	switch {
	case t.Lifetime:
		return "Lifetime"
	case t.Months%12 == 0 && t.Months >= 12:
		years := t.Months / 12
		if years == 1 {
			return "1 year"
		}
		return fmt.Sprintf("%d years", years)
	default:
		return fmt.Sprintf("%d months", t.Months)
	}
}

// PresetTerms are the terms offered by default.
var PresetTerms = []Term{{Months: 6}, {Months: 12}, {Months: 24}, {Months: 36}}

// MaxCustomYears bounds a custom term.
const MaxCustomYears = 99

// CustomTerm converts a custom term in whole years to a Term. Zero years
// means a lifetime warranty.
func CustomTerm(years int) (Term, error) {
	if years == 0 {
		return Term{Lifetime: true}, nil
	}
	if years < 0 || years > MaxCustomYears {
		return Term{}, fmt.Errorf("custom warranty must be 0 (lifetime) to %d years, got %d", MaxCustomYears, years)
	}
	return Term{Months: years * 12}, nil
}
