package margin

import (
	"fmt"
	"strings"
)

// Basis selects how the base calculation figure is derived.
type Basis int

const (
	// BasisGross uses gross earnings minus mandatory deductions.
	BasisGross Basis = iota
	// BasisNetPlusCommitted uses net pay plus what is already committed
	// to loans and cards, when net pay is known.
	BasisNetPlusCommitted
)

// Policy is a payroll-deduction cap formula.
type Policy struct {
	Name  string
	Basis Basis

	// IncludeFixedEarnings adds the fixed-earnings total to the base.
	IncludeFixedEarnings bool

	// Split separates loan and card ceilings. When false only the total
	// ceiling is computed.
	Split bool

	LoanRate        float64
	CardCreditRate  float64
	CardBenefitRate float64
	TotalRate       float64
}

// Tiered is the canonical policy: 35% for loans, 5% credit card plus 5%
// benefit card, 45% overall.
var Tiered = Policy{
	Name:                 "tiered",
	Basis:                BasisGross,
	IncludeFixedEarnings: true,
	Split:                true,
	LoanRate:             0.35,
	CardCreditRate:       0.05,
	CardBenefitRate:      0.05,
	TotalRate:            0.45,
}

// Flat is the first historical policy: one undivided 15% cap with no
// loan/card split.
var Flat = Policy{
	Name:      "flat",
	Basis:     BasisGross,
	TotalRate: 0.15,
}

// NetPay is the tiered split computed over net pay plus committed amounts.
// Documents without a net pay figure fall back to the gross basis.
var NetPay = Policy{
	Name:            "net",
	Basis:           BasisNetPlusCommitted,
	Split:           true,
	LoanRate:        0.35,
	CardCreditRate:  0.05,
	CardBenefitRate: 0.05,
	TotalRate:       0.45,
}

// PolicyByName resolves "tiered", "flat" or "net". An empty name selects Tiered.
func PolicyByName(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "tiered":
		return Tiered, nil
	case "flat":
		return Flat, nil
	case "net", "netpay":
		return NetPay, nil
	default:
		return Policy{}, fmt.Errorf("unknown margin policy %q (supported: tiered, flat, net)", name)
	}
}
