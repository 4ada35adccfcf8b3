package parser

import (
	"strings"

	"github.com/insightdelivered/holerite-analyzer/internal/models"
)

// Labels lists the line labels summed into the margin inputs.
type Labels struct {
	// FixedEarnings are recurring allowances such as length-of-service bonuses.
	FixedEarnings []string
	// MandatoryDeductions are statutory withholdings (social security,
	// income tax, pension funds).
	MandatoryDeductions []string
}

// Payslip is the field-level view of one document.
type Payslip struct {
	Lines                    []string
	Regime                   models.Regime
	Summary                  models.FinancialSummary
	FixedEarningsTotal       float64
	MandatoryDeductionsTotal float64
}

// Parse runs the regime classifier and field extractor over lines.
func Parse(lines []string, labels Labels) *Payslip {
	return &Payslip{
		Lines:                    lines,
		Regime:                   DetectRegime(strings.Join(lines, "\n")),
		Summary:                  ExtractSummary(lines),
		FixedEarningsTotal:       SumLabeled(lines, normalizeAll(labels.FixedEarnings), EarningsColumn),
		MandatoryDeductionsTotal: SumLabeled(lines, normalizeAll(labels.MandatoryDeductions), DeductionColumn),
	}
}

// SplitLines turns extracted pages into one ordered slice of lines.
func SplitLines(pages []string) []string {
	var lines []string
	for _, page := range pages {
		for _, line := range strings.Split(page, "\n") {
			lines = append(lines, strings.TrimRight(line, "\r"))
		}
	}
	return lines
}

// HasText reports whether any line carries non-whitespace content.
func HasText(lines []string) bool {
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			return true
		}
	}
	return false
}

func normalizeAll(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if n := Normalize(strings.TrimSpace(t)); n != "" {
			out = append(out, n)
		}
	}
	return out
}
