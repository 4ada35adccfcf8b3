package margin

import (
	"math"

	"github.com/insightdelivered/holerite-analyzer/internal/models"
)

// Input carries the per-document figures the calculator needs.
type Input struct {
	Summary                  models.FinancialSummary
	FixedEarningsTotal       float64
	MandatoryDeductionsTotal float64
	LoanCommitted            float64
	CardCommitted            float64
}

// Calculate derives ceilings, availability and utilization for one
// document. Negative availability means the employee is over-committed and
// is reported as is.
func Calculate(in Input, p Policy) models.MarginBreakdown {
	loanCommitted := round(in.LoanCommitted)
	cardCommitted := round(in.CardCommitted)
	base := round(baseCalculation(in, p))

	m := models.MarginBreakdown{
		Policy:          p.Name,
		BaseCalculation: base,
		LoanCommitted:   loanCommitted,
		CardCommitted:   cardCommitted,
		TotalCeiling:    round(base * p.TotalRate),
		TotalCommitted:  round(loanCommitted + cardCommitted),
	}

	if p.Split {
		m.LoanCeiling = round(base * p.LoanRate)
		m.CardCreditCeiling = round(base * p.CardCreditRate)
		m.CardBenefitCeiling = round(base * p.CardBenefitRate)
		m.CardCeiling = round(m.CardCreditCeiling + m.CardBenefitCeiling)
		m.LoanAvailable = round(m.LoanCeiling - loanCommitted)
		m.CardAvailable = round(m.CardCeiling - cardCommitted)
		m.LoanUtilizationPct = utilization(loanCommitted, m.LoanCeiling)
		m.CardUtilizationPct = utilization(cardCommitted, m.CardCeiling)
		m.HasLoanMargin = m.LoanAvailable > 0
		m.HasCardMargin = m.CardAvailable > 0
	}

	m.TotalAvailable = round(m.TotalCeiling - m.TotalCommitted)
	m.TotalUtilizationPct = utilization(m.TotalCommitted, m.TotalCeiling)
	m.HasMargin = m.TotalAvailable > 0

	return m
}

func baseCalculation(in Input, p Policy) float64 {
	if p.Basis == BasisNetPlusCommitted && in.Summary.NetPay > 0 {
		return in.Summary.NetPay + in.LoanCommitted + in.CardCommitted
	}

	base := in.Summary.GrossEarningsTotal - in.MandatoryDeductionsTotal
	if p.IncludeFixedEarnings {
		base += in.FixedEarningsTotal
	}
	return base
}

// utilization returns committed as a percentage of ceiling, or zero when
// there is no positive ceiling to divide by.
func utilization(committed, ceiling float64) float64 {
	if ceiling <= 0 {
		return 0
	}
	return round(committed / ceiling * 100)
}

func round(val float64) float64 {
	return math.Round(val*100) / 100
}
