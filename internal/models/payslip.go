package models

import "time"

// Regime is the employment relationship printed on a payslip.
type Regime string

const (
	RegimeStatutory    Regime = "ESTATUTARIO"
	RegimeCLT          Regime = "CLT"
	RegimeAppointed    Regime = "COMISSIONADO"
	RegimeTemporary    Regime = "TEMPORARIO"
	RegimeUnidentified Regime = "NAO IDENTIFICADO"
)

// Category is the bucket a deduction line is classified into.
type Category string

const (
	CategoryOwnContract Category = "OWN_CONTRACT"
	CategoryCompetitor  Category = "COMPETITOR_CARD"
	CategoryUnknownCard Category = "UNKNOWN_CARD"
	CategoryLoan        Category = "LOAN"
)

// Categories lists every category in report order.
var Categories = []Category{
	CategoryOwnContract,
	CategoryCompetitor,
	CategoryUnknownCard,
	CategoryLoan,
}

// IsCard reports whether lines of this category count as card debt.
func (c Category) IsCard() bool {
	return c == CategoryOwnContract || c == CategoryCompetitor || c == CategoryUnknownCard
}

// FinancialSummary holds the labeled fields found on a payslip.
// Fields that could not be located keep their zero value.
type FinancialSummary struct {
	Name               string  `json:"name"`
	RegistrationID     string  `json:"registrationId"`
	Role               string  `json:"role"`
	GrossEarningsTotal float64 `json:"grossEarningsTotal"`
	DeductionsTotal    float64 `json:"deductionsTotal"`
	NetPay             float64 `json:"netPay"`
}

// ClassifiedLine is a payslip line assigned to a single category.
type ClassifiedLine struct {
	RawText   string   `json:"rawText"`
	Category  Category `json:"category"`
	Rule      string   `json:"rule"`
	Amount    float64  `json:"amount"`
	HasAmount bool     `json:"hasAmount"`
}

// Buckets groups classified lines by category, preserving document order.
type Buckets struct {
	OwnContracts []ClassifiedLine `json:"ownContracts"`
	Competitors  []ClassifiedLine `json:"competitors"`
	UnknownCards []ClassifiedLine `json:"unknownCards"`
	Loans        []ClassifiedLine `json:"loans"`
}

// Lines returns the lines of one category.
func (b Buckets) Lines(c Category) []ClassifiedLine {
	switch c {
	case CategoryOwnContract:
		return b.OwnContracts
	case CategoryCompetitor:
		return b.Competitors
	case CategoryUnknownCard:
		return b.UnknownCards
	case CategoryLoan:
		return b.Loans
	}
	return nil
}

// All returns every classified line in category order.
func (b Buckets) All() []ClassifiedLine {
	all := make([]ClassifiedLine, 0, b.Len())
	for _, c := range Categories {
		all = append(all, b.Lines(c)...)
	}
	return all
}

// Len returns the number of classified lines across all categories.
func (b Buckets) Len() int {
	return len(b.OwnContracts) + len(b.Competitors) + len(b.UnknownCards) + len(b.Loans)
}

// MarginBreakdown is the computed payroll-deduction margin for one document.
type MarginBreakdown struct {
	Policy              string  `json:"policy"`
	BaseCalculation     float64 `json:"baseCalculation"`
	LoanCeiling         float64 `json:"loanCeiling"`
	LoanCommitted       float64 `json:"loanCommitted"`
	LoanAvailable       float64 `json:"loanAvailable"`
	CardCreditCeiling   float64 `json:"cardCreditCeiling"`
	CardBenefitCeiling  float64 `json:"cardBenefitCeiling"`
	CardCeiling         float64 `json:"cardCeiling"`
	CardCommitted       float64 `json:"cardCommitted"`
	CardAvailable       float64 `json:"cardAvailable"`
	TotalCeiling        float64 `json:"totalCeiling"`
	TotalCommitted      float64 `json:"totalCommitted"`
	TotalAvailable      float64 `json:"totalAvailable"`
	LoanUtilizationPct  float64 `json:"loanUtilizationPct"`
	CardUtilizationPct  float64 `json:"cardUtilizationPct"`
	TotalUtilizationPct float64 `json:"totalUtilizationPct"`
	HasLoanMargin       bool    `json:"hasLoanMargin"`
	HasCardMargin       bool    `json:"hasCardMargin"`
	HasMargin           bool    `json:"hasMargin"`
}

// DebugLine captures what the classifier did with each input line.
type DebugLine struct {
	LineNum int    `json:"lineNum"`
	Text    string `json:"text"`
	Result  string `json:"result"` // category, "duplicate" or "skipped"
	Rule    string `json:"rule,omitempty"`
}

// AnalysisResult bundles everything derived from one payslip.
type AnalysisResult struct {
	ID                       string           `json:"id"`
	Filename                 string           `json:"filename"`
	Regime                   Regime           `json:"regime"`
	Summary                  FinancialSummary `json:"summary"`
	FixedEarningsTotal       float64          `json:"fixedEarningsTotal"`
	MandatoryDeductionsTotal float64          `json:"mandatoryDeductionsTotal"`
	Buckets                  Buckets          `json:"buckets"`
	Margin                   MarginBreakdown  `json:"margin"`
	LineCount                int              `json:"lineCount"`
	AnalyzedAt               time.Time        `json:"analyzedAt"`
	DebugLines               []DebugLine      `json:"debugLines,omitempty"`
}
