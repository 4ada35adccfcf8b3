package models

// OpportunityType labels a flattened row for analysts.
type OpportunityType string

const (
	OpportunityOwnContract OpportunityType = "NOSSO CONTRATO"
	OpportunityKnown       OpportunityType = "CONHECIDA"
	OpportunityToStudy     OpportunityType = "PARA ESTUDAR"
	OpportunityLoan        OpportunityType = "EMPRESTIMO"
	OpportunityNone        OpportunityType = "NENHUMA"
)

// OpportunityRecord is one (document, classified line) row ready for
// tabular export. Document-level fields repeat on every row.
type OpportunityRecord struct {
	Filename        string          `json:"filename"`
	Name            string          `json:"name"`
	RegistrationID  string          `json:"registrationId"`
	Role            string          `json:"role"`
	Regime          Regime          `json:"regime"`
	GrossEarnings   float64         `json:"grossEarnings"`
	Deductions      float64         `json:"deductions"`
	NetPay          float64         `json:"netPay"`
	BaseCalculation float64         `json:"baseCalculation"`
	LoanAvailable   float64         `json:"loanAvailable"`
	CardAvailable   float64         `json:"cardAvailable"`
	TotalAvailable  float64         `json:"totalAvailable"`
	HasMargin       bool            `json:"hasMargin"`
	Category        Category        `json:"category,omitempty"`
	Type            OpportunityType `json:"type"`
	Status          string          `json:"status"`
	Description     string          `json:"description"`
	Amount          float64         `json:"amount"`
}

// Omission reports a batch document that produced no result.
type Omission struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// BatchReport is the outcome of analyzing a collection of documents.
type BatchReport struct {
	Results       []AnalysisResult    `json:"results"`
	Opportunities []OpportunityRecord `json:"opportunities"`
	Omissions     []Omission          `json:"omissions"`
}
