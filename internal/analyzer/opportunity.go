package analyzer

import "github.com/insightdelivered/holerite-analyzer/internal/models"

// Status labels shown to analysts next to each opportunity type.
const (
	StatusOwnClient = "CLIENTE NOSSO"
	StatusConfirmed = "OPORTUNIDADE CONFIRMADA"
	StatusVerify    = "VERIFICAR"
	StatusLoan      = "EMPRESTIMO CONSIGNADO"
	StatusNone      = "SEM OPORTUNIDADE"
)

const noOpportunityDescription = "Sem oportunidades identificadas"

var opportunityLabels = map[models.Category]struct {
	kind   models.OpportunityType
	status string
}{
	models.CategoryOwnContract: {models.OpportunityOwnContract, StatusOwnClient},
	models.CategoryCompetitor:  {models.OpportunityKnown, StatusConfirmed},
	models.CategoryUnknownCard: {models.OpportunityToStudy, StatusVerify},
	models.CategoryLoan:        {models.OpportunityLoan, StatusLoan},
}

// Opportunities flattens a result into one row per classified line. A
// result without classified lines yields a single NENHUMA row.
func Opportunities(r *models.AnalysisResult) []models.OpportunityRecord {
	if r == nil {
		return nil
	}

	base := models.OpportunityRecord{
		Filename:        r.Filename,
		Name:            r.Summary.Name,
		RegistrationID:  r.Summary.RegistrationID,
		Role:            r.Summary.Role,
		Regime:          r.Regime,
		GrossEarnings:   r.Summary.GrossEarningsTotal,
		Deductions:      r.Summary.DeductionsTotal,
		NetPay:          r.Summary.NetPay,
		BaseCalculation: r.Margin.BaseCalculation,
		LoanAvailable:   r.Margin.LoanAvailable,
		CardAvailable:   r.Margin.CardAvailable,
		TotalAvailable:  r.Margin.TotalAvailable,
		HasMargin:       r.Margin.HasMargin,
	}

	lines := r.Buckets.All()
	if len(lines) == 0 {
		rec := base
		rec.Type = models.OpportunityNone
		rec.Status = StatusNone
		rec.Description = noOpportunityDescription
		return []models.OpportunityRecord{rec}
	}

	records := make([]models.OpportunityRecord, 0, len(lines))
	for _, cl := range lines {
		label := opportunityLabels[cl.Category]
		rec := base
		rec.Category = cl.Category
		rec.Type = label.kind
		rec.Status = label.status
		rec.Description = cl.RawText
		rec.Amount = cl.Amount
		records = append(records, rec)
	}
	return records
}
