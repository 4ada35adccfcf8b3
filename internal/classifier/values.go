package classifier

import (
	"github.com/insightdelivered/holerite-analyzer/internal/models"
	"github.com/insightdelivered/holerite-analyzer/internal/parser"
)

// Committed sums the extracted amounts per category.
type Committed struct {
	OwnContract float64
	Competitor  float64
	Unknown     float64
	Loan        float64
}

// Card is the committed card debt across own, competitor and unknown cards.
func (c Committed) Card() float64 {
	return c.OwnContract + c.Competitor + c.Unknown
}

// ExtractValues reads the deduction-column amount of every classified line.
// Lines without a currency token keep Amount zero and HasAmount false.
func ExtractValues(b models.Buckets) models.Buckets {
	return models.Buckets{
		OwnContracts: withAmounts(b.OwnContracts),
		Competitors:  withAmounts(b.Competitors),
		UnknownCards: withAmounts(b.UnknownCards),
		Loans:        withAmounts(b.Loans),
	}
}

func withAmounts(lines []models.ClassifiedLine) []models.ClassifiedLine {
	if lines == nil {
		return nil
	}
	out := make([]models.ClassifiedLine, len(lines))
	for i, cl := range lines {
		cl.Amount, cl.HasAmount = parser.FindAmount(cl.RawText)
		out[i] = cl
	}
	return out
}

// Totals sums the amounts of each bucket.
func Totals(b models.Buckets) Committed {
	return Committed{
		OwnContract: sum(b.OwnContracts),
		Competitor:  sum(b.Competitors),
		Unknown:     sum(b.UnknownCards),
		Loan:        sum(b.Loans),
	}
}

func sum(lines []models.ClassifiedLine) float64 {
	var total float64
	for _, cl := range lines {
		if cl.HasAmount {
			total += cl.Amount
		}
	}
	return total
}
