package classifier

import (
	"strings"

	"github.com/insightdelivered/holerite-analyzer/internal/models"
	"github.com/insightdelivered/holerite-analyzer/internal/parser"
)

// Rule assigns a category to a line when Match reports true. Rules are
// evaluated in order and the first match wins.
type Rule struct {
	Name     string
	Category models.Category
	// Match receives the normalized line padded with one space on each side.
	Match func(padded string) bool
}

// termSet matches normalized terms either as substrings or as whole words.
type termSet struct {
	terms []string
	words []string
}

func newTermSet(terms, words []string) termSet {
	var ts termSet
	for _, t := range terms {
		if n := parser.Normalize(t); strings.TrimSpace(n) != "" {
			ts.terms = append(ts.terms, n)
		}
	}
	for _, w := range words {
		if n := strings.TrimSpace(parser.Normalize(w)); n != "" {
			ts.words = append(ts.words, " "+n+" ")
		}
	}
	return ts
}

func (ts termSet) match(padded string) bool {
	for _, t := range ts.terms {
		if strings.Contains(padded, t) {
			return true
		}
	}
	for _, w := range ts.words {
		if strings.Contains(padded, w) {
			return true
		}
	}
	return false
}

// Rule names, reported on classified lines and debug output.
const (
	RuleLoanExclusion   = "loan-exclusion"
	RuleOwnProduct      = "own-product"
	RuleKnownCompetitor = "known-competitor"
	RuleGenericCard     = "generic-card"
)

// buildRules turns a vocabulary into the ordered rule list. Loan terms come
// first so a loan deduction is never counted as card debt, even when it
// names one of our own brands.
func buildRules(v Vocabulary) []Rule {
	loan := newTermSet(v.Exclusions, v.ExclusionTokens)
	own := newTermSet(v.OwnProducts, nil)
	ownContext := newTermSet(v.OwnContext, nil)
	competitor := newTermSet(v.Competitors, v.CompetitorTokens)
	card := newTermSet(v.CardKeywords, nil)

	return []Rule{
		{
			Name:     RuleLoanExclusion,
			Category: models.CategoryLoan,
			Match:    loan.match,
		},
		{
			Name:     RuleOwnProduct,
			Category: models.CategoryOwnContract,
			Match: func(padded string) bool {
				return own.match(padded) && ownContext.match(padded)
			},
		},
		{
			Name:     RuleKnownCompetitor,
			Category: models.CategoryCompetitor,
			Match: func(padded string) bool {
				return competitor.match(padded) && card.match(padded)
			},
		},
		{
			Name:     RuleGenericCard,
			Category: models.CategoryUnknownCard,
			Match:    card.match,
		},
	}
}
