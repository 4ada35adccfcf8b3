package classifier

import (
	"strings"

	"github.com/insightdelivered/holerite-analyzer/internal/models"
	"github.com/insightdelivered/holerite-analyzer/internal/parser"
)

// Classifier buckets payslip lines into own contracts, competitor cards,
// unidentified cards and loans.
type Classifier struct {
	vocab Vocabulary
	rules []Rule
}

// New builds a classifier from a vocabulary.
func New(vocab Vocabulary) *Classifier {
	vocab = vocab.withDefaults()
	return &Classifier{vocab: vocab, rules: buildRules(vocab)}
}

// Vocabulary returns the vocabulary the classifier was built with.
func (c *Classifier) Vocabulary() Vocabulary {
	return c.vocab
}

// Labels returns the margin-input labels of the vocabulary.
func (c *Classifier) Labels() parser.Labels {
	return parser.Labels{
		FixedEarnings:       c.vocab.FixedEarnings,
		MandatoryDeductions: c.vocab.MandatoryDeductions,
	}
}

// Rules returns the ordered rule list.
func (c *Classifier) Rules() []Rule {
	return c.rules
}

// Match returns the first rule matching line, or false when no rule does.
func (c *Classifier) Match(line string) (Rule, bool) {
	padded := " " + parser.Normalize(line) + " "
	for _, rule := range c.rules {
		if rule.Match(padded) {
			return rule, true
		}
	}
	return Rule{}, false
}

// Classify assigns every relevant line to exactly one category. Identical
// trimmed lines are kept once per category. Most payslip lines match no
// rule and are dropped.
func (c *Classifier) Classify(lines []string) models.Buckets {
	b, _ := c.classify(lines, false)
	return b
}

// ClassifyWithTrace is Classify plus a per-line record of the decision.
func (c *Classifier) ClassifyWithTrace(lines []string) (models.Buckets, []models.DebugLine) {
	return c.classify(lines, true)
}

func (c *Classifier) classify(lines []string, trace bool) (models.Buckets, []models.DebugLine) {
	var b models.Buckets
	var debug []models.DebugLine
	seen := make(map[models.Category]map[string]bool, len(models.Categories))

	for i, line := range lines {
		text := strings.TrimSpace(line)
		dl := models.DebugLine{LineNum: i + 1, Text: text, Result: "skipped"}

		if text != "" {
			if rule, ok := c.Match(text); ok {
				dl.Rule = rule.Name
				if seen[rule.Category] == nil {
					seen[rule.Category] = make(map[string]bool)
				}
				if seen[rule.Category][text] {
					dl.Result = "duplicate"
				} else {
					seen[rule.Category][text] = true
					dl.Result = string(rule.Category)
					b = appendLine(b, models.ClassifiedLine{
						RawText:  text,
						Category: rule.Category,
						Rule:     rule.Name,
					})
				}
			}
		}

		if trace {
			debug = append(debug, dl)
		}
	}

	return b, debug
}

func appendLine(b models.Buckets, cl models.ClassifiedLine) models.Buckets {
	switch cl.Category {
	case models.CategoryOwnContract:
		b.OwnContracts = append(b.OwnContracts, cl)
	case models.CategoryCompetitor:
		b.Competitors = append(b.Competitors, cl)
	case models.CategoryUnknownCard:
		b.UnknownCards = append(b.UnknownCards, cl)
	case models.CategoryLoan:
		b.Loans = append(b.Loans, cl)
	}
	return b
}
