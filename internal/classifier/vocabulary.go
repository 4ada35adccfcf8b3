package classifier

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Vocabulary holds the keyword lists that drive line classification and
// the labels summed into margin inputs. It is read-only once a Classifier
// is built from it.
//
// Plain terms match anywhere in the normalized line. Token terms match only
// as whole words surrounded by spaces, so "EMP" does not fire inside
// "EMPRESA".
type Vocabulary struct {
	OwnProducts         []string `yaml:"own_products"`
	OwnContext          []string `yaml:"own_context"`
	Competitors         []string `yaml:"competitors"`
	CompetitorTokens    []string `yaml:"competitor_tokens"`
	Exclusions          []string `yaml:"exclusions"`
	ExclusionTokens     []string `yaml:"exclusion_tokens"`
	CardKeywords        []string `yaml:"card_keywords"`
	FixedEarnings       []string `yaml:"fixed_earnings"`
	MandatoryDeductions []string `yaml:"mandatory_deductions"`
}

// DefaultVocabulary returns the built-in vocabulary for the supported
// payslip layouts. Each call returns a fresh copy.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		OwnProducts: []string{"STARCARD", "ANTICIPAY", "STARBANK"},
		OwnContext:  []string{"CARTAO", "CRED", "STARCARD", "ANTICIPAY", "STARBANK"},
		Competitors: []string{
			"DAYCOVAL", "VEMCARD", "PIXCARD", "MEUCASHCARD", "PINE", "BRADESCO",
		},
		// Short brand names collide with ordinary words (JUNIOR, PANIFICADORA).
		CompetitorTokens: []string{"NIO", "BMG", "PAN"},
		Exclusions: []string{
			"EMPRESTIMO", "EMPREST", "CONSIGNADO", "FINANCIAMENTO", "CREDITO PESSOAL",
		},
		ExclusionTokens: []string{"EMP", "CP"},
		CardKeywords:    []string{"CARTAO", "CART ", "CRED", "CREDITO", "CARD"},
		FixedEarnings: []string{
			"ADICIONAL POR TEMPO DE SERVICO", "ADICIONAL TEMPO DE SERVICO", "ADIC TEMPO SERV",
			"ANUENIO", "TRIENIO", "QUINQUENIO",
		},
		MandatoryDeductions: []string{
			"INSS", "IRRF", "IMPOSTO DE RENDA", "PREVIDENCIA", "RPPS", "FUNPRESP", "IPREV",
		},
	}
}

// ParseVocabulary decodes a YAML vocabulary. Sections left empty keep the
// built-in defaults.
func ParseVocabulary(data []byte) (Vocabulary, error) {
	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return Vocabulary{}, fmt.Errorf("parse vocabulary: %w", err)
	}
	return v.withDefaults(), nil
}

// LoadVocabulary reads a YAML vocabulary file.
func LoadVocabulary(path string) (Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("read vocabulary %q: %w", path, err)
	}
	return ParseVocabulary(data)
}

func (v Vocabulary) withDefaults() Vocabulary {
	d := DefaultVocabulary()
	fill := func(dst *[]string, def []string) {
		if len(*dst) == 0 {
			*dst = def
		}
	}
	fill(&v.OwnProducts, d.OwnProducts)
	fill(&v.OwnContext, d.OwnContext)
	fill(&v.Competitors, d.Competitors)
	fill(&v.CompetitorTokens, d.CompetitorTokens)
	fill(&v.Exclusions, d.Exclusions)
	fill(&v.ExclusionTokens, d.ExclusionTokens)
	fill(&v.CardKeywords, d.CardKeywords)
	fill(&v.FixedEarnings, d.FixedEarnings)
	fill(&v.MandatoryDeductions, d.MandatoryDeductions)
	return v
}
