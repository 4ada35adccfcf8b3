package parser

import "github.com/insightdelivered/holerite-analyzer/internal/models"

// regimeRule maps a set of terms to a regime.
type regimeRule struct {
	terms  []string
	regime models.Regime
}

// Boilerplate often mentions several regimes, so rules are checked in
// this order and the first match wins.
var regimeRules = []regimeRule{
	{terms: []string{"ESTATUTARIO", "ESTATUARIO"}, regime: models.RegimeStatutory},
	{terms: []string{"CLT"}, regime: models.RegimeCLT},
	{terms: []string{"COMISSIONADO"}, regime: models.RegimeAppointed},
	{terms: []string{"TEMPORARIO"}, regime: models.RegimeTemporary},
}

// DetectRegime identifies the employment regime from the full document text.
func DetectRegime(text string) models.Regime {
	normalized := Normalize(text)
	for _, rule := range regimeRules {
		if containsAny(normalized, rule.terms) {
			return rule.regime
		}
	}
	return models.RegimeUnidentified
}
