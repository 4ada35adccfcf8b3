package classifier

import (
	"testing"

	"github.com/insightdelivered/holerite-analyzer/internal/models"
)

func TestClassifier_Match(t *testing.T) {
	c := New(DefaultVocabulary())

	tests := []struct {
		line     string
		wantRule string
		wantCat  models.Category
		wantOK   bool
	}{
		{"STARCARD EMPRESTIMO CONSIGNADO 500,00", RuleLoanExclusion, models.CategoryLoan, true},
		{"EMPRÉSTIMO BANCO X 320,00", RuleLoanExclusion, models.CategoryLoan, true},
		{"CRÉDITO PESSOAL 210,00", RuleLoanExclusion, models.CategoryLoan, true},
		{"EMP BMG 12/48 210,00", RuleLoanExclusion, models.CategoryLoan, true},
		{"BCO X CP 99,00", RuleLoanExclusion, models.CategoryLoan, true},
		{"STARCARD CARTAO BENEFICIO 80,00", RuleOwnProduct, models.CategoryOwnContract, true},
		{"ANTICIPAY 45,00", RuleOwnProduct, models.CategoryOwnContract, true},
		{"BRADESCO CARTAO 150,00", RuleKnownCompetitor, models.CategoryCompetitor, true},
		{"Cartão BMG 75,00", RuleKnownCompetitor, models.CategoryCompetitor, true},
		{"CARTAO CREDITO XYZ 60,00", RuleGenericCard, models.CategoryUnknownCard, true},
		{"CARTAO JUNIOR 60,00", RuleGenericCard, models.CategoryUnknownCard, true},
		{"BRADESCO SEGUROS 30,00", "", "", false},
		{"EMPRESA PAGADORA LTDA", "", "", false},
		{"INSS 330,00", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			rule, ok := c.Match(tt.line)
			if ok != tt.wantOK {
				t.Fatalf("Match(%q): ok=%v, want %v (rule %q)", tt.line, ok, tt.wantOK, rule.Name)
			}
			if !ok {
				return
			}
			if rule.Name != tt.wantRule {
				t.Errorf("rule: got %q, want %q", rule.Name, tt.wantRule)
			}
			if rule.Category != tt.wantCat {
				t.Errorf("category: got %q, want %q", rule.Category, tt.wantCat)
			}
		})
	}
}

func TestClassifier_RuleOrder(t *testing.T) {
	rules := New(DefaultVocabulary()).Rules()
	want := []string{RuleLoanExclusion, RuleOwnProduct, RuleKnownCompetitor, RuleGenericCard}
	if len(rules) != len(want) {
		t.Fatalf("got %d rules, want %d", len(rules), len(want))
	}
	for i, name := range want {
		if rules[i].Name != name {
			t.Errorf("rule %d: got %q, want %q", i, rules[i].Name, name)
		}
	}
}

func TestClassifier_Classify(t *testing.T) {
	c := New(DefaultVocabulary())
	lines := []string{
		"NOME",
		"JOAO SILVA",
		"STARCARD CARTAO 80,00",
		"BRADESCO CARTAO 150,00",
		"  BRADESCO CARTAO 150,00  ",
		"CARTAO OUTRO BANCO 40,00",
		"STARCARD EMPRESTIMO CONSIGNADO 500,00",
		"",
		"LIQUIDO 2.700,00",
	}

	b := c.Classify(lines)

	if len(b.OwnContracts) != 1 || b.OwnContracts[0].RawText != "STARCARD CARTAO 80,00" {
		t.Errorf("own contracts: got %+v", b.OwnContracts)
	}
	if len(b.Competitors) != 1 || b.Competitors[0].RawText != "BRADESCO CARTAO 150,00" {
		t.Errorf("competitors: got %+v", b.Competitors)
	}
	if len(b.UnknownCards) != 1 || b.UnknownCards[0].RawText != "CARTAO OUTRO BANCO 40,00" {
		t.Errorf("unknown cards: got %+v", b.UnknownCards)
	}
	if len(b.Loans) != 1 || b.Loans[0].RawText != "STARCARD EMPRESTIMO CONSIGNADO 500,00" {
		t.Errorf("loans: got %+v", b.Loans)
	}
	if b.Len() != 4 {
		t.Errorf("total lines: got %d, want 4", b.Len())
	}
}

func TestClassifier_MutuallyExclusive(t *testing.T) {
	c := New(DefaultVocabulary())
	lines := []string{
		"STARCARD CARTAO 80,00",
		"STARCARD EMPRESTIMO 80,00",
		"BMG CARTAO CRED 10,00",
		"BMG CARTAO CRED 10,00",
		"CARTAO 10,00",
		"PAN CARD 20,00",
		"DAYCOVAL CONSIGNADO CARTAO 30,00",
		"PIXCARD 15,00",
	}

	b := c.Classify(lines)
	seen := make(map[string]models.Category)
	for _, cl := range b.All() {
		if prev, ok := seen[cl.RawText]; ok {
			t.Errorf("line %q appears in %s and %s", cl.RawText, prev, cl.Category)
		}
		seen[cl.RawText] = cl.Category
	}
}

func TestClassifier_ClassifyWithTrace(t *testing.T) {
	c := New(DefaultVocabulary())
	_, debug := c.ClassifyWithTrace([]string{"CARTAO X 10,00", "CARTAO X 10,00", "NOME"})

	want := []string{string(models.CategoryUnknownCard), "duplicate", "skipped"}
	if len(debug) != len(want) {
		t.Fatalf("got %d debug lines, want %d", len(debug), len(want))
	}
	for i, w := range want {
		if debug[i].Result != w {
			t.Errorf("debug[%d].Result: got %q, want %q", i, debug[i].Result, w)
		}
		if debug[i].LineNum != i+1 {
			t.Errorf("debug[%d].LineNum: got %d, want %d", i, debug[i].LineNum, i+1)
		}
	}
}

func TestClassifier_CustomVocabulary(t *testing.T) {
	v := DefaultVocabulary()
	v.OwnProducts = []string{"MEUBANCO"}
	v.OwnContext = []string{"CARTAO"}
	c := New(v)

	if rule, ok := c.Match("MEUBANCO CARTAO 10,00"); !ok || rule.Category != models.CategoryOwnContract {
		t.Errorf("custom own product not recognized: %+v ok=%v", rule, ok)
	}
	if rule, ok := c.Match("STARCARD 10,00"); !ok || rule.Category != models.CategoryUnknownCard {
		t.Errorf("default own product should no longer be own: %+v ok=%v", rule, ok)
	}
}
