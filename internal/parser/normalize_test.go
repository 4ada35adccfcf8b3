package parser

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Líquido", "LIQUIDO"},
		{"CARTÃO DE CRÉDITO", "CARTAO DE CREDITO"},
		{"Matrícula", "MATRICULA"},
		{"ação à vista", "ACAO A VISTA"},
		{"Ô Õ Ê Â", "O O E A"},
		{"TEMPORÁRIO", "TEMPORARIO"},
		{"já normalizado 123,45", "JA NORMALIZADO 123,45"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.expected {
				t.Errorf("Normalize(%q): got %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Servidor Estatutário",
		"EMPRÉSTIMO CONSIGNADO 500,00",
		"Função: Técnico",
		"ÁÀÃÂÉÊÍÓÕÔÚÇáàãâéêíóõôúç",
		"plain ascii",
		"",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
