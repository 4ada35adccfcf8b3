package parser

import (
	"math"
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		wantErr  bool
	}{
		{"25,99", 25.99, false},
		{"1.234,56", 1234.56, false},
		{"1.234.567,89", 1234567.89, false},
		{"0,00", 0.00, false},
		{"", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseAmount(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("got %f, want %f", got, tt.expected)
			}
		})
	}
}

func TestLastAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"DESCONTO CARTAO 1.234,56", 1234.56},
		{"SEM NUMERO", 0},
		{"BRADESCO CARTAO 10 150,00", 150.00},
		{"INSS 11,00 330,00", 330.00},
		{"VENCIMENTOS 3.000,00", 3000.00},
		{"PARCELA 3/12 ref 1000", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := LastAmount(tt.input)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("LastAmount(%q): got %f, want %f", tt.input, got, tt.expected)
			}
		})
	}
}

func TestEarningsAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"ADICIONAL TEMPO DE SERVICO 450,00 10,00", 450.00},
		{"ANUENIO 1.200,50", 1200.50},
		{"GRATIFICACAO 5,00 300,00 12,00", 300.00},
		{"SEM VALOR", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := EarningsAmount(tt.input)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("EarningsAmount(%q): got %f, want %f", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFindAmount(t *testing.T) {
	if v, ok := FindAmount("LIQUIDO 0,00"); !ok || v != 0 {
		t.Errorf("FindAmount(zero token): got (%f, %v), want (0, true)", v, ok)
	}
	if v, ok := FindAmount("LIQUIDO R$ 1.234,56"); !ok || v != 1234.56 {
		t.Errorf("FindAmount(currency prefix): got (%f, %v), want (1234.56, true)", v, ok)
	}
	if _, ok := FindAmount("LIQUIDO A RECEBER"); ok {
		t.Error("FindAmount without token should report not found")
	}
}

func TestFindRegistrationID(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"MATRICULA 123456", "123456"},
		{"MATRICULA: 12345678-9", "123456"},
		{"MATRICULA 12345", ""},
		{"no registration here", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := findRegistrationID(tt.input)
			if got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}
