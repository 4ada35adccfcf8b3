package writer

import (
	"strconv"
	"strings"

	"github.com/insightdelivered/holerite-analyzer/internal/models"
)

// Sheet names of the XLSX export.
const (
	SheetOpportunities = "Oportunidades"
	SheetOwnClients    = "Nossos Clientes"
)

// columns is the tabular layout shared by every export format.
var columns = []string{
	"Arquivo", "Nome", "Matrícula", "Cargo", "Regime",
	"Vencimentos", "Descontos", "Líquido", "Base de Cálculo",
	"Margem Empréstimo", "Margem Cartão", "Margem Total", "Tem Margem",
	"Tipo", "Status", "Descrição", "Valor",
}

// moneyColumns are the zero-based indexes of monetary columns.
var moneyColumns = []int{5, 6, 7, 8, 9, 10, 11, 16}

// valueColumn is the line amount. It stays blank when zero, since a
// NENHUMA row has no line; every other money column always shows a figure.
const valueColumn = 16

func textCells(r models.OpportunityRecord) []string {
	return []string{
		r.Filename, r.Name, r.RegistrationID, r.Role, string(r.Regime),
		"", "", "", "", "", "", "", yesNo(r.HasMargin),
		string(r.Type), r.Status, r.Description, "",
	}
}

func moneyValues(r models.OpportunityRecord) []float64 {
	return []float64{
		r.GrossEarnings, r.Deductions, r.NetPay, r.BaseCalculation,
		r.LoanAvailable, r.CardAvailable, r.TotalAvailable, r.Amount,
	}
}

// OwnClients returns the records of our own contracts.
func OwnClients(records []models.OpportunityRecord) []models.OpportunityRecord {
	var own []models.OpportunityRecord
	for _, r := range records {
		if r.Type == models.OpportunityOwnContract {
			own = append(own, r)
		}
	}
	return own
}

func yesNo(b bool) string {
	if b {
		return "SIM"
	}
	return "NAO"
}

// formatMoney renders amount with two decimals, using a decimal comma
// when requested.
func formatMoney(amount float64, decimalComma bool) string {
	s := strconv.FormatFloat(amount, 'f', 2, 64)
	if decimalComma {
		s = strings.Replace(s, ".", ",", 1)
	}
	return s
}

// formatAmount is formatMoney that renders zero as "".
func formatAmount(amount float64, decimalComma bool) string {
	if amount == 0 {
		return ""
	}
	return formatMoney(amount, decimalComma)
}
