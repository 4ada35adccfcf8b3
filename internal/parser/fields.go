package parser

import (
	"strings"

	"github.com/insightdelivered/holerite-analyzer/internal/models"
)

// ExtractSummary scans lines once and fills the labeled payslip fields.
// The first line that matches a field's label wins; fields that never
// match keep their zero value.
func ExtractSummary(lines []string) models.FinancialSummary {
	var info models.FinancialSummary
	var haveName, haveRegistration, haveRole, haveGross, haveDeductions, haveNet bool

	for i, line := range lines {
		upper := Normalize(line)

		// The name is printed on the line below its label.
		if !haveName && strings.Contains(upper, "NOME") && i+1 < len(lines) {
			info.Name = strings.TrimSpace(lines[i+1])
			haveName = true
		}

		if !haveRegistration && strings.Contains(upper, "MATRICULA") {
			if id := findRegistrationID(line); id != "" {
				info.RegistrationID = id
				haveRegistration = true
			}
		}

		if !haveRole && (strings.Contains(upper, "FUNCAO") || strings.Contains(upper, "TIPO")) {
			if role := lastField(line); role != "" {
				info.Role = role
				haveRole = true
			}
		}

		if !haveGross && strings.Contains(upper, "VENCIMENTOS") && !strings.Contains(upper, "DESCONTOS") {
			if v, ok := FindAmount(line); ok {
				info.GrossEarningsTotal = v
				haveGross = true
			}
		}

		if !haveDeductions && strings.Contains(upper, "DESCONTOS") && !strings.Contains(upper, "VENCIMENTOS") {
			if v, ok := FindAmount(line); ok {
				info.DeductionsTotal = v
				haveDeductions = true
			}
		}

		if !haveNet && strings.Contains(upper, "LIQUIDO") {
			if v, ok := FindAmount(line); ok {
				info.NetPay = v
				haveNet = true
			}
		}
	}

	return info
}

// SumLabeled adds up the value of every line whose normalized text
// contains one of labels, reading the column selected by policy.
func SumLabeled(lines []string, labels []string, policy AmountPolicy) float64 {
	var total float64
	for _, line := range lines {
		if containsAny(Normalize(line), labels) {
			total += Amount(line, policy)
		}
	}
	return total
}
