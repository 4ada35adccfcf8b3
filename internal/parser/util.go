package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// Brazilian currency token: optional "." thousand separators and a
// mandatory two-digit decimal part after a comma (e.g. 1.234,56 or 150,00).
var amountPattern = regexp.MustCompile(`\d+(?:\.\d{3})*,\d{2}`)

// Registration numbers are the first run of six digits on the label line.
var registrationPattern = regexp.MustCompile(`\d{6}`)

// AmountPolicy selects which currency token of a line holds its value.
type AmountPolicy int

const (
	// DeductionColumn takes the rightmost token.
	DeductionColumn AmountPolicy = iota
	// EarningsColumn takes the second-to-last token; the last one is a
	// trailing reference number.
	EarningsColumn
)

// parseAmount converts a currency token like "1.234,56" to 1234.56.
func parseAmount(token string) (float64, error) {
	s := strings.ReplaceAll(token, ".", "")
	s = strings.Replace(s, ",", ".", 1)
	return strconv.ParseFloat(s, 64)
}

// AmountTokens returns every currency token found in line, left to right.
func AmountTokens(line string) []string {
	return amountPattern.FindAllString(line, -1)
}

// Amount returns the value of the token chosen by policy. Lines with fewer
// tokens than the policy expects fall back to the only token; lines with no
// token yield zero.
func Amount(line string, policy AmountPolicy) float64 {
	v, _ := amount(line, policy)
	return v
}

// amount is Amount that also reports whether a token was found.
func amount(line string, policy AmountPolicy) (float64, bool) {
	tokens := AmountTokens(line)
	if len(tokens) == 0 {
		return 0, false
	}

	idx := len(tokens) - 1
	if policy == EarningsColumn && len(tokens) >= 2 {
		idx = len(tokens) - 2
	}

	v, err := parseAmount(tokens[idx])
	if err != nil {
		return 0, false
	}
	return v, true
}

// LastAmount parses the rightmost currency token (deduction column).
func LastAmount(line string) float64 {
	return Amount(line, DeductionColumn)
}

// EarningsAmount parses the second-to-last currency token (earnings column).
func EarningsAmount(line string) float64 {
	return Amount(line, EarningsColumn)
}

// FindAmount is LastAmount with an explicit found flag, for callers that
// must tell a zero value from a missing one.
func FindAmount(line string) (float64, bool) {
	return amount(line, DeductionColumn)
}

func findRegistrationID(text string) string {
	return registrationPattern.FindString(text)
}

// lastField returns the last whitespace-separated token of line.
func lastField(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
