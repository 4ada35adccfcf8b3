// Package report derives dashboard statistics from a batch of analyzed
// payslips.
package report

import (
	"sort"

	"github.com/insightdelivered/holerite-analyzer/internal/models"
)

// topLimit is how many employees the competitor ranking keeps.
const topLimit = 10

// Summary aggregates a batch report for analysts.
type Summary struct {
	Documents      int                            `json:"documents"`
	Analyzed       int                            `json:"analyzed"`
	Omitted        int                            `json:"omitted"`
	Employees      int                            `json:"employees"`
	WithMargin     int                            `json:"withMargin"`
	ByType         map[models.OpportunityType]int `json:"byType"`
	ByRegime       map[models.Regime]int          `json:"byRegime"`
	OwnClients     []OwnClient                    `json:"ownClients"`
	TopCompetitors []EmployeeRank                 `json:"topCompetitors"`
}

// OwnClient is an employee who already holds one or more of our contracts.
type OwnClient struct {
	Name           string        `json:"name"`
	RegistrationID string        `json:"registrationId"`
	Regime         models.Regime `json:"regime"`
	NetPay         float64       `json:"netPay"`
	Contracts      []string      `json:"contracts"`
}

// EmployeeRank counts the confirmed competitor opportunities of one employee.
type EmployeeRank struct {
	Name           string        `json:"name"`
	RegistrationID string        `json:"registrationId"`
	Regime         models.Regime `json:"regime"`
	NetPay         float64       `json:"netPay"`
	Opportunities  int           `json:"opportunities"`
}

type employeeKey struct {
	name, registration string
}

// Summarize computes counts by opportunity type and regime, counts distinct
// employees, groups own clients by name and registration, and ranks the employees with the most
// competitor opportunities.
func Summarize(report models.BatchReport) Summary {
	s := Summary{
		Documents:      len(report.Results) + len(report.Omissions),
		Analyzed:       len(report.Results),
		Omitted:        len(report.Omissions),
		ByType:         make(map[models.OpportunityType]int),
		ByRegime:       make(map[models.Regime]int),
		OwnClients:     []OwnClient{},
		TopCompetitors: []EmployeeRank{},
	}

	for _, r := range report.Results {
		s.ByRegime[r.Regime]++
		if r.Margin.HasMargin {
			s.WithMargin++
		}
	}

	employees := make(map[employeeKey]bool)
	ownIndex := make(map[employeeKey]int)
	rankIndex := make(map[employeeKey]int)

	for _, rec := range report.Opportunities {
		s.ByType[rec.Type]++
		key := employeeKey{rec.Name, rec.RegistrationID}
		employees[key] = true

		switch rec.Type {
		case models.OpportunityOwnContract:
			i, ok := ownIndex[key]
			if !ok {
				i = len(s.OwnClients)
				ownIndex[key] = i
				s.OwnClients = append(s.OwnClients, OwnClient{
					Name:           rec.Name,
					RegistrationID: rec.RegistrationID,
					Regime:         rec.Regime,
					NetPay:         rec.NetPay,
				})
			}
			s.OwnClients[i].Contracts = append(s.OwnClients[i].Contracts, rec.Description)

		case models.OpportunityKnown:
			i, ok := rankIndex[key]
			if !ok {
				i = len(s.TopCompetitors)
				rankIndex[key] = i
				s.TopCompetitors = append(s.TopCompetitors, EmployeeRank{
					Name:           rec.Name,
					RegistrationID: rec.RegistrationID,
					Regime:         rec.Regime,
					NetPay:         rec.NetPay,
				})
			}
			s.TopCompetitors[i].Opportunities++
		}
	}

	s.Employees = len(employees)

	// Stable keeps first-seen order among ties.
	sort.SliceStable(s.TopCompetitors, func(i, j int) bool {
		return s.TopCompetitors[i].Opportunities > s.TopCompetitors[j].Opportunities
	})
	if len(s.TopCompetitors) > topLimit {
		s.TopCompetitors = s.TopCompetitors[:topLimit]
	}

	return s
}
