package report

import (
	"fmt"
	"testing"

	"github.com/insightdelivered/holerite-analyzer/internal/models"
)

func rec(name, reg string, typ models.OpportunityType, desc string) models.OpportunityRecord {
	return models.OpportunityRecord{
		Name: name, RegistrationID: reg, Regime: models.RegimeStatutory, NetPay: 1000,
		Type: typ, Description: desc,
	}
}

func TestSummarize(t *testing.T) {
	report := models.BatchReport{
		Results: []models.AnalysisResult{
			{Regime: models.RegimeStatutory, Margin: models.MarginBreakdown{HasMargin: true}},
			{Regime: models.RegimeStatutory},
			{Regime: models.RegimeCLT, Margin: models.MarginBreakdown{HasMargin: true}},
		},
		Omissions: []models.Omission{{Filename: "vazio.pdf", Reason: "no text extracted"}},
		Opportunities: []models.OpportunityRecord{
			rec("ANA", "111111", models.OpportunityOwnContract, "STARCARD CARTAO 80,00"),
			rec("ANA", "111111", models.OpportunityOwnContract, "ANTICIPAY 40,00"),
			rec("ANA", "111111", models.OpportunityKnown, "BMG CARTAO 70,00"),
			rec("BRUNO", "222222", models.OpportunityKnown, "PAN CARTAO 50,00"),
			rec("BRUNO", "222222", models.OpportunityKnown, "BRADESCO CARTAO 60,00"),
			rec("CARLA", "333333", models.OpportunityNone, "Sem oportunidades identificadas"),
		},
	}

	s := Summarize(report)

	if s.Documents != 4 || s.Analyzed != 3 || s.Omitted != 1 {
		t.Errorf("counts: got %d/%d/%d, want 4/3/1", s.Documents, s.Analyzed, s.Omitted)
	}
	if s.Employees != 3 {
		t.Errorf("employees: got %d, want 3", s.Employees)
	}
	if s.WithMargin != 2 {
		t.Errorf("with margin: got %d, want 2", s.WithMargin)
	}
	if s.ByRegime[models.RegimeStatutory] != 2 || s.ByRegime[models.RegimeCLT] != 1 {
		t.Errorf("by regime: got %v", s.ByRegime)
	}
	if s.ByType[models.OpportunityKnown] != 3 || s.ByType[models.OpportunityOwnContract] != 2 || s.ByType[models.OpportunityNone] != 1 {
		t.Errorf("by type: got %v", s.ByType)
	}

	if len(s.OwnClients) != 1 {
		t.Fatalf("own clients: got %d, want 1", len(s.OwnClients))
	}
	if got := s.OwnClients[0].Contracts; len(got) != 2 || got[0] != "STARCARD CARTAO 80,00" {
		t.Errorf("contracts: got %v", got)
	}

	if len(s.TopCompetitors) != 2 {
		t.Fatalf("top competitors: got %d, want 2", len(s.TopCompetitors))
	}
	if s.TopCompetitors[0].Name != "BRUNO" || s.TopCompetitors[0].Opportunities != 2 {
		t.Errorf("first rank: got %+v", s.TopCompetitors[0])
	}
}

func TestSummarize_TopLimit(t *testing.T) {
	var report models.BatchReport
	for i := 0; i < 15; i++ {
		name := fmt.Sprintf("SERVIDOR %02d", i)
		for j := 0; j <= i; j++ {
			report.Opportunities = append(report.Opportunities, rec(name, fmt.Sprintf("%06d", i), models.OpportunityKnown, "CARTAO"))
		}
	}

	s := Summarize(report)

	if len(s.TopCompetitors) != topLimit {
		t.Fatalf("got %d ranks, want %d", len(s.TopCompetitors), topLimit)
	}
	if s.TopCompetitors[0].Name != "SERVIDOR 14" || s.TopCompetitors[0].Opportunities != 15 {
		t.Errorf("first rank: got %+v", s.TopCompetitors[0])
	}
	if s.Employees != 15 {
		t.Errorf("employees: got %d, want 15", s.Employees)
	}
	if last := s.TopCompetitors[topLimit-1]; last.Name != "SERVIDOR 05" {
		t.Errorf("last rank: got %q, want %q", last.Name, "SERVIDOR 05")
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(models.BatchReport{})
	if s.Documents != 0 || s.Employees != 0 || len(s.OwnClients) != 0 || len(s.TopCompetitors) != 0 {
		t.Errorf("got %+v", s)
	}
}
