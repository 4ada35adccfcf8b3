package analyzer

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/insightdelivered/holerite-analyzer/internal/models"
)

// Document is one named input of a batch. Err marks an input that could
// not be loaded; it is reported as an omission without being analyzed.
type Document struct {
	Filename string
	Data     []byte
	Err      error
}

// AnalyzeMany analyzes docs with at most the configured number of workers.
// Results keep input order. A document that failed to load, fails, has no
// text or panics is reported as an omission and does not affect the others. Documents not
// yet started when ctx is canceled are omitted with the context error.
func (a *Analyzer) AnalyzeMany(ctx context.Context, docs []Document) models.BatchReport {
	results := make([]*models.AnalysisResult, len(docs))
	failures := make([]error, len(docs))

	var g errgroup.Group
	g.SetLimit(a.workers)

	for i, doc := range docs {
		if doc.Err != nil {
			failures[i] = doc.Err
			continue
		}
		if err := ctx.Err(); err != nil {
			failures[i] = err
			continue
		}
		i, doc := i, doc
		g.Go(func() error {
			results[i], failures[i] = a.analyzeRecovered(ctx, doc)
			return nil
		})
	}
	_ = g.Wait()

	report := models.BatchReport{
		Results:       make([]models.AnalysisResult, 0, len(docs)),
		Opportunities: make([]models.OpportunityRecord, 0),
		Omissions:     make([]models.Omission, 0),
	}
	for i, doc := range docs {
		if results[i] == nil {
			reason := "no result"
			if failures[i] != nil {
				reason = failures[i].Error()
			}
			a.log.Warn("document omitted", zap.String("filename", doc.Filename), zap.String("reason", reason))
			report.Omissions = append(report.Omissions, models.Omission{Filename: doc.Filename, Reason: reason})
			continue
		}
		report.Results = append(report.Results, *results[i])
		report.Opportunities = append(report.Opportunities, Opportunities(results[i])...)
	}

	a.log.Info("batch analyzed",
		zap.Int("documents", len(docs)),
		zap.Int("results", len(report.Results)),
		zap.Int("omissions", len(report.Omissions)),
	)
	return report
}

func (a *Analyzer) analyzeRecovered(ctx context.Context, doc Document) (result *models.AnalysisResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return a.AnalyzeDocument(ctx, doc)
}
