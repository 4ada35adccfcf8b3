package analyzer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/insightdelivered/holerite-analyzer/internal/classifier"
	"github.com/insightdelivered/holerite-analyzer/internal/logging"
	"github.com/insightdelivered/holerite-analyzer/internal/margin"
	"github.com/insightdelivered/holerite-analyzer/internal/models"
	"github.com/insightdelivered/holerite-analyzer/internal/parser"
)

// ErrNoText is returned when a document yields no usable text.
var ErrNoText = errors.New("no text extracted")

// TextExtractor turns raw document bytes into page texts.
type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte) ([]string, error)
}

// StaticText treats the document bytes as already-extracted UTF-8 text.
type StaticText struct{}

func (StaticText) ExtractText(_ context.Context, data []byte) ([]string, error) {
	return []string{string(data)}, nil
}

// Analyzer runs the payslip pipeline: extraction, field parsing, line
// classification, value extraction and margin calculation.
type Analyzer struct {
	extractor  TextExtractor
	classifier *classifier.Classifier
	policy     margin.Policy
	log        *zap.Logger
	workers    int
	trace      bool
	now        func() time.Time
}

// New builds an analyzer. A nil classifier uses the built-in vocabulary and
// workers below one means a single worker.
func New(ext TextExtractor, cls *classifier.Classifier, policy margin.Policy, log *zap.Logger, workers int) *Analyzer {
	if ext == nil {
		ext = StaticText{}
	}
	if cls == nil {
		cls = classifier.New(classifier.DefaultVocabulary())
	}
	if workers < 1 {
		workers = 1
	}
	return &Analyzer{
		extractor:  ext,
		classifier: cls,
		policy:     policy,
		log:        logging.OrNop(log),
		workers:    workers,
		now:        time.Now,
	}
}

// WithTrace returns a copy of the analyzer that records per-line
// classification decisions in AnalysisResult.DebugLines.
func (a *Analyzer) WithTrace() *Analyzer {
	cp := *a
	cp.trace = true
	return &cp
}

// Policy returns the margin policy in use.
func (a *Analyzer) Policy() margin.Policy {
	return a.policy
}

// Analyze extracts text from data and analyzes it. It returns nil when the
// document cannot be read or carries no text.
func (a *Analyzer) Analyze(ctx context.Context, data []byte, filename string) *models.AnalysisResult {
	result, err := a.analyze(ctx, data, filename)
	if err != nil {
		a.log.Warn("analysis failed", zap.String("filename", filename), zap.Error(err))
		return nil
	}
	return result
}

// AnalyzeDocument is Analyze with the failure reason: extraction errors,
// ErrNoText or the context error.
func (a *Analyzer) AnalyzeDocument(ctx context.Context, doc Document) (*models.AnalysisResult, error) {
	return a.analyze(ctx, doc.Data, doc.Filename)
}

func (a *Analyzer) analyze(ctx context.Context, data []byte, filename string) (*models.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pages, err := a.extractor.ExtractText(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}

	lines := parser.SplitLines(pages)
	if !parser.HasText(lines) {
		return nil, ErrNoText
	}
	return a.AnalyzeLines(lines, filename), nil
}

// AnalyzeLines runs the pipeline on already-extracted lines. It returns nil
// when no line carries text.
func (a *Analyzer) AnalyzeLines(lines []string, filename string) *models.AnalysisResult {
	if !parser.HasText(lines) {
		return nil
	}

	ps := parser.Parse(lines, a.classifier.Labels())

	var buckets models.Buckets
	var debug []models.DebugLine
	if a.trace {
		buckets, debug = a.classifier.ClassifyWithTrace(lines)
	} else {
		buckets = a.classifier.Classify(lines)
	}
	buckets = classifier.ExtractValues(buckets)
	committed := classifier.Totals(buckets)

	breakdown := margin.Calculate(margin.Input{
		Summary:                  ps.Summary,
		FixedEarningsTotal:       ps.FixedEarningsTotal,
		MandatoryDeductionsTotal: ps.MandatoryDeductionsTotal,
		LoanCommitted:            committed.Loan,
		CardCommitted:            committed.Card(),
	}, a.policy)

	a.log.Debug("payslip analyzed",
		zap.String("filename", filename),
		zap.String("regime", string(ps.Regime)),
		zap.Int("classified", buckets.Len()),
		zap.Float64("total_available", breakdown.TotalAvailable),
	)

	return &models.AnalysisResult{
		ID:                       uuid.NewString(),
		Filename:                 filename,
		Regime:                   ps.Regime,
		Summary:                  ps.Summary,
		FixedEarningsTotal:       ps.FixedEarningsTotal,
		MandatoryDeductionsTotal: ps.MandatoryDeductionsTotal,
		Buckets:                  buckets,
		Margin:                   breakdown,
		LineCount:                countLines(lines),
		AnalyzedAt:               a.now(),
		DebugLines:               debug,
	}
}

func countLines(lines []string) int {
	n := 0
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}
