package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/insightdelivered/holerite-analyzer/internal/analyzer"
	"github.com/insightdelivered/holerite-analyzer/internal/api"
	"github.com/insightdelivered/holerite-analyzer/internal/classifier"
	"github.com/insightdelivered/holerite-analyzer/internal/config"
	"github.com/insightdelivered/holerite-analyzer/internal/extractor"
	"github.com/insightdelivered/holerite-analyzer/internal/logging"
	"github.com/insightdelivered/holerite-analyzer/internal/models"
	"github.com/insightdelivered/holerite-analyzer/internal/report"
	"github.com/insightdelivered/holerite-analyzer/internal/writer"
)

func main() {
	// CLI flags
	formatFlag := flag.String("format", "csv", "Output format: csv, xlsx, json")
	outputFlag := flag.String("output", "", "Output file path (defaults to input name, or oportunidades.<format> for several inputs)")
	policyFlag := flag.String("policy", "", "Margin policy: tiered, flat, net (default from HOLERITE_POLICY or tiered)")
	workersFlag := flag.Int("workers", 0, "Number of documents analyzed in parallel (default from HOLERITE_WORKERS or 4)")
	vocabularyFlag := flag.String("vocabulary", "", "YAML vocabulary file (default: built-in)")
	envFlag := flag.String("env", ".env", "Environment file loaded before reading HOLERITE_* variables")
	serveFlag := flag.Bool("serve", false, "Start the HTTP API instead of analyzing files")
	portFlag := flag.String("port", "", "HTTP port for --serve (default from HOLERITE_PORT or 8080)")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	helpFlag := flag.Bool("help", false, "Show usage help")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Holerite Analyzer
by Insight Delivered

Finds card and loan deduction lines on payslip PDFs and computes the
payroll margin still available to each employee.

Usage:
  holerite-analyzer [flags] <holerite.pdf> [holerite2.pdf ...]
  holerite-analyzer --serve [--port=8080]

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Analyze one payslip into holerite.csv
  holerite-analyzer holerite.pdf

  # Analyze a folder into one workbook
  holerite-analyzer --format=xlsx --output=lote.xlsx pdfs/*.pdf

  # Use the flat 15%% margin policy
  holerite-analyzer --policy=flat holerite.pdf

Margin Policies:
  tiered  - 35%% loans, 5%% credit card, 5%% benefit card (45%% total)
  flat    - single 15%% cap
  net     - tiered split over net pay plus committed deductions
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("holerite-analyzer v%s\n", api.Version)
		os.Exit(0)
	}

	if *helpFlag || (flag.NArg() == 0 && !*serveFlag) {
		flag.Usage()
		os.Exit(0)
	}

	cfg, err := config.Load(*envFlag)
	if err != nil {
		fatalf("Configuration error: %v\n", err)
	}
	if *policyFlag != "" {
		cfg.Policy = *policyFlag
	}
	if *workersFlag != 0 {
		cfg.Workers = *workersFlag
	}
	if *vocabularyFlag != "" {
		cfg.VocabularyPath = *vocabularyFlag
	}
	if *portFlag != "" {
		cfg.Port = *portFlag
	}
	if err := cfg.Validate(); err != nil {
		fatalf("Configuration error: %v\n", err)
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		fatalf("Logger error: %v\n", err)
	}
	defer log.Sync()

	a, err := newAnalyzer(cfg, log)
	if err != nil {
		fatalf("Setup error: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *serveFlag {
		if err := serve(ctx, cfg, a, log); err != nil {
			log.Error("server stopped", zap.Error(err))
			os.Exit(1)
		}
		return
	}

	if err := processFiles(ctx, a, flag.Args(), *formatFlag, *outputFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newAnalyzer(cfg config.Config, log *zap.Logger) (*analyzer.Analyzer, error) {
	policy, err := cfg.MarginPolicy()
	if err != nil {
		return nil, err
	}
	vocab, err := cfg.Vocabulary()
	if err != nil {
		return nil, err
	}
	return analyzer.New(extractor.NewPDF(log), classifier.New(vocab), policy, log, cfg.Workers), nil
}

func serve(ctx context.Context, cfg config.Config, a *analyzer.Analyzer, log *zap.Logger) error {
	app := api.NewApp(api.NewHandler(a, log))

	go func() {
		<-ctx.Done()
		_ = app.Shutdown()
	}()

	log.Info("listening", zap.String("port", cfg.Port), zap.String("policy", a.Policy().Name))
	return app.Listen(":" + cfg.Port)
}

func processFiles(ctx context.Context, a *analyzer.Analyzer, inputs []string, format, outputPath string) error {
	w, wf, err := writer.ForFormat(format)
	if err != nil {
		return err
	}

	docs := loadDocuments(inputs)

	fmt.Printf("Processing %d file(s) with %s policy\n", len(docs), a.Policy().Name)
	batch := a.AnalyzeMany(ctx, docs)

	for _, r := range batch.Results {
		printResult(r)
	}
	for _, om := range batch.Omissions {
		fmt.Printf("  Skipped %s: %s\n", om.Filename, om.Reason)
	}

	if len(batch.Results) == 0 {
		return fmt.Errorf("no payslip could be analyzed")
	}

	outPath := outputPath
	if outPath == "" {
		if len(inputs) == 1 {
			outPath = strings.TrimSuffix(inputs[0], filepath.Ext(inputs[0])) + wf.Extension
		} else {
			outPath = "oportunidades" + wf.Extension
		}
	}
	if err := w.WriteToFile(outPath, batch.Opportunities); err != nil {
		return fmt.Errorf("%s write failed: %w", wf.Name, err)
	}

	s := report.Summarize(batch)
	fmt.Printf("Analyzed %d of %d document(s) for %d employee(s), %d with available margin\n", s.Analyzed, s.Documents, s.Employees, s.WithMargin)
	for _, typ := range []models.OpportunityType{
		models.OpportunityOwnContract, models.OpportunityKnown, models.OpportunityToStudy, models.OpportunityLoan,
	} {
		if n := s.ByType[typ]; n > 0 {
			fmt.Printf("  %s: %d\n", typ, n)
		}
	}
	fmt.Printf("Output: %s\n", outPath)
	fmt.Println("Done.")
	return nil
}

// loadDocuments reads every input. Inputs that are not PDFs or cannot be
// read carry the failure in Document.Err so the batch reports them as
// omissions.
func loadDocuments(inputs []string) []analyzer.Document {
	docs := make([]analyzer.Document, 0, len(inputs))
	for _, inputPath := range inputs {
		doc := analyzer.Document{Filename: filepath.Base(inputPath)}
		if ext := strings.ToLower(filepath.Ext(inputPath)); ext != ".pdf" {
			doc.Err = fmt.Errorf("expected .pdf file, got %q", ext)
		} else if data, err := os.ReadFile(inputPath); err != nil {
			doc.Err = fmt.Errorf("read %s: %w", inputPath, err)
		} else {
			doc.Data = data
		}
		docs = append(docs, doc)
	}
	return docs
}

func printResult(r models.AnalysisResult) {
	fmt.Printf("  %s\n", r.Filename)
	if r.Summary.Name != "" {
		fmt.Printf("    Name: %s\n", r.Summary.Name)
	}
	if r.Summary.RegistrationID != "" {
		fmt.Printf("    Registration: %s\n", r.Summary.RegistrationID)
	}
	fmt.Printf("    Regime: %s\n", r.Regime)
	fmt.Printf("    Base: %.2f  Card available: %.2f  Total available: %.2f\n",
		r.Margin.BaseCalculation, r.Margin.CardAvailable, r.Margin.TotalAvailable)
	fmt.Printf("    Lines: %d own, %d competitor, %d to study, %d loan\n",
		len(r.Buckets.OwnContracts), len(r.Buckets.Competitors), len(r.Buckets.UnknownCards), len(r.Buckets.Loans))
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
