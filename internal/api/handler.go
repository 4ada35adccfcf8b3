package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/insightdelivered/holerite-analyzer/internal/analyzer"
	"github.com/insightdelivered/holerite-analyzer/internal/logging"
	"github.com/insightdelivered/holerite-analyzer/internal/models"
	"github.com/insightdelivered/holerite-analyzer/internal/parser"
	"github.com/insightdelivered/holerite-analyzer/internal/report"
	"github.com/insightdelivered/holerite-analyzer/internal/writer"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// pageBreak separates pages in client-side extracted text.
const pageBreak = "\n---PAGE_BREAK---\n"

// maxUploadSize bounds a single request body.
const maxUploadSize = 64 << 20

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// AnalyzeResponse is the JSON response from /api/analyze.
type AnalyzeResponse struct {
	Success       bool                       `json:"success"`
	Result        *models.AnalysisResult     `json:"result"`
	Opportunities []models.OpportunityRecord `json:"opportunities"`
	RawText       string                     `json:"rawText,omitempty"`
}

// BatchResponse is the JSON response from /api/analyze/batch.
type BatchResponse struct {
	Success bool               `json:"success"`
	Report  models.BatchReport `json:"report"`
	Summary report.Summary     `json:"summary"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	analyzer *analyzer.Analyzer
	log      *zap.Logger
	now      func() time.Time

	// StaticDir, when set, is served at "/" for the web front end.
	StaticDir string
}

// NewHandler returns handlers backed by a.
func NewHandler(a *analyzer.Analyzer, log *zap.Logger) *Handler {
	return &Handler{analyzer: a, log: logging.OrNop(log), now: time.Now}
}

// NewApp builds a fiber app with the API routes registered.
func NewApp(h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "holerite-analyzer",
		BodyLimit:             maxUploadSize,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		DisableStartupMessage: true,
		ErrorHandler:          h.handleError,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type",
	}))
	h.RegisterRoutes(app)
	return app
}

// RegisterRoutes sets up the HTTP routes.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/analyze", h.HandleAnalyze)
	app.Post("/api/analyze/batch", h.HandleAnalyzeBatch)

	if h.StaticDir != "" {
		app.Static("/", h.StaticDir)
	}
}

// HandleHealth reports liveness and the active margin policy.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": Version,
		"policy":  h.analyzer.Policy().Name,
	})
}

// HandleAnalyze analyzes one payslip, either uploaded as form field "file"
// or already extracted in "extractedText". Pass trace=true to include the
// per-line classification trace.
func (h *Handler) HandleAnalyze(c *fiber.Ctx) error {
	a := h.analyzer
	if c.FormValue("trace") == "true" {
		a = a.WithTrace()
	}

	var result *models.AnalysisResult
	var rawText string

	if text := c.FormValue("extractedText"); strings.TrimSpace(text) != "" {
		filename := c.FormValue("filename", "texto.txt")
		lines := parser.SplitLines(strings.Split(text, pageBreak))
		rawText = text
		result = a.AnalyzeLines(lines, filename)
		if result == nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, analyzer.ErrNoText.Error())
		}
	} else {
		fh, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "No file uploaded. Use form field 'file' or 'extractedText'.")
		}
		doc, err := readUpload(fh)
		if err != nil {
			return err
		}

		result, err = a.AnalyzeDocument(c.UserContext(), doc)
		if err != nil {
			h.log.Warn("analysis failed", zap.String("filename", doc.Filename), zap.Error(err))
			return fiber.NewError(fiber.StatusUnprocessableEntity, fmt.Sprintf("Analysis failed: %v", err))
		}
	}

	return c.JSON(AnalyzeResponse{
		Success:       true,
		Result:        result,
		Opportunities: analyzer.Opportunities(result),
		RawText:       rawText,
	})
}

// HandleAnalyzeBatch analyzes every PDF in form field "files". Uploads that
// are not PDFs or cannot be read are reported as omissions. The optional
// "format" field selects json (default), csv or xlsx output.
func (h *Handler) HandleAnalyzeBatch(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Failed to parse form: %v", err))
	}
	uploads := form.File["files"]
	if len(uploads) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "No files uploaded. Use form field 'files'.")
	}

	format := strings.ToLower(c.FormValue("format", "json"))
	var w writer.Writer
	var wf writer.Format
	if format != "json" {
		if w, wf, err = writer.ForFormat(format); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}

	docs := make([]analyzer.Document, 0, len(uploads))
	for _, fh := range uploads {
		doc, err := readUpload(fh)
		if err != nil {
			doc = analyzer.Document{Filename: fh.Filename, Err: err}
		}
		docs = append(docs, doc)
	}

	batch := h.analyzer.AnalyzeMany(c.UserContext(), docs)

	if w == nil {
		return c.JSON(BatchResponse{
			Success: true,
			Report:  batch,
			Summary: report.Summarize(batch),
		})
	}

	var buf bytes.Buffer
	if err := w.Write(&buf, batch.Opportunities); err != nil {
		return fmt.Errorf("export %s: %w", wf.Name, err)
	}
	filename := "oportunidades_" + h.now().Format("20060102_150405") + wf.Extension
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, wf.ContentType)
	return c.Send(buf.Bytes())
}

func readUpload(fh *multipart.FileHeader) (analyzer.Document, error) {
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".pdf") {
		return analyzer.Document{}, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("Only PDF files are supported: %q.", fh.Filename))
	}
	f, err := fh.Open()
	if err != nil {
		return analyzer.Document{}, fmt.Errorf("open upload %q: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return analyzer.Document{}, fmt.Errorf("read upload %q: %w", fh.Filename, err)
	}
	return analyzer.Document{Filename: fh.Filename, Data: data}, nil
}

// handleError renders every error as an ErrorResponse. Errors that are not
// *fiber.Error become 500s.
func (h *Handler) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		h.log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(code).JSON(ErrorResponse{Success: false, Error: err.Error()})
}
