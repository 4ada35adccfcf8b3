package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/insightdelivered/holerite-analyzer/internal/logging"
	"github.com/insightdelivered/holerite-analyzer/internal/parser"
)

// ErrUnreadable is returned when no method produced readable payslip text.
var ErrUnreadable = errors.New("no readable text in PDF")

// PDF extracts page texts from PDF bytes. It tries the ledongthuc/pdf
// library first and falls back to the external pdftotext command
// (poppler-utils) when the library fails or returns garbage.
type PDF struct {
	log *zap.Logger
	// Pdftotext is the fallback binary. Empty disables the fallback.
	Pdftotext string
}

// NewPDF returns a PDF extractor with the pdftotext fallback enabled.
func NewPDF(log *zap.Logger) *PDF {
	return &PDF{log: logging.OrNop(log), Pdftotext: "pdftotext"}
}

// ExtractText returns the text of each page of the PDF in data.
func (p *PDF) ExtractText(ctx context.Context, data []byte) ([]string, error) {
	log := logging.OrNop(p.log)

	pages, libErr := extractWithLibrary(data)
	if libErr == nil && isReadableText(pages) {
		return pages, nil
	}
	if libErr != nil {
		log.Debug("pdf library failed", zap.Error(libErr))
	}

	if p.Pdftotext != "" {
		popplerPages, err := extractWithPdftotext(ctx, p.Pdftotext, data)
		if err == nil && isReadableText(popplerPages) {
			return popplerPages, nil
		}
		if err != nil {
			log.Debug("pdftotext fallback failed", zap.Error(err))
		}
	}

	if libErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, libErr)
	}
	return nil, ErrUnreadable
}

// textQuality returns the share of characters that are plain ASCII text or
// Latin-1 letters, from 0.0 to 1.0. Identity-encoded fonts tend to decode
// into control characters and symbols outside that range.
func textQuality(pages []string) float64 {
	total := 0
	readable := 0
	for _, page := range pages {
		for _, r := range page {
			total++
			if isReadableRune(r) {
				readable++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}

func isReadableRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r >= 0xC0 && r <= 0xFF && unicode.IsLetter(r):
		return true
	case unicode.IsSpace(r):
		return true
	}
	return strings.ContainsRune(".,-/:;()'\"$%&@#!?+=*ºª", r)
}

// commonWords appear on virtually every payslip. Text with none of them is
// treated as garbage.
var commonWords = []string{
	"VENCIMENTO", "DESCONTO", "LIQUIDO", "MATRICULA", "NOME", "SALARIO",
	"CARGO", "FUNCAO", "TOTAL", "INSS", "PAGAMENTO", "FOLHA", "SERVIDOR",
	"BASE", "COMPETENCIA", "REFERENCIA",
}

func containsCommonWords(pages []string) bool {
	combined := parser.Normalize(strings.Join(pages, " "))
	for _, word := range commonWords {
		if strings.Contains(combined, word) {
			return true
		}
	}
	return false
}

// isReadableText requires more than 50 characters, over 60% readable
// characters and at least one common payslip word.
func isReadableText(pages []string) bool {
	if totalTextLen(pages) <= 50 {
		return false
	}
	if textQuality(pages) <= 0.6 {
		return false
	}
	return containsCommonWords(pages)
}

// extractWithPdftotext writes data to a temporary file and runs pdftotext
// page by page to keep page boundaries.
func extractWithPdftotext(ctx context.Context, bin string, data []byte) ([]string, error) {
	if _, err := exec.LookPath(bin); err != nil {
		return nil, fmt.Errorf("%s not available: %w", bin, err)
	}

	tmp, err := os.CreateTemp("", "holerite-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	numPages := 1
	if r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data))); err == nil {
		numPages = countPages(r)
	}

	var pages []string
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := strconv.Itoa(i)
		out, err := exec.CommandContext(ctx, bin, "-layout", "-f", page, "-l", page, tmp.Name(), "-").Output()
		if err != nil {
			continue
		}
		if text := strings.TrimSpace(string(out)); text != "" {
			pages = append(pages, text)
		}
	}
	if len(pages) > 0 {
		return pages, nil
	}

	out, err := exec.CommandContext(ctx, bin, "-layout", tmp.Name(), "-").Output()
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", bin, err)
	}
	text := strings.TrimSpace(string(out))
	if text == "" {
		return nil, fmt.Errorf("%s produced no output", bin)
	}
	return []string{text}, nil
}

func countPages(r *pdf.Reader) (n int) {
	defer func() {
		if recover() != nil {
			n = 1
		}
	}()
	if n = r.NumPage(); n < 1 {
		n = 1
	}
	return n
}

// extractWithLibrary tries the ledongthuc/pdf extraction methods in order
// of layout fidelity.
func extractWithLibrary(data []byte) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf library crashed: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, errors.New("pdf has no pages")
	}

	pages = extractByRow(r, numPages)
	if isReadableText(pages) {
		return pages, nil
	}

	pages = extractByContent(r, numPages)
	if isReadableText(pages) {
		return pages, nil
	}

	pages = extractByPagePlainText(r, numPages)
	if isReadableText(pages) {
		return pages, nil
	}

	if plain := extractByReaderPlainText(r); isReadableText([]string{plain}) {
		return []string{plain}, nil
	}

	return pages, nil
}

// extractByRow joins the words of each text row.
func extractByRow(r *pdf.Reader, numPages int) []string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		var lines []string
		for _, row := range rows {
			parts := make([]string, 0, len(row.Content))
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			if line := strings.TrimSpace(strings.Join(parts, " ")); line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}

// extractByContent groups text pieces by Y coordinate to rebuild rows and
// orders each row by X. Wide gaps become a column separator.
func extractByContent(r *pdf.Reader, numPages int) []string {
	type textItem struct {
		x float64
		s string
	}

	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		if len(content.Text) == 0 {
			continue
		}

		rowMap := make(map[int][]textItem)
		for _, t := range content.Text {
			if strings.TrimSpace(t.S) == "" {
				continue
			}
			y := int(math.Round(t.Y))
			rowMap[y] = append(rowMap[y], textItem{x: t.X, s: t.S})
		}

		// PDF Y grows bottom to top.
		ys := make([]int, 0, len(rowMap))
		for y := range rowMap {
			ys = append(ys, y)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(ys)))

		var lines []string
		for _, y := range ys {
			items := rowMap[y]
			sort.Slice(items, func(a, b int) bool { return items[a].x < items[b].x })

			var sb strings.Builder
			var prevX float64
			for j, item := range items {
				if j > 0 && item.x-prevX > 15 {
					sb.WriteString("  ")
				}
				sb.WriteString(item.s)
				prevX = item.x
			}
			if line := strings.TrimSpace(sb.String()); line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}

func extractByPagePlainText(r *pdf.Reader, numPages int) []string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		fonts := make(map[string]*pdf.Font)
		for _, name := range page.Fonts() {
			f := page.Font(name)
			fonts[name] = &f
		}

		text, err := page.GetPlainText(fonts)
		if err != nil {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			pages = append(pages, text)
		}
	}
	return pages
}

func extractByReaderPlainText(r *pdf.Reader) string {
	reader, err := r.GetPlainText()
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func totalTextLen(pages []string) int {
	n := 0
	for _, p := range pages {
		n += len(strings.TrimSpace(p))
	}
	return n
}
