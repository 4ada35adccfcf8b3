package writer

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/insightdelivered/holerite-analyzer/internal/models"
)

// JSONWriter writes opportunity records as an indented JSON array.
type JSONWriter struct{}

// WriteToFile writes records to a JSON file at the given path.
func (w *JSONWriter) WriteToFile(path string, records []models.OpportunityRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, records)
}

// Write writes records to out.
func (w *JSONWriter) Write(out io.Writer, records []models.OpportunityRecord) error {
	if records == nil {
		records = []models.OpportunityRecord{}
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
