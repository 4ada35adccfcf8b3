package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/insightdelivered/holerite-analyzer/internal/models"
)

// Writer exports opportunity records in one format.
type Writer interface {
	Write(out io.Writer, records []models.OpportunityRecord) error
	WriteToFile(path string, records []models.OpportunityRecord) error
}

// Format describes a supported export format.
type Format struct {
	Name        string
	Extension   string
	ContentType string
}

var formats = map[string]Format{
	"csv":  {Name: "csv", Extension: ".csv", ContentType: "text/csv; charset=utf-8"},
	"xlsx": {Name: "xlsx", Extension: ".xlsx", ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
	"json": {Name: "json", Extension: ".json", ContentType: "application/json"},
}

// ForFormat returns the writer and format details for name (csv, xlsx or
// json). CSV output carries a BOM as spreadsheet tools expect.
func ForFormat(name string) (Writer, Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	format, ok := formats[name]
	if !ok {
		return nil, Format{}, fmt.Errorf("unsupported format %q (supported: csv, xlsx, json)", name)
	}

	switch name {
	case "csv":
		return &CSVWriter{BOM: true}, format, nil
	case "xlsx":
		return &XLSXWriter{}, format, nil
	default:
		return &JSONWriter{}, format, nil
	}
}
