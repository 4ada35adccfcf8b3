package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/insightdelivered/holerite-analyzer/internal/models"
)

const utf8BOM = "\xEF\xBB\xBF"

// CSVWriter writes opportunity records to CSV.
type CSVWriter struct {
	// BOM prefixes the output with a UTF-8 byte order mark so spreadsheet
	// tools detect the encoding.
	BOM bool
	// Comma is the field separator. Zero means ','. With ';' amounts use a
	// decimal comma.
	Comma rune
}

// WriteToFile writes records to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, records []models.OpportunityRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, records)
}

// Write writes records in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, records []models.OpportunityRecord) error {
	if w.BOM {
		if _, err := io.WriteString(out, utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(out)
	if w.Comma != 0 {
		writer.Comma = w.Comma
	}
	decimalComma := writer.Comma == ';'

	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range records {
		row := textCells(r)
		for i, v := range moneyValues(r) {
			if col := moneyColumns[i]; col == valueColumn {
				row[col] = formatAmount(v, decimalComma)
			} else {
				row[col] = formatMoney(v, decimalComma)
			}
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
