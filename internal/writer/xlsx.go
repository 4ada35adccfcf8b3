package writer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/insightdelivered/holerite-analyzer/internal/models"
)

// XLSXWriter writes opportunity records to an Excel workbook with an
// "Oportunidades" sheet holding every record and a "Nossos Clientes" sheet
// holding only our own contracts.
type XLSXWriter struct{}

// WriteToFile writes the workbook to path.
func (w *XLSXWriter) WriteToFile(path string, records []models.OpportunityRecord) error {
	f, err := w.build(records)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %q: %w", path, err)
	}
	return nil
}

// Write writes the workbook to out.
func (w *XLSXWriter) Write(out io.Writer, records []models.OpportunityRecord) error {
	f, err := w.build(records)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (w *XLSXWriter) build(records []models.OpportunityRecord) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), SheetOpportunities); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetOwnClients); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to add sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create money style: %w", err)
	}

	sheets := []struct {
		name    string
		records []models.OpportunityRecord
	}{
		{SheetOpportunities, records},
		{SheetOwnClients, OwnClients(records)},
	}
	for _, s := range sheets {
		if err := writeSheet(f, s.name, s.records, headerStyle, moneyStyle); err != nil {
			f.Close()
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

func writeSheet(f *excelize.File, sheet string, records []models.OpportunityRecord, headerStyle, moneyStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &columns); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}

	for i, r := range records {
		row := make([]interface{}, len(columns))
		for j, s := range textCells(r) {
			row[j] = s
		}
		for j, v := range moneyValues(r) {
			if col := moneyColumns[j]; col != valueColumn || v != 0 {
				row[col] = v
			}
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}

	if len(records) > 0 {
		for _, col := range moneyColumns {
			top, _ := excelize.CoordinatesToCellName(col+1, 2)
			bottom, _ := excelize.CoordinatesToCellName(col+1, len(records)+1)
			if err := f.SetCellStyle(sheet, top, bottom, moneyStyle); err != nil {
				return fmt.Errorf("failed to style %s amounts: %w", sheet, err)
			}
		}
	}

	return f.SetColWidth(sheet, "A", "Q", 18)
}
