// Package export writes bill lists as spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/garyjia/expense-bills/internal/format"
)

// SheetName is the worksheet holding the bills
const SheetName = "Notes de frais"

// ContentType is the MIME type of the generated workbook
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var header = []interface{}{"Type", "Nom", "Date", "Montant", "TVA", "%", "Statut", "Justificatif", "Commentaire"}

// ExcelExporter renders bills into an xlsx workbook
type ExcelExporter struct {
	logger *zap.Logger
}

// NewExcelExporter creates a new Excel exporter
func NewExcelExporter(logger *zap.Logger) *ExcelExporter {
	return &ExcelExporter{logger: logger}
}

// WriteBills writes one row per bill, in the given order, using the
// display date and status the bills page shows.
func (e *ExcelExporter) WriteBills(w io.Writer, bills []format.BillView) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, b := range bills {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell: %w", err)
		}
		row := []interface{}{
			b.Type, b.Name, b.DisplayDate, b.Amount, b.VAT, b.PCT,
			b.DisplayStatus, b.FileName, b.Commentary,
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if len(bills) > 0 {
		total := fmt.Sprintf("SUM(D2:D%d)", len(bills)+1)
		totalRow := len(bills) + 2
		if err := f.SetCellValue(SheetName, fmt.Sprintf("C%d", totalRow), "Total"); err != nil {
			return fmt.Errorf("failed to write total label: %w", err)
		}
		if err := f.SetCellFormula(SheetName, fmt.Sprintf("D%d", totalRow), total); err != nil {
			return fmt.Errorf("failed to write total: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	e.logger.Debug("Bills exported", zap.Int("rows", len(bills)))
	return nil
}
