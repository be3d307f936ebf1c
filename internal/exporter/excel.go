package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/Endio1/LAB-App-1/internal/config"
)

// ExcelWriter provides xlsx export functionality. Cell values keep
// their native types so numeric columns stay numeric in the workbook.
type ExcelWriter struct {
	paths *config.Paths
}

// NewExcelWriter creates a new Excel writer instance
func NewExcelWriter(paths *config.Paths) *ExcelWriter {
	return &ExcelWriter{paths: paths}
}

// WriteWorkbook writes headers and records to a single-sheet workbook
func (w *ExcelWriter) WriteWorkbook(filePath, sheetName string, headers []string, records [][]interface{}) error {
	fullPath := w.resolvePath(filePath)

	slog.Info("Writing Excel file",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.String("sheet", sheetName),
		slog.Int("record_count", len(records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if sheetName != "" && sheetName != f.GetSheetName(0) {
		if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
			return fmt.Errorf("failed to rename sheet: %w", err)
		}
	} else {
		sheetName = f.GetSheetName(0)
	}

	headerRow := make([]interface{}, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &headerRow); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i, err)
		}
		if err := f.SetSheetRow(sheetName, cell, &record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	if err := f.SaveAs(fullPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// resolvePath resolves a relative path against the output directory
func (w *ExcelWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) {
		return filePath
	}
	return w.paths.OutputPath(filePath)
}
