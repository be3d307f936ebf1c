package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Endio1/LAB-App-1/internal/config"
	"github.com/Endio1/LAB-App-1/internal/errors"
	"github.com/Endio1/LAB-App-1/pkg/contracts/domain"
)

// excelEpoch is the zero date of Excel's serial date numbers.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ParseFile reads a signal dataset from an .xlsx workbook or a .csv
// file, dispatching on the extension.
func ParseFile(path string) (domain.Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return ParseWorkbook(path)
	case ".csv":
		return ParseCSVFile(path)
	default:
		return domain.Dataset{}, errors.NewValidationError(
			fmt.Sprintf("unsupported input file type %q: expected .xlsx or .csv", filepath.Ext(path)))
	}
}

// ParseWorkbook reads the first sheet of an Excel workbook containing
// the columns timestamp, ace_before and ace_after. The header row is
// located dynamically; columns beyond the required three are carried
// through as extras.
func ParseWorkbook(path string) (domain.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return domain.Dataset{}, errors.NewParsingError("failed to open workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return domain.Dataset{}, errors.NewParsingError("workbook has no sheets", nil)
	}

	var rows [][]string
	sheetName := sheets[0]
	for _, name := range sheets {
		candidate, err := f.GetRows(name)
		if err != nil {
			continue
		}
		if headerRowIndex(candidate) >= 0 {
			rows = candidate
			sheetName = name
			break
		}
	}
	if rows == nil {
		// Fall back to the first sheet so the error names the columns.
		rows, err = f.GetRows(sheetName)
		if err != nil {
			return domain.Dataset{}, errors.NewParsingError("failed to read sheet rows", err)
		}
	}

	slog.Debug("parsing workbook sheet",
		slog.String("path", path),
		slog.String("sheet", sheetName),
		slog.Int("rows", len(rows)))

	return buildDataset(rows, path)
}

// ParseCSVFile reads a CSV file with the same column contract as
// ParseWorkbook.
func ParseCSVFile(path string) (domain.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Dataset{}, errors.NewParsingError("failed to open CSV file", err)
	}
	defer f.Close()

	return ParseCSV(f, path)
}

// ParseCSV reads a dataset from CSV content.
func ParseCSV(r io.Reader, source string) (domain.Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return domain.Dataset{}, errors.NewParsingError("failed to read CSV content", err)
	}

	return buildDataset(rows, source)
}

// headerRowIndex finds the first row containing all three required
// columns, or -1.
func headerRowIndex(rows [][]string) int {
	for i, row := range rows {
		cols := headerColumns(row)
		if _, ok := cols[config.ColumnTimestamp]; !ok {
			continue
		}
		if _, ok := cols[config.ColumnBefore]; !ok {
			continue
		}
		if _, ok := cols[config.ColumnAfter]; ok {
			return i
		}
	}
	return -1
}

// headerColumns maps normalized header names to their column index.
func headerColumns(row []string) map[string]int {
	cols := make(map[string]int, len(row))
	for i, cell := range row {
		name := strings.ToLower(strings.TrimSpace(cell))
		if name == "" {
			continue
		}
		if _, exists := cols[name]; !exists {
			cols[name] = i
		}
	}
	return cols
}

// buildDataset converts raw string rows into a typed Dataset, validating
// once at ingestion and rejecting rather than coercing on mismatch.
func buildDataset(rows [][]string, source string) (domain.Dataset, error) {
	header := headerRowIndex(rows)
	if header < 0 {
		// Name the first missing column for the operator.
		known := map[string]int{}
		if len(rows) > 0 {
			known = headerColumns(rows[0])
		}
		for _, col := range []string{config.ColumnTimestamp, config.ColumnBefore, config.ColumnAfter} {
			if _, ok := known[col]; !ok {
				return domain.Dataset{}, errors.NewMissingColumnError(col)
			}
		}
		return domain.Dataset{}, errors.NewMissingColumnError(config.ColumnTimestamp)
	}

	cols := headerColumns(rows[header])
	tsCol := cols[config.ColumnTimestamp]
	beforeCol := cols[config.ColumnBefore]
	afterCol := cols[config.ColumnAfter]

	// Remaining named columns pass through untouched, in header order.
	var extraNames []string
	extraCols := make(map[string]int)
	for i, cell := range rows[header] {
		name := strings.TrimSpace(cell)
		lower := strings.ToLower(name)
		if name == "" || lower == config.ColumnTimestamp || lower == config.ColumnBefore || lower == config.ColumnAfter {
			continue
		}
		extraNames = append(extraNames, name)
		extraCols[name] = i
	}

	ds := domain.Dataset{
		ExtraColumns: extraNames,
		Source:       filepath.Base(source),
	}

	dataIndex := 0
	for i := header + 1; i < len(rows); i++ {
		row := rows[i]
		if isBlankRow(row) {
			continue
		}

		reading, err := parseReading(row, dataIndex, tsCol, beforeCol, afterCol, extraNames, extraCols)
		if err != nil {
			return domain.Dataset{}, err
		}
		ds.Rows = append(ds.Rows, reading)
		dataIndex++
	}

	return ds, nil
}

func parseReading(row []string, dataIndex, tsCol, beforeCol, afterCol int, extraNames []string, extraCols map[string]int) (domain.SignalReading, error) {
	ts, err := parseTimestamp(cellAt(row, tsCol), dataIndex)
	if err != nil {
		return domain.SignalReading{}, err
	}

	before, err := parseNumericCell(cellAt(row, beforeCol), dataIndex, config.ColumnBefore)
	if err != nil {
		return domain.SignalReading{}, err
	}

	after, err := parseNumericCell(cellAt(row, afterCol), dataIndex, config.ColumnAfter)
	if err != nil {
		return domain.SignalReading{}, err
	}

	reading := domain.SignalReading{
		Timestamp: ts,
		Before:    before,
		After:     after,
	}

	if len(extraNames) > 0 {
		reading.Extra = make(map[string]string, len(extraNames))
		for _, name := range extraNames {
			reading.Extra[name] = cellAt(row, extraCols[name])
		}
	}

	return reading, nil
}

func cellAt(row []string, col int) string {
	if col < len(row) {
		return strings.TrimSpace(row[col])
	}
	return ""
}

// parseTimestamp accepts the configured date-time layouts or an Excel
// serial date number, which is what excelize yields for date cells
// without an explicit string format.
func parseTimestamp(cell string, dataIndex int) (time.Time, error) {
	if cell == "" {
		return time.Time{}, errors.NewSchemaError(
			fmt.Sprintf("row %d: %s is empty", dataIndex, config.ColumnTimestamp),
			dataIndex, config.ColumnTimestamp)
	}

	for _, layout := range config.TimestampLayouts {
		if ts, err := time.Parse(layout, cell); err == nil {
			return ts, nil
		}
	}

	if serial, err := strconv.ParseFloat(cell, 64); err == nil && serial > 0 {
		return excelEpoch.Add(time.Duration(serial * float64(24*time.Hour))), nil
	}

	return time.Time{}, errors.NewSchemaError(
		fmt.Sprintf("row %d: %s %q is not a recognized date-time or ordinal", dataIndex, config.ColumnTimestamp, cell),
		dataIndex, config.ColumnTimestamp)
}

func parseNumericCell(cell string, dataIndex int, column string) (float64, error) {
	if cell == "" {
		return 0, errors.NewSchemaError(
			fmt.Sprintf("row %d: %s is missing", dataIndex, column),
			dataIndex, column)
	}

	v, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64)
	if err != nil {
		return 0, errors.NewSchemaError(
			fmt.Sprintf("row %d: %s %q is not numeric", dataIndex, column, cell),
			dataIndex, column)
	}
	return v, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
