package dataprocessing

import (
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Endio1/LAB-App-1/internal/errors"
)

// writeWorkbook builds a minimal xlsx fixture with the given header and
// rows on the default sheet.
func writeWorkbook(t *testing.T, header []string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, name := range header {
		col, err := excelize.ColumnNumberToName(i + 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, col+"1", name))
	}
	for r, row := range rows {
		for c, val := range row {
			col, err := excelize.ColumnNumberToName(c + 1)
			require.NoError(t, err)
			cell := col + strconv.Itoa(r+2)
			require.NoError(t, f.SetCellValue(sheet, cell, val))
		}
	}

	path := filepath.Join(t.TempDir(), "signals.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestParseWorkbook(t *testing.T) {
	path := writeWorkbook(t,
		[]string{"timestamp", "ace_before", "ace_after"},
		[][]interface{}{
			{"2024-03-01 00:00:00", 10.0, 10.0},
			{"2024-03-01 01:00:00", 10.0, 12.0},
			{"2024-03-01 02:00:00", 5.0, 4.0},
		})

	ds, err := ParseWorkbook(path)
	require.NoError(t, err)
	require.Len(t, ds.Rows, 3)

	assert.Equal(t, 10.0, ds.Rows[0].Before)
	assert.Equal(t, 12.0, ds.Rows[1].After)
	assert.Equal(t, time.Date(2024, 3, 1, 2, 0, 0, 0, time.UTC), ds.Rows[2].Timestamp)
	assert.Empty(t, ds.ExtraColumns)
	assert.Equal(t, "signals.xlsx", ds.Source)
}

func TestParseWorkbookExtraColumnsPassThrough(t *testing.T) {
	path := writeWorkbook(t,
		[]string{"timestamp", "site", "ace_before", "ace_after", "operator"},
		[][]interface{}{
			{"2024-03-01", "north", 1.5, 1.5, "amy"},
			{"2024-03-02", "south", 2.5, 3.0, "bob"},
		})

	ds, err := ParseWorkbook(path)
	require.NoError(t, err)
	require.Len(t, ds.Rows, 2)

	assert.Equal(t, []string{"site", "operator"}, ds.ExtraColumns)
	assert.Equal(t, "north", ds.Rows[0].Extra["site"])
	assert.Equal(t, "bob", ds.Rows[1].Extra["operator"])
}

func TestParseWorkbookMissingColumn(t *testing.T) {
	path := writeWorkbook(t,
		[]string{"timestamp", "ace_before"},
		[][]interface{}{{"2024-03-01", 1.0}})

	_, err := ParseWorkbook(path)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeSchema))
	assert.Contains(t, err.Error(), "ace_after")
}

func TestParseWorkbookNonNumericCell(t *testing.T) {
	path := writeWorkbook(t,
		[]string{"timestamp", "ace_before", "ace_after"},
		[][]interface{}{
			{"2024-03-01", 1.0, 1.0},
			{"2024-03-02", "offline", 2.0},
		})

	_, err := ParseWorkbook(path)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeSchema))

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 1, appErr.Context["row"])
	assert.Equal(t, "ace_before", appErr.Context["column"])
}

func TestParseWorkbookSkipsBlankRows(t *testing.T) {
	path := writeWorkbook(t,
		[]string{"timestamp", "ace_before", "ace_after"},
		[][]interface{}{
			{"2024-03-01", 1.0, 1.0},
			{"", "", ""},
			{"2024-03-03", 3.0, 3.5},
		})

	ds, err := ParseWorkbook(path)
	require.NoError(t, err)
	assert.Len(t, ds.Rows, 2)
}

func TestParseCSV(t *testing.T) {
	content := strings.Join([]string{
		"timestamp,ace_before,ace_after",
		"2024-03-01 00:00:00,10,10",
		"2024-03-01 01:00:00,10,12",
		`2024-03-01 02:00:00,"1,250.5",1250.5`,
	}, "\n")

	ds, err := ParseCSV(strings.NewReader(content), "signals.csv")
	require.NoError(t, err)
	require.Len(t, ds.Rows, 3)

	// Thousands separators are stripped before numeric parsing.
	assert.Equal(t, 1250.5, ds.Rows[2].Before)
	assert.Equal(t, "signals.csv", ds.Source)
}

func TestParseCSVEmptyBody(t *testing.T) {
	ds, err := ParseCSV(strings.NewReader("timestamp,ace_before,ace_after\n"), "empty.csv")
	require.NoError(t, err)
	assert.Empty(t, ds.Rows, "schema-only files parse to an empty dataset; the pipeline rejects them")
}

func TestParseFileUnsupportedExtension(t *testing.T) {
	_, err := ParseFile("signals.parquet")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeValidation))
}

func TestParseTimestampOrdinalFallback(t *testing.T) {
	// Excel serial 45352 is 2024-03-01.
	ts, err := parseTimestamp("45352", 0)
	require.NoError(t, err)
	assert.Equal(t, 2024, ts.Year())
	assert.Equal(t, time.March, ts.Month())
	assert.Equal(t, 1, ts.Day())
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	_, err := parseTimestamp("not-a-date", 4)
	require.Error(t, err)

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 4, appErr.Context["row"])
	assert.Equal(t, "timestamp", appErr.Context["column"])
}
