package exporter

import (
	"fmt"
	"strconv"
	"time"
)

// timestampLayout is the cell format for exported timestamps.
const timestampLayout = "2006-01-02 15:04:05"

// formatFloat formats a float64 for CSV output using the shortest
// representation that round-trips, so re-parsing an exported snapshot
// reproduces the values exactly.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatBool formats a boolean value for CSV output
func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// formatValue renders a typed cell value as CSV text
func formatValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return formatFloat(val)
	case int:
		return strconv.Itoa(val)
	case bool:
		return formatBool(val)
	case time.Time:
		return val.Format(timestampLayout)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// toCSVRecords converts typed rows into CSV string records
func toCSVRecords(rows [][]interface{}) [][]string {
	records := make([][]string, len(rows))
	for i, row := range rows {
		record := make([]string, len(row))
		for j, cell := range row {
			record[j] = formatValue(cell)
		}
		records[i] = record
	}
	return records
}
