package exporter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSimpleCSV(t *testing.T) {
	paths := testPaths(t)
	w := NewCSVWriter(paths)

	err := w.WriteSimpleCSV("test.csv",
		[]string{"timestamp", "ace_before"},
		[][]string{{"2024-03-01", "10"}, {"2024-03-02", "11.5"}})
	require.NoError(t, err)

	records := readCSVFile(t, paths.OutputPath("test.csv"))
	require.Len(t, records, 3)
	assert.Equal(t, []string{"timestamp", "ace_before"}, records[0])
	assert.Equal(t, []string{"2024-03-02", "11.5"}, records[2])
}

func TestWriteCSVAppend(t *testing.T) {
	paths := testPaths(t)
	w := NewCSVWriter(paths)

	require.NoError(t, w.WriteSimpleCSV("append.csv",
		[]string{"a", "b"}, [][]string{{"1", "2"}}))
	require.NoError(t, w.WriteCSV("append.csv", WriteOptions{
		Records: [][]string{{"3", "4"}},
		Append:  true,
	}))

	records := readCSVFile(t, paths.OutputPath("append.csv"))
	require.Len(t, records, 3)
	assert.Equal(t, []string{"3", "4"}, records[2])
}

func TestWriteCSVAbsolutePath(t *testing.T) {
	paths := testPaths(t)
	w := NewCSVWriter(paths)

	target := filepath.Join(t.TempDir(), "nested", "out.csv")
	require.NoError(t, w.WriteCSV(target, WriteOptions{
		Headers: []string{"a"},
		Records: [][]string{{"1"}},
	}))

	_, err := os.Stat(target)
	assert.NoError(t, err)
}
