// Package exporter persists pipeline results as snapshot files.
//
// This package contains three main components:
//
// CSVWriter: Core CSV writing functionality with support for headers
// and UTF-8 BOM for Excel compatibility.
//
// ExcelWriter: Single-sheet xlsx writing with typed cells, so numeric
// columns stay numeric when the snapshot is opened in a spreadsheet.
//
// SnapshotExporter: Writes the raw detection table and the corrected
// table of one run as a timestamped file pair, in CSV or xlsx form.
//
// Example usage:
//
//	exp := exporter.NewSnapshotExporter(logger, paths, domain.ArtifactCSV)
//	artifacts, err := exp.Export(ctx, dataset.ExtraColumns, result)
package exporter
