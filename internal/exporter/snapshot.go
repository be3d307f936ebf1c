package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Endio1/LAB-App-1/internal/config"
	"github.com/Endio1/LAB-App-1/internal/dataprocessing"
	"github.com/Endio1/LAB-App-1/internal/errors"
	"github.com/Endio1/LAB-App-1/pkg/contracts/domain"
)

// SnapshotExporter persists one pipeline run as a pair of timestamped
// table files: the raw detection table and the corrected table. Both
// snapshots of a run carry the same timestamp so they pair up on disk.
type SnapshotExporter struct {
	logger *slog.Logger
	paths  *config.Paths
	csv    *CSVWriter
	excel  *ExcelWriter
	format domain.ArtifactFormat
	now    func() time.Time
}

// NewSnapshotExporter creates a snapshot exporter writing in the given
// format under the configured output directory.
func NewSnapshotExporter(logger *slog.Logger, paths *config.Paths, format domain.ArtifactFormat) *SnapshotExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SnapshotExporter{
		logger: logger,
		paths:  paths,
		csv:    NewCSVWriter(paths),
		excel:  NewExcelWriter(paths),
		format: format,
		now:    time.Now,
	}
}

// Export writes both tables of a pipeline result, one file per table,
// in parallel. The extra columns of the source dataset are carried
// through between the measurement and detection columns.
func (e *SnapshotExporter) Export(ctx context.Context, extras []string, result *dataprocessing.Result) ([]domain.Artifact, error) {
	stamp := e.now().UTC().Format(config.SnapshotTimeFormat)
	ext := "." + string(e.format)

	rawName := config.SnapshotRawPrefix + stamp + ext
	correctedName := config.SnapshotCorrectedPrefix + stamp + ext

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return e.writeTable(ctx, rawName, rawHeaders(extras), rawRows(extras, result.TableA))
	})
	g.Go(func() error {
		return e.writeTable(ctx, correctedName, correctedHeaders(extras), correctedRows(extras, result.TableB))
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.logger.InfoContext(ctx, "snapshot exported",
		slog.String("raw", rawName),
		slog.String("corrected", correctedName),
		slog.Int("rows", len(result.TableA)))

	return []domain.Artifact{
		{Name: rawName, Path: e.paths.OutputPath(rawName), Table: domain.TableRaw, Format: e.format},
		{Name: correctedName, Path: e.paths.OutputPath(correctedName), Table: domain.TableCorrected, Format: e.format},
	}, nil
}

func (e *SnapshotExporter) writeTable(ctx context.Context, name string, headers []string, rows [][]interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var err error
	switch e.format {
	case domain.ArtifactCSV:
		err = e.csv.WriteSimpleCSV(name, headers, toCSVRecords(rows))
	case domain.ArtifactXLSX:
		err = e.excel.WriteWorkbook(name, "Sheet1", headers, rows)
	default:
		return errors.NewConfigError(fmt.Sprintf("unsupported snapshot format %q", e.format), nil)
	}
	if err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to write snapshot %s", name), err)
	}
	return nil
}

// rawHeaders lists the column order of the detection table snapshot.
func rawHeaders(extras []string) []string {
	headers := []string{config.ColumnTimestamp, config.ColumnBefore, config.ColumnAfter}
	headers = append(headers, extras...)
	return append(headers,
		config.ColumnAnomalyScore,
		config.ColumnIsAnomaly,
		config.ColumnMoreOrLess,
		config.ColumnError)
}

func correctedHeaders(extras []string) []string {
	return append(rawHeaders(extras), config.ColumnEstimated)
}

func rawRows(extras []string, table []domain.DetectionRow) [][]interface{} {
	rows := make([][]interface{}, len(table))
	for i, row := range table {
		rows[i] = detectionCells(extras, row)
	}
	return rows
}

func correctedRows(extras []string, table []domain.CorrectedRow) [][]interface{} {
	rows := make([][]interface{}, len(table))
	for i, row := range table {
		rows[i] = append(detectionCells(extras, row.DetectionRow), row.Estimated)
	}
	return rows
}

func detectionCells(extras []string, row domain.DetectionRow) []interface{} {
	cells := []interface{}{
		row.Timestamp.Format(timestampLayout),
		row.Before,
		row.After,
	}
	for _, name := range extras {
		cells = append(cells, row.Extra[name])
	}
	return append(cells, row.AnomalyScore, row.IsAnomaly, string(row.Direction), row.Error)
}
