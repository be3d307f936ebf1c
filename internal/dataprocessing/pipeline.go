package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/Endio1/LAB-App-1/internal/config"
	"github.com/Endio1/LAB-App-1/internal/errors"
	"github.com/Endio1/LAB-App-1/pkg/contracts/domain"
)

// Result is the output of one pipeline run: the raw detection table,
// the corrected table, and the summary scalars. Table B rows embed
// their Table A columns, so the two tables share one representation
// while remaining distinct named views.
type Result struct {
	TableA  []domain.DetectionRow
	TableB  []domain.CorrectedRow
	Summary domain.ErrorSummary
}

// Pipeline sequences classification, summarization and correction over
// one dataset. It is a pure function of its input plus the configured
// cap constant: no state survives a run, and concurrent runs on
// separate datasets are independent.
type Pipeline struct {
	logger     *slog.Logger
	cfg        config.PipelineConfig
	summarizer *Summarizer
}

// NewPipeline creates a pipeline with the given policy configuration.
func NewPipeline(logger *slog.Logger, cfg config.PipelineConfig) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.EstimateDecimals == 0 {
		cfg.EstimateDecimals = config.DefaultEstimateDecimals
	}
	return &Pipeline{
		logger:     logger,
		cfg:        cfg,
		summarizer: NewSummarizer(logger, cfg.ErrorCapPct),
	}
}

// Run executes the full correction pipeline over the dataset in a
// single pass: validate, classify every row into Table A, aggregate
// the summary, then derive Table B using the capped percentage. Any
// malformed row fails the whole run with an error naming the row and
// field; no partial tables are returned.
func (p *Pipeline) Run(ctx context.Context, ds domain.Dataset) (*Result, error) {
	if len(ds.Rows) == 0 {
		return nil, errors.NewEmptyInputError()
	}
	if p.cfg.MaxRows > 0 && len(ds.Rows) > p.cfg.MaxRows {
		return nil, errors.NewValidationError(
			fmt.Sprintf("dataset has %d rows, exceeding the %d row limit", len(ds.Rows), p.cfg.MaxRows))
	}

	if err := validateRows(ds.Rows); err != nil {
		return nil, err
	}

	tableA := make([]domain.DetectionRow, len(ds.Rows))
	anomalies := 0
	for i, row := range ds.Rows {
		tableA[i] = ClassifyReading(row)
		if tableA[i].IsAnomaly {
			anomalies++
		}
	}

	summary, err := p.summarizer.Summarize(ctx, tableA)
	if err != nil {
		return nil, err
	}

	tableB := make([]domain.CorrectedRow, len(tableA))
	for i, row := range tableA {
		tableB[i] = domain.CorrectedRow{
			DetectionRow: row,
			Estimated:    Estimate(row, summary.CappedPct, p.cfg.EstimateDecimals),
		}
	}

	p.logger.InfoContext(ctx, "pipeline run completed",
		slog.Int("rows", len(tableA)),
		slog.Int("anomalies", anomalies),
		slog.Float64("capped_pct", summary.CappedPct),
	)

	return &Result{TableA: tableA, TableB: tableB, Summary: summary}, nil
}

// validateRows rejects non-finite measurements up front so the pure
// computation below never sees NaN or Inf.
func validateRows(rows []domain.SignalReading) error {
	for i, row := range rows {
		if !isFinite(row.Before) {
			return errors.NewSchemaError(
				fmt.Sprintf("row %d: %s is not a finite number", i, config.ColumnBefore),
				i, config.ColumnBefore)
		}
		if !isFinite(row.After) {
			return errors.NewSchemaError(
				fmt.Sprintf("row %d: %s is not a finite number", i, config.ColumnAfter),
				i, config.ColumnAfter)
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
