package dataprocessing

import (
	"context"
	"log/slog"
	"math"

	"github.com/Endio1/LAB-App-1/internal/config"
	"github.com/Endio1/LAB-App-1/internal/errors"
	"github.com/Endio1/LAB-App-1/pkg/contracts/domain"
)

// Summarizer aggregates per-row errors into the dataset-level summary
// scalars, including the capped percentage used for correction.
type Summarizer struct {
	logger *slog.Logger
	capPct float64
}

// NewSummarizer creates a summarizer with the given error cap ceiling.
// Pass config.DefaultErrorCapPct unless the deployment tunes it.
func NewSummarizer(logger *slog.Logger, capPct float64) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	if capPct < 0 {
		capPct = config.DefaultErrorCapPct
	}
	return &Summarizer{logger: logger, capPct: capPct}
}

// Summarize computes avg_error, avg_error_pct, total_error and
// capped_pct over the detection table. It rejects empty input and a
// zero before-mean explicitly instead of emitting NaN or Inf summaries.
func (s *Summarizer) Summarize(ctx context.Context, rows []domain.DetectionRow) (domain.ErrorSummary, error) {
	if len(rows) == 0 {
		return domain.ErrorSummary{}, errors.NewEmptyInputError()
	}

	var totalError, totalBefore float64
	for _, row := range rows {
		totalError += row.Error
		totalBefore += row.Before
	}

	n := float64(len(rows))
	avgError := totalError / n
	meanBefore := totalBefore / n

	if meanBefore == 0 {
		return domain.ErrorSummary{}, errors.NewDegenerateBaselineError()
	}

	avgErrorPct := avgError / meanBefore * 100
	summary := domain.ErrorSummary{
		AvgError:    avgError,
		AvgErrorPct: avgErrorPct,
		TotalError:  totalError,
		CappedPct:   math.Min(avgErrorPct, s.capPct),
	}

	s.logger.DebugContext(ctx, "summarized detection table",
		slog.Int("rows", len(rows)),
		slog.Float64("avg_error", summary.AvgError),
		slog.Float64("avg_error_pct", summary.AvgErrorPct),
		slog.Float64("capped_pct", summary.CappedPct),
	)

	return summary, nil
}
