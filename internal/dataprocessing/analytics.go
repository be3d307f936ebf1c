package dataprocessing

import (
	"math"

	"github.com/Endio1/LAB-App-1/internal/errors"
	"github.com/Endio1/LAB-App-1/pkg/contracts/domain"
)

// statsLabels gives the series order of the correlation matrix.
var statsLabels = []string{"ace_before", "ace_after", "estimated"}

// ComputeStats produces descriptive statistics and the pairwise Pearson
// correlation matrix over the three signal series of the corrected
// table.
func ComputeStats(rows []domain.CorrectedRow) (*domain.DatasetStats, error) {
	if len(rows) == 0 {
		return nil, errors.NewEmptyInputError()
	}

	before := make([]float64, len(rows))
	after := make([]float64, len(rows))
	estimated := make([]float64, len(rows))
	for i, row := range rows {
		before[i] = row.Before
		after[i] = row.After
		estimated[i] = row.Estimated
	}

	series := [][]float64{before, after, estimated}
	corr := make([][]float64, len(series))
	for i := range series {
		corr[i] = make([]float64, len(series))
		for j := range series {
			corr[i][j] = pearson(series[i], series[j])
		}
	}

	return &domain.DatasetStats{
		Before:      seriesStats(before),
		After:       seriesStats(after),
		Estimated:   seriesStats(estimated),
		Labels:      statsLabels,
		Correlation: corr,
	}, nil
}

// seriesStats computes mean, sample variance, standard deviation, min
// and max for one series.
func seriesStats(values []float64) domain.SeriesStats {
	n := float64(len(values))

	var sum float64
	min, max := values[0], values[0]
	for _, v := range values {
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	mean := sum / n

	var variance float64
	if len(values) > 1 {
		var sq float64
		for _, v := range values {
			d := v - mean
			sq += d * d
		}
		variance = sq / (n - 1)
	}

	return domain.SeriesStats{
		Mean:     mean,
		Variance: variance,
		StdDev:   math.Sqrt(variance),
		Min:      min,
		Max:      max,
	}
}

// pearson computes the Pearson correlation coefficient of two series of
// equal length. A zero-variance series has no defined correlation;
// 0 is returned for those pairs, except the self-pair which is 1.
func pearson(a, b []float64) float64 {
	n := float64(len(a))

	var sumA, sumB float64
	for i := range a {
		sumA += a[i]
		sumB += b[i]
	}
	meanA, meanB := sumA/n, sumB/n

	var cov, varA, varB float64
	for i := range a {
		da, db := a[i]-meanA, b[i]-meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}

	if varA == 0 && varB == 0 && sameSeries(a, b) {
		return 1
	}
	if varA == 0 || varB == 0 {
		return 0
	}
	return cov / math.Sqrt(varA*varB)
}

func sameSeries(a, b []float64) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
