package dataprocessing

import (
	"math"

	"github.com/Endio1/LAB-App-1/pkg/contracts/domain"
)

// Estimate computes the corrected value for one detection row. Rows
// without an anomaly return Before verbatim, with no rounding applied,
// so re-running the pipeline introduces no drift. Anomalous rows are
// reconstructed from Before and the dataset-wide capped percentage:
//
//	before × (1 + cappedPct/100)
//
// rounded half away from zero to the given number of decimals. The
// after value is never consulted.
func Estimate(row domain.DetectionRow, cappedPct float64, decimals int) float64 {
	if row.AnomalyScore == domain.ScoreNominal {
		return row.Before
	}
	return roundTo(row.Before*(1+cappedPct/100), decimals)
}

// roundTo rounds half away from zero at the given decimal position.
// math.Round already implements half-away-from-zero semantics.
func roundTo(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}
