package dataprocessing

import (
	"math"

	"github.com/Endio1/LAB-App-1/pkg/contracts/domain"
)

// Detection holds the four derived values the anomaly classifier
// produces for one (before, after) pair.
type Detection struct {
	Score     int
	IsAnomaly bool
	Direction domain.Direction
	Error     float64
}

// Classify derives the detection columns for one reading. An anomaly is
// any pair whose values differ under exact float comparison; this is a
// change detector, not a statistical outlier test, and upstream float
// noise will flip rows to anomalous. The direction is evaluated from the
// ordering operators independently of the equality test so the two stay
// consistent at float edge cases.
//
// NaN inputs compare not-equal to everything, so a NaN before or after
// yields Score +1 with a NaN Error. The parser rejects non-finite cells
// before they reach the pipeline; this behavior exists for direct
// callers only.
func Classify(before, after float64) Detection {
	d := Detection{
		Direction: direction(before, after),
	}

	if before != after {
		d.Score = domain.ScoreAnomalous
		d.IsAnomaly = true
		d.Error = math.Abs(after - before)
	} else {
		d.Score = domain.ScoreNominal
		// Exactly zero, never a near-zero subtraction artifact.
		d.Error = 0
	}

	return d
}

func direction(before, after float64) domain.Direction {
	switch {
	case after > before:
		return domain.DirectionMore
	case after < before:
		return domain.DirectionLess
	default:
		return domain.DirectionEqual
	}
}

// ClassifyReading wraps Classify for a full input row, producing the
// Table A row for it.
func ClassifyReading(r domain.SignalReading) domain.DetectionRow {
	d := Classify(r.Before, r.After)
	return domain.DetectionRow{
		SignalReading: r,
		AnomalyScore:  d.Score,
		IsAnomaly:     d.IsAnomaly,
		Direction:     d.Direction,
		Error:         d.Error,
	}
}
