package domain

import (
	"time"
)

// Direction classifies the sign of the after-minus-before movement for a reading.
type Direction string

const (
	DirectionMore  Direction = "more"
	DirectionLess  Direction = "less"
	DirectionEqual Direction = "equal"
)

// Anomaly score values. A reading is anomalous whenever the before and
// after values differ; this is a change detector, not a statistical
// outlier test.
const (
	ScoreAnomalous = 1
	ScoreNominal   = -1
)

// SignalReading represents one raw input row of the ACE dataset.
// Before and After must be finite numbers; input order is preserved
// throughout the pipeline and is never re-sorted.
type SignalReading struct {
	Timestamp time.Time         `json:"timestamp" validate:"required"`
	Before    float64           `json:"ace_before"`
	After     float64           `json:"ace_after"`
	Extra     map[string]string `json:"extra,omitempty"`
}

// Dataset is an ordered batch of signal readings plus the names of any
// passthrough columns found in the source file. Extra columns are carried
// untouched into both output tables.
type Dataset struct {
	Rows         []SignalReading `json:"rows"`
	ExtraColumns []string        `json:"extra_columns,omitempty"`
	Source       string          `json:"source,omitempty"`
}

// DetectionRow is a SignalReading enriched with the four derived
// detection columns (Table A).
//
// Invariant: IsAnomaly == (AnomalyScore == ScoreAnomalous) == (Error > 0)
// == (Direction != DirectionEqual).
type DetectionRow struct {
	SignalReading
	AnomalyScore int       `json:"anomaly_score"`
	IsAnomaly    bool      `json:"is_anomaly"`
	Direction    Direction `json:"more_or_less"`
	Error        float64   `json:"error"`
}

// CorrectedRow is a DetectionRow plus the corrected estimate column
// (Table B). Estimated is a pure function of (Before, AnomalyScore,
// CappedPct); it never reads After.
type CorrectedRow struct {
	DetectionRow
	Estimated float64 `json:"estimated"`
}
