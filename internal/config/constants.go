package config

import "time"

// Application constants for the ACE Signal Correction Lab.
const (
	AppName    = "ACE Signal Lab"
	AppVersion = "1.0.0"

	// EnvPrefix namespaces all environment variables (ACELAB_SERVER_PORT, ...).
	EnvPrefix = "ACELAB"

	// DefaultConfigFile is picked up from the working directory when no
	// explicit config file is named.
	DefaultConfigFile = "config.yaml"

	// Correction policy. DefaultErrorCapPct is the fixed ceiling on the
	// average error percentage used to correct anomalous rows; it is a
	// policy constant, tunable through PipelineConfig without touching
	// the algorithm.
	DefaultErrorCapPct    = 5.0
	DefaultEstimateDecimals = 4

	// Required input columns.
	ColumnTimestamp = "timestamp"
	ColumnBefore    = "ace_before"
	ColumnAfter     = "ace_after"

	// Derived output columns.
	ColumnAnomalyScore = "anomaly_score"
	ColumnIsAnomaly    = "is_anomaly"
	ColumnMoreOrLess   = "more_or_less"
	ColumnError        = "error"
	ColumnEstimated    = "estimated"

	// Snapshot artifact naming. The processing timestamp keeps names
	// deterministic per run: table1_raw_20060102_150405.xlsx.
	SnapshotRawPrefix       = "table1_raw_"
	SnapshotCorrectedPrefix = "table2_corrected_"
	SnapshotTimeFormat      = "20060102_150405"

	// Upload handling.
	MaxUploadBytes     = 10 << 20 // 10 MiB
	UploadFormField    = "file"

	// Timeouts.
	DefaultHTTPTimeout    = 30 * time.Second
	DefaultProcessTimeout = 2 * time.Minute
)

// TimestampLayouts are tried in order when parsing the timestamp column.
var TimestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01/02/2006 15:04",
	"01/02/2006",
}
