package domain

import (
	"time"
)

// ArtifactFormat identifies the serialization of an exported snapshot.
type ArtifactFormat string

const (
	ArtifactXLSX ArtifactFormat = "xlsx"
	ArtifactCSV  ArtifactFormat = "csv"
)

// Artifact describes one exported snapshot file on disk.
type Artifact struct {
	Name   string         `json:"name"`
	Path   string         `json:"path"`
	Table  string         `json:"table"`
	Format ArtifactFormat `json:"format"`
}

// Snapshot table identifiers used in artifact names and listings.
const (
	TableRaw       = "raw"
	TableCorrected = "corrected"
)

// CorrectionResult is the full envelope returned by one pipeline run:
// the raw detection table, the corrected table, the summary scalars,
// descriptive statistics, and the snapshot artifacts written for it.
type CorrectionResult struct {
	RunID       string         `json:"run_id"`
	ProcessedAt time.Time      `json:"processed_at"`
	RowCount    int            `json:"row_count"`
	TableA      []DetectionRow `json:"table_a"`
	TableB      []CorrectedRow `json:"table_b"`
	Summary     ErrorSummary   `json:"summary"`
	Stats       *DatasetStats  `json:"stats,omitempty"`
	Artifacts   []Artifact     `json:"artifacts,omitempty"`
}
