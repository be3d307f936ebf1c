// Package dataprocessing implements the ACE signal correction pipeline:
// ingestion of tabular before/after measurements, anomaly
// classification, error summarization, and derivation of the corrected
// estimate series.
//
// # Architecture
//
// The package is organized around four small components:
//
//  1. Parser: reads .xlsx or .csv input into a typed Dataset, validating
//     the schema once at ingestion
//  2. Classifier: derives the detection columns for each row
//  3. Summarizer: aggregates per-row errors into the summary scalars
//     and the capped correction percentage
//  4. Pipeline: sequences the above into Table A (raw detection),
//     Table B (corrected), and the summary
//
// ComputeStats additionally produces descriptive statistics and a
// correlation matrix over the corrected table.
//
// # Data flow
//
//	Workbook/CSV → Parser → Dataset → Pipeline → Table A + Table B + Summary
//
// # Error handling
//
// Malformed input fails the whole batch with an error identifying the
// offending row and column; empty datasets and zero before-means are
// rejected explicitly instead of surfacing NaN or Inf in the output.
// The pipeline itself performs no I/O and no retries: it is a pure,
// deterministic function of its input rows plus the configured cap.
package dataprocessing
