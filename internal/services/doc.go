// Package services contains the business logic layer between transport
// and the data processing pipeline. CorrectionService owns the full
// workflow of one correction run: input validation, parsing, detection
// and correction, descriptive statistics, and snapshot export.
package services
