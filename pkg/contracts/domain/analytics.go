package domain

// SeriesStats holds descriptive statistics for one numeric series of the
// corrected table. Variance and StdDev use the sample (n-1) estimator.
type SeriesStats struct {
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
	StdDev   float64 `json:"std_dev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
}

// DatasetStats summarizes the three signal series of the corrected table
// and their pairwise Pearson correlations. Labels gives the row and
// column order of the correlation matrix.
type DatasetStats struct {
	Before      SeriesStats `json:"ace_before"`
	After       SeriesStats `json:"ace_after"`
	Estimated   SeriesStats `json:"estimated"`
	Labels      []string    `json:"labels"`
	Correlation [][]float64 `json:"correlation"`
}
