package domain

// ErrorSummary holds the dataset-level error scalars. CappedPct is a
// single global value computed once per dataset and applied uniformly to
// every anomalous row's correction; it is never per-row.
type ErrorSummary struct {
	AvgError    float64 `json:"avg_error"`
	AvgErrorPct float64 `json:"avg_error_pct"`
	TotalError  float64 `json:"total_error"`
	CappedPct   float64 `json:"capped_pct"`
}
