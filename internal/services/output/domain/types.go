// Package domain holds the core types and ports for the output pipeline
package domain

// Result columns expected in the model's output table, in export order
var ResultColumns = []string{
	"SubAdminID", "SubAdminName", "Result", "n", "N", "bayes", "freq", "freq.se",
}

// ResultRow is one typed prevalence estimate. Field order matches the model's
// column order; encoding/json preserves it in the exported array. Pointers
// carry the model's NA cells through as JSON nulls
type ResultRow struct {
	SubAdminID   *string  `json:"SubAdminID"`
	SubAdminName *string  `json:"SubAdminName"`
	Result       *string  `json:"Result"`
	N            *int64   `json:"n"`
	Total        *int64   `json:"N"`
	Bayes        *float64 `json:"bayes"`
	Freq         *float64 `json:"freq"`
	FreqSE       *float64 `json:"freq.se"`
}
