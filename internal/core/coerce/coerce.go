// Package coerce converts the all-text fields of the model result table
// into typed values. The literal "NA" denotes null in every field; numeric
// fields degrade unparseable values to null rather than erroring
package coerce

import (
	"math"
	"strconv"
)

// na is the null sentinel the estimator writes for missing values
const na = "NA"

// Text maps "NA" to nil, anything else passes through as-is.
// An empty string is a value, not a null
func Text(s string) *string {
	if s == na {
		return nil
	}
	return &s
}

// Int maps "NA" and unparseable values to nil
func Int(s string) *int64 {
	if s == na {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

// Float maps "NA" and unparseable values to nil. Non-finite literals
// ("NaN", "Inf") parse successfully but have no JSON representation, so
// they degrade to nil as well; the estimator writes them for estimates
// it could not compute
func Float(s string) *float64 {
	if s == na {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
