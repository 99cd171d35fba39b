// Package demography implements the two-phase demography transform:
// deer-density records are converted to absolute populations using the
// matching area's land area, then all records are summed into one grand
// total per sub-administrative area
package demography

import (
	"math"

	perr "cwdbridge/internal/platform/errors"
)

const (
	// MetricDeerDensity tags records whose values are deer per square kilometer
	MetricDeerDensity = "deer density"

	// MetricConvertedPopulation replaces MetricDeerDensity after conversion
	MetricConvertedPopulation = "total population (converted from density)"

	// land areas arrive in square meters; densities in animals per square km
	sqMetersPerSqKm = 1_000_000
)

// Entry is one (area id, value) pair from a record's data mapping,
// in document order
type Entry struct {
	AreaID string
	Value  float64
}

// Total is the aggregated population for one area, in first-seen order
type Total struct {
	AreaID string
	Value  float64
}

// Population converts a density (animals per square km) over a land area in
// square meters to a whole-animal count, rounding ties to even like the
// upstream estimator expects
func Population(density, landAreaM2 float64) int64 {
	return int64(math.RoundToEven(density * (landAreaM2 / sqMetersPerSqKm)))
}

// ConvertDensity rewrites every entry of a deer-density record in place,
// replacing the density with the converted population. landByArea is keyed
// by area id; a density entry for an unknown area is a hard error since the
// conversion would otherwise silently fabricate a population
func ConvertDensity(entries []Entry, landByArea map[string]float64) error {
	for i := range entries {
		land, ok := landByArea[entries[i].AreaID]
		if !ok {
			return perr.Conflictf("deer density references unknown sub-administrative area %q", entries[i].AreaID)
		}
		entries[i].Value = float64(Population(entries[i].Value, land))
	}
	return nil
}

// Aggregate sums entries across all records into one total per area id.
// Species and season-year are deliberately collapsed: the estimator wants a
// single population figure per area. Order of the result is first-seen order
// during summation
func Aggregate(records [][]Entry) []Total {
	idx := make(map[string]int)
	totals := make([]Total, 0)
	for _, rec := range records {
		for _, e := range rec {
			if i, ok := idx[e.AreaID]; ok {
				totals[i].Value += e.Value
				continue
			}
			idx[e.AreaID] = len(totals)
			totals = append(totals, Total{AreaID: e.AreaID, Value: e.Value})
		}
	}
	return totals
}
