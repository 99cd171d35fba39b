package demography

import (
	"testing"

	perr "cwdbridge/internal/platform/errors"
)

func TestPopulation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		density float64
		landM2  float64
		want    int64
	}{
		{2, 1_000_000, 2},         // 1 km^2
		{2, 1_500_000_000, 3000},  // 1500 km^2
		{1, 2_500_000, 2},         // 2.5 rounds to even -> 2
		{1, 3_500_000, 4},         // 3.5 rounds to even -> 4
		{0, 1_000_000_000, 0},
		{0.5, 1_000_000, 0},       // 0.5 rounds to even -> 0
	}
	for _, c := range cases {
		if got := Population(c.density, c.landM2); got != c.want {
			t.Errorf("Population(%v, %v) = %d, want %d", c.density, c.landM2, got, c.want)
		}
	}
}

func TestConvertDensity(t *testing.T) {
	t.Parallel()

	land := map[string]float64{
		"55001": 1_500_000_000,
		"55003": 2_000_000_000,
	}
	entries := []Entry{
		{AreaID: "55001", Value: 2},
		{AreaID: "55003", Value: 1.5},
	}
	if err := ConvertDensity(entries, land); err != nil {
		t.Fatalf("ConvertDensity: %v", err)
	}
	if entries[0].Value != 3000 || entries[1].Value != 3000 {
		t.Fatalf("converted = %+v", entries)
	}
}

func TestConvertDensityUnknownArea(t *testing.T) {
	t.Parallel()

	err := ConvertDensity([]Entry{{AreaID: "99999", Value: 1}}, map[string]float64{})
	if !perr.IsCode(err, perr.ErrorCodeConflict) {
		t.Fatalf("want Conflict, got %v", err)
	}
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	totals := Aggregate([][]Entry{
		{{AreaID: "b", Value: 10}, {AreaID: "a", Value: 5}},
		{{AreaID: "a", Value: 2}, {AreaID: "c", Value: 1}},
	})

	// first-seen order across all records, values summed per area
	want := []Total{
		{AreaID: "b", Value: 10},
		{AreaID: "a", Value: 7},
		{AreaID: "c", Value: 1},
	}
	if len(totals) != len(want) {
		t.Fatalf("Aggregate = %+v", totals)
	}
	for i := range want {
		if totals[i] != want[i] {
			t.Fatalf("totals[%d] = %+v, want %+v", i, totals[i], want[i])
		}
	}
}

func TestAggregateEmpty(t *testing.T) {
	t.Parallel()

	if totals := Aggregate(nil); len(totals) != 0 {
		t.Fatalf("Aggregate(nil) = %+v", totals)
	}
}
