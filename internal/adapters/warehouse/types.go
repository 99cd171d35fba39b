package warehouse

import (
	"encoding/json"

	"cwdbridge/internal/core/demography"
	perr "cwdbridge/internal/platform/errors"
)

// AreaRecord is one line of sub_administrative_area.ndJson.
// All four fields are required by the data contract; LandAreaM2 is a pointer
// so an absent field is distinguishable from a zero area
type AreaRecord struct {
	ID         string   `json:"_id" validate:"required"`
	Name       string   `json:"name" validate:"required"`
	FullName   string   `json:"full_name" validate:"required"`
	LandAreaM2 *float64 `json:"aland" validate:"required,gte=0"`
}

// DemographyRecord is one line of demography.ndJson. Data preserves the
// document order of its keys so downstream aggregation order is stable
type DemographyRecord struct {
	Species    string    `json:"species"`
	Metric     string    `json:"metric"`
	SeasonYear Scalar    `json:"season_year"`
	Data       EntryList `json:"data"`
}

// EntryList decodes a JSON object of area-id keyed numbers into ordered
// (area id, value) pairs
type EntryList []demography.Entry

// UnmarshalJSON walks the object token stream so key order survives decoding
func (el *EntryList) UnmarshalJSON(b []byte) error {
	doc, err := ParseDoc(b)
	if err != nil {
		return err
	}
	entries := make([]demography.Entry, 0, len(doc))
	for _, f := range doc {
		num, ok := f.Value.(json.Number)
		if !ok {
			return perr.Parsef("demography value for area %q is not a number", f.Key)
		}
		v, err := num.Float64()
		if err != nil {
			return perr.Parsef("demography value for area %q: %v", f.Key, err)
		}
		entries = append(entries, demography.Entry{AreaID: f.Key, Value: v})
	}
	*el = entries
	return nil
}

// SampleRecord is one line of sample.ndJson
type SampleRecord struct {
	ID           string       `json:"_id"`
	Species      string       `json:"species"`
	SampleSource string       `json:"sample_source"`
	SeasonYear   Scalar       `json:"season_year"`
	AgeGroup     string       `json:"age_group"`
	Sex          string       `json:"sex"`
	Tests        []TestRecord `json:"tests"`
	SubArea      *SubAreaRef  `json:"_sub_administrative_area"`
}

// TestRecord is one element of a sample's test sequence. Result is nil both
// when the field is absent and when it is an explicit null
type TestRecord struct {
	SelectedDefinitive bool    `json:"selected_definitive"`
	Result             *Scalar `json:"result"`
}

// SubAreaRef is the nested area reference a sample may carry.
// ID is a pointer: a reference object without an _id yields a null join key
type SubAreaRef struct {
	ID *string `json:"_id"`
}
