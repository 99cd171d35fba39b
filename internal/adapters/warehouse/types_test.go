package warehouse

import (
	"encoding/json"
	"testing"
)

func TestEntryListOrder(t *testing.T) {
	t.Parallel()

	var rec DemographyRecord
	line := `{"species":"white-tailed deer","metric":"deer density","season_year":2023,` +
		`"data":{"55003":1.5,"55001":2}}`
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec.SeasonYear.String() != "2023" {
		t.Fatalf("SeasonYear = %q", rec.SeasonYear.String())
	}
	// document key order survives into the entry list
	if len(rec.Data) != 2 || rec.Data[0].AreaID != "55003" || rec.Data[1].Value != 2 {
		t.Fatalf("Data = %+v", rec.Data)
	}
}

func TestEntryListRejectsNonNumbers(t *testing.T) {
	t.Parallel()

	var el EntryList
	if err := json.Unmarshal([]byte(`{"a":"high"}`), &el); err == nil {
		t.Fatal("non-numeric value should fail")
	}
}

func TestSampleRecordDecode(t *testing.T) {
	t.Parallel()

	line := `{"_id":"s1","species":"elk","sample_source":"hunter","season_year":"2023-2024",` +
		`"age_group":null,"sex":"F",` +
		`"tests":[{"selected_definitive":false,"result":"ND"},{"selected_definitive":true,"result":null}],` +
		`"_sub_administrative_area":{"_id":"55001"}}`
	var rec SampleRecord
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec.ID != "s1" || rec.AgeGroup != "" || rec.SeasonYear.String() != "2023-2024" {
		t.Fatalf("rec = %+v", rec)
	}
	if len(rec.Tests) != 2 || rec.Tests[0].SelectedDefinitive {
		t.Fatalf("tests = %+v", rec.Tests)
	}
	// explicit null result stays nil
	if rec.Tests[1].Result != nil {
		t.Fatalf("null result = %+v", rec.Tests[1].Result)
	}
	if rec.SubArea == nil || rec.SubArea.ID == nil || *rec.SubArea.ID != "55001" {
		t.Fatalf("sub area = %+v", rec.SubArea)
	}
}

func TestSampleRecordNullRefs(t *testing.T) {
	t.Parallel()

	var rec SampleRecord
	if err := json.Unmarshal([]byte(`{"_id":"s2","_sub_administrative_area":null}`), &rec); err != nil {
		t.Fatal(err)
	}
	if rec.SubArea != nil || rec.Tests != nil {
		t.Fatalf("rec = %+v", rec)
	}

	// a reference object without an id yields a null join key
	if err := json.Unmarshal([]byte(`{"_id":"s3","_sub_administrative_area":{}}`), &rec); err != nil {
		t.Fatal(err)
	}
	if rec.SubArea == nil || rec.SubArea.ID != nil {
		t.Fatalf("rec = %+v", rec)
	}
}
