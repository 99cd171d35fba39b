package warehouse

import (
	"path/filepath"
	"testing"

	perr "cwdbridge/internal/platform/errors"
	kit "cwdbridge/internal/platform/testkit"
)

const paramsFixture = `{
  "_provider": {
    "name": "DNR",
    "_administrative_area": {"administrative_area": "Wisconsin"}
  },
  "alpha": 0.05,
  "sensitivity": 0.99,
  "label": "test run"
}`

func TestLoadParams(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), FileParams)
	kit.MustWriteFile(t, path, paramsFixture)

	ps, err := LoadParams(path)
	if err != nil {
		t.Fatalf("LoadParams: %v", err)
	}
	if ps.ProviderArea != "Wisconsin" {
		t.Fatalf("ProviderArea = %q", ps.ProviderArea)
	}
	// provenance is stripped, the rest keeps document order
	if _, ok := ps.Doc.Get("_provider"); ok {
		t.Fatal("_provider should be stripped")
	}
	want := []string{"alpha", "sensitivity", "label"}
	for i, k := range want {
		if ps.Doc[i].Key != k {
			t.Fatalf("key[%d] = %q, want %q", i, ps.Doc[i].Key, k)
		}
	}
}

func TestLoadParamsWithoutProvider(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), FileParams)
	kit.MustWriteFile(t, path, `{"alpha":0.1}`)

	ps, err := LoadParams(path)
	if err != nil {
		t.Fatalf("LoadParams: %v", err)
	}
	if ps.ProviderArea != "" {
		t.Fatalf("ProviderArea = %q, want empty", ps.ProviderArea)
	}
}

func TestLoadParamsMissing(t *testing.T) {
	t.Parallel()

	_, err := LoadParams(filepath.Join(t.TempDir(), FileParams))
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("want NotFound, got %v", err)
	}
}

func TestLoadParamsMalformed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), FileParams)
	kit.MustWriteFile(t, path, `{"alpha":`)
	_, err := LoadParams(path)
	if !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("want JSON code, got %v", err)
	}
}

func TestParamSetScalar(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), FileParams)
	kit.MustWriteFile(t, path, `{"alpha":0.05,"name":"x","on":true,"nested":{"a":1},"list":[1]}`)
	ps, err := LoadParams(path)
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		key  string
		want string
		ok   bool
	}{
		{"alpha", "0.05", true},
		{"name", "x", true},
		{"on", "true", true},
		{"nested", "", false}, // composites are not scalars
		{"list", "", false},
		{"missing", "", false},
	}
	for _, c := range cases {
		got, ok := ps.Scalar(c.key)
		if got != c.want || ok != c.ok {
			t.Errorf("Scalar(%q) = %q/%v, want %q/%v", c.key, got, ok, c.want, c.ok)
		}
	}
}
