package warehouse

import (
	"path/filepath"
	"testing"

	kit "cwdbridge/internal/platform/testkit"
)

func TestReportLines(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), FileReport)
	r, err := OpenReport(path, false)
	if err != nil {
		t.Fatalf("OpenReport: %v", err)
	}
	if err := r.H3("Model Execution Summary"); err != nil {
		t.Fatal(err)
	}
	if err := r.H4("Demographic data"); err != nil {
		t.Fatal(err)
	}
	if err := r.P("Model: x"); err != nil {
		t.Fatal(err)
	}
	if err := r.Pre("   alpha: 0.05"); err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}

	got := kit.MustReadFile(t, path)
	want := "<h3>Model Execution Summary</h3>\n" +
		"<h4>Demographic data</h4>\n" +
		"<p>Model: x</p>\n" +
		"<pre>   alpha: 0.05</pre>\n"
	if got != want {
		t.Fatalf("report =\n%s\nwant\n%s", got, want)
	}
}

func TestReportEscapesText(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), FileReport)
	r, err := OpenReport(path, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.P(`<script>alert("x")</script>`); err != nil {
		t.Fatal(err)
	}
	r.Close()

	got := kit.MustReadFile(t, path)
	kit.MustContain(t, got, "&lt;script&gt;")
	if got[:3] != "<p>" {
		t.Fatalf("report = %q", got)
	}
}

func TestReportAppendMode(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), FileReport)

	r, _ := OpenReport(path, false)
	_ = r.H3("Model Execution Summary")
	r.Close()

	// the output pipeline appends its section under the input run's report
	r, err := OpenReport(path, true)
	if err != nil {
		t.Fatal(err)
	}
	_ = r.H3("Model Exports")
	r.Close()

	got := kit.MustReadFile(t, path)
	want := "<h3>Model Execution Summary</h3>\n<h3>Model Exports</h3>\n"
	if got != want {
		t.Fatalf("report = %q", got)
	}

	// truncate discards the previous run
	r, _ = OpenReport(path, false)
	_ = r.P("fresh")
	r.Close()
	if got := kit.MustReadFile(t, path); got != "<p>fresh</p>\n" {
		t.Fatalf("truncated report = %q", got)
	}
}
