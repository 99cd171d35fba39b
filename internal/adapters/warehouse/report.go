package warehouse

import (
	"fmt"
	"html"
	"os"

	perr "cwdbridge/internal/platform/errors"
)

// Report writes the human-readable model summary as a sequence of tagged
// HTML fragments. Lines are flushed immediately so abort paths never lose
// the final ERROR note
type Report struct {
	f *os.File
}

// OpenReport opens the report artifact. The input pipeline truncates the
// previous run's report; the output pipeline appends its export section
func OpenReport(path string, appendTo bool) (*Report, error) {
	flags := os.O_CREATE | os.O_WRONLY
	if appendTo {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeIO, "open report %s", path)
	}
	return &Report{f: f}, nil
}

// Line writes one tagged line. Text is HTML-escaped; the warehouse renders
// these fragments verbatim in its UI
func (r *Report) Line(element, text string) error {
	_, err := fmt.Fprintf(r.f, "<%s>%s</%s>\n", element, html.EscapeString(text), element)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "write report")
	}
	return nil
}

// H3 writes a section heading
func (r *Report) H3(text string) error { return r.Line("h3", text) }

// H4 writes a subsection heading
func (r *Report) H4(text string) error { return r.Line("h4", text) }

// P writes a paragraph
func (r *Report) P(text string) error { return r.Line("p", text) }

// Pre writes a preformatted block, used for the indented parameter listing
func (r *Report) Pre(text string) error { return r.Line("pre", text) }

// Close finalizes the artifact
func (r *Report) Close() error { return r.f.Close() }
