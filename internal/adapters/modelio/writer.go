package modelio

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	perr "cwdbridge/internal/platform/errors"
)

// Cell is one CSV field value. The zero value is null, which serializes as
// an empty quoted token
type Cell struct {
	s     string
	valid bool
}

// Str returns a string cell
func Str(s string) Cell { return Cell{s: s, valid: true} }

// StrPtr returns a string cell, or null for nil
func StrPtr(s *string) Cell {
	if s == nil {
		return Cell{}
	}
	return Cell{s: *s, valid: true}
}

// Float returns a numeric cell rendered without exponent notation, with no
// trailing decimals for integral values
func Float(f float64) Cell { return Cell{s: strconv.FormatFloat(f, 'f', -1, 64), valid: true} }

// Int returns a numeric cell
func Int(i int64) Cell { return Cell{s: strconv.FormatInt(i, 10), valid: true} }

// Null returns the null cell
func Null() Cell { return Cell{} }

// Writer emits a delimited table in the exact shape the model's reader
// expects: every field double-quoted regardless of its underlying type,
// nulls as empty tokens, LF line endings. The format must stay bit-for-bit
// stable, which is why this is not encoding/csv (that quotes only when
// needed)
type Writer struct {
	bw   *bufio.Writer
	cols int
}

// NewWriter wraps w and writes the quoted header row
func NewWriter(w io.Writer, header []string) (*Writer, error) {
	tw := &Writer{bw: bufio.NewWriter(w), cols: len(header)}
	cells := make([]Cell, len(header))
	for i, h := range header {
		cells[i] = Str(h)
	}
	if err := tw.Write(cells...); err != nil {
		return nil, err
	}
	return tw, nil
}

// Write emits one row. The cell count must match the header
func (w *Writer) Write(cells ...Cell) error {
	if len(cells) != w.cols {
		return perr.Internalf("row has %d cells, header has %d", len(cells), w.cols)
	}
	for i, c := range cells {
		if i > 0 {
			if err := w.bw.WriteByte(','); err != nil {
				return perr.Wrapf(err, perr.ErrorCodeIO, "write table row")
			}
		}
		if _, err := w.bw.WriteString(quote(c)); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeIO, "write table row")
		}
	}
	if err := w.bw.WriteByte('\n'); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "write table row")
	}
	return nil
}

// Flush drains buffered rows to the underlying writer
func (w *Writer) Flush() error {
	if err := w.bw.Flush(); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "flush table")
	}
	return nil
}

// quote renders a cell as a quoted token with embedded quotes doubled.
// Null renders as the empty quoted token, matching how the original
// producer serialized absent values
func quote(c Cell) string {
	if !c.valid {
		return `""`
	}
	return `"` + strings.ReplaceAll(c.s, `"`, `""`) + `"`
}
