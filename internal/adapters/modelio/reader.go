package modelio

import (
	"encoding/csv"
	"os"
	"strings"

	perr "cwdbridge/internal/platform/errors"
)

// Table is a fully-read delimited result table with header-addressed cells
type Table struct {
	index map[string]int
	rows  [][]string
}

// ReadTable reads the CSV at path. The first row is the header; every data
// row must have the same field count (a short row is a structural error, not
// a degradable one)
func ReadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, perr.NotFoundf("model output %s does not exist", path)
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeIO, "open %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	all, err := r.ReadAll()
	if err != nil {
		return nil, perr.Parsef("%s: %v", path, err)
	}
	if len(all) == 0 {
		return nil, perr.Parsef("%s: missing header row", path)
	}

	index := make(map[string]int, len(all[0]))
	for i, name := range all[0] {
		index[strings.TrimSpace(name)] = i
	}
	return &Table{index: index, rows: all[1:]}, nil
}

// Require fails with a Validation error if any named column is absent from
// the header. Call before Get so per-cell access cannot miss
func (t *Table) Require(cols ...string) error {
	for _, c := range cols {
		if _, ok := t.index[c]; !ok {
			return perr.WithField(perr.Validationf("model output is missing expected column %q", c), c)
		}
	}
	return nil
}

// Len returns the number of data rows
func (t *Table) Len() int { return len(t.rows) }

// Get returns the cell at row i, named column. Unknown columns yield an
// empty string; Require guards real use
func (t *Table) Get(i int, col string) string {
	j, ok := t.index[col]
	if !ok || j >= len(t.rows[i]) {
		return ""
	}
	return t.rows[i][j]
}
