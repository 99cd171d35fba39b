package warehouse

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"

	perr "cwdbridge/internal/platform/errors"
)

// record streams are small administrative exports, but sample files can
// carry long test arrays per line
const maxScanTokenSize = 16 * 1024 * 1024

// ReadNDJSON decodes one record per line from the file at path.
// Blank lines are skipped; a malformed line is a Parse error naming the
// line number. A missing file is a NotFound error
func ReadNDJSON[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, perr.NotFoundf("file %s does not exist", path)
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeIO, "open %s", path)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, maxScanTokenSize)

	var out []T
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var rec T
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, perr.Parsef("%s line %d: %v", path, lineNo, err)
		}
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeIO, "read %s", path)
	}
	return out, nil
}
