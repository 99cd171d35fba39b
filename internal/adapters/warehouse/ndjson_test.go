package warehouse

import (
	"path/filepath"
	"testing"

	perr "cwdbridge/internal/platform/errors"
	kit "cwdbridge/internal/platform/testkit"
)

type ndRec struct {
	ID string `json:"_id"`
	N  int    `json:"n"`
}

func TestReadNDJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "recs.ndJson")
	kit.MustWriteFile(t, path, `{"_id":"a","n":1}

{"_id":"b","n":2}
`)

	recs, err := ReadNDJSON[ndRec](path)
	if err != nil {
		t.Fatalf("ReadNDJSON: %v", err)
	}
	// blank lines are skipped, order is preserved
	if len(recs) != 2 || recs[0].ID != "a" || recs[1].N != 2 {
		t.Fatalf("recs = %+v", recs)
	}
}

func TestReadNDJSONEmptyFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "recs.ndJson")
	kit.MustWriteFile(t, path, "")
	recs, err := ReadNDJSON[ndRec](path)
	if err != nil || len(recs) != 0 {
		t.Fatalf("empty file = %+v, %v", recs, err)
	}
}

func TestReadNDJSONMalformedLine(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "recs.ndJson")
	kit.MustWriteFile(t, path, "{\"_id\":\"a\"}\n{not json}\n")
	_, err := ReadNDJSON[ndRec](path)
	if !perr.IsCode(err, perr.ErrorCodeParse) {
		t.Fatalf("want Parse code, got %v", err)
	}
	kit.MustContain(t, err.Error(), "line 2")
}

func TestReadNDJSONMissing(t *testing.T) {
	t.Parallel()

	_, err := ReadNDJSON[ndRec](filepath.Join(t.TempDir(), "gone.ndJson"))
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("want NotFound, got %v", err)
	}
}
