package warehouse

import (
	"bytes"
	"encoding/json"

	perr "cwdbridge/internal/platform/errors"
)

// Scalar is a JSON scalar (string, number, bool, or null) whose lexical form
// matters downstream: season years arrive as numbers from some providers and
// as strings from others, and test results may be strings or booleans.
// The zero value is null
type Scalar struct {
	raw   string
	valid bool
}

// UnmarshalJSON keeps the scalar's rendered form. Numbers keep their exact
// source lexeme so "2023" never becomes "2023.0" on the way through
func (s *Scalar) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*s = Scalar{}
		return nil
	}
	switch b[0] {
	case '"':
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = Scalar{raw: v, valid: true}
		return nil
	case '{', '[':
		return perr.Parsef("expected scalar, got %c...", b[0])
	default: // number or bool literal
		*s = Scalar{raw: string(b), valid: true}
		return nil
	}
}

// String returns the rendered form, empty for null
func (s Scalar) String() string { return s.raw }

// Valid reports whether the scalar holds a value
func (s Scalar) Valid() bool { return s.valid }

// Ptr returns the rendered form as *string, nil for null
func (s Scalar) Ptr() *string {
	if !s.valid {
		return nil
	}
	v := s.raw
	return &v
}
