package warehouse

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	perr "cwdbridge/internal/platform/errors"
)

// Doc is a JSON object with document key order preserved. The warehouse
// writes parameter documents whose key order is meaningful for the report,
// and Go's map decoding would scramble it
type Doc []Field

// Field is one key/value pair of a Doc. Value is one of: string,
// json.Number, bool, nil, Doc, or []any for arrays
type Field struct {
	Key   string
	Value any
}

// ParseDoc decodes data as an order-preserving JSON object
func ParseDoc(data []byte) (Doc, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, perr.JSONErrf("invalid JSON document: %v", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, perr.JSONErrf("expected JSON object, got %v", tok)
	}
	doc, err := parseObject(dec)
	if err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, perr.JSONErrf("unexpected trailing data")
	}
	return doc, nil
}

// parseObject consumes members until the matching '}' token
func parseObject(dec *json.Decoder) (Doc, error) {
	var doc Doc
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, perr.JSONErrf("invalid JSON object: %v", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, perr.JSONErrf("expected object key, got %v", keyTok)
		}
		val, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		doc = append(doc, Field{Key: key, Value: val})
	}
	// consume closing '}'
	if _, err := dec.Token(); err != nil {
		return nil, perr.JSONErrf("invalid JSON object: %v", err)
	}
	return doc, nil
}

func parseValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, perr.JSONErrf("invalid JSON value: %v", err)
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec)
		case '[':
			var arr []any
			for dec.More() {
				v, err := parseValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, v)
			}
			if _, err := dec.Token(); err != nil { // closing ']'
				return nil, perr.JSONErrf("invalid JSON array: %v", err)
			}
			return arr, nil
		default:
			return nil, perr.JSONErrf("unexpected delimiter %v", t)
		}
	default: // string, json.Number, bool, nil
		return tok, nil
	}
}

// Get returns the value for key and whether it was present
func (d Doc) Get(key string) (any, bool) {
	for _, f := range d {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Delete returns d without the named key, preserving order of the rest
func (d Doc) Delete(key string) Doc {
	out := make(Doc, 0, len(d))
	for _, f := range d {
		if f.Key != key {
			out = append(out, f)
		}
	}
	return out
}

// Stringify renders the document as indented "key: value" lines for the
// report, nesting sub-objects by indent spaces per level
func (d Doc) Stringify(indent int) string {
	var lines []string
	d.stringify(&lines, indent, indent)
	return strings.Join(lines, "\n")
}

func (d Doc) stringify(lines *[]string, level, indent int) {
	pad := strings.Repeat(" ", level)
	for _, f := range d {
		if sub, ok := f.Value.(Doc); ok {
			*lines = append(*lines, fmt.Sprintf("%s%s:", pad, f.Key))
			sub.stringify(lines, level+indent, indent)
			continue
		}
		*lines = append(*lines, fmt.Sprintf("%s%s: %s", pad, f.Key, renderScalar(f.Value)))
	}
}

// renderScalar formats a leaf value for display
func renderScalar(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", t)
	}
}
