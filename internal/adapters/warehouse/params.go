package warehouse

import (
	"encoding/json"
	"os"

	perr "cwdbridge/internal/platform/errors"
)

// provider provenance keys stripped from the parameter set before it is
// handed to the model
const (
	providerKey    = "_provider"
	adminAreaKey   = "_administrative_area"
	adminAreaField = "administrative_area"
)

// ParamSet is the model parameter document with provenance stripped.
// Doc preserves the warehouse's key order for report rendering
type ParamSet struct {
	Doc          Doc
	ProviderArea string // administrative area of the providing agency, if supplied
}

// LoadParams reads and parses the params document at path.
// A missing file is a NotFound error: the model cannot run without it
func LoadParams(path string) (*ParamSet, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, perr.NotFoundf("parameters file %s does not exist", path)
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeIO, "read parameters file %s", path)
	}
	doc, err := ParseDoc(b)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "parse parameters file %s", path)
	}

	ps := &ParamSet{}
	if prov, ok := doc.Get(providerKey); ok {
		ps.ProviderArea = providerArea(prov)
		doc = doc.Delete(providerKey)
	}
	ps.Doc = doc
	return ps, nil
}

// providerArea digs _administrative_area.administrative_area out of the
// provider object; absent levels yield an empty area
func providerArea(v any) string {
	prov, ok := v.(Doc)
	if !ok {
		return ""
	}
	aa, ok := prov.Get(adminAreaKey)
	if !ok {
		return ""
	}
	inner, ok := aa.(Doc)
	if !ok {
		return ""
	}
	name, ok := inner.Get(adminAreaField)
	if !ok {
		return ""
	}
	if s, ok := name.(string); ok {
		return s
	}
	return renderScalar(name)
}

// Scalar returns the rendered form of a top-level parameter, if present
// and scalar. Used to pick alpha and sensitivity for the params table
func (p *ParamSet) Scalar(key string) (string, bool) {
	v, ok := p.Doc.Get(key)
	if !ok {
		return "", false
	}
	switch t := v.(type) {
	case Doc, []any:
		return "", false
	case json.Number:
		return t.String(), true
	default:
		return renderScalar(t), true
	}
}
