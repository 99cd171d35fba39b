package warehouse

import (
	"encoding/json"
	"os"

	perr "cwdbridge/internal/platform/errors"
)

// Attachment roles understood by the warehouse
const (
	RoleDownloadable = "downloadable"
	RoleFeedback     = "feedback"
	RolePrimary      = "primary"
)

// Attachment is one manifest entry describing a generated artifact
type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Role        string `json:"role"`
}

// Manifest is the attachments.json artifact: a JSON array the consuming
// system scans to discover generated files. It is an explicit object passed
// into pipeline stages rather than ambient file-handle state
type Manifest struct {
	path string
}

// NewManifest binds a Manifest to its file path
func NewManifest(path string) *Manifest { return &Manifest{path: path} }

// Init writes an empty list, discarding any previous run's manifest
func (m *Manifest) Init() error {
	if err := os.WriteFile(m.path, []byte("[]"), 0o644); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "write manifest %s", m.path)
	}
	return nil
}

// Append adds entries to the list, rewriting the file with 2-space indent.
// The manifest must already exist and contain a JSON array
func (m *Manifest) Append(entries ...Attachment) error {
	b, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return perr.NotFoundf("manifest %s does not exist", m.path)
		}
		return perr.Wrapf(err, perr.ErrorCodeIO, "read manifest %s", m.path)
	}
	var list []Attachment
	if err := json.Unmarshal(b, &list); err != nil {
		return perr.JSONErrf("manifest %s does not contain a list: %v", m.path, err)
	}
	list = append(list, entries...)

	out, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "encode manifest %s", m.path)
	}
	if err := os.WriteFile(m.path, out, 0o644); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "write manifest %s", m.path)
	}
	return nil
}
