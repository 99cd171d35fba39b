package domain

import (
	"cwdbridge/internal/adapters/warehouse"
)

// Reporter appends fragments to the model summary started by the input run
type Reporter interface {
	H3(text string) error
	H4(text string) error
	P(text string) error
}

// ManifestPort registers generated artifacts for warehouse discovery
type ManifestPort interface {
	Append(entries ...warehouse.Attachment) error
}
