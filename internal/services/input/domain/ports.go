package domain

import (
	"cwdbridge/internal/adapters/warehouse"
)

// Loader reads the four warehouse exports. Implemented by warehouse.Dir;
// tests substitute fakes
type Loader interface {
	Params() (*ParamSet, error)
	Areas() ([]AreaRecord, error)
	Demography() ([]DemographyRecord, error)
	Samples() ([]SampleRecord, error)
}

// Reporter writes the human-readable model summary fragments
type Reporter interface {
	H3(text string) error
	H4(text string) error
	P(text string) error
	Pre(text string) error
}

// ManifestPort registers generated artifacts for warehouse discovery
type ManifestPort interface {
	Init() error
	Append(entries ...warehouse.Attachment) error
}
