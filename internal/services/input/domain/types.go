// Package domain holds the core types and ports for the input pipeline
package domain

import (
	"cwdbridge/internal/adapters/warehouse"
)

// Re-export the warehouse record shapes the pipeline consumes
type (
	// ParamSet is the provenance-stripped model parameter document
	ParamSet = warehouse.ParamSet

	// AreaRecord is a raw sub-administrative area export line
	AreaRecord = warehouse.AreaRecord

	// DemographyRecord is a raw demography export line
	DemographyRecord = warehouse.DemographyRecord

	// SampleRecord is a raw sample export line
	SampleRecord = warehouse.SampleRecord
)

// Area is the normalized projection of an AreaRecord written to the model.
// Input order is preserved and duplicate ids are retained
type Area struct {
	ID         string
	FullName   string
	Name       string
	LandAreaM2 float64
}

// ResolvedSample is the flat per-sample projection written to the model:
// the sample's own fields plus its selected-definitive test result and the
// id of its sub-administrative area, either of which may be null
type ResolvedSample struct {
	ID           string
	Species      string
	SampleSource string
	SeasonYear   warehouse.Scalar
	AgeGroup     string
	Sex          string
	Result       *string
	SubAreaID    *string
}
