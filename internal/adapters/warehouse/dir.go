package warehouse

import (
	"path/filepath"
)

// Exchange directory layout. Exports and the manifest sit at the top
// level; generated artifacts live under attachments/
const (
	FileParams     = "params.json"
	FileAreas      = "sub_administrative_area.ndJson"
	FileDemography = "demography.ndJson"
	FileSamples    = "sample.ndJson"
	FileManifest   = "attachments.json"

	AttachmentsDir = "attachments"
	FileReport     = "info.html"
	FileExecLog    = "execution_log.log"
	FileOutputJSON = "output.json"
)

// Dir reads warehouse exports from a single exchange directory
type Dir struct {
	base string
}

// NewDir binds a Dir to the exchange directory
func NewDir(base string) Dir { return Dir{base: base} }

// Params loads the model parameter document
func (d Dir) Params() (*ParamSet, error) {
	return LoadParams(filepath.Join(d.base, FileParams))
}

// Areas loads the sub-administrative area records
func (d Dir) Areas() ([]AreaRecord, error) {
	return ReadNDJSON[AreaRecord](filepath.Join(d.base, FileAreas))
}

// Demography loads the demography records
func (d Dir) Demography() ([]DemographyRecord, error) {
	return ReadNDJSON[DemographyRecord](filepath.Join(d.base, FileDemography))
}

// Samples loads the biological sample records
func (d Dir) Samples() ([]SampleRecord, error) {
	return ReadNDJSON[SampleRecord](filepath.Join(d.base, FileSamples))
}
