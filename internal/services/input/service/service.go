// Package service implements the input pipeline: warehouse exports are
// normalized, joined, and flattened into the tabular files the estimation
// model consumes
package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cwdbridge/internal/adapters/modelio"
	"cwdbridge/internal/adapters/warehouse"
	"cwdbridge/internal/core/demography"
	"cwdbridge/internal/core/normalize"
	perr "cwdbridge/internal/platform/errors"
	"cwdbridge/internal/platform/logger"
	pstrings "cwdbridge/internal/platform/strings"
	"cwdbridge/internal/platform/validate"
	"cwdbridge/internal/services/input/domain"
)

// Output table names within the exchange directory
const (
	TableAreas      = "sub_administrative_area.csv"
	TableDemography = "demography.csv"
	TableSamples    = "sample.csv"
	TableParams     = "params.csv"
)

// Fixed column orders for the model's reader. Do not reorder; the
// downstream script addresses columns positionally in places
var (
	areaColumns       = []string{"_id", "full_name", "name", "aland"}
	demographyColumns = []string{"_id", "value"}
	sampleColumns     = []string{
		"id", "species", "sample_source", "season_year",
		"age_group", "sex", "result", "sub_administrative_area_id",
	}
	paramColumns = []string{"alpha", "sensitivity"}
)

// Config holds the input pipeline settings
type Config struct {
	// DataDir is the warehouse exchange directory the tables are written into
	DataDir string

	// ModelName appears in the report header
	ModelName string
}

// Service implements the input pipeline
type Service struct {
	Loader   domain.Loader
	Report   domain.Reporter
	Manifest domain.ManifestPort
	Cfg      Config
}

// New constructs the input pipeline service
func New(cfg Config, loader domain.Loader, rep domain.Reporter, man domain.ManifestPort) *Service {
	cfg.DataDir = pstrings.MustString(cfg.DataDir, "data dir")
	if loader == nil {
		panic("input.Service requires a non nil Loader")
	}
	if rep == nil || man == nil {
		panic("input.Service requires report and manifest ports")
	}
	return &Service{Loader: loader, Report: rep, Manifest: man, Cfg: cfg}
}

// Run executes the pipeline: manifest/report bootstrap, then parameters,
// areas, demography, and samples in order. The first fatal error aborts the
// run; tables already written for earlier stages are left in place
func (s *Service) Run(ctx context.Context) error {
	log := logger.C(ctx)

	if err := s.bootstrap(); err != nil {
		return err
	}
	log.Info().Str("model", s.Cfg.ModelName).Msg("model execution started")

	params, err := s.loadParams(ctx)
	if err != nil {
		return err
	}

	areas, err := s.processAreas(ctx)
	if err != nil {
		return err
	}

	if err := s.processDemography(ctx, areas); err != nil {
		return err
	}

	if err := s.processSamples(ctx); err != nil {
		return err
	}

	if err := s.writeParams(ctx, params); err != nil {
		return err
	}

	log.Info().Msg("input processing complete")
	return nil
}

// bootstrap creates the manifest, registers the two log artifacts, and
// writes the report header
func (s *Service) bootstrap() error {
	if err := s.Manifest.Init(); err != nil {
		return err
	}
	if err := s.Manifest.Append(
		warehouse.Attachment{
			Filename:    warehouse.FileExecLog,
			ContentType: "text/plain",
			Role:        warehouse.RoleDownloadable,
		},
		warehouse.Attachment{
			Filename:    warehouse.FileReport,
			ContentType: "text/html",
			Role:        warehouse.RoleFeedback,
		},
	); err != nil {
		return err
	}

	if err := s.Report.H3("Model Execution Summary"); err != nil {
		return err
	}
	if err := s.Report.P("Model: " + s.Cfg.ModelName); err != nil {
		return err
	}
	return s.Report.P("Date: " + time.Now().UTC().Format("2006-01-02 15:04:05") + " GMT")
}

// loadParams loads the parameter document and renders it into the report.
// The tabular write happens last, after the data stages, so a data failure
// never leaves a params table behind
func (s *Service) loadParams(ctx context.Context) (*domain.ParamSet, error) {
	params, err := s.Loader.Params()
	if err != nil {
		return nil, s.fatal(ctx, err, "Parameters ("+warehouse.FileParams+") file not found.")
	}
	logger.C(ctx).Info().Msg("parameter file loaded successfully")

	if params.ProviderArea != "" {
		if err := s.Report.P("Provider area: " + params.ProviderArea); err != nil {
			return nil, err
		}
	}
	if err := s.Report.H4("User provided parameters"); err != nil {
		return nil, err
	}
	if err := s.Report.Pre(params.Doc.Stringify(3)); err != nil {
		return nil, err
	}
	return params, nil
}

// processAreas validates and projects the area records, writes their table,
// and returns the normalized list for the demography join
func (s *Service) processAreas(ctx context.Context) ([]domain.Area, error) {
	recs, err := s.Loader.Areas()
	if err != nil {
		return nil, s.fatal(ctx, err,
			"Subadmin areas ("+warehouse.FileAreas+") file was expected but not found.")
	}
	logger.C(ctx).Info().Int("records", len(recs)).Msg("sub-administrative area file loaded successfully")

	areas := make([]domain.Area, 0, len(recs))
	for i, rec := range recs {
		if err := validate.Struct(rec); err != nil {
			err = perr.Wrapf(err, perr.ErrorCodeValidation,
				"sub-administrative area record %d (id %q)", i+1, rec.ID)
			return nil, s.fatal(ctx, err, "Subadmin area record is missing required fields.")
		}
		areas = append(areas, domain.Area{
			ID:         rec.ID,
			FullName:   normalize.Text(rec.FullName),
			Name:       normalize.Text(rec.Name),
			LandAreaM2: *rec.LandAreaM2,
		})
	}

	rows := make([][]modelio.Cell, 0, len(areas))
	for _, a := range areas {
		rows = append(rows, []modelio.Cell{
			modelio.Str(a.ID),
			modelio.Str(a.FullName),
			modelio.Str(a.Name),
			modelio.Float(a.LandAreaM2),
		})
	}
	if err := s.writeTable(TableAreas, areaColumns, rows); err != nil {
		return nil, s.fatal(ctx, err, "Failed to write the sub-administrative area table.")
	}
	return areas, nil
}

// processDemography converts density records to populations, aggregates one
// total per area, writes the table, and lists the metrics in the report
func (s *Service) processDemography(ctx context.Context, areas []domain.Area) error {
	recs, err := s.Loader.Demography()
	if err != nil {
		return s.fatal(ctx, err,
			"Demography ("+warehouse.FileDemography+") file was expected but not found.")
	}
	logger.C(ctx).Info().Int("records", len(recs)).Msg("demography file loaded successfully")

	// land areas keyed by id; on duplicate ids the first record wins the join
	landByArea := make(map[string]float64, len(areas))
	for _, a := range areas {
		if _, ok := landByArea[a.ID]; !ok {
			landByArea[a.ID] = a.LandAreaM2
		}
	}

	data := make([][]demography.Entry, 0, len(recs))
	for i := range recs {
		if recs[i].Metric == demography.MetricDeerDensity {
			if err := demography.ConvertDensity(recs[i].Data, landByArea); err != nil {
				err = perr.Wrapf(err, perr.ErrorCodeConflict, "demography record %d", i+1)
				return s.fatal(ctx, err, "Demography refers to an unknown sub-administrative area.")
			}
			recs[i].Metric = demography.MetricConvertedPopulation
		}
		data = append(data, recs[i].Data)
	}
	totals := demography.Aggregate(data)

	if err := s.Report.H4("Demographic data"); err != nil {
		return err
	}
	for _, rec := range recs {
		line := fmt.Sprintf("%s %s for season-year %s",
			normalize.Text(rec.Species), normalize.Text(rec.Metric), rec.SeasonYear.String())
		if err := s.Report.P(line); err != nil {
			return err
		}
	}

	rows := make([][]modelio.Cell, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, []modelio.Cell{modelio.Str(t.AreaID), modelio.Float(t.Value)})
	}
	if err := s.writeTable(TableDemography, demographyColumns, rows); err != nil {
		return s.fatal(ctx, err, "Failed to write the demography table.")
	}
	return nil
}

// processSamples resolves each sample's definitive test result and area
// reference, then writes the flat sample table
func (s *Service) processSamples(ctx context.Context) error {
	recs, err := s.Loader.Samples()
	if err != nil {
		return s.fatal(ctx, err,
			"Sample ("+warehouse.FileSamples+") file was expected but not found.")
	}
	log := logger.C(ctx)
	log.Info().Int("records", len(recs)).Msg("sample file loaded successfully")

	rows := make([][]modelio.Cell, 0, len(recs))
	for _, rec := range recs {
		resolved := resolve(rec, log)
		rows = append(rows, []modelio.Cell{
			modelio.Str(resolved.ID),
			modelio.Str(resolved.Species),
			modelio.Str(resolved.SampleSource),
			modelio.StrPtr(resolved.SeasonYear.Ptr()),
			modelio.Str(resolved.AgeGroup),
			modelio.Str(resolved.Sex),
			modelio.StrPtr(resolved.Result),
			modelio.StrPtr(resolved.SubAreaID),
		})
	}
	if err := s.writeTable(TableSamples, sampleColumns, rows); err != nil {
		return s.fatal(ctx, err, "Failed to write the sample table.")
	}
	return nil
}

// resolve projects one sample record. The upstream schema guarantees at most
// one selected-definitive test; when that guarantee is broken we keep the
// first and warn instead of failing the whole export
func resolve(rec domain.SampleRecord, log *logger.Logger) domain.ResolvedSample {
	out := domain.ResolvedSample{
		ID:           rec.ID,
		Species:      rec.Species,
		SampleSource: rec.SampleSource,
		SeasonYear:   rec.SeasonYear,
		AgeGroup:     rec.AgeGroup,
		Sex:          rec.Sex,
	}

	selected := 0
	for _, t := range rec.Tests {
		if !t.SelectedDefinitive {
			continue
		}
		selected++
		if selected == 1 && t.Result != nil {
			out.Result = t.Result.Ptr()
		}
	}
	if selected > 1 {
		log.Warn().Str("sample_id", rec.ID).Int("selected", selected).
			Msg("sample has multiple selected-definitive tests; using the first")
	}

	if rec.SubArea != nil && rec.SubArea.ID != nil {
		out.SubAreaID = rec.SubArea.ID
	}
	return out
}

// writeParams emits the fixed-column parameter table. Absent parameters are
// written as nulls and warned about; the model decides whether it can run
func (s *Service) writeParams(ctx context.Context, params *domain.ParamSet) error {
	row := make([]modelio.Cell, 0, len(paramColumns))
	for _, key := range paramColumns {
		v, ok := params.Scalar(key)
		if !ok {
			logger.C(ctx).Warn().Str("param", key).Msg("parameter missing from params document")
			row = append(row, modelio.Null())
			continue
		}
		row = append(row, modelio.Str(v))
	}
	if err := s.writeTable(TableParams, paramColumns, [][]modelio.Cell{row}); err != nil {
		return s.fatal(ctx, err, "Failed to write the parameters table.")
	}
	return nil
}

// writeTable serializes one table into the exchange directory
func (s *Service) writeTable(name string, header []string, rows [][]modelio.Cell) error {
	path := filepath.Join(s.Cfg.DataDir, name)
	f, err := os.Create(path)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "create %s", path)
	}
	defer f.Close()

	w, err := modelio.NewWriter(f, header)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row...); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return perr.WrapIf(f.Close(), perr.ErrorCodeIO, "close "+path)
}

// fatal records the failure in both log artifacts and returns err for the
// caller to abort with
func (s *Service) fatal(ctx context.Context, err error, note string) error {
	logger.C(ctx).Error().Err(err).Msg("input processing failed")
	_ = s.Report.H4("ERROR")
	_ = s.Report.P(note)
	return err
}
