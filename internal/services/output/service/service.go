// Package service implements the output pipeline: the estimation model's
// result table is typed, serialized to JSON, and registered as the run's
// primary artifact
package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"cwdbridge/internal/adapters/modelio"
	"cwdbridge/internal/adapters/warehouse"
	"cwdbridge/internal/core/coerce"
	perr "cwdbridge/internal/platform/errors"
	"cwdbridge/internal/platform/logger"
	pstrings "cwdbridge/internal/platform/strings"
	"cwdbridge/internal/services/output/domain"
)

// Config holds the output pipeline settings
type Config struct {
	// DataDir is the warehouse exchange directory
	DataDir string

	// ResultFile is the model's result table name within DataDir
	ResultFile string
}

// Service implements the output pipeline
type Service struct {
	Report   domain.Reporter
	Manifest domain.ManifestPort
	Cfg      Config
}

// New constructs the output pipeline service
func New(cfg Config, rep domain.Reporter, man domain.ManifestPort) *Service {
	cfg.DataDir = pstrings.MustString(cfg.DataDir, "data dir")
	cfg.ResultFile = pstrings.MustString(cfg.ResultFile, "result file")
	if rep == nil || man == nil {
		panic("output.Service requires report and manifest ports")
	}
	return &Service{Report: rep, Manifest: man, Cfg: cfg}
}

// Run reads the model's result table, types every cell, writes the JSON
// export, and registers it in the manifest
func (s *Service) Run(ctx context.Context) error {
	log := logger.C(ctx)

	if err := s.Report.H3("Model Exports"); err != nil {
		return err
	}

	// the model drops its result table into the attachments dir
	path := filepath.Join(s.Cfg.DataDir, warehouse.AttachmentsDir, s.Cfg.ResultFile)
	table, err := modelio.ReadTable(path)
	if err != nil {
		return s.fatal(ctx, err, "Model output ("+s.Cfg.ResultFile+") was expected but not found or unreadable.")
	}
	if err := table.Require(domain.ResultColumns...); err != nil {
		return s.fatal(ctx, err, "Model output is missing expected columns.")
	}
	log.Info().Int("rows", table.Len()).Msg("model output table loaded successfully")

	// empty output must export as [], not null
	rows := make([]domain.ResultRow, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		rows = append(rows, domain.ResultRow{
			SubAdminID:   coerce.Text(table.Get(i, "SubAdminID")),
			SubAdminName: coerce.Text(table.Get(i, "SubAdminName")),
			Result:       coerce.Text(table.Get(i, "Result")),
			N:            coerce.Int(table.Get(i, "n")),
			Total:        coerce.Int(table.Get(i, "N")),
			Bayes:        coerce.Float(table.Get(i, "bayes")),
			Freq:         coerce.Float(table.Get(i, "freq")),
			FreqSE:       coerce.Float(table.Get(i, "freq.se")),
		})
	}

	if err := s.writeJSON(rows); err != nil {
		return s.fatal(ctx, err, "Failed to write the model export file.")
	}
	if err := s.Manifest.Append(warehouse.Attachment{
		Filename:    warehouse.FileOutputJSON,
		ContentType: "application/json",
		Role:        warehouse.RolePrimary,
	}); err != nil {
		return s.fatal(ctx, err, "Failed to register the model export file.")
	}

	if err := s.Report.P("Model exports successfully created."); err != nil {
		return err
	}
	log.Info().Int("rows", len(rows)).Msg("output processing complete")
	return nil
}

// writeJSON serializes the typed rows into attachments/output.json
func (s *Service) writeJSON(rows []domain.ResultRow) error {
	b, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return perr.JSONErrf("marshal model export: %v", err)
	}
	path := filepath.Join(s.Cfg.DataDir, warehouse.AttachmentsDir, warehouse.FileOutputJSON)
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "write %s", path)
	}
	return nil
}

// fatal records the failure in both log artifacts and returns err for the
// caller to abort with
func (s *Service) fatal(ctx context.Context, err error, note string) error {
	logger.C(ctx).Error().Err(err).Msg("output processing failed")
	_ = s.Report.H4("ERROR")
	_ = s.Report.P(note)
	return err
}
