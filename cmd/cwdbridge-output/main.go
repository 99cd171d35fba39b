package main

import (
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"cwdbridge/internal/adapters/warehouse"
	"cwdbridge/internal/core/version"
	"cwdbridge/internal/platform/config"
	perr "cwdbridge/internal/platform/errors"
	"cwdbridge/internal/platform/logger"
	outputsvc "cwdbridge/internal/services/output/service"
)

const defaultDataDir = "/data"

func mustSetEnv(key, val string) {
	if val != "" {
		_ = os.Setenv(key, val)
	}
}

func main() {
	dataFlag := flag.String("data", "", "exchange directory (overrides BRIDGE_DATA_DIR)")
	flag.Parse()

	defer func() {
		if r := recover(); r != nil {
			logger.Get().Error().Interface("panic", r).Msg("output processing panicked")
			os.Exit(1)
		}
	}()

	root := config.New()
	bCfg := root.Prefix("BRIDGE_")

	mustSetEnv("BRIDGE_DATA_DIR", *dataFlag)
	if bCfg.MayString("DATA_DIR", "") == "" {
		mustSetEnv("BRIDGE_DATA_DIR", defaultDataDir)
	}
	dataDir := bCfg.MustDir("DATA_DIR")

	attachDir := filepath.Join(dataDir, warehouse.AttachmentsDir)
	if err := os.MkdirAll(attachDir, 0o755); err != nil {
		logger.Get().Error().Err(err).Str("dir", attachDir).Msg("cannot create attachments directory")
		os.Exit(1)
	}

	// append so the input run's log and this run's log form one artifact
	logFile, err := logger.OpenFile(filepath.Join(attachDir, warehouse.FileExecLog), true)
	if err != nil {
		logger.Get().Error().Err(err).Msg("cannot open execution log")
		os.Exit(1)
	}
	defer logFile.Close()

	opt := logger.FromEnv()
	opt.Service = version.Info().Service
	opt.Component = "output"
	opt.Writer = io.MultiWriter(os.Stdout, logFile)
	logger.Init(opt)

	ctx := logger.WithRun(context.Background(), uuid.NewString())

	report, err := warehouse.OpenReport(filepath.Join(attachDir, warehouse.FileReport), true)
	if err != nil {
		logger.Get().Error().Err(err).Msg("cannot open report")
		os.Exit(1)
	}
	defer report.Close()

	manifest := warehouse.NewManifest(filepath.Join(dataDir, warehouse.FileManifest))

	svc := outputsvc.New(
		outputsvc.Config{
			DataDir:    dataDir,
			ResultFile: bCfg.MayString("MODEL_OUTPUT_FILE", "SimpleUndetectedPrevalenceEstimatorOutput.csv"),
		},
		report,
		manifest,
	)

	if err := svc.Run(ctx); err != nil {
		_ = report.Close()
		os.Exit(perr.ExitCode(err))
	}
}
