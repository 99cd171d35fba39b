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
	inputsvc "cwdbridge/internal/services/input/service"
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
			logger.Get().Error().Interface("panic", r).Msg("input processing panicked")
			os.Exit(1)
		}
	}()

	root := config.New()
	bCfg := root.Prefix("BRIDGE_")

	// flag wins over env, env over the default; the directory must exist
	mustSetEnv("BRIDGE_DATA_DIR", *dataFlag)
	if bCfg.MayString("DATA_DIR", "") == "" {
		mustSetEnv("BRIDGE_DATA_DIR", defaultDataDir)
	}
	dataDir := bCfg.MustDir("DATA_DIR")

	// the attachments dir must exist before the execution log can open inside it
	attachDir := filepath.Join(dataDir, warehouse.AttachmentsDir)
	if err := os.MkdirAll(attachDir, 0o755); err != nil {
		logger.Get().Error().Err(err).Str("dir", attachDir).Msg("cannot create attachments directory")
		os.Exit(1)
	}

	logFile, err := logger.OpenFile(filepath.Join(attachDir, warehouse.FileExecLog), false)
	if err != nil {
		logger.Get().Error().Err(err).Msg("cannot open execution log")
		os.Exit(1)
	}
	defer logFile.Close()

	opt := logger.FromEnv()
	opt.Service = version.Info().Service
	opt.Component = "input"
	opt.Writer = io.MultiWriter(os.Stdout, logFile)
	logger.Init(opt)

	ctx := logger.WithRun(context.Background(), uuid.NewString())

	report, err := warehouse.OpenReport(filepath.Join(attachDir, warehouse.FileReport), false)
	if err != nil {
		logger.Get().Error().Err(err).Msg("cannot open report")
		os.Exit(1)
	}
	defer report.Close()

	// the manifest sits at the exchange root, next to the exports
	manifest := warehouse.NewManifest(filepath.Join(dataDir, warehouse.FileManifest))

	svc := inputsvc.New(
		inputsvc.Config{
			DataDir:   dataDir,
			ModelName: bCfg.MayString("MODEL_NAME", "Simple Undetected Prevalence Estimator Model"),
		},
		warehouse.NewDir(dataDir),
		report,
		manifest,
	)

	if err := svc.Run(ctx); err != nil {
		_ = report.Close()
		os.Exit(perr.ExitCode(err))
	}
}
