package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/karolis-jablonskis/label-printer/internal/application/labeling"
	"github.com/karolis-jablonskis/label-printer/internal/infrastructure/config"
	"github.com/karolis-jablonskis/label-printer/internal/infrastructure/logger"
	"github.com/karolis-jablonskis/label-printer/internal/infrastructure/printing"
)

// app is the wired application shared by all commands
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	storage *printing.FileSystemStorage
	service *labeling.LabelService
}

// newApp loads configuration, opens the log file, prepares the output folder
// and wires the label pipeline.
func newApp(ctx context.Context, configFile string) (*app, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, Error{Cause: "failed to load configuration", OriginalError: err}
	}

	logCfg := logger.DefaultConfig()
	logCfg.Level = cfg.Log.Level
	logCfg.Format = cfg.Log.Format
	logCfg.Output = cfg.Log.Output
	log, err := logger.New(logCfg)
	if err != nil {
		return nil, Error{Cause: "failed to initialize logger", OriginalError: err}
	}
	log = log.With(zap.String("app", cfg.App.Name))

	log.Info("Application started.",
		zap.String("env", cfg.App.Env),
		zap.String("output_dir", cfg.Label.OutputDir),
		zap.Bool("printing_enabled", cfg.Printer.Enabled))

	storage, err := printing.NewFileSystemStorage(&printing.FileSystemStorageConfig{
		BasePath: cfg.Label.OutputDir,
		Logger:   logger.Named(log, "storage"),
	})
	if err != nil {
		log.Error("Failed to prepare output folder", zap.Error(err))
		_ = logger.Sync(log)
		return nil, Error{
			Cause:         "failed to prepare output folder",
			OriginalError: err,
			Suggestion:    fmt.Sprintf("Check that %s is a writable directory.", cfg.Label.OutputDir),
		}
	}

	if retention := cfg.Label.Retention(); retention > 0 {
		if _, err := storage.CleanupOlderThan(ctx, retention); err != nil {
			log.Warn("Label retention cleanup failed", zap.Error(err))
		}
	}

	renderer := printing.NewFPDFRenderer(&printing.FPDFConfig{
		Compress: cfg.Label.Compress,
		Creator:  cfg.App.Name,
		Logger:   logger.Named(log, "renderer"),
	})

	dispatcher := printing.NewDispatcher(&printing.DispatcherConfig{
		Enabled:     cfg.Printer.Enabled,
		Command:     cfg.Printer.Command,
		Destination: cfg.Printer.Destination,
		Timeout:     cfg.Printer.Timeout,
		Logger:      logger.Named(log, "printer"),
	})

	return &app{
		cfg:     cfg,
		log:     log,
		storage: storage,
		service: labeling.NewLabelService(renderer, storage, dispatcher, logger.Named(log, "labeling")),
	}, nil
}

func (a *app) close() {
	_ = logger.Sync(a.log)
}
