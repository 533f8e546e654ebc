// Command extract filters the full IBTrACS best-track CSV down to the rows
// of the configured storms and writes them to a much smaller CSV for the
// render stage.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/hurricane-tracks/internal/adapter/csvfile"
	"github.com/couchcryptid/hurricane-tracks/internal/config"
	"github.com/couchcryptid/hurricane-tracks/internal/domain"
	"github.com/couchcryptid/hurricane-tracks/internal/observability"
	"github.com/couchcryptid/hurricane-tracks/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	code := run(ctx, cfg, logger, metrics)
	if err := observability.WriteTextfile(cfg.MetricsFile); err != nil {
		logger.Error("write metrics textfile", "path", cfg.MetricsFile, "error", err)
	}
	os.Exit(code)
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) int {
	src, err := csvfile.Open(cfg.SourceCSV)
	if err != nil {
		logger.Error("open source csv", "error", err)
		return 1
	}
	defer src.Close()

	logger.Info("extracting storms", "source", cfg.SourceCSV, "output", cfg.ExtractedCSV, "targets", len(domain.DefaultTargets))

	extractor := pipeline.NewExtractor(domain.DefaultTargets, logger, metrics)
	report, err := extractor.Run(ctx, src, csvfile.NewWriter(cfg.ExtractedCSV))
	if err != nil {
		logger.Error("extraction failed", "error", err)
		return 1
	}

	logger.Info("wrote extracted csv",
		"path", cfg.ExtractedCSV,
		"rows", report.KeptRows,
		"duration", report.Duration,
	)
	return 0
}
