// Command render reads the extracted storm CSV and writes an interactive
// HTML map of every configured storm's track.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/hurricane-tracks/internal/adapter/csvfile"
	kafkaadapter "github.com/couchcryptid/hurricane-tracks/internal/adapter/kafka"
	"github.com/couchcryptid/hurricane-tracks/internal/adapter/mapbox"
	"github.com/couchcryptid/hurricane-tracks/internal/adapter/overlay"
	"github.com/couchcryptid/hurricane-tracks/internal/config"
	"github.com/couchcryptid/hurricane-tracks/internal/domain"
	"github.com/couchcryptid/hurricane-tracks/internal/mapdoc"
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
	var opts []pipeline.RendererOption

	// Marker place names are feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN.
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, logger, metrics)
		opts = append(opts, pipeline.WithGeocoder(mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)))
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	if cfg.OverlayURL != "" {
		opts = append(opts, pipeline.WithOverlay(overlay.NewClient(cfg.OverlayURL, cfg.OverlayTimeout, logger)))
	}

	if cfg.PublishEnabled() {
		writer := kafkaadapter.NewWriter(cfg, logger)
		defer func() {
			if err := writer.Close(); err != nil {
				logger.Error("kafka writer close error", "error", err)
			}
		}()
		opts = append(opts, pipeline.WithPublisher(writer))
		logger.Info("publishing track summaries", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	tbl, err := csvfile.ReadTable(cfg.ExtractedCSV)
	if err != nil {
		logger.Error("read extracted csv", "error", err)
		return 1
	}
	logger.Info("loaded extracted data", "path", cfg.ExtractedCSV, "rows", len(tbl.Rows))

	renderer := pipeline.NewRenderer(domain.DefaultTargets, logger, metrics, opts...)
	doc, err := renderer.Run(ctx, tbl)
	if err != nil {
		logger.Error("render failed", "error", err)
		return 1
	}

	if err := (mapdoc.FileWriter{Path: cfg.MapOutput}).Write(doc); err != nil {
		logger.Error("write map", "error", err)
		return 1
	}
	logger.Info("map written", "path", cfg.MapOutput, "tracks", len(doc.Storms))
	return 0
}
