package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// DefaultOverlayURL serves US state outlines drawn under the storm tracks.
const DefaultOverlayURL = "https://raw.githubusercontent.com/python-visualization/folium/master/examples/data/us-states.json"

// Config holds the file locations and optional integrations for both
// stages, populated from environment variables. The storm list itself is
// not configurable; see domain.DefaultTargets.
type Config struct {
	SourceCSV    string
	ExtractedCSV string
	MapOutput    string

	LogLevel    string
	LogFormat   string
	MetricsFile string

	// Boundary overlay; an empty URL disables the fetch.
	OverlayURL     string
	OverlayTimeout time.Duration

	// Mapbox reverse geocoding of marker points.
	MapboxToken     string
	MapboxEnabled   bool
	MapboxTimeout   time.Duration
	MapboxCacheSize int

	// Track summary publishing; disabled when no brokers are set.
	KafkaBrokers []string
	KafkaTopic   string
}

// PublishEnabled reports whether track summaries go to Kafka.
func (c *Config) PublishEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	overlayTimeout, err := parseDuration("OVERLAY_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	mapboxTimeout, err := parseDuration("MAPBOX_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	mapboxToken := os.Getenv("MAPBOX_TOKEN")
	mapboxEnabled := mapboxToken != ""
	if v := os.Getenv("MAPBOX_ENABLED"); v != "" {
		mapboxEnabled = v == "true"
	}

	var brokers []string
	if raw := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); raw != "" {
		brokers = sharedcfg.ParseBrokers(raw)
	}

	cfg := &Config{
		SourceCSV:    sharedcfg.EnvOrDefault("SOURCE_CSV", "ibtracs.NA.list.v04r01.csv"),
		ExtractedCSV: sharedcfg.EnvOrDefault("EXTRACTED_CSV", "hurricane_data_extracted.csv"),
		MapOutput:    sharedcfg.EnvOrDefault("MAP_OUTPUT", "multiple_hurricane_tracks_final.html"),
		LogLevel:     sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:    sharedcfg.EnvOrDefault("LOG_FORMAT", "text"),
		MetricsFile:  os.Getenv("METRICS_FILE"),

		OverlayURL:     overlayURL(),
		OverlayTimeout: overlayTimeout,

		MapboxToken:     mapboxToken,
		MapboxEnabled:   mapboxEnabled,
		MapboxTimeout:   mapboxTimeout,
		MapboxCacheSize: parseMapboxCacheSize(),

		KafkaBrokers: brokers,
		KafkaTopic:   sharedcfg.EnvOrDefault("KAFKA_TOPIC", "hurricane-tracks"),
	}

	if cfg.SourceCSV == "" {
		return nil, errors.New("SOURCE_CSV is required")
	}
	if cfg.ExtractedCSV == "" {
		return nil, errors.New("EXTRACTED_CSV is required")
	}
	if cfg.MapOutput == "" {
		return nil, errors.New("MAP_OUTPUT is required")
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q", cfg.LogFormat)
	}
	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		return nil, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}
	if cfg.PublishEnabled() && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

// overlayURL distinguishes an unset OVERLAY_URL (use the default) from an
// explicitly empty one (disable the overlay).
func overlayURL() string {
	if v, ok := os.LookupEnv("OVERLAY_URL"); ok {
		return strings.TrimSpace(v)
	}
	return DefaultOverlayURL
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseMapboxCacheSize() int {
	if s := os.Getenv("MAPBOX_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
