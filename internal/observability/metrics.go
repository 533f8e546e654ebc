package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for both batch stages.
// A batch run has no scrape endpoint, so the values are flushed to a
// node_exporter textfile at exit (see WriteTextfile).
type Metrics struct {
	// Extract stage.
	RowsScanned    prometheus.Counter
	RowsExtracted  prometheus.Counter
	TargetsMissing prometheus.Counter

	// Render stage.
	ObservationsDropped *prometheus.CounterVec // labels: reason={timestamp,coordinate}
	TracksRendered      prometheus.Counter
	TracksSkipped       prometheus.Counter
	TracksPublished     prometheus.Counter
	OverlayFetches      *prometheus.CounterVec // labels: outcome={success,error}

	StageDuration *prometheus.HistogramVec // labels: stage={extract,render}

	// Geocoding metrics.
	GeocodeRequests    *prometheus.CounterVec // labels: outcome={success,error,empty}
	GeocodeCache       *prometheus.CounterVec // labels: result={hit,miss}
	GeocodeAPIDuration prometheus.Histogram
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := NewMetricsForTesting()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, so tests
// can build as many as they like.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RowsScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hurricane_tracks",
			Name:      "rows_scanned_total",
			Help:      "Data rows read from the source dataset.",
		}),
		RowsExtracted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hurricane_tracks",
			Name:      "rows_extracted_total",
			Help:      "Rows written to the extracted dataset.",
		}),
		TargetsMissing: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hurricane_tracks",
			Name:      "targets_missing_total",
			Help:      "Configured storms with no rows in the source dataset.",
		}),
		ObservationsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hurricane_tracks",
			Name:      "observations_dropped_total",
			Help:      "Candidate rows dropped while building tracks, by reason.",
		}, []string{"reason"}),
		TracksRendered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hurricane_tracks",
			Name:      "tracks_rendered_total",
			Help:      "Storm tracks drawn on the map.",
		}),
		TracksSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hurricane_tracks",
			Name:      "tracks_skipped_total",
			Help:      "Configured storms skipped for lack of valid observations.",
		}),
		TracksPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hurricane_tracks",
			Name:      "tracks_published_total",
			Help:      "Track summaries published to Kafka.",
		}),
		OverlayFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hurricane_tracks",
			Name:      "overlay_fetches_total",
			Help:      "Boundary overlay downloads by outcome.",
		}, []string{"outcome"}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hurricane_tracks",
			Name:      "stage_duration_seconds",
			Help:      "Wall time of a batch stage.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"stage"}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hurricane_tracks",
			Name:      "geocode_requests_total",
			Help:      "Reverse geocoding API requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hurricane_tracks",
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
		GeocodeAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hurricane_tracks",
			Name:      "geocode_api_duration_seconds",
			Help:      "Mapbox API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.RowsScanned,
		m.RowsExtracted,
		m.TargetsMissing,
		m.ObservationsDropped,
		m.TracksRendered,
		m.TracksSkipped,
		m.TracksPublished,
		m.OverlayFetches,
		m.StageDuration,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeAPIDuration,
	}
}

// WriteTextfile dumps the default registry in the text exposition format
// for the node_exporter textfile collector. An empty path is a no-op.
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}

// WriteRegistryTextfile is WriteTextfile for an explicit gatherer.
func WriteRegistryTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}

// Register adds m's collectors to reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
