package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/paulmach/orb/geojson"

	"github.com/couchcryptid/hurricane-tracks/internal/domain"
	"github.com/couchcryptid/hurricane-tracks/internal/mapdoc"
	"github.com/couchcryptid/hurricane-tracks/internal/observability"
)

// OverlayFetcher loads the boundary layer drawn under the tracks.
type OverlayFetcher interface {
	Fetch(ctx context.Context) (*geojson.FeatureCollection, error)
}

// TrackPublisher ships the per-storm summaries to downstream consumers.
type TrackPublisher interface {
	PublishSummaries(ctx context.Context, summaries []domain.Summary) error
}

// RendererOption configures optional Renderer collaborators.
type RendererOption func(*Renderer)

// WithGeocoder labels track markers with the nearest place name.
func WithGeocoder(g domain.Geocoder) RendererOption {
	return func(r *Renderer) { r.geocoder = g }
}

// WithOverlay draws a boundary layer under the tracks.
func WithOverlay(f OverlayFetcher) RendererOption {
	return func(r *Renderer) { r.overlay = f }
}

// WithPublisher publishes the summaries of the rendered tracks.
func WithPublisher(p TrackPublisher) RendererOption {
	return func(r *Renderer) { r.publisher = p }
}

// Renderer turns the extracted dataset into a map document.
type Renderer struct {
	targets   []domain.Target
	geocoder  domain.Geocoder
	overlay   OverlayFetcher
	publisher TrackPublisher
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewRenderer creates a Renderer for targets.
func NewRenderer(targets []domain.Target, logger *slog.Logger, metrics *observability.Metrics, opts ...RendererOption) *Renderer {
	r := &Renderer{targets: targets, logger: logger, metrics: metrics}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run builds one storm per target that has at least one valid observation,
// in target order. Targets without data are logged and skipped. Overlay,
// geocoding and publish failures are logged; only a dataset lacking the
// required columns is an error.
func (r *Renderer) Run(ctx context.Context, tbl domain.Table) (mapdoc.Document, error) {
	start := domain.Now()
	if missing := tbl.Header.Missing(domain.RequiredColumns...); len(missing) > 0 {
		return mapdoc.Document{}, fmt.Errorf("extracted csv missing columns %v", missing)
	}

	doc := mapdoc.Document{Title: mapdoc.DefaultTitle}
	for _, target := range r.targets {
		if err := ctx.Err(); err != nil {
			return mapdoc.Document{}, err
		}
		track, ok := r.buildTrack(tbl, target)
		if !ok {
			r.metrics.TracksSkipped.Inc()
			continue
		}

		storm := mapdoc.NewStorm(track)
		storm.Markers = domain.LabelMarkers(ctx, storm.Markers, r.geocoder, r.logger)
		doc.Storms = append(doc.Storms, storm)
		r.metrics.TracksRendered.Inc()
	}

	doc.Overlay = r.fetchOverlay(ctx)
	r.publish(ctx, doc.Summaries())

	doc.GeneratedAt = domain.Now()
	r.metrics.StageDuration.WithLabelValues("render").Observe(domain.Since(start).Seconds())
	r.logger.Info("map assembled", "targets", len(r.targets), "tracks", len(doc.Storms))
	return doc, nil
}

func (r *Renderer) buildTrack(tbl domain.Table, target domain.Target) (domain.Track, bool) {
	track, stats := domain.BuildTrack(tbl, target)
	log := r.logger.With("storm", target.Name, "year", target.Year)

	if track.Match == domain.MatchNone {
		log.Warn("no data found")
		return track, false
	}
	if track.Match == domain.MatchContains {
		log.Warn("no exact name match, using loose match", "matched_names", track.MatchedNames)
	}
	if stats.DroppedTime > 0 || stats.DroppedLocation > 0 {
		r.metrics.ObservationsDropped.WithLabelValues("timestamp").Add(float64(stats.DroppedTime))
		r.metrics.ObservationsDropped.WithLabelValues("coordinate").Add(float64(stats.DroppedLocation))
		log.Warn("dropped unparseable rows",
			"candidates", stats.Candidates,
			"bad_timestamp", stats.DroppedTime,
			"bad_coordinate", stats.DroppedLocation,
		)
	}
	if track.Len() == 0 {
		log.Warn("no valid observations")
		return track, false
	}

	first, last := track.Observations[0].Time, track.Observations[track.Len()-1].Time
	log.Info("processed track",
		"points", track.Len(),
		"match", track.Match.String(),
		"start", first.Format(domain.PointTimeLayout),
		"end", last.Format(domain.PointTimeLayout),
	)
	return track, true
}

func (r *Renderer) fetchOverlay(ctx context.Context) *geojson.FeatureCollection {
	if r.overlay == nil {
		return nil
	}
	fc, err := r.overlay.Fetch(ctx)
	if err != nil {
		r.metrics.OverlayFetches.WithLabelValues("error").Inc()
		r.logger.Warn("boundary overlay unavailable, rendering without it", "error", err)
		return nil
	}
	r.metrics.OverlayFetches.WithLabelValues("success").Inc()
	return fc
}

func (r *Renderer) publish(ctx context.Context, summaries []domain.Summary) {
	if r.publisher == nil || len(summaries) == 0 {
		return
	}
	if err := r.publisher.PublishSummaries(ctx, summaries); err != nil {
		r.logger.Error("publish track summaries", "error", err)
		return
	}
	r.metrics.TracksPublished.Add(float64(len(summaries)))
}
