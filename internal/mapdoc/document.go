// Package mapdoc assembles the interactive storm track map: a single HTML
// page with Leaflet layers for each track, its intensity segments and its
// start, middle and end markers, plus the legend and summary panels.
package mapdoc

import (
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/couchcryptid/hurricane-tracks/internal/domain"
)

// DefaultTitle heads the page.
const DefaultTitle = "Multiple Hurricane Tracks Visualization"

// Initial view used when there is nothing to fit.
var (
	defaultCenter = [2]float64{25, -70}
	defaultZoom   = 4
)

// Storm is everything drawn for one track.
type Storm struct {
	Track       domain.Track
	Summary     domain.Summary
	Segments    []domain.Segment
	Markers     []domain.Marker
	Description string
}

// NewStorm derives the summary, segments, markers and description of a
// non-empty track.
func NewStorm(t domain.Track) Storm {
	s := domain.Summarize(t)
	return Storm{
		Track:       t,
		Summary:     s,
		Segments:    domain.Segments(t),
		Markers:     domain.Markers(t),
		Description: domain.Describe(t.Target.Name, s),
	}
}

// Document is the full map page.
type Document struct {
	Title       string
	GeneratedAt time.Time
	Storms      []Storm
	// Overlay is an optional boundary layer drawn under the tracks.
	Overlay *geojson.FeatureCollection
}

// Bounds returns the smallest box covering every plotted observation of
// every storm. The second result is false when nothing is plotted.
func (d Document) Bounds() (orb.Bound, bool) {
	var (
		bound orb.Bound
		found bool
	)
	for _, s := range d.Storms {
		b, ok := s.Track.Bound()
		if !ok {
			continue
		}
		if !found {
			bound, found = b, true
			continue
		}
		bound = bound.Union(b)
	}
	return bound, found
}

// Summaries lists the storm summaries in drawing order.
func (d Document) Summaries() []domain.Summary {
	out := make([]domain.Summary, len(d.Storms))
	for i, s := range d.Storms {
		out[i] = s.Summary
	}
	return out
}
