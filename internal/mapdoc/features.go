package mapdoc

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/couchcryptid/hurricane-tracks/internal/domain"
)

// mapData is serialized into the page script. Coordinates are GeoJSON
// [lon, lat]; Bounds follows Leaflet's [[south, west], [north, east]].
type mapData struct {
	Tracks   *geojson.FeatureCollection `json:"tracks"`
	Segments *geojson.FeatureCollection `json:"segments"`
	Markers  *geojson.FeatureCollection `json:"markers"`
	Overlay  *geojson.FeatureCollection `json:"overlay,omitempty"`
	Bounds   *[2][2]float64             `json:"bounds,omitempty"`
	Center   [2]float64                 `json:"center"`
	Zoom     int                        `json:"zoom"`
}

type pointPopup struct {
	Name     string
	Year     int
	Label    string
	Date     string
	Wind     string
	Category string
	Lat      float64
	Lon      float64
	Place    string
}

func buildMapData(tmpl *template.Template, doc Document) (mapData, error) {
	data := mapData{
		Tracks:   geojson.NewFeatureCollection(),
		Segments: geojson.NewFeatureCollection(),
		Markers:  geojson.NewFeatureCollection(),
		Overlay:  doc.Overlay,
		Center:   defaultCenter,
		Zoom:     defaultZoom,
	}
	if b, ok := doc.Bounds(); ok {
		data.Bounds = &[2][2]float64{{b.Bottom(), b.Left()}, {b.Top(), b.Right()}}
	}

	for _, s := range doc.Storms {
		track, err := trackFeature(tmpl, s)
		if err != nil {
			return mapData{}, err
		}
		data.Tracks.Append(track)

		for _, seg := range s.Segments {
			f, err := segmentFeature(tmpl, s.Summary, seg)
			if err != nil {
				return mapData{}, err
			}
			data.Segments.Append(f)
		}
		for _, m := range s.Markers {
			f, err := markerFeature(tmpl, s.Summary, m)
			if err != nil {
				return mapData{}, err
			}
			data.Markers.Append(f)
		}
	}
	return data, nil
}

func trackFeature(tmpl *template.Template, s Storm) (*geojson.Feature, error) {
	popup, err := execString(tmpl, "track_popup", s)
	if err != nil {
		return nil, err
	}
	f := geojson.NewFeature(s.Track.LineString())
	f.Properties["name"] = s.Summary.Name
	f.Properties["year"] = s.Summary.Year
	f.Properties["peak"] = s.Summary.Peak
	f.Properties["start_date"] = s.Summary.StartDate()
	f.Properties["end_date"] = s.Summary.EndDate()
	f.Properties["max_wind"] = s.Summary.MaxWindText()
	f.Properties["tooltip"] = template.HTMLEscapeString(
		fmt.Sprintf("Click for details on %s (%d)", s.Summary.Name, s.Summary.Year))
	f.Properties["popup"] = popup
	return f, nil
}

func segmentFeature(tmpl *template.Template, s domain.Summary, seg domain.Segment) (*geojson.Feature, error) {
	o := seg.From
	p := pointPopup{
		Name:     s.Name,
		Year:     s.Year,
		Date:     o.Time.Format(domain.PointTimeLayout),
		Wind:     domain.WindText(o.Wind),
		Category: domain.CategoryText(o.Category),
		Lat:      o.Lat,
		Lon:      o.Lon,
	}
	popup, err := execString(tmpl, "segment_popup", p)
	if err != nil {
		return nil, err
	}
	f := geojson.NewFeature(orb.LineString{{seg.From.Lon, seg.From.Lat}, {seg.To.Lon, seg.To.Lat}})
	f.Properties["name"] = s.Name
	f.Properties["date"] = p.Date
	f.Properties["wind"] = p.Wind
	f.Properties["category"] = p.Category
	f.Properties["color"] = seg.Color
	f.Properties["tooltip"] = template.HTMLEscapeString(
		fmt.Sprintf("%s | %s | Wind: %s mph | Lat: %.2f, Lon: %.2f", s.Name, p.Date, p.Wind, o.Lat, o.Lon))
	f.Properties["popup"] = popup
	return f, nil
}

func markerFeature(tmpl *template.Template, s domain.Summary, m domain.Marker) (*geojson.Feature, error) {
	o := m.Observation
	p := pointPopup{
		Name:     s.Name,
		Year:     s.Year,
		Label:    m.Label,
		Date:     o.Time.Format(domain.PointTimeLayout),
		Wind:     domain.WindText(o.Wind),
		Category: domain.CategoryText(o.Category),
		Lat:      o.Lat,
		Lon:      o.Lon,
		Place:    m.Place,
	}
	popup, err := execString(tmpl, "marker_popup", p)
	if err != nil {
		return nil, err
	}
	f := geojson.NewFeature(orb.Point{o.Lon, o.Lat})
	f.Properties["label"] = m.Label
	f.Properties["color"] = m.Color
	f.Properties["tooltip"] = template.HTMLEscapeString(
		fmt.Sprintf("%s (%d) - %s", s.Name, s.Year, m.Label))
	f.Properties["popup"] = popup
	return f, nil
}

func execString(tmpl *template.Template, name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
