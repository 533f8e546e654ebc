package domain

import (
	"context"
	"log/slog"
)

// LabelMarkers attaches the nearest place name to each marker. A nil
// geocoder leaves the markers untouched; lookup failures and empty answers
// (open ocean) are logged and skipped.
func LabelMarkers(ctx context.Context, markers []Marker, geocoder Geocoder, logger *slog.Logger) []Marker {
	if geocoder == nil {
		return markers
	}

	out := make([]Marker, len(markers))
	copy(out, markers)
	for i := range out {
		o := out[i].Observation
		result, err := geocoder.ReverseGeocode(ctx, o.Lat, o.Lon)
		if err != nil {
			logger.Warn("reverse geocoding failed",
				"storm", o.Name,
				"marker", out[i].Label,
				"lat", o.Lat,
				"lon", o.Lon,
				"error", err,
			)
			continue
		}
		if result.PlaceName != "" {
			out[i].Place = result.PlaceName
		} else if result.FormattedAddress != "" {
			out[i].Place = result.FormattedAddress
		}
	}
	return out
}
