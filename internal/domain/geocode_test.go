package domain

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mock geocoder ---

type mockGeocoder struct {
	results []GeocodingResult
	err     error
	calls   int
}

func (m *mockGeocoder) ReverseGeocode(_ context.Context, _, _ float64) (GeocodingResult, error) {
	m.calls++
	if m.err != nil {
		return GeocodingResult{}, m.err
	}
	if len(m.results) == 0 {
		return GeocodingResult{}, nil
	}
	r := m.results[0]
	if len(m.results) > 1 {
		m.results = m.results[1:]
	}
	return r, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testMarkers() []Marker {
	return Markers(Track{Observations: []Observation{
		{Name: "IAN", Lat: 12.5, Lon: -68.0},
		{Name: "IAN", Lat: 22.0, Lon: -83.5},
		{Name: "IAN", Lat: 26.7, Lon: -82.2},
	}})
}

// --- tests ---

func TestLabelMarkers_NilGeocoder(t *testing.T) {
	markers := testMarkers()

	result := LabelMarkers(context.Background(), markers, nil, discardLogger())

	require.Len(t, result, 3)
	for _, m := range result {
		assert.Empty(t, m.Place)
	}
}

func TestLabelMarkers_PlaceNames(t *testing.T) {
	geo := &mockGeocoder{results: []GeocodingResult{
		{},
		{PlaceName: "Pinar del Río", FormattedAddress: "Pinar del Río, Cuba"},
		{FormattedAddress: "Cayo Costa, Florida, United States"},
	}}

	result := LabelMarkers(context.Background(), testMarkers(), geo, discardLogger())

	require.Len(t, result, 3)
	assert.Empty(t, result[0].Place, "open water has no place")
	assert.Equal(t, "Pinar del Río", result[1].Place)
	assert.Equal(t, "Cayo Costa, Florida, United States", result[2].Place)
	assert.Equal(t, 3, geo.calls)
}

func TestLabelMarkers_ErrorGracefulDegradation(t *testing.T) {
	geo := &mockGeocoder{err: errors.New("rate limited")}
	markers := testMarkers()

	result := LabelMarkers(context.Background(), markers, geo, discardLogger())

	require.Len(t, result, 3)
	assert.Equal(t, 3, geo.calls)
	for i, m := range result {
		assert.Empty(t, m.Place)
		assert.Equal(t, markers[i].Observation, m.Observation)
	}
}

func TestLabelMarkers_DoesNotMutateInput(t *testing.T) {
	geo := &mockGeocoder{results: []GeocodingResult{{PlaceName: "Somewhere"}}}
	markers := testMarkers()

	_ = LabelMarkers(context.Background(), markers, geo, discardLogger())

	for _, m := range markers {
		assert.Empty(t, m.Place)
	}
}
