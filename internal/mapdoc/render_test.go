package mapdoc

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var generatedAt = time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)

func sampleDocument() Document {
	return Document{
		GeneratedAt: generatedAt,
		Storms: []Storm{
			testStorm("IAN",
				obs("IAN", 0, 12.5, -68.0, 25, -1),
				obs("IAN", 6, 14.0, -70.0, 65, 1),
				obs("IAN", 12, 20.0, -80.0, 140, 4),
				obs("IAN", 18, 26.0, -82.0, 120, 3),
			),
			testStorm("IDALIA",
				obs("IDALIA", 0, 20.0, -86.0, 40, 0),
				obs("IDALIA", 6, 22.0, -85.0, 60, 0),
			),
		},
	}
}

var dataRe = regexp.MustCompile(`var data = (\{.*\});`)

// pageData pulls the serialized map layers back out of a rendered page.
func pageData(t *testing.T, page string) map[string]json.RawMessage {
	t.Helper()
	m := dataRe.FindStringSubmatch(page)
	require.Len(t, m, 2, "map data not found in page")
	var out map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(m[1]), &out))
	return out
}

func TestRender_Page(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleDocument()))
	page := buf.String()

	assert.Contains(t, page, "<title>Multiple Hurricane Tracks Visualization</title>")
	assert.Contains(t, page, "leaflet.js")
	assert.Contains(t, page, "map.fitBounds(data.bounds)")
	assert.Contains(t, page, "Generated 2024-10-01 12:00 UTC")

	// Legend: depression through Category 5 plus the undesignated row.
	for _, label := range []string{"Tropical Depression", "Tropical Storm", "Category 1", "Category 5", "Not designated"} {
		assert.Contains(t, page, label)
	}
	assert.Equal(t, 8, strings.Count(page, `class="swatch"`))

	// Summary panel in drawing order, peak colored by severity.
	assert.Less(t, strings.Index(page, "<h4>IAN (2022)</h4>"), strings.Index(page, "<h4>IDALIA (2022)</h4>"))
	assert.Contains(t, page, `<span class="peak-major">Category 4</span>`)
	assert.Contains(t, page, `<span class="peak-tropical">Tropical Storm</span>`)
	assert.Contains(t, page, "September 23 - September 23, 2022")
	assert.NotContains(t, page, "No hurricane tracks found.")
}

func TestRender_Layers(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleDocument()))
	data := pageData(t, buf.String())

	var bounds [2][2]float64
	require.NoError(t, json.Unmarshal(data["bounds"], &bounds))
	assert.Equal(t, [2][2]float64{{12.5, -86.0}, {26.0, -68.0}}, bounds)

	tracks, err := geojson.UnmarshalFeatureCollection(data["tracks"])
	require.NoError(t, err)
	require.Len(t, tracks.Features, 2)
	assert.Equal(t, "IAN", tracks.Features[0].Properties["name"])
	assert.Equal(t, "Category 4", tracks.Features[0].Properties["peak"])
	assert.Equal(t, "140", tracks.Features[0].Properties["max_wind"])
	assert.Contains(t, tracks.Features[0].Properties["popup"], "Maximum Wind Speed:</strong> 140 mph")

	segments, err := geojson.UnmarshalFeatureCollection(data["segments"])
	require.NoError(t, err)
	require.Len(t, segments.Features, 4)
	colors := make([]any, len(segments.Features))
	for i, f := range segments.Features {
		colors[i] = f.Properties["color"]
	}
	assert.Equal(t, []any{"blue", "yellow", "purple", "green"}, colors)
	assert.Equal(t, "IAN | 2022-09-23 00:00 | Wind: 25 mph | Lat: 12.50, Lon: -68.00",
		segments.Features[0].Properties["tooltip"])
	assert.Equal(t, "TD/TS", segments.Features[0].Properties["category"])

	markers, err := geojson.UnmarshalFeatureCollection(data["markers"])
	require.NoError(t, err)
	require.Len(t, markers.Features, 6)
	assert.Equal(t, "Start", markers.Features[0].Properties["label"])
	assert.Equal(t, "purple", markers.Features[1].Properties["color"])
	assert.Equal(t, "End", markers.Features[5].Properties["label"])

	_, hasOverlay := data["overlay"]
	assert.False(t, hasOverlay)
}

func TestRender_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Document{GeneratedAt: generatedAt}))
	page := buf.String()
	data := pageData(t, page)

	assert.Contains(t, page, "No hurricane tracks found.")
	_, hasBounds := data["bounds"]
	assert.False(t, hasBounds)
	assert.JSONEq(t, `[25, -70]`, string(data["center"]))
	assert.JSONEq(t, `4`, string(data["zoom"]))
	assert.JSONEq(t, `{"type":"FeatureCollection","features":[]}`, string(data["tracks"]))
}

func TestRender_Overlay(t *testing.T) {
	doc := sampleDocument()
	doc.Overlay = geojson.NewFeatureCollection()

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, doc))
	data := pageData(t, buf.String())

	assert.JSONEq(t, `{"type":"FeatureCollection","features":[]}`, string(data["overlay"]))
}

func TestRender_EscapesPlaceNames(t *testing.T) {
	doc := sampleDocument()
	doc.Storms[0].Markers[0].Place = `<img src=x onerror=alert(1)>`

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, doc))

	assert.NotContains(t, buf.String(), "<img src=x")
	markers, err := geojson.UnmarshalFeatureCollection(pageData(t, buf.String())["markers"])
	require.NoError(t, err)
	assert.Contains(t, markers.Features[0].Properties["popup"], "&lt;img src=x onerror=alert(1)&gt;")
}

func TestFileWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "map.html")
	require.NoError(t, FileWriter{Path: path}.Write(sampleDocument()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<!DOCTYPE html>"))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}
