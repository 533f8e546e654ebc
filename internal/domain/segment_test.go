package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryColor(t *testing.T) {
	tests := []struct {
		name string
		code Optional[int]
		want string
	}{
		{"not designated -3", Some(-3), "gray"},
		{"not designated -2", Some(-2), "gray"},
		{"depression", Some(-1), "blue"},
		{"storm", Some(0), "green"},
		{"cat 1", Some(1), "yellow"},
		{"cat 2", Some(2), "orange"},
		{"cat 3", Some(3), "red"},
		{"cat 4", Some(4), "purple"},
		{"cat 5", Some(5), "darkred"},
		{"below table", Some(-5), "gray"},
		{"missing", None[int](), "gray"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryColor(tt.code))
		})
	}
}

func TestCategoryTable(t *testing.T) {
	require.Len(t, CategoryTable, 9)
	for i, c := range CategoryTable {
		assert.Equal(t, i-3, c.Code)
	}

	legend := Legend()
	require.Len(t, legend, 8)
	assert.Equal(t, "Tropical Depression", legend[0].Label)
	assert.Equal(t, "Not designated", legend[7].Label)
	assert.Equal(t, "gray", legend[7].Color)
}

func TestCategoryText(t *testing.T) {
	assert.Equal(t, "3", CategoryText(Some(3)))
	assert.Equal(t, "0", CategoryText(Some(0)))
	assert.Equal(t, "TD/TS", CategoryText(Some(-1)))
	assert.Equal(t, "Not designated", CategoryText(Some(-2)))
	assert.Equal(t, "Not designated", CategoryText(None[int]()))
}

func TestWindText(t *testing.T) {
	assert.Equal(t, "115", WindText(Some(115.0)))
	assert.Equal(t, "42.5", WindText(Some(42.5)))
	assert.Equal(t, NotAvailable, WindText(None[float64]()))
}

func TestSegments(t *testing.T) {
	track := Track{Observations: []Observation{
		{Lat: 1, Category: Some(4)},
		{Lat: 2, Category: None[int]()},
		{Lat: 3, Category: Some(-3)},
		{Lat: 4, Category: Some(0)},
	}}

	segs := Segments(track)

	require.Len(t, segs, 3)
	for i, s := range segs {
		assert.Equal(t, i, s.Index)
		assert.Equal(t, track.Observations[i], s.From)
		assert.Equal(t, track.Observations[i+1], s.To)
	}
	assert.Equal(t, "purple", segs[0].Color)
	assert.Equal(t, "gray", segs[1].Color)
	assert.Equal(t, "gray", segs[2].Color)
}

func TestSegments_ShortTracks(t *testing.T) {
	assert.Empty(t, Segments(Track{}))
	assert.Empty(t, Segments(Track{Observations: []Observation{{Lat: 1}}}))
}

func TestMarkerIndices(t *testing.T) {
	assert.Equal(t, [3]int{0, 2, 4}, MarkerIndices(5))
	assert.Equal(t, [3]int{0, 2, 3}, MarkerIndices(4))
	assert.Equal(t, [3]int{0, 1, 1}, MarkerIndices(2))
	assert.Equal(t, [3]int{0, 0, 0}, MarkerIndices(1))
}

func TestMarkers(t *testing.T) {
	track := Track{Observations: []Observation{
		{Lat: 10, Category: Some(-1)},
		{Lat: 11},
		{Lat: 12, Category: Some(5)},
		{Lat: 13},
		{Lat: 14, Category: Some(2)},
	}}

	markers := Markers(track)

	require.Len(t, markers, 3)
	assert.Equal(t, []int{0, 2, 4}, []int{markers[0].Index, markers[1].Index, markers[2].Index})
	assert.Equal(t, []string{"Start", "Middle", "End"}, []string{markers[0].Label, markers[1].Label, markers[2].Label})
	assert.Equal(t, "blue", markers[0].Color)
	assert.Equal(t, "darkred", markers[1].Color)
	assert.Equal(t, "orange", markers[2].Color)
	assert.Equal(t, 12.0, markers[1].Observation.Lat)
}

func TestMarkers_SingleObservation(t *testing.T) {
	markers := Markers(Track{Observations: []Observation{{Lat: 10}}})

	require.Len(t, markers, 3)
	for _, m := range markers {
		assert.Equal(t, 0, m.Index)
		assert.Equal(t, 10.0, m.Observation.Lat)
	}
	assert.Empty(t, Markers(Track{}))
}
