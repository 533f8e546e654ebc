package domain

import (
	"strconv"
)

// UndesignatedColor is used for codes outside the category table.
const UndesignatedColor = "gray"

// CategoryStyle is one legend entry.
type CategoryStyle struct {
	Code  int
	Color string
	Label string
}

// CategoryTable maps Saffir-Simpson codes -3..5 to display colors.
var CategoryTable = []CategoryStyle{
	{Code: -3, Color: "gray", Label: "Not designated"},
	{Code: -2, Color: "gray", Label: "Not designated"},
	{Code: -1, Color: "blue", Label: "Tropical Depression"},
	{Code: 0, Color: "green", Label: "Tropical Storm"},
	{Code: 1, Color: "yellow", Label: "Category 1"},
	{Code: 2, Color: "orange", Label: "Category 2"},
	{Code: 3, Color: "red", Label: "Category 3"},
	{Code: 4, Color: "purple", Label: "Category 4"},
	{Code: 5, Color: "darkred", Label: "Category 5"},
}

// Legend returns the legend rows in display order: depression up to
// Category 5, then a single "Not designated" row.
func Legend() []CategoryStyle {
	out := make([]CategoryStyle, 0, len(CategoryTable)-1)
	for _, c := range CategoryTable {
		if c.Code >= -1 {
			out = append(out, c)
		}
	}
	return append(out, CategoryStyle{Code: -3, Color: UndesignatedColor, Label: "Not designated"})
}

// CategoryColor looks up the display color for a category code.
func CategoryColor(code Optional[int]) string {
	c, ok := code.Get()
	if !ok {
		return UndesignatedColor
	}
	for _, s := range CategoryTable {
		if s.Code == c {
			return s.Color
		}
	}
	return UndesignatedColor
}

// CategoryText is the per-point category shown in popups: the code itself
// for storms and hurricanes, "TD/TS" for depressions.
func CategoryText(code Optional[int]) string {
	c, ok := code.Get()
	switch {
	case !ok || c < -1:
		return "Not designated"
	case c >= 0:
		return strconv.Itoa(c)
	default:
		return "TD/TS"
	}
}

// WindText renders a point wind value, or N/A.
func WindText(w Optional[float64]) string {
	v, ok := w.Get()
	if !ok {
		return NotAvailable
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Segment is the edge between two adjacent observations of a track.
type Segment struct {
	Index int
	From  Observation
	To    Observation
	Color string
}

// Segments returns the len-1 edges of a track, colored by the category of
// each edge's first observation.
func Segments(t Track) []Segment {
	if len(t.Observations) < 2 {
		return nil
	}
	out := make([]Segment, 0, len(t.Observations)-1)
	for i := 0; i < len(t.Observations)-1; i++ {
		from := t.Observations[i]
		out = append(out, Segment{
			Index: i,
			From:  from,
			To:    t.Observations[i+1],
			Color: CategoryColor(from.Category),
		})
	}
	return out
}

// Marker is an emphasized point on a track.
type Marker struct {
	Index       int
	Label       string
	Observation Observation
	Color       string
	Place       string
}

// MarkerIndices returns the start, middle and end positions for a track of
// length n. For n == 1 all three are 0.
func MarkerIndices(n int) [3]int {
	if n <= 0 {
		return [3]int{}
	}
	return [3]int{0, n / 2, n - 1}
}

// Markers returns the start, middle and end markers of a non-empty track.
func Markers(t Track) []Marker {
	if len(t.Observations) == 0 {
		return nil
	}
	labels := [3]string{"Start", "Middle", "End"}
	idx := MarkerIndices(len(t.Observations))
	out := make([]Marker, 0, 3)
	for i, at := range idx {
		obs := t.Observations[at]
		out = append(out, Marker{
			Index:       at,
			Label:       labels[i],
			Observation: obs,
			Color:       CategoryColor(obs.Category),
		})
	}
	return out
}
