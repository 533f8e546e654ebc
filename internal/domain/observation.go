package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// IBTrACS column names read by the pipeline.
const (
	ColName     = "NAME"
	ColSeason   = "SEASON"
	ColTime     = "ISO_TIME"
	ColLat      = "LAT"
	ColLon      = "LON"
	ColWind     = "USA_WIND"
	ColCategory = "USA_SSHS"
)

// RequiredColumns must be present in any file the renderer reads.
var RequiredColumns = []string{ColName, ColSeason, ColTime, ColLat, ColLon, ColWind, ColCategory}

var (
	// ErrBadTimestamp marks a row whose ISO_TIME cannot be parsed.
	ErrBadTimestamp = errors.New("unparseable timestamp")
	// ErrBadCoordinate marks a row whose LAT or LON is not a finite number.
	ErrBadCoordinate = errors.New("unparseable coordinate")
)

// Header maps CSV column names to their positions.
type Header struct {
	names []string
	idx   map[string]int
}

// NewHeader indexes a header row. Names are trimmed; the first occurrence of
// a duplicated name wins.
func NewHeader(names []string) Header {
	h := Header{names: append([]string(nil), names...), idx: make(map[string]int, len(names))}
	for i, n := range names {
		n = strings.TrimSpace(strings.TrimPrefix(n, "\ufeff"))
		if _, dup := h.idx[n]; !dup {
			h.idx[n] = i
		}
	}
	return h
}

// Names returns the header row as read.
func (h Header) Names() []string { return h.names }

// Get returns the raw value of col in row, or "" when the column is unknown
// or the row is short.
func (h Header) Get(row []string, col string) string {
	i, ok := h.idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// Missing lists the columns from cols absent in the header.
func (h Header) Missing(cols ...string) []string {
	var out []string
	for _, c := range cols {
		if _, ok := h.idx[c]; !ok {
			out = append(out, c)
		}
	}
	return out
}

// Season parses the SEASON field of row.
func (h Header) Season(row []string) (int, bool) {
	return ParseInteger(h.Get(row, ColSeason))
}

// Table is a CSV file held in memory: one header and its data rows.
type Table struct {
	Header Header
	Rows   [][]string
}

// Observation is one fix of a storm's position and intensity.
type Observation struct {
	Name     string            `json:"name"`
	Season   int               `json:"season"`
	Time     time.Time         `json:"time"`
	Lat      float64           `json:"lat"`
	Lon      float64           `json:"lon"`
	Wind     Optional[float64] `json:"wind"`
	Category Optional[int]     `json:"category"`
}

// ParseObservation converts one CSV row into an Observation. Timestamp and
// coordinates are mandatory; wind and category fall back to missing.
func ParseObservation(h Header, row []string) (Observation, error) {
	rawTime := h.Get(row, ColTime)
	t, err := parseTime(rawTime)
	if err != nil {
		return Observation{}, fmt.Errorf("%w: %q", ErrBadTimestamp, rawTime)
	}

	lat, okLat := parseFinite(h.Get(row, ColLat))
	lon, okLon := parseFinite(h.Get(row, ColLon))
	if !okLat || !okLon {
		return Observation{}, fmt.Errorf("%w: lat=%q lon=%q", ErrBadCoordinate, h.Get(row, ColLat), h.Get(row, ColLon))
	}

	season, _ := h.Season(row)

	return Observation{
		Name:     NormalizeName(h.Get(row, ColName)),
		Season:   season,
		Time:     t,
		Lat:      lat,
		Lon:      lon,
		Wind:     parseOptionalFloat(h.Get(row, ColWind)),
		Category: parseOptionalInt(h.Get(row, ColCategory)),
	}, nil
}

// parseTime accepts the free-form date strings found in best-track files.
// Values without a zone are taken as UTC.
func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty")
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
