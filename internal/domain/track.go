package domain

import (
	"errors"
	"slices"

	"github.com/paulmach/orb"
)

// MatchKind records how rows were selected for a track.
type MatchKind int

const (
	MatchNone MatchKind = iota
	MatchExact
	// MatchContains is the loose name match. It can pick up a different storm
	// whose name contains the target's (e.g. IDA inside IDALIA in the same
	// season), so callers surface the matched names.
	MatchContains
)

func (m MatchKind) String() string {
	switch m {
	case MatchExact:
		return "exact"
	case MatchContains:
		return "contains"
	default:
		return "none"
	}
}

// Track is the time-ordered list of observations for one target.
type Track struct {
	Target       Target
	Match        MatchKind
	MatchedNames []string
	Observations []Observation
}

// Len returns the number of observations.
func (t Track) Len() int { return len(t.Observations) }

// LineString returns the track geometry in [lon, lat] order.
func (t Track) LineString() orb.LineString {
	ls := make(orb.LineString, len(t.Observations))
	for i, o := range t.Observations {
		ls[i] = orb.Point{o.Lon, o.Lat}
	}
	return ls
}

// Bound returns the smallest box holding every observation. The second
// result is false for an empty track.
func (t Track) Bound() (orb.Bound, bool) {
	if len(t.Observations) == 0 {
		return orb.Bound{}, false
	}
	return t.LineString().Bound(), true
}

// BuildStats counts what happened to candidate rows while building a track.
type BuildStats struct {
	Candidates      int
	DroppedTime     int
	DroppedLocation int
}

// SelectRows returns the rows of tbl belonging to target: exact name and
// season first, then case-insensitive name containment within the season.
func SelectRows(tbl Table, target Target) ([][]string, MatchKind) {
	if rows := filterRows(tbl, target.MatchesExact); len(rows) > 0 {
		return rows, MatchExact
	}
	if rows := filterRows(tbl, target.MatchesContains); len(rows) > 0 {
		return rows, MatchContains
	}
	return nil, MatchNone
}

func filterRows(tbl Table, match func(name string, season int) bool) [][]string {
	var out [][]string
	for _, row := range tbl.Rows {
		season, ok := tbl.Header.Season(row)
		if !ok {
			continue
		}
		if match(tbl.Header.Get(row, ColName), season) {
			out = append(out, row)
		}
	}
	return out
}

// BuildTrack selects, parses and orders the observations for target. Rows
// with an unparseable timestamp or position are dropped and counted; the rest
// of the storm is kept. The returned track may be empty.
func BuildTrack(tbl Table, target Target) (Track, BuildStats) {
	rows, kind := SelectRows(tbl, target)
	track := Track{Target: target, Match: kind}
	stats := BuildStats{Candidates: len(rows)}

	seen := make(map[string]bool)
	for _, row := range rows {
		obs, err := ParseObservation(tbl.Header, row)
		switch {
		case errors.Is(err, ErrBadTimestamp):
			stats.DroppedTime++
			continue
		case errors.Is(err, ErrBadCoordinate):
			stats.DroppedLocation++
			continue
		case err != nil:
			continue
		}
		if !seen[obs.Name] {
			seen[obs.Name] = true
			track.MatchedNames = append(track.MatchedNames, obs.Name)
		}
		track.Observations = append(track.Observations, obs)
	}

	slices.SortStableFunc(track.Observations, func(a, b Observation) int {
		return a.Time.Compare(b.Time)
	})
	return track, stats
}
