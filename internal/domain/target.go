package domain

import (
	"fmt"
	"strings"
)

// Target identifies one storm season to extract and render.
type Target struct {
	Name string `json:"name"`
	Year int    `json:"year"`
}

// DefaultTargets is the hand-maintained list of storms in the report.
var DefaultTargets = []Target{
	{Name: "IRENE", Year: 2011},
	{Name: "ANDREW", Year: 1992},
	{Name: "IAN", Year: 2022},
	{Name: "IDA", Year: 2021},
	{Name: "MILTON", Year: 2024},
	{Name: "IDALIA", Year: 2023},
	{Name: "HELENE", Year: 2024},
}

func (t Target) String() string {
	return fmt.Sprintf("%s (%d)", t.Name, t.Year)
}

// Key returns a stable identifier such as "IAN-2022".
func (t Target) Key() string {
	return fmt.Sprintf("%s-%d", NormalizeName(t.Name), t.Year)
}

// NormalizeName trims surrounding whitespace and upper-cases a storm name.
func NormalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// MatchesExact reports whether a row's name and season equal the target.
// Season must already be parsed; rows without a parseable season never match.
func (t Target) MatchesExact(name string, season int) bool {
	return season == t.Year && NormalizeName(name) == NormalizeName(t.Name)
}

// MatchesContains is the loose variant used when no exact match exists:
// the row name contains the target name, ignoring case.
func (t Target) MatchesContains(name string, season int) bool {
	return season == t.Year && strings.Contains(NormalizeName(name), NormalizeName(t.Name))
}

var descriptions = map[string]string{
	"IRENE":  "the Caribbean and U.S. East Coast",
	"ANDREW": "Florida and the Bahamas",
	"IAN":    "western Cuba and Florida",
	"IDA":    "Louisiana and the Gulf Coast",
	"MILTON": "Florida and the Gulf Coast",
	"IDALIA": "Florida and the Southeast",
}

// Describe returns the short narrative shown in a track popup.
func Describe(name string, s Summary) string {
	region, ok := descriptions[NormalizeName(name)]
	if !ok {
		region = "the Southeast U.S. and Appalachian region"
	}
	strength := "tropical cyclone"
	if code, ok := s.PeakCode.Get(); ok && code >= 1 {
		strength = fmt.Sprintf("Category %d", code)
	}
	return fmt.Sprintf("Hurricane %s was a powerful %s that affected %s.", NormalizeName(name), strength, region)
}
