// Command validate performs data integrity checks between the full source
// CSV and the extracted CSV: header parity, per-storm row counts, row-level
// cross-references, and whether every extracted storm yields a sane track.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -source ibtracs.NA.list.v04r01.csv \
//	  -extracted hurricane_data_extracted.csv
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/couchcryptid/hurricane-tracks/internal/adapter/csvfile"
	"github.com/couchcryptid/hurricane-tracks/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	source := flag.String("source", "", "path to the full best-track CSV")
	extracted := flag.String("extracted", "", "path to the extracted CSV")
	flag.Parse()

	if *source == "" || *extracted == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*source, *extracted); code != 0 {
		os.Exit(code)
	}
}

func run(sourcePath, extractedPath string) int {
	fmt.Println("=== Hurricane Track Data Validation ===")
	fmt.Println()

	src, err := scanSource(sourcePath, domain.DefaultTargets)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load source CSV: %v\n", err)
		return 1
	}

	ext, err := csvfile.ReadTable(extractedPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load extracted CSV: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateSchema(src.header, ext.Header),
		validateExtraction(src, ext, domain.DefaultTargets),
		validateTracks(ext, domain.DefaultTargets),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d source CSV, %d extracted CSV\n", src.total, len(ext.Rows))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Data loading ──

// sourceScan holds what validation needs from the source file without
// keeping all of it in memory.
type sourceScan struct {
	header domain.Header
	total  int
	// rows holds the source rows matching each target, keyed by Target.Key.
	rows map[string][][]string
}

func scanSource(path string, targets []domain.Target) (sourceScan, error) {
	r, err := csvfile.Open(path)
	if err != nil {
		return sourceScan{}, err
	}
	defer r.Close()

	scan := sourceScan{header: r.Header(), rows: make(map[string][][]string)}
	for {
		row, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return sourceScan{}, err
		}
		scan.total++

		season, ok := scan.header.Season(row)
		if !ok {
			continue
		}
		name := scan.header.Get(row, domain.ColName)
		for _, t := range targets {
			if t.MatchesExact(name, season) {
				scan.rows[t.Key()] = append(scan.rows[t.Key()], row)
			}
		}
	}
	return scan, nil
}

// ── Phase 1: Schema ──
// The extracted file carries the source header unchanged.

func validateSchema(source, extracted domain.Header) *phase {
	p := &phase{name: "Phase 1: Schema (header parity)"}

	if !slices.Equal(source.Names(), extracted.Names()) {
		p.errorf("header differs: source=%v extracted=%v", source.Names(), extracted.Names())
	}
	if missing := extracted.Missing(domain.RequiredColumns...); len(missing) > 0 {
		p.errorf("extracted CSV missing required columns %v", missing)
	}
	return p
}

// ── Phase 2: Extraction ──
// Every source row of a target is extracted, in order, and nothing else is.

func validateExtraction(src sourceScan, ext domain.Table, targets []domain.Target) *phase {
	p := &phase{name: "Phase 2: Extraction (extracted vs source)"}

	extRows := make(map[string][][]string)
	lastGroup := -1
	for i, row := range ext.Rows {
		line := i + 2
		season, ok := ext.Header.Season(row)
		if !ok {
			p.errorf("line %d: unparseable SEASON %q", line, ext.Header.Get(row, domain.ColSeason))
			continue
		}
		group := slices.IndexFunc(targets, func(t domain.Target) bool {
			return t.MatchesExact(ext.Header.Get(row, domain.ColName), season)
		})
		if group < 0 {
			p.errorf("line %d: %s (%d) is not a configured storm", line, ext.Header.Get(row, domain.ColName), season)
			continue
		}
		if group < lastGroup {
			p.errorf("line %d: %s appears after %s; rows must be grouped in storm order", line, targets[group], targets[lastGroup])
		}
		lastGroup = max(lastGroup, group)
		key := targets[group].Key()
		extRows[key] = append(extRows[key], row)
	}

	for _, t := range targets {
		want, got := src.rows[t.Key()], extRows[t.Key()]
		if len(want) != len(got) {
			p.errorf("%s: source has %d rows, extracted has %d", t, len(want), len(got))
			continue
		}
		for i := range want {
			if !slices.Equal(want[i], got[i]) {
				p.errorf("%s row %d: source=%s extracted=%s", t, i+1, strings.Join(want[i], ","), strings.Join(got[i], ","))
			}
		}
	}
	return p
}

// ── Phase 3: Tracks ──
// Each extracted storm builds into a usable track.

func validateTracks(ext domain.Table, targets []domain.Target) *phase {
	p := &phase{name: "Phase 3: Tracks (render readiness)"}

	for _, target := range targets {
		t, stats := domain.BuildTrack(ext, target)
		if t.Match == domain.MatchNone {
			continue
		}
		if t.Match == domain.MatchContains {
			p.errorf("%s: only loose name matches %v", target, t.MatchedNames)
		}
		if t.Len() == 0 {
			p.errorf("%s: no valid observations out of %d rows", target, stats.Candidates)
			continue
		}
		if dropped := stats.DroppedTime + stats.DroppedLocation; dropped > 0 {
			p.errorf("%s: %d of %d rows unparseable (%d timestamp, %d coordinate)",
				target, dropped, stats.Candidates, stats.DroppedTime, stats.DroppedLocation)
		}
		checkTrackPoints(p, target, t)

		s := domain.Summarize(t)
		if s.End.Before(s.Start) {
			p.errorf("%s: end %s before start %s", target, s.EndDate(), s.StartDate())
		}
		if s.Start.Year() != target.Year && s.End.Year() != target.Year {
			p.errorf("%s: active %s outside season", target, s.ActiveRange())
		}
	}
	return p
}

func checkTrackPoints(p *phase, target domain.Target, t domain.Track) {
	for i, o := range t.Observations {
		if o.Lat < -90 || o.Lat > 90 || o.Lon < -180 || o.Lon > 180 {
			p.errorf("%s point %d: position %.2f,%.2f out of range", target, i, o.Lat, o.Lon)
		}
		if i > 0 && o.Time.Before(t.Observations[i-1].Time) {
			p.errorf("%s point %d: time %s out of order", target, i, o.Time.Format(domain.PointTimeLayout))
		}
		if c, ok := o.Category.Get(); ok && (c < -5 || c > 5) {
			p.errorf("%s point %d: category %d out of range", target, i, c)
		}
	}
}
