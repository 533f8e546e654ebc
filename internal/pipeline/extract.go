package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/couchcryptid/hurricane-tracks/internal/domain"
	"github.com/couchcryptid/hurricane-tracks/internal/observability"
)

// ctxCheckInterval is how many rows are scanned between cancellation checks.
const ctxCheckInterval = 10000

// RowReader streams the rows of a tabular dataset.
type RowReader interface {
	Header() domain.Header
	Next() ([]string, error)
}

// TableWriter replaces the destination dataset with header and rows.
type TableWriter interface {
	WriteTable(header []string, rows [][]string) error
}

// TargetCount is the number of rows extracted for one target.
type TargetCount struct {
	Target domain.Target
	Rows   int
}

// ExtractReport summarizes one extract run.
type ExtractReport struct {
	TotalRows int
	KeptRows  int
	Targets   []TargetCount
	Missing   []domain.Target
	Duration  time.Duration
}

// Reduction is the share of source rows not carried to the output, in percent.
func (r ExtractReport) Reduction() float64 {
	if r.TotalRows == 0 {
		return 0
	}
	return (1 - float64(r.KeptRows)/float64(r.TotalRows)) * 100
}

// Extractor filters a large dataset down to the rows of the configured storms.
type Extractor struct {
	targets []domain.Target
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewExtractor creates an Extractor for targets.
func NewExtractor(targets []domain.Target, logger *slog.Logger, metrics *observability.Metrics) *Extractor {
	return &Extractor{targets: targets, logger: logger, metrics: metrics}
}

// Run scans src once and writes every row whose normalized name and season
// equal a target to dst. Rows keep their source order within a target and
// are grouped in target-list order; duplicates pass through. A target with
// no rows is logged and reported, not an error. Read and write failures are.
func (e *Extractor) Run(ctx context.Context, src RowReader, dst TableWriter) (ExtractReport, error) {
	start := domain.Now()
	header := src.Header()
	if missing := header.Missing(domain.ColName, domain.ColSeason); len(missing) > 0 {
		return ExtractReport{}, fmt.Errorf("source csv missing columns %v", missing)
	}

	buckets := make([][][]string, len(e.targets))
	var report ExtractReport

	for {
		if report.TotalRows%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return ExtractReport{}, err
			}
		}
		row, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return ExtractReport{}, fmt.Errorf("read source: %w", err)
		}
		report.TotalRows++

		season, ok := header.Season(row)
		if !ok {
			continue
		}
		name := header.Get(row, domain.ColName)
		for i, t := range e.targets {
			if t.MatchesExact(name, season) {
				buckets[i] = append(buckets[i], row)
			}
		}
	}
	e.metrics.RowsScanned.Add(float64(report.TotalRows))

	var out [][]string
	for i, t := range e.targets {
		n := len(buckets[i])
		report.Targets = append(report.Targets, TargetCount{Target: t, Rows: n})
		if n == 0 {
			report.Missing = append(report.Missing, t)
			e.metrics.TargetsMissing.Inc()
			e.logger.Warn("no data found", "storm", t.Name, "year", t.Year)
			continue
		}
		e.logger.Info("found data points", "storm", t.Name, "year", t.Year, "rows", n)
		out = append(out, buckets[i]...)
	}
	report.KeptRows = len(out)

	if err := dst.WriteTable(header.Names(), out); err != nil {
		return ExtractReport{}, fmt.Errorf("write extracted rows: %w", err)
	}
	e.metrics.RowsExtracted.Add(float64(report.KeptRows))

	report.Duration = domain.Since(start)
	e.metrics.StageDuration.WithLabelValues("extract").Observe(report.Duration.Seconds())
	e.logger.Info("extraction complete",
		"targets", len(e.targets),
		"source_rows", report.TotalRows,
		"kept_rows", report.KeptRows,
		"missing", len(report.Missing),
		"reduction_pct", fmt.Sprintf("%.2f", report.Reduction()),
	)
	return report, nil
}
