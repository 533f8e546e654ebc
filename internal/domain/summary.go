package domain

import (
	"fmt"
	"strconv"
	"time"
)

// Display layouts for summary dates.
const (
	DateLayout      = "January 02, 2006"
	ShortDateLayout = "January 02"
	PointTimeLayout = "2006-01-02 15:04"
)

// NotAvailable is shown in place of a missing value.
const NotAvailable = "N/A"

// Summary is the per-track aggregate shown in popups and the summary panel.
type Summary struct {
	Name     string            `json:"name"`
	Year     int               `json:"year"`
	Peak     string            `json:"peak"`
	PeakCode Optional[int]     `json:"peak_code"`
	Start    time.Time         `json:"start"`
	End      time.Time         `json:"end"`
	MaxWind  Optional[float64] `json:"max_wind"`
	Points   int               `json:"points"`
}

// Summarize reduces a non-empty track. Every field is an order-independent
// reduction, so shuffling the observations does not change the result.
func Summarize(t Track) Summary {
	s := Summary{
		Name:   NormalizeName(t.Target.Name),
		Year:   t.Target.Year,
		Points: len(t.Observations),
	}
	if len(t.Observations) == 0 {
		s.Peak = PeakLabel(None[int]())
		return s
	}

	cats := make([]Optional[int], len(t.Observations))
	winds := make([]Optional[float64], len(t.Observations))
	s.Start, s.End = t.Observations[0].Time, t.Observations[0].Time
	for i, o := range t.Observations {
		cats[i] = o.Category
		winds[i] = o.Wind
		if o.Time.Before(s.Start) {
			s.Start = o.Time
		}
		if o.Time.After(s.End) {
			s.End = o.Time
		}
	}

	s.PeakCode = maxOf(cats)
	s.Peak = PeakLabel(s.PeakCode)
	s.MaxWind = maxOf(winds)
	return s
}

// PeakLabel names a peak category code.
func PeakLabel(code Optional[int]) string {
	c, ok := code.Get()
	switch {
	case !ok:
		return "Not designated"
	case c >= 1:
		return fmt.Sprintf("Category %d", c)
	case c == 0:
		return "Tropical Storm"
	case c == -1:
		return "Tropical Depression"
	default:
		return "Not designated"
	}
}

// StartDate formats the first observation time.
func (s Summary) StartDate() string { return s.Start.Format(DateLayout) }

// EndDate formats the last observation time.
func (s Summary) EndDate() string { return s.End.Format(DateLayout) }

// ActiveRange is the compact "September 23 - September 30, 2022" form.
func (s Summary) ActiveRange() string {
	return s.Start.Format(ShortDateLayout) + " - " + s.End.Format(DateLayout)
}

// MaxWindText renders the peak wind as a whole number, or N/A.
func (s Summary) MaxWindText() string {
	return windText(s.MaxWind)
}

// PeakSeverity buckets the peak for the summary panel: "major" for
// Category 3 and above, "hurricane" for 1-2, otherwise "tropical".
func (s Summary) PeakSeverity() string {
	c, ok := s.PeakCode.Get()
	switch {
	case ok && c >= 3:
		return "major"
	case ok && c >= 1:
		return "hurricane"
	default:
		return "tropical"
	}
}

func windText(w Optional[float64]) string {
	v, ok := w.Get()
	if !ok {
		return NotAvailable
	}
	return strconv.Itoa(int(v))
}
