package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Optional holds a numeric field that may be absent in the source data.
// The zero value is "missing".
type Optional[T int | float64] struct {
	value T
	ok    bool
}

// Some wraps a present value.
func Some[T int | float64](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

// None returns a missing value.
func None[T int | float64]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.ok
}

// Valid reports whether the value is present.
func (o Optional[T]) Valid() bool { return o.ok }

// Or returns the value, or def when missing.
func (o Optional[T]) Or(def T) T {
	if !o.ok {
		return def
	}
	return o.value
}

// MarshalJSON encodes a missing value as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON accepts null for a missing value.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = Optional[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// maxOf reduces a slice of optionals to the largest present value.
func maxOf[T int | float64](values []Optional[T]) Optional[T] {
	var best Optional[T]
	for _, v := range values {
		if !v.ok {
			continue
		}
		if !best.ok || v.value > best.value {
			best = v
		}
	}
	return best
}

// parseOptionalFloat parses a numeric field, treating blanks, garbage and
// NaN as missing.
func parseOptionalFloat(s string) Optional[float64] {
	v, ok := parseFinite(s)
	if !ok {
		return None[float64]()
	}
	return Some(v)
}

// parseOptionalInt parses an integral field. "3" and "3.0" are both 3;
// fractional values are treated as missing.
func parseOptionalInt(s string) Optional[int] {
	v, ok := ParseInteger(s)
	if !ok {
		return None[int]()
	}
	return Some(v)
}

// ParseInteger parses an integer that may have been written as a float
// ("2011" or "2011.0").
func ParseInteger(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, ok := parseFinite(s)
	if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func parseFinite(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
