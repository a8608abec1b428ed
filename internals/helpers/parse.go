package helper

import (
	"math"
	"strconv"
	"strings"
)

// FloatOrNil parses s as a float64 and returns nil for anything that is not
// a finite number: empty string, non-numeric text, NaN, ±Inf. Callers that
// need hard validation (range checks, required fields) do that themselves;
// this helper only encodes "optional numeric cell".
func FloatOrNil(s *string) *float64 {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// IntOrNil parses s as an int, tolerating a float representation of an
// integral value ("12.0"). Anything else maps to nil.
func IntOrNil(s *string) *int {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	if n, err := strconv.Atoi(v); err == nil {
		return &n
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil
	}
	n := int(f)
	return &n
}

// Round2 rounds to two decimals, the precision used across analytics output.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}
