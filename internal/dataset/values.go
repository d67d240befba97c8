package dataset

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// decimalRe is plain decimal notation with an optional exponent. Go literal
// forms such as 1_000 and 0x1p4 do not match.
var decimalRe = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// ParseNumber converts a raw value to a finite float. Surrounding whitespace
// is ignored; blank, NaN, infinite and non-decimal values are rejected.
func ParseNumber(s string) (float64, bool) {
	raw := strings.TrimSpace(s)
	if raw == "" || !decimalRe.MatchString(raw) {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// IsNumeric reports whether ParseNumber accepts s.
func IsNumeric(s string) bool {
	_, ok := ParseNumber(s)
	return ok
}

// FormatNumber renders f in canonical shortest form: integers without a
// fractional part, exponent notation only for very large or very small
// magnitudes (1e+21, 1e-7).
func FormatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mant, exp, ok := strings.Cut(s, "e")
		if !ok || len(exp) < 2 {
			return s
		}
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		return mant + "e" + exp[:1] + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Canonical returns the canonical numeric form of s, or s unchanged when it
// is not numeric.
func Canonical(s string) string {
	if f, ok := ParseNumber(s); ok {
		return FormatNumber(f)
	}
	return s
}

// Round2 rounds to two decimals.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

var dateLayouts = []string{
	"01/02/2006", "1/2/2006", "01-02-2006", "1-2-2006", "2006/01/02", "2006/1/2",
	"01/02/2006 15:04", "01/02/2006 15:04:05", "1/2/2006 15:04", "1/2/2006 15:04:05",
	"2006/01/02 15:04:05", "2006-01-02 15:04", "2006-1-2",
	"Jan 2, 2006", "January 2, 2006", "2 Jan 2006", "2 January 2006", "Jan 2 2006",
}

// ParseDate parses the date formats commonly found in exported spreadsheets.
func ParseDate(s string) (time.Time, bool) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := cast.StringToDate(raw); err == nil {
		return t, true
	}
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsDate reports whether ParseDate accepts s.
func IsDate(s string) bool {
	_, ok := ParseDate(s)
	return ok
}
