package analysis

import (
	"regexp"
	"strings"

	"github.com/KaramelBytes/datacleaner-cli/internal/dataset"
)

const (
	ReasonAge   = "Invalid age (negative or > 150)"
	ReasonDate  = "Invalid date format"
	ReasonEmail = "Invalid email format"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// InvalidValue is a value that breaks a rule implied by its column name.
type InvalidValue struct {
	Row    int    `json:"row"` // 1-based
	Column string `json:"column"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

// DetectInvalidData checks ages, dates and emails, recognizing the columns
// by name. Missing values are never invalid.
func DetectInvalidData(d *dataset.Dataset) []InvalidValue {
	var out []InvalidValue
	for i, r := range d.Records {
		for _, c := range d.Columns {
			v := r[c]
			if dataset.IsMissing(v) {
				continue
			}
			if reason := invalidReason(strings.ToLower(c), v); reason != "" {
				out = append(out, InvalidValue{Row: i + 1, Column: c, Value: v, Reason: reason})
			}
		}
	}
	return out
}

// invalidReason applies the first rule whose keyword matches the column.
func invalidReason(column, v string) string {
	switch {
	case strings.Contains(column, "age"):
		if x, ok := dataset.ParseNumber(v); ok && (x < 0 || x > 150) {
			return ReasonAge
		}
	case strings.Contains(column, "date"), strings.Contains(column, "time"):
		if !dataset.IsDate(v) {
			return ReasonDate
		}
	case strings.Contains(column, "email"):
		if !emailRe.MatchString(v) {
			return ReasonEmail
		}
	}
	return ""
}
