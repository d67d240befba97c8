package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KaramelBytes/datacleaner-cli/internal/dataset"
)

// ErrEmptyInput is returned when the input has no non-blank lines.
var ErrEmptyInput = errors.New("empty CSV input")

// ParseError reports input that cannot be turned into a dataset.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse csv: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

type csvParser struct{}

func (csvParser) CanParse(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".txt")
}

func (csvParser) Parse(content []byte) (*dataset.Dataset, error) {
	return ParseCSV(string(content))
}

// ParseCSV parses comma-separated text. The first non-blank line is the
// header. Rows whose field count differs from the header are skipped. Field
// values are trimmed.
func ParseCSV(text string) (*dataset.Dataset, error) {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return nil, &ParseError{Err: ErrEmptyInput}
	}

	header := ParseCSVLine(lines[0])
	names := make([]string, len(header))
	var columns []string
	seen := make(map[string]struct{}, len(header))
	for i, h := range header {
		names[i] = strings.TrimSpace(h)
		if _, ok := seen[names[i]]; ok {
			continue
		}
		seen[names[i]] = struct{}{}
		columns = append(columns, names[i])
	}

	records := make([]dataset.Record, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := ParseCSVLine(line)
		if len(values) != len(header) {
			continue
		}
		rec := make(dataset.Record, len(columns))
		for i, name := range names {
			rec[name] = strings.TrimSpace(values[i])
		}
		records = append(records, rec)
	}
	return dataset.New(columns, records), nil
}

// ParseCSVLine splits one line on commas outside double quotes. Quote
// characters toggle the quoted state and are dropped.
func ParseCSVLine(line string) []string {
	var out []string
	var cur strings.Builder
	inQuotes := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			out = append(out, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	return append(out, cur.String())
}
