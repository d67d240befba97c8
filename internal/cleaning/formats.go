package cleaning

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/KaramelBytes/datacleaner-cli/internal/dataset"
)

var (
	dateKeywords  = []string{"date", "time", "created", "updated", "birth", "expire"}
	datePatternRe = regexp.MustCompile(`\d{1,4}[-/]\d{1,2}[-/]\d{1,4}`)
)

func isDateColumn(column, value string) bool {
	lc := strings.ToLower(column)
	for _, k := range dateKeywords {
		if strings.Contains(lc, k) {
			return true
		}
	}
	return datePatternRe.MatchString(value)
}

// StandardizeDate rewrites a parseable date in the given layout. Values that
// do not parse are returned unchanged.
func StandardizeDate(value string, format DateFormat) string {
	t, ok := dataset.ParseDate(value)
	if !ok {
		return value
	}
	y, m, d := t.Year(), int(t.Month()), t.Day()
	switch format {
	case DateUS:
		return fmt.Sprintf("%02d/%02d/%04d", m, d, y)
	case DateEU:
		return fmt.Sprintf("%02d/%02d/%04d", d, m, y)
	default:
		return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
	}
}

func (p *pipeline) standardizeFormats() error {
	dates, numbers := p.opts.StandardizeDates, p.opts.StandardizeNumbers
	if !dates && !numbers {
		return nil
	}
	cols := p.data.Columns
	format := p.opts.DateFormat
	err := p.eachRecord("formats", func(r dataset.Record) {
		for _, c := range cols {
			v := r[c]
			if dates && isDateColumn(c, v) {
				v = StandardizeDate(v, format)
			}
			if numbers && !dataset.IsMissing(v) {
				v = dataset.Canonical(v)
			}
			r[c] = v
		}
	})
	if err != nil {
		return err
	}
	p.log.add("Standardized data formats")
	return nil
}
