package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Markdown renders a compact report of the profile for terminals or docs.
func (p *DatasetProfile) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if p.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", p.Name))
	}
	s := p.Summary
	b.WriteString(fmt.Sprintf("Rows: %d\n", s.TotalRows))
	b.WriteString(fmt.Sprintf("Columns: %d\n", s.TotalColumns))
	b.WriteString(fmt.Sprintf("Missing values: %d\n", s.MissingValues))
	b.WriteString(fmt.Sprintf("Duplicate rows: %d\n", s.Duplicates))
	b.WriteString(fmt.Sprintf("Quality score: %d/100\n\n", s.QualityScore))

	b.WriteString("[SCHEMA]\n")
	for _, c := range p.Columns {
		b.WriteString(fmt.Sprintf("- %s: %s (missing %d, %d%%; unique %d)", safeName(c.Name), c.Type, c.MissingCount, c.MissingPercent, c.UniqueCount))
		if len(c.SampleValues) > 0 {
			vals := make([]string, len(c.SampleValues))
			for i, v := range c.SampleValues {
				vals[i] = safeVal(v)
			}
			b.WriteString(" e.g., " + strings.Join(vals, " | "))
		}
		if c.Issues != "" {
			b.WriteString(" ⚠ " + c.Issues)
		}
		b.WriteString("\n")
	}

	if len(p.DuplicateGroups) > 0 {
		b.WriteString("\n[DUPLICATES]\n")
		for _, g := range p.DuplicateGroups {
			rows := make([]string, len(g.Indices))
			for i, idx := range g.Indices {
				rows[i] = fmt.Sprint(idx)
			}
			b.WriteString(fmt.Sprintf("- %d× %s, severity %s: rows %s\n", g.Count, g.DuplicateType, g.Severity, strings.Join(rows, ", ")))
		}
	}

	if len(p.Correlations) > 0 {
		b.WriteString("\n[CORRELATIONS]\n")
		type pr struct {
			key string
			r   float64
		}
		pairs := make([]pr, 0, len(p.Correlations))
		for k, r := range p.Correlations {
			pairs = append(pairs, pr{k, r})
		}
		sort.Slice(pairs, func(i, j int) bool {
			ai, aj := math.Abs(pairs[i].r), math.Abs(pairs[j].r)
			if ai == aj {
				return pairs[i].key < pairs[j].key
			}
			return ai > aj
		})
		if len(pairs) > 10 {
			pairs = pairs[:10]
		}
		for _, x := range pairs {
			b.WriteString(fmt.Sprintf("- %s: r=%.2f\n", x.key, x.r))
		}
	}

	if len(p.Outliers) > 0 {
		b.WriteString("\n[OUTLIERS]\n")
		names := make([]string, 0, len(p.Outliers))
		for k := range p.Outliers {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, n := range names {
			o := p.Outliers[n]
			b.WriteString(fmt.Sprintf("- %s: %d flagged (IQR %d, z>%.0f %d); bounds [%.4g, %.4g]\n",
				n, len(o.Combined), len(o.IQR.Indices), o.ZScore.Threshold, len(o.ZScore.Indices), o.IQR.Bounds.Lower, o.IQR.Bounds.Upper))
		}
	}

	if p.BiasWarning != nil {
		b.WriteString("\n[BIAS WARNING]\n")
		b.WriteString(p.BiasWarning.Explanation + "\n")
		for _, sol := range p.BiasWarning.Solutions {
			b.WriteString("- " + sol + "\n")
		}
	}

	if len(p.InvalidData) > 0 {
		b.WriteString("\n[INVALID VALUES]\n")
		lim := min(len(p.InvalidData), 20)
		for _, iv := range p.InvalidData[:lim] {
			b.WriteString(fmt.Sprintf("- row %d, %s = %s: %s\n", iv.Row, safeName(iv.Column), safeVal(iv.Value), iv.Reason))
		}
		if len(p.InvalidData) > lim {
			b.WriteString(fmt.Sprintf("- ... and %d more\n", len(p.InvalidData)-lim))
		}
	}

	if len(p.Issues) > 0 || p.ProcessingInfo != nil {
		b.WriteString("\n[NOTES]\n")
		for _, is := range p.Issues {
			b.WriteString(fmt.Sprintf("- %s: %s\n", is.Type, is.Description))
		}
		if pi := p.ProcessingInfo; pi != nil {
			b.WriteString(fmt.Sprintf("- processed %d rows in chunks of %d\n", pi.TotalRows, pi.ChunkSize))
		}
	}
	return b.String()
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
