package cleaning

import (
	"fmt"

	"github.com/KaramelBytes/datacleaner-cli/internal/analysis"
	"github.com/KaramelBytes/datacleaner-cli/internal/dataset"
)

// numericColumns returns the columns whose non-missing values all parse as
// numbers, skipping columns without values.
func numericColumns(d *dataset.Dataset) []string {
	var out []string
	for _, c := range d.Columns {
		n := 0
		numeric := true
		for _, r := range d.Records {
			v := r[c]
			if dataset.IsMissing(v) {
				continue
			}
			n++
			if !dataset.IsNumeric(v) {
				numeric = false
				break
			}
		}
		if numeric && n > 0 {
			out = append(out, c)
		}
	}
	return out
}

func (p *pipeline) handleOutliers() error {
	action := p.opts.HandleOutliers
	if action == "" || action == OutliersNone {
		return nil
	}
	method := p.opts.outlierMethod()
	for _, c := range numericColumns(p.data) {
		if err := p.ctx.Err(); err != nil {
			return err
		}
		res, err := analysis.DetectOutliers(p.data, c)
		if err != nil {
			return err
		}
		indices := res.IQR.Indices
		bounds := res.IQR.Bounds
		if method == MethodZScore {
			indices = res.ZScore.Indices
			bounds = analysis.ZBounds(res.ZScore.Statistics.Mean, res.ZScore.Statistics.StdDev)
		}
		if len(indices) == 0 {
			continue
		}
		flagged := make(map[int]bool, len(indices))
		for _, i := range indices {
			flagged[i] = true
		}

		switch action {
		case OutliersRemove:
			removed, err := p.filter("outliers", func(i int, _ dataset.Record) bool { return !flagged[i] })
			if err != nil {
				return err
			}
			p.log.RowsRemoved += removed
			p.log.add(fmt.Sprintf("Removed %d outliers from '%s'", len(indices), c))
		case OutliersCap:
			lo, hi := dataset.FormatNumber(bounds.Lower), dataset.FormatNumber(bounds.Upper)
			for _, r := range p.data.Records {
				x, ok := dataset.ParseNumber(r[c])
				if !ok {
					continue
				}
				if x < bounds.Lower {
					r[c] = lo
				} else if x > bounds.Upper {
					r[c] = hi
				}
			}
			p.log.add(fmt.Sprintf("Capped %d outliers in '%s'", len(indices), c))
		case OutliersMark:
			flag := c + "_outlier_flag"
			for i, r := range p.data.Records {
				if flagged[i] {
					r[flag] = "1"
				} else {
					r[flag] = "0"
				}
			}
			p.addColumn(flag)
			p.log.add(fmt.Sprintf("Added outlier flag column for '%s'", c))
		}
	}
	return nil
}
