package cleaning

import (
	"fmt"
	"strconv"

	"github.com/KaramelBytes/datacleaner-cli/internal/dataset"
)

// categoricalColumns returns columns with more than one distinct value and
// fewer distinct values than half their non-missing values.
func (p *pipeline) categoricalColumns() []string {
	var out []string
	for _, c := range p.data.Columns {
		if p.added[c] {
			continue
		}
		vals := dataset.NonMissing(p.data.Values(c))
		uniq := len(distinct(vals))
		if uniq > 1 && float64(uniq) < float64(len(vals))*0.5 {
			out = append(out, c)
		}
	}
	return out
}

// distinct returns the distinct values in first-seen order.
func distinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func (p *pipeline) encodeCategories() error {
	if !p.opts.EncodeCategories {
		return nil
	}
	method := p.opts.encodingMethod()
	for _, c := range p.categoricalColumns() {
		values := distinct(dataset.NonMissing(p.data.Values(c)))
		switch method {
		case EncodingLabel:
			codes := make(map[string]string, len(values))
			for i, v := range values {
				codes[v] = strconv.Itoa(i)
			}
			for _, r := range p.data.Records {
				if code, ok := codes[r[c]]; ok {
					r[c] = code
				}
			}
		case EncodingOneHot:
			for _, v := range values {
				col := c + "_" + v
				if p.data.HasColumn(col) && !p.added[col] {
					// an input column already has this name
					continue
				}
				for _, r := range p.data.Records {
					if r[c] == v {
						r[col] = "1"
					} else {
						r[col] = "0"
					}
				}
				p.addColumn(col)
			}
		}
	}
	p.log.add(fmt.Sprintf("Applied %s encoding", method))
	return nil
}
