package cleaning

import (
	"fmt"
	"sort"

	"github.com/KaramelBytes/datacleaner-cli/internal/dataset"
)

func (p *pipeline) handleMissing() error {
	switch p.opts.HandleMissing {
	case "", MissingKeep:
		return nil
	case MissingDrop:
		return p.dropMissing()
	default:
		return p.imputeMissing()
	}
}

func (p *pipeline) dropMissing() error {
	cols := p.data.Columns
	removed, err := p.filter("missing", func(_ int, r dataset.Record) bool {
		for _, c := range cols {
			if dataset.IsMissing(r[c]) {
				return false
			}
		}
		return true
	})
	if err != nil {
		return err
	}
	p.log.RowsRemoved += removed
	p.log.add(fmt.Sprintf("Dropped %d rows with missing values", removed))
	return nil
}

func (p *pipeline) imputeMissing() error {
	strategy := p.opts.HandleMissing
	cols := p.data.Columns

	fills := make(map[string]string, len(cols))
	for _, c := range cols {
		if v, ok := FillValue(strategy, dataset.NonMissing(p.data.Values(c)), p.opts.CustomFillValue); ok {
			fills[c] = v
		}
	}

	counts := make(map[string]int, len(fills))
	err := p.eachRecord("missing", func(r dataset.Record) {
		for c, fill := range fills {
			if dataset.IsMissing(r[c]) {
				r[c] = fill
				counts[c]++
			}
		}
	})
	if err != nil {
		return err
	}
	for _, c := range cols {
		if n := counts[c]; n > 0 {
			p.log.ValuesImputed += n
			p.log.add(fmt.Sprintf("Imputed %d values in '%s' with %s", n, c, strategy))
		}
	}
	return nil
}

// FillValue computes the replacement for missing cells of a column from its
// non-missing values. ok is false when the strategy yields nothing usable:
// no numeric values for mean or median, no values for mode, or an empty
// custom value.
func FillValue(strategy MissingStrategy, values []string, custom string) (string, bool) {
	switch strategy {
	case MissingMean, MissingMedian:
		nums := make([]float64, 0, len(values))
		for _, v := range values {
			if x, ok := dataset.ParseNumber(v); ok {
				nums = append(nums, x)
			}
		}
		if len(nums) == 0 {
			return "", false
		}
		if strategy == MissingMedian {
			sort.Float64s(nums)
			return dataset.FormatNumber(nums[len(nums)/2]), true
		}
		var sum float64
		for _, x := range nums {
			sum += x
		}
		return dataset.FormatNumber(sum / float64(len(nums))), true
	case MissingMode:
		if len(values) == 0 {
			return "", false
		}
		counts := make(map[string]int, len(values))
		var order []string
		for _, v := range values {
			if counts[v] == 0 {
				order = append(order, v)
			}
			counts[v]++
		}
		best := order[0]
		for _, v := range order[1:] {
			if counts[v] > counts[best] {
				best = v
			}
		}
		return best, true
	case MissingCustom:
		return custom, custom != ""
	}
	return "", false
}
