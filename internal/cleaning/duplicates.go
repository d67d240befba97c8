package cleaning

import (
	"fmt"

	"github.com/KaramelBytes/datacleaner-cli/internal/dataset"
)

func (p *pipeline) handleDuplicates() error {
	mode := p.opts.HandleDuplicates
	if mode == "" || mode == DuplicatesKeep {
		return nil
	}
	cols := p.data.Columns
	n := p.data.Len()
	seen := make(map[string]struct{}, n)
	var keep []bool
	if mode == DuplicatesKeepLast {
		// Walk from the end so the last occurrence claims the key.
		keep = make([]bool, n)
		for i := n - 1; i >= 0; i-- {
			k := p.data.Records[i].Key(cols)
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				keep[i] = true
			}
		}
	}
	removed, err := p.filter("duplicates", func(i int, r dataset.Record) bool {
		if keep != nil {
			return keep[i]
		}
		k := r.Key(cols)
		if _, ok := seen[k]; ok {
			return false
		}
		seen[k] = struct{}{}
		return true
	})
	if err != nil {
		return err
	}
	p.log.RowsRemoved += removed
	p.log.add(fmt.Sprintf("Handled duplicates: %s (%d rows affected)", mode, removed))
	return nil
}
