package cleaning

import "github.com/KaramelBytes/datacleaner-cli/internal/dataset"

func (p *pipeline) enforceSchema() error {
	if !p.opts.EnforceSchema {
		return nil
	}
	cols := p.data.Columns
	err := p.eachRecord("schema", func(r dataset.Record) {
		for _, c := range cols {
			switch v := r[c]; v {
			case "null", "undefined":
				r[c] = ""
			default:
				r[c] = dataset.Canonical(v)
			}
		}
	})
	if err != nil {
		return err
	}
	p.log.add("Enforced schema consistency")
	return nil
}
