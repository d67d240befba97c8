package cleaning

import (
	"context"
	"fmt"

	"github.com/KaramelBytes/datacleaner-cli/internal/batch"
	"github.com/KaramelBytes/datacleaner-cli/internal/dataset"
)

// ProgressFunc receives chunk progress for the named step.
type ProgressFunc func(step string, p batch.Progress)

// Process cleans a copy of d. Steps run in a fixed order: duplicates, text
// normalization, missing values, format standardization, outliers,
// categorical encoding, schema enforcement. d is never modified.
func Process(d *dataset.Dataset, opts Options) (*Result, error) {
	return run(context.Background(), d, opts, d.Len(), nil)
}

// ProcessChunked is Process with row-wise work split into chunks of
// chunkSize rows (adaptive when <= 0). It reports progress per chunk and
// stops when ctx is done. The output equals Process's.
func ProcessChunked(ctx context.Context, d *dataset.Dataset, opts Options, chunkSize int, progress ProgressFunc) (*Result, error) {
	if chunkSize <= 0 {
		chunkSize = batch.ChunkSize(d.Len())
	}
	return run(ctx, d, opts, chunkSize, progress)
}

type pipeline struct {
	ctx      context.Context
	opts     Options
	size     int
	progress ProgressFunc
	data     *dataset.Dataset
	log      *Log
	// added holds the columns created during this run.
	added map[string]bool
}

func run(ctx context.Context, d *dataset.Dataset, opts Options, size int, progress ProgressFunc) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if d == nil {
		d = dataset.New(nil, nil)
	}
	p := &pipeline{
		ctx:      ctx,
		opts:     opts,
		size:     max(1, size),
		progress: progress,
		data:     d.Clone(),
		log:      NewLog(d.Len()),
		added:    make(map[string]bool),
	}
	steps := []struct {
		name string
		fn   func() error
	}{
		{"duplicates", p.handleDuplicates},
		{"text", p.normalizeText},
		{"missing", p.handleMissing},
		{"formats", p.standardizeFormats},
		{"outliers", p.handleOutliers},
		{"encoding", p.encodeCategories},
		{"schema", p.enforceSchema},
	}
	for _, s := range steps {
		if err := p.ctx.Err(); err != nil {
			return nil, fmt.Errorf("cleaning %s: %w", s.name, err)
		}
		if err := s.fn(); err != nil {
			return nil, fmt.Errorf("cleaning %s: %w", s.name, err)
		}
	}
	p.log.FinalRows = p.data.Len()
	return &Result{Data: p.data, Log: p.log}, nil
}

// chunks walks the current rows chunk by chunk.
func (p *pipeline) chunks(step string, fn func(w batch.Window) error) error {
	var report batch.ProgressFunc
	if p.progress != nil {
		report = func(pr batch.Progress) { p.progress(step, pr) }
	}
	return batch.Each(p.ctx, p.data.Len(), p.size, fn, report)
}

// eachRecord applies fn to every record in place, chunk by chunk.
func (p *pipeline) eachRecord(step string, fn func(r dataset.Record)) error {
	return p.chunks(step, func(w batch.Window) error {
		for _, r := range p.data.Records[w.Start:w.End] {
			fn(r)
		}
		return nil
	})
}

// filter keeps the records for which keep returns true, chunk by chunk and
// in row order. It returns the number of records dropped.
func (p *pipeline) filter(step string, keep func(i int, r dataset.Record) bool) (int, error) {
	before := p.data.Len()
	out := make([]dataset.Record, 0, before)
	err := p.chunks(step, func(w batch.Window) error {
		for i := w.Start; i < w.End; i++ {
			if r := p.data.Records[i]; keep(i, r) {
				out = append(out, r)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	p.data.Records = out
	return before - len(out), nil
}

func (p *pipeline) addColumn(name string) {
	p.added[name] = true
	if p.data.HasColumn(name) {
		return
	}
	p.data.Columns = append(p.data.Columns, name)
	p.log.ColumnsAdded++
}
