package analysis

import (
	"context"

	"github.com/KaramelBytes/datacleaner-cli/internal/batch"
	"github.com/KaramelBytes/datacleaner-cli/internal/dataset"
)

// GenerateEnhancedDataProfile builds the basic profile chunk by chunk and
// adds correlations between numeric columns plus per-column outliers.
// chunkSize <= 0 picks the adaptive size.
func GenerateEnhancedDataProfile(ctx context.Context, d *dataset.Dataset, chunkSize int, progress batch.ProgressFunc) (*DatasetProfile, error) {
	if d.Empty() || len(d.Columns) == 0 {
		return nil, ErrEmptyDataset
	}
	n := d.Len()
	if chunkSize <= 0 {
		chunkSize = batch.ChunkSize(n)
	}

	p := newProfiler(d.Columns)
	corr := newCorrAcc(d.Columns)
	err := batch.Each(ctx, n, chunkSize, func(w batch.Window) error {
		recs := d.Records[w.Start:w.End]
		p.add(recs)
		corr.add(recs)
		return nil
	}, progress)
	if err != nil {
		return nil, err
	}
	prof := p.finish(d)

	numeric := prof.ColumnsOfType(TypeNumber)
	keep := make(map[string]bool, len(numeric))
	for _, c := range numeric {
		keep[c.Name] = true
	}
	prof.Correlations = make(map[string]float64)
	all := corr.result()
	for i, a := range d.Columns {
		for _, b := range d.Columns[i+1:] {
			if !keep[a] || !keep[b] {
				continue
			}
			if r, ok := all[a+"_"+b]; ok {
				prof.Correlations[a+"_"+b] = r
			}
		}
	}

	prof.Outliers = make(map[string]*OutlierResult, len(numeric))
	for _, c := range numeric {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := DetectOutliers(d, c.Name)
		if err != nil {
			return nil, err
		}
		prof.Outliers[c.Name] = res
	}

	prof.ProcessingInfo = &ProcessingInfo{
		ChunkSize:         chunkSize,
		TotalRows:         n,
		ProcessedInChunks: n > chunkSize,
	}
	return prof, nil
}
