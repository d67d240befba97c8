package analysis

import (
	"fmt"
	"math"

	"github.com/KaramelBytes/datacleaner-cli/internal/dataset"
)

// maxSampleValues bounds ColumnProfile.SampleValues.
const maxSampleValues = 5

// ColumnProfile describes a single column.
type ColumnProfile struct {
	Name           string   `json:"name"`
	Type           DataType `json:"type"`
	MissingCount   int      `json:"missingCount"`
	MissingPercent int      `json:"missingPercent"`
	UniqueCount    int      `json:"uniqueCount"`
	SampleValues   []string `json:"sampleValues"`
	// Issues is a comma-joined list, empty when none were found.
	Issues string `json:"issues,omitempty"`
}

type Summary struct {
	TotalRows     int `json:"totalRows"`
	TotalColumns  int `json:"totalColumns"`
	MissingValues int `json:"missingValues"`
	// Duplicates counts rows that have at least one identical partner.
	Duplicates   int `json:"duplicates"`
	QualityScore int `json:"qualityScore"`
}

// Issue is a dataset-level finding.
type Issue struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// ProcessingInfo records how an enhanced profile was computed.
type ProcessingInfo struct {
	ChunkSize         int  `json:"chunkSize"`
	TotalRows         int  `json:"totalRows"`
	ProcessedInChunks bool `json:"processedInChunks"`
}

// DatasetProfile is the quality profile of a dataset. The fields after
// Issues are optional extras filled by the profile variants.
type DatasetProfile struct {
	Name    string          `json:"name,omitempty"`
	Summary Summary         `json:"summary"`
	Columns []ColumnProfile `json:"columns"`
	Issues  []Issue         `json:"issues"`

	DuplicateGroups []DuplicateGroup          `json:"duplicateGroups,omitempty"`
	BiasWarning     *BiasWarning              `json:"biasWarning,omitempty"`
	InvalidData     []InvalidValue            `json:"invalidData,omitempty"`
	Correlations    map[string]float64        `json:"correlations,omitempty"`
	Outliers        map[string]*OutlierResult `json:"outliers,omitempty"`
	ProcessingInfo  *ProcessingInfo           `json:"processingInfo,omitempty"`
}

// Column returns the profile of the named column.
func (p *DatasetProfile) Column(name string) (ColumnProfile, bool) {
	for _, c := range p.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnProfile{}, false
}

// ColumnsOfType returns the profiles of the columns with type t, in order.
func (p *DatasetProfile) ColumnsOfType(t DataType) []ColumnProfile {
	var out []ColumnProfile
	for _, c := range p.Columns {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

// GenerateDataProfile profiles every column of d and scores its quality.
func GenerateDataProfile(d *dataset.Dataset) (*DatasetProfile, error) {
	if d.Empty() || len(d.Columns) == 0 {
		return nil, ErrEmptyDataset
	}
	p := newProfiler(d.Columns)
	p.add(d.Records)
	return p.finish(d), nil
}

type columnAcc struct {
	missing int
	unique  map[string]struct{}
	samples []string
	types   typeCounter
	issues  issueAcc
}

// profiler accumulates a profile over consecutive record slices.
type profiler struct {
	columns []string
	cols    []*columnAcc
	dups    *dupAcc
	rows    int
}

func newProfiler(columns []string) *profiler {
	p := &profiler{columns: columns, dups: newDupAcc(columns)}
	p.cols = make([]*columnAcc, len(columns))
	for i := range columns {
		p.cols[i] = &columnAcc{unique: make(map[string]struct{}), samples: []string{}}
	}
	return p
}

func (p *profiler) add(records []dataset.Record) {
	for _, r := range records {
		p.dups.add(p.rows, r)
		p.rows++
		for i, name := range p.columns {
			c := p.cols[i]
			v := r[name]
			c.types.add(v)
			c.issues.add(v)
			if dataset.IsMissing(v) {
				c.missing++
				continue
			}
			if _, ok := c.unique[v]; ok {
				continue
			}
			c.unique[v] = struct{}{}
			if len(c.samples) < maxSampleValues {
				c.samples = append(c.samples, v)
			}
		}
	}
}

func (p *profiler) finish(d *dataset.Dataset) *DatasetProfile {
	prof := &DatasetProfile{
		Columns: make([]ColumnProfile, 0, len(p.columns)),
		Issues:  []Issue{},
	}
	missingTotal, missingCols := 0, 0
	for i, name := range p.columns {
		c := p.cols[i]
		missingTotal += c.missing
		if c.missing > 0 {
			missingCols++
		}
		prof.Columns = append(prof.Columns, ColumnProfile{
			Name:           name,
			Type:           c.types.kind(),
			MissingCount:   c.missing,
			MissingPercent: int(math.Round(float64(c.missing) / float64(p.rows) * 100)),
			UniqueCount:    len(c.unique),
			SampleValues:   c.samples,
			Issues:         c.issues.String(),
		})
	}

	prof.Summary = Summary{
		TotalRows:     p.rows,
		TotalColumns:  len(p.columns),
		MissingValues: missingTotal,
		Duplicates:    len(p.dups.flat),
	}
	prof.Summary.QualityScore = CalculateQualityScore(prof.Summary, prof.Columns)

	if n := prof.Summary.Duplicates; n > 0 {
		prof.Issues = append(prof.Issues, Issue{
			Type:        "Duplicate Rows",
			Description: fmt.Sprintf("Found %d duplicate rows that may affect analysis", n),
		})
	}
	if missingTotal > 0 {
		prof.Issues = append(prof.Issues, Issue{
			Type:        "Missing Values",
			Description: fmt.Sprintf("%d missing values detected across %d columns", missingTotal, missingCols),
		})
	}

	prof.DuplicateGroups = p.dups.groups(p.rows)
	prof.BiasWarning = DetectDatasetBias(d, prof.Columns)
	prof.InvalidData = DetectInvalidData(d)
	return prof
}
