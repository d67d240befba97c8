package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/KaramelBytes/datacleaner-cli/internal/dataset"
)

// maxDistribution caps the distribution entries reported per column.
const maxDistribution = 10

// ValueCount is one category of a distribution.
type ValueCount struct {
	Value      string `json:"value"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// FairnessMetrics quantifies how unevenly a column's categories are
// represented. GiniCoefficient is a normalized pairwise mean absolute
// difference of the category percentages, not the textbook Gini.
type FairnessMetrics struct {
	GiniCoefficient   float64 `json:"giniCoefficient"`
	DemographicParity float64 `json:"demographicParity"`
	EqualShare        float64 `json:"equalShare"`
	ImbalanceRatio    float64 `json:"imbalanceRatio"`
}

type BiasAnalysis struct {
	BiasScore       float64         `json:"biasScore"`
	Distribution    []ValueCount    `json:"distribution"`
	TotalValues     int             `json:"totalValues"`
	UniqueValues    int             `json:"uniqueValues"`
	FairnessMetrics FairnessMetrics `json:"fairnessMetrics"`
}

// BiasResult is the outcome of DetectBias for one column.
type BiasResult struct {
	Column          string       `json:"column"`
	Analysis        BiasAnalysis `json:"analysis"`
	Recommendations []string     `json:"recommendations"`
}

// DetectBias measures the category imbalance of column.
func DetectBias(d *dataset.Dataset, column string) (*BiasResult, error) {
	if !d.HasColumn(column) {
		return nil, fmt.Errorf("detect bias %q: %w", column, ErrUnknownColumn)
	}
	dist, total := Distribution(d.Values(column))
	if total == 0 {
		return nil, fmt.Errorf("detect bias %q: %w", column, ErrNoValues)
	}
	metrics := CalculateFairnessMetrics(dist, total)
	score := float64(dist[0].Percentage) / 100
	for _, vc := range dist {
		if s := float64(vc.Percentage) / 100; s > score {
			score = s
		}
	}
	top := dist
	if len(top) > maxDistribution {
		top = top[:maxDistribution]
	}
	return &BiasResult{
		Column: column,
		Analysis: BiasAnalysis{
			BiasScore:       score,
			Distribution:    top,
			TotalValues:     total,
			UniqueValues:    len(dist),
			FairnessMetrics: metrics,
		},
		Recommendations: BiasRecommendations(score, metrics, dist),
	}, nil
}

// Distribution counts the non-missing values, most frequent first. Ties keep
// first-seen order. Percentages are rounded to whole numbers.
func Distribution(values []string) ([]ValueCount, int) {
	idx := make(map[string]int)
	var dist []ValueCount
	total := 0
	for _, v := range values {
		if dataset.IsMissing(v) {
			continue
		}
		total++
		if i, ok := idx[v]; ok {
			dist[i].Count++
			continue
		}
		idx[v] = len(dist)
		dist = append(dist, ValueCount{Value: v, Count: 1})
	}
	for i := range dist {
		dist[i].Percentage = int(math.Round(float64(dist[i].Count) / float64(total) * 100))
	}
	sort.SliceStable(dist, func(i, j int) bool { return dist[i].Count > dist[j].Count })
	return dist, total
}

// CalculateFairnessMetrics derives the fairness metrics of a full (untruncated)
// distribution over total values.
func CalculateFairnessMetrics(dist []ValueCount, total int) FairnessMetrics {
	k := len(dist)
	if k == 0 || total == 0 {
		return FairnessMetrics{}
	}
	fk := float64(k)
	equal := 100 / fk

	var pairwise float64
	for _, a := range dist {
		for _, b := range dist {
			pairwise += math.Abs(float64(a.Percentage - b.Percentage))
		}
	}
	gini := pairwise / (2 * fk * fk * (float64(total) / fk))

	var dev float64
	maxPct, minPct := dist[0].Percentage, dist[0].Percentage
	maxCount, minCount := dist[0].Count, dist[0].Count
	for _, vc := range dist {
		dev += math.Abs(float64(vc.Percentage) - equal)
		maxPct = max(maxPct, vc.Percentage)
		minPct = min(minPct, vc.Percentage)
		maxCount = max(maxCount, vc.Count)
		minCount = min(minCount, vc.Count)
	}

	// A category can round down to 0%; fall back to raw counts.
	var ratio float64
	if minPct > 0 {
		ratio = float64(maxPct) / float64(minPct)
	} else {
		ratio = float64(maxCount) / float64(minCount)
	}

	return FairnessMetrics{
		GiniCoefficient:   dataset.Round2(gini),
		DemographicParity: dataset.Round2(dev / fk),
		EqualShare:        dataset.Round2(equal),
		ImbalanceRatio:    dataset.Round2(ratio),
	}
}

// BiasRecommendations turns a bias score and metrics into remediation advice.
// dist must be sorted by count, largest first.
func BiasRecommendations(score float64, m FairnessMetrics, dist []ValueCount) []string {
	var recs []string
	switch {
	case score > 0.7 || m.GiniCoefficient > 0.5:
		recs = append(recs,
			"High bias detected - Implement stratified sampling to balance groups",
			"Apply SMOTE (Synthetic Minority Oversampling) for underrepresented categories",
			"Use fairness-aware machine learning algorithms",
			"Consider collecting more data for minority groups",
		)
	case score > 0.4 || m.DemographicParity > 20:
		recs = append(recs,
			"Moderate bias detected - Monitor model performance across groups",
			"Implement bias detection in model evaluation pipeline",
			"Consider weighted sampling during model training",
		)
	default:
		recs = append(recs,
			"Distribution appears relatively balanced",
			"Continue monitoring for bias in model predictions",
		)
	}
	if m.ImbalanceRatio > 3 && len(dist) > 0 {
		hi, lo := dist[0], dist[len(dist)-1]
		recs = append(recs,
			fmt.Sprintf("Consider increasing \"%s\" representation by %d samples", lo.Value, hi.Count-lo.Count),
			fmt.Sprintf("Apply class weights: majority group (%s) weight: 0.5, minority group (%s) weight: 2.0", hi.Value, lo.Value),
		)
	}
	return recs
}

// DetectedBias is a column flagged by AnalyzeDatasetBias.
type DetectedBias struct {
	Column    string  `json:"column"`
	BiasScore float64 `json:"biasScore"`
	Level     string  `json:"level"`
}

// DatasetBiasReport aggregates DetectBias over every eligible column.
type DatasetBiasReport struct {
	Results          []*BiasResult  `json:"results"`
	DetectedBiases   []DetectedBias `json:"detectedBiases"`
	OverallBiasScore float64        `json:"overallBiasScore"`
	Recommendations  []string       `json:"recommendations"`
}

const (
	BiasLevelHigh     = "High"
	BiasLevelModerate = "Moderate"
)

// AnalyzeDatasetBias runs DetectBias on every text column with 2 to 20
// distinct values and reports the ones scoring above 0.3.
func AnalyzeDatasetBias(d *dataset.Dataset, p *DatasetProfile) (*DatasetBiasReport, error) {
	if d.Empty() {
		return nil, ErrEmptyDataset
	}
	if p == nil {
		var err error
		if p, err = GenerateDataProfile(d); err != nil {
			return nil, err
		}
	}
	rep := &DatasetBiasReport{
		Results:         []*BiasResult{},
		DetectedBiases:  []DetectedBias{},
		Recommendations: []string{},
	}
	seenRec := make(map[string]struct{})
	var sum float64
	for _, c := range categoricalColumns(p.Columns) {
		res, err := DetectBias(d, c.Name)
		if err != nil {
			continue
		}
		rep.Results = append(rep.Results, res)
		score := res.Analysis.BiasScore
		if score <= 0.3 {
			continue
		}
		level := BiasLevelModerate
		if score > 0.7 {
			level = BiasLevelHigh
		}
		rep.DetectedBiases = append(rep.DetectedBiases, DetectedBias{Column: c.Name, BiasScore: score, Level: level})
		sum += score
		for _, r := range res.Recommendations {
			if _, ok := seenRec[r]; ok {
				continue
			}
			seenRec[r] = struct{}{}
			rep.Recommendations = append(rep.Recommendations, r)
		}
	}
	if n := len(rep.DetectedBiases); n > 0 {
		rep.OverallBiasScore = sum / float64(n)
	}
	return rep, nil
}

// categoricalColumns returns text columns with 2 to 20 distinct values.
func categoricalColumns(cols []ColumnProfile) []ColumnProfile {
	var out []ColumnProfile
	for _, c := range cols {
		if c.Type == TypeText && c.UniqueCount >= 2 && c.UniqueCount <= 20 {
			out = append(out, c)
		}
	}
	return out
}
