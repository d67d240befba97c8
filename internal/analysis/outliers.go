package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/KaramelBytes/datacleaner-cli/internal/dataset"
)

// ZThreshold is the fixed |z| above which a value counts as an outlier.
const ZThreshold = 3.0

// Bounds is a closed interval of accepted values.
type Bounds struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// IQRResult lists values outside Q1-1.5*IQR .. Q3+1.5*IQR.
type IQRResult struct {
	Outliers []float64 `json:"outliers"`
	Indices  []int     `json:"indices"`
	Bounds   Bounds    `json:"bounds"`
}

// ZStatistics holds the moments used for z-scores.
type ZStatistics struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev"`
}

// ZScoreResult lists values whose z-score exceeds the threshold.
type ZScoreResult struct {
	Outliers   []float64   `json:"outliers"`
	Indices    []int       `json:"indices"`
	Threshold  float64     `json:"threshold"`
	Statistics ZStatistics `json:"statistics"`
}

// ColumnStats summarizes the numeric values of a column.
type ColumnStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Q1     float64 `json:"q1"`
	Q3     float64 `json:"q3"`
}

// OutlierResult is the outcome of DetectOutliers for one column. Indices are
// 0-based row positions in the analyzed dataset.
type OutlierResult struct {
	Column     string       `json:"column"`
	Method     string       `json:"method"`
	IQR        IQRResult    `json:"iqr"`
	ZScore     ZScoreResult `json:"zscore"`
	Combined   []int        `json:"combined"`
	Statistics ColumnStats  `json:"statistics"`
}

const (
	MethodCombined = "combined"
	MethodNone     = "none"
)

type indexedValue struct {
	idx int
	v   float64
}

// DetectOutliers flags numeric values of column using both the IQR fence and
// the z-score rule. A column without numeric values yields an empty result
// with Method "none".
func DetectOutliers(d *dataset.Dataset, column string) (*OutlierResult, error) {
	if !d.HasColumn(column) {
		return nil, fmt.Errorf("detect outliers %q: %w", column, ErrUnknownColumn)
	}
	var vals []indexedValue
	for i, r := range d.Records {
		if x, ok := dataset.ParseNumber(r[column]); ok {
			vals = append(vals, indexedValue{idx: i, v: x})
		}
	}
	res := &OutlierResult{
		Column:   column,
		Method:   MethodNone,
		IQR:      IQRResult{Outliers: []float64{}, Indices: []int{}},
		ZScore:   ZScoreResult{Outliers: []float64{}, Indices: []int{}, Threshold: ZThreshold},
		Combined: []int{},
	}
	if len(vals) == 0 {
		return res, nil
	}
	res.Method = MethodCombined

	sorted := make([]float64, len(vals))
	for i, iv := range vals {
		sorted[i] = iv.v
	}
	sort.Float64s(sorted)

	q1 := Percentile(sorted, 25)
	q3 := Percentile(sorted, 75)
	res.IQR.Bounds = IQRBounds(q1, q3)

	mean, std := meanStd(sorted)
	res.ZScore.Statistics = ZStatistics{Mean: mean, StdDev: std}

	for _, iv := range vals {
		if iv.v < res.IQR.Bounds.Lower || iv.v > res.IQR.Bounds.Upper {
			res.IQR.Outliers = append(res.IQR.Outliers, iv.v)
			res.IQR.Indices = append(res.IQR.Indices, iv.idx)
		}
	}
	if std > 0 {
		for _, iv := range vals {
			if math.Abs(iv.v-mean)/std > ZThreshold {
				res.ZScore.Outliers = append(res.ZScore.Outliers, iv.v)
				res.ZScore.Indices = append(res.ZScore.Indices, iv.idx)
			}
		}
	}

	seen := make(map[int]struct{}, len(res.IQR.Indices))
	for _, set := range [][]int{res.IQR.Indices, res.ZScore.Indices} {
		for _, i := range set {
			if _, ok := seen[i]; ok {
				continue
			}
			seen[i] = struct{}{}
			res.Combined = append(res.Combined, i)
		}
	}

	res.Statistics = ColumnStats{
		Count:  len(sorted),
		Mean:   dataset.Round2(mean),
		Median: dataset.Round2(Percentile(sorted, 50)),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Q1:     q1,
		Q3:     q3,
	}
	return res, nil
}

// IQRBounds returns the 1.5*IQR fences around the quartiles.
func IQRBounds(q1, q3 float64) Bounds {
	iqr := q3 - q1
	return Bounds{Lower: q1 - 1.5*iqr, Upper: q3 + 1.5*iqr}
}

// ZBounds returns mean ± ZThreshold standard deviations.
func ZBounds(mean, std float64) Bounds {
	return Bounds{Lower: mean - ZThreshold*std, Upper: mean + ZThreshold*std}
}

// Percentile interpolates linearly between the closest ranks of sorted.
// p is in [0,100].
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	pos := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// meanStd returns the mean and population standard deviation (Welford).
func meanStd(vals []float64) (mean, std float64) {
	var n int
	var m2 float64
	for _, x := range vals {
		n++
		delta := x - mean
		mean += delta / float64(n)
		m2 += delta * (x - mean)
	}
	if n == 0 {
		return 0, 0
	}
	return mean, math.Sqrt(m2 / float64(n))
}
