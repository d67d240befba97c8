package analysis

import (
	"math"

	"github.com/KaramelBytes/datacleaner-cli/internal/dataset"
)

// pairAcc accumulates the sums for an exact Pearson correlation over the rows
// where both columns are numeric.
type pairAcc struct {
	n     float64
	sumX  float64
	sumY  float64
	sumXX float64
	sumYY float64
	sumXY float64
}

func (pa *pairAcc) add(x, y float64) {
	pa.n++
	pa.sumX += x
	pa.sumY += y
	pa.sumXX += x * x
	pa.sumYY += y * y
	pa.sumXY += x * y
}

func (pa *pairAcc) r() (float64, bool) {
	if pa == nil || pa.n < 2 {
		return 0, false
	}
	denom := math.Sqrt((pa.n*pa.sumXX - pa.sumX*pa.sumX) * (pa.n*pa.sumYY - pa.sumY*pa.sumY))
	var r float64
	if denom != 0 {
		r = (pa.n*pa.sumXY - pa.sumX*pa.sumY) / denom
	}
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	if math.IsNaN(r) || math.IsInf(r, 0) {
		r = 0
	}
	return r, true
}

type corrAcc struct {
	columns []string
	pairs   map[[2]int]*pairAcc
}

func newCorrAcc(columns []string) *corrAcc {
	return &corrAcc{columns: columns, pairs: make(map[[2]int]*pairAcc)}
}

func (ca *corrAcc) add(records []dataset.Record) {
	xs := make([]float64, len(ca.columns))
	ok := make([]bool, len(ca.columns))
	for _, r := range records {
		for i, c := range ca.columns {
			xs[i], ok[i] = dataset.ParseNumber(r[c])
		}
		for i := range ca.columns {
			if !ok[i] {
				continue
			}
			for j := i + 1; j < len(ca.columns); j++ {
				if !ok[j] {
					continue
				}
				key := [2]int{i, j}
				pa := ca.pairs[key]
				if pa == nil {
					pa = &pairAcc{}
					ca.pairs[key] = pa
				}
				pa.add(xs[i], xs[j])
			}
		}
	}
}

// result keys each pair as "a_b" in column order, rounded to 2 decimals.
func (ca *corrAcc) result() map[string]float64 {
	out := make(map[string]float64)
	for i := range ca.columns {
		for j := i + 1; j < len(ca.columns); j++ {
			if r, ok := ca.pairs[[2]int{i, j}].r(); ok {
				out[ca.columns[i]+"_"+ca.columns[j]] = dataset.Round2(r)
			}
		}
	}
	return out
}

// CalculateCorrelations returns the Pearson correlation of every pair of the
// given columns, using only rows where both values are numeric.
func CalculateCorrelations(d *dataset.Dataset, columns []string) map[string]float64 {
	ca := newCorrAcc(columns)
	ca.add(d.Records)
	return ca.result()
}
