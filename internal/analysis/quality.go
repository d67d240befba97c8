package analysis

import "math"

// CalculateQualityScore rates a dataset from 0 to 100. Missing values cost up
// to 30 points, duplicate rows up to 20, columns with issues up to 25 and
// columns more than half empty up to 15.
func CalculateQualityScore(s Summary, cols []ColumnProfile) int {
	if s.TotalRows == 0 || s.TotalColumns == 0 {
		return 0
	}
	rows := float64(s.TotalRows)
	ncols := float64(s.TotalColumns)

	score := 100.0
	score -= math.Min(30, float64(s.MissingValues)/(rows*ncols)*100)
	score -= math.Min(20, float64(s.Duplicates)/rows*50)

	var withIssues, sparse int
	for _, c := range cols {
		if c.Issues != "" {
			withIssues++
		}
		if c.MissingPercent > 50 {
			sparse++
		}
	}
	score -= math.Min(25, float64(withIssues)/ncols*100)
	score -= math.Min(15, float64(sparse)/ncols*30)

	out := int(math.Round(score))
	return max(0, min(100, out))
}
