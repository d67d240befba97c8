package analysis

import (
	"fmt"

	"github.com/KaramelBytes/datacleaner-cli/internal/dataset"
)

// biasRatioThreshold is the most/least frequent count ratio that triggers
// the dataset bias warning.
const biasRatioThreshold = 3.0

var biasSolutions = []string{
	"Apply stratified sampling to balance representation",
	"Use SMOTE or other oversampling techniques",
	"Consider collecting more data for underrepresented categories",
	"Apply class weights during model training",
	"Monitor fairness metrics during model evaluation",
}

// BiasWarning is the early warning raised by DetectDatasetBias.
type BiasWarning struct {
	Column      string   `json:"column"`
	Ratio       float64  `json:"ratio"`
	Explanation string   `json:"explanation"`
	Solutions   []string `json:"solutions"`
}

// DetectDatasetBias returns a warning for the first text column with 2 to 20
// distinct values whose most frequent value occurs more than three times as
// often as its least frequent one, or nil when no column qualifies.
func DetectDatasetBias(d *dataset.Dataset, cols []ColumnProfile) *BiasWarning {
	for _, c := range categoricalColumns(cols) {
		dist, total := Distribution(d.Values(c.Name))
		if total == 0 {
			continue
		}
		hi, lo := dist[0].Count, dist[len(dist)-1].Count
		ratio := float64(hi) / float64(lo)
		if ratio <= biasRatioThreshold {
			continue
		}
		return &BiasWarning{
			Column: c.Name,
			Ratio:  dataset.Round2(ratio),
			Explanation: fmt.Sprintf("The column \"%s\" shows significant imbalance with a %.1f:1 ratio between most and least frequent categories. This could lead to biased model predictions.",
				c.Name, ratio),
			Solutions: append([]string(nil), biasSolutions...),
		}
	}
	return nil
}
