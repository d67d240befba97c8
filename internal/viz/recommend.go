// Package viz suggests charts for a profiled dataset.
package viz

import (
	"fmt"

	"github.com/KaramelBytes/datacleaner-cli/internal/analysis"
	"github.com/KaramelBytes/datacleaner-cli/internal/dataset"
)

// MaxRecommendations caps the number of charts returned.
const MaxRecommendations = 10

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// ChartRecommendation describes one suggested chart.
type ChartRecommendation struct {
	Title          string   `json:"title"`
	Type           string   `json:"type"`
	Variables      []string `json:"variables"`
	Description    string   `json:"description"`
	Priority       string   `json:"priority"`
	Icon           string   `json:"icon"`
	Insight        string   `json:"insight"`
	RuleType       string   `json:"ruleType"`
	IsBiasChart    bool     `json:"isBiasChart,omitempty"`
	IsOutlierChart bool     `json:"isOutlierChart,omitempty"`
}

// Recommend applies the chart rules in order and returns at most
// MaxRecommendations suggestions. Text columns are treated as categorical.
func Recommend(d *dataset.Dataset, p *analysis.DatasetProfile) []ChartRecommendation {
	if d == nil || p == nil {
		return []ChartRecommendation{}
	}
	numeric := p.ColumnsOfType(analysis.TypeNumber)
	categorical := p.ColumnsOfType(analysis.TypeText)
	dates := p.ColumnsOfType(analysis.TypeDate)

	var recs []ChartRecommendation
	for _, c := range categorical {
		if c.UniqueCount > 20 {
			continue
		}
		recs = append(recs, ChartRecommendation{
			Title:       c.Name + " Distribution",
			Type:        "bar",
			Variables:   []string{c.Name},
			Description: "Bar chart showing frequency distribution (Rule: Categorical → Bar chart)",
			Priority:    PriorityHigh,
			Icon:        "bar-chart-3",
			Insight:     "Analyze category distribution and identify potential bias in " + c.Name,
			RuleType:    "categorical-distribution",
		})
		if c.UniqueCount <= 8 {
			recs = append(recs, ChartRecommendation{
				Title:       c.Name + " Pie Chart",
				Type:        "pie",
				Variables:   []string{c.Name},
				Description: "Pie chart for categorical proportions (Rule: Few categories → Pie chart)",
				Priority:    PriorityMedium,
				Icon:        "pie-chart",
				Insight:     fmt.Sprintf("Visual proportion analysis of %s categories", c.Name),
				RuleType:    "categorical-pie",
			})
		}
	}

	for _, c := range numeric {
		recs = append(recs, ChartRecommendation{
			Title:       c.Name + " Distribution",
			Type:        "histogram",
			Variables:   []string{c.Name},
			Description: "Histogram showing distribution pattern (Rule: Numeric → Histogram)",
			Priority:    PriorityHigh,
			Icon:        "bar-chart",
			Insight:     "Examine statistical distribution and identify outliers in " + c.Name,
			RuleType:    "numeric-distribution",
		})
		if o := p.Outliers[c.Name]; o != nil && len(o.Combined) > 0 {
			recs = append(recs, ChartRecommendation{
				Title:          c.Name + " Outlier Detection",
				Type:           "boxplot",
				Variables:      []string{c.Name},
				Description:    "Box plot highlighting outliers (Rule: Outliers detected → Box plot)",
				Priority:       PriorityHigh,
				Icon:           "alert-triangle",
				Insight:        fmt.Sprintf("Identify and analyze %d potential outliers", len(o.Combined)),
				RuleType:       "outlier-detection",
				IsOutlierChart: true,
			})
		}
	}

	if len(categorical) > 0 && len(numeric) > 0 {
		for _, cat := range first(categorical, 2) {
			if cat.UniqueCount > 10 {
				continue
			}
			for _, num := range first(numeric, 2) {
				recs = append(recs, ChartRecommendation{
					Title:       fmt.Sprintf("%s by %s", num.Name, cat.Name),
					Type:        "violin",
					Variables:   []string{cat.Name, num.Name},
					Description: "Violin plot comparing distributions (Rule: Categorical + Numeric → Violin plot)",
					Priority:    PriorityMedium,
					Icon:        "activity",
					Insight:     fmt.Sprintf("Compare %s distributions across %s groups for bias analysis", num.Name, cat.Name),
					RuleType:    "categorical-numeric-violin",
					IsBiasChart: true,
				})
			}
		}
	}

	scatter := first(numeric, 3)
	for i := range scatter {
		for j := i + 1; j < len(scatter); j++ {
			a, b := scatter[i].Name, scatter[j].Name
			recs = append(recs, ChartRecommendation{
				Title:       fmt.Sprintf("%s vs %s", a, b),
				Type:        "scatter",
				Variables:   []string{a, b},
				Description: "Scatter plot for correlation analysis (Rule: Two numeric → Scatter plot)",
				Priority:    PriorityMedium,
				Icon:        "scatter-chart",
				Insight:     "Identify correlations and patterns between numeric variables",
				RuleType:    "numeric-correlation",
			})
		}
	}

	if len(dates) > 0 && len(numeric) > 0 {
		dc, nc := dates[0].Name, numeric[0].Name
		recs = append(recs, ChartRecommendation{
			Title:       nc + " Over Time",
			Type:        "line",
			Variables:   []string{dc, nc},
			Description: "Time series analysis (Rule: Date + Numeric → Line chart)",
			Priority:    PriorityHigh,
			Icon:        "trending-up",
			Insight:     "Analyze temporal patterns and trends in " + nc,
			RuleType:    "time-series",
		})
	}

	for _, c := range categorical {
		if c.UniqueCount <= 2 || c.UniqueCount > 15 {
			continue
		}
		recs = append(recs, ChartRecommendation{
			Title:       c.Name + " Bias Analysis",
			Type:        "bias-heatmap",
			Variables:   []string{c.Name},
			Description: "Bias detection visualization (Rule: Multi-category → Bias heatmap)",
			Priority:    PriorityHigh,
			Icon:        "shield-alert",
			Insight:     "Analyze representation bias and fairness metrics for " + c.Name,
			RuleType:    "bias-analysis",
			IsBiasChart: true,
		})
	}

	if len(numeric) >= 3 {
		vars := make([]string, 0, 6)
		for _, c := range first(numeric, 6) {
			vars = append(vars, c.Name)
		}
		recs = append(recs, ChartRecommendation{
			Title:       "Correlation Matrix",
			Type:        "heatmap",
			Variables:   vars,
			Description: "Correlation heatmap (Rule: Multiple numeric → Heatmap)",
			Priority:    PriorityMedium,
			Icon:        "grid-3x3",
			Insight:     "Identify multicollinearity and variable relationships",
			RuleType:    "correlation-matrix",
		})
	}

	if len(recs) > MaxRecommendations {
		recs = recs[:MaxRecommendations]
	}
	if recs == nil {
		recs = []ChartRecommendation{}
	}
	return recs
}

func first(cols []analysis.ColumnProfile, n int) []analysis.ColumnProfile {
	if len(cols) > n {
		return cols[:n]
	}
	return cols
}
