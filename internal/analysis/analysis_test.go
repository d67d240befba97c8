package analysis

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/datacleaner-cli/internal/batch"
	"github.com/KaramelBytes/datacleaner-cli/internal/dataset"
)

func ds(columns []string, rows ...[]string) *dataset.Dataset {
	recs := make([]dataset.Record, len(rows))
	for i, row := range rows {
		r := dataset.Record{}
		for j, c := range columns {
			r[c] = row[j]
		}
		recs[i] = r
	}
	return dataset.New(columns, recs)
}

func column(name string, values ...string) *dataset.Dataset {
	rows := make([][]string, len(values))
	for i, v := range values {
		rows[i] = []string{v}
	}
	return ds([]string{name}, rows...)
}

func TestDetectDataType(t *testing.T) {
	assert.Equal(t, TypeNumber, DetectDataType([]string{"1", "2.5", "", "-3"}))
	assert.Equal(t, TypeDate, DetectDataType([]string{"2024-01-15", "2024-02-01", "03/04/2024"}))
	assert.Equal(t, TypeText, DetectDataType([]string{"a", "b", "1"}))
	assert.Equal(t, TypeText, DetectDataType([]string{"", ""}))
	assert.Equal(t, TypeText, DetectDataType(nil))
	// 4 of 5 is not above the threshold
	assert.Equal(t, TypeText, DetectDataType([]string{"1", "2", "3", "4", "x"}))
}

func TestDetectColumnIssues(t *testing.T) {
	assert.Equal(t, "", DetectColumnIssues([]string{"a", "b", ""}))
	assert.Equal(t, IssueMixedTypes, DetectColumnIssues([]string{"12", "abc"}))
	assert.Equal(t, IssueEncoding, DetectColumnIssues([]string{"café"}))
	assert.Equal(t, IssueNullLike, DetectColumnIssues([]string{"NULL", "x"}))
	assert.Equal(t, "Mixed data types, Encoding issues, Contains null-like strings",
		DetectColumnIssues([]string{"1", "naïve", "#N/A"}))
}

func TestFindDuplicateGroups(t *testing.T) {
	d := ds([]string{"name", "city"},
		[]string{"a", "x"},
		[]string{"b", "y"},
		[]string{"b", "y"},
		[]string{"a", "x"},
		[]string{"b", "y"},
		[]string{"c", "z"},
	)
	groups := FindDuplicateGroups(d)
	require.Len(t, groups, 2)
	assert.Equal(t, 3, groups[0].Count)
	assert.Equal(t, []int{2, 3, 5}, groups[0].Indices)
	assert.Equal(t, []int{1, 4}, groups[1].Indices)
	assert.Equal(t, DuplicateExact, groups[0].DuplicateType)
	assert.Equal(t, SeverityHigh, groups[0].Severity)

	// groups partition exactly the rows that have a partner
	flat := FindDuplicates(d)
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4}, flat)
	total := 0
	for _, g := range groups {
		total += g.Count
	}
	assert.Equal(t, len(flat), total)
}

func TestDuplicateTypeAndSeverity(t *testing.T) {
	withID := ds([]string{"user_id", "v"}, []string{"1", "a"}, []string{"1", "a"})
	assert.Equal(t, DuplicateSystem, FindDuplicateGroups(withID)[0].DuplicateType)

	incomplete := ds([]string{"user_id", "v"}, []string{"1", ""}, []string{"1", ""})
	assert.Equal(t, DuplicateIncomplete, FindDuplicateGroups(incomplete)[0].DuplicateType)

	assert.Equal(t, SeverityMedium, duplicateSeverity(2, 100))
	assert.Equal(t, SeverityLow, duplicateSeverity(2, 1000))
}

func TestQualityScore(t *testing.T) {
	clean := ds([]string{"a", "b"}, []string{"1", "x"}, []string{"2", "y"})
	p, err := GenerateDataProfile(clean)
	require.NoError(t, err)
	assert.Equal(t, 100, p.Summary.QualityScore)

	awful := ds([]string{"a"}, []string{""}, []string{""}, []string{"null"}, []string{"null"})
	p, err = GenerateDataProfile(awful)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, p.Summary.QualityScore, 0)
	assert.LessOrEqual(t, p.Summary.QualityScore, 100)
	assert.Equal(t, 0, CalculateQualityScore(Summary{}, nil))
}

func TestGenerateDataProfile_EndToEnd(t *testing.T) {
	d := ds([]string{"name", "age"},
		[]string{"Alice", "30"},
		[]string{"Bob", ""},
		[]string{"Alice", "30"},
	)
	p, err := GenerateDataProfile(d)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Summary.TotalRows)
	assert.Equal(t, 2, p.Summary.TotalColumns)
	assert.Equal(t, 1, p.Summary.MissingValues)
	assert.Equal(t, 2, p.Summary.Duplicates)
	assert.Equal(t, 63, p.Summary.QualityScore)

	require.Len(t, p.DuplicateGroups, 1)
	assert.Equal(t, []int{1, 3}, p.DuplicateGroups[0].Indices)

	age, ok := p.Column("age")
	require.True(t, ok)
	assert.Equal(t, TypeNumber, age.Type)
	assert.Equal(t, 33, age.MissingPercent)
	assert.Equal(t, []string{"30"}, age.SampleValues)

	require.Len(t, p.Issues, 2)
	assert.Equal(t, "Found 2 duplicate rows that may affect analysis", p.Issues[0].Description)
	assert.Equal(t, "1 missing values detected across 1 columns", p.Issues[1].Description)
	assert.Nil(t, p.BiasWarning)
}

func TestGenerateDataProfile_Empty(t *testing.T) {
	_, err := GenerateDataProfile(dataset.New([]string{"a"}, nil))
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestSampleValuesCapped(t *testing.T) {
	p, err := GenerateDataProfile(column("v", "a", "b", "a", "c", "d", "e", "f", "g"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, p.Columns[0].SampleValues)
	assert.Equal(t, 7, p.Columns[0].UniqueCount)
}

func TestPercentile(t *testing.T) {
	s := []float64{1, 2, 3, 4, 5, 100}
	assert.InDelta(t, 2.25, Percentile(s, 25), 1e-9)
	assert.InDelta(t, 3.5, Percentile(s, 50), 1e-9)
	assert.InDelta(t, 4.75, Percentile(s, 75), 1e-9)
	assert.Equal(t, 0.0, Percentile(nil, 50))
}

func TestDetectOutliers(t *testing.T) {
	d := column("v", "1", "2", "3", "4", "5", "100")
	res, err := DetectOutliers(d, "v")
	require.NoError(t, err)
	assert.Equal(t, MethodCombined, res.Method)
	assert.Equal(t, []float64{100}, res.IQR.Outliers)
	assert.Equal(t, []int{5}, res.IQR.Indices)
	assert.Equal(t, []int{5}, res.Combined)
	assert.InDelta(t, 8.5, res.IQR.Bounds.Upper, 1e-9)
	assert.Equal(t, 6, res.Statistics.Count)
	assert.Equal(t, 19.17, res.Statistics.Mean)
	assert.Equal(t, 3.5, res.Statistics.Median)
}

func TestDetectOutliers_ZScoreKeepsRowIndices(t *testing.T) {
	values := make([]string, 0, 22)
	for i := 0; i < 20; i++ {
		values = append(values, "10")
	}
	values = append(values, "abc", "1000")
	res, err := DetectOutliers(column("v", values...), "v")
	require.NoError(t, err)
	assert.Equal(t, []int{21}, res.ZScore.Indices)
	assert.Equal(t, 3.0, res.ZScore.Threshold)
}

func TestDetectOutliers_Degenerate(t *testing.T) {
	res, err := DetectOutliers(column("v", "7", "7", "7"), "v")
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.ZScore.Statistics.StdDev)
	assert.Empty(t, res.ZScore.Indices)
	assert.Empty(t, res.IQR.Indices)

	res, err = DetectOutliers(column("v", "a", ""), "v")
	require.NoError(t, err)
	assert.Equal(t, MethodNone, res.Method)
	assert.Empty(t, res.Combined)

	_, err = DetectOutliers(column("v", "1"), "missing")
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func skewed(a, b int) *dataset.Dataset {
	var values []string
	for i := 0; i < a; i++ {
		values = append(values, "A")
	}
	for i := 0; i < b; i++ {
		values = append(values, "B")
	}
	return column("group", values...)
}

func TestDetectBias_HighImbalance(t *testing.T) {
	res, err := DetectBias(skewed(90, 10), "group")
	require.NoError(t, err)
	a := res.Analysis
	assert.Equal(t, 0.9, a.BiasScore)
	assert.Equal(t, 100, a.TotalValues)
	assert.Equal(t, 2, a.UniqueValues)
	assert.Equal(t, []ValueCount{{"A", 90, 90}, {"B", 10, 10}}, a.Distribution)

	m := a.FairnessMetrics
	assert.Equal(t, 0.4, m.GiniCoefficient)
	assert.Equal(t, 40.0, m.DemographicParity)
	assert.Equal(t, 50.0, m.EqualShare)
	assert.Equal(t, 9.0, m.ImbalanceRatio)

	require.Len(t, res.Recommendations, 6)
	assert.True(t, strings.HasPrefix(res.Recommendations[0], "High bias detected"))
	assert.Equal(t, `Consider increasing "B" representation by 80 samples`, res.Recommendations[4])
	assert.Equal(t, "Apply class weights: majority group (A) weight: 0.5, minority group (B) weight: 2.0", res.Recommendations[5])
}

func TestDetectBias_Balanced(t *testing.T) {
	res, err := DetectBias(column("g", "x", "y", "z", "x", "y", "z"), "g")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Distribution appears relatively balanced",
		"Continue monitoring for bias in model predictions",
	}, res.Recommendations)
}

func TestDetectBias_Moderate(t *testing.T) {
	res, err := DetectBias(skewed(60, 40), "group")
	require.NoError(t, err)
	require.Len(t, res.Recommendations, 3)
	assert.True(t, strings.HasPrefix(res.Recommendations[0], "Moderate bias detected"))
}

func TestDetectBias_Errors(t *testing.T) {
	_, err := DetectBias(column("g", "", ""), "g")
	assert.ErrorIs(t, err, ErrNoValues)
	_, err = DetectBias(column("g", "a"), "nope")
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestDetectBias_TopTenAndZeroPercentFallback(t *testing.T) {
	var values []string
	for i := 0; i < 300; i++ {
		values = append(values, "big")
	}
	for i := 0; i < 12; i++ {
		values = append(values, string(rune('a'+i)))
	}
	res, err := DetectBias(column("g", values...), "g")
	require.NoError(t, err)
	assert.Len(t, res.Analysis.Distribution, 10)
	assert.Equal(t, 13, res.Analysis.UniqueValues)
	assert.Equal(t, 300.0, res.Analysis.FairnessMetrics.ImbalanceRatio)
}

func TestAnalyzeDatasetBias(t *testing.T) {
	var rows [][]string
	for i := 0; i < 9; i++ {
		rows = append(rows, []string{"M", "x"})
	}
	rows = append(rows, []string{"F", "y"})
	for i := 0; i < 10; i++ {
		rows[i][1] = []string{"x", "y"}[i%2]
	}
	d := ds([]string{"gender", "side"}, rows...)
	rep, err := AnalyzeDatasetBias(d, nil)
	require.NoError(t, err)
	assert.Len(t, rep.Results, 2)
	require.Len(t, rep.DetectedBiases, 2)
	assert.Equal(t, DetectedBias{Column: "gender", BiasScore: 0.9, Level: BiasLevelHigh}, rep.DetectedBiases[0])
	assert.Equal(t, BiasLevelModerate, rep.DetectedBiases[1].Level)
	assert.InDelta(t, 0.7, rep.OverallBiasScore, 1e-9)

	seen := map[string]bool{}
	for _, r := range rep.Recommendations {
		assert.False(t, seen[r], "duplicate recommendation %q", r)
		seen[r] = true
	}
}

func TestDetectDatasetBias(t *testing.T) {
	d := skewed(8, 2)
	p, err := GenerateDataProfile(d)
	require.NoError(t, err)
	require.NotNil(t, p.BiasWarning)
	assert.Equal(t, "group", p.BiasWarning.Column)
	assert.Contains(t, p.BiasWarning.Explanation, "4.0:1 ratio")
	assert.Len(t, p.BiasWarning.Solutions, 5)

	assert.Nil(t, DetectDatasetBias(skewed(3, 1), p.Columns))
}

func TestCalculateCorrelations(t *testing.T) {
	d := ds([]string{"x", "y", "z"},
		[]string{"1", "2", "8"},
		[]string{"2", "4", "6"},
		[]string{"3", "6", ""},
		[]string{"4", "8", "2"},
	)
	c := CalculateCorrelations(d, d.Columns)
	assert.Equal(t, 1.0, c["x_y"])
	assert.Equal(t, -1.0, c["x_z"])
	_, reversed := c["y_x"]
	assert.False(t, reversed)
}

func TestGenerateEnhancedDataProfile(t *testing.T) {
	var rows [][]string
	for i := 0; i < 9; i++ {
		rows = append(rows, []string{dataset.FormatNumber(float64(i)), dataset.FormatNumber(float64(2 * i)), "t"})
	}
	rows = append(rows, []string{"500", "18", "t"})
	d := ds([]string{"a", "b", "label"}, rows...)

	var chunks []batch.Progress
	p, err := GenerateEnhancedDataProfile(context.Background(), d, 4, func(pr batch.Progress) { chunks = append(chunks, pr) })
	require.NoError(t, err)
	assert.Len(t, chunks, 3)
	require.NotNil(t, p.ProcessingInfo)
	assert.True(t, p.ProcessingInfo.ProcessedInChunks)
	assert.Equal(t, 4, p.ProcessingInfo.ChunkSize)

	assert.Contains(t, p.Correlations, "a_b")
	assert.NotContains(t, p.Correlations, "a_label")
	require.Contains(t, p.Outliers, "a")
	assert.Equal(t, []int{9}, p.Outliers["a"].IQR.Indices)

	basic, err := GenerateDataProfile(d)
	require.NoError(t, err)
	assert.Equal(t, basic.Summary, p.Summary)
	assert.Equal(t, basic.Columns, p.Columns)
}

func TestDetectInvalidData(t *testing.T) {
	d := ds([]string{"age", "signup_date", "email"},
		[]string{"200", "2024-01-01", "a@b.co"},
		[]string{"-1", "soon", "nope"},
		[]string{"thirty", "", "x@y.org"},
	)
	got := DetectInvalidData(d)
	require.Len(t, got, 4)
	assert.Equal(t, InvalidValue{Row: 1, Column: "age", Value: "200", Reason: ReasonAge}, got[0])
	assert.Equal(t, ReasonDate, got[2].Reason)
	assert.Equal(t, ReasonEmail, got[3].Reason)
}

func TestMarkdown(t *testing.T) {
	d := ds([]string{"name", "age"},
		[]string{"Alice", "30"},
		[]string{"Bob", ""},
		[]string{"Alice", "30"},
	)
	p, err := GenerateDataProfile(d)
	require.NoError(t, err)
	p.Name = "people.csv"
	md := p.Markdown()
	for _, want := range []string{"[DATASET SUMMARY]", "File: people.csv", "Quality score: 63/100", "[SCHEMA]", "- age: number", "[DUPLICATES]", "rows 1, 3", "[NOTES]"} {
		assert.Contains(t, md, want)
	}
}
