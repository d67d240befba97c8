package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/datacleaner-cli/internal/analysis"
	"github.com/KaramelBytes/datacleaner-cli/internal/batch"
	"github.com/KaramelBytes/datacleaner-cli/internal/cleaning"
	"github.com/KaramelBytes/datacleaner-cli/internal/parser"
)

func newTestEngine(t *testing.T, opts ...Option) (*Engine, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	return New(append([]Option{WithLogger(logger)}, opts...)...), hook
}

const people = "name,age\nAlice,30\nBob,\nAlice,30\n"

func TestParseCSV(t *testing.T) {
	e, _ := newTestEngine(t)
	d, err := e.ParseCSV(people)
	require.NoError(t, err)
	assert.Equal(t, 3, d.Len())

	_, err = e.ParseCSV("\n \n")
	var pe *parser.ParseError
	assert.True(t, errors.As(err, &pe))
}

func TestEndToEnd(t *testing.T) {
	e, hook := newTestEngine(t)
	d, err := e.ParseCSV(people)
	require.NoError(t, err)

	p, err := e.GenerateDataProfile(d)
	require.NoError(t, err)
	assert.Equal(t, analysis.Summary{TotalRows: 3, TotalColumns: 2, MissingValues: 1, Duplicates: 2, QualityScore: 63}, p.Summary)

	opts := cleaning.DefaultOptions()
	res, err := e.ProcessDataCleaning(d, opts)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Data.Len())
	assert.Equal(t, []string{"30", "30"}, res.Data.Values("age"))
	assert.Equal(t, 1, res.Log.ValuesImputed)
	assert.Empty(t, res.Log.Error)
	assert.Empty(t, hook.AllEntries())
}

func TestFailuresFallBackAndLog(t *testing.T) {
	e, hook := newTestEngine(t)
	d, err := e.ParseCSV(people)
	require.NoError(t, err)

	b, err := e.DetectBias(d, "nope")
	assert.Nil(t, b)
	var ce *ComputationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "detect bias", ce.Op)
	assert.ErrorIs(t, err, analysis.ErrUnknownColumn)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "detect bias", entry.Data["op"])
	assert.Equal(t, "nope", entry.Data["column"])

	o, err := e.DetectOutliers(d, "nope")
	assert.Nil(t, o)
	assert.Error(t, err)

	p, err := e.GenerateDataProfile(nil)
	assert.Nil(t, p)
	assert.ErrorIs(t, err, analysis.ErrEmptyDataset)
}

func TestCleaningFailureReturnsOriginal(t *testing.T) {
	e, _ := newTestEngine(t)
	d, err := e.ParseCSV(people)
	require.NoError(t, err)

	res, err := e.ProcessDataCleaning(d, cleaning.Options{HandleOutliers: "explode"})
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Same(t, d, res.Data)
	assert.NotEmpty(t, res.Log.Error)
	assert.Equal(t, 3, res.Log.FinalRows)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err = e.ProcessDataCleaningChunked(ctx, d, cleaning.DefaultOptions(), nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Same(t, d, res.Data)
}

func TestGuardRecoversPanic(t *testing.T) {
	e, hook := newTestEngine(t)
	out, err := guard(e, "boom", logrus.Fields{}, "fallback", func() (string, error) {
		panic("kaboom")
	})
	assert.Equal(t, "fallback", out)
	var ce *ComputationError
	require.True(t, errors.As(err, &ce))
	assert.Contains(t, ce.Error(), "kaboom")
	assert.Len(t, hook.AllEntries(), 1)
}

func TestEnhancedProfile(t *testing.T) {
	e, _ := newTestEngine(t, WithChunkSize(1))
	d, err := e.ParseCSV("a,b\n1,2\n2,4\n3,7\n40,8\n")
	require.NoError(t, err)
	var calls int
	p, err := e.GenerateEnhancedDataProfile(context.Background(), d, func(_ batch.Progress) { calls++ })
	require.NoError(t, err)
	assert.Equal(t, 4, calls)
	assert.Contains(t, p.Correlations, "a_b")
	assert.Contains(t, p.Outliers, "a")
	assert.True(t, p.ProcessingInfo.ProcessedInChunks)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p, err = e.GenerateEnhancedDataProfile(ctx, d, nil)
	require.Error(t, err)
	require.NotNil(t, p, "falls back to the basic profile")
	assert.Nil(t, p.ProcessingInfo)
}

func TestRecommendationsAndDatasetBias(t *testing.T) {
	e, _ := newTestEngine(t)
	d, err := e.ParseCSV("team,score\nred,1\nred,2\nred,3\nblue,4\n")
	require.NoError(t, err)
	p, err := e.GenerateDataProfile(d)
	require.NoError(t, err)

	recs, err := e.GenerateVisualizationRecommendations(d, p)
	require.NoError(t, err)
	assert.NotEmpty(t, recs)

	rep, err := e.AnalyzeDatasetBias(d, p)
	require.NoError(t, err)
	require.Len(t, rep.DetectedBiases, 1)
	assert.Equal(t, "team", rep.DetectedBiases[0].Column)
}
