// Package engine is the public surface over the profiling, cleaning and
// detection packages. Every call is guarded: failures and panics are logged,
// wrapped in a ComputationError and answered with a safe fallback value.
package engine

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/KaramelBytes/datacleaner-cli/internal/analysis"
	"github.com/KaramelBytes/datacleaner-cli/internal/batch"
	"github.com/KaramelBytes/datacleaner-cli/internal/cleaning"
	"github.com/KaramelBytes/datacleaner-cli/internal/dataset"
	"github.com/KaramelBytes/datacleaner-cli/internal/parser"
	"github.com/KaramelBytes/datacleaner-cli/internal/viz"
)

// ComputationError reports a failure inside an engine operation.
type ComputationError struct {
	Op  string
	Err error
}

func (e *ComputationError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *ComputationError) Unwrap() error { return e.Err }

// Engine runs guarded operations. The zero value is not usable; call New.
type Engine struct {
	log       logrus.FieldLogger
	chunkSize int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger failures are reported to.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithChunkSize fixes the chunk size of chunked operations; n <= 0 keeps the
// adaptive size.
func WithChunkSize(n int) Option {
	return func(e *Engine) { e.chunkSize = n }
}

// New returns an Engine logging to the standard logrus logger by default.
func New(opts ...Option) *Engine {
	e := &Engine{log: logrus.StandardLogger()}
	for _, o := range opts {
		o(e)
	}
	return e
}

// guard runs fn, turning errors and panics into a ComputationError and the
// fallback value.
func guard[T any](e *Engine, op string, fields logrus.Fields, fallback T, fn func() (T, error)) (out T, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = fallback, e.fail(op, fields, fmt.Errorf("panic: %v", r))
		}
	}()
	v, ferr := fn()
	if ferr != nil {
		return fallback, e.fail(op, fields, ferr)
	}
	return v, nil
}

func (e *Engine) fail(op string, fields logrus.Fields, err error) error {
	e.log.WithFields(fields).WithField("op", op).WithError(err).Error("computation failed")
	return &ComputationError{Op: op, Err: err}
}

func fieldsFor(d *dataset.Dataset, column string) logrus.Fields {
	f := logrus.Fields{"rows": d.Len()}
	if column != "" {
		f["column"] = column
	}
	return f
}

// ParseCSV parses raw CSV text. Parse errors are returned unchanged.
func (e *Engine) ParseCSV(text string) (*dataset.Dataset, error) {
	d, err := parser.ParseCSV(text)
	if err != nil {
		e.log.WithError(err).Warn("csv parse failed")
		return nil, err
	}
	e.log.WithFields(logrus.Fields{"rows": d.Len(), "columns": len(d.Columns)}).Debug("csv parsed")
	return d, nil
}

// GenerateDataProfile profiles d; it returns nil on failure.
func (e *Engine) GenerateDataProfile(d *dataset.Dataset) (*analysis.DatasetProfile, error) {
	return guard(e, "generate profile", fieldsFor(d, ""), nil, func() (*analysis.DatasetProfile, error) {
		return analysis.GenerateDataProfile(d)
	})
}

// GenerateEnhancedDataProfile adds correlations, outliers and processing
// info to the profile. When that fails it falls back to the basic profile.
func (e *Engine) GenerateEnhancedDataProfile(ctx context.Context, d *dataset.Dataset, progress batch.ProgressFunc) (*analysis.DatasetProfile, error) {
	p, err := guard(e, "generate enhanced profile", fieldsFor(d, ""), nil, func() (*analysis.DatasetProfile, error) {
		return analysis.GenerateEnhancedDataProfile(ctx, d, e.chunkSize, progress)
	})
	if err == nil {
		return p, nil
	}
	if basic, berr := e.GenerateDataProfile(d); berr == nil {
		return basic, err
	}
	return nil, err
}

// ProcessDataCleaning cleans a copy of d. On failure the result carries the
// original dataset and a log whose Error field is set.
func (e *Engine) ProcessDataCleaning(d *dataset.Dataset, opts cleaning.Options) (*cleaning.Result, error) {
	res, err := guard(e, "process cleaning", fieldsFor(d, ""), nil, func() (*cleaning.Result, error) {
		return cleaning.Process(d, opts)
	})
	return cleaningFallback(d, res, err)
}

// ProcessDataCleaningChunked is ProcessDataCleaning with chunked row work and
// progress reporting.
func (e *Engine) ProcessDataCleaningChunked(ctx context.Context, d *dataset.Dataset, opts cleaning.Options, progress cleaning.ProgressFunc) (*cleaning.Result, error) {
	res, err := guard(e, "process cleaning chunked", fieldsFor(d, ""), nil, func() (*cleaning.Result, error) {
		return cleaning.ProcessChunked(ctx, d, opts, e.chunkSize, progress)
	})
	return cleaningFallback(d, res, err)
}

// DetectBias analyzes the category balance of column; nil on failure.
func (e *Engine) DetectBias(d *dataset.Dataset, column string) (*analysis.BiasResult, error) {
	return guard(e, "detect bias", fieldsFor(d, column), nil, func() (*analysis.BiasResult, error) {
		return analysis.DetectBias(d, column)
	})
}

// DetectOutliers flags outliers in column; nil on failure.
func (e *Engine) DetectOutliers(d *dataset.Dataset, column string) (*analysis.OutlierResult, error) {
	return guard(e, "detect outliers", fieldsFor(d, column), nil, func() (*analysis.OutlierResult, error) {
		return analysis.DetectOutliers(d, column)
	})
}

// AnalyzeDatasetBias scans every eligible column for bias. p may be nil.
func (e *Engine) AnalyzeDatasetBias(d *dataset.Dataset, p *analysis.DatasetProfile) (*analysis.DatasetBiasReport, error) {
	return guard(e, "analyze dataset bias", fieldsFor(d, ""), nil, func() (*analysis.DatasetBiasReport, error) {
		return analysis.AnalyzeDatasetBias(d, p)
	})
}

// GenerateVisualizationRecommendations suggests charts; empty on failure.
func (e *Engine) GenerateVisualizationRecommendations(d *dataset.Dataset, p *analysis.DatasetProfile) ([]viz.ChartRecommendation, error) {
	return guard(e, "recommend charts", fieldsFor(d, ""), []viz.ChartRecommendation{}, func() ([]viz.ChartRecommendation, error) {
		return viz.Recommend(d, p), nil
	})
}

func cleaningFallback(d *dataset.Dataset, res *cleaning.Result, err error) (*cleaning.Result, error) {
	if err == nil {
		return res, nil
	}
	log := cleaning.NewLog(d.Len())
	log.FinalRows = d.Len()
	log.Error = err.Error()
	return &cleaning.Result{Data: d, Log: log}, err
}
