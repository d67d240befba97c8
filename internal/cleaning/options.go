package cleaning

import "fmt"

type MissingStrategy string

const (
	MissingKeep   MissingStrategy = "keep"
	MissingDrop   MissingStrategy = "drop"
	MissingMean   MissingStrategy = "mean"
	MissingMedian MissingStrategy = "median"
	MissingMode   MissingStrategy = "mode"
	MissingCustom MissingStrategy = "custom"
)

type DuplicateStrategy string

const (
	DuplicatesKeep      DuplicateStrategy = "keep"
	DuplicatesDrop      DuplicateStrategy = "drop"
	DuplicatesKeepFirst DuplicateStrategy = "keep_first"
	DuplicatesKeepLast  DuplicateStrategy = "keep_last"
)

type CaseStyle string

const (
	CaseNone  CaseStyle = "none"
	CaseLower CaseStyle = "lower"
	CaseUpper CaseStyle = "upper"
	CaseTitle CaseStyle = "title"
)

type OutlierAction string

const (
	OutliersNone   OutlierAction = "none"
	OutliersRemove OutlierAction = "remove"
	OutliersCap    OutlierAction = "cap"
	OutliersMark   OutlierAction = "mark"
)

type OutlierMethod string

const (
	MethodIQR    OutlierMethod = "iqr"
	MethodZScore OutlierMethod = "zscore"
)

type EncodingMethod string

const (
	EncodingLabel  EncodingMethod = "label"
	EncodingOneHot EncodingMethod = "onehot"
)

type DateFormat string

const (
	DateISO DateFormat = "YYYY-MM-DD"
	DateUS  DateFormat = "MM/DD/YYYY"
	DateEU  DateFormat = "DD/MM/YYYY"
)

// Options selects the cleaning steps to run. An empty strategy disables its
// step; empty method and format fields fall back to iqr, label and
// YYYY-MM-DD.
type Options struct {
	HandleMissing      MissingStrategy   `json:"handleMissing" yaml:"handle_missing"`
	CustomFillValue    string            `json:"customFillValue,omitempty" yaml:"custom_fill_value"`
	HandleDuplicates   DuplicateStrategy `json:"handleDuplicates" yaml:"handle_duplicates"`
	StandardizeDates   bool              `json:"standardizeDates" yaml:"standardize_dates"`
	DateFormat         DateFormat        `json:"dateFormat" yaml:"date_format"`
	StandardizeNumbers bool              `json:"standardizeNumbers" yaml:"standardize_numbers"`
	TrimWhitespace     bool              `json:"trimWhitespace" yaml:"trim_whitespace"`
	StandardizeCase    CaseStyle         `json:"standardizeCase" yaml:"standardize_case"`
	RemoveSpecialChars bool              `json:"removeSpecialChars" yaml:"remove_special_chars"`
	HandleOutliers     OutlierAction     `json:"handleOutliers" yaml:"handle_outliers"`
	OutlierMethod      OutlierMethod     `json:"outlierMethod" yaml:"outlier_method"`
	EncodeCategories   bool              `json:"encodeCategories" yaml:"encode_categories"`
	EncodingMethod     EncodingMethod    `json:"encodingMethod" yaml:"encoding_method"`
	EnforceSchema      bool              `json:"enforceSchema" yaml:"enforce_schema"`
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		HandleMissing:      MissingMedian,
		HandleDuplicates:   DuplicatesDrop,
		StandardizeDates:   true,
		DateFormat:         DateISO,
		StandardizeNumbers: true,
		TrimWhitespace:     true,
		StandardizeCase:    CaseNone,
		HandleOutliers:     OutliersNone,
		OutlierMethod:      MethodIQR,
		EncodingMethod:     EncodingLabel,
		EnforceSchema:      true,
	}
}

// OptionError reports an option set to a value outside its enumeration.
type OptionError struct {
	Field string
	Value string
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("invalid cleaning option %s=%q", e.Field, e.Value)
}

// Validate checks every enumerated field.
func (o Options) Validate() error {
	checks := []struct {
		field   string
		value   string
		allowed []string
	}{
		{"handle_missing", string(o.HandleMissing), []string{"keep", "drop", "mean", "median", "mode", "custom"}},
		{"handle_duplicates", string(o.HandleDuplicates), []string{"keep", "drop", "keep_first", "keep_last"}},
		{"standardize_case", string(o.StandardizeCase), []string{"none", "lower", "upper", "title"}},
		{"handle_outliers", string(o.HandleOutliers), []string{"none", "remove", "cap", "mark"}},
		{"outlier_method", string(o.OutlierMethod), []string{"iqr", "zscore"}},
		{"encoding_method", string(o.EncodingMethod), []string{"label", "onehot"}},
		{"date_format", string(o.DateFormat), []string{string(DateISO), string(DateUS), string(DateEU)}},
	}
	for _, c := range checks {
		if c.value == "" {
			continue
		}
		ok := false
		for _, a := range c.allowed {
			if c.value == a {
				ok = true
				break
			}
		}
		if !ok {
			return &OptionError{Field: c.field, Value: c.value}
		}
	}
	return nil
}

func (o Options) outlierMethod() OutlierMethod {
	if o.OutlierMethod == "" {
		return MethodIQR
	}
	return o.OutlierMethod
}

func (o Options) encodingMethod() EncodingMethod {
	if o.EncodingMethod == "" {
		return EncodingLabel
	}
	return o.EncodingMethod
}
