package analysis

import "github.com/KaramelBytes/datacleaner-cli/internal/dataset"

// DataType is the inferred kind of a column.
type DataType string

const (
	TypeNumber DataType = "number"
	TypeDate   DataType = "date"
	TypeText   DataType = "text"
)

// typeThreshold is the share of non-missing values a kind must exceed.
const typeThreshold = 0.8

// DetectDataType infers the type of a column from its raw values. Numbers
// win over dates; a column with no usable values is text.
func DetectDataType(values []string) DataType {
	var tc typeCounter
	for _, v := range values {
		tc.add(v)
	}
	return tc.kind()
}

type typeCounter struct {
	n, num, date int
}

func (tc *typeCounter) add(v string) {
	if dataset.IsMissing(v) {
		return
	}
	tc.n++
	if dataset.IsNumeric(v) {
		tc.num++
	}
	if dataset.IsDate(v) {
		tc.date++
	}
}

func (tc *typeCounter) kind() DataType {
	if tc.n == 0 {
		return TypeText
	}
	switch {
	case float64(tc.num)/float64(tc.n) > typeThreshold:
		return TypeNumber
	case float64(tc.date)/float64(tc.n) > typeThreshold:
		return TypeDate
	default:
		return TypeText
	}
}

// classifyValue assigns a single value to exactly one kind.
func classifyValue(v string) DataType {
	if dataset.IsNumeric(v) {
		return TypeNumber
	}
	if dataset.IsDate(v) {
		return TypeDate
	}
	return TypeText
}
