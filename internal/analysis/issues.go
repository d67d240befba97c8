package analysis

import (
	"strings"
	"unicode/utf8"

	"github.com/KaramelBytes/datacleaner-cli/internal/dataset"
)

const (
	IssueMixedTypes = "Mixed data types"
	IssueEncoding   = "Encoding issues"
	IssueNullLike   = "Contains null-like strings"
)

// DetectColumnIssues returns the quality issues found in a column's values,
// joined by ", ", or "" when the column looks clean.
func DetectColumnIssues(values []string) string {
	var ia issueAcc
	for _, v := range values {
		ia.add(v)
	}
	return ia.String()
}

type issueAcc struct {
	kinds    map[DataType]struct{}
	encoding bool
	nullLike bool
}

func (ia *issueAcc) add(v string) {
	if dataset.IsMissing(v) {
		return
	}
	if ia.kinds == nil {
		ia.kinds = make(map[DataType]struct{}, 3)
	}
	ia.kinds[classifyValue(v)] = struct{}{}
	if !ia.encoding && hasEncodingIssue(v) {
		ia.encoding = true
	}
	if !ia.nullLike && IsNullLike(v) {
		ia.nullLike = true
	}
}

func (ia *issueAcc) String() string {
	var issues []string
	if len(ia.kinds) > 1 {
		issues = append(issues, IssueMixedTypes)
	}
	if ia.encoding {
		issues = append(issues, IssueEncoding)
	}
	if ia.nullLike {
		issues = append(issues, IssueNullLike)
	}
	return strings.Join(issues, ", ")
}

func hasEncodingIssue(v string) bool {
	if !utf8.ValidString(v) || strings.ContainsRune(v, utf8.RuneError) {
		return true
	}
	for i := 0; i < len(v); i++ {
		if v[i] > 0x7F {
			return true
		}
	}
	return false
}

// IsNullLike reports whether v is a placeholder standing in for a missing
// value, such as "null", "undefined" or "#N/A".
func IsNullLike(v string) bool {
	switch strings.ToLower(v) {
	case "null", "undefined":
		return true
	}
	return v == "N/A" || v == "#N/A"
}
