package analysis

import (
	"sort"
	"strings"

	"github.com/KaramelBytes/datacleaner-cli/internal/dataset"
)

const (
	DuplicateIncomplete = "Incomplete Data"
	DuplicateSystem     = "System Duplicate"
	DuplicateExact      = "Exact Match"

	SeverityHigh   = "High"
	SeverityMedium = "Medium"
	SeverityLow    = "Low"
)

// DuplicateGroup is a set of field-for-field identical rows.
type DuplicateGroup struct {
	// Indices are 1-based row numbers in the order the rows appear.
	Indices       []int          `json:"indices"`
	Sample        dataset.Record `json:"sample"`
	Count         int            `json:"count"`
	DuplicateType string         `json:"duplicateType"`
	Severity      string         `json:"severity"`
}

// FindDuplicateGroups groups structurally equal rows. Only groups with at
// least two rows are returned, largest first.
func FindDuplicateGroups(d *dataset.Dataset) []DuplicateGroup {
	acc := newDupAcc(d.Columns)
	for i, r := range d.Records {
		acc.add(i, r)
	}
	return acc.groups(d.Len())
}

// FindDuplicates returns the 0-based indices of every row that has at least
// one identical partner, in discovery order. The first occurrence of a group
// is listed when its first duplicate is seen.
func FindDuplicates(d *dataset.Dataset) []int {
	acc := newDupAcc(d.Columns)
	for i, r := range d.Records {
		acc.add(i, r)
	}
	return acc.flat
}

// dupAcc tracks duplicates incrementally; rows must be added in row order.
type dupAcc struct {
	columns []string
	first   map[string]int
	byKey   map[string]*DuplicateGroup
	order   []string
	flagged map[int]bool
	flat    []int
}

func newDupAcc(columns []string) *dupAcc {
	return &dupAcc{
		columns: columns,
		first:   make(map[string]int),
		byKey:   make(map[string]*DuplicateGroup),
		flagged: make(map[int]bool),
	}
}

func (a *dupAcc) add(i int, r dataset.Record) {
	key := r.Key(a.columns)
	first, seen := a.first[key]
	if !seen {
		a.first[key] = i
		return
	}
	if !a.flagged[first] {
		a.flagged[first] = true
		a.flat = append(a.flat, first)
	}
	a.flagged[i] = true
	a.flat = append(a.flat, i)

	g, ok := a.byKey[key]
	if !ok {
		g = &DuplicateGroup{Indices: []int{first + 1}, Sample: r.Clone(), Count: 1}
		a.byKey[key] = g
		a.order = append(a.order, key)
	}
	g.Indices = append(g.Indices, i+1)
	g.Count++
}

func (a *dupAcc) groups(totalRows int) []DuplicateGroup {
	sort.Slice(a.order, func(i, j int) bool { return a.first[a.order[i]] < a.first[a.order[j]] })
	out := make([]DuplicateGroup, 0, len(a.order))
	for _, k := range a.order {
		g := *a.byKey[k]
		g.DuplicateType = duplicateType(g.Sample, a.columns)
		g.Severity = duplicateSeverity(g.Count, totalRows)
		out = append(out, g)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

func duplicateType(sample dataset.Record, columns []string) string {
	for _, c := range columns {
		if strings.TrimSpace(sample[c]) == "" {
			return DuplicateIncomplete
		}
	}
	for _, c := range columns {
		lc := strings.ToLower(c)
		if strings.Contains(lc, "id") || strings.Contains(lc, "key") {
			return DuplicateSystem
		}
	}
	return DuplicateExact
}

func duplicateSeverity(count, totalRows int) string {
	if totalRows == 0 {
		return SeverityLow
	}
	ratio := float64(count) / float64(totalRows)
	switch {
	case ratio > 0.05:
		return SeverityHigh
	case ratio > 0.01:
		return SeverityMedium
	default:
		return SeverityLow
	}
}
