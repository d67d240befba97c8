package dataset

import (
	"strconv"
	"strings"
)

// Record maps a column name to its raw string value. An empty string is a
// missing value; a key absent from the map reads as missing too.
type Record map[string]string

// Dataset is an ordered sequence of records sharing one column set.
type Dataset struct {
	// Columns holds the display order. Columns added by cleaning are appended.
	Columns []string
	Records []Record
}

// New builds a dataset over the given columns and records.
func New(columns []string, records []Record) *Dataset {
	return &Dataset{Columns: columns, Records: records}
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// Empty reports whether the dataset has no records.
func (d *Dataset) Empty() bool { return d.Len() == 0 }

// HasColumn reports whether name is one of the dataset columns.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Values returns the raw values of a column in row order.
func (d *Dataset) Values(column string) []string {
	out := make([]string, len(d.Records))
	for i, r := range d.Records {
		out[i] = r[column]
	}
	return out
}

// Clone returns a deep copy; records can be modified without touching d.
func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return nil
	}
	cols := make([]string, len(d.Columns))
	copy(cols, d.Columns)
	recs := make([]Record, len(d.Records))
	for i, r := range d.Records {
		recs[i] = r.Clone()
	}
	return &Dataset{Columns: cols, Records: recs}
}

// Clone copies a record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Key returns a string that is equal for two records exactly when all the
// given columns hold equal values.
func (r Record) Key(columns []string) string {
	var b strings.Builder
	for i, c := range columns {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Quote(r[c]))
	}
	return b.String()
}

// IsMissing reports whether a raw value counts as missing.
func IsMissing(v string) bool { return v == "" }

// NonMissing filters out missing values, keeping order.
func NonMissing(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !IsMissing(v) {
			out = append(out, v)
		}
	}
	return out
}
