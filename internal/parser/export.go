package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/KaramelBytes/datacleaner-cli/internal/dataset"
)

// ToCSV renders the dataset with a header line. Values containing a comma
// are wrapped in double quotes; embedded quotes are written as-is.
func ToCSV(d *dataset.Dataset) string {
	if d.Empty() {
		return ""
	}
	lines := make([]string, 0, d.Len()+1)
	lines = append(lines, strings.Join(d.Columns, ","))
	vals := make([]string, len(d.Columns))
	for _, r := range d.Records {
		for i, c := range d.Columns {
			v := r[c]
			if strings.Contains(v, ",") {
				v = `"` + v + `"`
			}
			vals[i] = v
		}
		lines = append(lines, strings.Join(vals, ","))
	}
	return strings.Join(lines, "\n")
}

// ToJSON renders the records as an indented JSON array, keeping column order
// inside each object.
func ToJSON(d *dataset.Dataset) ([]byte, error) {
	rows := make([]orderedRecord, 0, d.Len())
	for _, r := range d.Records {
		rows = append(rows, orderedRecord{cols: d.Columns, rec: r})
	}
	b, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	return b, nil
}

type orderedRecord struct {
	cols []string
	rec  dataset.Record
}

func (o orderedRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range o.cols {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(o.rec[c])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
