package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"30", 30, true},
		{" 4.5 ", 4.5, true},
		{"-1e3", -1000, true},
		{".5", 0.5, true},
		{"", 0, false},
		{"   ", 0, false},
		{"abc", 0, false},
		{"12abc", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"1_000", 0, false},
		{"0x1p4", 0, false},
		{"0X10", 0, false},
		{"+5.", 5, true},
		{"2E3", 2000, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseNumber(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "30", FormatNumber(30))
	assert.Equal(t, "0.1", FormatNumber(0.1))
	assert.Equal(t, "0", FormatNumber(-0.0))
	assert.Equal(t, "1000", FormatNumber(1e3))
	assert.Equal(t, "1e+21", FormatNumber(1e21))
	assert.Equal(t, "1e-7", FormatNumber(1e-7))
	assert.Equal(t, "33.333333333333336", FormatNumber(100.0/3))
}

func TestCanonical(t *testing.T) {
	assert.Equal(t, "7", Canonical("007"))
	assert.Equal(t, "30", Canonical("30.0"))
	assert.Equal(t, "hello", Canonical("hello"))
	assert.Equal(t, "", Canonical(""))
	assert.Equal(t, "100_200", Canonical("100_200"))
}

func TestParseDate(t *testing.T) {
	for _, in := range []string{"2024-01-15", "01/15/2024", "2024/01/15", "Jan 15, 2024", "2024-01-15T10:00:00Z"} {
		ts, ok := ParseDate(in)
		require.True(t, ok, in)
		assert.Equal(t, 2024, ts.Year(), in)
		assert.Equal(t, 15, ts.Day(), in)
	}
	_, ok := ParseDate("not a date")
	assert.False(t, ok)
	_, ok = ParseDate("42")
	assert.False(t, ok)
}

func TestCloneIsDeep(t *testing.T) {
	d := New([]string{"a"}, []Record{{"a": "1"}})
	c := d.Clone()
	c.Records[0]["a"] = "2"
	c.Columns[0] = "b"
	assert.Equal(t, "1", d.Records[0]["a"])
	assert.Equal(t, "a", d.Columns[0])
}

func TestRecordKey(t *testing.T) {
	cols := []string{"a", "b"}
	r1 := Record{"a": "x,y", "b": ""}
	r2 := Record{"a": "x", "b": "y,"}
	assert.NotEqual(t, r1.Key(cols), r2.Key(cols))
	assert.Equal(t, r1.Key(cols), r1.Clone().Key(cols))
}
