package cleaning

import (
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/datacleaner-cli/internal/dataset"
)

// Log is the audit trail of one cleaning run.
type Log struct {
	RunID         string    `json:"runId"`
	Timestamp     time.Time `json:"timestamp"`
	OriginalRows  int       `json:"originalRows"`
	RowsRemoved   int       `json:"rowsRemoved"`
	ValuesImputed int       `json:"valuesImputed"`
	ColumnsAdded  int       `json:"columnsAdded"`
	Operations    []string  `json:"operations"`
	FinalRows     int       `json:"finalRows"`
	// Error is set when the run failed and the input was returned unchanged.
	Error string `json:"error,omitempty"`
}

// NewLog starts a log for a dataset of originalRows rows.
func NewLog(originalRows int) *Log {
	return &Log{
		RunID:        uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		OriginalRows: originalRows,
		Operations:   []string{},
	}
}

func (l *Log) add(op string) { l.Operations = append(l.Operations, op) }

// Result pairs the cleaned dataset with its log.
type Result struct {
	Data *dataset.Dataset `json:"-"`
	Log  *Log             `json:"log"`
}
