package analysis

import "errors"

var (
	// ErrEmptyDataset is returned when an operation needs at least one record.
	ErrEmptyDataset = errors.New("dataset has no records")
	// ErrNoValues is returned when a column holds no non-missing values.
	ErrNoValues = errors.New("column has no values")
	// ErrUnknownColumn is returned for a column name absent from the dataset.
	ErrUnknownColumn = errors.New("unknown column")
)
