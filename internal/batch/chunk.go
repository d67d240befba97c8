package batch

import (
	"context"
	"fmt"
)

const (
	MinChunkSize = 1000
	MaxChunkSize = 5000
)

// Window is a half-open row range [Start, End).
type Window struct {
	Start int
	End   int
}

// Progress describes how far a chunked operation has come.
type Progress struct {
	Done  int // rows processed so far
	Total int
	Chunk int // 1-based index of the chunk just finished
}

// ProgressFunc receives a Progress after every chunk. It may be nil.
type ProgressFunc func(Progress)

// ChunkSize picks the adaptive chunk size for n rows: a tenth of the rows,
// kept between MinChunkSize and MaxChunkSize.
func ChunkSize(n int) int {
	return min(MaxChunkSize, max(MinChunkSize, n/10))
}

// Windows splits n rows into consecutive windows of up to size rows.
func Windows(n, size int) []Window {
	if size <= 0 {
		size = ChunkSize(n)
	}
	var out []Window
	for start := 0; start < n; start += size {
		out = append(out, Window{Start: start, End: min(n, start+size)})
	}
	return out
}

// Each calls fn for every window over n rows in row order. The context is
// checked before each chunk; progress is reported after each one.
func Each(ctx context.Context, n, size int, fn func(Window) error, progress ProgressFunc) error {
	for i, w := range Windows(n, size) {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("chunk %d: %w", i+1, err)
		}
		if err := fn(w); err != nil {
			return err
		}
		if progress != nil {
			progress(Progress{Done: w.End, Total: n, Chunk: i + 1})
		}
	}
	return nil
}
