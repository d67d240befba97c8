package cmd

import (
	"fmt"
	"io"
	"time"

	"golang.org/x/time/rate"

	"github.com/KaramelBytes/datacleaner-cli/internal/batch"
	"github.com/KaramelBytes/datacleaner-cli/internal/cleaning"
)

const progressInterval = 250 * time.Millisecond

// chunkProgress prints chunk progress lines, at most one per interval
// except for the final chunk which is always shown.
func chunkProgress(w io.Writer, label string) batch.ProgressFunc {
	s := &rate.Sometimes{First: 1, Interval: progressInterval}
	return func(p batch.Progress) {
		line := func() {
			fmt.Fprintf(w, "  %s: %d/%d rows (chunk %d)\n", label, p.Done, p.Total, p.Chunk)
		}
		if p.Done >= p.Total {
			line()
			return
		}
		s.Do(line)
	}
}

// stepProgress is chunkProgress for the cleaning pipeline, labelled by step.
func stepProgress(w io.Writer) cleaning.ProgressFunc {
	s := &rate.Sometimes{First: 1, Interval: progressInterval}
	return func(step string, p batch.Progress) {
		line := func() {
			fmt.Fprintf(w, "  %s: %d/%d rows (chunk %d)\n", step, p.Done, p.Total, p.Chunk)
		}
		if p.Done >= p.Total {
			line()
			return
		}
		s.Do(line)
	}
}
