package bench

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// WriteCSV writes results with a header row.
func WriteCSV(w io.Writer, results []Result) error {
	if err := gocsv.Marshal(results, w); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	return nil
}
