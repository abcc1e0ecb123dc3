package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"sortd/internal/resolve"
)

// WriteCSV writes the scan results as a CSV table with one row per file.
func WriteCSV(w io.Writer, outcomes []resolve.Outcome) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"source", "target", "status"}); err != nil {
		return err
	}
	for _, o := range outcomes {
		if err := cw.Write([]string{o.File.Path, o.Path, o.Status}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV writes the scan results to a file at path, creating or
// truncating it.
func ExportCSV(path string, outcomes []resolve.Outcome) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, outcomes); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// PrintSummary writes an aligned source → target listing followed by
// per-status counts.
func PrintSummary(w io.Writer, outcomes []resolve.Outcome) {
	width := 0
	for _, o := range outcomes {
		if n := len(o.File.RelPath); n > width {
			width = n
		}
	}
	for _, o := range outcomes {
		fmt.Fprintf(w, "  %-*s → %s (%s)\n", width, o.File.RelPath, o.Path, o.Status)
	}

	counts := map[string]int{}
	var order []string
	for _, o := range outcomes {
		if _, seen := counts[o.Status]; !seen {
			order = append(order, o.Status)
		}
		counts[o.Status]++
	}

	fmt.Fprintf(w, "\n📊 %d files resolved\n", len(outcomes))
	for _, status := range order {
		fmt.Fprintf(w, "  -> %s: %d\n", status, counts[status])
	}
}
