package output

import (
	"fmt"
	"io"

	"github.com/caretide/ordersync/internal/cmd/table"
	"github.com/caretide/ordersync/pkg/reconciler"
)

// FormatResults writes reconcile results in the requested format. Table
// formats render through table.Results; JSON and YAML serialize the raw
// records.
func FormatResults(w io.Writer, results []reconciler.Result, format Format) error {
	formatter := NewFormatter(format)

	var data any
	switch format {
	case FormatTable, FormatWide, "":
		data = table.Results(results, format == FormatWide)
	default:
		data = results
	}

	return formatter.Format(w, data)
}

// FormatReport writes a whole run report: for table formats the per-order
// rows followed by the run summary, otherwise the report object itself.
func FormatReport(w io.Writer, report *reconciler.Report, format Format) error {
	switch format {
	case FormatTable, FormatWide, "":
		if err := FormatResults(w, report.Results, format); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		return NewFormatter(format).Format(w, table.Summary(report))
	default:
		return NewFormatter(format).Format(w, report)
	}
}
