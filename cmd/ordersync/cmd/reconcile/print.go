package reconcile

import (
	"fmt"
	"os"

	"github.com/caretide/ordersync/internal/appcontext"
	"github.com/caretide/ordersync/internal/cmd/emoji"
	"github.com/caretide/ordersync/internal/cmd/output"
	"github.com/caretide/ordersync/pkg/reconciler"
)

// printReport renders the run report to the console in the configured format.
// Structured formats get the whole report on stdout for scripting; table
// formats get the per-order table, the summary table, and a pointer to the
// written workbook on stderr.
func printReport(app appcontext.Interface, report *reconciler.Report, reportPath string) error {
	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return err
	}

	if format == output.FormatJSON || format == output.FormatYAML {
		return output.FormatReport(os.Stdout, report, format)
	}

	if app.Quiet() {
		fmt.Println(report.Summary())
		return nil
	}

	if err := output.FormatReport(os.Stdout, report, format); err != nil {
		return err
	}

	if reportPath != "" {
		fmt.Fprintf(os.Stderr, "\n%s Report written to %s\n", emoji.Success, reportPath)
	}
	if report.HasFailures() {
		fmt.Fprintf(os.Stderr, "%s Some orders failed; see the report for details\n", emoji.Warning)
	}

	return nil
}
