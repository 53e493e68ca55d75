// Package reconcile implements the reconcile command: the spreadsheet-driven
// run that fills missing company identifiers on care portal orders.
package reconcile

import (
	"context"
	"os"

	"github.com/caretide/ordersync/internal/appcontext"
	"github.com/caretide/ordersync/internal/sheet"
	"github.com/caretide/ordersync/internal/tools/docs"
	"github.com/caretide/ordersync/pkg/constants"
	"github.com/caretide/ordersync/pkg/errors"
	"github.com/caretide/ordersync/pkg/logging"
	"github.com/caretide/ordersync/pkg/reconciler"
)

// ExecuteReconcile orchestrates a full reconciliation run: read order IDs,
// process every order, write the results workbook, and render the report.
func ExecuteReconcile(ctx context.Context, app appcontext.Interface, flags *Flags) error {
	ctx = logging.WithLogger(ctx, app.Logger())

	input := flags.Input
	if input == "" {
		input = app.InputFile()
	}

	orderIDs, err := sheet.ReadOrderIDs(input)
	if err != nil {
		return err
	}
	if len(orderIDs) == 0 {
		// Nothing to do. Abort before touching the portal; no report is written.
		return errors.NewValidationError("input", input, "spreadsheet contains no order IDs")
	}

	rec, err := app.Reconciler(buildReconcilerOptions(flags)...)
	if err != nil {
		return err
	}

	report := rec.Run(ctx, orderIDs)

	outputDir := flags.OutputDir
	if outputDir == "" {
		outputDir = app.OutputDir()
	}

	reportPath, err := sheet.NewWriter(outputDir).WriteReport(report)
	if err != nil {
		return err
	}

	if flags.Summary != "" {
		if err := writeSummaryFile(flags.Summary, report); err != nil {
			return err
		}
	}

	return printReport(app, report, reportPath)
}

// buildReconcilerOptions maps command flags onto reconciler options.
func buildReconcilerOptions(flags *Flags) []reconciler.Option {
	var opts []reconciler.Option

	if flags.DryRun {
		opts = append(opts, reconciler.WithDryRun(true))
	}

	return opts
}

// writeSummaryFile renders the markdown run summary to the given path.
func writeSummaryFile(path string, report *reconciler.Report) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.FilePermissions)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}

	if err := docs.WriteRunSummary(f, report); err != nil {
		_ = f.Close()
		return err
	}

	return errors.WrapIO("close", path, f.Close())
}
