package reconcile

import (
	"github.com/spf13/cobra"

	"github.com/caretide/ordersync/internal/appcontext"
)

// Flags holds the reconcile command flags.
type Flags struct {
	Input     string
	OutputDir string
	DryRun    bool
	Summary   string
}

// NewCommand creates the reconcile command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:     "reconcile",
		GroupID: "core",
		Short:   "Fill missing company identifiers on portal orders",
		Long: `Reconcile reads order IDs from the input spreadsheet and processes them
one at a time:

1. Fetch the order from the care portal
2. Skip it when companyId and pgCompanyId are both present
3. Otherwise fetch the related patient and take the identifiers from its
   agency record
4. Update the order with only the fields that were missing
5. Record the outcome

Orders are processed strictly in input order and every row of the input
produces one row in the timestamped results workbook. A failure on one
order never stops the run.

The command exits non-zero only when the run itself cannot start: missing
portal configuration, an unreadable spreadsheet, or a spreadsheet with no
order IDs. Per-order failures are reported in the workbook instead.`,
		Example: `  ordersync reconcile                       # Process the configured spreadsheet
  ordersync reconcile -i batch_0425.xlsx    # Process a specific spreadsheet
  ordersync reconcile --dry-run             # Evaluate without updating the portal
  ordersync reconcile --summary run.md      # Also write a markdown summary
  ordersync reconcile -o json > run.json    # Machine-readable report`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return ExecuteReconcile(ctx, app, flags)
		},
	}

	// Add reconcile-specific flags
	flags = addReconcileFlags(cmd)

	return cmd
}

// addReconcileFlags registers the reconcile flags and returns the bound struct.
func addReconcileFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{}

	cmd.Flags().StringVarP(&flags.Input, "input", "i", "",
		"order spreadsheet to read (default: configured input_file)")
	cmd.Flags().StringVar(&flags.OutputDir, "output-dir", "",
		"directory for the results workbook (default: configured output_dir)")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false,
		"evaluate every order but skip portal updates")
	cmd.Flags().StringVar(&flags.Summary, "summary", "",
		"also write a markdown run summary to this path")

	return flags
}
