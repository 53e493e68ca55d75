package inspect

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/caretide/ordersync/internal/cmd/output"
	"github.com/caretide/ordersync/internal/cmd/table"
	"github.com/caretide/ordersync/pkg/logging"
)

// NewOrderCommand creates the inspect order subcommand.
func NewOrderCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:     "order <order-id>",
		Short:   "Fetch and display one order",
		Aliases: []string{"orders"},
		Args:    cobra.ExactArgs(1),
		Example: `  ordersync inspect order ORD-1001
  ordersync inspect order ORD-1001 -o yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrder(cmd, app, args[0])
		},
	}
}

// runOrder fetches one order and renders it in the configured format.
func runOrder(cmd *cobra.Command, app AppContext, orderID string) error {
	ctx := logging.WithLogger(cmd.Context(), app.Logger())

	client, err := app.Portal()
	if err != nil {
		return err
	}

	order, err := client.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}

	return renderDocument(app, order)
}

// renderDocument displays a fetched portal document in the configured format.
// Table output gets a sorted Field/Value view; structured formats get the
// raw decoded document.
func renderDocument(app AppContext, doc map[string]any) error {
	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return err
	}

	switch format {
	case output.FormatTable, output.FormatWide, "":
		formatter := output.NewFormatter(output.FormatTable)
		return formatter.Format(os.Stdout, table.Document(doc, format == output.FormatWide))
	default:
		return output.NewFormatter(format).Format(os.Stdout, doc)
	}
}
