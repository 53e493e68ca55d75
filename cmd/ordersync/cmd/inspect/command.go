// Package inspect provides commands for spot-checking portal records.
package inspect

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/caretide/ordersync/pkg/reconciler"
)

// AppContext defines the interface that inspect commands need from the app.
// This allows for better testability and decoupling from the full app.
type AppContext interface {
	Portal() (reconciler.Portal, error)
	Logger() *zerolog.Logger
	OutputFormat() string
}

// NewCommand creates the inspect command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "inspect [order-id]",
		GroupID: "core",
		Short:   "Fetch and display portal records",
		Args:    cobra.MaximumNArgs(1),
		Long: `Inspect fetches a single record from the care portal and displays it.
Useful for spot-checking an order before or after a reconciliation run.

A bare order ID is shorthand for 'inspect order'.`,
		Example: `  ordersync inspect ORD-1001               # Show an order
  ordersync inspect order ORD-1001          # Same thing
  ordersync inspect patient PAT-42          # Show a patient record
  ordersync inspect ORD-1001 -o json        # Raw JSON for scripting`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bare order ID shorthand
			if len(args) == 1 {
				return runOrder(cmd, app, args[0])
			}
			return cmd.Help()
		},
	}

	// Add subcommands using the app context
	cmd.AddCommand(NewOrderCommand(app))
	cmd.AddCommand(NewPatientCommand(app))

	return cmd
}
