package inspect

import (
	"github.com/spf13/cobra"

	"github.com/caretide/ordersync/pkg/logging"
)

// NewPatientCommand creates the inspect patient subcommand.
func NewPatientCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:     "patient <patient-id>",
		Short:   "Fetch and display one patient record",
		Aliases: []string{"patients"},
		Args:    cobra.ExactArgs(1),
		Example: `  ordersync inspect patient PAT-42
  ordersync inspect patient PAT-42 -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.WithLogger(cmd.Context(), app.Logger())

			client, err := app.Portal()
			if err != nil {
				return err
			}

			patient, err := client.GetPatient(ctx, args[0])
			if err != nil {
				return err
			}

			return renderDocument(app, patient)
		},
	}
}
