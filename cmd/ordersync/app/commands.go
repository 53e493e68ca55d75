package app

import (
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/caretide/ordersync/cmd/ordersync/cmd/inspect"
	"github.com/caretide/ordersync/cmd/ordersync/cmd/reconcile"
	"github.com/caretide/ordersync/pkg/constants"
	"github.com/caretide/ordersync/pkg/errors"
)

// registerCommands registers all subcommands with the root command.
// This is where we wire up all the command handlers.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(reconcile.NewCommand(a))
	rootCmd.AddCommand(inspect.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(a.newVersionCommand())
	rootCmd.AddCommand(a.newManCommand())
	rootCmd.AddCommand(a.newDocsCommand())
}

// newVersionCommand creates the version command.
func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("ordersync %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
				cmd.Printf("  go:       %s\n", runtime.Version())
				cmd.Printf("  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			}
		},
	}
}

// newManCommand creates the hidden man page generator.
func (a *App) newManCommand() *cobra.Command {
	return &cobra.Command{
		Use:    "man",
		Short:  "Generate man page",
		Long:   `Generate man page for the ordersync CLI tool.`,
		Hidden: true, // Hide from help output since it's mainly for internal use
		RunE: func(cmd *cobra.Command, _ []string) error {
			header := &doc.GenManHeader{
				Title:   "ORDERSYNC",
				Section: "1",
				Source:  "ordersync",
				Manual:  "ordersync Manual",
			}
			return doc.GenMan(cmd.Root(), header, os.Stdout)
		},
	}
}

// newDocsCommand creates the hidden markdown reference generator.
func (a *App) newDocsCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:    "docs",
		Short:  "Generate markdown CLI reference",
		Hidden: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
				return errors.WrapIO("create", dir, err)
			}
			if err := doc.GenMarkdownTree(cmd.Root(), dir); err != nil {
				return errors.WrapIO("write", dir, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "docs/cli", "directory to write markdown files to")

	return cmd
}
