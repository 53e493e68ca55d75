// Package appcontext provides the shared application context interface used by
// all commands. Commands depend on this interface instead of the concrete app
// type, which keeps them testable with the Mock in this package.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/caretide/ordersync/pkg/reconciler"
)

// Interface provides application context to command implementations.
// It exposes the configured portal client, reconciler construction, the
// logger, and the configuration values commands need at execution time.
type Interface interface {
	// Portal returns the configured portal API client.
	Portal() (reconciler.Portal, error)

	// Reconciler returns a reconciler wired to the portal client and the
	// configured known order fields. Additional options are applied on top,
	// so commands can layer per-run settings such as dry-run.
	Reconciler(opts ...reconciler.Option) (reconciler.Reconciler, error)

	// Logger returns the application logger.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml).
	OutputFormat() string

	// Quiet reports whether minimal console output was requested.
	Quiet() bool

	// InputFile returns the configured order spreadsheet path.
	InputFile() string

	// OutputDir returns the directory where run reports are written.
	OutputDir() string

	// Version returns the application version.
	Version() string

	// Commit returns the git commit hash of the build.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the builder identifier.
	BuiltBy() string
}
