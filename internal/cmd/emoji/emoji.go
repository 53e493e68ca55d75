// Package emoji provides symbol constants for CLI output.
// These symbols create a consistent visual language across all command-line commands.
package emoji

// Symbol constants for CLI output provide a consistent visual language across
// commands. They mark run outcomes and status lines in terminal output.
const (
	// Success represents successful completion of an operation.
	// Used for: applied updates, written reports, passing checks.
	Success = "✓"

	// Error represents failures or missing required configuration.
	// Used for: fetch errors, rejected updates, missing portal settings.
	Error = "✗"

	// Warning represents warnings or non-critical issues.
	// Used for: empty input files, skipped rows.
	Warning = "!"

	// Optional represents optional or absent values.
	// Used for: empty report columns, orders needing no update.
	Optional = "-"

	// Unknown represents unknown or indeterminate states.
	// Used for: unrecognized statuses.
	Unknown = "?"

	// Info represents informational messages.
	// Used for: general information, tips, context.
	Info = "i"
)
