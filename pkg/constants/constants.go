// Package constants provides shared constants used throughout the ordersync
// codebase. This includes timeouts, file permissions, and naming conventions
// that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to the
	// care portal. The reconciler relies on this client default and applies
	// no per-call timeouts of its own.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultTimeout is the standard timeout for general operations
	DefaultTimeout = 10 * time.Second

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Cache constants
const (
	// PatientCacheTTL is the default time-to-live for cached patient
	// responses when the patient cache is enabled.
	PatientCacheTTL = 15 * time.Minute

	// CacheCleanupInterval is how often to clean expired cache entries
	CacheCleanupInterval = 5 * time.Minute
)

// Input constants
const (
	// DefaultInputFile is the order spreadsheet read when no input path is
	// configured.
	DefaultInputFile = "orders.xlsx"
)

// Report constants define the run report naming convention
const (
	// ReportFilePrefix is the prefix for generated result workbooks.
	ReportFilePrefix = "order_update_results_"

	// ReportTimestampFormat is the wall-clock layout embedded in report
	// filenames, e.g. order_update_results_20240131_154500.xlsx.
	ReportTimestampFormat = "20060102_150405"

	// ReportFileExtension is the extension for generated result workbooks.
	ReportFileExtension = ".xlsx"
)
