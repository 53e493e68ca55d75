package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/caretide/ordersync/pkg/errors"
	"github.com/caretide/ordersync/pkg/reconciler"
)

// Mock implements Interface for testing.
// Set the function fields to control behavior; unset fields fall back to
// simple defaults so tests only configure what they care about.
type Mock struct {
	PortalFunc       func() (reconciler.Portal, error)
	ReconcilerFunc   func(opts ...reconciler.Option) (reconciler.Reconciler, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	QuietFunc        func() bool
	InputFileFunc    func() string
	OutputDirFunc    func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Portal returns the mock portal client.
func (m *Mock) Portal() (reconciler.Portal, error) {
	if m.PortalFunc != nil {
		return m.PortalFunc()
	}
	return nil, &errors.ValidationError{Field: "portal", Message: "no mock portal configured"}
}

// Reconciler returns the mock reconciler. When only PortalFunc is set, a real
// reconciler is built around the mock portal so command tests exercise the
// genuine run logic.
func (m *Mock) Reconciler(opts ...reconciler.Option) (reconciler.Reconciler, error) {
	if m.ReconcilerFunc != nil {
		return m.ReconcilerFunc(opts...)
	}
	portal, err := m.Portal()
	if err != nil {
		return nil, err
	}
	return reconciler.New(append([]reconciler.Option{reconciler.WithPortal(portal)}, opts...)...)
}

// Logger returns a no-op logger unless overridden.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the mock output format.
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Quiet returns the mock quiet setting.
func (m *Mock) Quiet() bool {
	if m.QuietFunc != nil {
		return m.QuietFunc()
	}
	return false
}

// InputFile returns the mock input file path.
func (m *Mock) InputFile() string {
	if m.InputFileFunc != nil {
		return m.InputFileFunc()
	}
	return ""
}

// OutputDir returns the mock output directory.
func (m *Mock) OutputDir() string {
	if m.OutputDirFunc != nil {
		return m.OutputDirFunc()
	}
	return ""
}

// Version returns the mock version.
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns the mock commit hash.
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns the mock build date.
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns the mock builder identifier.
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Compile-time check that Mock implements Interface.
var _ Interface = (*Mock)(nil)
