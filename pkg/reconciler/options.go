package reconciler

import (
	"github.com/caretide/ordersync/pkg/errors"
	"github.com/caretide/ordersync/pkg/orders"
)

// Options configures a reconciler.
type options struct {
	portal      Portal
	knownFields []string
	dryRun      bool
}

func defaultOptions() *options {
	return &options{
		knownFields: orders.DefaultKnownFields(),
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	options, err := defaultOptions().apply(opts...)
	if err != nil {
		return nil, err
	}
	if options.portal == nil {
		return nil, &errors.ValidationError{
			Field:   "portal",
			Message: "is required",
		}
	}
	return options, nil
}

// WithPortal sets the portal client the reconciler reads and writes through.
func WithPortal(portal Portal) Option {
	return func(r *options) error {
		if portal == nil {
			return &errors.ValidationError{
				Field:   "portal",
				Message: "cannot be nil",
			}
		}
		r.portal = portal
		return nil
	}
}

// WithKnownFields overrides the field list the payload re-merge protects.
func WithKnownFields(fields []string) Option {
	return func(r *options) error {
		if len(fields) == 0 {
			return &errors.ValidationError{
				Field:   "knownFields",
				Message: "cannot be empty",
			}
		}
		r.knownFields = fields
		return nil
	}
}

// WithDryRun skips order updates while still reporting what would change.
func WithDryRun(enabled bool) Option {
	return func(r *options) error {
		r.dryRun = enabled
		return nil
	}
}
