package logging_test

import (
	"context"
	"testing"

	"github.com/caretide/ordersync/pkg/logging"
	"github.com/stretchr/testify/assert"
)

func TestContextFunctions(t *testing.T) {
	t.Run("WithOrder adds order to context", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithOrder(ctx, "ORD-1001")

		// Extract logger and verify it has the order field
		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("WithPatient adds patient to context", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithPatient(ctx, "PAT-42")

		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("WithOperation adds operation to context", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithOperation(ctx, "fetch_order")

		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("WithRunID adds run ID to context", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithRunID(ctx, "9f6f1c3a")

		assert.Equal(t, "9f6f1c3a", logging.RunID(ctx))
		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("WithFields adds custom fields to context", func(t *testing.T) {
		ctx := context.Background()
		fields := map[string]interface{}{
			"row":    3,
			"status": "success",
		}
		ctx = logging.WithFields(ctx, fields)

		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("FromContext returns logger from context", func(t *testing.T) {
		ctx := context.Background()

		// First call should create a new logger
		logger1 := logging.FromContext(ctx)
		assert.NotNil(t, logger1)

		// Add order and get logger again
		ctx = logging.WithOrder(ctx, "ORD-2002")
		logger2 := logging.FromContext(ctx)
		assert.NotNil(t, logger2)
	})

	t.Run("Ctx extracts logger from context", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithOrder(ctx, "ORD-3003")

		logger := logging.Ctx(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("chaining context functions", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithRunID(ctx, "run-1")
		ctx = logging.WithOrder(ctx, "ORD-1001")
		ctx = logging.WithOperation(ctx, "reconcile")
		ctx = logging.WithPatient(ctx, "PAT-42")

		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})
}
