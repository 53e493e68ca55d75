package inspect_test

import (
	"context"
	"testing"

	"github.com/caretide/ordersync/cmd/ordersync/cmd/inspect"
	"github.com/caretide/ordersync/internal/appcontext"
	"github.com/caretide/ordersync/pkg/errors"
	"github.com/caretide/ordersync/pkg/orders"
	"github.com/caretide/ordersync/pkg/reconciler"
)

// fakePortal serves a single order and patient.
type fakePortal struct{}

func (fakePortal) GetOrder(_ context.Context, orderID string) (orders.Order, error) {
	if orderID != "O-1" {
		return nil, errors.NewNotFoundError("order", orderID)
	}
	return orders.Order{"orderId": "O-1", "companyId": "C5"}, nil
}

func (fakePortal) GetPatient(_ context.Context, patientID string) (orders.Patient, error) {
	if patientID != "P1" {
		return nil, errors.NewNotFoundError("patient", patientID)
	}
	return orders.Patient{"id": "P1", "firstName": "Alma"}, nil
}

func (fakePortal) UpdateOrder(_ context.Context, _ string, _ orders.Order) error {
	return nil
}

// Helper function to run the inspect command with the given arguments.
func runInspect(t *testing.T, args ...string) error {
	t.Helper()

	mock := &appcontext.Mock{
		PortalFunc: func() (reconciler.Portal, error) {
			return fakePortal{}, nil
		},
		OutputFormatFunc: func() string { return "json" },
	}

	cmd := inspect.NewCommand(mock)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestInspectOrder(t *testing.T) {
	if err := runInspect(t, "order", "O-1"); err != nil {
		t.Fatalf("inspect order failed: %v", err)
	}
}

func TestInspectOrderShorthand(t *testing.T) {
	if err := runInspect(t, "O-1"); err != nil {
		t.Fatalf("inspect with bare order ID failed: %v", err)
	}
}

func TestInspectOrderNotFound(t *testing.T) {
	err := runInspect(t, "order", "O-404")
	if err == nil {
		t.Fatal("inspect order succeeded for unknown ID, expected error")
	}
	if !errors.IsNotFound(err) {
		t.Errorf("error = %v, want not found", err)
	}
}

func TestInspectPatient(t *testing.T) {
	if err := runInspect(t, "patient", "P1"); err != nil {
		t.Fatalf("inspect patient failed: %v", err)
	}
}

func TestInspectPatientNotFound(t *testing.T) {
	if err := runInspect(t, "patient", "P-404"); err == nil {
		t.Fatal("inspect patient succeeded for unknown ID, expected error")
	}
}
