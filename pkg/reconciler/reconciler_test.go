package reconciler_test

import (
	"context"
	"strings"
	"testing"

	"github.com/caretide/ordersync/pkg/errors"
	"github.com/caretide/ordersync/pkg/logging"
	"github.com/caretide/ordersync/pkg/orders"
	"github.com/caretide/ordersync/pkg/reconciler"
)

// fakePortal is an in-memory Portal with per-ID failure injection. Updates
// are applied to the stored order so a re-fetch observes them, like the
// real portal would.
type fakePortal struct {
	orders      map[string]orders.Order
	patients    map[string]orders.Patient
	orderErrs   map[string]error
	patientErrs map[string]error
	updateErrs  map[string]error

	patientCalls int
	updates      []appliedUpdate
}

type appliedUpdate struct {
	orderID string
	payload orders.Order
}

func newFakePortal() *fakePortal {
	return &fakePortal{
		orders:      map[string]orders.Order{},
		patients:    map[string]orders.Patient{},
		orderErrs:   map[string]error{},
		patientErrs: map[string]error{},
		updateErrs:  map[string]error{},
	}
}

func (f *fakePortal) GetOrder(_ context.Context, orderID string) (orders.Order, error) {
	if err := f.orderErrs[orderID]; err != nil {
		return nil, err
	}
	o, ok := f.orders[orderID]
	if !ok {
		return nil, errors.NewNotFoundError("order", orderID)
	}
	return o.Clone(), nil
}

func (f *fakePortal) GetPatient(_ context.Context, patientID string) (orders.Patient, error) {
	f.patientCalls++
	if err := f.patientErrs[patientID]; err != nil {
		return nil, err
	}
	p, ok := f.patients[patientID]
	if !ok {
		return nil, errors.NewNotFoundError("patient", patientID)
	}
	return p, nil
}

func (f *fakePortal) UpdateOrder(_ context.Context, orderID string, payload orders.Order) error {
	if err := f.updateErrs[orderID]; err != nil {
		return err
	}
	f.updates = append(f.updates, appliedUpdate{orderID: orderID, payload: payload})
	f.orders[orderID] = payload.Clone()
	return nil
}

// Helper function to create an order missing its companyId.
func sampleOrder() orders.Order {
	return orders.Order{
		"orderId":     "O-1001",
		"orderNumber": "SO-2291",
		"orderStatus": "active",
		"companyId":   nil,
		"pgCompanyId": "PG9",
		"patientId":   "P1",
		"physician":   map[string]any{"id": "DR-7", "name": "Dr. Osei"},
		"documents":   []any{"consent.pdf", "f2f.pdf"},
	}
}

// Helper function to create a patient carrying both agency identifiers.
func samplePatient() orders.Patient {
	return orders.Patient{
		"id":        "P1",
		"firstName": "Alma",
		"agencyInfo": map[string]any{
			"companyId":   "C5",
			"pgcompanyID": "PG9",
		},
	}
}

func newTestReconciler(t *testing.T, portal reconciler.Portal, opts ...reconciler.Option) reconciler.Reconciler {
	t.Helper()
	opts = append([]reconciler.Option{reconciler.WithPortal(portal)}, opts...)
	r, err := reconciler.New(opts...)
	if err != nil {
		t.Fatalf("Failed to create reconciler: %v", err)
	}
	return r
}

func quietContext() context.Context {
	return logging.WithLogger(context.Background(), logging.NewNopLogger())
}

func TestReconcileFillsMissingCompanyID(t *testing.T) {
	portal := newFakePortal()
	portal.orders["O-1001"] = sampleOrder()
	portal.patients["P1"] = samplePatient()

	r := newTestReconciler(t, portal)
	res := r.Reconcile(quietContext(), "O-1001")

	if res.Status != reconciler.StatusSuccess {
		t.Fatalf("Expected success, got %s (%s)", res.Status, res.Message)
	}
	if !res.Updated {
		t.Error("Expected Updated to be true")
	}
	if res.Message != "set companyId=C5" {
		t.Errorf("Unexpected message: %q", res.Message)
	}
	if res.NewCompanyID != "C5" {
		t.Errorf("Expected NewCompanyID C5, got %q", res.NewCompanyID)
	}
	// The pgCompanyId was never written, but the patient candidate is still
	// reported. Reporting has always shown the patient values on success.
	if res.NewPgCompanyID != "PG9" {
		t.Errorf("Expected NewPgCompanyID PG9, got %q", res.NewPgCompanyID)
	}

	if len(portal.updates) != 1 {
		t.Fatalf("Expected 1 update, got %d", len(portal.updates))
	}
	payload := portal.updates[0].payload
	if got := payload.CompanyID(); got != "C5" {
		t.Errorf("Payload companyId = %q, want C5", got)
	}
	if got := payload.PgCompanyID(); got != "PG9" {
		t.Errorf("Payload pgCompanyId = %q, want PG9 (must not be overwritten)", got)
	}
	if got := payload.PatientID(); got != "P1" {
		t.Errorf("Payload patientId = %q, want P1", got)
	}
	// Fields the reconciler does not understand ride along untouched.
	if _, ok := payload["physician"]; !ok {
		t.Error("Payload lost the physician object")
	}
	if docs, ok := payload["documents"].([]any); !ok || len(docs) != 2 {
		t.Errorf("Payload documents = %v, want 2 entries", payload["documents"])
	}
	if payload["orderNumber"] != "SO-2291" {
		t.Errorf("Payload orderNumber = %v, want SO-2291", payload["orderNumber"])
	}
}

func TestReconcileFillsBothFields(t *testing.T) {
	portal := newFakePortal()
	order := sampleOrder()
	order["pgCompanyId"] = nil
	portal.orders["O-1001"] = order
	portal.patients["P1"] = samplePatient()

	r := newTestReconciler(t, portal)
	res := r.Reconcile(quietContext(), "O-1001")

	if res.Status != reconciler.StatusSuccess {
		t.Fatalf("Expected success, got %s (%s)", res.Status, res.Message)
	}
	if res.Message != "set companyId=C5, pgCompanyId=PG9" {
		t.Errorf("Unexpected message: %q", res.Message)
	}
	payload := portal.updates[0].payload
	if payload.CompanyID() != "C5" || payload.PgCompanyID() != "PG9" {
		t.Errorf("Payload identifiers = %q/%q, want C5/PG9",
			payload.CompanyID(), payload.PgCompanyID())
	}
}

func TestReconcileFillsOnlyMissingField(t *testing.T) {
	portal := newFakePortal()
	order := sampleOrder()
	order["companyId"] = "C-EXISTING"
	order["pgCompanyId"] = ""
	portal.orders["O-1001"] = order
	portal.patients["P1"] = samplePatient()

	r := newTestReconciler(t, portal)
	res := r.Reconcile(quietContext(), "O-1001")

	if res.Status != reconciler.StatusSuccess {
		t.Fatalf("Expected success, got %s (%s)", res.Status, res.Message)
	}
	if res.Message != "set pgCompanyId=PG9" {
		t.Errorf("Unexpected message: %q", res.Message)
	}
	payload := portal.updates[0].payload
	if got := payload.CompanyID(); got != "C-EXISTING" {
		t.Errorf("Payload companyId = %q, existing value must survive", got)
	}
	if got := payload.PgCompanyID(); got != "PG9" {
		t.Errorf("Payload pgCompanyId = %q, want PG9", got)
	}
	// Both patient candidates are reported even though only one was applied.
	if res.NewCompanyID != "C5" || res.NewPgCompanyID != "PG9" {
		t.Errorf("Reported candidates = %q/%q, want C5/PG9",
			res.NewCompanyID, res.NewPgCompanyID)
	}
}

func TestReconcileNothingMissing(t *testing.T) {
	portal := newFakePortal()
	order := sampleOrder()
	order["companyId"] = "C1"
	portal.orders["O-1001"] = order

	r := newTestReconciler(t, portal)
	res := r.Reconcile(quietContext(), "O-1001")

	if res.Status != reconciler.StatusNoUpdateNeeded {
		t.Fatalf("Expected no_update_needed, got %s (%s)", res.Status, res.Message)
	}
	if res.Updated {
		t.Error("Expected Updated to be false")
	}
	if portal.patientCalls != 0 {
		t.Errorf("Expected no patient fetches, got %d", portal.patientCalls)
	}
	if len(portal.updates) != 0 {
		t.Errorf("Expected no updates, got %d", len(portal.updates))
	}
}

func TestReconcileNoPatientID(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(orders.Order)
	}{
		{"missing key", func(o orders.Order) { delete(o, "patientId") }},
		{"null value", func(o orders.Order) { o["patientId"] = nil }},
		{"blank value", func(o orders.Order) { o["patientId"] = "   " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			portal := newFakePortal()
			order := sampleOrder()
			tt.mutate(order)
			portal.orders["O-1001"] = order

			r := newTestReconciler(t, portal)
			res := r.Reconcile(quietContext(), "O-1001")

			if res.Status != reconciler.StatusError {
				t.Fatalf("Expected error status, got %s", res.Status)
			}
			if !strings.Contains(res.Message, "no patientId") {
				t.Errorf("Unexpected message: %q", res.Message)
			}
			if portal.patientCalls != 0 {
				t.Errorf("Expected no patient fetches, got %d", portal.patientCalls)
			}
		})
	}
}

func TestReconcileOrderFetchFailure(t *testing.T) {
	portal := newFakePortal()
	portal.orderErrs["O-404"] = errors.NewNotFoundError("order", "O-404")

	r := newTestReconciler(t, portal)
	res := r.Reconcile(quietContext(), "O-404")

	if res.Status != reconciler.StatusError {
		t.Fatalf("Expected error status, got %s", res.Status)
	}
	if !strings.HasPrefix(res.Message, "failed to fetch order:") {
		t.Errorf("Unexpected message: %q", res.Message)
	}
	if res.OrderID != "O-404" {
		t.Errorf("Result OrderID = %q, want O-404", res.OrderID)
	}
}

func TestReconcilePatientFetchFailure(t *testing.T) {
	portal := newFakePortal()
	portal.orders["O-1001"] = sampleOrder()
	portal.patientErrs["P1"] = errors.NewAPIError("patient", 502, "bad gateway")

	r := newTestReconciler(t, portal)
	res := r.Reconcile(quietContext(), "O-1001")

	if res.Status != reconciler.StatusError {
		t.Fatalf("Expected error status, got %s", res.Status)
	}
	if !strings.Contains(res.Message, "failed to fetch patient P1") {
		t.Errorf("Unexpected message: %q", res.Message)
	}
	if len(portal.updates) != 0 {
		t.Errorf("Expected no updates, got %d", len(portal.updates))
	}
}

func TestReconcilePatientWithoutIdentifiers(t *testing.T) {
	tests := []struct {
		name    string
		patient orders.Patient
	}{
		{
			name:    "no agencyInfo at all",
			patient: orders.Patient{"id": "P1", "firstName": "Alma"},
		},
		{
			name: "agencyInfo with null values",
			patient: orders.Patient{
				"id":         "P1",
				"agencyInfo": map[string]any{"companyId": nil, "pgcompanyID": nil},
			},
		},
		{
			name: "agencyInfo with blank values",
			patient: orders.Patient{
				"id":         "P1",
				"agencyInfo": map[string]any{"companyId": "  ", "pgcompanyID": ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			portal := newFakePortal()
			portal.orders["O-1001"] = sampleOrder()
			portal.patients["P1"] = tt.patient

			r := newTestReconciler(t, portal)
			res := r.Reconcile(quietContext(), "O-1001")

			if res.Status != reconciler.StatusNoUpdateAvailable {
				t.Fatalf("Expected no_update_available, got %s (%s)", res.Status, res.Message)
			}
			if len(portal.updates) != 0 {
				t.Errorf("Expected no updates, got %d", len(portal.updates))
			}
		})
	}
}

func TestReconcileCandidatesCoverNoMissingFields(t *testing.T) {
	// Order misses only companyId; patient only offers pgcompanyID.
	portal := newFakePortal()
	portal.orders["O-1001"] = sampleOrder()
	portal.patients["P1"] = orders.Patient{
		"id":         "P1",
		"agencyInfo": map[string]any{"pgcompanyID": "PG9"},
	}

	r := newTestReconciler(t, portal)
	res := r.Reconcile(quietContext(), "O-1001")

	if res.Status != reconciler.StatusNoUpdateNeeded {
		t.Fatalf("Expected no_update_needed, got %s (%s)", res.Status, res.Message)
	}
	if res.Message != "patient values cover no missing fields" {
		t.Errorf("Unexpected message: %q", res.Message)
	}
	if len(portal.updates) != 0 {
		t.Errorf("Expected no updates, got %d", len(portal.updates))
	}
}

func TestReconcileUpdateFailure(t *testing.T) {
	portal := newFakePortal()
	portal.orders["O-1001"] = sampleOrder()
	portal.patients["P1"] = samplePatient()
	portal.updateErrs["O-1001"] = errors.NewAPIError("order", 500, "internal error")

	r := newTestReconciler(t, portal)
	res := r.Reconcile(quietContext(), "O-1001")

	if res.Status != reconciler.StatusUpdateFailed {
		t.Fatalf("Expected update_failed, got %s (%s)", res.Status, res.Message)
	}
	if !strings.HasPrefix(res.Message, "failed to update order:") {
		t.Errorf("Unexpected message: %q", res.Message)
	}
	if res.Updated {
		t.Error("Expected Updated to be false after a failed write")
	}
}

func TestReconcileDryRun(t *testing.T) {
	portal := newFakePortal()
	portal.orders["O-1001"] = sampleOrder()
	portal.patients["P1"] = samplePatient()

	r := newTestReconciler(t, portal, reconciler.WithDryRun(true))
	res := r.Reconcile(quietContext(), "O-1001")

	if res.Status != reconciler.StatusSuccess {
		t.Fatalf("Expected success, got %s (%s)", res.Status, res.Message)
	}
	if res.Updated {
		t.Error("Dry run must not mark the order updated")
	}
	if res.Message != "dry-run: would set companyId=C5" {
		t.Errorf("Unexpected message: %q", res.Message)
	}
	if res.NewCompanyID != "C5" || res.NewPgCompanyID != "PG9" {
		t.Errorf("Reported candidates = %q/%q, want C5/PG9",
			res.NewCompanyID, res.NewPgCompanyID)
	}
	if len(portal.updates) != 0 {
		t.Errorf("Dry run wrote %d updates", len(portal.updates))
	}
}

func TestRunKeepsInputOrderAndDuplicates(t *testing.T) {
	portal := newFakePortal()
	portal.orders["O-1"] = sampleOrder()
	portal.patients["P1"] = samplePatient()

	complete := sampleOrder()
	complete["companyId"] = "C1"
	portal.orders["O-2"] = complete

	portal.orderErrs["O-3"] = errors.NewAPIError("order", 503, "unavailable")

	// O-1 appears twice: the first pass fills it, the second finds the
	// stored update and needs nothing.
	ids := []string{"O-1", "O-2", "O-3", "O-1"}

	r := newTestReconciler(t, portal)
	report := r.Run(quietContext(), ids)

	if len(report.Results) != len(ids) {
		t.Fatalf("Expected %d results, got %d", len(ids), len(report.Results))
	}
	for i, id := range ids {
		if report.Results[i].OrderID != id {
			t.Errorf("Result %d OrderID = %q, want %q", i, report.Results[i].OrderID, id)
		}
	}

	wantStatuses := []reconciler.Status{
		reconciler.StatusSuccess,
		reconciler.StatusNoUpdateNeeded,
		reconciler.StatusError,
		reconciler.StatusNoUpdateNeeded,
	}
	for i, want := range wantStatuses {
		if got := report.Results[i].Status; got != want {
			t.Errorf("Result %d status = %s, want %s (%s)",
				i, got, want, report.Results[i].Message)
		}
	}

	stats := report.Metadata.Stats
	if stats.Total != 4 {
		t.Errorf("Stats.Total = %d, want 4", stats.Total)
	}
	if stats.Succeeded != 1 || stats.Updated != 1 {
		t.Errorf("Stats.Succeeded/Updated = %d/%d, want 1/1", stats.Succeeded, stats.Updated)
	}
	if stats.NoUpdateNeeded != 2 {
		t.Errorf("Stats.NoUpdateNeeded = %d, want 2", stats.NoUpdateNeeded)
	}
	if stats.Errors != 1 {
		t.Errorf("Stats.Errors = %d, want 1", stats.Errors)
	}
	if report.Metadata.RunID == "" {
		t.Error("Expected a run ID")
	}
	if report.Metadata.EndTime.IsZero() {
		t.Error("Expected Finalize to set EndTime")
	}
}

func TestNewRequiresPortal(t *testing.T) {
	if _, err := reconciler.New(); err == nil {
		t.Error("Expected error when no portal is configured")
	}
	if _, err := reconciler.New(reconciler.WithPortal(nil)); err == nil {
		t.Error("Expected error for a nil portal")
	}
	portal := newFakePortal()
	if _, err := reconciler.New(
		reconciler.WithPortal(portal),
		reconciler.WithKnownFields(nil),
	); err == nil {
		t.Error("Expected error for an empty known-fields list")
	}
}
