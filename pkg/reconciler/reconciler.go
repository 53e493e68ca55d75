// Package reconciler implements the per-order reconcile procedure: fetch an
// order, determine which company identifiers are missing, source candidate
// values from the related patient, and write the patched order back through
// a full-replacement update.
//
// Every order yields exactly one Result; no failure escapes the per-order
// boundary. A whole run is just the same procedure applied sequentially to
// an ordered list of identifiers.
package reconciler

import (
	"context"
	"fmt"

	"github.com/caretide/ordersync/pkg/logging"
	"github.com/caretide/ordersync/pkg/orders"
)

// Portal is the slice of the care portal API the reconciler needs.
type Portal interface {
	GetOrder(ctx context.Context, orderID string) (orders.Order, error)
	GetPatient(ctx context.Context, patientID string) (orders.Patient, error)
	UpdateOrder(ctx context.Context, orderID string, payload orders.Order) error
}

// Reconciler fills missing company identifiers on orders.
type Reconciler interface {
	// Reconcile processes a single order and returns its Result. It never
	// returns an error; every failure mode maps to a Result status.
	Reconcile(ctx context.Context, orderID string) Result

	// Run processes identifiers sequentially in input order and returns
	// one Result per identifier, duplicates included.
	Run(ctx context.Context, orderIDs []string) *Report
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	portal      Portal
	knownFields []string
	dryRun      bool
}

// New creates a new Reconciler with options. A portal is required.
func New(opts ...Option) (Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	return &reconciler{
		portal:      options.portal,
		knownFields: options.knownFields,
		dryRun:      options.dryRun,
	}, nil
}

// Run applies Reconcile to each identifier in order and collects the report.
func (r *reconciler) Run(ctx context.Context, orderIDs []string) *Report {
	logger := logging.FromContext(ctx)
	report := NewReport(r.dryRun)

	logger.Info().
		Int("order_count", len(orderIDs)).
		Bool("dry_run", r.dryRun).
		Str("run_id", report.Metadata.RunID).
		Msg("Starting reconcile run")

	for i, orderID := range orderIDs {
		result := r.Reconcile(ctx, orderID)
		report.Append(result)

		logger.Debug().
			Int("row", i+1).
			Str("order_id", orderID).
			Str("status", string(result.Status)).
			Str("message", result.Message).
			Msg("Order reconciled")
	}

	report.Finalize()
	logger.Info().
		Str("run_id", report.Metadata.RunID).
		Int("total", report.Metadata.Stats.Total).
		Int("updated", report.Metadata.Stats.Updated).
		Int("errors", report.Metadata.Stats.Errors).
		Int("update_failures", report.Metadata.Stats.UpdateFailures).
		Dur("duration", report.Metadata.Duration).
		Msg("Reconcile run finished")

	return report
}

// Reconcile runs the decision procedure for one order.
func (r *reconciler) Reconcile(ctx context.Context, orderID string) Result {
	logger := logging.FromContext(ctx)

	// Step 1: fetch the order. Without it nothing else can be decided.
	order, err := r.portal.GetOrder(ctx, orderID)
	if err != nil {
		logger.Error().
			Err(err).
			Str("order_id", orderID).
			Msg("Order fetch failed")
		return Result{
			OrderID: orderID,
			Status:  StatusError,
			Message: fmt.Sprintf("failed to fetch order: %v", err),
		}
	}

	// Step 2: which company identifiers are missing?
	needCompany := !order.Has(orders.FieldCompanyID)
	needPg := !order.Has(orders.FieldPgCompanyID)

	// Step 3: nothing missing, nothing to do. No patient fetch, no write.
	if !needCompany && !needPg {
		return Result{
			OrderID: orderID,
			Status:  StatusNoUpdateNeeded,
			Message: "companyId and pgCompanyId already present",
		}
	}

	// Step 4: candidates come from the patient, so an order without a
	// patientId cannot be filled.
	if !order.Has(orders.FieldPatientID) {
		logger.Warn().
			Str("order_id", orderID).
			Msg("Order has no patientId")
		return Result{
			OrderID: orderID,
			Status:  StatusError,
			Message: "order has no patientId to derive missing company fields from",
		}
	}
	patientID := order.PatientID()

	// Step 5: fetch the patient.
	patient, err := r.portal.GetPatient(ctx, patientID)
	if err != nil {
		logger.Error().
			Err(err).
			Str("order_id", orderID).
			Str("patient_id", patientID).
			Msg("Patient fetch failed")
		return Result{
			OrderID: orderID,
			Status:  StatusError,
			Message: fmt.Sprintf("failed to fetch patient %s: %v", patientID, err),
		}
	}

	// Step 6: candidate values from the patient's agency info. Note the
	// field-name casing differs between the two APIs; the mapping is
	// agencyInfo.companyId -> companyId, agencyInfo.pgcompanyID -> pgCompanyId.
	candCompany, haveCompany := patient.AgencyCompanyID()
	candPg, havePg := patient.AgencyPgCompanyID()

	// Step 7: a patient with no identifiers at all can never help.
	if !haveCompany && !havePg {
		return Result{
			OrderID: orderID,
			Status:  StatusNoUpdateAvailable,
			Message: "patient record has no usable company identifiers",
		}
	}

	// Step 8: patch only fields that are missing AND have a candidate.
	var patch Patch
	if needCompany && haveCompany {
		patch.CompanyID = candCompany
	}
	if needPg && havePg {
		patch.PgCompanyID = candPg
	}
	if patch.IsEmpty() {
		return Result{
			OrderID: orderID,
			Status:  StatusNoUpdateNeeded,
			Message: "patient values cover no missing fields",
		}
	}

	// Step 9: build the payload: full copy, patch overlay, then re-fill
	// any known field the copy is still missing.
	payload := BuildPayload(order, patch, r.knownFields)

	// A dry run stops short of the write but reports what it would do.
	if r.dryRun {
		return Result{
			OrderID:        orderID,
			Status:         StatusSuccess,
			Message:        "dry-run: would set " + patch.String(),
			Updated:        false,
			NewCompanyID:   candCompany,
			NewPgCompanyID: candPg,
		}
	}

	// Step 10: full-replacement update.
	if err := r.portal.UpdateOrder(ctx, orderID, payload); err != nil {
		logger.Error().
			Err(err).
			Str("order_id", orderID).
			Msg("Order update failed")
		return Result{
			OrderID: orderID,
			Status:  StatusUpdateFailed,
			Message: fmt.Sprintf("failed to update order: %v", err),
		}
	}

	logger.Info().
		Str("order_id", orderID).
		Str("patch", patch.String()).
		Msg("Order updated")

	// The reported new_* values are the patient's candidates, including a
	// candidate the patch did not apply. See the Result doc comment.
	return Result{
		OrderID:        orderID,
		Status:         StatusSuccess,
		Message:        "set " + patch.String(),
		Updated:        true,
		NewCompanyID:   candCompany,
		NewPgCompanyID: candPg,
	}
}
