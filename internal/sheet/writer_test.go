package sheet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"github.com/caretide/ordersync/pkg/reconciler"
)

func fixedClock() time.Time {
	return time.Date(2024, 1, 31, 15, 45, 0, 0, time.UTC)
}

func TestWriteReport_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, WithClock(fixedClock))

	report := reconciler.NewReport(false)
	report.Append(reconciler.Result{
		OrderID:        "O-1001",
		Status:         reconciler.StatusSuccess,
		Message:        "set companyId=C5",
		Updated:        true,
		NewCompanyID:   "C5",
		NewPgCompanyID: "PG9",
	})
	report.Append(reconciler.Result{
		OrderID: "O-1002",
		Status:  reconciler.StatusError,
		Message: "failed to fetch order: 404",
	})
	report.Finalize()

	path, err := w.WriteReport(report)
	if err != nil {
		t.Fatalf("WriteReport failed: %v", err)
	}

	wantPath := filepath.Join(dir, "order_update_results_20240131_154500.xlsx")
	if path != wantPath {
		t.Errorf("Path = %q, want %q", path, wantPath)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open written workbook: %v", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			t.Errorf("Failed to close workbook: %v", err)
		}
	}()

	rows, err := f.GetRows(reportSheet)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d", len(rows))
	}

	wantHeader := []string{"Order ID", "Status", "Message", "Updated", "New Company ID", "New PG Company ID"}
	if diff := cmp.Diff(wantHeader, rows[0]); diff != "" {
		t.Errorf("Header mismatch (-want +got):\n%s", diff)
	}

	wantRow := []string{"O-1001", "success", "set companyId=C5", "true", "C5", "PG9"}
	if diff := cmp.Diff(wantRow, rows[1]); diff != "" {
		t.Errorf("First row mismatch (-want +got):\n%s", diff)
	}

	// Empty optional columns render as empty cells.
	for cell, want := range map[string]string{
		"A3": "O-1002",
		"B3": "error",
		"C3": "failed to fetch order: 404",
		"D3": "false",
		"E3": "",
		"F3": "",
	} {
		got, err := f.GetCellValue(reportSheet, cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s) failed: %v", cell, err)
		}
		if got != want {
			t.Errorf("Cell %s = %q, want %q", cell, got, want)
		}
	}
}

func TestWriteReport_ZeroResults(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, WithClock(fixedClock))

	path, err := w.WriteReport(reconciler.NewReport(false))
	if err != nil {
		t.Fatalf("WriteReport failed: %v", err)
	}
	if path != "" {
		t.Errorf("Expected empty path for zero results, got %q", path)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no files written, found %d", len(entries))
	}

	path, err = w.WriteReport(nil)
	if err != nil || path != "" {
		t.Errorf("Nil report should be a no-op, got path %q err %v", path, err)
	}
}

func TestWriterFilename(t *testing.T) {
	w := NewWriter("", WithClock(fixedClock))
	want := "order_update_results_20240131_154500.xlsx"
	if got := w.Filename(); got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}
}
