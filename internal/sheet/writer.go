package sheet

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/caretide/ordersync/pkg/constants"
	"github.com/caretide/ordersync/pkg/errors"
	"github.com/caretide/ordersync/pkg/logging"
	"github.com/caretide/ordersync/pkg/reconciler"
)

// reportSheet is the sheet name inside the generated workbook.
const reportSheet = "Results"

// reportColumns is the header row of the run report.
var reportColumns = []string{
	"Order ID",
	"Status",
	"Message",
	"Updated",
	"New Company ID",
	"New PG Company ID",
}

// Writer serializes run reports to timestamped xlsx workbooks.
type Writer struct {
	dir string
	now func() time.Time
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithClock overrides the wall-clock source used for report filenames.
func WithClock(now func() time.Time) WriterOption {
	return func(w *Writer) {
		if now != nil {
			w.now = now
		}
	}
}

// NewWriter creates a Writer that places report workbooks in dir. An empty
// dir means the current working directory.
func NewWriter(dir string, opts ...WriterOption) *Writer {
	w := &Writer{
		dir: dir,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteReport writes one header row plus one row per result, in input order,
// and returns the written path. A report with zero results writes nothing
// and returns "".
func (w *Writer) WriteReport(report *reconciler.Report) (string, error) {
	if report == nil || len(report.Results) == 0 {
		return "", nil
	}

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logging.Warn().Err(cerr).Msg("Failed to close report workbook")
		}
	}()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return "", errors.WrapIO("prepare", reportSheet, err)
	}

	for i, column := range reportColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return "", errors.WrapIO("address", reportSheet, err)
		}
		if err := f.SetCellValue(reportSheet, cell, column); err != nil {
			return "", errors.WrapIO("write", reportSheet, err)
		}
	}

	for rowIdx, res := range report.Results {
		values := []string{
			res.OrderID,
			string(res.Status),
			res.Message,
			strconv.FormatBool(res.Updated),
			res.NewCompanyID,
			res.NewPgCompanyID,
		}
		for colIdx, value := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return "", errors.WrapIO("address", reportSheet, err)
			}
			if err := f.SetCellValue(reportSheet, cell, value); err != nil {
				return "", errors.WrapIO("write", reportSheet, err)
			}
		}
	}

	path := filepath.Join(w.dir, w.Filename())
	if err := f.SaveAs(path); err != nil {
		return "", errors.WrapIO("save", path, err)
	}

	logging.Info().
		Str("path", path).
		Int("rows", len(report.Results)).
		Msg("Report workbook written")

	return path, nil
}

// Filename returns the report filename for the current wall-clock time,
// e.g. order_update_results_20240131_154500.xlsx.
func (w *Writer) Filename() string {
	return fmt.Sprintf("%s%s%s",
		constants.ReportFilePrefix,
		w.now().Format(constants.ReportTimestampFormat),
		constants.ReportFileExtension)
}
