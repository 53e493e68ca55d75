// Package sheet reads order identifiers from xlsx workbooks and writes the
// run report workbook.
package sheet

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/caretide/ordersync/pkg/errors"
	"github.com/caretide/ordersync/pkg/logging"
)

// ReadOrderIDs loads the ordered identifier list from the first sheet of an
// xlsx workbook. The first row is treated as headers; the identifier column
// is the first header cell containing both "order" and "id" in any casing,
// falling back to the first column. Duplicates and row order are preserved,
// blank cells skipped.
func ReadOrderIDs(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logging.Warn().Err(cerr).Str("path", path).Msg("Failed to close workbook")
		}
	}()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.WrapParse("xlsx", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	col := idColumn(rows[0])
	ids := make([]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if col >= len(row) {
			continue
		}
		id := strings.TrimSpace(row[col])
		if id == "" {
			continue
		}
		ids = append(ids, id)
	}

	logging.Debug().
		Str("path", path).
		Str("sheet", sheet).
		Int("column", col).
		Int("order_count", len(ids)).
		Msg("Read order identifiers")

	return ids, nil
}

// idColumn finds the identifier column in the header row. Headers like
// "Order ID", "order_id" or "OrderId" all match; without a match the first
// column is assumed.
func idColumn(header []string) int {
	for i, cell := range header {
		lc := strings.ToLower(cell)
		if strings.Contains(lc, "order") && strings.Contains(lc, "id") {
			return i
		}
	}
	return 0
}
