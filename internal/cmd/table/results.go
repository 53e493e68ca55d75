// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"strconv"
	"strings"

	"github.com/caretide/ordersync/pkg/reconciler"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// maxMessageWidth caps the message column in regular table output. Wide
// output shows the full text.
const maxMessageWidth = 48

// Results converts reconcile results to table data, one row per order in
// run order. Columns match the xlsx report schema.
func Results(results []reconciler.Result, wide bool) Data {
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		message := res.Message
		if !wide {
			message = Truncate(message, maxMessageWidth)
		}
		rows = append(rows, []string{
			res.OrderID,
			string(res.Status),
			message,
			strconv.FormatBool(res.Updated),
			orDash(res.NewCompanyID),
			orDash(res.NewPgCompanyID),
		})
	}

	return Data{
		Headers: []string{"Order ID", "Status", "Message", "Updated", "New Company ID", "New PG Company ID"},
		Rows:    rows,
		ColumnAlignment: []Align{
			AlignLeft, AlignLeft, AlignLeft, AlignCenter, AlignLeft, AlignLeft,
		},
	}
}

// Truncate shortens s to at most max characters, ending in an ellipsis.
func Truncate(s string, max int) string {
	if max <= 3 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// orDash renders empty optional values as a dash for table display. The
// xlsx report keeps them empty; the dash is a terminal-only nicety.
func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
