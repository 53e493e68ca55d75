package table

import (
	"strconv"
	"time"

	"github.com/caretide/ordersync/internal/cmd/emoji"
	"github.com/caretide/ordersync/pkg/reconciler"
)

// Summary converts run metadata and statistics to a key-value table.
func Summary(report *reconciler.Report) Data {
	m := report.Metadata
	s := m.Stats

	mode := "live"
	if m.DryRun {
		mode = "dry-run"
	}

	updatedLabel := emoji.Success + " Updated"
	updatedCount := s.Updated
	if m.DryRun {
		updatedLabel = emoji.Success + " Would update"
		updatedCount = s.Succeeded
	}

	rows := [][]string{
		{"Run ID", m.RunID},
		{"Mode", mode},
		{"Started", m.StartTime.Format(time.RFC3339)},
		{"Duration", m.Duration.String()},
		{"Orders", strconv.Itoa(s.Total)},
		{updatedLabel, strconv.Itoa(updatedCount)},
		{"No update needed", strconv.Itoa(s.NoUpdateNeeded)},
		{"No update available", strconv.Itoa(s.NoUpdateAvailable)},
		{emoji.Error + " Errors", strconv.Itoa(s.Errors)},
		{emoji.Error + " Update failures", strconv.Itoa(s.UpdateFailures)},
	}

	return Data{
		Headers:         []string{"Run", "Value"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}
