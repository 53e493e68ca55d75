// Package docs renders human-readable run summaries in Markdown. Operators
// attach these to tickets alongside the xlsx report.
package docs

import (
	"fmt"
	"io"
	"strconv"
	"time"

	md "github.com/nao1215/markdown"

	"github.com/caretide/ordersync/pkg/reconciler"
)

// Markdown wraps the markdown package with the small builder surface the
// run summary needs.
type Markdown struct {
	md     *md.Markdown
	writer io.Writer
}

// NewMarkdown creates a new markdown builder.
func NewMarkdown(w io.Writer) *Markdown {
	return &Markdown{
		md:     md.NewMarkdown(w),
		writer: w,
	}
}

// H1 adds a level 1 heading.
func (m *Markdown) H1(text string) *Markdown {
	m.md.H1(text)
	return m
}

// H2 adds a level 2 heading.
func (m *Markdown) H2(text string) *Markdown {
	m.md.H2(text)
	return m
}

// PlainText adds plain text.
func (m *Markdown) PlainText(text string) *Markdown {
	m.md.PlainText(text)
	return m
}

// PlainTextf adds formatted plain text.
func (m *Markdown) PlainTextf(format string, args ...any) *Markdown {
	m.md.PlainTextf(format, args...)
	return m
}

// LF adds a blank line.
func (m *Markdown) LF() *Markdown {
	m.md.LF()
	return m
}

// BulletList adds a bullet list.
func (m *Markdown) BulletList(items ...string) *Markdown {
	m.md.BulletList(items...)
	return m
}

// Table adds a table.
func (m *Markdown) Table(header []string, rows [][]string) *Markdown {
	m.md.Table(md.TableSet{
		Header: header,
		Rows:   rows,
	})
	return m
}

// Build writes the accumulated document to the writer.
func (m *Markdown) Build() error {
	return m.md.Build()
}

// WriteRunSummary renders a Markdown summary of one reconcile run: metadata,
// outcome counts, and the per-order result table.
func WriteRunSummary(w io.Writer, report *reconciler.Report) error {
	m := NewMarkdown(w)
	meta := report.Metadata
	stats := meta.Stats

	title := "Order Update Run"
	if meta.DryRun {
		title = "Order Update Run (dry-run)"
	}
	m.H1(title)

	m.PlainTextf("Run `%s` processed %s.", meta.RunID, countNoun(stats.Total, "order", "orders")).LF()

	m.BulletList(
		fmt.Sprintf("Started: %s", meta.StartTime.Format(time.RFC3339)),
		fmt.Sprintf("Finished: %s", meta.EndTime.Format(time.RFC3339)),
		fmt.Sprintf("Duration: %s", meta.Duration),
	).LF()

	m.H2("Outcomes")
	m.Table(
		[]string{"Status", "Count"},
		[][]string{
			{string(reconciler.StatusSuccess), strconv.Itoa(stats.Succeeded)},
			{string(reconciler.StatusNoUpdateNeeded), strconv.Itoa(stats.NoUpdateNeeded)},
			{string(reconciler.StatusNoUpdateAvailable), strconv.Itoa(stats.NoUpdateAvailable)},
			{string(reconciler.StatusError), strconv.Itoa(stats.Errors)},
			{string(reconciler.StatusUpdateFailed), strconv.Itoa(stats.UpdateFailures)},
		},
	)

	m.H2("Orders")
	rows := make([][]string, 0, len(report.Results))
	for _, res := range report.Results {
		rows = append(rows, []string{
			res.OrderID,
			string(res.Status),
			res.Message,
			strconv.FormatBool(res.Updated),
			res.NewCompanyID,
			res.NewPgCompanyID,
		})
	}
	m.Table(
		[]string{"Order ID", "Status", "Message", "Updated", "New Company ID", "New PG Company ID"},
		rows,
	)

	// The new-ID columns show the patient's candidate values on success,
	// even for a field that was already present and left untouched. The
	// downstream consumers of these reports read them that way.
	m.LF().PlainText("The New Company ID and New PG Company ID columns carry the " +
		"patient's candidate values for successful orders, including fields " +
		"that were already populated and therefore not changed.").LF()

	return m.Build()
}

// countNoun renders a count with a singular or plural noun.
func countNoun(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
