package report

import (
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/nao1215/markdown"

	"github.com/nao1215/cargosweep/internal/model"
)

// MarkdownWriter outputs run reports in Markdown format.
// This format is designed for documentation and sharing, e.g. pasting a
// workspace cleanup summary into an issue.
//
// Design decision: We use the nao1215/markdown library for fluent,
// type-safe markdown generation with GitHub-flavored tables and alerts.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the run report in Markdown format.
func (w *MarkdownWriter) Write(report *model.RunReport) (int, error) {
	counted := &countingWriter{next: w.output}
	md := markdown.NewMarkdown(counted)

	w.writeHeader(md, report)
	w.writeResults(md, report)
	w.writeWarnings(md, report)
	w.writeAlert(md, report)

	err := md.Build()
	return counted.written, err
}

// countingWriter tracks how many bytes md.Build emits, so Write reports
// the count of what actually reached the destination.
type countingWriter struct {
	next    io.Writer
	written int
}

// Write forwards to the underlying writer and records the byte count.
func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.next.Write(p)
	c.written += n
	return n, err
}

// writeHeader writes the run metadata table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.RunReport) {
	md.H1("cargosweep Report")
	md.PlainText("")

	totalLabel := "Space saved"
	if report.Scope.DryRun {
		totalLabel = "Space that will be saved"
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Root", "`" + report.Root + "`"},
			{"Scope", report.Scope.Label()},
			{"Started", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Projects", strconv.Itoa(report.ProjectCount())},
			{"Failed", strconv.Itoa(report.FailedCount())},
			{totalLabel, humanize.IBytes(report.TotalBytes())},
		},
	})
	md.PlainText("")
}

// writeResults writes the per-project table.
func (w *MarkdownWriter) writeResults(md *markdown.Markdown, report *model.RunReport) {
	md.H2("Projects")
	md.PlainText("")

	if report.ProjectCount() == 0 {
		md.PlainText("No Cargo projects discovered.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(report.Results))
	for _, res := range report.Results {
		detail := humanize.IBytes(res.Bytes)
		if res.Failed() {
			detail = res.Error
		}
		rows = append(rows, []string{
			"`" + res.Path + "`",
			res.Action.String(),
			detail,
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Path", "Action", "Result"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeWarnings writes the traversal warnings section, if any.
func (w *MarkdownWriter) writeWarnings(md *markdown.Markdown, report *model.RunReport) {
	if len(report.Warnings) == 0 {
		return
	}

	md.H2("Traversal Warnings")
	md.PlainText("")

	items := make([]string, 0, len(report.Warnings))
	for _, warning := range report.Warnings {
		items = append(items, "`"+warning.Path+"`: "+warning.Message)
	}
	md.BulletList(items...)
	md.PlainText("")
}

// writeAlert writes an alert summarizing the run outcome.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.RunReport) {
	switch {
	case report.FailedCount() > 0:
		md.Warningf("%d project(s) failed to clean; see the table above.", report.FailedCount())
	case len(report.Warnings) > 0:
		md.Note("Some directories could not be read; results may be incomplete.")
	case report.Scope.DryRun:
		md.Tip("This was a dry run. Re-run without --dry-run to reclaim the space.")
	default:
		md.Tip("All discovered projects cleaned successfully.")
	}
	md.PlainText("")
}
