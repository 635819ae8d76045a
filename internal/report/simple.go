package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/nao1215/cargosweep/internal/model"
)

// SimpleWriter outputs human-readable text reports.
//
// Design decision: We use plain text without ANSI colors because it works
// in all terminals and pipes cleanly to files or other tools. Color can
// be added as an option later if needed.
type SimpleWriter struct {
	baseWriter

	// showClean controls whether projects with zero reclaimable bytes
	// appear in the listing. Hidden by default to keep large workspace
	// reports readable.
	showClean bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowClean configures the writer to list projects that freed
// (or would free) nothing.
func WithShowClean(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showClean = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the run report in human-readable format.
func (w *SimpleWriter) Write(report *model.RunReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeResults(&sb, report)
	w.writeWarnings(&sb, report)
	w.writeTotal(&sb, report)

	return io.WriteString(w.output, sb.String())
}

// writeHeader writes the run metadata block.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.RunReport) {
	sb.WriteString("cargosweep report\n")
	sb.WriteString("=================\n")
	fmt.Fprintf(sb, "Root:     %s\n", report.Root)
	fmt.Fprintf(sb, "Scope:    %s\n", report.Scope.Label())
	fmt.Fprintf(sb, "Projects: %d\n", report.ProjectCount())
	if report.Elapsed > 0 {
		fmt.Fprintf(sb, "Elapsed:  %s\n", report.Elapsed.Round(time.Millisecond))
	}
	sb.WriteString("\n")
}

// writeResults writes one line per project.
func (w *SimpleWriter) writeResults(sb *strings.Builder, report *model.RunReport) {
	listed := 0
	for _, res := range report.Results {
		if !w.showClean && res.Bytes == 0 && !res.Failed() {
			continue
		}
		listed++
		if res.Failed() {
			fmt.Fprintf(sb, "  %-8s  %s  %s\n", res.Action, res.Path, res.Error)
			continue
		}
		fmt.Fprintf(sb, "  %-8s  %s  %s\n", res.Action, res.Path, humanize.IBytes(res.Bytes))
	}

	if listed == 0 && report.ProjectCount() > 0 {
		sb.WriteString("  all projects already clean\n")
	}
	if report.ProjectCount() > 0 {
		sb.WriteString("\n")
	}
}

// writeWarnings writes the traversal warnings section, if any.
func (w *SimpleWriter) writeWarnings(sb *strings.Builder, report *model.RunReport) {
	if len(report.Warnings) == 0 {
		return
	}

	sb.WriteString("Warnings:\n")
	for _, warning := range report.Warnings {
		fmt.Fprintf(sb, "  %s: %s\n", warning.Path, warning.Message)
	}
	sb.WriteString("\n")
}

// writeTotal writes the summary line. The wording mirrors the mode:
// dry-run reports what a real run would save.
func (w *SimpleWriter) writeTotal(sb *strings.Builder, report *model.RunReport) {
	total := humanize.IBytes(report.TotalBytes())
	if report.Scope.DryRun {
		fmt.Fprintf(sb, "Total space that will be saved: %s\n", total)
	} else {
		fmt.Fprintf(sb, "Total space saved: %s\n", total)
	}

	if failed := report.FailedCount(); failed > 0 {
		fmt.Fprintf(sb, "Failed projects: %d\n", failed)
	}
}
