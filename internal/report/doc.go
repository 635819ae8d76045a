// Package report provides run-report generation and output.
//
// This package contains writers for different output formats:
//   - SimpleWriter: Human-readable text output for terminal display
//   - MarkdownWriter: GitHub Flavored Markdown for documentation and sharing
//   - JSONWriter: Structured JSON output for tool integration
//
// Design decision: We separate report writing from the report data
// structures (which live in the model package) so new output formats can
// be added without touching the core types. Writers implement a common
// Writer interface and are used interchangeably by the command layer.
package report
