package report

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/nao1215/cargosweep/internal/model"
)

// JSONWriter outputs run reports as indented JSON for tool integration.
type JSONWriter struct {
	baseWriter
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer) *JSONWriter {
	return &JSONWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the run report as JSON.
func (w *JSONWriter) Write(report *model.RunReport) (int, error) {
	// Encode to a buffer first so a marshalling failure writes nothing.
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return 0, err
	}

	return w.output.Write(buf.Bytes())
}
