package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/wordscope/internal/model"
)

// JSONWriter outputs results in JSON format, using the same field names
// as the HTTP API responses.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WritePage outputs the page result in JSON format.
func (w *JSONWriter) WritePage(page *model.PageResult) (int, error) {
	return w.writeJSON(page)
}

// WriteBatch outputs the batch result in JSON format.
func (w *JSONWriter) WriteBatch(batch *model.BatchResult) (int, error) {
	return w.writeJSON(batch)
}

// writeJSON marshals the given value to JSON and writes it to the output.
// Non-ASCII text such as Japanese words is written as-is.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}

	data = append(data, '\n')
	return w.output.Write(data)
}

// Envelope wraps a result with the version of wordscope that produced it.
// Exactly one of Page and Batch is set.
type Envelope struct {
	// Version is the wordscope version that generated this report.
	Version string `json:"version"`

	// Page is the single page result.
	Page *model.PageResult `json:"page,omitempty"`

	// Batch is the multi-page result.
	Batch *model.BatchResult `json:"batch,omitempty"`
}

// FullJSONWriter outputs results wrapped in an Envelope.
type FullJSONWriter struct {
	*JSONWriter

	version string
}

// NewFullJSONWriter creates a writer for enveloped results.
func NewFullJSONWriter(output io.Writer, version string, opts ...JSONWriterOption) *FullJSONWriter {
	return &FullJSONWriter{
		JSONWriter: NewJSONWriter(output, opts...),
		version:    version,
	}
}

// WritePage outputs the page result wrapped with metadata.
func (w *FullJSONWriter) WritePage(page *model.PageResult) (int, error) {
	return w.writeJSON(&Envelope{Version: w.version, Page: page})
}

// WriteBatch outputs the batch result wrapped with metadata.
func (w *FullJSONWriter) WriteBatch(batch *model.BatchResult) (int, error) {
	return w.writeJSON(&Envelope{Version: w.version, Batch: batch})
}
