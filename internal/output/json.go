package output

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/pagesift/pagesift/pkg/extract"
)

// JSONWriter writes articles as a JSON document.
type JSONWriter struct {
	w      *bufio.Writer
	pretty bool
	indent string
	items  []*extract.Article
}

// NewJSONWriter creates a JSON writer.
func NewJSONWriter(w io.Writer, pretty bool, indent string) *JSONWriter {
	return &JSONWriter{
		w:      bufio.NewWriter(w),
		pretty: pretty,
		indent: indent,
		items:  make([]*extract.Article, 0),
	}
}

// Write buffers a single article for JSON array output.
func (w *JSONWriter) Write(a *extract.Article) error {
	w.items = append(w.items, a)
	return nil
}

// WriteAll buffers multiple articles.
func (w *JSONWriter) WriteAll(articles []*extract.Article) error {
	w.items = append(w.items, articles...)
	return nil
}

// Flush writes the buffered articles as a JSON array.
func (w *JSONWriter) Flush() error {
	var output []byte
	var err error

	// A single article is output as an object, not a one-element array.
	var payload any = w.items
	if len(w.items) == 1 {
		payload = w.items[0]
	}

	if w.pretty {
		output, err = json.MarshalIndent(payload, "", w.indent)
	} else {
		output, err = json.Marshal(payload)
	}
	if err != nil {
		return err
	}

	if _, err := w.w.Write(output); err != nil {
		return err
	}
	if _, err := w.w.WriteString("\n"); err != nil {
		return err
	}

	return w.w.Flush()
}

// Close flushes and closes the writer.
func (w *JSONWriter) Close() error {
	return w.Flush()
}

// JSONLWriter writes newline-delimited JSON (JSONL).
type JSONLWriter struct {
	w *bufio.Writer
}

// NewJSONLWriter creates a JSONL writer.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{
		w: bufio.NewWriter(w),
	}
}

// Write writes a single article as a JSON line.
func (w *JSONLWriter) Write(a *extract.Article) error {
	output, err := json.Marshal(a)
	if err != nil {
		return err
	}

	if _, err := w.w.Write(output); err != nil {
		return err
	}
	if _, err := w.w.WriteString("\n"); err != nil {
		return err
	}

	return w.w.Flush()
}

// WriteAll writes multiple articles as JSON lines.
func (w *JSONLWriter) WriteAll(articles []*extract.Article) error {
	for _, a := range articles {
		if err := w.Write(a); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the buffer.
func (w *JSONLWriter) Flush() error {
	return w.w.Flush()
}

// Close flushes the writer.
func (w *JSONLWriter) Close() error {
	return w.Flush()
}
