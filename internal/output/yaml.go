package output

import (
	"bufio"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/pagesift/pagesift/pkg/extract"
)

// YAMLWriter writes articles as YAML documents.
type YAMLWriter struct {
	w     *bufio.Writer
	items []*extract.Article
}

// NewYAMLWriter creates a YAML writer.
func NewYAMLWriter(w io.Writer) *YAMLWriter {
	return &YAMLWriter{
		w:     bufio.NewWriter(w),
		items: make([]*extract.Article, 0),
	}
}

// Write buffers a single article.
func (w *YAMLWriter) Write(a *extract.Article) error {
	w.items = append(w.items, a)
	return nil
}

// WriteAll buffers multiple articles.
func (w *YAMLWriter) WriteAll(articles []*extract.Article) error {
	w.items = append(w.items, articles...)
	return nil
}

// Flush writes the buffered articles as YAML.
func (w *YAMLWriter) Flush() error {
	encoder := yaml.NewEncoder(w.w)
	encoder.SetIndent(2)

	var err error
	if len(w.items) == 1 {
		err = encoder.Encode(w.items[0])
	} else {
		err = encoder.Encode(w.items)
	}
	if err != nil {
		return err
	}

	if err := encoder.Close(); err != nil {
		return err
	}

	return w.w.Flush()
}

// Close flushes and closes the writer.
func (w *YAMLWriter) Close() error {
	return w.Flush()
}
