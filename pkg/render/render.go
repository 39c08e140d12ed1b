// Package render converts extracted article content into downstream
// formats. The extraction pipeline always produces an HTML fragment;
// a Transformer takes that fragment to whatever a consumer wants to
// store or display.
package render

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/pagesift/pagesift/pkg/dom"
)

// Transformer converts an HTML content fragment into another format.
type Transformer interface {
	// Transform converts the fragment. Input that cannot be converted
	// returns an error; the caller decides whether to fall back to HTML.
	Transform(html string) (string, error)

	// Name returns the transformer type.
	Name() string
}

// New returns the transformer for a format name: "html", "markdown"
// or "text".
func New(format string) (Transformer, error) {
	switch strings.ToLower(format) {
	case "html", "":
		return NewHTML(), nil
	case "markdown", "md":
		return NewMarkdown(), nil
	case "text", "txt":
		return NewText(), nil
	default:
		return nil, fmt.Errorf("unsupported render format: %s", format)
	}
}

// HTMLTransformer passes the fragment through unchanged.
type HTMLTransformer struct{}

// NewHTML creates a pass-through transformer.
func NewHTML() *HTMLTransformer {
	return &HTMLTransformer{}
}

// Transform returns the input unchanged.
func (t *HTMLTransformer) Transform(html string) (string, error) {
	return html, nil
}

// Name returns the transformer type.
func (t *HTMLTransformer) Name() string {
	return "html"
}

// MarkdownTransformer converts HTML to Markdown. Headings, lists and
// emphasis survive the conversion, which keeps the extracted structure
// readable as plain text.
type MarkdownTransformer struct{}

// NewMarkdown creates a Markdown transformer.
func NewMarkdown() *MarkdownTransformer {
	return &MarkdownTransformer{}
}

// Transform converts the fragment to Markdown.
func (t *MarkdownTransformer) Transform(html string) (string, error) {
	markdown, err := md.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("markdown conversion: %w", err)
	}
	return collapseBlankLines(markdown), nil
}

// Name returns the transformer type.
func (t *MarkdownTransformer) Name() string {
	return "markdown"
}

// TextTransformer flattens the fragment to plain text.
type TextTransformer struct{}

// NewText creates a plain-text transformer.
func NewText() *TextTransformer {
	return &TextTransformer{}
}

// Transform parses the fragment and joins its text content.
func (t *TextTransformer) Transform(html string) (string, error) {
	doc := dom.Parse(html)
	return doc.PlainText(dom.Root), nil
}

// Name returns the transformer type.
func (t *TextTransformer) Name() string {
	return "text"
}

// collapseBlankLines caps consecutive blank lines at one and trims
// the result.
func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	var result []string
	blank := 0

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			blank++
			if blank <= 1 {
				result = append(result, "")
			}
		} else {
			blank = 0
			result = append(result, line)
		}
	}

	return strings.TrimSpace(strings.Join(result, "\n"))
}
