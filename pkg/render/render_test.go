package render

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"html", "html"},
		{"", "html"},
		{"markdown", "markdown"},
		{"md", "markdown"},
		{"MARKDOWN", "markdown"},
		{"text", "text"},
		{"txt", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			tr, err := New(tt.format)
			if err != nil {
				t.Fatalf("New(%q) error = %v", tt.format, err)
			}
			if tr.Name() != tt.want {
				t.Errorf("Name() = %q, want %q", tr.Name(), tt.want)
			}
		})
	}
}

func TestNewUnsupported(t *testing.T) {
	_, err := New("pdf")
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if !strings.Contains(err.Error(), "unsupported") {
		t.Errorf("expected 'unsupported' in error, got %v", err)
	}
}

func TestHTMLPassthrough(t *testing.T) {
	tr := NewHTML()

	in := `<h1>Title</h1><p>Body.</p>`
	got, err := tr.Transform(in)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if got != in {
		t.Errorf("expected unchanged input, got %q", got)
	}
}

func TestMarkdownHeadings(t *testing.T) {
	tr := NewMarkdown()

	got, err := tr.Transform(`<h1>Title</h1><h2>Section</h2><p>A paragraph.</p>`)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}

	if !strings.Contains(got, "# Title") {
		t.Errorf("expected markdown h1, got %q", got)
	}
	if !strings.Contains(got, "## Section") {
		t.Errorf("expected markdown h2, got %q", got)
	}
	if !strings.Contains(got, "A paragraph.") {
		t.Errorf("expected paragraph text, got %q", got)
	}
}

func TestMarkdownLinksAndEmphasis(t *testing.T) {
	tr := NewMarkdown()

	got, err := tr.Transform(`<p>See <a href="https://example.com">the site</a> for <em>more</em>.</p>`)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}

	if !strings.Contains(got, "the site") || !strings.Contains(got, "https://example.com") {
		t.Errorf("expected link text and URL, got %q", got)
	}
	if !strings.Contains(got, "*more*") && !strings.Contains(got, "_more_") {
		t.Errorf("expected emphasis marker, got %q", got)
	}
}

func TestMarkdownCollapsesBlankLines(t *testing.T) {
	tr := NewMarkdown()

	got, err := tr.Transform(`<p>one</p><p></p><p></p><p>two</p>`)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}

	if strings.Contains(got, "\n\n\n") {
		t.Errorf("expected at most one blank line between blocks, got %q", got)
	}
	if strings.HasPrefix(got, "\n") || strings.HasSuffix(got, "\n") {
		t.Errorf("expected trimmed output, got %q", got)
	}
}

func TestTextFlattens(t *testing.T) {
	tr := NewText()

	got, err := tr.Transform(`<h1>Title</h1><p>First <em>second</em> third.</p>`)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}

	if strings.Contains(got, "<") {
		t.Errorf("expected no markup in plain text, got %q", got)
	}
	for _, want := range []string{"Title", "First", "second", "third."} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in output, got %q", want, got)
		}
	}
}

func TestTextEmptyInput(t *testing.T) {
	tr := NewText()

	got, err := tr.Transform("")
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}

func TestCollapseBlankLines(t *testing.T) {
	in := "a\n\n\n\nb\n\nc\n"
	got := collapseBlankLines(in)
	want := "a\n\nb\n\nc"
	if got != want {
		t.Errorf("collapseBlankLines(%q) = %q, want %q", in, got, want)
	}
}
