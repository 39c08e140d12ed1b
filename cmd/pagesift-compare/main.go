// pagesift-compare runs pagesift and go-readability over the same
// input and prints size, timing and structure for each engine.
package main

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/pagesift/pagesift/pkg/extract"
	"github.com/pagesift/pagesift/pkg/render"
	"github.com/pagesift/pagesift/pkg/sanitize"
)

type engine struct {
	name string
	run  func(html, baseURI string) (string, error)
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: pagesift-compare <file|-> [base-uri]\n")
		os.Exit(1)
	}

	html, err := readInput(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	baseURI := ""
	if len(os.Args) > 2 {
		baseURI = os.Args[2]
	}

	fmt.Printf("Input: %d bytes\n\n", len(html))
	fmt.Printf("%-24s %10s %8s %10s %6s %6s %6s\n",
		"Engine", "Output", "Reduce%", "Time", "Elems", "Paras", "Links")
	fmt.Printf("%-24s %10s %8s %10s %6s %6s %6s\n",
		"------", "------", "-------", "----", "-----", "-----", "-----")

	engines := []engine{
		{"pagesift (default)", pagesiftEngine(nil)},
		{"pagesift (minimal)", pagesiftEngine(&extract.Options{Sanitize: sanitize.PresetMinimal()})},
		{"pagesift (aggressive)", pagesiftEngine(&extract.Options{Sanitize: sanitize.PresetAggressive()})},
		{"pagesift -> markdown", markdownEngine()},
		{"go-readability", readabilityEngine()},
	}

	for _, e := range engines {
		start := time.Now()
		out, err := e.run(html, baseURI)
		duration := time.Since(start)

		if err != nil {
			fmt.Printf("%-24s %10s %8s %10v (error: %v)\n",
				e.name, "ERROR", "-", duration.Round(time.Millisecond), err)
			continue
		}

		reduction := 0.0
		if len(html) > 0 {
			reduction = float64(len(html)-len(out)) / float64(len(html)) * 100
		}

		elems, paras, links := structureStats(out)
		fmt.Printf("%-24s %10d %7.1f%% %10v %6s %6s %6s\n",
			e.name, len(out), reduction, duration.Round(time.Millisecond),
			elems, paras, links)
	}
}

func pagesiftEngine(opts *extract.Options) func(html, baseURI string) (string, error) {
	ex := extract.New(opts)
	return func(html, baseURI string) (string, error) {
		return ex.Extract(html, baseURI, "").Content, nil
	}
}

func markdownEngine() func(html, baseURI string) (string, error) {
	ex := extract.New(nil)
	tr := render.NewMarkdown()
	return func(html, baseURI string) (string, error) {
		return tr.Transform(ex.Extract(html, baseURI, "").Content)
	}
}

func readabilityEngine() func(html, baseURI string) (string, error) {
	return func(html, baseURI string) (string, error) {
		var pageURL *url.URL
		if baseURI != "" {
			pageURL, _ = url.Parse(baseURI)
		}
		article, err := readability.FromReader(strings.NewReader(html), pageURL)
		if err != nil {
			return "", err
		}
		return article.Content, nil
	}
}

// structureStats counts elements, paragraphs and links in an HTML
// fragment. Non-HTML output gets dashes.
func structureStats(out string) (elems, paras, links string) {
	if !strings.Contains(out, "<") {
		return "-", "-", "-"
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	if err != nil {
		return "-", "-", "-"
	}
	return fmt.Sprint(doc.Find("body *").Length()),
		fmt.Sprint(doc.Find("p").Length()),
		fmt.Sprint(doc.Find("a").Length())
}

func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path) //#nosec G304 -- CLI tool reads a user-specified input file
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}
