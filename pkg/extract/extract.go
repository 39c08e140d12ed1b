package extract

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pagesift/pagesift/internal/logger"
	"github.com/pagesift/pagesift/pkg/dom"
	"github.com/pagesift/pagesift/pkg/sanitize"
	"github.com/pagesift/pagesift/pkg/score"
)

// Options configures one extractor. The zero value is not usable;
// start from DefaultOptions.
type Options struct {
	// MaxContentSize overrides the sanitize size guard when positive.
	MaxContentSize int

	// DisallowedFilenameChars extend the set FileStem replaces.
	DisallowedFilenameChars string

	// Weights replaces the default scorer table.
	Weights *score.Weights

	// Sanitize replaces the default cleanup configuration.
	Sanitize *sanitize.Config

	// Strategies replaces the standard strategy set.
	Strategies []Strategy

	// Yield is the advisory pacing hook passed to strategies.
	Yield YieldFunc
}

// DefaultOptions returns the stock configuration.
func DefaultOptions() *Options {
	return &Options{}
}

// Extractor runs the full pipeline: sanitize, orchestrate strategies,
// pick a winner, attach metadata. One extractor is safe for
// concurrent use across different inputs; extraction calls share no
// mutable state.
type Extractor struct {
	opts     *Options
	pipeline *sanitize.Pipeline
	orch     *Orchestrator
}

// New builds an extractor. nil opts means defaults.
func New(opts *Options) *Extractor {
	if opts == nil {
		opts = DefaultOptions()
	}
	cfg := opts.Sanitize
	if cfg == nil {
		cfg = sanitize.DefaultConfig()
	}
	if opts.MaxContentSize > 0 {
		clone := *cfg
		clone.MaxBytes = opts.MaxContentSize
		cfg = &clone
	}
	scorer := score.NewScorer(opts.Weights)
	return &Extractor{
		opts:     opts,
		pipeline: sanitize.New(cfg),
		orch:     NewOrchestrator(scorer, opts.Yield, opts.Strategies...),
	}
}

// Extract produces an Article for any input string. It never fails:
// empty input yields an Article whose title is the fallback and whose
// content is empty.
func (e *Extractor) Extract(markup, baseURI, fallbackTitle string) *Article {
	return e.ExtractWithStats(markup, baseURI, fallbackTitle).Article
}

// ExtractWithStats is Extract plus run metrics and warnings.
func (e *Extractor) ExtractWithStats(markup, baseURI, fallbackTitle string) *Result {
	start := time.Now()
	res := &Result{Stats: &Stats{InputBytes: len(markup)}}

	if strings.TrimSpace(markup) == "" {
		res.Article = emptyArticle(baseURI, fallbackTitle)
		res.Stats.TotalDuration = time.Since(start)
		return res
	}

	// Metadata comes from the original document: the cleanup pipeline
	// strips the head block that holds most of it.
	doc := dom.Parse(markup)

	cleanRes := e.pipeline.ApplyWithStats(markup)
	res.Stats.Sanitize = cleanRes.Stats
	res.Stats.CleanedBytes = len(cleanRes.Content)
	for _, w := range cleanRes.Warnings {
		res.AddWarning(w.Phase, w.Message, w.Context)
	}

	chosen, candidates := e.orch.Select(cleanRes.Content, markup)
	res.Stats.Strategy = chosen.Source
	res.Stats.Candidates = candidates
	res.Stats.Score = chosen.Score

	content := chosen.Fragment
	text := dom.Parse(content).PlainText(dom.Root)
	if text == "" && chosen.Source != "raw" {
		res.AddWarning("select", "winning candidate has no text", chosen.Source)
	}

	lang := extractLanguage(doc, text)
	res.Article = &Article{
		Title:       extractTitle(doc, fallbackTitle),
		Byline:      extractByline(doc),
		Language:    lang,
		Direction:   extractDirection(doc, lang),
		Content:     content,
		TextContent: text,
		Length:      utf8.RuneCountInString(text),
		Excerpt:     excerpt(text, excerptRunes),
		SiteName:    extractSiteName(doc, baseURI),
		Published:   extractPublished(doc),
		Keywords:    extractKeywords(doc),
		BaseURI:     baseURI,
		Math:        extractMath(doc),
	}
	res.Stats.TotalDuration = time.Since(start)

	logger.Debug("extract: done",
		"strategy", res.Stats.Strategy,
		"length", res.Article.Length,
		"duration", res.Stats.TotalDuration)
	return res
}

// Extract is the package-level convenience over a throwaway extractor
// with the given options.
func Extract(markup, baseURI, fallbackTitle string, opts *Options) *Article {
	return New(opts).Extract(markup, baseURI, fallbackTitle)
}

func emptyArticle(baseURI, fallbackTitle string) *Article {
	return &Article{
		Title:     fallbackTitle,
		Language:  "en",
		Direction: "ltr",
		BaseURI:   baseURI,
	}
}

// Stats captures what one extraction did.
type Stats struct {
	InputBytes   int     `json:"input_bytes"`
	CleanedBytes int     `json:"cleaned_bytes"`
	Strategy     string  `json:"strategy"`
	Candidates   int     `json:"candidates"`
	Score        float64 `json:"score"`

	Sanitize      *sanitize.Stats `json:"sanitize,omitempty"`
	TotalDuration time.Duration   `json:"total_duration_ms"`
}

// String renders a short human-readable summary.
func (s *Stats) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Input: %d bytes, cleaned: %d bytes\n", s.InputBytes, s.CleanedBytes)
	fmt.Fprintf(&sb, "Strategy: %s (%d candidates, score %.0f)\n", s.Strategy, s.Candidates, s.Score)
	fmt.Fprintf(&sb, "Total: %v\n", s.TotalDuration.Round(time.Millisecond))
	return sb.String()
}

// Warning is a non-fatal issue hit during extraction.
type Warning struct {
	Phase   string `json:"phase"`
	Message string `json:"message"`
	Context string `json:"context"`
}

// Result is one extraction outcome: the Article plus run metrics.
type Result struct {
	Article  *Article  `json:"article"`
	Stats    *Stats    `json:"stats"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// AddWarning appends a warning to the result.
func (r *Result) AddWarning(phase, message, context string) {
	r.Warnings = append(r.Warnings, Warning{Phase: phase, Message: message, Context: context})
}
