package extract

import (
	"strings"
	"testing"

	"github.com/pagesift/pagesift/pkg/score"
)

func TestSemanticStrategyClassPatterns(t *testing.T) {
	s := NewSemanticStrategy(score.NewScorer(nil), nil)

	markup := `<div class="sidebar">Related links and assorted navigation items</div>` +
		`<div class="article-body"><p>The real body of the story with plenty of text to score.</p></div>`

	if !s.CanHandle(markup) {
		t.Fatal("class pattern should activate the strategy")
	}
	cands := s.Extract(markup)
	if len(cands) == 0 {
		t.Fatal("expected candidates")
	}
	best := cands[0]
	for _, c := range cands[1:] {
		if c.Score > best.Score {
			best = c
		}
	}
	if !strings.Contains(best.Fragment, "real body of the story") {
		t.Errorf("best fragment = %q", best.Fragment)
	}
	if best.Source != "semantic" {
		t.Errorf("source = %q", best.Source)
	}
}

func TestSemanticStrategyRejectsTinyMatches(t *testing.T) {
	s := NewSemanticStrategy(score.NewScorer(nil), nil)
	cands := s.Extract(`<article>hi</article>`)
	if len(cands) != 0 {
		t.Errorf("tiny container should not become a candidate: %v", cands)
	}
}

func TestSemanticStrategyDeduplicates(t *testing.T) {
	s := NewSemanticStrategy(score.NewScorer(nil), nil)
	// One container matching both a tag and a class pattern must only
	// be proposed once.
	cands := s.Extract(`<article class="article-body"><p>Enough text for one single candidate here.</p></article>`)
	if len(cands) != 1 {
		t.Errorf("expected 1 candidate, got %d", len(cands))
	}
}

func TestInternationalStrategySkipsNestedDivs(t *testing.T) {
	s := NewInternationalStrategy(score.NewScorer(nil), nil)
	markup := `<div><div>вложенный русский текст достаточной длины для отбора</div></div>`

	cands := s.Extract(markup)
	if len(cands) == 0 {
		t.Fatal("expected candidates")
	}
	// Only the inner (leaf) div may be aggregated; the union candidate
	// comes first and must not contain the text twice.
	union := cands[0].Fragment
	if strings.Count(union, "вложенный") != 1 {
		t.Errorf("union candidate duplicates nested text:\n%s", union)
	}
}

func TestComprehensiveParagraphRuns(t *testing.T) {
	s := NewComprehensiveStrategy(score.NewScorer(nil), nil)
	markup := `<div id="c"><p>First paragraph of the run with words.</p>` +
		`<p>Second paragraph of the run with words.</p>` +
		`<p>Third paragraph of the run with words.</p></div>` +
		`<div id="n"><p>lonely</p></div>`

	cands := s.Extract(markup)
	var structural []Candidate
	for _, c := range cands {
		if strings.HasSuffix(c.Source, "/structure") {
			structural = append(structural, c)
		}
	}
	if len(structural) == 0 {
		t.Fatal("expected a structural candidate for three consecutive paragraphs")
	}
	if !strings.Contains(structural[0].Fragment, "Second paragraph") {
		t.Errorf("structural fragment = %q", structural[0].Fragment)
	}
	for _, c := range structural {
		if strings.Contains(c.Fragment, "lonely") && !strings.Contains(c.Fragment, "First paragraph") {
			t.Error("container with a single paragraph must not match structurally")
		}
	}
}

func TestComprehensiveAlwaysApplicable(t *testing.T) {
	s := NewComprehensiveStrategy(score.NewScorer(nil), nil)
	if !s.CanHandle("") || !s.CanHandle("anything at all") {
		t.Error("the fallback strategy must accept every input")
	}
}
