package extract

import (
	"strings"

	"github.com/pagesift/pagesift/pkg/dom"
	"github.com/pagesift/pagesift/pkg/score"
)

// i18nKeywords activate the strategy even without non-Latin text;
// they mark generically content-bearing containers.
var i18nKeywords = []string{"article-body", "entry-content", "post-content", "本文", "正文"}

// minRunBytes is the smallest text run the strategy aggregates. CJK
// characters are three bytes each, so short-but-dense runs still pass.
const minRunBytes = 20

// InternationalStrategy targets documents whose content is written in
// non-Latin scripts, where class naming conventions and word-count
// heuristics tuned for English pages miss the body. It aggregates all
// substantial paragraph, heading and leaf-div text runs into a union
// candidate and also proposes each container on its own.
type InternationalStrategy struct {
	scorer *score.Scorer
	yield  YieldFunc
}

// NewInternationalStrategy returns the strategy. scorer must not be
// nil; yield may be.
func NewInternationalStrategy(scorer *score.Scorer, yield YieldFunc) *InternationalStrategy {
	return &InternationalStrategy{scorer: scorer, yield: yield}
}

func (s *InternationalStrategy) Name() string { return "international" }

func (s *InternationalStrategy) Priority() int { return 200 }

func (s *InternationalStrategy) CanHandle(markup string) bool {
	if score.HasNonLatinScript(markup) {
		return true
	}
	lower := strings.ToLower(markup)
	for _, kw := range i18nKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// blockTags are the containers whose text runs the strategy collects.
var blockTags = []string{"P", "H1", "H2", "H3", "H4", "H5", "H6", "DIV"}

func (s *InternationalStrategy) Extract(markup string) []Candidate {
	doc := dom.Parse(markup)
	p := pacer{yield: s.yield}

	var union []string
	var perBlock []Candidate
	for _, tag := range blockTags {
		for _, id := range doc.FindByTag(tag) {
			if tag == "DIV" && !isLeafBlock(doc, id) {
				continue
			}
			plain := doc.PlainText(id)
			if len(plain) < minRunBytes {
				continue
			}
			fragment := doc.Serialize(id)
			union = append(union, fragment)
			perBlock = append(perBlock, Candidate{
				Fragment: fragment,
				Source:   s.Name(),
				Score:    s.scorer.Score(fragment),
			})
			p.tick()
		}
	}
	if len(union) == 0 {
		return nil
	}

	joined := strings.Join(union, "")
	out := []Candidate{{
		Fragment: joined,
		Source:   s.Name(),
		Score:    s.scorer.Score(joined),
	}}
	return append(out, perBlock...)
}

// isLeafBlock reports whether a div holds text directly rather than
// through nested block containers, so aggregation never counts the
// same run twice.
func isLeafBlock(doc *dom.Document, id dom.NodeID) bool {
	for _, c := range doc.Children(id) {
		if doc.KindOf(c) != dom.ElementKind {
			continue
		}
		switch doc.Tag(c) {
		case "DIV", "P", "SECTION", "ARTICLE", "UL", "OL", "TABLE":
			return false
		}
	}
	return true
}
