package extract

import (
	"strings"

	"github.com/pagesift/pagesift/pkg/dom"
	"github.com/pagesift/pagesift/pkg/score"
)

// semanticTags are container tags that denote an article body outright.
var semanticTags = []string{"MAIN", "ARTICLE"}

// semanticPatterns match class/id text of known article containers,
// most specific first. The list includes localized markers seen on
// CJK news sites.
var semanticPatterns = []string{
	"article-body",
	"articlebody",
	"article-content",
	"article-text",
	"post-body",
	"post-content",
	"entry-content",
	"story-body",
	"story-content",
	"main-content",
	"content-body",
	"article",
	"story",
	"post",
	"本文",
	"正文",
	"content",
	"text",
}

// minSemanticChars is the smallest plain-text size a semantic match
// must carry to become a candidate.
const minSemanticChars = 25

// SemanticStrategy proposes candidates from containers that declare
// themselves article bodies: semantic HTML5 tags first, then known
// class/id naming conventions.
type SemanticStrategy struct {
	scorer *score.Scorer
	yield  YieldFunc
}

// NewSemanticStrategy returns the strategy. scorer must not be nil;
// yield may be.
func NewSemanticStrategy(scorer *score.Scorer, yield YieldFunc) *SemanticStrategy {
	return &SemanticStrategy{scorer: scorer, yield: yield}
}

func (s *SemanticStrategy) Name() string { return "semantic" }

func (s *SemanticStrategy) Priority() int { return 300 }

// CanHandle looks for any semantic marker at the string level; the
// tree is only built when at least one marker exists.
func (s *SemanticStrategy) CanHandle(markup string) bool {
	lower := strings.ToLower(markup)
	if strings.Contains(lower, "<main") || strings.Contains(lower, "<article") {
		return true
	}
	for _, p := range semanticPatterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

func (s *SemanticStrategy) Extract(markup string) []Candidate {
	doc := dom.Parse(markup)
	var out []Candidate
	seen := make(map[dom.NodeID]bool)
	p := pacer{yield: s.yield}

	propose := func(id dom.NodeID) {
		if seen[id] {
			return
		}
		seen[id] = true
		inner := doc.InnerHTML(id)
		if len(score.StripTags(inner)) < minSemanticChars {
			return
		}
		out = append(out, Candidate{
			Fragment: inner,
			Source:   s.Name(),
			Score:    s.scorer.Score(inner),
		})
		p.tick()
	}

	for _, tag := range semanticTags {
		for _, id := range doc.FindByTag(tag) {
			propose(id)
		}
	}

	elements := doc.Elements(dom.Root)
	for _, pattern := range semanticPatterns {
		for _, id := range elements {
			ci := doc.ClassAndID(id)
			if ci == "" || !strings.Contains(ci, pattern) {
				continue
			}
			propose(id)
		}
	}
	return out
}
