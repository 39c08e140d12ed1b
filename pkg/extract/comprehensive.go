package extract

import (
	"strings"

	"github.com/pagesift/pagesift/pkg/dom"
	"github.com/pagesift/pagesift/pkg/score"
)

// minDenseBytes is the plain-text size a block needs to count as
// text-dense for the splitting sub-heuristic.
const minDenseBytes = 100

// minParagraphRun is how many consecutive paragraphs make a container
// structurally article-like.
const minParagraphRun = 3

// ComprehensiveStrategy is the always-applicable fallback. It combines
// three sub-heuristics: text-dense block splitting, full aggregation
// of paragraph content, and structural matching of containers with
// runs of consecutive paragraphs. Each sub-heuristic contributes its
// own candidates.
type ComprehensiveStrategy struct {
	scorer *score.Scorer
	yield  YieldFunc
}

// NewComprehensiveStrategy returns the strategy. scorer must not be
// nil; yield may be.
func NewComprehensiveStrategy(scorer *score.Scorer, yield YieldFunc) *ComprehensiveStrategy {
	return &ComprehensiveStrategy{scorer: scorer, yield: yield}
}

func (s *ComprehensiveStrategy) Name() string { return "comprehensive" }

func (s *ComprehensiveStrategy) Priority() int { return 100 }

func (s *ComprehensiveStrategy) CanHandle(string) bool { return true }

func (s *ComprehensiveStrategy) Extract(markup string) []Candidate {
	doc := dom.Parse(markup)
	p := pacer{yield: s.yield}

	var out []Candidate
	out = append(out, s.denseBlocks(doc, &p)...)
	if agg := s.aggregate(doc, &p); agg != nil {
		out = append(out, *agg)
	}
	out = append(out, s.paragraphRuns(doc, &p)...)
	return out
}

// denseBlocks proposes every div whose own text is substantial.
func (s *ComprehensiveStrategy) denseBlocks(doc *dom.Document, p *pacer) []Candidate {
	var out []Candidate
	for _, id := range doc.FindByTag("DIV") {
		if len(doc.PlainText(id)) < minDenseBytes {
			continue
		}
		fragment := doc.Serialize(id)
		out = append(out, Candidate{
			Fragment: fragment,
			Source:   s.Name() + "/dense",
			Score:    s.scorer.Score(fragment),
		})
		p.tick()
	}
	return out
}

// aggregate joins every paragraph and text-bearing leaf div into one
// union candidate.
func (s *ComprehensiveStrategy) aggregate(doc *dom.Document, p *pacer) *Candidate {
	var parts []string
	for _, id := range doc.FindByTag("P") {
		if strings.TrimSpace(doc.PlainText(id)) == "" {
			continue
		}
		parts = append(parts, doc.Serialize(id))
		p.tick()
	}
	for _, id := range doc.FindByTag("DIV") {
		if !isLeafBlock(doc, id) || len(doc.PlainText(id)) < minRunBytes {
			continue
		}
		parts = append(parts, doc.Serialize(id))
		p.tick()
	}
	if len(parts) == 0 {
		return nil
	}
	joined := strings.Join(parts, "")
	return &Candidate{
		Fragment: joined,
		Source:   s.Name() + "/aggregate",
		Score:    s.scorer.Score(joined),
	}
}

// paragraphRuns proposes containers holding at least minParagraphRun
// consecutive <p> children.
func (s *ComprehensiveStrategy) paragraphRuns(doc *dom.Document, p *pacer) []Candidate {
	var out []Candidate
	for _, id := range doc.Elements(dom.Root) {
		run, best := 0, 0
		for _, c := range doc.Children(id) {
			if doc.KindOf(c) == dom.ElementKind && doc.Tag(c) == "P" {
				run++
				if run > best {
					best = run
				}
				continue
			}
			// Text runs between paragraphs do not break the sequence.
			if doc.KindOf(c) == dom.TextKind {
				continue
			}
			run = 0
		}
		if best < minParagraphRun {
			continue
		}
		fragment := doc.Serialize(id)
		out = append(out, Candidate{
			Fragment: fragment,
			Source:   s.Name() + "/structure",
			Score:    s.scorer.Score(fragment),
		})
		p.tick()
	}
	return out
}
