package extract

import (
	"sort"
	"strings"

	"github.com/pagesift/pagesift/internal/logger"
	"github.com/pagesift/pagesift/pkg/score"
)

// minContentChars is the absolute floor below which a chosen candidate
// is considered a miss.
const minContentChars = 50

// fallbackBodyChars is how much larger the cleaned body must be before
// it replaces a candidate that fell under the floor.
const fallbackBodyChars = 500

// Orchestrator runs strategies in priority order and picks a winner.
// The strategy list is fixed at construction, so orchestrators with
// different strategy sets or weight tables can coexist in one process.
type Orchestrator struct {
	strategies []Strategy
}

// NewOrchestrator builds an orchestrator over the given strategies,
// sorted by descending priority. With no strategies it installs the
// standard set (semantic, international, comprehensive) over scorer.
func NewOrchestrator(scorer *score.Scorer, yield YieldFunc, strategies ...Strategy) *Orchestrator {
	if len(strategies) == 0 {
		strategies = []Strategy{
			NewSemanticStrategy(scorer, yield),
			NewInternationalStrategy(scorer, yield),
			NewComprehensiveStrategy(scorer, yield),
		}
	}
	sorted := make([]Strategy, len(strategies))
	copy(sorted, strategies)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority() > sorted[j].Priority()
	})
	return &Orchestrator{strategies: sorted}
}

// Strategies returns the names of the installed strategies in run order.
func (o *Orchestrator) Strategies() []string {
	names := make([]string, len(o.strategies))
	for i, s := range o.strategies {
		names[i] = s.Name()
	}
	return names
}

// Select picks the winning candidate for cleaned markup. original is
// the pre-cleaning body, used as the last fallback level. Select never
// fails: with no willing strategy the cleaned markup itself is
// returned as a score-zero candidate.
func (o *Orchestrator) Select(cleaned, original string) (Candidate, int) {
	chosen := Candidate{Fragment: cleaned, Source: "raw", Score: 0}
	candidates := 0

	for _, s := range o.strategies {
		if !s.CanHandle(cleaned) {
			continue
		}
		cands := s.Extract(cleaned)
		if len(cands) == 0 {
			// A willing strategy with nothing to propose falls through
			// to the next one.
			continue
		}
		candidates = len(cands)
		best := cands[0]
		for _, c := range cands[1:] {
			if c.Score > best.Score {
				best = c
			}
		}
		logger.Debug("extract: strategy selected",
			"strategy", s.Name(), "candidates", len(cands), "score", best.Score)
		chosen = best
		break
	}

	return o.applyFloor(chosen, cleaned, original), candidates
}

// applyFloor implements the multi-level fallback after selection: a
// candidate under the floor gives way to the cleaned body when that
// body is substantially larger; an empty cleaned body gives way to
// the original markup.
func (o *Orchestrator) applyFloor(chosen Candidate, cleaned, original string) Candidate {
	chosenLen := len(score.StripTags(chosen.Fragment))
	cleanedLen := len(score.StripTags(cleaned))

	if chosenLen < minContentChars && cleanedLen > fallbackBodyChars {
		logger.Debug("extract: candidate under floor, substituting cleaned body",
			"candidate_chars", chosenLen, "body_chars", cleanedLen)
		chosen = Candidate{Fragment: cleaned, Source: "fallback-body", Score: 0}
		chosenLen = cleanedLen
	}
	if chosenLen == 0 && strings.TrimSpace(chosen.Fragment) == "" &&
		strings.TrimSpace(original) != "" {
		logger.Debug("extract: cleaned body empty, substituting original")
		chosen = Candidate{Fragment: original, Source: "fallback-original", Score: 0}
	}
	return chosen
}
