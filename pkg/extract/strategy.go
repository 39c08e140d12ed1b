package extract

// Candidate is one content proposal from a strategy.
type Candidate struct {
	// Fragment is serialized markup for the proposed content block.
	Fragment string `json:"fragment"`

	// Source identifies the proposing strategy.
	Source string `json:"source"`

	// Score is the candidate's quality rating, clamped to >= 0.
	Score float64 `json:"score"`
}

// Strategy proposes content candidates from cleaned markup. Strategies
// are pure over their input; a constructed strategy can be shared
// across concurrent extractions.
type Strategy interface {
	// Name identifies the strategy in candidate sources and logs.
	Name() string

	// Priority orders strategies; higher runs first. Priorities are
	// declared, not computed, and also break candidate score ties.
	Priority() int

	// CanHandle reports whether the strategy applies to this markup.
	CanHandle(markup string) bool

	// Extract proposes zero or more candidates, best-effort ordered.
	Extract(markup string) []Candidate
}

// YieldFunc is an advisory pacing hook. Strategies iterating large
// candidate sets call it at fixed intervals so a cooperative host
// loop is not starved. A nil hook is a no-op; correctness never
// depends on it.
type YieldFunc func()

// yieldInterval is how many items are processed between yield calls.
const yieldInterval = 8

// pacer wraps a YieldFunc with interval counting. The zero value of
// a pacer with a nil yield never fires.
type pacer struct {
	yield YieldFunc
	n     int
}

func (p *pacer) tick() {
	if p.yield == nil {
		return
	}
	p.n++
	if p.n%yieldInterval == 0 {
		p.yield()
	}
}
