package sanitize

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pagesift/pagesift/internal/logger"
)

// Pipeline applies the configured cleanup phases in order, behind a
// size guard. It holds no mutable state between calls; one pipeline
// can serve concurrent inputs.
type Pipeline struct {
	cfg    *Config
	phases []Phase
}

// New builds a pipeline from cfg. A nil or invalid cfg degrades to
// DefaultConfig; construction never fails.
func New(cfg *Config) *Pipeline {
	if cfg == nil {
		cfg = DefaultConfig()
	} else if err := cfg.Validate(); err != nil {
		logger.Warn("sanitize: invalid config, using defaults", "error", err)
		cfg = DefaultConfig()
	}
	var phases []Phase
	if cfg.StripBlocks {
		phases = append(phases, blockStrip{})
	}
	if cfg.StripAds {
		phases = append(phases, adStrip{deny: lowerAll(cfg.AdDenyTokens), allow: lowerAll(cfg.AdAllowTokens)})
	}
	if cfg.StripInlineStyles {
		phases = append(phases, styleStrip{})
	}
	if cfg.CollapseWhitespace {
		phases = append(phases, whitespaceCollapse{})
	}
	return &Pipeline{cfg: cfg, phases: phases}
}

// Phases returns the names of the active phases in execution order.
func (p *Pipeline) Phases() []string {
	names := make([]string, len(p.phases))
	for i, ph := range p.phases {
		names[i] = ph.Name()
	}
	return names
}

// Apply runs the size guard and every phase, returning the cleaned
// content. It never fails; oversized input degrades to a truncated
// cleaned string.
func (p *Pipeline) Apply(content string) string {
	return p.ApplyWithStats(content).Content
}

// ApplyWithStats runs the pipeline and reports per-phase metrics.
func (p *Pipeline) ApplyWithStats(content string) *Result {
	start := time.Now()
	res := &Result{Stats: NewStats()}
	res.Stats.InputBytes = len(content)

	if max := p.cfg.MaxBytes; max > 0 && len(content) > max {
		// Cut plus marker must stay within the configured maximum.
		cut := max * 4 / 5
		if rem := max - len(TruncationMarker); cut > rem {
			cut = rem
		}
		if cut > 0 {
			content = truncate(content, cut) + TruncationMarker
		} else {
			// Maximum too small to carry the marker; hard cut.
			content = truncate(content, max)
		}
		res.Stats.Truncated = true
		res.AddWarning("guard", "input over size limit, truncated", fmt.Sprintf("max=%d", max))
		logger.Debug("sanitize: truncated oversized input",
			"input_bytes", res.Stats.InputBytes, "max_bytes", max)
	}

	for _, ph := range p.phases {
		phaseStart := time.Now()
		content = ph.Apply(content)
		res.Stats.RecordPhase(ph.Name(), time.Since(phaseStart))
	}

	res.Content = content
	res.Stats.OutputBytes = len(content)
	res.Stats.TotalDuration = time.Since(start)
	return res
}

// truncate cuts content([:n]) back to a rune boundary so the marker
// never lands mid-sequence.
func truncate(content string, n int) string {
	if n >= len(content) {
		return content
	}
	for n > 0 && !utf8.RuneStart(content[n]) {
		n--
	}
	return content[:n]
}

func lowerAll(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = strings.ToLower(t)
	}
	return out
}

// Stats captures what a pipeline run did.
type Stats struct {
	InputBytes  int  `json:"input_bytes"`
	OutputBytes int  `json:"output_bytes"`
	Truncated   bool `json:"truncated"`

	PhaseDurations map[string]time.Duration `json:"phase_durations_ms"`
	TotalDuration  time.Duration            `json:"total_duration_ms"`
}

// NewStats returns a Stats with initialized maps.
func NewStats() *Stats {
	return &Stats{PhaseDurations: make(map[string]time.Duration)}
}

// RecordPhase records one phase's runtime.
func (s *Stats) RecordPhase(name string, d time.Duration) {
	s.PhaseDurations[name] += d
}

// ReductionPercent returns the size reduction achieved by the run.
func (s *Stats) ReductionPercent() float64 {
	if s.InputBytes == 0 {
		return 0
	}
	return float64(s.InputBytes-s.OutputBytes) / float64(s.InputBytes) * 100
}

// String renders a short human-readable summary.
func (s *Stats) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Size: %d -> %d bytes (%.1f%% reduction)\n",
		s.InputBytes, s.OutputBytes, s.ReductionPercent())
	if s.Truncated {
		sb.WriteString("Input was truncated by the size guard\n")
	}
	fmt.Fprintf(&sb, "Total: %v\n", s.TotalDuration.Round(time.Millisecond))
	return sb.String()
}

// Warning is a non-fatal issue hit during a run.
type Warning struct {
	Phase   string `json:"phase"`
	Message string `json:"message"`
	Context string `json:"context"`
}

// String formats the warning for logs.
func (w Warning) String() string {
	if w.Context != "" {
		return fmt.Sprintf("[%s] %s (%s)", w.Phase, w.Message, w.Context)
	}
	return fmt.Sprintf("[%s] %s", w.Phase, w.Message)
}

// Result is the outcome of one pipeline run.
type Result struct {
	Content  string    `json:"content"`
	Stats    *Stats    `json:"stats"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// AddWarning appends a warning to the result.
func (r *Result) AddWarning(phase, message, context string) {
	r.Warnings = append(r.Warnings, Warning{Phase: phase, Message: message, Context: context})
}
