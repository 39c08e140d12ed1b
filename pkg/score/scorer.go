package score

import (
	"strings"
	"unicode"
)

// Scorer scores markup fragments against one weight table. It keeps
// no per-call state; one scorer can serve concurrent extractions.
type Scorer struct {
	w *Weights
}

// NewScorer returns a scorer over the given table. nil means defaults.
func NewScorer(w *Weights) *Scorer {
	if w == nil {
		w = DefaultWeights()
	}
	return &Scorer{w: w}
}

// Weights returns the table the scorer uses.
func (s *Scorer) Weights() *Weights { return s.w }

// tagFamilies maps a weight to the open-tag prefixes that earn it.
// Presence of any prefix in a family counts once.
var tagFamilies = []struct {
	weight   func(*Weights) int
	prefixes []string
}{
	{func(w *Weights) int { return w.Heading }, []string{"<h1", "<h2", "<h3", "<h4", "<h5", "<h6"}},
	{func(w *Weights) int { return w.Paragraph }, []string{"<p>", "<p "}},
	{func(w *Weights) int { return w.List }, []string{"<ul", "<ol", "<li", "<dl"}},
	{func(w *Weights) int { return w.Quote }, []string{"<blockquote", "<q>", "<q "}},
	{func(w *Weights) int { return w.Emphasis }, []string{"<em", "<strong", "<b>", "<b ", "<i>", "<i "}},
}

// sentenceTerminators cover both Western and CJK punctuation.
const sentenceTerminators = "。！？.!?"

// Score rates a markup fragment. Base score is the plain-text length;
// structural tags, non-Latin scripts and sentence count add bonuses,
// noise vocabulary subtracts. The result is clamped to zero.
func (s *Scorer) Score(fragment string) float64 {
	plain := StripTags(fragment)
	total := len(plain)

	lower := strings.ToLower(fragment)
	for _, fam := range tagFamilies {
		for _, p := range fam.prefixes {
			if strings.Contains(lower, p) {
				total += fam.weight(s.w)
				break
			}
		}
	}

	total += s.w.ScriptBonus * len(scriptFamilies(plain))

	if countSentences(plain) >= s.w.MinSentences {
		total += s.w.SentenceBonus
	}

	lowerPlain := strings.ToLower(plain)
	for _, word := range s.w.NoiseWords {
		if strings.Contains(lowerPlain, word) {
			total -= s.w.NoisePenalty
		}
	}

	if total < 0 {
		return 0
	}
	return float64(total)
}

// StripTags removes markup, leaving the text runs joined as-is.
func StripTags(fragment string) string {
	var sb strings.Builder
	sb.Grow(len(fragment))
	depth := 0
	for i := 0; i < len(fragment); i++ {
		c := fragment[i]
		switch {
		case c == '<':
			depth++
		case c == '>':
			if depth > 0 {
				depth--
			}
		case depth == 0:
			sb.WriteByte(c)
		}
	}
	return strings.TrimSpace(sb.String())
}

// countSentences counts sentence terminators in text.
func countSentences(text string) int {
	n := 0
	for _, r := range text {
		if strings.ContainsRune(sentenceTerminators, r) {
			n++
		}
	}
	return n
}

// ScriptFamily is a non-Latin writing system the scorer rewards.
type ScriptFamily string

const (
	ScriptCJK      ScriptFamily = "cjk"
	ScriptCyrillic ScriptFamily = "cyrillic"
	ScriptHebrew   ScriptFamily = "hebrew"
	ScriptArabic   ScriptFamily = "arabic"
)

// scriptFamilies reports which families appear in text, in a fixed
// order so scoring stays deterministic.
func scriptFamilies(text string) []ScriptFamily {
	var cjk, cyr, heb, ara bool
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Han, r), unicode.Is(unicode.Hiragana, r),
			unicode.Is(unicode.Katakana, r), unicode.Is(unicode.Hangul, r):
			cjk = true
		case unicode.Is(unicode.Cyrillic, r):
			cyr = true
		case unicode.Is(unicode.Hebrew, r):
			heb = true
		case unicode.Is(unicode.Arabic, r):
			ara = true
		}
		if cjk && cyr && heb && ara {
			break
		}
	}
	var out []ScriptFamily
	if cjk {
		out = append(out, ScriptCJK)
	}
	if cyr {
		out = append(out, ScriptCyrillic)
	}
	if heb {
		out = append(out, ScriptHebrew)
	}
	if ara {
		out = append(out, ScriptArabic)
	}
	return out
}

// HasNonLatinScript reports whether text uses any rewarded script
// family. The internationalized extraction strategy keys off this.
func HasNonLatinScript(text string) bool {
	return len(scriptFamilies(text)) > 0
}
