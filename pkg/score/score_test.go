package score

import (
	"strings"
	"testing"
)

func TestScoreDeterminism(t *testing.T) {
	s := NewScorer(nil)
	fragment := `<article><h1>Title</h1><p>Some body text. More text here. And a third sentence.</p></article>`
	first := s.Score(fragment)
	for i := 0; i < 10; i++ {
		if got := s.Score(fragment); got != first {
			t.Fatalf("score changed across calls: %v then %v", first, got)
		}
	}
}

func TestScoreMonotonicInTextLength(t *testing.T) {
	s := NewScorer(nil)
	short := `<p>short text</p>`
	long := `<p>short text plus a good deal of additional body content</p>`
	if s.Score(long) <= s.Score(short) {
		t.Error("longer plain text with identical structure must not score lower")
	}
}

func TestScoreStructuralBonuses(t *testing.T) {
	s := NewScorer(nil)
	text := "Exactly the same text content in both fragments here"

	bare := "<div>" + text + "</div>"
	para := "<p>" + text + "</p>"
	heading := "<h1>" + text + "</h1>"

	if s.Score(para) <= s.Score(bare) {
		t.Error("paragraph tag should add a bonus")
	}
	if s.Score(heading) <= s.Score(para) {
		t.Error("heading weight should exceed paragraph weight")
	}
}

func TestScoreEmphasisBelowParagraph(t *testing.T) {
	w := DefaultWeights()
	if !(w.Heading > w.Paragraph && w.Paragraph > w.Emphasis) {
		t.Errorf("expected heading > paragraph > emphasis, got %d/%d/%d",
			w.Heading, w.Paragraph, w.Emphasis)
	}
}

func TestScoreScriptBonus(t *testing.T) {
	s := NewScorer(nil)
	tests := []struct {
		name string
		text string
	}{
		{"cjk", "<div>这是一段中文内容用于测试评分逻辑</div>"},
		{"cyrillic", "<div>Это русский текст для проверки</div>"},
		{"hebrew", "<div>זהו טקסט בעברית לבדיקה</div>"},
		{"arabic", "<div>هذا نص عربي للاختبار</div>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// A Latin fragment with the same byte length must score lower.
			latin := "<div>" + strings.Repeat("x", len(StripTags(tt.text))) + "</div>"
			if s.Score(tt.text) <= s.Score(latin) {
				t.Errorf("script bonus missing for %s", tt.name)
			}
		})
	}
}

func TestScoreSentenceBonus(t *testing.T) {
	s := NewScorer(nil)
	// base is slightly longer, so only the sentence bonus can put the
	// multi-sentence fragment ahead.
	base := "Some words without any terminator at all plus extra padding here"
	sentences := "First sentence. Second sentence. Third sentence here now."
	if len(base) < len(sentences) {
		t.Fatalf("fixture drift: base %d bytes must not be shorter than %d", len(base), len(sentences))
	}
	if s.Score("<div>"+sentences+"</div>") <= s.Score("<div>"+base+"</div>") {
		t.Error("multi-sentence fragment should earn the sentence bonus")
	}
}

func TestScoreNoisePenalty(t *testing.T) {
	s := NewScorer(nil)
	clean := "<div>Plain informative body text for this check.</div>"
	noisy := "<div>Plain informative body advertisement for this.</div>"
	if s.Score(noisy) >= s.Score(clean) {
		t.Error("noise vocabulary should subtract from the score")
	}
}

func TestScoreClampedAtZero(t *testing.T) {
	s := NewScorer(nil)
	got := s.Score("<div>advertisement navigation footer copyright</div>")
	if got < 0 {
		t.Errorf("score must be clamped to >= 0, got %v", got)
	}
}

func TestStripTags(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"<p>hello</p>", "hello"},
		{"plain", "plain"},
		{`<a href="x">link</a> tail`, "link tail"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StripTags(tt.in); got != tt.want {
			t.Errorf("StripTags(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHasNonLatinScript(t *testing.T) {
	if HasNonLatinScript("only latin text") {
		t.Error("latin text misdetected")
	}
	if !HasNonLatinScript("含有中文") {
		t.Error("cjk text not detected")
	}
}

func TestParseWeights(t *testing.T) {
	w, err := ParseWeights([]byte("version: 1\nparagraph: 123\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if w.Paragraph != 123 {
		t.Errorf("paragraph = %d, want 123", w.Paragraph)
	}
	if w.Heading != DefaultWeights().Heading {
		t.Error("unset fields should keep defaults")
	}

	if _, err := ParseWeights([]byte("version: 1\nparagraph: -5\n")); err == nil {
		t.Error("negative weight should fail validation")
	}
	if _, err := ParseWeights([]byte("{not yaml")); err == nil {
		t.Error("bad yaml should fail")
	}
}
