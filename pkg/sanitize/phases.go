package sanitize

import (
	"regexp"
	"strings"
)

// Phase is one cleanup step. Apply must be a pure function of its
// input so phases can be disabled and reordered independently.
type Phase interface {
	Name() string
	Apply(content string) string
}

// asciiLower lowercases only A-Z bytes, keeping byte offsets aligned
// with the original string, which full Unicode lowering does not.
func asciiLower(s string) string {
	var b []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			if b == nil {
				b = []byte(s)
			}
			b[i] = c + 'a' - 'A'
		}
	}
	if b == nil {
		return s
	}
	return string(b)
}

// tagBoundary reports whether the byte after a matched "<name" prefix
// actually terminates the tag name.
func tagBoundary(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '>' || c == '/'
}

// findOpenTag locates the next "<name" occurrence at or after from,
// returning the index of '<' or -1.
func findOpenTag(lower, name string, from int) int {
	needle := "<" + name
	for {
		i := strings.Index(lower[from:], needle)
		if i < 0 {
			return -1
		}
		i += from
		end := i + len(needle)
		if end >= len(lower) || tagBoundary(lower[end]) {
			return i
		}
		from = i + 1
	}
}

// stripPairedTag removes every "<name ...> ... </name>" span, matching
// the smallest enclosing pair. A block whose close tag never appears is
// dropped to end of input; script and style content must never leak
// into the tree builder, which has no raw-text mode.
func stripPairedTag(content, name string) string {
	lower := asciiLower(content)
	var sb strings.Builder
	pos := 0
	for {
		start := findOpenTag(lower, name, pos)
		if start < 0 {
			break
		}
		sb.WriteString(content[pos:start])
		closeIdx := strings.Index(lower[start:], "</"+name)
		if closeIdx < 0 {
			pos = len(content)
			break
		}
		end := start + closeIdx
		gt := strings.IndexByte(lower[end:], '>')
		if gt < 0 {
			pos = len(content)
			break
		}
		pos = end + gt + 1
	}
	if pos == 0 {
		return content
	}
	sb.WriteString(content[pos:])
	return sb.String()
}

// stripSingleTag removes every "<name ...>" tag without touching any
// content around it.
func stripSingleTag(content, name string) string {
	lower := asciiLower(content)
	var sb strings.Builder
	pos := 0
	for {
		start := findOpenTag(lower, name, pos)
		if start < 0 {
			break
		}
		sb.WriteString(content[pos:start])
		gt := strings.IndexByte(lower[start:], '>')
		if gt < 0 {
			pos = len(content)
			break
		}
		pos = start + gt + 1
	}
	if pos == 0 {
		return content
	}
	sb.WriteString(content[pos:])
	return sb.String()
}

// stripComments removes <!-- --> spans, smallest pair first. An
// unterminated comment swallows the rest of the input.
func stripComments(content string) string {
	var sb strings.Builder
	pos := 0
	for {
		start := strings.Index(content[pos:], "<!--")
		if start < 0 {
			break
		}
		start += pos
		sb.WriteString(content[pos:start])
		end := strings.Index(content[start+4:], "-->")
		if end < 0 {
			pos = len(content)
			break
		}
		pos = start + 4 + end + 3
	}
	if pos == 0 {
		return content
	}
	sb.WriteString(content[pos:])
	return sb.String()
}

// blockStrip is the first phase: script/style/head blocks, link/meta
// tags and comments all go.
type blockStrip struct{}

func (blockStrip) Name() string { return "strip-blocks" }

func (blockStrip) Apply(content string) string {
	content = stripComments(content)
	for _, tag := range []string{"script", "style", "head", "noscript"} {
		content = stripPairedTag(content, tag)
	}
	for _, tag := range []string{"link", "meta"} {
		content = stripSingleTag(content, tag)
	}
	return content
}

// adStrip removes advertisement iframes and containers by an
// allow/deny token match over the raw attribute text.
type adStrip struct {
	deny  []string
	allow []string
}

func (adStrip) Name() string { return "strip-ads" }

// adContainerTags are the tags the ad filter is willing to remove.
var adContainerTags = []string{"iframe", "ins", "aside", "section", "div"}

func (p adStrip) Apply(content string) string {
	for _, tag := range adContainerTags {
		content = p.stripDenied(content, tag)
	}
	return content
}

// stripDenied removes each <tag ...>...</tag> block whose attribute
// text hits a deny token and no allow token. Nested same-name tags are
// depth-counted so the removal never eats a sibling's close tag.
func (p adStrip) stripDenied(content, tag string) string {
	lower := asciiLower(content)
	var sb strings.Builder
	pos := 0
	for {
		start := findOpenTag(lower, tag, pos)
		if start < 0 {
			break
		}
		gt := strings.IndexByte(lower[start:], '>')
		if gt < 0 {
			break
		}
		attrText := lower[start : start+gt]
		if !p.denied(attrText) {
			sb.WriteString(content[pos : start+gt+1])
			pos = start + gt + 1
			continue
		}
		end := matchingClose(lower, tag, start+gt+1)
		sb.WriteString(content[pos:start])
		if end < 0 {
			pos = len(content)
			break
		}
		pos = end
	}
	if pos == 0 {
		return content
	}
	sb.WriteString(content[pos:])
	return sb.String()
}

func (p adStrip) denied(attrText string) bool {
	hit := false
	for _, tok := range p.deny {
		if strings.Contains(attrText, tok) {
			hit = true
			break
		}
	}
	if !hit {
		return false
	}
	for _, tok := range p.allow {
		if strings.Contains(attrText, tok) {
			return false
		}
	}
	return true
}

// matchingClose finds the end offset just past the close tag that
// balances an open tag whose '>' sits at from-1. Returns -1 when the
// block never closes.
func matchingClose(lower, tag string, from int) int {
	depth := 1
	pos := from
	for depth > 0 {
		nextOpen := findOpenTag(lower, tag, pos)
		nextClose := strings.Index(lower[pos:], "</"+tag)
		if nextClose < 0 {
			return -1
		}
		nextClose += pos
		if nextOpen >= 0 && nextOpen < nextClose {
			depth++
			pos = nextOpen + 1
			continue
		}
		depth--
		gt := strings.IndexByte(lower[nextClose:], '>')
		if gt < 0 {
			return -1
		}
		pos = nextClose + gt + 1
	}
	return pos
}

var inlineStyleRe = regexp.MustCompile(`(?i)\sstyle\s*=\s*("[^"]*"|'[^']*'|[^\s>]+)`)

// styleStrip removes style="" attributes and any <style> block a
// reordered pipeline left behind. Class and id attributes stay.
type styleStrip struct{}

func (styleStrip) Name() string { return "strip-inline-styles" }

func (styleStrip) Apply(content string) string {
	content = stripPairedTag(content, "style")
	return inlineStyleRe.ReplaceAllString(content, "")
}

var (
	whitespaceRunRe = regexp.MustCompile(`\s+`)
	interTagRe      = regexp.MustCompile(`>\s+<`)
)

// whitespaceCollapse is the last phase: one space per run, none
// directly between tags.
type whitespaceCollapse struct{}

func (whitespaceCollapse) Name() string { return "collapse-whitespace" }

func (whitespaceCollapse) Apply(content string) string {
	content = whitespaceRunRe.ReplaceAllString(content, " ")
	content = interTagRe.ReplaceAllString(content, "><")
	return strings.TrimSpace(content)
}
