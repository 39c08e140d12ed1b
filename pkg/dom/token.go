package dom

import "strings"

// TokenKind identifies a lexical event produced by the Tokenizer.
type TokenKind uint8

const (
	// TokenText is a run of character data between tags.
	TokenText TokenKind = iota
	// TokenOpen is an opening tag, attributes parsed.
	TokenOpen
	// TokenSelfClose is an opening tag that closes itself (<br/>).
	TokenSelfClose
	// TokenClose is a closing tag.
	TokenClose
)

// Token is one lexical event.
type Token struct {
	Kind  TokenKind
	Name  string // normalized upper-case tag name for Open/SelfClose/Close
	Attrs []Attr // Open/SelfClose only; values are not entity-decoded
	Text  string // Text only
}

// Tokenizer scans markup left to right as an explicit character state
// machine. It never fails: spans that do not lex as tags degrade to
// text tokens, comments and processing instructions are dropped.
type Tokenizer struct {
	src string
	pos int
}

// NewTokenizer returns a tokenizer over src.
func NewTokenizer(src string) *Tokenizer {
	return &Tokenizer{src: src}
}

// Next returns the next token. The second return is false at end of input.
func (t *Tokenizer) Next() (Token, bool) {
	for t.pos < len(t.src) {
		if t.src[t.pos] != '<' || !t.looksLikeTag(t.pos) {
			// A bare '<' that starts nothing the tag scanner
			// understands (including a trailing '<' at end of
			// input) is literal text.
			return t.scanText(), true
		}
		tok, ok := t.scanTag()
		if ok {
			return tok, true
		}
		// Dropped span (comment, doctype) or unterminated tag already
		// consumed; loop for the next event.
	}
	return Token{}, false
}

// scanText consumes up to the next plausible tag boundary.
func (t *Tokenizer) scanText() Token {
	start := t.pos
	for t.pos < len(t.src) {
		if t.src[t.pos] == '<' && t.looksLikeTag(t.pos) {
			break
		}
		t.pos++
	}
	return Token{Kind: TokenText, Text: t.src[start:t.pos]}
}

// looksLikeTag reports whether the '<' at i starts something the tag
// scanner understands. A bare '<' followed by anything else is text.
func (t *Tokenizer) looksLikeTag(i int) bool {
	if i+1 >= len(t.src) {
		return false
	}
	c := t.src[i+1]
	return isNameStart(c) || c == '/' || c == '!' || c == '?'
}

// scanTag consumes one construct starting at '<'. It returns ok=false
// when the construct produces no token (comments, doctype, bogus or
// unterminated tags that were re-queued as text).
func (t *Tokenizer) scanTag() (Token, bool) {
	start := t.pos
	t.pos++ // consume '<'

	switch c := t.src[t.pos]; {
	case c == '!':
		t.scanBang()
		return Token{}, false
	case c == '?':
		t.skipUntil('>')
		return Token{}, false
	case c == '/':
		return t.scanCloseTag(start)
	default:
		return t.scanOpenTag(start)
	}
}

// scanBang consumes <!-- comments --> and <!DOCTYPE ...> style
// constructs, emitting nothing. Comments match the smallest enclosing
// pair; an unterminated comment swallows the rest of the input.
func (t *Tokenizer) scanBang() {
	if strings.HasPrefix(t.src[t.pos:], "!--") {
		end := strings.Index(t.src[t.pos+3:], "-->")
		if end < 0 {
			t.pos = len(t.src)
			return
		}
		t.pos += 3 + end + 3
		return
	}
	t.skipUntil('>')
}

func (t *Tokenizer) skipUntil(stop byte) {
	for t.pos < len(t.src) {
		if t.src[t.pos] == stop {
			t.pos++
			return
		}
		t.pos++
	}
}

func (t *Tokenizer) scanCloseTag(start int) (Token, bool) {
	t.pos++ // consume '/'
	nameStart := t.pos
	for t.pos < len(t.src) && isNameChar(t.src[t.pos]) {
		t.pos++
	}
	name := t.src[nameStart:t.pos]
	// Skip anything up to '>' (stray attributes on close tags).
	for t.pos < len(t.src) && t.src[t.pos] != '>' {
		t.pos++
	}
	if t.pos >= len(t.src) {
		// Unterminated: degrade the whole span to text.
		return t.degradeToText(start)
	}
	t.pos++ // consume '>'
	if name == "" {
		// Bogus </> carries no information, drop it.
		return Token{}, false
	}
	return Token{Kind: TokenClose, Name: strings.ToUpper(name)}, true
}

func (t *Tokenizer) scanOpenTag(start int) (Token, bool) {
	nameStart := t.pos
	for t.pos < len(t.src) && isNameChar(t.src[t.pos]) {
		t.pos++
	}
	name := t.src[nameStart:t.pos]

	attrs, selfClose, ok := t.scanAttrs()
	if !ok || name == "" {
		return t.degradeToText(start)
	}
	kind := TokenOpen
	if selfClose {
		kind = TokenSelfClose
	}
	return Token{Kind: kind, Name: strings.ToUpper(name), Attrs: attrs}, true
}

// scanAttrs parses `name`, `name=value`, `name="value"` and
// `name='value'` pairs up to the closing '>'. ok=false means the tag
// never terminated.
func (t *Tokenizer) scanAttrs() (attrs []Attr, selfClose, ok bool) {
	for t.pos < len(t.src) {
		// Skip whitespace and stray slashes that are not '/>'.
		c := t.src[t.pos]
		if isSpace(c) {
			t.pos++
			continue
		}
		if c == '>' {
			t.pos++
			return attrs, false, true
		}
		if c == '/' {
			if t.pos+1 < len(t.src) && t.src[t.pos+1] == '>' {
				t.pos += 2
				return attrs, true, true
			}
			t.pos++
			continue
		}

		keyStart := t.pos
		for t.pos < len(t.src) && !isSpace(t.src[t.pos]) &&
			t.src[t.pos] != '=' && t.src[t.pos] != '>' && t.src[t.pos] != '/' {
			t.pos++
		}
		key := t.src[keyStart:t.pos]
		if key == "" {
			t.pos++
			continue
		}

		for t.pos < len(t.src) && isSpace(t.src[t.pos]) {
			t.pos++
		}
		if t.pos >= len(t.src) || t.src[t.pos] != '=' {
			attrs = append(attrs, Attr{Key: key})
			continue
		}
		t.pos++ // consume '='
		for t.pos < len(t.src) && isSpace(t.src[t.pos]) {
			t.pos++
		}
		if t.pos >= len(t.src) {
			break
		}

		var val string
		switch q := t.src[t.pos]; q {
		case '"', '\'':
			t.pos++
			valStart := t.pos
			for t.pos < len(t.src) && t.src[t.pos] != q {
				t.pos++
			}
			if t.pos >= len(t.src) {
				return nil, false, false
			}
			val = t.src[valStart:t.pos]
			t.pos++ // consume closing quote
		default:
			valStart := t.pos
			for t.pos < len(t.src) && !isSpace(t.src[t.pos]) && t.src[t.pos] != '>' {
				t.pos++
			}
			val = t.src[valStart:t.pos]
		}
		attrs = append(attrs, Attr{Key: key, Value: val})
	}
	return nil, false, false
}

// degradeToText rewinds to start and emits the '<' as a literal text
// token, queueing nothing else; the scan resumes after it.
func (t *Tokenizer) degradeToText(start int) (Token, bool) {
	t.pos = len(t.src)
	return Token{Kind: TokenText, Text: t.src[start:]}, true
}

func isNameStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isNameChar(c byte) bool {
	return isNameStart(c) || c >= '0' && c <= '9' || c == '-' || c == '_' || c == ':'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}
