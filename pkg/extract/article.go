// Package extract picks the primary readable content out of arbitrary,
// possibly malformed HTML. It builds its own document tree (pkg/dom),
// pre-filters noise (pkg/sanitize), then runs a prioritized set of
// heuristic strategies and returns the best-scoring fragment plus
// document metadata as an Article.
//
// The contract is total: Extract never fails, for any input string.
// Malformed markup, oversized input and zero-candidate documents all
// degrade to a lower-quality but well-formed Article.
package extract

import (
	"strings"
	"unicode/utf8"
)

// excerptRunes is the target excerpt length in characters.
const excerptRunes = 200

// MathAnnotation is one TeX payload found in the document.
type MathAnnotation struct {
	TeX    string `json:"tex" yaml:"tex"`
	Inline bool   `json:"inline" yaml:"inline"`
}

// Article is the extraction result handed to the downstream
// document-to-text transformer. It is constructed once per call and
// not mutated afterwards.
type Article struct {
	// Title is the best title candidate, or the caller's fallback.
	Title string `json:"title" yaml:"title"`

	// Byline is the author line, empty when none was found.
	Byline string `json:"byline,omitempty" yaml:"byline,omitempty"`

	// Language is an ISO 639-1 code, defaulting to "en".
	Language string `json:"language" yaml:"language"`

	// Direction is "ltr" or "rtl".
	Direction string `json:"direction" yaml:"direction"`

	// Content is the winning fragment as serialized markup.
	Content string `json:"content" yaml:"content"`

	// TextContent is Content with tags stripped and whitespace collapsed.
	TextContent string `json:"text_content" yaml:"text_content"`

	// Length is the character count of TextContent.
	Length int `json:"length" yaml:"length"`

	// Excerpt is the first ~200 characters of TextContent.
	Excerpt string `json:"excerpt" yaml:"excerpt"`

	// SiteName comes from Open Graph metadata or the base URI host.
	SiteName string `json:"site_name,omitempty" yaml:"site_name,omitempty"`

	// Published is the publish time as an RFC 3339 string, or the raw
	// declared value when it would not parse, or empty.
	Published string `json:"published,omitempty" yaml:"published,omitempty"`

	// Keywords are the document's declared keywords.
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`

	// BaseURI is the caller-supplied document location.
	BaseURI string `json:"base_uri" yaml:"base_uri"`

	// Math maps annotation ids to TeX payloads found in the document.
	Math map[string]MathAnnotation `json:"math,omitempty" yaml:"math,omitempty"`
}

// excerpt cuts text to n runes on a rune boundary, appending an
// ellipsis when something was cut.
func excerpt(text string, n int) string {
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:n])) + "…"
}

// defaultDisallowedFilenameChars are always replaced by FileStem.
const defaultDisallowedFilenameChars = `/\:*?"<>|`

// FileStem turns the article title into a filesystem-safe name stem.
// Characters from the disallowed set (plus the always-unsafe ones)
// become hyphens; runs collapse to a single hyphen.
func (a *Article) FileStem(disallowed string) string {
	bad := defaultDisallowedFilenameChars + disallowed
	var sb strings.Builder
	lastHyphen := false
	for _, r := range a.Title {
		if strings.ContainsRune(bad, r) || r < 0x20 {
			if !lastHyphen && sb.Len() > 0 {
				sb.WriteByte('-')
				lastHyphen = true
			}
			continue
		}
		sb.WriteRune(r)
		lastHyphen = false
	}
	stem := strings.Trim(sb.String(), "- ")
	if stem == "" {
		return "untitled"
	}
	return stem
}
