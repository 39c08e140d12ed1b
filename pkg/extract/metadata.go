package extract

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/RadhiFadlillah/whatlanggo"
	"github.com/araddon/dateparse"

	"github.com/pagesift/pagesift/pkg/dom"
)

// Metadata extraction tries ordered pattern lists and falls back to a
// defined default. Nothing in here ever reports an error; a miss is
// just a default value.

// maxTitleRunes caps heading-derived titles so a stray hero banner
// does not become a paragraph-long title.
const maxTitleRunes = 300

func extractTitle(doc *dom.Document, fallback string) string {
	for _, tag := range []string{"H1", "H2"} {
		for _, id := range doc.FindByTag(tag) {
			if t := strings.TrimSpace(doc.PlainText(id)); t != "" {
				return excerpt(t, maxTitleRunes)
			}
		}
	}
	for _, id := range doc.Elements(dom.Root) {
		ci := doc.ClassAndID(id)
		if ci == "" {
			continue
		}
		if strings.Contains(ci, "title") || strings.Contains(ci, "headline") {
			if t := strings.TrimSpace(doc.PlainText(id)); t != "" {
				return excerpt(t, maxTitleRunes)
			}
		}
	}
	if t := metaContent(doc, "property", "og:title"); t != "" {
		return excerpt(t, maxTitleRunes)
	}
	if t := doc.Title(); t != "" {
		return t
	}
	return fallback
}

// bylinePatterns match class/id text of author containers.
var bylinePatterns = []string{"byline", "author", "writtenby", "dateline"}

func extractByline(doc *dom.Document) string {
	for _, id := range doc.Elements(dom.Root) {
		ci := doc.ClassAndID(id)
		if ci == "" {
			continue
		}
		for _, p := range bylinePatterns {
			if !strings.Contains(ci, p) {
				continue
			}
			if b := cleanByline(doc.PlainText(id)); b != "" {
				return b
			}
		}
	}
	return cleanByline(metaContent(doc, "name", "author"))
}

func cleanByline(raw string) string {
	b := strings.TrimSpace(raw)
	for _, prefix := range []string{"by ", "By ", "BY "} {
		b = strings.TrimPrefix(b, prefix)
	}
	if len(b) > 200 {
		// A "byline" that long is almost certainly a matched container
		// holding body text.
		return ""
	}
	return strings.TrimSpace(b)
}

// iso6391 maps the ISO 639-3 codes whatlanggo emits for common
// languages onto the two-letter codes the Article carries.
var iso6391 = map[string]string{
	"eng": "en", "cmn": "zh", "jpn": "ja", "kor": "ko", "rus": "ru",
	"ukr": "uk", "heb": "he", "arb": "ar", "ara": "ar", "spa": "es",
	"fra": "fr", "deu": "de", "por": "pt", "ita": "it", "nld": "nl",
	"pol": "pl", "tur": "tr", "vie": "vi", "tha": "th", "hin": "hi",
	"ben": "bn", "pes": "fa", "urd": "ur", "ind": "id", "swe": "sv",
	"nob": "no", "dan": "da", "fin": "fi", "ces": "cs", "ell": "el",
	"hun": "hu", "ron": "ro",
}

func extractLanguage(doc *dom.Document, text string) string {
	if lang := strings.TrimSpace(doc.Lang()); lang != "" {
		lang = strings.ToLower(lang)
		if i := strings.IndexAny(lang, "-_"); i > 0 {
			lang = lang[:i]
		}
		return lang
	}
	if strings.TrimSpace(text) != "" {
		info := whatlanggo.Detect(text)
		if info.IsReliable() {
			if code, ok := iso6391[whatlanggo.LangToString(info.Lang)]; ok {
				return code
			}
		}
	}
	return "en"
}

// rtlLanguages use right-to-left text direction.
var rtlLanguages = map[string]bool{"ar": true, "he": true, "fa": true, "ur": true}

func extractDirection(doc *dom.Document, lang string) string {
	if html := doc.FindFirstByTag("HTML"); html != dom.InvalidNode {
		if dir, ok := doc.Attr(html, "dir"); ok && strings.EqualFold(dir, "rtl") {
			return "rtl"
		}
	}
	if rtlLanguages[lang] {
		return "rtl"
	}
	return "ltr"
}

func extractSiteName(doc *dom.Document, baseURI string) string {
	if name := metaContent(doc, "property", "og:site_name"); name != "" {
		return name
	}
	if u, err := url.Parse(baseURI); err == nil && u.Host != "" {
		return u.Host
	}
	return ""
}

func extractPublished(doc *dom.Document) string {
	var raw string
	for _, id := range doc.FindByTag("TIME") {
		if v, ok := doc.Attr(id, "datetime"); ok && strings.TrimSpace(v) != "" {
			raw = strings.TrimSpace(v)
			break
		}
	}
	if raw == "" {
		raw = metaContent(doc, "property", "article:published_time")
	}
	if raw == "" {
		return ""
	}
	if t, err := dateparse.ParseAny(raw); err == nil {
		return t.Format(time.RFC3339)
	}
	// Unparseable declared values are carried as-is rather than lost.
	return raw
}

func extractKeywords(doc *dom.Document) []string {
	raw := metaContent(doc, "name", "keywords")
	if raw == "" {
		return nil
	}
	var out []string
	for _, kw := range strings.Split(raw, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

// extractMath collects TeX annotation payloads: MathJax-style
// <script type="math/tex"> nodes and MathML <annotation> elements.
func extractMath(doc *dom.Document) map[string]MathAnnotation {
	out := make(map[string]MathAnnotation)
	anon := 0
	record := func(id dom.NodeID, tex string, inline bool) {
		tex = strings.TrimSpace(tex)
		if tex == "" {
			return
		}
		key, ok := doc.Attr(id, "id")
		if !ok || key == "" {
			anon++
			key = fmt.Sprintf("math-%d", anon)
		}
		if _, exists := out[key]; exists {
			return
		}
		out[key] = MathAnnotation{TeX: tex, Inline: inline}
	}

	for _, id := range doc.FindByTag("SCRIPT") {
		typ, _ := doc.Attr(id, "type")
		typ = strings.ToLower(typ)
		if !strings.HasPrefix(typ, "math/tex") {
			continue
		}
		record(id, doc.PlainText(id), !strings.Contains(typ, "mode=display"))
	}
	for _, id := range doc.FindByTag("ANNOTATION") {
		enc, _ := doc.Attr(id, "encoding")
		if !strings.Contains(strings.ToLower(enc), "tex") {
			continue
		}
		record(id, doc.PlainText(id), true)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// metaContent finds the first <meta key="value" content="..."> in
// document order and returns its trimmed content.
func metaContent(doc *dom.Document, key, value string) string {
	for _, id := range doc.FindByTag("META") {
		v, ok := doc.Attr(id, key)
		if !ok || !strings.EqualFold(v, value) {
			continue
		}
		if c, ok := doc.Attr(id, "content"); ok {
			if c = strings.TrimSpace(c); c != "" {
				return c
			}
		}
	}
	return ""
}
