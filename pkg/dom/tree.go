package dom

import "strings"

// voidTags never take children; their open tags are treated as
// self-closing regardless of how the markup writes them.
var voidTags = map[string]bool{
	"AREA": true, "BASE": true, "BR": true, "COL": true, "EMBED": true,
	"HR": true, "IMG": true, "INPUT": true, "LINK": true, "META": true,
	"PARAM": true, "SOURCE": true, "TRACK": true, "WBR": true,
}

// Parse builds a document tree from markup. It is total: any string
// yields a tree, with unparseable spans kept as text nodes.
func Parse(markup string) *Document {
	d := NewDocument()
	d.buildInto(Root, markup)
	d.scanMetadata()
	return d
}

// buildInto tokenizes markup and attaches the resulting nodes under
// parent. The builder keeps an explicit stack of open elements, so
// nesting depth of the input never grows the call stack.
//
// Close tags pop down to the nearest matching opener; tags opened in
// between are left attached to their opener (permissive auto-close).
// Unmatched close tags are dropped. Anything still open at end of
// input is implicitly closed.
func (d *Document) buildInto(parent NodeID, markup string) {
	stack := []NodeID{parent}
	tz := NewTokenizer(markup)
	for {
		tok, ok := tz.Next()
		if !ok {
			break
		}
		top := stack[len(stack)-1]
		switch tok.Kind {
		case TokenText:
			if strings.TrimSpace(tok.Text) != "" {
				d.addText(top, tok.Text)
			}
		case TokenSelfClose:
			d.addElement(top, tok.Name, tok.Attrs)
		case TokenOpen:
			id := d.addElement(top, tok.Name, tok.Attrs)
			if !voidTags[tok.Name] {
				stack = append(stack, id)
			}
		case TokenClose:
			// Children were attached at open time, so popping is all
			// that auto-close needs to do.
			for i := len(stack) - 1; i > 0; i-- {
				if d.nodes[stack[i]].tag == tok.Name {
					stack = stack[:i]
					break
				}
			}
		}
	}
}

// scanMetadata lifts the declared language and title text onto the
// document after a build.
func (d *Document) scanMetadata() {
	if html := d.FindFirstByTag("HTML"); html != InvalidNode {
		if lang, ok := d.Attr(html, "lang"); ok {
			d.lang = lang
		}
	}
	if title := d.FindFirstByTag("TITLE"); title != InvalidNode {
		d.title = strings.TrimSpace(d.PlainText(title))
	}
}

// SetContent replaces the children of id by re-parsing markup and
// attaching the result in their place. This is the mutation primitive
// used to clear and rebuild a node.
//
// The old child subtrees stay in the arena but become unreachable from
// the root; traversal and serialization only ever follow child lists,
// so they are effectively gone.
func (d *Document) SetContent(id NodeID, markup string) {
	for _, c := range d.nodes[id].children {
		d.nodes[c].parent = InvalidNode
	}
	d.nodes[id].children = nil
	d.buildInto(id, markup)
}
