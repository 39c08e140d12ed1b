// Package dom implements a minimal document tree for malformed HTML.
// It has its own tokenizer and permissive tree builder, so it works in
// environments where no browser parser is available and never fails on
// broken markup.
//
// Nodes live in a flat arena owned by the Document. Parent and child
// relationships are expressed as indices into the arena, which rules out
// reference cycles and makes cloning a plain copy of node records.
package dom

import "strings"

// Kind distinguishes the two node types in the tree.
type Kind uint8

const (
	// ElementKind is a tag node with attributes and children.
	ElementKind Kind = iota
	// TextKind is a leaf holding a text run.
	TextKind
)

// NodeID is an index into a Document's node arena.
// The root of every Document is node 0.
type NodeID int

// InvalidNode is returned by lookups that find nothing.
const InvalidNode NodeID = -1

// Root is the synthetic document root.
const Root NodeID = 0

// Attr is a single attribute. Order of attributes on an element is
// insertion order; keys are matched case-insensitively.
type Attr struct {
	Key   string
	Value string
}

type node struct {
	kind     Kind
	tag      string // normalized upper-case, elements only
	text     string // text nodes only
	attrs    []Attr
	parent   NodeID
	children []NodeID
}

// Document owns a node arena plus document-level metadata picked up
// during parsing (declared language, title element text).
type Document struct {
	nodes []node
	lang  string
	title string
}

// NewDocument returns an empty document containing only the root node.
func NewDocument() *Document {
	return &Document{
		nodes: []node{{kind: ElementKind, tag: "#ROOT", parent: InvalidNode}},
	}
}

// Len reports the number of nodes in the arena, root included.
func (d *Document) Len() int { return len(d.nodes) }

// Lang returns the document's declared language attribute, if any.
func (d *Document) Lang() string { return d.lang }

// Title returns the text of the document's <title> element, if any.
func (d *Document) Title() string { return d.title }

// KindOf returns the kind of the given node.
func (d *Document) KindOf(id NodeID) Kind { return d.nodes[id].kind }

// Tag returns the normalized (upper-case) tag name of an element,
// or "" for text nodes.
func (d *Document) Tag(id NodeID) string { return d.nodes[id].tag }

// Text returns the payload of a text node, or "" for elements.
func (d *Document) Text(id NodeID) string { return d.nodes[id].text }

// Parent returns the parent of id, or InvalidNode for the root.
func (d *Document) Parent(id NodeID) NodeID { return d.nodes[id].parent }

// Children returns the ordered child list of id. The returned slice is
// owned by the document and must not be mutated by callers.
func (d *Document) Children(id NodeID) []NodeID { return d.nodes[id].children }

// Attrs returns the element's attributes in insertion order.
func (d *Document) Attrs(id NodeID) []Attr { return d.nodes[id].attrs }

// Attr looks up an attribute value case-insensitively. The second
// return reports whether the attribute is present.
func (d *Document) Attr(id NodeID, key string) (string, bool) {
	for _, a := range d.nodes[id].attrs {
		if strings.EqualFold(a.Key, key) {
			return a.Value, true
		}
	}
	return "", false
}

// addElement appends a new element node under parent and returns its id.
func (d *Document) addElement(parent NodeID, tag string, attrs []Attr) NodeID {
	id := NodeID(len(d.nodes))
	d.nodes = append(d.nodes, node{
		kind:   ElementKind,
		tag:    strings.ToUpper(tag),
		attrs:  attrs,
		parent: parent,
	})
	d.nodes[parent].children = append(d.nodes[parent].children, id)
	return id
}

// addText appends a new text node under parent and returns its id.
func (d *Document) addText(parent NodeID, text string) NodeID {
	id := NodeID(len(d.nodes))
	d.nodes = append(d.nodes, node{
		kind:   TextKind,
		text:   text,
		parent: parent,
	})
	d.nodes[parent].children = append(d.nodes[parent].children, id)
	return id
}

// Clone copies the subtree rooted at id into a fresh document. The copy
// shares no node identity with the source: mutating the clone never
// shows through in the original. With deep=false only the node itself
// is copied (attributes included, children dropped).
//
// The walk is iterative so clone depth is bounded independent of how
// deeply the input was nested.
func (d *Document) Clone(id NodeID, deep bool) *Document {
	out := NewDocument()
	out.lang = d.lang
	out.title = d.title

	type frame struct {
		src    NodeID
		parent NodeID // parent in the clone arena
	}
	stack := []frame{{src: id, parent: Root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := d.nodes[f.src]
		var copied NodeID
		if n.kind == TextKind {
			copied = out.addText(f.parent, n.text)
		} else {
			attrs := make([]Attr, len(n.attrs))
			copy(attrs, n.attrs)
			copied = out.addElement(f.parent, n.tag, attrs)
		}
		if !deep || n.kind == TextKind {
			continue
		}
		// Push children in reverse so they are cloned in document order.
		for i := len(n.children) - 1; i >= 0; i-- {
			stack = append(stack, frame{src: n.children[i], parent: copied})
		}
	}
	return out
}
