package dom

import "strings"

// walk visits the subtree rooted at start in pre-order. Returning
// false from fn stops the walk.
func (d *Document) walk(start NodeID, fn func(NodeID) bool) {
	stack := []NodeID{start}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(id) {
			return
		}
		children := d.nodes[id].children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
}

// FindByTag returns all elements with the given tag name in document
// order. The name is matched case-insensitively.
func (d *Document) FindByTag(name string) []NodeID {
	want := strings.ToUpper(name)
	var out []NodeID
	d.walk(Root, func(id NodeID) bool {
		if d.nodes[id].kind == ElementKind && d.nodes[id].tag == want {
			out = append(out, id)
		}
		return true
	})
	return out
}

// FindFirstByTag returns the first element with the given tag in
// document order, or InvalidNode.
func (d *Document) FindFirstByTag(name string) NodeID {
	want := strings.ToUpper(name)
	found := InvalidNode
	d.walk(Root, func(id NodeID) bool {
		if d.nodes[id].kind == ElementKind && d.nodes[id].tag == want {
			found = id
			return false
		}
		return true
	})
	return found
}

// FindByID returns the first element whose id attribute equals value,
// or InvalidNode. First match in document order wins.
func (d *Document) FindByID(value string) NodeID {
	found := InvalidNode
	d.walk(Root, func(id NodeID) bool {
		if d.nodes[id].kind != ElementKind {
			return true
		}
		if v, ok := d.Attr(id, "id"); ok && v == value {
			found = id
			return false
		}
		return true
	})
	return found
}

// Elements returns every element in the subtree rooted at start, in
// document order, start included when it is an element.
func (d *Document) Elements(start NodeID) []NodeID {
	var out []NodeID
	d.walk(start, func(id NodeID) bool {
		if d.nodes[id].kind == ElementKind {
			out = append(out, id)
		}
		return true
	})
	return out
}

// PlainText concatenates the text runs under id, whitespace-collapsed
// and separated by single spaces.
func (d *Document) PlainText(id NodeID) string {
	var sb strings.Builder
	d.walk(id, func(n NodeID) bool {
		if d.nodes[n].kind == TextKind {
			t := strings.TrimSpace(collapseSpace(d.nodes[n].text))
			if t != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(t)
			}
		}
		return true
	})
	return sb.String()
}

// ClassAndID returns the element's class and id attribute values
// joined, lower-cased, for pattern matching against selector keywords.
func (d *Document) ClassAndID(id NodeID) string {
	class, _ := d.Attr(id, "class")
	idAttr, _ := d.Attr(id, "id")
	if class == "" && idAttr == "" {
		return ""
	}
	return strings.ToLower(class + " " + idAttr)
}

func collapseSpace(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	space := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' {
			space = true
			continue
		}
		if space && sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		space = false
		sb.WriteRune(r)
	}
	return sb.String()
}
