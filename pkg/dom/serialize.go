package dom

import "strings"

// Serialize reconstructs markup for the subtree rooted at id.
// Attributes are re-emitted in stored order; tag names come out
// lower-case. Text payloads are emitted verbatim (the tokenizer never
// entity-decodes, so serialization round-trips).
func (d *Document) Serialize(id NodeID) string {
	var sb strings.Builder
	d.serializeInto(&sb, id)
	return sb.String()
}

// InnerHTML serializes only the children of id.
func (d *Document) InnerHTML(id NodeID) string {
	var sb strings.Builder
	for _, c := range d.nodes[id].children {
		d.serializeInto(&sb, c)
	}
	return sb.String()
}

func (d *Document) serializeInto(sb *strings.Builder, id NodeID) {
	type frame struct {
		id       NodeID
		closeTag bool
	}
	stack := []frame{{id: id}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &d.nodes[f.id]
		if f.closeTag {
			sb.WriteString("</")
			sb.WriteString(strings.ToLower(n.tag))
			sb.WriteByte('>')
			continue
		}
		if n.kind == TextKind {
			sb.WriteString(n.text)
			continue
		}
		if n.tag == "#ROOT" {
			// The synthetic root has no markup of its own.
			for i := len(n.children) - 1; i >= 0; i-- {
				stack = append(stack, frame{id: n.children[i]})
			}
			continue
		}

		sb.WriteByte('<')
		sb.WriteString(strings.ToLower(n.tag))
		for _, a := range n.attrs {
			sb.WriteByte(' ')
			sb.WriteString(a.Key)
			if a.Value != "" {
				sb.WriteString(`="`)
				sb.WriteString(a.Value)
				sb.WriteByte('"')
			}
		}
		if voidTags[n.tag] {
			sb.WriteString("/>")
			continue
		}
		sb.WriteByte('>')

		stack = append(stack, frame{id: f.id, closeTag: true})
		for i := len(n.children) - 1; i >= 0; i-- {
			stack = append(stack, frame{id: n.children[i]})
		}
	}
}
