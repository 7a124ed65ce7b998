// Package xmldoc is a small ordered element tree over encoding/xml.
//
// It keeps everything the catalog engine does not interpret (element order,
// attribute order, namespace prefixes) so a record survives load and export
// unchanged. Character data is trimmed on parse.
package xmldoc

// Attr is a single attribute. Name keeps its prefix ("xsi:type").
type Attr struct {
	Name  string
	Value string
}

// Node is one element with its attributes, trimmed text and child elements.
type Node struct {
	Name     string
	Attrs    []Attr
	Text     string
	Children []*Node
}

// NewNode returns an element with the given name and text.
func NewNode(name, text string) *Node {
	return &Node{Name: name, Text: text}
}

// Child returns the first child element with the given name, or nil.
func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns all child elements with the given name in document order.
func (n *Node) ChildrenNamed(name string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Find walks a path of first-matching children. Returns nil if any step is missing.
func (n *Node) Find(path ...string) *Node {
	cur := n
	for _, name := range path {
		cur = cur.Child(name)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Ensure returns the first child with the given name, appending a new empty one
// when absent. Existing siblings are left untouched.
func (n *Node) Ensure(name string) *Node {
	if c := n.Child(name); c != nil {
		return c
	}
	return n.Append(&Node{Name: name})
}

// EnsurePath applies Ensure along the path and returns the last element.
func (n *Node) EnsurePath(path ...string) *Node {
	cur := n
	for _, name := range path {
		cur = cur.Ensure(name)
	}
	return cur
}

// EnsureOrdered is Ensure for parents with a fixed child sequence: a missing
// child is inserted before the first existing sibling that follows it in order.
// Names not listed in order are treated as coming last.
func (n *Node) EnsureOrdered(name string, order []string) *Node {
	if c := n.Child(name); c != nil {
		return c
	}
	rank := func(s string) int {
		for i, o := range order {
			if o == s {
				return i
			}
		}
		return len(order)
	}
	want := rank(name)
	c := &Node{Name: name}
	for i, sib := range n.Children {
		if rank(sib.Name) > want {
			n.Children = append(n.Children[:i], append([]*Node{c}, n.Children[i:]...)...)
			return c
		}
	}
	return n.Append(c)
}

// Append adds c as the last child and returns it.
func (n *Node) Append(c *Node) *Node {
	n.Children = append(n.Children, c)
	return c
}

// ChildText returns the text of the first child with the given name and whether
// that child exists.
func (n *Node) ChildText(name string) (string, bool) {
	c := n.Child(name)
	if c == nil {
		return "", false
	}
	return c.Text, true
}

// SetChildText sets the text of the named child, creating it when absent.
func (n *Node) SetChildText(name, text string) {
	n.Ensure(name).Text = text
}

// Attr returns the value of the named attribute and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr replaces the value in place when present, otherwise appends the attribute.
func (n *Node) SetAttr(name, value string) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// Clone returns a deep copy.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{Name: n.Name, Text: n.Text}
	if n.Attrs != nil {
		out.Attrs = append([]Attr(nil), n.Attrs...)
	}
	if n.Children != nil {
		out.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

// Equal reports structural equality. Attribute and child order are significant,
// and a missing child is different from an empty one.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Name != o.Name || n.Text != o.Text {
		return false
	}
	if len(n.Attrs) != len(o.Attrs) || len(n.Children) != len(o.Children) {
		return false
	}
	for i := range n.Attrs {
		if n.Attrs[i] != o.Attrs[i] {
			return false
		}
	}
	for i := range n.Children {
		if !n.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	return true
}
