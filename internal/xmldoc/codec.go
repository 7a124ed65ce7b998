package xmldoc

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"kursnet-xml-tool/internal/errors"
)

// Parse decodes a whole document and returns its root element.
//
// Input is expected to be UTF-8 already; an encoding named in the XML
// declaration is accepted as-is. Comments, processing instructions and
// directives are dropped.
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	dec.Entity = xml.HTMLEntity
	dec.CharsetReader = func(_ string, in io.Reader) (io.Reader, error) { return in, nil }

	var (
		root  *Node
		stack []*Node
		texts []*strings.Builder
	)
	fail := func(err error) (*Node, error) {
		line, _ := dec.InputPos()
		return nil, &errors.ParseError{Line: line, Err: err}
	}

	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fail(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Name: qualified(t.Name)}
			for _, a := range t.Attr {
				n.Attrs = append(n.Attrs, Attr{Name: qualified(a.Name), Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return fail(fmt.Errorf("second root element <%s>", n.Name))
				}
				root = n
			} else {
				stack[len(stack)-1].Append(n)
			}
			stack = append(stack, n)
			texts = append(texts, &strings.Builder{})

		case xml.EndElement:
			name := qualified(t.Name)
			if len(stack) == 0 || stack[len(stack)-1].Name != name {
				return fail(fmt.Errorf("unexpected closing tag </%s>", name))
			}
			top := len(stack) - 1
			stack[top].Text = strings.TrimSpace(texts[top].String())
			stack, texts = stack[:top], texts[:top]

		case xml.CharData:
			if len(stack) > 0 {
				texts[len(texts)-1].Write(t)
			} else if strings.TrimSpace(string(t)) != "" {
				return fail(errors.New("text outside the root element"))
			}
		}
	}

	if len(stack) > 0 {
		return fail(fmt.Errorf("unclosed element <%s>", stack[len(stack)-1].Name))
	}
	if root == nil {
		return fail(errors.New("no root element"))
	}
	return root, nil
}

// ParseString is Parse over a string.
func ParseString(s string) (*Node, error) {
	return Parse(strings.NewReader(s))
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer(
		"&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;",
		"\n", "&#xA;", "\r", "&#xD;", "\t", "&#x9;",
	)
)

// Build renders n as indented text (two spaces per level). Elements without
// text and children are self-closed. No XML declaration is written.
func Build(n *Node) string {
	var b strings.Builder
	write(&b, n, 0)
	return b.String()
}

func write(b *strings.Builder, n *Node, depth int) {
	indent := strings.Repeat("  ", depth)
	b.WriteString(indent)
	b.WriteByte('<')
	b.WriteString(n.Name)
	for _, a := range n.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		b.WriteString(`="`)
		attrEscaper.WriteString(b, a.Value)
		b.WriteByte('"')
	}

	switch {
	case len(n.Children) == 0 && n.Text == "":
		b.WriteString("/>\n")
	case len(n.Children) == 0:
		b.WriteByte('>')
		textEscaper.WriteString(b, n.Text)
		b.WriteString("</" + n.Name + ">\n")
	default:
		b.WriteString(">\n")
		if n.Text != "" {
			b.WriteString(indent + "  ")
			textEscaper.WriteString(b, n.Text)
			b.WriteByte('\n')
		}
		for _, c := range n.Children {
			write(b, c, depth+1)
		}
		b.WriteString(indent + "</" + n.Name + ">\n")
	}
}
