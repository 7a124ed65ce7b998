package xmldoc

// Attribute keys and mixed text are named the way JSON-ish catalog dumps
// usually show them.
const (
	AttrPrefix = "@_"
	TextKey    = "#text"
)

// ToMap projects n into nested maps keyed by element name. Leaf elements become
// their text. Repeated children become sequences; names for which isList
// returns true are sequences even when they occur once.
func ToMap(n *Node, isList func(name string) bool) map[string]any {
	if isList == nil {
		isList = func(string) bool { return false }
	}
	return map[string]any{n.Name: mapValue(n, isList)}
}

func mapValue(n *Node, isList func(string) bool) any {
	if len(n.Attrs) == 0 && len(n.Children) == 0 {
		return n.Text
	}
	m := make(map[string]any, len(n.Attrs)+len(n.Children)+1)
	for _, a := range n.Attrs {
		m[AttrPrefix+a.Name] = a.Value
	}
	if n.Text != "" {
		m[TextKey] = n.Text
	}
	for _, c := range n.Children {
		v := mapValue(c, isList)
		prev, seen := m[c.Name]
		switch {
		case isList(c.Name):
			list, _ := prev.([]any)
			m[c.Name] = append(list, v)
		case !seen:
			m[c.Name] = v
		default:
			if list, ok := prev.([]any); ok {
				m[c.Name] = append(list, v)
			} else {
				m[c.Name] = []any{prev, v}
			}
		}
	}
	return m
}
