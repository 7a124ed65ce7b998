package xmldoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *Node {
	return &Node{Name: "SERVICE", Children: []*Node{
		NewNode("PRODUCT_ID", "1"),
		{Name: "SERVICE_DETAILS", Children: []*Node{
			NewNode("TITLE", "Excel"),
			{Name: "SERVICE_DATE", Children: []*Node{NewNode("END_DATE", "2024-02-01")}},
		}},
	}}
}

func TestFindAndEnsure(t *testing.T) {
	n := sample()

	assert.Equal(t, "Excel", n.Find("SERVICE_DETAILS", "TITLE").Text)
	assert.Nil(t, n.Find("SERVICE_DETAILS", "SERVICE_MODULE", "EDUCATION"))

	edu := n.EnsurePath("SERVICE_DETAILS", "SERVICE_MODULE", "EDUCATION")
	require.NotNil(t, edu)
	assert.Same(t, edu, n.Find("SERVICE_DETAILS", "SERVICE_MODULE", "EDUCATION"))

	// siblings survive
	assert.Equal(t, "Excel", n.Find("SERVICE_DETAILS", "TITLE").Text)
	assert.Len(t, n.Find("SERVICE_DETAILS").Children, 3)
}

func TestEnsureOrdered(t *testing.T) {
	n := sample()
	sd := n.Find("SERVICE_DETAILS", "SERVICE_DATE")
	order := []string{"START_DATE", "END_DATE", "DATE_REMARKS"}

	sd.EnsureOrdered("DATE_REMARKS", order).Text = "jede Woche"
	sd.EnsureOrdered("START_DATE", order).Text = "2024-01-01"

	var names []string
	for _, c := range sd.Children {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"START_DATE", "END_DATE", "DATE_REMARKS"}, names)
}

func TestSetAttrReplacesInPlace(t *testing.T) {
	n := &Node{Name: "SERVICE", Attrs: []Attr{{Name: "mode", Value: "update"}, {Name: "x", Value: "1"}}}
	n.SetAttr("mode", "new")
	n.SetAttr("y", "2")
	assert.Equal(t, []Attr{{"mode", "new"}, {"x", "1"}, {"y", "2"}}, n.Attrs)
}

func TestCloneIsDeep(t *testing.T) {
	n := sample()
	c := n.Clone()
	require.True(t, n.Equal(c))

	c.Find("SERVICE_DETAILS", "TITLE").Text = "Word"
	assert.Equal(t, "Excel", n.Find("SERVICE_DETAILS", "TITLE").Text)
	assert.False(t, n.Equal(c))
}

func TestEqual(t *testing.T) {
	testCases := []struct {
		name string
		a, b *Node
		want bool
	}{
		{"both nil", nil, nil, true},
		{"one nil", sample(), nil, false},
		{"identical", sample(), sample(), true},
		{
			"absent vs empty child",
			&Node{Name: "A"},
			&Node{Name: "A", Children: []*Node{{Name: "B"}}},
			false,
		},
		{
			"child order matters",
			&Node{Name: "A", Children: []*Node{NewNode("K", "1"), NewNode("K", "2")}},
			&Node{Name: "A", Children: []*Node{NewNode("K", "2"), NewNode("K", "1")}},
			false,
		},
		{
			"attribute value",
			&Node{Name: "E", Attrs: []Attr{{"type", ""}}},
			&Node{Name: "E", Attrs: []Attr{{"type", "false"}}},
			false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Equal(tc.b))
		})
	}
}

func TestToMapListElements(t *testing.T) {
	n := &Node{Name: "SERVICE", Attrs: []Attr{{"mode", "new"}}, Children: []*Node{
		NewNode("PRODUCT_ID", "1"),
		NewNode("KEYWORD", "excel"),
		NewNode("TAG", "x"),
		NewNode("TAG", "y"),
	}}
	isList := func(name string) bool { return name == "KEYWORD" }

	m := ToMap(n, isList)
	svc := m["SERVICE"].(map[string]any)

	assert.Equal(t, "new", svc["@_mode"])
	assert.Equal(t, "1", svc["PRODUCT_ID"])
	assert.Equal(t, []any{"excel"}, svc["KEYWORD"])
	assert.Equal(t, []any{"x", "y"}, svc["TAG"])
}
