package xmldoc

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kursnet-xml-tool/internal/errors"
)

func TestParseKeepsOrderAndPrefixes(t *testing.T) {
	src := `<?xml version="1.0" encoding="ISO-8859-15"?>
<!-- export -->
<OPENQCAT version="1.1" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
  <HEADER><GENERATOR_INFO>tool</GENERATOR_INFO></HEADER>
  <NEW_CATALOG>
    <SERVICE mode="new">
      <PRODUCT_ID> 42 </PRODUCT_ID>
      <KEYWORD>a</KEYWORD>
      <KEYWORD>b &amp; c</KEYWORD>
      <EMPTY/>
    </SERVICE>
  </NEW_CATALOG>
</OPENQCAT>`

	root, err := ParseString(src)
	require.NoError(t, err)

	want := &Node{
		Name:  "OPENQCAT",
		Attrs: []Attr{{Name: "version", Value: "1.1"}, {Name: "xmlns:xsi", Value: "http://www.w3.org/2001/XMLSchema-instance"}},
		Children: []*Node{
			{Name: "HEADER", Children: []*Node{{Name: "GENERATOR_INFO", Text: "tool"}}},
			{Name: "NEW_CATALOG", Children: []*Node{{
				Name:  "SERVICE",
				Attrs: []Attr{{Name: "mode", Value: "new"}},
				Children: []*Node{
					{Name: "PRODUCT_ID", Text: "42"},
					{Name: "KEYWORD", Text: "a"},
					{Name: "KEYWORD", Text: "b & c"},
					{Name: "EMPTY"},
				},
			}}},
		},
	}
	if diff := cmp.Diff(want, root); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"unclosed", "<A><B></B>"},
		{"mismatched", "<A><B></A></B>"},
		{"valueless attribute", "<EDUCATION type></EDUCATION>"},
		{"two roots", "<A/><B/>"},
		{"text outside root", "<A/>junk"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseString(tc.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrParse)

			var perr *errors.ParseError
			assert.True(t, errors.As(err, &perr))
		})
	}
}

func TestBuildRoundTrip(t *testing.T) {
	root := &Node{Name: "ROOT", Attrs: []Attr{{Name: "note", Value: `a "quoted" <value>`}}}
	svc := root.Append(&Node{Name: "SERVICE"})
	svc.Append(NewNode("PRODUCT_ID", "7"))
	svc.Append(NewNode("DESCRIPTION_LONG", "Tom & Jerry <b>"))
	svc.Append(&Node{Name: "EDUCATION", Attrs: []Attr{{Name: "type", Value: "false"}}})
	svc.Append(&Node{Name: "EMPTY"})

	out := Build(root)

	assert.Contains(t, out, `<ROOT note="a &quot;quoted&quot; &lt;value&gt;">`)
	assert.Contains(t, out, "\n    <PRODUCT_ID>7</PRODUCT_ID>\n")
	assert.Contains(t, out, "<DESCRIPTION_LONG>Tom &amp; Jerry &lt;b&gt;</DESCRIPTION_LONG>")
	assert.Contains(t, out, `<EDUCATION type="false"/>`)
	assert.Contains(t, out, "<EMPTY/>")

	back, err := ParseString(out)
	require.NoError(t, err)
	assert.True(t, root.Equal(back), "rebuilt tree differs:\n%s", out)
}

func TestBuildMultilineAttribute(t *testing.T) {
	root := &Node{Name: "A", Attrs: []Attr{{Name: "x", Value: "one\ntwo"}}}
	back, err := ParseString(Build(root))
	require.NoError(t, err)
	v, _ := back.Attr("x")
	assert.Equal(t, "one\ntwo", v)
}
