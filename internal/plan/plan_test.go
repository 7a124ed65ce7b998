package plan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"kursnet-xml-tool/internal/errors"
	"kursnet-xml-tool/internal/session"
)

const catalog = `<OPENQCAT version="1.1">
  <HEADER><GENERATOR_INFO>test</GENERATOR_INFO></HEADER>
  <NEW_CATALOG>
    <SERVICE>
      <PRODUCT_ID>100</PRODUCT_ID>
      <SERVICE_DETAILS>
        <TITLE>Finanzbuchhaltung</TITLE>
        <SERVICE_DATE><START_DATE>01.02.2024</START_DATE></SERVICE_DATE>
      </SERVICE_DETAILS>
    </SERVICE>
    <SERVICE>
      <PRODUCT_ID>200</PRODUCT_ID>
      <SERVICE_DETAILS><TITLE>Lagerlogistik</TITLE></SERVICE_DETAILS>
    </SERVICE>
  </NEW_CATALOG>
</OPENQCAT>`

func newSession(t *testing.T) *session.Session {
	t.Helper()
	s := session.New(zap.NewNop(), session.WithIDSource(func(int) int { return 100 }))
	_, err := s.LoadText(catalog)
	require.NoError(t, err)
	return s
}

func TestParse(t *testing.T) {
	src := `
seq_number: 12
operations:
  - op: add-derived
    parent: "100"
    title: Finanzbuchhaltung (Abendkurs)
    start_date: 03.03.2025
    weeks: 6
  - op: set
    id: "100"
    flexible_start: true
    remarks: laufender Einstieg
  - op: remove
    id: "200"
`
	p, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, 12, p.SeqNumber)
	require.Len(t, p.Operations, 3)
	assert.Equal(t, OpAddDerived, p.Operations[0].Op)
	assert.Equal(t, "100", p.Operations[0].Parent)
	require.NotNil(t, p.Operations[0].StartDate)
	assert.Equal(t, "03.03.2025", *p.Operations[0].StartDate)
	assert.Equal(t, 6.0, p.Operations[0].Weeks)
	require.NotNil(t, p.Operations[1].FlexibleStart)
	assert.True(t, *p.Operations[1].FlexibleStart)
	assert.Nil(t, p.Operations[1].Title)
}

func TestParseEmpty(t *testing.T) {
	p, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, p.Operations)
}

func TestParseInvalid(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		want string
	}{
		{"unknown key", "operations:\n  - op: remove\n    id: x\n    colour: red\n", "colour"},
		{"unknown op", "operations:\n  - op: rename\n    id: x\n", "unknown operation"},
		{"missing parent", "operations:\n  - op: add-derived\n", "parent is required"},
		{"missing id", "operations:\n  - op: set\n    title: x\n", "id is required"},
		{"end-date without weeks", "operations:\n  - op: end-date\n    id: x\n", "weeks is required"},
		{"negative weeks", "operations:\n  - op: set\n    id: x\n    weeks: -1\n", "negative"},
		{"negative seq", "seq_number: -1\n", "seq_number"},
		{"not yaml", "operations: [", "decode"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestApply(t *testing.T) {
	s := newSession(t)
	title := "Finanzbuchhaltung (Abendkurs)"
	start := "03.03.2025"
	flex := true
	remarks := "laufender Einstieg"

	p := &Plan{Operations: []Operation{
		{Op: OpAddDerived, Parent: "100", Title: &title, StartDate: &start, Weeks: 6},
		{Op: OpSet, ID: "100", FlexibleStart: &flex, Remarks: &remarks},
		{Op: OpEndDate, ID: "100", Weeks: 2},
		{Op: OpRemove, ID: "200"},
	}}

	res, err := p.Apply(s)
	require.NoError(t, err)
	assert.Equal(t, []string{"100_200"}, res.Added)
	assert.Equal(t, []string{"100", "100"}, res.Updated)
	assert.Equal(t, []string{"200"}, res.Removed)

	child, err := s.Record("100_200")
	require.NoError(t, err)
	assert.Equal(t, title, child.Title())
	assert.Equal(t, "100", child.ParentID())
	assert.Equal(t, start, child.StartDate())
	require.NotNil(t, child.ServiceDate().EndDate)
	assert.Equal(t, "2025-04-13", *child.ServiceDate().EndDate)

	parent, err := s.Record("100")
	require.NoError(t, err)
	assert.True(t, parent.FlexibleStart())
	assert.Equal(t, "2024-02-14", *parent.ServiceDate().EndDate)
	assert.Equal(t, remarks, *parent.ServiceDate().DateRemarks)

	assert.Equal(t, []string{"200"}, s.DeletedIDs())
}

func TestApplyStopsAtFailure(t *testing.T) {
	s := newSession(t)
	title := "Neu"

	p := &Plan{Operations: []Operation{
		{Op: OpSet, ID: "200", Title: &title},
		{Op: OpRemove, ID: "404"},
		{Op: OpRemove, ID: "100"},
	}}

	res, err := p.Apply(s)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
	assert.Contains(t, err.Error(), "operation 2")
	assert.Equal(t, []string{"200"}, res.Updated)

	_, err = s.Record("100")
	assert.NoError(t, err)
}

func TestApplyEndDateWithoutStart(t *testing.T) {
	s := newSession(t)

	p := &Plan{Operations: []Operation{{Op: OpEndDate, ID: "200", Weeks: 3}}}
	_, err := p.Apply(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot project end date")
}
