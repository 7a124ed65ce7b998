package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kursnet-xml-tool/internal/domain"
	"kursnet-xml-tool/internal/xmldoc"
)

const longDesc = "Praxisnahe Einführung in die doppelte Buchführung mit DATEV."

type parentOpts struct {
	flexible    bool
	start       string
	remarks     *string
	description string
}

func parent(o parentOpts) *domain.CourseRecord {
	r := domain.NewCourseRecord(&xmldoc.Node{Name: "SERVICE"})
	r.SetProductID("P")
	r.SetLongDescription(o.description)
	r.SetFlexibleStart(o.flexible)
	if o.start != "" {
		r.SetStartDate(o.start)
	}
	if o.remarks != nil {
		r.SetDateRemarks(*o.remarks)
	}
	return r
}

func child() *domain.CourseRecord {
	r := domain.NewCourseRecord(&xmldoc.Node{Name: "SERVICE"})
	r.SetProductID("P_100")
	r.SetCourseReferenceID("P")
	return r
}

func str(s string) *string { return &s }

func rules(ws []Warning) []string {
	var out []string
	for _, w := range ws {
		out = append(out, w.Rule)
	}
	return out
}

func TestEvaluate(t *testing.T) {
	testCases := []struct {
		name     string
		group    domain.Group
		expected []string
	}{
		{
			name:     "unbookable only",
			group:    domain.Group{Parent: parent(parentOpts{description: longDesc})},
			expected: []string{RuleUnbookable},
		},
		{
			name:     "bookable via children",
			group:    domain.Group{Parent: parent(parentOpts{description: longDesc}), Children: []*domain.CourseRecord{child()}},
			expected: nil,
		},
		{
			name:     "bookable via own date",
			group:    domain.Group{Parent: parent(parentOpts{description: longDesc, start: "2024-03-01"})},
			expected: nil,
		},
		{
			name:     "bookable via flexible start",
			group:    domain.Group{Parent: parent(parentOpts{description: longDesc, flexible: true})},
			expected: nil,
		},
		{
			name: "contradiction",
			group: domain.Group{
				Parent:   parent(parentOpts{description: longDesc, remarks: str("Laufender Einstieg möglich")}),
				Children: []*domain.CourseRecord{child()},
			},
			expected: []string{RuleFlexibleContradicts},
		},
		{
			name: "contradiction ignored with flexible start",
			group: domain.Group{
				Parent: parent(parentOpts{description: longDesc, flexible: true, remarks: str("Start JEDE WOCHE")}),
			},
			expected: nil,
		},
		{
			name: "everything at once",
			group: domain.Group{
				Parent: parent(parentOpts{description: "Die Beste Jobgarantie", remarks: str("alle 2 Wochen")}),
			},
			expected: []string{RuleUnbookable, RuleFlexibleContradicts, RuleDescriptionShort, RulePromotional},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, rules(Evaluate(tc.group)))
		})
	}
}

func TestDescriptionLengthCountsCharacters(t *testing.T) {
	// 43 umlauts are 86 bytes but still too short
	short := ""
	for i := 0; i < 43; i++ {
		short += "ä"
	}
	g := domain.Group{Parent: parent(parentOpts{description: short, flexible: true})}
	assert.Equal(t, []string{RuleDescriptionShort}, rules(Evaluate(g)))

	g = domain.Group{Parent: parent(parentOpts{description: short + "ä", flexible: true})}
	assert.Empty(t, Evaluate(g))
}

func TestPromotionalListsEveryTerm(t *testing.T) {
	desc := "Mit Garantie zum Testsieger-Abschluss und Jobgarantie, zum Top-Preis!"
	g := domain.Group{Parent: parent(parentOpts{description: desc, flexible: true})}

	ws := Warnings(g)
	assert.Equal(t, []string{"promotional language not allowed: Top-Preis, Garantie, Testsieger, Jobgarantie"}, ws)
}

func TestPromotionalIsCaseSensitive(t *testing.T) {
	g := domain.Group{Parent: parent(parentOpts{description: longDesc + " die beste Wahl", flexible: true})}
	assert.Empty(t, Warnings(g))
}

func TestRulesUseParentFieldsOnly(t *testing.T) {
	c := child()
	c.SetLongDescription("kurz")
	c.SetDateRemarks("jede Woche")

	g := domain.Group{Parent: parent(parentOpts{description: longDesc}), Children: []*domain.CourseRecord{c}}
	assert.Empty(t, Evaluate(g))
}
