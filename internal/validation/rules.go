// Package validation flags logically inconsistent course groups.
//
// Rules look at the master record's fields and the number of scheduled
// instances in its group, never at an instance's own fields. Each rule is
// evaluated independently.
package validation

import (
	"strings"
	"unicode/utf8"

	"kursnet-xml-tool/internal/domain"
)

// MinDescriptionLength is the shortest accepted DESCRIPTION_LONG, in characters.
const MinDescriptionLength = 44

// Rule codes.
const (
	RuleUnbookable          = "unbookable"
	RuleFlexibleContradicts = "flexible-start-contradiction"
	RuleDescriptionShort    = "description-too-short"
	RulePromotional         = "promotional-language"
)

// ContinuousIntakePhrases in DATE_REMARKS (matched case-insensitively) mean
// continuous or frequent intake.
var ContinuousIntakePhrases = []string{
	"laufender einstieg",
	"alle 2 wochen",
	"jede woche",
}

// PromotionalTerms may not appear in a description (case-sensitive).
var PromotionalTerms = []string{
	"Beste",
	"Top-Preis",
	"Garantie",
	"Testsieger",
	"Jobgarantie",
}

// Warning is one triggered rule.
type Warning struct {
	Rule    string
	Message string
}

// Rule inspects a group and returns a message when it triggers.
type Rule struct {
	Code  string
	Check func(g domain.Group) (string, bool)
}

// Rules is the fixed rule set in reporting order.
var Rules = []Rule{
	{Code: RuleUnbookable, Check: checkUnbookable},
	{Code: RuleFlexibleContradicts, Check: checkFlexibleContradiction},
	{Code: RuleDescriptionShort, Check: checkDescriptionLength},
	{Code: RulePromotional, Check: checkPromotional},
}

// Evaluate runs every rule against g.
func Evaluate(g domain.Group) []Warning {
	var out []Warning
	if g.Parent == nil {
		return out
	}
	for _, r := range Rules {
		if msg, hit := r.Check(g); hit {
			out = append(out, Warning{Rule: r.Code, Message: msg})
		}
	}
	return out
}

// Warnings returns the messages of Evaluate, one per triggered rule.
func Warnings(g domain.Group) []string {
	ws := Evaluate(g)
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.Message)
	}
	return out
}

func checkUnbookable(g domain.Group) (string, bool) {
	p := g.Parent
	if p.FlexibleStart() || len(g.Children) > 0 || p.StartDate() != "" {
		return "", false
	}
	return "CRITICAL: course has neither scheduled dates nor flexible start and cannot be booked", true
}

func checkFlexibleContradiction(g domain.Group) (string, bool) {
	p := g.Parent
	if p.FlexibleStart() {
		return "", false
	}
	remarks := p.ServiceDate().DateRemarks
	if remarks == nil {
		return "", false
	}
	lower := strings.ToLower(*remarks)
	for _, phrase := range ContinuousIntakePhrases {
		if strings.Contains(lower, phrase) {
			return "contradiction: date remarks describe continuous intake but flexible start is off", true
		}
	}
	return "", false
}

func checkDescriptionLength(g domain.Group) (string, bool) {
	if utf8.RuneCountInString(g.Parent.LongDescription()) >= MinDescriptionLength {
		return "", false
	}
	return "description too short (min. 44 characters)", true
}

func checkPromotional(g domain.Group) (string, bool) {
	desc := g.Parent.LongDescription()
	var found []string
	for _, term := range PromotionalTerms {
		if strings.Contains(desc, term) {
			found = append(found, term)
		}
	}
	if len(found) == 0 {
		return "", false
	}
	return "promotional language not allowed: " + strings.Join(found, ", "), true
}
