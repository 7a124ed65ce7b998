package main

import (
	"fmt"
	"io"
	"text/tabwriter"
)

var glossary = []struct{ tag, desc string }{
	{"<PRODUCT_ID>", "Unique id. Must NOT change for existing courses."},
	{"<TITLE>", "Name of the offer."},
	{"<DESCRIPTION_LONG>", "Content text. At least 44 characters, no advertising terms."},
	{"<SERVICE_DATE>", "The actual teaching period (START_DATE, END_DATE, DATE_REMARKS)."},
	{"<ANNOUNCEMENT>", "Advertising period, i.e. visibility on the website."},
	{"<FLEXIBLE_START>", `"true" = continuous intake, "false" = fixed start date.`},
	{"<COURSE_ID>", "On a course date: PRODUCT_ID of its master course."},
	{"WARNINGS", "Logic checks, e.g. a fixed start course without any dates."},
}

func writeGlossary(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, g := range glossary {
		fmt.Fprintf(tw, "%s\t%s\n", g.tag, g.desc)
	}
	tw.Flush()
}
