package reconcile

import (
	"kursnet-xml-tool/internal/dates"
	"kursnet-xml-tool/internal/domain"
)

// Sanitize returns export-ready copies of records; the inputs are not touched.
//
//   - EDUCATION type becomes exactly "true" or "false" ("true" only when it
//     already is "true", absent or anything else becomes "false").
//   - START_DATE and END_DATE in DD.MM.YYYY notation become ISO; other values
//     pass through.
func Sanitize(records []*domain.CourseRecord) []*domain.CourseRecord {
	out := make([]*domain.CourseRecord, 0, len(records))
	for _, r := range records {
		c := r.Clone()

		if edu := c.Education(); edu != nil {
			v, _ := edu.Attr(domain.AttrEducationType)
			if v == "true" {
				edu.SetAttr(domain.AttrEducationType, "true")
			} else {
				edu.SetAttr(domain.AttrEducationType, "false")
			}
		}

		sd := c.ServiceDate()
		if sd.StartDate != nil && *sd.StartDate != "" {
			c.SetStartDate(dates.ToISO(*sd.StartDate))
		}
		if sd.EndDate != nil && *sd.EndDate != "" {
			c.SetEndDate(dates.ToISO(*sd.EndDate))
		}

		out = append(out, c)
	}
	return out
}
