// Package reconcile computes differential updates of a course catalog.
package reconcile

import (
	"kursnet-xml-tool/internal/domain"
)

// Diff compares the working set with the records loaded originally.
// A current record is changed when no original shares its PRODUCT_ID (new)
// or when its tree differs from the first original with that id.
// Comparison is on the raw trees: order of repeated elements counts and an
// absent field differs from an empty one.
func Diff(original, current []*domain.CourseRecord, deletedIDs []string) Result {
	origByID := make(map[string]*domain.CourseRecord, len(original))
	for _, o := range original {
		id := o.ProductID()
		if _, dup := origByID[id]; !dup {
			origByID[id] = o
		}
	}

	var res Result
	for _, c := range current {
		o, ok := origByID[c.ProductID()]
		if !ok {
			res.Changed = append(res.Changed, c)
			res.New++
			continue
		}
		if !c.Equal(o) {
			res.Changed = append(res.Changed, c)
		}
	}

	if len(deletedIDs) > 0 {
		res.DeletedIDs = append([]string(nil), deletedIDs...)
	}
	return res
}
